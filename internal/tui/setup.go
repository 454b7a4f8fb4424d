// ABOUTME: Interactive TUI wizard for configuring the snippet store.
// ABOUTME: 3-step bubbletea model collecting store path, backend, and result count.
package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Defaults applied when a field is left empty.
const (
	DefaultBackend = "json"
	DefaultTopK    = 5
)

// Step represents the current wizard step.
type Step int

const (
	StepStorePath Step = iota
	StepBackend
	StepTopK
	StepValidating
	StepDone
	StepFailed
)

// validationResultMsg carries the result of an async validation attempt.
type validationResultMsg struct {
	err error
}

// ValidateFn is the function signature for store path validation.
type ValidateFn func(ctx context.Context, storePath string) error

// cancelHolder shares a cancel function across bubbletea model copies.
// This MUST be stored as a pointer field on SetupModel so that value-receiver
// methods (required by tea.Model) can store the cancel func and have it
// visible to all copies of the model.
type cancelHolder struct {
	cancel context.CancelFunc
}

// SetupModel is the bubbletea model for the setup wizard.
type SetupModel struct {
	step          Step
	defaultPath   string
	inputs        [3]textinput.Model
	spinner       spinner.Model
	validateFn    ValidateFn
	cancelCtx     *cancelHolder
	inputErr      string
	validationErr error
	quitting      bool
}

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99"))
	brandStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	stepStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	promptStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// NewSetupModel creates a new setup wizard model, pre-filling with existing config values.
// defaultPath is applied when the store path is left empty.
func NewSetupModel(defaultPath, storePath, backend string, topK int) SetupModel {
	pathInput := textinput.New()
	pathInput.Placeholder = defaultPath
	pathInput.Focus()
	pathInput.Width = 60
	if storePath != "" {
		pathInput.SetValue(storePath)
	}

	backendInput := textinput.New()
	backendInput.Placeholder = DefaultBackend
	backendInput.Width = 10
	if backend != "" {
		backendInput.SetValue(backend)
	}

	topKInput := textinput.New()
	topKInput.Placeholder = strconv.Itoa(DefaultTopK)
	topKInput.Width = 6
	if topK > 0 {
		topKInput.SetValue(strconv.Itoa(topK))
	}

	s := spinner.New()
	s.Spinner = spinner.Dot

	return SetupModel{
		step:        StepStorePath,
		defaultPath: defaultPath,
		inputs:      [3]textinput.Model{pathInput, backendInput, topKInput},
		spinner:     s,
		validateFn:  ValidateStorePath,
		cancelCtx:   &cancelHolder{},
	}
}

// Init implements tea.Model.
func (m SetupModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m SetupModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEscape:
			m.quitting = true
			if m.cancelCtx.cancel != nil {
				m.cancelCtx.cancel()
			}
			return m, tea.Quit
		}

		switch m.step {
		case StepStorePath, StepBackend, StepTopK:
			return m.updateInput(msg)
		case StepFailed:
			return m.updateFailed(msg)
		}

	case validationResultMsg:
		m.cancelCtx.cancel = nil
		if msg.err == nil {
			m.step = StepDone
			return m, tea.Quit
		}
		m.validationErr = msg.err
		m.step = StepFailed
		return m, nil

	case spinner.TickMsg:
		if m.step == StepValidating {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
	}

	return m, nil
}

func (m SetupModel) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyEnter {
		idx := int(m.step)
		val := strings.TrimSpace(m.inputs[idx].Value())

		switch m.step {
		case StepStorePath:
			if val == "" {
				val = m.defaultPath
			}
			if val == "" {
				return m, nil
			}
			m.inputs[idx].SetValue(val)
		case StepBackend:
			if val == "" {
				val = DefaultBackend
			}
			val = strings.ToLower(val)
			if val != "json" && val != "sqlite" {
				m.inputErr = "backend must be json or sqlite"
				return m, nil
			}
			m.inputs[idx].SetValue(val)
		case StepTopK:
			if val == "" {
				val = strconv.Itoa(DefaultTopK)
			}
			if n, err := strconv.Atoi(val); err != nil || n <= 0 {
				m.inputErr = "result count must be a positive whole number"
				return m, nil
			}
			m.inputs[idx].SetValue(val)
		}

		m.inputErr = ""
		m.inputs[idx].Blur()

		switch m.step {
		case StepStorePath:
			m.step = StepBackend
			m.inputs[1].Focus()
			return m, textinput.Blink
		case StepBackend:
			m.step = StepTopK
			m.inputs[2].Focus()
			return m, textinput.Blink
		case StepTopK:
			m.step = StepValidating
			return m, tea.Batch(m.startValidation(), m.spinner.Tick)
		}
	}

	// Forward to the active input
	idx := int(m.step)
	var cmd tea.Cmd
	m.inputs[idx], cmd = m.inputs[idx].Update(msg)
	return m, cmd
}

func (m SetupModel) updateFailed(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyRunes {
		switch msg.Runes[0] {
		case 'r':
			m.step = StepValidating
			m.validationErr = nil
			return m, tea.Batch(m.startValidation(), m.spinner.Tick)
		case 's':
			m.step = StepDone
			return m, tea.Quit
		case 'q':
			m.quitting = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m SetupModel) startValidation() tea.Cmd {
	ctx, cancel := context.WithCancel(context.Background())
	m.cancelCtx.cancel = cancel
	storePath := m.inputs[0].Value()
	fn := m.validateFn
	return func() tea.Msg {
		return validationResultMsg{err: fn(ctx, storePath)}
	}
}

// View implements tea.Model.
func (m SetupModel) View() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(brandStyle.Render("   SNIPSEARCH"))
	b.WriteString(titleStyle.Render(" - Setup"))
	b.WriteString("\n\n")
	b.WriteString("Choose where snippets are stored and how many results to show.\n\n")

	switch m.step {
	case StepStorePath:
		b.WriteString(stepStyle.Render("Step 1 of 3: Store path"))
		b.WriteString("\n")
		b.WriteString(promptStyle.Render("(press Enter for default)"))
		b.WriteString("\n")
		b.WriteString(m.inputs[0].View())
		b.WriteString("\n")

	case StepBackend:
		b.WriteString(fmt.Sprintf("  Store path: %s\n\n", m.inputs[0].Value()))
		b.WriteString(stepStyle.Render("Step 2 of 3: Backend (json or sqlite)"))
		b.WriteString("\n")
		b.WriteString(m.inputs[1].View())
		b.WriteString("\n")

	case StepTopK:
		b.WriteString(fmt.Sprintf("  Store path: %s\n", m.inputs[0].Value()))
		b.WriteString(fmt.Sprintf("  Backend:    %s\n\n", m.inputs[1].Value()))
		b.WriteString(stepStyle.Render("Step 3 of 3: Results per query"))
		b.WriteString("\n")
		b.WriteString(m.inputs[2].View())
		b.WriteString("\n")

	case StepValidating:
		b.WriteString(fmt.Sprintf("  Store path: %s\n", m.inputs[0].Value()))
		b.WriteString(fmt.Sprintf("  Backend:    %s\n", m.inputs[1].Value()))
		b.WriteString(fmt.Sprintf("  Results:    %s\n\n", m.inputs[2].Value()))
		b.WriteString(m.spinner.View())
		b.WriteString(" Checking store location...")
		b.WriteString("\n")

	case StepDone:
		b.WriteString(successStyle.Render("✓ Store location is writable"))
		b.WriteString("\n")

	case StepFailed:
		errMsg := "unknown error"
		if m.validationErr != nil {
			errMsg = m.validationErr.Error()
		}
		b.WriteString(errorStyle.Render(fmt.Sprintf("✗ Validation failed: %s", errMsg)))
		b.WriteString("\n\n")
		b.WriteString(promptStyle.Render("[r]etry  [s]ave anyway  [q]uit"))
		b.WriteString("\n")
	}

	if m.inputErr != "" {
		b.WriteString(errorStyle.Render(m.inputErr))
		b.WriteString("\n")
	}

	return b.String()
}

// Result returns the entered values.
func (m SetupModel) Result() (storePath, backend string, topK int) {
	topK, err := strconv.Atoi(m.inputs[2].Value())
	if err != nil || topK <= 0 {
		topK = DefaultTopK
	}
	backend = m.inputs[1].Value()
	if backend == "" {
		backend = DefaultBackend
	}
	return m.inputs[0].Value(), backend, topK
}

// ShouldSave returns true if the wizard completed (via validation success or
// "save anyway") and the user did not cancel with Ctrl+C, Escape, or 'q'.
func (m SetupModel) ShouldSave() bool {
	return m.step == StepDone && !m.quitting
}
