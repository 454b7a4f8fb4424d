// ABOUTME: The fixed demonstration snippet set written by seeding.
// ABOUTME: Three small sources in different languages and repositories.
package snippets

// DemoSnippet is a source snippet before it is embedded.
type DemoSnippet struct {
	Repo string
	File string
	Text string
}

// DemoDocuments returns the demonstration set in seeding order.
func DemoDocuments() []DemoSnippet {
	return []DemoSnippet{
		{
			Repo: "algorithms-ts",
			File: "binary_search.ts",
			Text: "export function binarySearch(arr: number[], target: number): number { // binary search over a sorted array\n" +
				" let lo = 0, hi = arr.length - 1; while (lo <= hi) { const mid = (lo + hi) >> 1; if (arr[mid] === target) return mid; " +
				"if (arr[mid] < target) lo = mid + 1; else hi = mid - 1; } return -1; }",
		},
		{
			Repo: "algorithms-py",
			File: "quick_sort.py",
			Text: "def quick_sort(items):\n    # recursive quicksort using a pivot partition\n    if len(items) <= 1:\n        return items\n" +
				"    pivot = items[0]\n    return quick_sort([x for x in items[1:] if x < pivot]) + [pivot] + " +
				"quick_sort([x for x in items[1:] if x >= pivot])",
		},
		{
			Repo: "go-web",
			File: "server.go",
			Text: "func main() {\n\t// start an HTTP server that responds with hello world\n" +
				"\thttp.HandleFunc(\"/\", func(w http.ResponseWriter, r *http.Request) { fmt.Fprintln(w, \"hello world\") })\n" +
				"\tlog.Fatal(http.ListenAndServe(\":8080\", nil))\n}",
		},
	}
}
