package linkpost

// ExtractResult holds the text extracted from an HTML page, before it is
// normalized and truncated by Excerpt.
type ExtractResult struct {
	// Title is the page title.
	Title string

	// Text is the readable text of the content container, with fragments
	// separated by blank lines.
	Text string

	// Strategy names the heuristic that located the content container.
	Strategy string
}

// Extractor extracts the main readable text from HTML pages.
type Extractor interface {
	// Extract parses raw HTML and returns the text of the page's primary
	// content block.
	Extract(html string) (*ExtractResult, error)
}
