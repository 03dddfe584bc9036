// Package linkpost turns web articles into LinkedIn-style posts. It fetches
// a page, extracts its main readable text with an ordered cascade of
// heuristics, and hands that text to a language model prompt.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, rod/, openai/).
package linkpost

// Request is an inbound post generation request.
// When URL is set the article text is fetched from it; otherwise Message
// is used as the article text. Both may be empty.
type Request struct {
	URL     string `json:"url,omitempty"`
	Message string `json:"message,omitempty"`
}

// Validate returns an error if the request contains invalid fields.
func (r *Request) Validate() error {
	if r.URL == "" {
		return nil
	}
	if _, err := ParseArticleURL(r.URL); err != nil {
		return err
	}
	return nil
}

// Post is the text generated by the language model. Its structure is not
// inspected.
type Post struct {
	Text string `json:"text"`
}
