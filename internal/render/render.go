// Package render turns model prose into HTML that is safe to embed in a page.
package render

import (
	"bytes"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// Sanitizer converts markdown to HTML and strips anything outside the allow-list.
// Safe for concurrent use.
type Sanitizer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

func NewSanitizer() *Sanitizer {
	p := bluemonday.NewPolicy()
	p.AllowElements(
		"p", "br", "ul", "ol", "li", "blockquote", "pre", "code",
		"strong", "em", "del", "h1", "h2", "h3", "h4", "hr",
		"table", "thead", "tbody", "tr", "th", "td",
	)
	p.AllowAttrs("href").OnElements("a")
	p.AllowURLSchemes("https")
	p.AllowRelativeURLs(false)
	p.AddTargetBlankToFullyQualifiedLinks(true)
	p.RequireNoReferrerOnLinks(true)

	return &Sanitizer{
		md:     goldmark.New(goldmark.WithExtensions(extension.GFM)),
		policy: p,
	}
}

// HTML renders markdown and sanitises the result. Raw HTML in the input is dropped by the renderer.
func (s *Sanitizer) HTML(markdown string) string {
	if markdown == "" {
		return ""
	}
	var buf bytes.Buffer
	if err := s.md.Convert([]byte(markdown), &buf); err != nil {
		return s.policy.Sanitize(markdown)
	}
	return s.policy.Sanitize(buf.String())
}
