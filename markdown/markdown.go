package markdown

import (
	"bytes"
	"html/template"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// markdown renderer configured with Goldmark and useful extensions
var md = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,     // tables, strikethrough, task lists, autolinks (GFM set)
		extension.Linkify, // linkify raw URLs
	),
)

// policy restricts rendered HTML to a user-generated-content allow-list:
// paragraphs, headings, emphasis, links, images with alt/src, lists, code.
// Scripts, event handlers and arbitrary tags are stripped.
var policy = func() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowImages()
	return p
}()

// Render converts markdown source into sanitized HTML. It runs on every
// display of body content; nothing is precomputed or cached at write time,
// so unsafe markup entered by an author never reaches a page.
func Render(source string) template.HTML {
	var buf bytes.Buffer
	if err := md.Convert([]byte(source), &buf); err != nil {
		// keep the page rendering, but never emit unsanitized source
		return template.HTML(template.HTMLEscapeString(source))
	}
	return template.HTML(policy.SanitizeBytes(buf.Bytes()))
}
