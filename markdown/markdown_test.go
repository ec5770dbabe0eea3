package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRender_Headers(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"# Header 1", "<h1>Header 1</h1>"},
		{"## Header 2", "<h2>Header 2</h2>"},
		{"### Header 3", "<h3>Header 3</h3>"},
		{"#### Header 4", "<h4>Header 4</h4>"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := string(Render(tt.input))
			assert.Contains(t, result, tt.expected)
		})
	}
}

func TestRender_Lists(t *testing.T) {
	input := "- Item 1\n- Item 2\n- Item 3"
	result := string(Render(input))

	assert.Contains(t, result, "<ul>")
	assert.Contains(t, result, "<li>Item 1</li>")
	assert.Contains(t, result, "<li>Item 2</li>")
	assert.Contains(t, result, "<li>Item 3</li>")
	assert.Contains(t, result, "</ul>")
}

func TestRender_CodeBlock(t *testing.T) {
	input := "```\ncode here\n```"
	result := string(Render(input))

	assert.Contains(t, result, "<pre>")
	assert.Contains(t, result, "<code>")
	assert.Contains(t, result, "code here")
}

func TestRender_Emphasis(t *testing.T) {
	result := string(Render("This is **bold** and *italic* text"))

	assert.Contains(t, result, "<strong>bold</strong>")
	assert.Contains(t, result, "<em>italic</em>")
}

func TestRender_Links(t *testing.T) {
	result := string(Render("Check [this link](https://example.com)"))

	assert.Contains(t, result, `href="https://example.com"`)
	assert.Contains(t, result, "this link")
}

func TestRender_Images(t *testing.T) {
	result := string(Render("![alt text](https://example.com/pic.png)"))

	assert.Contains(t, result, "<img")
	assert.Contains(t, result, `src="https://example.com/pic.png"`)
	assert.Contains(t, result, `alt="alt text"`)
}

func TestRender_StripsScriptTags(t *testing.T) {
	result := string(Render("Hello <script>alert('xss')</script> world"))

	assert.NotContains(t, result, "<script")
	assert.NotContains(t, result, "alert('xss')")
	assert.Contains(t, result, "Hello")
	assert.Contains(t, result, "world")
}

func TestRender_StripsEventHandlers(t *testing.T) {
	result := string(Render(`<a href="https://example.com" onclick="steal()">click</a>`))

	assert.NotContains(t, result, "onclick")
	assert.NotContains(t, result, "steal()")
}

func TestRender_StripsJavascriptURLs(t *testing.T) {
	result := string(Render(`[click](javascript:alert(1))`))

	assert.NotContains(t, result, "javascript:")
}

func TestRender_Table(t *testing.T) {
	input := "| A | B |\n|---|---|\n| 1 | 2 |"
	result := string(Render(input))

	assert.Contains(t, result, "<table>")
	assert.Contains(t, result, "<td>1</td>")
}
