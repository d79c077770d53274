// Package markdown renders announcement content into safe HTML for the
// board page. Rendering happens at display time; storage always keeps
// the raw text the author submitted.
package markdown

import (
	"bytes"
	"html/template"

	"github.com/microcosm-cc/bluemonday"
	"github.com/starwave-dev/starboard/internal/logger"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

type Renderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

func New() *Renderer {
	return &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(extension.Linkify, extension.Strikethrough),
			goldmark.WithRendererOptions(html.WithHardWraps()),
		),
		policy: bluemonday.UGCPolicy(),
	}
}

// Render converts markdown to sanitized HTML. On conversion failure the
// raw text is escaped and returned as-is so the page still renders.
func (r *Renderer) Render(content string) template.HTML {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(content), &buf); err != nil {
		logger.Log.Error("markdown conversion failed", "error", err)
		return template.HTML(template.HTMLEscapeString(content))
	}
	return template.HTML(r.policy.SanitizeBytes(buf.Bytes()))
}
