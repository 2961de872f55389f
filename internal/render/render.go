// Package render converts workout notes to HTML for previews.
package render

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/meltforce/gymbuddy/internal/vault"
)

// engine is stateless and shared across requests.
var engine = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithParserOptions(parser.WithAutoHeadingID()),
	goldmark.WithRendererOptions(html.WithHardWraps()),
)

// HTML renders markdown to HTML with GFM tables. A leading frontmatter block
// is rendered as a metadata table instead of a rule and a paragraph.
func HTML(markdown []byte) ([]byte, error) {
	meta, body := splitFrontmatter(markdown)
	var buf bytes.Buffer
	if len(meta) > 0 {
		buf.WriteString(metaTable(meta))
	}
	if err := engine.Convert(body, &buf); err != nil {
		return nil, fmt.Errorf("rendering markdown: %w", err)
	}
	return buf.Bytes(), nil
}

// Note renders a workout note for a date as an HTML fragment.
func Note(text string) ([]byte, error) {
	if !vault.IsWorkoutNote(text) {
		return nil, fmt.Errorf("rendering note: not a workout note")
	}
	return HTML([]byte(text))
}
