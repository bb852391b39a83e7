package ui

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// RenderMarkdown converts a markdown reply to terminal-friendly text.
// Rendering failures fall back to the raw content.
func RenderMarkdown(content string) string {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return content
	}

	rendered, err := renderer.Render(content)
	if err != nil {
		return content
	}

	return strings.TrimSpace(rendered)
}
