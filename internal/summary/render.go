package summary

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

const (
	// RenderStyleAuto picks a dark or light style from the terminal background.
	RenderStyleAuto = "auto"
	// RenderStylePlain renders markdown without colors.
	RenderStylePlain = "notty"

	defaultWordWrapConstant = 100
)

// RenderMarkdown renders the markdown answer for terminal display.
func RenderMarkdown(markdown string, style string) (string, error) {
	styleOption := glamour.WithStandardStyle(RenderStylePlain)
	switch strings.ToLower(strings.TrimSpace(style)) {
	case RenderStyleAuto, "":
		styleOption = glamour.WithAutoStyle()
	case RenderStylePlain:
	default:
		styleOption = glamour.WithStandardStyle(style)
	}

	renderer, rendererError := glamour.NewTermRenderer(styleOption, glamour.WithWordWrap(defaultWordWrapConstant))
	if rendererError != nil {
		return "", rendererError
	}
	return renderer.Render(markdown)
}
