package summary

import (
	_ "embed"
	"strings"
)

//go:embed instructions.md
var instructionsDocument string

// Instructions returns the system instructions given to the model.
func Instructions() string {
	return strings.TrimSpace(instructionsDocument)
}
