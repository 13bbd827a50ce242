package query

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// OutputFormatYAML renders results as YAML documents.
	OutputFormatYAML = "yaml"
	// OutputFormatJSON renders results as indented JSON.
	OutputFormatJSON = "json"

	jsonIndentConstant                = "  "
	yamlIndentConstant                = 2
	unsupportedFormatTemplateConstant = "unsupported output format %q; expected yaml or json"
)

// OutputFormats lists the supported output formats.
func OutputFormats() []string {
	return []string{OutputFormatYAML, OutputFormatJSON}
}

// WriteValue renders value to writer in the requested format.
func WriteValue(writer io.Writer, value any, format string) error {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case OutputFormatYAML, "":
		encoder := yaml.NewEncoder(writer)
		encoder.SetIndent(yamlIndentConstant)
		if encodeError := encoder.Encode(value); encodeError != nil {
			return encodeError
		}
		return encoder.Close()
	case OutputFormatJSON:
		encoder := json.NewEncoder(writer)
		encoder.SetIndent("", jsonIndentConstant)
		encoder.SetEscapeHTML(false)
		return encoder.Encode(value)
	default:
		return fmt.Errorf(unsupportedFormatTemplateConstant, format)
	}
}
