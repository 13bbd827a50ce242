package query

import "strings"

// CommandConfiguration captures the query section of the configuration file.
type CommandConfiguration struct {
	Author string `mapstructure:"author"`
}

// DefaultCommandConfiguration returns baseline query settings.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{Author: ""}
}

// Sanitize trims configuration values.
func (configuration CommandConfiguration) Sanitize() CommandConfiguration {
	sanitized := configuration
	sanitized.Author = strings.TrimSpace(configuration.Author)
	return sanitized
}
