package web

import "strings"

// CommandConfiguration captures the serve section of the configuration file.
type CommandConfiguration struct {
	Address string `mapstructure:"address"`
}

// DefaultCommandConfiguration returns baseline serve settings.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{Address: DefaultAddress}
}

// Sanitize trims the address and restores the default when it is empty.
func (configuration CommandConfiguration) Sanitize() CommandConfiguration {
	sanitized := configuration
	sanitized.Address = strings.TrimSpace(configuration.Address)
	if len(sanitized.Address) == 0 {
		sanitized.Address = DefaultAddress
	}
	return sanitized
}
