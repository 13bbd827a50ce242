package summary

import (
	"strings"

	"github.com/openai/openai-go"
)

const (
	// DefaultModel is the model asked when none is configured.
	DefaultModel = openai.ChatModelGPT4_1Mini
	// DefaultAPIKeyEnvironmentVariable names the variable holding the API key.
	DefaultAPIKeyEnvironmentVariable = "OPENAI_API_KEY"
)

// CommandConfiguration captures the summary section of the configuration file.
type CommandConfiguration struct {
	Model         string  `mapstructure:"model"`
	BaseURL       string  `mapstructure:"base_url"`
	APIKeyEnv     string  `mapstructure:"api_key_env"`
	Temperature   float64 `mapstructure:"temperature"`
	MaxToolRounds int     `mapstructure:"max_tool_rounds"`
	Style         string  `mapstructure:"style"`
}

// DefaultCommandConfiguration returns baseline summary settings.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		Model:         DefaultModel,
		BaseURL:       "",
		APIKeyEnv:     DefaultAPIKeyEnvironmentVariable,
		Temperature:   0,
		MaxToolRounds: DefaultMaxToolRounds,
		Style:         RenderStyleAuto,
	}
}

// Sanitize trims values and restores defaults for unset settings.
func (configuration CommandConfiguration) Sanitize() CommandConfiguration {
	sanitized := configuration
	sanitized.Model = strings.TrimSpace(configuration.Model)
	if len(sanitized.Model) == 0 {
		sanitized.Model = DefaultModel
	}
	sanitized.BaseURL = strings.TrimSpace(configuration.BaseURL)
	sanitized.APIKeyEnv = strings.TrimSpace(configuration.APIKeyEnv)
	if len(sanitized.APIKeyEnv) == 0 {
		sanitized.APIKeyEnv = DefaultAPIKeyEnvironmentVariable
	}
	if sanitized.Temperature < 0 {
		sanitized.Temperature = 0
	}
	if sanitized.MaxToolRounds <= 0 {
		sanitized.MaxToolRounds = DefaultMaxToolRounds
	}
	sanitized.Style = strings.TrimSpace(configuration.Style)
	if len(sanitized.Style) == 0 {
		sanitized.Style = RenderStyleAuto
	}
	return sanitized
}
