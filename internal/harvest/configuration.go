package harvest

import (
	"strings"
	"time"

	"github.com/temirov/worklog/internal/dates"
	"github.com/temirov/worklog/internal/scraper"
)

const defaultConcurrencyConstant = 8

// CommandConfiguration captures the harvest section of the configuration file.
type CommandConfiguration struct {
	Hosts             []string      `mapstructure:"hosts"`
	Concurrency       int           `mapstructure:"concurrency"`
	PageDelay         time.Duration `mapstructure:"page_delay"`
	RequestTimeout    time.Duration `mapstructure:"request_timeout"`
	RecencyWindowDays int           `mapstructure:"recency_window_days"`
	UserAgent         string        `mapstructure:"user_agent"`
	Timeout           time.Duration `mapstructure:"timeout"`
}

// DefaultCommandConfiguration returns baseline harvest settings.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		Hosts:             nil,
		Concurrency:       defaultConcurrencyConstant,
		PageDelay:         scraper.DefaultPageDelay,
		RequestTimeout:    scraper.DefaultRequestTimeout,
		RecencyWindowDays: dates.DefaultRecencyWindowDays,
		UserAgent:         scraper.DefaultUserAgent,
		Timeout:           0,
	}
}

// Sanitize trims values and restores defaults for unset numeric settings.
func (configuration CommandConfiguration) Sanitize() CommandConfiguration {
	sanitized := configuration
	sanitized.Hosts = sanitizeHosts(configuration.Hosts)
	sanitized.UserAgent = strings.TrimSpace(configuration.UserAgent)
	if sanitized.Concurrency <= 0 {
		sanitized.Concurrency = defaultConcurrencyConstant
	}
	if sanitized.Timeout < 0 {
		sanitized.Timeout = 0
	}
	return sanitized
}

// ScraperConfiguration maps harvest settings onto the listing client's configuration.
func (configuration CommandConfiguration) ScraperConfiguration() scraper.Configuration {
	return scraper.Configuration{
		UserAgent:         configuration.UserAgent,
		RequestTimeout:    configuration.RequestTimeout,
		PageDelay:         configuration.PageDelay,
		RecencyWindowDays: configuration.RecencyWindowDays,
	}
}

func sanitizeHosts(rawHosts []string) []string {
	sanitized := make([]string, 0, len(rawHosts))
	seen := make(map[string]struct{}, len(rawHosts))
	for _, candidate := range rawHosts {
		trimmed := strings.TrimSpace(candidate)
		if len(trimmed) == 0 {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		sanitized = append(sanitized, trimmed)
	}
	return sanitized
}
