package scraper

import (
	"errors"
	"fmt"
)

const (
	transportErrorStatusTemplateConstant = "request to %s failed with status %d"
	transportErrorCauseTemplateConstant  = "request to %s failed: %v"
	parseErrorTemplateConstant           = "%s row is missing %s"
	httpClientMissingMessageConstant     = "http client not configured"
	extractorMissingMessageConstant      = "row extractor not configured"
)

var (
	// ErrHTTPClientNotConfigured indicates the client was constructed without an HTTP client.
	ErrHTTPClientNotConfigured = errors.New(httpClientMissingMessageConstant)
	// ErrRowExtractorNotConfigured indicates the client was constructed without a row extractor.
	ErrRowExtractorNotConfigured = errors.New(extractorMissingMessageConstant)
)

// TransportError reports an HTTP failure, timeout, or non-2xx response for a single listing request.
type TransportError struct {
	URL        string
	StatusCode int
	Cause      error
}

// Error describes the transport failure.
func (transportError TransportError) Error() string {
	if transportError.Cause != nil {
		return fmt.Sprintf(transportErrorCauseTemplateConstant, transportError.URL, transportError.Cause)
	}
	return fmt.Sprintf(transportErrorStatusTemplateConstant, transportError.URL, transportError.StatusCode)
}

// Unwrap exposes the underlying cause.
func (transportError TransportError) Unwrap() error {
	return transportError.Cause
}

// ParseError reports a listing row that lacks an expected field.
type ParseError struct {
	RowType string
	Field   string
}

// Error describes the missing field.
func (parseError ParseError) Error() string {
	return fmt.Sprintf(parseErrorTemplateConstant, parseError.RowType, parseError.Field)
}
