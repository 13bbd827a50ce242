// Package ui provides helpers for formatting human-readable console output.
//
// The helpers translate harvest progress events into concise messages so that
// long scans stay observable for CLI users while detailed telemetry continues
// to flow through structured loggers.
package ui
