// Package cli constructs the worklog command-line interface, wiring the
// Cobra command hierarchy, configuration loader, and structured logging
// primitives for the harvest, week, task, summary, and serve commands.
package cli
