// Package tasks projects commit histories into day-level tasks and ISO week task groups.
package tasks
