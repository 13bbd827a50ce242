package ui

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/worklog/internal/harvest"
)

const (
	harvestStartedMessageTemplateConstant  = "Harvesting %d branches"
	unitCompletedMessageTemplateConstant   = "[%d/%d] %s: %d commits"
	unitFailedMessageTemplateConstant      = "[%d/%d] %s failed: %s"
	harvestFinishedMessageTemplateConstant = "Harvest finished: %d commits across %d repositories"
	failureCountSuffixTemplateConstant     = " (%d branches failed)"
	enumerationSuffixTemplateConstant      = " (%d listings unavailable)"
	unknownFailureMessageConstant          = "unknown error"
	emptyStringConstant                    = ""
)

// ProgressEventFormatter builds human-readable messages for harvest progress events.
type ProgressEventFormatter struct{}

// BuildStartedMessage formats the message announcing the number of scheduled branches.
func (formatter ProgressEventFormatter) BuildStartedMessage(totalUnits int) string {
	return fmt.Sprintf(harvestStartedMessageTemplateConstant, totalUnits)
}

// BuildCompletedMessage formats the message describing a finished branch scan.
func (formatter ProgressEventFormatter) BuildCompletedMessage(unit harvest.ScanUnit, commitCount int, completedUnits int, totalUnits int) string {
	return fmt.Sprintf(unitCompletedMessageTemplateConstant, completedUnits, totalUnits, unit, commitCount)
}

// BuildFailureMessage formats the message describing a failed branch scan.
func (formatter ProgressEventFormatter) BuildFailureMessage(failure harvest.UnitFailure, completedUnits int, totalUnits int) string {
	failureMessage := unknownFailureMessageConstant
	if failure.Cause != nil {
		failureMessage = strings.TrimSpace(failure.Cause.Error())
	}
	return fmt.Sprintf(unitFailedMessageTemplateConstant, completedUnits, totalUnits, failure.Unit, failureMessage)
}

// BuildFinishedMessage formats the closing summary of a harvest run.
func (formatter ProgressEventFormatter) BuildFinishedMessage(result harvest.Result) string {
	message := fmt.Sprintf(harvestFinishedMessageTemplateConstant, result.Commits.CommitCount(), len(result.Commits))
	return message + formatter.formatFailureSuffix(result)
}

func (formatter ProgressEventFormatter) formatFailureSuffix(result harvest.Result) string {
	suffix := emptyStringConstant
	if len(result.UnitFailures) > 0 {
		suffix += fmt.Sprintf(failureCountSuffixTemplateConstant, len(result.UnitFailures))
	}
	if len(result.EnumerationFailures) > 0 {
		suffix += fmt.Sprintf(enumerationSuffixTemplateConstant, len(result.EnumerationFailures))
	}
	return suffix
}

// ConsoleProgressLogger renders harvest progress using a zap logger configured for human-readable output.
type ConsoleProgressLogger struct {
	logger    *zap.Logger
	formatter ProgressEventFormatter
}

// NewConsoleProgressLogger constructs a console progress logger backed by the provided zap logger.
func NewConsoleProgressLogger(logger *zap.Logger) *ConsoleProgressLogger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ConsoleProgressLogger{logger: logger, formatter: ProgressEventFormatter{}}
}

// HarvestStarted implements harvest.ProgressObserver.
func (progressLogger *ConsoleProgressLogger) HarvestStarted(_ string, totalUnits int) {
	if progressLogger == nil {
		return
	}
	progressLogger.logger.Info(progressLogger.formatter.BuildStartedMessage(totalUnits))
}

// UnitCompleted implements harvest.ProgressObserver.
func (progressLogger *ConsoleProgressLogger) UnitCompleted(_ string, unit harvest.ScanUnit, commitCount int, completedUnits int, totalUnits int) {
	if progressLogger == nil {
		return
	}
	progressLogger.logger.Info(progressLogger.formatter.BuildCompletedMessage(unit, commitCount, completedUnits, totalUnits))
}

// UnitFailed implements harvest.ProgressObserver.
func (progressLogger *ConsoleProgressLogger) UnitFailed(_ string, failure harvest.UnitFailure, completedUnits int, totalUnits int) {
	if progressLogger == nil {
		return
	}
	progressLogger.logger.Warn(progressLogger.formatter.BuildFailureMessage(failure, completedUnits, totalUnits))
}

// HarvestFinished implements harvest.ProgressObserver.
func (progressLogger *ConsoleProgressLogger) HarvestFinished(_ string, result harvest.Result) {
	if progressLogger == nil {
		return
	}
	progressLogger.logger.Info(progressLogger.formatter.BuildFinishedMessage(result))
}
