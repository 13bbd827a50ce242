package ui_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/temirov/worklog/internal/commits"
	"github.com/temirov/worklog/internal/harvest"
	"github.com/temirov/worklog/internal/ui"
)

const (
	testRunIdentifierConstant         = "run-42"
	testFailureReasonConstant         = "request to http://git/log failed with status 502"
	testStartedMessageExpectation     = "Harvesting 4 branches"
	testCompletedMessageExpectation   = "[1/4] git:9999/alpha@../log/alpha.git/refs!heads!main: 12 commits"
	testFailedMessageExpectation      = "[2/4] git:9999/alpha@../log/alpha.git/refs!heads!main failed: " + testFailureReasonConstant
	testFinishedMessageExpectation    = "Harvest finished: 2 commits across 1 repositories (1 branches failed)"
	testCleanFinishMessageExpectation = "Harvest finished: 0 commits across 0 repositories"
)

func TestConsoleProgressLoggerEmitsMessages(testInstance *testing.T) {
	unit := harvest.ScanUnit{Host: "git:9999", Repository: "alpha", Branch: "../log/alpha.git/refs!heads!main"}
	failure := harvest.UnitFailure{Unit: unit, Cause: errors.New(testFailureReasonConstant)}

	testCases := []struct {
		name            string
		invoke          func(logger *ui.ConsoleProgressLogger)
		expectedLevel   zapcore.Level
		expectedMessage string
	}{
		{
			name: "harvest_started",
			invoke: func(logger *ui.ConsoleProgressLogger) {
				logger.HarvestStarted(testRunIdentifierConstant, 4)
			},
			expectedLevel:   zapcore.InfoLevel,
			expectedMessage: testStartedMessageExpectation,
		},
		{
			name: "unit_completed",
			invoke: func(logger *ui.ConsoleProgressLogger) {
				logger.UnitCompleted(testRunIdentifierConstant, unit, 12, 1, 4)
			},
			expectedLevel:   zapcore.InfoLevel,
			expectedMessage: testCompletedMessageExpectation,
		},
		{
			name: "unit_failed",
			invoke: func(logger *ui.ConsoleProgressLogger) {
				logger.UnitFailed(testRunIdentifierConstant, failure, 2, 4)
			},
			expectedLevel:   zapcore.WarnLevel,
			expectedMessage: testFailedMessageExpectation,
		},
		{
			name: "harvest_finished_with_failures",
			invoke: func(logger *ui.ConsoleProgressLogger) {
				logger.HarvestFinished(testRunIdentifierConstant, harvest.Result{
					Commits: commits.RepositoryCommits{
						"alpha": {{Date: "2025-06-10", Author: "alice", Message: "one", Repository: "alpha"}, {Date: "2025-06-10", Author: "bob", Message: "two", Repository: "alpha"}},
					},
					UnitFailures: []harvest.UnitFailure{failure},
				})
			},
			expectedLevel:   zapcore.InfoLevel,
			expectedMessage: testFinishedMessageExpectation,
		},
		{
			name: "harvest_finished_clean",
			invoke: func(logger *ui.ConsoleProgressLogger) {
				logger.HarvestFinished(testRunIdentifierConstant, harvest.Result{})
			},
			expectedLevel:   zapcore.InfoLevel,
			expectedMessage: testCleanFinishMessageExpectation,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(subTest *testing.T) {
			observerCore, observedLogs := observer.New(zapcore.DebugLevel)
			progressLogger := ui.NewConsoleProgressLogger(zap.New(observerCore))

			testCase.invoke(progressLogger)

			entries := observedLogs.All()
			require.Len(subTest, entries, 1)
			require.Equal(subTest, testCase.expectedLevel, entries[0].Level)
			require.Equal(subTest, testCase.expectedMessage, entries[0].Message)
		})
	}
}

func TestNilConsoleProgressLoggerIsSafe(testInstance *testing.T) {
	var progressLogger *ui.ConsoleProgressLogger
	require.NotPanics(testInstance, func() {
		progressLogger.HarvestStarted(testRunIdentifierConstant, 1)
		progressLogger.HarvestFinished(testRunIdentifierConstant, harvest.Result{})
	})
}
