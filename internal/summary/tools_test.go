package summary_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/worklog/internal/summary"
	"github.com/temirov/worklog/internal/tasks"
)

const toolSubtestTemplateConstant = "%d_%s"

func TestToolDefinitionsExposeOnlyQueries(testInstance *testing.T) {
	definitions := summary.ToolDefinitions()
	require.Len(testInstance, definitions, 2)
	require.Equal(testInstance, summary.ToolNameGetTask, definitions[0].Name)
	require.Equal(testInstance, summary.ToolNameGetWeek, definitions[1].Name)
	require.Equal(testInstance, []string{"author", "week"}, definitions[0].Parameters["required"])
}

func TestToolExecutorExecute(testInstance *testing.T) {
	queries := &stubQueries{
		week: "2025-W32",
		groups: map[string][]tasks.TaskGroup{
			"alice@2025-W32": {{Week: "2025-W32", Tasks: []tasks.Task{{Date: "2025-08-05", Repository: "alpha", Tasks: []string{"fix bug"}}}}},
		},
	}
	executor := summary.NewToolExecutor(queries)

	testCases := []struct {
		name     string
		call     summary.ToolCall
		expected string
	}{
		{name: "get_week_current", call: summary.ToolCall{Name: summary.ToolNameGetWeek, Arguments: `{"offset":0}`}, expected: "2025-W32"},
		{name: "get_week_missing_arguments", call: summary.ToolCall{Name: summary.ToolNameGetWeek, Arguments: ""}, expected: "2025-W32"},
		{name: "get_week_previous", call: summary.ToolCall{Name: summary.ToolNameGetWeek, Arguments: `{"offset":1}`}, expected: "2025-W31"},
		{name: "get_week_negative", call: summary.ToolCall{Name: summary.ToolNameGetWeek, Arguments: `{"offset":-1}`}, expected: "offset must not be negative"},
		{
			name:     "get_task_with_tasks",
			call:     summary.ToolCall{Name: summary.ToolNameGetTask, Arguments: `{"author":"alice","week":"2025-W32"}`},
			expected: `[{"week":"2025-W32","tasks":[{"date":"2025-08-05","repository":"alpha","tasks":["fix bug"]}]}]`,
		},
		{name: "get_task_empty", call: summary.ToolCall{Name: summary.ToolNameGetTask, Arguments: `{"author":"bob","week":"2025-W32"}`}, expected: "[]"},
		{name: "get_task_missing_week", call: summary.ToolCall{Name: summary.ToolNameGetTask, Arguments: `{"author":"bob"}`}, expected: "get_task requires week"},
		{name: "unknown_tool", call: summary.ToolCall{Name: "read_file", Arguments: "{}"}, expected: `unknown tool "read_file"`},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(testCase.name, func(subTest *testing.T) {
			output, executionError := executor.Execute(testCase.call)
			require.NoError(subTest, executionError)
			require.Equal(subTest, testCase.expected, output, toolSubtestTemplateConstant, testCaseIndex, testCase.name)
		})
	}

	malformedOutput, malformedError := executor.Execute(summary.ToolCall{Name: summary.ToolNameGetTask, Arguments: "{"})
	require.NoError(testInstance, malformedError)
	require.Contains(testInstance, malformedOutput, "invalid arguments for get_task")
}
