package summary_test

import (
	"context"
	"sync"

	"github.com/temirov/worklog/internal/summary"
	"github.com/temirov/worklog/internal/tasks"
)

type scriptedGenerator struct {
	mutex          sync.Mutex
	outcomes       []summary.ResponseOutcome
	historyLengths []int
	instructions   []string
	toolNames      [][]string
}

func (generator *scriptedGenerator) GetResponse(_ context.Context, request summary.ResponseRequest) (summary.ResponseOutcome, error) {
	generator.mutex.Lock()
	defer generator.mutex.Unlock()

	generator.historyLengths = append(generator.historyLengths, len(request.History))
	generator.instructions = append(generator.instructions, request.Instructions)
	names := make([]string, 0, len(request.Tools))
	for _, tool := range request.Tools {
		names = append(names, tool.Name)
	}
	generator.toolNames = append(generator.toolNames, names)

	callIndex := len(generator.historyLengths) - 1
	if callIndex >= len(generator.outcomes) {
		return generator.outcomes[len(generator.outcomes)-1], nil
	}
	return generator.outcomes[callIndex], nil
}

type stubQueries struct {
	week        string
	groups      map[string][]tasks.TaskGroup
	taskLookups []string
}

func (queries *stubQueries) GetWeekIdentifier(offset int) string {
	if offset == 0 {
		return queries.week
	}
	return "2025-W31"
}

func (queries *stubQueries) GetTaskGroups(author string, weekIdentifier string) []tasks.TaskGroup {
	queries.taskLookups = append(queries.taskLookups, author+"@"+weekIdentifier)
	if groups, exists := queries.groups[author+"@"+weekIdentifier]; exists {
		return groups
	}
	return []tasks.TaskGroup{}
}
