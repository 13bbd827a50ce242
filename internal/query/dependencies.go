package query

import (
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/worklog/internal/store"
	pathutils "github.com/temirov/worklog/internal/utils/path"
)

// ResolveHistoryLoader returns the provided loader or opens the JSON author store at the configured root.
func ResolveHistoryLoader(existing HistoryLoader, rootDirectory string, homeExpander *pathutils.HomeExpander, logger *zap.Logger) (HistoryLoader, error) {
	if existing != nil {
		return existing, nil
	}

	trimmedRoot := strings.TrimSpace(rootDirectory)
	if len(trimmedRoot) == 0 {
		trimmedRoot = store.DefaultRootDirectory
	}
	if homeExpander == nil {
		homeExpander = pathutils.NewHomeExpander()
	}

	authorStore, storeError := store.NewJSONAuthorStore(homeExpander.Expand(trimmedRoot), logger)
	if storeError != nil {
		return nil, storeError
	}
	return authorStore, nil
}
