package store_test

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/temirov/worklog/internal/commits"
	"github.com/temirov/worklog/internal/store"
)

const (
	storeSubtestTemplateConstant = "%d_%s"
	aliceAuthorConstant          = "alice"
	bobAuthorConstant            = "bob"
)

func TestNewJSONAuthorStoreRequiresRoot(testInstance *testing.T) {
	_, creationError := store.NewJSONAuthorStore("  ", nil)
	require.ErrorIs(testInstance, creationError, store.ErrStoreRootRequired)
}

func TestJSONAuthorStoreSavePartitionsByAuthor(testInstance *testing.T) {
	rootDirectory := filepath.Join(testInstance.TempDir(), "authors")
	authorStore, creationError := store.NewJSONAuthorStore(rootDirectory, nil)
	require.NoError(testInstance, creationError)

	summary, saveError := authorStore.Save(commits.RepositoryCommits{
		"beta": {
			{Date: "2025-06-09", Author: aliceAuthorConstant, Message: "beta work", Repository: "beta"},
		},
		"alpha": {
			{Date: "2025-06-10", Author: aliceAuthorConstant, Message: "alpha work", Repository: "alpha"},
			{Date: "2025-06-10", Author: bobAuthorConstant, Message: "review", Repository: "alpha"},
		},
	})
	require.NoError(testInstance, saveError)
	require.Equal(testInstance, []string{aliceAuthorConstant, bobAuthorConstant}, summary.AuthorsWritten)
	require.Empty(testInstance, summary.AuthorsSkipped)

	aliceCommits, loadError := authorStore.Load(aliceAuthorConstant)
	require.NoError(testInstance, loadError)
	require.Equal(testInstance, []commits.Commit{
		{Date: "2025-06-10", Author: aliceAuthorConstant, Message: "alpha work", Repository: "alpha"},
		{Date: "2025-06-09", Author: aliceAuthorConstant, Message: "beta work", Repository: "beta"},
	}, aliceCommits)

	rawContent, readError := os.ReadFile(filepath.Join(rootDirectory, "bob.json"))
	require.NoError(testInstance, readError)
	var decoded []map[string]string
	require.NoError(testInstance, json.Unmarshal(rawContent, &decoded))
	require.Equal(testInstance, []map[string]string{
		{"date": "2025-06-10", "author": bobAuthorConstant, "message": "review", "repository": "alpha"},
	}, decoded)
}

func TestJSONAuthorStoreSaveReplacesSnapshots(testInstance *testing.T) {
	authorStore, creationError := store.NewJSONAuthorStore(testInstance.TempDir(), nil)
	require.NoError(testInstance, creationError)

	firstRun := commits.RepositoryCommits{
		"alpha": {{Date: "2025-06-01", Author: aliceAuthorConstant, Message: "old", Repository: "alpha"}},
	}
	secondRun := commits.RepositoryCommits{
		"alpha": {{Date: "2025-06-10", Author: aliceAuthorConstant, Message: "new", Repository: "alpha"}},
	}

	_, firstError := authorStore.Save(firstRun)
	require.NoError(testInstance, firstError)
	_, secondError := authorStore.Save(secondRun)
	require.NoError(testInstance, secondError)
	_, repeatError := authorStore.Save(secondRun)
	require.NoError(testInstance, repeatError)

	loaded, loadError := authorStore.Load(aliceAuthorConstant)
	require.NoError(testInstance, loadError)
	require.Equal(testInstance, secondRun["alpha"], loaded)

	entries, listError := os.ReadDir(authorStore.RootDirectory())
	require.NoError(testInstance, listError)
	require.Len(testInstance, entries, 1)
}

func TestJSONAuthorStoreSkipsUnsafeAuthors(testInstance *testing.T) {
	observedCore, observedLogs := observer.New(zapcore.WarnLevel)
	authorStore, creationError := store.NewJSONAuthorStore(testInstance.TempDir(), zap.New(observedCore))
	require.NoError(testInstance, creationError)

	summary, saveError := authorStore.Save(commits.RepositoryCommits{
		"alpha": {
			{Date: "2025-06-10", Author: `corp\alice`, Message: "one", Repository: "alpha"},
			{Date: "2025-06-10", Author: "../etc", Message: "two", Repository: "alpha"},
			{Date: "2025-06-10", Author: bobAuthorConstant, Message: "three", Repository: "alpha"},
		},
	})
	require.NoError(testInstance, saveError)
	require.Equal(testInstance, []string{bobAuthorConstant}, summary.AuthorsWritten)
	require.ElementsMatch(testInstance, []string{`corp\alice`, "../etc"}, summary.AuthorsSkipped)
	require.Equal(testInstance, 2, observedLogs.Len())

	entries, listError := os.ReadDir(authorStore.RootDirectory())
	require.NoError(testInstance, listError)
	require.Len(testInstance, entries, 1)
	require.Equal(testInstance, "bob.json", entries[0].Name())
}

func TestJSONAuthorStoreMergesAuthorsDifferingOnlyInWhitespace(testInstance *testing.T) {
	authorStore, creationError := store.NewJSONAuthorStore(testInstance.TempDir(), nil)
	require.NoError(testInstance, creationError)

	summary, saveError := authorStore.Save(commits.RepositoryCommits{
		"alpha": {
			{Date: "2025-06-10", Author: bobAuthorConstant, Message: "first", Repository: "alpha"},
		},
		"beta": {
			{Date: "2025-06-11", Author: bobAuthorConstant + " ", Message: "second", Repository: "beta"},
		},
	})
	require.NoError(testInstance, saveError)
	require.Equal(testInstance, []string{bobAuthorConstant}, summary.AuthorsWritten)

	bobCommits, loadError := authorStore.Load(bobAuthorConstant)
	require.NoError(testInstance, loadError)
	require.Equal(testInstance, []commits.Commit{
		{Date: "2025-06-10", Author: bobAuthorConstant, Message: "first", Repository: "alpha"},
		{Date: "2025-06-11", Author: bobAuthorConstant, Message: "second", Repository: "beta"},
	}, bobCommits)
}

func TestJSONAuthorStoreLoad(testInstance *testing.T) {
	rootDirectory := testInstance.TempDir()
	require.NoError(testInstance, os.WriteFile(filepath.Join(rootDirectory, "corrupt.json"), []byte("{not json"), 0o644))
	require.NoError(testInstance, os.WriteFile(filepath.Join(rootDirectory, "empty.json"), []byte("null"), 0o644))

	authorStore, creationError := store.NewJSONAuthorStore(rootDirectory, nil)
	require.NoError(testInstance, creationError)

	testCases := []struct {
		name              string
		author            string
		expectStorageFail bool
	}{
		{name: "missing_author", author: "nobody"},
		{name: "null_snapshot", author: "empty"},
		{name: "unsafe_author", author: "../escape"},
		{name: "corrupt_snapshot", author: "corrupt", expectStorageFail: true},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(testCase.name, func(subTest *testing.T) {
			loaded, loadError := authorStore.Load(testCase.author)
			require.NotNil(subTest, loaded, storeSubtestTemplateConstant, testCaseIndex, testCase.name)
			require.Empty(subTest, loaded)
			if !testCase.expectStorageFail {
				require.NoError(subTest, loadError)
				return
			}
			var storageError store.StorageError
			require.True(subTest, errors.As(loadError, &storageError))
			require.Equal(subTest, testCase.author, storageError.Author)
		})
	}
}
