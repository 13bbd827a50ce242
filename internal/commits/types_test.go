package commits_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/worklog/internal/commits"
)

func TestIsMergeMessage(testInstance *testing.T) {
	testCases := []struct {
		name     string
		message  string
		expected bool
	}{
		{name: "merge_branch", message: "Merge branch 'x' into y", expected: true},
		{name: "regular_commit", message: "fix bug", expected: false},
		{name: "merge_mentioned_later", message: "fix Merge branch handling", expected: false},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			require.Equal(testInstance, testCase.expected, commits.IsMergeMessage(testCase.message))
		})
	}
}

func TestIsSafeAuthorKey(testInstance *testing.T) {
	testCases := []struct {
		name     string
		author   string
		expected bool
	}{
		{name: "plain_name", author: "Wang Qiang", expected: true},
		{name: "unicode_name", author: "王强", expected: true},
		{name: "backslash", author: `DOMAIN\user`, expected: false},
		{name: "forward_slash", author: "../etc/passwd", expected: false},
		{name: "parent_reference", author: "..", expected: false},
		{name: "blank", author: "   ", expected: false},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			require.Equal(testInstance, testCase.expected, commits.IsSafeAuthorKey(testCase.author))
		})
	}
}

func TestPartitionByAuthor(testInstance *testing.T) {
	repositoryCommits := commits.RepositoryCommits{
		"beta": {
			{Date: "2025-06-02", Author: "alice", Message: "beta work", Repository: "beta"},
		},
		"alpha": {
			{Date: "2025-06-03", Author: "alice", Message: "alpha work", Repository: "alpha"},
			{Date: "2025-06-03", Author: "bob", Message: "bob work", Repository: "alpha"},
		},
	}

	partitioned := repositoryCommits.PartitionByAuthor()

	require.Len(testInstance, partitioned, 2)
	require.Equal(testInstance, []string{"alpha work", "beta work"}, []string{partitioned["alice"][0].Message, partitioned["alice"][1].Message})
	require.Len(testInstance, partitioned["bob"], 1)
	require.Equal(testInstance, 3, repositoryCommits.CommitCount())
}

func TestPartitionByAuthorTrimsAuthorNames(testInstance *testing.T) {
	repositoryCommits := commits.RepositoryCommits{
		"alpha": {
			{Date: "2025-06-03", Author: "bob", Message: "first", Repository: "alpha"},
			{Date: "2025-06-04", Author: "bob ", Message: "second", Repository: "alpha"},
			{Date: "2025-06-05", Author: " bob", Message: "third", Repository: "alpha"},
		},
	}

	partitioned := repositoryCommits.PartitionByAuthor()

	require.Len(testInstance, partitioned, 1)
	require.Len(testInstance, partitioned["bob"], 3)
	for _, commit := range partitioned["bob"] {
		require.Equal(testInstance, "bob", commit.Author)
	}
	require.Equal(testInstance, "bob ", repositoryCommits["alpha"][1].Author)
}
