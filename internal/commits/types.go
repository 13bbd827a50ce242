package commits

import (
	"sort"
	"strings"
)

const (
	mergeBranchMessagePrefixConstant = "Merge branch"
	forwardSlashSeparatorConstant    = "/"
	backwardSlashSeparatorConstant   = "\\"
	parentDirectoryReferenceConstant = ".."
)

// Commit is a single harvested commit row. Date holds the canonical form produced by the date normalizer.
type Commit struct {
	Date       string `json:"date"`
	Author     string `json:"author"`
	Message    string `json:"message"`
	Repository string `json:"repository"`
}

// RepositoryCommits maps repository names to the commits harvested for them.
type RepositoryCommits map[string][]Commit

// IsMergeMessage reports whether the commit message belongs to an automatic branch merge.
func IsMergeMessage(message string) bool {
	return strings.HasPrefix(message, mergeBranchMessagePrefixConstant)
}

// IsSafeAuthorKey reports whether the author name can be used as a storage key without escaping its directory.
func IsSafeAuthorKey(author string) bool {
	trimmedAuthor := strings.TrimSpace(author)
	if len(trimmedAuthor) == 0 {
		return false
	}
	if strings.Contains(trimmedAuthor, forwardSlashSeparatorConstant) || strings.Contains(trimmedAuthor, backwardSlashSeparatorConstant) {
		return false
	}
	return trimmedAuthor != parentDirectoryReferenceConstant
}

// PartitionByAuthor regroups repository commits by author, preserving repository order by name and commit order within each repository.
// Author names are trimmed so names differing only in surrounding whitespace share one partition.
func (repositoryCommits RepositoryCommits) PartitionByAuthor() map[string][]Commit {
	repositoryNames := make([]string, 0, len(repositoryCommits))
	for repositoryName := range repositoryCommits {
		repositoryNames = append(repositoryNames, repositoryName)
	}
	sort.Strings(repositoryNames)

	authorCommits := make(map[string][]Commit)
	for _, repositoryName := range repositoryNames {
		for _, commit := range repositoryCommits[repositoryName] {
			commit.Author = strings.TrimSpace(commit.Author)
			authorCommits[commit.Author] = append(authorCommits[commit.Author], commit)
		}
	}
	return authorCommits
}

// CommitCount returns the total number of commits across repositories.
func (repositoryCommits RepositoryCommits) CommitCount() int {
	total := 0
	for _, repositoryCommitList := range repositoryCommits {
		total += len(repositoryCommitList)
	}
	return total
}
