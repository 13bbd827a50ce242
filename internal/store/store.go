package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/worklog/internal/commits"
)

const (
	// DefaultRootDirectory is the default location of author snapshots.
	DefaultRootDirectory = "~/.worklog/authors"

	authorFileExtensionConstant        = ".json"
	temporaryFilePatternConstant       = ".%s-*.tmp"
	jsonIndentConstant                 = "  "
	directoryPermissionsConstant       = 0o755
	filePermissionsConstant            = 0o644
	storageErrorTemplateConstant       = "%s author %q: %v"
	operationLoadConstant              = "load"
	operationSaveConstant              = "save"
	logFieldAuthorConstant             = "author"
	logFieldPathConstant               = "path"
	logFieldCommitCountConstant        = "commit_count"
	unsafeAuthorSkippedMessageConstant = "author skipped: name cannot be used as a storage key"
	authorSavedMessageConstant         = "author snapshot saved"
	rootRequiredMessageConstant        = "store root directory required"
)

// ErrStoreRootRequired indicates the store was constructed without a root directory.
var ErrStoreRootRequired = errors.New(rootRequiredMessageConstant)

// StorageError reports an unreadable, corrupt, or unwritable author snapshot.
type StorageError struct {
	Operation string
	Author    string
	Cause     error
}

// Error describes the storage failure.
func (storageError StorageError) Error() string {
	return fmt.Sprintf(storageErrorTemplateConstant, storageError.Operation, storageError.Author, storageError.Cause)
}

// Unwrap exposes the underlying cause.
func (storageError StorageError) Unwrap() error {
	return storageError.Cause
}

// AuthorStore persists commits keyed by author.
type AuthorStore interface {
	Save(repositoryCommits commits.RepositoryCommits) (SaveSummary, error)
	Load(author string) ([]commits.Commit, error)
}

// SaveSummary reports what a Save call wrote.
type SaveSummary struct {
	AuthorsWritten []string
	AuthorsSkipped []string
}

// JSONAuthorStore writes one {author}.json array per author beneath a root directory.
type JSONAuthorStore struct {
	rootDirectory string
	logger        *zap.Logger
}

// NewJSONAuthorStore constructs a JSONAuthorStore rooted at rootDirectory.
func NewJSONAuthorStore(rootDirectory string, logger *zap.Logger) (*JSONAuthorStore, error) {
	trimmedRoot := strings.TrimSpace(rootDirectory)
	if len(trimmedRoot) == 0 {
		return nil, ErrStoreRootRequired
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &JSONAuthorStore{rootDirectory: filepath.Clean(trimmedRoot), logger: logger}, nil
}

// RootDirectory returns the directory holding author snapshots.
func (store *JSONAuthorStore) RootDirectory() string {
	return store.rootDirectory
}

// Save partitions commits by author and replaces each author's snapshot.
// Authors whose names cannot be used as file names are skipped and reported.
func (store *JSONAuthorStore) Save(repositoryCommits commits.RepositoryCommits) (SaveSummary, error) {
	summary := SaveSummary{}
	authorCommits := repositoryCommits.PartitionByAuthor()

	authors := make([]string, 0, len(authorCommits))
	for author := range authorCommits {
		authors = append(authors, author)
	}
	sort.Strings(authors)

	if len(authors) > 0 {
		if directoryError := os.MkdirAll(store.rootDirectory, directoryPermissionsConstant); directoryError != nil {
			return summary, StorageError{Operation: operationSaveConstant, Cause: directoryError}
		}
	}

	for _, author := range authors {
		if !commits.IsSafeAuthorKey(author) {
			store.logger.Warn(unsafeAuthorSkippedMessageConstant, zap.String(logFieldAuthorConstant, author))
			summary.AuthorsSkipped = append(summary.AuthorsSkipped, author)
			continue
		}

		authorPath := store.authorPath(author)
		if writeError := writeSnapshot(store.rootDirectory, authorPath, authorCommits[author]); writeError != nil {
			return summary, StorageError{Operation: operationSaveConstant, Author: author, Cause: writeError}
		}

		store.logger.Debug(
			authorSavedMessageConstant,
			zap.String(logFieldAuthorConstant, author),
			zap.String(logFieldPathConstant, authorPath),
			zap.Int(logFieldCommitCountConstant, len(authorCommits[author])),
		)
		summary.AuthorsWritten = append(summary.AuthorsWritten, author)
	}

	return summary, nil
}

// Load returns the author's stored commits, or an empty sequence when no snapshot exists.
func (store *JSONAuthorStore) Load(author string) ([]commits.Commit, error) {
	if !commits.IsSafeAuthorKey(author) {
		return []commits.Commit{}, nil
	}

	content, readError := os.ReadFile(store.authorPath(author))
	if readError != nil {
		if errors.Is(readError, fs.ErrNotExist) {
			return []commits.Commit{}, nil
		}
		return []commits.Commit{}, StorageError{Operation: operationLoadConstant, Author: author, Cause: readError}
	}

	var storedCommits []commits.Commit
	if decodeError := json.Unmarshal(content, &storedCommits); decodeError != nil {
		return []commits.Commit{}, StorageError{Operation: operationLoadConstant, Author: author, Cause: decodeError}
	}
	if storedCommits == nil {
		storedCommits = []commits.Commit{}
	}
	return storedCommits, nil
}

func (store *JSONAuthorStore) authorPath(author string) string {
	return filepath.Join(store.rootDirectory, strings.TrimSpace(author)+authorFileExtensionConstant)
}

func writeSnapshot(directory string, targetPath string, authorCommits []commits.Commit) error {
	encoded, encodeError := json.MarshalIndent(authorCommits, "", jsonIndentConstant)
	if encodeError != nil {
		return encodeError
	}

	temporaryFile, createError := os.CreateTemp(directory, fmt.Sprintf(temporaryFilePatternConstant, filepath.Base(targetPath)))
	if createError != nil {
		return createError
	}
	temporaryPath := temporaryFile.Name()

	if _, writeError := temporaryFile.Write(encoded); writeError != nil {
		_ = temporaryFile.Close()
		_ = os.Remove(temporaryPath)
		return writeError
	}
	if closeError := temporaryFile.Close(); closeError != nil {
		_ = os.Remove(temporaryPath)
		return closeError
	}
	if chmodError := os.Chmod(temporaryPath, filePermissionsConstant); chmodError != nil {
		_ = os.Remove(temporaryPath)
		return chmodError
	}
	if renameError := os.Rename(temporaryPath, targetPath); renameError != nil {
		_ = os.Remove(temporaryPath)
		return renameError
	}
	return nil
}
