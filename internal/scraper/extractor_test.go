package scraper_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/worklog/internal/scraper"
)

func TestDocumentExtractorRepositories(testInstance *testing.T) {
	document, readError := os.ReadFile(filepath.Join("testdata", "repositories.html"))
	require.NoError(testInstance, readError)

	extractor := scraper.NewDocumentExtractor(scraper.DefaultSelectors())
	repositories, extractionError := extractor.ExtractRepositories(strings.NewReader(string(document)))
	require.NoError(testInstance, extractionError)
	require.Equal(testInstance, []string{"alpha", "beta"}, repositories)
}

func TestDocumentExtractorBranches(testInstance *testing.T) {
	document, readError := os.ReadFile(filepath.Join("testdata", "branches.html"))
	require.NoError(testInstance, readError)

	extractor := scraper.NewDocumentExtractor(scraper.DefaultSelectors())
	branches, extractionError := extractor.ExtractBranches(strings.NewReader(string(document)))
	require.NoError(testInstance, extractionError)
	require.Equal(testInstance, []string{"../log/alpha.git/refs!heads!main", "../log/alpha.git/refs!heads!feature"}, branches)
}

func TestDocumentExtractorCommitRows(testInstance *testing.T) {
	extractor := scraper.NewDocumentExtractor(scraper.DefaultSelectors())

	testInstance.Run("complete_rows", func(testInstance *testing.T) {
		page := renderCommitPage([]commitRowFixture{
			{dateLabel: "刚刚", author: "王强", message: "fix bug"},
			{dateLabel: "2025-06-01", author: "alice", message: "add test"},
		})

		rows, extractionError := extractor.ExtractCommitRows(strings.NewReader(page))
		require.NoError(testInstance, extractionError)
		require.Equal(testInstance, []scraper.CommitRow{
			{DateLabel: "刚刚", Author: "王强", Message: "fix bug"},
			{DateLabel: "2025-06-01", Author: "alice", Message: "add test"},
		}, rows)
	})

	testInstance.Run("missing_author", func(testInstance *testing.T) {
		page := renderCommitPage([]commitRowFixture{
			{dateLabel: "刚刚", author: "", message: "fix bug"},
		})

		rows, extractionError := extractor.ExtractCommitRows(strings.NewReader(page))
		require.Nil(testInstance, rows)
		var parseError scraper.ParseError
		require.ErrorAs(testInstance, extractionError, &parseError)
		require.Equal(testInstance, "author", parseError.Field)
	})

	testInstance.Run("no_rows", func(testInstance *testing.T) {
		rows, extractionError := extractor.ExtractCommitRows(strings.NewReader(renderCommitPage(nil)))
		require.NoError(testInstance, extractionError)
		require.Empty(testInstance, rows)
	})
}
