package scraper

import (
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const (
	commitRowTypeConstant         = "commit"
	dateFieldNameConstant         = "date"
	authorFieldNameConstant       = "author"
	messageFieldNameConstant      = "message"
	hrefAttributeNameConstant     = "href"
	defaultRepositoryRowSelector  = "body > div:nth-child(3) > div:nth-child(2) > table > tbody:nth-child(2) > tr"
	defaultRepositoryNameSelector = "td.left > span:nth-child(2) > a"
	defaultBranchLinkSelector     = "body > div:nth-child(4) > div > table > tbody > tr > td:nth-child(2) > span > a"
	defaultCommitRowSelector      = "body > div:nth-child(4) > div:nth-child(2) > table > tbody > tr.commit"
	defaultCommitDateSelector     = "td.date > span"
	defaultCommitMessageSelector  = "td.message.ellipsize table tr > td:nth-child(1) > span > a"
	defaultCommitAuthorSelector   = "td.hidden-phone.author > span > a"
)

// CommitRow carries the raw fields of one commit listing row.
type CommitRow struct {
	DateLabel string
	Author    string
	Message   string
}

// RowExtractor turns listing documents into rows, one method per listing type.
type RowExtractor interface {
	ExtractRepositories(document io.Reader) ([]string, error)
	ExtractBranches(document io.Reader) ([]string, error)
	ExtractCommitRows(document io.Reader) ([]CommitRow, error)
}

// Selectors holds the CSS selectors describing the listing markup.
type Selectors struct {
	RepositoryRow  string
	RepositoryName string
	BranchLink     string
	CommitRow      string
	CommitDate     string
	CommitMessage  string
	CommitAuthor   string
}

// DefaultSelectors describes the markup of the Gitblit-style front-ends the harvester targets.
func DefaultSelectors() Selectors {
	return Selectors{
		RepositoryRow:  defaultRepositoryRowSelector,
		RepositoryName: defaultRepositoryNameSelector,
		BranchLink:     defaultBranchLinkSelector,
		CommitRow:      defaultCommitRowSelector,
		CommitDate:     defaultCommitDateSelector,
		CommitMessage:  defaultCommitMessageSelector,
		CommitAuthor:   defaultCommitAuthorSelector,
	}
}

// DocumentExtractor implements RowExtractor with goquery.
type DocumentExtractor struct {
	selectors Selectors
}

// NewDocumentExtractor constructs an extractor using the provided selectors.
func NewDocumentExtractor(selectors Selectors) *DocumentExtractor {
	return &DocumentExtractor{selectors: selectors}
}

// ExtractRepositories returns repository names in listing order.
func (extractor *DocumentExtractor) ExtractRepositories(document io.Reader) ([]string, error) {
	parsedDocument, parseError := goquery.NewDocumentFromReader(document)
	if parseError != nil {
		return nil, parseError
	}

	var repositoryNames []string
	parsedDocument.Find(extractor.selectors.RepositoryRow).Each(func(_ int, row *goquery.Selection) {
		link := row.Find(extractor.selectors.RepositoryName).First()
		if link.Length() == 0 {
			return
		}
		repositoryName := strings.TrimSpace(link.Text())
		if len(repositoryName) == 0 {
			return
		}
		repositoryNames = append(repositoryNames, repositoryName)
	})
	return repositoryNames, nil
}

// ExtractBranches returns the branch link targets in listing order.
func (extractor *DocumentExtractor) ExtractBranches(document io.Reader) ([]string, error) {
	parsedDocument, parseError := goquery.NewDocumentFromReader(document)
	if parseError != nil {
		return nil, parseError
	}

	var branchReferences []string
	parsedDocument.Find(extractor.selectors.BranchLink).Each(func(_ int, link *goquery.Selection) {
		reference, exists := link.Attr(hrefAttributeNameConstant)
		if !exists || len(strings.TrimSpace(reference)) == 0 {
			return
		}
		branchReferences = append(branchReferences, strings.TrimSpace(reference))
	})
	return branchReferences, nil
}

// ExtractCommitRows returns the commit rows of a listing page, failing when any row lacks a field.
func (extractor *DocumentExtractor) ExtractCommitRows(document io.Reader) ([]CommitRow, error) {
	parsedDocument, parseError := goquery.NewDocumentFromReader(document)
	if parseError != nil {
		return nil, parseError
	}

	var commitRows []CommitRow
	var extractionError error
	parsedDocument.Find(extractor.selectors.CommitRow).EachWithBreak(func(_ int, row *goquery.Selection) bool {
		dateLabel, dateFound := firstText(row, extractor.selectors.CommitDate)
		if !dateFound {
			extractionError = ParseError{RowType: commitRowTypeConstant, Field: dateFieldNameConstant}
			return false
		}
		message, messageFound := firstText(row, extractor.selectors.CommitMessage)
		if !messageFound {
			extractionError = ParseError{RowType: commitRowTypeConstant, Field: messageFieldNameConstant}
			return false
		}
		author, authorFound := firstText(row, extractor.selectors.CommitAuthor)
		if !authorFound || len(author) == 0 {
			extractionError = ParseError{RowType: commitRowTypeConstant, Field: authorFieldNameConstant}
			return false
		}
		commitRows = append(commitRows, CommitRow{DateLabel: dateLabel, Author: author, Message: message})
		return true
	})
	if extractionError != nil {
		return nil, extractionError
	}
	return commitRows, nil
}

func firstText(row *goquery.Selection, selector string) (string, bool) {
	match := row.Find(selector).First()
	if match.Length() == 0 {
		return "", false
	}
	return strings.TrimSpace(match.Text()), true
}
