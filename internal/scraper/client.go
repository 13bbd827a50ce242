package scraper

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/temirov/worklog/internal/commits"
	"github.com/temirov/worklog/internal/dates"
)

const (
	// DefaultUserAgent is sent with every listing request.
	DefaultUserAgent = "Mozilla/5.0"
	// DefaultRequestTimeout bounds each listing request.
	DefaultRequestTimeout = 10 * time.Second
	// DefaultPageDelay separates consecutive page requests on the same branch.
	DefaultPageDelay = 500 * time.Millisecond

	userAgentHeaderNameConstant          = "User-Agent"
	defaultSchemePrefixConstant          = "http://"
	schemeSeparatorConstant              = "://"
	pathSeparatorConstant                = "/"
	parentDirectoryPrefixConstant        = "../"
	repositoriesPathConstant             = "/repositories"
	branchesPathTemplateConstant         = "/branches/%s.git"
	commitPageTemplateConstant           = "%s/%s?pg=%s"
	firstPageNumberConstant              = 1
	successStatusLowerBoundConstant      = 200
	successStatusUpperBoundConstant      = 300
	logFieldURLConstant                  = "url"
	logFieldHostConstant                 = "host"
	logFieldRepositoryConstant           = "repository"
	logFieldBranchConstant               = "branch"
	logFieldPageConstant                 = "page"
	logFieldCommitCountConstant          = "commit_count"
	logFieldDateLabelConstant            = "date_label"
	pageFetchedMessageConstant           = "commit page fetched"
	pageStoppedMessageConstant           = "commit page reached recency cutoff"
	pageUnparseableMessageConstant       = "commit page could not be parsed; treating as empty"
	dateLabelUnrecognizedMessageConstant = "commit date label could not be normalized"
)

// HTTPClient issues HTTP requests.
type HTTPClient interface {
	Do(request *http.Request) (*http.Response, error)
}

// Configuration controls request headers, timeouts, pacing, and the recency window.
type Configuration struct {
	UserAgent         string
	RequestTimeout    time.Duration
	PageDelay         time.Duration
	RecencyWindowDays int
}

// DefaultConfiguration returns the request settings used against production front-ends.
func DefaultConfiguration() Configuration {
	return Configuration{
		UserAgent:         DefaultUserAgent,
		RequestTimeout:    DefaultRequestTimeout,
		PageDelay:         DefaultPageDelay,
		RecencyWindowDays: dates.DefaultRecencyWindowDays,
	}
}

func (configuration Configuration) sanitize() Configuration {
	sanitized := configuration
	sanitized.UserAgent = strings.TrimSpace(configuration.UserAgent)
	if len(sanitized.UserAgent) == 0 {
		sanitized.UserAgent = DefaultUserAgent
	}
	if sanitized.RequestTimeout <= 0 {
		sanitized.RequestTimeout = DefaultRequestTimeout
	}
	if sanitized.PageDelay < 0 {
		sanitized.PageDelay = 0
	}
	if sanitized.RecencyWindowDays <= 0 {
		sanitized.RecencyWindowDays = dates.DefaultRecencyWindowDays
	}
	return sanitized
}

// Dependencies lists the collaborators required by Client.
type Dependencies struct {
	HTTPClient HTTPClient
	Extractor  RowExtractor
	Clock      dates.Clock
	Logger     *zap.Logger
}

// CommitPage is the outcome of scanning one commit listing page.
type CommitPage struct {
	Commits []commits.Commit
	// Stopped is set when a row outside the recency window ended the scan.
	Stopped bool
}

// Client fetches listing pages from git web front-ends.
type Client struct {
	httpClient    HTTPClient
	extractor     RowExtractor
	clock         dates.Clock
	logger        *zap.Logger
	configuration Configuration
	window        dates.RecencyWindow
}

// NewClient validates dependencies and constructs a Client.
func NewClient(dependencies Dependencies, configuration Configuration) (*Client, error) {
	if dependencies.HTTPClient == nil {
		return nil, ErrHTTPClientNotConfigured
	}
	if dependencies.Extractor == nil {
		return nil, ErrRowExtractorNotConfigured
	}

	logger := dependencies.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	sanitizedConfiguration := configuration.sanitize()

	return &Client{
		httpClient:    dependencies.HTTPClient,
		extractor:     dependencies.Extractor,
		clock:         dates.ResolveClock(dependencies.Clock),
		logger:        logger,
		configuration: sanitizedConfiguration,
		window:        dates.NewRecencyWindow(sanitizedConfiguration.RecencyWindowDays),
	}, nil
}

// ListRepositories returns the repository names listed by the host.
func (client *Client) ListRepositories(executionContext context.Context, host string) ([]string, error) {
	listingURL := BaseURL(host) + repositoriesPathConstant
	document, fetchError := client.fetch(executionContext, listingURL)
	if fetchError != nil {
		return nil, fetchError
	}
	return client.extractor.ExtractRepositories(strings.NewReader(document))
}

// ListBranches returns the branch link targets listed for the repository.
func (client *Client) ListBranches(executionContext context.Context, host string, repository string) ([]string, error) {
	listingURL := BaseURL(host) + fmt.Sprintf(branchesPathTemplateConstant, repository)
	document, fetchError := client.fetch(executionContext, listingURL)
	if fetchError != nil {
		return nil, fetchError
	}
	return client.extractor.ExtractBranches(strings.NewReader(document))
}

// ListCommitPage fetches one commit listing page and keeps the rows inside the recency window.
// Merge commits are dropped. The first row outside the window ends the page and marks it stopped.
func (client *Client) ListCommitPage(executionContext context.Context, host string, repository string, branchReference string, pageNumber int) (CommitPage, error) {
	pageURL := CommitPageURL(host, branchReference, pageNumber)
	document, fetchError := client.fetch(executionContext, pageURL)
	if fetchError != nil {
		return CommitPage{}, fetchError
	}

	commitRows, extractionError := client.extractor.ExtractCommitRows(strings.NewReader(document))
	if extractionError != nil {
		client.logger.Warn(
			pageUnparseableMessageConstant,
			zap.String(logFieldURLConstant, pageURL),
			zap.Error(extractionError),
		)
		return CommitPage{}, nil
	}

	referenceTime := client.clock.Now()
	page := CommitPage{}
	for _, commitRow := range commitRows {
		if !client.window.Admits(commitRow.DateLabel, referenceTime) {
			page.Stopped = true
			client.logger.Debug(
				pageStoppedMessageConstant,
				zap.String(logFieldURLConstant, pageURL),
				zap.String(logFieldDateLabelConstant, commitRow.DateLabel),
			)
			break
		}

		if commits.IsMergeMessage(commitRow.Message) {
			continue
		}

		normalizedDate := dates.Normalize(commitRow.DateLabel, referenceTime)
		if !dates.IsCanonical(normalizedDate) {
			client.logger.Warn(
				dateLabelUnrecognizedMessageConstant,
				zap.String(logFieldURLConstant, pageURL),
				zap.String(logFieldDateLabelConstant, commitRow.DateLabel),
			)
		}

		page.Commits = append(page.Commits, commits.Commit{
			Date:       normalizedDate,
			Author:     commitRow.Author,
			Message:    commitRow.Message,
			Repository: repository,
		})
	}

	return page, nil
}

// ScanBranch walks the commit pages of a branch sequentially until a page yields no rows or reaches the recency cutoff.
func (client *Client) ScanBranch(executionContext context.Context, host string, repository string, branchReference string) ([]commits.Commit, error) {
	var branchCommits []commits.Commit
	for pageNumber := firstPageNumberConstant; ; pageNumber++ {
		page, pageError := client.ListCommitPage(executionContext, host, repository, branchReference, pageNumber)
		if pageError != nil {
			return nil, pageError
		}

		client.logger.Debug(
			pageFetchedMessageConstant,
			zap.String(logFieldHostConstant, host),
			zap.String(logFieldRepositoryConstant, repository),
			zap.String(logFieldBranchConstant, branchReference),
			zap.Int(logFieldPageConstant, pageNumber),
			zap.Int(logFieldCommitCountConstant, len(page.Commits)),
		)

		branchCommits = append(branchCommits, page.Commits...)
		if page.Stopped || len(page.Commits) == 0 {
			return branchCommits, nil
		}

		if waitError := client.waitBetweenPages(executionContext); waitError != nil {
			return nil, waitError
		}
	}
}

func (client *Client) waitBetweenPages(executionContext context.Context) error {
	if client.configuration.PageDelay <= 0 {
		return executionContext.Err()
	}
	timer := time.NewTimer(client.configuration.PageDelay)
	defer timer.Stop()
	select {
	case <-executionContext.Done():
		return executionContext.Err()
	case <-timer.C:
		return nil
	}
}

func (client *Client) fetch(executionContext context.Context, requestURL string) (string, error) {
	requestContext, cancel := context.WithTimeout(executionContext, client.configuration.RequestTimeout)
	defer cancel()

	request, requestError := http.NewRequestWithContext(requestContext, http.MethodGet, requestURL, nil)
	if requestError != nil {
		return "", TransportError{URL: requestURL, Cause: requestError}
	}
	request.Header.Set(userAgentHeaderNameConstant, client.configuration.UserAgent)

	response, responseError := client.httpClient.Do(request)
	if responseError != nil {
		return "", TransportError{URL: requestURL, Cause: responseError}
	}
	defer response.Body.Close()

	if response.StatusCode < successStatusLowerBoundConstant || response.StatusCode >= successStatusUpperBoundConstant {
		_, _ = io.Copy(io.Discard, response.Body)
		return "", TransportError{URL: requestURL, StatusCode: response.StatusCode}
	}

	body, readError := io.ReadAll(response.Body)
	if readError != nil {
		return "", TransportError{URL: requestURL, StatusCode: response.StatusCode, Cause: readError}
	}
	return string(body), nil
}

// BaseURL resolves a configured host into a base URL, defaulting to plain HTTP.
func BaseURL(host string) string {
	trimmedHost := strings.TrimRight(strings.TrimSpace(host), pathSeparatorConstant)
	if strings.Contains(trimmedHost, schemeSeparatorConstant) {
		return trimmedHost
	}
	return defaultSchemePrefixConstant + trimmedHost
}

// CommitPageURL builds the listing URL for one page of a branch's commits.
func CommitPageURL(host string, branchReference string, pageNumber int) string {
	branchPath := strings.ReplaceAll(branchReference, parentDirectoryPrefixConstant, "")
	branchPath = strings.TrimLeft(branchPath, pathSeparatorConstant)
	return fmt.Sprintf(commitPageTemplateConstant, BaseURL(host), branchPath, strconv.Itoa(pageNumber))
}
