package harvest

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/worklog/internal/commits"
	"github.com/temirov/worklog/internal/dates"
	"github.com/temirov/worklog/internal/scraper"
	"github.com/temirov/worklog/internal/store"
	"github.com/temirov/worklog/internal/utils"
	pathutils "github.com/temirov/worklog/internal/utils/path"
)

const (
	commandUseConstant                 = "harvest"
	commandShortDescriptionConstant    = "Harvest recent commits from git web front-ends"
	commandLongDescriptionConstant     = "harvest scans every branch of every repository listed by the configured hosts, keeps commits from the recency window, and replaces each author's snapshot in the store."
	flagHostNameConstant               = "host"
	flagHostDescriptionConstant        = "Git web front-end to harvest (host[:port] or base URL); repeatable"
	flagConcurrencyNameConstant        = "concurrency"
	flagConcurrencyDescriptionConstant = "Maximum number of branches scanned at once"
	flagTimeoutNameConstant            = "timeout"
	flagTimeoutDescriptionConstant     = "Upper bound for the whole harvest; collected repositories are saved when it elapses"
	missingHostsMessageConstant        = "no hosts configured; specify --host or set harvest.hosts"
	unexpectedArgumentsMessageConstant = "harvest does not accept positional arguments"
	storeSaveErrorTemplateConstant     = "saving harvested commits failed: %w"
	harvestErrorTemplateConstant       = "harvest failed: %w"
	summaryTemplateConstant            = "Harvested %d commits across %d repositories from %d branches (%d failed) in %s; saved %d authors\n"
	interruptedSummaryTemplateConstant = "Harvest interrupted after %d of %d branches: %v\n"
	skippedAuthorsSummaryTemplateConst = "Skipped %d authors whose names cannot be stored\n"
	harvestInterruptedLogMessage       = "harvest ended early; partial results saved"
	elapsedRoundingConstant            = time.Millisecond
	harvestStartingLogMessage          = "harvest starting"
	logFieldHostsConstant              = "hosts"
	logFieldConcurrencyConstant        = "concurrency"
	logFieldConfigurationFileConstant  = "config_file"
)

var (
	errMissingHosts        = errors.New(missingHostsMessageConstant)
	errUnexpectedArguments = errors.New(unexpectedArgumentsMessageConstant)
)

// LoggerProvider supplies a zap logger instance.
type LoggerProvider func() *zap.Logger

// SnapshotWriter replaces author snapshots with freshly harvested commits.
type SnapshotWriter interface {
	Save(repositoryCommits commits.RepositoryCommits) (store.SaveSummary, error)
}

// CommandBuilder assembles the harvest cobra command.
type CommandBuilder struct {
	LoggerProvider        LoggerProvider
	ConfigurationProvider func() CommandConfiguration
	StoreRootProvider     func() string
	HTTPClient            scraper.HTTPClient
	Source                ListingSource
	Store                 SnapshotWriter
	ProgressObserver      ProgressObserver
	ProgressProvider      func() ProgressObserver
	Clock                 dates.Clock
	HomeExpander          *pathutils.HomeExpander
}

// Build constructs the harvest command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		RunE:  builder.run,
	}

	command.Flags().StringSlice(flagHostNameConstant, nil, flagHostDescriptionConstant)
	command.Flags().Int(flagConcurrencyNameConstant, 0, flagConcurrencyDescriptionConstant)
	command.Flags().Duration(flagTimeoutNameConstant, 0, flagTimeoutDescriptionConstant)

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	if len(arguments) > 0 {
		return errUnexpectedArguments
	}

	configuration := builder.resolveConfiguration(command)
	if len(configuration.Hosts) == 0 {
		return errMissingHosts
	}

	logger := builder.resolveLogger()
	source, sourceError := builder.resolveSource(logger, configuration)
	if sourceError != nil {
		return sourceError
	}

	snapshotWriter, storeError := builder.resolveStore(logger)
	if storeError != nil {
		return storeError
	}

	service, serviceError := NewService(Dependencies{
		Source:           source,
		Logger:           logger,
		ProgressObserver: builder.resolveProgressObserver(),
	}, configuration.Concurrency)
	if serviceError != nil {
		return serviceError
	}

	executionContext := command.Context()
	if executionContext == nil {
		executionContext = context.Background()
	}
	if configuration.Timeout > 0 {
		var cancel context.CancelFunc
		executionContext, cancel = context.WithTimeout(executionContext, configuration.Timeout)
		defer cancel()
	}

	configurationFilePath, _ := utils.NewCommandContextAccessor().ConfigurationFilePath(executionContext)
	logger.Info(
		harvestStartingLogMessage,
		zap.Strings(logFieldHostsConstant, configuration.Hosts),
		zap.Int(logFieldConcurrencyConstant, configuration.Concurrency),
		zap.String(logFieldConfigurationFileConstant, configurationFilePath),
	)

	startTime := time.Now()
	result, harvestError := service.Harvest(executionContext, configuration.Hosts)
	if harvestError != nil && !isInterruption(harvestError) {
		return fmt.Errorf(harvestErrorTemplateConstant, harvestError)
	}

	saveSummary, saveError := snapshotWriter.Save(result.Commits)
	if saveError != nil {
		return fmt.Errorf(storeSaveErrorTemplateConstant, saveError)
	}

	outputWriter := command.OutOrStdout()
	if harvestError != nil {
		logger.Warn(harvestInterruptedLogMessage, zap.Error(harvestError))
		fmt.Fprintf(outputWriter, interruptedSummaryTemplateConstant, result.CompletedUnits, result.TotalUnits, harvestError)
	}
	fmt.Fprintf(
		outputWriter,
		summaryTemplateConstant,
		result.Commits.CommitCount(),
		len(result.Commits),
		result.TotalUnits,
		len(result.UnitFailures),
		time.Since(startTime).Round(elapsedRoundingConstant),
		len(saveSummary.AuthorsWritten),
	)
	if len(saveSummary.AuthorsSkipped) > 0 {
		fmt.Fprintf(outputWriter, skippedAuthorsSummaryTemplateConst, len(saveSummary.AuthorsSkipped))
	}

	return nil
}

func (builder *CommandBuilder) resolveConfiguration(command *cobra.Command) CommandConfiguration {
	configuration := DefaultCommandConfiguration()
	if builder.ConfigurationProvider != nil {
		configuration = builder.ConfigurationProvider()
	}

	if command.Flags().Changed(flagHostNameConstant) {
		hostValues, _ := command.Flags().GetStringSlice(flagHostNameConstant)
		configuration.Hosts = hostValues
	}
	if command.Flags().Changed(flagConcurrencyNameConstant) {
		concurrencyValue, _ := command.Flags().GetInt(flagConcurrencyNameConstant)
		configuration.Concurrency = concurrencyValue
	}
	if command.Flags().Changed(flagTimeoutNameConstant) {
		timeoutValue, _ := command.Flags().GetDuration(flagTimeoutNameConstant)
		configuration.Timeout = timeoutValue
	}

	return configuration.Sanitize()
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}
	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

func (builder *CommandBuilder) resolveSource(logger *zap.Logger, configuration CommandConfiguration) (ListingSource, error) {
	if builder.Source != nil {
		return builder.Source, nil
	}

	httpClient := builder.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	client, clientError := scraper.NewClient(scraper.Dependencies{
		HTTPClient: httpClient,
		Extractor:  scraper.NewDocumentExtractor(scraper.DefaultSelectors()),
		Clock:      builder.Clock,
		Logger:     logger,
	}, configuration.ScraperConfiguration())
	if clientError != nil {
		return nil, clientError
	}
	return client, nil
}

func (builder *CommandBuilder) resolveStore(logger *zap.Logger) (SnapshotWriter, error) {
	if builder.Store != nil {
		return builder.Store, nil
	}

	rootDirectory := store.DefaultRootDirectory
	if builder.StoreRootProvider != nil {
		if configuredRoot := strings.TrimSpace(builder.StoreRootProvider()); len(configuredRoot) > 0 {
			rootDirectory = configuredRoot
		}
	}

	homeExpander := builder.HomeExpander
	if homeExpander == nil {
		homeExpander = pathutils.NewHomeExpander()
	}

	authorStore, storeError := store.NewJSONAuthorStore(homeExpander.Expand(rootDirectory), logger)
	if storeError != nil {
		return nil, storeError
	}
	return authorStore, nil
}

func isInterruption(harvestError error) bool {
	return errors.Is(harvestError, context.DeadlineExceeded) || errors.Is(harvestError, context.Canceled)
}

func (builder *CommandBuilder) resolveProgressObserver() ProgressObserver {
	if builder.ProgressObserver != nil {
		return builder.ProgressObserver
	}
	if builder.ProgressProvider != nil {
		return builder.ProgressProvider()
	}
	return nil
}
