package harvest

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/temirov/worklog/internal/commits"
)

const (
	listingSourceMissingMessageConstant        = "listing source not configured"
	logFieldRunIdentifierConstant              = "run_id"
	logFieldHostConstant                       = "host"
	logFieldRepositoryConstant                 = "repository"
	logFieldBranchConstant                     = "branch"
	logFieldCommitCountConstant                = "commit_count"
	logFieldTotalUnitsConstant                 = "total_units"
	repositoryEnumerationFailedMessageConstant = "repository listing failed; skipping host"
	branchEnumerationFailedMessageConstant     = "branch listing failed; skipping repository"
	unitFailedMessageConstant                  = "branch scan failed"
	unitCompletedMessageConstant               = "branch scan completed"
	harvestScheduledMessageConstant            = "harvest units scheduled"
	harvestInterruptedMessageConstant          = "harvest interrupted; keeping collected repositories"
)

// ErrListingSourceNotConfigured indicates the service was constructed without a listing source.
var ErrListingSourceNotConfigured = errors.New(listingSourceMissingMessageConstant)

// RunIdentifierGenerator produces identifiers correlating the log lines of one harvest run.
type RunIdentifierGenerator func() string

// Dependencies lists the collaborators required by Service.
type Dependencies struct {
	Source                 ListingSource
	Logger                 *zap.Logger
	ProgressObserver       ProgressObserver
	RunIdentifierGenerator RunIdentifierGenerator
}

// Service coordinates concurrent branch scans across hosts.
type Service struct {
	source                 ListingSource
	logger                 *zap.Logger
	progressObserver       ProgressObserver
	runIdentifierGenerator RunIdentifierGenerator
	concurrency            int
}

// NewService validates dependencies and constructs a Service scanning at most concurrency units at once.
func NewService(dependencies Dependencies, concurrency int) (*Service, error) {
	if dependencies.Source == nil {
		return nil, ErrListingSourceNotConfigured
	}

	logger := dependencies.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	runIdentifierGenerator := dependencies.RunIdentifierGenerator
	if runIdentifierGenerator == nil {
		runIdentifierGenerator = uuid.NewString
	}

	if concurrency <= 0 {
		concurrency = defaultConcurrencyConstant
	}

	return &Service{
		source:                 dependencies.Source,
		logger:                 logger,
		progressObserver:       dependencies.ProgressObserver,
		runIdentifierGenerator: runIdentifierGenerator,
		concurrency:            concurrency,
	}, nil
}

// Harvest enumerates every (host, repository, branch) unit and scans the units concurrently.
// Failed units are recorded and contribute no commits. When the context ends early the
// repositories collected so far are returned together with the context error.
func (service *Service) Harvest(executionContext context.Context, hosts []string) (Result, error) {
	runIdentifier := service.runIdentifierGenerator()
	runLogger := service.logger.With(zap.String(logFieldRunIdentifierConstant, runIdentifier))

	units, enumerationFailures := service.enumerateUnits(executionContext, runLogger, hosts)
	runLogger.Info(harvestScheduledMessageConstant, zap.Int(logFieldTotalUnitsConstant, len(units)))
	service.notifyStarted(runIdentifier, len(units))

	accumulator := newCollector(len(units))

	var scanGroup errgroup.Group
	scanGroup.SetLimit(service.concurrency)
	for _, unit := range units {
		if executionContext.Err() != nil {
			break
		}
		scanUnit := unit
		scanGroup.Go(func() error {
			service.scanUnit(executionContext, runLogger, runIdentifier, scanUnit, accumulator)
			return nil
		})
	}
	_ = scanGroup.Wait()

	result := accumulator.result(runIdentifier)
	result.EnumerationFailures = enumerationFailures
	service.notifyFinished(runIdentifier, result)

	if contextError := executionContext.Err(); contextError != nil {
		runLogger.Warn(harvestInterruptedMessageConstant, zap.Error(contextError))
		return result, contextError
	}
	return result, nil
}

func (service *Service) enumerateUnits(executionContext context.Context, logger *zap.Logger, hosts []string) ([]ScanUnit, []EnumerationFailure) {
	var units []ScanUnit
	var failures []EnumerationFailure
	for _, host := range hosts {
		if executionContext.Err() != nil {
			break
		}

		repositories, repositoriesError := service.source.ListRepositories(executionContext, host)
		if repositoriesError != nil {
			logger.Warn(repositoryEnumerationFailedMessageConstant, zap.String(logFieldHostConstant, host), zap.Error(repositoriesError))
			failures = append(failures, EnumerationFailure{Host: host, Cause: repositoriesError})
			continue
		}

		for _, repository := range repositories {
			if executionContext.Err() != nil {
				break
			}

			branches, branchesError := service.source.ListBranches(executionContext, host, repository)
			if branchesError != nil {
				logger.Warn(
					branchEnumerationFailedMessageConstant,
					zap.String(logFieldHostConstant, host),
					zap.String(logFieldRepositoryConstant, repository),
					zap.Error(branchesError),
				)
				failures = append(failures, EnumerationFailure{Host: host, Repository: repository, Cause: branchesError})
				continue
			}

			for _, branch := range branches {
				units = append(units, ScanUnit{Host: host, Repository: repository, Branch: branch})
			}
		}
	}
	return units, failures
}

func (service *Service) scanUnit(executionContext context.Context, logger *zap.Logger, runIdentifier string, unit ScanUnit, accumulator *collector) {
	unitLogger := logger.With(
		zap.String(logFieldHostConstant, unit.Host),
		zap.String(logFieldRepositoryConstant, unit.Repository),
		zap.String(logFieldBranchConstant, unit.Branch),
	)

	branchCommits, scanError := service.source.ScanBranch(executionContext, unit.Host, unit.Repository, unit.Branch)
	if scanError != nil {
		failure := UnitFailure{Unit: unit, Cause: scanError}
		completedUnits, totalUnits := accumulator.recordFailure(failure)
		unitLogger.Warn(unitFailedMessageConstant, zap.Error(scanError))
		if service.progressObserver != nil {
			service.progressObserver.UnitFailed(runIdentifier, failure, completedUnits, totalUnits)
		}
		return
	}

	completedUnits, totalUnits := accumulator.merge(branchCommits)
	unitLogger.Debug(unitCompletedMessageConstant, zap.Int(logFieldCommitCountConstant, len(branchCommits)))
	if service.progressObserver != nil {
		service.progressObserver.UnitCompleted(runIdentifier, unit, len(branchCommits), completedUnits, totalUnits)
	}
}

func (service *Service) notifyStarted(runIdentifier string, totalUnits int) {
	if service.progressObserver == nil {
		return
	}
	service.progressObserver.HarvestStarted(runIdentifier, totalUnits)
}

func (service *Service) notifyFinished(runIdentifier string, result Result) {
	if service.progressObserver == nil {
		return
	}
	service.progressObserver.HarvestFinished(runIdentifier, result)
}

// collector accumulates unit results from concurrent scans.
type collector struct {
	mutex          sync.Mutex
	commits        commits.RepositoryCommits
	failures       []UnitFailure
	completedUnits int
	totalUnits     int
}

func newCollector(totalUnits int) *collector {
	return &collector{commits: make(commits.RepositoryCommits), totalUnits: totalUnits}
}

// merge appends a unit's commits under the repository named by its first commit.
func (accumulator *collector) merge(branchCommits []commits.Commit) (int, int) {
	accumulator.mutex.Lock()
	defer accumulator.mutex.Unlock()

	accumulator.completedUnits++
	if len(branchCommits) > 0 {
		repository := branchCommits[0].Repository
		accumulator.commits[repository] = append(accumulator.commits[repository], branchCommits...)
	}
	return accumulator.completedUnits, accumulator.totalUnits
}

func (accumulator *collector) recordFailure(failure UnitFailure) (int, int) {
	accumulator.mutex.Lock()
	defer accumulator.mutex.Unlock()

	accumulator.completedUnits++
	accumulator.failures = append(accumulator.failures, failure)
	return accumulator.completedUnits, accumulator.totalUnits
}

func (accumulator *collector) result(runIdentifier string) Result {
	accumulator.mutex.Lock()
	defer accumulator.mutex.Unlock()

	collected := make(commits.RepositoryCommits, len(accumulator.commits))
	for repository, repositoryCommits := range accumulator.commits {
		collected[repository] = append([]commits.Commit(nil), repositoryCommits...)
	}

	return Result{
		RunIdentifier:  runIdentifier,
		Commits:        collected,
		TotalUnits:     accumulator.totalUnits,
		CompletedUnits: accumulator.completedUnits,
		UnitFailures:   append([]UnitFailure(nil), accumulator.failures...),
	}
}
