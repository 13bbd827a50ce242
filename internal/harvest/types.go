package harvest

import (
	"context"
	"fmt"

	"github.com/temirov/worklog/internal/commits"
)

const (
	unitFailureTemplateConstant        = "scan of %s failed: %v"
	enumerationFailureTemplateConstant = "enumeration of %s failed: %v"
	scanUnitLabelTemplateConstant      = "%s/%s@%s"
	enumerationLabelTemplateConstant   = "%s/%s"
)

// ListingSource exposes the listing operations the harvester needs from a git web front-end.
type ListingSource interface {
	ListRepositories(executionContext context.Context, host string) ([]string, error)
	ListBranches(executionContext context.Context, host string, repository string) ([]string, error)
	ScanBranch(executionContext context.Context, host string, repository string, branchReference string) ([]commits.Commit, error)
}

// ProgressObserver receives harvest lifecycle notifications.
type ProgressObserver interface {
	HarvestStarted(runIdentifier string, totalUnits int)
	UnitCompleted(runIdentifier string, unit ScanUnit, commitCount int, completedUnits int, totalUnits int)
	UnitFailed(runIdentifier string, failure UnitFailure, completedUnits int, totalUnits int)
	HarvestFinished(runIdentifier string, result Result)
}

// ScanUnit identifies one independently paginated branch scan.
type ScanUnit struct {
	Host       string
	Repository string
	Branch     string
}

// String renders the unit as host/repository@branch.
func (unit ScanUnit) String() string {
	return fmt.Sprintf(scanUnitLabelTemplateConstant, unit.Host, unit.Repository, unit.Branch)
}

// UnitFailure records a scan unit that contributed no commits because it failed.
type UnitFailure struct {
	Unit  ScanUnit
	Cause error
}

// Error describes the failed unit.
func (failure UnitFailure) Error() string {
	return fmt.Sprintf(unitFailureTemplateConstant, failure.Unit, failure.Cause)
}

// Unwrap exposes the underlying cause.
func (failure UnitFailure) Unwrap() error {
	return failure.Cause
}

// EnumerationFailure records a host or repository whose listing could not be retrieved.
type EnumerationFailure struct {
	Host       string
	Repository string
	Cause      error
}

// Error describes the failed enumeration.
func (failure EnumerationFailure) Error() string {
	target := failure.Host
	if len(failure.Repository) > 0 {
		target = fmt.Sprintf(enumerationLabelTemplateConstant, failure.Host, failure.Repository)
	}
	return fmt.Sprintf(enumerationFailureTemplateConstant, target, failure.Cause)
}

// Unwrap exposes the underlying cause.
func (failure EnumerationFailure) Unwrap() error {
	return failure.Cause
}

// Result is the outcome of one harvest run.
type Result struct {
	RunIdentifier       string
	Commits             commits.RepositoryCommits
	TotalUnits          int
	CompletedUnits      int
	UnitFailures        []UnitFailure
	EnumerationFailures []EnumerationFailure
}
