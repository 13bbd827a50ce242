package harvest_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/temirov/worklog/internal/commits"
	"github.com/temirov/worklog/internal/harvest"
)

var errListingUnavailable = errors.New("listing unavailable")

type fakeListingSource struct {
	repositoriesByHost   map[string][]string
	branchesByRepository map[string][]string
	commitsByBranch      map[string][]commits.Commit
	failingHosts         map[string]bool
	failingBranches      map[string]bool
	blockingBranches     map[string]bool
	scanDelay            time.Duration

	inFlight    atomic.Int32
	maxInFlight atomic.Int32
	scannedMu   sync.Mutex
	scanned     []string
}

func (source *fakeListingSource) ListRepositories(_ context.Context, host string) ([]string, error) {
	if source.failingHosts[host] {
		return nil, errListingUnavailable
	}
	return source.repositoriesByHost[host], nil
}

func (source *fakeListingSource) ListBranches(_ context.Context, _ string, repository string) ([]string, error) {
	return source.branchesByRepository[repository], nil
}

func (source *fakeListingSource) ScanBranch(executionContext context.Context, _ string, _ string, branchReference string) ([]commits.Commit, error) {
	current := source.inFlight.Add(1)
	defer source.inFlight.Add(-1)
	for {
		observed := source.maxInFlight.Load()
		if current <= observed || source.maxInFlight.CompareAndSwap(observed, current) {
			break
		}
	}

	source.scannedMu.Lock()
	source.scanned = append(source.scanned, branchReference)
	source.scannedMu.Unlock()

	if source.blockingBranches[branchReference] {
		<-executionContext.Done()
		return nil, executionContext.Err()
	}
	if source.scanDelay > 0 {
		time.Sleep(source.scanDelay)
	}
	if source.failingBranches[branchReference] {
		return nil, errListingUnavailable
	}
	return source.commitsByBranch[branchReference], nil
}

type recordingObserver struct {
	mutex          sync.Mutex
	startedTotal   int
	completedUnits []int
	failedUnits    []harvest.ScanUnit
	finished       bool
	runIdentifiers map[string]struct{}
}

func newRecordingObserver() *recordingObserver {
	return &recordingObserver{runIdentifiers: map[string]struct{}{}}
}

func (observer *recordingObserver) HarvestStarted(runIdentifier string, totalUnits int) {
	observer.mutex.Lock()
	defer observer.mutex.Unlock()
	observer.runIdentifiers[runIdentifier] = struct{}{}
	observer.startedTotal = totalUnits
}

func (observer *recordingObserver) UnitCompleted(runIdentifier string, _ harvest.ScanUnit, _ int, completedUnits int, _ int) {
	observer.mutex.Lock()
	defer observer.mutex.Unlock()
	observer.runIdentifiers[runIdentifier] = struct{}{}
	observer.completedUnits = append(observer.completedUnits, completedUnits)
}

func (observer *recordingObserver) UnitFailed(runIdentifier string, failure harvest.UnitFailure, completedUnits int, _ int) {
	observer.mutex.Lock()
	defer observer.mutex.Unlock()
	observer.runIdentifiers[runIdentifier] = struct{}{}
	observer.completedUnits = append(observer.completedUnits, completedUnits)
	observer.failedUnits = append(observer.failedUnits, failure.Unit)
}

func (observer *recordingObserver) HarvestFinished(runIdentifier string, _ harvest.Result) {
	observer.mutex.Lock()
	defer observer.mutex.Unlock()
	observer.runIdentifiers[runIdentifier] = struct{}{}
	observer.finished = true
}
