package query

import (
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/worklog/internal/commits"
	"github.com/temirov/worklog/internal/dates"
	"github.com/temirov/worklog/internal/tasks"
)

const (
	historyLoaderMissingMessageConstant = "history loader not configured"
	historyUnavailableMessageConstant   = "author history unavailable; treating as empty"
	logFieldAuthorConstant              = "author"
)

// ErrHistoryLoaderNotConfigured indicates the service was constructed without a history loader.
var ErrHistoryLoaderNotConfigured = errors.New(historyLoaderMissingMessageConstant)

// HistoryLoader loads an author's stored commits.
type HistoryLoader interface {
	Load(author string) ([]commits.Commit, error)
}

// Dependencies lists the collaborators required by Service.
type Dependencies struct {
	Loader HistoryLoader
	Clock  dates.Clock
	Logger *zap.Logger
}

// Service answers week and task group queries.
type Service struct {
	loader  HistoryLoader
	clock   dates.Clock
	grouper *tasks.Grouper
	logger  *zap.Logger
}

// NewService validates dependencies and constructs a Service.
func NewService(dependencies Dependencies) (*Service, error) {
	if dependencies.Loader == nil {
		return nil, ErrHistoryLoaderNotConfigured
	}

	logger := dependencies.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	clock := dates.ResolveClock(dependencies.Clock)

	return &Service{
		loader:  dependencies.Loader,
		clock:   clock,
		grouper: tasks.NewGrouper(clock, logger),
		logger:  logger,
	}, nil
}

// GetWeekIdentifier returns the ISO week identifier offset weeks before the current week.
func (service *Service) GetWeekIdentifier(offset int) string {
	return dates.WeekIdentifierForOffset(service.clock.Now(), offset)
}

// GetTaskGroups returns the author's task groups for the week, or an empty sequence when there are none.
func (service *Service) GetTaskGroups(author string, weekIdentifier string) []tasks.TaskGroup {
	return tasks.FilterByWeek(service.GetAllTaskGroups(author), strings.TrimSpace(weekIdentifier))
}

// GetAllTaskGroups returns every task group of the author, most recent week first.
func (service *Service) GetAllTaskGroups(author string) []tasks.TaskGroup {
	return service.grouper.Group(service.loadHistory(author))
}

func (service *Service) loadHistory(author string) []commits.Commit {
	history, loadError := service.loader.Load(strings.TrimSpace(author))
	if loadError != nil {
		service.logger.Warn(historyUnavailableMessageConstant, zap.String(logFieldAuthorConstant, author), zap.Error(loadError))
		return nil
	}
	return history
}
