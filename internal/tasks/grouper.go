package tasks

import (
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/worklog/internal/commits"
	"github.com/temirov/worklog/internal/dates"
)

const (
	logFieldDateConstant           = "date"
	logFieldWeekConstant           = "week"
	unparseableDateMessageConstant = "commit date could not be parsed; assigning to current week"
)

// Task collects the messages one author committed to one repository on one day.
type Task struct {
	Date       string   `json:"date" yaml:"date"`
	Repository string   `json:"repository" yaml:"repository"`
	Tasks      []string `json:"tasks" yaml:"tasks"`
}

// TaskGroup collects the tasks falling within one ISO week.
type TaskGroup struct {
	Week  string `json:"week" yaml:"week"`
	Tasks []Task `json:"tasks" yaml:"tasks"`
}

// Grouper builds task groups from commit histories.
type Grouper struct {
	clock  dates.Clock
	logger *zap.Logger
}

// NewGrouper constructs a Grouper. The clock supplies the fallback week for unparseable dates.
func NewGrouper(clock dates.Clock, logger *zap.Logger) *Grouper {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Grouper{clock: dates.ResolveClock(clock), logger: logger}
}

type bucketKey struct {
	day        string
	repository string
}

// Group buckets commits by day and repository, then by ISO week.
// Groups are ordered by week descending; tasks by day descending, then repository ascending.
func (grouper *Grouper) Group(commitHistory []commits.Commit) []TaskGroup {
	taskGroups := []TaskGroup{}
	if len(commitHistory) == 0 {
		return taskGroups
	}

	bucketMessages := make(map[bucketKey][]string)
	repositoriesByDay := make(map[string][]string)
	for _, commit := range commitHistory {
		key := bucketKey{day: dayOf(commit.Date), repository: commit.Repository}
		if _, exists := bucketMessages[key]; !exists {
			repositoriesByDay[key.day] = append(repositoriesByDay[key.day], key.repository)
		}
		bucketMessages[key] = append(bucketMessages[key], commit.Message)
	}

	referenceTime := grouper.clock.Now()
	daysByWeek := make(map[string][]string)
	for day := range repositoriesByDay {
		weekIdentifier, parsed := dates.WeekIdentifierForDay(day, referenceTime)
		if !parsed {
			grouper.logger.Warn(
				unparseableDateMessageConstant,
				zap.String(logFieldDateConstant, day),
				zap.String(logFieldWeekConstant, weekIdentifier),
			)
		}
		daysByWeek[weekIdentifier] = append(daysByWeek[weekIdentifier], day)
	}

	weekIdentifiers := make([]string, 0, len(daysByWeek))
	for weekIdentifier := range daysByWeek {
		weekIdentifiers = append(weekIdentifiers, weekIdentifier)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(weekIdentifiers)))

	for _, weekIdentifier := range weekIdentifiers {
		weekDays := daysByWeek[weekIdentifier]
		sort.Sort(sort.Reverse(sort.StringSlice(weekDays)))

		taskGroup := TaskGroup{Week: weekIdentifier, Tasks: []Task{}}
		for _, day := range weekDays {
			dayRepositories := repositoriesByDay[day]
			sort.Strings(dayRepositories)
			for _, repository := range dayRepositories {
				messages := bucketMessages[bucketKey{day: day, repository: repository}]
				taskGroup.Tasks = append(taskGroup.Tasks, Task{
					Date:       day,
					Repository: repository,
					Tasks:      append([]string(nil), messages...),
				})
			}
		}
		taskGroups = append(taskGroups, taskGroup)
	}

	return taskGroups
}

// FilterByWeek returns the groups whose week equals weekIdentifier.
func FilterByWeek(taskGroups []TaskGroup, weekIdentifier string) []TaskGroup {
	filtered := []TaskGroup{}
	for _, taskGroup := range taskGroups {
		if taskGroup.Week == weekIdentifier {
			filtered = append(filtered, taskGroup)
		}
	}
	return filtered
}

func dayOf(date string) string {
	return dates.DayPart(strings.TrimSpace(date))
}
