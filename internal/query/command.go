package query

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/worklog/internal/dates"
	"github.com/temirov/worklog/internal/utils/flags"
	pathutils "github.com/temirov/worklog/internal/utils/path"
)

const (
	weekCommandUseConstant              = "week"
	weekCommandShortDescriptionConstant = "Print the ISO week identifier for a week offset"
	weekCommandLongDescriptionConstant  = "week prints the ISO-8601 year-week identifier of the current week, or of the week --offset weeks earlier."
	taskCommandUseConstant              = "task"
	taskCommandShortDescriptionConstant = "Print an author's weekly task groups"
	taskCommandLongDescriptionConstant  = "task groups the author's stored commits into day-level tasks and ISO weeks and prints the most recent --offset+1 weeks."
	flagOffsetNameConstant              = "offset"
	flagOffsetDescriptionConstant       = "Number of weeks before the current week"
	flagTaskOffsetDescriptionConstant   = "Number of earlier weeks to include after the most recent one"
	flagAuthorNameConstant              = "author"
	flagAuthorDescriptionConstant       = "Author whose commits are grouped"
	flagFormatNameConstant              = "format"
	flagFormatDescriptionConstant       = "Output format"
	missingAuthorMessageConstant        = "no author provided; specify --author or set query.author"
	negativeOffsetMessageConstant       = "offset must not be negative"
	unexpectedArgumentsMessageConstant  = "command does not accept positional arguments"
	weekOutputTemplateConstant          = "%s\n"
)

var (
	errMissingAuthor       = errors.New(missingAuthorMessageConstant)
	errNegativeOffset      = errors.New(negativeOffsetMessageConstant)
	errUnexpectedArguments = errors.New(unexpectedArgumentsMessageConstant)
)

// LoggerProvider supplies a zap logger instance.
type LoggerProvider func() *zap.Logger

// WeekCommandBuilder assembles the week cobra command.
type WeekCommandBuilder struct {
	Clock dates.Clock
}

// Build constructs the week command.
func (builder *WeekCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   weekCommandUseConstant,
		Short: weekCommandShortDescriptionConstant,
		Long:  weekCommandLongDescriptionConstant,
		RunE:  builder.run,
	}
	command.Flags().Int(flagOffsetNameConstant, 0, flagOffsetDescriptionConstant)
	return command, nil
}

func (builder *WeekCommandBuilder) run(command *cobra.Command, arguments []string) error {
	if len(arguments) > 0 {
		return errUnexpectedArguments
	}

	offsetValue, _ := command.Flags().GetInt(flagOffsetNameConstant)
	if offsetValue < 0 {
		return errNegativeOffset
	}

	weekIdentifier := dates.WeekIdentifierForOffset(dates.ResolveClock(builder.Clock).Now(), offsetValue)
	_, writeError := fmt.Fprintf(command.OutOrStdout(), weekOutputTemplateConstant, weekIdentifier)
	return writeError
}

// TaskCommandBuilder assembles the task cobra command.
type TaskCommandBuilder struct {
	LoggerProvider        LoggerProvider
	ConfigurationProvider func() CommandConfiguration
	StoreRootProvider     func() string
	Loader                HistoryLoader
	Clock                 dates.Clock
	HomeExpander          *pathutils.HomeExpander
}

// Build constructs the task command.
func (builder *TaskCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   taskCommandUseConstant,
		Short: taskCommandShortDescriptionConstant,
		Long:  taskCommandLongDescriptionConstant,
		RunE:  builder.run,
	}
	command.Flags().String(flagAuthorNameConstant, "", flagAuthorDescriptionConstant)
	command.Flags().Int(flagOffsetNameConstant, 0, flagTaskOffsetDescriptionConstant)
	command.Flags().String(flagFormatNameConstant, OutputFormatYAML, flags.FormatChoiceUsage(OutputFormatYAML, OutputFormats(), flagFormatDescriptionConstant))
	return command, nil
}

func (builder *TaskCommandBuilder) run(command *cobra.Command, arguments []string) error {
	if len(arguments) > 0 {
		return errUnexpectedArguments
	}

	configuration := DefaultCommandConfiguration()
	if builder.ConfigurationProvider != nil {
		configuration = builder.ConfigurationProvider()
	}
	configuration = configuration.Sanitize()

	author := configuration.Author
	if command.Flags().Changed(flagAuthorNameConstant) {
		authorValue, _ := command.Flags().GetString(flagAuthorNameConstant)
		author = strings.TrimSpace(authorValue)
	}
	if len(author) == 0 {
		return errMissingAuthor
	}

	offsetValue, _ := command.Flags().GetInt(flagOffsetNameConstant)
	if offsetValue < 0 {
		return errNegativeOffset
	}
	formatValue, _ := command.Flags().GetString(flagFormatNameConstant)

	logger := resolveLogger(builder.LoggerProvider)
	storeRoot := ""
	if builder.StoreRootProvider != nil {
		storeRoot = builder.StoreRootProvider()
	}
	loader, loaderError := ResolveHistoryLoader(builder.Loader, storeRoot, builder.HomeExpander, logger)
	if loaderError != nil {
		return loaderError
	}

	service, serviceError := NewService(Dependencies{Loader: loader, Clock: builder.Clock, Logger: logger})
	if serviceError != nil {
		return serviceError
	}

	taskGroups := service.GetAllTaskGroups(author)
	if len(taskGroups) > offsetValue+1 {
		taskGroups = taskGroups[:offsetValue+1]
	}
	return WriteValue(command.OutOrStdout(), taskGroups, formatValue)
}

func resolveLogger(provider LoggerProvider) *zap.Logger {
	if provider == nil {
		return zap.NewNop()
	}
	logger := provider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}
