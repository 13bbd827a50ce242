package summary

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/worklog/internal/dates"
	"github.com/temirov/worklog/internal/query"
	pathutils "github.com/temirov/worklog/internal/utils/path"
)

const (
	commandUseConstant              = "summary [question]"
	commandShortDescriptionConstant = "Summarize an author's week with a language model"
	commandLongDescriptionConstant  = "summary lets a language model look up the author's weekly task groups and prints its markdown summary. Without a question it summarizes the current week."
	flagAuthorNameConstant          = "author"
	flagAuthorDescriptionConstant   = "Author whose week is summarized"
	flagRawNameConstant             = "raw"
	flagRawDescriptionConstant      = "Print the markdown answer without terminal rendering"
	defaultQuestionTemplateConstant = "Summarize this week's tasks for %s"
	missingAuthorMessageConstant    = "no author provided; specify --author or set query.author"
	argumentSeparatorConstant       = " "
	outputTemplateConstant          = "%s\n"
)

var errMissingAuthor = errors.New(missingAuthorMessageConstant)

// LoggerProvider supplies a zap logger instance.
type LoggerProvider func() *zap.Logger

// EnvironmentLookup resolves environment variables.
type EnvironmentLookup func(name string) (string, bool)

// CommandBuilder assembles the summary cobra command.
type CommandBuilder struct {
	LoggerProvider        LoggerProvider
	ConfigurationProvider func() CommandConfiguration
	QueryConfiguration    func() query.CommandConfiguration
	StoreRootProvider     func() string
	Loader                query.HistoryLoader
	Generator             ResponseGenerator
	Environment           EnvironmentLookup
	Clock                 dates.Clock
	HomeExpander          *pathutils.HomeExpander
}

// Build constructs the summary command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		RunE:  builder.run,
	}
	command.Flags().String(flagAuthorNameConstant, "", flagAuthorDescriptionConstant)
	command.Flags().Bool(flagRawNameConstant, false, flagRawDescriptionConstant)
	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	configuration := DefaultCommandConfiguration()
	if builder.ConfigurationProvider != nil {
		configuration = builder.ConfigurationProvider()
	}
	configuration = configuration.Sanitize()

	author := builder.resolveAuthor(command)
	question := strings.TrimSpace(strings.Join(arguments, argumentSeparatorConstant))
	if len(question) == 0 {
		if len(author) == 0 {
			return errMissingAuthor
		}
		question = fmt.Sprintf(defaultQuestionTemplateConstant, author)
	}

	logger := builder.resolveLogger()
	storeRoot := ""
	if builder.StoreRootProvider != nil {
		storeRoot = builder.StoreRootProvider()
	}
	loader, loaderError := query.ResolveHistoryLoader(builder.Loader, storeRoot, builder.HomeExpander, logger)
	if loaderError != nil {
		return loaderError
	}
	queryService, serviceError := query.NewService(query.Dependencies{Loader: loader, Clock: builder.Clock, Logger: logger})
	if serviceError != nil {
		return serviceError
	}

	generator, generatorError := builder.resolveGenerator(configuration)
	if generatorError != nil {
		return generatorError
	}

	agent, agentError := NewAgent(Dependencies{Generator: generator, Queries: queryService, Logger: logger}, configuration.MaxToolRounds)
	if agentError != nil {
		return agentError
	}

	answer, answerError := agent.Answer(command.Context(), question)
	if answerError != nil {
		return answerError
	}

	rawOutput, _ := command.Flags().GetBool(flagRawNameConstant)
	if !rawOutput {
		rendered, renderError := RenderMarkdown(answer, configuration.Style)
		if renderError != nil {
			return renderError
		}
		answer = rendered
	}

	_, writeError := fmt.Fprintf(command.OutOrStdout(), outputTemplateConstant, strings.TrimRight(answer, "\n"))
	return writeError
}

func (builder *CommandBuilder) resolveAuthor(command *cobra.Command) string {
	if command.Flags().Changed(flagAuthorNameConstant) {
		authorValue, _ := command.Flags().GetString(flagAuthorNameConstant)
		return strings.TrimSpace(authorValue)
	}
	if builder.QueryConfiguration == nil {
		return ""
	}
	return builder.QueryConfiguration().Sanitize().Author
}

func (builder *CommandBuilder) resolveGenerator(configuration CommandConfiguration) (ResponseGenerator, error) {
	if builder.Generator != nil {
		return builder.Generator, nil
	}

	lookup := builder.Environment
	if lookup == nil {
		lookup = os.LookupEnv
	}
	apiKey, _ := lookup(configuration.APIKeyEnv)

	generator, generatorError := NewOpenAIGenerator(GeneratorSettings{
		APIKey:      strings.TrimSpace(apiKey),
		BaseURL:     configuration.BaseURL,
		Model:       configuration.Model,
		Temperature: configuration.Temperature,
	})
	if generatorError != nil {
		return nil, generatorError
	}
	return generator, nil
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
