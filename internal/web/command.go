package web

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/worklog/internal/dates"
	"github.com/temirov/worklog/internal/query"
	pathutils "github.com/temirov/worklog/internal/utils/path"
)

const (
	commandUseConstant                 = "serve"
	commandShortDescriptionConstant    = "Serve weekly task groups over HTTP"
	commandLongDescriptionConstant     = "serve exposes read-only endpoints returning week identifiers and authors' weekly task groups from the store."
	flagAddressNameConstant            = "address"
	flagAddressDescriptionConstant     = "Listen address"
	unexpectedArgumentsMessageConstant = "serve does not accept positional arguments"
)

var errUnexpectedArguments = errors.New(unexpectedArgumentsMessageConstant)

// LoggerProvider supplies a zap logger instance.
type LoggerProvider func() *zap.Logger

// CommandBuilder assembles the serve cobra command.
type CommandBuilder struct {
	LoggerProvider        LoggerProvider
	ConfigurationProvider func() CommandConfiguration
	StoreRootProvider     func() string
	Loader                query.HistoryLoader
	Clock                 dates.Clock
	HomeExpander          *pathutils.HomeExpander
}

// Build constructs the serve command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		RunE:  builder.run,
	}
	command.Flags().String(flagAddressNameConstant, "", flagAddressDescriptionConstant)
	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	if len(arguments) > 0 {
		return errUnexpectedArguments
	}

	configuration := DefaultCommandConfiguration()
	if builder.ConfigurationProvider != nil {
		configuration = builder.ConfigurationProvider()
	}
	if command.Flags().Changed(flagAddressNameConstant) {
		addressValue, _ := command.Flags().GetString(flagAddressNameConstant)
		configuration.Address = addressValue
	}
	configuration = configuration.Sanitize()

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

	gin.SetMode(gin.ReleaseMode)
	server, serverError := NewServer(queryService, logger)
	if serverError != nil {
		return serverError
	}

	executionContext := command.Context()
	if executionContext == nil {
		executionContext = context.Background()
	}
	return server.Run(executionContext, configuration.Address)
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
