package web

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/temirov/worklog/internal/tasks"
)

const (
	// DefaultAddress is the listen address used when none is configured.
	DefaultAddress = "127.0.0.1:8080"

	shutdownTimeoutConstant            = 5 * time.Second
	readHeaderTimeoutConstant          = 10 * time.Second
	queryServiceMissingMessageConstant = "query service not configured"
	requestServedMessageConstant       = "request served"
	serverListeningMessageConstant     = "serving query API"
	logFieldMethodConstant             = "method"
	logFieldPathConstant               = "path"
	logFieldStatusConstant             = "status"
	logFieldLatencyConstant            = "latency"
	logFieldAddressConstant            = "address"
)

// ErrQueryServiceNotConfigured indicates the server was constructed without a query service.
var ErrQueryServiceNotConfigured = errors.New(queryServiceMissingMessageConstant)

// QueryService answers the week and task group questions served over HTTP.
type QueryService interface {
	GetWeekIdentifier(offset int) string
	GetTaskGroups(author string, weekIdentifier string) []tasks.TaskGroup
	GetAllTaskGroups(author string) []tasks.TaskGroup
}

// Server routes HTTP requests to the query service.
type Server struct {
	queries QueryService
	router  *gin.Engine
	logger  *zap.Logger
}

// NewServer constructs a Server with its routes registered.
func NewServer(queries QueryService, logger *zap.Logger) (*Server, error) {
	if queries == nil {
		return nil, ErrQueryServiceNotConfigured
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	router := gin.New()
	server := &Server{queries: queries, router: router, logger: logger}

	router.Use(gin.Recovery(), server.logRequests)

	api := router.Group("/api")
	{
		api.GET("/weeks", server.handleWeek)
		api.GET("/authors/:author/weeks/:week", server.handleWeekTaskGroups)
		api.GET("/authors/:author/task-groups", server.handleAllTaskGroups)
	}

	return server, nil
}

// Handler exposes the router for embedding and tests.
func (server *Server) Handler() http.Handler {
	return server.router
}

// Run serves on address until the context ends, then shuts down gracefully.
func (server *Server) Run(executionContext context.Context, address string) error {
	httpServer := &http.Server{
		Addr:              address,
		Handler:           server.router,
		ReadHeaderTimeout: readHeaderTimeoutConstant,
	}

	serveErrors := make(chan error, 1)
	go func() {
		server.logger.Info(serverListeningMessageConstant, zap.String(logFieldAddressConstant, address))
		serveErrors <- httpServer.ListenAndServe()
	}()

	select {
	case serveError := <-serveErrors:
		if errors.Is(serveError, http.ErrServerClosed) {
			return nil
		}
		return serveError
	case <-executionContext.Done():
		shutdownContext, cancel := context.WithTimeout(context.Background(), shutdownTimeoutConstant)
		defer cancel()
		return httpServer.Shutdown(shutdownContext)
	}
}

func (server *Server) logRequests(ginContext *gin.Context) {
	startTime := time.Now()
	ginContext.Next()
	server.logger.Debug(
		requestServedMessageConstant,
		zap.String(logFieldMethodConstant, ginContext.Request.Method),
		zap.String(logFieldPathConstant, ginContext.Request.URL.Path),
		zap.Int(logFieldStatusConstant, ginContext.Writer.Status()),
		zap.Duration(logFieldLatencyConstant, time.Since(startTime)),
	)
}
