package summary

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/openai/openai-go/responses"
	"go.uber.org/zap"
)

const (
	// DefaultMaxToolRounds bounds how many times the model may request tools before answering.
	DefaultMaxToolRounds = 8

	generatorMissingMessageConstant = "response generator not configured"
	queriesMissingMessageConstant   = "week queries not configured"
	roundsExhaustedTemplateConstant = "model did not answer within %d tool rounds"
	emptyQuestionMessageConstant    = "question must not be empty"
	toolCallMessageConstant         = "model requested tool"
	logFieldToolConstant            = "tool"
	logFieldArgumentsConstant       = "arguments"
	logFieldRoundConstant           = "round"
)

var (
	// ErrResponseGeneratorNotConfigured indicates the agent was constructed without a generator.
	ErrResponseGeneratorNotConfigured = errors.New(generatorMissingMessageConstant)
	// ErrWeekQueriesNotConfigured indicates the agent was constructed without a query surface.
	ErrWeekQueriesNotConfigured = errors.New(queriesMissingMessageConstant)
	// ErrEmptyQuestion indicates Answer was called without a question.
	ErrEmptyQuestion = errors.New(emptyQuestionMessageConstant)
)

// Dependencies lists the collaborators required by Agent.
type Dependencies struct {
	Generator ResponseGenerator
	Queries   WeekQueries
	Logger    *zap.Logger
}

// Agent runs a tool-calling conversation until the model produces an answer.
type Agent struct {
	generator     ResponseGenerator
	executor      ToolExecutor
	logger        *zap.Logger
	maxToolRounds int
}

// NewAgent validates dependencies and constructs an Agent.
func NewAgent(dependencies Dependencies, maxToolRounds int) (*Agent, error) {
	if dependencies.Generator == nil {
		return nil, ErrResponseGeneratorNotConfigured
	}
	if dependencies.Queries == nil {
		return nil, ErrWeekQueriesNotConfigured
	}

	logger := dependencies.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if maxToolRounds <= 0 {
		maxToolRounds = DefaultMaxToolRounds
	}

	return &Agent{
		generator:     dependencies.Generator,
		executor:      NewToolExecutor(dependencies.Queries),
		logger:        logger,
		maxToolRounds: maxToolRounds,
	}, nil
}

// Answer asks the model the question and returns its markdown answer.
func (agent *Agent) Answer(executionContext context.Context, question string) (string, error) {
	trimmedQuestion := strings.TrimSpace(question)
	if len(trimmedQuestion) == 0 {
		return "", ErrEmptyQuestion
	}

	history := []responses.ResponseInputItemUnionParam{userMessage(trimmedQuestion)}
	tools := ToolDefinitions()

	for round := 0; round <= agent.maxToolRounds; round++ {
		outcome, responseError := agent.generator.GetResponse(executionContext, ResponseRequest{
			Instructions: Instructions(),
			History:      history,
			Tools:        tools,
		})
		if responseError != nil {
			return "", responseError
		}

		if len(outcome.ToolCalls) == 0 {
			return strings.TrimSpace(outcome.Answer), nil
		}

		for _, call := range outcome.ToolCalls {
			agent.logger.Debug(
				toolCallMessageConstant,
				zap.String(logFieldToolConstant, call.Name),
				zap.String(logFieldArgumentsConstant, call.Arguments),
				zap.Int(logFieldRoundConstant, round),
			)

			toolOutput, toolError := agent.executor.Execute(call)
			if toolError != nil {
				return "", toolError
			}
			history = append(history,
				responses.ResponseInputItemParamOfFunctionCall(call.Arguments, call.CallID, call.Name),
				responses.ResponseInputItemParamOfFunctionCallOutput(call.CallID, toolOutput),
			)
		}
	}

	return "", fmt.Errorf(roundsExhaustedTemplateConstant, agent.maxToolRounds)
}
