package summary

import (
	"context"
	"errors"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/packages/param"
	"github.com/openai/openai-go/responses"
)

const (
	outputTypeFunctionCallConstant = "function_call"
	outputTypeMessageConstant      = "message"
	apiKeyMissingMessageConstant   = "language model API key not configured"
)

// ErrAPIKeyMissing indicates no API key was available for the language model client.
var ErrAPIKeyMissing = errors.New(apiKeyMissingMessageConstant)

// ToolCall is a function invocation requested by the model.
type ToolCall struct {
	CallID    string
	Name      string
	Arguments string
}

// ResponseRequest carries one round of the conversation to the model.
type ResponseRequest struct {
	Instructions string
	History      []responses.ResponseInputItemUnionParam
	Tools        []openai.FunctionDefinitionParam
}

// ResponseOutcome is the model's reply: either tool calls to run or a final answer.
type ResponseOutcome struct {
	Answer    string
	ToolCalls []ToolCall
}

// ResponseGenerator produces model replies.
type ResponseGenerator interface {
	GetResponse(executionContext context.Context, request ResponseRequest) (ResponseOutcome, error)
}

// GeneratorSettings configures the OpenAI-compatible response generator.
type GeneratorSettings struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float64
}

// OpenAIGenerator calls an OpenAI-compatible Responses API.
type OpenAIGenerator struct {
	client      openai.Client
	model       string
	temperature float64
}

// NewOpenAIGenerator constructs a generator for the configured endpoint and model.
func NewOpenAIGenerator(settings GeneratorSettings) (*OpenAIGenerator, error) {
	if len(settings.APIKey) == 0 {
		return nil, ErrAPIKeyMissing
	}

	requestOptions := []option.RequestOption{option.WithAPIKey(settings.APIKey)}
	if len(settings.BaseURL) > 0 {
		requestOptions = append(requestOptions, option.WithBaseURL(settings.BaseURL))
	}

	model := settings.Model
	if len(model) == 0 {
		model = DefaultModel
	}

	return &OpenAIGenerator{
		client:      openai.NewClient(requestOptions...),
		model:       model,
		temperature: settings.Temperature,
	}, nil
}

// GetResponse sends the conversation and collects the answer text and requested tool calls.
func (generator *OpenAIGenerator) GetResponse(executionContext context.Context, request ResponseRequest) (ResponseOutcome, error) {
	parameters := responses.ResponseNewParams{
		Model:        generator.model,
		Instructions: param.NewOpt(request.Instructions),
		Input: responses.ResponseNewParamsInputUnion{
			OfInputItemList: request.History,
		},
		Tools:       toToolParams(request.Tools),
		Temperature: param.NewOpt(generator.temperature),
	}

	response, responseError := generator.client.Responses.New(executionContext, parameters)
	if responseError != nil {
		return ResponseOutcome{}, responseError
	}

	outcome := ResponseOutcome{}
	for _, outputItem := range response.Output {
		switch outputItem.Type {
		case outputTypeFunctionCallConstant:
			functionCall := outputItem.AsFunctionCall()
			outcome.ToolCalls = append(outcome.ToolCalls, ToolCall{
				CallID:    functionCall.CallID,
				Name:      functionCall.Name,
				Arguments: functionCall.Arguments,
			})
		case outputTypeMessageConstant:
			for _, content := range outputItem.AsMessage().Content {
				outcome.Answer += content.Text
			}
		}
	}
	return outcome, nil
}

func toToolParams(tools []openai.FunctionDefinitionParam) []responses.ToolUnionParam {
	if len(tools) == 0 {
		return nil
	}
	toolParams := make([]responses.ToolUnionParam, 0, len(tools))
	for _, tool := range tools {
		toolParams = append(toolParams, responses.ToolUnionParam{
			OfFunction: &responses.FunctionToolParam{
				Name:        tool.Name,
				Description: tool.Description,
				Parameters:  tool.Parameters,
				Strict:      tool.Strict,
			},
		})
	}
	return toolParams
}

func userMessage(message string) responses.ResponseInputItemUnionParam {
	return responses.ResponseInputItemUnionParam{
		OfMessage: &responses.EasyInputMessageParam{
			Role: responses.EasyInputMessageRoleUser,
			Type: responses.EasyInputMessageTypeMessage,
			Content: responses.EasyInputMessageContentUnionParam{
				OfString: param.NewOpt(message),
			},
		},
	}
}
