package summary

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/packages/param"

	"github.com/temirov/worklog/internal/tasks"
)

const (
	// ToolNameGetTask names the task group lookup tool.
	ToolNameGetTask = "get_task"
	// ToolNameGetWeek names the week identifier tool.
	ToolNameGetWeek = "get_week"

	getTaskDescriptionConstant        = "Return the author's task groups for an ISO-8601 week identifier such as 2025-W32. Returns an empty list when the author has no tasks that week."
	getWeekDescriptionConstant        = "Return the ISO-8601 week identifier for the week offset weeks before the current week. Offset 0 is the current week."
	authorPropertyDescriptionConstant = "Author display name exactly as it appears in commits"
	weekPropertyDescriptionConstant   = "ISO-8601 week identifier, for example 2025-W32"
	offsetPropertyDescriptionConstant = "Number of weeks before the current week; 0 is the current week"
	unknownToolTemplateConstant       = "unknown tool %q"
	invalidArgumentsTemplateConstant  = "invalid arguments for %s: %v"
	negativeOffsetMessageConstant     = "offset must not be negative"
	missingArgumentTemplateConstant   = "%s requires %s"
	jsonSchemaTypeObjectConstant      = "object"
	jsonSchemaTypeStringConstant      = "string"
	jsonSchemaTypeIntegerConstant     = "integer"
)

// WeekQueries is the read-only query surface exposed to the model.
type WeekQueries interface {
	GetWeekIdentifier(offset int) string
	GetTaskGroups(author string, weekIdentifier string) []tasks.TaskGroup
}

type getTaskArguments struct {
	Author string `json:"author"`
	Week   string `json:"week"`
}

type getWeekArguments struct {
	Offset int `json:"offset"`
}

// ToolDefinitions describes get_task and get_week to the model.
func ToolDefinitions() []openai.FunctionDefinitionParam {
	return []openai.FunctionDefinitionParam{
		{
			Name:        ToolNameGetTask,
			Description: param.NewOpt(getTaskDescriptionConstant),
			Parameters: openai.FunctionParameters{
				"type": jsonSchemaTypeObjectConstant,
				"properties": map[string]any{
					"author": map[string]any{"type": jsonSchemaTypeStringConstant, "description": authorPropertyDescriptionConstant},
					"week":   map[string]any{"type": jsonSchemaTypeStringConstant, "description": weekPropertyDescriptionConstant},
				},
				"required":             []string{"author", "week"},
				"additionalProperties": false,
			},
			Strict: param.NewOpt(true),
		},
		{
			Name:        ToolNameGetWeek,
			Description: param.NewOpt(getWeekDescriptionConstant),
			Parameters: openai.FunctionParameters{
				"type": jsonSchemaTypeObjectConstant,
				"properties": map[string]any{
					"offset": map[string]any{"type": jsonSchemaTypeIntegerConstant, "description": offsetPropertyDescriptionConstant},
				},
				"required":             []string{"offset"},
				"additionalProperties": false,
			},
			Strict: param.NewOpt(true),
		},
	}
}

// ToolExecutor runs the model's tool calls against the query surface.
type ToolExecutor struct {
	queries WeekQueries
}

// NewToolExecutor constructs a ToolExecutor.
func NewToolExecutor(queries WeekQueries) ToolExecutor {
	return ToolExecutor{queries: queries}
}

// Execute returns the tool output handed back to the model. Argument problems are
// reported to the model as text so it can retry.
func (executor ToolExecutor) Execute(call ToolCall) (string, error) {
	switch call.Name {
	case ToolNameGetTask:
		var arguments getTaskArguments
		if decodeError := decodeArguments(call.Arguments, &arguments); decodeError != nil {
			return fmt.Sprintf(invalidArgumentsTemplateConstant, call.Name, decodeError), nil
		}
		if len(strings.TrimSpace(arguments.Author)) == 0 {
			return fmt.Sprintf(missingArgumentTemplateConstant, call.Name, "author"), nil
		}
		if len(strings.TrimSpace(arguments.Week)) == 0 {
			return fmt.Sprintf(missingArgumentTemplateConstant, call.Name, "week"), nil
		}
		payload, encodeError := json.Marshal(executor.queries.GetTaskGroups(arguments.Author, arguments.Week))
		if encodeError != nil {
			return "", encodeError
		}
		return string(payload), nil
	case ToolNameGetWeek:
		var arguments getWeekArguments
		if decodeError := decodeArguments(call.Arguments, &arguments); decodeError != nil {
			return fmt.Sprintf(invalidArgumentsTemplateConstant, call.Name, decodeError), nil
		}
		if arguments.Offset < 0 {
			return negativeOffsetMessageConstant, nil
		}
		return executor.queries.GetWeekIdentifier(arguments.Offset), nil
	default:
		return fmt.Sprintf(unknownToolTemplateConstant, call.Name), nil
	}
}

func decodeArguments(rawArguments string, target any) error {
	trimmedArguments := strings.TrimSpace(rawArguments)
	if len(trimmedArguments) == 0 {
		return nil
	}
	return json.Unmarshal([]byte(trimmedArguments), target)
}
