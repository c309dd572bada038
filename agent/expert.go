package agent

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

// Expert is a chat with a model specialised by its system instruction and
// its tools.
type Expert struct {
	Name        string                       `json:"name"`
	Description string                       `json:"description"`
	ModelName   string                       `json:"model_name"`
	Config      *genai.GenerateContentConfig `json:"config"`
	Library     Library
	Log         *zap.Logger
	chat        *genai.Chat
}

// Start creates the chat of the expert.
func (e *Expert) Start(ctx context.Context, client *genai.Client) error {
	chat, err := client.Chats.Create(ctx, e.ModelName, e.Config, nil)
	if err != nil {
		return err
	}
	e.chat = chat
	return nil
}

// Ask sends parts to the expert and returns its answer, answering the
// function calls it makes in between from its Library.
func (e *Expert) Ask(ctx context.Context, parts ...*genai.Part) (*genai.Content, error) {
	resp, err := e.chat.Send(ctx, parts...)
	if err != nil {
		return nil, err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("no response from expert %s", e.Name)
	}
	call := resp.Candidates[0].Content.Parts[0].FunctionCall
	if call == nil {
		return resp.Candidates[0].Content, nil
	}
	if e.Library == nil {
		return nil, fmt.Errorf("expert %s doesn't know how to make function calls", e.Name)
	}
	e.logger().Debug("function call", zap.String("expert", e.Name), zap.String("function", call.Name), zap.Any("args", call.Args))
	// errors are reported to the expert in the response.
	return e.Ask(ctx, &genai.Part{FunctionResponse: e.Library(ctx, call)})
}

func (e *Expert) logger() *zap.Logger {
	if e.Log == nil {
		return zap.NewNop()
	}
	return e.Log
}

// Declaration returns the function declaration to ask this expert.
func (e *Expert) Declaration() *genai.FunctionDeclaration {
	return &genai.FunctionDeclaration{
		Name:        e.Name,
		Description: e.Description,
		Parameters: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"question": {
					Type:        genai.TypeString,
					Description: "The question to ask the expert.",
				},
			},
			Required: []string{"question"},
		},
		Response: &genai.Schema{
			Type:        genai.TypeString,
			Description: "Expert's response.",
		},
	}
}

// Call asks the question found in args to this expert.
func (e *Expert) Call(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
	question, ok := args["question"].(string)
	if !ok {
		return failure(id, e.Name, fmt.Errorf("invalid question type %T, expected string", args["question"]))
	}
	response, err := e.Ask(ctx, &genai.Part{Text: question})
	if err != nil {
		return failure(id, e.Name, fmt.Errorf("something went wrong while calling the expert: %w", err))
	}
	answer := text(response)
	e.logger().Debug("expert answered", zap.String("expert", e.Name), zap.String("question", question), zap.String("answer", answer))
	return output(id, e.Name, answer)
}
