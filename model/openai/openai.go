// Package openai provides an implementation of model.Model using the OpenAI
// Chat Completions API. It adapts agentpipe's ordered prompt sequence into
// the SDK's message format: with two or more segments the first becomes the
// system message and the rest user messages; a single segment is sent as a
// user message.
package openai

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"

	"github.com/hupe1980/agentpipe/model"
)

// Options configure the OpenAI model adapter. Fields mirror a subset of Chat
// Completion parameters intentionally kept minimal; extend via functional
// options without breaking callers.
type Options struct {
	Model               string
	Temperature         float64
	MaxCompletionTokens int64
}

// Model wraps the OpenAI Chat Completions API behind the generic model.Model interface.
type Model struct {
	client *openai.Client
	opts   Options
}

// NewModel creates a new OpenAI model using the official client
func NewModel(optFns ...func(o *Options)) *Model {
	client := openai.NewClient()
	return NewModelFromClient(&client, optFns...)
}

// NewModelFromClient creates a new OpenAI model from an existing client
func NewModelFromClient(client *openai.Client, optFns ...func(o *Options)) *Model {
	opts := Options{
		Model:               openai.ChatModelGPT4oMini,
		Temperature:         0.7,
		MaxCompletionTokens: 4096,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Model{client: client, opts: opts}
}

// Generate implements blocking generation against the Chat Completions API.
// Invocation params may override the configured model ("model"), temperature
// ("temperature") and token limit ("max_tokens") per request.
func (m *Model) Generate(ctx context.Context, req model.Request) (string, error) {
	params := openai.ChatCompletionNewParams{
		Messages:            buildMessages(req.Prompts),
		Model:               m.opts.Model,
		Temperature:         openai.Float(m.opts.Temperature),
		MaxCompletionTokens: openai.Int(m.opts.MaxCompletionTokens),
	}
	applyParams(&params, req.Params)

	resp, err := m.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("openai api error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices returned")
	}
	return resp.Choices[0].Message.Content, nil
}

// buildMessages converts the ordered prompt segments into chat messages.
func buildMessages(prompts []string) []openai.ChatCompletionMessageParamUnion {
	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(prompts))
	if len(prompts) == 1 {
		return append(messages, openai.UserMessage(prompts[0]))
	}
	for i, text := range prompts {
		if i == 0 {
			messages = append(messages, openai.SystemMessage(text))
			continue
		}
		messages = append(messages, openai.UserMessage(text))
	}
	return messages
}

// applyParams folds per-invocation overrides into the request parameters.
func applyParams(params *openai.ChatCompletionNewParams, p map[string]any) {
	if name, ok := model.StringParam(p, "model"); ok {
		params.Model = name
	}
	if temp, ok := model.FloatParam(p, "temperature"); ok {
		params.Temperature = openai.Float(temp)
	}
	if maxTokens, ok := model.IntParam(p, "max_tokens"); ok {
		params.MaxCompletionTokens = openai.Int(maxTokens)
	}
}

// Info returns metadata describing this OpenAI model implementation.
func (m *Model) Info() model.Info {
	return model.Info{
		Name:     m.opts.Model,
		Provider: "openai",
	}
}
