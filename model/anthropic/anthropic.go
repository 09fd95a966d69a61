// Package anthropic provides a model wrapper for the Anthropic Claude API.
package anthropic

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/hupe1980/agentpipe/model"
)

// Options configures the Anthropic model adapter (temperature, model id,
// max tokens, API key). Extend via functional options to preserve stability.
type Options struct {
	Model       anthropic.Model
	Temperature float64
	MaxTokens   int64
	APIKey      string
}

// Model wraps the Anthropic Messages API behind the generic model.Model interface.
type Model struct {
	client *anthropic.Client
	opts   Options
}

// NewModel creates a new Anthropic model using the official client
func NewModel(optFns ...func(o *Options)) *Model {
	opts := Options{
		Model:       anthropic.ModelClaude3_5Sonnet20241022,
		Temperature: 0.7,
		MaxTokens:   4096,
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	var clientOpts []option.RequestOption
	if opts.APIKey != "" {
		clientOpts = append(clientOpts, option.WithAPIKey(opts.APIKey))
	}

	client := anthropic.NewClient(clientOpts...)

	return &Model{
		client: &client,
		opts:   opts,
	}
}

// NewModelFromClient creates a new Anthropic model from an existing client
func NewModelFromClient(client *anthropic.Client, optFns ...func(o *Options)) *Model {
	opts := Options{
		Model:       anthropic.ModelClaude3_5Sonnet20241022,
		Temperature: 0.7,
		MaxTokens:   4096,
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	return &Model{
		client: client,
		opts:   opts,
	}
}

// Generate implements blocking generation against the Messages API. With two
// or more prompt segments the first becomes the system prompt and the rest
// user messages; a single segment is sent as a user message. Invocation
// params may override the model ("model"), temperature ("temperature") and
// token limit ("max_tokens").
func (m *Model) Generate(ctx context.Context, req model.Request) (string, error) {
	system, messages := splitPrompts(req.Prompts)

	params := anthropic.MessageNewParams{
		Model:       m.opts.Model,
		Messages:    messages,
		MaxTokens:   m.opts.MaxTokens,
		Temperature: anthropic.Float(m.opts.Temperature),
	}
	if system != "" {
		params.System = []anthropic.TextBlockParam{{Text: system}}
	}
	applyParams(&params, req.Params)

	resp, err := m.client.Messages.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("anthropic api error: %w", err)
	}

	var sb strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			sb.WriteString(block.AsText().Text)
		}
	}
	return sb.String(), nil
}

// splitPrompts maps the ordered segments onto the system/user message split
// the Messages API expects.
func splitPrompts(prompts []string) (string, []anthropic.MessageParam) {
	if len(prompts) == 0 {
		return "", nil
	}
	if len(prompts) == 1 {
		return "", []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompts[0])),
		}
	}
	messages := make([]anthropic.MessageParam, 0, len(prompts)-1)
	for _, text := range prompts[1:] {
		messages = append(messages, anthropic.NewUserMessage(anthropic.NewTextBlock(text)))
	}
	return prompts[0], messages
}

// applyParams folds per-invocation overrides into the request parameters.
func applyParams(params *anthropic.MessageNewParams, p map[string]any) {
	if name, ok := model.StringParam(p, "model"); ok {
		params.Model = anthropic.Model(name)
	}
	if temp, ok := model.FloatParam(p, "temperature"); ok {
		params.Temperature = anthropic.Float(temp)
	}
	if maxTokens, ok := model.IntParam(p, "max_tokens"); ok {
		params.MaxTokens = maxTokens
	}
}

// Info returns metadata describing this Anthropic model implementation.
func (m *Model) Info() model.Info {
	return model.Info{
		Name:     string(m.opts.Model),
		Provider: "anthropic",
	}
}
