package model

import (
	"context"
	"fmt"
	"strings"
)

// Request captures the normalized model input produced by the prompt
// generation stage.
type Request struct {
	// Prompts is the ordered sequence of rendered prompt segments. The
	// order is significant; adapters treat it as an ordered conversation
	// or section list.
	Prompts []string `json:"prompts"`
	// Params holds invocation-time options (model id, temperature, token
	// limits). Interpretation is adapter specific; unknown keys are
	// ignored.
	Params map[string]any `json:"params,omitempty"`
}

// Info contains metadata about a model implementation.
type Info struct {
	Name     string `json:"name"`
	Provider string `json:"provider"` // "openai", "anthropic", "mock", etc.
}

// Model is the minimal interface required by the pipeline to drive text
// generation. Generate blocks until the provider returns or fails; any error
// propagates to the run unmodified, with no retry in the pipeline.
type Model interface {
	Generate(ctx context.Context, req Request) (string, error)

	// Info returns information about the model implementation.
	Info() Info
}

// StringParam extracts a string invocation parameter.
func StringParam(params map[string]any, key string) (string, bool) {
	v, ok := params[key].(string)
	return v, ok
}

// FloatParam extracts a numeric invocation parameter as float64, accepting
// the integer and float types a config decoder commonly produces.
func FloatParam(params map[string]any, key string) (float64, bool) {
	switch v := params[key].(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	}
	return 0, false
}

// IntParam extracts an integer invocation parameter, accepting floats with
// no fractional part.
func IntParam(params map[string]any, key string) (int64, bool) {
	switch v := params[key].(type) {
	case int:
		return int64(v), true
	case int64:
		return v, true
	case float64:
		if v == float64(int64(v)) {
			return int64(v), true
		}
	}
	return 0, false
}

// MockModel is a lightweight in-memory Model useful for tests & examples.
type MockModel struct {
	info      Info
	responses map[string]string
	err       error
}

// NewMockModel constructs a MockModel identified by name and provider.
func NewMockModel(name, provider string) *MockModel {
	return &MockModel{
		info:      Info{Name: name, Provider: provider},
		responses: make(map[string]string),
	}
}

// AddResponse registers a deterministic canned completion for a prompt
// sequence, keyed by the newline-joined segments.
func (m *MockModel) AddResponse(prompt, response string) { m.responses[prompt] = response }

// FailWith makes every subsequent Generate call return err.
func (m *MockModel) FailWith(err error) { m.err = err }

// Generate implements Model; returns the canned completion for the joined
// prompt sequence or a generic echo response.
func (m *MockModel) Generate(ctx context.Context, req Request) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	key := strings.Join(req.Prompts, "\n")
	if resp, ok := m.responses[key]; ok {
		return resp, nil
	}
	return fmt.Sprintf("Mock response to: %s", key), nil
}

// Info implements Model interface.
func (m *MockModel) Info() Info { return m.info }
