package model

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMockModel_CannedResponse(t *testing.T) {
	m := NewMockModel("test-model", "mock")
	m.AddResponse("hello", "world")

	got, err := m.Generate(context.Background(), Request{Prompts: []string{"hello"}})
	assert.NoError(t, err)
	assert.Equal(t, "world", got)
}

func TestMockModel_DefaultResponse(t *testing.T) {
	m := NewMockModel("test-model", "mock")

	got, err := m.Generate(context.Background(), Request{Prompts: []string{"anything"}})
	assert.NoError(t, err)
	assert.Equal(t, "Mock response to: anything", got)
}

func TestMockModel_EmptyPromptSequence(t *testing.T) {
	m := NewMockModel("test-model", "mock")
	m.AddResponse("", "empty ok")

	got, err := m.Generate(context.Background(), Request{Prompts: []string{}})
	assert.NoError(t, err)
	assert.Equal(t, "empty ok", got)
}

func TestMockModel_FailWith(t *testing.T) {
	boom := errors.New("boom")
	m := NewMockModel("test-model", "mock")
	m.FailWith(boom)

	_, err := m.Generate(context.Background(), Request{Prompts: []string{"x"}})
	assert.ErrorIs(t, err, boom)
}

func TestMockModel_ContextCancelled(t *testing.T) {
	m := NewMockModel("test-model", "mock")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := m.Generate(ctx, Request{Prompts: []string{"x"}})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMockModel_Info(t *testing.T) {
	m := NewMockModel("test-model", "mock")
	assert.Equal(t, Info{Name: "test-model", Provider: "mock"}, m.Info())
}

func TestParamHelpers(t *testing.T) {
	params := map[string]any{
		"model":       "gpt-4o",
		"temperature": 0.3,
		"max_tokens":  512,
		"whole":       float64(8),
		"frac":        1.5,
	}

	name, ok := StringParam(params, "model")
	assert.True(t, ok)
	assert.Equal(t, "gpt-4o", name)

	_, ok = StringParam(params, "missing")
	assert.False(t, ok)

	temp, ok := FloatParam(params, "temperature")
	assert.True(t, ok)
	assert.Equal(t, 0.3, temp)

	fromInt, ok := FloatParam(params, "max_tokens")
	assert.True(t, ok)
	assert.Equal(t, 512.0, fromInt)

	maxTokens, ok := IntParam(params, "max_tokens")
	assert.True(t, ok)
	assert.Equal(t, int64(512), maxTokens)

	whole, ok := IntParam(params, "whole")
	assert.True(t, ok)
	assert.Equal(t, int64(8), whole)

	// fractional floats don't coerce to int
	_, ok = IntParam(params, "frac")
	assert.False(t, ok)
}
