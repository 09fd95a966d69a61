package core

import (
	"context"
	"maps"

	"github.com/google/uuid"

	"github.com/hupe1980/agentpipe/logging"
)

// RunContext carries the mutable, per-invocation execution state passed to
// every pipeline stage. It aggregates:
//
//   - The ambient cancellation Context
//   - Identifiers (agent name, run ID)
//   - The resolved AgentConfig (read-only to stages)
//   - Caller overrides and the aggregated RuntimeData
//   - The well-defined slots each stage writes: Prompt, Result, Output
//
// Each stage writes to its slot and every later stage observes the write.
// A RunContext is created at the start of a run and discarded at its end; it
// is never shared across concurrent runs.
type RunContext struct {
	Context   context.Context
	AgentName string
	RunID     string

	// Config is the static configuration resolved for this run.
	Config *AgentConfig
	// Overrides are the caller-supplied named arguments, merged into Data
	// with last-writer-wins semantics during loading.
	Overrides map[string]any
	// Data is the runtime aggregation consumed by every stage after
	// loading. Stages may mutate it in place but must not replace it.
	Data RuntimeData
	// Prompt is the ordered sequence of rendered prompt segments.
	Prompt []string
	// Result is the trimmed raw model output.
	Result string
	// Output is the value returned to the caller, defaulting to Result.
	Output any

	Logger logging.Logger
}

// NewRunContext constructs a RunContext with a fresh run ID and a defensive
// copy of the caller overrides.
func NewRunContext(ctx context.Context, agentName string, overrides map[string]any, logger logging.Logger) *RunContext {
	if ctx == nil {
		ctx = context.Background()
	}
	if logger == nil {
		logger = logging.NoOpLogger{}
	}
	ov := make(map[string]any, len(overrides))
	maps.Copy(ov, overrides)
	return &RunContext{
		Context:   ctx,
		AgentName: agentName,
		RunID:     NewRunID(),
		Overrides: ov,
		Logger:    logger,
	}
}

// Done returns a channel closed when the underlying context is cancelled.
func (rc *RunContext) Done() <-chan struct{} { return rc.Context.Done() }

// Err returns the cancellation error (if any) from the underlying context.
func (rc *RunContext) Err() error { return rc.Context.Err() }

// NewRunID generates a unique identifier for a pipeline run.
func NewRunID() string { return uuid.NewString() }
