package core

import "maps"

// Well-known RuntimeData keys. Params and Prompts are present from creation
// onward; Objective is derived by the main data loader.
const (
	KeyParams    = "params"
	KeyPrompts   = "prompts"
	KeyObjective = "objective"
)

// RuntimeData is the per-run mutable mapping consumed by every pipeline
// stage after aggregation. It is created once at the start of a run from an
// AgentConfig, merged with caller overrides, and discarded when the run
// returns. It is never shared across concurrent runs.
//
// Invariant: the "params" and "prompts" keys are always present after
// creation (possibly as empty containers). They are independent copies, so
// later mutation never alters the underlying AgentConfig.
type RuntimeData map[string]any

// NewRuntimeData builds the initial runtime mapping from an agent config,
// copying params and prompts so the config stays immutable for the run.
func NewRuntimeData(cfg *AgentConfig) RuntimeData {
	data := RuntimeData{}
	params := map[string]any{}
	if cfg != nil {
		maps.Copy(params, cfg.Params)
	}
	data[KeyParams] = params
	if cfg != nil {
		data[KeyPrompts] = cfg.Prompts.Clone()
	} else {
		data[KeyPrompts] = NewPromptSet()
	}
	return data
}

// Merge folds overrides into the mapping, last writer wins. Colliding keys,
// including "params" and "prompts", are overwritten without conflict
// detection.
func (d RuntimeData) Merge(overrides map[string]any) {
	for k, v := range overrides {
		d[k] = v
	}
}

// Params returns the invocation-parameter mapping, or nil when the key was
// overridden with a value of a different type.
func (d RuntimeData) Params() map[string]any {
	params, _ := d[KeyParams].(map[string]any)
	return params
}

// Prompts returns the prompt set, or nil when the key was overridden with a
// value of a different type.
func (d RuntimeData) Prompts() *PromptSet {
	prompts, _ := d[KeyPrompts].(*PromptSet)
	return prompts
}

// Objective returns the derived objective value, or the empty string when
// unset or overridden with a non-string.
func (d RuntimeData) Objective() string {
	objective, _ := d[KeyObjective].(string)
	return objective
}
