package agent

import (
	"strings"
	"time"

	"github.com/hupe1980/agentpipe/core"
	"github.com/hupe1980/agentpipe/logging"
	"github.com/hupe1980/agentpipe/model"
)

// Default stage implementations. Each one is idempotent in isolation; the
// full sequence runs exactly once per logical task.

// loadAgentData initializes RuntimeData from the resolved config and merges
// the caller overrides on top, last writer wins. Params and prompts are
// independent copies: later mutation never alters the AgentConfig. The
// config is resolved here if Run has not done so already, so the stage
// stands on its own.
func (a *Agent) loadAgentData(rc *core.RunContext) error {
	if rc.Config == nil {
		cfg, err := a.source.Agent(a.name)
		if err != nil {
			return err
		}
		rc.Config = cfg
	}

	rc.Data = core.NewRuntimeData(rc.Config)
	rc.Data.Merge(rc.Overrides)

	return nil
}

// loadMainData adds the derived objective key from the config directives. An
// absent directive yields an empty value rather than an error; this loader
// never fails. A caller-supplied objective override wins over the derived
// value.
func (a *Agent) loadMainData(rc *core.RunContext) error {
	if _, overridden := rc.Overrides[core.KeyObjective]; overridden {
		return nil
	}
	rc.Data[core.KeyObjective] = rc.Config.Objective()
	return nil
}

// loadAdditionalData is a no-op by default. Overrides may read and mutate
// RuntimeData in place but must not replace the container itself, so the
// reference stays stable across the pipeline.
func (a *Agent) loadAdditionalData(*core.RunContext) error { return nil }

// generatePrompt validates and renders every template in insertion order. A
// template the renderer marks not applicable is skipped silently; its
// position is dropped, not null-padded, and ordering of the remaining
// segments is preserved.
func (a *Agent) generatePrompt(rc *core.RunContext) error {
	rc.Prompt = []string{}

	return rc.Data.Prompts().Each(func(name, source string) error {
		tmpl, applicable, err := a.renderer.Validate(source, rc.Data)
		if err != nil {
			return &core.RenderError{Prompt: name, Err: err}
		}
		if !applicable {
			a.logger.Debug("Prompt skipped", "agent", a.name, "run_id", rc.RunID, "prompt", name)
			return nil
		}

		text, err := a.renderer.Render(tmpl, rc.Data)
		if err != nil {
			return &core.RenderError{Prompt: name, Err: err}
		}
		rc.Prompt = append(rc.Prompt, text)

		return nil
	})
}

// runModel delegates generation to the model collaborator with the rendered
// prompt sequence and the invocation params from RuntimeData. The result is
// the raw text with surrounding whitespace stripped. Adapter errors
// propagate with no local retry; an empty prompt sequence still invokes the
// model.
func (a *Agent) runModel(rc *core.RunContext) error {
	params := rc.Data.Params()
	if params == nil {
		params = map[string]any{}
	}

	start := time.Now()
	raw, err := a.llm.Generate(rc.Context, model.Request{Prompts: rc.Prompt, Params: params})
	logging.LogModelCall(a.logger, a.name, rc.RunID, a.llm.Info().Name, time.Since(start), err)
	if err != nil {
		return err
	}

	rc.Result = strings.TrimSpace(raw)

	return nil
}

// parseResult is a no-op by default. Overrides may replace the result with
// structured-extraction logic but must leave it defined on success.
func (a *Agent) parseResult(*core.RunContext) error { return nil }

// saveResult persists the result to the Results collection, best effort. A
// storage failure is logged and swallowed: losing recall of a past result
// must not block delivering the current one.
func (a *Agent) saveResult(rc *core.RunContext) error {
	if a.memory == nil {
		return nil
	}

	req := core.SaveRequest{
		Data:       []any{rc.Result},
		Collection: core.ResultsCollection,
	}
	if err := a.memory.Save(req); err != nil {
		a.logger.Warn(
			"Result save failed",
			"agent", a.name,
			"run_id", rc.RunID,
			"collection", req.Collection,
			"error", err.Error(),
		)
	}

	return nil
}

// buildOutput derives the caller-facing output, by default a copy of the
// result. Overrides may build a different shape from Result and RuntimeData
// but must stay deterministic given identical inputs.
func (a *Agent) buildOutput(rc *core.RunContext) error {
	rc.Output = rc.Result
	return nil
}
