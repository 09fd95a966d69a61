package agent

import (
	"context"
	"fmt"
	"time"

	"github.com/hupe1980/agentpipe/core"
	"github.com/hupe1980/agentpipe/logging"
	"github.com/hupe1980/agentpipe/memory"
	"github.com/hupe1980/agentpipe/model"
	"github.com/hupe1980/agentpipe/prompt"
)

// StageFunc is one overridable step of the run sequence. Every stage shares
// this signature: it reads and writes the RunContext slots and returns an
// error to abort the remainder of the pipeline.
type StageFunc func(*core.RunContext) error

// Stages holds the pipeline's stage implementations in execution order. A
// nil field selects the default implementation, so overriding one stage
// leaves the rest untouched.
type Stages struct {
	LoadAgentData      StageFunc
	LoadMainData       StageFunc
	LoadAdditionalData StageFunc
	GeneratePrompt     StageFunc
	RunModel           StageFunc
	ParseResult        StageFunc
	SaveResult         StageFunc
	BuildOutput        StageFunc
}

// Options configures an Agent instance.
//
// Use functional options with New to override defaults.
type Options struct {
	Renderer    core.Renderer
	MemoryStore core.MemoryStore
	Notifier    core.Notifier
	Logger      logging.Logger
	Stages      Stages
}

// WithRenderer overrides the prompt rendering collaborator.
func WithRenderer(r core.Renderer) func(o *Options) {
	return func(o *Options) { o.Renderer = r }
}

// WithMemoryStore overrides the persistence collaborator.
func WithMemoryStore(s core.MemoryStore) func(o *Options) {
	return func(o *Options) { o.MemoryStore = s }
}

// WithNotifier overrides the status notification sink.
func WithNotifier(n core.Notifier) func(o *Options) {
	return func(o *Options) { o.Notifier = n }
}

// WithLogger overrides the structured logger.
func WithLogger(l logging.Logger) func(o *Options) {
	return func(o *Options) { o.Logger = l }
}

// WithStages overrides individual pipeline stages. Zero fields keep their
// defaults.
func WithStages(s Stages) func(o *Options) {
	return func(o *Options) { o.Stages = s }
}

// Agent drives the workflow pipeline for one configured identity. It holds
// no per-run state; concurrent Run calls on the same instance are safe as
// long as the injected collaborators are.
type Agent struct {
	name   string
	source core.ConfigSource
	llm    model.Model

	renderer core.Renderer
	memory   core.MemoryStore
	notifier core.Notifier
	logger   logging.Logger

	stages Stages
}

// New creates an agent for the given identity wired with sensible defaults:
// the text/template renderer, an in-memory store, no notifications and no
// logging. The config source and model are required collaborators.
func New(name string, source core.ConfigSource, llm model.Model, optFns ...func(o *Options)) *Agent {
	opts := Options{
		Renderer:    prompt.NewRenderer(),
		MemoryStore: memory.NewInMemoryStore(),
		Notifier:    core.NoOpNotifier{},
		Logger:      logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	a := &Agent{
		name:     name,
		source:   source,
		llm:      llm,
		renderer: opts.Renderer,
		memory:   opts.MemoryStore,
		notifier: opts.Notifier,
		logger:   opts.Logger,
	}
	a.stages = a.resolveStages(opts.Stages)

	return a
}

// Name returns the agent identity used for configuration lookup.
func (a *Agent) Name() string { return a.name }

// resolveStages fills unset stage slots with the default implementations.
func (a *Agent) resolveStages(overrides Stages) Stages {
	stages := Stages{
		LoadAgentData:      a.loadAgentData,
		LoadMainData:       a.loadMainData,
		LoadAdditionalData: a.loadAdditionalData,
		GeneratePrompt:     a.generatePrompt,
		RunModel:           a.runModel,
		ParseResult:        a.parseResult,
		SaveResult:         a.saveResult,
		BuildOutput:        a.buildOutput,
	}
	if overrides.LoadAgentData != nil {
		stages.LoadAgentData = overrides.LoadAgentData
	}
	if overrides.LoadMainData != nil {
		stages.LoadMainData = overrides.LoadMainData
	}
	if overrides.LoadAdditionalData != nil {
		stages.LoadAdditionalData = overrides.LoadAdditionalData
	}
	if overrides.GeneratePrompt != nil {
		stages.GeneratePrompt = overrides.GeneratePrompt
	}
	if overrides.RunModel != nil {
		stages.RunModel = overrides.RunModel
	}
	if overrides.ParseResult != nil {
		stages.ParseResult = overrides.ParseResult
	}
	if overrides.SaveResult != nil {
		stages.SaveResult = overrides.SaveResult
	}
	if overrides.BuildOutput != nil {
		stages.BuildOutput = overrides.BuildOutput
	}
	return stages
}

// namedStage pairs a stage with its log name.
type namedStage struct {
	name string
	fn   StageFunc
}

// sequence returns the stages in their fixed execution order.
func (a *Agent) sequence() []namedStage {
	return []namedStage{
		{"load_agent_data", a.stages.LoadAgentData},
		{"load_main_data", a.stages.LoadMainData},
		{"load_additional_data", a.stages.LoadAdditionalData},
		{"generate_prompt", a.stages.GeneratePrompt},
		{"run_model", a.stages.RunModel},
		{"parse_result", a.stages.ParseResult},
		{"save_result", a.stages.SaveResult},
		{"build_output", a.stages.BuildOutput},
	}
}

// Run executes the pipeline once: resolve config, notify, then the stage
// sequence. It returns the built Output, or the first stage error. The
// caller-supplied overrides are merged into RuntimeData last-writer-wins.
//
// Config resolution happens before the notification so an unknown identity
// aborts without any side effect. No stage can be skipped or reordered; a
// specialized run replaces stage implementations instead.
func (a *Agent) Run(ctx context.Context, overrides map[string]any) (any, error) {
	cfg, err := a.source.Agent(a.name)
	if err != nil {
		return nil, err
	}

	rc := core.NewRunContext(ctx, a.name, overrides, a.logger)
	rc.Config = cfg

	a.notifier.Notify(fmt.Sprintf("Running agent %s ...", a.name))
	a.logger.Debug("Run started", "agent", a.name, "run_id", rc.RunID)

	start := time.Now()
	for i, stage := range a.sequence() {
		stageStart := time.Now()
		if err := stage.fn(rc); err != nil {
			logging.LogStage(a.logger, a.name, rc.RunID, stage.name, time.Since(stageStart), err)
			logging.LogRun(a.logger, a.name, rc.RunID, i, time.Since(start), err)
			return nil, fmt.Errorf("stage %s: %w", stage.name, err)
		}
		logging.LogStage(a.logger, a.name, rc.RunID, stage.name, time.Since(stageStart), nil)
	}

	logging.LogRun(a.logger, a.name, rc.RunID, len(a.sequence()), time.Since(start), nil)

	return rc.Output, nil
}
