// Package agentpipe provides a high-level façade over the agent pipeline and
// its collaborator abstractions (configuration, rendering, models, memory &
// logging) enabling rapid construction of template-driven agents. Most
// applications interact with this package by:
//  1. Creating an AgentPipe via New() with a config source and model
//     (optionally overriding the default in-memory collaborators)
//  2. Registering one or more agents, each optionally specializing pipeline
//     stages
//  3. Running agents by identity with caller overrides
//
// The façade delegates orchestration to agent.Agent while keeping setup and
// usage ergonomics concise. All defaults are safe for local development and
// testing; production deployments typically supply a durable memory store
// and a structured logger.
package agentpipe

import (
	"context"
	"sync"

	"github.com/hupe1980/agentpipe/agent"
	"github.com/hupe1980/agentpipe/core"
	"github.com/hupe1980/agentpipe/logging"
	"github.com/hupe1980/agentpipe/memory"
	"github.com/hupe1980/agentpipe/model"
	"github.com/hupe1980/agentpipe/prompt"
)

// Options configures the AgentPipe instance.
type Options struct {
	// Renderer validates and renders prompt templates (defaults to the
	// text/template based implementation).
	Renderer core.Renderer

	// MemoryStore persists run results (defaults to in-memory).
	MemoryStore core.MemoryStore

	// Notifier receives status messages (defaults to NoOp).
	Notifier core.Notifier

	// Logger (defaults to NoOp logger if nil).
	Logger logging.Logger
}

// AgentPipe is the high-level façade aggregating shared collaborators and a
// registry of configured agents.
type AgentPipe struct {
	source core.ConfigSource
	llm    model.Model
	opts   Options

	mu     sync.RWMutex
	agents map[string]*agent.Agent
}

// New creates a new AgentPipe instance with optional overrides. Any unset
// collaborator is initialized with an in-memory / no-op implementation.
func New(source core.ConfigSource, llm model.Model, optFns ...func(o *Options)) *AgentPipe {
	opts := Options{
		Renderer:    prompt.NewRenderer(),
		MemoryStore: memory.NewInMemoryStore(),
		Notifier:    core.NoOpNotifier{},
		Logger:      logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	return &AgentPipe{
		source: source,
		llm:    llm,
		opts:   opts,
		agents: make(map[string]*agent.Agent),
	}
}

// NewAgent constructs an agent wired with the façade's shared collaborators,
// registers it under its identity and returns it. Per-agent options (stage
// overrides in particular) are applied on top.
func (p *AgentPipe) NewAgent(name string, optFns ...func(o *agent.Options)) *agent.Agent {
	fns := append([]func(o *agent.Options){
		agent.WithRenderer(p.opts.Renderer),
		agent.WithMemoryStore(p.opts.MemoryStore),
		agent.WithNotifier(p.opts.Notifier),
		agent.WithLogger(p.opts.Logger),
	}, optFns...)

	a := agent.New(name, p.source, p.llm, fns...)

	p.mu.Lock()
	p.agents[name] = a
	p.mu.Unlock()

	return a
}

// Agent returns the registered agent for an identity, or nil.
func (p *AgentPipe) Agent(name string) *agent.Agent {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.agents[name]
}

// Run executes the pipeline for the named agent with caller overrides,
// constructing a default-wired agent on first use.
func (p *AgentPipe) Run(ctx context.Context, name string, overrides map[string]any) (any, error) {
	p.mu.RLock()
	a := p.agents[name]
	p.mu.RUnlock()

	if a == nil {
		a = p.NewAgent(name)
	}

	return a.Run(ctx, overrides)
}
