// Package core provides the foundational domain types, interfaces and the
// per-run execution context used by agentpipe. It defines the core
// abstractions for:
//
//   - AgentConfig (static, loaded-once configuration for an agent identity)
//   - RuntimeData (per-run mutable aggregation of config, derived values and
//     caller overrides with last-writer-wins merge semantics)
//   - PromptSet (ordered prompt-name → template-source mapping)
//   - RunContext (the mutable state threaded through every pipeline stage)
//   - Collaborator boundaries: ConfigSource, Renderer, MemoryStore, Notifier
//
// The package intentionally keeps implementation concerns (config parsing,
// template rendering, model providers, concrete stores) out of scope,
// exposing small interfaces so custom backends can be wired in without
// introducing dependency cycles.
package core
