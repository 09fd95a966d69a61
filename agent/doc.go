// Package agent contains the workflow pipeline that drives a single agent:
// load contextual data, render prompt templates, invoke a language model and
// persist/return the resulting text. The package focuses on three concerns:
//
//  1. The Agent type bundling identity plus collaborators (config source,
//     renderer, model, memory store, notifier, logger)
//  2. The fixed eight-stage run sequence and its default implementations
//  3. The override contract: every stage is a named function of the same
//     signature, individually replaceable without changing the control flow
//
// Design principles:
//   - No hidden global state; collaborators are injected at construction
//   - Per-run state lives in core.RunContext, so an Agent is stateless
//     between runs and distinct runs never share mutable state
//   - A specialized agent is just a different set of stage implementations,
//     never a different control-flow shape
//
// Execution model: Run resolves the agent's static configuration, emits a
// status notification, then executes the stages strictly in order, each one
// completing before the next begins. The first stage error aborts the run;
// persistence is the one deliberate exception and is handled best effort
// inside its stage.
package agent
