// Package model defines the provider-agnostic abstractions for invoking
// language models from an agentpipe run.
//
// Core goals:
//   - Keep the request shape minimal: an ordered prompt sequence plus an
//     invocation-parameter mapping
//   - Keep generation blocking from the pipeline's perspective; latency,
//     availability and retry policy are owned by the provider adapter
//   - Facilitate lightweight mocking for tests (MockModel)
//
// Providers (e.g. OpenAI, Anthropic) implement the Model interface from this
// package so the pipeline remains decoupled from vendor SDKs.
package model
