package core

import "fmt"

// Template is an opaque handle produced by a Renderer's validation step and
// consumed by its rendering step. The pipeline never inspects it.
type Template any

// Renderer is the prompt rendering collaborator boundary.
//
// Validate inspects a template source against the current runtime data and
// either yields a renderable handle (applicable=true), signals that the
// template does not apply to this run (applicable=false, no error), or fails
// on a malformed source. Render produces the final prompt text from a handle
// previously returned by Validate. Both must be deterministic given
// identical inputs.
type Renderer interface {
	Validate(source string, data RuntimeData) (tmpl Template, applicable bool, err error)
	Render(tmpl Template, data RuntimeData) (string, error)
}

// RenderError reports a fatal template failure for a named prompt. It aborts
// the run before model invocation.
type RenderError struct {
	Prompt string
	Err    error
}

// Error implements the error interface.
func (e *RenderError) Error() string {
	return fmt.Sprintf("render prompt %q: %v", e.Prompt, e.Err)
}

// Unwrap exposes the underlying renderer error for errors.Is / errors.As.
func (e *RenderError) Unwrap() error { return e.Err }
