// Package prompt provides the default implementation of the core.Renderer
// boundary, backed by Go's text/template engine.
//
// Validation doubles as the applicability check: a template whose referenced
// top-level data fields are all present and non-empty is renderable; a
// template referencing an absent or empty field is "not applicable" and
// contributes nothing to the rendered prompt sequence. A malformed source is
// a hard error.
package prompt

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
	"text/template/parse"

	"github.com/hupe1980/agentpipe/core"
)

// handle is the opaque template produced by Validate. The static fast path
// skips parsing entirely.
type handle struct {
	source string
	tmpl   *template.Template
}

// Renderer renders prompt templates with text/template plus a small helper
// FuncMap. It is stateless and safe for concurrent use.
type Renderer struct {
	funcs template.FuncMap
}

// NewRenderer creates a Renderer with the default helper functions.
func NewRenderer() *Renderer {
	return &Renderer{
		funcs: template.FuncMap{
			"default": func(defaultVal any, val any) any {
				if val == nil || val == "" {
					return defaultVal
				}
				return val
			},
			"upper": strings.ToUpper,
			"lower": strings.ToLower,
			"title": func(s string) string {
				if len(s) == 0 {
					return s
				}
				return strings.ToUpper(string(s[0])) + strings.ToLower(s[1:])
			},
			"join": func(sep string, items []any) string {
				strItems := make([]string, len(items))
				for i, item := range items {
					strItems[i] = fmt.Sprintf("%v", item)
				}
				return strings.Join(strItems, sep)
			},
		},
	}
}

// Validate implements core.Renderer. A source without template markers is
// always applicable. Otherwise the source is parsed (parse failure is
// fatal) and every referenced top-level field is checked against data: any
// absent or empty field makes the template not applicable.
func (r *Renderer) Validate(source string, data core.RuntimeData) (core.Template, bool, error) {
	if !strings.Contains(source, "{{") { // fast path: no template markers
		return &handle{source: source}, true, nil
	}

	tmpl, err := template.New("prompt").Funcs(r.funcs).Option("missingkey=error").Parse(source)
	if err != nil {
		return nil, false, fmt.Errorf("parse template: %w", err)
	}

	for field := range referencedFields(tmpl) {
		value, exists := data[field]
		if !exists || value == nil || value == "" {
			return nil, false, nil
		}
	}

	return &handle{source: source, tmpl: tmpl}, true, nil
}

// Render implements core.Renderer. The handle must originate from Validate.
func (r *Renderer) Render(tmpl core.Template, data core.RuntimeData) (string, error) {
	h, ok := tmpl.(*handle)
	if !ok {
		return "", fmt.Errorf("unexpected template handle type %T", tmpl)
	}
	if h.tmpl == nil {
		return h.source, nil
	}

	var buf bytes.Buffer
	if err := h.tmpl.Execute(&buf, map[string]any(data)); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// referencedFields walks the parse tree collecting the first identifier of
// every field access, i.e. the top-level data keys the template depends on.
func referencedFields(tmpl *template.Template) map[string]struct{} {
	fields := map[string]struct{}{}
	if tmpl.Tree != nil && tmpl.Tree.Root != nil {
		collectFields(tmpl.Tree.Root, fields)
	}
	return fields
}

func collectFields(node parse.Node, out map[string]struct{}) {
	switch n := node.(type) {
	case *parse.ListNode:
		if n == nil {
			return
		}
		for _, child := range n.Nodes {
			collectFields(child, out)
		}
	case *parse.ActionNode:
		collectPipe(n.Pipe, out)
	case *parse.IfNode:
		collectBranch(&n.BranchNode, out)
	case *parse.RangeNode:
		collectBranch(&n.BranchNode, out)
	case *parse.WithNode:
		collectBranch(&n.BranchNode, out)
	case *parse.TemplateNode:
		collectPipe(n.Pipe, out)
	case *parse.FieldNode:
		if len(n.Ident) > 0 {
			out[n.Ident[0]] = struct{}{}
		}
	}
}

func collectBranch(n *parse.BranchNode, out map[string]struct{}) {
	collectPipe(n.Pipe, out)
	collectFields(n.List, out)
	collectFields(n.ElseList, out)
}

func collectPipe(pipe *parse.PipeNode, out map[string]struct{}) {
	if pipe == nil {
		return
	}
	for _, cmd := range pipe.Cmds {
		for _, arg := range cmd.Args {
			switch a := arg.(type) {
			case *parse.FieldNode:
				if len(a.Ident) > 0 {
					out[a.Ident[0]] = struct{}{}
				}
			case *parse.PipeNode:
				collectPipe(a, out)
			}
		}
	}
}
