package prompt

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hupe1980/agentpipe/core"
)

// Interface compliance (compile-time assertion)
var _ core.Renderer = (*Renderer)(nil)

func TestRenderer_StaticSource(t *testing.T) {
	r := NewRenderer()
	data := core.RuntimeData{}

	tmpl, applicable, err := r.Validate("You are a helpful assistant.", data)
	assert.NoError(t, err)
	assert.True(t, applicable)

	text, err := r.Render(tmpl, data)
	assert.NoError(t, err)
	assert.Equal(t, "You are a helpful assistant.", text)
}

func TestRenderer_RendersData(t *testing.T) {
	r := NewRenderer()
	data := core.RuntimeData{"objective": "say hi"}

	tmpl, applicable, err := r.Validate("Objective: {{.objective}}", data)
	assert.NoError(t, err)
	assert.True(t, applicable)

	text, err := r.Render(tmpl, data)
	assert.NoError(t, err)
	assert.Equal(t, "Objective: say hi", text)
}

func TestRenderer_NotApplicable(t *testing.T) {
	r := NewRenderer()

	// referenced key absent
	_, applicable, err := r.Validate("Objective: {{.objective}}", core.RuntimeData{})
	assert.NoError(t, err)
	assert.False(t, applicable)

	// referenced key present but empty
	_, applicable, err = r.Validate("Objective: {{.objective}}", core.RuntimeData{"objective": ""})
	assert.NoError(t, err)
	assert.False(t, applicable)

	// referenced key nil
	_, applicable, err = r.Validate("Objective: {{.objective}}", core.RuntimeData{"objective": nil})
	assert.NoError(t, err)
	assert.False(t, applicable)
}

func TestRenderer_MalformedSource(t *testing.T) {
	r := NewRenderer()

	_, _, err := r.Validate("Objective: {{.objective", core.RuntimeData{"objective": "x"})
	assert.Error(t, err)
}

func TestRenderer_ConditionalFields(t *testing.T) {
	r := NewRenderer()
	source := "{{if .verbose}}long{{else}}short{{end}} answer on {{.topic}}"

	// condition fields count as references
	_, applicable, err := r.Validate(source, core.RuntimeData{"topic": "go"})
	assert.NoError(t, err)
	assert.False(t, applicable)

	data := core.RuntimeData{"topic": "go", "verbose": true}
	tmpl, applicable, err := r.Validate(source, data)
	assert.NoError(t, err)
	assert.True(t, applicable)

	text, err := r.Render(tmpl, data)
	assert.NoError(t, err)
	assert.Equal(t, "long answer on go", text)
}

func TestRenderer_HelperFuncs(t *testing.T) {
	r := NewRenderer()
	data := core.RuntimeData{"topic": "go"}

	tmpl, applicable, err := r.Validate("{{upper .topic}}", data)
	assert.NoError(t, err)
	assert.True(t, applicable)

	text, err := r.Render(tmpl, data)
	assert.NoError(t, err)
	assert.Equal(t, "GO", text)
}

func TestRenderer_Deterministic(t *testing.T) {
	r := NewRenderer()
	data := core.RuntimeData{"objective": "say hi"}

	tmpl, _, err := r.Validate("Objective: {{.objective}}", data)
	assert.NoError(t, err)

	first, err := r.Render(tmpl, data)
	assert.NoError(t, err)
	second, err := r.Render(tmpl, data)
	assert.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestRenderer_UnexpectedHandle(t *testing.T) {
	r := NewRenderer()
	_, err := r.Render("not a handle", core.RuntimeData{})
	assert.Error(t, err)
}
