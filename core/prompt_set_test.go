package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gopkg.in/yaml.v3"
)

func TestPromptSet_InsertionOrder(t *testing.T) {
	set := NewPromptSet()
	set.Set("system", "You are {{.name}}.")
	set.Set("user", "Task: {{.task}}")
	set.Set("footer", "Answer briefly.")

	assert.Equal(t, []string{"system", "user", "footer"}, set.Names())

	// updating an existing name keeps its position
	set.Set("user", "Task: {{.task}}!")
	assert.Equal(t, []string{"system", "user", "footer"}, set.Names())

	source, ok := set.Get("user")
	assert.True(t, ok)
	assert.Equal(t, "Task: {{.task}}!", source)
}

func TestPromptSet_EachStopsOnError(t *testing.T) {
	set := NewPromptSet()
	set.Set("a", "1")
	set.Set("b", "2")
	set.Set("c", "3")

	var seen []string
	err := set.Each(func(name, _ string) error {
		seen = append(seen, name)
		if name == "b" {
			return assert.AnError
		}
		return nil
	})

	assert.ErrorIs(t, err, assert.AnError)
	assert.Equal(t, []string{"a", "b"}, seen)
}

func TestPromptSet_CloneIsIndependent(t *testing.T) {
	set := NewPromptSet()
	set.Set("a", "1")

	clone := set.Clone()
	clone.Set("b", "2")
	clone.Set("a", "changed")

	assert.Equal(t, 1, set.Len())
	original, _ := set.Get("a")
	assert.Equal(t, "1", original)
}

func TestPromptSet_NilSafety(t *testing.T) {
	var set *PromptSet

	assert.Equal(t, 0, set.Len())
	assert.Empty(t, set.Names())
	assert.NoError(t, set.Each(func(string, string) error { return assert.AnError }))
	assert.Equal(t, 0, set.Clone().Len())
}

func TestPromptSet_YAMLRoundTrip(t *testing.T) {
	in := []byte("p1: \"Objective: {{.objective}}\"\np0: second\nzz: third\n")

	var set PromptSet
	assert.NoError(t, yaml.Unmarshal(in, &set))
	// document order, not lexical order
	assert.Equal(t, []string{"p1", "p0", "zz"}, set.Names())

	out, err := yaml.Marshal(&set)
	assert.NoError(t, err)

	var again PromptSet
	assert.NoError(t, yaml.Unmarshal(out, &again))
	assert.Equal(t, set.Names(), again.Names())
}
