package core

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
	"gopkg.in/yaml.v3"
)

// PromptSet is an insertion-ordered mapping of prompt name → template source.
// Ordering matters: rendered prompt segments are handed to the model in
// exactly the order their templates appear here. A nil PromptSet behaves like
// an empty one for read operations.
type PromptSet struct {
	om *orderedmap.OrderedMap[string, string]
}

// NewPromptSet returns an empty PromptSet.
func NewPromptSet() *PromptSet {
	return &PromptSet{om: orderedmap.New[string, string]()}
}

// Set inserts or updates a template source. New names append to the end;
// updating an existing name keeps its original position.
func (p *PromptSet) Set(name, source string) {
	if p.om == nil {
		p.om = orderedmap.New[string, string]()
	}
	p.om.Set(name, source)
}

// Get returns the template source for name and whether it exists.
func (p *PromptSet) Get(name string) (string, bool) {
	if p == nil || p.om == nil {
		return "", false
	}
	return p.om.Get(name)
}

// Len returns the number of templates in the set.
func (p *PromptSet) Len() int {
	if p == nil || p.om == nil {
		return 0
	}
	return p.om.Len()
}

// Each invokes fn for every (name, source) pair in insertion order, stopping
// at the first error, which is returned.
func (p *PromptSet) Each(fn func(name, source string) error) error {
	if p == nil || p.om == nil {
		return nil
	}
	for pair := p.om.Oldest(); pair != nil; pair = pair.Next() {
		if err := fn(pair.Key, pair.Value); err != nil {
			return err
		}
	}
	return nil
}

// Names returns the prompt names in insertion order.
func (p *PromptSet) Names() []string {
	if p == nil || p.om == nil {
		return []string{}
	}
	names := make([]string, 0, p.om.Len())
	for pair := p.om.Oldest(); pair != nil; pair = pair.Next() {
		names = append(names, pair.Key)
	}
	return names
}

// Clone returns an independent copy preserving insertion order. Mutating the
// clone never affects the original.
func (p *PromptSet) Clone() *PromptSet {
	clone := NewPromptSet()
	if p == nil || p.om == nil {
		return clone
	}
	for pair := p.om.Oldest(); pair != nil; pair = pair.Next() {
		clone.om.Set(pair.Key, pair.Value)
	}
	return clone
}

// UnmarshalYAML decodes a YAML mapping preserving document order.
func (p *PromptSet) UnmarshalYAML(value *yaml.Node) error {
	om := orderedmap.New[string, string]()
	if err := om.UnmarshalYAML(value); err != nil {
		return err
	}
	p.om = om
	return nil
}

// MarshalYAML encodes the set as a YAML mapping in insertion order.
func (p *PromptSet) MarshalYAML() (any, error) {
	if p == nil || p.om == nil {
		return map[string]string{}, nil
	}
	return p.om.MarshalYAML()
}
