package core

import "errors"

// ErrConfigNotFound is returned by a ConfigSource when no configuration
// exists for the requested agent identity.
var ErrConfigNotFound = errors.New("agent configuration not found")

// ObjectiveDirective is the directive key holding an agent's objective.
const ObjectiveDirective = "Objective"

// Settings groups the optional behavioral directives of an agent.
type Settings struct {
	// Directives holds free-form string directives. The well-known
	// "Objective" directive feeds the derived `objective` runtime key.
	Directives map[string]string `yaml:"directives"`
}

// AgentConfig is the static, loaded-once configuration for an agent
// identity. It is owned by the ConfigSource and treated as read-only by the
// pipeline: stages work on RuntimeData copies, never on the config itself.
type AgentConfig struct {
	// Name is the agent identity the config was resolved by.
	Name string `yaml:"name"`
	// Params holds invocation-time options passed through to the model.
	Params map[string]any `yaml:"params"`
	// Prompts maps prompt names to template sources. Iteration order is
	// part of the contract downstream, hence the ordered set.
	Prompts *PromptSet `yaml:"prompts"`
	// Settings carries optional directives.
	Settings Settings `yaml:"settings"`
}

// Objective returns the configured objective directive, or the empty string
// when no directive is set. It never fails.
func (c *AgentConfig) Objective() string {
	if c == nil || c.Settings.Directives == nil {
		return ""
	}
	return c.Settings.Directives[ObjectiveDirective]
}

// ConfigSource resolves an agent identity to its static configuration.
//
// Implementations must return an error wrapping ErrConfigNotFound when the
// identity is unknown, and should be safe for concurrent use.
type ConfigSource interface {
	Agent(name string) (*AgentConfig, error)
}
