// Package config contains concrete ConfigSource implementations: an
// in-memory registry for tests and embedding applications, and a file-backed
// source reading one YAML definition per agent identity. The ConfigSource
// interface and AgentConfig type reside in the core package.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/hupe1980/agentpipe/core"
)

// StaticSource is an in-memory ConfigSource. Registered configs are served
// as-is; the pipeline copies what it mutates, so sharing is safe. Safe for
// concurrent use.
type StaticSource struct {
	mu     sync.RWMutex
	agents map[string]*core.AgentConfig
}

// NewStaticSource creates an empty StaticSource.
func NewStaticSource() *StaticSource {
	return &StaticSource{agents: make(map[string]*core.AgentConfig)}
}

// Register adds or replaces the configuration for cfg.Name.
func (s *StaticSource) Register(cfg *core.AgentConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.agents[cfg.Name] = cfg
}

// Agent implements core.ConfigSource.
func (s *StaticSource) Agent(name string) (*core.AgentConfig, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cfg, exists := s.agents[name]
	if !exists {
		return nil, fmt.Errorf("agent %q: %w", name, core.ErrConfigNotFound)
	}
	return cfg, nil
}

// FileSource resolves agent configurations from a directory of YAML files,
// one <identity>.yaml per agent. Prompt order follows document order.
type FileSource struct {
	dir string
}

// NewFileSource creates a FileSource rooted at dir.
func NewFileSource(dir string) *FileSource {
	return &FileSource{dir: dir}
}

// Agent implements core.ConfigSource. A missing file maps to
// core.ErrConfigNotFound; any other read or parse failure is returned as-is.
func (f *FileSource) Agent(name string) (*core.AgentConfig, error) {
	path := filepath.Join(f.dir, name+".yaml")

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("agent %q: %w", name, core.ErrConfigNotFound)
		}
		return nil, fmt.Errorf("read agent config %s: %w", path, err)
	}

	cfg := &core.AgentConfig{Name: name}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("parse agent config %s: %w", path, err)
	}
	if cfg.Name == "" {
		cfg.Name = name
	}
	if cfg.Params == nil {
		cfg.Params = map[string]any{}
	}
	if cfg.Prompts == nil {
		cfg.Prompts = core.NewPromptSet()
	}

	return cfg, nil
}
