// Package yamlscript loads the inquiry dialog script from a YAML document.
// Durations are written in Go notation (e.g. "600ms"); the decode goes
// through mapstructure so loosely typed documents still land in the right
// shapes.
package yamlscript

import (
	"context"
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/kinetic/pkg/domain"
)

// Source implements ports.ScriptLoader by reading a YAML file on each Load.
type Source struct {
	path string
}

// NewSource creates a loader for the given file path.
func NewSource(path string) *Source {
	return &Source{path: path}
}

// Load implements ports.ScriptLoader.
func (s *Source) Load(ctx context.Context) (*domain.Script, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read script %s: %w", s.path, err)
	}
	script, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse script %s: %w", s.path, err)
	}
	return script, nil
}

// Parse decodes and validates a YAML script document.
func Parse(data []byte) (*domain.Script, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("invalid yaml: %w", err)
	}

	var script domain.Script
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.StringToTimeDurationHookFunc(),
		Result:     &script,
		TagName:    "yaml",
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(raw); err != nil {
		return nil, fmt.Errorf("invalid script document: %w", err)
	}

	if err := script.Validate(); err != nil {
		return nil, err
	}
	return &script, nil
}
