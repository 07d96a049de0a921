// Package config loads textwash settings from a TOML file: default
// cleaning options plus named custom-pattern presets. Built-in presets
// are always available; file presets add to or override them.
package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/textwash/internal/engine/clean"
)

// Preset is a named custom-pattern configuration.
type Preset struct {
	Name        string `toml:"name"`
	Pattern     string `toml:"pattern"`
	Replacement string `toml:"replacement"`
}

// fileConfig is the on-disk TOML shape.
type fileConfig struct {
	Defaults defaults `toml:"defaults"`
	Presets  []Preset `toml:"preset"`
}

type defaults struct {
	RemoveExtraSpaces   bool `toml:"remove_extra_spaces"`
	RemoveExtraTabs     bool `toml:"remove_extra_tabs"`
	RemoveExtraNewlines bool `toml:"remove_extra_newlines"`
	TrimLines           bool `toml:"trim_lines"`
	TabWidth            int  `toml:"tab_width"`
	RemoveInvisible     bool `toml:"remove_invisible"`
}

// Settings is the resolved configuration.
type Settings struct {
	// Defaults pre-fills the cleaning config before per-run options.
	Defaults clean.Config

	presets map[string]Preset
	order   []string
}

// Default returns settings with only the built-in presets and no
// cleaning options enabled.
func Default() *Settings {
	s := &Settings{presets: make(map[string]Preset)}
	for _, name := range clean.PresetNames() {
		cfg, _ := clean.Preset(name)
		s.addPreset(Preset{Name: name, Pattern: cfg.Pattern, Replacement: cfg.Replacement})
	}
	return s
}

// Load reads settings from a TOML file. A missing file is not an error:
// the defaults are returned, matching how an absent editor config is
// treated. Invalid TOML or an invalid preset pattern is an error.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}
	return parse(path, data)
}

func parse(path string, data []byte) (*Settings, error) {
	var fc fileConfig
	if err := toml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}

	s := Default()
	s.Defaults = clean.Config{
		RemoveExtraSpaces:   fc.Defaults.RemoveExtraSpaces,
		RemoveExtraTabs:     fc.Defaults.RemoveExtraTabs,
		RemoveExtraNewlines: fc.Defaults.RemoveExtraNewlines,
		TrimLines:           fc.Defaults.TrimLines,
		TabWidth:            fc.Defaults.TabWidth,
		RemoveInvisible:     fc.Defaults.RemoveInvisible,
	}
	if err := s.Defaults.Validate(); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}

	for _, p := range fc.Presets {
		if p.Name == "" {
			return nil, fmt.Errorf("config file %s: preset with empty name", path)
		}
		if err := (clean.Config{Pattern: p.Pattern}).Validate(); err != nil {
			return nil, fmt.Errorf("config file %s: preset %q: %w", path, p.Name, err)
		}
		s.addPreset(p)
	}

	return s, nil
}

func (s *Settings) addPreset(p Preset) {
	if _, exists := s.presets[p.Name]; !exists {
		s.order = append(s.order, p.Name)
	}
	s.presets[p.Name] = p
}

// Preset resolves a named preset to a cleaning config layered on the
// defaults.
func (s *Settings) Preset(name string) (clean.Config, bool) {
	p, ok := s.presets[name]
	if !ok {
		return clean.Config{}, false
	}
	cfg := s.Defaults
	cfg.Pattern = p.Pattern
	cfg.Replacement = p.Replacement
	return cfg, true
}

// PresetNames lists presets in definition order, built-ins first.
func (s *Settings) PresetNames() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}
