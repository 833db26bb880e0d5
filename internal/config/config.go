// ABOUTME: Settings loading with global + project config merge
// ABOUTME: YAML files parsed with yaml.v3; project values override global ones

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/pledgeboard/pledge-tui/pkg/tui/geom"
)

// Filter names accepted by the filter setting.
const (
	FilterSubstring = "substring"
	FilterFuzzy     = "fuzzy"
)

// Settings holds the merged configuration.
type Settings struct {
	Placement     string              `yaml:"placement,omitempty"`
	Filter        string              `yaml:"filter,omitempty"`
	ListHeight    int                 `yaml:"list_height,omitempty"`
	Clamp         *bool               `yaml:"clamp,omitempty"`
	Flip          *bool               `yaml:"flip,omitempty"`
	LogLevel      string              `yaml:"log_level,omitempty"`
	MarkdownStyle string              `yaml:"markdown_style,omitempty"`
	Theme         string              `yaml:"theme,omitempty"`
	Keybindings   map[string][]string `yaml:"keybindings,omitempty"`
}

// Defaults returns the built-in settings.
func Defaults() *Settings {
	yes := true
	return &Settings{
		Placement:  "bottom-start",
		Filter:     FilterSubstring,
		ListHeight: 6,
		Clamp:      &yes,
		Flip:       &yes,
		LogLevel:   "info",
	}
}

// Load reads and merges global and project settings over the defaults.
// Missing files are skipped.
func Load(globalPath, projectPath string) (*Settings, error) {
	merged := Defaults()
	for _, path := range []string{globalPath, projectPath} {
		if path == "" {
			continue
		}
		s, err := LoadFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, err
		}
		merged = merge(merged, s)
	}
	if err := merged.Validate(); err != nil {
		return nil, err
	}
	return merged, nil
}

// LoadFile reads one YAML settings file.
func LoadFile(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var s Settings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &s, nil
}

// Validate checks enumerated fields.
func (s *Settings) Validate() error {
	if _, err := geom.ParsePlacement(s.Placement); err != nil {
		return fmt.Errorf("placement: %w", err)
	}
	switch strings.ToLower(s.Filter) {
	case FilterSubstring, FilterFuzzy:
	default:
		return fmt.Errorf("filter: unknown filter %q", s.Filter)
	}
	switch s.Theme {
	case "", "dark", "light":
	default:
		return fmt.Errorf("theme: unknown theme %q (want dark or light)", s.Theme)
	}
	if s.ListHeight < 0 {
		return fmt.Errorf("list_height: must not be negative, got %d", s.ListHeight)
	}
	return nil
}

// PlacementValue returns the parsed placement, falling back to bottom-start.
func (s *Settings) PlacementValue() geom.Placement {
	p, err := geom.ParsePlacement(s.Placement)
	if err != nil {
		return geom.Placement{}
	}
	return p
}

// ClampEnabled reports the clamp flag; unset means enabled.
func (s *Settings) ClampEnabled() bool { return s.Clamp == nil || *s.Clamp }

// FlipEnabled reports the flip flag; unset means enabled.
func (s *Settings) FlipEnabled() bool { return s.Flip == nil || *s.Flip }

// merge overlays non-zero project values onto global.
func merge(global, project *Settings) *Settings {
	if global == nil {
		global = &Settings{}
	}
	if project == nil {
		return global
	}

	result := *global

	if project.Placement != "" {
		result.Placement = project.Placement
	}
	if project.Filter != "" {
		result.Filter = project.Filter
	}
	if project.ListHeight != 0 {
		result.ListHeight = project.ListHeight
	}
	if project.Clamp != nil {
		result.Clamp = project.Clamp
	}
	if project.Flip != nil {
		result.Flip = project.Flip
	}
	if project.LogLevel != "" {
		result.LogLevel = project.LogLevel
	}
	if project.MarkdownStyle != "" {
		result.MarkdownStyle = project.MarkdownStyle
	}
	if project.Theme != "" {
		result.Theme = project.Theme
	}

	if len(project.Keybindings) > 0 {
		kb := make(map[string][]string, len(global.Keybindings)+len(project.Keybindings))
		for k, v := range global.Keybindings {
			kb[k] = v
		}
		for k, v := range project.Keybindings {
			kb[k] = v
		}
		result.Keybindings = kb
	}

	return &result
}
