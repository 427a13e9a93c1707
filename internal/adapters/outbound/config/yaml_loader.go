package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/openkraft/uikraft/internal/domain"
	"gopkg.in/yaml.v3"
)

const fileName = ".uikraft.yaml"

// YAMLLoader implements domain.ConfigLoader by reading .uikraft.yaml.
type YAMLLoader struct{}

// New creates a YAMLLoader.
func New() *YAMLLoader { return &YAMLLoader{} }

// Load reads .uikraft.yaml from projectPath.
// Returns DefaultConfig if the file does not exist.
func (l *YAMLLoader) Load(projectPath string) (domain.ProjectConfig, error) {
	data, err := os.ReadFile(filepath.Join(projectPath, fileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.DefaultConfig(), nil
		}
		return domain.ProjectConfig{}, err
	}

	var cfg domain.ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.ProjectConfig{}, fmt.Errorf("parsing %s: %w", fileName, err)
	}

	// Validate before merging, so typos in the raw input are reported.
	if err := cfg.Validate(); err != nil {
		return domain.ProjectConfig{}, fmt.Errorf("invalid %s: %w", fileName, err)
	}

	return mergeConfig(domain.DefaultConfig(), cfg), nil
}

// mergeConfig overlays explicit overrides on top of defaults.
// Explicit (non-zero) values always win.
func mergeConfig(base, override domain.ProjectConfig) domain.ProjectConfig {
	result := base

	result.Browser = override.Browser

	if override.Timeouts.Render > 0 {
		result.Timeouts.Render = override.Timeouts.Render
	}
	if override.Timeouts.Validator > 0 {
		result.Timeouts.Validator = override.Timeouts.Validator
	}
	if override.Timeouts.Activation > 0 {
		result.Timeouts.Activation = override.Timeouts.Activation
	}

	rt := override.Runtime
	if rt.ReactURL != "" {
		result.Runtime.ReactURL = rt.ReactURL
	}
	if rt.ReactDOMURL != "" {
		result.Runtime.ReactDOMURL = rt.ReactDOMURL
	}
	if rt.BabelURL != "" {
		result.Runtime.BabelURL = rt.BabelURL
	}
	if rt.AxeURL != "" {
		result.Runtime.AxeURL = rt.AxeURL
	}
	result.Runtime.AxePath = rt.AxePath

	if override.Thresholds.TokenOverall > 0 {
		result.Thresholds.TokenOverall = override.Thresholds.TokenOverall
	}
	if override.Thresholds.TokenCategory > 0 {
		result.Thresholds.TokenCategory = override.Thresholds.TokenCategory
	}

	result.TokensFile = override.TokensFile
	result.Skip = override.Skip

	return result
}

// LoadTokens reads a design token document. JSON documents are accepted
// too, being valid YAML.
func (l *YAMLLoader) LoadTokens(path string) (*domain.DesignTokens, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading tokens: %w", err)
	}
	var tokens domain.DesignTokens
	if err := yaml.Unmarshal(data, &tokens); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filepath.Base(path), err)
	}
	if tokens.IsEmpty() {
		return nil, fmt.Errorf("%s defines no colors, typography or spacing tokens", filepath.Base(path))
	}
	return &tokens, nil
}

// ProjectTokens loads cfg.TokensFile relative to projectPath. It returns
// nil when no tokens file is configured; callers then use the defaults.
func (l *YAMLLoader) ProjectTokens(projectPath string, cfg domain.ProjectConfig) (*domain.DesignTokens, error) {
	if cfg.TokensFile == "" {
		return nil, nil
	}
	path := cfg.TokensFile
	if !filepath.IsAbs(path) {
		path = filepath.Join(projectPath, path)
	}
	return l.LoadTokens(path)
}
