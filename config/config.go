package config

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/viant/afs"
	"gopkg.in/yaml.v3"

	"github.com/viant/trxlint/analyzer"
	"github.com/viant/trxlint/analyzer/scope"
	"github.com/viant/trxlint/inspector"
)

// Config represents lint configuration
type Config struct {
	Extends      []string          `yaml:"extends,omitempty"`
	Rules        map[string]string `yaml:"rules,omitempty"`
	SourceType   string            `yaml:"sourceType,omitempty"`
	Globals      []string          `yaml:"globals,omitempty"`
	Extensions   []string          `yaml:"extensions,omitempty"`
	Exclude      []string          `yaml:"exclude,omitempty"`
	MaxFixPasses int               `yaml:"maxFixPasses,omitempty"`
}

// DefaultExclude lists directory names skipped while walking
var DefaultExclude = []string{"node_modules", ".git", "dist"}

// Default returns configuration used when no file is found
func Default() *Config {
	return &Config{Extends: []string{Recommended}}
}

// Parse decodes YAML configuration
func Parse(data []byte) (*Config, error) {
	ret := &Config{}
	if err := yaml.Unmarshal(data, ret); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return ret, nil
}

// Load downloads and decodes configuration from URL
func Load(ctx context.Context, fs afs.Service, URL string) (*Config, error) {
	data, err := fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to load config %v: %w", URL, err)
	}
	ret, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", URL, err)
	}
	return ret, nil
}

// Resolve expands presets and fills defaults, rules declared by the config override preset ones
func (c *Config) Resolve() (*Config, error) {
	ret := &Config{
		Rules:        map[string]string{},
		SourceType:   c.SourceType,
		Globals:      slices.Clone(c.Globals),
		Extensions:   slices.Clone(c.Extensions),
		Exclude:      slices.Clone(c.Exclude),
		MaxFixPasses: c.MaxFixPasses,
	}
	for _, name := range c.Extends {
		preset, ok := lookupPreset(name)
		if !ok {
			return nil, fmt.Errorf("unknown preset: %v", name)
		}
		for rule, severity := range preset.Rules {
			ret.Rules[rule] = severity
		}
	}
	for rule, severity := range c.Rules {
		ret.Rules[ruleName(rule)] = severity
	}
	if ret.SourceType == "" {
		ret.SourceType = string(scope.SourceModule)
	}
	if len(ret.Extensions) == 0 {
		ret.Extensions = slices.Clone(inspector.DefaultExtensions)
	}
	if len(ret.Exclude) == 0 {
		ret.Exclude = slices.Clone(DefaultExclude)
	}
	if err := ret.Validate(); err != nil {
		return nil, err
	}
	return ret, nil
}

// Validate checks rule names, severities and source type
func (c *Config) Validate() error {
	for rule, severity := range c.Rules {
		if ruleName(rule) != analyzer.RuleName {
			return fmt.Errorf("unknown rule: %v", rule)
		}
		if _, err := analyzer.ParseSeverity(severity); err != nil {
			return fmt.Errorf("rule %v: %w", rule, err)
		}
	}
	switch scope.SourceType(c.SourceType) {
	case "", scope.SourceModule, scope.SourceScript:
	default:
		return fmt.Errorf("invalid sourceType: %q", c.SourceType)
	}
	for _, ext := range c.Extensions {
		if _, err := inspector.LanguageOf("file" + ext); err != nil {
			return fmt.Errorf("invalid extension %q: %w", ext, err)
		}
	}
	return nil
}

// Severity returns severity configured for the transaction forwarding rule, off when not configured
func (c *Config) Severity() analyzer.Severity {
	text, ok := c.Rules[analyzer.RuleName]
	if !ok {
		return analyzer.SeverityOff
	}
	severity, err := analyzer.ParseSeverity(text)
	if err != nil {
		return analyzer.SeverityOff
	}
	return severity
}

// AnalyzerOptions converts resolved configuration into analyzer options
func (c *Config) AnalyzerOptions() []analyzer.Option {
	options := []analyzer.Option{
		analyzer.WithSeverity(c.Severity()),
		analyzer.WithGlobals(c.Globals...),
		analyzer.WithMaxFixPasses(c.MaxFixPasses),
	}
	if c.SourceType != "" {
		options = append(options, analyzer.WithSourceType(scope.SourceType(c.SourceType)))
	}
	return options
}

// Excluded reports whether directory name is skipped while walking
func (c *Config) Excluded(name string) bool {
	return slices.Contains(c.Exclude, name)
}

// Matches reports whether file name carries a configured extension
func (c *Config) Matches(name string) bool {
	for _, ext := range c.Extensions {
		if strings.HasSuffix(strings.ToLower(name), ext) {
			return true
		}
	}
	return false
}

// ruleName strips a plugin prefix, objection/trx-forwarding becomes trx-forwarding
func ruleName(rule string) string {
	if idx := strings.LastIndex(rule, "/"); idx != -1 {
		return rule[idx+1:]
	}
	return rule
}
