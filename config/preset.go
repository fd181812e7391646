package config

import (
	"strings"

	"github.com/viant/trxlint/analyzer"
)

// Recommended preset enables the transaction forwarding rule as an error
const Recommended = "recommended"

var presets = map[string]*Config{
	Recommended: {
		Rules: map[string]string{analyzer.RuleName: string(analyzer.SeverityError)},
	},
}

// lookupPreset accepts bare names and plugin spellings such as plugin:objection/recommended
func lookupPreset(name string) (*Config, bool) {
	name = strings.TrimPrefix(name, "plugin:")
	if idx := strings.LastIndex(name, "/"); idx != -1 {
		name = name[idx+1:]
	}
	preset, ok := presets[name]
	return preset, ok
}

// Presets returns known preset names
func Presets() []string {
	return []string{Recommended}
}
