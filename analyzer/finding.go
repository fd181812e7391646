package analyzer

import (
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/viant/trxlint/analyzer/fix"
	"github.com/viant/trxlint/analyzer/shape"
)

// RuleName identifies the transaction forwarding rule
const RuleName = "trx-forwarding"

// Severity controls how a finding is reported
type Severity string

const (
	SeverityOff   Severity = "off"
	SeverityWarn  Severity = "warn"
	SeverityError Severity = "error"
)

// ParseSeverity parses a severity, numeric values follow the 0/1/2 convention
func ParseSeverity(text string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "off", "0":
		return SeverityOff, nil
	case "warn", "warning", "1":
		return SeverityWarn, nil
	case "error", "2":
		return SeverityError, nil
	}
	return "", fmt.Errorf("invalid severity: %q", text)
}

// Position represents a location in source, line and column are 1-based
type Position struct {
	Offset int `yaml:"offset" json:"offset"`
	Line   int `yaml:"line" json:"line"`
	Column int `yaml:"column" json:"column"`
}

func positionOf(point sitter.Point, offset uint32) Position {
	return Position{Offset: int(offset), Line: int(point.Row) + 1, Column: int(point.Column) + 1}
}

// Finding represents a call that does not forward the transaction
type Finding struct {
	Rule      string      `yaml:"rule" json:"rule"`
	Shape     shape.Shape `yaml:"shape" json:"shape"`
	MessageID string      `yaml:"messageId" json:"messageId"`
	Message   string      `yaml:"message" json:"message"`
	Severity  Severity    `yaml:"severity" json:"severity"`
	Start     Position    `yaml:"start" json:"start"`
	End       Position    `yaml:"end" json:"end"`
	Snippet   string      `yaml:"snippet" json:"snippet"`
	Edits     []fix.Edit  `yaml:"edits,omitempty" json:"edits,omitempty"`
}

// Fixable reports whether finding carries a safe edit
func (f *Finding) Fixable() bool {
	return len(f.Edits) > 0
}
