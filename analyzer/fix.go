package analyzer

import (
	"bytes"
	"context"

	"github.com/viant/trxlint/analyzer/fix"
)

// FixResult represents outcome of Fix
type FixResult struct {
	Source   []byte
	Changed  bool
	Passes   int
	Applied  int
	Findings []*Finding // findings left after the last pass
}

// Fix repeatedly analyzes source and applies synthesized edits until no fixable finding
// remains or the pass limit is reached. Edits overlapping within a pass are deferred to the next one.
func (a *Analyzer) Fix(ctx context.Context, path string, src []byte) (*FixResult, error) {
	result := &FixResult{Source: src}
	for result.Passes < a.maxFixPasses {
		findings, err := a.AnalyzeSource(ctx, path, result.Source)
		if err != nil {
			return nil, err
		}
		result.Findings = findings
		var edits []fix.Edit
		for _, finding := range findings {
			edits = append(edits, finding.Edits...)
		}
		if len(edits) == 0 {
			return result, nil
		}
		fixed, skipped := fix.Apply(result.Source, edits)
		if len(skipped) == len(edits) {
			return result, nil
		}
		result.Passes++
		result.Applied += len(edits) - len(skipped)
		result.Source = fixed
		result.Changed = !bytes.Equal(fixed, src)
	}
	findings, err := a.AnalyzeSource(ctx, path, result.Source)
	if err != nil {
		return nil, err
	}
	result.Findings = findings
	return result, nil
}
