package analyzer

import (
	"context"

	"github.com/viant/trxlint/analyzer/scope"
	"github.com/viant/trxlint/inspector"
)

const defaultMaxFixPasses = 10

// Analyzer reports data access calls that do not forward the transaction in scope
type Analyzer struct {
	sourceType   scope.SourceType
	globals      []string
	severity     Severity
	maxFixPasses int
}

// New creates an Analyzer
func New(opts ...Option) *Analyzer {
	a := &Analyzer{
		sourceType:   scope.SourceModule,
		severity:     SeverityError,
		maxFixPasses: defaultMaxFixPasses,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze traverses a parsed file once and returns findings in visit order
func (a *Analyzer) Analyze(file *inspector.File) []*Finding {
	if a.severity == SeverityOff {
		return nil
	}
	src := file.Source
	root := file.Root()
	p := &pass{
		analyzer: a,
		src:      src,
		scopes:   scope.Build(root, src, scope.WithSourceType(a.sourceType), scope.WithGlobals(a.globals...)),
	}
	p.walk(root)
	return p.suppress(p.findings)
}

// AnalyzeSource parses and analyzes source
func (a *Analyzer) AnalyzeSource(ctx context.Context, path string, src []byte) ([]*Finding, error) {
	file, err := inspector.Parse(ctx, path, src)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return a.Analyze(file), nil
}
