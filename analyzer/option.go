package analyzer

import (
	"github.com/viant/trxlint/analyzer/scope"
)

type Option func(*Analyzer)

// WithSourceType sets whether analyzed files are ES modules or scripts
func WithSourceType(sourceType scope.SourceType) Option {
	return func(a *Analyzer) {
		a.sourceType = sourceType
	}
}

// WithGlobals declares names provided by the runtime, a global trx never suppresses findings
func WithGlobals(names ...string) Option {
	return func(a *Analyzer) {
		a.globals = append(a.globals, names...)
	}
}

// WithSeverity sets severity assigned to findings
func WithSeverity(severity Severity) Option {
	return func(a *Analyzer) {
		a.severity = severity
	}
}

// WithMaxFixPasses limits the number of analyze/apply rounds performed by Fix
func WithMaxFixPasses(passes int) Option {
	return func(a *Analyzer) {
		if passes > 0 {
			a.maxFixPasses = passes
		}
	}
}
