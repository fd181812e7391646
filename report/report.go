package report

import (
	"sort"

	"github.com/viant/trxlint/analyzer"
)

// Entry represents a finding reported for a file
type Entry struct {
	analyzer.Finding `yaml:",inline"`
	Fingerprint      string `yaml:"fingerprint" json:"fingerprint"`
}

// File represents findings of a single source file
type File struct {
	Path       string   `yaml:"path" json:"path"`
	Entries    []*Entry `yaml:"findings" json:"findings"`
	SyntaxErr  bool     `yaml:"syntaxError,omitempty" json:"syntaxError,omitempty"`
	Fixed      bool     `yaml:"fixed,omitempty" json:"fixed,omitempty"`
	FixApplied int      `yaml:"fixApplied,omitempty" json:"fixApplied,omitempty"`
}

// Summary aggregates counts across files
type Summary struct {
	Files           int `yaml:"files" json:"files"`
	Errors          int `yaml:"errors" json:"errors"`
	Warnings        int `yaml:"warnings" json:"warnings"`
	FixableErrors   int `yaml:"fixableErrors" json:"fixableErrors"`
	FixableWarnings int `yaml:"fixableWarnings" json:"fixableWarnings"`
	Fixed           int `yaml:"fixed" json:"fixed"`
}

// Report represents lint outcome
type Report struct {
	Files   []*File  `yaml:"files" json:"files"`
	Summary *Summary `yaml:"summary" json:"summary"`
}

// NewFile creates a file report with fingerprinted entries
func NewFile(path string, findings []*analyzer.Finding) (*File, error) {
	ret := &File{Path: path, Entries: make([]*Entry, 0, len(findings))}
	occurrences := map[string]int{}
	for _, finding := range findings {
		key := finding.MessageID + "\x00" + finding.Snippet
		fingerprint, err := Fingerprint(path, finding.Rule, finding.MessageID, finding.Snippet, occurrences[key])
		if err != nil {
			return nil, err
		}
		occurrences[key]++
		ret.Entries = append(ret.Entries, &Entry{Finding: *finding, Fingerprint: fingerprint})
	}
	return ret, nil
}

// New creates a report, files are sorted by path and entries by offset
func New(files ...*File) *Report {
	ret := &Report{Files: files, Summary: &Summary{}}
	sort.Slice(ret.Files, func(i, j int) bool {
		return ret.Files[i].Path < ret.Files[j].Path
	})
	for _, file := range ret.Files {
		sort.SliceStable(file.Entries, func(i, j int) bool {
			return file.Entries[i].Start.Offset < file.Entries[j].Start.Offset
		})
		ret.Summary.add(file)
	}
	return ret
}

func (s *Summary) add(file *File) {
	s.Files++
	if file.Fixed {
		s.Fixed++
	}
	for _, entry := range file.Entries {
		switch entry.Severity {
		case analyzer.SeverityError:
			s.Errors++
			if entry.Fixable() {
				s.FixableErrors++
			}
		case analyzer.SeverityWarn:
			s.Warnings++
			if entry.Fixable() {
				s.FixableWarnings++
			}
		}
	}
}

// HasErrors reports whether any error severity finding remains
func (r *Report) HasErrors() bool {
	return r.Summary != nil && r.Summary.Errors > 0
}
