package report

import (
	"fmt"
	"io"
	"strings"

	json "github.com/json-iterator/go"
	"gopkg.in/yaml.v3"
)

// Format identifies report encoding
type Format string

const (
	FormatText Format = "text"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// Formats lists supported formats
var Formats = []Format{FormatText, FormatYAML, FormatJSON}

// ParseFormat parses report format name
func ParseFormat(text string) (Format, error) {
	switch Format(strings.ToLower(text)) {
	case FormatText, "stylish", "":
		return FormatText, nil
	case FormatYAML, "yml":
		return FormatYAML, nil
	case FormatJSON:
		return FormatJSON, nil
	}
	return "", fmt.Errorf("unsupported format: %q", text)
}

// Write encodes report into writer
func (r *Report) Write(w io.Writer, format Format) error {
	switch format {
	case FormatYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(r); err != nil {
			return fmt.Errorf("failed to encode yaml report: %w", err)
		}
		return encoder.Close()
	case FormatJSON:
		encoder := json.ConfigCompatibleWithStandardLibrary.NewEncoder(w)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(r); err != nil {
			return fmt.Errorf("failed to encode json report: %w", err)
		}
		return nil
	default:
		return r.writeText(w)
	}
}

// writeText renders findings grouped by file followed by a summary line
func (r *Report) writeText(w io.Writer) error {
	builder := &strings.Builder{}
	for _, file := range r.Files {
		if len(file.Entries) == 0 {
			continue
		}
		location := 0
		for _, entry := range file.Entries {
			if l := len(fmt.Sprintf("%d:%d", entry.Start.Line, entry.Start.Column)); l > location {
				location = l
			}
		}
		builder.WriteString(file.Path)
		builder.WriteString("\n")
		for _, entry := range file.Entries {
			position := fmt.Sprintf("%d:%d", entry.Start.Line, entry.Start.Column)
			fmt.Fprintf(builder, "  %-*s  %-5s  %s  %s\n", location, position, entry.Severity, entry.Message, entry.Rule)
		}
		builder.WriteString("\n")
	}
	summary := r.Summary
	if summary == nil {
		summary = &Summary{}
	}
	if problems := summary.Errors + summary.Warnings; problems > 0 {
		fmt.Fprintf(builder, "%d %s (%d %s, %d %s)\n",
			problems, plural(problems, "problem"),
			summary.Errors, plural(summary.Errors, "error"),
			summary.Warnings, plural(summary.Warnings, "warning"))
		if fixable := summary.FixableErrors + summary.FixableWarnings; fixable > 0 {
			fmt.Fprintf(builder, "  %d %s and %d %s potentially fixable with the `--fix` option.\n",
				summary.FixableErrors, plural(summary.FixableErrors, "error"),
				summary.FixableWarnings, plural(summary.FixableWarnings, "warning"))
		}
	}
	if summary.Fixed > 0 {
		fmt.Fprintf(builder, "%d %s fixed\n", summary.Fixed, plural(summary.Fixed, "file"))
	}
	_, err := io.WriteString(w, builder.String())
	return err
}

func plural(count int, noun string) string {
	if count == 1 {
		return noun
	}
	return noun + "s"
}
