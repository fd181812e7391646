package analyzer

import (
	"regexp"
	"slices"
	"strings"
)

var directivePattern = regexp.MustCompile(`^(?://|/\*)\s*(trxlint|eslint)-disable-(next-line|line)\b([^*]*)`)

// directive is a parsed inline suppression comment
type directive struct {
	nextLine bool
	rules    []string
}

// parseDirective extracts suppressed rule names from a disable comment, an empty list disables all rules
func parseDirective(text string) (directive, bool) {
	matches := directivePattern.FindStringSubmatch(text)
	if matches == nil {
		return directive{}, false
	}
	ret := directive{nextLine: matches[2] == "next-line"}
	list := matches[3]
	if idx := strings.Index(list, "--"); idx != -1 {
		list = list[:idx]
	}
	for _, rule := range strings.Split(list, ",") {
		if rule = strings.TrimSpace(rule); rule != "" {
			ret.rules = append(ret.rules, strings.ToLower(rule))
		}
	}
	return ret, true
}

func (d directive) covers(rule string) bool {
	if len(d.rules) == 0 {
		return true
	}
	return slices.ContainsFunc(d.rules, func(candidate string) bool {
		return candidate == rule || strings.HasSuffix(candidate, "/"+rule)
	})
}

// suppress drops findings starting on a line disabled by a comment
func (p *pass) suppress(findings []*Finding) []*Finding {
	if len(p.comments) == 0 || len(findings) == 0 {
		return findings
	}
	disabled := map[int]bool{}
	for _, comment := range p.comments {
		d, ok := parseDirective(comment.Content(p.src))
		if !ok || !d.covers(RuleName) {
			continue
		}
		line := int(comment.StartPoint().Row) + 1
		if d.nextLine {
			line = int(comment.EndPoint().Row) + 2
		}
		disabled[line] = true
	}
	if len(disabled) == 0 {
		return findings
	}
	var result []*Finding
	for _, finding := range findings {
		if disabled[finding.Start.Line] {
			continue
		}
		result = append(result, finding)
	}
	return result
}
