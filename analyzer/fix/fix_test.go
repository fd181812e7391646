package fix_test

import (
	"testing"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/stretchr/testify/assert"

	"github.com/viant/trxlint/analyzer/fix"
	"github.com/viant/trxlint/analyzer/shape"
	"github.com/viant/trxlint/inspector"
	"github.com/viant/trxlint/internal/testsource"
)

func TestSynthesize(t *testing.T) {
	tests := []struct {
		description string
		source      string
		expect      string
		noEdit      bool
	}{
		{description: "query", source: "Model.query().findById(1)", expect: "Model.query(trx).findById(1)"},
		{description: "query with comment", source: "Model.query(/* none */)", expect: "Model.query(trx/* none */)"},
		{description: "query with other argument", source: "Model.query(tx)", noEdit: true},
		{description: "instance query", source: "item.$query().patch({})", expect: "item.$query(trx).patch({})"},
		{description: "related query", source: "item.$relatedQuery('pets')", expect: "item.$relatedQuery('pets', trx)"},
		{description: "related query without relation", source: "item.$relatedQuery()", noEdit: true},
		{description: "related query with other transaction", source: "item.$relatedQuery('pets', tx)", noEdit: true},
		{description: "fetch graph without options", source: "item.$fetchGraph(expr)", expect: "item.$fetchGraph(expr, { transaction: trx })"},
		{description: "fetch graph with empty options", source: "item.$fetchGraph(expr, {})", expect: "item.$fetchGraph(expr, { transaction: trx })"},
		{description: "fetch graph with blank options", source: "item.$fetchGraph(expr, { })", expect: "item.$fetchGraph(expr, { transaction: trx })"},
		{
			description: "fetch graph with options",
			source:      "item.$fetchGraph(expr, { skipFetched: true, ...rest })",
			expect:      "item.$fetchGraph(expr, { transaction: trx, skipFetched: true, ...rest })",
		},
		{description: "fetch graph with other transaction", source: "item.$fetchGraph(expr, { transaction: tx })", noEdit: true},
		{description: "fetch graph without expression", source: "item.$fetchGraph()", noEdit: true},
		{description: "transacting", source: "Model.query(trx).transacting(trx)", noEdit: true},
	}

	for _, tc := range tests {
		t.Run(tc.description, func(t *testing.T) {
			file := testsource.Parse(t, tc.source)
			call, s := trackedCall(file)
			if !assert.NotEqual(t, shape.None, s) {
				return
			}
			edits := fix.Synthesize(s, call, file.Source)
			if tc.noEdit {
				assert.Empty(t, edits)
				return
			}
			actual, skipped := fix.Apply(file.Source, edits)
			assert.Empty(t, skipped)
			assert.Equal(t, tc.expect, string(actual))

			fixed := testsource.Parse(t, string(actual))
			call, s = trackedCall(fixed)
			assert.True(t, s.Satisfied(call, fixed.Source), "fixed call satisfies contract")
		})
	}
}

func trackedCall(file *inspector.File) (*sitter.Node, shape.Shape) {
	for _, call := range testsource.Calls(file) {
		if s := shape.Classify(call, file.Source); s != shape.None {
			return call, s
		}
	}
	return nil, shape.None
}

func TestApply(t *testing.T) {
	tests := []struct {
		description   string
		source        string
		edits         []fix.Edit
		expect        string
		expectSkipped []fix.Edit
	}{
		{
			description: "ordered by offset",
			source:      "a(); b();",
			edits:       []fix.Edit{fix.Insert(7, "y"), fix.Insert(2, "x")},
			expect:      "a(x); b(y);",
		},
		{
			description: "replacement",
			source:      "a(1);",
			edits:       []fix.Edit{{Start: 2, End: 3, Text: "2"}},
			expect:      "a(2);",
		},
		{
			description:   "overlapping edits",
			source:        "a(1);",
			edits:         []fix.Edit{{Start: 0, End: 3, Text: "b(2"}, {Start: 2, End: 4, Text: "3)"}},
			expect:        "b(2);",
			expectSkipped: []fix.Edit{{Start: 2, End: 4, Text: "3)"}},
		},
		{
			description:   "insertions at the same offset",
			source:        "a();",
			edits:         []fix.Edit{fix.Insert(2, "x"), fix.Insert(2, "y")},
			expect:        "a(x);",
			expectSkipped: []fix.Edit{fix.Insert(2, "y")},
		},
		{
			description:   "out of range",
			source:        "a();",
			edits:         []fix.Edit{fix.Insert(10, "x")},
			expect:        "a();",
			expectSkipped: []fix.Edit{fix.Insert(10, "x")},
		},
	}

	for _, tc := range tests {
		t.Run(tc.description, func(t *testing.T) {
			actual, skipped := fix.Apply([]byte(tc.source), tc.edits)
			assert.Equal(t, tc.expect, string(actual))
			assert.Equal(t, tc.expectSkipped, skipped)
		})
	}
}
