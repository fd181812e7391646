package syntax_test

import (
	"context"
	"testing"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/trxlint/analyzer/syntax"
	"github.com/viant/trxlint/inspector"
)

// firstCall returns the outermost call expression of the first statement
func firstCall(t *testing.T, source string) (*sitter.Node, []byte) {
	t.Helper()
	file, err := inspector.Parse(context.Background(), "test.js", []byte(source))
	require.NoError(t, err)
	t.Cleanup(file.Close)
	var found *sitter.Node
	var visit func(n *sitter.Node)
	visit = func(n *sitter.Node) {
		if found != nil {
			return
		}
		if n.Type() == "call_expression" {
			found = n
			return
		}
		for i := 0; i < int(n.NamedChildCount()); i++ {
			visit(n.NamedChild(i))
		}
	}
	visit(file.Root())
	require.NotNil(t, found)
	return found, file.Source
}

func TestRootOf(t *testing.T) {
	tests := []struct {
		description string
		source      string
		expectKind  syntax.Kind
		expectRoot  string
	}{
		{description: "identifier", source: "Model.query()", expectKind: syntax.Identifier, expectRoot: "Model"},
		{description: "self reference", source: "this.query()", expectKind: syntax.This, expectRoot: "this"},
		{description: "chained calls", source: "Person.relatedQuery('pets').for(1).query()", expectKind: syntax.Identifier, expectRoot: "Person"},
		{description: "optional chain", source: "models?.Person?.query()", expectKind: syntax.Identifier, expectRoot: "models"},
		{description: "parenthesized", source: "(Model).query()", expectKind: syntax.Identifier, expectRoot: "Model"},
		{description: "computed access", source: "models['Person'].query()", expectKind: syntax.Unrecognized},
		{description: "new expression", source: "new Knex().query()", expectKind: syntax.Unrecognized},
	}

	for _, tc := range tests {
		t.Run(tc.description, func(t *testing.T) {
			call, src := firstCall(t, tc.source)
			root := syntax.RootOf(call)
			if tc.expectKind == syntax.Unrecognized {
				assert.Nil(t, root)
				return
			}
			if assert.NotNil(t, root) {
				assert.Equal(t, tc.expectKind, syntax.KindOf(root))
				assert.Equal(t, tc.expectRoot, syntax.Text(root, src))
			}
		})
	}
}

func TestMemberCallee(t *testing.T) {
	tests := []struct {
		description    string
		source         string
		expectOK       bool
		expectProperty string
		expectReceiver string
	}{
		{description: "member call", source: "Model.query(trx)", expectOK: true, expectProperty: "query", expectReceiver: "Model"},
		{description: "dollar method", source: "item.$relatedQuery('pets')", expectOK: true, expectProperty: "$relatedQuery", expectReceiver: "item"},
		{description: "optional member", source: "item?.$query()", expectOK: true, expectProperty: "$query", expectReceiver: "item"},
		{description: "computed member", source: "item['$query']()", expectOK: false},
		{description: "plain function", source: "query()", expectOK: false},
		{description: "tagged template", source: "sql.query`select 1`", expectOK: false},
	}

	for _, tc := range tests {
		t.Run(tc.description, func(t *testing.T) {
			call, src := firstCall(t, tc.source)
			receiver, property, ok := syntax.MemberCallee(call, src)
			assert.Equal(t, tc.expectOK, ok)
			if !ok {
				return
			}
			assert.Equal(t, tc.expectProperty, property)
			assert.Equal(t, tc.expectReceiver, syntax.Text(receiver, src))
		})
	}
}

func TestProperties(t *testing.T) {
	call, src := firstCall(t, "item.$fetchGraph('pets', { 'transaction': trx, skipFetched, ...rest, [key]: 1 /* note */ })")
	args := syntax.Arguments(call)
	require.Len(t, args, 2)
	props := syntax.Properties(args[1])
	require.Len(t, props, 4)

	name, ok := syntax.PropertyName(props[0], src)
	assert.True(t, ok)
	assert.Equal(t, "transaction", name)
	assert.True(t, syntax.PropertyValueIs(props[0], src, "trx"))

	name, ok = syntax.PropertyName(props[1], src)
	assert.True(t, ok)
	assert.Equal(t, "skipFetched", name)
	assert.False(t, syntax.PropertyValueIs(props[1], src, "trx"))

	_, ok = syntax.PropertyName(props[2], src)
	assert.False(t, ok)
	_, ok = syntax.PropertyName(props[3], src)
	assert.False(t, ok)
}

func TestIsCapitalized(t *testing.T) {
	call, src := firstCall(t, "Émigré.query()")
	assert.True(t, syntax.IsCapitalized(syntax.RootOf(call), src))
	call, src = firstCall(t, "pool.query()")
	assert.False(t, syntax.IsCapitalized(syntax.RootOf(call), src))
	call, src = firstCall(t, "_Model.query()")
	assert.False(t, syntax.IsCapitalized(syntax.RootOf(call), src))
}
