// Package testsource provides utilities for parsing JavaScript fragments in tests.
package testsource

import (
	"context"
	"testing"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/viant/trxlint/inspector"
)

// Parse parses a JavaScript source fragment, the tree is released when the test ends.
func Parse(tb testing.TB, src string) *inspector.File {
	tb.Helper()
	return ParseFile(tb, "test.js", src)
}

// ParseFile parses source with the grammar matching the file name.
func ParseFile(tb testing.TB, filename, src string) *inspector.File {
	tb.Helper()
	file, err := inspector.Parse(context.Background(), filename, []byte(src))
	if err != nil {
		tb.Fatalf("Failed to parse source %q: %v", src, err)
	}
	tb.Cleanup(file.Close)
	return file
}

// Calls returns every call expression in pre-order.
func Calls(file *inspector.File) []*sitter.Node {
	var calls []*sitter.Node
	var visit func(n *sitter.Node)
	visit = func(n *sitter.Node) {
		if n.Type() == "call_expression" {
			calls = append(calls, n)
		}
		for i := 0; i < int(n.NamedChildCount()); i++ {
			visit(n.NamedChild(i))
		}
	}
	visit(file.Root())
	return calls
}

// Call returns the first call expression whose source text is exactly text.
func Call(tb testing.TB, file *inspector.File, text string) *sitter.Node {
	tb.Helper()
	for _, call := range Calls(file) {
		if call.Content(file.Source) == text {
			return call
		}
	}
	tb.Fatalf("Can't find call %q", text)
	return nil
}
