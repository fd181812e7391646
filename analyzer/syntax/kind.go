package syntax

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// Kind is the closed set of node shapes the transaction checks inspect.
// Every other tree-sitter node type collapses to Unrecognized.
type Kind int

const (
	Unrecognized Kind = iota
	Identifier
	This
	Call
	Member
	Wrapper // parenthesized or non-null wrapper around an expression
	Object
	Property
)

var kindNames = [...]string{
	Unrecognized: "unrecognized",
	Identifier:   "identifier",
	This:         "this",
	Call:         "call",
	Member:       "member",
	Wrapper:      "wrapper",
	Object:       "object",
	Property:     "property",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unrecognized"
	}
	return kindNames[k]
}

// KindOf classifies a tree-sitter node
func KindOf(n *sitter.Node) Kind {
	if n == nil {
		return Unrecognized
	}
	switch n.Type() {
	case "identifier":
		return Identifier
	case "this":
		return This
	case "call_expression":
		// tagged templates share the call_expression node type
		if args := n.ChildByFieldName("arguments"); args == nil || args.Type() != "arguments" {
			return Unrecognized
		}
		return Call
	case "member_expression":
		return Member
	case "parenthesized_expression", "non_null_expression":
		return Wrapper
	case "object":
		return Object
	case "pair", "shorthand_property_identifier":
		return Property
	}
	return Unrecognized
}

// IsFunction reports whether node opens a function body
func IsFunction(n *sitter.Node) bool {
	if n == nil {
		return false
	}
	switch n.Type() {
	case "function_declaration", "generator_function_declaration",
		"function", "function_expression", "generator_function",
		"arrow_function", "method_definition":
		return true
	}
	return false
}
