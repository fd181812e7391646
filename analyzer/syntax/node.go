package syntax

import (
	"strings"
	"unicode"
	"unicode/utf8"

	sitter "github.com/smacker/go-tree-sitter"
)

// Text returns node source text
func Text(n *sitter.Node, src []byte) string {
	if n == nil {
		return ""
	}
	return string(src[n.StartByte():n.EndByte()])
}

// Unwrap strips parenthesized and non-null wrappers.
func Unwrap(n *sitter.Node) *sitter.Node {
	for KindOf(n) == Wrapper {
		inner := firstNamed(n)
		if inner == nil {
			return n
		}
		n = inner
	}
	return n
}

// RootOf walks leftward through calls, member accesses and wrappers and returns the
// identifier or this expression the chain starts from, or nil.
func RootOf(n *sitter.Node) *sitter.Node {
	for n != nil {
		switch KindOf(n) {
		case Identifier, This:
			return n
		case Call:
			n = n.ChildByFieldName("function")
		case Member:
			n = n.ChildByFieldName("object")
		case Wrapper:
			n = firstNamed(n)
		default:
			return nil
		}
	}
	return nil
}

// IsIdentifier reports whether n, once unwrapped, is the identifier name.
func IsIdentifier(n *sitter.Node, src []byte, name string) bool {
	n = Unwrap(n)
	return KindOf(n) == Identifier && Text(n, src) == name
}

// IsCapitalized reports whether the identifier text starts with an upper case letter.
func IsCapitalized(n *sitter.Node, src []byte) bool {
	if KindOf(n) != Identifier {
		return false
	}
	r, _ := utf8.DecodeRuneInString(Text(n, src))
	return r != utf8.RuneError && unicode.IsUpper(r)
}

// MemberCallee returns the receiver and accessed property name of a call whose callee is a
// non-computed member access.
func MemberCallee(call *sitter.Node, src []byte) (receiver *sitter.Node, property string, ok bool) {
	if KindOf(call) != Call {
		return nil, "", false
	}
	callee := Unwrap(call.ChildByFieldName("function"))
	if callee != nil && callee.Type() == "await_expression" && hasTypeArguments(call) {
		// typescript parses `await Model.query<T>()` with the await inside the callee
		callee = Unwrap(firstNamed(callee))
	}
	if KindOf(callee) != Member {
		return nil, "", false
	}
	prop := callee.ChildByFieldName("property")
	if prop == nil {
		return nil, "", false
	}
	switch prop.Type() {
	case "property_identifier", "private_property_identifier":
	default:
		return nil, "", false
	}
	return callee.ChildByFieldName("object"), Text(prop, src), true
}

func hasTypeArguments(call *sitter.Node) bool {
	for i := 0; i < int(call.NamedChildCount()); i++ {
		if call.NamedChild(i).Type() == "type_arguments" {
			return true
		}
	}
	return false
}

// ArgumentList returns the arguments node of a call.
func ArgumentList(call *sitter.Node) *sitter.Node {
	if KindOf(call) != Call {
		return nil
	}
	return call.ChildByFieldName("arguments")
}

// Arguments returns call arguments in source order, comments excluded.
func Arguments(call *sitter.Node) []*sitter.Node {
	return namedChildren(ArgumentList(call))
}

// Properties returns the members of an object literal, comments excluded.
func Properties(object *sitter.Node) []*sitter.Node {
	if KindOf(object) != Object {
		return nil
	}
	return namedChildren(object)
}

// PropertyName returns the static key of an object member.
func PropertyName(prop *sitter.Node, src []byte) (string, bool) {
	switch prop.Type() {
	case "shorthand_property_identifier":
		return Text(prop, src), true
	case "pair", "method_definition":
		key := prop.ChildByFieldName("key")
		if key == nil {
			key = prop.ChildByFieldName("name")
		}
		if key == nil {
			return "", false
		}
		switch key.Type() {
		case "property_identifier", "identifier", "number":
			return Text(key, src), true
		case "string":
			return strings.Trim(Text(key, src), "'\""), true
		}
	}
	return "", false
}

// PropertyValue returns the value expression of an object member.
func PropertyValue(prop *sitter.Node) *sitter.Node {
	switch prop.Type() {
	case "shorthand_property_identifier":
		return prop
	case "pair":
		return prop.ChildByFieldName("value")
	}
	return nil
}

// PropertyValueIs reports whether the object member holds the identifier name.
func PropertyValueIs(prop *sitter.Node, src []byte, name string) bool {
	value := PropertyValue(prop)
	if value == nil {
		return false
	}
	if value.Type() == "shorthand_property_identifier" {
		return Text(value, src) == name
	}
	return IsIdentifier(value, src, name)
}

func firstNamed(n *sitter.Node) *sitter.Node {
	children := namedChildren(n)
	if len(children) == 0 {
		return nil
	}
	return children[0]
}

func namedChildren(n *sitter.Node) []*sitter.Node {
	if n == nil {
		return nil
	}
	var result []*sitter.Node
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		if child == nil || child.Type() == "comment" {
			continue
		}
		result = append(result, child)
	}
	return result
}
