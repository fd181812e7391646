package shape

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/viant/trxlint/analyzer/syntax"
)

// contract reports whether a call of a given shape already forwards the transaction
type contract func(call *sitter.Node, src []byte) bool

var contracts = [...]contract{
	None:          func(*sitter.Node, []byte) bool { return true },
	Query:         argumentIsHandle(0),
	InstanceQuery: argumentIsHandle(0),
	RelatedQuery:  argumentIsHandle(1),
	FetchGraph:    fetchGraphForwards,
	// usage is discouraged regardless of arguments
	Transacting: func(*sitter.Node, []byte) bool { return false },
}

// Satisfied reports whether the call meets the forwarding contract of the shape
func (s Shape) Satisfied(call *sitter.Node, src []byte) bool {
	if s < 0 || int(s) >= len(contracts) {
		return true
	}
	return contracts[s](call, src)
}

func argumentIsHandle(index int) contract {
	return func(call *sitter.Node, src []byte) bool {
		args := syntax.Arguments(call)
		return index < len(args) && syntax.IsIdentifier(args[index], src, Handle)
	}
}

// fetchGraphForwards accepts any non literal options argument since it can't be verified statically
func fetchGraphForwards(call *sitter.Node, src []byte) bool {
	args := syntax.Arguments(call)
	if len(args) < 2 {
		return false
	}
	options := syntax.Unwrap(args[1])
	if syntax.KindOf(options) != syntax.Object {
		return true
	}
	for _, prop := range syntax.Properties(options) {
		if name, ok := syntax.PropertyName(prop, src); ok && name == TransactionOption && syntax.PropertyValueIs(prop, src, Handle) {
			return true
		}
	}
	return false
}
