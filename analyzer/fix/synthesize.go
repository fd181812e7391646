package fix

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/viant/trxlint/analyzer/shape"
	"github.com/viant/trxlint/analyzer/syntax"
)

// Synthesize returns edits forwarding trx for a call that fails its shape contract.
// It only fills empty slots, nil means the finding has no safe automatic fix.
func Synthesize(s shape.Shape, call *sitter.Node, src []byte) []Edit {
	args := syntax.Arguments(call)
	switch s {
	case shape.Query, shape.InstanceQuery:
		if len(args) > 0 {
			return nil
		}
		list := syntax.ArgumentList(call)
		if list == nil {
			return nil
		}
		// right after the opening parenthesis
		return []Edit{Insert(list.StartByte()+1, shape.Handle)}
	case shape.RelatedQuery:
		if len(args) != 1 {
			return nil
		}
		return []Edit{Insert(args[0].EndByte(), ", "+shape.Handle)}
	case shape.FetchGraph:
		return fetchGraph(args, src)
	}
	return nil
}

func fetchGraph(args []*sitter.Node, src []byte) []Edit {
	switch len(args) {
	case 1:
		return []Edit{Insert(args[0].EndByte(), ", { "+option()+" }")}
	case 2:
		options := syntax.Unwrap(args[1])
		if syntax.KindOf(options) != syntax.Object {
			return nil
		}
		props := syntax.Properties(options)
		for _, prop := range props {
			if name, ok := syntax.PropertyName(prop, src); ok && name == shape.TransactionOption {
				return nil
			}
		}
		if len(props) == 0 {
			brace := options.StartByte() + 1
			text := " " + option()
			if options.EndByte()-brace == 1 {
				text += " "
			}
			return []Edit{Insert(brace, text)}
		}
		// prepended to the existing members
		return []Edit{Insert(props[0].StartByte(), option()+", ")}
	}
	return nil
}

func option() string {
	return shape.TransactionOption + ": " + shape.Handle
}
