package shape

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/viant/trxlint/analyzer/syntax"
)

// Handle is the only identifier treated as a transaction
const Handle = "trx"

// ORM methods recognized by the classifier
const (
	QueryMethod         = "query"
	InstanceQueryMethod = "$query"
	RelatedQueryMethod  = "$relatedQuery"
	FetchGraphMethod    = "$fetchGraph"
	TransactingMethod   = "transacting"
	// TransactionOption is the fetch graph option carrying the transaction
	TransactionOption = "transaction"
)

// Shape classifies a transaction sensitive call
type Shape int

const (
	None Shape = iota
	Query
	InstanceQuery
	RelatedQuery
	FetchGraph
	Transacting
)

// Shapes lists all tracked shapes
var Shapes = []Shape{Query, InstanceQuery, RelatedQuery, FetchGraph, Transacting}

var shapeNames = [...]string{
	None:          "None",
	Query:         "Query",
	InstanceQuery: "InstanceQuery",
	RelatedQuery:  "RelatedQuery",
	FetchGraph:    "FetchGraph",
	Transacting:   "Transacting",
}

func (s Shape) String() string {
	if s < 0 || int(s) >= len(shapeNames) {
		return "None"
	}
	return shapeNames[s]
}

// MarshalText encodes shape name
func (s Shape) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Method returns the ORM method name that triggers the shape
func (s Shape) Method() string {
	switch s {
	case Query:
		return QueryMethod
	case InstanceQuery:
		return InstanceQueryMethod
	case RelatedQuery:
		return RelatedQueryMethod
	case FetchGraph:
		return FetchGraphMethod
	case Transacting:
		return TransactingMethod
	}
	return ""
}

// Classify returns the shape of a call expression, None when the call is not tracked
func Classify(call *sitter.Node, src []byte) Shape {
	receiver, method, ok := syntax.MemberCallee(call, src)
	if !ok {
		return None
	}
	switch method {
	case QueryMethod:
		root := syntax.RootOf(receiver)
		if syntax.KindOf(root) == syntax.This || syntax.IsCapitalized(root, src) {
			return Query
		}
	case InstanceQueryMethod:
		return InstanceQuery
	case RelatedQueryMethod:
		return RelatedQuery
	case FetchGraphMethod:
		return FetchGraph
	case TransactingMethod:
		if passesThroughQuery(receiver, src) {
			return Transacting
		}
	}
	return None
}

// passesThroughQuery reports whether the receiver chain contains a recognized query entry call
func passesThroughQuery(n *sitter.Node, src []byte) bool {
	for n != nil {
		n = syntax.Unwrap(n)
		switch syntax.KindOf(n) {
		case syntax.Call:
			switch Classify(n, src) {
			case Query, InstanceQuery, RelatedQuery, FetchGraph:
				return true
			}
			n = n.ChildByFieldName("function")
		case syntax.Member:
			n = n.ChildByFieldName("object")
		default:
			return false
		}
	}
	return false
}
