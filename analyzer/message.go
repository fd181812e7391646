package analyzer

import (
	"fmt"

	"github.com/viant/trxlint/analyzer/shape"
)

// Message identifiers, one per shape
const (
	MissingTrxQuery         = "missingTrxQuery"
	MissingTrxInstanceQuery = "missingTrxInstanceQuery"
	MissingTrxRelatedQuery  = "missingTrxRelatedQuery"
	MissingTrxFetchGraph    = "missingTrxFetchGraph"
	AvoidTransacting        = "avoidTransacting"
)

type message struct {
	id       string
	template string
}

var messages = map[shape.Shape]message{
	shape.Query:         {id: MissingTrxQuery, template: "`trx` is in scope but not passed to %s.query(); pass it as the first argument"},
	shape.InstanceQuery: {id: MissingTrxInstanceQuery, template: "`trx` is in scope but not passed to %s.$query(); pass it as the first argument"},
	shape.RelatedQuery:  {id: MissingTrxRelatedQuery, template: "`trx` is in scope but not passed to %s.$relatedQuery(); pass it as the second argument"},
	shape.FetchGraph:    {id: MissingTrxFetchGraph, template: "`trx` is in scope but not passed to %s.$fetchGraph(); add `transaction: trx` to the options"},
	shape.Transacting:   {id: AvoidTransacting, template: "avoid %s.transacting(); pass `trx` to the query entry call instead"},
}

// MessageID returns stable message identifier of a shape
func MessageID(s shape.Shape) string {
	return messages[s].id
}

// MessageIDs returns all message identifiers in shape order
func MessageIDs() []string {
	var result []string
	for _, s := range shape.Shapes {
		result = append(result, messages[s].id)
	}
	return result
}

func describe(s shape.Shape, receiver string) string {
	msg, ok := messages[s]
	if !ok {
		return ""
	}
	return fmt.Sprintf(msg.template, receiver)
}
