package analyzer

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/viant/trxlint/analyzer/finalize"
	"github.com/viant/trxlint/analyzer/fix"
	"github.com/viant/trxlint/analyzer/scope"
	"github.com/viant/trxlint/analyzer/shape"
	"github.com/viant/trxlint/analyzer/syntax"
)

const maxReceiverLabel = 40

// pass holds the state of a single traversal
type pass struct {
	analyzer *Analyzer
	src      []byte
	scopes   *scope.Graph
	tracker  finalize.Tracker
	comments []*sitter.Node
	findings []*Finding
}

// -----------------------------------------------------------------------------
// AST traversal
// -----------------------------------------------------------------------------

func (p *pass) walk(n *sitter.Node) {
	switch n.Type() {
	case "comment":
		p.comments = append(p.comments, n)
		return
	case "call_expression":
		p.visitCall(n)
	}
	if syntax.IsFunction(n) {
		p.tracker.Enter()
		defer p.tracker.Exit()
	}
	for i := 0; i < int(n.NamedChildCount()); i++ {
		p.walk(n.NamedChild(i))
	}
}

func (p *pass) visitCall(call *sitter.Node) {
	if p.tracker.Observe(call, p.src) {
		return
	}
	s := shape.Classify(call, p.src)
	if s == shape.None || s.Satisfied(call, p.src) {
		return
	}
	if !p.scopes.Reachable(call, shape.Handle) || p.tracker.Finalized(call) {
		return
	}
	p.findings = append(p.findings, p.newFinding(s, call))
}

func (p *pass) newFinding(s shape.Shape, call *sitter.Node) *Finding {
	receiver, _, _ := syntax.MemberCallee(call, p.src)
	label := receiverLabel(receiver, p.src)
	if s == shape.Query {
		label = syntax.Text(syntax.RootOf(receiver), p.src)
	}
	return &Finding{
		Rule:      RuleName,
		Shape:     s,
		MessageID: MessageID(s),
		Message:   describe(s, label),
		Severity:  p.analyzer.severity,
		Start:     positionOf(call.StartPoint(), call.StartByte()),
		End:       positionOf(call.EndPoint(), call.EndByte()),
		Snippet:   syntax.Text(call, p.src),
		Edits:     fix.Synthesize(s, call, p.src),
	}
}

// receiverLabel returns a short single line rendition of the receiver
func receiverLabel(receiver *sitter.Node, src []byte) string {
	text := syntax.Text(receiver, src)
	if text == "" || len(text) > maxReceiverLabel || strings.ContainsAny(text, "\r\n") {
		return "…"
	}
	return text
}
