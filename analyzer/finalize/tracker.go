package finalize

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/viant/trxlint/analyzer/shape"
	"github.com/viant/trxlint/analyzer/syntax"
)

// Methods ending a transaction
const (
	CommitMethod   = "commit"
	RollbackMethod = "rollback"
)

// Tracker records where the transaction gets committed or rolled back for every
// function currently open during a traversal.
type Tracker struct {
	frames [][]uint32
}

// Enter opens a frame for a function body
func (t *Tracker) Enter() {
	t.frames = append(t.frames, nil)
}

// Exit discards the innermost frame
func (t *Tracker) Exit() {
	if len(t.frames) == 0 {
		return
	}
	t.frames = t.frames[:len(t.frames)-1]
}

// Depth returns number of open frames
func (t *Tracker) Depth() int {
	return len(t.frames)
}

// Observe records the call when it is trx.commit() or trx.rollback()
func (t *Tracker) Observe(call *sitter.Node, src []byte) bool {
	if len(t.frames) == 0 || !IsFinalization(call, src) {
		return false
	}
	top := len(t.frames) - 1
	t.frames[top] = append(t.frames[top], call.StartByte())
	return true
}

// Finalized reports whether any open frame recorded a finalization before node
func (t *Tracker) Finalized(n *sitter.Node) bool {
	position := n.StartByte()
	for _, frame := range t.frames {
		for _, finalized := range frame {
			if finalized < position {
				return true
			}
		}
	}
	return false
}

// IsFinalization reports whether call commits or rolls back trx
func IsFinalization(call *sitter.Node, src []byte) bool {
	receiver, method, ok := syntax.MemberCallee(call, src)
	if !ok {
		return false
	}
	switch method {
	case CommitMethod, RollbackMethod:
		return syntax.IsIdentifier(receiver, src, shape.Handle)
	}
	return false
}
