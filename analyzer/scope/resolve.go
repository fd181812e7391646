package scope

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// Acquire returns the innermost scope enclosing node
func (g *Graph) Acquire(n *sitter.Node) *Scope {
	return g.innermost(n.StartByte(), n.EndByte())
}

func (g *Graph) innermost(start, end uint32) *Scope {
	current := g.Global
	for {
		var next *Scope
		for _, candidate := range current.Children {
			if candidate.contains(start, end) {
				next = candidate
				break
			}
		}
		if next == nil {
			return current
		}
		current = next
	}
}

// Reachable reports whether name is bound in a non-global scope enclosing node by a
// declaration that starts before node. The innermost scope declaring name decides.
func (g *Graph) Reachable(n *sitter.Node, name string) bool {
	position := n.StartByte()
	for s := g.Acquire(n); s != nil && s.Kind != Global; s = s.Parent {
		binding := s.Lookup(name)
		if binding == nil {
			continue
		}
		for _, def := range binding.Defs {
			if def.Start < position {
				return true
			}
		}
		return false
	}
	return false
}
