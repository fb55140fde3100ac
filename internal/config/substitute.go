package config

import (
	"maps"

	"github.com/roach88/codespawn/internal/ir"
)

// Substitution is an immutable overlay over attribute values.
//
// The zero value is the identity overlay.
type Substitution struct {
	types map[string]string
	names map[string]string
}

// NewSubstitution copies both dictionaries into a new overlay.
func NewSubstitution(types, names map[string]string) Substitution {
	return Substitution{types: maps.Clone(types), names: maps.Clone(names)}
}

// IsIdentity reports whether the overlay changes nothing.
func (s Substitution) IsIdentity() bool {
	return len(s.types) == 0 && len(s.names) == 0
}

// Resolve maps an attribute value through the overlay.
//
// The type dictionary is applied first, then the name dictionary is applied
// to that result. A type replacement that equals a name key is therefore
// replaced again. Each dictionary only matches whole values, so the order
// of entries inside a dictionary never matters.
func (s Substitution) Resolve(v string) string {
	if r, ok := s.types[v]; ok {
		v = r
	}
	if r, ok := s.names[v]; ok {
		v = r
	}
	return v
}

// Apply returns a deep copy of nodes with every attribute value resolved.
// The input is not modified.
func (s Substitution) Apply(nodes []*ir.Node) []*ir.Node {
	out := ir.Clone(nodes)
	if s.IsIdentity() {
		return out
	}
	for _, n := range out {
		n.Walk(func(n *ir.Node) bool {
			for i := range n.Attrs {
				n.Attrs[i].Value = s.Resolve(n.Attrs[i].Value)
			}
			return true
		})
	}
	return out
}
