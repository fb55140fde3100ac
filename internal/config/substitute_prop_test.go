package config

import (
	"maps"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/roach88/codespawn/internal/ir"
)

func lookup(m map[string]string, v string) string {
	if r, ok := m[v]; ok {
		return r
	}
	return v
}

func TestSubstitutionProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	dict := gen.MapOf(gen.AlphaString(), gen.AlphaString())

	properties.Property("zero value resolves every value to itself", prop.ForAll(
		func(v string) bool {
			return Substitution{}.Resolve(v) == v
		},
		gen.AnyString(),
	))

	properties.Property("values missing from both dictionaries are kept", prop.ForAll(
		func(types, names map[string]string, v string) bool {
			_, inTypes := types[v]
			_, inNames := names[v]
			if inTypes || inNames {
				return true
			}
			return NewSubstitution(types, names).Resolve(v) == v
		},
		dict, dict, gen.AlphaString(),
	))

	properties.Property("names apply to the result of types", prop.ForAll(
		func(types, names map[string]string, v string) bool {
			return NewSubstitution(types, names).Resolve(v) == lookup(names, lookup(types, v))
		},
		dict, dict, gen.AlphaString(),
	))

	properties.Property("later map mutation does not leak into the overlay", prop.ForAll(
		func(types map[string]string, v string) bool {
			s := NewSubstitution(types, nil)
			want := s.Resolve(v)
			mutated := maps.Clone(types)
			s2 := NewSubstitution(mutated, nil)
			mutated[v] = v + "!"
			return s.Resolve(v) == want && s2.Resolve(v) == want
		},
		dict, gen.AlphaString(),
	))

	properties.Property("Apply matches Resolve and keeps the input", prop.ForAll(
		func(types, names map[string]string, name, typ string) bool {
			in := []*ir.Node{ir.NewNode(ir.KindVariable, ir.A(ir.AttrName, name), ir.A(ir.AttrType, typ))}
			before := ir.Sprint(in)

			s := NewSubstitution(types, names)
			out := s.Apply(in)

			got := out[0]
			return ir.Sprint(in) == before &&
				got.Get(ir.AttrName) == s.Resolve(name) &&
				got.Get(ir.AttrType) == s.Resolve(typ)
		},
		dict, dict, gen.AlphaString(), gen.AlphaString(),
	))

	properties.TestingRun(t)
}
