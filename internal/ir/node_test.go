package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupDistinguishesAbsentFromEmpty(t *testing.T) {
	n := NewNode(KindVariable, A(AttrName, "x"), A(AttrQualifier, ""))

	v, ok := n.Lookup(AttrQualifier)
	assert.True(t, ok)
	assert.Equal(t, "", v)

	_, ok = n.Lookup(AttrValue)
	assert.False(t, ok)
	assert.Equal(t, "x", n.Get(AttrName))
}

func TestLookupLastOccurrenceWins(t *testing.T) {
	n := NewNode(KindVariable).Set(AttrType, "int").Set(AttrType, "u8")
	assert.Equal(t, "u8", n.Get(AttrType))
}

func TestCloneIsDeep(t *testing.T) {
	orig := NewNode(KindStruct, A(AttrName, "Point")).Add(
		NewNode(KindVariable, A(AttrName, "x"), A(AttrType, "int")),
	)

	c := orig.Clone()
	c.Attrs[0].Value = "Vec"
	c.Children[0].Attrs[1].Value = "float"
	c.Children = append(c.Children, NewNode(KindVariable))

	assert.Equal(t, "Point", orig.Get(AttrName))
	assert.Equal(t, "int", orig.Children[0].Get(AttrType))
	assert.Len(t, orig.Children, 1)
}

func TestCloneNil(t *testing.T) {
	var n *Node
	assert.Nil(t, n.Clone())
	assert.Nil(t, Clone(nil))
}

func TestWalkVisitsParentsFirst(t *testing.T) {
	root := NewNode(KindStruct, A(AttrName, "a")).Add(
		NewNode(KindVariable, A(AttrName, "b")),
		NewNode(KindStruct, A(AttrName, "c")).Add(NewNode(KindVariable, A(AttrName, "d"))),
	)

	var names []string
	root.Walk(func(n *Node) bool {
		names = append(names, n.Get(AttrName))
		return true
	})
	assert.Equal(t, []string{"a", "b", "c", "d"}, names)

	names = nil
	root.Walk(func(n *Node) bool {
		names = append(names, n.Get(AttrName))
		return n.Get(AttrName) != "c"
	})
	assert.Equal(t, []string{"a", "b", "c"}, names)
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		tag  string
		want Kind
	}{
		{"var", KindVariable},
		{"Variable", KindVariable},
		{"func", KindFunction},
		{"fptr", KindFunctionPointer},
		{"function_pointer", KindFunctionPointer},
		{"enum", KindEnum},
		{"struct", KindStruct},
		{"bitflags", KindBitFlags},
		{" attribute ", KindAttribute},
		{"attr", KindAttribute},
	}
	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			k, ok := ParseKind(tt.tag)
			require.True(t, ok)
			assert.Equal(t, tt.want, k)
		})
	}

	k, ok := ParseKind("union")
	assert.False(t, ok)
	assert.Equal(t, KindUnknown, k)
	assert.False(t, k.IsKnown())
}

func TestKindTextRoundTrip(t *testing.T) {
	for tag := range kindAliases {
		k, _ := ParseKind(tag)
		b, err := k.MarshalText()
		require.NoError(t, err)

		var back Kind
		require.NoError(t, back.UnmarshalText(b))
		assert.Equal(t, k, back, tag)
	}
}

func TestParseLang(t *testing.T) {
	for _, tag := range []string{"rust", "RS"} {
		l, ok := ParseLang(tag)
		require.True(t, ok)
		assert.Equal(t, LangRust, l)
	}
	for _, tag := range []string{"cpp", "c++", "C"} {
		l, ok := ParseLang(tag)
		require.True(t, ok)
		assert.Equal(t, LangCpp, l)
	}
	_, ok := ParseLang("go")
	assert.False(t, ok)

	assert.Equal(t, "Rust", LangRust.String())
	assert.Equal(t, "C/C++", LangCpp.String())
}
