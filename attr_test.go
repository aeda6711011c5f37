package fnattrs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAttrKind(t *testing.T) {
	// Each attribute is accepted in its plain and its __name__ spelling.
	for _, s := range []string{"always_inline", "__always_inline__"} {
		k, ok := ParseAttrKind(s)
		assert.True(t, ok)
		assert.Equal(t, AttrAlwaysInline, k)
	}
	for _, s := range []string{"noinline", "__noinline__"} {
		k, ok := ParseAttrKind(s)
		assert.True(t, ok)
		assert.Equal(t, AttrNoInline, k)
	}
	for _, s := range []string{"gnu_inline", "__gnu_inline__"} {
		k, ok := ParseAttrKind(s)
		assert.True(t, ok)
		assert.Equal(t, AttrGnuInline, k)
	}

	// Unrelated attributes are not errors, they just aren't ours.
	_, ok := ParseAttrKind("unused")
	assert.False(t, ok)
	_, ok = ParseAttrKind("____")
	assert.False(t, ok)
}

func TestAttrSet(t *testing.T) {
	s := NewAttrSet(AttrNoInline)
	assert.True(t, s.Has(AttrNoInline))
	assert.False(t, s.Has(AttrAlwaysInline))
	s.Add(AttrGnuInline)
	assert.True(t, s.Has(AttrGnuInline))
	assert.Len(t, s, 2)
}
