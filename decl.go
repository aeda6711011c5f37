package fnattrs

import (
	"fmt"
	"strings"
)

// FuncDecl is a function declaration reduced to the modifiers that decide
// its inlining disposition, plus enough position information to report on
// it. Declarations are built by the scanner and classified immediately;
// nothing retains them afterwards.
type FuncDecl struct {
	Name     string
	IsStatic bool
	IsExtern bool
	// Inline records the inline keyword, wherever it appeared among the
	// declaration specifiers.
	Inline bool
	Attrs  AttrSet

	File string
	Line int
}

func (d FuncDecl) String() string {
	parts := make([]string, 0, 5)
	if d.IsStatic {
		parts = append(parts, "static")
	}
	if d.IsExtern {
		parts = append(parts, "extern")
	}
	if d.Inline {
		parts = append(parts, "inline")
	}
	for _, k := range []AttrKind{AttrAlwaysInline, AttrNoInline, AttrGnuInline} {
		if d.Attrs.Has(k) {
			parts = append(parts, fmt.Sprintf("__attribute__((%s))", k))
		}
	}
	parts = append(parts, d.Name)
	return strings.Join(parts, " ")
}
