package fnattrs

import (
	"errors"
	"fmt"
)

// Disposition is the effective inlining treatment of a function declaration
// once every modifier has been taken into account.
type Disposition int

const (
	// NoDisposition marks declarations with no inlining semantics at all.
	NoDisposition Disposition = iota
	// ForceInline inlines the function at every call site regardless of
	// heuristics.
	ForceInline
	// ForceNoInline forbids inlining.
	ForceNoInline
	// StandardInlineHint is the plain inline keyword: a hint that may or
	// may not suppress standalone emission.
	StandardInlineHint
	// GnuInlineDefinition is extern inline under gnu_inline: the body is
	// compiled as the callable external definition of record, the legacy
	// pre-C99 meaning of extern inline.
	GnuInlineDefinition
	// ExternDefinitionOnly is standard C extern inline: a usable external
	// definition is emitted because no other translation unit is
	// guaranteed to provide one.
	ExternDefinitionOnly
)

var dispositionNames = [...]string{
	NoDisposition:        "none",
	ForceInline:          "force-inline",
	ForceNoInline:        "force-noinline",
	StandardInlineHint:   "inline-hint",
	GnuInlineDefinition:  "gnu-inline-def",
	ExternDefinitionOnly: "extern-def-only",
}

func (d Disposition) String() string {
	if d < 0 || int(d) >= len(dispositionNames) {
		return fmt.Sprintf("Disposition(%d)", int(d))
	}
	return dispositionNames[d]
}

// ParseDisposition maps a directive name back to its disposition. The names
// are the same ones String renders and the fnattrs source directives use.
func ParseDisposition(s string) (Disposition, error) {
	for d, name := range dispositionNames {
		if s == name {
			return Disposition(d), nil
		}
	}
	return NoDisposition, fmt.Errorf("no such disposition %s", s)
}

// ErrConflictingAttributes is returned by Classify when always_inline and
// noinline appear on the same declaration. The conflict is a hard error,
// never resolved by picking one: inlining disposition is observable
// code-generation behavior.
var ErrConflictingAttributes = errors.New("always_inline and noinline on the same declaration")

// Classify determines the effective inlining disposition of a declaration.
// Attributes take precedence over keywords: always_inline wins over
// everything, then noinline, and only then do the inline and extern
// keywords get a say. gnu_inline changes the meaning of extern inline and
// is otherwise inert.
func Classify(decl FuncDecl) (Disposition, error) {
	always := decl.Attrs.Has(AttrAlwaysInline)
	noinline := decl.Attrs.Has(AttrNoInline)
	switch {
	case always && noinline:
		return NoDisposition, fmt.Errorf("%s: %w", decl.Name, ErrConflictingAttributes)
	case always:
		return ForceInline, nil
	case noinline:
		return ForceNoInline, nil
	case decl.Inline && decl.IsExtern && decl.Attrs.Has(AttrGnuInline):
		return GnuInlineDefinition, nil
	case decl.Inline && decl.IsExtern:
		return ExternDefinitionOnly, nil
	case decl.Inline:
		return StandardInlineHint, nil
	}
	return NoDisposition, nil
}
