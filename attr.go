package fnattrs

import "strings"

// AttrKind enumerates the function attributes that affect inlining
// disposition.
type AttrKind int

const (
	AttrAlwaysInline AttrKind = iota
	AttrNoInline
	AttrGnuInline
)

func (k AttrKind) String() string {
	switch k {
	case AttrAlwaysInline:
		return "always_inline"
	case AttrNoInline:
		return "noinline"
	case AttrGnuInline:
		return "gnu_inline"
	}
	return "unknown"
}

// ParseAttrKind maps an attribute name as spelled in source to its kind.
// GNU C accepts every attribute in an alternate spelling wrapped in double
// underscores (__noinline__); both forms fold to the same kind. Names the
// classifier does not understand return ok=false rather than an error,
// since real headers carry plenty of unrelated attributes that the scanner
// must skip over.
func ParseAttrKind(s string) (AttrKind, bool) {
	if strings.HasPrefix(s, "__") && strings.HasSuffix(s, "__") && len(s) > 4 {
		s = s[2 : len(s)-2]
	}
	switch s {
	case "always_inline":
		return AttrAlwaysInline, true
	case "noinline":
		return AttrNoInline, true
	case "gnu_inline":
		return AttrGnuInline, true
	}
	return 0, false
}

// AttrSet is an order-independent set of recognized attributes. Where an
// attribute clause sits in the declaration never matters to classification,
// so the scanner folds every __attribute__ clause on a declaration into a
// single set.
type AttrSet map[AttrKind]struct{}

func NewAttrSet(kinds ...AttrKind) AttrSet {
	s := make(AttrSet, len(kinds))
	for _, k := range kinds {
		s.Add(k)
	}
	return s
}

func (s AttrSet) Add(k AttrKind) { s[k] = struct{}{} }

func (s AttrSet) Has(k AttrKind) bool {
	_, ok := s[k]
	return ok
}
