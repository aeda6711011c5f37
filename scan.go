package fnattrs

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
	"unicode"
)

// lineInfo is what the scanner records for a line holding a function
// declaration: the declaration itself and, if the line carries a fnattrs
// directive, the disposition the author expects for it.
type lineInfo struct {
	decl FuncDecl

	want Disposition
	// checked is false when the line carries no directive.
	checked bool
}

var (
	directiveRegex = regexp.MustCompile(`fnattrs:([\w-]+)`)
	// attributeRegex tolerates one level of parentheses inside the list so
	// that clauses like __attribute__((aligned(8), noinline)) neither leak
	// a stray ')' into the declaration head nor hide the names we care
	// about. ParseAttrKind discards the argument fragments.
	attributeRegex = regexp.MustCompile(`__attribute__\s*\(\(((?:[^()]|\([^()]*\))*)\)\)`)
)

// cKeywords are identifiers that can sit directly before a '(' without
// introducing a function declaration.
var cKeywords = map[string]bool{
	"if":     true,
	"for":    true,
	"while":  true,
	"switch": true,
	"return": true,
	"sizeof": true,
}

func scanFile(path string) (map[int]lineInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	decls, err := scanSource(path, f)
	if err != nil {
		return nil, err
	}
	log.Debug().Str("file", path).Int("decls", len(decls)).Msg("scanned")
	return decls, nil
}

// scanSource reads C source line by line and extracts every top-level
// function declaration together with any fnattrs directive on the same
// line. It is deliberately not a C parser: one declaration per line, brace
// depth tracking to skip function bodies, and no preprocessing. That covers
// the declaration shapes attribute fixtures actually use.
func scanSource(path string, r io.Reader) (map[int]lineInfo, error) {
	decls := make(map[int]lineInfo)
	scanner := bufio.NewScanner(r)
	depth := 0
	inComment := false
	for lineNo := 1; scanner.Scan(); lineNo++ {
		raw := scanner.Text()

		// Directives live in comments, so match against the raw line
		// before stripping.
		var want Disposition
		checked := false
		if m := directiveRegex.FindStringSubmatch(raw); m != nil {
			d, err := ParseDisposition(m[1])
			if err != nil {
				return nil, fmt.Errorf("%s:%d: %v", path, lineNo, err)
			}
			want, checked = d, true
		}

		line, nowInComment := stripComments(raw, inComment)
		inComment = nowInComment

		captured := false
		if depth == 0 {
			if decl, ok := parseDecl(line); ok {
				if decl.IsStatic && decl.IsExtern {
					return nil, fmt.Errorf("%s:%d: declaration is both static and extern", path, lineNo)
				}
				decl.File = path
				decl.Line = lineNo
				decls[lineNo] = lineInfo{decl: decl, want: want, checked: checked}
				captured = true
			}
		}
		if checked && !captured {
			// A directive that attaches to nothing is a typo waiting to
			// silently pass.
			return nil, fmt.Errorf("%s:%d: fnattrs directive on a line with no function declaration", path, lineNo)
		}

		depth += strings.Count(line, "{") - strings.Count(line, "}")
		if depth < 0 {
			return nil, fmt.Errorf("%s:%d: unbalanced braces", path, lineNo)
		}
	}
	return decls, scanner.Err()
}

// parseDecl recognizes a single-line function declaration or definition:
// any interleaving of storage class, type tokens, the inline keyword, and
// __attribute__ clauses, followed by the function name and its parameter
// list. Attribute clauses are folded into an order-independent set before
// anything else so their placement never matters.
func parseDecl(line string) (FuncDecl, bool) {
	var decl FuncDecl
	attrs := NewAttrSet()
	line = attributeRegex.ReplaceAllStringFunc(line, func(clause string) string {
		inner := attributeRegex.FindStringSubmatch(clause)[1]
		for _, name := range strings.Split(inner, ",") {
			if kind, ok := ParseAttrKind(strings.TrimSpace(name)); ok {
				attrs.Add(kind)
			}
		}
		return " "
	})

	open := strings.IndexByte(line, '(')
	if open < 0 {
		return decl, false
	}
	head := line[:open]
	if strings.ContainsAny(head, "=#\"") {
		return decl, false
	}
	tokens := strings.FieldsFunc(head, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_'
	})
	// A lone identifier before '(' is a call or a macro use, not a
	// declaration.
	if len(tokens) < 2 {
		return decl, false
	}
	name := tokens[len(tokens)-1]
	if cKeywords[name] {
		return decl, false
	}
	// The line must close the parameter list and either terminate the
	// declaration or open its body.
	rest := strings.TrimSpace(line[open:])
	if !strings.HasSuffix(rest, ";") && !strings.HasSuffix(rest, "{") && !strings.HasSuffix(rest, "}") {
		return decl, false
	}
	for _, tok := range tokens[:len(tokens)-1] {
		switch tok {
		case "static":
			decl.IsStatic = true
		case "extern":
			decl.IsExtern = true
		case "inline", "__inline", "__inline__":
			decl.Inline = true
		case "typedef", "struct", "union", "enum", "if", "for", "while", "switch", "return":
			return decl, false
		}
	}
	decl.Name = name
	decl.Attrs = attrs
	return decl, true
}

// stripComments removes // and /* */ comment text from one line, carrying
// block-comment state across lines. Each closed block comment is replaced
// with a single space so that tokens separated only by a comment stay
// separated.
func stripComments(line string, inBlock bool) (string, bool) {
	var b strings.Builder
	for i := 0; i < len(line); {
		if inBlock {
			end := strings.Index(line[i:], "*/")
			if end < 0 {
				return b.String(), true
			}
			i += end + 2
			inBlock = false
			b.WriteByte(' ')
			continue
		}
		if strings.HasPrefix(line[i:], "//") {
			break
		}
		if strings.HasPrefix(line[i:], "/*") {
			i += 2
			inBlock = true
			continue
		}
		b.WriteByte(line[i])
		i++
	}
	return b.String(), inBlock
}
