package formatter

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// token is one unit of output: a leaf of the syntax tree or a whole atomic
// subtree such as a string or a JSX element
type token struct {
	text     string
	typ      string
	parent   string
	startRow uint32
	endRow   uint32
	prefix   bool // operator is the first child of its parent
	jsx      bool
}

// containers hold statements, one per line
var containers = map[string]bool{
	"program":         true,
	"statement_block": true,
	"class_body":      true,
	"switch_body":     true,
}

// atomic nodes are copied as a single token
var atomic = map[string]bool{
	"string":          true,
	"template_string": true,
	"regex":           true,
	"comment":         true,
	"html_comment":    true,
	"number":          true,
	"hash_bang_line":  true,
}

type printer struct {
	src  []byte
	opts Options
	out  strings.Builder

	// frames holds, for every open bracket, the indent of the line it was
	// written on
	frames     []int
	lineIndent int
	pending    int
	prev       *token
}

func newPrinter(src []byte, opts Options) *printer {
	return &printer{src: src, opts: opts}
}

// String returns the output with a single trailing newline
func (p *printer) String() string {
	s := strings.TrimRight(p.out.String(), " \t\n")
	if s == "" {
		return ""
	}
	return s + "\n"
}

func (p *printer) walk(n, parent *sitter.Node) {
	typ := n.Type()

	switch {
	case atomic[typ] || strings.HasPrefix(typ, "jsx_"):
		p.emit(p.tokenOf(n, parent))
		return
	case n.ChildCount() == 0:
		if n.EndByte() > n.StartByte() {
			p.emit(p.tokenOf(n, parent))
		}
		return
	case containers[typ]:
		p.container(n)
		return
	case typ == "switch_case" || typ == "switch_default":
		p.switchCase(n)
		return
	}

	for i := 0; i < int(n.ChildCount()); i++ {
		p.walk(n.Child(i), n)
	}
}

// container prints a statement list. Blank lines between statements are
// kept, at most one at a time.
func (p *printer) container(n *sitter.Node) {
	// a switch body is never kept inline: its cases need their own lines
	inline := n.Type() != "program" && n.Type() != "switch_body" &&
		p.opts.BraceStyle == BraceCollapsePreserveInline &&
		n.StartPoint().Row == n.EndPoint().Row

	var last *sitter.Node
	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)

		if !c.IsNamed() {
			if c.Type() == "}" && last != nil && !inline {
				p.newline(1)
			}
			p.walk(c, n)
			continue
		}

		if !inline {
			p.breakBefore(c, last)
		}
		p.walk(c, n)
		last = c
	}
}

// switchCase prints the statements after the case label one level deeper
func (p *printer) switchCase(n *sitter.Node) {
	var last *sitter.Node
	body := false

	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		if !body || !c.IsNamed() {
			p.walk(c, n)
			if !c.IsNamed() && c.Type() == ":" {
				body = true
				p.frames = append(p.frames, p.lineIndent)
			}
			continue
		}

		p.breakBefore(c, last)
		p.walk(c, n)
		last = c
	}

	if body {
		p.frames = p.frames[:len(p.frames)-1]
	}
}

func (p *printer) breakBefore(c, last *sitter.Node) {
	switch {
	case last == nil:
		p.newline(1)
	case c.Type() == "comment" && c.StartPoint().Row == last.EndPoint().Row:
		// trailing comment stays on its statement's line
	case c.StartPoint().Row > last.EndPoint().Row+1:
		p.newline(2)
	default:
		p.newline(1)
	}
}

func (p *printer) newline(n int) {
	if p.out.Len() > 0 && n > p.pending {
		p.pending = n
	}
}

func (p *printer) tokenOf(n, parent *sitter.Node) token {
	t := token{
		text:     n.Content(p.src),
		typ:      n.Type(),
		startRow: n.StartPoint().Row,
		endRow:   n.EndPoint().Row,
		jsx:      strings.HasPrefix(n.Type(), "jsx_"),
	}
	if parent != nil {
		t.parent = parent.Type()
		t.prefix = parent.StartByte() == n.StartByte()
	}
	return t
}

func (p *printer) emit(t token) {
	if p.prev != nil && p.pending == 0 && t.startRow > p.prev.endRow && !collapses(*p.prev, t) {
		p.pending = 1
	}

	if p.pending > 0 && p.out.Len() > 0 {
		p.out.WriteString(strings.Repeat("\n", p.pending))
		p.lineIndent = p.indentFor(t)
		p.out.WriteString(p.indent(p.lineIndent))
	} else if p.prev != nil && p.spaceBetween(*p.prev, t) {
		p.out.WriteByte(' ')
	}
	p.pending = 0

	if t.jsx && p.opts.JSX {
		p.writeJSX(t.text)
	} else {
		p.out.WriteString(t.text)
	}

	switch {
	case isOpener(t):
		p.frames = append(p.frames, p.lineIndent)
	case isCloser(t) && len(p.frames) > 0:
		p.frames = p.frames[:len(p.frames)-1]
	}

	if t.typ == "comment" && strings.HasPrefix(t.text, "//") {
		p.pending = 1
	}
	p.prev = &t
}

// indentFor returns the indent of a line starting with t. A closing bracket
// lines up with the line that opened it.
func (p *printer) indentFor(t token) int {
	if len(p.frames) == 0 {
		return 0
	}
	top := p.frames[len(p.frames)-1]
	if isCloser(t) {
		return top
	}
	return top + 1
}

func (p *printer) indent(level int) string {
	return strings.Repeat(" ", level*p.opts.IndentSize)
}

// writeJSX re-indents the lines after the first relative to the current line
func (p *printer) writeJSX(text string) {
	lines := strings.Split(text, "\n")
	if len(lines) == 1 {
		p.out.WriteString(text)
		return
	}

	min := -1
	for _, l := range lines[1:] {
		if strings.TrimSpace(l) == "" {
			continue
		}
		w := len(l) - len(strings.TrimLeft(l, " \t"))
		if min < 0 || w < min {
			min = w
		}
	}

	p.out.WriteString(strings.TrimRight(lines[0], " \t\r"))
	for _, l := range lines[1:] {
		p.out.WriteByte('\n')
		if strings.TrimSpace(l) == "" {
			continue
		}
		p.out.WriteString(p.indent(p.lineIndent))
		p.out.WriteString(strings.TrimRight(l[min:], " \t\r"))
	}
}

func isOpener(t token) bool {
	if t.typ != t.text {
		return false
	}
	return t.text == "{" || t.text == "(" || t.text == "["
}

func isCloser(t token) bool {
	if t.typ != t.text {
		return false
	}
	return t.text == "}" || t.text == ")" || t.text == "]"
}

// collapses reports whether a line break in the source before t is dropped
func collapses(prev, t token) bool {
	switch {
	case t.text == "{" && containers[t.parent]:
		return true
	case t.text == "}" && prev.text == "{":
		return true
	case prev.text == "}" && (t.text == "else" || t.text == "catch" || t.text == "finally"):
		return true
	case prev.text == "}" && t.text == "while" && t.parent == "do_statement":
		return true
	}
	return false
}

func (p *printer) spaceBetween(a, b token) bool {
	switch {
	case a.text == "(":
		if b.text == ")" {
			return p.opts.SpaceInParen && p.opts.SpaceInEmptyParen
		}
		return p.opts.SpaceInParen
	case b.text == ")":
		return p.opts.SpaceInParen
	case a.text == "[" || b.text == "]":
		return false
	case a.text == "{" && b.text == "}":
		return false
	}

	// generator stars attach to the keyword: function* f, yield* g, *gen()
	if b.text == "*" && (a.text == "function" || a.text == "yield") {
		return false
	}
	if a.text == "*" && a.parent == "method_definition" {
		return false
	}

	switch a.text {
	case ".", "?.", "...":
		return false
	case "!", "~", "-", "+", "--", "++":
		if a.parent == "unary_expression" || (a.parent == "update_expression" && a.prefix) {
			return false
		}
	}

	switch b.text {
	case ",", ";", ".", "?.":
		return false
	case ":":
		return b.parent == "ternary_expression"
	case "(":
		return spaceBeforeParen(a, b)
	case "[":
		return b.parent != "subscript_expression"
	case "++", "--":
		if b.parent == "update_expression" && !b.prefix {
			return false
		}
	}
	return true
}

func spaceBeforeParen(a, b token) bool {
	switch b.parent {
	case "arguments":
		return false
	case "formal_parameters":
		switch a.typ {
		case "identifier", "property_identifier", "private_property_identifier", "function", "*":
			return false
		}
	}
	return true
}
