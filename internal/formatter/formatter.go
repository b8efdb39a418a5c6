// Package formatter normalizes generated Jest source: one statement per
// line, two-space block indentation and collapsed braces. Only whitespace
// changes; every token is written back as it was parsed.
package formatter

import (
	"context"
	"errors"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"

	"github.com/QTest-hq/qtest-studio/pkg/testcase"
)

// ErrUnparseable is returned when the input is not valid JavaScript
var ErrUnparseable = errors.New("source is not parseable")

// BraceStyle controls where block braces go
type BraceStyle string

const (
	// BraceCollapse keeps opening braces on the line of their statement
	// and puts every block statement on its own line
	BraceCollapse BraceStyle = "collapse"

	// BraceCollapsePreserveInline is BraceCollapse but leaves blocks that
	// were written on a single line alone
	BraceCollapsePreserveInline BraceStyle = "collapse,preserve-inline"
)

// Options configures Format
type Options struct {
	IndentSize int        `yaml:"indent_size" json:"indent_size"`
	BraceStyle BraceStyle `yaml:"brace_style" json:"brace_style"`

	// SpaceInParen pads non-empty parentheses: f( a, b )
	SpaceInParen bool `yaml:"space_in_paren" json:"space_in_paren"`

	// SpaceInEmptyParen pads empty parentheses as well. It has no effect
	// unless SpaceInParen is set.
	SpaceInEmptyParen bool `yaml:"space_in_empty_paren" json:"space_in_empty_paren"`

	// JSX re-indents multi-line JSX elements. Without it they are copied
	// verbatim.
	JSX bool `yaml:"jsx" json:"jsx"`
}

// DefaultOptions returns the options shared by every category
func DefaultOptions() Options {
	return Options{
		IndentSize:        2,
		BraceStyle:        BraceCollapse,
		SpaceInEmptyParen: true,
	}
}

// ProfileFor returns the options used for a category's documents
func ProfileFor(c testcase.Category) Options {
	opts := DefaultOptions()
	switch c {
	case testcase.CategoryReact:
		opts.BraceStyle = BraceCollapsePreserveInline
		opts.JSX = true
	case testcase.CategoryHooks:
		opts.JSX = true
	case testcase.CategoryRedux, testcase.CategoryEndpoint, testcase.CategoryPuppeteer:
	}
	return opts
}

// Format formats src with opts
func Format(src string, opts Options) (string, error) {
	return FormatContext(context.Background(), src, opts)
}

// FormatContext formats src with opts. Parsing honours ctx cancellation.
func FormatContext(ctx context.Context, src string, opts Options) (string, error) {
	if opts.IndentSize <= 0 {
		opts.IndentSize = 2
	}

	// parsers are not safe for concurrent use, so each call gets its own
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(javascript.GetLanguage())

	source := []byte(src)
	tree, err := parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return "", fmt.Errorf("failed to parse: %w", err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		if n := firstError(root); n != nil {
			pos := n.StartPoint()
			return "", fmt.Errorf("%w: syntax error at line %d, column %d", ErrUnparseable, pos.Row+1, pos.Column+1)
		}
		return "", ErrUnparseable
	}

	p := newPrinter(source, opts)
	p.walk(root, nil)
	return p.String(), nil
}

func firstError(n *sitter.Node) *sitter.Node {
	if n.Type() == "ERROR" || n.IsMissing() {
		return n
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		if c := n.Child(i); c != nil && c.HasError() {
			if e := firstError(c); e != nil {
				return e
			}
		}
	}
	return nil
}
