// Package generator assembles a test file from a test-case model
package generator

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/QTest-hq/qtest-studio/internal/emitter"
	"github.com/QTest-hq/qtest-studio/internal/formatter"
	"github.com/QTest-hq/qtest-studio/pkg/testcase"
)

// ErrNoActiveCategory is returned when no category counter is above zero
var ErrNoActiveCategory = errors.New("no active test category")

// FormatError reports that the assembled source could not be formatted.
// The unformatted text is still available on the document.
type FormatError struct {
	Category testcase.Category
	Err      error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("failed to format %s test file: %v", e.Category, e.Err)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// Document is a generated test file
type Document struct {
	Category testcase.Category `json:"category"`

	// Source is the formatted text, or the raw text when formatting failed
	Source    string `json:"source"`
	Raw       string `json:"-"`
	Formatted bool   `json:"formatted"`
}

// Generator turns models into test source
type Generator struct {
	registry   *emitter.Registry
	indentSize int
}

// Option configures a Generator
type Option func(*Generator)

// WithRegistry replaces the built-in emitter families
func WithRegistry(r *emitter.Registry) Option {
	return func(g *Generator) {
		g.registry = r
	}
}

// WithIndentSize overrides the indentation width of every profile
func WithIndentSize(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.indentSize = n
		}
	}
}

// NewGenerator creates a generator with the built-in emitter families
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{
		registry: emitter.NewRegistry(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// ActiveCategory returns the category Generate would emit: the first
// active one in priority order. Other active categories are ignored.
func (g *Generator) ActiveCategory(m *testcase.Model) testcase.Category {
	return m.ActiveCategory()
}

// Assemble runs the emitters of the active category and returns the
// unformatted source
func (g *Generator) Assemble(m *testcase.Model) (testcase.Category, string, error) {
	cat := g.ActiveCategory(m)
	if cat == testcase.CategoryNone {
		return cat, "", ErrNoActiveCategory
	}

	// only the react category has foreign keys between its collections
	if cat == testcase.CategoryReact {
		if err := m.Validate(); err != nil {
			return cat, "", err
		}
	}

	family, err := g.registry.Get(cat)
	if err != nil {
		return cat, "", err
	}

	ctx := emitter.NewContext(m)
	buf := emitter.NewBuffer()

	if err := family.EmitImports(ctx, buf); err != nil {
		return cat, "", fmt.Errorf("failed to emit %s imports: %w", cat, err)
	}
	if md, ok := family.(emitter.MockDataEmitter); ok {
		if err := md.EmitMockData(ctx, buf); err != nil {
			return cat, "", fmt.Errorf("failed to emit mock data: %w", err)
		}
	}
	if err := family.EmitBody(ctx, buf); err != nil {
		return cat, "", fmt.Errorf("failed to emit %s body: %w", cat, err)
	}

	return cat, buf.String(), nil
}

// Generate assembles and formats the test file for a model. When only
// formatting fails, the returned document holds the raw text and the error
// is a *FormatError.
func (g *Generator) Generate(ctx context.Context, m *testcase.Model) (*Document, error) {
	cat, raw, err := g.Assemble(m)
	if err != nil {
		return nil, err
	}

	doc := &Document{Category: cat, Source: raw, Raw: raw}

	opts := g.Options(cat)
	formatted, err := formatter.FormatContext(ctx, raw, opts)
	if err != nil {
		log.Debug().Err(err).Str("category", string(cat)).Msg("formatting failed")
		return doc, &FormatError{Category: cat, Err: err}
	}

	doc.Source = formatted
	doc.Formatted = true
	return doc, nil
}

// Options returns the formatter options used for a category
func (g *Generator) Options(c testcase.Category) formatter.Options {
	opts := formatter.ProfileFor(c)
	if g.indentSize > 0 {
		opts.IndentSize = g.indentSize
	}
	return opts
}
