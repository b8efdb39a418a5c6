// Package emitter renders test-case categories into Jest source fragments
package emitter

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/QTest-hq/qtest-studio/internal/resolver"
	"github.com/QTest-hq/qtest-studio/pkg/testcase"
)

// Family renders one test category. Imports are emitted before the body;
// both write into the same buffer.
type Family interface {
	// Category returns the category this family renders
	Category() testcase.Category

	// EmitImports writes the import section
	EmitImports(ctx *Context, buf *Buffer) error

	// EmitBody writes the test blocks
	EmitBody(ctx *Context, buf *Buffer) error
}

// MockDataEmitter is implemented by families that declare mock data
// builders between imports and body
type MockDataEmitter interface {
	EmitMockData(ctx *Context, buf *Buffer) error
}

// Context carries the read-only model snapshot into the emitters
type Context struct {
	Model *testcase.Model
}

// NewContext creates an emission context for a model
func NewContext(m *testcase.Model) *Context {
	return &Context{Model: m}
}

// ImportPath returns the specifier a generated test file uses for target
func (c *Context) ImportPath(target string) (string, error) {
	p, err := resolver.Import(c.Model.ProjectRoot, target)
	if err != nil {
		return "", fmt.Errorf("failed to resolve import: %w", err)
	}
	return p, nil
}

// skipUnknown is the branch taken for statement types a family does not
// know. It contributes nothing to the output.
func skipUnknown(c testcase.Category, id, typ string) {
	log.Debug().
		Str("category", string(c)).
		Str("statement_id", id).
		Str("type", typ).
		Msg("skipping statement of unknown type")
}

// Registry holds the emitter family of every category
type Registry struct {
	families map[testcase.Category]Family
}

// NewRegistry creates a registry with all built-in families
func NewRegistry() *Registry {
	r := &Registry{
		families: make(map[testcase.Category]Family),
	}

	r.Register(&ReactFamily{})
	r.Register(&ReduxFamily{})
	r.Register(&HooksFamily{})
	r.Register(&EndpointFamily{})
	r.Register(&PuppeteerFamily{})

	return r
}

// Register adds a family, replacing any family of the same category
func (r *Registry) Register(f Family) {
	r.families[f.Category()] = f
}

// Get returns the family of a category
func (r *Registry) Get(c testcase.Category) (Family, error) {
	f, ok := r.families[c]
	if !ok {
		return nil, fmt.Errorf("emitter not found: %s", c)
	}
	return f, nil
}

// List returns the registered categories in priority order
func (r *Registry) List() []testcase.Category {
	cats := make([]testcase.Category, 0, len(r.families))
	for _, c := range testcase.Priority {
		if _, ok := r.families[c]; ok {
			cats = append(cats, c)
		}
	}
	return cats
}

// capitalize upper-cases the first letter of s
func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
