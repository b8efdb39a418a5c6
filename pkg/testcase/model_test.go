package testcase

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModel_ActiveCategory(t *testing.T) {
	tests := []struct {
		name  string
		setup func(m *Model)
		want  Category
	}{
		{"none", func(m *Model) {}, CategoryNone},
		{"react only", func(m *Model) { m.React.HasReact = 1 }, CategoryReact},
		{"redux only", func(m *Model) { m.Redux.HasRedux = 2 }, CategoryRedux},
		{"react and redux", func(m *Model) { m.React.HasReact = 1; m.Redux.HasRedux = 1 }, CategoryReact},
		{"hooks and puppeteer", func(m *Model) { m.Hooks.HasHooks = 1; m.Puppeteer.HasPuppeteer = 3 }, CategoryHooks},
		{"endpoint", func(m *Model) { m.Endpoint.HasEndpoint = 1 }, CategoryEndpoint},
		{"negative counter is inactive", func(m *Model) { m.Redux.HasRedux = -1; m.Puppeteer.HasPuppeteer = 1 }, CategoryPuppeteer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &Model{}
			tt.setup(m)
			assert.Equal(t, tt.want, m.ActiveCategory())
		})
	}
}

func TestModel_ActiveCategories(t *testing.T) {
	m := &Model{}
	m.Puppeteer.HasPuppeteer = 1
	m.React.HasReact = 1
	m.Endpoint.HasEndpoint = 1

	assert.Equal(t, []Category{CategoryReact, CategoryEndpoint, CategoryPuppeteer}, m.ActiveCategories())
}

func TestDescribeBlocks_Ordered(t *testing.T) {
	b := NewBuilder("/proj")
	first := b.AddDescribeBlock("A")
	second := b.AddDescribeBlock("B")
	m := b.Build()

	blocks := m.React.DescribeBlocks.Ordered()
	require.Len(t, blocks, 2)
	assert.Equal(t, first, blocks[0].ID)
	assert.Equal(t, second, blocks[1].ID)
}

func TestItStatements_ForDescribe(t *testing.T) {
	b := NewBuilder("/proj")
	d1 := b.AddDescribeBlock("one")
	d2 := b.AddDescribeBlock("two")
	it1 := b.AddItStatement(d1, "first")
	b.AddItStatement(d2, "other")
	it3 := b.AddItStatement(d1, "second")
	m := b.Build()

	its := m.React.ItStatements.ForDescribe(d1)
	require.Len(t, its, 2)
	assert.Equal(t, it1, its[0].ID)
	assert.Equal(t, it3, its[1].ID)
	assert.Empty(t, m.React.ItStatements.ForDescribe("missing"))
}

func TestStatements_ForIt_FollowsAllIDs(t *testing.T) {
	s := Statements{
		ByID: map[string]Statement{
			"a": {ID: "a", ItID: "it", Type: StatementAssertion},
			"b": {ID: "b", ItID: "it", Type: StatementRender},
			"c": {ID: "c", ItID: "other", Type: StatementAction},
		},
		AllIDs: []string{"b", "c", "a"},
	}

	stmts := s.ForIt("it")
	require.Len(t, stmts, 2)
	assert.Equal(t, "b", stmts[0].ID)
	assert.Equal(t, "a", stmts[1].ID)

	assert.Len(t, s.OfType(StatementAction), 1)
}

func TestStatements_IdentifyMethods(t *testing.T) {
	b := NewBuilder("/proj")
	d := b.AddDescribeBlock("d")
	it := b.AddItStatement(d, "it")
	b.AddRender(it)
	b.AddAction(it, Statement{QueryVariant: "q1", QuerySelector: "s1", EventType: "click"})
	b.AddAssertion(it, Statement{QueryVariant: "q1", QuerySelector: "s1", MatcherType: "toBeTruthy"})
	b.AddAction(it, Statement{QueryVariant: "q2", QuerySelector: "s2", EventType: "change"})
	m := b.Build()

	assert.Equal(t, "q1s1, q2s2", m.React.Statements.IdentifyMethods(it))
}

func TestStatements_IdentifyMethods_Empty(t *testing.T) {
	b := NewBuilder("/proj")
	d := b.AddDescribeBlock("d")
	it := b.AddItStatement(d, "it")
	b.AddRender(it)
	m := b.Build()

	assert.Equal(t, "", m.React.Statements.IdentifyMethods(it))
}

func TestModel_Validate(t *testing.T) {
	b := NewBuilder("/proj")
	d := b.AddDescribeBlock("d")
	it := b.AddItStatement(d, "it")
	b.AddRender(it)
	m := b.Build()

	require.NoError(t, m.Validate())

	t.Run("it statement with unknown describe", func(t *testing.T) {
		m := NewBuilder("/proj").Build()
		m.React.ItStatements.ByID["x"] = ItStatement{ID: "x", DescribeID: "nope"}
		m.React.ItStatements.AllIDs = []string{"x"}

		err := m.Validate()
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrDanglingReference))

		var dangling *DanglingReferenceError
		require.True(t, errors.As(err, &dangling))
		assert.Equal(t, "itStatement", dangling.Kind)
		assert.Equal(t, "nope", dangling.Ref)
		assert.Equal(t, "describeId", dangling.Via)
	})

	t.Run("statement with unknown it", func(t *testing.T) {
		m := NewBuilder("/proj").Build()
		m.React.Statements.ByID["s"] = Statement{ID: "s", ItID: "ghost", Type: StatementRender}
		m.React.Statements.AllIDs = []string{"s"}

		err := m.Validate()
		assert.ErrorIs(t, err, ErrDanglingReference)
		assert.Contains(t, err.Error(), `"ghost"`)
	})

	t.Run("ordering id missing from byId", func(t *testing.T) {
		m := NewBuilder("/proj").Build()
		m.React.DescribeBlocks.AllIDs = []string{"lost"}

		assert.ErrorIs(t, m.Validate(), ErrDanglingReference)
	})
}

func TestParseJSON_SnippetScalars(t *testing.T) {
	data := []byte(`{
		"endpoint": {
			"hasEndpoint": 1,
			"endpointTestStatement": "health",
			"endpointStatements": [
				{"id": "e1", "type": "endpoint", "serverFilePath": "/p/server.js",
				 "method": "get", "route": "/health", "expectedResponse": "status", "value": 200}
			]
		},
		"puppeteer": {
			"puppeteerStatements": [
				{"id": "p1", "type": "paintTiming", "browserOptions": [
					{"optionKey": "headless", "optionValue": true},
					{"optionKey": "width", "optionValue": "1080"},
					{"optionKey": "slowMo", "optionValue": null}
				]}
			]
		}
	}`)

	m, err := ParseJSON(data)
	require.NoError(t, err)
	assert.Equal(t, Snippet("200"), m.Endpoint.EndpointStatements[0].Value)

	opts := m.Puppeteer.PuppeteerStatements[0].BrowserOptions
	require.Len(t, opts, 3)
	assert.Equal(t, Snippet("true"), opts[0].OptionValue)
	assert.Equal(t, Snippet("1080"), opts[1].OptionValue)
	assert.Equal(t, Snippet(""), opts[2].OptionValue)
}

func TestParseJSON_SnippetRejectsObjects(t *testing.T) {
	_, err := ParseJSON([]byte(`{"endpoint": {"endpointStatements": [{"value": {"a": 1}}]}}`))
	assert.Error(t, err)
}

func TestParseYAML(t *testing.T) {
	data := []byte(`
projectRoot: /proj
react:
  hasReact: 1
  describeBlocks:
    byId:
      d1: {id: d1, text: rendering}
    allIds: [d1]
  itStatements:
    byId:
      i1: {id: i1, describeId: d1, text: shows button}
    allIds: [i1]
  statements:
    componentName: Button
    componentPath: /proj/src/Button.jsx
    byId:
      s1:
        id: s1
        itId: i1
        type: render
        props:
          - {propKey: label, propValue: Go}
          - {propKey: count, propValue: 3}
    allIds: [s1]
`)

	m, err := ParseYAML(data)
	require.NoError(t, err)
	assert.Equal(t, "/proj", m.ProjectRoot)
	assert.Equal(t, CategoryReact, m.ActiveCategory())
	require.NoError(t, m.Validate())

	props := m.React.Statements.ByID["s1"].Props
	require.Len(t, props, 2)
	assert.Equal(t, Snippet("Go"), props[0].PropValue)
	assert.Equal(t, Snippet("3"), props[1].PropValue)
}

func TestBuilder_Toggle(t *testing.T) {
	m := NewBuilder("/proj").
		Toggle(CategoryRedux).
		Toggle(CategoryRedux).
		Toggle(CategoryHooks).
		Build()

	assert.Equal(t, 2, m.Redux.HasRedux)
	assert.Equal(t, 1, m.Hooks.HasHooks)
	assert.Equal(t, CategoryRedux, m.ActiveCategory())
}

func TestBuilder_DefaultsStatementTypes(t *testing.T) {
	b := NewBuilder("/proj")
	b.AddEndpointStatement(EndpointStatement{Method: "get"})
	b.AddPuppeteerStatement(PuppeteerStatement{URL: "http://localhost"})
	m := b.Build()

	assert.Equal(t, EndpointRequest, m.Endpoint.EndpointStatements[0].Type)
	assert.Equal(t, PuppeteerPaintTiming, m.Puppeteer.PuppeteerStatements[0].Type)
	assert.NotEmpty(t, m.Endpoint.EndpointStatements[0].ID)
}
