package emitter

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/QTest-hq/qtest-studio/pkg/testcase"
)

func emit(t *testing.T, f Family, m *testcase.Model) string {
	t.Helper()
	ctx := NewContext(m)
	buf := NewBuffer()

	require.NoError(t, f.EmitImports(ctx, buf))
	if md, ok := f.(MockDataEmitter); ok {
		require.NoError(t, md.EmitMockData(ctx, buf))
	}
	require.NoError(t, f.EmitBody(ctx, buf))
	return buf.String()
}

func assertInOrder(t *testing.T, s string, parts ...string) {
	t.Helper()
	pos := 0
	for _, p := range parts {
		i := strings.Index(s[pos:], p)
		if i < 0 {
			t.Fatalf("expected %q after offset %d in:\n%s", p, pos, s)
		}
		pos += i + len(p)
	}
}

func TestNewRegistry(t *testing.T) {
	r := NewRegistry()
	require.NotNil(t, r)

	assert.Equal(t, testcase.Priority, r.List())

	for _, c := range testcase.Priority {
		f, err := r.Get(c)
		require.NoError(t, err)
		assert.Equal(t, c, f.Category())
	}

	_, err := r.Get("jasmine")
	assert.Error(t, err)
}

func TestBuffer_AppendAndReplace(t *testing.T) {
	buf := NewBuffer()
	assert.Equal(t, string(ReactImport), buf.String())

	buf.Append("a;\n")
	buf.Appendf("%s;\n", "b")
	assert.Equal(t, "import React from \"react\";\na;\nb;\n", buf.String())
	assert.Len(t, buf.Fragments(), 3)

	buf.Replace("c;\n")
	buf.Append("d;\n")
	assert.Equal(t, "c;\nd;\n", buf.String())
}

func buttonModel() *testcase.Model {
	b := testcase.NewBuilder("/proj").
		Toggle(testcase.CategoryReact).
		SetComponent("Button", "/proj/src/Button.jsx")
	d := b.AddDescribeBlock("rendering")
	it := b.AddItStatement(d, "shows button")
	b.AddRender(it, testcase.Prop{PropKey: "label", PropValue: "Go"})
	b.AddAssertion(it, testcase.Statement{
		QueryVariant:  "getBy",
		QuerySelector: "Text",
		QueryValue:    "/go/i",
		MatcherType:   "toBeInTheDocument",
	})
	return b.Build()
}

func TestReactFamily_Button(t *testing.T) {
	out := emit(t, &ReactFamily{}, buttonModel())

	assertInOrder(t, out,
		"import React from \"react\";\n",
		"import Button from '../src/Button.jsx';\n",
		"import { render, fireEvent } from '@testing-library/react';",
		"describe('rendering', () => {\n",
		"it('shows button', () => {\n",
		"const {getByText} = render(<Button label={Go}/>);\n",
		"expect(getByText(/go/i)).toBeInTheDocument();\n",
		"});\n",
		"});\n",
	)
}

func TestReactFamily_DescribeOrder(t *testing.T) {
	b := testcase.NewBuilder("/proj").Toggle(testcase.CategoryReact).SetComponent("App", "/proj/App.js")
	b.AddDescribeBlock("A")
	b.AddDescribeBlock("B")
	out := emit(t, &ReactFamily{}, b.Build())

	assertInOrder(t, out, "describe('A'", "describe('B'")
}

func TestReactFamily_Statements(t *testing.T) {
	tests := []struct {
		name string
		st   testcase.Statement
		want string
	}{
		{
			name: "action without value",
			st:   testcase.Statement{Type: testcase.StatementAction, EventType: "click", QueryVariant: "getBy", QuerySelector: "Text", QueryValue: "Go"},
			want: "fireEvent.click(getByText('Go'));\n",
		},
		{
			name: "action with value",
			st:   testcase.Statement{Type: testcase.StatementAction, EventType: "change", EventValue: "'abc'", QueryVariant: "getBy", QuerySelector: "LabelText", QueryValue: "Name"},
			want: "fireEvent.change(getByLabelText('Name'), { target: { value: 'abc' } });\n",
		},
		{
			name: "assertion",
			st:   testcase.Statement{Type: testcase.StatementAssertion, QueryVariant: "queryBy", QuerySelector: "Role", QueryValue: "'button'", MatcherType: "toHaveTextContent", MatcherValue: "'Go'"},
			want: "expect(queryByRole('button')).toHaveTextContent('Go');\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got Fragment
			if tt.st.Type == testcase.StatementAction {
				got = actionStatement(tt.st)
			} else {
				got = assertionStatement(tt.st)
			}
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestRenderStatement_Props(t *testing.T) {
	st := testcase.Statement{Props: []testcase.Prop{
		{PropKey: "label", PropValue: "'Go'"},
		{PropKey: "count", PropValue: "3"},
	}}
	assert.Equal(t, "const {getByText, getByRole} = render(<Counter label={'Go'} count={3}/>);\n",
		string(renderStatement("Counter", "getByText, getByRole", st)))

	assert.Equal(t, "const {} = render(<Counter />);\n", string(renderStatement("Counter", "", testcase.Statement{})))
}

func TestReactFamily_MockData(t *testing.T) {
	m := buttonModel()
	m.MockData = []testcase.MockDatum{
		{Name: "user", FieldKeys: []testcase.FieldKey{
			{FieldKey: "name", FieldType: "word"},
			{FieldKey: "id", FieldType: "uuid"},
		}},
	}

	out := emit(t, &ReactFamily{}, m)
	assert.Contains(t, out,
		"const mockUser = build('user').fields({ name: fake(f => f.random.word()), id: fake(f => f.random.uuid()), })();\n")
	assertInOrder(t, out, "extend-expect", "const mockUser", "describe(")
}

func TestReactFamily_UnknownStatementTypeIsSkipped(t *testing.T) {
	m := buttonModel()
	before := emit(t, &ReactFamily{}, m)

	itID := m.React.ItStatements.AllIDs[0]
	m.React.Statements.ByID["future"] = testcase.Statement{ID: "future", ItID: itID, Type: "snapshot"}
	m.React.Statements.AllIDs = append(m.React.Statements.AllIDs, "future")

	assert.Equal(t, before, emit(t, &ReactFamily{}, m))
}

func TestReactFamily_RenderWithoutComponent(t *testing.T) {
	m := buttonModel()
	m.React.Statements.ComponentName = ""

	ctx := NewContext(m)
	err := (&ReactFamily{}).EmitBody(ctx, NewBuffer())
	assert.True(t, errors.Is(err, ErrNoComponent))
}

func TestReduxFamily(t *testing.T) {
	b := testcase.NewBuilder("/proj").Toggle(testcase.CategoryRedux).SetReduxTestStatement("redux works")
	b.AddReduxStatement(testcase.ReduxStatement{
		Type:             testcase.ReduxReducer,
		ReducerName:      "todos",
		ReducersFilePath: "/proj/src/reducers/todos.js",
		TypesFilePath:    "/proj/src/types.js",
		InitialState:     "[]",
		ReducerAction:    "type: types.ADD",
		ExpectedState:    "[1]",
	})
	b.AddReduxStatement(testcase.ReduxStatement{
		Type:              testcase.ReduxActionCreator,
		FilePath:          "/proj/src/actions.js",
		TypesFilePath:     "/proj/src/types.js",
		ActionCreatorFunc: "addTodo",
		ActionType:        "ADD",
		PayloadKey:        "text",
		PayloadType:       "word",
	})

	out := emit(t, &ReduxFamily{}, b.Build())

	assertInOrder(t, out,
		"import { render } from '@testing-library/react';",
		"import todos from '../src/reducers/todos.js';\n",
		"import * as types from '../src/types.js';\n",
		"import { fake } from 'test-data-bot';",
		"import * as actions from '../src/actions.js';\n",
		"test('redux works', () => {\n",
		"expect(todos([], {type: types.ADD})).toEqual([1]);\n",
		"const text = fake(f => f.random.word());",
		"expect(actions.addTodo(text)).toEqual(expectedAction);",
		"});\n",
	)
}

func TestReduxFamily_Async(t *testing.T) {
	b := testcase.NewBuilder("/proj").Toggle(testcase.CategoryRedux)
	b.AddReduxStatement(testcase.ReduxStatement{
		Type:             testcase.ReduxAsync,
		FilePath:         "/proj/actions.js",
		TypesFilePath:    "/proj/types.js",
		Method:           "getOnce",
		Route:            "/todos",
		RequestBody:      "{ body: { todos: [] } }",
		ExpectedResponse: "[{ type: types.FETCH }]",
		Store:            "{ todos: [] }",
		AsyncFunction:    "fetchTodos",
	})

	out := emit(t, &ReduxFamily{}, b.Build())
	assertInOrder(t, out,
		"import configureMockStore from 'redux-mock-store';",
		"import * as actions from '../actions.js';",
		"import * as types from '../types.js';",
		"const mockStore = configureMockStore(middlewares);",
		"fetchMock.getOnce('/todos', { body: { todos: [] } });",
		"return store.dispatch(actions.fetchTodos()).then(() => {",
	)
}

func TestMiddlewareBody_Scenarios(t *testing.T) {
	tests := []struct {
		scenario string
		want     string
		absent   string
	}{
		{testcase.MiddlewarePassesNonFunctionalArguments, "expect(next).toHaveBeenCalledWith(action);", "invoke(fn)"},
		{testcase.MiddlewareCallsTheFunction, "invoke(fn);", "Test Dispatch"},
		{testcase.MiddlewarePassesFunctionalArguments, "expect(next).toHaveBeenCalledWith('Test Dispatch');", "invoke(fn)"},
	}

	for _, tt := range tests {
		t.Run(tt.scenario, func(t *testing.T) {
			out := string(middlewareBody(testcase.ReduxStatement{
				QueryValue:    tt.scenario,
				QueryType:     "middleware.thunk",
				QuerySelector: "next",
				QueryVariant:  "toHaveBeenCalledWith",
			}))
			assert.Contains(t, out, "const invoke = action => middleware.thunk(store)(next)(action);")
			assert.Contains(t, out, tt.want)
			assert.NotContains(t, out, tt.absent)
		})
	}

	t.Run("unknown scenario renders only the harness", func(t *testing.T) {
		out := string(middlewareBody(testcase.ReduxStatement{QueryValue: "custom", QueryType: "mw"}))
		assert.Contains(t, out, "const custom = () => {")
		assert.NotContains(t, out, "expect(")
	})
}

func TestHooksFamily(t *testing.T) {
	b := testcase.NewBuilder("/proj").Toggle(testcase.CategoryHooks).SetHooksTestStatement("counter hook")
	b.AddHooksStatement(testcase.HooksStatement{
		Type:         testcase.HookUpdates,
		Hook:         "useCounter",
		HookFilePath: "/proj/src/hooks/useCounter.js",
		CallbackFunc: "increment",
		ManagedState: "count",
		UpdatedState: "1",
	})
	b.AddHooksStatement(testcase.HooksStatement{
		Type:                testcase.HookRender,
		Hook:                "useCounter",
		HookFilePath:        "/proj/src/hooks/useCounter.js",
		ParameterOne:        "5",
		ReturnValue:         "count",
		ExpectedReturnValue: "5",
	})

	out := emit(t, &HooksFamily{}, b.Build())
	assertInOrder(t, out,
		"import { renderHook, act } from '@testing-library/react-hooks';",
		"import useCounter from '../src/hooks/useCounter.js';",
		"test('counter hook', () => {",
		"const { result } = renderHook(() => useCounter());",
		"result.current.increment();",
		"expect(result.current.count).toBe(1);",
		"renderHook(() => useCounter(5));",
		"expect(result.current.count).toBe(5);",
	)
}

func TestContextBody_Scenarios(t *testing.T) {
	base := testcase.HooksStatement{
		Type:              testcase.HookContext,
		ProviderComponent: "ThemeProvider",
		ConsumerComponent: "ThemeLabel",
		Context:           "ThemeContext",
		Values:            "dark",
		QuerySelector:     "getByText",
		QueryVariant:      "toHaveTextContent",
	}

	tests := []struct {
		scenario string
		want     []string
	}{
		{testcase.ContextShowsDefaultValue, []string{"render(<ThemeLabel/>)", "expect(getByText(mockValue.Data)).toHaveTextContent('dark');"}},
		{testcase.ContextShowsValueFromProvider, []string{"<ThemeContext.Provider value={mockValue}>", "</ThemeContext.Provider>"}},
		{testcase.ContextComponentProvidesValue, []string{"<ThemeContext.Consumer>", "</ThemeContext.Consumer>", "expect(getByText(/^Received:/).textContent)"}},
		{testcase.ContextRendersProvidersAndConsumers, []string{"<ThemeProvider value={mockValue}>", "<ThemeLabel/>", "</ThemeProvider>"}},
	}

	for _, tt := range tests {
		t.Run(tt.scenario, func(t *testing.T) {
			st := base
			st.QueryValue = tt.scenario
			out := string(contextBody(st))
			assert.Contains(t, out, "const mockValue = { Data: 'dark' };")
			assertInOrder(t, out, tt.want...)
		})
	}

	t.Run("unknown scenario", func(t *testing.T) {
		st := base
		st.QueryValue = "something_else"
		assert.Empty(t, contextBody(st))
	})
}

func TestEndpointFamily_Health(t *testing.T) {
	b := testcase.NewBuilder("/proj").Toggle(testcase.CategoryEndpoint).SetEndpointTestStatement("health check")
	b.AddEndpointStatement(testcase.EndpointStatement{
		ServerFilePath:   "/proj/server.js",
		Method:           "get",
		Route:            "/health",
		ExpectedResponse: "status",
		Value:            "200",
	})

	out := emit(t, &EndpointFamily{}, b.Build())

	assert.NotContains(t, out, "import React")
	assert.True(t, strings.HasPrefix(out, "const app = require('../server.js');\n"))
	assertInOrder(t, out,
		"const request = supertest(app);",
		"test('health check', async (done) => {\n",
		"const response = await request.get('/health');\n",
		"expect(response.status).toBe(200);\n",
		"done();\n",
		"});\n",
	)
}

func TestEndpointFamily_LastServerImportWins(t *testing.T) {
	b := testcase.NewBuilder("/proj").Toggle(testcase.CategoryEndpoint)
	b.AddEndpointStatement(testcase.EndpointStatement{ServerFilePath: "/proj/a.js", Method: "get", Route: "/a"})
	b.AddEndpointStatement(testcase.EndpointStatement{ServerFilePath: "/proj/b.js", Method: "get", Route: "/b"})

	out := emit(t, &EndpointFamily{}, b.Build())
	assert.NotContains(t, out, "'../a.js'")
	assert.Equal(t, 1, strings.Count(out, "require('../b.js')"))
	assert.Contains(t, out, "request.get('/a')")
}

func TestPuppeteerFamily(t *testing.T) {
	b := testcase.NewBuilder("/proj").Toggle(testcase.CategoryPuppeteer)
	b.AddPuppeteerStatement(testcase.PuppeteerStatement{
		Describe: "home page",
		URL:      "http://localhost:3000",
		BrowserOptions: []testcase.BrowserOption{
			{OptionKey: "headless", OptionValue: "true"},
			{OptionKey: "slowMo", OptionValue: "250"},
		},
		FirstPaintIt:   "first paint",
		FirstPaintTime: "1000",
		FCPIt:          "first contentful paint",
		FCPTime:        "1500",
		LCPIt:          "largest contentful paint",
		LCPTime:        "2500",
	})
	m := b.Build()

	out := emit(t, &PuppeteerFamily{}, m)

	assert.True(t, strings.HasPrefix(out, "import puppeteer from 'puppeteer';\n"))
	assert.NotContains(t, out, "import React")
	assertInOrder(t, out,
		"function getLargestContentfulPaint() {",
		"describe('home page', () => {",
		"let app = 'http://localhost:3000';",
		"puppeteer.launch({headless:true,slowMo:250});",
		"it('first paint', async () => {",
		"toBeLessThan(1000);",
		"toBeLessThan(1500);",
		"expect(lcp).toBeLessThan(2500);",
	)

	assert.Equal(t, testcase.Snippet("true"), m.Puppeteer.PuppeteerStatements[0].BrowserOptions[0].OptionValue)
}

func TestCoerceOption(t *testing.T) {
	tests := []struct {
		in   testcase.Snippet
		want any
	}{
		{"true", true},
		{"false", false},
		{"1080", float64(1080)},
		{"0.5", 0.5},
		{" 42 ", float64(42)},
		{"TRUE", "TRUE"},
		{"chrome", "chrome"},
		{"", ""},
		{"NaN", "NaN"},
		{"Infinity", "Infinity"},
	}

	for _, tt := range tests {
		t.Run(string(tt.in), func(t *testing.T) {
			assert.Equal(t, tt.want, CoerceOption(tt.in))
		})
	}
}

func TestLaunchOptions(t *testing.T) {
	tests := []struct {
		name string
		opts []testcase.BrowserOption
		want string
	}{
		{"empty", nil, "{}"},
		{"boolean", []testcase.BrowserOption{{OptionKey: "headless", OptionValue: "true"}}, "{headless:true}"},
		{"number", []testcase.BrowserOption{{OptionKey: "width", OptionValue: "1080"}}, "{width:1080}"},
		{"string", []testcase.BrowserOption{{OptionKey: "product", OptionValue: "firefox"}}, `{product:"firefox"}`},
		{
			"duplicate key keeps first position",
			[]testcase.BrowserOption{
				{OptionKey: "headless", OptionValue: "true"},
				{OptionKey: "slowMo", OptionValue: "10"},
				{OptionKey: "headless", OptionValue: "false"},
			},
			"{headless:false,slowMo:10}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := LaunchOptions(tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
