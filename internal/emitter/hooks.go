package emitter

import (
	"fmt"

	"github.com/QTest-hq/qtest-studio/pkg/testcase"
)

const (
	hookImports = `import { renderHook, act } from '@testing-library/react-hooks';
import '@testing-library/jest-dom/extend-expect';
`
	contextImports = `import { render } from '@testing-library/react';
import '@testing-library/jest-dom/extend-expect';
`
)

// HooksFamily generates custom hook and context tests inside a single shared
// test block
type HooksFamily struct{}

func (f *HooksFamily) Category() testcase.Category { return testcase.CategoryHooks }

// EmitImports writes the testing-library imports and the hook or context
// module import of every statement
func (f *HooksFamily) EmitImports(ctx *Context, buf *Buffer) error {
	for _, st := range ctx.Model.Hooks.HooksStatements {
		switch st.Type {
		case testcase.HookUpdates, testcase.HookRender:
			p, err := ctx.ImportPath(st.HookFilePath)
			if err != nil {
				return fmt.Errorf("hooks statement %s: %w", st.ID, err)
			}
			buf.Append(hookImports)
			buf.Appendf("import %s from '%s';\n", st.Hook, p)
		case testcase.HookContext:
			p, err := ctx.ImportPath(st.ContextFilePath)
			if err != nil {
				return fmt.Errorf("hooks statement %s: %w", st.ID, err)
			}
			buf.Append(contextImports)
			buf.Appendf("import { %s, %s, %s } from '%s';\n", st.ProviderComponent, st.ConsumerComponent, st.Context, p)
		default:
			skipUnknown(testcase.CategoryHooks, st.ID, string(st.Type))
		}
	}
	buf.Append("\n")
	return nil
}

// EmitBody writes the shared test block
func (f *HooksFamily) EmitBody(ctx *Context, buf *Buffer) error {
	hc := ctx.Model.Hooks

	buf.Appendf("test('%s', () => {\n", hc.HooksTestStatement)
	for _, st := range hc.HooksStatements {
		switch st.Type {
		case testcase.HookUpdates:
			buf.Append(hookUpdatesBody(st))
		case testcase.HookRender:
			buf.Append(hookRenderBody(st))
		case testcase.HookContext:
			buf.Append(contextBody(st))
		default:
			skipUnknown(testcase.CategoryHooks, st.ID, string(st.Type))
		}
	}
	buf.Append("});\n")
	return nil
}

func hookUpdatesBody(st testcase.HooksStatement) Fragment {
	return Fragment(fmt.Sprintf(`const { result } = renderHook(() => %s());
act(() => {
  result.current.%s();
});
expect(result.current.%s).toBe(%s);
`, st.Hook, st.CallbackFunc, st.ManagedState, st.UpdatedState))
}

func hookRenderBody(st testcase.HooksStatement) Fragment {
	return Fragment(fmt.Sprintf(`const { result } = renderHook(() => %s(%s));
expect(result.current.%s).toBe(%s);
`, st.Hook, st.ParameterOne, st.ReturnValue, st.ExpectedReturnValue))
}

// contextBody renders one of the fixed context scenarios. Any other query
// value produces nothing.
func contextBody(st testcase.HooksStatement) Fragment {
	switch st.QueryValue {
	case testcase.ContextShowsDefaultValue:
		return Fragment(fmt.Sprintf(`const mockValue = { Data: '%[1]s' };
const { %[2]s } = render(<%[3]s/>);
expect(%[2]s(mockValue.Data)).%[4]s('%[1]s');
`, st.Values, st.QuerySelector, st.ConsumerComponent, st.QueryVariant))

	case testcase.ContextShowsValueFromProvider:
		return Fragment(fmt.Sprintf(`const mockValue = { Data: '%[1]s' };
const { %[2]s } = render(
  <%[3]s.Provider value={mockValue}>
    <%[4]s/>
  </%[3]s.Provider>
);
expect(%[2]s(mockValue.Data)).%[5]s('%[1]s');
`, st.Values, st.QuerySelector, st.Context, st.ConsumerComponent, st.QueryVariant))

	case testcase.ContextComponentProvidesValue:
		return Fragment(fmt.Sprintf(`const mockValue = { Data: '%[1]s' };
const { %[2]s } = render(
  <%[3]s value={mockValue}>
    <%[4]s.Consumer>
      {value => <span>Received: {value} </span>}
    </%[4]s.Consumer>
  </%[3]s>
);
expect(%[2]s(/^Received:/).textContent).%[5]s('%[1]s');
`, st.Values, st.QuerySelector, st.ProviderComponent, st.Context, st.QueryVariant))

	case testcase.ContextRendersProvidersAndConsumers:
		return Fragment(fmt.Sprintf(`const mockValue = { Data: '%[1]s' };
const { %[2]s } = render(
  <%[3]s value={mockValue}>
    <%[4]s/>
  </%[3]s>
);
expect(%[2]s(mockValue.Data).textContent).%[5]s('%[1]s');
`, st.Values, st.QuerySelector, st.ProviderComponent, st.ConsumerComponent, st.QueryVariant))
	}

	return ""
}
