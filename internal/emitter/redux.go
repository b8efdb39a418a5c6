package emitter

import (
	"fmt"

	"github.com/QTest-hq/qtest-studio/pkg/testcase"
)

const (
	reduxAsyncImports = `import '@testing-library/jest-dom/extend-expect';
import configureMockStore from 'redux-mock-store';
import thunk from 'redux-thunk';
import fetchMock from 'fetch-mock';
`
	reduxAsyncVariables = `const middlewares = [thunk];
const mockStore = configureMockStore(middlewares);
`
	reduxActionCreatorImports = `import { fake } from 'test-data-bot';
import '@testing-library/jest-dom/extend-expect';
`
	reduxReducerImports = `import { render } from '@testing-library/react';
import '@testing-library/jest-dom/extend-expect';
`
	reduxMiddlewareImports = "import '@testing-library/jest-dom/extend-expect';\n"
)

// ReduxFamily generates action creator, async action, middleware and reducer
// tests inside a single shared test block
type ReduxFamily struct{}

func (f *ReduxFamily) Category() testcase.Category { return testcase.CategoryRedux }

// EmitImports writes the imports each statement needs, in statement order.
// Imports are not deduplicated across statements.
func (f *ReduxFamily) EmitImports(ctx *Context, buf *Buffer) error {
	for _, st := range ctx.Model.Redux.ReduxStatements {
		var err error
		switch st.Type {
		case testcase.ReduxAsync:
			buf.Append(reduxAsyncImports)
			if err = f.importActions(ctx, buf, st); err == nil {
				err = f.importTypes(ctx, buf, st)
			}
			buf.Append(reduxAsyncVariables)
		case testcase.ReduxActionCreator:
			buf.Append(reduxActionCreatorImports)
			if err = f.importActions(ctx, buf, st); err == nil {
				err = f.importTypes(ctx, buf, st)
			}
		case testcase.ReduxMiddleware:
			buf.Append(reduxMiddlewareImports)
			err = f.importAs(ctx, buf, "* as middleware", st.MiddlewaresFilePath)
		case testcase.ReduxReducer:
			buf.Append(reduxReducerImports)
			if err = f.importAs(ctx, buf, st.ReducerName, st.ReducersFilePath); err == nil {
				err = f.importTypes(ctx, buf, st)
			}
		default:
			skipUnknown(testcase.CategoryRedux, st.ID, string(st.Type))
		}
		if err != nil {
			return fmt.Errorf("redux statement %s: %w", st.ID, err)
		}
	}
	buf.Append("\n")
	return nil
}

func (f *ReduxFamily) importActions(ctx *Context, buf *Buffer, st testcase.ReduxStatement) error {
	return f.importAs(ctx, buf, "* as actions", st.FilePath)
}

func (f *ReduxFamily) importTypes(ctx *Context, buf *Buffer, st testcase.ReduxStatement) error {
	return f.importAs(ctx, buf, "* as types", st.TypesFilePath)
}

func (f *ReduxFamily) importAs(ctx *Context, buf *Buffer, binding, target string) error {
	p, err := ctx.ImportPath(target)
	if err != nil {
		return err
	}
	buf.Appendf("import %s from '%s';\n", binding, p)
	return nil
}

// EmitBody writes the shared test block with every statement body in order
func (f *ReduxFamily) EmitBody(ctx *Context, buf *Buffer) error {
	rc := ctx.Model.Redux

	buf.Appendf("test('%s', () => {\n", rc.ReduxTestStatement)
	for _, st := range rc.ReduxStatements {
		switch st.Type {
		case testcase.ReduxAsync:
			buf.Append(asyncBody(st))
		case testcase.ReduxActionCreator:
			buf.Append(actionCreatorBody(st))
		case testcase.ReduxMiddleware:
			buf.Append(middlewareBody(st))
		case testcase.ReduxReducer:
			buf.Append(reducerBody(st))
		default:
			skipUnknown(testcase.CategoryRedux, st.ID, string(st.Type))
		}
	}
	buf.Append("});\n")
	return nil
}

func asyncBody(st testcase.ReduxStatement) Fragment {
	return Fragment(fmt.Sprintf(`fetchMock.%s('%s', %s);
const expectedActions = %s;
const store = mockStore(%s);
return store.dispatch(actions.%s()).then(() => {
  expect(store.getActions()).toEqual(expectedActions);
});
`, st.Method, st.Route, st.RequestBody, st.ExpectedResponse, st.Store, st.AsyncFunction))
}

func actionCreatorBody(st testcase.ReduxStatement) Fragment {
	if st.PayloadKey != "" && st.PayloadType != "" {
		return Fragment(fmt.Sprintf(`const %[1]s = fake(f => f.random.%[2]s());
const expectedAction = {
  type: types.%[3]s,
  %[1]s
};
expect(actions.%[4]s(%[1]s)).toEqual(expectedAction);
`, st.PayloadKey, st.PayloadType, st.ActionType, st.ActionCreatorFunc))
	}

	return Fragment(fmt.Sprintf(`const expectedAction = {
  type: types.%s
};
expect(actions.%s()).toEqual(expectedAction);
`, st.ActionType, st.ActionCreatorFunc))
}

// middlewareBody writes the store/next/invoke harness and, for the known
// scenarios, the assertions that exercise it
func middlewareBody(st testcase.ReduxStatement) Fragment {
	harness := fmt.Sprintf(`const %s = () => {
  const store = {
    getState: jest.fn(() => ({})),
    dispatch: jest.fn()
  };
  const next = jest.fn();
  const invoke = action => %s(store)(next)(action);
  return { store, next, invoke };
};

`, st.QueryValue, st.QueryType)

	var scenario string
	switch st.QueryValue {
	case testcase.MiddlewarePassesNonFunctionalArguments:
		scenario = fmt.Sprintf(`const { next, invoke } = %s();
const action = { type: 'TEST' };
invoke(action);
expect(%s).%s(action);
`, st.QueryValue, st.QuerySelector, st.QueryVariant)
	case testcase.MiddlewareCallsTheFunction:
		scenario = fmt.Sprintf(`const { invoke } = %s();
const fn = jest.fn();
invoke(fn);
expect(%s).%s();
`, st.QueryValue, st.QuerySelector, st.QueryVariant)
	case testcase.MiddlewarePassesFunctionalArguments:
		scenario = fmt.Sprintf(`const { store, invoke } = %[1]s();
invoke((dispatch, getState) => {
  dispatch('Test Dispatch');
  getState();
});
expect(%[2]s).%[3]s('Test Dispatch');
expect(%[2]s).%[3]s();
`, st.QueryValue, st.QuerySelector, st.QueryVariant)
	}

	return Fragment(harness + scenario)
}

func reducerBody(st testcase.ReduxStatement) Fragment {
	return Fragment(fmt.Sprintf("expect(%s(%s, {%s})).toEqual(%s);\n",
		st.ReducerName, st.InitialState, st.ReducerAction, st.ExpectedState))
}
