package emitter

import (
	"errors"
	"fmt"
	"strings"

	"github.com/QTest-hq/qtest-studio/pkg/testcase"
)

// ErrNoComponent is returned when a render statement has no component to render
var ErrNoComponent = errors.New("no component selected for render")

const reactBoilerplate = `import { render, fireEvent } from '@testing-library/react';
import { build, fake } from 'test-data-bot';
import '@testing-library/jest-dom/extend-expect';

`

// ReactFamily generates component tests with @testing-library/react
type ReactFamily struct{}

func (f *ReactFamily) Category() testcase.Category { return testcase.CategoryReact }

// EmitImports writes the component import followed by the testing-library
// boilerplate
func (f *ReactFamily) EmitImports(ctx *Context, buf *Buffer) error {
	s := ctx.Model.React.Statements

	if s.ComponentName != "" {
		p, err := ctx.ImportPath(s.ComponentPath)
		if err != nil {
			return err
		}
		buf.Appendf("import %s from '%s';\n", s.ComponentName, p)
	}

	buf.Append(reactBoilerplate)
	return nil
}

// EmitMockData declares one test-data-bot builder per mock datum
func (f *ReactFamily) EmitMockData(ctx *Context, buf *Buffer) error {
	for _, md := range ctx.Model.MockData {
		if md.Name == "" {
			continue
		}

		var fields strings.Builder
		for _, fk := range md.FieldKeys {
			fields.WriteString(fmt.Sprintf("%s: fake(f => f.random.%s()), ", fk.FieldKey, fk.FieldType))
		}

		buf.Appendf("const mock%s = build('%s').fields({ %s})();\n", capitalize(md.Name), md.Name, fields.String())
	}
	buf.Append("\n")
	return nil
}

// EmitBody writes one describe block per describe block in the model, each
// holding its it blocks in insertion order
func (f *ReactFamily) EmitBody(ctx *Context, buf *Buffer) error {
	r := ctx.Model.React

	for _, d := range r.DescribeBlocks.Ordered() {
		buf.Appendf("describe('%s', () => {\n", d.Text)
		for _, it := range r.ItStatements.ForDescribe(d.ID) {
			if err := f.emitIt(ctx, buf, it); err != nil {
				return err
			}
		}
		buf.Append("});\n\n")
	}
	return nil
}

func (f *ReactFamily) emitIt(ctx *Context, buf *Buffer, it testcase.ItStatement) error {
	s := ctx.Model.React.Statements
	methods := s.IdentifyMethods(it.ID)

	buf.Appendf("it('%s', () => {\n", it.Text)
	for _, st := range s.ForIt(it.ID) {
		switch st.Type {
		case testcase.StatementRender:
			if s.ComponentName == "" {
				return fmt.Errorf("statement %s: %w", st.ID, ErrNoComponent)
			}
			buf.Append(renderStatement(s.ComponentName, methods, st))
		case testcase.StatementAction:
			buf.Append(actionStatement(st))
		case testcase.StatementAssertion:
			buf.Append(assertionStatement(st))
		default:
			skipUnknown(testcase.CategoryReact, st.ID, string(st.Type))
		}
	}
	buf.Append("});\n")
	return nil
}

func renderStatement(component, methods string, st testcase.Statement) Fragment {
	props := make([]string, 0, len(st.Props))
	for _, p := range st.Props {
		props = append(props, fmt.Sprintf("%s={%s}", p.PropKey, p.PropValue))
	}

	return Fragment(fmt.Sprintf("const {%s} = render(<%s %s/>);\n", methods, component, strings.Join(props, " ")))
}

func actionStatement(st testcase.Statement) Fragment {
	if st.EventValue != "" {
		return Fragment(fmt.Sprintf("fireEvent.%s(%s('%s'), { target: { value: %s } });\n",
			st.EventType, st.Method(), st.QueryValue, st.EventValue))
	}
	return Fragment(fmt.Sprintf("fireEvent.%s(%s('%s'));\n", st.EventType, st.Method(), st.QueryValue))
}

func assertionStatement(st testcase.Statement) Fragment {
	return Fragment(fmt.Sprintf("expect(%s(%s)).%s(%s);\n", st.Method(), st.QueryValue, st.MatcherType, st.MatcherValue))
}
