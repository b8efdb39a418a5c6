package emitter

import (
	"fmt"

	"github.com/QTest-hq/qtest-studio/pkg/testcase"
)

// EndpointFamily generates supertest requests against the project's server
type EndpointFamily struct{}

func (f *EndpointFamily) Category() testcase.Category { return testcase.CategoryEndpoint }

// EmitImports replaces the buffer with the server bootstrap. Each endpoint
// statement replaces the previous one, so the last server file wins and the
// React seed line is dropped.
func (f *EndpointFamily) EmitImports(ctx *Context, buf *Buffer) error {
	for _, st := range ctx.Model.Endpoint.EndpointStatements {
		switch st.Type {
		case testcase.EndpointRequest:
			p, err := ctx.ImportPath(st.ServerFilePath)
			if err != nil {
				return fmt.Errorf("endpoint statement %s: %w", st.ID, err)
			}
			buf.Replace(Fragment(fmt.Sprintf(`const app = require('%s');
const supertest = require('supertest');
const request = supertest(app);

`, p)))
		default:
			skipUnknown(testcase.CategoryEndpoint, st.ID, string(st.Type))
		}
	}
	buf.Append("\n")
	return nil
}

// EmitBody writes one async test holding every request, completed with done()
func (f *EndpointFamily) EmitBody(ctx *Context, buf *Buffer) error {
	ec := ctx.Model.Endpoint

	buf.Appendf("test('%s', async (done) => {\n", ec.EndpointTestStatement)
	for _, st := range ec.EndpointStatements {
		switch st.Type {
		case testcase.EndpointRequest:
			buf.Appendf("const response = await request.%s('%s');\nexpect(response.%s).toBe(%s);\n",
				st.Method, st.Route, st.ExpectedResponse, st.Value)
		default:
			skipUnknown(testcase.CategoryEndpoint, st.ID, string(st.Type))
		}
	}
	buf.Append("done();\n});\n")
	return nil
}
