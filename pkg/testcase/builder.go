package testcase

import (
	"github.com/google/uuid"
)

// Builder assembles a Model the way the editor does: every add operation
// allocates a fresh id and appends it to the collection's ordering.
type Builder struct {
	model *Model
}

// NewBuilder creates a builder for a project
func NewBuilder(projectRoot string) *Builder {
	return &Builder{
		model: &Model{
			ProjectRoot: projectRoot,
			React: ReactTestCase{
				DescribeBlocks: DescribeBlocks{ByID: make(map[string]DescribeBlock), AllIDs: make([]string, 0)},
				ItStatements:   ItStatements{ByID: make(map[string]ItStatement), AllIDs: make([]string, 0)},
				Statements:     Statements{ByID: make(map[string]Statement), AllIDs: make([]string, 0)},
			},
			MockData: make([]MockDatum, 0),
		},
	}
}

// Toggle bumps the activity counter of a category
func (b *Builder) Toggle(c Category) *Builder {
	switch c {
	case CategoryReact:
		b.model.React.HasReact++
	case CategoryRedux:
		b.model.Redux.HasRedux++
	case CategoryHooks:
		b.model.Hooks.HasHooks++
	case CategoryEndpoint:
		b.model.Endpoint.HasEndpoint++
	case CategoryPuppeteer:
		b.model.Puppeteer.HasPuppeteer++
	}
	return b
}

// SetComponent sets the component rendered by render statements
func (b *Builder) SetComponent(name, path string) *Builder {
	b.model.React.Statements.ComponentName = name
	b.model.React.Statements.ComponentPath = path
	return b
}

// AddDescribeBlock appends a describe block and returns its id
func (b *Builder) AddDescribeBlock(text string) string {
	id := newID()
	d := &b.model.React.DescribeBlocks
	d.ByID[id] = DescribeBlock{ID: id, Text: text}
	d.AllIDs = append(d.AllIDs, id)
	return id
}

// AddItStatement appends an it block to a describe block and returns its id
func (b *Builder) AddItStatement(describeID, text string) string {
	id := newID()
	its := &b.model.React.ItStatements
	its.ByID[id] = ItStatement{ID: id, DescribeID: describeID, Text: text}
	its.AllIDs = append(its.AllIDs, id)
	return id
}

// AddRender appends a render statement with the given props
func (b *Builder) AddRender(itID string, props ...Prop) string {
	for i := range props {
		if props[i].ID == "" {
			props[i].ID = newID()
		}
	}
	return b.addStatement(Statement{ItID: itID, Type: StatementRender, Props: props})
}

// AddAction appends an action statement; Type and ItID are filled in
func (b *Builder) AddAction(itID string, st Statement) string {
	st.ItID = itID
	st.Type = StatementAction
	return b.addStatement(st)
}

// AddAssertion appends an assertion statement; Type and ItID are filled in
func (b *Builder) AddAssertion(itID string, st Statement) string {
	st.ItID = itID
	st.Type = StatementAssertion
	return b.addStatement(st)
}

func (b *Builder) addStatement(st Statement) string {
	st.ID = newID()
	s := &b.model.React.Statements
	s.ByID[st.ID] = st
	s.AllIDs = append(s.AllIDs, st.ID)
	return st.ID
}

// AddMockDatum appends a mock data builder
func (b *Builder) AddMockDatum(name string, fields ...FieldKey) string {
	id := newID()
	b.model.MockData = append(b.model.MockData, MockDatum{ID: id, Name: name, FieldKeys: fields})
	return id
}

// SetReduxTestStatement sets the name of the shared redux test
func (b *Builder) SetReduxTestStatement(text string) *Builder {
	b.model.Redux.ReduxTestStatement = text
	return b
}

// AddReduxStatement appends a redux statement
func (b *Builder) AddReduxStatement(st ReduxStatement) string {
	st.ID = newID()
	b.model.Redux.ReduxStatements = append(b.model.Redux.ReduxStatements, st)
	return st.ID
}

// SetHooksTestStatement sets the name of the shared hooks test
func (b *Builder) SetHooksTestStatement(text string) *Builder {
	b.model.Hooks.HooksTestStatement = text
	return b
}

// AddHooksStatement appends a hooks or context statement
func (b *Builder) AddHooksStatement(st HooksStatement) string {
	st.ID = newID()
	b.model.Hooks.HooksStatements = append(b.model.Hooks.HooksStatements, st)
	return st.ID
}

// SetEndpointTestStatement sets the name of the shared endpoint test
func (b *Builder) SetEndpointTestStatement(text string) *Builder {
	b.model.Endpoint.EndpointTestStatement = text
	return b
}

// AddEndpointStatement appends an endpoint request
func (b *Builder) AddEndpointStatement(st EndpointStatement) string {
	st.ID = newID()
	if st.Type == "" {
		st.Type = EndpointRequest
	}
	b.model.Endpoint.EndpointStatements = append(b.model.Endpoint.EndpointStatements, st)
	return st.ID
}

// AddPuppeteerStatement appends a paint-timing statement
func (b *Builder) AddPuppeteerStatement(st PuppeteerStatement) string {
	st.ID = newID()
	if st.Type == "" {
		st.Type = PuppeteerPaintTiming
	}
	b.model.Puppeteer.PuppeteerStatements = append(b.model.Puppeteer.PuppeteerStatements, st)
	return st.ID
}

// Build returns the assembled model. The builder must not be used afterwards.
func (b *Builder) Build() *Model {
	return b.model
}

func newID() string {
	return uuid.New().String()
}
