// Package testcase defines the test-case model built by the visual editor.
// A Model is a read-only snapshot: generation walks it and projects it into
// test source, it never mutates it.
package testcase

// Category identifies one family of generated test files
type Category string

const (
	CategoryReact     Category = "react"
	CategoryRedux     Category = "redux"
	CategoryHooks     Category = "hooks"
	CategoryEndpoint  Category = "endpoint"
	CategoryPuppeteer Category = "puppeteer"
	CategoryNone      Category = ""
)

// Priority is the fixed order in which categories are considered for emission.
// Only the first active category is ever emitted.
var Priority = []Category{
	CategoryReact,
	CategoryRedux,
	CategoryHooks,
	CategoryEndpoint,
	CategoryPuppeteer,
}

// Model is a snapshot of everything the editor holds for one test file
type Model struct {
	// ProjectRoot is the directory imports are resolved against
	ProjectRoot string `json:"projectRoot" yaml:"projectRoot"`

	React     ReactTestCase     `json:"react" yaml:"react"`
	Redux     ReduxTestCase     `json:"redux" yaml:"redux"`
	Hooks     HooksTestCase     `json:"hooks" yaml:"hooks"`
	Endpoint  EndpointTestCase  `json:"endpoint" yaml:"endpoint"`
	Puppeteer PuppeteerTestCase `json:"puppeteer" yaml:"puppeteer"`

	MockData []MockDatum `json:"mockData,omitempty" yaml:"mockData,omitempty"`
}

// IsActive reports whether the counter for a category is greater than zero
func (m *Model) IsActive(c Category) bool {
	switch c {
	case CategoryReact:
		return m.React.HasReact > 0
	case CategoryRedux:
		return m.Redux.HasRedux > 0
	case CategoryHooks:
		return m.Hooks.HasHooks > 0
	case CategoryEndpoint:
		return m.Endpoint.HasEndpoint > 0
	case CategoryPuppeteer:
		return m.Puppeteer.HasPuppeteer > 0
	}
	return false
}

// ActiveCategory returns the first active category in priority order
func (m *Model) ActiveCategory() Category {
	for _, c := range Priority {
		if m.IsActive(c) {
			return c
		}
	}
	return CategoryNone
}

// ActiveCategories returns every active category in priority order
func (m *Model) ActiveCategories() []Category {
	active := make([]Category, 0, len(Priority))
	for _, c := range Priority {
		if m.IsActive(c) {
			active = append(active, c)
		}
	}
	return active
}

// ReactTestCase holds the component-render category
type ReactTestCase struct {
	HasReact       int            `json:"hasReact" yaml:"hasReact"`
	DescribeBlocks DescribeBlocks `json:"describeBlocks" yaml:"describeBlocks"`
	ItStatements   ItStatements   `json:"itStatements" yaml:"itStatements"`
	Statements     Statements     `json:"statements" yaml:"statements"`
}

// DescribeBlock is a named grouping rendered as describe(...)
type DescribeBlock struct {
	ID   string `json:"id" yaml:"id"`
	Text string `json:"text" yaml:"text"`
}

// ItStatement belongs to exactly one describe block
type ItStatement struct {
	ID         string `json:"id" yaml:"id"`
	DescribeID string `json:"describeId" yaml:"describeId"`
	Text       string `json:"text" yaml:"text"`
}

// StatementType tags the variant of a react Statement
type StatementType string

const (
	StatementAction    StatementType = "action"
	StatementAssertion StatementType = "assertion"
	StatementRender    StatementType = "render"
)

// Statement is a polymorphic record; which fields are meaningful depends on Type
type Statement struct {
	ID   string        `json:"id" yaml:"id"`
	ItID string        `json:"itId" yaml:"itId"`
	Type StatementType `json:"type" yaml:"type"`

	// render
	Props []Prop `json:"props,omitempty" yaml:"props,omitempty"`

	// action
	EventType  string `json:"eventType,omitempty" yaml:"eventType,omitempty"`
	EventValue string `json:"eventValue,omitempty" yaml:"eventValue,omitempty"`

	// action and assertion
	QueryVariant  string `json:"queryVariant,omitempty" yaml:"queryVariant,omitempty"`
	QuerySelector string `json:"querySelector,omitempty" yaml:"querySelector,omitempty"`
	QueryValue    string `json:"queryValue,omitempty" yaml:"queryValue,omitempty"`

	// assertion
	MatcherType  string  `json:"matcherType,omitempty" yaml:"matcherType,omitempty"`
	MatcherValue Snippet `json:"matcherValue,omitempty" yaml:"matcherValue,omitempty"`
}

// Method is the bound query function name, e.g. getByText
func (s Statement) Method() string {
	return s.QueryVariant + s.QuerySelector
}

// Prop is a single key={value} pair passed to the rendered component
type Prop struct {
	ID        string  `json:"id,omitempty" yaml:"id,omitempty"`
	PropKey   string  `json:"propKey" yaml:"propKey"`
	PropValue Snippet `json:"propValue" yaml:"propValue"`
}

// MockDatum describes a test-data-bot builder. It has no structural link to
// statements; tests refer to it by the mock<Name> naming convention.
type MockDatum struct {
	ID        string     `json:"id,omitempty" yaml:"id,omitempty"`
	Name      string     `json:"name" yaml:"name"`
	FieldKeys []FieldKey `json:"fieldKeys" yaml:"fieldKeys"`
}

// FieldKey is one generated field of a mock datum
type FieldKey struct {
	ID        string `json:"id,omitempty" yaml:"id,omitempty"`
	FieldKey  string `json:"fieldKey" yaml:"fieldKey"`
	FieldType string `json:"fieldType" yaml:"fieldType"`
}
