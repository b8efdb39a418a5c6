package testcase

// ReduxTestCase holds the redux category: one shared test(...) whose body is
// built from every statement in order.
type ReduxTestCase struct {
	HasRedux           int              `json:"hasRedux" yaml:"hasRedux"`
	ReduxTestStatement string           `json:"reduxTestStatement" yaml:"reduxTestStatement"`
	ReduxStatements    []ReduxStatement `json:"reduxStatements" yaml:"reduxStatements"`
}

// ReduxStatementType tags a ReduxStatement
type ReduxStatementType string

const (
	ReduxAsync         ReduxStatementType = "async"
	ReduxActionCreator ReduxStatementType = "action-creator"
	ReduxMiddleware    ReduxStatementType = "middleware"
	ReduxReducer       ReduxStatementType = "reducer"
)

// Middleware scenarios. The set is closed; any other query value renders
// only the harness.
const (
	MiddlewarePassesNonFunctionalArguments = "passes_non_functional_arguments"
	MiddlewareCallsTheFunction             = "calls_the_function"
	MiddlewarePassesFunctionalArguments    = "passes_functional_arguments"
)

// ReduxStatement is a flat record; fields used depend on Type
type ReduxStatement struct {
	ID   string             `json:"id" yaml:"id"`
	Type ReduxStatementType `json:"type" yaml:"type"`

	// file references
	FilePath            string `json:"filePath,omitempty" yaml:"filePath,omitempty"`
	TypesFilePath       string `json:"typesFilePath,omitempty" yaml:"typesFilePath,omitempty"`
	ReducersFilePath    string `json:"reducersFilePath,omitempty" yaml:"reducersFilePath,omitempty"`
	MiddlewaresFilePath string `json:"middlewaresFilePath,omitempty" yaml:"middlewaresFilePath,omitempty"`

	// reducer
	ReducerName   string `json:"reducerName,omitempty" yaml:"reducerName,omitempty"`
	InitialState  string `json:"initialState,omitempty" yaml:"initialState,omitempty"`
	ReducerAction string `json:"reducerAction,omitempty" yaml:"reducerAction,omitempty"`
	ExpectedState string `json:"expectedState,omitempty" yaml:"expectedState,omitempty"`

	// async
	Method           string `json:"method,omitempty" yaml:"method,omitempty"`
	Route            string `json:"route,omitempty" yaml:"route,omitempty"`
	RequestBody      string `json:"requestBody,omitempty" yaml:"requestBody,omitempty"`
	ExpectedResponse string `json:"expectedResponse,omitempty" yaml:"expectedResponse,omitempty"`
	Store            string `json:"store,omitempty" yaml:"store,omitempty"`
	AsyncFunction    string `json:"asyncFunction,omitempty" yaml:"asyncFunction,omitempty"`

	// action-creator
	ActionCreatorFunc string `json:"actionCreatorFunc,omitempty" yaml:"actionCreatorFunc,omitempty"`
	ActionType        string `json:"actionType,omitempty" yaml:"actionType,omitempty"`
	PayloadKey        string `json:"payloadKey,omitempty" yaml:"payloadKey,omitempty"`
	PayloadType       string `json:"payloadType,omitempty" yaml:"payloadType,omitempty"`

	// middleware
	QueryType     string `json:"queryType,omitempty" yaml:"queryType,omitempty"`
	QueryValue    string `json:"queryValue,omitempty" yaml:"queryValue,omitempty"`
	QuerySelector string `json:"querySelector,omitempty" yaml:"querySelector,omitempty"`
	QueryVariant  string `json:"queryVariant,omitempty" yaml:"queryVariant,omitempty"`
}

// HooksTestCase holds the hooks and context category
type HooksTestCase struct {
	HasHooks           int              `json:"hasHooks" yaml:"hasHooks"`
	HooksTestStatement string           `json:"hooksTestStatement" yaml:"hooksTestStatement"`
	HooksStatements    []HooksStatement `json:"hooksStatements" yaml:"hooksStatements"`
}

// HooksStatementType tags a HooksStatement
type HooksStatementType string

const (
	HookUpdates HooksStatementType = "hook-updates"
	HookRender  HooksStatementType = "hookRender"
	HookContext HooksStatementType = "context"
)

// Context scenarios, each a fixed JSX + assertion template
const (
	ContextShowsDefaultValue            = "shows_default_value"
	ContextShowsValueFromProvider       = "shows_value_from_provider"
	ContextComponentProvidesValue       = "component_provides_context_value"
	ContextRendersProvidersAndConsumers = "renders_providers_+_consumers_normally"
)

// HooksStatement is a flat record; fields used depend on Type
type HooksStatement struct {
	ID   string             `json:"id" yaml:"id"`
	Type HooksStatementType `json:"type" yaml:"type"`

	// hook-updates and hookRender
	Hook                string  `json:"hook,omitempty" yaml:"hook,omitempty"`
	HookFilePath        string  `json:"hookFilePath,omitempty" yaml:"hookFilePath,omitempty"`
	CallbackFunc        string  `json:"callbackFunc,omitempty" yaml:"callbackFunc,omitempty"`
	ManagedState        string  `json:"managedState,omitempty" yaml:"managedState,omitempty"`
	UpdatedState        Snippet `json:"updatedState,omitempty" yaml:"updatedState,omitempty"`
	ParameterOne        Snippet `json:"parameterOne,omitempty" yaml:"parameterOne,omitempty"`
	ReturnValue         string  `json:"returnValue,omitempty" yaml:"returnValue,omitempty"`
	ExpectedReturnValue Snippet `json:"expectedReturnValue,omitempty" yaml:"expectedReturnValue,omitempty"`

	// context
	ContextFilePath   string `json:"contextFilePath,omitempty" yaml:"contextFilePath,omitempty"`
	ProviderComponent string `json:"providerComponent,omitempty" yaml:"providerComponent,omitempty"`
	ConsumerComponent string `json:"consumerComponent,omitempty" yaml:"consumerComponent,omitempty"`
	Context           string `json:"context,omitempty" yaml:"context,omitempty"`
	Values            string `json:"values,omitempty" yaml:"values,omitempty"`
	QueryValue        string `json:"queryValue,omitempty" yaml:"queryValue,omitempty"`
	QuerySelector     string `json:"querySelector,omitempty" yaml:"querySelector,omitempty"`
	QueryVariant      string `json:"queryVariant,omitempty" yaml:"queryVariant,omitempty"`
}

// EndpointTestCase holds the supertest endpoint category
type EndpointTestCase struct {
	HasEndpoint           int                 `json:"hasEndpoint" yaml:"hasEndpoint"`
	EndpointTestStatement string              `json:"endpointTestStatement" yaml:"endpointTestStatement"`
	EndpointStatements    []EndpointStatement `json:"endpointStatements" yaml:"endpointStatements"`
}

// EndpointStatementType tags an EndpointStatement
type EndpointStatementType string

const EndpointRequest EndpointStatementType = "endpoint"

// EndpointStatement is one request + status/body assertion
type EndpointStatement struct {
	ID               string                `json:"id" yaml:"id"`
	Type             EndpointStatementType `json:"type" yaml:"type"`
	ServerFilePath   string                `json:"serverFilePath" yaml:"serverFilePath"`
	Method           string                `json:"method" yaml:"method"`
	Route            string                `json:"route" yaml:"route"`
	ExpectedResponse string                `json:"expectedResponse" yaml:"expectedResponse"`
	Value            Snippet               `json:"value" yaml:"value"`
}

// PuppeteerTestCase holds the browser paint-timing category
type PuppeteerTestCase struct {
	HasPuppeteer        int                  `json:"hasPuppeteer" yaml:"hasPuppeteer"`
	PuppeteerStatements []PuppeteerStatement `json:"puppeteerStatements" yaml:"puppeteerStatements"`
}

// PuppeteerStatementType tags a PuppeteerStatement
type PuppeteerStatementType string

const PuppeteerPaintTiming PuppeteerStatementType = "paintTiming"

// PuppeteerStatement describes one paint-timing describe block
type PuppeteerStatement struct {
	ID             string                 `json:"id" yaml:"id"`
	Type           PuppeteerStatementType `json:"type" yaml:"type"`
	Describe       string                 `json:"describe" yaml:"describe"`
	URL            string                 `json:"url" yaml:"url"`
	BrowserOptions []BrowserOption        `json:"browserOptions" yaml:"browserOptions"`

	FirstPaintIt   string  `json:"firstPaintIt" yaml:"firstPaintIt"`
	FirstPaintTime Snippet `json:"firstPaintTime" yaml:"firstPaintTime"`
	FCPIt          string  `json:"FCPIt" yaml:"FCPIt"`
	FCPTime        Snippet `json:"FCPtTime" yaml:"FCPtTime"`
	LCPIt          string  `json:"LCPIt" yaml:"LCPIt"`
	LCPTime        Snippet `json:"LCPTime" yaml:"LCPTime"`
}

// BrowserOption is a raw key/value pair entered in the editor. Values are
// strings; coercion to bool/number happens at emission time.
type BrowserOption struct {
	ID          string  `json:"id,omitempty" yaml:"id,omitempty"`
	OptionKey   string  `json:"optionKey" yaml:"optionKey"`
	OptionValue Snippet `json:"optionValue" yaml:"optionValue"`
}
