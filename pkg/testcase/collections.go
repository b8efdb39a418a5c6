package testcase

import "strings"

// DescribeBlocks is a normalized collection; AllIDs carries source order
type DescribeBlocks struct {
	ByID   map[string]DescribeBlock `json:"byId" yaml:"byId"`
	AllIDs []string                 `json:"allIds" yaml:"allIds"`
}

// Ordered returns the blocks in insertion order
func (d DescribeBlocks) Ordered() []DescribeBlock {
	blocks := make([]DescribeBlock, 0, len(d.AllIDs))
	for _, id := range d.AllIDs {
		if b, ok := d.ByID[id]; ok {
			blocks = append(blocks, b)
		}
	}
	return blocks
}

// ItStatements is a normalized collection of it(...) blocks
type ItStatements struct {
	ByID   map[string]ItStatement `json:"byId" yaml:"byId"`
	AllIDs []string               `json:"allIds" yaml:"allIds"`
}

// ForDescribe returns the it statements of one describe block, in insertion order
func (s ItStatements) ForDescribe(describeID string) []ItStatement {
	its := make([]ItStatement, 0)
	for _, id := range s.AllIDs {
		it, ok := s.ByID[id]
		if ok && it.DescribeID == describeID {
			its = append(its, it)
		}
	}
	return its
}

// Statements is the normalized collection of render/action/assertion
// statements together with the component under test.
type Statements struct {
	ByID          map[string]Statement `json:"byId" yaml:"byId"`
	AllIDs        []string             `json:"allIds" yaml:"allIds"`
	ComponentName string               `json:"componentName" yaml:"componentName"`
	ComponentPath string               `json:"componentPath" yaml:"componentPath"`
}

// ForIt returns the statements of one it block. Order follows AllIDs, not
// the order in which the caller may have declared them.
func (s Statements) ForIt(itID string) []Statement {
	stmts := make([]Statement, 0)
	for _, id := range s.AllIDs {
		st, ok := s.ByID[id]
		if ok && st.ItID == itID {
			stmts = append(stmts, st)
		}
	}
	return stmts
}

// OfType filters all statements by variant
func (s Statements) OfType(t StatementType) []Statement {
	stmts := make([]Statement, 0)
	for _, id := range s.AllIDs {
		if st, ok := s.ByID[id]; ok && st.Type == t {
			stmts = append(stmts, st)
		}
	}
	return stmts
}

// IdentifyMethods builds the destructuring list for the render call of an it
// block: every distinct query method used by its actions and assertions, in
// order of first appearance, joined by ", ".
func (s Statements) IdentifyMethods(itID string) string {
	seen := make(map[string]bool)
	methods := make([]string, 0)

	for _, st := range s.ForIt(itID) {
		if st.Type != StatementAction && st.Type != StatementAssertion {
			continue
		}
		m := st.Method()
		if seen[m] {
			continue
		}
		seen[m] = true
		methods = append(methods, m)
	}

	return strings.Join(methods, ", ")
}
