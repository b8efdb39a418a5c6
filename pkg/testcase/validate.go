package testcase

import (
	"errors"
	"fmt"
)

// ErrDanglingReference is returned when a foreign key or an ordering id does
// not resolve inside the model
var ErrDanglingReference = errors.New("dangling reference")

// DanglingReferenceError names the record that failed to resolve
type DanglingReferenceError struct {
	Kind string // describeBlock, itStatement, statement
	ID   string // id of the record holding the reference
	Ref  string // the unresolved id
	Via  string // field holding the reference
}

func (e *DanglingReferenceError) Error() string {
	return fmt.Sprintf("%s %q: %s %q does not resolve", e.Kind, e.ID, e.Via, e.Ref)
}

func (e *DanglingReferenceError) Unwrap() error {
	return ErrDanglingReference
}

// Validate checks the react collections for unresolved ids. The other
// categories are flat lists with no foreign keys.
func (m *Model) Validate() error {
	r := &m.React

	for _, id := range r.DescribeBlocks.AllIDs {
		if _, ok := r.DescribeBlocks.ByID[id]; !ok {
			return &DanglingReferenceError{Kind: "describeBlock", ID: id, Ref: id, Via: "allIds"}
		}
	}

	for _, id := range r.ItStatements.AllIDs {
		it, ok := r.ItStatements.ByID[id]
		if !ok {
			return &DanglingReferenceError{Kind: "itStatement", ID: id, Ref: id, Via: "allIds"}
		}
		if _, ok := r.DescribeBlocks.ByID[it.DescribeID]; !ok {
			return &DanglingReferenceError{Kind: "itStatement", ID: id, Ref: it.DescribeID, Via: "describeId"}
		}
	}

	for _, id := range r.Statements.AllIDs {
		st, ok := r.Statements.ByID[id]
		if !ok {
			return &DanglingReferenceError{Kind: "statement", ID: id, Ref: id, Via: "allIds"}
		}
		if _, ok := r.ItStatements.ByID[st.ItID]; !ok {
			return &DanglingReferenceError{Kind: "statement", ID: id, Ref: st.ItID, Via: "itId"}
		}
	}

	return nil
}
