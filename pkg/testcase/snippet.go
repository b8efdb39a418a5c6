package testcase

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Snippet is user-supplied source text that is emitted verbatim. The editor
// sends some of these as JSON numbers or booleans (status codes, thresholds),
// so decoding accepts any scalar and keeps its literal spelling.
type Snippet string

// String returns the snippet text
func (s Snippet) String() string {
	return string(s)
}

// UnmarshalJSON accepts strings, numbers, booleans and null
func (s *Snippet) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}

	switch data[0] {
	case '"':
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*s = Snippet(str)
	case '{', '[':
		return fmt.Errorf("snippet must be a scalar, got %s", data)
	default:
		*s = Snippet(data)
	}
	return nil
}

// UnmarshalYAML accepts any scalar node
func (s *Snippet) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("snippet must be a scalar (line %d)", node.Line)
	}
	*s = Snippet(node.Value)
	return nil
}
