package loader

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// scalar is an attribute value. Documents may spell it as a string, a
// number or a boolean; it is always kept as its source text.
type scalar string

// UnmarshalJSON implements json.Unmarshaler.
func (s *scalar) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return err
	}
	switch t := v.(type) {
	case nil:
		*s = ""
	case string:
		*s = scalar(t)
	case json.Number:
		*s = scalar(t.String())
	case bool:
		*s = scalar(fmt.Sprint(t))
	default:
		return fmt.Errorf("attribute value must be a string, number or boolean, got %s", b)
	}
	return nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (s *scalar) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: attribute value must be a scalar", n.Line)
	}
	*s = scalar(n.Value)
	return nil
}

// UnmarshalTOML implements toml.Unmarshaler.
func (s *scalar) UnmarshalTOML(v any) error {
	switch t := v.(type) {
	case string, int64, float64, bool:
		*s = scalar(fmt.Sprint(t))
		return nil
	default:
		return fmt.Errorf("attribute value must be a string, number or boolean, got %T", v)
	}
}
