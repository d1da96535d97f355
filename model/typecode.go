package model

import (
	"bytes"
	"strconv"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// TypeCode is a question type as it arrives from the data source: either a
// numeric code or a symbolic name. It round-trips in the form it was given.
type TypeCode struct {
	num     int
	sym     string
	numeric bool
}

func NumericType(n int) TypeCode {
	return TypeCode{num: n, numeric: true}
}

func SymbolicType(s string) TypeCode {
	return TypeCode{sym: s}
}

// ParseTypeCode reads the storage form produced by String.
func ParseTypeCode(s string) TypeCode {
	if n, err := strconv.Atoi(s); err == nil {
		return NumericType(n)
	}
	return SymbolicType(s)
}

func (t TypeCode) Numeric() (int, bool) {
	return t.num, t.numeric
}

func (t TypeCode) Symbol() string {
	return t.sym
}

func (t TypeCode) String() string {
	if t.numeric {
		return strconv.Itoa(t.num)
	}
	return t.sym
}

func (t TypeCode) MarshalJSON() ([]byte, error) {
	if t.numeric {
		return []byte(strconv.Itoa(t.num)), nil
	}
	return json.Marshal(t.sym)
}

func (t *TypeCode) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = SymbolicType(s)
		return nil
	}
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return errors.Wrap(err, "question type must be a number or a string")
	}
	*t = NumericType(n)
	return nil
}

func (t TypeCode) MarshalYAML() (any, error) {
	if t.numeric {
		return t.num, nil
	}
	return t.sym, nil
}

func (t *TypeCode) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return errors.Errorf("line %d: question type must be a scalar", node.Line)
	}
	if node.Tag == "!!int" {
		var n int
		if err := node.Decode(&n); err != nil {
			return err
		}
		*t = NumericType(n)
		return nil
	}
	*t = SymbolicType(node.Value)
	return nil
}
