package parser

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/BonEvil/DPSessionManager/errors"
)

type null struct{}

func (null) MarshalJSON() ([]byte, error) { return []byte("null"), nil }

func (null) String() string { return "null" }

// Null is the value of a document that is a bare JSON null. Nulls nested in
// objects and arrays stay nil.
var Null any = null{}

// JSON decodes a JSON document: an object, an array or a bare scalar.
// Objects become map[string]any and arrays []any; a bare null becomes Null.
type JSON struct {
	// UseNumber decodes numbers as json.Number instead of float64.
	UseNumber bool
}

// Parse decodes data. Trailing data after the document is an error.
func (j JSON) Parse(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	if j.UseNumber {
		dec.UseNumber()
	}
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, errors.ParseFailed(data, err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.ParseFailed(data, fmt.Errorf("unexpected data after JSON document"))
	}
	if v == nil {
		return Null, nil
	}
	return v, nil
}
