package parser

import (
	"bytes"
	"encoding/xml"
)

// XML hands the body to a streaming decoder without building a tree.
type XML struct{}

// XMLStream is a pull parser over a response body.
type XMLStream struct {
	*xml.Decoder
	raw []byte
}

// Bytes returns the body the stream reads from.
func (s *XMLStream) Bytes() []byte { return s.raw }

// Parse wraps data in an *XMLStream. It never fails; malformed XML surfaces
// while the caller reads tokens.
func (XML) Parse(data []byte) (any, error) {
	return &XMLStream{
		Decoder: xml.NewDecoder(bytes.NewReader(data)),
		raw:     data,
	}, nil
}
