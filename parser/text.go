package parser

import (
	"bytes"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html/charset"

	"github.com/BonEvil/DPSessionManager/errors"
)

// Text decodes a body into a string. When Charset names an encoding other
// than UTF-8 or ASCII the body is transcoded from it; otherwise it must be
// valid UTF-8, which covers ASCII.
type Text struct {
	// Charset is the charset parameter of the response's Content-Type.
	Charset string
}

// Parse decodes data.
func (t Text) Parse(data []byte) (any, error) {
	if s, ok := t.transcode(data); ok {
		return s, nil
	}
	if utf8.Valid(data) {
		return string(data), nil
	}
	return nil, errors.ParseFailed(data, nil)
}

func (t Text) transcode(data []byte) (string, bool) {
	label := strings.ToLower(strings.TrimSpace(t.Charset))
	switch label {
	case "", "utf-8", "utf8", "us-ascii", "ascii":
		return "", false
	}
	r, err := charset.NewReaderLabel(label, bytes.NewReader(data))
	if err != nil {
		return "", false
	}
	out, err := io.ReadAll(r)
	if err != nil {
		return "", false
	}
	return string(out), true
}
