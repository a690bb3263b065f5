package service

import (
	"fmt"
	"strings"
)

// Method is the HTTP method of a call.
type Method string

const (
	MethodGet    Method = "GET"
	MethodPost   Method = "POST"
	MethodPut    Method = "PUT"
	MethodDelete Method = "DELETE"
	MethodHead   Method = "HEAD"
)

// Methods lists every supported method.
var Methods = []Method{MethodGet, MethodPost, MethodPut, MethodDelete, MethodHead}

// Valid reports whether m is one of Methods.
func (m Method) Valid() bool {
	for _, v := range Methods {
		if m == v {
			return true
		}
	}
	return false
}

// String returns the wire verb.
func (m Method) String() string { return string(m) }

// ParseMethod parses a method name case-insensitively.
func ParseMethod(s string) (Method, error) {
	m := Method(strings.ToUpper(strings.TrimSpace(s)))
	if !m.Valid() {
		return "", fmt.Errorf("service: unknown method %q", s)
	}
	return m, nil
}

// ContentType is the format of a request body. Its value is the MIME string
// sent in the Content-Type header; ContentTypeNone sends no header.
type ContentType string

const (
	ContentTypeXML  ContentType = "application/xml"
	ContentTypeJSON ContentType = "application/json"
	ContentTypeForm ContentType = "application/x-www-form-urlencoded"
	ContentTypeNone ContentType = ""
)

var contentTypeNames = map[string]ContentType{
	"xml":  ContentTypeXML,
	"json": ContentTypeJSON,
	"form": ContentTypeForm,
	"none": ContentTypeNone,
}

// Valid reports whether c is one of the enumerated content types.
func (c ContentType) Valid() bool {
	for _, v := range contentTypeNames {
		if c == v {
			return true
		}
	}
	return false
}

// MIME returns the header value, empty for ContentTypeNone.
func (c ContentType) MIME() string { return string(c) }

// Name returns the short name (xml, json, form, none).
func (c ContentType) Name() string { return nameOf(contentTypeNames, c) }

// ParseContentType accepts a short name or a MIME string.
func ParseContentType(s string) (ContentType, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if c, ok := contentTypeNames[s]; ok {
		return c, nil
	}
	if c := ContentType(s); c != ContentTypeNone && c.Valid() {
		return c, nil
	}
	return "", fmt.Errorf("service: unknown content type %q", s)
}

// AcceptType is the response format a call expects. Its value is the MIME
// string sent in the Accept header and compared against the response's
// Content-Type; AcceptNone sends no header.
type AcceptType string

const (
	AcceptXML        AcceptType = "application/xml"
	AcceptJSON       AcceptType = "application/json"
	AcceptHTML       AcceptType = "text/html"
	AcceptText       AcceptType = "text/plain"
	AcceptJavaScript AcceptType = "text/javascript"
	AcceptNone       AcceptType = ""
)

var acceptTypeNames = map[string]AcceptType{
	"xml":        AcceptXML,
	"json":       AcceptJSON,
	"html":       AcceptHTML,
	"text":       AcceptText,
	"javascript": AcceptJavaScript,
	"none":       AcceptNone,
}

// Valid reports whether a is one of the enumerated accept types.
func (a AcceptType) Valid() bool {
	for _, v := range acceptTypeNames {
		if a == v {
			return true
		}
	}
	return false
}

// MIME returns the header value, empty for AcceptNone.
func (a AcceptType) MIME() string { return string(a) }

// Name returns the short name (xml, json, html, text, javascript, none).
func (a AcceptType) Name() string { return nameOf(acceptTypeNames, a) }

// ParseAcceptType accepts a short name or a MIME string.
func ParseAcceptType(s string) (AcceptType, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if a, ok := acceptTypeNames[s]; ok {
		return a, nil
	}
	if a := AcceptType(s); a != AcceptNone && a.Valid() {
		return a, nil
	}
	return "", fmt.Errorf("service: unknown accept type %q", s)
}

func nameOf[T comparable](names map[string]T, v T) string {
	for name, candidate := range names {
		if candidate == v {
			return name
		}
	}
	return "unknown"
}
