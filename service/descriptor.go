package service

import (
	"time"

	"github.com/BonEvil/DPSessionManager/validation"
)

// Serializer encodes request parameters into a body.
type Serializer interface {
	Serialize(params Params) ([]byte, error)
}

// Parser decodes a response body. Returning a nil value with a nil error
// means the body could not be turned into a value.
type Parser interface {
	Parse(data []byte) (any, error)
}

// Descriptor describes one HTTP call. It is read-only once handed to a
// dispatcher; callers that reuse a descriptor must not mutate its maps while
// a dispatch is in flight.
type Descriptor struct {
	Method      Method        `yaml:"method" validate:"method"`
	URL         string        `yaml:"url" validate:"required,url"`
	Timeout     time.Duration `yaml:"timeout" validate:"min=0"`
	ContentType ContentType   `yaml:"content_type" validate:"content_type"`
	Accept      AcceptType    `yaml:"accept" validate:"accept_type"`

	// Params become the request body, or the query string for form GETs.
	Params Params `yaml:"params" validate:"-"`
	// Headers are applied before Content-Type and Accept.
	Headers map[string]string `yaml:"headers" validate:"-"`

	// CustomContentType, when set, replaces ContentType's MIME string in the
	// Content-Type header. Default serializer selection still uses ContentType.
	CustomContentType *string `yaml:"custom_content_type" validate:"omitempty,min=1"`
	// CustomAccept, when set, replaces Accept's MIME string both in the Accept
	// header and in response content negotiation.
	CustomAccept *string `yaml:"custom_accept" validate:"omitempty,min=1"`

	Serializer Serializer  `yaml:"-" validate:"-"`
	Parser     Parser      `yaml:"-" validate:"-"`
	Credential *Credential `yaml:"-" validate:"-"`
}

func init() {
	rules := map[string]func(string) bool{
		"method":       func(s string) bool { return Method(s).Valid() },
		"content_type": func(s string) bool { return ContentType(s).Valid() },
		"accept_type":  func(s string) bool { return AcceptType(s).Valid() },
	}
	for tag, fn := range rules {
		if err := validation.RegisterRule(tag, fn); err != nil {
			panic(err)
		}
	}
}

// Validate checks the descriptor's enumerations, URL and timeout.
func (d *Descriptor) Validate() error {
	return validation.Validate(d)
}

// ContentTypeHeader returns the Content-Type header value, empty when none
// should be sent.
func (d *Descriptor) ContentTypeHeader() string {
	if d.CustomContentType != nil {
		return *d.CustomContentType
	}
	return d.ContentType.MIME()
}

// AcceptHeader returns the Accept header value, empty when none should be
// sent. It is also the content type a response must declare.
func (d *Descriptor) AcceptHeader() string {
	if d.CustomAccept != nil {
		return *d.CustomAccept
	}
	return d.Accept.MIME()
}
