package session

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/BonEvil/DPSessionManager/errors"
	"github.com/BonEvil/DPSessionManager/serializer"
	"github.com/BonEvil/DPSessionManager/service"
)

// buildRequest turns d into an HTTP request. Failures are AppErrors.
func buildRequest(ctx context.Context, d *service.Descriptor) (*http.Request, error) {
	target := d.URL
	var body []byte

	if len(d.Params) > 0 {
		encoded, err := encodeParams(d)
		if err != nil {
			return nil, err
		}
		if d.Serializer == nil && d.ContentType == service.ContentTypeForm && d.Method == service.MethodGet {
			target = appendQuery(target, string(encoded))
		} else {
			body = encoded
		}
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, d.Method.String(), target, reader)
	if err != nil {
		return nil, errors.InvalidDescriptor(err.Error()).WithCause(err)
	}

	for k, v := range d.Headers {
		req.Header.Set(k, v)
	}
	if ct := d.ContentTypeHeader(); ct != "" {
		req.Header.Set("Content-Type", ct)
	}
	if accept := d.AcceptHeader(); accept != "" {
		req.Header.Set("Accept", accept)
	}
	return req, nil
}

// encodeParams serializes d.Params with the descriptor's serializer, or the
// default for its content type. A nil result means no body.
func encodeParams(d *service.Descriptor) ([]byte, error) {
	s := d.Serializer
	if s == nil {
		switch d.ContentType {
		case service.ContentTypeJSON:
			s = serializer.JSON{}
		case service.ContentTypeForm:
			s = serializer.Form{}
		case service.ContentTypeXML:
			return nil, errors.Unsupported(d.ContentType.MIME())
		default:
			return nil, nil
		}
	}
	return safeSerialize(s, d.Params)
}

func safeSerialize(s service.Serializer, params service.Params) (data []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			data, err = nil, errors.EncodingFailed(fmt.Sprintf("serializer panicked: %v", r))
		}
	}()
	data, err = s.Serialize(params)
	if err == nil {
		return data, nil
	}
	if _, ok := errors.AsAppError(err); ok {
		return nil, err
	}
	return nil, errors.EncodingFailed(err.Error()).WithCause(err)
}

func appendQuery(target, query string) string {
	if query == "" {
		return target
	}
	if strings.Contains(target, "?") {
		return target + "&" + query
	}
	return target + "?" + query
}
