package session

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/elnormous/contenttype"

	"github.com/BonEvil/DPSessionManager/errors"
	"github.com/BonEvil/DPSessionManager/parser"
	"github.com/BonEvil/DPSessionManager/service"
)

// negotiate turns a response into an outcome. The body is always read in
// full and closed.
func negotiate(d *service.Descriptor, resp *http.Response) Outcome {
	if resp == nil || resp.Header == nil {
		if resp != nil && resp.Body != nil {
			resp.Body.Close()
		}
		return failure(errors.NoData(), nil, 0)
	}
	defer resp.Body.Close()

	status := resp.StatusCode
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return failure(err, nil, status)
	}

	header := resp.Header.Get("Content-Type")
	if header == "" {
		return failure(errors.NoContentType(), body, status)
	}

	received := mediaType(header)
	expected := d.AcceptHeader()
	if received != expected {
		return failure(errors.ContentTypeMismatch(expected, received).WithBody(body), body, status)
	}

	if len(body) == 0 {
		return success(NoContent, body, status)
	}

	p := d.Parser
	if p == nil {
		p = parser.For(d.Accept, charsetOf(header))
	}
	value, err := safeParse(p, body)
	if err != nil {
		return failure(err, body, status)
	}
	return success(value, body, status)
}

// mediaType returns the header value before its parameters.
func mediaType(header string) string {
	mt, _, _ := strings.Cut(header, ";")
	return strings.TrimSpace(mt)
}

// charsetOf returns the charset parameter of a Content-Type header, or "".
func charsetOf(header string) string {
	mt := contenttype.NewMediaType(header)
	return mt.Parameters["charset"]
}

func safeParse(p service.Parser, body []byte) (value any, err error) {
	defer func() {
		if r := recover(); r != nil {
			value = nil
			err = errors.ParseFailed(body, fmt.Errorf("parser panicked: %v", r))
		}
	}()
	value, err = p.Parse(body)
	if err != nil {
		if _, ok := errors.AsAppError(err); ok {
			return nil, err
		}
		return nil, errors.ParseFailed(body, err)
	}
	if value == nil {
		return nil, errors.ParseFailed(body, nil)
	}
	return value, nil
}
