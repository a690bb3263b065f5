package errors

import (
	stderrors "errors"
	"fmt"
)

// Domain identifies errors generated by the dispatcher.
const Domain = "dpsession.errordomain"

// DomainCode is the numeric code shared by every error in Domain.
const DomainCode = -1

// AppError is a dispatcher-generated failure.
type AppError struct {
	// Domain is always Domain.
	Domain string `json:"domain"`
	// Code is always DomainCode.
	Code int `json:"code"`
	// Kind classifies the failure.
	Kind Kind `json:"kind"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// MessageKey identifies Message independently of its wording.
	MessageKey string `json:"message_key"`
	// Body is the raw response body, when one was received.
	Body []byte `json:"-"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// WithBody attaches the raw response body and returns the receiver.
func (e *AppError) WithBody(body []byte) *AppError {
	e.Body = body
	return e
}

// New creates a new AppError in the dispatcher domain.
func New(kind Kind, key, message string) *AppError {
	return &AppError{
		Domain:     Domain,
		Code:       DomainCode,
		Kind:       kind,
		Message:    message,
		MessageKey: key,
	}
}

// --- Constructors ---

// NoData reports a transport success that carried no HTTP response.
func NoData() *AppError {
	return New(KindProtocol, KeyNoData, "no data returned from server")
}

// NoContentType reports a response without a Content-Type header.
func NoContentType() *AppError {
	return New(KindProtocol, KeyNoContentType, "no content type specified")
}

// ContentTypeMismatch reports a response whose content type differs from the
// accepted one.
func ContentTypeMismatch(expected, received string) *AppError {
	return New(KindContentTypeMismatch, KeyContentTypeMismatch,
		fmt.Sprintf("invalid content type: expected %q but received %q", expected, received)).
		WithDetail("expected", expected).
		WithDetail("received", received)
}

// ParseFailed reports a body the parser could not turn into a value.
func ParseFailed(body []byte, cause error) *AppError {
	return New(KindParse, KeyParse, "could not parse response").WithBody(body).WithCause(cause)
}

// EncodingFailed reports parameters the serializer rejected.
func EncodingFailed(reason string) *AppError {
	return New(KindEncoding, KeyEncoding, reason)
}

// InvalidDescriptor reports a descriptor that cannot be dispatched.
func InvalidDescriptor(reason string) *AppError {
	return New(KindInvalidDescriptor, KeyInvalidDescriptor, "invalid descriptor: "+reason)
}

// Unsupported reports a request content type without a default serializer.
func Unsupported(contentType string) *AppError {
	return New(KindUnsupported, KeyUnsupported,
		fmt.Sprintf("no default serializer for content type %q", contentType)).
		WithDetail("content_type", contentType)
}

// --- Inspection ---

// AsAppError converts an error to an AppError if possible.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsKind reports whether err is an AppError of the given kind.
func IsKind(err error, kind Kind) bool {
	appErr, ok := AsAppError(err)
	return ok && appErr.Kind == kind
}

// KindOf returns the kind of err. Errors outside the domain are transport
// errors; nil has no kind.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	if appErr, ok := AsAppError(err); ok {
		return appErr.Kind
	}
	return KindTransport
}
