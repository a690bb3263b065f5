package errors

// Kind classifies a dispatch failure.
type Kind string

// Kinds produced by the network layer.
const (
	// KindTransport indicates a network, TLS or timeout failure.
	KindTransport Kind = "TRANSPORT"
)

// Kinds produced while negotiating a response.
const (
	// KindProtocol indicates an absent or malformed HTTP response.
	KindProtocol Kind = "PROTOCOL"
	// KindContentTypeMismatch indicates the response declared a content type
	// other than the one the descriptor accepts.
	KindContentTypeMismatch Kind = "CONTENT_TYPE_MISMATCH"
	// KindParse indicates the parser rejected the response body.
	KindParse Kind = "PARSE"
)

// Kinds produced while building a request.
const (
	// KindEncoding indicates the serializer rejected the parameters.
	KindEncoding Kind = "ENCODING"
	// KindInvalidDescriptor indicates a descriptor that cannot be dispatched.
	KindInvalidDescriptor Kind = "INVALID_DESCRIPTOR"
	// KindUnsupported indicates a request body format with no default serializer.
	KindUnsupported Kind = "UNSUPPORTED"
)

// Message keys, stable identifiers for the human-readable messages.
const (
	KeyNoData              = "error.no_data"
	KeyNoContentType       = "error.no_content_type"
	KeyContentTypeMismatch = "error.content_type_mismatch"
	KeyParse               = "error.parse"
	KeyEncoding            = "error.encoding"
	KeyInvalidDescriptor   = "error.invalid_descriptor"
	KeyUnsupported         = "error.unsupported"
)

// String returns the kind name.
func (k Kind) String() string { return string(k) }
