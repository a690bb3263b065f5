// Package service describes HTTP calls declaratively.
//
// A Descriptor names everything one call needs: method, URL, timeout,
// headers, body parameters, the request content type and the accepted
// response type, and optionally a custom Serializer, Parser or client
// Credential. Descriptors are plain data; the session package turns them
// into requests and negotiates the responses.
//
// # Usage
//
//	d := service.Descriptor{
//	    Method:      service.MethodPost,
//	    URL:         "https://api.example.com/login",
//	    ContentType: service.ContentTypeForm,
//	    Accept:      service.AcceptJSON,
//	    Timeout:     10 * time.Second,
//	    Params: service.Params{
//	        "user": service.String("alice"),
//	    },
//	}
//
// The enumerations are closed sets. Adding a wire format or a method means
// extending this package, not the dispatcher.
package service
