// Package server provides a Gin echo server for exercising the session
// dispatcher end to end.
//
// The server follows the component pattern: NewComponent wraps it for a
// component.Registry. Responses declare the configured content type and
// status unless the request overrides them:
//
//	GET /echo?content_type=text/html&status=404
//	X-Echo-Content-Type: none
//
// Routes:
//
//   - /echo: echoes the request as JSON, or the raw body for other types
//   - /empty: declares the response type with an empty body
//   - /health: liveness
//
// Middleware (server/middleware): Recovery, RequestID and RequestLogger,
// applied at the handler level around the engine.
package server
