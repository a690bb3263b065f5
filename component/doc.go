// Package component defines lifecycle-managed parts of a running command:
// the dispatch session, the echo server and the telemetry providers.
//
// A Registry starts components in registration order and stops them in
// reverse. If one fails to start, the ones already started are stopped.
package component
