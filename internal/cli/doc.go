// Package cli implements the dpsession command line: "call" dispatches one
// descriptor through a session manager and "echo" runs the echo server.
package cli
