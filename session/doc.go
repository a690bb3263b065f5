// Package session dispatches declarative HTTP calls.
//
// A Manager owns a connection pool, the most recently supplied client
// credential and a single delivery goroutine. Each dispatch builds one
// request from a service.Descriptor, runs it through the pool with at most
// Config.MaxConcurrent transfers in flight, negotiates the response against
// the accepted content type and resolves exactly once:
//
//	m, err := session.New(session.DefaultConfig())
//	if err != nil {
//	    return err
//	}
//	defer m.Close(ctx)
//
//	out := m.Dispatch(ctx, &service.Descriptor{
//	    Method: service.MethodGet,
//	    URL:    "https://api.example.com/items",
//	    Accept: service.AcceptJSON,
//	}).Outcome()
//	if out.Err != nil {
//	    // branch on out.Kind
//	}
//
// Start callbacks all run on the manager's delivery goroutine, one at a
// time, so callbacks need no synchronization among themselves. Futures from
// Dispatch and Do resolve as soon as their transfer finishes, so a callback
// may chain another call with Do.
//
// Reset replaces the pool and forgets the remembered credential. Calling it
// while dispatches are in flight is undefined: those dispatches keep
// whichever pool they started with, and a TLS handshake already underway may
// see either credential.
package session
