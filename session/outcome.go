package session

import (
	"context"

	"github.com/BonEvil/DPSessionManager/errors"
)

// OutcomeSuccess is the Kind of a successful outcome.
const OutcomeSuccess errors.Kind = "SUCCESS"

// Outcome is the terminal result of one dispatch. Exactly one of Value and
// Err is meaningful: Err is nil on success.
type Outcome struct {
	// Kind is OutcomeSuccess or the failure kind.
	Kind errors.Kind
	// Value is the parsed response body, or NoContent for an empty body.
	Value any
	// Err is the failure. Transport failures carry the transport's own
	// error; every other failure is an *errors.AppError.
	Err error
	// Body is the raw response body, when one was received.
	Body []byte
	// StatusCode is the HTTP status, 0 when no response was received. It
	// does not influence the outcome.
	StatusCode int
}

// OK reports whether the dispatch succeeded.
func (o Outcome) OK() bool { return o.Err == nil }

func success(value any, body []byte, status int) Outcome {
	return Outcome{Kind: OutcomeSuccess, Value: value, Body: body, StatusCode: status}
}

func failure(err error, body []byte, status int) Outcome {
	return Outcome{Kind: errors.KindOf(err), Err: err, Body: body, StatusCode: status}
}

type noContent struct{}

func (noContent) String() string { return "no content" }

// NoContent is the Value of a successful dispatch whose response body was
// empty.
var NoContent any = noContent{}

// Future resolves to the outcome of one dispatch.
type Future struct {
	done    chan struct{}
	outcome Outcome
}

func newFuture() *Future {
	return &Future{done: make(chan struct{})}
}

// resolve is called exactly once per future.
func (f *Future) resolve(o Outcome) {
	f.outcome = o
	close(f.done)
}

// Done is closed once the outcome is available.
func (f *Future) Done() <-chan struct{} { return f.done }

// Outcome blocks until the dispatch resolves.
func (f *Future) Outcome() Outcome {
	<-f.done
	return f.outcome
}

// Wait blocks until the dispatch resolves or ctx is done. Giving up does not
// stop the dispatch.
func (f *Future) Wait(ctx context.Context) (Outcome, error) {
	select {
	case <-f.done:
		return f.outcome, nil
	case <-ctx.Done():
		return Outcome{}, ctx.Err()
	}
}
