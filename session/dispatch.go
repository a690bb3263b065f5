package session

import (
	"context"

	"github.com/google/uuid"

	"github.com/BonEvil/DPSessionManager/logger"
	"github.com/BonEvil/DPSessionManager/observability"
	"github.com/BonEvil/DPSessionManager/service"
)

// Dispatch executes d and returns a future for its outcome. It never
// blocks on the network; the transfer runs once a slot is free. The future
// resolves as soon as the transfer finishes, without waiting for the
// delivery goroutine, so it may be awaited from a Start callback.
func (m *Manager) Dispatch(ctx context.Context, d *service.Descriptor) *Future {
	f := newFuture()
	m.submit(ctx, d, f.resolve, false)
	return f
}

// Start executes d and calls fn with the outcome on the delivery goroutine.
// Callbacks never run concurrently with each other, and a callback that
// blocks holds up every later one. After Close, fn is called on its own
// goroutine with an ErrClosed outcome.
func (m *Manager) Start(ctx context.Context, d *service.Descriptor, fn func(Outcome)) {
	if fn == nil {
		fn = func(Outcome) {}
	}
	m.submit(ctx, d, fn, true)
}

// Do executes d and waits for its outcome. It is safe to call from a Start
// callback.
func (m *Manager) Do(ctx context.Context, d *service.Descriptor) Outcome {
	return m.Dispatch(ctx, d).Outcome()
}

// submit runs d on its own goroutine. Queued outcomes go through the
// delivery goroutine; the others are handed to deliver directly.
func (m *Manager) submit(ctx context.Context, d *service.Descriptor, deliver func(Outcome), queued bool) {
	m.mu.RLock()
	if m.closed {
		m.mu.RUnlock()
		if queued {
			go deliver(failure(ErrClosed, nil, 0))
		} else {
			deliver(failure(ErrClosed, nil, 0))
		}
		return
	}
	m.inflight.Add(1)
	m.mu.RUnlock()

	go func() {
		defer m.inflight.Done()
		o := m.run(ctx, d)
		if !queued {
			deliver(o)
			return
		}
		m.delivery.post(func() { deliver(o) })
	}()
}

// run performs one dispatch from credential capture to negotiation.
func (m *Manager) run(ctx context.Context, d *service.Descriptor) Outcome {
	if d == nil {
		d = &service.Descriptor{}
	}
	id := uuid.NewString()
	ctx = logger.ContextWithDispatchID(ctx, id)

	dc := observability.NewDispatchContext(id, d.Method.String(), d.URL, m.metrics)
	ctx = observability.WithDispatchContext(ctx, dc)
	ctx, span := dc.StartSpan(ctx, m.tracer)
	log := m.log.WithContext(ctx)

	log.Debug("dispatch started", logger.Fields(
		logger.FieldMethod, d.Method.String(),
		logger.FieldURL, d.URL,
	))

	o := m.execute(ctx, log, d)

	label := observability.OutcomeSuccess
	if !o.OK() {
		label = o.Kind.String()
	}
	dc.End(ctx, span, label, o.StatusCode, o.Err)

	fields := logger.MergeWithDuration(logger.Fields(
		logger.FieldMethod, d.Method.String(),
		logger.FieldURL, d.URL,
		logger.FieldOutcome, label,
		logger.FieldStatusCode, o.StatusCode,
	), dc.Duration())
	if o.OK() {
		log.Debug("dispatch finished", fields)
	} else {
		for k, v := range logger.ErrorFields(o.Kind.String(), o.Err) {
			fields[k] = v
		}
		log.Warn("dispatch failed", fields)
	}
	return o
}

func (m *Manager) execute(ctx context.Context, log *logger.Logger, d *service.Descriptor) Outcome {
	if d.Credential != nil {
		m.credential.Store(d.Credential)
	}

	if err := d.Validate(); err != nil {
		return failure(err, nil, 0)
	}

	req, err := buildRequest(ctx, d)
	if err != nil {
		return failure(err, nil, 0)
	}

	release, err := m.bulkhead.Acquire(ctx)
	if err != nil {
		return failure(err, nil, 0)
	}
	defer release()

	if d.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.Timeout)
		defer cancel()
		req = req.WithContext(ctx)
	}

	resp, err := m.client.Load().Do(req)
	if err != nil {
		return failure(err, nil, 0)
	}
	m.observeHTTPChallenge(log, resp)

	o := negotiate(d, resp)
	if m.metrics != nil && o.Body != nil {
		m.metrics.RecordResponseSize(ctx, mediaType(resp.Header.Get("Content-Type")), len(o.Body))
	}
	return o
}
