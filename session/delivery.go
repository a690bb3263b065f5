package session

import (
	"fmt"

	"github.com/BonEvil/DPSessionManager/logger"
)

// delivery runs outcome callbacks one at a time on its own goroutine.
type delivery struct {
	queue chan func()
	done  chan struct{}
	log   *logger.Logger
}

func newDelivery(buffer int, log *logger.Logger) *delivery {
	d := &delivery{
		queue: make(chan func(), buffer),
		done:  make(chan struct{}),
		log:   log,
	}
	go d.loop()
	return d
}

func (d *delivery) loop() {
	defer close(d.done)
	for fn := range d.queue {
		d.run(fn)
	}
}

func (d *delivery) run(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			d.log.Error("outcome callback panicked", logger.Fields(logger.FieldError, fmt.Sprint(r)))
		}
	}()
	fn()
}

// post queues fn. It must not be called after stop.
func (d *delivery) post(fn func()) {
	d.queue <- fn
}

// stop closes the queue. done is closed once the queued callbacks have run.
func (d *delivery) stop() {
	close(d.queue)
}
