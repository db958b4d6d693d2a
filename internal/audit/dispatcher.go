package audit

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

const (
	ActionAvailabilitySet     = "availability_set"
	ActionAvailabilityReset   = "availability_reset"
	ActionAvailabilityCopied  = "availability_copied"
	ActionAvailabilityDeleted = "availability_deleted"
	ActionAvailabilityPruned  = "availability_pruned"

	EntityAvailability = "availability"
)

type Event struct {
	Actor     string
	Action    string
	Entity    string
	EntityKey string
	Metadata  any
}

type Dispatcher struct {
	writer Writer
	log    *zap.Logger
	queue  chan Event
	done   chan struct{}

	mu     sync.RWMutex
	closed bool
}

func NewDispatcher(writer Writer, log *zap.Logger) *Dispatcher {
	d := &Dispatcher{
		writer: writer,
		log:    log,
		queue:  make(chan Event, 100),
		done:   make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)

	for ev := range d.queue {
		if err := d.writer.Write(context.Background(), ev); err != nil {
			d.log.Warn("audit write failed",
				zap.String("action", ev.Action),
				zap.String("entity_key", ev.EntityKey),
				zap.Error(err),
			)
		}
	}
}

// Dispatch never blocks the caller. When the queue is full the event is
// dropped.
func (d *Dispatcher) Dispatch(ev Event) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		d.log.Warn("audit dispatcher closed, dropping event", zap.String("action", ev.Action))
		return
	}

	select {
	case d.queue <- ev:
	default:
		d.log.Warn("audit queue full, dropping event", zap.String("action", ev.Action))
	}
}

// Close stops accepting events and waits for queued ones to be written.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	<-d.done
}
