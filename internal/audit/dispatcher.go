package audit

import (
	"log"
	"sync"
)

type Event struct {
	RestaurantID string
	UserID       *string
	Action       string
	Entity       string
	EntityID     *string
	Metadata     any
}

// Sink accepts audit events without blocking the caller.
type Sink interface {
	Dispatch(ev Event)
}

type Dispatcher struct {
	logger *Logger
	queue  chan Event
	done   chan struct{}

	mu     sync.RWMutex
	closed bool
}

func NewDispatcher(logger *Logger) *Dispatcher {
	d := &Dispatcher{
		logger: logger,
		queue:  make(chan Event, 100),
		done:   make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)
	for ev := range d.queue {
		if err := d.logger.Log(ev); err != nil {
			log.Println("audit error:", err)
		}
	}
}

func (d *Dispatcher) Dispatch(ev Event) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		log.Printf("audit dispatcher closed, dropping %s", ev.Action)
		return
	}

	select {
	case d.queue <- ev:
	default:
		// never block a request on the audit trail
		log.Println("audit queue full, dropping event")
	}
}

// Close waits for the queued events to be written. Later events are dropped.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	close(d.queue)
	d.mu.Unlock()

	<-d.done
}

var _ Sink = (*Dispatcher)(nil)
