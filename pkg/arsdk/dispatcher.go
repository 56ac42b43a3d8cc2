package arsdk

import (
	"sync"

	"github.com/sirupsen/logrus"
)

const dispatchQueueSize = 256

// Dispatcher runs posted callbacks one at a time on a single goroutine, in
// post order. Runtimes use it to deliver StateChanged, CommandReceived and
// BatteryChanged serially.
type Dispatcher struct {
	mu        sync.RWMutex
	queue     chan func()
	closed    bool
	closing   chan struct{}
	closeOnce sync.Once
	done      chan struct{}
}

func NewDispatcher() *Dispatcher {
	d := &Dispatcher{
		queue:   make(chan func(), dispatchQueueSize),
		closing: make(chan struct{}),
		done:    make(chan struct{}),
	}
	go d.loop()
	return d
}

// Post enqueues fn without blocking. A full queue drops fn, which is only
// acceptable for events the next report supersedes, such as telemetry.
// It returns false when fn was dropped or the dispatcher is closed.
func (d *Dispatcher) Post(fn func()) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return false
	}
	select {
	case d.queue <- fn:
		return true
	default:
		logrus.Warnf("dispatcher queue full, event dropped")
		return false
	}
}

// PostWait enqueues fn, waiting for room when the queue is full. It is used
// for events that must not be lost, state changes in particular. It must not
// be called from a dispatched callback. Returns false once Close has been
// called.
func (d *Dispatcher) PostWait(fn func()) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return false
	}
	select {
	case d.queue <- fn:
		return true
	case <-d.closing:
		return false
	}
}

// Close stops accepting callbacks, lets the queued ones run and waits for the
// goroutine to exit.
func (d *Dispatcher) Close() {
	d.closeOnce.Do(func() { close(d.closing) })
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()
	<-d.done
}

func (d *Dispatcher) loop() {
	defer close(d.done)
	for fn := range d.queue {
		fn()
	}
}
