// Package framesync hands decoded frames from the video goroutine to a
// polling consumer through a single overwrite-on-publish slot.
package framesync

import (
	"context"
	"sync"
	"sync/atomic"
)

// Stats are lifetime counters of a Channel.
type Stats struct {
	Pushed    uint64 `json:"pushed" msgpack:"pushed"`
	Delivered uint64 `json:"delivered" msgpack:"delivered"`
	// Dropped counts frames overwritten before anyone read them.
	Dropped uint64 `json:"dropped" msgpack:"dropped"`
}

// Channel is a last-write-wins mailbox. The buffer, its dimensions and the
// availability flag always change together under mu.
type Channel struct {
	mu        sync.Mutex
	cond      *sync.Cond
	buf       []byte
	width     uint32
	height    uint32
	available bool
	open      bool

	lastWidth  atomic.Uint32
	lastHeight atomic.Uint32

	pushed    uint64
	delivered uint64
	dropped   uint64
}

// New returns a closed channel; Push and Get fail until Open.
func New() *Channel {
	c := &Channel{}
	c.cond = sync.NewCond(&c.mu)
	return c
}

// Open starts accepting frames and clears any stale one.
func (c *Channel) Open() {
	c.mu.Lock()
	c.open = true
	c.available = false
	c.mu.Unlock()
}

// Close rejects further frames and wakes every waiter with ok=false.
// Idempotent.
func (c *Channel) Close() {
	c.mu.Lock()
	c.open = false
	c.available = false
	c.cond.Broadcast()
	c.mu.Unlock()
}

func (c *Channel) IsOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.open
}

// Push copies data into the slot and wakes one waiter. It reports false when
// the channel is closed; the frame is dropped in that case.
func (c *Channel) Push(data []byte, width, height uint32) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.open {
		return false
	}
	if c.available {
		c.dropped++
	}
	c.buf = append(c.buf[:0], data...)
	c.width, c.height = width, height
	c.available = true
	c.pushed++
	c.lastWidth.Store(width)
	c.lastHeight.Store(height)
	c.cond.Signal()
	return true
}

// Get blocks until a frame is available, the channel closes, or ctx is done.
// The frame is appended to dst[:0] so callers can reuse their buffer; ok is
// false when nothing was copied. Each pushed frame is returned at most once.
func (c *Channel) Get(ctx context.Context, dst []byte) (out []byte, width, height uint32, ok bool) {
	stop := context.AfterFunc(ctx, func() {
		c.mu.Lock()
		c.cond.Broadcast()
		c.mu.Unlock()
	})
	defer stop()

	c.mu.Lock()
	defer c.mu.Unlock()
	for c.open && !c.available && ctx.Err() == nil {
		c.cond.Wait()
	}
	if !c.open || !c.available {
		return dst, 0, 0, false
	}
	out = append(dst[:0], c.buf...)
	width, height = c.width, c.height
	c.available = false
	c.delivered++
	return out, width, height, true
}

// Width of the last pushed frame, zero before the first one.
func (c *Channel) Width() uint32 {
	return c.lastWidth.Load()
}

func (c *Channel) Height() uint32 {
	return c.lastHeight.Load()
}

func (c *Channel) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Stats{Pushed: c.pushed, Delivered: c.delivered, Dropped: c.dropped}
}
