// Package sim is an in-process vehicle runtime. It honours the same threading
// contract as the real SDK: state, command and battery callbacks run serially
// on one goroutine, frames arrive on another.
package sim

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/einherij/bebop/pkg/arsdk"
)

// StartBehavior scripts the outcome of Controller.Start.
type StartBehavior int

const (
	StartSucceeds StartBehavior = iota
	// StartFails reports Stopped with ErrGeneric after StateDelay.
	StartFails
	// StartHangs never leaves Starting.
	StartHangs
)

type Options struct {
	Start             StartBehavior
	StateDelay        time.Duration
	FrameInterval     time.Duration
	FrameWidth        uint32
	FrameHeight       uint32
	TelemetryInterval time.Duration // zero disables periodic telemetry
	// Reject makes the named controller methods return the given code.
	Reject map[string]arsdk.ErrorCode
	// CreateError makes NewController fail.
	CreateError arsdk.ErrorCode
}

func DefaultOptions() Options {
	return Options{
		Start:             StartSucceeds,
		StateDelay:        20 * time.Millisecond,
		FrameInterval:     33 * time.Millisecond,
		FrameWidth:        64,
		FrameHeight:       48,
		TelemetryInterval: 200 * time.Millisecond,
	}
}

// Runtime hands out simulated controllers.
type Runtime struct {
	mu          sync.Mutex
	opts        Options
	controllers []*Controller
}

func New(opts Options) *Runtime {
	return &Runtime{opts: opts}
}

// SetOptions changes the options used for controllers created afterwards.
func (r *Runtime) SetOptions(opts Options) {
	r.mu.Lock()
	r.opts = opts
	r.mu.Unlock()
}

func (r *Runtime) NewController(addr string) (arsdk.Controller, arsdk.ErrorCode) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.opts.CreateError != arsdk.OK {
		return nil, r.opts.CreateError
	}
	c := newController(addr, r.opts)
	r.controllers = append(r.controllers, c)
	logrus.WithField("addr", addr).Debugf("simulated controller created")
	return c, arsdk.OK
}

// Last returns the most recently created controller, nil if none.
func (r *Runtime) Last() *Controller {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.controllers) == 0 {
		return nil
	}
	return r.controllers[len(r.controllers)-1]
}

// Created returns how many controllers were handed out.
func (r *Runtime) Created() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.controllers)
}

// Controller simulates one vehicle.
type Controller struct {
	addr   string
	opts   Options
	events *arsdk.Dispatcher

	// read by the dispatcher without mu, so a blocking post under mu is safe
	cb atomic.Pointer[arsdk.Callbacks]

	mu         sync.Mutex
	state      arsdk.DeviceState
	closed     bool
	calls      []string
	settings   map[arsdk.SettingID]arsdk.Args
	battery    uint8
	flying     int64
	startTimer *time.Timer

	videoStop     chan struct{}
	videoDone     chan struct{}
	telemetryStop chan struct{}
	telemetryDone chan struct{}
	frameSeq      uint64
}

func newController(addr string, opts Options) *Controller {
	return &Controller{
		addr:     addr,
		opts:     opts,
		events:   arsdk.NewDispatcher(),
		settings: defaultSettings(),
		battery:  87,
	}
}

func (c *Controller) SetCallbacks(cb arsdk.Callbacks) arsdk.ErrorCode {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return arsdk.ErrState
	}
	c.cb.Store(&cb)
	return arsdk.OK
}

func (c *Controller) ClearCallbacks() {
	c.cb.Store(nil)
}

func (c *Controller) Start() arsdk.ErrorCode {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = append(c.calls, "Start")
	if c.closed || c.state != arsdk.StateStopped {
		return arsdk.ErrState
	}
	c.state = arsdk.StateStarting
	c.postStateLocked(arsdk.StateStarting, arsdk.OK)

	switch c.opts.Start {
	case StartSucceeds:
		c.startTimer = time.AfterFunc(c.opts.StateDelay, func() { c.finishStart(arsdk.StateRunning, arsdk.OK) })
	case StartFails:
		c.startTimer = time.AfterFunc(c.opts.StateDelay, func() { c.finishStart(arsdk.StateStopped, arsdk.ErrGeneric) })
	case StartHangs:
	}
	return arsdk.OK
}

func (c *Controller) finishStart(state arsdk.DeviceState, code arsdk.ErrorCode) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || c.state != arsdk.StateStarting {
		return
	}
	c.state = state
	c.postStateLocked(state, code)
	if state == arsdk.StateRunning && c.opts.TelemetryInterval > 0 {
		c.telemetryStop = make(chan struct{})
		c.telemetryDone = make(chan struct{})
		go c.telemetryLoop(c.telemetryStop, c.telemetryDone)
	}
}

func (c *Controller) Stop() arsdk.ErrorCode {
	c.mu.Lock()
	c.calls = append(c.calls, "Stop")
	if c.closed {
		c.mu.Unlock()
		return arsdk.ErrState
	}
	if c.state == arsdk.StateStopped {
		c.mu.Unlock()
		return arsdk.OK
	}
	if c.startTimer != nil {
		c.startTimer.Stop()
	}
	c.state = arsdk.StateStopping
	c.postStateLocked(arsdk.StateStopping, arsdk.OK)
	c.mu.Unlock()

	c.stopLoops()

	c.mu.Lock()
	c.state = arsdk.StateStopped
	c.postStateLocked(arsdk.StateStopped, arsdk.OK)
	c.mu.Unlock()
	return arsdk.OK
}

func (c *Controller) State() (arsdk.DeviceState, arsdk.ErrorCode) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return arsdk.StateStopped, arsdk.ErrState
	}
	return c.state, arsdk.OK
}

func (c *Controller) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	if c.startTimer != nil {
		c.startTimer.Stop()
	}
	c.mu.Unlock()

	c.stopLoops()
	c.events.Close()
}

// Calls returns the names of the controller methods invoked so far.
func (c *Controller) Calls() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.calls...)
}

// Closed reports whether Close was called.
func (c *Controller) Closed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// Inject delivers a command event through the serial callback goroutine.
func (c *Controller) Inject(key arsdk.DictionaryKey, args arsdk.Args) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.postCommandLocked(key, args)
}

// InjectFrame delivers frame on the calling goroutine, standing in for the
// video goroutine.
func (c *Controller) InjectFrame(frame *arsdk.Frame) {
	if fn := c.callbacks().FrameReceived; fn != nil {
		fn(frame)
	}
}

// Flush waits until every event posted so far has been delivered.
func (c *Controller) Flush() {
	done := make(chan struct{})
	if !c.events.PostWait(func() { close(done) }) {
		return
	}
	<-done
}

func (c *Controller) postStateLocked(state arsdk.DeviceState, code arsdk.ErrorCode) {
	c.events.PostWait(func() {
		if fn := c.callbacks().StateChanged; fn != nil {
			fn(state, code)
		}
	})
}

func (c *Controller) postCommandLocked(key arsdk.DictionaryKey, args arsdk.Args) {
	c.events.Post(func() {
		if fn := c.callbacks().CommandReceived; fn != nil {
			fn(key, args)
		}
	})
}

func (c *Controller) postBatteryLocked(percent uint8) {
	c.events.PostWait(func() {
		if fn := c.callbacks().BatteryChanged; fn != nil {
			fn(percent)
		}
	})
}

func (c *Controller) callbacks() arsdk.Callbacks {
	if cb := c.cb.Load(); cb != nil {
		return *cb
	}
	return arsdk.Callbacks{}
}

func (c *Controller) stopLoops() {
	c.mu.Lock()
	videoStop, videoDone := c.videoStop, c.videoDone
	telemetryStop, telemetryDone := c.telemetryStop, c.telemetryDone
	c.videoStop, c.videoDone = nil, nil
	c.telemetryStop, c.telemetryDone = nil, nil
	c.mu.Unlock()

	if videoStop != nil {
		close(videoStop)
		<-videoDone
	}
	if telemetryStop != nil {
		close(telemetryStop)
		<-telemetryDone
	}
}

func (c *Controller) telemetryLoop(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	ticker := time.NewTicker(c.opts.TelemetryInterval)
	defer ticker.Stop()
	var tick float64
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			tick++
			c.mu.Lock()
			flying := c.flying == flyingHovering || c.flying == flyingFlying
			alt := 0.0
			if flying {
				alt = 1.5
			}
			c.postCommandLocked(arsdk.KeyPilotingAttitudeChanged, arsdk.Args{
				arsdk.ArgRoll: float32(0), arsdk.ArgPitch: float32(0), arsdk.ArgYaw: float32(tick / 100),
			})
			c.postCommandLocked(arsdk.KeyPilotingAltitudeChanged, arsdk.Args{arsdk.ArgAltitude: alt})
			c.postCommandLocked(arsdk.KeyPilotingSpeedChanged, arsdk.Args{
				arsdk.ArgSpeedX: float32(0), arsdk.ArgSpeedY: float32(0), arsdk.ArgSpeedZ: float32(0),
			})
			c.postCommandLocked(arsdk.KeyPilotingPositionChanged, arsdk.Args{
				arsdk.ArgLatitude: 48.8789, arsdk.ArgLongitude: 2.3677, arsdk.ArgAltitude: alt,
			})
			if int(tick)%50 == 0 && c.battery > 0 {
				c.battery--
				c.postBatteryLocked(c.battery)
			}
			c.mu.Unlock()
		}
	}
}
