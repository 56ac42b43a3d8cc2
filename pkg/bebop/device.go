// Package bebop drives one vehicle through an arsdk runtime: the connection
// lifecycle, the runtime callbacks, the frame handoff and the command façade.
//
// Three goroutine domains meet here: callers issuing commands and reading
// frames, the runtime's serial callback goroutine, and the runtime's video
// goroutine. No lock is held while calling into the controller.
package bebop

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/einherij/bebop/pkg/arsdk"
	"github.com/einherij/bebop/pkg/discovery"
	"github.com/einherij/bebop/pkg/framesync"
	"github.com/einherij/bebop/pkg/settings"
	"github.com/einherij/bebop/pkg/telemetry"
	"github.com/einherij/bebop/pkg/videodecoder"
)

const (
	DefaultConnectTimeout = 5 * time.Second
	DefaultStopTimeout    = 3 * time.Second
)

// Phase is the lifecycle phase of a Device.
type Phase int32

const (
	PhaseDisconnected Phase = iota
	PhaseConnecting
	PhaseConnected
	PhaseDisconnecting
)

func (p Phase) String() string {
	switch p {
	case PhaseDisconnected:
		return "disconnected"
	case PhaseConnecting:
		return "connecting"
	case PhaseConnected:
		return "connected"
	case PhaseDisconnecting:
		return "disconnecting"
	default:
		return fmt.Sprintf("phase(%d)", int32(p))
	}
}

type Option func(*Device)

func WithConnectTimeout(timeout time.Duration) Option {
	return func(d *Device) { d.connectTimeout = timeout }
}

// WithStopTimeout bounds how long Disconnect waits for the controller to stop.
func WithStopTimeout(timeout time.Duration) Option {
	return func(d *Device) { d.stopTimeout = timeout }
}

func WithDecoderFactory(factory videodecoder.Factory) Option {
	return func(d *Device) { d.newDecoder = factory }
}

func WithResolver(resolver discovery.Resolver) Option {
	return func(d *Device) { d.resolver = resolver }
}

type controllerRef struct {
	ctrl    arsdk.Controller
	attempt string
}

// stateWaiter is fulfilled once by the state-changed callback.
type stateWaiter struct {
	want   func(arsdk.DeviceState) bool
	result chan stateResult
}

type stateResult struct {
	state arsdk.DeviceState
	code  arsdk.ErrorCode
}

func (w *stateWaiter) offer(state arsdk.DeviceState, code arsdk.ErrorCode) {
	if !w.want(state) {
		return
	}
	select {
	case w.result <- stateResult{state: state, code: code}:
	default:
	}
}

// connectAttempt lets Disconnect abort a Connect in flight.
type connectAttempt struct {
	id      string
	cancel  context.CancelCauseFunc
	settled chan struct{}
}

// Device is safe for concurrent use.
type Device struct {
	runtime        arsdk.Runtime
	resolver       discovery.Resolver
	newDecoder     videodecoder.Factory
	connectTimeout time.Duration
	stopTimeout    time.Duration

	phase     atomic.Int32
	state     atomic.Int32
	streaming atomic.Bool
	battery   atomic.Int32

	controller atomic.Pointer[controllerRef]
	waiter     atomic.Pointer[stateWaiter]
	attempt    atomic.Pointer[connectAttempt]
	applied    atomic.Pointer[settings.Config]

	streamMu sync.Mutex
	// videoMu is held for reading by in-flight decodes.
	videoMu sync.RWMutex
	decoder videodecoder.Decoder

	frames    *framesync.Channel
	telemetry *telemetry.Registry
}

func New(rt arsdk.Runtime, opts ...Option) *Device {
	d := &Device{
		runtime:        rt,
		resolver:       discovery.NetResolver{},
		newDecoder:     videodecoder.NewRaw,
		connectTimeout: DefaultConnectTimeout,
		stopTimeout:    DefaultStopTimeout,
		frames:         framesync.New(),
		telemetry:      telemetry.NewRegistry(),
	}
	for _, opt := range opts {
		opt(d)
	}
	d.battery.Store(-1)
	return d
}

// Connect brings the controller to Running. It fails with ErrInvalidState
// unless the device is Disconnected, and with a *ConnectionError when the
// start sequence fails, times out, is cancelled or is aborted by Disconnect.
// Any failure leaves the device Disconnected and ready for another attempt.
func (d *Device) Connect(ctx context.Context, target discovery.Device) error {
	ctx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)

	a := &connectAttempt{id: uuid.NewString(), cancel: cancel, settled: make(chan struct{})}
	if !d.attempt.CompareAndSwap(nil, a) {
		return fmt.Errorf("%w: connect while %s", ErrInvalidState, d.Phase())
	}
	if !d.phase.CompareAndSwap(int32(PhaseDisconnected), int32(PhaseConnecting)) {
		d.attempt.Store(nil)
		return fmt.Errorf("%w: connect while %s", ErrInvalidState, d.Phase())
	}
	defer func() {
		d.attempt.Store(nil)
		close(a.settled)
	}()

	log := logrus.WithFields(logrus.Fields{"attempt": a.id, "device": target.Name})
	log.Infof("connecting")

	err := d.connect(ctx, a, target, log)
	if err == nil && context.Cause(ctx) != nil {
		// Running and the abort raced; the abort wins.
		err = &ConnectionError{Stage: "start", Err: context.Cause(ctx)}
	}
	if err != nil {
		log.WithError(err).Error("connect failed")
		d.teardown(log)
		d.phase.Store(int32(PhaseDisconnected))
		return err
	}
	d.phase.Store(int32(PhaseConnected))
	// From here a Stopped report either lands in the state checked below or
	// finds no waiter and triggers the lost-connection path.
	d.waiter.Store(nil)
	if arsdk.DeviceState(d.state.Load()) == arsdk.StateStopped {
		log.Error("controller stopped while connecting")
		d.Disconnect()
		return &ConnectionError{Stage: "start", Err: errStoppedEarly}
	}
	log.Infof("connected")

	if err := d.RequestAllSettings(); err != nil {
		log.WithError(err).Error("initial settings request failed")
		d.Disconnect()
		return &ConnectionError{Stage: "settings", Err: err}
	}
	if err := d.RequestAllStates(); err != nil {
		log.WithError(err).Warn("initial states request failed")
	}
	return nil
}

func (d *Device) connect(ctx context.Context, a *connectAttempt, target discovery.Device, log *logrus.Entry) error {
	d.state.Store(int32(arsdk.StateStopped))

	addr, err := d.resolver.Resolve(ctx, target)
	if err != nil {
		return &ConnectionError{Stage: "resolve", Err: abortCause(ctx, err)}
	}
	log = log.WithField("addr", addr)

	ctrl, code := d.runtime.NewController(addr)
	if code != arsdk.OK {
		return &ConnectionError{Stage: "create", Err: &CommandError{Op: "NewController", Code: code}}
	}
	if ctrl == nil {
		return &ConnectionError{Stage: "create", Err: &InternalError{Op: "NewController", Msg: "runtime returned no controller"}}
	}
	d.controller.Store(&controllerRef{ctrl: ctrl, attempt: a.id})

	w := &stateWaiter{
		want:   func(s arsdk.DeviceState) bool { return s == arsdk.StateRunning || s == arsdk.StateStopped },
		result: make(chan stateResult, 1),
	}
	// Connect removes w once the phase is Connected; teardown on failure.
	d.waiter.Store(w)

	code = ctrl.SetCallbacks(arsdk.Callbacks{
		StateChanged:    d.onStateChanged,
		CommandReceived: d.onCommandReceived,
		BatteryChanged:  d.onBatteryChanged,
		FrameReceived:   d.onFrameReceived,
	})
	if code != arsdk.OK {
		return &ConnectionError{Stage: "callbacks", Err: &CommandError{Op: "SetCallbacks", Code: code}}
	}
	if code := ctrl.Start(); code != arsdk.OK {
		return &ConnectionError{Stage: "start", Err: &CommandError{Op: "Start", Code: code}}
	}

	timer := time.NewTimer(d.connectTimeout)
	defer timer.Stop()
	select {
	case res := <-w.result:
		if res.state != arsdk.StateRunning || res.code != arsdk.OK {
			return &ConnectionError{Stage: "start", Err: &CommandError{Op: "Start", Code: res.code, Msg: "controller reported " + res.state.String()}}
		}
		return nil
	case <-timer.C:
		return &ConnectionError{Stage: "start", Err: fmt.Errorf("%w after %s", ErrConnectTimeout, d.connectTimeout)}
	case <-ctx.Done():
		return &ConnectionError{Stage: "start", Err: context.Cause(ctx)}
	}
}

func abortCause(ctx context.Context, err error) error {
	if cause := context.Cause(ctx); cause != nil {
		return cause
	}
	return err
}

// Disconnect stops streaming, stops and releases the controller and returns
// the device to Disconnected. It never fails; problems are logged. Called
// during Connect it aborts that attempt and waits for it to unwind.
func (d *Device) Disconnect() {
	for {
		switch Phase(d.phase.Load()) {
		case PhaseDisconnected, PhaseDisconnecting:
			return
		case PhaseConnecting:
			a := d.attempt.Load()
			if a == nil {
				runtime.Gosched()
				continue
			}
			a.cancel(errAborted)
			select {
			case <-a.settled:
				// the attempt may have reached Connected before seeing the abort
				continue
			case <-time.After(d.stopTimeout + d.connectTimeout):
				logrus.WithField("attempt", a.id).Error("connect attempt did not unwind")
				return
			}
		case PhaseConnected:
			if !d.phase.CompareAndSwap(int32(PhaseConnected), int32(PhaseDisconnecting)) {
				continue
			}
			log := logrus.NewEntry(logrus.StandardLogger())
			if ref := d.controller.Load(); ref != nil {
				log = log.WithField("attempt", ref.attempt)
			}
			d.teardown(log)
			d.phase.Store(int32(PhaseDisconnected))
			log.Infof("disconnected")
			return
		}
	}
}

// teardown releases everything a connect attempt acquired. Safe to call on
// partially built state.
func (d *Device) teardown(log *logrus.Entry) {
	d.StopStreaming()

	if ref := d.controller.Load(); ref != nil && ref.ctrl != nil {
		d.stopController(ref.ctrl, log)
		ref.ctrl.ClearCallbacks()
		ref.ctrl.Close()
	}
	d.controller.Store(nil)
	d.waiter.Store(nil)
	d.applied.Store(nil)
	d.battery.Store(-1)
	d.state.Store(int32(arsdk.StateStopped))
}

func (d *Device) stopController(ctrl arsdk.Controller, log *logrus.Entry) {
	w := &stateWaiter{
		want:   func(s arsdk.DeviceState) bool { return s == arsdk.StateStopped },
		result: make(chan stateResult, 1),
	}
	d.waiter.Store(w)
	defer d.waiter.CompareAndSwap(w, nil)

	if arsdk.DeviceState(d.state.Load()) == arsdk.StateStopped {
		return
	}
	if code := ctrl.Stop(); code != arsdk.OK {
		log.WithField("code", code).Warn("controller stop failed")
		return
	}
	timer := time.NewTimer(d.stopTimeout)
	defer timer.Stop()
	select {
	case <-w.result:
	case <-timer.C:
		log.Warnf("controller did not report stopped within %s", d.stopTimeout)
	}
}

// StartStreaming enables the video stream and opens the frame channel.
// Calling it while already streaming does nothing.
func (d *Device) StartStreaming() error {
	d.streamMu.Lock()
	defer d.streamMu.Unlock()

	if !d.IsConnected() {
		return fmt.Errorf("%w: start streaming while %s", ErrInvalidState, d.Phase())
	}
	if d.streaming.Load() {
		return nil
	}
	ref := d.controller.Load()
	if ref == nil || ref.ctrl == nil {
		return &InternalError{Op: "StartStreaming", Msg: "no controller while connected"}
	}

	dec, err := d.newDecoder()
	if err != nil {
		return fmt.Errorf("failed to create video decoder: %w", err)
	}
	d.videoMu.Lock()
	d.decoder = dec
	d.videoMu.Unlock()
	d.frames.Open()
	d.streaming.Store(true)

	if code := ref.ctrl.EnableVideoStream(true); code != arsdk.OK {
		d.stopStreamingLocked(false)
		return &CommandError{Op: "EnableVideoStream", Code: code}
	}
	logrus.Infof("video streaming started")
	return nil
}

// StopStreaming never fails and is safe when streaming never started.
// Waiters in GetFrontCameraFrame wake up and get false.
func (d *Device) StopStreaming() {
	d.streamMu.Lock()
	defer d.streamMu.Unlock()
	d.stopStreamingLocked(true)
}

func (d *Device) stopStreamingLocked(disableVideo bool) {
	if !d.streaming.Swap(false) {
		return
	}
	d.frames.Close()

	if ref := d.controller.Load(); disableVideo && ref != nil && ref.ctrl != nil {
		if code := ref.ctrl.EnableVideoStream(false); code != arsdk.OK {
			logrus.WithField("code", code).Warn("failed to disable video stream")
		}
	}

	d.videoMu.Lock()
	dec := d.decoder
	d.decoder = nil
	d.videoMu.Unlock()
	if dec != nil {
		if err := dec.Close(); err != nil {
			logrus.WithError(err).Warn("failed to close video decoder")
		}
	}
	logrus.Infof("video streaming stopped")
}

// PushFrame hands an already decoded frame to the consumer. It reports false
// when streaming is off and the frame was dropped.
func (d *Device) PushFrame(data []byte, width, height uint32) bool {
	if !d.streaming.Load() {
		return false
	}
	return d.frames.Push(data, width, height)
}

// GetFrontCameraFrame waits for the next frame and appends it to dst[:0].
// It returns false at once when not connected or not streaming, and false
// when streaming stops or ctx ends while waiting.
func (d *Device) GetFrontCameraFrame(ctx context.Context, dst []byte) (out []byte, width, height uint32, ok bool) {
	if !d.IsConnected() || !d.streaming.Load() {
		return dst, 0, 0, false
	}
	return d.frames.Get(ctx, dst)
}

func (d *Device) GetFrontCameraFrameWidth() uint32 {
	return d.frames.Width()
}

func (d *Device) GetFrontCameraFrameHeight() uint32 {
	return d.frames.Height()
}

func (d *Device) Phase() Phase {
	return Phase(d.phase.Load())
}

func (d *Device) IsConnected() bool {
	return d.Phase() == PhaseConnected
}

func (d *Device) IsStreamingStarted() bool {
	return d.streaming.Load()
}

// State is the last state reported by the controller.
func (d *Device) State() arsdk.DeviceState {
	return arsdk.DeviceState(d.state.Load())
}

// BatteryPercent is false until the vehicle reported its battery.
func (d *Device) BatteryPercent() (uint8, bool) {
	p := d.battery.Load()
	if p < 0 {
		return 0, false
	}
	return uint8(p), true
}

func (d *Device) Telemetry() *telemetry.Registry {
	return d.telemetry
}

// Status is a point-in-time view of the device.
type Status struct {
	Phase     string                       `json:"phase" msgpack:"phase"`
	State     string                       `json:"state" msgpack:"state"`
	Streaming bool                         `json:"streaming" msgpack:"streaming"`
	Battery   int                          `json:"battery" msgpack:"battery"`
	Frames    framesync.Stats              `json:"frames" msgpack:"frames"`
	Telemetry map[string]telemetry.Reading `json:"telemetry" msgpack:"telemetry"`
	At        time.Time                    `json:"at" msgpack:"at"`
}

func (d *Device) Status() Status {
	battery := -1
	if p, ok := d.BatteryPercent(); ok {
		battery = int(p)
	}
	return Status{
		Phase:     d.Phase().String(),
		State:     d.State().String(),
		Streaming: d.IsStreamingStarted(),
		Battery:   battery,
		Frames:    d.frames.Stats(),
		Telemetry: d.telemetry.Snapshot(),
		At:        time.Now(),
	}
}
