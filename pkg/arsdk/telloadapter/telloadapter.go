// Package telloadapter runs the bebop layer against a DJI Tello through
// github.com/SMerrony/tello. Flight data is polled and translated into
// dictionary events; the raw H.264 stream is forwarded as frames. Commands the
// Tello has no equivalent for return arsdk.ErrNotSupported.
package telloadapter

import (
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/SMerrony/tello"
	"github.com/sirupsen/logrus"

	"github.com/einherij/bebop/pkg/arsdk"
	"github.com/einherij/bebop/pkg/tellointer"
)

const (
	DefaultPollInterval = 100 * time.Millisecond
	// spsInterval is how often the Tello is asked to resend SPS/PPS so a
	// decoder joining late can start.
	spsInterval = 500 * time.Millisecond
	stickScale  = math.MaxInt16
)

// flying states reported on piloting.flying_state
const (
	flyingLanded   int64 = 0
	flyingHovering int64 = 2
	flyingFlying   int64 = 3
)

// alert states reported on piloting.alert_state
const (
	alertNone            int64 = 0
	alertCriticalBattery int64 = 3
	alertLowBattery      int64 = 4
)

// Runtime hands out Tello controllers. NewDrone is called once per controller.
type Runtime struct {
	NewDrone     func() tellointer.Drone
	PollInterval time.Duration
}

func New(newDrone func() tellointer.Drone) *Runtime {
	return &Runtime{NewDrone: newDrone, PollInterval: DefaultPollInterval}
}

// NewController ignores addr: the Tello library always dials the vehicle's
// default access point address.
func (r *Runtime) NewController(addr string) (arsdk.Controller, arsdk.ErrorCode) {
	if r.NewDrone == nil {
		return nil, arsdk.ErrInit
	}
	drone := r.NewDrone()
	if drone == nil {
		return nil, arsdk.ErrAlloc
	}
	poll := r.PollInterval
	if poll <= 0 {
		poll = DefaultPollInterval
	}
	logrus.WithField("addr", addr).Debugf("tello controller created")
	return &Controller{drone: drone, poll: poll, events: arsdk.NewDispatcher()}, arsdk.OK
}

type Controller struct {
	drone  tellointer.Drone
	poll   time.Duration
	events *arsdk.Dispatcher

	// read by the dispatcher without mu, so a blocking post under mu is safe
	cb atomic.Pointer[arsdk.Callbacks]

	mu     sync.Mutex
	state  arsdk.DeviceState
	closed bool

	pollStop  chan struct{}
	pollDone  chan struct{}
	videoStop chan struct{}
	videoDone chan struct{}

	// last published values, touched only by the poll goroutine and AllStates
	lastFlying  int64
	lastAlert   int64
	lastBattery int8
	lastHot     bool
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

func (c *Controller) callbacks() arsdk.Callbacks {
	if cb := c.cb.Load(); cb != nil {
		return *cb
	}
	return arsdk.Callbacks{}
}

func (c *Controller) postState(state arsdk.DeviceState, code arsdk.ErrorCode) {
	c.events.PostWait(func() {
		if fn := c.callbacks().StateChanged; fn != nil {
			fn(state, code)
		}
	})
}

func (c *Controller) postCommand(key arsdk.DictionaryKey, args arsdk.Args) {
	c.events.Post(func() {
		if fn := c.callbacks().CommandReceived; fn != nil {
			fn(key, args)
		}
	})
}

func (c *Controller) postBattery(percent uint8) {
	c.events.PostWait(func() {
		if fn := c.callbacks().BatteryChanged; fn != nil {
			fn(percent)
		}
	})
}

// Start connects asynchronously; the outcome arrives through StateChanged.
func (c *Controller) Start() arsdk.ErrorCode {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || c.state != arsdk.StateStopped {
		return arsdk.ErrState
	}
	c.state = arsdk.StateStarting
	c.postState(arsdk.StateStarting, arsdk.OK)
	go c.connect()
	return arsdk.OK
}

func (c *Controller) connect() {
	err := c.drone.ControlConnectDefault()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || c.state != arsdk.StateStarting {
		if err == nil {
			c.drone.ControlDisconnect()
		}
		return
	}
	if err != nil {
		logrus.WithError(err).Error("tello control connection failed")
		c.state = arsdk.StateStopped
		c.postState(arsdk.StateStopped, arsdk.ErrInit)
		return
	}
	c.state = arsdk.StateRunning
	c.lastFlying, c.lastAlert, c.lastBattery, c.lastHot = -1, -1, -1, false
	c.pollStop = make(chan struct{})
	c.pollDone = make(chan struct{})
	go c.pollLoop(c.pollStop, c.pollDone)
	c.postState(arsdk.StateRunning, arsdk.OK)
}

func (c *Controller) Stop() arsdk.ErrorCode {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return arsdk.ErrState
	}
	prev := c.state
	if prev == arsdk.StateStopped {
		c.mu.Unlock()
		return arsdk.OK
	}
	c.state = arsdk.StateStopping
	c.postState(arsdk.StateStopping, arsdk.OK)
	c.mu.Unlock()

	c.stopLoops()
	if prev == arsdk.StateRunning {
		c.drone.ControlDisconnect()
	}

	c.mu.Lock()
	c.state = arsdk.StateStopped
	c.postState(arsdk.StateStopped, arsdk.OK)
	c.mu.Unlock()
	return arsdk.OK
}

func (c *Controller) stopLoops() {
	c.mu.Lock()
	pollStop, pollDone := c.pollStop, c.pollDone
	c.pollStop, c.pollDone = nil, nil
	c.mu.Unlock()
	if pollStop != nil {
		close(pollStop)
		<-pollDone
	}
	c.stopVideo()
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
	connected := c.state == arsdk.StateRunning
	c.state = arsdk.StateStopped
	c.mu.Unlock()

	c.stopLoops()
	if connected {
		c.drone.ControlDisconnect()
	}
	c.events.Close()
}

// running reports whether commands may be sent to the drone.
func (c *Controller) running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return !c.closed && c.state == arsdk.StateRunning
}

func (c *Controller) Takeoff() arsdk.ErrorCode {
	if !c.running() {
		return arsdk.ErrState
	}
	c.drone.TakeOff()
	return arsdk.OK
}

func (c *Controller) Landing() arsdk.ErrorCode {
	if !c.running() {
		return arsdk.ErrState
	}
	c.drone.Land()
	return arsdk.OK
}

func (c *Controller) Emergency() arsdk.ErrorCode {
	return arsdk.ErrNotSupported
}

func (c *Controller) FlatTrim() arsdk.ErrorCode {
	return arsdk.ErrNotSupported
}

func (c *Controller) NavigateHome(bool) arsdk.ErrorCode {
	return arsdk.ErrNotSupported
}

var flips = map[arsdk.FlipDirection]tello.FlipType{
	arsdk.FlipFront: tello.FlipForward,
	arsdk.FlipBack:  tello.FlipBackward,
	arsdk.FlipRight: tello.FlipRight,
	arsdk.FlipLeft:  tello.FlipLeft,
}

func (c *Controller) Flip(direction arsdk.FlipDirection) arsdk.ErrorCode {
	if !c.running() {
		return arsdk.ErrState
	}
	flip, ok := flips[direction]
	if !ok {
		return arsdk.ErrBadParameter
	}
	c.drone.Flip(flip)
	return arsdk.OK
}

// PCMD maps the normalized inputs onto the stick axes: right stick roll and
// pitch, left stick yaw and throttle.
func (c *Controller) PCMD(flag bool, roll, pitch, yawSpeed, gazSpeed float64) arsdk.ErrorCode {
	if !c.running() {
		return arsdk.ErrState
	}
	for _, v := range []float64{roll, pitch, yawSpeed, gazSpeed} {
		if math.IsNaN(v) || v < -1 || v > 1 {
			return arsdk.ErrBadParameter
		}
	}
	if !flag {
		roll, pitch = 0, 0
	}
	if roll == 0 && pitch == 0 && yawSpeed == 0 && gazSpeed == 0 {
		c.drone.Hover()
		return arsdk.OK
	}
	c.drone.UpdateSticks(tello.StickMessage{
		Rx: stick(roll),
		Ry: stick(pitch),
		Lx: stick(yawSpeed),
		Ly: stick(gazSpeed),
	})
	return arsdk.OK
}

func stick(v float64) int16 {
	return int16(math.Round(v * stickScale))
}

func (c *Controller) CameraOrientation(float64, float64) arsdk.ErrorCode {
	return arsdk.ErrNotSupported
}

func (c *Controller) EnableVideoStream(enable bool) arsdk.ErrorCode {
	if !c.running() {
		return arsdk.ErrState
	}
	if !enable {
		c.stopVideo()
		c.postCommand(arsdk.KeyMediaStreamingVideoEnableChanged, arsdk.Args{arsdk.ArgEnabled: false})
		return arsdk.OK
	}

	c.mu.Lock()
	if c.videoStop != nil {
		c.mu.Unlock()
		return arsdk.OK
	}
	c.mu.Unlock()

	stream, err := c.drone.VideoConnectDefault()
	if err != nil {
		logrus.WithError(err).Error("tello video connection failed")
		return arsdk.ErrNoVideo
	}
	c.drone.SetVideoWide()

	c.mu.Lock()
	c.videoStop = make(chan struct{})
	c.videoDone = make(chan struct{})
	go c.videoLoop(stream, c.videoStop, c.videoDone)
	c.mu.Unlock()
	c.postCommand(arsdk.KeyMediaStreamingVideoEnableChanged, arsdk.Args{arsdk.ArgEnabled: true})
	return arsdk.OK
}

func (c *Controller) stopVideo() {
	c.mu.Lock()
	stop, done := c.videoStop, c.videoDone
	c.videoStop, c.videoDone = nil, nil
	c.mu.Unlock()
	if stop == nil {
		return
	}
	close(stop)
	<-done
	c.drone.VideoDisconnect()
}

func (c *Controller) videoLoop(stream <-chan []byte, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	sps := time.NewTicker(spsInterval)
	defer sps.Stop()
	c.drone.GetVideoSpsPps()

	var seq uint64
	for {
		select {
		case <-stop:
			return
		case <-sps.C:
			c.drone.GetVideoSpsPps()
		case block, ok := <-stream:
			if !ok {
				logrus.Warnf("tello video stream closed")
				return
			}
			seq++
			frame := &arsdk.Frame{
				Seq:      seq,
				Codec:    arsdk.CodecH264,
				IsIFrame: isKeyFrame(block),
				Data:     block,
			}
			if fn := c.callbacks().FrameReceived; fn != nil {
				fn(frame)
			}
		}
	}
}

// isKeyFrame reports whether an Annex B block carries an IDR slice or an SPS.
func isKeyFrame(data []byte) bool {
	for i := 0; i+3 < len(data); i++ {
		if data[i] != 0 || data[i+1] != 0 {
			continue
		}
		var nal byte
		switch {
		case data[i+2] == 1:
			nal = data[i+3]
		case data[i+2] == 0 && i+4 < len(data) && data[i+3] == 1:
			nal = data[i+4]
		default:
			continue
		}
		if t := nal & 0x1f; t == 5 || t == 7 {
			return true
		}
	}
	return false
}

func (c *Controller) AllSettings() arsdk.ErrorCode {
	if !c.running() {
		return arsdk.ErrState
	}
	fd := c.drone.GetFlightData()
	c.postCommand(arsdk.KeyCommonProductNameChanged, arsdk.Args{arsdk.ArgName: "Tello"})
	c.postCommand(arsdk.KeyCommonProductVersionChanged, arsdk.Args{arsdk.ArgSoftware: fd.Version, arsdk.ArgHardware: "tello"})
	c.postCommand(arsdk.KeySettingsMaxAltitudeChanged, arsdk.Args{
		arsdk.ArgCurrent: float64(fd.MaxHeight), arsdk.ArgMin: 0.0, arsdk.ArgMax: 30.0,
	})
	c.postCommand(arsdk.KeyCommonAllSettingsChanged, arsdk.Args{})
	return arsdk.OK
}

func (c *Controller) AllStates() arsdk.ErrorCode {
	if !c.running() {
		return arsdk.ErrState
	}
	c.mu.Lock()
	c.lastFlying, c.lastAlert, c.lastBattery, c.lastHot = -1, -1, -1, false
	c.mu.Unlock()
	c.publish(c.drone.GetFlightData())
	c.postCommand(arsdk.KeyCommonAllStatesChanged, arsdk.Args{})
	return arsdk.OK
}

func (c *Controller) ResetSettings() arsdk.ErrorCode {
	return arsdk.ErrNotSupported
}

func (c *Controller) SendSetting(arsdk.SettingID, arsdk.Args) arsdk.ErrorCode {
	return arsdk.ErrNotSupported
}

func (c *Controller) pollLoop(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	ticker := time.NewTicker(c.poll)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			c.publish(c.drone.GetFlightData())
		}
	}
}

// publish turns one flight data sample into events. Continuous values are sent
// every time, discrete states only when they change.
func (c *Controller) publish(fd tello.FlightData) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.postCommand(arsdk.KeyPilotingAltitudeChanged, arsdk.Args{arsdk.ArgAltitude: float64(fd.Height) / 10})
	c.postCommand(arsdk.KeyPilotingSpeedChanged, arsdk.Args{
		arsdk.ArgSpeedX: float64(fd.NorthSpeed) / 10,
		arsdk.ArgSpeedY: float64(fd.EastSpeed) / 10,
		arsdk.ArgSpeedZ: float64(fd.VerticalSpeed) / 10,
	})
	c.postCommand(arsdk.KeyPilotingAttitudeChanged, arsdk.Args{
		arsdk.ArgRoll: 0.0, arsdk.ArgPitch: 0.0, arsdk.ArgYaw: float64(fd.IMU.Yaw) * math.Pi / 180,
	})
	c.postCommand(arsdk.KeyCommonWifiSignalChanged, arsdk.Args{arsdk.ArgRSSI: int16(fd.WifiStrength)})

	if fd.BatteryPercentage != c.lastBattery {
		c.lastBattery = fd.BatteryPercentage
		c.postBattery(uint8(fd.BatteryPercentage))
		c.postCommand(arsdk.KeyCommonBatteryStateChanged, arsdk.Args{arsdk.ArgPercent: uint8(fd.BatteryPercentage)})
	}
	if flying := flyingState(fd); flying != c.lastFlying {
		c.lastFlying = flying
		c.postCommand(arsdk.KeyPilotingFlyingStateChanged, arsdk.Args{arsdk.ArgState: flying})
	}
	if alert := alertState(fd); alert != c.lastAlert {
		c.lastAlert = alert
		c.postCommand(arsdk.KeyPilotingAlertStateChanged, arsdk.Args{arsdk.ArgState: alert})
	}
	if fd.OverTemp != c.lastHot {
		c.lastHot = fd.OverTemp
		var hot int64
		if fd.OverTemp {
			hot = 1
		}
		c.postCommand(arsdk.KeyCommonOverHeatChanged, arsdk.Args{arsdk.ArgState: hot})
	}
}

func flyingState(fd tello.FlightData) int64 {
	switch {
	case fd.OnGround || !fd.Flying:
		return flyingLanded
	case fd.DroneHover:
		return flyingHovering
	default:
		return flyingFlying
	}
}

func alertState(fd tello.FlightData) int64 {
	switch {
	case fd.BatteryCritical:
		return alertCriticalBattery
	case fd.BatteryLow:
		return alertLowBattery
	default:
		return alertNone
	}
}
