package sim

import (
	"math"
	"time"

	"github.com/einherij/bebop/pkg/arsdk"
)

// flying states as reported by piloting.flying_state
const (
	flyingLanded int64 = iota
	flyingTakingOff
	flyingHovering
	flyingFlying
	flyingLanding
	flyingEmergency
)

const (
	maxTiltDegrees = 83
	maxPanDegrees  = 35
)

func defaultSettings() map[arsdk.SettingID]arsdk.Args {
	return map[arsdk.SettingID]arsdk.Args{
		arsdk.SettingMaxAltitude:          {arsdk.ArgCurrent: 150.0, arsdk.ArgMin: 2.6, arsdk.ArgMax: 150.0},
		arsdk.SettingMaxTilt:              {arsdk.ArgCurrent: 20.0, arsdk.ArgMin: 5.0, arsdk.ArgMax: 35.0},
		arsdk.SettingMaxDistance:          {arsdk.ArgCurrent: 2000.0, arsdk.ArgMin: 10.0, arsdk.ArgMax: 2000.0},
		arsdk.SettingNoFlyOverMaxDistance: {arsdk.ArgEnabled: false},
		arsdk.SettingAbsolutControl:       {arsdk.ArgEnabled: false},
		arsdk.SettingMaxVerticalSpeed:     {arsdk.ArgCurrent: 1.0, arsdk.ArgMin: 0.5, arsdk.ArgMax: 6.0},
		arsdk.SettingMaxRotationSpeed:     {arsdk.ArgCurrent: 100.0, arsdk.ArgMin: 10.0, arsdk.ArgMax: 360.0},
		arsdk.SettingHullProtection:       {arsdk.ArgEnabled: false},
		arsdk.SettingOutdoor:              {arsdk.ArgEnabled: true},
		arsdk.SettingVideoStabilization:   {arsdk.ArgMode: "roll_pitch"},
		arsdk.SettingVideoFramerate:       {arsdk.ArgFramerate: "30fps"},
		arsdk.SettingAutoWhiteBalance:     {arsdk.ArgType: "auto"},
		arsdk.SettingExposition:           {arsdk.ArgCurrent: 0.0, arsdk.ArgMin: -1.5, arsdk.ArgMax: 1.5},
		arsdk.SettingSaturation:           {arsdk.ArgCurrent: 0.0, arsdk.ArgMin: -100.0, arsdk.ArgMax: 100.0},
		arsdk.SettingWifiSelection:        {arsdk.ArgType: "auto", arsdk.ArgBand: "2_4ghz", arsdk.ArgChannel: uint8(6)},
	}
}

// command records the call and reports whether the vehicle accepts it.
func (c *Controller) command(name string) arsdk.ErrorCode {
	c.calls = append(c.calls, name)
	if code, ok := c.opts.Reject[name]; ok {
		return code
	}
	if c.closed || c.state != arsdk.StateRunning {
		return arsdk.ErrState
	}
	return arsdk.OK
}

func (c *Controller) setFlyingLocked(states ...int64) {
	for _, s := range states {
		c.flying = s
		c.postCommandLocked(arsdk.KeyPilotingFlyingStateChanged, arsdk.Args{arsdk.ArgState: s})
	}
}

func (c *Controller) Takeoff() arsdk.ErrorCode {
	c.mu.Lock()
	defer c.mu.Unlock()
	if code := c.command("Takeoff"); code != arsdk.OK {
		return code
	}
	c.setFlyingLocked(flyingTakingOff, flyingHovering)
	return arsdk.OK
}

func (c *Controller) Landing() arsdk.ErrorCode {
	c.mu.Lock()
	defer c.mu.Unlock()
	if code := c.command("Landing"); code != arsdk.OK {
		return code
	}
	c.setFlyingLocked(flyingLanding, flyingLanded)
	return arsdk.OK
}

func (c *Controller) Emergency() arsdk.ErrorCode {
	c.mu.Lock()
	defer c.mu.Unlock()
	if code := c.command("Emergency"); code != arsdk.OK {
		return code
	}
	c.setFlyingLocked(flyingEmergency, flyingLanded)
	return arsdk.OK
}

func (c *Controller) FlatTrim() arsdk.ErrorCode {
	c.mu.Lock()
	defer c.mu.Unlock()
	if code := c.command("FlatTrim"); code != arsdk.OK {
		return code
	}
	c.postCommandLocked(arsdk.KeyPilotingFlatTrimChanged, arsdk.Args{})
	return arsdk.OK
}

func (c *Controller) NavigateHome(start bool) arsdk.ErrorCode {
	c.mu.Lock()
	defer c.mu.Unlock()
	if code := c.command("NavigateHome"); code != arsdk.OK {
		return code
	}
	state, reason := int64(0), int64(4) // available, stopped
	if start {
		state, reason = 1, 0 // inProgress, userRequest
	}
	c.postCommandLocked(arsdk.KeyPilotingNavigateHomeStateChanged, arsdk.Args{arsdk.ArgState: state, arsdk.ArgReason: reason})
	return arsdk.OK
}

func (c *Controller) Flip(direction arsdk.FlipDirection) arsdk.ErrorCode {
	c.mu.Lock()
	defer c.mu.Unlock()
	if code := c.command("Flip"); code != arsdk.OK {
		return code
	}
	if direction > arsdk.FlipLeft {
		return arsdk.ErrBadParameter
	}
	return arsdk.OK
}

func inUnitRange(values ...float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || v < -1 || v > 1 {
			return false
		}
	}
	return true
}

func (c *Controller) PCMD(flag bool, roll, pitch, yawSpeed, gazSpeed float64) arsdk.ErrorCode {
	c.mu.Lock()
	defer c.mu.Unlock()
	if code := c.command("PCMD"); code != arsdk.OK {
		return code
	}
	if !inUnitRange(roll, pitch, yawSpeed, gazSpeed) {
		return arsdk.ErrBadParameter
	}
	if c.flying == flyingHovering && (flag || yawSpeed != 0 || gazSpeed != 0) {
		c.setFlyingLocked(flyingFlying)
	} else if c.flying == flyingFlying && !flag && yawSpeed == 0 && gazSpeed == 0 {
		c.setFlyingLocked(flyingHovering)
	}
	return arsdk.OK
}

func (c *Controller) CameraOrientation(tilt, pan float64) arsdk.ErrorCode {
	c.mu.Lock()
	defer c.mu.Unlock()
	if code := c.command("CameraOrientation"); code != arsdk.OK {
		return code
	}
	if !inUnitRange(tilt, pan) {
		return arsdk.ErrBadParameter
	}
	c.postCommandLocked(arsdk.KeyCameraOrientationChanged, arsdk.Args{
		arsdk.ArgTilt: int8(math.Round(tilt * maxTiltDegrees)),
		arsdk.ArgPan:  int8(math.Round(pan * maxPanDegrees)),
	})
	return arsdk.OK
}

func (c *Controller) EnableVideoStream(enable bool) arsdk.ErrorCode {
	c.mu.Lock()
	if code := c.command("EnableVideoStream"); code != arsdk.OK {
		c.mu.Unlock()
		return code
	}
	c.postCommandLocked(arsdk.KeyMediaStreamingVideoEnableChanged, arsdk.Args{arsdk.ArgEnabled: enable})
	if enable {
		if c.videoStop == nil {
			c.videoStop = make(chan struct{})
			c.videoDone = make(chan struct{})
			go c.videoLoop(c.videoStop, c.videoDone)
		}
		c.mu.Unlock()
		return arsdk.OK
	}
	stop, done := c.videoStop, c.videoDone
	c.videoStop, c.videoDone = nil, nil
	c.mu.Unlock()
	if stop != nil {
		close(stop)
		<-done
	}
	return arsdk.OK
}

func (c *Controller) AllSettings() arsdk.ErrorCode {
	c.mu.Lock()
	defer c.mu.Unlock()
	if code := c.command("AllSettings"); code != arsdk.OK {
		return code
	}
	c.postCommandLocked(arsdk.KeyCommonProductNameChanged, arsdk.Args{arsdk.ArgName: "Bebop2-sim"})
	c.postCommandLocked(arsdk.KeyCommonProductVersionChanged, arsdk.Args{arsdk.ArgSoftware: "4.7.1", arsdk.ArgHardware: "HW_01"})
	c.postSettingsLocked()
	c.postCommandLocked(arsdk.KeyCommonAllSettingsChanged, arsdk.Args{})
	return arsdk.OK
}

func (c *Controller) AllStates() arsdk.ErrorCode {
	c.mu.Lock()
	defer c.mu.Unlock()
	if code := c.command("AllStates"); code != arsdk.OK {
		return code
	}
	c.postBatteryLocked(c.battery)
	c.postCommandLocked(arsdk.KeyCommonBatteryStateChanged, arsdk.Args{arsdk.ArgPercent: c.battery})
	c.postCommandLocked(arsdk.KeyCommonWifiSignalChanged, arsdk.Args{arsdk.ArgRSSI: int16(-42)})
	c.postCommandLocked(arsdk.KeyPilotingFlyingStateChanged, arsdk.Args{arsdk.ArgState: c.flying})
	c.postCommandLocked(arsdk.KeyGPSFixStateChanged, arsdk.Args{arsdk.ArgFixed: uint8(1)})
	c.postCommandLocked(arsdk.KeyGPSNumberOfSatelliteChanged, arsdk.Args{arsdk.ArgSatellites: uint8(9)})
	c.postCommandLocked(arsdk.KeyCommonAllStatesChanged, arsdk.Args{})
	return arsdk.OK
}

func (c *Controller) ResetSettings() arsdk.ErrorCode {
	c.mu.Lock()
	defer c.mu.Unlock()
	if code := c.command("ResetSettings"); code != arsdk.OK {
		return code
	}
	c.settings = defaultSettings()
	c.postSettingsLocked()
	return arsdk.OK
}

func (c *Controller) SendSetting(id arsdk.SettingID, args arsdk.Args) arsdk.ErrorCode {
	c.mu.Lock()
	defer c.mu.Unlock()
	if code := c.command("SendSetting"); code != arsdk.OK {
		return code
	}
	stored, ok := c.settings[id]
	if !ok {
		return arsdk.ErrBadParameter
	}
	merged := make(arsdk.Args, len(stored))
	for k, v := range stored {
		merged[k] = v
	}
	for k, v := range args {
		merged[k] = v
	}
	c.settings[id] = merged
	c.postCommandLocked(arsdk.SettingKeys[id], merged)
	return arsdk.OK
}

// Setting returns the stored value of a setting.
func (c *Controller) Setting(id arsdk.SettingID) arsdk.Args {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.settings[id]
}

func (c *Controller) postSettingsLocked() {
	for id := arsdk.SettingMaxAltitude; id <= arsdk.SettingWifiSelection; id++ {
		c.postCommandLocked(arsdk.SettingKeys[id], c.settings[id])
	}
}

func (c *Controller) videoLoop(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	ticker := time.NewTicker(c.opts.FrameInterval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			c.frameSeq++
			frame := syntheticFrame(c.frameSeq, c.opts.FrameWidth, c.opts.FrameHeight)
			if fn := c.callbacks().FrameReceived; fn != nil {
				fn(frame)
			}
		}
	}
}

func syntheticFrame(seq uint64, width, height uint32) *arsdk.Frame {
	data := make([]byte, int(width)*int(height)*3)
	shade := byte(seq)
	for i := range data {
		data[i] = shade + byte(i/3)
	}
	return &arsdk.Frame{
		Seq:      seq,
		Codec:    arsdk.CodecRaw,
		IsIFrame: true,
		Width:    width,
		Height:   height,
		Data:     data,
	}
}
