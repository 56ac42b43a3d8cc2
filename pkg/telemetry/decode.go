package telemetry

import (
	"fmt"

	"github.com/einherij/bebop/pkg/arsdk"
)

// positionUnavailable is what the vehicle reports without a GPS fix.
const positionUnavailable = 500.0

var (
	flyingStateNames = []string{"landed", "takingoff", "hovering", "flying", "landing", "emergency", "usertakeoff", "motor_ramping", "emergency_landing"}
	alertStateNames  = []string{"none", "user", "cut_out", "critical_battery", "low_battery", "too_much_angle"}
	homeStateNames   = []string{"available", "inProgress", "unavailable", "pending"}
	homeReasonNames  = []string{"userRequest", "connectionLost", "lowBattery", "finished", "stopped", "disabled", "enabled"}
	overHeatNames    = []string{"normal", "overheated"}
	sensorNames      = []string{"imu", "barometer", "ultrasound", "gps", "magnetometer", "vertical_camera"}
)

func enumName(names []string, v int64) string {
	if v >= 0 && v < int64(len(names)) {
		return names[v]
	}
	return fmt.Sprintf("unknown(%d)", v)
}

// FlyingState mirrors piloting.flying_state.
type FlyingState int64

const (
	FlyingLanded FlyingState = iota
	FlyingTakingOff
	FlyingHovering
	FlyingFlying
	FlyingLanding
	FlyingEmergency
	FlyingUserTakeoff
	FlyingMotorRamping
	FlyingEmergencyLanding
)

func (f FlyingState) String() string {
	return enumName(flyingStateNames, int64(f))
}

func (f FlyingState) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// Airborne reports whether the vehicle is off the ground.
func (f FlyingState) Airborne() bool {
	switch f {
	case FlyingTakingOff, FlyingHovering, FlyingFlying, FlyingLanding, FlyingUserTakeoff, FlyingEmergencyLanding:
		return true
	}
	return false
}

type NavigateHome struct {
	State  string `json:"state" msgpack:"state"`
	Reason string `json:"reason" msgpack:"reason"`
}

type Position struct {
	Latitude  float64 `json:"latitude" msgpack:"latitude"`
	Longitude float64 `json:"longitude" msgpack:"longitude"`
	Altitude  float64 `json:"altitude" msgpack:"altitude"`
}

// Valid is false while the vehicle reports the "no fix" sentinel.
func (p Position) Valid() bool {
	return p.Latitude != positionUnavailable && p.Longitude != positionUnavailable
}

type Speed struct {
	X float64 `json:"x" msgpack:"x"`
	Y float64 `json:"y" msgpack:"y"`
	Z float64 `json:"z" msgpack:"z"`
}

// Attitude angles are in radians.
type Attitude struct {
	Roll  float64 `json:"roll" msgpack:"roll"`
	Pitch float64 `json:"pitch" msgpack:"pitch"`
	Yaw   float64 `json:"yaw" msgpack:"yaw"`
}

// Orientation of the camera in degrees.
type Orientation struct {
	Tilt int64 `json:"tilt" msgpack:"tilt"`
	Pan  int64 `json:"pan" msgpack:"pan"`
}

// Range is a numeric setting with its allowed bounds.
type Range struct {
	Current float64 `json:"current" msgpack:"current"`
	Min     float64 `json:"min" msgpack:"min"`
	Max     float64 `json:"max" msgpack:"max"`
}

type ProductVersion struct {
	Software string `json:"software" msgpack:"software"`
	Hardware string `json:"hardware" msgpack:"hardware"`
}

type WifiSelection struct {
	Type    string `json:"type" msgpack:"type"`
	Band    string `json:"band" msgpack:"band"`
	Channel int64  `json:"channel" msgpack:"channel"`
}

// Event marks keys without arguments; only the arrival time matters.
type Event struct{}

func decodeEvent(arsdk.Args) (Event, error) {
	return Event{}, nil
}

func decodeFlyingState(a arsdk.Args) (FlyingState, error) {
	v, err := a.Int(arsdk.ArgState)
	return FlyingState(v), err
}

func enumDecoder(arg string, names []string) func(arsdk.Args) (string, error) {
	return func(a arsdk.Args) (string, error) {
		v, err := a.Int(arg)
		if err != nil {
			return "", err
		}
		return enumName(names, v), nil
	}
}

func decodeNavigateHome(a arsdk.Args) (NavigateHome, error) {
	state, err := a.Int(arsdk.ArgState)
	if err != nil {
		return NavigateHome{}, err
	}
	reason, err := a.Int(arsdk.ArgReason)
	if err != nil {
		return NavigateHome{}, err
	}
	return NavigateHome{State: enumName(homeStateNames, state), Reason: enumName(homeReasonNames, reason)}, nil
}

func decodePosition(a arsdk.Args) (p Position, err error) {
	if p.Latitude, err = a.Float(arsdk.ArgLatitude); err != nil {
		return
	}
	if p.Longitude, err = a.Float(arsdk.ArgLongitude); err != nil {
		return
	}
	p.Altitude, err = a.Float(arsdk.ArgAltitude)
	return
}

func decodeSpeed(a arsdk.Args) (s Speed, err error) {
	if s.X, err = a.Float(arsdk.ArgSpeedX); err != nil {
		return
	}
	if s.Y, err = a.Float(arsdk.ArgSpeedY); err != nil {
		return
	}
	s.Z, err = a.Float(arsdk.ArgSpeedZ)
	return
}

func decodeAttitude(a arsdk.Args) (at Attitude, err error) {
	if at.Roll, err = a.Float(arsdk.ArgRoll); err != nil {
		return
	}
	if at.Pitch, err = a.Float(arsdk.ArgPitch); err != nil {
		return
	}
	at.Yaw, err = a.Float(arsdk.ArgYaw)
	return
}

func decodeOrientation(a arsdk.Args) (o Orientation, err error) {
	if o.Tilt, err = a.Int(arsdk.ArgTilt); err != nil {
		return
	}
	o.Pan, err = a.Int(arsdk.ArgPan)
	return
}

func decodeRange(a arsdk.Args) (r Range, err error) {
	if r.Current, err = a.Float(arsdk.ArgCurrent); err != nil {
		return
	}
	if r.Min, err = a.Float(arsdk.ArgMin); err != nil {
		return
	}
	r.Max, err = a.Float(arsdk.ArgMax)
	return
}

func decodeProductVersion(a arsdk.Args) (v ProductVersion, err error) {
	if v.Software, err = a.String(arsdk.ArgSoftware); err != nil {
		return
	}
	v.Hardware, err = a.String(arsdk.ArgHardware)
	return
}

func decodeWifiSelection(a arsdk.Args) (w WifiSelection, err error) {
	if w.Type, err = a.String(arsdk.ArgType); err != nil {
		return
	}
	if w.Band, err = a.String(arsdk.ArgBand); err != nil {
		return
	}
	w.Channel, err = a.Int(arsdk.ArgChannel)
	return
}

func floatDecoder(arg string) func(arsdk.Args) (float64, error) {
	return func(a arsdk.Args) (float64, error) { return a.Float(arg) }
}

func intDecoder(arg string) func(arsdk.Args) (int64, error) {
	return func(a arsdk.Args) (int64, error) { return a.Int(arg) }
}

func boolDecoder(arg string) func(arsdk.Args) (bool, error) {
	return func(a arsdk.Args) (bool, error) { return a.Bool(arg) }
}

func stringDecoder(arg string) func(arsdk.Args) (string, error) {
	return func(a arsdk.Args) (string, error) { return a.String(arg) }
}
