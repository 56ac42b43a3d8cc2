package arsdk

import (
	"fmt"
)

// Argument names used by the known dictionary keys.
const (
	ArgState      = "state"
	ArgReason     = "reason"
	ArgPercent    = "percent"
	ArgRSSI       = "rssi"
	ArgName       = "name"
	ArgSoftware   = "software"
	ArgHardware   = "hardware"
	ArgRequired   = "required"
	ArgSensor     = "sensor"
	ArgLatitude   = "latitude"
	ArgLongitude  = "longitude"
	ArgAltitude   = "altitude"
	ArgSpeedX     = "speedX"
	ArgSpeedY     = "speedY"
	ArgSpeedZ     = "speedZ"
	ArgRoll       = "roll"
	ArgPitch      = "pitch"
	ArgYaw        = "yaw"
	ArgTilt       = "tilt"
	ArgPan        = "pan"
	ArgEnabled    = "enabled"
	ArgFixed      = "fixed"
	ArgSatellites = "numberOfSatellite"
	ArgCurrent    = "current"
	ArgMin        = "min"
	ArgMax        = "max"
	ArgValue      = "value"
	ArgMode       = "mode"
	ArgFramerate  = "framerate"
	ArgType       = "type"
	ArgBand       = "band"
	ArgChannel    = "channel"
)

// Args is the raw element attached to a dictionary event: argument name to
// value. Values are Go numbers, bools or strings as produced by the runtime.
type Args map[string]any

// Float returns the named argument converted to float64.
func (a Args) Float(name string) (float64, error) {
	v, ok := a[name]
	if !ok {
		return 0, fmt.Errorf("missing argument %q", name)
	}
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int8:
		return float64(n), nil
	case int16:
		return float64(n), nil
	case int32:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case uint8:
		return float64(n), nil
	case uint16:
		return float64(n), nil
	case uint32:
		return float64(n), nil
	case uint64:
		return float64(n), nil
	default:
		return 0, fmt.Errorf("argument %q: unexpected type %T", name, v)
	}
}

// Int returns the named argument as int64. Floating point values are
// rejected.
func (a Args) Int(name string) (int64, error) {
	v, ok := a[name]
	if !ok {
		return 0, fmt.Errorf("missing argument %q", name)
	}
	switch n := v.(type) {
	case int:
		return int64(n), nil
	case int8:
		return int64(n), nil
	case int16:
		return int64(n), nil
	case int32:
		return int64(n), nil
	case int64:
		return n, nil
	case uint8:
		return int64(n), nil
	case uint16:
		return int64(n), nil
	case uint32:
		return int64(n), nil
	case uint64:
		return int64(n), nil
	default:
		return 0, fmt.Errorf("argument %q: unexpected type %T", name, v)
	}
}

// Bool accepts bools and the 0/1 integers most enums use for flags.
func (a Args) Bool(name string) (bool, error) {
	if b, ok := a[name].(bool); ok {
		return b, nil
	}
	n, err := a.Int(name)
	if err != nil {
		return false, err
	}
	return n != 0, nil
}

func (a Args) String(name string) (string, error) {
	v, ok := a[name]
	if !ok {
		return "", fmt.Errorf("missing argument %q", name)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("argument %q: unexpected type %T", name, v)
	}
	return s, nil
}
