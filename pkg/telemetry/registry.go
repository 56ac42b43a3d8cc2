package telemetry

import (
	"fmt"
	"time"

	"github.com/einherij/bebop/pkg/arsdk"
)

// Registry owns one handler per known dictionary key. The set of handlers is
// fixed at construction; only their readings change afterwards.
type Registry struct {
	AllStates       *Value[Event]
	Battery         *Value[int64]
	WifiSignal      *Value[int64]
	AllSettings     *Value[Event]
	ProductName     *Value[string]
	ProductVersion  *Value[ProductVersion]
	MagnetoRequired *Value[bool]
	OverHeat        *Value[string]
	Sensors         *Sensors

	FlatTrim     *Value[Event]
	FlyingState  *Value[FlyingState]
	AlertState   *Value[string]
	NavigateHome *Value[NavigateHome]
	Position     *Value[Position]
	Speed        *Value[Speed]
	Attitude     *Value[Attitude]
	Altitude     *Value[float64]

	CameraOrientation *Value[Orientation]
	VideoEnabled      *Value[bool]

	Satellites *Value[int64]
	GPSFixed   *Value[bool]
	Home       *Value[Position]

	MaxAltitude          *Value[Range]
	MaxTilt              *Value[Range]
	MaxDistance          *Value[Range]
	NoFlyOverMaxDistance *Value[bool]
	AbsolutControl       *Value[bool]
	MaxVerticalSpeed     *Value[Range]
	MaxRotationSpeed     *Value[Range]
	HullProtection       *Value[bool]
	Outdoor              *Value[bool]
	VideoStabilization   *Value[string]
	VideoFramerate       *Value[string]
	AutoWhiteBalance     *Value[string]
	Exposition           *Value[Range]
	Saturation           *Value[Range]
	WifiSelection        *Value[WifiSelection]

	handlers map[arsdk.DictionaryKey]Handler
}

// NewRegistry builds the handler set. It panics if a known key has no
// handler, which is a programming error caught by the first test run.
func NewRegistry() *Registry {
	r := &Registry{
		AllStates:       newValue(arsdk.KeyCommonAllStatesChanged, decodeEvent),
		Battery:         newValue(arsdk.KeyCommonBatteryStateChanged, intDecoder(arsdk.ArgPercent)),
		WifiSignal:      newValue(arsdk.KeyCommonWifiSignalChanged, intDecoder(arsdk.ArgRSSI)),
		AllSettings:     newValue(arsdk.KeyCommonAllSettingsChanged, decodeEvent),
		ProductName:     newValue(arsdk.KeyCommonProductNameChanged, stringDecoder(arsdk.ArgName)),
		ProductVersion:  newValue(arsdk.KeyCommonProductVersionChanged, decodeProductVersion),
		MagnetoRequired: newValue(arsdk.KeyCommonMagnetoCalibrationRequired, boolDecoder(arsdk.ArgRequired)),
		OverHeat:        newValue(arsdk.KeyCommonOverHeatChanged, enumDecoder(arsdk.ArgState, overHeatNames)),
		Sensors:         &Sensors{},

		FlatTrim:     newValue(arsdk.KeyPilotingFlatTrimChanged, decodeEvent),
		FlyingState:  newValue(arsdk.KeyPilotingFlyingStateChanged, decodeFlyingState),
		AlertState:   newValue(arsdk.KeyPilotingAlertStateChanged, enumDecoder(arsdk.ArgState, alertStateNames)),
		NavigateHome: newValue(arsdk.KeyPilotingNavigateHomeStateChanged, decodeNavigateHome),
		Position:     newValue(arsdk.KeyPilotingPositionChanged, decodePosition),
		Speed:        newValue(arsdk.KeyPilotingSpeedChanged, decodeSpeed),
		Attitude:     newValue(arsdk.KeyPilotingAttitudeChanged, decodeAttitude),
		Altitude:     newValue(arsdk.KeyPilotingAltitudeChanged, floatDecoder(arsdk.ArgAltitude)),

		CameraOrientation: newValue(arsdk.KeyCameraOrientationChanged, decodeOrientation),
		VideoEnabled:      newValue(arsdk.KeyMediaStreamingVideoEnableChanged, boolDecoder(arsdk.ArgEnabled)),

		Satellites: newValue(arsdk.KeyGPSNumberOfSatelliteChanged, intDecoder(arsdk.ArgSatellites)),
		GPSFixed:   newValue(arsdk.KeyGPSFixStateChanged, boolDecoder(arsdk.ArgFixed)),
		Home:       newValue(arsdk.KeyGPSHomeChanged, decodePosition),

		MaxAltitude:          newValue(arsdk.KeySettingsMaxAltitudeChanged, decodeRange),
		MaxTilt:              newValue(arsdk.KeySettingsMaxTiltChanged, decodeRange),
		MaxDistance:          newValue(arsdk.KeySettingsMaxDistanceChanged, decodeRange),
		NoFlyOverMaxDistance: newValue(arsdk.KeySettingsNoFlyOverMaxDistanceChanged, boolDecoder(arsdk.ArgEnabled)),
		AbsolutControl:       newValue(arsdk.KeySettingsAbsolutControlChanged, boolDecoder(arsdk.ArgEnabled)),
		MaxVerticalSpeed:     newValue(arsdk.KeySettingsMaxVerticalSpeedChanged, decodeRange),
		MaxRotationSpeed:     newValue(arsdk.KeySettingsMaxRotationSpeedChanged, decodeRange),
		HullProtection:       newValue(arsdk.KeySettingsHullProtectionChanged, boolDecoder(arsdk.ArgEnabled)),
		Outdoor:              newValue(arsdk.KeySettingsOutdoorChanged, boolDecoder(arsdk.ArgEnabled)),
		VideoStabilization:   newValue(arsdk.KeySettingsVideoStabilizationChanged, stringDecoder(arsdk.ArgMode)),
		VideoFramerate:       newValue(arsdk.KeySettingsVideoFramerateChanged, stringDecoder(arsdk.ArgFramerate)),
		AutoWhiteBalance:     newValue(arsdk.KeySettingsAutoWhiteBalanceChanged, stringDecoder(arsdk.ArgType)),
		Exposition:           newValue(arsdk.KeySettingsExpositionChanged, decodeRange),
		Saturation:           newValue(arsdk.KeySettingsSaturationChanged, decodeRange),
		WifiSelection:        newValue(arsdk.KeySettingsWifiSelectionChanged, decodeWifiSelection),
	}

	all := []Handler{
		r.AllStates, r.Battery, r.WifiSignal, r.AllSettings, r.ProductName, r.ProductVersion,
		r.MagnetoRequired, r.OverHeat, r.Sensors,
		r.FlatTrim, r.FlyingState, r.AlertState, r.NavigateHome, r.Position, r.Speed, r.Attitude, r.Altitude,
		r.CameraOrientation, r.VideoEnabled,
		r.Satellites, r.GPSFixed, r.Home,
		r.MaxAltitude, r.MaxTilt, r.MaxDistance, r.NoFlyOverMaxDistance, r.AbsolutControl,
		r.MaxVerticalSpeed, r.MaxRotationSpeed, r.HullProtection, r.Outdoor,
		r.VideoStabilization, r.VideoFramerate, r.AutoWhiteBalance, r.Exposition, r.Saturation, r.WifiSelection,
	}
	r.handlers = make(map[arsdk.DictionaryKey]Handler, len(all))
	for _, h := range all {
		if _, dup := r.handlers[h.Key()]; dup {
			panic(fmt.Sprintf("telemetry: duplicate handler for %s", h.Key()))
		}
		r.handlers[h.Key()] = h
	}
	for _, k := range arsdk.Keys() {
		if _, ok := r.handlers[k]; !ok {
			panic(fmt.Sprintf("telemetry: no handler for %s", k))
		}
	}
	return r
}

// Dispatch routes one event to its handler. Unknown keys report known=false
// and are not an error.
func (r *Registry) Dispatch(key arsdk.DictionaryKey, args arsdk.Args, at time.Time) (known bool, err error) {
	h, ok := r.handlers[key]
	if !ok {
		return false, nil
	}
	return true, h.Update(args, at)
}

func (r *Registry) Handler(key arsdk.DictionaryKey) (Handler, bool) {
	h, ok := r.handlers[key]
	return h, ok
}

func (r *Registry) Len() int {
	return len(r.handlers)
}

// Snapshot returns every reading received so far, keyed by key name.
func (r *Registry) Snapshot() map[string]Reading {
	out := make(map[string]Reading, len(r.handlers))
	for k, h := range r.handlers {
		if reading, ok := h.Reading(); ok {
			out[k.String()] = reading
		}
	}
	return out
}
