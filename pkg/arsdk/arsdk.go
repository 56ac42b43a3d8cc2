// Package arsdk describes the vendor device-controller runtime the bebop layer
// drives: controller creation, the four callback slots and the command calls.
// Runtimes report failures as ErrorCode values instead of Go errors.
package arsdk

import "fmt"

// ErrorCode is the status returned by every controller call.
type ErrorCode int

const (
	OK              ErrorCode = 0
	ErrGeneric      ErrorCode = -1000
	ErrBadParameter ErrorCode = -999
	ErrAlloc        ErrorCode = -998
	ErrInit         ErrorCode = -997
	ErrState        ErrorCode = -996
	ErrNoVideo      ErrorCode = -995
	ErrNotSupported ErrorCode = -994
	ErrTimeout      ErrorCode = -993
	ErrDisconnected ErrorCode = -992
)

func (c ErrorCode) String() string {
	switch c {
	case OK:
		return "ok"
	case ErrGeneric:
		return "generic error"
	case ErrBadParameter:
		return "bad parameter"
	case ErrAlloc:
		return "allocation failed"
	case ErrInit:
		return "initialization failed"
	case ErrState:
		return "bad controller state"
	case ErrNoVideo:
		return "video not available"
	case ErrNotSupported:
		return "not supported"
	case ErrTimeout:
		return "timeout"
	case ErrDisconnected:
		return "disconnected"
	default:
		return fmt.Sprintf("error code %d", int(c))
	}
}

// DeviceState is the lifecycle state reported by the controller.
type DeviceState int32

const (
	StateStopped DeviceState = iota
	StateStarting
	StateRunning
	StatePaused
	StateStopping
)

func (s DeviceState) String() string {
	switch s {
	case StateStopped:
		return "stopped"
	case StateStarting:
		return "starting"
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	case StateStopping:
		return "stopping"
	default:
		return fmt.Sprintf("state(%d)", int32(s))
	}
}

// FlipDirection selects the flip animation.
type FlipDirection uint8

const (
	FlipFront FlipDirection = iota
	FlipBack
	FlipRight
	FlipLeft
)

// Codec tells the decoder how Frame.Data is encoded.
type Codec uint8

const (
	CodecH264 Codec = iota
	// CodecRaw frames carry packed RGB24 pixels with Width and Height set.
	CodecRaw
)

// Frame is one video unit as delivered by the runtime.
type Frame struct {
	Seq      uint64
	Codec    Codec
	IsIFrame bool
	Width    uint32
	Height   uint32
	Data     []byte
}

// Callbacks are the four registration slots of a controller. Nil slots are
// not invoked. StateChanged, CommandReceived and BatteryChanged are called
// serially from one runtime goroutine; FrameReceived from another.
type Callbacks struct {
	StateChanged    func(state DeviceState, code ErrorCode)
	CommandReceived func(key DictionaryKey, args Args)
	BatteryChanged  func(percent uint8)
	FrameReceived   func(frame *Frame)
}

//go:generate mockgen -destination=mock_arsdk/arsdk.go -package=mock_arsdk github.com/einherij/bebop/pkg/arsdk Runtime,Controller

// Runtime creates controllers for a resolved device address.
type Runtime interface {
	NewController(addr string) (Controller, ErrorCode)
}

// Controller is the asynchronous device controller.
type Controller interface {
	SetCallbacks(cb Callbacks) ErrorCode
	ClearCallbacks()
	Start() ErrorCode
	Stop() ErrorCode
	State() (DeviceState, ErrorCode)
	// Close releases the controller. It must not be used afterwards.
	Close()

	Takeoff() ErrorCode
	Landing() ErrorCode
	Emergency() ErrorCode
	FlatTrim() ErrorCode
	NavigateHome(start bool) ErrorCode
	Flip(direction FlipDirection) ErrorCode
	// PCMD values are expected in [-1, 1]; validation belongs to the runtime.
	PCMD(flag bool, roll, pitch, yawSpeed, gazSpeed float64) ErrorCode
	CameraOrientation(tilt, pan float64) ErrorCode
	EnableVideoStream(enable bool) ErrorCode

	AllSettings() ErrorCode
	AllStates() ErrorCode
	ResetSettings() ErrorCode
	SendSetting(id SettingID, args Args) ErrorCode
}
