package controller

import (
	"context"
	"fmt"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/einherij/bebop/pkg/arsdk"
	"github.com/einherij/bebop/pkg/telemetry"
	"github.com/einherij/bebop/pkg/wsclient"
)

const (
	stickSpeed = 0.5
	cameraStep = 0.1
)

type Pilot interface {
	Takeoff() error
	Land() error
	Emergency() error
	FlatTrim() error
	NavigateHome(start bool) error
	AnimationFlip(direction arsdk.FlipDirection) error
	Move(roll, pitch, gazSpeed, yawSpeed float64) error
	MoveCamera(tilt, pan float64) error
	StartStreaming() error
	StopStreaming()
	BatteryPercent() (uint8, bool)
	Telemetry() *telemetry.Registry
}

type Messenger interface {
	SendMessage(message wsclient.Message) bool
	ReceiveMessage(ctx context.Context) wsclient.Message
}

type sticks struct {
	roll, pitch, gaz, yaw float64
}

type Controller struct {
	wsClient Messenger
	pilot    Pilot

	sticks    sticks
	tilt, pan float64
}

func New(wsClient Messenger, pilot Pilot) *Controller {
	return &Controller{
		wsClient: wsClient,
		pilot:    pilot,
	}
}

func (h *Controller) Run(ctx context.Context) {
	logrus.Warnf("started drone controller")
	for {
		select {
		case <-ctx.Done():
			logrus.Warnf("stopped drone controller")
			return
		default:
			msg := h.wsClient.ReceiveMessage(ctx)
			if msg.Type != wsclient.MTCmd {
				continue
			}
			h.Handle(string(msg.Content))
		}
	}
}

// Handle executes one key command ("D<key>" on key down, "U<key>" on key up)
// and reports the outcome to the handler host.
func (h *Controller) Handle(cmd string) {
	info, err := h.execute(cmd)
	if err != nil {
		logrus.WithField("cmd", cmd).Error(err)
		info += " failed: " + err.Error()
	}
	h.wsClient.SendMessage(wsclient.Message{
		Type:    wsclient.MTLog,
		Content: []byte("Command " + info + h.status()),
	})
}

func (h *Controller) execute(cmd string) (string, error) {
	switch cmd {
	case "Dq":
		return "Started Turning Left", h.stick(&h.sticks.yaw, -stickSpeed)
	case "Uq", "Ue":
		return "Stopped Turning", h.stick(&h.sticks.yaw, 0)
	case "De":
		return "Started Turning Right", h.stick(&h.sticks.yaw, stickSpeed)
	case "Dw":
		return "Started Going Forward", h.stick(&h.sticks.pitch, stickSpeed)
	case "Uw", "Us":
		return "Stopped Going Forward/Backward", h.stick(&h.sticks.pitch, 0)
	case "Ds":
		return "Started Going Backward", h.stick(&h.sticks.pitch, -stickSpeed)
	case "Da":
		return "Started Going Left", h.stick(&h.sticks.roll, -stickSpeed)
	case "Ua", "Ud":
		return "Stopped Going Left/Right", h.stick(&h.sticks.roll, 0)
	case "Dd":
		return "Started Going Right", h.stick(&h.sticks.roll, stickSpeed)
	case "Dr":
		return "Started Going Up", h.stick(&h.sticks.gaz, stickSpeed)
	case "Ur", "Uf":
		return "Stopped Going Up/Down", h.stick(&h.sticks.gaz, 0)
	case "Df":
		return "Started Going Down", h.stick(&h.sticks.gaz, -stickSpeed)
	case "Du":
		return "Started Take Off", h.pilot.Takeoff()
	case "Dl":
		return "Started Land", h.pilot.Land()
	case "Dx":
		return "Emergency", h.pilot.Emergency()
	case "Dt":
		return "Flat Trim", h.pilot.FlatTrim()
	case "Dh":
		return "Started Navigate Home", h.pilot.NavigateHome(true)
	case "Uh":
		return "Stopped Navigate Home", h.pilot.NavigateHome(false)
	case "D8":
		return "Flip Front", h.pilot.AnimationFlip(arsdk.FlipFront)
	case "D2":
		return "Flip Back", h.pilot.AnimationFlip(arsdk.FlipBack)
	case "D4":
		return "Flip Left", h.pilot.AnimationFlip(arsdk.FlipLeft)
	case "D6":
		return "Flip Right", h.pilot.AnimationFlip(arsdk.FlipRight)
	case "Di":
		return "Camera Up", h.camera(h.tilt+cameraStep, h.pan)
	case "Dk":
		return "Camera Down", h.camera(h.tilt-cameraStep, h.pan)
	case "Dj":
		return "Camera Left", h.camera(h.tilt, h.pan-cameraStep)
	case "Dm":
		return "Camera Right", h.camera(h.tilt, h.pan+cameraStep)
	case "Do":
		return "Camera Reset", h.camera(0, 0)
	case "Dv":
		return "Started Video", h.pilot.StartStreaming()
	case "Uv":
		h.pilot.StopStreaming()
		return "Stopped Video", nil
	default:
		return cmd, nil
	}
}

// stick updates one axis and sends the combined sticks, so holding two keys
// moves along both axes.
// stick keeps the previous axis value when the move is rejected.
func (h *Controller) stick(axis *float64, value float64) error {
	prev := *axis
	*axis = value
	if err := h.pilot.Move(h.sticks.roll, h.sticks.pitch, h.sticks.gaz, h.sticks.yaw); err != nil {
		*axis = prev
		return err
	}
	return nil
}

func (h *Controller) camera(tilt, pan float64) error {
	tilt = math.Max(-1, math.Min(1, tilt))
	pan = math.Max(-1, math.Min(1, pan))
	if err := h.pilot.MoveCamera(tilt, pan); err != nil {
		return err
	}
	h.tilt, h.pan = tilt, pan
	return nil
}

func (h *Controller) status() string {
	info := " BatPrc: unknown"
	if percent, ok := h.pilot.BatteryPercent(); ok {
		info = fmt.Sprintf(" BatPrc: %d", percent)
	}
	reg := h.pilot.Telemetry()
	if state, _, ok := reg.FlyingState.Get(); ok {
		info += "; State: " + state.String()
	}
	if alert, _, ok := reg.AlertState.Get(); ok && alert != "none" {
		info += " Alert: " + alert
	}
	if altitude, _, ok := reg.Altitude.Get(); ok {
		info += fmt.Sprintf("; Alt: %.1f", altitude)
	}
	return info
}
