package bebop

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/einherij/bebop/pkg/arsdk"
	"github.com/einherij/bebop/pkg/settings"
)

// command checks the phase, then runs call against the live controller and
// translates its code.
func (d *Device) command(op string, call func(arsdk.Controller) arsdk.ErrorCode) error {
	if !d.IsConnected() {
		return fmt.Errorf("%s: %w", op, ErrNotConnected)
	}
	ref := d.controller.Load()
	if ref == nil || ref.ctrl == nil {
		return &InternalError{Op: op, Msg: "no controller while connected"}
	}
	if code := call(ref.ctrl); code != arsdk.OK {
		return &CommandError{Op: op, Code: code}
	}
	return nil
}

func (d *Device) Takeoff() error {
	return d.command("Takeoff", arsdk.Controller.Takeoff)
}

func (d *Device) Land() error {
	return d.command("Land", arsdk.Controller.Landing)
}

func (d *Device) Emergency() error {
	return d.command("Emergency", arsdk.Controller.Emergency)
}

func (d *Device) FlatTrim() error {
	return d.command("FlatTrim", arsdk.Controller.FlatTrim)
}

// NavigateHome starts or cancels the return-to-home flight.
func (d *Device) NavigateHome(start bool) error {
	return d.command("NavigateHome", func(c arsdk.Controller) arsdk.ErrorCode {
		return c.NavigateHome(start)
	})
}

func (d *Device) AnimationFlip(direction arsdk.FlipDirection) error {
	return d.command("AnimationFlip", func(c arsdk.Controller) arsdk.ErrorCode {
		return c.Flip(direction)
	})
}

// Move sends one piloting command. Inputs are normalized to [-1, 1] and
// forwarded as given; the runtime rejects what it cannot fly.
func (d *Device) Move(roll, pitch, gazSpeed, yawSpeed float64) error {
	flag := roll != 0 || pitch != 0
	return d.command("Move", func(c arsdk.Controller) arsdk.ErrorCode {
		return c.PCMD(flag, roll, pitch, yawSpeed, gazSpeed)
	})
}

// MoveCamera points the camera; tilt and pan are normalized to [-1, 1].
func (d *Device) MoveCamera(tilt, pan float64) error {
	return d.command("MoveCamera", func(c arsdk.Controller) arsdk.ErrorCode {
		return c.CameraOrientation(tilt, pan)
	})
}

func (d *Device) RequestAllSettings() error {
	return d.command("RequestAllSettings", arsdk.Controller.AllSettings)
}

func (d *Device) RequestAllStates() error {
	return d.command("RequestAllStates", arsdk.Controller.AllStates)
}

func (d *Device) ResetAllSettings() error {
	if err := d.command("ResetAllSettings", arsdk.Controller.ResetSettings); err != nil {
		return err
	}
	d.applied.Store(nil)
	return nil
}

// UpdateSettings sends the settings that differ from the last config applied
// on this connection, all of them the first time. cfg must not be modified
// afterwards.
func (d *Device) UpdateSettings(cfg *settings.Config) error {
	if !d.IsConnected() {
		return fmt.Errorf("UpdateSettings: %w", ErrNotConnected)
	}
	if cfg == nil {
		return fmt.Errorf("UpdateSettings: nil settings")
	}
	if err := settings.Validate(cfg); err != nil {
		return fmt.Errorf("UpdateSettings: %w", err)
	}

	changes := settingChanges(d.applied.Load(), cfg)
	for _, ch := range changes {
		id, args := ch.id, ch.args
		err := d.command("UpdateSettings", func(c arsdk.Controller) arsdk.ErrorCode {
			return c.SendSetting(id, args)
		})
		if err != nil {
			if cmdErr, ok := err.(*CommandError); ok {
				cmdErr.Msg = id.String()
			}
			return err
		}
	}
	d.applied.Store(cfg)
	logrus.WithField("changed", len(changes)).Infof("settings applied")
	return nil
}
