package bebop

import (
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/einherij/bebop/pkg/arsdk"
	"github.com/einherij/bebop/pkg/videodecoder"
)

// The callbacks below run on runtime goroutines. They never return errors and
// never call back into the controller.

func (d *Device) onStateChanged(state arsdk.DeviceState, code arsdk.ErrorCode) {
	prev := arsdk.DeviceState(d.state.Swap(int32(state)))
	logrus.WithFields(logrus.Fields{"from": prev, "to": state, "code": code}).Debug("controller state changed")

	if w := d.waiter.Load(); w != nil {
		w.offer(state, code)
		return
	}
	if state == arsdk.StateStopped && d.IsConnected() {
		logrus.WithField("code", code).Error("connection to vehicle lost")
		// Disconnect waits for this goroutine to drain, so it cannot run here.
		go d.Disconnect()
	}
}

func (d *Device) onCommandReceived(key arsdk.DictionaryKey, args arsdk.Args) {
	known, err := d.telemetry.Dispatch(key, args, time.Now())
	if !known {
		logrus.WithField("key", key).Debug("unhandled telemetry key")
		return
	}
	if err != nil {
		logrus.WithError(err).WithField("key", key).Warn("failed to decode telemetry")
	}
}

func (d *Device) onBatteryChanged(percent uint8) {
	d.battery.Store(int32(percent))
}

func (d *Device) onFrameReceived(frame *arsdk.Frame) {
	if !d.streaming.Load() {
		return
	}
	d.videoMu.RLock()
	defer d.videoMu.RUnlock()
	if d.decoder == nil {
		return
	}
	img, err := d.decoder.Decode(frame)
	if errors.Is(err, videodecoder.ErrNoImage) {
		return
	}
	if err != nil {
		logrus.WithError(err).Warn("failed to decode frame")
		return
	}
	d.frames.Push(img.Data, img.Width, img.Height)
}
