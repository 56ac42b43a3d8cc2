package flightlog

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/einherij/bebop/pkg/bebop"
)

type StatusSource interface {
	Status() bebop.Status
}

// Recorder samples a status source and logs one flight per connected period.
type Recorder struct {
	log      *Log
	source   StatusSource
	target   string
	interval time.Duration
}

func NewRecorder(log *Log, source StatusSource, target string, interval time.Duration) *Recorder {
	if interval <= 0 {
		interval = time.Second
	}
	return &Recorder{
		log:      log,
		source:   source,
		target:   target,
		interval: interval,
	}
}

func (r *Recorder) Run(ctx context.Context) {
	logrus.Warnf("started flight recorder")
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			r.Sample(ctx)
		case <-ctx.Done():
			if err := r.log.End(context.Background(), time.Now()); err != nil {
				logrus.Error(err)
			}
			logrus.Warnf("stopped flight recorder")
			return
		}
	}
}

// Sample records the current status, opening a flight when the device has
// just connected and closing it once it is disconnected again.
func (r *Recorder) Sample(ctx context.Context) {
	st := r.source.Status()
	connected := st.Phase == bebop.PhaseConnected.String()
	flying := r.log.Flight() != ""

	switch {
	case connected && !flying:
		id, err := r.log.Begin(ctx, r.target, st.At)
		if err != nil {
			logrus.Error(err)
			return
		}
		logrus.WithField("flight", id).Info("flight started")
	case !connected && flying:
		if err := r.log.End(ctx, st.At); err != nil {
			logrus.Error(err)
		}
		return
	case !connected:
		return
	}
	if err := r.log.Record(ctx, st); err != nil {
		logrus.Error(err)
	}
}
