// Package telesend pushes the device status to the handler host.
package telesend

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/einherij/bebop/pkg/bebop"
	"github.com/einherij/bebop/pkg/wsclient"
)

const DefaultInterval = 200 * time.Millisecond

type StatusSource interface {
	Status() bebop.Status
}

type MessageSender interface {
	SendMessage(message wsclient.Message) bool
}

type Sender struct {
	wsClient MessageSender
	source   StatusSource
	interval time.Duration
}

func New(wsClient MessageSender, source StatusSource, interval time.Duration) *Sender {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Sender{
		wsClient: wsClient,
		source:   source,
		interval: interval,
	}
}

func (s *Sender) Run(ctx context.Context) {
	logrus.Warnf("started telemetry sender")
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if err := s.send(); err != nil {
				logrus.Error(err)
			}
		case <-ctx.Done():
			logrus.Warnf("stopped telemetry sender")
			return
		}
	}
}

func (s *Sender) send() error {
	content, err := json.Marshal(s.source.Status())
	if err != nil {
		return fmt.Errorf("error encoding status: %w", err)
	}
	s.wsClient.SendMessage(wsclient.Message{
		Type:    wsclient.MTTelemetry,
		Content: content,
	})
	return nil
}
