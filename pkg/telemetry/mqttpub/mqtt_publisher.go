// Package mqttpub publishes the device status to an MQTT broker.
//
// Status samples go to <prefix>/status at QoS 0. The lifecycle phase is
// published retained to <prefix>/phase whenever it changes, so late
// subscribers learn whether the vehicle is connected.
package mqttpub

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/sirupsen/logrus"

	"github.com/einherij/bebop/pkg/bebop"
)

const (
	connectTimeout    = 5 * time.Second
	publishTimeout    = 2 * time.Second
	disconnectQuiesce = 250
)

var ErrNotConnected = errors.New("mqtt not connected")

type StatusSource interface {
	Status() bebop.Status
}

type Config struct {
	Broker   string
	ClientID string
	Prefix   string
	Interval time.Duration
}

func (c Config) withDefaults() Config {
	if c.ClientID == "" {
		c.ClientID = "bebop-pilot"
	}
	if c.Prefix == "" {
		c.Prefix = "bebop/" + c.ClientID
	}
	if c.Interval <= 0 {
		c.Interval = time.Second
	}
	return c
}

type Publisher struct {
	cfg    Config
	client mqtt.Client
	source StatusSource

	lastPhase atomic.Pointer[string]
	published atomic.Uint64
	failed    atomic.Uint64
}

func New(cfg Config, source StatusSource) *Publisher {
	cfg = cfg.withDefaults()
	log := logrus.WithField("broker", cfg.Broker)

	opts := mqtt.NewClientOptions()
	opts.AddBroker(fmt.Sprintf("tcp://%s", cfg.Broker))
	opts.SetClientID(cfg.ClientID)
	opts.SetAutoReconnect(true)
	opts.SetConnectRetry(true)
	opts.SetConnectRetryInterval(2 * time.Second)
	opts.SetMaxReconnectInterval(30 * time.Second)
	opts.OnConnect = func(mqtt.Client) {
		log.Info("mqtt connection established")
	}
	opts.OnConnectionLost = func(_ mqtt.Client, err error) {
		log.WithError(err).Warn("mqtt connection lost, reconnecting")
	}
	return newPublisher(cfg, mqtt.NewClient(opts), source)
}

func newPublisher(cfg Config, client mqtt.Client, source StatusSource) *Publisher {
	return &Publisher{
		cfg:    cfg.withDefaults(),
		client: client,
		source: source,
	}
}

func (p *Publisher) StatusTopic() string {
	return p.cfg.Prefix + "/status"
}

func (p *Publisher) PhaseTopic() string {
	return p.cfg.Prefix + "/phase"
}

func (p *Publisher) Connect() error {
	token := p.client.Connect()
	if !token.WaitTimeout(connectTimeout) {
		return fmt.Errorf("mqtt connection timeout")
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("mqtt connection failed: %w", err)
	}
	return nil
}

func (p *Publisher) Disconnect() {
	if p.client.IsConnected() {
		p.client.Disconnect(disconnectQuiesce)
	}
}

func (p *Publisher) Publish(st bebop.Status) error {
	if !p.client.IsConnected() {
		p.failed.Add(1)
		return ErrNotConnected
	}
	if last := p.lastPhase.Load(); last == nil || *last != st.Phase {
		if err := p.publish(p.PhaseTopic(), true, []byte(st.Phase)); err != nil {
			return err
		}
		phase := st.Phase
		p.lastPhase.Store(&phase)
	}
	payload, err := json.Marshal(st)
	if err != nil {
		p.failed.Add(1)
		return fmt.Errorf("failed to marshal status: %w", err)
	}
	return p.publish(p.StatusTopic(), false, payload)
}

func (p *Publisher) publish(topic string, retained bool, payload []byte) error {
	token := p.client.Publish(topic, 0, retained, payload)
	if !token.WaitTimeout(publishTimeout) {
		p.failed.Add(1)
		return fmt.Errorf("publish to %s timeout", topic)
	}
	if err := token.Error(); err != nil {
		p.failed.Add(1)
		return fmt.Errorf("publish to %s failed: %w", topic, err)
	}
	p.published.Add(1)
	return nil
}

// Counts returns the number of successful and failed publishes.
func (p *Publisher) Counts() (published, failed uint64) {
	return p.published.Load(), p.failed.Load()
}

func (p *Publisher) Run(ctx context.Context) {
	logrus.Warnf("started mqtt publisher")
	if err := p.Connect(); err != nil {
		// the client keeps retrying in the background
		logrus.Error(err)
	}
	ticker := time.NewTicker(p.cfg.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if err := p.Publish(p.source.Status()); err != nil {
				logrus.WithField("topic", p.cfg.Prefix).Debug(err)
			}
		case <-ctx.Done():
			p.Disconnect()
			logrus.Warnf("stopped mqtt publisher")
			return
		}
	}
}
