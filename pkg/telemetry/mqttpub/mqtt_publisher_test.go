package mqttpub

import (
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/stretchr/testify/suite"

	"github.com/einherij/bebop/pkg/bebop"
)

type token struct {
	err error
}

func (t token) Wait() bool                     { return true }
func (t token) WaitTimeout(time.Duration) bool { return true }
func (t token) Done() <-chan struct{} {
	done := make(chan struct{})
	close(done)
	return done
}
func (t token) Error() error { return t.err }

type publication struct {
	topic    string
	retained bool
	payload  []byte
}

// client implements the calls the publisher makes; the rest of mqtt.Client
// is left nil.
type client struct {
	mqtt.Client
	mu           sync.Mutex
	connected    bool
	publishErr   error
	publications []publication
	disconnects  int
}

func (c *client) IsConnected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.connected
}

func (c *client) Connect() mqtt.Token {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.connected = true
	return token{}
}

func (c *client) Disconnect(uint) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.connected = false
	c.disconnects++
}

func (c *client) Publish(topic string, _ byte, retained bool, payload interface{}) mqtt.Token {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.publishErr != nil {
		return token{err: c.publishErr}
	}
	c.publications = append(c.publications, publication{topic: topic, retained: retained, payload: payload.([]byte)})
	return token{}
}

type PublisherSuite struct {
	suite.Suite
	client *client
	pub    *Publisher
}

func TestPublisherSuite(t *testing.T) {
	suite.Run(t, new(PublisherSuite))
}

func (s *PublisherSuite) SetupTest() {
	s.client = &client{}
	s.pub = newPublisher(Config{Broker: "localhost:1883", ClientID: "test"}, s.client, nil)
}

func (s *PublisherSuite) TestTopics() {
	s.Equal("bebop/test/status", s.pub.StatusTopic())
	s.Equal("bebop/test/phase", s.pub.PhaseTopic())

	custom := newPublisher(Config{Prefix: "fleet/one"}, s.client, nil)
	s.Equal("fleet/one/status", custom.StatusTopic())
}

func (s *PublisherSuite) TestNotConnected() {
	s.ErrorIs(s.pub.Publish(bebop.Status{}), ErrNotConnected)
	_, failed := s.pub.Counts()
	s.Equal(uint64(1), failed)
}

func (s *PublisherSuite) TestPhaseIsRetainedOnChange() {
	s.Require().NoError(s.pub.Connect())
	s.Require().NoError(s.pub.Publish(bebop.Status{Phase: "connected", Battery: 80}))
	s.Require().NoError(s.pub.Publish(bebop.Status{Phase: "connected", Battery: 79}))
	s.Require().NoError(s.pub.Publish(bebop.Status{Phase: "disconnected", Battery: -1}))

	s.client.mu.Lock()
	defer s.client.mu.Unlock()
	s.Require().Len(s.client.publications, 5)
	s.Equal(publication{topic: "bebop/test/phase", retained: true, payload: []byte("connected")}, s.client.publications[0])
	s.Equal("bebop/test/status", s.client.publications[1].topic)
	s.False(s.client.publications[1].retained)
	s.Equal("bebop/test/status", s.client.publications[2].topic)
	s.Equal("disconnected", string(s.client.publications[3].payload))

	var st bebop.Status
	s.Require().NoError(json.Unmarshal(s.client.publications[2].payload, &st))
	s.Equal(79, st.Battery)

	published, failed := s.pub.Counts()
	s.Equal(uint64(5), published)
	s.Zero(failed)
}

func (s *PublisherSuite) TestPublishError() {
	s.Require().NoError(s.pub.Connect())
	s.client.publishErr = errors.New("broker gone")
	err := s.pub.Publish(bebop.Status{Phase: "connected"})
	s.ErrorContains(err, "broker gone")

	// the phase was not delivered, so it is sent again
	s.client.publishErr = nil
	s.Require().NoError(s.pub.Publish(bebop.Status{Phase: "connected"}))
	s.client.mu.Lock()
	defer s.client.mu.Unlock()
	s.Equal("bebop/test/phase", s.client.publications[0].topic)
}

func (s *PublisherSuite) TestDisconnect() {
	s.pub.Disconnect()
	s.Zero(s.client.disconnects)
	s.Require().NoError(s.pub.Connect())
	s.pub.Disconnect()
	s.Equal(1, s.client.disconnects)
}
