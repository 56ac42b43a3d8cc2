package wsclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/suite"
)

type ClientSuite struct {
	suite.Suite
	srv      *httptest.Server
	received chan Message
	outgoing chan Message
}

func TestClientSuite(t *testing.T) {
	suite.Run(t, new(ClientSuite))
}

func (s *ClientSuite) SetupTest() {
	s.received = make(chan Message, 4)
	s.outgoing = make(chan Message, 4)
	upgrader := websocket.Upgrader{}
	mux := http.NewServeMux()
	mux.HandleFunc("/drone/ws/", func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		go func() {
			for msg := range s.outgoing {
				if conn.WriteJSON(msg) != nil {
					return
				}
			}
		}()
		for {
			var msg Message
			if err := conn.ReadJSON(&msg); err != nil {
				return
			}
			s.received <- msg
		}
	})
	s.srv = httptest.NewServer(mux)
}

func (s *ClientSuite) TearDownTest() {
	close(s.outgoing)
	s.srv.Close()
}

func (s *ClientSuite) TestURL() {
	c := New("https://example.org/")
	s.Equal("wss://example.org/drone/ws/", c.URL())
}

func (s *ClientSuite) TestExchange() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	c := New(s.srv.URL + "/")
	done := make(chan struct{})
	go func() {
		defer close(done)
		c.Run(ctx)
	}()

	s.True(c.SendMessage(Message{Type: MTLog, Content: []byte("hello")}))
	select {
	case msg := <-s.received:
		s.Equal(MTLog, msg.Type)
		s.Equal("hello", string(msg.Content))
	case <-time.After(2 * time.Second):
		s.FailNow("server never received the message")
	}

	s.outgoing <- Message{Type: MTCmd, Content: []byte("Du")}
	recvCtx, recvCancel := context.WithTimeout(ctx, 2*time.Second)
	defer recvCancel()
	msg := c.ReceiveMessage(recvCtx)
	s.Equal(MTCmd, msg.Type)
	s.Equal("Du", string(msg.Content))

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		s.Fail("client did not stop")
	}
}

func (s *ClientSuite) TestSendDropsWhenQueueFull() {
	c := New(s.srv.URL + "/")
	for i := 0; i < queueSize; i++ {
		s.True(c.SendMessage(Message{Type: MTTelemetry}))
	}
	s.False(c.SendMessage(Message{Type: MTTelemetry}))
}

func (s *ClientSuite) TestReceiveHonoursContext() {
	c := New(s.srv.URL + "/")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s.Equal(Message{}, c.ReceiveMessage(ctx))
}
