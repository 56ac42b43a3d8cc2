package wsclient

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

const (
	queueSize         = 16
	reconnectInterval = 5 * time.Second
)

type Client struct {
	serverURL   string
	sendChan    chan Message
	receiveChan chan Message
}

type MessageType string

const (
	MTUndefined MessageType = ""
	MTLog       MessageType = "log"
	MTCmd       MessageType = "cmd"
	MTTelemetry MessageType = "telemetry"
)

type Message struct {
	Type    MessageType `json:"type"`
	Content []byte      `json:"content"`
}

func New(serverURL string) *Client {
	return &Client{
		serverURL:   serverURL,
		sendChan:    make(chan Message, queueSize),
		receiveChan: make(chan Message, queueSize),
	}
}

// SendMessage queues a message for the handler host. It reports false and
// drops the message when the queue is full, e.g. while the link is down.
func (c *Client) SendMessage(message Message) bool {
	select {
	case c.sendChan <- message:
		return true
	default:
		logrus.WithField("type", message.Type).Debug("websocket send queue full, message dropped")
		return false
	}
}

func (c *Client) ReceiveMessage(ctx context.Context) Message {
	select {
	case <-ctx.Done():
		return Message{}
	case msg := <-c.receiveChan:
		return msg
	}
}

func (c *Client) URL() string {
	return "ws" + strings.TrimPrefix(c.serverURL, "http") + "drone/ws/"
}

func (c *Client) Run(ctx context.Context) {
	logrus.Warnf("started websocket client")
	timer := time.NewTimer(0)
	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			logrus.Warnf("stopped websocket client")
			return
		case <-timer.C:
			c.serve(ctx)
			timer.Reset(reconnectInterval)
		}
	}
}

// serve holds one connection until it fails or ctx is done.
func (c *Client) serve(ctx context.Context) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, c.URL(), nil)
	if err != nil {
		logrus.Error(fmt.Errorf("error connecting to server's web socket: %w", err))
		return
	}
	defer func() { _ = conn.Close() }()

	connCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	received := make(chan struct{})
	go func() {
		defer close(received)
		defer cancel()
		c.receiveMessages(connCtx, conn)
	}()
	c.sendMessages(connCtx, conn)

	// unblocks ReadJSON
	_ = conn.Close()
	<-received
}

func (c *Client) receiveMessages(ctx context.Context, conn *websocket.Conn) {
	for {
		var msg Message
		if err := conn.ReadJSON(&msg); err != nil {
			if ctx.Err() == nil {
				logrus.Error(fmt.Errorf("error reading message from web socket: %w", err))
			}
			return
		}
		select {
		case c.receiveChan <- msg:
		case <-ctx.Done():
			return
		case <-time.After(200 * time.Millisecond):
			continue
		}
	}
}

func (c *Client) sendMessages(ctx context.Context, conn *websocket.Conn) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg := <-c.sendChan:
			if err := conn.WriteJSON(msg); err != nil {
				logrus.Error(fmt.Errorf("error writing message to web socket: %w", err))
				return
			}
		}
	}
}
