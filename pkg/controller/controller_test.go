package controller

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/einherij/bebop/pkg/arsdk"
	"github.com/einherij/bebop/pkg/bebop"
	"github.com/einherij/bebop/pkg/telemetry"
	"github.com/einherij/bebop/pkg/wsclient"
)

type pilot struct {
	calls    []string
	err      error
	battery  int
	registry *telemetry.Registry
}

func (p *pilot) call(format string, args ...any) error {
	p.calls = append(p.calls, fmt.Sprintf(format, args...))
	return p.err
}

func (p *pilot) Takeoff() error { return p.call("Takeoff") }
func (p *pilot) Land() error { return p.call("Land") }
func (p *pilot) Emergency() error { return p.call("Emergency") }
func (p *pilot) FlatTrim() error { return p.call("FlatTrim") }
func (p *pilot) NavigateHome(start bool) error {
	return p.call("NavigateHome(%t)", start)
}
func (p *pilot) AnimationFlip(direction arsdk.FlipDirection) error {
	return p.call("AnimationFlip(%d)", direction)
}
func (p *pilot) Move(roll, pitch, gazSpeed, yawSpeed float64) error {
	return p.call("Move(%.1f,%.1f,%.1f,%.1f)", roll, pitch, gazSpeed, yawSpeed)
}
func (p *pilot) MoveCamera(tilt, pan float64) error {
	return p.call("MoveCamera(%.1f,%.1f)", tilt, pan)
}
func (p *pilot) StartStreaming() error { return p.call("StartStreaming") }
func (p *pilot) StopStreaming() { _ = p.call("StopStreaming") }
func (p *pilot) BatteryPercent() (uint8, bool) {
	return uint8(p.battery), p.battery >= 0
}
func (p *pilot) Telemetry() *telemetry.Registry { return p.registry }

type messenger struct {
	mu       sync.Mutex
	incoming chan wsclient.Message
	sent     []wsclient.Message
}

func (m *messenger) SendMessage(message wsclient.Message) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, message)
	return true
}

func (m *messenger) ReceiveMessage(ctx context.Context) wsclient.Message {
	select {
	case <-ctx.Done():
		return wsclient.Message{}
	case msg := <-m.incoming:
		return msg
	}
}

func (m *messenger) last() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.sent) == 0 {
		return ""
	}
	return string(m.sent[len(m.sent)-1].Content)
}

type ControllerSuite struct {
	suite.Suite
	pilot *pilot
	ws    *messenger
	ctrl  *Controller
}

func TestControllerSuite(t *testing.T) {
	suite.Run(t, new(ControllerSuite))
}

func (s *ControllerSuite) SetupTest() {
	s.pilot = &pilot{battery: -1, registry: telemetry.NewRegistry()}
	s.ws = &messenger{incoming: make(chan wsclient.Message, 4)}
	s.ctrl = New(s.ws, s.pilot)
}

func (s *ControllerSuite) TestSticksCombine() {
	for _, cmd := range []string{"Dw", "Dd", "Dq", "Uw", "Ud", "Uq", "Dr", "Ur"} {
		s.ctrl.Handle(cmd)
	}
	s.Equal([]string{
		"Move(0.0,0.5,0.0,0.0)",
		"Move(0.5,0.5,0.0,0.0)",
		"Move(0.5,0.5,0.0,-0.5)",
		"Move(0.5,0.0,0.0,-0.5)",
		"Move(0.0,0.0,0.0,-0.5)",
		"Move(0.0,0.0,0.0,0.0)",
		"Move(0.0,0.0,0.5,0.0)",
		"Move(0.0,0.0,0.0,0.0)",
	}, s.pilot.calls)
}

func (s *ControllerSuite) TestRejectedMoveKeepsSticks() {
	s.ctrl.Handle("Dw")
	s.pilot.err = bebop.ErrNotConnected
	s.ctrl.Handle("Dd")
	s.pilot.err = nil
	s.ctrl.Handle("Dr")
	s.Equal([]string{
		"Move(0.0,0.5,0.0,0.0)",
		"Move(0.5,0.5,0.0,0.0)",
		"Move(0.0,0.5,0.5,0.0)",
	}, s.pilot.calls)
}

func (s *ControllerSuite) TestCommands() {
	for _, cmd := range []string{"Du", "Dl", "Dx", "Dt", "Dh", "Uh", "D8", "D4", "Dv", "Uv"} {
		s.ctrl.Handle(cmd)
	}
	s.Equal([]string{
		"Takeoff", "Land", "Emergency", "FlatTrim",
		"NavigateHome(true)", "NavigateHome(false)",
		fmt.Sprintf("AnimationFlip(%d)", arsdk.FlipFront),
		fmt.Sprintf("AnimationFlip(%d)", arsdk.FlipLeft),
		"StartStreaming", "StopStreaming",
	}, s.pilot.calls)
}

func (s *ControllerSuite) TestCameraIsKeptInRange() {
	for i := 0; i < 12; i++ {
		s.ctrl.Handle("Di")
	}
	s.ctrl.Handle("Dj")
	s.Equal("MoveCamera(1.0,0.0)", s.pilot.calls[11])
	s.Equal("MoveCamera(1.0,-0.1)", s.pilot.calls[12])
	s.ctrl.Handle("Do")
	s.Equal("MoveCamera(0.0,0.0)", s.pilot.calls[13])
}

func (s *ControllerSuite) TestReplyCarriesStatus() {
	s.ctrl.Handle("Du")
	s.Equal("Command Started Take Off BatPrc: unknown", s.ws.last())

	s.pilot.battery = 64
	s.pilot.registry.Dispatch(arsdk.KeyPilotingFlyingStateChanged, arsdk.Args{arsdk.ArgState: int32(telemetry.FlyingHovering)}, time.Now())
	s.pilot.registry.Dispatch(arsdk.KeyPilotingAlertStateChanged, arsdk.Args{arsdk.ArgState: int32(4)}, time.Now())
	s.ctrl.Handle("zz")
	s.Equal("Command zz BatPrc: 64; State: hovering Alert: low_battery", s.ws.last())
}

func (s *ControllerSuite) TestFailureIsReported() {
	s.pilot.err = bebop.ErrNotConnected
	s.ctrl.Handle("Du")
	s.Contains(s.ws.last(), "Started Take Off failed: "+bebop.ErrNotConnected.Error())
}

func (s *ControllerSuite) TestRunHandlesOnlyCommands() {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		s.ctrl.Run(ctx)
	}()
	s.ws.incoming <- wsclient.Message{Type: wsclient.MTLog, Content: []byte("Du")}
	s.ws.incoming <- wsclient.Message{Type: wsclient.MTCmd, Content: []byte("Dl")}
	s.Eventually(func() bool { return s.ws.last() != "" }, time.Second, time.Millisecond)
	cancel()
	<-done
	s.Equal([]string{"Land"}, s.pilot.calls)
}
