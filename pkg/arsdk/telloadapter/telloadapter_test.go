package telloadapter

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/SMerrony/tello"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/suite"

	"github.com/einherij/bebop/pkg/arsdk"
	"github.com/einherij/bebop/pkg/tellointer"
	"github.com/einherij/bebop/pkg/tellointer/mock_tellointer"
)

type events struct {
	mu      sync.Mutex
	states  []arsdk.DeviceState
	codes   []arsdk.ErrorCode
	args    map[arsdk.DictionaryKey]arsdk.Args
	battery []uint8
	frames  []*arsdk.Frame
}

func (e *events) callbacks() arsdk.Callbacks {
	return arsdk.Callbacks{
		StateChanged: func(state arsdk.DeviceState, code arsdk.ErrorCode) {
			e.mu.Lock()
			defer e.mu.Unlock()
			e.states = append(e.states, state)
			e.codes = append(e.codes, code)
		},
		CommandReceived: func(key arsdk.DictionaryKey, args arsdk.Args) {
			e.mu.Lock()
			defer e.mu.Unlock()
			e.args[key] = args
		},
		BatteryChanged: func(percent uint8) {
			e.mu.Lock()
			defer e.mu.Unlock()
			e.battery = append(e.battery, percent)
		},
		FrameReceived: func(f *arsdk.Frame) {
			e.mu.Lock()
			defer e.mu.Unlock()
			e.frames = append(e.frames, f)
		},
	}
}

func (e *events) lastState() arsdk.DeviceState {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.states) == 0 {
		return -1
	}
	return e.states[len(e.states)-1]
}

type AdapterSuite struct {
	suite.Suite
	mockCtrl *gomock.Controller
	drone    *mock_tellointer.MockDrone
	ctrl     *Controller
	ev       *events
}

func TestAdapterSuite(t *testing.T) {
	suite.Run(t, new(AdapterSuite))
}

func (s *AdapterSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.drone = mock_tellointer.NewMockDrone(s.mockCtrl)
	rt := New(func() tellointer.Drone { return s.drone })
	rt.PollInterval = time.Millisecond
	c, code := rt.NewController("192.168.10.1:8889")
	s.Require().Equal(arsdk.OK, code)
	s.ctrl = c.(*Controller)
	s.ev = &events{args: make(map[arsdk.DictionaryKey]arsdk.Args)}
	s.Require().Equal(arsdk.OK, s.ctrl.SetCallbacks(s.ev.callbacks()))
}

func (s *AdapterSuite) TearDownTest() {
	s.ctrl.Close()
	s.mockCtrl.Finish()
}

func (s *AdapterSuite) start(fd tello.FlightData) {
	s.drone.EXPECT().ControlConnectDefault().Return(nil)
	s.drone.EXPECT().GetFlightData().Return(fd).AnyTimes()
	s.drone.EXPECT().ControlDisconnect().MaxTimes(1)
	s.Require().Equal(arsdk.OK, s.ctrl.Start())
	s.Eventually(func() bool { return s.ev.lastState() == arsdk.StateRunning }, time.Second, time.Millisecond)
}

func (s *AdapterSuite) TestNilDroneFactory() {
	_, code := (&Runtime{}).NewController("")
	s.Equal(arsdk.ErrInit, code)
}

func (s *AdapterSuite) TestConnectFailure() {
	s.drone.EXPECT().ControlConnectDefault().Return(errors.New("no route"))
	s.Require().Equal(arsdk.OK, s.ctrl.Start())
	s.Eventually(func() bool { return s.ev.lastState() == arsdk.StateStopped }, time.Second, time.Millisecond)

	s.ev.mu.Lock()
	defer s.ev.mu.Unlock()
	s.Equal([]arsdk.ErrorCode{arsdk.OK, arsdk.ErrInit}, s.ev.codes)
}

func (s *AdapterSuite) TestFlightDataBecomesTelemetry() {
	s.start(tello.FlightData{
		BatteryPercentage: 64,
		Height:            15,
		Flying:            true,
		DroneHover:        true,
		BatteryLow:        true,
		WifiStrength:      90,
	})

	s.Eventually(func() bool {
		s.ev.mu.Lock()
		defer s.ev.mu.Unlock()
		_, ok := s.ev.args[arsdk.KeyPilotingAlertStateChanged]
		return ok && len(s.ev.battery) > 0
	}, time.Second, time.Millisecond)

	s.ev.mu.Lock()
	defer s.ev.mu.Unlock()
	s.Equal([]uint8{64}, s.ev.battery, "unchanged battery is published once")
	s.Equal(arsdk.Args{arsdk.ArgAltitude: 1.5}, s.ev.args[arsdk.KeyPilotingAltitudeChanged])
	s.Equal(flyingHovering, s.ev.args[arsdk.KeyPilotingFlyingStateChanged][arsdk.ArgState])
	s.Equal(alertLowBattery, s.ev.args[arsdk.KeyPilotingAlertStateChanged][arsdk.ArgState])
}

func (s *AdapterSuite) TestSticks() {
	s.start(tello.FlightData{})
	s.drone.EXPECT().UpdateSticks(tello.StickMessage{Rx: 32767, Ry: -16384, Lx: 0, Ly: 3277})
	s.drone.EXPECT().UpdateSticks(tello.StickMessage{Lx: -32767})
	s.drone.EXPECT().Hover()

	s.Equal(arsdk.OK, s.ctrl.PCMD(true, 1, -0.5, 0, 0.1))
	s.Equal(arsdk.OK, s.ctrl.PCMD(false, 1, 1, -1, 0))
	s.Equal(arsdk.OK, s.ctrl.PCMD(false, 0.3, 0, 0, 0))
	s.Equal(arsdk.ErrBadParameter, s.ctrl.PCMD(true, 2, 0, 0, 0))
}

func (s *AdapterSuite) TestCommands() {
	s.Equal(arsdk.ErrState, s.ctrl.Takeoff())
	s.start(tello.FlightData{})
	s.drone.EXPECT().TakeOff()
	s.drone.EXPECT().Land()
	s.drone.EXPECT().Flip(tello.FlipBackward)

	s.Equal(arsdk.OK, s.ctrl.Takeoff())
	s.Equal(arsdk.OK, s.ctrl.Landing())
	s.Equal(arsdk.OK, s.ctrl.Flip(arsdk.FlipBack))
	s.Equal(arsdk.ErrBadParameter, s.ctrl.Flip(arsdk.FlipDirection(7)))
	s.Equal(arsdk.ErrNotSupported, s.ctrl.Emergency())
	s.Equal(arsdk.ErrNotSupported, s.ctrl.CameraOrientation(0, 0))
	s.Equal(arsdk.ErrNotSupported, s.ctrl.SendSetting(arsdk.SettingMaxTilt, nil))
}

func (s *AdapterSuite) TestVideo() {
	s.start(tello.FlightData{})
	stream := make(chan []byte, 2)
	s.drone.EXPECT().VideoConnectDefault().Return((<-chan []byte)(stream), nil)
	s.drone.EXPECT().SetVideoWide()
	s.drone.EXPECT().GetVideoSpsPps().MinTimes(1)
	s.drone.EXPECT().VideoDisconnect()

	s.Require().Equal(arsdk.OK, s.ctrl.EnableVideoStream(true))
	stream <- []byte{0, 0, 0, 1, 0x67, 0x42}
	stream <- []byte{0, 0, 1, 0x41, 0x9a}
	s.Eventually(func() bool {
		s.ev.mu.Lock()
		defer s.ev.mu.Unlock()
		return len(s.ev.frames) == 2
	}, time.Second, time.Millisecond)
	s.Equal(arsdk.OK, s.ctrl.EnableVideoStream(false))

	s.ev.mu.Lock()
	defer s.ev.mu.Unlock()
	s.True(s.ev.frames[0].IsIFrame)
	s.False(s.ev.frames[1].IsIFrame)
	s.Equal(arsdk.CodecH264, s.ev.frames[1].Codec)
	s.Equal(uint64(2), s.ev.frames[1].Seq)
}

func (s *AdapterSuite) TestStopDisconnects() {
	s.start(tello.FlightData{})
	s.Equal(arsdk.OK, s.ctrl.Stop())
	s.Eventually(func() bool { return s.ev.lastState() == arsdk.StateStopped }, time.Second, time.Millisecond)
	state, code := s.ctrl.State()
	s.Equal(arsdk.OK, code)
	s.Equal(arsdk.StateStopped, state)
}

func (s *AdapterSuite) TestIsKeyFrame() {
	s.True(isKeyFrame([]byte{0, 0, 1, 0x65, 1, 2}))
	s.True(isKeyFrame([]byte{9, 0, 0, 0, 1, 0x67}))
	s.False(isKeyFrame([]byte{0, 0, 1, 0x41}))
	s.False(isKeyFrame([]byte{0, 0}))
}
