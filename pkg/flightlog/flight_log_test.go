package flightlog

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/einherij/bebop/pkg/bebop"
	"github.com/einherij/bebop/pkg/framesync"
	"github.com/einherij/bebop/pkg/telemetry"
)

type script struct {
	mu       sync.Mutex
	statuses []bebop.Status
}

func (s *script) Status() bebop.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.statuses[0]
	if len(s.statuses) > 1 {
		s.statuses = s.statuses[1:]
	}
	return st
}

type LogSuite struct {
	suite.Suite
	ctx context.Context
	log *Log
	t0  time.Time
}

func TestLogSuite(t *testing.T) {
	suite.Run(t, new(LogSuite))
}

func (s *LogSuite) SetupTest() {
	s.ctx = context.Background()
	log, err := Open(filepath.Join(s.T().TempDir(), "flights.db"))
	s.Require().NoError(err)
	s.Require().NoError(log.Migrate(s.ctx))
	s.Require().NoError(log.Migrate(s.ctx), "migrate is idempotent")
	s.log = log
	s.t0 = time.UnixMilli(1_700_000_000_000)
}

func (s *LogSuite) TearDownTest() {
	s.NoError(s.log.Close())
}

func (s *LogSuite) status(phase bebop.Phase, battery int, offset time.Duration) bebop.Status {
	return bebop.Status{
		Phase:   phase.String(),
		State:   "running",
		Battery: battery,
		Frames:  framesync.Stats{Pushed: 3, Delivered: 2, Dropped: 1},
		Telemetry: map[string]telemetry.Reading{
			"piloting.altitude": {Value: 1.5, At: s.t0, Updates: 4},
		},
		At: s.t0.Add(offset),
	}
}

func (s *LogSuite) TestRecordWithoutFlight() {
	s.ErrorIs(s.log.Record(s.ctx, s.status(bebop.PhaseConnected, 90, 0)), ErrNoFlight)
}

func (s *LogSuite) TestRecordAndRecent() {
	id, err := s.log.Begin(s.ctx, "192.168.42.1:44444", s.t0)
	s.Require().NoError(err)
	s.Equal(id, s.log.Flight())

	for i := 0; i < 3; i++ {
		s.Require().NoError(s.log.Record(s.ctx, s.status(bebop.PhaseConnected, 90-i, time.Duration(i)*time.Second)))
	}

	samples, err := s.log.Recent(s.ctx, id, 2)
	s.Require().NoError(err)
	s.Require().Len(samples, 2)
	s.Equal(88, samples[0].Battery)
	s.Equal(89, samples[1].Battery)
	s.Equal("connected", samples[0].Phase)
	s.Equal(id, samples[0].Flight)
	s.True(samples[0].RecordedAt.Equal(s.t0.Add(2 * time.Second)))

	st := samples[0].Status
	s.Equal(framesync.Stats{Pushed: 3, Delivered: 2, Dropped: 1}, st.Frames)
	s.True(st.At.Equal(s.t0.Add(2 * time.Second)))
	s.Require().Contains(st.Telemetry, "piloting.altitude")
	s.Equal(1.5, st.Telemetry["piloting.altitude"].Value)
	s.Equal(uint64(4), st.Telemetry["piloting.altitude"].Updates)
}

func (s *LogSuite) TestFlights() {
	first, err := s.log.Begin(s.ctx, "bebop", s.t0)
	s.Require().NoError(err)
	s.Require().NoError(s.log.Record(s.ctx, s.status(bebop.PhaseConnected, 50, 0)))
	s.Require().NoError(s.log.End(s.ctx, s.t0.Add(time.Minute)))
	s.Empty(s.log.Flight())
	s.NoError(s.log.End(s.ctx, s.t0), "ending twice is a no-op")

	second, err := s.log.Begin(s.ctx, "bebop", s.t0.Add(time.Hour))
	s.Require().NoError(err)
	s.NotEqual(first, second)

	flights, err := s.log.Flights(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(flights, 2)
	s.Equal(second, flights[0].ID)
	s.True(flights[0].EndedAt.IsZero())
	s.Zero(flights[0].Samples)
	s.Equal(first, flights[1].ID)
	s.Equal(1, flights[1].Samples)
	s.True(flights[1].EndedAt.Equal(s.t0.Add(time.Minute)))
}

func (s *LogSuite) TestRecorderFollowsPhase() {
	src := &script{statuses: []bebop.Status{
		s.status(bebop.PhaseDisconnected, -1, 0),
		s.status(bebop.PhaseConnected, 80, time.Second),
		s.status(bebop.PhaseConnected, 79, 2*time.Second),
		s.status(bebop.PhaseDisconnected, -1, 3*time.Second),
		s.status(bebop.PhaseConnected, 78, 4*time.Second),
	}}
	rec := NewRecorder(s.log, src, "sim", time.Millisecond)
	for i := 0; i < 5; i++ {
		rec.Sample(s.ctx)
	}

	flights, err := s.log.Flights(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(flights, 2)
	s.Equal(1, flights[0].Samples)
	s.Equal(2, flights[1].Samples)
	s.Equal("sim", flights[1].Target)
	s.True(flights[1].EndedAt.Equal(s.t0.Add(3 * time.Second)))
	s.Equal(flights[0].ID, s.log.Flight())
}

func (s *LogSuite) TestRecorderRunEndsFlight() {
	src := &script{statuses: []bebop.Status{s.status(bebop.PhaseConnected, 70, 0)}}
	rec := NewRecorder(s.log, src, "sim", time.Millisecond)
	ctx, cancel := context.WithCancel(s.ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		rec.Run(ctx)
	}()
	s.Eventually(func() bool { return s.log.Flight() != "" }, time.Second, time.Millisecond)
	cancel()
	<-done
	s.Empty(s.log.Flight())
}
