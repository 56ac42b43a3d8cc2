package framesync

import (
	"bytes"
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type ChannelSuite struct {
	suite.Suite
	ch *Channel
}

func TestChannelSuite(t *testing.T) {
	suite.Run(t, new(ChannelSuite))
}

func (s *ChannelSuite) SetupTest() {
	s.ch = New()
	s.ch.Open()
}

func (s *ChannelSuite) TestPushThenGetExactlyOnce() {
	s.True(s.ch.Push([]byte{0xAA, 0xBB}, 1, 1))

	out, w, h, ok := s.ch.Get(context.Background(), nil)
	s.True(ok)
	s.Equal([]byte{0xAA, 0xBB}, out)
	s.Equal(uint32(1), w)
	s.Equal(uint32(1), h)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, _, _, ok = s.ch.Get(ctx, nil)
	s.False(ok, "second read must block instead of returning the same frame")
}

func (s *ChannelSuite) TestLastWriteWins() {
	s.ch.Push([]byte{1}, 1, 1)
	s.ch.Push([]byte{2, 2}, 2, 1)

	out, w, _, ok := s.ch.Get(context.Background(), nil)
	s.True(ok)
	s.Equal([]byte{2, 2}, out)
	s.Equal(uint32(2), w)
	s.Equal(Stats{Pushed: 2, Delivered: 1, Dropped: 1}, s.ch.Stats())
}

func (s *ChannelSuite) TestPushCopiesInput() {
	data := []byte{7, 7, 7}
	s.ch.Push(data, 1, 1)
	data[0] = 0

	out, _, _, ok := s.ch.Get(context.Background(), make([]byte, 0, 16))
	s.True(ok)
	s.Equal([]byte{7, 7, 7}, out)
}

func (s *ChannelSuite) TestGetWaitsForPush() {
	done := make(chan []byte)
	go func() {
		out, _, _, _ := s.ch.Get(context.Background(), nil)
		done <- out
	}()

	select {
	case <-done:
		s.Fail("Get returned before any frame")
	case <-time.After(20 * time.Millisecond):
	}
	s.ch.Push([]byte{9}, 1, 1)

	select {
	case out := <-done:
		s.Equal([]byte{9}, out)
	case <-time.After(time.Second):
		s.Fail("waiter not woken by push")
	}
}

func (s *ChannelSuite) TestCloseWakesWaiters() {
	var wg sync.WaitGroup
	results := make(chan bool, 3)
	for i := 0; i < 3; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, _, ok := s.ch.Get(context.Background(), nil)
			results <- ok
		}()
	}
	time.Sleep(20 * time.Millisecond)
	s.ch.Close()
	wg.Wait()
	close(results)
	for ok := range results {
		s.False(ok)
	}

	s.False(s.ch.Push([]byte{1}, 1, 1))
	_, _, _, ok := s.ch.Get(context.Background(), nil)
	s.False(ok)
}

func (s *ChannelSuite) TestReopenDiscardsStaleFrame() {
	s.ch.Push([]byte{1}, 1, 1)
	s.ch.Close()
	s.ch.Open()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, _, _, ok := s.ch.Get(ctx, nil)
	s.False(ok)
}

func (s *ChannelSuite) TestDimensions() {
	fresh := New()
	s.Zero(fresh.Width())
	s.Zero(fresh.Height())

	s.ch.Push([]byte{0}, 640, 480)
	s.Equal(uint32(640), s.ch.Width())
	s.Equal(uint32(480), s.ch.Height())
}

func (s *ChannelSuite) TestNoTornReads() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var wg sync.WaitGroup
	for p := 1; p <= 4; p++ {
		wg.Add(1)
		go func(size int) {
			defer wg.Done()
			frame := bytes.Repeat([]byte{byte(size)}, size*100)
			for ctx.Err() == nil {
				s.ch.Push(frame, uint32(size), 100)
			}
		}(p)
	}

	var buf []byte
	for i := 0; i < 500; i++ {
		out, w, h, ok := s.ch.Get(ctx, buf)
		s.Require().True(ok)
		s.Require().Len(out, int(w*h))
		s.Require().Equal(bytes.Repeat([]byte{byte(w)}, int(w*h)), out)
		buf = out
	}
	cancel()
	wg.Wait()
}
