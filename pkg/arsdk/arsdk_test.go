package arsdk

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type ArsdkSuite struct {
	suite.Suite
}

func TestArsdkSuite(t *testing.T) {
	suite.Run(t, new(ArsdkSuite))
}

func (s *ArsdkSuite) TestArgsConversions() {
	args := Args{
		ArgAltitude: float32(12.5),
		ArgState:    uint32(3),
		ArgEnabled:  uint8(1),
		ArgName:     "Bebop2",
		ArgRSSI:     int16(-60),
	}

	alt, err := args.Float(ArgAltitude)
	s.NoError(err)
	s.InDelta(12.5, alt, 1e-6)

	state, err := args.Int(ArgState)
	s.NoError(err)
	s.Equal(int64(3), state)

	enabled, err := args.Bool(ArgEnabled)
	s.NoError(err)
	s.True(enabled)

	name, err := args.String(ArgName)
	s.NoError(err)
	s.Equal("Bebop2", name)

	rssi, err := args.Float(ArgRSSI)
	s.NoError(err)
	s.Equal(-60.0, rssi)

	_, err = args.Int(ArgAltitude)
	s.Error(err)
	_, err = args.Float(ArgPan)
	s.Error(err)
	_, err = args.String(ArgState)
	s.Error(err)
}

func (s *ArsdkSuite) TestKeysAreNamedAndUnique() {
	keys := Keys()
	s.Len(keys, len(keyNames))
	seen := make(map[DictionaryKey]struct{})
	for _, k := range keys {
		_, dup := seen[k]
		s.False(dup, k.String())
		seen[k] = struct{}{}
		s.Contains(keyNames, k)
	}
	s.Equal("key(9999)", DictionaryKey(9999).String())
}

func (s *ArsdkSuite) TestSettingKeysAreKnown() {
	for id, key := range SettingKeys {
		s.Contains(keyNames, key, id.String())
	}
}

func (s *ArsdkSuite) TestDispatcherRunsInOrder() {
	d := NewDispatcher()

	var mu sync.Mutex
	var got []int
	for i := 0; i < 50; i++ {
		i := i
		s.True(d.Post(func() {
			mu.Lock()
			got = append(got, i)
			mu.Unlock()
		}))
	}
	d.Close()

	s.Len(got, 50)
	for i, v := range got {
		s.Equal(i, v)
	}
	s.False(d.Post(func() {}))
	d.Close()
}

func (s *ArsdkSuite) TestDispatcherPostWaitKeepsEventsWhenQueueIsFull() {
	d := NewDispatcher()
	defer d.Close()

	release := make(chan struct{})
	s.True(d.Post(func() { <-release }))
	for i := 0; i < dispatchQueueSize; i++ {
		s.True(d.Post(func() {}))
	}
	s.False(d.Post(func() {}), "queue is full")

	delivered := make(chan struct{})
	posted := make(chan bool, 1)
	go func() {
		posted <- d.PostWait(func() { close(delivered) })
	}()

	select {
	case <-posted:
		s.Fail("PostWait returned while the queue was full")
	case <-time.After(50 * time.Millisecond):
	}
	close(release)

	select {
	case ok := <-posted:
		s.True(ok)
	case <-time.After(2 * time.Second):
		s.FailNow("PostWait never enqueued")
	}
	select {
	case <-delivered:
	case <-time.After(2 * time.Second):
		s.Fail("state event was not delivered")
	}
}

func (s *ArsdkSuite) TestDispatcherCloseReleasesPostWait() {
	d := NewDispatcher()

	release := make(chan struct{})
	s.True(d.Post(func() { <-release }))
	for i := 0; i < dispatchQueueSize; i++ {
		s.True(d.Post(func() {}))
	}

	posted := make(chan bool, 1)
	go func() {
		posted <- d.PostWait(func() {})
	}()
	time.Sleep(20 * time.Millisecond)

	closed := make(chan struct{})
	go func() {
		d.Close()
		close(closed)
	}()
	select {
	case ok := <-posted:
		s.False(ok)
	case <-time.After(2 * time.Second):
		s.FailNow("Close did not release PostWait")
	}
	close(release)
	select {
	case <-closed:
	case <-time.After(2 * time.Second):
		s.Fail("Close did not return")
	}
	s.False(d.PostWait(func() {}))
}
