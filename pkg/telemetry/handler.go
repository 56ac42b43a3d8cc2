// Package telemetry caches the latest decoded value of every state and
// setting event the vehicle reports.
//
// Handlers run on the runtime's callback goroutine, so Update never blocks:
// readings are published with atomic pointer swaps and read lock-free.
package telemetry

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/einherij/bebop/pkg/arsdk"
)

// Handler consumes raw events of one dictionary key.
type Handler interface {
	Key() arsdk.DictionaryKey
	Update(args arsdk.Args, at time.Time) error
	// Reading returns the latest decoded value, false before the first event.
	Reading() (Reading, bool)
}

// Reading is a decoded value with the time it was received.
type Reading struct {
	Value   any       `json:"value" msgpack:"value"`
	At      time.Time `json:"at" msgpack:"at"`
	Updates uint64    `json:"updates" msgpack:"updates"`
}

type sample[T any] struct {
	value T
	at    time.Time
}

// Value is the handler for keys carrying a single decoded value.
type Value[T any] struct {
	key     arsdk.DictionaryKey
	decode  func(arsdk.Args) (T, error)
	latest  atomic.Pointer[sample[T]]
	updates atomic.Uint64
}

func newValue[T any](key arsdk.DictionaryKey, decode func(arsdk.Args) (T, error)) *Value[T] {
	return &Value[T]{key: key, decode: decode}
}

func (v *Value[T]) Key() arsdk.DictionaryKey {
	return v.key
}

func (v *Value[T]) Update(args arsdk.Args, at time.Time) error {
	decoded, err := v.decode(args)
	if err != nil {
		return fmt.Errorf("decode %s: %w", v.key, err)
	}
	v.latest.Store(&sample[T]{value: decoded, at: at})
	v.updates.Add(1)
	return nil
}

// Get returns the latest value and when it arrived.
func (v *Value[T]) Get() (T, time.Time, bool) {
	s := v.latest.Load()
	if s == nil {
		var zero T
		return zero, time.Time{}, false
	}
	return s.value, s.at, true
}

func (v *Value[T]) Reading() (Reading, bool) {
	s := v.latest.Load()
	if s == nil {
		return Reading{}, false
	}
	return Reading{Value: s.value, At: s.at, Updates: v.updates.Load()}, true
}

// Sensors accumulates per-sensor health; each event reports one sensor.
type Sensors struct {
	states  atomic.Pointer[sample[map[string]bool]]
	updates atomic.Uint64
}

func (s *Sensors) Key() arsdk.DictionaryKey {
	return arsdk.KeyCommonSensorsStatesChanged
}

func (s *Sensors) Update(args arsdk.Args, at time.Time) error {
	sensor, err := args.Int(arsdk.ArgSensor)
	if err != nil {
		return err
	}
	ok, err := args.Bool(arsdk.ArgState)
	if err != nil {
		return err
	}
	name := enumName(sensorNames, sensor)

	// single writer: copy-on-write keeps readers lock-free
	next := make(map[string]bool)
	if prev := s.states.Load(); prev != nil {
		for k, v := range prev.value {
			next[k] = v
		}
	}
	next[name] = ok
	s.states.Store(&sample[map[string]bool]{value: next, at: at})
	s.updates.Add(1)
	return nil
}

// Get returns sensor name → healthy.
func (s *Sensors) Get() map[string]bool {
	prev := s.states.Load()
	if prev == nil {
		return nil
	}
	return prev.value
}

func (s *Sensors) Reading() (Reading, bool) {
	prev := s.states.Load()
	if prev == nil {
		return Reading{}, false
	}
	return Reading{Value: prev.value, At: prev.at, Updates: s.updates.Load()}, true
}
