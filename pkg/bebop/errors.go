package bebop

import (
	"errors"
	"fmt"

	"github.com/einherij/bebop/pkg/arsdk"
)

var (
	// ErrNotConnected is returned by commands issued outside the Connected phase.
	ErrNotConnected = errors.New("bebop: not connected")
	// ErrInvalidState is returned by lifecycle calls made in the wrong phase.
	ErrInvalidState = errors.New("bebop: invalid state")
	// ErrConnection matches every *ConnectionError.
	ErrConnection     = errors.New("bebop: connection failed")
	ErrConnectTimeout = errors.New("bebop: connect timed out")

	errAborted      = errors.New("bebop: connect aborted by disconnect")
	errStoppedEarly = errors.New("bebop: controller stopped before connect finished")
)

// ConnectionError is returned by Connect. The device is Disconnected again
// by the time the caller sees it.
type ConnectionError struct {
	Stage string
	Err   error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("bebop: connect failed at %s: %v", e.Stage, e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

func (e *ConnectionError) Is(target error) bool {
	return target == ErrConnection
}

// CommandError means the runtime rejected or could not execute a command.
type CommandError struct {
	Op   string
	Code arsdk.ErrorCode
	Msg  string
}

func (e *CommandError) Error() string {
	if e.Msg != "" {
		return fmt.Sprintf("bebop: %s failed: %s (%d): %s", e.Op, e.Code, int(e.Code), e.Msg)
	}
	return fmt.Sprintf("bebop: %s failed: %s (%d)", e.Op, e.Code, int(e.Code))
}

// InternalError means the wrapper itself is inconsistent, e.g. connected
// without a controller.
type InternalError struct {
	Op  string
	Msg string
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("bebop: internal error in %s: %s", e.Op, e.Msg)
}
