// Package videodecoder turns runtime frames into RGB images.
package videodecoder

import (
	"errors"
	"fmt"

	"github.com/einherij/bebop/pkg/arsdk"
)

var (
	// ErrNoImage means the decoder accepted the frame but has no picture yet.
	ErrNoImage = errors.New("videodecoder: no image available")
	ErrClosed  = errors.New("videodecoder: closed")
)

// Image is a packed RGB24 picture.
type Image struct {
	Data   []byte
	Width  uint32
	Height uint32
}

type Decoder interface {
	Decode(frame *arsdk.Frame) (Image, error)
	Close() error
}

// Factory builds a decoder each time streaming starts.
type Factory func() (Decoder, error)

// Raw passes CodecRaw frames through.
type Raw struct {
	closed bool
}

func NewRaw() (Decoder, error) {
	return &Raw{}, nil
}

func (r *Raw) Decode(frame *arsdk.Frame) (Image, error) {
	if r.closed {
		return Image{}, ErrClosed
	}
	if frame == nil {
		return Image{}, ErrNoImage
	}
	if frame.Codec != arsdk.CodecRaw {
		return Image{}, fmt.Errorf("videodecoder: raw decoder cannot handle codec %d", frame.Codec)
	}
	want := int(frame.Width) * int(frame.Height) * 3
	if want == 0 || len(frame.Data) != want {
		return Image{}, fmt.Errorf("videodecoder: frame %d has %d bytes, want %d for %dx%d",
			frame.Seq, len(frame.Data), want, frame.Width, frame.Height)
	}
	return Image{Data: frame.Data, Width: frame.Width, Height: frame.Height}, nil
}

func (r *Raw) Close() error {
	r.closed = true
	return nil
}
