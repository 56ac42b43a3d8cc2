// Package gstdecoder decodes H.264 access units with a GStreamer pipeline:
// appsrc → h264parse → avdec_h264 → videoconvert → RGB appsink.
package gstdecoder

import (
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/tinyzimmer/go-gst/gst"
	"github.com/tinyzimmer/go-gst/gst/app"

	"github.com/einherij/bebop/pkg/arsdk"
	"github.com/einherij/bebop/pkg/videodecoder"
)

const launch = "appsrc name=src is-live=true do-timestamp=true format=time " +
	"caps=video/x-h264,stream-format=byte-stream ! " +
	"h264parse ! avdec_h264 ! videoconvert ! video/x-raw,format=RGB ! " +
	"appsink name=sink sync=false max-buffers=1 drop=true"

// pullTimeout bounds how long Decode waits for the decoder to emit a picture.
const pullTimeout = 5 * time.Millisecond

var initOnce sync.Once

type Decoder struct {
	pipeline *gst.Pipeline
	src      *app.Source
	sink     *app.Sink
	waitIDR  bool
}

// New builds and starts the pipeline. It satisfies videodecoder.Factory.
func New() (videodecoder.Decoder, error) {
	initOnce.Do(func() { gst.Init(nil) })

	pipeline, err := gst.NewPipelineFromString(launch)
	if err != nil {
		return nil, fmt.Errorf("failed to create decode pipeline: %w", err)
	}
	srcElem, err := pipeline.GetElementByName("src")
	if err != nil {
		return nil, fmt.Errorf("failed to get appsrc: %w", err)
	}
	sinkElem, err := pipeline.GetElementByName("sink")
	if err != nil {
		return nil, fmt.Errorf("failed to get appsink: %w", err)
	}
	if err := pipeline.SetState(gst.StatePlaying); err != nil {
		return nil, fmt.Errorf("failed to start decode pipeline: %w", err)
	}
	logrus.Debugf("h264 decode pipeline started")
	return &Decoder{
		pipeline: pipeline,
		src:      app.SrcFromElement(srcElem),
		sink:     app.SinkFromElement(sinkElem),
		waitIDR:  true,
	}, nil
}

func (d *Decoder) Decode(frame *arsdk.Frame) (videodecoder.Image, error) {
	if d.pipeline == nil {
		return videodecoder.Image{}, videodecoder.ErrClosed
	}
	if frame == nil || len(frame.Data) == 0 {
		return videodecoder.Image{}, videodecoder.ErrNoImage
	}
	if frame.Codec != arsdk.CodecH264 {
		return videodecoder.Image{}, fmt.Errorf("gstdecoder: unsupported codec %d", frame.Codec)
	}
	// P-frames before the first I-frame only produce decoder errors.
	if d.waitIDR && !frame.IsIFrame {
		return videodecoder.Image{}, videodecoder.ErrNoImage
	}
	d.waitIDR = false

	if ret := d.src.PushBuffer(gst.NewBufferFromBytes(frame.Data)); ret != gst.FlowOK {
		return videodecoder.Image{}, fmt.Errorf("gstdecoder: push frame %d: %v", frame.Seq, ret)
	}

	sample := d.sink.TryPullSample(pullTimeout)
	if sample == nil {
		return videodecoder.Image{}, videodecoder.ErrNoImage
	}
	width, height, err := sampleSize(sample)
	if err != nil {
		return videodecoder.Image{}, err
	}
	buffer := sample.GetBuffer()
	if buffer == nil {
		return videodecoder.Image{}, videodecoder.ErrNoImage
	}
	mapInfo := buffer.Map(gst.MapRead)
	data := make([]byte, len(mapInfo.Bytes()))
	copy(data, mapInfo.Bytes())
	buffer.Unmap()

	return videodecoder.Image{Data: data, Width: width, Height: height}, nil
}

func sampleSize(sample *gst.Sample) (uint32, uint32, error) {
	caps := sample.GetCaps()
	if caps == nil || caps.GetSize() == 0 {
		return 0, 0, fmt.Errorf("gstdecoder: sample without caps")
	}
	st := caps.GetStructureAt(0)
	w, err := st.GetValue("width")
	if err != nil {
		return 0, 0, fmt.Errorf("gstdecoder: read width: %w", err)
	}
	h, err := st.GetValue("height")
	if err != nil {
		return 0, 0, fmt.Errorf("gstdecoder: read height: %w", err)
	}
	wi, ok1 := w.(int)
	hi, ok2 := h.(int)
	if !ok1 || !ok2 {
		return 0, 0, fmt.Errorf("gstdecoder: unexpected size types %T x %T", w, h)
	}
	return uint32(wi), uint32(hi), nil
}

func (d *Decoder) Close() error {
	if d.pipeline == nil {
		return nil
	}
	d.src.EndStream()
	err := d.pipeline.SetState(gst.StateNull)
	d.pipeline = nil
	if err != nil {
		return fmt.Errorf("failed to stop decode pipeline: %w", err)
	}
	return nil
}
