package videosender

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"regexp"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// StreamFrames encodes raw RGB24 frames read from stdin and uploads them as
// DASH. Verbs: frame width, frame height, destination URL.
const StreamFrames = `
	ffmpeg
		-f rawvideo
		-pix_fmt rgb24
		-s %dx%d
		-i pipe:0
		-vcodec libx264
		-preset ultrafast
		-tune zerolatency
		-g 40
		-vf scale=320:180
		-f dash
		-dash_segment_type mp4
		-seg_duration 0.1
		-use_template 1
		-http_persistent 1
		%sdrone/video/fs/feed
`

const (
	retryInterval = 5 * time.Second
	idleInterval  = 100 * time.Millisecond
)

var errResized = errors.New("frame size changed")

type FrameSource interface {
	GetFrontCameraFrame(ctx context.Context, dst []byte) (out []byte, width, height uint32, ok bool)
}

type Sender struct {
	debugLog bool
	command  string
	source   FrameSource
	destURL  string
}

func New(destURL string, source FrameSource, command string, debugLog bool) *Sender {
	return &Sender{
		debugLog: debugLog,
		command:  command,
		source:   source,
		destURL:  destURL,
	}
}

func (s *Sender) Run(ctx context.Context) {
	logrus.Warnf("started video sender")
	timer := time.NewTimer(0)
	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			logrus.Warnf("stopped video sender")
			return
		case <-timer.C:
			err := s.stream(ctx)
			switch {
			case errors.Is(err, errResized):
				logrus.Warnf("video size changed, restarting encoder")
				timer.Reset(0)
			case err != nil && ctx.Err() == nil:
				logrus.Error(err)
				timer.Reset(retryInterval)
			default:
				timer.Reset(retryInterval)
			}
		}
	}
}

// stream runs one encoder process for frames of a single size.
func (s *Sender) stream(ctx context.Context) error {
	frame, width, height, ok := s.next(ctx, nil)
	if !ok {
		return ctx.Err()
	}

	name, args := parseCommand(s.command, width, height, s.destURL)
	cmd := exec.CommandContext(ctx, name, args...)
	stdinPipe, err := cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("error opening stdin pipe: %w", err)
	}
	if s.debugLog {
		stderr := logrus.WithField("label", "FFMPEG_STDERR").WriterLevel(logrus.WarnLevel)
		defer func() { _ = stderr.Close() }()
		cmd.Stderr = stderr
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("error starting command: %w", err)
	}
	defer func() {
		_ = stdinPipe.Close()
		_ = cmd.Wait()
	}()

	for {
		if _, err := stdinPipe.Write(frame); err != nil {
			return fmt.Errorf("error writing frame: %w", err)
		}
		var w, h uint32
		frame, w, h, ok = s.next(ctx, frame)
		if !ok {
			return ctx.Err()
		}
		if w != width || h != height {
			return errResized
		}
	}
}

// next blocks until a frame is available. The source returns false at once
// while streaming is off, so it is polled at idleInterval then.
func (s *Sender) next(ctx context.Context, dst []byte) ([]byte, uint32, uint32, bool) {
	for {
		out, width, height, ok := s.source.GetFrontCameraFrame(ctx, dst)
		if ok {
			return out, width, height, true
		}
		select {
		case <-ctx.Done():
			return nil, 0, 0, false
		case <-time.After(idleInterval):
		}
	}
}

var spaceRegexp = regexp.MustCompile(`[\t\n\s]+`)

func parseCommand(command string, width, height uint32, destURL string) (name string, args []string) {
	command = fmt.Sprintf(command, width, height, destURL)     // fill in frame size and destination URL
	command = spaceRegexp.ReplaceAllLiteralString(command, " ") // delete all tabs and new lines
	command = strings.TrimSpace(command)                        // delete left and right space
	lines := strings.Split(command, " ")
	if len(lines) < 2 {
		return
	}
	return lines[0], lines[1:]
}
