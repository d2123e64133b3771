// Package capture manages the device-capture lifecycle: request a stream,
// record chunks, and assemble them into one opaque media artifact. Each
// attempt is a Session moving through the state machine in pkg/types;
// the controller stays usable after any failure so the caller can retry
// immediately with a fresh session.
package capture

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/karstegg/martha-assistant-system/pkg/types"
)

// Controller creates capture sessions against a device. A nil device is
// allowed: Start then fails with a no-device error and the caller can fall
// back to a placeholder artifact.
type Controller struct {
	device DeviceCapability
}

// NewController creates a capture controller over the given device.
func NewController(device DeviceCapability) *Controller {
	return &Controller{device: device}
}

// Session is one in-progress capture attempt. It is owned by the controller
// for its duration and destroyed (left to the collector) once it resolves
// into an artifact or is abandoned.
type Session struct {
	mode types.CaptureMode

	mu       sync.Mutex
	state    types.CaptureState
	stream   Stream
	chunks   [][]byte
	artifact *types.MediaArtifact
	err      error
	released bool
	stopping bool
	done     chan struct{} // closed when the chunk collector exits
}

// Start begins a capture session: Idle -> Requesting, then Recording on a
// granted stream (or straight to Stopped for photo mode, which captures a
// single frame with no chunk phase). On failure the session lands in Error
// with the cause; the controller itself remains usable and Start may be
// called again for a fresh attempt.
func (c *Controller) Start(ctx context.Context, mode types.CaptureMode) (*Session, error) {
	if !types.IsValidCaptureMode(mode) {
		return nil, fmt.Errorf("unknown capture mode %q", mode)
	}

	s := &Session{
		mode:  mode,
		state: types.CaptureIdle,
		done:  make(chan struct{}),
	}
	s.transition(types.CaptureRequesting)

	if c.device == nil {
		err := &DeviceError{Reason: ReasonNoDevice, Cause: "no device capability available"}
		s.fail(err)
		return s, err
	}

	constraints := Constraints{PreferRearCamera: mode == types.ModeVideo || mode == types.ModePhoto}
	stream, err := c.device.RequestStream(ctx, mode, constraints)
	if err != nil {
		s.fail(err)
		return s, err
	}

	s.mu.Lock()
	s.stream = stream
	s.mu.Unlock()

	if mode == types.ModePhoto {
		return s, s.captureFrame()
	}

	s.transition(types.CaptureRecording)
	go s.collect()
	return s, nil
}

// Placeholder synthesizes an artifact without touching the device. This is
// the only path that bypasses Requesting/Recording; it exists so the
// pipeline can be exercised end to end without hardware.
func (c *Controller) Placeholder(mode types.CaptureMode) types.MediaArtifact {
	return PlaceholderArtifact(mode, time.Now())
}

// PlaceholderArtifact builds a placeholder artifact for the mode at the
// given time.
func PlaceholderArtifact(mode types.CaptureMode, now time.Time) types.MediaArtifact {
	return types.MediaArtifact{
		Name:        artifactName(mode, now),
		ContentType: mode.ContentType(),
		Placeholder: true,
	}
}

// State returns the session's current lifecycle state.
func (s *Session) State() types.CaptureState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Mode returns the mode the session was started with.
func (s *Session) Mode() types.CaptureMode {
	return s.mode
}

// Err returns the failure that moved the session to Error, or nil.
func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Artifact returns the assembled artifact once the session is Stopped.
func (s *Session) Artifact() *types.MediaArtifact {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.artifact
}

// Stop assembles the accumulated chunks into one media artifact tagged with
// the mode's content type, releases the device stream, and moves the
// session to Stopped. Stopping a session that is not recording returns the
// session's error if it failed, or an error for a misused lifecycle.
func (s *Session) Stop() (*types.MediaArtifact, error) {
	s.mu.Lock()
	if s.state != types.CaptureRecording {
		defer s.mu.Unlock()
		if s.err != nil {
			return nil, s.err
		}
		if s.artifact != nil {
			return s.artifact, nil
		}
		return nil, fmt.Errorf("cannot stop session in state %q", s.state)
	}
	s.stopping = true
	stream := s.stream
	s.mu.Unlock()

	stream.Stop()
	<-s.done // collector drains remaining chunks before the channel closes

	s.mu.Lock()
	defer s.mu.Unlock()

	var size int
	data := make([]byte, 0)
	for _, chunk := range s.chunks {
		data = append(data, chunk...)
		size += len(chunk)
	}

	artifact := &types.MediaArtifact{
		Name:        artifactName(s.mode, time.Now()),
		ContentType: s.mode.ContentType(),
		Size:        size,
		Data:        data,
	}
	s.artifact = artifact
	s.releaseLocked()
	s.setStateLocked(types.CaptureStopped)
	return artifact, nil
}

// Abandon discards the session before it stopped. The acquired stream is
// released exactly once and no artifact is produced. Abandoning a terminal
// session is a no-op.
func (s *Session) Abandon() {
	s.mu.Lock()
	if s.state.IsTerminal() {
		s.mu.Unlock()
		return
	}
	wasRecording := s.state == types.CaptureRecording
	s.stopping = true
	stream := s.stream
	s.err = &DeviceError{Reason: ReasonAbandoned, Cause: "capture abandoned"}
	s.mu.Unlock()

	if wasRecording && stream != nil {
		stream.Stop()
		<-s.done
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.releaseLocked()
	s.setStateLocked(types.CaptureError)
}

// captureFrame handles photo mode: one frame, no chunk phase, straight to
// Stopped.
func (s *Session) captureFrame() error {
	frame, ok := <-s.stream.Chunks()

	s.mu.Lock()
	defer s.mu.Unlock()

	if !ok {
		err := &DeviceError{Reason: ReasonStreamEnded, Cause: "device produced no frame"}
		s.err = err
		s.releaseLocked()
		s.setStateLocked(types.CaptureError)
		return err
	}

	s.stream.Stop()
	s.artifact = &types.MediaArtifact{
		Name:        artifactName(s.mode, time.Now()),
		ContentType: s.mode.ContentType(),
		Size:        len(frame),
		Data:        frame,
	}
	s.releaseLocked()
	s.setStateLocked(types.CaptureStopped)
	return nil
}

// collect accumulates chunks until the stream's channel closes. A close
// without a stop request means the device ended the stream unexpectedly,
// which moves the session to Error and releases the stream.
func (s *Session) collect() {
	defer close(s.done)

	for chunk := range s.stream.Chunks() {
		s.mu.Lock()
		s.chunks = append(s.chunks, chunk)
		s.mu.Unlock()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == types.CaptureRecording && !s.stopping {
		s.err = &DeviceError{Reason: ReasonStreamEnded, Cause: "device stream ended unexpectedly"}
		s.releaseLocked()
		s.setStateLocked(types.CaptureError)
	}
}

// fail records a request-phase failure: Requesting -> Error, no stream held.
func (s *Session) fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
	s.setStateLocked(types.CaptureError)
	close(s.done)
}

// releaseLocked releases the device stream exactly once. Callers hold s.mu.
func (s *Session) releaseLocked() {
	if s.released || s.stream == nil {
		return
	}
	s.stream.Release()
	s.released = true
}

func (s *Session) transition(next types.CaptureState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setStateLocked(next)
}

// setStateLocked applies a transition, panicking on machine violations:
// every caller is inside this package, so an invalid transition is a bug,
// not an input error.
func (s *Session) setStateLocked(next types.CaptureState) {
	if !types.IsValidCaptureTransition(s.state, next) {
		panic(fmt.Sprintf("invalid capture transition %s -> %s", s.state, next))
	}
	s.state = next
}

func artifactName(mode types.CaptureMode, now time.Time) string {
	ext := ".webm"
	if mode == types.ModePhoto {
		ext = ".jpg"
	}
	return fmt.Sprintf("capture_%s_%d%s", mode, now.Unix(), ext)
}
