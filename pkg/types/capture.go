package types

// CaptureMode identifies what kind of media a capture session records.
type CaptureMode string

const (
	ModePhoto CaptureMode = "photo"
	ModeAudio CaptureMode = "audio"
	ModeVideo CaptureMode = "video"
)

// IsValidCaptureMode checks if the given mode is a valid capture mode.
func IsValidCaptureMode(m CaptureMode) bool {
	return m == ModePhoto || m == ModeAudio || m == ModeVideo
}

// ContentType returns the media content type tagged onto artifacts
// assembled from a session in this mode.
func (m CaptureMode) ContentType() string {
	switch m {
	case ModePhoto:
		return "image/jpeg"
	case ModeAudio:
		return "audio/webm"
	case ModeVideo:
		return "video/webm"
	default:
		return "application/octet-stream"
	}
}

// CaptureState is a capture session's lifecycle state.
type CaptureState string

const (
	CaptureIdle       CaptureState = "idle"
	CaptureRequesting CaptureState = "requesting"
	CaptureRecording  CaptureState = "recording"
	CaptureStopped    CaptureState = "stopped"
	CaptureError      CaptureState = "error"
)

// IsValidCaptureTransition validates capture session state transitions.
//
// Valid transitions:
//
//	idle -> requesting
//	requesting -> recording | stopped | error
//	recording -> stopped | error
//	stopped -> (terminal)
//	error -> (terminal; retry creates a fresh session)
//
// Photo mode has no chunk phase, which is why requesting -> stopped is
// permitted directly. Terminal states never transition out: a caller that
// wants to retry after an error starts a new session.
func IsValidCaptureTransition(current, next CaptureState) bool {
	switch current {
	case CaptureIdle:
		return next == CaptureRequesting
	case CaptureRequesting:
		return next == CaptureRecording || next == CaptureStopped || next == CaptureError
	case CaptureRecording:
		return next == CaptureStopped || next == CaptureError
	case CaptureStopped, CaptureError:
		return false
	default:
		return false
	}
}

// IsTerminal reports whether the state ends a capture session.
func (s CaptureState) IsTerminal() bool {
	return s == CaptureStopped || s == CaptureError
}

// MediaArtifact is the opaque product of a completed capture session.
// The pipeline routes artifacts by name and content type only; it never
// inspects the payload bytes beyond carrying them.
type MediaArtifact struct {
	Name        string `json:"name"`         // Filename-style reference (e.g. capture_audio_1626444000.webm)
	ContentType string `json:"content_type"` // Mode-appropriate media type
	Size        int    `json:"size"`         // Total payload size in bytes
	Data        []byte `json:"-"`            // Assembled payload, not serialized
	Placeholder bool   `json:"placeholder"`  // True when synthesized without a device
}
