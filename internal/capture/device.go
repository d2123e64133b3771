package capture

import (
	"context"
	"fmt"

	"github.com/karstegg/martha-assistant-system/pkg/types"
)

// DeviceCapability is the narrow contract to the device layer. The pipeline
// never touches hardware directly; tests and degraded environments supply
// their own implementation.
type DeviceCapability interface {
	// RequestStream asks the device for a media stream matching the mode.
	// It suspends until the stream is granted or fails with a *DeviceError.
	RequestStream(ctx context.Context, mode types.CaptureMode, constraints Constraints) (Stream, error)
}

// Constraints narrows device selection for a stream request.
type Constraints struct {
	// PreferRearCamera selects the outward-facing camera when available.
	// Only meaningful for photo and video modes.
	PreferRearCamera bool
}

// Stream is one granted device stream. Chunks produces a lazy, finite
// sequence of raw data segments; the channel closes after Stop is called or
// when the device ends the stream unexpectedly. Release is idempotent.
type Stream interface {
	Chunks() <-chan []byte
	Stop()
	Release()
}

// Device failure reasons.
const (
	ReasonPermissionDenied = "permission-denied"
	ReasonNoDevice         = "no-device"
	ReasonConstraint       = "constraint-not-satisfiable"
	ReasonStreamEnded      = "stream-ended"
	ReasonAbandoned        = "abandoned"
)

// DeviceError reports why a capture failed, with a machine-checkable reason
// and a human-readable cause.
type DeviceError struct {
	Reason string
	Cause  string
}

func (e *DeviceError) Error() string {
	return fmt.Sprintf("device capture failed (%s): %s", e.Reason, e.Cause)
}
