package media

import (
	"errors"
	"fmt"
	"io/fs"
)

// Kind is a capture device class
type Kind string

const (
	KindCamera     Kind = "camera"
	KindMicrophone Kind = "microphone"
)

// Facing is the preferred camera direction
type Facing string

const (
	FacingUser        Facing = "user"
	FacingEnvironment Facing = "environment"
)

var (
	ErrUnsupported      = errors.New("media: device API unsupported")
	ErrNoHardware       = errors.New("media: no capture hardware detected")
	ErrNotFound         = errors.New("media: device not found")
	ErrPermissionDenied = errors.New("media: permission denied")
	ErrHardwareFailure  = errors.New("media: hardware failure")
)

// Condition is the user-facing code shown for a capture failure
type Condition string

const (
	ConditionNone          Condition = ""
	ConditionUnsupported   Condition = "CAMERA_API_UNSUPPORTED"
	ConditionNoHardware    Condition = "NO_CAMERA_HARDWARE_DETECTED"
	ConditionNotFound      Condition = "CAMERA_NOT_FOUND"
	ConditionPermission    Condition = "PERMISSION_DENIED"
	ConditionHardwareFault Condition = "HARDWARE_FAILURE"
)

// Device is an enumerated capture node
type Device struct {
	Path string
	Kind Kind
	Name string
}

// Constraints are capture preferences. Zero values mean no preference.
type Constraints struct {
	Facing    Facing
	Width     int
	Height    int
	FrameRate int
	Audio     bool
}

// Relaxed drops every preference
func (c Constraints) Relaxed() Constraints {
	return Constraints{Audio: c.Audio}
}

// IsRelaxed reports whether no preference is set
func (c Constraints) IsRelaxed() bool {
	return c == c.Relaxed()
}

// Stream is an open device
type Stream interface {
	Device() Device
	Constraints() Constraints
	Close() error
}

// Devices enumerates and opens capture hardware
type Devices interface {
	List() ([]Device, error)
	Open(d Device, c Constraints) (Stream, error)
}

// Capture opens the first device of kind. Preferred constraints are tried
// first and relaxed constraints once on failure; the final error is
// classified into one of the package sentinels.
func Capture(devs Devices, kind Kind, preferred Constraints) (Stream, error) {
	if devs == nil {
		return nil, ErrUnsupported
	}

	all, err := devs.List()
	if err != nil {
		if errors.Is(err, ErrUnsupported) {
			return nil, ErrUnsupported
		}
		return nil, fmt.Errorf("%w: %v", ErrHardwareFailure, err)
	}

	var target *Device
	for i := range all {
		if all[i].Kind == kind {
			target = &all[i]
			break
		}
	}
	if target == nil {
		return nil, ErrNoHardware
	}

	s, err := devs.Open(*target, preferred)
	if err == nil {
		return s, nil
	}
	if !preferred.IsRelaxed() {
		if s, err = devs.Open(*target, preferred.Relaxed()); err == nil {
			return s, nil
		}
	}
	return nil, classifyOpen(err)
}

func classifyOpen(err error) error {
	switch {
	case errors.Is(err, ErrUnsupported), errors.Is(err, ErrNotFound),
		errors.Is(err, ErrPermissionDenied), errors.Is(err, ErrHardwareFailure):
		return err
	case errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	case errors.Is(err, fs.ErrPermission):
		return fmt.Errorf("%w: %v", ErrPermissionDenied, err)
	default:
		return fmt.Errorf("%w: %v", ErrHardwareFailure, err)
	}
}

// Classify maps a capture error to its user-facing condition
func Classify(err error) Condition {
	switch {
	case err == nil:
		return ConditionNone
	case errors.Is(err, ErrUnsupported):
		return ConditionUnsupported
	case errors.Is(err, ErrNoHardware):
		return ConditionNoHardware
	case errors.Is(err, ErrNotFound):
		return ConditionNotFound
	case errors.Is(err, ErrPermissionDenied):
		return ConditionPermission
	default:
		return ConditionHardwareFault
	}
}
