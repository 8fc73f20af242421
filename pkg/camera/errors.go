package camera

import "errors"

var (
	// ErrDeviceUnavailable is returned when the capture device cannot be
	// opened or has already been released.
	ErrDeviceUnavailable = errors.New("camera: device unavailable")

	// ErrEndOfStream is returned when the device is open but yields no frame.
	ErrEndOfStream = errors.New("camera: end of stream")
)
