package camera

import (
	"fmt"
	"sync"

	"gocv.io/x/gocv"
)

// Capture owns an OpenCV video capture handle for a single device.
type Capture struct {
	vc     *gocv.VideoCapture
	config Config
	mu     sync.Mutex
}

// Open opens the configured device and applies the capture settings.
func Open(cfg Config) (*Capture, error) {
	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, fmt.Errorf("camera: invalid config: %v", errs)
	}

	vc, err := gocv.VideoCaptureDevice(cfg.Device)
	if err != nil {
		return nil, fmt.Errorf("%w: device %d: %v", ErrDeviceUnavailable, cfg.Device, err)
	}
	if !vc.IsOpened() {
		vc.Close()
		return nil, fmt.Errorf("%w: device %d not opened", ErrDeviceUnavailable, cfg.Device)
	}

	vc.Set(gocv.VideoCaptureFrameWidth, float64(cfg.Width))
	vc.Set(gocv.VideoCaptureFrameHeight, float64(cfg.Height))
	vc.Set(gocv.VideoCaptureFPS, float64(cfg.Framerate))
	if cfg.Brightness != 0 {
		vc.Set(gocv.VideoCaptureBrightness, cfg.Brightness)
	}
	if cfg.Exposure != 0 {
		vc.Set(gocv.VideoCaptureExposure, cfg.Exposure)
	}

	return &Capture{vc: vc, config: cfg}, nil
}

// Config returns the settings the capture was opened with.
func (c *Capture) Config() Config {
	return c.config
}

// Resolution reports the frame size the driver actually negotiated.
func (c *Capture) Resolution() (width, height int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.vc == nil {
		return 0, 0
	}
	return int(c.vc.Get(gocv.VideoCaptureFrameWidth)), int(c.vc.Get(gocv.VideoCaptureFrameHeight))
}

// Read grabs the next color frame into dst.
// A failed read is reported instead of leaving stale data in dst.
func (c *Capture) Read(dst *gocv.Mat) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.vc == nil || !c.vc.IsOpened() {
		return ErrDeviceUnavailable
	}
	if ok := c.vc.Read(dst); !ok || dst.Empty() {
		return fmt.Errorf("%w: device %d", ErrEndOfStream, c.config.Device)
	}
	return nil
}

// Close releases the device. Calling Close more than once is safe.
func (c *Capture) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.vc == nil {
		return nil
	}
	err := c.vc.Close()
	c.vc = nil
	return err
}
