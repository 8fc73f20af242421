// Package camera opens the operator camera and hands out frames.
// Capture settings follow the same Config + presets pattern as pkg/tracking.
package camera

import "fmt"

// Config holds the capture settings applied when the device is opened.
type Config struct {
	// Device is the OpenCV device index. 0 is the first/default camera.
	Device int `json:"device"`

	// === Resolution ===
	Width     int `json:"width"`     // Frame width in pixels
	Height    int `json:"height"`    // Frame height in pixels
	Framerate int `json:"framerate"` // Target FPS

	// Brightness is passed straight to the driver (CAP_PROP_BRIGHTNESS).
	// Set to 0 to leave the driver default untouched.
	Brightness float64 `json:"brightness"`

	// Exposure is the driver exposure value (CAP_PROP_EXPOSURE).
	// Set to 0 for auto exposure.
	Exposure float64 `json:"exposure"`
}

// Capture limits accepted by Validate.
const (
	MaxWidth     = 4096
	MaxHeight    = 2160
	MaxFramerate = 120
)

// DefaultConfig returns the 1080p configuration the tag overlay is tuned for.
// The turn signal and the minimum tag span both assume a 1920 px wide frame.
func DefaultConfig() Config {
	return Config{
		Device:    0,
		Width:     1920,
		Height:    1080,
		Framerate: 30,
	}
}

// LegacyConfig returns a 640x480 configuration for older USB webcams.
func LegacyConfig() Config {
	cfg := DefaultConfig()
	cfg.Width = 640
	cfg.Height = 480
	return cfg
}

// Validate checks if the config values are within valid ranges.
// Returns a list of validation errors, or nil if valid.
func (c *Config) Validate() []string {
	var errors []string

	if c.Device < 0 {
		errors = append(errors, "device must be >= 0")
	}
	if c.Width < 160 || c.Width > MaxWidth {
		errors = append(errors, fmt.Sprintf("width must be between 160 and %d", MaxWidth))
	}
	if c.Height < 120 || c.Height > MaxHeight {
		errors = append(errors, fmt.Sprintf("height must be between 120 and %d", MaxHeight))
	}
	if c.Framerate < 1 || c.Framerate > MaxFramerate {
		errors = append(errors, fmt.Sprintf("framerate must be between 1 and %d", MaxFramerate))
	}

	return errors
}
