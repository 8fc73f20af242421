// Package tracking turns marker detections into operator hints: a corner
// span check that rejects degenerate tags and a dead-zoned turn signal.
package tracking

import "fmt"

// Defaults for the reference deployment: a 1920 px wide camera and tags
// mounted at alignment distance.
const (
	DefaultFrameWidth    = 1920.0
	DefaultMinDiagonalSq = 5000.0 // px², minimum corner 0 → corner 2 span
	DefaultDeadZone      = 0.05   // |turn| at or below this reads as 0
)

// Config holds the tunable parameters for tag validation and turn estimation
type Config struct {
	// FrameWidth is the horizontal resolution the turn signal is normalized by.
	// The image center is FrameWidth/2.
	FrameWidth float64

	// MinDiagonalSq is the minimum squared diagonal span in px².
	// It is not rescaled with FrameWidth.
	MinDiagonalSq float64

	// DeadZone suppresses turn values with |turn| <= DeadZone.
	DeadZone float64
}

// DefaultConfig returns the configuration tuned for a 1080p camera
func DefaultConfig() Config {
	return Config{
		FrameWidth:    DefaultFrameWidth,
		MinDiagonalSq: DefaultMinDiagonalSq,
		DeadZone:      DefaultDeadZone,
	}
}

// Validate checks if the config values are within valid ranges.
func (c *Config) Validate() []string {
	var errors []string

	if c.FrameWidth <= 0 {
		errors = append(errors, fmt.Sprintf("frame_width must be > 0, got %v", c.FrameWidth))
	}
	if c.MinDiagonalSq < 0 {
		errors = append(errors, fmt.Sprintf("min_diagonal_sq must be >= 0, got %v", c.MinDiagonalSq))
	}
	if c.DeadZone < 0 || c.DeadZone >= 0.5 {
		errors = append(errors, fmt.Sprintf("dead_zone must be in [0, 0.5), got %v", c.DeadZone))
	}

	return errors
}
