package detection

import (
	"fmt"
	"strings"

	"gocv.io/x/gocv"
)

// Supported AprilTag families.
const (
	Family16h5  = "tag16h5"
	Family25h9  = "tag25h9"
	Family36h10 = "tag36h10"
	Family36h11 = "tag36h11"
)

// Config holds detector configuration.
// Field meanings follow the AprilTag library's own options.
type Config struct {
	Family            string  // Tag family (default tag36h11)
	QuadDecimate      float64 // Decimate input image by this factor (default 2.0)
	QuadSigma         float64 // Gaussian blur applied to the segmented image (0 = off)
	RefineEdges       bool    // Snap quad edges to strong gradients
	MinWhiteBlackDiff int     // Minimum intensity difference between black and white cells
	Deglitch          bool    // Extra morphology pass for noisy images
}

// DefaultConfig returns the AprilTag library defaults.
func DefaultConfig() Config {
	return Config{
		Family:            Family36h11,
		QuadDecimate:      2.0,
		QuadSigma:         0.0,
		RefineEdges:       true,
		MinWhiteBlackDiff: 5,
		Deglitch:          false,
	}
}

// Families returns the accepted family names.
func Families() []string {
	return []string{Family16h5, Family25h9, Family36h10, Family36h11}
}

// ParseFamily maps a family name to its OpenCV dictionary.
func ParseFamily(name string) (gocv.ArucoDictionaryCode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case Family16h5:
		return gocv.ArucoDictAprilTag_16h5, nil
	case Family25h9:
		return gocv.ArucoDictAprilTag_25h9, nil
	case Family36h10:
		return gocv.ArucoDictAprilTag_36h10, nil
	case Family36h11, "":
		return gocv.ArucoDictAprilTag_36h11, nil
	}
	return 0, fmt.Errorf("detection: unknown tag family %q (want one of %s)",
		name, strings.Join(Families(), ", "))
}

// Validate checks if the config values are within valid ranges.
func (c *Config) Validate() []string {
	var errors []string

	if _, err := ParseFamily(c.Family); err != nil {
		errors = append(errors, err.Error())
	}
	if c.QuadDecimate < 1.0 {
		errors = append(errors, "quad_decimate must be >= 1.0")
	}
	if c.QuadSigma < 0 {
		errors = append(errors, "quad_sigma must be >= 0")
	}
	if c.MinWhiteBlackDiff < 0 || c.MinWhiteBlackDiff > 255 {
		errors = append(errors, "min_white_black_diff must be between 0 and 255")
	}

	return errors
}
