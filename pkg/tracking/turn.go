package tracking

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Turn converts a marker's horizontal position into a steering hint.
//
// The raw value is -(W/2 - x) / W, roughly -0.5 at the left edge and +0.5 at
// the right edge of a W px wide frame. Positive means the marker is right of
// center. Values outside the frame are not clamped, only dead-zoned.
func Turn(center r2.Vec, frameWidth, deadZone float64) float64 {
	raw := -(frameWidth/2 - center.X) / frameWidth
	return ClampMinAbs(raw, deadZone)
}

// Turn applies the package-level Turn with the configured width and dead zone.
func (c Config) Turn(center r2.Vec) float64 {
	return Turn(center, c.FrameWidth, c.DeadZone)
}

// ClampMinAbs returns 0 when |value| <= minAbs, value otherwise.
func ClampMinAbs(value, minAbs float64) float64 {
	if math.Abs(value) <= minAbs {
		return 0
	}
	return value
}
