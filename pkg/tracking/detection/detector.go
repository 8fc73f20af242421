// Package detection finds AprilTag markers in grayscale camera frames.
//
// Marker decoding is delegated to OpenCV's ArUco module configured with an
// AprilTag dictionary. This package only converts its output into
// Detection values with a fixed corner layout.
package detection

import (
	"errors"
	"fmt"

	"gocv.io/x/gocv"
	"gonum.org/v1/gonum/spatial/r2"
)

// ErrCornerCount is returned when a marker does not have exactly four corners.
var ErrCornerCount = errors.New("detection: marker must have exactly 4 corners")

// Corners holds a marker's four corner points in pixel coordinates.
//
// OpenCV reports corners clockwise starting at the marker's top-left
// corner. Whatever the rotation, indices 0 and 2 (and 1 and 3) are
// diagonal pairs; the span check in pkg/tracking relies on that.
type Corners [4]r2.Vec

// NewCorners converts a detector-supplied point list into Corners.
func NewCorners(pts []r2.Vec) (Corners, error) {
	var c Corners
	if len(pts) != len(c) {
		return c, fmt.Errorf("%w: got %d", ErrCornerCount, len(pts))
	}
	copy(c[:], pts)
	return c, nil
}

// Detection represents one recognized marker in a frame.
type Detection struct {
	ID      int     // Tag id within the configured family
	Center  r2.Vec  // Marker center in pixels
	Corners Corners // Ordered corners in pixels
}

// Detector is the interface for marker detection backends
type Detector interface {
	// Detect finds markers in a single-channel intensity image
	Detect(gray gocv.Mat) ([]Detection, error)

	// Close releases resources
	Close() error
}

// CenterOf returns the intersection of the marker's diagonals.
// Falls back to the corner centroid when the diagonals are parallel.
func CenterOf(c Corners) r2.Vec {
	d1 := r2.Sub(c[2], c[0])
	d2 := r2.Sub(c[3], c[1])

	denom := r2.Cross(d1, d2)
	if denom == 0 {
		sum := r2.Add(r2.Add(c[0], c[1]), r2.Add(c[2], c[3]))
		return r2.Scale(0.25, sum)
	}

	t := r2.Cross(r2.Sub(c[1], c[0]), d2) / denom
	return r2.Add(c[0], r2.Scale(t, d1))
}
