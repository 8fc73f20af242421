package tracking

import (
	"github.com/teslashibe/go-tagview/internal/log"
	"github.com/teslashibe/go-tagview/pkg/tracking/detection"
	"gonum.org/v1/gonum/spatial/r2"
)

// DiagonalSpanSq returns the squared pixel distance between corners 0 and 2.
func DiagonalSpanSq(c detection.Corners) float64 {
	return r2.Norm2(r2.Sub(c[0], c[2]))
}

// ValidateCorners reports whether a marker is large enough to trust.
// Tags that are too far away, or whose corners collapsed onto each other,
// have a diagonal span below minSq. Only corners 0 and 2 are consulted.
func ValidateCorners(c detection.Corners, minSq float64) bool {
	distSq := DiagonalSpanSq(c)
	log.Info("corner span", "dist_sq", distSq)
	return distSq >= minSq
}

// Accept applies ValidateCorners with the configured minimum span.
func (c Config) Accept(corners detection.Corners) bool {
	return ValidateCorners(corners, c.MinDiagonalSq)
}
