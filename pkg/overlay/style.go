package overlay

import (
	"image/color"
	"strconv"

	"github.com/teslashibe/go-tagview/pkg/tracking/detection"
	"gocv.io/x/gocv"
)

// Style selects the colors used for marker annotations.
type Style struct {
	Center color.RGBA
	Corner color.RGBA
}

// DefaultStyle returns green centers and magenta corners.
func DefaultStyle() Style {
	return Style{Center: CenterColor, Corner: CornerColor}
}

// ParseStyle builds a Style from hex colors. Empty strings keep the defaults.
func ParseStyle(centerHex, cornerHex string) (Style, error) {
	s := DefaultStyle()
	if centerHex != "" {
		c, err := ParseColor(centerHex)
		if err != nil {
			return s, err
		}
		s.Center = c
	}
	if cornerHex != "" {
		c, err := ParseColor(cornerHex)
		if err != nil {
			return s, err
		}
		s.Corner = c
	}
	return s, nil
}

// Marker draws an accepted detection: center crosshair with the tag id,
// the position/turn banner, and each corner crosshair with its index.
func (s Style) Marker(img *gocv.Mat, d detection.Detection, turn float64) error {
	if err := Crosshair(img, d.Center, s.Center); err != nil {
		return err
	}
	if err := Label(img, d.Center, s.Center, strconv.Itoa(d.ID)); err != nil {
		return err
	}
	if err := Banner(img, d.Center, turn, s.Center); err != nil {
		return err
	}
	for i, corner := range d.Corners {
		if err := Crosshair(img, corner, s.Corner); err != nil {
			return err
		}
		if err := Label(img, corner, s.Corner, strconv.Itoa(i)); err != nil {
			return err
		}
	}
	return nil
}
