// Package overlay draws marker annotations onto camera frames.
package overlay

import (
	"fmt"
	"image"
	"image/color"
	"strconv"

	"github.com/lucasb-eyer/go-colorful"
	"gocv.io/x/gocv"
	"gonum.org/v1/gonum/spatial/r2"
)

// Drawing constants.
const (
	LineLength    = 5 // Crosshair half-length in pixels
	LineThickness = 3
	FontScale     = 1.0
	TextThickness = 3
)

// Default colors: green for marker centers, magenta for corners.
var (
	CenterColor = color.RGBA{R: 0, G: 255, B: 0, A: 255}
	CornerColor = color.RGBA{R: 255, G: 0, B: 255, A: 255}
)

// bannerOrigin is where the position/turn readout is drawn.
var bannerOrigin = image.Pt(10, 30)

// ParseColor parses a hex color such as "#00ff00".
func ParseColor(hex string) (color.RGBA, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("overlay: invalid color %q: %w", hex, err)
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}

// toPixel truncates a point to integer pixel coordinates.
func toPixel(p r2.Vec) image.Point {
	return image.Pt(int(p.X), int(p.Y))
}

// Crosshair draws a small plus sign centered on p.
func Crosshair(img *gocv.Mat, p r2.Vec, c color.RGBA) error {
	pt := toPixel(p)
	if err := gocv.Line(img,
		image.Pt(pt.X-LineLength, pt.Y),
		image.Pt(pt.X+LineLength, pt.Y),
		c, LineThickness); err != nil {
		return fmt.Errorf("overlay: draw crosshair: %w", err)
	}
	if err := gocv.Line(img,
		image.Pt(pt.X, pt.Y-LineLength),
		image.Pt(pt.X, pt.Y+LineLength),
		c, LineThickness); err != nil {
		return fmt.Errorf("overlay: draw crosshair: %w", err)
	}
	return nil
}

// Label draws text just above and to the right of p.
func Label(img *gocv.Mat, p r2.Vec, c color.RGBA, text string) error {
	pt := toPixel(p)
	org := image.Pt(pt.X+4, pt.Y-4)
	if err := gocv.PutText(img, text, org, gocv.FontHersheySimplex, FontScale, c, TextThickness); err != nil {
		return fmt.Errorf("overlay: draw label: %w", err)
	}
	return nil
}

// BannerText formats the position and turn readout for a marker center.
func BannerText(center r2.Vec, turn float64) string {
	pt := toPixel(center)
	return fmt.Sprintf("x:%d  y:%d  turn:%s", pt.X, pt.Y, strconv.FormatFloat(turn, 'g', -1, 64))
}

// Banner draws the position and turn readout in the top-left corner.
func Banner(img *gocv.Mat, center r2.Vec, turn float64, c color.RGBA) error {
	if err := gocv.PutText(img, BannerText(center, turn), bannerOrigin,
		gocv.FontHersheySimplex, FontScale, c, TextThickness); err != nil {
		return fmt.Errorf("overlay: draw banner: %w", err)
	}
	return nil
}
