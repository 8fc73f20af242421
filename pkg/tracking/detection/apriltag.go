package detection

import (
	"fmt"
	"sync"

	"github.com/teslashibe/go-tagview/internal/log"
	"github.com/teslashibe/go-tagview/pkg/debug"
	"gocv.io/x/gocv"
	"gonum.org/v1/gonum/spatial/r2"
)

// cornerRefineAprilTag is OpenCV's CORNER_REFINE_APRILTAG.
const cornerRefineAprilTag = 3

// AprilTagDetector uses OpenCV's ArUco detector with an AprilTag dictionary
type AprilTagDetector struct {
	detector gocv.ArucoDetector
	config   Config
	mu       sync.Mutex // Protects detector
}

// NewAprilTag creates a detector for the configured tag family
func NewAprilTag(cfg Config) (*AprilTagDetector, error) {
	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, fmt.Errorf("detection: invalid config: %v", errs)
	}

	dictCode, err := ParseFamily(cfg.Family)
	if err != nil {
		return nil, err
	}
	dict := gocv.GetPredefinedDictionary(dictCode)

	params := gocv.NewArucoDetectorParameters()
	params.SetAprilTagQuadDecimate(float32(cfg.QuadDecimate))
	params.SetAprilTagQuadSigma(float32(cfg.QuadSigma))
	params.SetAprilTagMinWhiteBlackDiff(cfg.MinWhiteBlackDiff)
	if cfg.Deglitch {
		params.SetAprilTagDeglitch(1)
	}
	if cfg.RefineEdges {
		params.SetCornerRefinementMethod(cornerRefineAprilTag)
	}

	return &AprilTagDetector{
		detector: gocv.NewArucoDetectorWithParams(dict, params),
		config:   cfg,
	}, nil
}

// Config returns the detector configuration.
func (d *AprilTagDetector) Config() Config {
	return d.config
}

// Detect finds markers in the grayscale image
func (d *AprilTagDetector) Detect(gray gocv.Mat) ([]Detection, error) {
	if gray.Empty() {
		return nil, fmt.Errorf("detection: empty image")
	}
	if gray.Channels() != 1 {
		return nil, fmt.Errorf("detection: expected single-channel image, got %d channels", gray.Channels())
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	markerCorners, markerIDs, _ := d.detector.DetectMarkers(gray)

	detections := make([]Detection, 0, len(markerIDs))
	for i, id := range markerIDs {
		pts := make([]r2.Vec, len(markerCorners[i]))
		for j, p := range markerCorners[i] {
			pts[j] = r2.Vec{X: float64(p.X), Y: float64(p.Y)}
		}

		corners, err := NewCorners(pts)
		if err != nil {
			log.Warn("skipping malformed marker", "tag_id", id, "error", err)
			continue
		}

		detections = append(detections, Detection{
			ID:      id,
			Center:  CenterOf(corners),
			Corners: corners,
		})
	}

	if len(detections) > 0 {
		debug.DetectLog("🏷️  %s found %d tag(s)\n", d.config.Family, len(detections))
	}

	return detections, nil
}

// Close releases the detector resources
func (d *AprilTagDetector) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.detector.Close()
}
