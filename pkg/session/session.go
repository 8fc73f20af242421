// Package session runs the capture → detect → annotate loop.
//
// A Session owns the frame source, the detector and the frame buffers. It is
// driven explicitly: Open, then Step (or Run) until done, then Close, which
// releases everything and writes the last frame to the snapshot path.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"github.com/teslashibe/go-tagview/internal/log"
	"github.com/teslashibe/go-tagview/pkg/camera"
	"github.com/teslashibe/go-tagview/pkg/debug"
	"github.com/teslashibe/go-tagview/pkg/display"
	"github.com/teslashibe/go-tagview/pkg/overlay"
	"github.com/teslashibe/go-tagview/pkg/tracking"
	"github.com/teslashibe/go-tagview/pkg/tracking/detection"
	"gocv.io/x/gocv"
)

// ErrClosed is returned when stepping a session after Close.
var ErrClosed = errors.New("session: closed")

// FrameSource supplies color frames. camera.Capture implements it.
type FrameSource interface {
	Read(dst *gocv.Mat) error
	Close() error
}

// Config holds everything a session needs.
type Config struct {
	Camera       camera.Config
	Detector     detection.Config
	Tracking     tracking.Config
	Style        overlay.Style
	SnapshotPath string // Written on Close; empty disables the snapshot
}

// DefaultConfig returns the 1080p / tag36h11 configuration.
func DefaultConfig() Config {
	return Config{
		Camera:       camera.DefaultConfig(),
		Detector:     detection.DefaultConfig(),
		Tracking:     tracking.DefaultConfig(),
		Style:        overlay.DefaultStyle(),
		SnapshotPath: "final.png",
	}
}

// Accepted is a detection that passed the corner span check.
type Accepted struct {
	detection.Detection
	DistSq float64 // Squared corner 0 → corner 2 span
	Turn   float64 // Dead-zoned turn signal
}

// Frame is the result of one Step.
// Image is owned by the session and is valid until the next Step or Close.
type Frame struct {
	Image    gocv.Mat
	Accepted []Accepted
}

// Session processes frames one at a time. It is not safe for concurrent use.
type Session struct {
	id       string
	cfg      Config
	source   FrameSource
	detector detection.Detector
	logger   *slog.Logger

	frame    gocv.Mat // last successfully read frame, annotated in place
	next     gocv.Mat // read target
	gray     gocv.Mat
	hasFrame bool
	frames   int
	closed   bool
}

// Open wraps an already opened source and detector. The session takes
// ownership of both and closes them in Close.
func Open(cfg Config, src FrameSource, det detection.Detector) (*Session, error) {
	if src == nil || det == nil {
		return nil, fmt.Errorf("session: frame source and detector are required")
	}
	if errs := cfg.Tracking.Validate(); len(errs) > 0 {
		return nil, fmt.Errorf("session: invalid tracking config: %v", errs)
	}

	id := uuid.NewString()
	s := &Session{
		id:       id,
		cfg:      cfg,
		source:   src,
		detector: det,
		logger:   log.With("session", id),
		frame:    gocv.NewMat(),
		next:     gocv.NewMat(),
		gray:     gocv.NewMat(),
	}
	s.logger.Info("session opened",
		"frame_width", cfg.Tracking.FrameWidth,
		"min_diagonal_sq", cfg.Tracking.MinDiagonalSq,
		"dead_zone", cfg.Tracking.DeadZone)
	return s, nil
}

// OpenCamera opens the configured camera and AprilTag detector.
func OpenCamera(cfg Config) (*Session, error) {
	capture, err := camera.Open(cfg.Camera)
	if err != nil {
		return nil, err
	}

	det, err := detection.NewAprilTag(cfg.Detector)
	if err != nil {
		capture.Close()
		return nil, err
	}

	if w, h := capture.Resolution(); w > 0 && w != capture.Config().Width {
		log.Warn("camera resolution differs from requested",
			"requested_width", capture.Config().Width, "width", w, "height", h)
	}
	log.Info("detector ready", "family", det.Config().Family, "quad_decimate", det.Config().QuadDecimate)

	s, err := Open(cfg, capture, det)
	if err != nil {
		det.Close()
		capture.Close()
		return nil, err
	}
	return s, nil
}

// ID returns the session identifier attached to every log line.
func (s *Session) ID() string {
	return s.id
}

// Frames returns how many frames have been processed.
func (s *Session) Frames() int {
	return s.frames
}

// Step reads one frame, detects markers and annotates the accepted ones.
func (s *Session) Step(ctx context.Context) (Frame, error) {
	if s.closed {
		return Frame{}, ErrClosed
	}
	if err := ctx.Err(); err != nil {
		return Frame{}, err
	}

	if err := s.source.Read(&s.next); err != nil {
		return Frame{}, fmt.Errorf("session: read frame: %w", err)
	}
	s.frame, s.next = s.next, s.frame
	s.hasFrame = true
	s.frames++

	if err := s.toGray(); err != nil {
		return Frame{}, err
	}

	detections, err := s.detector.Detect(s.gray)
	if err != nil {
		return Frame{}, fmt.Errorf("session: detect: %w", err)
	}

	accepted := s.process(detections)
	debug.Log("🎞️  frame %d: %d detection(s), %d accepted\n", s.frames, len(detections), len(accepted))
	if len(accepted) == 0 {
		s.logger.Info("nothing detected", "frame", s.frames)
	}

	for _, a := range accepted {
		if err := s.cfg.Style.Marker(&s.frame, a.Detection, a.Turn); err != nil {
			return Frame{}, fmt.Errorf("session: annotate: %w", err)
		}
	}

	return Frame{Image: s.frame, Accepted: accepted}, nil
}

// process applies the span check and turn estimate to each detection.
// The turn uses the sub-pixel center; the banner shows the truncated pixel.
func (s *Session) process(detections []detection.Detection) []Accepted {
	var accepted []Accepted
	for _, d := range detections {
		if !s.cfg.Tracking.Accept(d.Corners) {
			continue
		}
		a := Accepted{
			Detection: d,
			DistSq:    tracking.DiagonalSpanSq(d.Corners),
			Turn:      s.cfg.Tracking.Turn(d.Center),
		}
		s.logger.Info("tag detected",
			"tag_id", d.ID,
			"center_x", d.Center.X,
			"center_y", d.Center.Y,
			"turn", a.Turn)
		accepted = append(accepted, a)
	}
	return accepted
}

func (s *Session) toGray() error {
	if s.frame.Channels() == 1 {
		if err := s.frame.CopyTo(&s.gray); err != nil {
			return fmt.Errorf("session: copy gray frame: %w", err)
		}
		return nil
	}
	if err := gocv.CvtColor(s.frame, &s.gray, gocv.ColorBGRToGray); err != nil {
		return fmt.Errorf("session: convert to gray: %w", err)
	}
	return nil
}

// Run steps the session and shows each frame until the display reports the
// exit key or ctx is cancelled. Both are a clean exit and return nil.
func (s *Session) Run(ctx context.Context, disp display.Display) error {
	for {
		frame, err := s.Step(ctx)
		if err != nil {
			if ctx.Err() != nil {
				s.logger.Info("session cancelled", "frames", s.frames)
				return nil
			}
			return err
		}

		disp.Show(frame.Image)
		if disp.Poll() {
			s.logger.Info("exit key pressed", "frames", s.frames)
			return nil
		}
	}
}

// Close releases the frame source and detector and writes the snapshot.
// Calling Close more than once is safe.
func (s *Session) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	var errs []error
	if err := s.source.Close(); err != nil {
		errs = append(errs, fmt.Errorf("session: close source: %w", err))
	}
	if err := s.detector.Close(); err != nil {
		errs = append(errs, fmt.Errorf("session: close detector: %w", err))
	}
	if err := s.writeSnapshot(); err != nil {
		errs = append(errs, err)
	}

	s.frame.Close()
	s.next.Close()
	s.gray.Close()

	s.logger.Info("session closed", "frames", s.frames)
	return errors.Join(errs...)
}

// writeSnapshot saves the last displayed frame, overwriting any old file.
func (s *Session) writeSnapshot() error {
	if s.cfg.SnapshotPath == "" || !s.hasFrame {
		return nil
	}

	img, err := s.frame.ToImage()
	if err != nil {
		return fmt.Errorf("session: snapshot: %w", err)
	}
	if err := imaging.Save(img, s.cfg.SnapshotPath); err != nil {
		return fmt.Errorf("session: snapshot: %w", err)
	}

	s.logger.Info("snapshot written", "path", s.cfg.SnapshotPath)
	return nil
}
