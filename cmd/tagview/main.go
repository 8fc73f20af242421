// tagview - live AprilTag overlay for camera and robot alignment
//
// Shows the camera feed with each trusted tag's center, corners and a
// turn hint. Press Return in the window (or Ctrl+C) to quit; the last frame
// is saved to final.png.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/teslashibe/go-tagview/internal/config"
	"github.com/teslashibe/go-tagview/internal/log"
	"github.com/teslashibe/go-tagview/pkg/camera"
	"github.com/teslashibe/go-tagview/pkg/debug"
	"github.com/teslashibe/go-tagview/pkg/display"
	"github.com/teslashibe/go-tagview/pkg/overlay"
	"github.com/teslashibe/go-tagview/pkg/session"
	"github.com/teslashibe/go-tagview/pkg/tracking/detection"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "❌ Failed to load .env: %v\n", err)
		os.Exit(1)
	}

	cfg, opts, err := parseFlags(config.Load(), os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Configuration error: %v\n", err)
		os.Exit(2)
	}

	debug.Enabled = opts.debug
	debug.Detection = opts.debugDetection
	log.Init(opts.logLevel)

	if err := run(cfg, opts); err != nil {
		log.Error("tagview failed", "error", err)
		os.Exit(1)
	}
}

// options are the flags that do not belong to session.Config.
type options struct {
	logLevel       string
	title          string
	wait           time.Duration
	debug          bool
	debugDetection bool
}

// parseFlags parses command line flags on top of the env configuration.
func parseFlags(env config.Config, args []string) (session.Config, options, error) {
	cfg := session.DefaultConfig()
	det := detection.DefaultConfig()

	fs := flag.NewFlagSet("tagview", flag.ContinueOnError)

	// AprilTag detector options
	family := fs.String("family", env.Family, "Tag family: "+strings.Join(detection.Families(), ", "))
	quadDecimate := fs.Float64("quad-decimate", det.QuadDecimate, "Decimate input image by this factor")
	quadSigma := fs.Float64("quad-sigma", det.QuadSigma, "Gaussian blur sigma for quad segmentation (0 = off)")
	refineEdges := fs.Bool("refine-edges", det.RefineEdges, "Refine quad edges using gradients")
	minDiff := fs.Int("min-white-black-diff", det.MinWhiteBlackDiff, "Minimum black/white intensity difference")
	deglitch := fs.Bool("deglitch", det.Deglitch, "Extra morphology pass for noisy images")

	// Application options
	device := fs.Int("device", env.Device, "Camera device index")
	brightness := fs.Float64("brightness", env.Brightness, "Driver brightness (0 = driver default)")
	exposure := fs.Float64("exposure", env.Exposure, "Driver exposure value (0 = auto)")
	preset := fs.String("preset", env.Preset, "Camera preset: "+strings.Join(camera.PresetNames(), ", "))
	snapshot := fs.String("snapshot", env.Snapshot, "Path the last frame is written to on exit (empty disables)")
	minSpan := fs.Float64("min-span", env.MinSpan, "Minimum squared corner diagonal in px²")
	deadZone := fs.Float64("dead-zone", env.DeadZone, "Turn values with |turn| <= this read as 0")
	centerColor := fs.String("center-color", env.CenterColor, "Hex color for tag centers (default #00ff00)")
	cornerColor := fs.String("corner-color", env.CornerColor, "Hex color for tag corners (default #ff00ff)")
	wait := fs.Duration("wait", display.DefaultWait, "How long each frame waits for a key press")
	title := fs.String("title", display.DefaultTitle, "Window title")
	logLevel := fs.String("log-level", env.LogLevel, "Log level: debug, info, warn, error")
	debugFlag := fs.Bool("debug", false, "Enable verbose debug logging")
	debugDetect := fs.Bool("debug-detection", false, "Log every detector pass")

	if err := fs.Parse(args); err != nil {
		return cfg, options{}, err
	}

	opts := options{
		logLevel:       *logLevel,
		title:          *title,
		wait:           *wait,
		debug:          *debugFlag,
		debugDetection: *debugDetect,
	}
	if *debugFlag {
		opts.logLevel = "debug"
	}

	cam := camera.GetPreset(*preset)
	if cam == nil {
		return cfg, opts, fmt.Errorf("unknown preset %q", *preset)
	}
	cam.Device = *device
	cam.Brightness = *brightness
	cam.Exposure = *exposure
	cfg.Camera = *cam

	cfg.Detector = detection.Config{
		Family:            *family,
		QuadDecimate:      *quadDecimate,
		QuadSigma:         *quadSigma,
		RefineEdges:       *refineEdges,
		MinWhiteBlackDiff: *minDiff,
		Deglitch:          *deglitch,
	}
	if errs := cfg.Detector.Validate(); len(errs) > 0 {
		return cfg, opts, fmt.Errorf("detector: %v", errs)
	}

	// The turn signal is normalized by the frame width the camera was asked for.
	cfg.Tracking.FrameWidth = float64(cfg.Camera.Width)
	cfg.Tracking.MinDiagonalSq = *minSpan
	cfg.Tracking.DeadZone = *deadZone
	if errs := cfg.Tracking.Validate(); len(errs) > 0 {
		return cfg, opts, fmt.Errorf("tracking: %v", errs)
	}

	style, err := overlay.ParseStyle(*centerColor, *cornerColor)
	if err != nil {
		return cfg, opts, err
	}
	cfg.Style = style
	cfg.SnapshotPath = *snapshot

	return cfg, opts, nil
}

func run(cfg session.Config, opts options) error {
	fmt.Println("🏷️  tagview")
	fmt.Println("==========")
	fmt.Printf("Camera: device %d (%dx%d @ %d fps)\n",
		cfg.Camera.Device, cfg.Camera.Width, cfg.Camera.Height, cfg.Camera.Framerate)
	fmt.Printf("Family: %s\n", cfg.Detector.Family)
	fmt.Println("Press Return in the window or Ctrl+C to stop")

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	sess, err := session.OpenCamera(cfg)
	if err != nil {
		return err
	}

	fmt.Printf("Session: %s\n", sess.ID())

	win := display.NewWindow(opts.title, opts.wait)

	runErr := sess.Run(ctx, win)

	// Window first, then release the camera and write the snapshot.
	if err := win.Close(); err != nil {
		log.Warn("close window", "error", err)
	}
	closeErr := sess.Close()
	if closeErr != nil {
		log.Warn("close session", "error", closeErr)
	}

	if runErr == nil && closeErr == nil && cfg.SnapshotPath != "" {
		fmt.Printf("\n👋 Goodbye! Last frame saved to %s\n", cfg.SnapshotPath)
	}
	return runErr
}
