// Package display shows annotated frames in a native window.
package display

import (
	"sync"
	"time"

	"gocv.io/x/gocv"
)

// Defaults for the operator window.
const (
	DefaultTitle = "Result"
	DefaultWait  = 100 * time.Millisecond
	KeyEnter     = 13 // Return key code reported by HighGUI
)

// Display is where annotated frames are shown.
type Display interface {
	// Show presents the frame.
	Show(img gocv.Mat)

	// Poll gives the UI event loop a chance to run and reports whether
	// the operator asked to quit.
	Poll() bool

	// Close releases the display.
	Close() error
}

// Window is a HighGUI window that quits on the Return key.
type Window struct {
	win    *gocv.Window
	wait   time.Duration
	mu     sync.Mutex
	closed bool
}

// NewWindow opens a named window. wait is how long Poll blocks for a key.
func NewWindow(title string, wait time.Duration) *Window {
	if title == "" {
		title = DefaultTitle
	}
	if wait <= 0 {
		wait = DefaultWait
	}
	return &Window{
		win:  gocv.NewWindow(title),
		wait: wait,
	}
}

// Show presents the frame.
func (w *Window) Show(img gocv.Mat) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed || img.Empty() {
		return
	}
	w.win.IMShow(img)
}

// Poll waits up to the configured duration for a key press.
func (w *Window) Poll() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return true
	}
	return IsExitKey(w.win.WaitKey(int(w.wait.Milliseconds())))
}

// Close destroys the window. Calling Close more than once is safe.
func (w *Window) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return nil
	}
	w.closed = true
	return w.win.Close()
}

// IsExitKey reports whether a WaitKey result is the quit key.
func IsExitKey(key int) bool {
	return key == KeyEnter
}
