// Package debug provides global debug logging flags
package debug

import "fmt"

// Enabled controls whether debug logging is active
var Enabled bool

// Detection controls whether per-frame detector logs are shown.
// Use --debug-detection to enable these very verbose logs.
var Detection bool

// Log prints a message only if debug mode is enabled
func Log(format string, args ...interface{}) {
	if Enabled {
		fmt.Printf(format, args...)
	}
}

// DetectLog prints a message only if detection debug mode is enabled
func DetectLog(format string, args ...interface{}) {
	if Detection {
		fmt.Printf(format, args...)
	}
}
