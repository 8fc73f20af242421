// Package config provides configuration helpers for tagview commands.
// Values come from the environment, optionally seeded from a .env file.
package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variable names.
const (
	EnvDevice      = "TAGVIEW_DEVICE"
	EnvPreset      = "TAGVIEW_PRESET"
	EnvSnapshot    = "TAGVIEW_SNAPSHOT"
	EnvLogLevel    = "TAGVIEW_LOG_LEVEL"
	EnvFamily      = "TAGVIEW_FAMILY"
	EnvMinSpan     = "TAGVIEW_MIN_SPAN"
	EnvDeadZone    = "TAGVIEW_DEAD_ZONE"
	EnvCenterColor = "TAGVIEW_CENTER_COLOR"
	EnvCornerColor = "TAGVIEW_CORNER_COLOR"
	EnvBrightness  = "TAGVIEW_BRIGHTNESS"
	EnvExposure    = "TAGVIEW_EXPOSURE"
)

// Default values used when neither env nor flags set anything.
const (
	DefaultPreset   = "default"
	DefaultSnapshot = "final.png"
	DefaultLogLevel = "info"
	DefaultFamily   = "tag36h11"
	DefaultMinSpan  = 5000.0
	DefaultDeadZone = 0.05
)

// Config is the environment-derived configuration. Flags in cmd/tagview
// use these values as their defaults.
type Config struct {
	Device      int
	Preset      string
	Snapshot    string
	LogLevel    string
	Family      string
	MinSpan     float64
	DeadZone    float64
	CenterColor string
	CornerColor string
	Brightness  float64 // 0 leaves the driver default
	Exposure    float64 // 0 keeps auto exposure
}

// LoadDotEnv loads the given .env files (".env" when none are given) into
// the process environment. Variables already set are not overridden and
// missing files are ignored.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}
	return nil
}

// Load reads the configuration from the environment.
func Load() Config {
	return Config{
		Device:      getEnvAsInt(EnvDevice, 0),
		Preset:      getEnv(EnvPreset, DefaultPreset),
		Snapshot:    getEnv(EnvSnapshot, DefaultSnapshot),
		LogLevel:    getEnv(EnvLogLevel, DefaultLogLevel),
		Family:      getEnv(EnvFamily, DefaultFamily),
		MinSpan:     getEnvAsFloat(EnvMinSpan, DefaultMinSpan),
		DeadZone:    getEnvAsFloat(EnvDeadZone, DefaultDeadZone),
		CenterColor: getEnv(EnvCenterColor, ""),
		CornerColor: getEnv(EnvCornerColor, ""),
		Brightness:  getEnvAsFloat(EnvBrightness, 0),
		Exposure:    getEnvAsFloat(EnvExposure, 0),
	}
}

// Production reports whether GO_ENV=production.
func Production() bool {
	return os.Getenv("GO_ENV") == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}
