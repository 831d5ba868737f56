// seehuhn.de/go/fractal - fractal generation and rendering
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package config reads process configuration from the environment.
package config

import (
	"log/slog"
	"os"
	"runtime"
	"strconv"

	"seehuhn.de/go/fractal"
)

// Config holds the settings of a command-line session.
type Config struct {
	// Workers is the number of render goroutines.
	Workers int

	// Width and Height give the default image size in pixels.
	Width, Height int

	// MaxIterations and EscapeRadius are the defaults for escape-time
	// renders.
	MaxIterations int
	EscapeRadius  float64

	// Palette is the id of the default palette.
	Palette string

	// LineWidth is the default curve stroke width in pixels.
	LineWidth float64

	// LogLevel is one of "debug", "info", "warn" and "error".
	LogLevel string
}

// Load reads the configuration from FRACTAL_* environment variables.
// Unset or malformed variables take their default values.
func Load() *Config {
	return &Config{
		Workers:       getEnvAsInt("FRACTAL_WORKERS", runtime.GOMAXPROCS(0)),
		Width:         getEnvAsInt("FRACTAL_WIDTH", 800),
		Height:        getEnvAsInt("FRACTAL_HEIGHT", 600),
		MaxIterations: getEnvAsInt("FRACTAL_MAX_ITERATIONS", fractal.DefaultMaxIterations),
		EscapeRadius:  getEnvAsFloat("FRACTAL_ESCAPE_RADIUS", fractal.DefaultEscapeRadius),
		Palette:       getEnv("FRACTAL_PALETTE", "rainbow"),
		LineWidth:     getEnvAsFloat("FRACTAL_LINE_WIDTH", fractal.DefaultLineWidth),
		LogLevel:      getEnv("FRACTAL_LOG_LEVEL", "warn"),
	}
}

// SlogLevel returns the configured log level.  Unknown names give
// [slog.LevelWarn].
func (c *Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelWarn
	}
	return level
}

// Params returns the default parameters for kind, with the configured
// iteration limits, palette and line width.
func (c *Config) Params(kind fractal.Kind) (fractal.Params, error) {
	p := fractal.DefaultParams(kind)
	p.MaxIterations = c.MaxIterations
	p.EscapeRadius = c.EscapeRadius
	p.LineWidth = c.LineWidth
	pal, err := fractal.LookupPalette(c.Palette)
	if err != nil {
		return fractal.Params{}, err
	}
	p.Palette = pal
	return p, nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvAsFloat(key string, defaultVal float64) float64 {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.ParseFloat(val, 64); err == nil {
			return parsed
		}
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return defaultVal
}
