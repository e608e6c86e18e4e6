// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package config loads glprims run settings from TOML.
//
// A config file looks like:
//
//	exercise = "rectangles"
//	backend  = "software"
//	width    = 300
//	height   = 150
//	scale    = 2.0
//	seed     = 42
//	output   = "rectangles.png"
//	frames   = 0
//
// Missing keys keep their Default values. Unknown keys are an error.
package config

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid")

// Config is one run of an exercise.
type Config struct {
	// Exercise names the exercise to run.
	Exercise string `toml:"exercise"`

	// Backend names the rendering backend. Empty picks the highest
	// priority backend that is available.
	Backend string `toml:"backend"`

	// Width and Height are the logical surface size.
	Width  int `toml:"width"`
	Height int `toml:"height"`

	// Scale is the device pixel ratio.
	Scale float64 `toml:"scale"`

	// Seed seeds the random source of the rectangles exercise.
	Seed uint64 `toml:"seed"`

	// Output is where the rendered image is written. The extension picks
	// the format. Empty writes nothing.
	Output string `toml:"output"`

	// Frames is how many frames the resize exercise runs for. Zero runs
	// until interrupted.
	Frames int `toml:"frames"`
}

// Default returns the settings used when nothing is configured: the
// rectangles exercise on a 300x150 surface at a 1:1 pixel ratio.
func Default() Config {
	return Config{
		Exercise: "rectangles",
		Width:    300,
		Height:   150,
		Scale:    1,
		Seed:     1,
	}
}

// OutputFormats lists the image formats Output may name, by extension.
var OutputFormats = []string{".png", ".bmp", ".tif", ".tiff"}

// Load reads the TOML file at path over Default and validates the result.
func Load(path string) (Config, error) {
	c := Default()
	md, err := toml.DecodeFile(path, &c)
	if err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	if err := checkUndecoded(md); err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Parse decodes TOML text over Default and validates the result.
func Parse(text string) (Config, error) {
	c := Default()
	md, err := toml.Decode(text, &c)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if err := checkUndecoded(md); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func checkUndecoded(md toml.MetaData) error {
	keys := md.Undecoded()
	if len(keys) == 0 {
		return nil
	}
	names := make([]string, len(keys))
	for i, k := range keys {
		names[i] = k.String()
	}
	return fmt.Errorf("%w: unknown keys %s", ErrInvalid, strings.Join(names, ", "))
}

// Validate reports the first setting that cannot be used.
func (c Config) Validate() error {
	switch {
	case c.Exercise == "":
		return fmt.Errorf("%w: exercise is empty", ErrInvalid)
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: size %dx%d must be positive", ErrInvalid, c.Width, c.Height)
	case !(c.Scale > 0):
		return fmt.Errorf("%w: scale %v must be positive", ErrInvalid, c.Scale)
	case c.Frames < 0:
		return fmt.Errorf("%w: frames %d is negative", ErrInvalid, c.Frames)
	}
	if c.Output != "" && !supportedOutput(c.Output) {
		return fmt.Errorf("%w: output %q: extension must be one of %s",
			ErrInvalid, c.Output, strings.Join(OutputFormats, ", "))
	}
	return nil
}

func supportedOutput(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, f := range OutputFormats {
		if ext == f {
			return true
		}
	}
	return false
}

// Encode writes c as TOML.
func (c Config) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}
