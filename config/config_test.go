// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package config

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Errorf("Default().Validate() = %v", err)
	}
}

func TestParse(t *testing.T) {
	c, err := Parse(`
exercise = "triangle"
backend = "software"
width = 640
scale = 1.5
output = "out.BMP"
`)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	want := Default()
	want.Exercise = "triangle"
	want.Backend = "software"
	want.Width = 640
	want.Scale = 1.5
	want.Output = "out.BMP"
	if c != want {
		t.Errorf("Parse() = %+v, want %+v", c, want)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"default", func(*Config) {}, true},
		{"no exercise", func(c *Config) { c.Exercise = "" }, false},
		{"zero width", func(c *Config) { c.Width = 0 }, false},
		{"negative height", func(c *Config) { c.Height = -1 }, false},
		{"zero scale", func(c *Config) { c.Scale = 0 }, false},
		{"negative frames", func(c *Config) { c.Frames = -1 }, false},
		{"png", func(c *Config) { c.Output = "a.png" }, true},
		{"tiff", func(c *Config) { c.Output = "dir/a.TIFF" }, true},
		{"jpeg", func(c *Config) { c.Output = "a.jpg" }, false},
		{"no extension", func(c *Config) { c.Output = "a" }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			tt.mutate(&c)
			err := c.Validate()
			if tt.ok && err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
			if !tt.ok && !errors.Is(err, ErrInvalid) {
				t.Errorf("Validate() = %v, want ErrInvalid", err)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"syntax", "width = "},
		{"type", `width = "wide"`},
		{"unknown key", "colour = 1"},
		{"invalid value", "scale = -2.0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse(tt.text); err == nil {
				t.Error("Parse() error = nil")
			}
		})
	}
	if _, err := Parse("colour = 1"); !errors.Is(err, ErrInvalid) || !strings.Contains(err.Error(), "colour") {
		t.Errorf("unknown key error = %v, want ErrInvalid naming the key", err)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "glprims.toml")
	if err := os.WriteFile(path, []byte("exercise = \"resize\"\nframes = 30\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if c.Exercise != "resize" || c.Frames != 30 || c.Width != 300 {
		t.Errorf("Load() = %+v", c)
	}

	if _, err := Load(filepath.Join(dir, "missing.toml")); err == nil {
		t.Error("Load(missing) error = nil")
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	c := Default()
	c.Output = "shot.png"
	c.Seed = 7
	var buf bytes.Buffer
	if err := c.Encode(&buf); err != nil {
		t.Fatal(err)
	}
	got, err := Parse(buf.String())
	if err != nil {
		t.Fatalf("Parse(encoded) error = %v\n%s", err, buf.String())
	}
	if got != c {
		t.Errorf("round trip = %+v, want %+v", got, c)
	}
}
