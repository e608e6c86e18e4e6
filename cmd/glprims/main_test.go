// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/gogpu/glprims"
	"github.com/gogpu/glprims/config"
)

func TestEncoderFor(t *testing.T) {
	tests := []struct {
		path string
		ok   bool
	}{
		{"out.png", true},
		{"OUT.PNG", true},
		{"dir/out.bmp", true},
		{"out.tif", true},
		{"out.tiff", true},
		{"out.jpg", false},
		{"out", false},
	}
	for _, tt := range tests {
		_, err := encoderFor(tt.path)
		if (err == nil) != tt.ok {
			t.Errorf("encoderFor(%q) error = %v, want ok=%v", tt.path, err, tt.ok)
		}
	}
}

func TestWriteImageFormats(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 4, 3))
	src.Set(1, 2, color.RGBA{R: 255, A: 255})

	tests := []struct {
		ext    string
		decode func(f *os.File) (image.Image, error)
	}{
		{".png", func(f *os.File) (image.Image, error) { return png.Decode(f) }},
		{".bmp", func(f *os.File) (image.Image, error) { return bmp.Decode(f) }},
		{".tiff", func(f *os.File) (image.Image, error) { return tiff.Decode(f) }},
	}
	for _, tt := range tests {
		t.Run(tt.ext, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "out"+tt.ext)
			if err := writeImage(path, src); err != nil {
				t.Fatalf("writeImage() error = %v", err)
			}
			f, err := os.Open(path)
			if err != nil {
				t.Fatal(err)
			}
			defer f.Close()
			img, err := tt.decode(f)
			if err != nil {
				t.Fatalf("decode error = %v", err)
			}
			if img.Bounds() != src.Bounds() {
				t.Errorf("bounds = %v, want %v", img.Bounds(), src.Bounds())
			}
			if r, _, _, _ := img.At(1, 2).RGBA(); r>>8 != 255 {
				t.Errorf("pixel (1,2) red = %d, want 255", r>>8)
			}
		})
	}
}

func TestRunWritesImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "triangle.png")
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), []string{
		"-backend", "software", "-exercise", "triangle", "-scale", "2", "-output", path,
	}, &stdout, &stderr)
	if err != nil {
		t.Fatalf("run() error = %v\n%s", err, stderr.String())
	}
	if !strings.Contains(stdout.String(), "600x300") {
		t.Errorf("stdout = %q, want it to report 600x300", stdout.String())
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 600 || b.Dy() != 300 {
		t.Errorf("image is %dx%d, want 600x300", b.Dx(), b.Dy())
	}
}

func TestRunConfigFile(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "rects.bmp")
	cfgPath := filepath.Join(dir, "glprims.toml")
	cfg := config.Default()
	cfg.Backend = "software"
	cfg.Output = filepath.Join(dir, "ignored.png")
	var buf bytes.Buffer
	if err := cfg.Encode(&buf); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(cfgPath, buf.Bytes(), 0o600); err != nil {
		t.Fatal(err)
	}

	var stdout bytes.Buffer
	if err := run(context.Background(), []string{"-config", cfgPath, "-output", out}, &stdout, &bytes.Buffer{}); err != nil {
		t.Fatalf("run() error = %v", err)
	}
	if !strings.Contains(stdout.String(), "rectangles: 100 draws") {
		t.Errorf("stdout = %q", stdout.String())
	}
	if _, err := os.Stat(out); err != nil {
		t.Errorf("flag output not written: %v", err)
	}
	if _, err := os.Stat(cfg.Output); err == nil {
		t.Error("config output written although the flag overrides it")
	}
}

func TestRunResizeFrames(t *testing.T) {
	var stdout bytes.Buffer
	err := run(context.Background(), []string{
		"-backend", "software", "-exercise", "resize", "-frames", "3", "-width", "40", "-height", "20",
		"-output", filepath.Join(t.TempDir(), "resize.png"),
	}, &stdout, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("run() error = %v", err)
	}
	if !strings.Contains(stdout.String(), "40x20") {
		t.Errorf("stdout = %q, want the resized 40x20 backing buffer", stdout.String())
	}
}

func TestRunList(t *testing.T) {
	var stdout bytes.Buffer
	if err := run(context.Background(), []string{"-list"}, &stdout, &bytes.Buffer{}); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"rectangles", "wgsl-triangle", "software", "priority 10"} {
		if !strings.Contains(stdout.String(), want) {
			t.Errorf("-list output lacks %q:\n%s", want, stdout.String())
		}
	}
}

func TestRunErrors(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		check func(error) bool
	}{
		{"unknown exercise", []string{"-exercise", "teapot"}, func(err error) bool {
			return err != nil && strings.Contains(err.Error(), "teapot")
		}},
		{"unknown backend", []string{"-backend", "vulkan"}, func(err error) bool {
			var nf *glprims.BackendNotFoundError
			return errors.As(err, &nf)
		}},
		{"invalid config", []string{"-width", "-5"}, func(err error) bool {
			return errors.Is(err, config.ErrInvalid)
		}},
		{"missing config", []string{"-config", "/nonexistent/glprims.toml"}, func(err error) bool {
			return err != nil
		}},
		{"help", []string{"-h"}, func(err error) bool {
			return errors.Is(err, flag.ErrHelp)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := run(context.Background(), tt.args, &bytes.Buffer{}, &bytes.Buffer{})
			if !tt.check(err) {
				t.Errorf("run(%v) error = %v", tt.args, err)
			}
		})
	}
}
