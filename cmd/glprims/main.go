// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Command glprims runs a drawing exercise and optionally writes the result
// to an image file.
//
// Usage:
//
//	glprims [-config file.toml] [-exercise name] [-backend name]
//	        [-width w] [-height h] [-scale s] [-seed n]
//	        [-output file.png|.bmp|.tiff] [-frames n] [-v] [-list]
//
// Flags override values from the config file. Without -backend the
// highest priority backend that can open a surface in this build is used.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"math/rand/v2"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/gogpu/glprims"
	"github.com/gogpu/glprims/config"
	"github.com/gogpu/glprims/exercise"
	"github.com/gogpu/glprims/frameloop"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		log.Fatalf("glprims: %v", err)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("glprims", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		configPath = fs.String("config", "", "TOML config file")
		exName     = fs.String("exercise", "", "exercise to run (see -list)")
		backend    = fs.String("backend", "", "rendering backend (default: best available)")
		width      = fs.Int("width", 0, "logical surface width")
		height     = fs.Int("height", 0, "logical surface height")
		scale      = fs.Float64("scale", 0, "device pixel ratio")
		seed       = fs.Uint64("seed", 0, "random seed")
		output     = fs.String("output", "", "write the rendered image to this file")
		frames     = fs.Int("frames", 0, "frames to run looping exercises for (0: until interrupted)")
		verbose    = fs.Bool("v", false, "verbose logging")
		list       = fs.Bool("list", false, "list exercises and backends, then exit")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *verbose {
		glprims.SetLogger(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
		defer glprims.SetLogger(nil)
	}

	if *list {
		printList(stdout)
		return nil
	}

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			return err
		}
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "exercise":
			cfg.Exercise = *exName
		case "backend":
			cfg.Backend = *backend
		case "width":
			cfg.Width = *width
		case "height":
			cfg.Height = *height
		case "scale":
			cfg.Scale = *scale
		case "seed":
			cfg.Seed = *seed
		case "output":
			cfg.Output = *output
		case "frames":
			cfg.Frames = *frames
		}
	})
	if err := cfg.Validate(); err != nil {
		return err
	}
	ex, ok := exercise.Lookup(cfg.Exercise)
	if !ok {
		return fmt.Errorf("unknown exercise %q (have %s)", cfg.Exercise, strings.Join(exercise.Names(), ", "))
	}

	t, gl, err := acquire(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := t.close(); err != nil {
			glprims.Logger().Warn("glprims: close surface", "err", err)
		}
	}()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	glprims.Logger().Info("glprims: exercise started", "exercise", ex.Name, "backend", gl.AdapterInfo().Name)
	scene, err := ex.Run(ctx, exercise.Env{
		GL:      gl,
		Surface: t.surface,
		Rand:    rand.New(rand.NewPCG(cfg.Seed, cfg.Seed)),
		Frames:  t.loop,
	})
	if err != nil {
		return fmt.Errorf("%s: %w", cfg.Exercise, err)
	}
	defer scene.Close()
	glprims.Logger().Info("glprims: exercise drawn", "exercise", ex.Name, "draws", scene.Draws)

	if cfg.Frames > 0 {
		n := 0
		frameloop.Chain(ctx, t.loop, func(time.Duration) {
			n++
			if n >= cfg.Frames {
				cancel()
			}
		})
	}
	if t.loop.Pending() > 0 {
		if err := t.loop.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
	}

	if cfg.Output != "" {
		if err := writeImage(cfg.Output, t.image()); err != nil {
			return err
		}
		w, h := t.surface.BackingSize()
		fmt.Fprintf(stdout, "%s: %d draws, %dx%d written to %s\n", cfg.Exercise, scene.Draws, w, h, cfg.Output)
	}
	return nil
}

func printList(w io.Writer) {
	fmt.Fprintln(w, "exercises:")
	for _, name := range exercise.Names() {
		e, _ := exercise.Lookup(name)
		fmt.Fprintf(w, "  %-14s %s\n", name, e.Description)
	}
	fmt.Fprintln(w, "backends:")
	available := map[string]bool{}
	for _, name := range glprims.Backends() {
		available[name] = true
	}
	for _, name := range glprims.AllBackends() {
		status := "unavailable"
		if _, ok := targets[name]; !ok {
			status = "no surface in this build"
		} else if available[name] {
			status = "available"
		}
		priority := 0
		if e, ok := glprims.Backend(name); ok {
			priority = e.Priority
		}
		fmt.Fprintf(w, "  %-14s priority %-4d %s\n", name, priority, status)
	}
}
