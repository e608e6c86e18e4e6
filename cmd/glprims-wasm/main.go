// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

//go:build js && wasm

// Command glprims-wasm runs an exercise on the first canvas of a web page.
//
// The exercise is named by the canvas's data-exercise attribute and
// defaults to "rectangles". After it has drawn, the canvas backing buffer
// is kept matched to its displayed size on every animation frame.
//
//	<canvas data-exercise="triangle" style="width: 100%; height: 100%"></canvas>
package main

import (
	"context"
	"log"
	"log/slog"
	"math/rand/v2"
	"os"

	"github.com/gogpu/glprims"
	"github.com/gogpu/glprims/backend/webgl"
	"github.com/gogpu/glprims/exercise"
)

func main() {
	glprims.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})))
	log.Println("starting main")

	canvas, err := webgl.FindCanvas(webgl.DefaultSelector)
	if err != nil {
		log.Fatal(err)
	}
	gl, err := glprims.AcquireByName(webgl.BackendName, canvas)
	if err != nil {
		log.Fatal(err)
	}

	name := canvas.Attribute("data-exercise")
	if name == "" {
		name = "rectangles"
	}
	ex, ok := exercise.Lookup(name)
	if !ok {
		log.Fatalf("unknown exercise %q", name)
	}

	ctx := context.Background()
	scene, err := ex.Run(ctx, exercise.Env{
		GL:      gl,
		Surface: canvas,
		Rand:    rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		Frames:  canvas,
	})
	if err != nil {
		log.Fatalf("%s: %v", name, err)
	}
	// The scene lives as long as the page.
	glprims.Logger().Info("glprims: exercise drawn", "exercise", name, "draws", scene.Draws)

	if name != "resize" {
		exercise.ResizeLoop(ctx, canvas, canvas, nil)
	}
	log.Println("ending main")

	// Frame callbacks need the Go runtime alive.
	select {}
}
