// Package glprims draws 2D primitives through a WebGL2-style graphics
// capability bound to a display surface.
//
// # Overview
//
// The package defines the capability as the [Context] interface and the
// display surface as the [Surface] interface. Backends implement both:
//
//   - backend/webgl: the browser (GOOS=js GOARCH=wasm), WebGL2 on a canvas
//   - backend/opengl: a desktop window through GLFW and OpenGL 4.1 core
//   - backend/soft: a headless software implementation rendered with gg
//
// On top of the capability the package provides the shader-program build
// pipeline and the surface sizing helper:
//
//	ctx, err := glprims.Acquire(surface)
//	if err != nil {
//	    return err
//	}
//	glprims.Resize(surface)
//
//	prog, err := glprims.BuildProgram(ctx, vertexSource, fragmentSource)
//	if err != nil {
//	    var ce *glprims.ShaderCompileError
//	    if errors.As(err, &ce) {
//	        log.Println(ce.Log)
//	    }
//	    return err
//	}
//
// The exercise package contains the draw routines built on this pipeline.
//
// # Resource ownership
//
// Shader objects are deleted by [BuildProgram] once the link attempt is
// over. Programs, buffers and vertex arrays belong to the caller and are
// released with the matching Delete call.
//
// # Concurrency
//
// A Context and its Surface must be used from a single goroutine. The
// browser and OpenGL contexts are additionally bound to the thread that
// created them.
package glprims
