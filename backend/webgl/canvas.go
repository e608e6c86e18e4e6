// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

//go:build js && wasm

package webgl

import (
	"fmt"
	"time"

	"github.com/hack-pad/safejs"

	"github.com/gogpu/glprims"
	"github.com/gogpu/glprims/frameloop"
)

// Canvas is an HTML canvas element. It implements glprims.Surface and
// frameloop.Requester.
type Canvas struct {
	el     safejs.Value
	window safejs.Value
}

var (
	_ glprims.Surface     = (*Canvas)(nil)
	_ frameloop.Requester = (*Canvas)(nil)
)

// FindCanvas returns the first element of the document matching selector.
// It fails with glprims.ErrElementNotFound when nothing matches.
func FindCanvas(selector string) (*Canvas, error) {
	window := safejs.Global()
	doc, err := window.Get("document")
	if err != nil {
		return nil, fmt.Errorf("webgl: document: %w", err)
	}
	el, err := doc.Call("querySelector", selector)
	if err != nil {
		return nil, fmt.Errorf("webgl: querySelector(%q): %w", selector, err)
	}
	if el.IsNull() || el.IsUndefined() {
		return nil, fmt.Errorf("%w: %q", glprims.ErrElementNotFound, selector)
	}
	return &Canvas{el: el, window: window}, nil
}

// Element returns the canvas element.
func (c *Canvas) Element() safejs.Value { return c.el }

// Attribute returns the value of an HTML attribute, or "" when absent.
func (c *Canvas) Attribute(name string) string {
	v, err := c.el.Call("getAttribute", name)
	if err != nil || v.IsNull() {
		return ""
	}
	s, err := v.String()
	if err != nil {
		return ""
	}
	return s
}

func (c *Canvas) intProp(v safejs.Value, name string) int {
	p, err := v.Get(name)
	if err != nil {
		logger().Warn("webgl: property read failed", "property", name, "err", err)
		return 0
	}
	n, err := p.Int()
	if err != nil {
		return 0
	}
	return n
}

// Size returns the size the browser displays the canvas at, in CSS pixels.
func (c *Canvas) Size() (width, height int) {
	return c.intProp(c.el, "clientWidth"), c.intProp(c.el, "clientHeight")
}

// ScaleFactor returns window.devicePixelRatio, or 1 when it is not set.
func (c *Canvas) ScaleFactor() float64 {
	v, err := c.window.Get("devicePixelRatio")
	if err != nil || v.IsUndefined() || v.IsNull() {
		return 1
	}
	f, err := v.Float()
	if err != nil {
		return 1
	}
	return devicePixelRatio(f)
}

// RequestRedraw is a no-op; the browser composites the canvas itself.
func (c *Canvas) RequestRedraw() {}

// BackingSize returns the canvas width and height attributes.
func (c *Canvas) BackingSize() (width, height int) {
	return c.intProp(c.el, "width"), c.intProp(c.el, "height")
}

// SetBackingSize sets the canvas width and height attributes, which
// discards the drawing buffer.
func (c *Canvas) SetBackingSize(width, height int) {
	if err := c.el.Set("width", width); err != nil {
		logger().Warn("webgl: set width failed", "err", err)
	}
	if err := c.el.Set("height", height); err != nil {
		logger().Warn("webgl: set height failed", "err", err)
	}
}

// RequestFrame schedules fn with requestAnimationFrame. The timestamp is
// the one the browser passes, converted from milliseconds.
func (c *Canvas) RequestFrame(fn frameloop.Callback) {
	var cb safejs.Func
	cb, err := safejs.FuncOf(func(_ safejs.Value, args []safejs.Value) any {
		cb.Release()
		var ms float64
		if len(args) > 0 {
			ms, _ = args[0].Float()
		}
		fn(time.Duration(ms * float64(time.Millisecond)))
		return nil
	})
	if err != nil {
		logger().Warn("webgl: frame callback", "err", err)
		return
	}
	if _, err := c.window.Call("requestAnimationFrame", cb); err != nil {
		cb.Release()
		logger().Warn("webgl: requestAnimationFrame failed", "err", err)
	}
}
