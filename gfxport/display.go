// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package gfxport

import (
	"fmt"
	"image"
	"sync/atomic"

	"github.com/GermanBionicSystems/displays/lcdio"
	"github.com/GermanBionicSystems/displays/rgb565"
)

// Panel is the controller handle a display flushes to. st7789.Dev
// implements it.
type Panel interface {
	// DrawBitmap transfers the window [x0, x1) x [y0, y1). The panel calls
	// Display.FlushReady once color is no longer used.
	DrawBitmap(x0, y0, x1, y1 int, color []byte) error
}

// Rotation is the panel orientation configured at bring-up.
type Rotation struct {
	SwapXY  bool
	MirrorX bool
	MirrorY bool
}

// Flags are the draw buffer placement hints.
//
// Go has no DMA capable or external RAM allocators; they are recorded only.
type Flags struct {
	BuffDMA    bool
	BuffSPIRAM bool
}

// DisplayConfig describes a panel to AddDisplay.
type DisplayConfig struct {
	IO    lcdio.IO
	Panel Panel
	// BufferSize is the size of each draw buffer, in pixels.
	BufferSize   int
	DoubleBuffer bool
	HRes, VRes   int
	Monochrome   bool
	Rotation     Rotation
	Flags        Flags
}

func (c *DisplayConfig) validate() error {
	switch {
	case c.Panel == nil:
		return fmt.Errorf("%w: no panel", ErrInvalidConfig)
	case c.HRes <= 0 || c.VRes <= 0:
		return fmt.Errorf("%w: resolution %dx%d", ErrInvalidConfig, c.HRes, c.VRes)
	case c.BufferSize < c.HRes || c.BufferSize > c.HRes*c.VRes:
		return fmt.Errorf("%w: buffer size %d for %dx%d", ErrInvalidConfig, c.BufferSize, c.HRes, c.VRes)
	}
	return nil
}

// Display is a panel registered with the runtime. It is the handle passed
// back to the panel for flush ready notifications.
type Display struct {
	rt     *Runtime
	cfg    DisplayConfig
	canvas *rgb565.Image
	lines  int

	// Guarded by the runtime lock.
	dirty    image.Rectangle
	bufs     [][]byte
	cur      int
	inFlight bool

	ready   chan struct{}
	flushes uint64
}

// AddDisplay registers a panel and returns its handle. The whole canvas is
// invalidated so the first flush paints the panel.
//
// Call it while holding the lock and publish the handle to the panel before
// releasing it: the task may flush the display as soon as the lock is free.
func (r *Runtime) AddDisplay(cfg *DisplayConfig) (*Display, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.started {
		return nil, ErrNotStarted
	}
	d := &Display{
		rt:     r,
		cfg:    *cfg,
		canvas: rgb565.New(image.Rect(0, 0, cfg.HRes, cfg.VRes)),
		lines:  cfg.BufferSize / cfg.HRes,
		ready:  make(chan struct{}, 1),
	}
	size := 2 * d.lines * cfg.HRes
	if cfg.Monochrome {
		size = d.lines * ((cfg.HRes + 7) / 8)
	}
	n := 1
	if cfg.DoubleBuffer {
		n = 2
	}
	for i := 0; i < n; i++ {
		d.bufs = append(d.bufs, make([]byte, size))
	}
	d.dirty = d.canvas.Bounds()
	r.displays = append(r.displays, d)
	r.kick()
	return d, nil
}

func (d *Display) String() string {
	return fmt.Sprintf("gfxport.Display{%dx%d, lines=%d, buffers=%d}", d.cfg.HRes, d.cfg.VRes, d.lines, len(d.bufs))
}

// Canvas returns the drawing surface. Hold the lock while using it.
func (d *Display) Canvas() *rgb565.Image {
	return d.canvas
}

// Bounds returns the canvas bounds.
func (d *Display) Bounds() image.Rectangle {
	return d.canvas.Bounds()
}

// Rotation returns the panel orientation.
func (d *Display) Rotation() Rotation {
	return d.cfg.Rotation
}

// Invalidate marks r for the next flush. Hold the lock.
func (d *Display) Invalidate(r image.Rectangle) {
	r = r.Intersect(d.canvas.Bounds())
	if r.Empty() {
		return
	}
	d.dirty = d.dirty.Union(r)
	d.rt.kick()
}

// FlushReady signals that the last flushed buffer may be reused. It is safe
// to call from any goroutine and never blocks.
func (d *Display) FlushReady() {
	select {
	case d.ready <- struct{}{}:
	default:
	}
}

// Flushes returns the number of bands handed to the panel.
func (d *Display) Flushes() uint64 {
	return atomic.LoadUint64(&d.flushes)
}

// waitReady waits for the in flight transfer. It returns false when stop is
// closed first.
func (d *Display) waitReady(stop <-chan struct{}) bool {
	if !d.inFlight {
		return true
	}
	select {
	case <-d.ready:
		d.inFlight = false
		return true
	case <-stop:
		return false
	}
}

// flush sends the dirty area in bands of d.lines lines. The lock is held.
// Bands not sent stay invalidated for the next iteration.
func (d *Display) flush(stop <-chan struct{}) error {
	area := d.dirty
	d.dirty = image.Rectangle{}
	double := len(d.bufs) == 2
	for y := area.Min.Y; y < area.Max.Y; y += d.lines {
		band := image.Rect(area.Min.X, y, area.Max.X, y+d.lines).Intersect(area)
		unsent := image.Rect(area.Min.X, y, area.Max.X, area.Max.Y)
		if !double && !d.waitReady(stop) {
			d.dirty = d.dirty.Union(unsent)
			return nil
		}
		buf := d.bufs[d.cur]
		n := d.render(buf, band)
		// Only one transfer is in flight; with two buffers the band above
		// was rendered while the previous one was sent.
		if double && !d.waitReady(stop) {
			d.dirty = d.dirty.Union(unsent)
			return nil
		}
		d.inFlight = true
		atomic.AddUint64(&d.flushes, 1)
		if err := d.cfg.Panel.DrawBitmap(band.Min.X, band.Min.Y, band.Max.X, band.Max.Y, buf[:n]); err != nil {
			// Nothing was queued, no notification will come.
			d.inFlight = false
			d.dirty = d.dirty.Union(unsent)
			return err
		}
		if double {
			d.cur ^= 1
		}
	}
	return nil
}

// render converts band into buf and returns the number of bytes used.
func (d *Display) render(buf []byte, band image.Rectangle) int {
	if !d.cfg.Monochrome {
		return d.canvas.CopyRect(buf, band)
	}
	stride := (band.Dx() + 7) / 8
	n := stride * band.Dy()
	for i := range buf[:n] {
		buf[i] = 0
	}
	for y := band.Min.Y; y < band.Max.Y; y++ {
		row := buf[(y-band.Min.Y)*stride:]
		for x := band.Min.X; x < band.Max.X; x++ {
			if luma(d.canvas.RGB565At(x, y)) > 127 {
				i := x - band.Min.X
				row[i/8] |= 0x80 >> uint(i%8)
			}
		}
	}
	return n
}

func luma(c rgb565.Color) int {
	r, g, b, _ := c.RGBA()
	return int((299*(r>>8) + 587*(g>>8) + 114*(b>>8)) / 1000)
}
