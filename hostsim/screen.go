// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package hostsim

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"io"
	"sync"
	"sync/atomic"

	"github.com/GermanBionicSystems/displays/rgb565"
	"github.com/GermanBionicSystems/displays/st7789"
	"github.com/maruel/ansi256"
)

// ScreenOpts configures a Screen.
type ScreenOpts struct {
	W, H int
	// Scale is the number of pixels per terminal cell, on each axis.
	Scale int
	// Palette defaults to ansi256.Default.
	Palette *ansi256.Palette
	// Out receives the rendering. nil disables it.
	Out io.Writer
	// OnChange is called after anything visible changed, without internal
	// locks held. panelview.View.Changed fits.
	OnChange func()
}

// Screen emulates the controller side of a ST7789 panel. It implements
// lcdio.Transport.
type Screen struct {
	w        io.Writer
	scale    int
	palette  ansi256.Palette
	onChange atomic.Value

	mu        sync.Mutex
	frame     *rgb565.Image
	window    image.Rectangle
	caSet     [2]int
	raSet     [2]int
	on        bool
	inverted  bool
	backlight bool
	madctl    byte
	writes    int
	buf       bytes.Buffer
}

// NewScreen returns a Screen with a blank frame memory.
func NewScreen(opts *ScreenOpts) *Screen {
	p := opts.Palette
	if p == nil {
		p = ansi256.Default
	}
	s := opts.Scale
	if s <= 0 {
		s = 1
	}
	r := image.Rect(0, 0, opts.W, opts.H)
	scr := &Screen{
		w:       opts.Out,
		scale:   s,
		palette: *p,
		frame:   rgb565.New(r),
		window:  r,
		caSet:   [2]int{0, opts.W - 1},
		raSet:   [2]int{0, opts.H - 1},
	}
	scr.SetOnChange(opts.OnChange)
	return scr
}

// SetOnChange replaces the change callback. nil removes it.
func (s *Screen) SetOnChange(f func()) {
	s.onChange.Store(f)
}

func (s *Screen) String() string {
	return fmt.Sprintf("hostsim.Screen{%s}", s.frame.Rect.Size())
}

// Param implements lcdio.Transport.
func (s *Screen) Param(cmd byte, p []byte) error {
	err := s.param(cmd, p)
	s.changed()
	return err
}

func (s *Screen) param(cmd byte, p []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch cmd {
	case st7789.CmdColumnAddress, st7789.CmdRowAddress:
		if len(p) != 4 {
			return fmt.Errorf("hostsim: command 0x%02X needs 4 parameters, got %d", cmd, len(p))
		}
		a := [2]int{int(p[0])<<8 | int(p[1]), int(p[2])<<8 | int(p[3])}
		if cmd == st7789.CmdColumnAddress {
			s.caSet = a
		} else {
			s.raSet = a
		}
		s.window = image.Rect(s.caSet[0], s.raSet[0], s.caSet[1]+1, s.raSet[1]+1)
	case st7789.CmdDisplayOn, st7789.CmdDisplayOff:
		s.on = cmd == st7789.CmdDisplayOn
		return s.refresh()
	case st7789.CmdInvertOn, st7789.CmdInvertOff:
		s.inverted = cmd == st7789.CmdInvertOn
	case st7789.CmdMemoryAccess:
		if len(p) != 1 {
			return fmt.Errorf("hostsim: MADCTL needs 1 parameter, got %d", len(p))
		}
		s.madctl = p[0]
	}
	return nil
}

// Color implements lcdio.Transport.
func (s *Screen) Color(cmd byte, c []byte) error {
	if cmd != st7789.CmdMemoryWrite {
		return fmt.Errorf("hostsim: unexpected color command 0x%02X", cmd)
	}
	err := s.memoryWrite(c)
	s.changed()
	return err
}

func (s *Screen) memoryWrite(c []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.window.In(s.frame.Rect) {
		return fmt.Errorf("hostsim: window %s outside of frame memory %s", s.window, s.frame.Rect)
	}
	if want := 2 * s.window.Dx() * s.window.Dy(); len(c) != want {
		return fmt.Errorf("hostsim: window %s needs %d bytes, got %d", s.window, want, len(c))
	}
	i := 0
	for y := s.window.Min.Y; y < s.window.Max.Y; y++ {
		off := s.frame.PixOffset(s.window.Min.X, y)
		n := 2 * s.window.Dx()
		copy(s.frame.Pix[off:off+n], c[i:i+n])
		i += n
	}
	s.writes++
	return s.refresh()
}

// Frame returns a copy of the frame memory.
func (s *Screen) Frame() *rgb565.Image {
	s.mu.Lock()
	defer s.mu.Unlock()
	f := rgb565.New(s.frame.Rect)
	copy(f.Pix, s.frame.Pix)
	return f
}

// On reports whether the display output and the backlight are on.
func (s *Screen) On() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.on && s.backlight
}

// Writes returns the number of memory writes received.
func (s *Screen) Writes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes
}

func (s *Screen) setBacklight(on bool) error {
	s.mu.Lock()
	s.backlight = on
	err := s.refresh()
	s.mu.Unlock()
	s.changed()
	return err
}

func (s *Screen) changed() {
	if f, _ := s.onChange.Load().(func()); f != nil {
		f()
	}
}

// Snapshot returns what the glass shows.
func (s *Screen) Snapshot() image.Image {
	s.mu.Lock()
	defer s.mu.Unlock()
	img := image.NewNRGBA(s.frame.Rect)
	for y := s.frame.Rect.Min.Y; y < s.frame.Rect.Max.Y; y++ {
		for x := s.frame.Rect.Min.X; x < s.frame.Rect.Max.X; x++ {
			img.SetNRGBA(x, y, s.pixel(x, y))
		}
	}
	return img
}

// pixel returns the color seen on the glass.
func (s *Screen) pixel(x, y int) color.NRGBA {
	if !s.on || !s.backlight {
		return color.NRGBA{A: 255}
	}
	r, g, b, _ := s.frame.RGB565At(x, y).RGBA()
	c := color.NRGBA{byte(r >> 8), byte(g >> 8), byte(b >> 8), 255}
	// IPS glass shows the expected colors only with inversion enabled.
	if !s.inverted {
		c.R, c.G, c.B = ^c.R, ^c.G, ^c.B
	}
	return c
}

// refresh redraws the whole frame, one terminal cell per scale x scale
// pixels. s.mu is held.
func (s *Screen) refresh() error {
	if s.w == nil {
		return nil
	}
	// This code is designed to minimize the amount of memory allocated per call.
	s.buf.Reset()
	_, _ = s.buf.WriteString("\033[H\033[0m")
	r := s.frame.Rect
	for y := r.Min.Y; y < r.Max.Y; y += s.scale {
		for x := r.Min.X; x < r.Max.X; x += s.scale {
			_, _ = io.WriteString(&s.buf, s.palette.Block(s.pixel(x, y)))
		}
		_, _ = s.buf.WriteString("\033[0m\n")
	}
	_, err := s.buf.WriteTo(s.w)
	return err
}
