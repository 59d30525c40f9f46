// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package hostsim

import (
	"bytes"
	"errors"
	"image"
	"strings"
	"testing"

	"github.com/GermanBionicSystems/displays/panel"
	"github.com/GermanBionicSystems/displays/rgb565"
	"github.com/GermanBionicSystems/displays/st7789"
	"github.com/google/go-cmp/cmp"
)

func init() {
	panel.SetLogger(nil)
}

type flushCounter struct {
	n chan struct{}
}

func (f *flushCounter) FlushReady() {
	f.n <- struct{}{}
}

func TestNew(t *testing.T) {
	var out bytes.Buffer
	d := New(&out, &panel.DefaultOpts)
	if err := d.Err(); err != nil {
		t.Fatal(err)
	}
	defer d.IO().Halt()
	if d.HRes() != 240 || d.VRes() != 135 || d.BufferSize() != 240*40 {
		t.Fatalf("unexpected geometry %s, buffer %d", d, d.BufferSize())
	}
	if d.Screen().On() {
		t.Fatal("backlight must be off after bring-up")
	}
	if err := d.Backlight(true); err != nil {
		t.Fatal(err)
	}
	if !d.Screen().On() {
		t.Fatal("expected screen on")
	}
	if out.Len() == 0 {
		t.Fatal("expected terminal output")
	}
	if !strings.HasPrefix(out.String(), "\033[H") {
		t.Fatalf("unexpected rendering prefix %q", out.String()[:8])
	}
	if err := d.Backlight(false); err != nil {
		t.Fatal(err)
	}
	if d.Screen().On() {
		t.Fatal("expected screen off")
	}
}

func TestDrawBitmap(t *testing.T) {
	d := New(nil, &panel.DefaultOpts)
	if err := d.Err(); err != nil {
		t.Fatal(err)
	}
	defer d.IO().Halt()
	f := &flushCounter{n: make(chan struct{}, 1)}
	d.SetDisplay(f)

	src := rgb565.New(image.Rect(0, 0, 4, 2))
	for i := range src.Pix {
		src.Pix[i] = byte(i + 1)
	}
	if err := d.Panel().DrawBitmap(10, 20, 14, 22, src.Pix); err != nil {
		t.Fatal(err)
	}
	<-f.n
	if err := d.IO().Wait(); err != nil {
		t.Fatal(err)
	}
	frame := d.Screen().Frame()
	var b []byte
	for y := 20; y < 22; y++ {
		off := frame.PixOffset(10, y)
		b = append(b, frame.Pix[off:off+8]...)
	}
	if diff := cmp.Diff(src.Pix, b); diff != "" {
		t.Fatalf("frame memory mismatch (-want +got):\n%s", diff)
	}
	if frame.RGB565At(0, 0) != 0 {
		t.Fatal("pixels outside of the window must not change")
	}
	if n := d.Screen().Writes(); n != 1 {
		t.Fatalf("Writes() = %d", n)
	}
}

func TestScreenErrors(t *testing.T) {
	s := NewScreen(&ScreenOpts{W: 4, H: 4})
	if err := s.Param(st7789.CmdColumnAddress, []byte{0, 0}); err == nil {
		t.Fatal("expected parameter count error")
	}
	if err := s.Color(st7789.CmdSleepOut, nil); err == nil {
		t.Fatal("expected unexpected command error")
	}
	if err := s.Color(st7789.CmdMemoryWrite, make([]byte, 3)); err == nil {
		t.Fatal("expected length error")
	}
	if err := s.Param(st7789.CmdColumnAddress, []byte{0, 2, 0, 4}); err != nil {
		t.Fatal(err)
	}
	if err := s.Color(st7789.CmdMemoryWrite, make([]byte, 2*3*4)); err == nil {
		t.Fatal("expected out of frame error")
	}
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, errors.New("closed") }

func TestNewRenderFailure(t *testing.T) {
	d := New(failWriter{}, &panel.DefaultOpts)
	var be *panel.BringupError
	if !errors.As(d.Err(), &be) {
		t.Fatalf("expected BringupError, got %v", d.Err())
	}
	if be.Step != "initialize backlight" {
		t.Fatalf("failed at %q", be.Step)
	}
}

func TestPixelInversion(t *testing.T) {
	s := NewScreen(&ScreenOpts{W: 1, H: 1})
	s.on, s.backlight = true, true
	s.frame.SetRGB565(0, 0, rgb565.FromRGB(0xFF, 0xFF, 0xFF))
	if c := s.pixel(0, 0); c.R != 0 || c.G != 0 || c.B != 0 {
		t.Fatalf("without inversion the glass shows black, got %v", c)
	}
	s.inverted = true
	if c := s.pixel(0, 0); c.R != 0xFF || c.G != 0xFF || c.B != 0xFF {
		t.Fatalf("got %v", c)
	}
	s.on = false
	if c := s.pixel(0, 0); c.R != 0 {
		t.Fatalf("display off must be black, got %v", c)
	}
}

func TestSnapshotAndChange(t *testing.T) {
	changes := make(chan struct{}, 100)
	s := NewScreen(&ScreenOpts{W: 2, H: 1, OnChange: func() { changes <- struct{}{} }})
	if err := s.setBacklight(true); err != nil {
		t.Fatal(err)
	}
	for _, cmd := range []byte{st7789.CmdInvertOn, st7789.CmdDisplayOn} {
		if err := s.Param(cmd, nil); err != nil {
			t.Fatal(err)
		}
	}
	if err := s.Color(st7789.CmdMemoryWrite, []byte{0xF8, 0x00, 0x00, 0x1F}); err != nil {
		t.Fatal(err)
	}
	if n := len(changes); n != 4 {
		t.Fatalf("%d change notifications", n)
	}
	img := s.Snapshot()
	if r, _, b, _ := img.At(0, 0).RGBA(); r != 0xFFFF || b != 0 {
		t.Fatalf("pixel 0 = %v", img.At(0, 0))
	}
	if r, _, b, _ := img.At(1, 0).RGBA(); r != 0 || b != 0xFFFF {
		t.Fatalf("pixel 1 = %v", img.At(1, 0))
	}
	s.SetOnChange(nil)
	if err := s.Param(st7789.CmdDisplayOff, nil); err != nil {
		t.Fatal(err)
	}
	if n := len(changes); n != 4 {
		t.Fatal("callback not removed")
	}
}

func TestNewDefaultTerminal(t *testing.T) {
	var out bytes.Buffer
	opts := panel.DefaultOpts
	opts.Terminal = &out
	d := NewDefault(&opts)
	if err := d.Err(); err != nil {
		t.Fatal(err)
	}
	defer d.IO().Halt()
	if out.Len() == 0 {
		t.Fatal("expected the rendering in opts.Terminal")
	}
}
