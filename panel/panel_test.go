// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package panel

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"
)

func init() {
	SetLogger(nil)
}

func TestOptsValidate(t *testing.T) {
	for _, tc := range []struct {
		name string
		opts Opts
		ok   bool
	}{
		{name: "default", opts: DefaultOpts, ok: true},
		{name: "full frame", opts: Opts{LineCount: 135, Clock: 1, QueueDepth: 1}, ok: true},
		{name: "too many lines", opts: Opts{LineCount: 136, Clock: 1, QueueDepth: 1}},
		{name: "no lines", opts: Opts{Clock: 1, QueueDepth: 1}},
		{name: "no clock", opts: Opts{LineCount: 1, QueueDepth: 1}},
		{name: "no queue", opts: Opts{LineCount: 1, Clock: 1}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.opts.Validate(135)
			if tc.ok != (err == nil) {
				t.Fatalf("Validate() = %v", err)
			}
			if err != nil && !errors.Is(err, ErrInvalidOpts) {
				t.Fatalf("Validate() = %v, want ErrInvalidOpts", err)
			}
		})
	}
}

func TestDescriptorCaps(t *testing.T) {
	opts := DefaultOpts
	opts.MirrorY = true
	d := NewDescriptor("board", Caps{HRes: 240, VRes: 135, DoubleBuffer: true, SwapXY: true, DMA: true}, &opts)
	type caps struct {
		BufferSize int
		HRes, VRes int
		Flags      [8]bool
	}
	got := caps{d.BufferSize(), d.HRes(), d.VRes(), [8]bool{d.DoubleBuffer(), d.Monochrome(), d.SwapXY(), d.MirrorX(), d.MirrorY(), d.DMA(), d.SPIRAM(), d.Err() != nil}}
	want := caps{9600, 240, 135, [8]bool{true, false, true, false, true, true, false, false}}
	if diff := cmp.Diff(got, want); diff != "" {
		t.Fatalf("capabilities difference (-got +want):\n%s", diff)
	}
	if got := d.String(); got != "board{240x135}" {
		t.Fatalf("String() = %q", got)
	}
}

type countNotifier int

func (c *countNotifier) FlushReady() { *c++ }

func TestNotifyFlushReady(t *testing.T) {
	d := NewDescriptor("board", Caps{HRes: 1, VRes: 1}, &DefaultOpts)
	// Dropped, no display bound.
	d.NotifyFlushReady()
	var n countNotifier
	d.SetDisplay(&n)
	d.NotifyFlushReady()
	d.NotifyFlushReady()
	if n != 2 {
		t.Fatalf("FlushReady called %d times, want 2", n)
	}
}

func TestBacklight(t *testing.T) {
	pin := &gpiotest.Pin{N: "BL", L: gpio.High}
	bl, err := NewBacklight(pin, gpio.High)
	if err != nil {
		t.Fatal(err)
	}
	if pin.Read() != gpio.Low {
		t.Fatal("backlight must start off")
	}
	d := NewDescriptor("board", Caps{HRes: 1, VRes: 1}, &DefaultOpts)
	d.Init(bl, nil, nil, nil)
	if err := d.Backlight(true); err != nil {
		t.Fatal(err)
	}
	if pin.Read() != gpio.High {
		t.Fatal("backlight not on")
	}
	if err := d.Backlight(false); err != nil {
		t.Fatal(err)
	}
	if pin.Read() != gpio.Low {
		t.Fatal("backlight not off")
	}
}

func TestBacklightMissing(t *testing.T) {
	d := NewDescriptor("board", Caps{HRes: 1, VRes: 1}, &DefaultOpts)
	if err := d.Backlight(true); err == nil {
		t.Fatal("expected error without backlight")
	}
}

func TestBringup(t *testing.T) {
	errStep := errors.New("boom")
	var ran []string
	b := NewBringup("board")
	for _, s := range []struct {
		name string
		err  error
	}{{"first", nil}, {"second", errStep}, {"third", nil}} {
		s := s
		b.Step(s.name, func() error {
			ran = append(ran, s.name)
			return s.err
		})
	}
	if diff := cmp.Diff(ran, []string{"first", "second"}); diff != "" {
		t.Fatalf("steps difference (-got +want):\n%s", diff)
	}
	var be *BringupError
	if !errors.As(b.Err(), &be) || be.Step != "second" || !errors.Is(b.Err(), errStep) {
		t.Fatalf("Err() = %v", b.Err())
	}
	if got := b.Err().Error(); got != "board: failed to second: boom" {
		t.Fatalf("Error() = %q", got)
	}
}

func TestRequirePin(t *testing.T) {
	if err := RequirePin("dc", nil); err == nil {
		t.Fatal("expected error for nil pin")
	}
	if err := RequirePin("dc", gpio.INVALID); err == nil {
		t.Fatal("expected error for gpio.INVALID")
	}
	if err := RequirePin("dc", &gpiotest.Pin{}); err != nil {
		t.Fatal(err)
	}
}
