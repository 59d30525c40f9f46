// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package hostsim

import (
	"io"

	"github.com/GermanBionicSystems/displays/lcdio"
	"github.com/GermanBionicSystems/displays/panel"
	"github.com/GermanBionicSystems/displays/st7789"
	"github.com/mattn/go-colorable"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"
)

// Name is the board name.
const Name = "host-emulator"

const (
	hRes = 240
	vRes = 135
	// DefaultScale keeps the rendering within a 80 columns terminal.
	DefaultScale = 4
)

var caps = panel.Caps{
	HRes:         hRes,
	VRes:         vRes,
	DoubleBuffer: true,
	SwapXY:       true,
}

// backlightPin forwards the backlight level to the Screen.
type backlightPin struct {
	gpiotest.Pin
	s *Screen
}

func (b *backlightPin) Out(l gpio.Level) error {
	if err := b.Pin.Out(l); err != nil {
		return err
	}
	return b.s.setBacklight(l == gpio.High)
}

// Dev is the emulated board.
type Dev struct {
	*panel.Descriptor
	screen *Screen
}

// New brings up an emulated panel rendering to out, which may be nil. It
// always returns a Dev; check Err before use.
func New(out io.Writer, opts *panel.Opts) *Dev {
	s := NewScreen(&ScreenOpts{W: hRes, H: vRes, Scale: DefaultScale, Out: out})
	d := &Dev{Descriptor: panel.NewDescriptor(Name, caps, opts), screen: s}
	var (
		bl  *panel.Backlight
		pio lcdio.IO
		dev *st7789.Dev
	)
	b := panel.NewBringup(Name)
	b.Step("validate options", func() error {
		return opts.Validate(vRes)
	})
	b.Step("initialize backlight", func() (err error) {
		bl, err = panel.NewBacklight(&backlightPin{Pin: gpiotest.Pin{N: "BL"}, s: s}, gpio.High)
		return err
	})
	b.Step("install panel IO", func() error {
		pio = lcdio.New(s, &lcdio.Opts{
			QueueDepth:       opts.QueueDepth,
			OnColorTransDone: d.NotifyFlushReady,
		})
		return nil
	})
	b.Step("install LCD driver of st7789", func() (err error) {
		dev, err = st7789.New(pio, &st7789.Opts{W: hRes, H: vRes, Order: st7789.RGB, BitsPerPixel: 16})
		return err
	})
	b.Step("reset panel", func() error { return dev.Reset() })
	b.Step("init panel", func() error { return dev.Init() })
	b.Step("invert color", func() error { return dev.InvertColor(true) })
	b.Step("swap xy", func() error { return dev.SwapXY(true) })
	b.Step("mirror", func() error { return dev.Mirror(opts.MirrorX, opts.MirrorY) })
	b.Step("turn display on", func() error { return dev.DisplayOn(true) })
	d.Init(bl, pio, dev, b.Err())
	return d
}

// NewDefault renders to opts.Terminal, or the process stdout when it is nil.
func NewDefault(opts *panel.Opts) *Dev {
	if opts.Terminal != nil {
		return New(opts.Terminal, opts)
	}
	return New(colorable.NewColorableStdout(), opts)
}

// Screen returns the emulated panel.
func (d *Dev) Screen() *Screen {
	return d.screen
}

var _ panel.Display = &Dev{}
