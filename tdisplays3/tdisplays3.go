// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package tdisplays3 brings up the LILYGO T-Display-S3: a 1.9" 320x170 IPS
// panel with an ST7789 controller on an 8-bit Intel 8080 parallel bus.
package tdisplays3

import (
	"github.com/GermanBionicSystems/displays/lcdio"
	"github.com/GermanBionicSystems/displays/panel"
	"github.com/GermanBionicSystems/displays/st7789"
	"periph.io/x/conn/v3/gpio"
)

// Name is the board name.
const Name = "t-display-s3"

const (
	hRes = 320
	vRes = 170
	gapX = 0
	gapY = 35
	// queueDepth is fixed by the board support package, it does not follow
	// panel.Opts.QueueDepth.
	queueDepth = 10
)

// Default GPIO names, as wired on the board.
const (
	PinBacklight = "GPIO38"
	PinRD        = "GPIO9"
	PinDC        = "GPIO7"
	PinWR        = "GPIO8"
	PinCS        = "GPIO6"
	PinReset     = "GPIO5"
)

// PinData are D0 to D7.
var PinData = [8]string{"GPIO39", "GPIO40", "GPIO41", "GPIO42", "GPIO45", "GPIO46", "GPIO47", "GPIO48"}

var caps = panel.Caps{
	HRes:         hRes,
	VRes:         vRes,
	DoubleBuffer: true,
	SwapXY:       true,
	DMA:          true,
}

// Pins is the board wiring.
type Pins struct {
	Backlight gpio.PinOut
	// RD is the read strobe. The panel is write only, it is held high.
	RD gpio.PinOut
	DC gpio.PinOut
	// WR is the write strobe, the pixel clock.
	WR    gpio.PinOut
	CS    gpio.PinOut
	Reset gpio.PinOut
	Data  [8]gpio.PinOut
}

// Dev is a T-Display-S3 panel.
type Dev struct {
	*panel.Descriptor
}

// New brings the panel up. It always returns a Dev; check Err before use.
func New(pins *Pins, opts *panel.Opts) *Dev {
	d := &Dev{Descriptor: panel.NewDescriptor(Name, caps, opts)}
	var (
		bl  *panel.Backlight
		bus *lcdio.I80Bus
		pio lcdio.IO
		dev *st7789.Dev
	)
	b := panel.NewBringup(Name)
	b.Step("validate options", func() error {
		return opts.Validate(vRes)
	})
	b.Step("initialize backlight", func() (err error) {
		if err = panel.RequirePin("backlight", pins.Backlight); err != nil {
			return err
		}
		bl, err = panel.NewBacklight(pins.Backlight, gpio.High)
		return err
	})
	b.Step("initialize read strobe", func() error {
		if err := panel.RequirePin("rd", pins.RD); err != nil {
			return err
		}
		return pins.RD.Out(gpio.High)
	})
	b.Step("initialize Intel 8080 bus", func() (err error) {
		bus, err = lcdio.NewI80Bus(&lcdio.I80BusConfig{
			DC:               pins.DC,
			WR:               pins.WR,
			Data:             pins.Data[:],
			MaxTransferBytes: hRes * opts.LineCount * 2,
		})
		return err
	})
	b.Step("add panel to i80 bus", func() error {
		c, err := lcdio.NewI80(bus, &lcdio.I80Opts{
			CS:               pins.CS,
			PixelClock:       opts.Clock,
			DCLevels:         lcdio.DefaultDCLevels,
			QueueDepth:       queueDepth,
			OnColorTransDone: d.NotifyFlushReady,
		})
		if err != nil {
			return err
		}
		pio = c
		return nil
	})
	b.Step("install LCD driver of st7789", func() error {
		if err := panel.RequirePin("reset", pins.Reset); err != nil {
			return err
		}
		var err error
		dev, err = st7789.New(pio, &st7789.Opts{W: hRes, H: vRes, Reset: pins.Reset, Order: st7789.RGB, BitsPerPixel: 16})
		return err
	})
	b.Step("reset panel", func() error { return dev.Reset() })
	b.Step("init panel", func() error { return dev.Init() })
	b.Step("invert color", func() error { return dev.InvertColor(true) })
	b.Step("set gap", func() error { return dev.SetGap(gapX, gapY) })
	b.Step("swap xy", func() error { return dev.SwapXY(true) })
	b.Step("mirror", func() error { return dev.Mirror(opts.MirrorX, opts.MirrorY) })
	b.Step("turn display on", func() error { return dev.DisplayOn(true) })
	d.Init(bl, pio, dev, b.Err())
	return d
}

// NewDefault looks up the default GPIOs and brings the panel up. host.Init
// must have been called.
func NewDefault(opts *panel.Opts) *Dev {
	names := append([]string{PinBacklight, PinRD, PinDC, PinWR, PinCS, PinReset}, PinData[:]...)
	l, err := panel.LookupPins(names...)
	if err != nil {
		d := &Dev{Descriptor: panel.NewDescriptor(Name, caps, opts)}
		d.Init(nil, nil, nil, &panel.BringupError{Board: Name, Step: "look up pins", Err: err})
		return d
	}
	pins := &Pins{Backlight: l[0], RD: l[1], DC: l[2], WR: l[3], CS: l[4], Reset: l[5]}
	copy(pins.Data[:], l[6:])
	return New(pins, opts)
}

var _ panel.Display = &Dev{}
