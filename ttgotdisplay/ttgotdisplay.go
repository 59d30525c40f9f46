// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package ttgotdisplay brings up the LILYGO TTGO T-Display: a 1.14" 240x135
// IPS panel with an ST7789 controller on a 4-wire SPI bus.
//
// The reset line is not wired, the controller is reset by command.
package ttgotdisplay

import (
	"errors"

	"github.com/GermanBionicSystems/displays/lcdio"
	"github.com/GermanBionicSystems/displays/panel"
	"github.com/GermanBionicSystems/displays/st7789"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
)

// Name is the board name.
const Name = "ttgo-tdisplay"

const (
	hRes = 240
	vRes = 135
	// The 135x240 glass sits in the middle of the 240x320 controller RAM.
	gapX = 40
	gapY = 53
)

// Default GPIO names, as wired on the board.
const (
	PinBacklight = "GPIO4"
	PinDC        = "GPIO16"
	PinCS        = "GPIO5"
)

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
	DC        gpio.PinOut
	// CS may be nil when the SPI port drives chip select.
	CS gpio.PinOut
}

// Dev is a TTGO T-Display panel.
type Dev struct {
	*panel.Descriptor
}

// New brings the panel up. It always returns a Dev; check Err before use.
func New(p spi.Port, pins *Pins, opts *panel.Opts) *Dev {
	d := &Dev{Descriptor: panel.NewDescriptor(Name, caps, opts)}
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
		if err = panel.RequirePin("backlight", pins.Backlight); err != nil {
			return err
		}
		bl, err = panel.NewBacklight(pins.Backlight, gpio.High)
		return err
	})
	b.Step("initialize SPI bus", func() error {
		if p == nil {
			return errors.New("no SPI port")
		}
		return panel.RequirePin("dc", pins.DC)
	})
	b.Step("install panel IO", func() error {
		c, err := lcdio.NewSPI(p, pins.DC, pins.CS, &lcdio.SPIOpts{
			Freq:             opts.Clock,
			Mode:             spi.Mode0,
			MaxTransferBytes: hRes * opts.LineCount * 2,
			QueueDepth:       opts.QueueDepth,
			OnColorTransDone: d.NotifyFlushReady,
		})
		if err != nil {
			return err
		}
		pio = c
		return nil
	})
	b.Step("install LCD driver of st7789", func() (err error) {
		dev, err = st7789.New(pio, &st7789.Opts{W: hRes, H: vRes, Order: st7789.RGB, BitsPerPixel: 16})
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

// NewDefault opens the first SPI port and the default GPIOs. host.Init must
// have been called.
func NewDefault(opts *panel.Opts) *Dev {
	var port spi.Port
	pins := &Pins{}
	b := panel.NewBringup(Name)
	b.Step("open SPI port", func() error {
		p, err := spireg.Open("")
		port = p
		return err
	})
	b.Step("look up pins", func() error {
		l, err := panel.LookupPins(PinBacklight, PinDC)
		if err != nil {
			return err
		}
		pins.Backlight, pins.DC = l[0], l[1]
		return nil
	})
	if err := b.Err(); err != nil {
		d := &Dev{Descriptor: panel.NewDescriptor(Name, caps, opts)}
		d.Init(nil, nil, nil, err)
		return d
	}
	return New(port, pins, opts)
}

var _ panel.Display = &Dev{}
