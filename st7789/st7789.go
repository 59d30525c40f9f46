// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package st7789

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"time"

	"github.com/GermanBionicSystems/displays/lcdio"
	"github.com/GermanBionicSystems/displays/rgb565"
	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/gpio"
)

// Commands
const (
	swReset byte = 0x01
	slpOut  byte = 0x11
	invOff  byte = 0x20
	invOn   byte = 0x21
	dispOff byte = 0x28
	dispOn  byte = 0x29
	caSet   byte = 0x2A
	raSet   byte = 0x2B
	ramWr   byte = 0x2C
	madCtl  byte = 0x36
	colMod  byte = 0x3A
	ramCtrl byte = 0xB0
)

// MADCTL bits.
const (
	madctlMY  byte = 0x80
	madctlMX  byte = 0x40
	madctlMV  byte = 0x20
	madctlBGR byte = 0x08
)

// Exported command values, for emulators and tests outside the package.
const (
	CmdSoftwareReset = swReset
	CmdSleepOut      = slpOut
	CmdInvertOff     = invOff
	CmdInvertOn      = invOn
	CmdDisplayOff    = dispOff
	CmdDisplayOn     = dispOn
	CmdColumnAddress = caSet
	CmdRowAddress    = raSet
	CmdMemoryWrite   = ramWr
	CmdMemoryAccess  = madCtl
	CmdPixelFormat   = colMod
)

// sleep is replaced in tests.
var sleep = time.Sleep

// RGBOrder is the order of the color components on the glass.
type RGBOrder int

// Supported orders.
const (
	RGB RGBOrder = iota
	BGR
)

// Opts defines the options for the device.
type Opts struct {
	// W and H are the visible resolution, after any axis swap.
	W, H int
	// Reset is the hardware reset line. When nil, Reset() sends a software
	// reset command instead.
	Reset gpio.PinOut
	// ResetActiveHigh is true when the reset line is asserted high.
	ResetActiveHigh bool
	Order           RGBOrder
	// BitsPerPixel is 16 or 18.
	BitsPerPixel int
}

// Dev is an open handle to the display controller.
type Dev struct {
	io  lcdio.IO
	rst gpio.PinOut
	// rstOn is the asserted reset level.
	rstOn gpio.Level

	rect   image.Rectangle
	madctl byte
	colmod byte
	bpp    int
	gapX   int
	gapY   int

	// next is lazy initialized on first Draw().
	next *rgb565.Image
}

// New returns a Dev driving an ST7789 through io.
//
// It does not talk to the controller; call Reset and Init.
func New(io lcdio.IO, opts *Opts) (*Dev, error) {
	d := &Dev{io: io, rst: opts.Reset, rect: image.Rect(0, 0, opts.W, opts.H), bpp: opts.BitsPerPixel}
	if opts.W <= 0 || opts.H <= 0 {
		return nil, fmt.Errorf("st7789: invalid resolution %dx%d", opts.W, opts.H)
	}
	switch opts.Order {
	case RGB:
	case BGR:
		d.madctl |= madctlBGR
	default:
		return nil, fmt.Errorf("st7789: unknown color order %d", opts.Order)
	}
	switch opts.BitsPerPixel {
	case 16:
		d.colmod = 0x55
	case 18:
		d.colmod = 0x66
	default:
		return nil, fmt.Errorf("st7789: unsupported pixel width %d", opts.BitsPerPixel)
	}
	if opts.ResetActiveHigh {
		d.rstOn = gpio.High
	}
	if d.rst != nil {
		if err := d.rst.Out(!d.rstOn); err != nil {
			return nil, fmt.Errorf("st7789: reset pin: %w", err)
		}
	}
	return d, nil
}

func (d *Dev) String() string {
	return fmt.Sprintf("st7789.Dev{%s, %s}", d.io, d.rect.Max)
}

// Reset resets the controller, through the reset line when wired.
func (d *Dev) Reset() error {
	if d.rst != nil {
		if err := d.rst.Out(d.rstOn); err != nil {
			return err
		}
		sleep(10 * time.Millisecond)
		if err := d.rst.Out(!d.rstOn); err != nil {
			return err
		}
		sleep(10 * time.Millisecond)
		return nil
	}
	if err := d.io.TxParam(swReset); err != nil {
		return err
	}
	sleep(20 * time.Millisecond)
	return nil
}

// Init wakes the controller up and sets the pixel format.
func (d *Dev) Init() error {
	if err := d.io.TxParam(slpOut); err != nil {
		return err
	}
	// The controller needs 5ms after sleep out before the next command, and
	// 120ms before sleep in. Be generous.
	sleep(100 * time.Millisecond)
	return initDisplay(d.io, d.madctl, d.colmod)
}

func initDisplay(io lcdio.IO, madctl, colmod byte) error {
	eh := errorHandler{io: io}
	eh.txParam(madCtl, madctl)
	eh.txParam(colMod, colmod)
	// Frame memory in big endian RGB565, as rgb565.Image stores it.
	eh.txParam(ramCtrl, 0x00, 0xF0)
	return eh.err
}

// InvertColor enables or disables the color inversion. Most IPS glass needs
// it enabled to show the expected colors.
func (d *Dev) InvertColor(invert bool) error {
	if invert {
		return d.io.TxParam(invOn)
	}
	return d.io.TxParam(invOff)
}

// SetGap sets the offset of the visible window in the controller RAM.
func (d *Dev) SetGap(x, y int) error {
	if x < 0 || y < 0 {
		return fmt.Errorf("st7789: invalid gap %d,%d", x, y)
	}
	d.gapX, d.gapY = x, y
	return nil
}

// SwapXY exchanges rows and columns (MADCTL MV).
func (d *Dev) SwapXY(swap bool) error {
	if swap {
		d.madctl |= madctlMV
	} else {
		d.madctl &^= madctlMV
	}
	return d.io.TxParam(madCtl, d.madctl)
}

// Mirror mirrors the X and/or Y axis (MADCTL MX and MY).
func (d *Dev) Mirror(x, y bool) error {
	d.madctl &^= madctlMX | madctlMY
	if x {
		d.madctl |= madctlMX
	}
	if y {
		d.madctl |= madctlMY
	}
	return d.io.TxParam(madCtl, d.madctl)
}

// DisplayOn turns the display output on or off.
func (d *Dev) DisplayOn(on bool) error {
	if on {
		return d.io.TxParam(dispOn)
	}
	return d.io.TxParam(dispOff)
}

// DrawBitmap sends the pixels of the window [x0, x1) x [y0, y1).
//
// The transfer is queued. color belongs to the panel I/O until its transfer
// done notification.
func (d *Dev) DrawBitmap(x0, y0, x1, y1 int, color []byte) error {
	if x0 >= x1 || y0 >= y1 {
		return fmt.Errorf("st7789: invalid window (%d,%d)-(%d,%d)", x0, y0, x1, y1)
	}
	x0 += d.gapX
	x1 += d.gapX
	y0 += d.gapY
	y1 += d.gapY
	eh := errorHandler{io: d.io}
	eh.txParam(caSet, byte(x0>>8), byte(x0), byte((x1-1)>>8), byte(x1-1))
	eh.txParam(raSet, byte(y0>>8), byte(y0), byte((y1-1)>>8), byte(y1-1))
	eh.txColor(ramWr, color)
	return eh.err
}

// Halt turns the display output off and stops the panel I/O.
func (d *Dev) Halt() error {
	err := d.DisplayOn(false)
	if err2 := d.io.Halt(); err == nil {
		err = err2
	}
	return err
}

// ColorModel implements display.Drawer.
func (d *Dev) ColorModel() color.Model {
	return rgb565.Model
}

// Bounds implements display.Drawer. Min is guaranteed to be {0, 0}.
func (d *Dev) Bounds() image.Rectangle {
	return d.rect
}

// Draw implements display.Drawer.
//
// It draws synchronously, once this function returns, the display is updated.
func (d *Dev) Draw(r image.Rectangle, src image.Image, sp image.Point) error {
	if d.bpp != 16 {
		return errors.New("st7789: Draw requires 16 bits per pixel")
	}
	r = r.Intersect(d.rect)
	if r.Empty() {
		return nil
	}
	if d.next == nil {
		d.next = rgb565.New(d.rect)
	}
	draw.Src.Draw(d.next, r, src, sp)
	buf := make([]byte, 2*r.Dx()*r.Dy())
	d.next.CopyRect(buf, r)
	if err := d.DrawBitmap(r.Min.X, r.Min.Y, r.Max.X, r.Max.Y, buf); err != nil {
		return err
	}
	return d.io.Wait()
}

var _ display.Drawer = &Dev{}
var _ fmt.Stringer = &Dev{}
