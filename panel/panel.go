// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package panel

import (
	"errors"
	"fmt"
	"io"
	"sync/atomic"

	"github.com/GermanBionicSystems/displays/lcdio"
	"github.com/GermanBionicSystems/displays/st7789"
	"periph.io/x/conn/v3/physic"
)

// FlushNotifier is the rendering runtime's handle for a bound display. The
// panel calls FlushReady each time a color transfer completed and its buffer
// can be reused.
type FlushNotifier interface {
	FlushReady()
}

// Display is one physical panel with its bus and controller.
type Display interface {
	fmt.Stringer
	// BufferSize is the draw buffer size in pixels: HRes * line count.
	BufferSize() int
	DoubleBuffer() bool
	HRes() int
	VRes() int
	Monochrome() bool
	SwapXY() bool
	MirrorX() bool
	MirrorY() bool
	// DMA reports whether draw buffers should be DMA capable.
	DMA() bool
	// SPIRAM reports whether draw buffers should live in external RAM.
	SPIRAM() bool
	// Backlight turns the backlight on or off.
	Backlight(on bool) error
	// Err returns the bring-up outcome, nil on success.
	Err() error
	// IO is the panel I/O handle, nil if bring-up failed before it existed.
	IO() lcdio.IO
	// Panel is the controller handle, nil if bring-up failed before it
	// existed.
	Panel() *st7789.Dev
	// SetDisplay stores the rendering runtime's handle. It is called once,
	// after a successful binding.
	SetDisplay(n FlushNotifier)
}

// ErrInvalidOpts is wrapped by Opts.Validate errors.
var ErrInvalidOpts = errors.New("panel: invalid options")

// Opts holds the board tuning read at construction.
type Opts struct {
	// LineCount is the draw buffer depth in scanlines.
	LineCount int
	// Clock is the bus clock: SPI clock or parallel pixel clock.
	Clock physic.Frequency
	// QueueDepth is the number of color transfers queued by the panel I/O.
	QueueDepth int
	MirrorX    bool
	MirrorY    bool
	// Terminal receives the host emulator rendering. nil selects the
	// process stdout. Hardware boards ignore it.
	Terminal io.Writer
}

// DefaultOpts is the recommended default options.
var DefaultOpts = Opts{
	LineCount:  40,
	Clock:      20 * physic.MegaHertz,
	QueueDepth: 10,
}

// Validate checks o against a panel of vres lines.
func (o *Opts) Validate(vres int) error {
	if o.LineCount <= 0 || o.LineCount > vres {
		return fmt.Errorf("%w: line count %d not in [1, %d]", ErrInvalidOpts, o.LineCount, vres)
	}
	if o.Clock <= 0 {
		return fmt.Errorf("%w: bus clock %s", ErrInvalidOpts, o.Clock)
	}
	if o.QueueDepth <= 0 {
		return fmt.Errorf("%w: queue depth %d", ErrInvalidOpts, o.QueueDepth)
	}
	return nil
}

// Caps is the fixed capability set of a board.
type Caps struct {
	HRes, VRes   int
	DoubleBuffer bool
	Monochrome   bool
	SwapXY       bool
	DMA          bool
	SPIRAM       bool
}

// Descriptor implements Display. Board packages embed it and call Init once
// at the end of their bring-up.
type Descriptor struct {
	name      string
	caps      Caps
	lineCount int
	mirrorX   bool
	mirrorY   bool

	bl    *Backlight
	io    lcdio.IO
	panel *st7789.Dev
	err   error

	// disp holds a notifier, written once by SetDisplay and read from the
	// panel I/O goroutine.
	disp atomic.Value
}

type notifier struct {
	n FlushNotifier
}

// NewDescriptor returns a Descriptor for the board name.
func NewDescriptor(name string, caps Caps, opts *Opts) *Descriptor {
	return &Descriptor{
		name:      name,
		caps:      caps,
		lineCount: opts.LineCount,
		mirrorX:   opts.MirrorX,
		mirrorY:   opts.MirrorY,
	}
}

// Init records the bring-up outcome. Any of bl, io and p may be nil when err
// is set.
func (d *Descriptor) Init(bl *Backlight, io lcdio.IO, p *st7789.Dev, err error) {
	d.bl, d.io, d.panel, d.err = bl, io, p, err
}

func (d *Descriptor) String() string {
	return fmt.Sprintf("%s{%dx%d}", d.name, d.caps.HRes, d.caps.VRes)
}

// BufferSize implements Display.
func (d *Descriptor) BufferSize() int { return d.caps.HRes * d.lineCount }

// DoubleBuffer implements Display.
func (d *Descriptor) DoubleBuffer() bool { return d.caps.DoubleBuffer }

// HRes implements Display.
func (d *Descriptor) HRes() int { return d.caps.HRes }

// VRes implements Display.
func (d *Descriptor) VRes() int { return d.caps.VRes }

// Monochrome implements Display.
func (d *Descriptor) Monochrome() bool { return d.caps.Monochrome }

// SwapXY implements Display.
func (d *Descriptor) SwapXY() bool { return d.caps.SwapXY }

// MirrorX implements Display.
func (d *Descriptor) MirrorX() bool { return d.mirrorX }

// MirrorY implements Display.
func (d *Descriptor) MirrorY() bool { return d.mirrorY }

// DMA implements Display.
func (d *Descriptor) DMA() bool { return d.caps.DMA }

// SPIRAM implements Display.
func (d *Descriptor) SPIRAM() bool { return d.caps.SPIRAM }

// Err implements Display.
func (d *Descriptor) Err() error { return d.err }

// IO implements Display.
func (d *Descriptor) IO() lcdio.IO { return d.io }

// Panel implements Display.
func (d *Descriptor) Panel() *st7789.Dev { return d.panel }

// Backlight implements Display.
func (d *Descriptor) Backlight(on bool) error {
	if d.bl == nil {
		return fmt.Errorf("%s: no backlight", d.name)
	}
	state := "off"
	if on {
		state = "on"
	}
	Logf("%s: LCD backlight %s", d.name, state)
	return d.bl.Set(on)
}

// SetDisplay implements Display.
func (d *Descriptor) SetDisplay(n FlushNotifier) {
	d.disp.Store(notifier{n: n})
}

// NotifyFlushReady relays a color transfer done event to the bound display.
// Boards register it as the panel I/O OnColorTransDone callback. Events
// before binding are dropped.
func (d *Descriptor) NotifyFlushReady() {
	if v, ok := d.disp.Load().(notifier); ok && v.n != nil {
		v.n.FlushReady()
	}
}

var _ Display = &Descriptor{}
