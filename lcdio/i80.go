// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package lcdio

import (
	"fmt"
	"sync"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
)

// I80BusWidth is the only supported parallel bus width.
const I80BusWidth = 8

// I80BusConfig describes the shared signals of an Intel 8080 parallel bus.
type I80BusConfig struct {
	// DC selects data (high) or command (low) by default, see DCLevels.
	DC gpio.PinOut
	// WR is the write strobe; data is latched on its rising edge.
	WR gpio.PinOut
	// Data holds D0 to D7.
	Data []gpio.PinOut
	// MaxTransferBytes is the largest burst written at once. Longer color
	// transactions are split into bursts.
	MaxTransferBytes int
}

// I80Bus is an 8-bit parallel bus that can be shared by several panels, each
// with its own chip select.
type I80Bus struct {
	mu   sync.Mutex
	dc   gpio.PinOut
	wr   gpio.PinOut
	data [I80BusWidth]gpio.PinOut
	// last holds the last byte put on the data lines, to only toggle pins
	// that change.
	last byte
	max  int
}

// NewI80Bus initializes the bus pins: data lines low, write strobe idle high.
func NewI80Bus(cfg *I80BusConfig) (*I80Bus, error) {
	if len(cfg.Data) != I80BusWidth {
		return nil, fmt.Errorf("lcdio: i80 bus width %d is not supported", len(cfg.Data))
	}
	if cfg.DC == nil || cfg.WR == nil {
		return nil, fmt.Errorf("lcdio: i80 bus requires dc and wr pins")
	}
	b := &I80Bus{dc: cfg.DC, wr: cfg.WR, max: cfg.MaxTransferBytes}
	eh := errorHandler{}
	for i, p := range cfg.Data {
		if p == nil {
			return nil, fmt.Errorf("lcdio: i80 data pin %d is not set", i)
		}
		b.data[i] = p
		eh.out(p, gpio.Low)
	}
	eh.out(b.dc, gpio.Low)
	eh.out(b.wr, gpio.High)
	if eh.err != nil {
		return nil, fmt.Errorf("lcdio: i80 bus: %w", eh.err)
	}
	return b, nil
}

func (b *I80Bus) String() string {
	return fmt.Sprintf("i80{dc=%s, wr=%s}", b.dc, b.wr)
}

// write puts one byte on the bus and strobes WR.
func (b *I80Bus) write(eh *errorHandler, v byte) {
	diff := v ^ b.last
	for i := 0; i < I80BusWidth; i++ {
		if diff&(1<<i) != 0 {
			eh.out(b.data[i], gpio.Level(v&(1<<i) != 0))
		}
	}
	if eh.err == nil {
		b.last = v
	}
	eh.out(b.wr, gpio.Low)
	eh.out(b.wr, gpio.High)
}

// DCLevels is the DC line level for each transaction phase.
type DCLevels struct {
	Idle, Cmd, Dummy, Data gpio.Level
}

// I80Opts configures one panel on an I80Bus.
type I80Opts struct {
	// CS is the chip select, active low. It may be nil if tied low.
	CS gpio.PinOut
	// PixelClock is the nominal write strobe frequency. Software strobing is
	// slower than any clock a panel supports, so it is informational.
	PixelClock physic.Frequency
	DCLevels   DCLevels
	// QueueDepth and OnColorTransDone are passed to New.
	QueueDepth       int
	OnColorTransDone func()
}

// DefaultDCLevels is the usual wiring: DC low for commands, high for data.
var DefaultDCLevels = DCLevels{Idle: gpio.Low, Cmd: gpio.Low, Dummy: gpio.Low, Data: gpio.High}

// NewI80 attaches a panel to the bus and returns its panel I/O.
func NewI80(bus *I80Bus, opts *I80Opts) (*Dev, error) {
	t := &i80Transport{bus: bus, cs: opts.CS, levels: opts.DCLevels, clock: opts.PixelClock}
	eh := errorHandler{}
	eh.out(t.cs, gpio.High)
	if eh.err != nil {
		return nil, fmt.Errorf("lcdio: i80 cs: %w", eh.err)
	}
	return New(t, &Opts{QueueDepth: opts.QueueDepth, OnColorTransDone: opts.OnColorTransDone}), nil
}

type i80Transport struct {
	bus    *I80Bus
	cs     gpio.PinOut
	levels DCLevels
	clock  physic.Frequency
}

func (t *i80Transport) String() string {
	return fmt.Sprintf("%s@%s", t.bus, t.clock)
}

func (t *i80Transport) Param(cmd byte, param []byte) error {
	return t.send(cmd, param)
}

func (t *i80Transport) Color(cmd byte, color []byte) error {
	return t.send(cmd, color)
}

func (t *i80Transport) send(cmd byte, data []byte) error {
	t.bus.mu.Lock()
	defer t.bus.mu.Unlock()
	eh := errorHandler{}
	eh.out(t.cs, gpio.Low)
	eh.out(t.bus.dc, t.levels.Cmd)
	t.bus.write(&eh, cmd)
	if len(data) != 0 {
		eh.out(t.bus.dc, t.levels.Data)
		// CS stays asserted across bursts, the controller sees one write.
		for len(data) != 0 && eh.err == nil {
			n := len(data)
			if t.bus.max > 0 && n > t.bus.max {
				n = t.bus.max
			}
			for _, v := range data[:n] {
				if eh.err != nil {
					break
				}
				t.bus.write(&eh, v)
			}
			data = data[n:]
		}
	}
	eh.out(t.cs, gpio.High)
	eh.out(t.bus.dc, t.levels.Idle)
	return eh.err
}
