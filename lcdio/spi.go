// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package lcdio

import (
	"errors"
	"fmt"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
)

// SPIOpts configures a 4-wire SPI panel I/O.
type SPIOpts struct {
	// Freq is the SPI clock.
	Freq physic.Frequency
	// Mode is the SPI mode, usually spi.Mode0.
	Mode spi.Mode
	// MaxTransferBytes splits larger transfers. When zero, the limit reported
	// by the port (conn.Limits) is used, if any.
	MaxTransferBytes int
	// QueueDepth and OnColorTransDone are passed to New.
	QueueDepth       int
	OnColorTransDone func()
}

// NewSPI returns a panel I/O communicating over SPI.
//
// # Wiring
//
// Connect SDA to SPI_MOSI, SCL to SPI_CLK. dc is the data/command select
// line, it is required. cs may be nil when the port drives chip select
// itself.
func NewSPI(p spi.Port, dc, cs gpio.PinOut, opts *SPIOpts) (*Dev, error) {
	if dc == nil || dc == gpio.INVALID {
		return nil, errors.New("lcdio: spi panel io requires a dc pin")
	}
	if opts.Freq <= 0 {
		return nil, fmt.Errorf("lcdio: invalid spi clock %s", opts.Freq)
	}
	c, err := p.Connect(opts.Freq, opts.Mode, 8)
	if err != nil {
		return nil, fmt.Errorf("lcdio: %w", err)
	}
	t := &spiTransport{c: c, dc: dc, cs: cs, max: opts.MaxTransferBytes}
	if t.max == 0 {
		if l, ok := c.(conn.Limits); ok {
			t.max = l.MaxTxSize()
		}
	}
	eh := errorHandler{}
	eh.out(dc, gpio.Low)
	eh.out(cs, gpio.High)
	if eh.err != nil {
		return nil, fmt.Errorf("lcdio: %w", eh.err)
	}
	return New(t, &Opts{QueueDepth: opts.QueueDepth, OnColorTransDone: opts.OnColorTransDone}), nil
}

type spiTransport struct {
	c   conn.Conn
	dc  gpio.PinOut
	cs  gpio.PinOut
	max int
}

func (t *spiTransport) String() string {
	return fmt.Sprintf("spi{%s, %s}", t.c, t.dc)
}

func (t *spiTransport) Param(cmd byte, param []byte) error {
	return t.send(cmd, param)
}

func (t *spiTransport) Color(cmd byte, color []byte) error {
	return t.send(cmd, color)
}

func (t *spiTransport) send(cmd byte, data []byte) error {
	eh := errorHandler{}
	eh.out(t.cs, gpio.Low)
	eh.out(t.dc, gpio.Low)
	eh.tx(t.c, []byte{cmd})
	if len(data) != 0 {
		eh.out(t.dc, gpio.High)
		for len(data) != 0 && eh.err == nil {
			n := len(data)
			if t.max > 0 && n > t.max {
				n = t.max
			}
			eh.tx(t.c, data[:n])
			data = data[n:]
		}
	}
	eh.out(t.cs, gpio.High)
	return eh.err
}
