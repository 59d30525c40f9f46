// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package panel

import (
	"periph.io/x/conn/v3/gpio"
)

// Backlight is a backlight switched by a single GPIO pin.
type Backlight struct {
	pin gpio.PinOut
	on  gpio.Level
}

// NewBacklight configures pin as an output with the backlight off. on is
// the level that lights the panel.
func NewBacklight(pin gpio.PinOut, on gpio.Level) (*Backlight, error) {
	bl := &Backlight{pin: pin, on: on}
	if err := bl.Set(false); err != nil {
		return nil, err
	}
	return bl, nil
}

// Set turns the backlight on or off. There is no feedback from the
// hardware; nil means the level was applied.
func (bl *Backlight) Set(on bool) error {
	if on {
		return bl.pin.Out(bl.on)
	}
	return bl.pin.Out(!bl.on)
}

func (bl *Backlight) String() string {
	return "Backlight{" + bl.pin.String() + "}"
}
