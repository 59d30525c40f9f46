// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package boardreg selects the board the program is built for.
//
// Exactly one board is compiled in, chosen by build tag:
//
//	-tags tdisplays3    LILYGO T-Display-S3 (320x170, 8-bit parallel)
//	-tags ttgotdisplay  LILYGO TTGO T-Display (240x135, SPI)
//
// Without a board tag the host emulator is used. Selecting two boards fails
// to compile.
package boardreg

import (
	"sync"

	"github.com/GermanBionicSystems/displays/panel"
)

var (
	once   sync.Once
	active panel.Display
)

// Open brings up the selected board on first call. Later calls return the
// same instance and ignore opts.
func Open(opts *panel.Opts) panel.Display {
	once.Do(func() {
		panel.Logf("boardreg: bringing up %s", Name)
		active = open(opts)
	})
	return active
}

// Active returns the selected board, brought up with panel.DefaultOpts if
// Open was not called before.
func Active() panel.Display {
	return Open(&panel.DefaultOpts)
}
