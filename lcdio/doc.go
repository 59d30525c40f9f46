// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package lcdio implements the panel I/O layer of small TFT displays.
//
// A panel controller is driven with two kinds of transactions: a command byte
// followed by a few parameter bytes, and a command byte followed by a large
// block of pixel data. Parameter transactions are synchronous. Color
// transactions are queued and executed by a background goroutine; the
// OnColorTransDone callback fires after each one so the caller knows the
// buffer it passed may be reused.
//
// Two transports are provided: a 4-wire SPI transport and an 8-bit parallel
// "Intel 8080" bus driven through GPIO pins.
package lcdio
