// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package hostsim is a board without hardware: an emulated ST7789 panel that
// renders its frame memory to the terminal using ANSI colors.
//
// It goes through the same bring-up, panel I/O queue and controller driver
// as the real boards, so applications can be developed on a workstation.
package hostsim
