// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package st7789 controls ST7789 TFT LCD controllers through an lcdio panel
// I/O.
//
// The controller has 240x320 pixels of RAM. Smaller glass is mapped into a
// window of that RAM, which is why boards configure a gap (offset) in both
// directions.
//
// # Datasheet
//
// https://www.rhydolabz.com/documents/33/ST7789.pdf
package st7789
