// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"image"
	"image/color"
	"testing"

	"github.com/GermanBionicSystems/displays/rgb565"
)

func TestLabel(t *testing.T) {
	l, err := newLabel(16)
	if err != nil {
		t.Fatal(err)
	}
	img := rgb565.New(image.Rect(0, 0, 120, 40))
	l.draw(img, "Hello", color.White)
	bg := img.RGB565At(0, 0)
	if bg == 0 {
		t.Fatalf("background not painted: %s", bg)
	}
	lit := 0
	for y := 0; y < 40; y++ {
		for x := 0; x < 120; x++ {
			if img.RGB565At(x, y) != bg {
				lit++
			}
		}
	}
	if lit == 0 {
		t.Fatal("no text drawn")
	}
	// The label is centered: the corners keep the background.
	for _, p := range []image.Point{{0, 0}, {119, 0}, {0, 39}, {119, 39}} {
		if c := img.RGB565At(p.X, p.Y); c != bg {
			t.Fatalf("corner %v = %s", p, c)
		}
	}
}
