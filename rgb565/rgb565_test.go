// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package rgb565

import (
	"image"
	"image/color"
	"image/draw"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFromRGB(t *testing.T) {
	for _, tc := range []struct {
		r, g, b uint8
		want    Color
	}{
		{0, 0, 0, 0x0000},
		{0xFF, 0xFF, 0xFF, 0xFFFF},
		{0xFF, 0, 0, 0xF800},
		{0, 0xFF, 0, 0x07E0},
		{0, 0, 0xFF, 0x001F},
		{0x00, 0x3a, 0x57, 0x01CA},
	} {
		if got := FromRGB(tc.r, tc.g, tc.b); got != tc.want {
			t.Errorf("FromRGB(%#x, %#x, %#x) = %s, want %s", tc.r, tc.g, tc.b, got, tc.want)
		}
	}
}

func TestColorRGBA(t *testing.T) {
	r, g, b, a := Color(0xFFFF).RGBA()
	if r != 0xFFFF || g != 0xFFFF || b != 0xFFFF || a != 0xFFFF {
		t.Fatalf("white RGBA() = %#x %#x %#x %#x", r, g, b, a)
	}
	r, g, b, _ = Color(0).RGBA()
	if r != 0 || g != 0 || b != 0 {
		t.Fatalf("black RGBA() = %#x %#x %#x", r, g, b)
	}
	if got := Model.Convert(color.RGBA{0xFF, 0, 0, 0xFF}); got != Color(0xF800) {
		t.Fatalf("Convert(red) = %v", got)
	}
}

func TestImageSetAt(t *testing.T) {
	img := New(image.Rect(0, 0, 4, 2))
	img.Set(1, 1, color.RGBA{0xFF, 0, 0, 0xFF})
	img.Set(10, 10, color.White)
	if got := img.RGB565At(1, 1); got != 0xF800 {
		t.Fatalf("RGB565At(1, 1) = %s", got)
	}
	if got := img.RGB565At(10, 10); got != 0 {
		t.Fatalf("RGB565At outside = %s", got)
	}
	want := []byte{
		0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0xF8, 0, 0, 0, 0, 0,
	}
	if diff := cmp.Diff(img.Pix, want); diff != "" {
		t.Fatalf("Pix difference (-got +want):\n%s", diff)
	}
}

func TestCopyRect(t *testing.T) {
	img := New(image.Rect(0, 0, 3, 3))
	draw.Draw(img, image.Rect(1, 1, 3, 3), &image.Uniform{Color(0x1234)}, image.Point{}, draw.Src)
	buf := make([]byte, 8)
	n := img.CopyRect(buf, image.Rect(1, 1, 3, 3))
	if n != 8 {
		t.Fatalf("CopyRect() = %d", n)
	}
	if diff := cmp.Diff(buf, []byte{0x12, 0x34, 0x12, 0x34, 0x12, 0x34, 0x12, 0x34}); diff != "" {
		t.Fatalf("CopyRect() difference (-got +want):\n%s", diff)
	}
	sub := img.SubImage(image.Rect(2, 2, 5, 5))
	if sub.Bounds() != image.Rect(2, 2, 3, 3) || sub.RGB565At(2, 2) != 0x1234 {
		t.Fatalf("SubImage() = %v %s", sub.Bounds(), sub.RGB565At(2, 2))
	}
}
