// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package rgb565 implements a 16 bits per pixel image in the format most TFT
// panel controllers accept on their memory write command.
//
// Each pixel is stored big endian: RRRRRGGG GGGBBBBB. The Pix slice of a full
// row can be sent to the controller as is.
package rgb565

import (
	"image"
	"image/color"
	"image/draw"
)

// Color is a 16 bits color, 5 bits red, 6 bits green, 5 bits blue.
type Color uint16

// RGBA implements color.Color.
func (c Color) RGBA() (uint32, uint32, uint32, uint32) {
	r := uint32(c>>11) & 0x1F
	g := uint32(c>>5) & 0x3F
	b := uint32(c) & 0x1F
	// Expand to 8 bits by replicating the high bits, then to 16 bits.
	r = (r<<3 | r>>2) * 0x101
	g = (g<<2 | g>>4) * 0x101
	b = (b<<3 | b>>2) * 0x101
	return r, g, b, 0xFFFF
}

func (c Color) String() string {
	const hex = "0123456789abcdef"
	return "rgb565(0x" + string([]byte{hex[c>>12], hex[(c>>8)&15], hex[(c>>4)&15], hex[c&15]}) + ")"
}

// FromRGB returns the closest Color for 8 bits channels.
func FromRGB(r, g, b uint8) Color {
	return Color(uint16(r>>3)<<11 | uint16(g>>2)<<5 | uint16(b>>3))
}

// Model is the color.Model for Color.
var Model = color.ModelFunc(convert)

func convert(c color.Color) color.Color {
	if c, ok := c.(Color); ok {
		return c
	}
	r, g, b, _ := c.RGBA()
	return FromRGB(uint8(r>>8), uint8(g>>8), uint8(b>>8))
}

// Image is an in-memory image of Color pixels.
type Image struct {
	// Pix holds 2 bytes per pixel, big endian.
	Pix []byte
	// Stride is the number of bytes between vertically adjacent pixels.
	Stride int
	Rect   image.Rectangle
}

// New returns an initialized Image instance, all black.
func New(r image.Rectangle) *Image {
	w := r.Dx()
	return &Image{Pix: make([]byte, 2*w*r.Dy()), Stride: 2 * w, Rect: r}
}

// ColorModel implements image.Image.
func (i *Image) ColorModel() color.Model {
	return Model
}

// Bounds implements image.Image.
func (i *Image) Bounds() image.Rectangle {
	return i.Rect
}

// At implements image.Image.
func (i *Image) At(x, y int) color.Color {
	return i.RGB565At(x, y)
}

// RGB565At is the optimized version of At.
func (i *Image) RGB565At(x, y int) Color {
	if !(image.Point{x, y}.In(i.Rect)) {
		return 0
	}
	o := i.PixOffset(x, y)
	return Color(uint16(i.Pix[o])<<8 | uint16(i.Pix[o+1]))
}

// Opaque scans the entire image and reports whether it is fully opaque.
func (i *Image) Opaque() bool {
	return true
}

// PixOffset returns the index of the first byte of the pixel at (x, y).
func (i *Image) PixOffset(x, y int) int {
	return (y-i.Rect.Min.Y)*i.Stride + (x-i.Rect.Min.X)*2
}

// Set implements draw.Image.
func (i *Image) Set(x, y int, c color.Color) {
	i.SetRGB565(x, y, convert(c).(Color))
}

// SetRGB565 is the optimized version of Set.
func (i *Image) SetRGB565(x, y int, c Color) {
	if !(image.Point{x, y}.In(i.Rect)) {
		return
	}
	o := i.PixOffset(x, y)
	i.Pix[o] = byte(c >> 8)
	i.Pix[o+1] = byte(c)
}

// SubImage returns an image representing the portion of the image visible
// through r. The returned value shares pixels with the original image.
func (i *Image) SubImage(r image.Rectangle) *Image {
	r = r.Intersect(i.Rect)
	if r.Empty() {
		return &Image{}
	}
	o := i.PixOffset(r.Min.X, r.Min.Y)
	return &Image{Pix: i.Pix[o:], Stride: i.Stride, Rect: r}
}

// CopyRect copies the pixels of r, row after row, into dst and returns the
// number of bytes written. dst must hold at least 2*r.Dx()*r.Dy() bytes.
func (i *Image) CopyRect(dst []byte, r image.Rectangle) int {
	r = r.Intersect(i.Rect)
	w := 2 * r.Dx()
	n := 0
	for y := r.Min.Y; y < r.Max.Y; y++ {
		o := i.PixOffset(r.Min.X, y)
		n += copy(dst[n:n+w], i.Pix[o:o+w])
	}
	return n
}

var _ draw.Image = &Image{}
var _ color.Color = Color(0)
