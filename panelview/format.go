// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package panelview

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"

	"golang.org/x/image/bmp"
)

// Format is an image encoding.
type Format int

// Supported formats.
const (
	PNG Format = iota
	JPEG
	BMP
)

func (f Format) String() string {
	switch f {
	case PNG:
		return "PNG"
	case JPEG:
		return "JPEG"
	case BMP:
		return "BMP"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

func (f Format) mimeType() string {
	switch f {
	case PNG:
		return "image/png"
	case JPEG:
		return "image/jpeg"
	case BMP:
		return "image/bmp"
	}
	return "application/octet-stream"
}

var (
	pngEnc  = png.Encoder{CompressionLevel: png.BestSpeed}
	jpegOpt = jpeg.Options{Quality: 90}
)

func (f Format) encode(buf *bytes.Buffer, img image.Image) error {
	switch f {
	case PNG:
		return pngEnc.Encode(buf, img)
	case JPEG:
		return jpeg.Encode(buf, img, &jpegOpt)
	case BMP:
		return bmp.Encode(buf, img)
	}
	return fmt.Errorf("panelview: unhandled image format %s", f)
}

// ParseFormat returns the Format for a URL parameter value.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "png":
		return PNG, nil
	case "jpg", "jpeg":
		return JPEG, nil
	case "bmp":
		return BMP, nil
	}
	return PNG, fmt.Errorf("panelview: unrecognized image format %q", s)
}
