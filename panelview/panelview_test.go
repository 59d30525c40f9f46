// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package panelview

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"golang.org/x/image/bmp"
)

type fakeSource struct {
	mu  sync.Mutex
	img *image.NRGBA
}

func newSource(w, h int) *fakeSource {
	return &fakeSource{img: image.NewNRGBA(image.Rect(0, 0, w, h))}
}

func (f *fakeSource) Snapshot() image.Image {
	f.mu.Lock()
	defer f.mu.Unlock()
	img := image.NewNRGBA(f.img.Rect)
	copy(img.Pix, f.img.Pix)
	return img
}

func (f *fakeSource) set(x, y int, c color.NRGBA) {
	f.mu.Lock()
	f.img.SetNRGBA(x, y, c)
	f.mu.Unlock()
}

func open(t *testing.T, url string) (*http.Response, *multipart.Reader) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status %d", resp.StatusCode)
	}
	mt, params, err := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	if err != nil {
		t.Fatal(err)
	}
	if mt != "multipart/x-mixed-replace" || len(params["boundary"]) < 50 {
		t.Fatalf("Content-Type %q %v", mt, params)
	}
	return resp, multipart.NewReader(resp.Body, params["boundary"])
}

func nextImage(t *testing.T, mr *multipart.Reader, wantType string) image.Image {
	t.Helper()
	part, err := mr.NextPart()
	if err != nil {
		t.Fatal(err)
	}
	defer part.Close()
	if got := part.Header.Get("Content-Type"); got != wantType {
		t.Fatalf("part Content-Type %q, want %q", got, wantType)
	}
	b, err := io.ReadAll(part)
	if err != nil {
		t.Fatal(err)
	}
	if n, _ := strconv.Atoi(part.Header.Get("Content-Length")); n != len(b) {
		t.Fatalf("Content-Length %d, read %d", n, len(b))
	}
	decode := map[string]func(io.Reader) (image.Image, error){
		"image/png":  png.Decode,
		"image/jpeg": jpeg.Decode,
		"image/bmp":  bmp.Decode,
	}[wantType]
	img, err := decode(bytes.NewReader(b))
	if err != nil {
		t.Fatal(err)
	}
	return img
}

func TestStream(t *testing.T) {
	src := newSource(8, 4)
	v := New(src, &Opts{})
	s := httptest.NewServer(v)
	defer s.Close()

	resp, mr := open(t, s.URL)
	defer resp.Body.Close()
	img := nextImage(t, mr, "image/png")
	if got := img.Bounds().Size(); got != (image.Point{8, 4}) {
		t.Fatalf("size %v", got)
	}
	if _, _, _, a := img.At(1, 1).RGBA(); a != 0 {
		t.Fatal("expected the initial snapshot")
	}

	src.set(1, 1, color.NRGBA{255, 0, 0, 255})
	v.Changed()
	img = nextImage(t, mr, "image/png")
	if r, _, _, _ := img.At(1, 1).RGBA(); r != 0xFFFF {
		t.Fatalf("update not streamed: %v", img.At(1, 1))
	}

	if err := v.Halt(); err != nil {
		t.Fatal(err)
	}
	if _, err := mr.NextPart(); err == nil {
		t.Fatal("expected the stream to end")
	}
	deadline := time.Now().Add(5 * time.Second)
	for v.Clients() != 0 {
		if time.Now().After(deadline) {
			t.Fatal("client not removed")
		}
		time.Sleep(time.Millisecond)
	}
}

func TestFormats(t *testing.T) {
	data := []struct {
		opt      Format
		query    string
		wantType string
	}{
		{PNG, "", "image/png"},
		{JPEG, "", "image/jpeg"},
		{BMP, "", "image/bmp"},
		{PNG, "?format=jpg", "image/jpeg"},
		{JPEG, "?format=bmp", "image/bmp"},
	}
	for _, line := range data {
		t.Run(line.opt.String()+line.query, func(t *testing.T) {
			v := New(newSource(16, 16), &Opts{Format: line.opt})
			s := httptest.NewServer(v)
			defer s.Close()
			resp, mr := open(t, s.URL+line.query)
			defer resp.Body.Close()
			if img := nextImage(t, mr, line.wantType); img.Bounds().Dx() != 16 {
				t.Fatalf("size %v", img.Bounds())
			}
			_ = v.Halt()
		})
	}
}

func TestBadRequests(t *testing.T) {
	v := New(newSource(1, 1), &Opts{})
	s := httptest.NewServer(v)
	defer s.Close()
	resp, err := http.Get(s.URL + "?format=gif")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status %d", resp.StatusCode)
	}
	resp, err = http.Post(s.URL, "text/plain", nil)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Fatalf("status %d", resp.StatusCode)
	}
}

func TestParseFormat(t *testing.T) {
	for s, want := range map[string]Format{"png": PNG, "jpg": JPEG, "jpeg": JPEG, "bmp": BMP} {
		if got, err := ParseFormat(s); err != nil || got != want {
			t.Errorf("ParseFormat(%q) = %s, %v", s, got, err)
		}
	}
	if _, err := ParseFormat("tiff"); err == nil {
		t.Error("expected error")
	}
	if got := Format(7).String(); got != "Format(7)" {
		t.Error(got)
	}
}

func TestEncodeError(t *testing.T) {
	v := New(newSource(1, 1), &Opts{})
	if _, err := v.snapshot(Format(9)); err == nil {
		t.Fatal("expected encoding error")
	}
}
