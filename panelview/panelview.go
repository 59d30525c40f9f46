// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package panelview

import (
	"bytes"
	"image"
	"log"
	"mime"
	"net/http"
	"net/textproto"
	"sync"
)

// Source provides the image to serve. Snapshot is called from HTTP handler
// goroutines.
type Source interface {
	Snapshot() image.Image
}

// Opts configures a View.
type Opts struct {
	// Format is used when the request does not select one.
	Format Format
}

// View is an http.Handler streaming a Source.
type View struct {
	src    Source
	format Format

	mu      sync.Mutex
	clients map[*client]struct{}
	// cache holds the encoded snapshot per format until the next change.
	cache map[Format][]byte
	gen   uint64
}

type client struct {
	refresh   chan struct{}
	terminate chan struct{}
}

// New returns a View of src. Call Changed whenever src changes.
func New(src Source, opts *Opts) *View {
	return &View{
		src:     src,
		format:  opts.Format,
		clients: map[*client]struct{}{},
		cache:   map[Format][]byte{},
	}
}

func (v *View) String() string {
	return "PanelView"
}

// Changed drops the cached snapshots and wakes all clients. It never blocks
// on a client.
func (v *View) Changed() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.gen++
	for f := range v.cache {
		delete(v.cache, f)
	}
	for c := range v.clients {
		select {
		case c.refresh <- struct{}{}:
		default:
		}
	}
}

// Halt terminates all running requests.
func (v *View) Halt() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	for c := range v.clients {
		select {
		case c.terminate <- struct{}{}:
		default:
		}
	}
	return nil
}

// Clients returns the number of connected clients.
func (v *View) Clients() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.clients)
}

// snapshot returns the encoded current image. The source is read without
// v.mu held, so a source may call Changed while holding its own lock.
func (v *View) snapshot(f Format) ([]byte, error) {
	v.mu.Lock()
	b, ok := v.cache[f]
	gen := v.gen
	v.mu.Unlock()
	if ok {
		return b, nil
	}
	var buf bytes.Buffer
	if err := f.encode(&buf, v.src.Snapshot()); err != nil {
		return nil, err
	}
	b = buf.Bytes()
	v.mu.Lock()
	// Do not cache an image older than the last change.
	if v.gen == gen {
		v.cache[f] = b
	}
	v.mu.Unlock()
	return b, nil
}

// ServeHTTP implements http.Handler.
func (v *View) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "", http.StatusMethodNotAllowed)
		return
	}
	f := v.format
	if s := r.URL.Query().Get("format"); s != "" {
		var err error
		if f, err = ParseFormat(s); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	pw := &partWriter{w: w, boundary: newBoundary()}
	w.Header().Set("Content-Type", mime.FormatMediaType("multipart/x-mixed-replace", map[string]string{"boundary": pw.boundary}))

	c := &client{refresh: make(chan struct{}, 1), terminate: make(chan struct{}, 1)}
	v.mu.Lock()
	v.clients[c] = struct{}{}
	v.mu.Unlock()
	defer func() {
		v.mu.Lock()
		delete(v.clients, c)
		v.mu.Unlock()
	}()

	h := textproto.MIMEHeader{}
	h.Set("Content-Type", f.mimeType())
	h.Set("Content-Transfer-Encoding", "binary")
	for {
		b, err := v.snapshot(f)
		if err != nil {
			log.Printf("panelview: %v", err)
			return
		}
		// There is no way to report an error within an image stream, the
		// request just ends.
		if err := pw.writePart(h, b); err != nil {
			return
		}
		if fl, ok := w.(http.Flusher); ok {
			fl.Flush()
		}
		select {
		case <-c.refresh:
		case <-c.terminate:
			return
		case <-r.Context().Done():
			return
		}
	}
}

var _ http.Handler = &View{}
