// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

//go:build !tdisplays3 && !ttgotdisplay

package boardreg

import (
	"bytes"
	"testing"

	"github.com/GermanBionicSystems/displays/hostsim"
	"github.com/GermanBionicSystems/displays/panel"
)

func init() {
	panel.SetLogger(nil)
}

func TestActive(t *testing.T) {
	if Name != hostsim.Name {
		t.Fatalf("Name = %q", Name)
	}
	var term bytes.Buffer
	opts := panel.DefaultOpts
	opts.LineCount = 10
	opts.Terminal = &term
	d := Open(&opts)
	if d == nil {
		t.Fatal("no board")
	}
	if err := d.Err(); err != nil {
		t.Fatal(err)
	}
	if Active() != d {
		t.Fatal("Active must return the instance built by Open")
	}
	other := panel.DefaultOpts
	if Open(&other) != d {
		t.Fatal("Open must construct the board once")
	}
	if term.Len() == 0 {
		t.Fatal("the emulator must render to opts.Terminal")
	}
	if got := d.BufferSize(); got != d.HRes()*10 {
		t.Fatalf("BufferSize() = %d, want the options of the first call", got)
	}
}
