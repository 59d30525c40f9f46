// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

//go:build !tdisplays3 && !ttgotdisplay

package boardreg

import (
	"github.com/GermanBionicSystems/displays/hostsim"
	"github.com/GermanBionicSystems/displays/panel"
)

// Name is the selected board.
const Name = hostsim.Name

func open(opts *panel.Opts) panel.Display {
	return hostsim.NewDefault(opts)
}
