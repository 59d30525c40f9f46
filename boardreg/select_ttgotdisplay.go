// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

//go:build ttgotdisplay

package boardreg

import (
	"github.com/GermanBionicSystems/displays/panel"
	"github.com/GermanBionicSystems/displays/ttgotdisplay"
)

// Name is the selected board.
const Name = ttgotdisplay.Name

func open(opts *panel.Opts) panel.Display {
	return ttgotdisplay.NewDefault(opts)
}
