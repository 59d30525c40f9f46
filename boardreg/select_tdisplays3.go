// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

//go:build tdisplays3

package boardreg

import (
	"github.com/GermanBionicSystems/displays/panel"
	"github.com/GermanBionicSystems/displays/tdisplays3"
)

// Name is the selected board.
const Name = tdisplays3.Name

func open(opts *panel.Opts) panel.Display {
	return tdisplays3.NewDefault(opts)
}
