// Copyright 2021 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package displays is a container for the board display layer.
//
// A board package (tdisplays3, ttgotdisplay, hostsim) brings up one physical
// panel, boardreg selects the board at build time and lvdisplay binds it into
// the gfxport rendering runtime.
package displays
