// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package lvdisplay binds the selected board to the rendering runtime and
// serializes graphics access.
//
// A typical program:
//
//	c := lvdisplay.Instance()
//	if err := c.Initialise(); err != nil {
//		log.Fatal(err)
//	}
//	if err := c.Backlight(true); err != nil {
//		log.Fatal(err)
//	}
//	g := lvdisplay.Lock()
//	defer g.Unlock()
//	// Draw into c.Display().Canvas() then Invalidate.
//
// Every access to a canvas or the runtime's drawing state must happen while
// holding the lock, either scope-bound with Lock/Do or explicitly with
// Acquire/Release. The lock is not reentrant.
package lvdisplay
