// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package gfxport is the rendering runtime glue between application drawing
// and panel controllers.
//
// Applications draw into a display's canvas and invalidate the changed area
// while holding the runtime lock. A background task flushes invalidated areas
// in bands of the configured draw buffer size. Each band is handed to the
// panel, which transfers it asynchronously and reports back through
// Display.FlushReady; the task does not reuse a buffer before that.
//
// All access to canvases must happen while holding the lock (Lock/Unlock).
// The task takes the same lock while flushing.
package gfxport
