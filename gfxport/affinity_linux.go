// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package gfxport

import (
	"runtime"

	"golang.org/x/sys/unix"
)

// setAffinity locks the calling goroutine to its thread and pins the thread
// to cpu.
func setAffinity(cpu int) error {
	if cpu < 0 {
		return nil
	}
	runtime.LockOSThread()
	var set unix.CPUSet
	set.Zero()
	set.Set(cpu)
	return unix.SchedSetaffinity(0, &set)
}
