// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

//go:build !linux

package gfxport

import "errors"

func setAffinity(cpu int) error {
	if cpu < 0 {
		return nil
	}
	return errors.New("not supported on this OS")
}
