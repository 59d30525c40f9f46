// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package panel

import (
	"fmt"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
)

// LookupPins resolves GPIO names through gpioreg, in order. host.Init must
// have been called.
func LookupPins(names ...string) ([]gpio.PinOut, error) {
	pins := make([]gpio.PinOut, len(names))
	for i, n := range names {
		p := gpioreg.ByName(n)
		if p == nil {
			return nil, fmt.Errorf("panel: gpio %q not found", n)
		}
		pins[i] = p
	}
	return pins, nil
}

// RequirePin returns an error when the pin for role is not wired.
func RequirePin(role string, p gpio.PinOut) error {
	if p == nil || p == gpio.INVALID {
		return fmt.Errorf("panel: %s pin is not set", role)
	}
	return nil
}
