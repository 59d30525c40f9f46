// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package lcdio

import (
	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
)

// errorHandler is a wrapper for error management.
type errorHandler struct {
	err error
}

// out drives p when it is set; a nil pin is not wired on this board.
func (eh *errorHandler) out(p gpio.PinOut, l gpio.Level) {
	if eh.err != nil || p == nil {
		return
	}
	eh.err = p.Out(l)
}

func (eh *errorHandler) tx(c conn.Conn, w []byte) {
	if eh.err != nil || len(w) == 0 {
		return
	}
	eh.err = c.Tx(w, nil)
}
