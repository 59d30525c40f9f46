// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package st7789

import "github.com/GermanBionicSystems/displays/lcdio"

// errorHandler is a wrapper for error management.
type errorHandler struct {
	io  lcdio.IO
	err error
}

func (eh *errorHandler) txParam(cmd byte, param ...byte) {
	if eh.err != nil {
		return
	}
	eh.err = eh.io.TxParam(cmd, param...)
}

func (eh *errorHandler) txColor(cmd byte, color []byte) {
	if eh.err != nil {
		return
	}
	eh.err = eh.io.TxColor(cmd, color)
}
