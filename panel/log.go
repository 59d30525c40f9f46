// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package panel

import (
	"io"
	"log"
	"os"
	"sync"
)

var (
	logMu  sync.Mutex
	logger = log.New(os.Stderr, "", log.LstdFlags)
)

// SetLogger replaces the logger used for bring-up progress. nil silences it.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard, "", 0)
	}
	logMu.Lock()
	logger = l
	logMu.Unlock()
}

// Logf logs through the package logger.
func Logf(format string, v ...interface{}) {
	logMu.Lock()
	l := logger
	logMu.Unlock()
	l.Printf(format, v...)
}
