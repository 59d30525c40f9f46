// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package panel

// BringupError is the recorded failure of a board bring-up step.
type BringupError struct {
	Board string
	Step  string
	Err   error
}

func (e *BringupError) Error() string {
	return e.Board + ": failed to " + e.Step + ": " + e.Err.Error()
}

func (e *BringupError) Unwrap() error {
	return e.Err
}

// Bringup runs the ordered steps of a board bring-up. Once a step failed,
// the remaining ones are skipped.
type Bringup struct {
	board string
	err   error
}

// NewBringup returns a Bringup for board.
func NewBringup(board string) *Bringup {
	return &Bringup{board: board}
}

// Step runs f unless a previous step failed.
func (b *Bringup) Step(name string, f func() error) {
	if b.err != nil {
		return
	}
	Logf("%s: %s", b.board, name)
	if err := f(); err != nil {
		b.err = &BringupError{Board: b.board, Step: name, Err: err}
		Logf("%v", b.err)
	}
}

// Err returns the first failure, or nil.
func (b *Bringup) Err() error {
	return b.err
}
