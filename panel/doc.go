// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package panel defines the contract every board display implements.
//
// A board constructor brings the panel up once, in a fixed order, and never
// fails: the outcome is recorded and exposed by Display.Err. A Display whose
// Err is not nil must not be bound to a rendering runtime.
//
// The capability queries (resolution, buffering, rotation, memory placement)
// describe the physical wiring and never change after construction.
package panel
