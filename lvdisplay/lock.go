// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package lvdisplay

import "sync"

// Guard holds the graphics lock until Unlock.
type Guard struct {
	rt   Runtime
	once sync.Once
}

// Unlock releases the lock. Calling it more than once is a no-op.
func (g *Guard) Unlock() {
	g.once.Do(g.rt.Unlock)
}

// Lock blocks until the graphics lock is acquired and returns its guard.
func (c *Controller) Lock() *Guard {
	c.rt.Lock(0)
	return &Guard{rt: c.rt}
}

// Do runs fn while holding the graphics lock. The lock is released even if
// fn panics.
func (c *Controller) Do(fn func()) {
	g := c.Lock()
	defer g.Unlock()
	fn()
}

// Acquire blocks until the graphics lock is acquired. Pair it with Release.
func (c *Controller) Acquire() {
	c.rt.Lock(0)
}

// Release releases the lock taken by Acquire.
func (c *Controller) Release() {
	c.rt.Unlock()
}

// Lock is Instance().Lock().
func Lock() *Guard {
	return Instance().Lock()
}

// Do is Instance().Do(fn).
func Do(fn func()) {
	Instance().Do(fn)
}

// Acquire is Instance().Acquire().
func Acquire() {
	Instance().Acquire()
}

// Release is Instance().Release().
func Release() {
	Instance().Release()
}
