// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package gfxport

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"
)

var (
	// ErrAlreadyStarted is returned by Start when the task already runs.
	ErrAlreadyStarted = errors.New("gfxport: runtime already started")
	// ErrNotStarted is returned by AddDisplay before Start.
	ErrNotStarted = errors.New("gfxport: runtime not started")
	// ErrInvalidConfig is wrapped by configuration errors.
	ErrInvalidConfig = errors.New("gfxport: invalid configuration")
)

// Config is the task and timer tuning.
//
// TaskPriority and TaskStack are kept for parity with firmware
// configurations; the Go scheduler has no equivalent and ignores them.
type Config struct {
	TaskPriority int
	TaskStack    int
	// TaskAffinity pins the task to a CPU. -1 means no affinity.
	TaskAffinity int
	// TaskMaxSleep bounds the time between two task iterations.
	TaskMaxSleep time.Duration
	// TimerPeriod is the tick increment period.
	TimerPeriod time.Duration
}

// DefaultConfig is the recommended default configuration.
var DefaultConfig = Config{
	TaskPriority: 2,
	TaskStack:    4096,
	TaskAffinity: -1,
	TaskMaxSleep: 500 * time.Millisecond,
	TimerPeriod:  5 * time.Millisecond,
}

// Validate returns an error wrapping ErrInvalidConfig.
func (c *Config) Validate() error {
	switch {
	case c.TaskMaxSleep <= 0:
		return fmt.Errorf("%w: task max sleep %s", ErrInvalidConfig, c.TaskMaxSleep)
	case c.TimerPeriod <= 0:
		return fmt.Errorf("%w: timer period %s", ErrInvalidConfig, c.TimerPeriod)
	case c.TaskAffinity < -1:
		return fmt.Errorf("%w: task affinity %d", ErrInvalidConfig, c.TaskAffinity)
	case c.TaskStack < 0:
		return fmt.Errorf("%w: task stack %d", ErrInvalidConfig, c.TaskStack)
	}
	return nil
}

// Runtime owns the rendering task, the tick timer and the lock.
type Runtime struct {
	// sem is the lock: holding the lock is owning its single slot.
	sem chan struct{}
	// wake shortens the task sleep after an invalidation.
	wake chan struct{}

	mu       sync.Mutex
	started  bool
	cfg      Config
	displays []*Display
	stop     chan struct{}
	wg       sync.WaitGroup

	ticks uint32
}

var (
	defaultOnce sync.Once
	defaultRT   *Runtime
)

// Default returns the process wide runtime.
func Default() *Runtime {
	defaultOnce.Do(func() {
		defaultRT = New()
	})
	return defaultRT
}

// New returns a stopped Runtime. Most programs use Default.
func New() *Runtime {
	return &Runtime{
		sem:  make(chan struct{}, 1),
		wake: make(chan struct{}, 1),
		stop: make(chan struct{}),
	}
}

func (r *Runtime) String() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return fmt.Sprintf("gfxport.Runtime{started=%t, displays=%d}", r.started, len(r.displays))
}

// Start starts the task and the tick timer.
func (r *Runtime) Start(cfg *Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.started {
		return ErrAlreadyStarted
	}
	r.cfg = *cfg
	pinned := make(chan error, 1)
	r.wg.Add(2)
	go r.timer(r.cfg.TimerPeriod)
	go r.task(pinned)
	if err := <-pinned; err != nil {
		close(r.stop)
		r.wg.Wait()
		r.stop = make(chan struct{})
		return fmt.Errorf("gfxport: task affinity: %w", err)
	}
	r.started = true
	return nil
}

// Stop stops the task and the timer, then waits for pending transfers. The
// runtime cannot be started again.
func (r *Runtime) Stop() error {
	r.mu.Lock()
	if !r.started {
		r.mu.Unlock()
		return ErrNotStarted
	}
	select {
	case <-r.stop:
		r.mu.Unlock()
		return nil
	default:
	}
	close(r.stop)
	displays := append([]*Display(nil), r.displays...)
	r.mu.Unlock()
	r.wg.Wait()
	var err error
	for _, d := range displays {
		if d.cfg.IO == nil {
			continue
		}
		if err2 := d.cfg.IO.Wait(); err == nil {
			err = err2
		}
	}
	return err
}

// Lock acquires the lock. A timeout of zero or less blocks until the lock
// is available. It returns false on timeout.
func (r *Runtime) Lock(timeout time.Duration) bool {
	if timeout <= 0 {
		r.sem <- struct{}{}
		return true
	}
	t := time.NewTimer(timeout)
	defer t.Stop()
	select {
	case r.sem <- struct{}{}:
		return true
	case <-t.C:
		return false
	}
}

// Unlock releases the lock. It panics if the lock is not held.
func (r *Runtime) Unlock() {
	select {
	case <-r.sem:
	default:
		panic("gfxport: unlock of unlocked runtime")
	}
}

// Ticks returns the milliseconds counted by the tick timer.
func (r *Runtime) Ticks() uint32 {
	return atomic.LoadUint32(&r.ticks)
}

func (r *Runtime) timer(period time.Duration) {
	defer r.wg.Done()
	t := time.NewTicker(period)
	defer t.Stop()
	inc := uint32(period / time.Millisecond)
	if inc == 0 {
		inc = 1
	}
	for {
		select {
		case <-r.stop:
			return
		case <-t.C:
			atomic.AddUint32(&r.ticks, inc)
		}
	}
}

func (r *Runtime) task(pinned chan<- error) {
	defer r.wg.Done()
	if err := setAffinity(r.cfg.TaskAffinity); err != nil {
		pinned <- err
		return
	}
	pinned <- nil
	for {
		select {
		case r.sem <- struct{}{}:
		case <-r.stop:
			return
		}
		r.handle()
		r.Unlock()
		sleep := time.NewTimer(r.cfg.TaskMaxSleep)
		select {
		case <-r.stop:
			sleep.Stop()
			return
		case <-r.wake:
		case <-sleep.C:
		}
		sleep.Stop()
	}
}

// handle flushes every display with an invalidated area. The lock is held.
func (r *Runtime) handle() {
	r.mu.Lock()
	displays := append([]*Display(nil), r.displays...)
	r.mu.Unlock()
	for _, d := range displays {
		if d.dirty.Empty() {
			continue
		}
		if err := d.flush(r.stop); err != nil {
			log.Printf("gfxport: %s: %v", d, err)
		}
	}
}

// kick wakes the task.
func (r *Runtime) kick() {
	select {
	case r.wake <- struct{}{}:
	default:
	}
}
