// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package lvdisplay

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/GermanBionicSystems/displays/boardreg"
	"github.com/GermanBionicSystems/displays/gfxport"
	"github.com/GermanBionicSystems/displays/panel"
)

// ErrAlreadyRunning is returned by Initialise once the display is bound to
// the runtime.
var ErrAlreadyRunning = errors.New("lvdisplay: display already running")

// Runtime is the part of gfxport.Runtime the controller uses.
type Runtime interface {
	Start(cfg *gfxport.Config) error
	AddDisplay(cfg *gfxport.DisplayConfig) (*gfxport.Display, error)
	Lock(timeout time.Duration) bool
	Unlock()
}

// State is the controller lifecycle state.
type State int

// Lifecycle states. There is no transition back.
const (
	Uninitialized State = iota
	Bound
	Running
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "Uninitialized"
	case Bound:
		return "Bound"
	case Running:
		return "Running"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Controller owns the lifecycle of one panel within the runtime.
type Controller struct {
	noCopy noCopy

	d   panel.Display
	rt  Runtime
	cfg gfxport.Config

	// initMu serializes Initialise. It may be held while waiting for the
	// graphics lock.
	initMu  sync.Mutex
	started bool

	// mu guards state and disp. It is never held while blocking, so lock
	// holders can query the controller.
	mu    sync.Mutex
	state State
	disp  *gfxport.Display
}

// New returns a Bound controller. It does not touch the panel or the
// runtime.
func New(d panel.Display, rt Runtime, cfg *gfxport.Config) *Controller {
	return &Controller{d: d, rt: rt, cfg: *cfg, state: Bound}
}

var (
	instOnce sync.Once
	inst     *Controller
)

// Instance returns the process wide controller for the board selected by
// boardreg, using the default runtime and configuration.
func Instance() *Controller {
	instOnce.Do(func() {
		inst = New(boardreg.Active(), gfxport.Default(), &gfxport.DefaultConfig)
	})
	return inst
}

func (c *Controller) String() string {
	return fmt.Sprintf("lvdisplay.Controller{%s, %s}", c.d, c.State())
}

// State returns the lifecycle state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Display returns the runtime display handle, nil until Running.
func (c *Controller) Display() *gfxport.Display {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.disp
}

// Initialise starts the runtime and registers the panel with it.
//
// A panel whose bring-up failed returns its error without touching the
// runtime. The runtime is started once, a retry after a failed registration
// only registers.
func (c *Controller) Initialise() error {
	if err := c.d.Err(); err != nil {
		return err
	}
	c.initMu.Lock()
	defer c.initMu.Unlock()
	if c.State() == Running {
		return ErrAlreadyRunning
	}
	if !c.started {
		panel.Logf("lvdisplay: initialize runtime")
		if err := c.rt.Start(&c.cfg); err != nil && !errors.Is(err, gfxport.ErrAlreadyStarted) {
			return err
		}
		c.started = true
	}
	panel.Logf("lvdisplay: add %s", c.d)
	// The handle must be published before the runtime task can flush.
	c.rt.Lock(0)
	defer c.rt.Unlock()
	disp, err := c.rt.AddDisplay(c.displayConfig())
	if err != nil {
		return err
	}
	c.d.SetDisplay(disp)
	c.mu.Lock()
	c.disp = disp
	c.state = Running
	c.mu.Unlock()
	return nil
}

func (c *Controller) displayConfig() *gfxport.DisplayConfig {
	return &gfxport.DisplayConfig{
		IO:           c.d.IO(),
		Panel:        c.d.Panel(),
		BufferSize:   c.d.BufferSize(),
		DoubleBuffer: c.d.DoubleBuffer(),
		HRes:         c.d.HRes(),
		VRes:         c.d.VRes(),
		Monochrome:   c.d.Monochrome(),
		Rotation: gfxport.Rotation{
			SwapXY:  c.d.SwapXY(),
			MirrorX: c.d.MirrorX(),
			MirrorY: c.d.MirrorY(),
		},
		Flags: gfxport.Flags{
			BuffDMA:    c.d.DMA(),
			BuffSPIRAM: c.d.SPIRAM(),
		},
	}
}

// Backlight turns the panel backlight on or off, in any state.
func (c *Controller) Backlight(on bool) error {
	if err := c.d.Err(); err != nil {
		return err
	}
	return c.d.Backlight(on)
}

// noCopy may be embedded into structs which must not be copied after first
// use. See go vet -copylocks.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}
