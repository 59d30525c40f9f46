// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package lcdio

import (
	"errors"
	"fmt"
	"sync"
)

// ErrClosed is returned by transactions issued after Halt.
var ErrClosed = errors.New("lcdio: panel io is closed")

// DefaultQueueDepth is used when Opts.QueueDepth is zero.
const DefaultQueueDepth = 10

// Transport performs the wire level transactions for one panel.
//
// Calls are serialized by Dev; a Transport does not need its own locking
// unless it shares a bus with another panel.
type Transport interface {
	String() string
	// Param sends cmd then the optional parameter bytes.
	Param(cmd byte, param []byte) error
	// Color sends cmd then the pixel data.
	Color(cmd byte, color []byte) error
}

// IO is what a panel controller driver needs from its panel I/O.
type IO interface {
	String() string
	// TxParam sends a command with its parameters. It waits for all queued
	// color transactions to complete first.
	TxParam(cmd byte, param ...byte) error
	// TxColor queues a pixel transfer. color must not be modified until the
	// matching transfer-done notification.
	TxColor(cmd byte, color []byte) error
	// Wait blocks until the queue is empty.
	Wait() error
	// Halt drains the queue and stops the background goroutine.
	Halt() error
}

// Opts configures a Dev.
type Opts struct {
	// QueueDepth is the number of color transactions that can be pending
	// before TxColor blocks.
	QueueDepth int
	// OnColorTransDone is called from the queue goroutine after every color
	// transaction, successful or not. It must not block.
	OnColorTransDone func()
}

type colorTx struct {
	cmd   byte
	color []byte
}

// Dev is a queued panel I/O on top of a Transport.
type Dev struct {
	t    Transport
	done func()

	// wire serializes transport access between callers and the worker.
	wire sync.Mutex

	// send guards queue against close while a sender is blocked on it.
	send   sync.RWMutex
	queue  chan colorTx
	closed bool
	exited chan struct{}

	mu      sync.Mutex
	idle    *sync.Cond
	pending int
	err     error
}

// New returns a Dev and starts its queue goroutine.
func New(t Transport, opts *Opts) *Dev {
	depth := opts.QueueDepth
	if depth <= 0 {
		depth = DefaultQueueDepth
	}
	d := &Dev{
		t:      t,
		done:   opts.OnColorTransDone,
		queue:  make(chan colorTx, depth),
		exited: make(chan struct{}),
	}
	d.idle = sync.NewCond(&d.mu)
	go d.run()
	return d
}

func (d *Dev) String() string {
	return fmt.Sprintf("lcdio.Dev{%s, depth=%d}", d.t, cap(d.queue))
}

// TxParam implements IO.
func (d *Dev) TxParam(cmd byte, param ...byte) error {
	d.send.RLock()
	defer d.send.RUnlock()
	if d.closed {
		return ErrClosed
	}
	if err := d.Wait(); err != nil {
		return err
	}
	d.wire.Lock()
	defer d.wire.Unlock()
	if err := d.t.Param(cmd, param); err != nil {
		return fmt.Errorf("lcdio: command 0x%02X: %w", cmd, err)
	}
	return nil
}

// TxColor implements IO.
func (d *Dev) TxColor(cmd byte, color []byte) error {
	if err := d.takeErr(); err != nil {
		return err
	}
	d.send.RLock()
	defer d.send.RUnlock()
	if d.closed {
		return ErrClosed
	}
	d.mu.Lock()
	d.pending++
	d.mu.Unlock()
	d.queue <- colorTx{cmd: cmd, color: color}
	return nil
}

// Wait implements IO.
//
// It returns the error of a failed color transaction, if any happened since
// the last call.
func (d *Dev) Wait() error {
	d.mu.Lock()
	for d.pending != 0 {
		d.idle.Wait()
	}
	err := d.err
	d.err = nil
	d.mu.Unlock()
	return err
}

// Halt implements conn.Resource.
func (d *Dev) Halt() error {
	d.send.Lock()
	if d.closed {
		d.send.Unlock()
		return nil
	}
	d.closed = true
	close(d.queue)
	d.send.Unlock()
	<-d.exited
	return d.takeErr()
}

func (d *Dev) takeErr() error {
	d.mu.Lock()
	err := d.err
	d.err = nil
	d.mu.Unlock()
	return err
}

func (d *Dev) run() {
	defer close(d.exited)
	for tx := range d.queue {
		d.wire.Lock()
		err := d.t.Color(tx.cmd, tx.color)
		d.wire.Unlock()
		if d.done != nil {
			d.done()
		}
		d.mu.Lock()
		if err != nil && d.err == nil {
			d.err = fmt.Errorf("lcdio: color transfer 0x%02X: %w", tx.cmd, err)
		}
		d.pending--
		if d.pending == 0 {
			d.idle.Broadcast()
		}
		d.mu.Unlock()
	}
}

var _ IO = &Dev{}
