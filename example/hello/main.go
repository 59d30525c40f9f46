// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// hello shows a label on the board selected at build time.
//
// Build with -tags tdisplays3 or -tags ttgotdisplay for real hardware; the
// default build draws to the terminal.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/GermanBionicSystems/displays/boardreg"
	"github.com/GermanBionicSystems/displays/gfxport"
	"github.com/GermanBionicSystems/displays/hostsim"
	"github.com/GermanBionicSystems/displays/lvdisplay"
	"github.com/GermanBionicSystems/displays/panel"
	"github.com/GermanBionicSystems/displays/panelview"
	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"periph.io/x/host/v3"
)

// label renders text centered on a w x h dark background.
type label struct {
	face font.Face
}

func newLabel(size float64) (*label, error) {
	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, err
	}
	return &label{face: truetype.NewFace(f, &truetype.Options{Size: size})}, nil
}

func (l *label) draw(dst draw.Image, text string, fg color.Color) {
	r := dst.Bounds()
	dc := gg.NewContext(r.Dx(), r.Dy())
	dc.SetRGB(0.05, 0.05, 0.1)
	dc.Clear()
	dc.SetColor(fg)
	dc.SetFontFace(l.face)
	dc.DrawStringAnchored(text, float64(r.Dx())/2, float64(r.Dy())/2, 0.5, 0.5)
	draw.Draw(dst, r, dc.Image(), image.Point{}, draw.Src)
}

func mainImpl() error {
	opts := panel.DefaultOpts
	cfg := gfxport.DefaultConfig
	flag.IntVar(&opts.LineCount, "lines", opts.LineCount, "draw buffer depth in scanlines")
	flag.Var(&opts.Clock, "clock", "bus clock")
	flag.IntVar(&opts.QueueDepth, "queue", opts.QueueDepth, "panel I/O color transfer queue depth")
	flag.BoolVar(&opts.MirrorX, "mirrorx", false, "mirror the X axis")
	flag.BoolVar(&opts.MirrorY, "mirrory", false, "mirror the Y axis")
	flag.IntVar(&cfg.TaskPriority, "priority", cfg.TaskPriority, "rendering task priority (advisory)")
	flag.IntVar(&cfg.TaskStack, "stack", cfg.TaskStack, "rendering task stack size (advisory)")
	flag.IntVar(&cfg.TaskAffinity, "affinity", cfg.TaskAffinity, "CPU to pin the rendering task to, -1 for none")
	flag.DurationVar(&cfg.TaskMaxSleep, "maxsleep", cfg.TaskMaxSleep, "rendering task maximum sleep")
	flag.DurationVar(&cfg.TimerPeriod, "tick", cfg.TimerPeriod, "tick timer period")
	text := flag.String("text", "Hello world", "label text")
	size := flag.Float64("size", 24, "font size")
	addr := flag.String("http", "", "with the host emulator, serve the panel as an image stream on this address")
	verbose := flag.Bool("v", false, "verbose")
	flag.Parse()
	if flag.NArg() != 0 {
		return fmt.Errorf("unexpected argument: %v", flag.Args())
	}
	if !*verbose {
		panel.SetLogger(nil)
	}

	if _, err := host.Init(); err != nil {
		return err
	}
	l, err := newLabel(*size)
	if err != nil {
		return err
	}

	d := boardreg.Open(&opts)
	if h, ok := d.(*hostsim.Dev); ok && *addr != "" {
		v := panelview.New(h.Screen(), &panelview.Opts{Format: panelview.PNG})
		h.Screen().SetOnChange(v.Changed)
		defer v.Halt()
		srv := &http.Server{Addr: *addr, Handler: v}
		go func() {
			if err := srv.ListenAndServe(); err != http.ErrServerClosed {
				fmt.Fprintf(os.Stderr, "hello: %s\n", err)
			}
		}()
		defer srv.Close()
	}

	rt := gfxport.Default()
	c := lvdisplay.New(d, rt, &cfg)
	if err := c.Initialise(); err != nil {
		return err
	}
	defer rt.Stop()
	if err := c.Backlight(true); err != nil {
		return err
	}
	defer c.Backlight(false)

	disp := c.Display()
	c.Do(func() {
		l.draw(disp.Canvas(), *text, color.White)
		disp.Invalidate(disp.Bounds())
	})

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)
	t := time.NewTicker(time.Second)
	defer t.Stop()
	for {
		select {
		case <-stop:
			return nil
		case <-t.C:
			up := time.Duration(rt.Ticks()) * time.Millisecond
			g := c.Lock()
			l.draw(disp.Canvas(), fmt.Sprintf("%s %s", *text, up.Truncate(time.Second)), color.White)
			disp.Invalidate(disp.Bounds())
			g.Unlock()
		}
	}
}

func main() {
	if err := mainImpl(); err != nil {
		fmt.Fprintf(os.Stderr, "hello: %s.\n", err)
		os.Exit(1)
	}
}
