// Copyright © 2025 Deskshell contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: shell/output.go
// Summary: Per-output state: geometry tracking and panel/background setup.

package shell

import (
	log "github.com/sirupsen/logrus"

	"deskshell/compositor"
)

// Output mirrors one wl_output and owns the panel and background docked to
// it. Ownership can move to a clone when the output is unplugged.
type Output struct {
	desktop *Desktop
	name    uint32
	proxy   compositor.Output

	x, y          int
	width, height int
	scale         int
	transform     int

	initialized bool
	panel       *Panel
	background  *Background
}

func newOutput(d *Desktop, name uint32) *Output {
	out := &Output{desktop: d, name: name, scale: 1}
	out.proxy = d.conn.BindOutput(name)
	if out.proxy != nil {
		out.proxy.SetListener(out)
	}
	return out
}

// init creates the output's surfaces and hands them to the compositor.
// Called once the shell global is bound.
func (o *Output) init() {
	o.initialized = true
	d := o.desktop

	if d.wantPanel {
		o.panel = newPanel(d, o.name)
		d.surfaces[o.panel.window.ID()] = o.panel
		d.shell.SetPanel(o.proxy, o.panel.window.ID())
	}

	o.background = newBackground(d, o.name)
	d.surfaces[o.background.window.ID()] = o.background
	d.shell.SetBackground(o.proxy, o.background.window.ID())

	log.WithField("output", o.name).Debug("shell: output initialized")
}

// destroy tears down whatever surfaces the output still owns.
func (o *Output) destroy() {
	if o.background != nil {
		o.background.destroy()
		o.background = nil
	}
	if o.panel != nil {
		o.panel.destroy()
		o.panel = nil
	}
}

// Geometry implements compositor.OutputListener.
func (o *Output) Geometry(x, y int) {
	o.x, o.y = x, y
	if o.panel != nil {
		o.panel.reposition()
	}
	if o.background != nil {
		o.background.reposition()
	}
}

// Mode implements compositor.OutputListener. The docked surfaces are
// re-sized by configure events, not here.
func (o *Output) Mode(width, height int) {
	o.width, o.height = width, height
}

// Scale implements compositor.OutputListener.
func (o *Output) Scale(factor int) {
	o.scale = factor
	if o.panel != nil {
		o.panel.window.SetBufferScale(factor)
	}
	if o.background != nil {
		o.background.window.SetBufferScale(factor)
	}
}

// Transform implements compositor.OutputListener.
func (o *Output) Transform(transform int) {
	o.transform = transform
	if o.panel != nil {
		o.panel.window.SetBufferTransform(transform)
	}
	if o.background != nil {
		o.background.window.SetBufferTransform(transform)
	}
}
