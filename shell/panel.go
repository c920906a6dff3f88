// Copyright © 2025 Deskshell contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: shell/panel.go
// Summary: The launcher panel: sizing, layout and paint.

package shell

import (
	"github.com/gdamore/tcell/v2"

	"deskshell/compositor"
	"deskshell/toolkit"
)

const (
	// Thickness of a horizontal panel.
	panelThickness = 32

	// Vertical panel widths, picked by clock format.
	panelWidthSecondsClock = 170
	panelWidthMinutesClock = 150
	panelWidthNoClock      = 32

	defaultSpacing = 10

	// Clock strip at the bottom of a vertical panel.
	clockRegionHeight = 3 * defaultSpacing

	clockPaddingRight = 8
)

// Panel is the launcher bar docked to one edge of its owner output.
type Panel struct {
	desktop *Desktop
	ownerID uint32

	window *toolkit.Window
	widget *toolkit.Widget

	launchers []*Launcher
	clock     *PanelClock

	painted bool
}

func newPanel(d *Desktop, ownerID uint32) *Panel {
	p := &Panel{desktop: d, ownerID: ownerID}
	p.window = d.display.NewWindow("panel")
	p.window.SetZOrder(2)
	p.widget = p.window.AddWidget()
	p.widget.SetRedrawHandler(p.redraw)
	p.widget.SetResizeHandler(p.layout)

	for _, entry := range d.cfg.Launchers {
		p.addLauncher(entry.Icon, entry.Path)
	}
	if d.clockFormat != ClockNone {
		p.clock = newPanelClock(p)
	}
	return p
}

func (p *Panel) addLauncher(icon, path string) {
	p.launchers = append(p.launchers, newLauncher(p, icon, path))
}

// Configure implements Surface. The compositor hands us the output size;
// the panel keeps the docked edge and trims the other dimension.
func (p *Panel) Configure(edges uint32, width, height int) {
	if width < 1 || height < 1 {
		p.redundant()
		return
	}

	switch p.desktop.panelPosition {
	case compositor.PanelTop, compositor.PanelBottom:
		height = panelThickness
	case compositor.PanelLeft, compositor.PanelRight:
		switch p.desktop.clockFormat {
		case ClockSeconds:
			width = panelWidthSecondsClock
		case ClockMinutes, ClockMinutes24, ClockSeconds24:
			width = panelWidthMinutesClock
		default:
			width = panelWidthNoClock
		}
	}

	p.window.ScheduleResize(width, height)
	p.reposition()
}

// reposition pins the panel to its docked edge of the owner output.
func (p *Panel) reposition() {
	out := p.desktop.outputFor(p.ownerID)
	if out == nil {
		return
	}
	w, h := p.window.Size()
	x, y := out.x, out.y
	switch p.desktop.panelPosition {
	case compositor.PanelBottom:
		y = out.y + out.height - h
	case compositor.PanelRight:
		x = out.x + out.width - w
	}
	p.window.SetPosition(x, y)
}

// layout places launchers along the panel axis and the clock at the far
// end.
func (p *Panel) layout(_ *toolkit.Widget, width, height int) {
	p.widget.SetAllocation(0, 0, width, height)

	horizontal := p.desktop.panelPosition == compositor.PanelTop ||
		p.desktop.panelPosition == compositor.PanelBottom

	if horizontal {
		x := defaultSpacing / 2
		for _, l := range p.launchers {
			w := l.width()
			l.widget.SetAllocation(x, 0, w, height)
			x += w + defaultSpacing
		}
		if p.clock != nil {
			cw := toolkit.TextWidth(formatNow(p.clock.format)) + 2
			p.clock.widget.SetAllocation(width-cw-clockPaddingRight, 0, cw, height)
		}
		return
	}

	avail := height
	if p.clock != nil {
		avail -= clockRegionHeight
		p.clock.widget.SetAllocation(0, avail, width, clockRegionHeight)
	}
	y := defaultSpacing / 2
	for _, l := range p.launchers {
		if y >= avail {
			l.widget.SetAllocation(0, 0, 0, 0)
			continue
		}
		l.widget.SetAllocation(0, y, width, 1)
		y += 1 + defaultSpacing
	}
}

func (p *Panel) redraw(_ *toolkit.Widget) {
	painter := p.window.Painter()
	w, h := painter.Size()
	style := tcell.StyleDefault.
		Background(toolkit.HexColor(p.desktop.panelColor)).
		Foreground(tcell.ColorWhite)
	painter.Fill(toolkit.Rect{X: 0, Y: 0, Width: w, Height: h}, style)

	if !p.painted {
		p.painted = true
		p.desktop.checkReady()
	}
}

// redundant tears the panel down after a zero-size configure: another
// surface already holds the panel slot on this output.
func (p *Panel) redundant() {
	if out := p.desktop.outputFor(p.ownerID); out != nil && out.panel == p {
		out.panel = nil
	}
	p.destroy()
}

func (p *Panel) destroy() {
	if p.clock != nil {
		p.clock.stop()
	}
	delete(p.desktop.surfaces, p.window.ID())
	p.window.Destroy()
}
