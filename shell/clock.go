// Copyright © 2025 Deskshell contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: shell/clock.go
// Summary: Panel clock formats and the boundary-aligned refresh timer.

package shell

import (
	"time"

	"github.com/gdamore/tcell/v2"
	log "github.com/sirupsen/logrus"

	"deskshell/toolkit"
)

// ClockFormat selects what the panel clock shows and how often it ticks.
type ClockFormat int

const (
	ClockISO ClockFormat = iota
	ClockMinutes
	ClockSeconds
	ClockMinutes24
	ClockSeconds24
	ClockNone
)

func parseClockFormat(s string) ClockFormat {
	switch s {
	case "minutes":
		return ClockMinutes
	case "seconds":
		return ClockSeconds
	case "minutes-24h":
		return ClockMinutes24
	case "seconds-24h":
		return ClockSeconds24
	case "iso":
		return ClockISO
	case "none":
		return ClockNone
	default:
		log.WithField("format", s).Warn("shell: unknown clock format")
		return ClockISO
	}
}

// layout returns the time layout and how often the shown text can change.
func (f ClockFormat) layout() (string, time.Duration) {
	switch f {
	case ClockSeconds:
		return "Mon Jan 02, 03:04:05 PM", time.Second
	case ClockSeconds24:
		return "Mon Jan 02, 15:04:05", time.Second
	case ClockMinutes24:
		return "Mon Jan 02, 15:04", time.Minute
	case ClockISO:
		return "2006-01-02T15:04:05", time.Second
	default:
		return "Mon Jan 02, 03:04 PM", time.Minute
	}
}

func formatNow(layout string) string {
	return time.Now().Format(layout)
}

// PanelClock renders the current time into its panel allocation.
type PanelClock struct {
	panel   *Panel
	widget  *toolkit.Widget
	timer   *toolkit.Timer
	format  string
	refresh time.Duration
}

func newPanelClock(p *Panel) *PanelClock {
	c := &PanelClock{panel: p}
	c.format, c.refresh = p.desktop.clockFormat.layout()
	c.widget = p.window.AddWidget()
	c.widget.SetRedrawHandler(c.redraw)
	c.timer = p.desktop.display.NewTimer(c.tick)
	c.arm()
	return c
}

// arm schedules the next tick just past the next boundary of the refresh
// interval, so a minutes clock updates right as the minute rolls over.
func (c *PanelClock) arm() {
	now := time.Now()
	next := now.Truncate(c.refresh).Add(c.refresh)
	c.timer.Arm(next.Sub(now)+10*time.Millisecond, 0)
}

func (c *PanelClock) tick() {
	c.widget.ScheduleRedraw()
	c.arm()
}

func (c *PanelClock) stop() {
	c.timer.Stop()
}

func (c *PanelClock) redraw(w *toolkit.Widget) {
	alloc := w.Allocation()
	if alloc.Width == 0 {
		return
	}
	text := time.Now().Format(c.format)
	style := tcell.StyleDefault.
		Background(toolkit.HexColor(c.panel.desktop.panelColor)).
		Foreground(tcell.ColorWhite)
	p := c.panel.window.Painter()
	x := alloc.X + (alloc.Width-toolkit.TextWidth(text))/2
	y := alloc.Y + alloc.Height/2
	p.Text(x, y, text, style)
}
