// Copyright © 2025 Deskshell contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: shell/desktop.go
// Summary: Desktop core: registry handling, readiness, lock flow, grab
// surface. Everything here runs on the display loop thread.

package shell

import (
	"github.com/gdamore/tcell/v2"
	log "github.com/sirupsen/logrus"

	"deskshell/compositor"
	"deskshell/config"
	"deskshell/toolkit"
)

// Surface is a shell surface the compositor sizes through configure events.
// A zero-by-zero configure marks the surface redundant; the surface must
// tear itself down.
type Surface interface {
	Configure(edges uint32, width, height int)
}

// Desktop ties the compositor connection, the toolkit display and the shell
// surfaces together.
type Desktop struct {
	display *toolkit.Display
	conn    compositor.Connection
	shell   compositor.Shell
	cfg     *config.Config
	spawner Spawner

	wantPanel     bool
	panelPosition compositor.PanelPosition
	clockFormat   ClockFormat
	panelColor    uint32
	locking       bool

	outputs  map[uint32]*Output
	surfaces map[uint32]Surface

	unlockDialog *UnlockDialog
	unlockTask   toolkit.Task

	grabWindow *toolkit.Window
	grabWidget *toolkit.Widget
	grabCursor toolkit.CursorKind

	ready bool
}

// New builds the desktop from configuration and registers it on the
// connection. Globals already announced are replayed through the display's
// posted queue, so the caller must run or drain the display loop afterwards.
func New(display *toolkit.Display, conn compositor.Connection, cfg *config.Config, spawner Spawner) *Desktop {
	d := &Desktop{
		display:    display,
		conn:       conn,
		cfg:        cfg,
		spawner:    spawner,
		wantPanel:  true,
		locking:    cfg.Shell.LockingEnabled(),
		outputs:    make(map[uint32]*Output),
		surfaces:   make(map[uint32]Surface),
		grabCursor: toolkit.CursorBlank,
	}
	d.unlockTask.Run = d.unlockFinish

	switch cfg.Shell.PanelPosition {
	case "top":
		d.panelPosition = compositor.PanelTop
	case "bottom":
		d.panelPosition = compositor.PanelBottom
	case "left":
		d.panelPosition = compositor.PanelLeft
	case "right":
		d.panelPosition = compositor.PanelRight
	case "none":
		d.wantPanel = false
	default:
		log.WithField("position", cfg.Shell.PanelPosition).Warn("shell: unknown panel position, disabling panel")
		d.wantPanel = false
	}

	d.clockFormat = parseClockFormat(cfg.Shell.ClockFormat)

	color, err := config.ParseColor(cfg.Shell.PanelColor)
	if err != nil {
		log.WithError(err).Warn("shell: bad panel color")
	}
	d.panelColor = color

	conn.SetGlobalHandler(d)
	return d
}

// GlobalAdded implements compositor.GlobalHandler.
func (d *Desktop) GlobalAdded(name uint32, iface string, version uint32) {
	switch iface {
	case compositor.InterfaceOutput:
		out := newOutput(d, name)
		d.outputs[name] = out
		// Outputs seen before the shell global stay pending until it
		// arrives.
		if d.shell != nil {
			out.init()
		}
	case compositor.InterfaceShell:
		d.shell = d.conn.BindShell(name, (*shellEvents)(d))
		d.shell.SetPanelPosition(d.panelPosition)
		for _, out := range d.outputs {
			if !out.initialized {
				out.init()
			}
		}
		d.createGrabSurface()
	}
}

// GlobalRemoved implements compositor.GlobalHandler. Removing an output
// tries to hand its surfaces to a clone before destroying it.
func (d *Desktop) GlobalRemoved(name uint32) {
	out, ok := d.outputs[name]
	if !ok {
		return
	}
	d.removeOutput(out)
}

// removeOutput destroys out, first transferring its background and panel to
// a clone when one exists. Clones are matched by position alone; sizes are
// assumed to agree.
func (d *Desktop) removeOutput(out *Output) {
	delete(d.outputs, out.name)

	if out.background == nil {
		out.destroy()
		return
	}

	var clone *Output
	for _, cur := range d.outputs {
		if cur.x == out.x && cur.y == out.y {
			clone = cur
			break
		}
	}

	if clone != nil {
		if clone.background == nil {
			clone.background = out.background
			out.background = nil
			clone.background.ownerID = clone.name
		}
		if clone.panel == nil {
			clone.panel = out.panel
			out.panel = nil
			if clone.panel != nil {
				clone.panel.ownerID = clone.name
			}
		}
	}

	out.destroy()
}

// outputFor resolves a surface's owner output, or nil after the owner was
// unplugged.
func (d *Desktop) outputFor(name uint32) *Output {
	return d.outputs[name]
}

// checkReady fires the readiness signal once every panel and background has
// painted its first frame. Outputs hot-plugged afterwards never re-fire it.
func (d *Desktop) checkReady() {
	if d.ready || d.shell == nil {
		return
	}
	// Only surfaces that exist hold the barrier; an output whose panel or
	// background was torn down (or not yet created) is vacuously painted.
	for _, out := range d.outputs {
		if out.panel != nil && !out.panel.painted {
			return
		}
		if out.background != nil && !out.background.painted {
			return
		}
	}
	d.ready = true
	d.shell.DesktopReady()
	log.Info("shell: desktop ready")
}

// createGrabSurface registers the 1x1 surface the compositor routes grab
// input through. Its only job is to answer pointer enters with the cursor
// the compositor asked for.
func (d *Desktop) createGrabSurface() {
	d.grabWindow = d.display.NewWindow("grab surface")
	d.grabWindow.SetPosition(0, 0)
	d.grabWindow.ScheduleResize(1, 1)
	d.grabWidget = d.grabWindow.AddWidget()
	d.grabWidget.SetAllocation(0, 0, 1, 1)
	d.grabWidget.SetEnterHandler(func(_ *toolkit.Widget, _, _ int) toolkit.CursorKind {
		return d.grabCursor
	})
	d.shell.SetGrabSurface(d.grabWindow.ID())
}

// HandleKey routes terminal keys the shell cares about. Returns true when
// the key was consumed.
func (d *Desktop) HandleKey(ev *tcell.EventKey) bool {
	if d.unlockDialog != nil && (ev.Key() == tcell.KeyEnter || ev.Key() == tcell.KeyEscape) {
		d.unlockDialog.dismiss()
		return true
	}
	return false
}

// unlockFinish runs as the deferred unlock task: one Unlock request, then
// the dialog goes away.
func (d *Desktop) unlockFinish() {
	d.shell.Unlock()
	if d.unlockDialog != nil {
		d.unlockDialog.destroy()
		d.unlockDialog = nil
	}
}

// shellEvents receives desktop_shell events on behalf of the desktop. It is
// a separate type so the event names don't collide with Desktop's API.
type shellEvents Desktop

func (e *shellEvents) desktop() *Desktop { return (*Desktop)(e) }

func (e *shellEvents) Configure(edges uint32, surfaceID uint32, width, height int) {
	d := e.desktop()
	if s, ok := d.surfaces[surfaceID]; ok {
		s.Configure(edges, width, height)
	}
}

func (e *shellEvents) PrepareLockSurface() {
	d := e.desktop()
	if !d.locking {
		d.shell.Unlock()
		return
	}
	if d.unlockDialog == nil {
		d.unlockDialog = newUnlockDialog(d)
	}
	d.shell.SetLockSurface(d.unlockDialog.window.ID())
}

func (e *shellEvents) GrabCursor(cursor compositor.Cursor) {
	d := e.desktop()
	d.grabCursor = grabCursorKind(cursor)
}

// grabCursorKind maps the compositor's grab cursor to a toolkit cursor.
func grabCursorKind(cursor compositor.Cursor) toolkit.CursorKind {
	switch cursor {
	case compositor.CursorNone:
		return toolkit.CursorBlank
	case compositor.CursorBusy:
		return toolkit.CursorWatch
	case compositor.CursorMove:
		return toolkit.CursorDragging
	case compositor.CursorResizeTop:
		return toolkit.CursorTop
	case compositor.CursorResizeBottom:
		return toolkit.CursorBottom
	case compositor.CursorResizeLeft:
		return toolkit.CursorLeft
	case compositor.CursorResizeRight:
		return toolkit.CursorRight
	case compositor.CursorResizeTopLeft:
		return toolkit.CursorTopLeft
	case compositor.CursorResizeTopRight:
		return toolkit.CursorTopRight
	case compositor.CursorResizeBottomLeft:
		return toolkit.CursorBottomLeft
	case compositor.CursorResizeBottomRight:
		return toolkit.CursorBottomRight
	case compositor.CursorArrow:
		fallthrough
	default:
		return toolkit.CursorLeftPtr
	}
}
