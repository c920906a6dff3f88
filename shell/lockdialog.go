// Copyright © 2025 Deskshell contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: shell/lockdialog.go
// Summary: The unlock dialog shown while the compositor holds a lock.

package shell

import (
	"github.com/gdamore/tcell/v2"

	"deskshell/toolkit"
)

const (
	unlockDialogWidth  = 260
	unlockDialogHeight = 230

	unlockButtonWidth  = 60
	unlockButtonHeight = 20
)

// UnlockDialog asks the user to confirm before the desktop unlocks.
// Dismissal is latched: however many times the button fires, the deferred
// finalize runs once and sends one unlock request.
type UnlockDialog struct {
	desktop *Desktop
	window  *toolkit.Window
	button  *toolkit.Widget

	closing bool
	focused bool
}

func newUnlockDialog(d *Desktop) *UnlockDialog {
	ud := &UnlockDialog{desktop: d}
	ud.window = d.display.NewWindow("unlock dialog")
	ud.window.SetZOrder(10)
	ud.window.SetKeyboardFocusHandler(func(*toolkit.Window) {
		ud.window.ScheduleRedraw()
	})

	bg := ud.window.AddWidget()
	bg.SetRedrawHandler(ud.redraw)
	bg.SetResizeHandler(ud.resize)

	ud.button = ud.window.AddWidget()
	ud.button.SetEnterHandler(ud.buttonEnter)
	ud.button.SetLeaveHandler(ud.buttonLeave)
	ud.button.SetButtonHandler(ud.buttonRelease)
	ud.button.SetTouchDownHandler(ud.touchDown)
	ud.button.SetTouchUpHandler(ud.touchUp)

	ud.window.ScheduleResize(unlockDialogWidth, unlockDialogHeight)
	ud.center()

	d.surfaces[ud.window.ID()] = ud
	return ud
}

// Configure implements Surface. The compositor only configures the lock
// surface to reject it as redundant.
func (ud *UnlockDialog) Configure(edges uint32, width, height int) {
	if width < 1 || height < 1 {
		d := ud.desktop
		ud.destroy()
		if d.unlockDialog == ud {
			d.unlockDialog = nil
		}
		return
	}
	ud.window.ScheduleResize(width, height)
	ud.center()
}

func (ud *UnlockDialog) center() {
	dw, dh := ud.desktop.display.Size()
	w, h := ud.window.Size()
	ud.window.SetPosition((dw-w)/2, (dh-h)/2)
}

func (ud *UnlockDialog) resize(bg *toolkit.Widget, width, height int) {
	bg.SetAllocation(0, 0, width, height)
	ud.button.SetAllocation(width/2-unlockButtonWidth/2, height/2-unlockButtonHeight/2,
		unlockButtonWidth, unlockButtonHeight)
}

// dismiss latches the dialog closed and queues the single finalize task.
func (ud *UnlockDialog) dismiss() {
	if ud.closing {
		return
	}
	ud.closing = true
	ud.window.ScheduleRedraw()
	ud.desktop.display.Defer(&ud.desktop.unlockTask)
}

func (ud *UnlockDialog) buttonEnter(_ *toolkit.Widget, _, _ int) toolkit.CursorKind {
	ud.focused = true
	ud.window.ScheduleRedraw()
	return toolkit.CursorLeftPtr
}

func (ud *UnlockDialog) buttonLeave(_ *toolkit.Widget) {
	ud.focused = false
	ud.window.ScheduleRedraw()
}

func (ud *UnlockDialog) buttonRelease(_ *toolkit.Widget, button toolkit.Button, state toolkit.ButtonState) {
	if button == toolkit.ButtonLeft && state == toolkit.ButtonReleased {
		ud.dismiss()
	}
}

func (ud *UnlockDialog) touchDown(_ *toolkit.Widget) {
	ud.focused = true
	ud.window.ScheduleRedraw()
}

func (ud *UnlockDialog) touchUp(_ *toolkit.Widget) {
	ud.focused = false
	ud.window.ScheduleRedraw()
	ud.dismiss()
}

func (ud *UnlockDialog) redraw(_ *toolkit.Widget) {
	p := ud.window.Painter()
	w, h := p.Size()

	frame := tcell.StyleDefault.Background(tcell.ColorDarkSlateGray).Foreground(tcell.ColorWhite)
	p.Fill(toolkit.Rect{X: 0, Y: 0, Width: w, Height: h}, frame)

	title := "Desktop locked"
	p.Text((w-toolkit.TextWidth(title))/2, h/4, title, frame)

	btn := frame
	if ud.focused || ud.closing {
		btn = btn.Reverse(true)
	}
	alloc := ud.button.Allocation()
	p.Fill(alloc, btn)
	label := "Unlock"
	p.Text(alloc.X+(alloc.Width-toolkit.TextWidth(label))/2, alloc.Y+alloc.Height/2, label, btn)
}

func (ud *UnlockDialog) destroy() {
	delete(ud.desktop.surfaces, ud.window.ID())
	ud.window.Destroy()
}
