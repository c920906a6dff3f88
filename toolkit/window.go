// Copyright © 2025 Deskshell contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: toolkit/window.go
// Summary: Windows and widgets: allocation, handler registration, repaint.

package toolkit

// Window is a top-level drawable surface. Its position and stacking are
// decided by the compositor side; the window itself only knows its size and
// the widgets painted into it.
type Window struct {
	display *Display
	id      uint32
	title   string

	x, y          int
	width, height int
	zorder        int
	hidden        bool

	transform int
	scale     int

	widgets []*Widget
	buf     [][]Cell

	keyboardFocusHandler func(*Window)
}

// NewWindow creates an empty window and adds it to the display stack.
func (d *Display) NewWindow(title string) *Window {
	d.nextWindowID++
	win := &Window{
		display: d,
		id:      d.nextWindowID,
		title:   title,
		scale:   1,
	}
	d.windows = append(d.windows, win)
	return win
}

// ID returns the display-unique surface id used when handing the window to
// the compositor.
func (w *Window) ID() uint32 {
	return w.id
}

func (w *Window) Title() string {
	return w.title
}

func (w *Window) Size() (int, int) {
	return w.width, w.height
}

// SetPosition places the window on the driver surface.
func (w *Window) SetPosition(x, y int) {
	w.x, w.y = x, y
	w.display.ScheduleRedraw()
}

// SetZOrder controls stacking; higher draws on top.
func (w *Window) SetZOrder(z int) {
	w.zorder = z
	w.display.ScheduleRedraw()
}

func (w *Window) SetHidden(hidden bool) {
	w.hidden = hidden
	w.display.ScheduleRedraw()
}

// SetBufferTransform records the output transform. The terminal rendition
// has nothing to rotate, but the bookkeeping mirrors the compositor state.
func (w *Window) SetBufferTransform(transform int) {
	w.transform = transform
}

// SetBufferScale records the output scale factor.
func (w *Window) SetBufferScale(scale int) {
	w.scale = scale
}

func (w *Window) SetKeyboardFocusHandler(fn func(*Window)) {
	w.keyboardFocusHandler = fn
}

// AddWidget appends a widget to the window. Widgets added later hit-test
// first and paint last.
func (w *Window) AddWidget() *Widget {
	widget := &Widget{window: w}
	w.widgets = append(w.widgets, widget)
	return widget
}

// ScheduleResize applies the new size, reallocates the cell buffer, runs
// every widget's resize handler and schedules a repaint. The repaint itself
// happens on a later draw pass, not synchronously.
func (w *Window) ScheduleResize(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	w.width, w.height = width, height
	w.buf = make([][]Cell, height)
	for i := range w.buf {
		w.buf[i] = make([]Cell, width)
	}
	for _, widget := range w.widgets {
		if widget.resize != nil {
			widget.resize(widget, width, height)
		}
	}
	w.ScheduleRedraw()
}

// ScheduleRedraw marks the window for repaint on the next draw pass.
func (w *Window) ScheduleRedraw() {
	w.display.ScheduleRedraw()
}

// Painter returns a painter over the window's current buffer.
func (w *Window) Painter() *Painter {
	return newPainter(w.buf)
}

// Destroy removes the window and its widgets from the display.
func (w *Window) Destroy() {
	w.widgets = nil
	w.display.removeWindow(w)
}

// repaint runs the widget redraw handlers in order added.
func (w *Window) repaint() {
	for _, widget := range w.widgets {
		if widget.redraw != nil {
			widget.redraw(widget)
		}
	}
}

// Widget is a rectangular region of a window with its own input handlers.
type Widget struct {
	window *Window
	alloc  Rect

	redraw    func(*Widget)
	resize    func(*Widget, int, int)
	enter     func(*Widget, int, int) CursorKind
	leave     func(*Widget)
	button    func(*Widget, Button, ButtonState)
	touchDown func(*Widget)
	touchUp   func(*Widget)

	tooltip string

	viewportWidth  int
	viewportHeight int
}

func (wd *Widget) Window() *Window {
	return wd.window
}

func (wd *Widget) SetAllocation(x, y, width, height int) {
	wd.alloc = Rect{X: x, Y: y, Width: width, Height: height}
}

func (wd *Widget) Allocation() Rect {
	return wd.alloc
}

func (wd *Widget) SetRedrawHandler(fn func(*Widget)) { wd.redraw = fn }

func (wd *Widget) SetResizeHandler(fn func(*Widget, int, int)) { wd.resize = fn }

func (wd *Widget) SetEnterHandler(fn func(*Widget, int, int) CursorKind) { wd.enter = fn }

func (wd *Widget) SetLeaveHandler(fn func(*Widget)) { wd.leave = fn }

func (wd *Widget) SetButtonHandler(fn func(*Widget, Button, ButtonState)) { wd.button = fn }

func (wd *Widget) SetTouchDownHandler(fn func(*Widget)) { wd.touchDown = fn }

func (wd *Widget) SetTouchUpHandler(fn func(*Widget)) { wd.touchUp = fn }

// TouchDown delivers a touch-down to the widget's handler. Terminals have no
// touch devices; this entry point serves alternate drivers and tests.
func (wd *Widget) TouchDown() {
	if wd.touchDown != nil {
		wd.touchDown(wd)
	}
}

// TouchUp delivers a touch-up to the widget's handler.
func (wd *Widget) TouchUp() {
	if wd.touchUp != nil {
		wd.touchUp(wd)
	}
}

func (wd *Widget) ScheduleRedraw() {
	wd.window.ScheduleRedraw()
}

func (wd *Widget) SetTooltip(text string) {
	wd.tooltip = text
}

func (wd *Widget) ClearTooltip() {
	wd.tooltip = ""
}

func (wd *Widget) Tooltip() string {
	return wd.tooltip
}

// SetViewportDestination asks the output to scale the widget's buffer to the
// given size. Surfaces that paint a solid color render a 1x1 buffer and let
// the viewport stretch it.
func (wd *Widget) SetViewportDestination(width, height int) {
	wd.viewportWidth = width
	wd.viewportHeight = height
}

// ViewportDestination returns the requested scaled size, or zeros when no
// viewport is set.
func (wd *Widget) ViewportDestination() (int, int) {
	return wd.viewportWidth, wd.viewportHeight
}
