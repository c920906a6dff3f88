// Copyright © 2025 Deskshell contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: toolkit/display.go
// Summary: Single-threaded display event loop with deferred one-shot tasks.
// Usage: Everything that mutates shell state runs on this loop.

package toolkit

import (
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	log "github.com/sirupsen/logrus"
)

// CursorKind identifies the pointer image a widget requests on enter.
type CursorKind int

const (
	CursorBlank CursorKind = iota
	CursorLeftPtr
	CursorWatch
	CursorDragging
	CursorTop
	CursorBottom
	CursorLeft
	CursorRight
	CursorTopLeft
	CursorTopRight
	CursorBottomLeft
	CursorBottomRight
)

// ButtonState reports whether a pointer button went down or up.
type ButtonState int

const (
	ButtonPressed ButtonState = iota
	ButtonReleased
)

// Button identifies a pointer button.
type Button int

const (
	ButtonLeft Button = iota
	ButtonMiddle
	ButtonRight
)

// Task is a deferred one-shot callback. It runs on the loop thread on the
// iteration after it was queued, never from within the handler that queued
// it.
type Task struct {
	Run func()
}

// Display owns the driver, the window stack and the event loop. All windows,
// widgets and deferred tasks must be touched from the loop thread only;
// Post is the one thread-safe entry point.
type Display struct {
	driver  Driver
	windows []*Window

	quit      chan struct{}
	closeOnce sync.Once
	posted    chan func()

	deferMu  sync.Mutex
	deferred []*Task

	nextWindowID uint32
	needsDraw    bool

	resizeHandler func(width, height int)
	keyHandler    func(ev *tcell.EventKey)

	pointerWindow *Window
	pointerWidget *Widget
	buttonsDown   tcell.ButtonMask
	cursor        CursorKind
}

// NewDisplay initializes the driver and returns a ready display. A failed
// driver init is fatal to the caller; nothing works without the surface.
func NewDisplay(driver Driver) (*Display, error) {
	if err := driver.Init(); err != nil {
		return nil, err
	}
	driver.SetStyle(tcell.StyleDefault)
	driver.HideCursor()

	return &Display{
		driver: driver,
		quit:   make(chan struct{}),
		posted: make(chan func(), 64),
		cursor: CursorLeftPtr,
	}, nil
}

func (d *Display) Size() (int, int) {
	return d.driver.Size()
}

// SetResizeHandler registers the callback invoked when the driver surface
// changes size.
func (d *Display) SetResizeHandler(fn func(width, height int)) {
	d.resizeHandler = fn
}

// SetKeyHandler registers the callback for key events not consumed by the
// toolkit itself.
func (d *Display) SetKeyHandler(fn func(ev *tcell.EventKey)) {
	d.keyHandler = fn
}

// Defer queues a task to run on the next loop iteration. Queuing the same
// task twice runs it twice; callers that need once-only semantics guard with
// their own latch.
func (d *Display) Defer(task *Task) {
	d.deferMu.Lock()
	d.deferred = append(d.deferred, task)
	d.deferMu.Unlock()
}

// Post marshals fn onto the loop thread. Safe to call from any goroutine.
func (d *Display) Post(fn func()) {
	select {
	case d.posted <- fn:
	case <-d.quit:
	}
}

// ScheduleRedraw marks the display dirty; the loop repaints at the end of
// the current iteration.
func (d *Display) ScheduleRedraw() {
	d.needsDraw = true
}

// Run dispatches driver events, posted callbacks and deferred tasks until
// Terminate is called.
func (d *Display) Run() error {
	events := make(chan tcell.Event, 16)
	go func() {
		for {
			select {
			case <-d.quit:
				return
			default:
				ev := d.driver.PollEvent()
				if ev == nil {
					return
				}
				events <- ev
			}
		}
	}()

	ticker := time.NewTicker(16 * time.Millisecond)
	defer ticker.Stop()

	for {
		d.runDeferred()

		if d.needsDraw {
			d.draw()
			d.needsDraw = false
		}

		select {
		case ev := <-events:
			d.handleEvent(ev)
		case fn := <-d.posted:
			fn()
		case <-ticker.C:
		case <-d.quit:
			return nil
		}
	}
}

// DispatchPending drains posted callbacks, runs queued deferred tasks and
// flushes any pending draw without entering the loop. It exists to support
// tests and the simulator harness; production code goes through Run.
func (d *Display) DispatchPending() {
	for {
		select {
		case fn := <-d.posted:
			fn()
			continue
		default:
		}
		d.deferMu.Lock()
		pending := len(d.deferred) > 0
		d.deferMu.Unlock()
		if !pending {
			break
		}
		d.runDeferred()
	}
	if d.needsDraw {
		d.draw()
		d.needsDraw = false
	}
}

func (d *Display) runDeferred() {
	d.deferMu.Lock()
	tasks := d.deferred
	d.deferred = nil
	d.deferMu.Unlock()
	for _, task := range tasks {
		task.Run()
	}
}

// Cursor returns the kind most recently requested by a widget enter
// handler.
func (d *Display) Cursor() CursorKind {
	return d.cursor
}

// Terminate stops the event loop. Safe to call from any goroutine.
func (d *Display) Terminate() {
	d.closeOnce.Do(func() {
		close(d.quit)
	})
}

// Close terminates the loop and releases the driver.
func (d *Display) Close() {
	d.Terminate()
	d.driver.Fini()
}

func (d *Display) handleEvent(ev tcell.Event) {
	switch tev := ev.(type) {
	case *tcell.EventResize:
		w, h := tev.Size()
		log.WithFields(log.Fields{"width": w, "height": h}).Debug("display resized")
		if d.resizeHandler != nil {
			d.resizeHandler(w, h)
		}
		d.needsDraw = true
	case *tcell.EventMouse:
		x, y := tev.Position()
		d.routePointer(x, y, tev.Buttons())
	case *tcell.EventKey:
		if d.keyHandler != nil {
			d.keyHandler(tev)
		}
	}
}

// routePointer delivers enter/leave and button events to the widget under
// the pointer, topmost window first.
func (d *Display) routePointer(x, y int, buttons tcell.ButtonMask) {
	win, widget := d.widgetAt(x, y)

	if widget != d.pointerWidget {
		if d.pointerWidget != nil && d.pointerWidget.leave != nil {
			d.pointerWidget.leave(d.pointerWidget)
		}
		d.pointerWindow = win
		d.pointerWidget = widget
		if widget != nil && widget.enter != nil {
			lx, ly := x-win.x, y-win.y
			d.cursor = widget.enter(widget, lx, ly)
		}
	}

	pressed := buttons&tcell.Button1 != 0 && d.buttonsDown&tcell.Button1 == 0
	released := buttons&tcell.Button1 == 0 && d.buttonsDown&tcell.Button1 != 0
	d.buttonsDown = buttons

	if widget == nil || widget.button == nil {
		return
	}
	if pressed {
		widget.button(widget, ButtonLeft, ButtonPressed)
	}
	if released {
		widget.button(widget, ButtonLeft, ButtonReleased)
	}
}

func (d *Display) widgetAt(x, y int) (*Window, *Widget) {
	var best *Window
	for _, win := range d.windows {
		if win.hidden {
			continue
		}
		if x < win.x || x >= win.x+win.width || y < win.y || y >= win.y+win.height {
			continue
		}
		if best == nil || win.zorder >= best.zorder {
			best = win
		}
	}
	if best == nil {
		return nil, nil
	}
	lx, ly := x-best.x, y-best.y
	for i := len(best.widgets) - 1; i >= 0; i-- {
		w := best.widgets[i]
		if w.alloc.Contains(lx, ly) {
			return best, w
		}
	}
	return best, nil
}

// draw composites all windows onto the driver in z order.
func (d *Display) draw() {
	ordered := make([]*Window, 0, len(d.windows))
	ordered = append(ordered, d.windows...)
	for i := 1; i < len(ordered); i++ {
		for j := i; j > 0 && ordered[j-1].zorder > ordered[j].zorder; j-- {
			ordered[j-1], ordered[j] = ordered[j], ordered[j-1]
		}
	}

	for _, win := range ordered {
		if win.hidden {
			continue
		}
		win.repaint()
		for y, row := range win.buf {
			for x, cell := range row {
				if cell.Ch == 0 {
					continue
				}
				d.driver.SetContent(win.x+x, win.y+y, cell.Ch, nil, cell.Style)
			}
		}
	}
	d.driver.Show()
}

func (d *Display) removeWindow(win *Window) {
	for i, w := range d.windows {
		if w == win {
			d.windows = append(d.windows[:i], d.windows[i+1:]...)
			break
		}
	}
	if d.pointerWindow == win {
		d.pointerWindow = nil
		d.pointerWidget = nil
	}
	d.needsDraw = true
}
