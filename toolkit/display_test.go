// Copyright © 2025 Deskshell contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: toolkit/display_test.go
// Summary: Display loop plumbing: deferred tasks, posting, compositing.

package toolkit

import (
	"testing"

	"github.com/gdamore/tcell/v2"
)

type stubDriver struct {
	width, height int
	initCalled    bool
	finiCalled    bool
	showCount     int
	content       map[[2]int]Cell
}

func (s *stubDriver) Init() error {
	s.initCalled = true
	return nil
}

func (s *stubDriver) Fini() { s.finiCalled = true }

func (s *stubDriver) Size() (int, int) {
	if s.width == 0 {
		s.width = 80
		s.height = 24
	}
	return s.width, s.height
}

func (s *stubDriver) SetStyle(tcell.Style) {}

func (s *stubDriver) HideCursor() {}

func (s *stubDriver) Show() { s.showCount++ }

func (s *stubDriver) PollEvent() tcell.Event { return nil }

func (s *stubDriver) SetContent(x, y int, mainc rune, _ []rune, style tcell.Style) {
	if s.content == nil {
		s.content = make(map[[2]int]Cell)
	}
	s.content[[2]int{x, y}] = Cell{Ch: mainc, Style: style}
}

func newTestDisplay(t *testing.T) (*Display, *stubDriver) {
	t.Helper()
	driver := &stubDriver{}
	d, err := NewDisplay(driver)
	if err != nil {
		t.Fatalf("NewDisplay: %v", err)
	}
	if !driver.initCalled {
		t.Fatal("driver was not initialized")
	}
	return d, driver
}

func TestDeferredTaskRunsOnDispatch(t *testing.T) {
	d, _ := newTestDisplay(t)

	runs := 0
	task := &Task{Run: func() { runs++ }}
	d.Defer(task)
	if runs != 0 {
		t.Fatal("task ran before dispatch")
	}

	d.DispatchPending()
	if runs != 1 {
		t.Fatalf("task ran %d times, want 1", runs)
	}

	d.DispatchPending()
	if runs != 1 {
		t.Fatal("task ran again without being re-queued")
	}
}

func TestDeferQueuedTwiceRunsTwice(t *testing.T) {
	d, _ := newTestDisplay(t)

	runs := 0
	task := &Task{Run: func() { runs++ }}
	d.Defer(task)
	d.Defer(task)
	d.DispatchPending()

	if runs != 2 {
		t.Fatalf("task ran %d times, want 2; callers latch for once-only", runs)
	}
}

func TestPostedCallbackDrained(t *testing.T) {
	d, _ := newTestDisplay(t)

	ran := false
	d.Post(func() { ran = true })
	d.DispatchPending()
	if !ran {
		t.Fatal("posted callback not drained")
	}
}

func TestResizeRunsWidgetResizeHandlers(t *testing.T) {
	d, _ := newTestDisplay(t)

	win := d.NewWindow("w")
	var gotW, gotH int
	widget := win.AddWidget()
	widget.SetResizeHandler(func(_ *Widget, w, h int) {
		gotW, gotH = w, h
	})

	win.ScheduleResize(10, 5)
	if gotW != 10 || gotH != 5 {
		t.Fatalf("resize handler saw %dx%d, want 10x5", gotW, gotH)
	}
}

func TestDrawCompositesByZOrder(t *testing.T) {
	d, driver := newTestDisplay(t)

	paint := func(win *Window, ch rune) {
		win.AddWidget().SetRedrawHandler(func(*Widget) {
			w, h := win.Size()
			win.Painter().FillRune(Rect{Width: w, Height: h}, ch, tcell.StyleDefault)
		})
	}

	bottom := d.NewWindow("bottom")
	bottom.SetZOrder(0)
	bottom.ScheduleResize(2, 1)
	paint(bottom, 'b')

	top := d.NewWindow("top")
	top.SetZOrder(5)
	top.ScheduleResize(1, 1)
	paint(top, 't')

	d.DispatchPending()

	if got := driver.content[[2]int{0, 0}].Ch; got != 't' {
		t.Fatalf("cell (0,0) = %q, want top window's %q", got, 't')
	}
	if got := driver.content[[2]int{1, 0}].Ch; got != 'b' {
		t.Fatalf("cell (1,0) = %q, want bottom window's %q", got, 'b')
	}
}

func TestHiddenWindowSkipped(t *testing.T) {
	d, driver := newTestDisplay(t)

	win := d.NewWindow("w")
	win.ScheduleResize(1, 1)
	win.AddWidget().SetRedrawHandler(func(*Widget) {
		win.Painter().FillRune(Rect{Width: 1, Height: 1}, 'x', tcell.StyleDefault)
	})
	win.SetHidden(true)
	d.DispatchPending()

	if _, ok := driver.content[[2]int{0, 0}]; ok {
		t.Fatal("hidden window was drawn")
	}
}

func TestDestroyedWindowLeavesStack(t *testing.T) {
	d, _ := newTestDisplay(t)

	win := d.NewWindow("w")
	win.ScheduleResize(1, 1)
	if len(d.windows) != 1 {
		t.Fatalf("window count = %d", len(d.windows))
	}
	win.Destroy()
	if len(d.windows) != 0 {
		t.Fatalf("window count after destroy = %d", len(d.windows))
	}
}
