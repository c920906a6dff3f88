// Copyright © 2025 Deskshell contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: toolkit/timer.go
// Summary: Loop-thread timers built on time.AfterFunc.

package toolkit

import (
	"sync"
	"time"
)

// Timer fires a callback on the display loop thread. After the initial
// delay it re-arms itself at the repeat interval until stopped.
type Timer struct {
	display *Display
	fn      func()

	mu       sync.Mutex
	timer    *time.Timer
	interval time.Duration
	stopped  bool
}

// NewTimer creates an unarmed timer.
func (d *Display) NewTimer(fn func()) *Timer {
	return &Timer{display: d, fn: fn}
}

// Arm schedules the first fire after delay and subsequent fires every
// interval. An interval of zero makes the timer one-shot.
func (t *Timer) Arm(delay, interval time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.timer != nil {
		t.timer.Stop()
	}
	t.stopped = false
	t.interval = interval
	t.timer = time.AfterFunc(delay, t.fire)
}

func (t *Timer) fire() {
	t.display.Post(func() {
		t.mu.Lock()
		stopped := t.stopped
		interval := t.interval
		t.mu.Unlock()
		if stopped {
			return
		}
		t.fn()
		if interval > 0 {
			t.mu.Lock()
			if !t.stopped {
				t.timer = time.AfterFunc(interval, t.fire)
			}
			t.mu.Unlock()
		}
	})
}

// Stop cancels any pending fire. A callback already posted to the loop is
// discarded when it runs.
func (t *Timer) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopped = true
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
}
