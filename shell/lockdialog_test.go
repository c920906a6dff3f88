// Copyright © 2025 Deskshell contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: shell/lockdialog_test.go
// Summary: Lock and unlock flow through the dialog.

package shell

import (
	"testing"

	"deskshell/toolkit"
)

func TestLockShowsDialogAndRegistersLockSurface(t *testing.T) {
	f := newFixture(t, testConfig())

	f.sim.RequestLock()
	f.display.DispatchPending()

	if !f.sim.Locked() {
		t.Fatal("lock request lost")
	}
	dialog := f.desktop.unlockDialog
	if dialog == nil {
		t.Fatal("no unlock dialog created")
	}
	w, h := dialog.window.Size()
	if w != unlockDialogWidth || h != unlockDialogHeight {
		t.Fatalf("dialog size = %dx%d, want %dx%d", w, h, unlockDialogWidth, unlockDialogHeight)
	}
}

func TestDoubleDismissSendsOneUnlock(t *testing.T) {
	f := newFixture(t, testConfig())

	f.sim.RequestLock()
	f.display.DispatchPending()

	dialog := f.desktop.unlockDialog
	dialog.dismiss()
	dialog.dismiss()
	f.display.DispatchPending()

	if f.sim.Locked() {
		t.Fatal("still locked after dismissal")
	}
	if got := f.sim.UnlockCount(); got != 1 {
		t.Fatalf("unlock count = %d, want 1", got)
	}
	if f.desktop.unlockDialog != nil {
		t.Fatal("dialog should be gone after finalize")
	}
}

func TestUnlockOnLeftButtonReleaseOnly(t *testing.T) {
	f := newFixture(t, testConfig())

	f.sim.RequestLock()
	f.display.DispatchPending()

	dialog := f.desktop.unlockDialog
	dialog.buttonRelease(dialog.button, toolkit.ButtonLeft, toolkit.ButtonPressed)
	f.display.DispatchPending()

	if !f.sim.Locked() {
		t.Fatal("press alone must not unlock")
	}

	dialog.buttonRelease(dialog.button, toolkit.ButtonLeft, toolkit.ButtonReleased)
	f.display.DispatchPending()

	if f.sim.Locked() {
		t.Fatal("still locked after button release")
	}
	if got := f.sim.UnlockCount(); got != 1 {
		t.Fatalf("unlock count = %d, want 1", got)
	}
}

func TestTouchUnlocksOnUpNotDown(t *testing.T) {
	f := newFixture(t, testConfig())

	f.sim.RequestLock()
	f.display.DispatchPending()

	dialog := f.desktop.unlockDialog
	dialog.button.TouchDown()
	f.display.DispatchPending()

	if !f.sim.Locked() {
		t.Fatal("touch-down alone must not unlock")
	}
	if !dialog.focused {
		t.Fatal("touch-down should focus the button")
	}

	dialog.button.TouchUp()
	f.display.DispatchPending()

	if f.sim.Locked() {
		t.Fatal("still locked after touch-up")
	}
	if got := f.sim.UnlockCount(); got != 1 {
		t.Fatalf("unlock count = %d, want 1", got)
	}
}

func TestRepeatedLockReusesDialog(t *testing.T) {
	f := newFixture(t, testConfig())

	f.sim.RequestLock()
	f.display.DispatchPending()
	first := f.desktop.unlockDialog

	f.sim.RequestLock()
	f.display.DispatchPending()

	if f.desktop.unlockDialog != first {
		t.Fatal("a second lock while the dialog is up should reuse it")
	}
}
