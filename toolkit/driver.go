// Copyright © 2025 Deskshell contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: toolkit/driver.go
// Summary: Driver abstraction over the rendering surface plus the tcell
// implementation used by the real binary.

package toolkit

import "github.com/gdamore/tcell/v2"

// Driver abstracts the terminal surface the display composites onto. It
// mirrors the subset of tcell.Screen the toolkit needs so tests can swap in
// a stub implementation.
type Driver interface {
	Init() error
	Fini()
	Size() (int, int)
	SetStyle(style tcell.Style)
	HideCursor()
	Show()
	PollEvent() tcell.Event
	SetContent(x, y int, mainc rune, combc []rune, style tcell.Style)
}

// TcellDriver adapts a tcell.Screen to the Driver interface.
type TcellDriver struct {
	screen tcell.Screen
}

// NewTcellDriver wraps the provided screen.
func NewTcellDriver(screen tcell.Screen) *TcellDriver {
	return &TcellDriver{screen: screen}
}

func (d *TcellDriver) Init() error {
	return d.screen.Init()
}

func (d *TcellDriver) Fini() {
	d.screen.Fini()
}

func (d *TcellDriver) Size() (int, int) {
	return d.screen.Size()
}

func (d *TcellDriver) SetStyle(style tcell.Style) {
	d.screen.SetStyle(style)
}

func (d *TcellDriver) HideCursor() {
	d.screen.HideCursor()
}

func (d *TcellDriver) Show() {
	d.screen.Show()
}

func (d *TcellDriver) PollEvent() tcell.Event {
	return d.screen.PollEvent()
}

func (d *TcellDriver) SetContent(x, y int, mainc rune, combc []rune, style tcell.Style) {
	d.screen.SetContent(x, y, mainc, combc, style)
}

// Underlying exposes the wrapped screen for code paths that still need
// direct access, such as mouse enablement at startup.
func (d *TcellDriver) Underlying() tcell.Screen {
	return d.screen
}
