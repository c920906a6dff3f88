// Copyright © 2025 Deskshell contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: toolkit/cell.go
// Summary: Cell buffers, rectangles and the Painter used by redraw handlers.

package toolkit

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// Cell is one drawable character cell.
type Cell struct {
	Ch    rune
	Style tcell.Style
}

// Rect is an allocation in window-local cell coordinates.
type Rect struct {
	X, Y, Width, Height int
}

// Contains reports whether the point lies inside the rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// HexColor converts a 0xAARRGGBB shell color to a tcell color. The alpha
// channel has no terminal equivalent and is dropped.
func HexColor(argb uint32) tcell.Color {
	return tcell.NewRGBColor(
		int32((argb>>16)&0xff),
		int32((argb>>8)&0xff),
		int32(argb&0xff),
	)
}

// Painter draws into a window's cell buffer. Redraw handlers obtain one from
// Window.Painter and never touch the driver directly.
type Painter struct {
	buf    [][]Cell
	width  int
	height int
}

func newPainter(buf [][]Cell) *Painter {
	p := &Painter{buf: buf}
	p.height = len(buf)
	if p.height > 0 {
		p.width = len(buf[0])
	}
	return p
}

func (p *Painter) Size() (int, int) {
	return p.width, p.height
}

// Fill paints the rectangle with spaces in the given style.
func (p *Painter) Fill(r Rect, style tcell.Style) {
	p.FillRune(r, ' ', style)
}

// FillRune paints the rectangle with the given rune.
func (p *Painter) FillRune(r Rect, ch rune, style tcell.Style) {
	for y := r.Y; y < r.Y+r.Height; y++ {
		if y < 0 || y >= p.height {
			continue
		}
		for x := r.X; x < r.X+r.Width; x++ {
			if x < 0 || x >= p.width {
				continue
			}
			p.buf[y][x] = Cell{Ch: ch, Style: style}
		}
	}
}

// Text draws a string starting at (x, y), advancing by display width so wide
// runes occupy two cells.
func (p *Painter) Text(x, y int, s string, style tcell.Style) {
	if y < 0 || y >= p.height {
		return
	}
	for _, ch := range s {
		w := runewidth.RuneWidth(ch)
		if w == 0 {
			continue
		}
		if x >= 0 && x < p.width {
			p.buf[y][x] = Cell{Ch: ch, Style: style}
		}
		if w == 2 && x+1 >= 0 && x+1 < p.width {
			p.buf[y][x+1] = Cell{Ch: ' ', Style: style}
		}
		x += w
	}
}

// TextWidth returns the display width of s in cells.
func TextWidth(s string) int {
	return runewidth.StringWidth(s)
}
