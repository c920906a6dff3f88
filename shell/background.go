// Copyright © 2025 Deskshell contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: shell/background.go
// Summary: Per-output background surface.

package shell

import (
	"github.com/gdamore/tcell/v2"
	log "github.com/sirupsen/logrus"

	"deskshell/config"
	"deskshell/toolkit"
)

// BackgroundType controls how a wallpaper is fitted to the output. Invalid
// falls back to painting the solid color only.
type BackgroundType int

const (
	BackgroundInvalid BackgroundType = iota
	BackgroundScale
	BackgroundScaleCrop
	BackgroundTile
	BackgroundCentered
)

func parseBackgroundType(s string) BackgroundType {
	switch s {
	case "", "tile":
		return BackgroundTile
	case "scale":
		return BackgroundScale
	case "scale-crop":
		return BackgroundScaleCrop
	case "centered":
		return BackgroundCentered
	default:
		log.WithField("type", s).Warn("shell: invalid background type")
		return BackgroundInvalid
	}
}

// Painted when neither an image nor a color is configured.
const defaultBackgroundColor = 0xff000033

// Background covers one output behind everything else.
type Background struct {
	desktop *Desktop
	ownerID uint32

	window *toolkit.Window
	widget *toolkit.Widget

	color  uint32
	image  string
	fit    BackgroundType

	painted bool
}

func newBackground(d *Desktop, ownerID uint32) *Background {
	b := &Background{desktop: d, ownerID: ownerID}
	b.image = d.cfg.Shell.BackgroundImage
	b.fit = parseBackgroundType(d.cfg.Shell.BackgroundType)

	color, err := config.ParseColor(d.cfg.Shell.BackgroundColor)
	if err != nil {
		log.WithError(err).Warn("shell: bad background color")
	}
	b.color = color

	b.window = d.display.NewWindow("background")
	b.window.SetZOrder(0)
	b.widget = b.window.AddWidget()
	b.widget.SetRedrawHandler(b.redraw)
	b.widget.SetResizeHandler(func(w *toolkit.Widget, width, height int) {
		w.SetAllocation(0, 0, width, height)
	})
	return b
}

// Configure implements Surface. A solid color needs only one painted cell;
// the viewport stretches it to the proposed size.
func (b *Background) Configure(edges uint32, width, height int) {
	if width < 1 || height < 1 {
		b.redundant()
		return
	}
	if b.image == "" && b.color != 0 {
		b.widget.SetViewportDestination(width, height)
		b.window.ScheduleResize(1, 1)
	} else {
		b.window.ScheduleResize(width, height)
	}
	b.reposition()
}

func (b *Background) reposition() {
	out := b.desktop.outputFor(b.ownerID)
	if out == nil {
		return
	}
	b.window.SetPosition(out.x, out.y)
}

func (b *Background) redraw(_ *toolkit.Widget) {
	painter := b.window.Painter()
	width, height := painter.Size()

	color := b.color
	if b.image == "" && color == 0 {
		color = defaultBackgroundColor
	}
	base := tcell.StyleDefault.Background(toolkit.HexColor(color))
	painter.Fill(toolkit.Rect{X: 0, Y: 0, Width: width, Height: height}, base)

	if b.image != "" && b.fit != BackgroundInvalid {
		b.paintWallpaper(painter, width, height, base)
	}

	if !b.painted {
		b.painted = true
		b.desktop.checkReady()
	}
}

// paintWallpaper stands in for the configured image with a shaded texture
// laid out according to the fit mode.
func (b *Background) paintWallpaper(p *toolkit.Painter, width, height int, base tcell.Style) {
	switch b.fit {
	case BackgroundCentered:
		w, h := width/2, height/2
		p.FillRune(toolkit.Rect{X: (width - w) / 2, Y: (height - h) / 2, Width: w, Height: h}, '░', base)
	case BackgroundTile:
		p.FillRune(toolkit.Rect{X: 0, Y: 0, Width: width, Height: height}, '░', base)
	default: // scale and scale-crop cover the whole output
		p.FillRune(toolkit.Rect{X: 0, Y: 0, Width: width, Height: height}, '▒', base)
	}
}

func (b *Background) redundant() {
	if out := b.desktop.outputFor(b.ownerID); out != nil && out.background == b {
		out.background = nil
	}
	b.destroy()
}

func (b *Background) destroy() {
	delete(b.desktop.surfaces, b.window.ID())
	b.window.Destroy()
}
