// Copyright © 2025 Deskshell contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: shell/launcher.go
// Summary: Panel launchers: command parsing and activation.

package shell

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/gdamore/tcell/v2"
	log "github.com/sirupsen/logrus"

	"deskshell/toolkit"
)

// Launcher is one clickable entry on the panel. Its command line is parsed
// once at creation.
type Launcher struct {
	panel  *Panel
	widget *toolkit.Widget

	icon string
	argv []string
	envp []string

	focused bool
}

func newLauncher(p *Panel, icon, path string) *Launcher {
	l := &Launcher{panel: p, icon: icon}
	l.argv, l.envp = parseCommand(os.Environ(), path)

	l.widget = p.window.AddWidget()
	l.widget.SetRedrawHandler(l.redraw)
	l.widget.SetEnterHandler(l.enter)
	l.widget.SetLeaveHandler(l.leave)
	l.widget.SetButtonHandler(l.button)
	l.widget.SetTouchDownHandler(l.touchDown)
	l.widget.SetTouchUpHandler(l.touchUp)
	if len(l.argv) > 0 {
		l.widget.SetTooltip(filepath.Base(l.argv[0]))
	}
	return l
}

// width is the cells the launcher occupies along the panel axis.
func (l *Launcher) width() int {
	return toolkit.TextWidth(l.icon) + 2
}

func (l *Launcher) redraw(w *toolkit.Widget) {
	alloc := w.Allocation()
	if alloc.Width == 0 {
		return
	}
	style := tcell.StyleDefault.
		Background(toolkit.HexColor(l.panel.desktop.panelColor)).
		Foreground(tcell.ColorWhite)
	if l.focused {
		style = style.Reverse(true)
	}
	p := l.panel.window.Painter()
	x := alloc.X + (alloc.Width-toolkit.TextWidth(l.icon))/2
	y := alloc.Y + alloc.Height/2
	p.Text(x, y, l.icon, style)
}

func (l *Launcher) enter(_ *toolkit.Widget, _, _ int) toolkit.CursorKind {
	l.focused = true
	l.widget.ScheduleRedraw()
	return toolkit.CursorLeftPtr
}

func (l *Launcher) leave(_ *toolkit.Widget) {
	l.focused = false
	l.widget.ScheduleRedraw()
}

func (l *Launcher) button(_ *toolkit.Widget, _ toolkit.Button, state toolkit.ButtonState) {
	l.widget.ScheduleRedraw()
	if state == toolkit.ButtonReleased {
		l.activate()
	}
}

func (l *Launcher) touchDown(_ *toolkit.Widget) {
	l.focused = true
	l.widget.ScheduleRedraw()
}

func (l *Launcher) touchUp(_ *toolkit.Widget) {
	l.focused = false
	l.widget.ScheduleRedraw()
	l.activate()
}

func (l *Launcher) activate() {
	if len(l.argv) == 0 {
		return
	}
	if err := l.panel.desktop.spawner.Spawn(l.argv, l.envp); err != nil {
		log.WithError(err).WithField("command", l.argv[0]).Error("shell: spawn failed")
	}
}

// parseCommand splits a launcher command line into argv and the environment
// to run it with. Leading NAME=value tokens override the inherited
// environment; the first token without '=' is the executable, and every
// later token is an argument even when it contains '='.
func parseCommand(environ []string, command string) (argv, envp []string) {
	envp = append([]string(nil), environ...)
	for _, tok := range strings.Fields(command) {
		if len(argv) == 0 && strings.Contains(tok, "=") {
			envp = overrideEnv(envp, tok)
			continue
		}
		argv = append(argv, tok)
	}
	return argv, envp
}

// overrideEnv replaces the first entry for the assignment's name, appending
// when the name is new.
func overrideEnv(envp []string, assignment string) []string {
	prefix := assignment[:strings.IndexByte(assignment, '=')+1]
	for i, entry := range envp {
		if strings.HasPrefix(entry, prefix) {
			envp[i] = assignment
			return envp
		}
	}
	return append(envp, assignment)
}
