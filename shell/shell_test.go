// Copyright © 2025 Deskshell contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: shell/shell_test.go
// Summary: Shared test fixtures: stub driver, tracking spawner, desktop
// harness wired to the compositor simulator.

package shell

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"deskshell/compositor"
	"deskshell/config"
	"deskshell/toolkit"
)

type stubDriver struct {
	width, height int
	finiCalled    bool
	showCount     int
	content       map[[2]int]rune
}

func (s *stubDriver) Init() error { return nil }

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

func (s *stubDriver) SetContent(x, y int, mainc rune, _ []rune, _ tcell.Style) {
	if s.content == nil {
		s.content = make(map[[2]int]rune)
	}
	s.content[[2]int{x, y}] = mainc
}

type trackingSpawner struct {
	commands [][]string
	envs     [][]string
}

func (t *trackingSpawner) Spawn(argv, envp []string) error {
	t.commands = append(t.commands, argv)
	t.envs = append(t.envs, envp)
	return nil
}

func testConfig() *config.Config {
	locking := true
	return &config.Config{
		Shell: config.Shell{
			PanelPosition: "top",
			ClockFormat:   "minutes",
			PanelColor:    "0xaa000000",
			Locking:       &locking,
			Terminal:      "true",
		},
		Launchers: []config.Launcher{{Icon: ">_", Path: "true"}},
	}
}

type fixture struct {
	display *toolkit.Display
	sim     *compositor.Sim
	desktop *Desktop
	spawner *trackingSpawner
	primary uint32
}

// newFixture brings up a desktop against the simulator with one output
// announced before the shell global, then drains the startup events.
func newFixture(t *testing.T, cfg *config.Config) *fixture {
	t.Helper()
	display, err := toolkit.NewDisplay(&stubDriver{})
	if err != nil {
		t.Fatalf("NewDisplay: %v", err)
	}
	sim := compositor.NewSim(display.Post)
	primary := sim.AddOutput(0, 0, 120, 40)
	spawner := &trackingSpawner{}
	desktop := New(display, sim, cfg, spawner)
	sim.Start()
	display.DispatchPending()
	return &fixture{
		display: display,
		sim:     sim,
		desktop: desktop,
		spawner: spawner,
		primary: primary,
	}
}
