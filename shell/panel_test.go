// Copyright © 2025 Deskshell contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: shell/panel_test.go
// Summary: Panel sizing, layout and redundant teardown.

package shell

import "testing"

func TestHorizontalPanelKeepsThickness(t *testing.T) {
	f := newFixture(t, testConfig())

	panel := f.desktop.outputs[f.primary].panel
	w, h := panel.window.Size()
	if w != 120 || h != panelThickness {
		t.Fatalf("panel size = %dx%d, want 120x%d", w, h, panelThickness)
	}
}

func TestVerticalPanelWidthFollowsClockFormat(t *testing.T) {
	cases := []struct {
		format string
		width  int
	}{
		{"seconds", panelWidthSecondsClock},
		{"minutes", panelWidthMinutesClock},
		{"minutes-24h", panelWidthMinutesClock},
		{"seconds-24h", panelWidthMinutesClock},
		{"iso", panelWidthNoClock},
		{"none", panelWidthNoClock},
	}
	for _, tc := range cases {
		t.Run(tc.format, func(t *testing.T) {
			cfg := testConfig()
			cfg.Shell.PanelPosition = "left"
			cfg.Shell.ClockFormat = tc.format
			f := newFixture(t, cfg)

			panel := f.desktop.outputs[f.primary].panel
			w, h := panel.window.Size()
			if w != tc.width || h != 40 {
				t.Fatalf("panel size = %dx%d, want %dx40", w, h, tc.width)
			}
		})
	}
}

func TestZeroConfigureTearsPanelDown(t *testing.T) {
	f := newFixture(t, testConfig())

	out := f.desktop.outputs[f.primary]
	panel := out.panel
	id := panel.window.ID()

	panel.Configure(0, 0, 0)

	if out.panel != nil {
		t.Fatal("output still references the torn-down panel")
	}
	if _, ok := f.desktop.surfaces[id]; ok {
		t.Fatal("torn-down panel still registered")
	}
}

func TestZeroWidthConfigureTearsPanelDown(t *testing.T) {
	f := newFixture(t, testConfig())

	out := f.desktop.outputs[f.primary]
	panel := out.panel
	id := panel.window.ID()

	panel.Configure(0, 0, 100)

	if out.panel != nil {
		t.Fatal("a zero width alone must tear the panel down")
	}
	if _, ok := f.desktop.surfaces[id]; ok {
		t.Fatal("torn-down panel still registered")
	}
}

func TestLaunchersLaidOutWithSpacing(t *testing.T) {
	cfg := testConfig()
	cfg.Launchers = append(cfg.Launchers, cfg.Launchers[0])
	f := newFixture(t, cfg)

	panel := f.desktop.outputs[f.primary].panel
	if len(panel.launchers) != 2 {
		t.Fatalf("launcher count = %d, want 2", len(panel.launchers))
	}

	first := panel.launchers[0].widget.Allocation()
	second := panel.launchers[1].widget.Allocation()
	if first.X != defaultSpacing/2 {
		t.Fatalf("first launcher at x=%d, want %d", first.X, defaultSpacing/2)
	}
	wantSecond := first.X + first.Width + defaultSpacing
	if second.X != wantSecond {
		t.Fatalf("second launcher at x=%d, want %d", second.X, wantSecond)
	}
}

func TestVerticalPanelReservesClockRegion(t *testing.T) {
	cfg := testConfig()
	cfg.Shell.PanelPosition = "left"
	f := newFixture(t, cfg)

	panel := f.desktop.outputs[f.primary].panel
	alloc := panel.clock.widget.Allocation()
	if alloc.Height != clockRegionHeight {
		t.Fatalf("clock region height = %d, want %d", alloc.Height, clockRegionHeight)
	}
	_, h := panel.window.Size()
	if alloc.Y != h-clockRegionHeight {
		t.Fatalf("clock region at y=%d, want %d", alloc.Y, h-clockRegionHeight)
	}
}
