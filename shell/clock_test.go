// Copyright © 2025 Deskshell contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: shell/clock_test.go
// Summary: Clock format parsing and refresh cadence.

package shell

import (
	"testing"
	"time"
)

func TestParseClockFormat(t *testing.T) {
	cases := []struct {
		in   string
		want ClockFormat
	}{
		{"minutes", ClockMinutes},
		{"seconds", ClockSeconds},
		{"minutes-24h", ClockMinutes24},
		{"seconds-24h", ClockSeconds24},
		{"iso", ClockISO},
		{"none", ClockNone},
		{"nonsense", ClockISO},
	}
	for _, tc := range cases {
		if got := parseClockFormat(tc.in); got != tc.want {
			t.Errorf("parseClockFormat(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestClockRefreshMatchesPrecision(t *testing.T) {
	cases := []struct {
		format  ClockFormat
		refresh time.Duration
	}{
		{ClockMinutes, time.Minute},
		{ClockMinutes24, time.Minute},
		{ClockSeconds, time.Second},
		{ClockSeconds24, time.Second},
		{ClockISO, time.Second},
	}
	for _, tc := range cases {
		if _, got := tc.format.layout(); got != tc.refresh {
			t.Errorf("format %v refresh = %v, want %v", tc.format, got, tc.refresh)
		}
	}
}

func TestClockDisabledByFormatNone(t *testing.T) {
	cfg := testConfig()
	cfg.Shell.ClockFormat = "none"
	f := newFixture(t, cfg)

	if f.desktop.outputs[f.primary].panel.clock != nil {
		t.Fatal("no clock expected for format none")
	}
}
