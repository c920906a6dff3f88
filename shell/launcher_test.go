// Copyright © 2025 Deskshell contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: shell/launcher_test.go
// Summary: Command line parsing and launcher activation.

package shell

import (
	"reflect"
	"testing"

	"deskshell/toolkit"
)

func TestParseCommandSplitsEnvAndArgs(t *testing.T) {
	environ := []string{"PATH=/usr/bin", "HOME=/home/u"}
	argv, envp := parseCommand(environ, "FOO=bar HOME=/tmp app --flag a=b")

	wantArgv := []string{"app", "--flag", "a=b"}
	if !reflect.DeepEqual(argv, wantArgv) {
		t.Fatalf("argv = %v, want %v", argv, wantArgv)
	}

	wantEnvp := []string{"PATH=/usr/bin", "HOME=/tmp", "FOO=bar"}
	if !reflect.DeepEqual(envp, wantEnvp) {
		t.Fatalf("envp = %v, want %v", envp, wantEnvp)
	}
}

func TestParseCommandWithoutAssignments(t *testing.T) {
	environ := []string{"PATH=/usr/bin"}
	argv, envp := parseCommand(environ, "app one two")

	if !reflect.DeepEqual(argv, []string{"app", "one", "two"}) {
		t.Fatalf("argv = %v", argv)
	}
	if !reflect.DeepEqual(envp, environ) {
		t.Fatalf("envp = %v, want untouched environment", envp)
	}
}

func TestParseCommandOverridesFirstMatchOnly(t *testing.T) {
	environ := []string{"X=1", "X=2"}
	_, envp := parseCommand(environ, "X=9 app")

	if !reflect.DeepEqual(envp, []string{"X=9", "X=2"}) {
		t.Fatalf("envp = %v, want first entry replaced", envp)
	}
}

func TestLauncherActivatesOnRelease(t *testing.T) {
	f := newFixture(t, testConfig())

	launcher := f.desktop.outputs[f.primary].panel.launchers[0]
	launcher.button(launcher.widget, toolkit.ButtonLeft, toolkit.ButtonPressed)
	if len(f.spawner.commands) != 0 {
		t.Fatal("press alone should not spawn")
	}
	launcher.button(launcher.widget, toolkit.ButtonLeft, toolkit.ButtonReleased)
	if len(f.spawner.commands) != 1 {
		t.Fatalf("spawn count = %d, want 1", len(f.spawner.commands))
	}
	if f.spawner.commands[0][0] != "true" {
		t.Fatalf("spawned %q, want %q", f.spawner.commands[0][0], "true")
	}
}

func TestLauncherActivatesOnTouchUp(t *testing.T) {
	f := newFixture(t, testConfig())

	launcher := f.desktop.outputs[f.primary].panel.launchers[0]
	launcher.widget.TouchDown()
	if len(f.spawner.commands) != 0 {
		t.Fatal("touch-down alone should not spawn")
	}
	launcher.widget.TouchUp()
	if len(f.spawner.commands) != 1 {
		t.Fatalf("spawn count = %d, want 1", len(f.spawner.commands))
	}
}
