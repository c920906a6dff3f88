// Copyright © 2025 Deskshell contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: shell/spawn.go
// Summary: Detached process spawning and child reaping.

package shell

import (
	"os"
	"os/exec"
	"os/signal"
	"strings"
	"syscall"

	log "github.com/sirupsen/logrus"
)

// Spawner starts a launcher command. The production implementation detaches
// the child; tests substitute a recorder.
type Spawner interface {
	Spawn(argv, envp []string) error
}

// NewSpawner returns the process-backed spawner.
func NewSpawner() Spawner {
	return processSpawner{}
}

type processSpawner struct{}

// Spawn starts argv[0] in its own session with no inherited descriptors, so
// the child cannot scribble on the terminal the shell is drawing to.
func (processSpawner) Spawn(argv, envp []string) error {
	path := argv[0]
	if !strings.ContainsRune(path, '/') {
		resolved, err := exec.LookPath(path)
		if err != nil {
			return err
		}
		path = resolved
	}

	proc, err := os.StartProcess(path, argv, &os.ProcAttr{
		Env: envp,
		Sys: &syscall.SysProcAttr{Setsid: true},
	})
	if err != nil {
		return err
	}
	log.WithFields(log.Fields{"pid": proc.Pid, "command": argv[0]}).Info("shell: spawned")
	return proc.Release()
}

// InstallChildReaper collects exited children without blocking the loop.
// Children are reaped in a burst per SIGCHLD delivery; WNOHANG keeps the
// collector from stalling when a signal coalesced.
func InstallChildReaper() {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGCHLD)
	go func() {
		for range ch {
			for {
				var status syscall.WaitStatus
				pid, err := syscall.Wait4(-1, &status, syscall.WNOHANG, nil)
				if pid <= 0 || err != nil {
					break
				}
				log.WithFields(log.Fields{"pid": pid, "status": status.ExitStatus()}).Debug("shell: child exited")
			}
		}
	}()
}
