// Copyright © 2025 Deskshell contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/deskshell/main.go
// Summary: Entry point: wires the display, the compositor and the desktop.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/gdamore/tcell/v2"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"deskshell/compositor"
	"deskshell/config"
	"deskshell/shell"
	"deskshell/toolkit"
)

var (
	flagConfig string
	flagDebug  bool
)

var rootCmd = &cobra.Command{
	Use:          "deskshell",
	Short:        "Terminal desktop shell with panel, background and lock screen",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run()
	},
}

func init() {
	rootCmd.Flags().StringVarP(&flagConfig, "config", "c", "", "config file path")
	rootCmd.Flags().BoolVar(&flagDebug, "debug", false, "verbose logging")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run() error {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return fmt.Errorf("deskshell must run on a terminal")
	}
	if err := setupLogging(); err != nil {
		return err
	}

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	driver := toolkit.NewTcellDriver(screen)
	display, err := toolkit.NewDisplay(driver)
	if err != nil {
		return err
	}
	defer display.Close()
	driver.Underlying().EnableMouse()

	sim := compositor.NewSim(display.Post)
	width, height := display.Size()
	// The terminal is the primary output. Announcing it before the shell
	// global exercises the pending-output path on startup.
	primary := sim.AddOutput(0, 0, width, height)

	desktop := shell.New(display, sim, cfg, shell.NewSpawner())
	sim.Start()

	display.SetResizeHandler(func(w, h int) {
		sim.ResizeOutput(primary, w, h)
	})
	display.SetKeyHandler(func(ev *tcell.EventKey) {
		if desktop.HandleKey(ev) {
			return
		}
		switch ev.Key() {
		case tcell.KeyCtrlQ:
			display.Terminate()
		case tcell.KeyF12:
			sim.RequestLock()
		}
	})

	shell.InstallChildReaper()
	return display.Run()
}

// setupLogging sends logs to a state file; stdout belongs to the screen.
func setupLogging() error {
	path, err := xdg.StateFile(filepath.Join("deskshell", "deskshell.log"))
	if err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	log.SetOutput(f)
	if flagDebug {
		log.SetLevel(log.DebugLevel)
	}
	return nil
}
