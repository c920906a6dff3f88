// Copyright © 2025 Deskshell contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: compositor/sim.go
// Summary: In-process compositor simulator implementing Connection.

package compositor

import (
	"sync"

	log "github.com/sirupsen/logrus"
)

type simGlobal struct {
	name    uint32
	iface   string
	version uint32
}

type simOutput struct {
	sim           *Sim
	name          uint32
	x, y          int
	width, height int
	scale         int
	transform     int
	listener      OutputListener
}

func (o *simOutput) Name() uint32 { return o.name }

// SetListener delivers the output's current state, the way a bind is
// answered by an initial burst of events.
func (o *simOutput) SetListener(l OutputListener) {
	s := o.sim
	s.mu.Lock()
	o.listener = l
	x, y, w, h := o.x, o.y, o.width, o.height
	scale, transform := o.scale, o.transform
	s.mu.Unlock()
	s.post(func() {
		l.Geometry(x, y)
		l.Mode(w, h)
		l.Scale(scale)
		l.Transform(transform)
	})
}

// Sim is a single-process stand-in for a real compositor. Requests are
// handled synchronously; events travel back through the post function so
// they arrive on the client's loop thread, the way a real connection
// delivers them.
type Sim struct {
	post func(func())

	mu          sync.Mutex
	handler     GlobalHandler
	globals     []simGlobal
	nextName    uint32
	outputs     map[uint32]*simOutput
	shellName   uint32
	listener    ShellListener
	shellBound  bool
	panels      map[uint32]uint32 // output name -> surface id
	backgrounds map[uint32]uint32
	lockSurface uint32
	grabSurface uint32
	position    PanelPosition
	readyCount  int
	unlockCount int
	locked      bool
}

// NewSim creates a simulator with no globals announced. Call AddOutput and
// Start to populate the registry; post delivers events to the client loop.
func NewSim(post func(func())) *Sim {
	return &Sim{
		post:        post,
		nextName:    1,
		outputs:     make(map[uint32]*simOutput),
		panels:      make(map[uint32]uint32),
		backgrounds: make(map[uint32]uint32),
	}
}

// Start announces the shell global. Outputs added beforehand are announced
// first, so a client binding late sees them as pending.
func (s *Sim) Start() {
	s.mu.Lock()
	s.shellName = s.nextName
	s.nextName++
	s.announceLocked(simGlobal{name: s.shellName, iface: InterfaceShell, version: 1})
	s.mu.Unlock()
}

func (s *Sim) announceLocked(g simGlobal) {
	s.globals = append(s.globals, g)
	if s.handler != nil {
		h := s.handler
		s.post(func() { h.GlobalAdded(g.name, g.iface, g.version) })
	}
}

// SetGlobalHandler implements Connection.
func (s *Sim) SetGlobalHandler(h GlobalHandler) {
	s.mu.Lock()
	s.handler = h
	replay := make([]simGlobal, len(s.globals))
	copy(replay, s.globals)
	s.mu.Unlock()
	for _, g := range replay {
		g := g
		s.post(func() { h.GlobalAdded(g.name, g.iface, g.version) })
	}
}

// BindOutput implements Connection. The initial geometry and mode are
// delivered when a listener is attached.
func (s *Sim) BindOutput(name uint32) Output {
	s.mu.Lock()
	defer s.mu.Unlock()
	if o, ok := s.outputs[name]; ok {
		return o
	}
	return nil
}

// BindShell implements Connection.
func (s *Sim) BindShell(name uint32, listener ShellListener) Shell {
	s.mu.Lock()
	defer s.mu.Unlock()
	if name != s.shellName {
		return nil
	}
	s.listener = listener
	s.shellBound = true
	return (*simShell)(s)
}

// AddOutput announces a new output global and returns its registry name.
func (s *Sim) AddOutput(x, y, width, height int) uint32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	name := s.nextName
	s.nextName++
	s.outputs[name] = &simOutput{sim: s, name: name, x: x, y: y, width: width, height: height, scale: 1}
	s.announceLocked(simGlobal{name: name, iface: InterfaceOutput, version: 2})
	return name
}

// RemoveOutput withdraws an output global.
func (s *Sim) RemoveOutput(name uint32) {
	s.mu.Lock()
	delete(s.outputs, name)
	delete(s.panels, name)
	delete(s.backgrounds, name)
	for i, g := range s.globals {
		if g.name == name {
			s.globals = append(s.globals[:i], s.globals[i+1:]...)
			break
		}
	}
	h := s.handler
	s.mu.Unlock()
	if h != nil {
		s.post(func() { h.GlobalRemoved(name) })
	}
}

// ResizeOutput changes an output's mode and reconfigures the surfaces
// docked to it.
func (s *Sim) ResizeOutput(name uint32, width, height int) {
	s.mu.Lock()
	o, ok := s.outputs[name]
	if !ok {
		s.mu.Unlock()
		return
	}
	o.width, o.height = width, height
	l := o.listener
	sl := s.listener
	panel := s.panels[name]
	background := s.backgrounds[name]
	s.mu.Unlock()
	if l != nil {
		s.post(func() { l.Mode(width, height) })
	}
	if sl != nil {
		if panel != 0 {
			s.post(func() { sl.Configure(0, panel, width, height) })
		}
		if background != 0 {
			s.post(func() { sl.Configure(0, background, width, height) })
		}
	}
}

// MoveOutput changes an output's position in the global space.
func (s *Sim) MoveOutput(name uint32, x, y int) {
	s.mu.Lock()
	o, ok := s.outputs[name]
	if !ok {
		s.mu.Unlock()
		return
	}
	o.x, o.y = x, y
	l := o.listener
	s.mu.Unlock()
	if l != nil {
		s.post(func() { l.Geometry(x, y) })
	}
}

// RequestLock asks the client to present its unlock dialog.
func (s *Sim) RequestLock() {
	s.mu.Lock()
	s.locked = true
	sl := s.listener
	s.mu.Unlock()
	if sl != nil {
		s.post(func() { sl.PrepareLockSurface() })
	}
}

// SetGrabCursor tells the client which cursor the grab surface should
// serve.
func (s *Sim) SetGrabCursor(c Cursor) {
	s.mu.Lock()
	sl := s.listener
	s.mu.Unlock()
	if sl != nil {
		s.post(func() { sl.GrabCursor(c) })
	}
}

// Ready reports whether the client has signalled readiness.
func (s *Sim) Ready() bool {
	return s.ReadyCount() > 0
}

// ReadyCount returns how many times the client signalled readiness.
func (s *Sim) ReadyCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readyCount
}

// UnlockCount returns how many unlock requests the client sent.
func (s *Sim) UnlockCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.unlockCount
}

// Locked reports whether a lock is in progress.
func (s *Sim) Locked() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.locked
}

// PanelSurface returns the surface docked as panel on an output, or zero.
func (s *Sim) PanelSurface(output uint32) uint32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.panels[output]
}

// BackgroundSurface returns the surface docked as background on an output,
// or zero.
func (s *Sim) BackgroundSurface(output uint32) uint32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.backgrounds[output]
}

// GrabSurface returns the registered grab surface id, or zero.
func (s *Sim) GrabSurface() uint32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.grabSurface
}

// PanelPosition returns the position requested by the client.
func (s *Sim) PanelPosition() PanelPosition {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.position
}

// simShell is the request side of the bound shell global.
type simShell Sim

func (sh *simShell) sim() *Sim { return (*Sim)(sh) }

func (sh *simShell) dock(registry map[uint32]uint32, out Output, surfaceID uint32) {
	s := sh.sim()
	s.mu.Lock()
	o, ok := out.(*simOutput)
	if !ok || o == nil {
		s.mu.Unlock()
		return
	}
	existing := registry[o.name]
	sl := s.listener
	if existing != 0 && existing != surfaceID {
		s.mu.Unlock()
		// The slot is taken; the newcomer is redundant.
		s.post(func() { sl.Configure(0, surfaceID, 0, 0) })
		return
	}
	registry[o.name] = surfaceID
	w, h := o.width, o.height
	s.mu.Unlock()
	s.post(func() { sl.Configure(0, surfaceID, w, h) })
}

func (sh *simShell) SetBackground(out Output, surfaceID uint32) {
	sh.dock(sh.sim().backgrounds, out, surfaceID)
}

func (sh *simShell) SetPanel(out Output, surfaceID uint32) {
	sh.dock(sh.sim().panels, out, surfaceID)
}

func (sh *simShell) SetLockSurface(surfaceID uint32) {
	s := sh.sim()
	s.mu.Lock()
	sl := s.listener
	if !s.locked || (s.lockSurface != 0 && s.lockSurface != surfaceID) {
		s.mu.Unlock()
		s.post(func() { sl.Configure(0, surfaceID, 0, 0) })
		return
	}
	s.lockSurface = surfaceID
	s.mu.Unlock()
}

func (sh *simShell) Unlock() {
	s := sh.sim()
	s.mu.Lock()
	s.locked = false
	s.lockSurface = 0
	s.unlockCount++
	s.mu.Unlock()
	log.Debug("compositor: unlocked")
}

func (sh *simShell) SetGrabSurface(surfaceID uint32) {
	s := sh.sim()
	s.mu.Lock()
	s.grabSurface = surfaceID
	s.mu.Unlock()
}

func (sh *simShell) DesktopReady() {
	s := sh.sim()
	s.mu.Lock()
	s.readyCount++
	s.mu.Unlock()
	log.Info("compositor: desktop ready")
}

func (sh *simShell) SetPanelPosition(pos PanelPosition) {
	s := sh.sim()
	s.mu.Lock()
	s.position = pos
	s.mu.Unlock()
}
