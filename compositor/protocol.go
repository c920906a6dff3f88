// Copyright © 2025 Deskshell contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: compositor/protocol.go
// Summary: Client-side view of the desktop shell compositor protocol.

package compositor

// Interface names announced through the global registry.
const (
	InterfaceOutput = "wl_output"
	InterfaceShell  = "desktop_shell"
)

// PanelPosition selects the screen edge a panel docks to.
type PanelPosition uint32

const (
	PanelTop PanelPosition = iota
	PanelBottom
	PanelLeft
	PanelRight
)

// Cursor identifies the pointer image the compositor wants shown while a
// grab is in progress.
type Cursor uint32

const (
	CursorNone Cursor = iota
	CursorResizeTop
	CursorResizeBottom
	CursorArrow
	CursorResizeLeft
	CursorResizeTopLeft
	CursorResizeBottomLeft
	CursorMove
	CursorResizeRight
	CursorResizeTopRight
	CursorResizeBottomRight
	CursorBusy
)

// GlobalHandler receives registry announcements. Outputs can appear and
// disappear at any time; the shell global is announced once.
type GlobalHandler interface {
	GlobalAdded(name uint32, iface string, version uint32)
	GlobalRemoved(name uint32)
}

// Connection is the client's link to the compositor.
type Connection interface {
	// SetGlobalHandler registers h and replays every global already
	// announced, in announcement order.
	SetGlobalHandler(h GlobalHandler)
	// BindOutput binds a wl_output global by registry name.
	BindOutput(name uint32) Output
	// BindShell binds the desktop_shell global by registry name.
	BindShell(name uint32, listener ShellListener) Shell
}

// OutputListener receives the initial and any subsequent state of a bound
// output. Geometry carries the position in the global compositor space;
// Mode carries the current pixel size.
type OutputListener interface {
	Geometry(x, y int)
	Mode(width, height int)
	Scale(factor int)
	Transform(transform int)
}

// Output is a bound wl_output. Setting a listener delivers the current
// geometry and mode immediately.
type Output interface {
	Name() uint32
	SetListener(l OutputListener)
}

// ShellListener receives desktop_shell events.
type ShellListener interface {
	// Configure asks the client to size the surface. A zero width and
	// height means the surface is redundant and must be torn down.
	Configure(edges uint32, surfaceID uint32, width, height int)
	// PrepareLockSurface asks the client to present an unlock dialog.
	PrepareLockSurface()
	// GrabCursor tells the client which cursor to serve on the grab
	// surface.
	GrabCursor(cursor Cursor)
}

// Shell is the bound desktop_shell global. Surfaces are referred to by the
// toolkit window id that backs them.
type Shell interface {
	SetBackground(output Output, surfaceID uint32)
	SetPanel(output Output, surfaceID uint32)
	SetLockSurface(surfaceID uint32)
	Unlock()
	SetGrabSurface(surfaceID uint32)
	DesktopReady()
	SetPanelPosition(pos PanelPosition)
}
