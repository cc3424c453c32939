// Package backend defines the native windowing backend interface and the
// registry used to select an implementation.
//
// A backend owns exactly one native window, surface and event connection.
// Every method except Name must be called from the single goroutine that
// called Init; this is a hard constraint of the native layers underneath,
// not a convenience choice. Cross-thread drawing is handled above the
// backend by the command queue, never inside it.
package backend

import (
	"errors"
	"image"
)

// Common backend errors.
var (
	// ErrBackendNotAvailable is returned when a requested backend is not available.
	ErrBackendNotAvailable = errors.New("backend: not available")

	// ErrNotInitialized is returned when operations are called before Init.
	ErrNotInitialized = errors.New("backend: not initialized")

	// ErrUnknownCursor is returned by SetCursor for an unrecognized cursor value.
	ErrUnknownCursor = errors.New("backend: unknown cursor")
)

// Cursor identifies one of the fixed mouse cursor shapes supported by the
// legacy API. The set is closed; backends reject anything else.
type Cursor int

const (
	CursorDefault Cursor = iota
	CursorWait
	CursorProhibited
	CursorHand
	CursorNone
)

// Valid reports whether c names a member of the fixed cursor set.
func (c Cursor) Valid() bool {
	return c >= CursorDefault && c <= CursorNone
}

func (c Cursor) String() string {
	switch c {
	case CursorDefault:
		return "default"
	case CursorWait:
		return "wait"
	case CursorProhibited:
		return "prohibited"
	case CursorHand:
		return "hand"
	case CursorNone:
		return "none"
	}
	return "unknown"
}

// EventKind discriminates backend events.
type EventKind int

const (
	// EventClose reports the window close button or the platform quit
	// shortcut. Backends translate the shortcut themselves, so callers
	// only ever see a single close signal.
	EventClose EventKind = iota

	// EventExpose reports that the window contents were damaged and the
	// surface should be presented again.
	EventExpose

	// EventKey reports an ordinary key press.
	EventKey
)

// Event is one native window event, already translated to the small set the
// event loop cares about.
type Event struct {
	Kind EventKind

	// Rune is the translated key for EventKey, 0 if not printable.
	Rune rune
}

// Backend is the interface implemented by native windowing backends.
//
// Backends must be registered via Register() and are selected via
// Get() or Default().
type Backend interface {
	// Name returns the backend identifier (e.g., "x11", "headless").
	Name() string

	// Init creates the native window and surface. It fails when the
	// backend is unusable in this environment (no display server).
	Init(width, height int, title string) error

	// Present copies the pixel canvas to the native surface and makes it
	// visible. The image dimensions match the Init dimensions.
	Present(img *image.RGBA) error

	// PollEvent returns the next pending native event without blocking.
	// The second return value is false when no event is pending.
	PollEvent() (Event, bool)

	// SetCursor changes the window's mouse cursor. It fails for cursor
	// values outside the fixed set and for native failures; the
	// previously set cursor stays in effect on failure.
	SetCursor(c Cursor) error

	// Bell triggers the platform sound signal.
	Bell() error

	// Close releases the native window and connection.
	// The backend should not be used after Close is called.
	Close()
}
