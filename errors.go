package txlin

import "errors"

// Error taxonomy for the core API. Expected failures are reported as values;
// the library never panics for an environmental failure. Violated internal
// preconditions (a command referencing a torn-down window, an impossible
// state transition) are programming errors and may panic.
var (
	// ErrAlreadyInitialized is returned by Create when the manager has
	// already created its window. A window is created at most once per
	// manager lifetime, even after Close.
	ErrAlreadyInitialized = errors.New("txlin: window already created")

	// ErrBackendInit is returned by Create when the native windowing
	// backend cannot be initialized (missing display, driver failure).
	// The concrete cause is wrapped alongside it.
	ErrBackendInit = errors.New("txlin: backend initialization failed")

	// ErrNoWindow is returned by operations that require an Open window.
	ErrNoWindow = errors.New("txlin: no open window")

	// ErrUnsupportedFromThread is returned when a worker goroutine invokes
	// a primitive outside the restricted subset. The legacy API this
	// library replaces has no such restriction, so the signal is loud and
	// synchronous rather than silently dropped.
	ErrUnsupportedFromThread = errors.New("txlin: primitive not available from a worker thread")

	// ErrUnsupportedOperation is returned by deliberately unported legacy
	// calls and by attempts to change build-time configuration (such as
	// the glyph cell geometry) after the window exists.
	ErrUnsupportedOperation = errors.New("txlin: operation not supported")

	// ErrInvalidArgument is returned when an enumerated value is not
	// recognized (for example an unknown mouse cursor).
	ErrInvalidArgument = errors.New("txlin: invalid argument")
)
