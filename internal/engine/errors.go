// Package engine ties the other components together into one run:
// select a device, size the batch, compile/load the kernel, drive the
// dispatch loop, and report the outcome.
package engine

import "errors"

// Sentinel failure kinds the engine wraps its errors in, so callers can
// tell them apart with errors.Is. cmd/ouija itself logs every error and
// exits 1 regardless of kind.
var (
	// ErrConfiguration covers an unreadable kernel source file and any
	// failure to select a device: no platform, an out-of-range
	// platform/device index, or a context that can't be created.
	ErrConfiguration = errors.New("configuration error")

	// ErrDriverBuild covers setup failures once a device is selected:
	// queue and buffer creation, kernel source compile errors, and
	// binding the static kernel arguments.
	ErrDriverBuild = errors.New("driver build error")

	// ErrDriverRuntime covers failures while dispatching or reading
	// back batches once the run is underway, including failures to
	// write the result or progress stream.
	ErrDriverRuntime = errors.New("driver runtime error")

	// ErrIO is declared for I/O failures but no code path returns it:
	// cache write failures are only logged, and result-stream write
	// failures surface as ErrDriverRuntime.
	ErrIO = errors.New("io error")
)
