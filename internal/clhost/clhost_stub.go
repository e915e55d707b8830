//go:build !opencl

package clhost

import "errors"

// ErrNoOpenCL is returned by every device-touching call in builds
// compiled without the opencl tag. Rebuild with "-tags opencl" (and the
// OpenCL headers/driver available) to probe real hardware.
var ErrNoOpenCL = errors.New("clhost: built without OpenCL support (rebuild with -tags opencl)")

// Host is an opaque stand-in so callers can still reference the type in
// builds without OpenCL; it is never populated.
type Host struct {
	Info DeviceInfo
}

// Release is a no-op on the stub Host.
func (h *Host) Release() {}

// Probe always fails on a build without the opencl tag.
func Probe(platformIdx, deviceIdx int) (*Host, error) {
	return nil, ErrNoOpenCL
}

// ListDevices always fails on a build without the opencl tag.
func ListDevices() ([]DeviceInfo, error) {
	return nil, ErrNoOpenCL
}
