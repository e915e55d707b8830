//go:build opencl

package clhost

import (
	"fmt"

	"github.com/jgillich/go-opencl/cl"
)

// Host owns the OpenCL platform/device/context/queue handles selected
// for one run. It is created once by the engine and released on every
// exit path.
type Host struct {
	Platform *cl.Platform
	Device   *cl.Device
	Context  *cl.Context
	Info     DeviceInfo
}

// Probe selects platform[platformIdx].device[deviceIdx], validates the
// indices, and builds a Context around it. Index errors are reported as
// plain errors; the caller (engine.Run) maps them to the Configuration
// failure kind.
func Probe(platformIdx, deviceIdx int) (*Host, error) {
	platforms, err := cl.GetPlatforms()
	if err != nil {
		return nil, fmt.Errorf("clhost: enumerate platforms: %w", err)
	}
	if platformIdx < 0 || platformIdx >= len(platforms) {
		return nil, fmt.Errorf("clhost: platform index %d out of range (found %d platforms)", platformIdx, len(platforms))
	}
	platform := platforms[platformIdx]

	devices, err := platform.GetDevices(cl.DeviceTypeAll)
	if err != nil {
		return nil, fmt.Errorf("clhost: enumerate devices: %w", err)
	}
	if deviceIdx < 0 || deviceIdx >= len(devices) {
		return nil, fmt.Errorf("clhost: device index %d out of range (found %d devices)", deviceIdx, len(devices))
	}
	device := devices[deviceIdx]

	ctx, err := cl.CreateContext([]*cl.Device{device})
	if err != nil {
		return nil, fmt.Errorf("clhost: create context: %w", err)
	}

	info := DeviceInfo{
		PlatformIndex:     platformIdx,
		DeviceIndex:       deviceIdx,
		Name:              device.Name(),
		Vendor:            device.Vendor(),
		VendorClass:       ClassifyVendor(device.Vendor()),
		MaxComputeUnits:   device.MaxComputeUnits(),
		MaxClockFrequency: device.MaxClockFrequency(),
		MaxWorkGroupSize:  device.MaxWorkGroupSize(),
		MaxMemAllocSize:   uint64(device.MaxMemAllocSize()),
		GlobalMemSize:     uint64(device.GlobalMemSize()),
	}

	return &Host{Platform: platform, Device: device, Context: ctx, Info: info}, nil
}

// Release tears down the context. Safe to call on a zero-value-free Host
// obtained from Probe.
func (h *Host) Release() {
	if h == nil || h.Context == nil {
		return
	}
	h.Context.Release()
}

// ListDevices enumerates every platform x device without selecting any
// of them, for the --list_devices CLI path. Only a failure to enumerate
// platforms returns an error; a platform whose devices can't be
// enumerated is skipped rather than aborting the listing.
func ListDevices() ([]DeviceInfo, error) {
	platforms, err := cl.GetPlatforms()
	if err != nil {
		return nil, fmt.Errorf("clhost: enumerate platforms: %w", err)
	}
	var out []DeviceInfo
	for pi, platform := range platforms {
		devices, err := platform.GetDevices(cl.DeviceTypeAll)
		if err != nil {
			continue
		}
		for di, device := range devices {
			out = append(out, DeviceInfo{
				PlatformIndex:     pi,
				DeviceIndex:       di,
				Name:              device.Name(),
				Vendor:            device.Vendor(),
				VendorClass:       ClassifyVendor(device.Vendor()),
				MaxComputeUnits:   device.MaxComputeUnits(),
				MaxClockFrequency: device.MaxClockFrequency(),
				MaxWorkGroupSize:  device.MaxWorkGroupSize(),
				MaxMemAllocSize:   uint64(device.MaxMemAllocSize()),
				GlobalMemSize:     uint64(device.GlobalMemSize()),
			})
		}
	}
	return out, nil
}
