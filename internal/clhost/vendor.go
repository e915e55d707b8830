package clhost

import "strings"

// Vendor classifies a device's reported vendor string into one of the
// families the Sizer keys its policy table on.
type Vendor int

const (
	VendorUnknown Vendor = iota
	VendorNVIDIA
	VendorAMD
	VendorIntel
)

func (v Vendor) String() string {
	switch v {
	case VendorNVIDIA:
		return "NVIDIA"
	case VendorAMD:
		return "AMD"
	case VendorIntel:
		return "Intel"
	default:
		return "Unknown"
	}
}

// ClassifyVendor matches a raw OpenCL vendor string against the
// substrings the original dispatcher used to tell devices apart.
func ClassifyVendor(vendor string) Vendor {
	v := strings.ToUpper(vendor)
	switch {
	case strings.Contains(v, "NVIDIA"):
		return VendorNVIDIA
	case strings.Contains(v, "AMD") || strings.Contains(v, "ADVANCED MICRO DEVICES"):
		return VendorAMD
	case strings.Contains(v, "INTEL"):
		return VendorIntel
	default:
		return VendorUnknown
	}
}

// DeviceInfo captures the properties the Sizer and Kernel Cache need
// about a selected device, independent of the OpenCL binding used to
// obtain them.
type DeviceInfo struct {
	PlatformIndex     int
	DeviceIndex       int
	Name              string
	Vendor            string
	VendorClass       Vendor
	MaxComputeUnits   int
	MaxClockFrequency int
	MaxWorkGroupSize  int
	MaxMemAllocSize   uint64
	GlobalMemSize     uint64
}
