package clhost

import "testing"

func TestClassifyVendor(t *testing.T) {
	cases := map[string]Vendor{
		"NVIDIA Corporation":          VendorNVIDIA,
		"Advanced Micro Devices, Inc": VendorAMD,
		"AMD":                         VendorAMD,
		"Intel(R) Corporation":        VendorIntel,
		"Some Other Silicon Shop":     VendorUnknown,
		"":                            VendorUnknown,
	}
	for vendor, want := range cases {
		if got := ClassifyVendor(vendor); got != want {
			t.Errorf("ClassifyVendor(%q) = %v, want %v", vendor, got, want)
		}
	}
}

func TestVendorString(t *testing.T) {
	if VendorAMD.String() != "AMD" {
		t.Errorf("VendorAMD.String() = %q", VendorAMD.String())
	}
	if VendorUnknown.String() != "Unknown" {
		t.Errorf("VendorUnknown.String() = %q", VendorUnknown.String())
	}
}
