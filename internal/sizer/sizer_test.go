package sizer

import (
	"testing"

	"github.com/Amr-9/ouija-go/internal/clhost"
)

func TestDefaultWorkGroupSizeByVendor(t *testing.T) {
	cases := map[clhost.Vendor]int{
		clhost.VendorNVIDIA:  32,
		clhost.VendorAMD:     64,
		clhost.VendorIntel:   16,
		clhost.VendorUnknown: 16,
	}
	for v, want := range cases {
		if got := DefaultWorkGroupSize(v); got != want {
			t.Errorf("DefaultWorkGroupSize(%v) = %d, want %d", v, got, want)
		}
	}
}

func TestSafeBatchSizeHalvesUntilItFits(t *testing.T) {
	info := clhost.DeviceInfo{
		VendorClass:   clhost.VendorAMD,
		GlobalMemSize: 4 * 4096 * recordSize, // ceiling = 4096*recordSize after /4
	}
	got := SafeBatchSize(info, 1 << 20)
	if uint64(got)*recordSize > info.GlobalMemSize/4 {
		t.Errorf("SafeBatchSize = %d exceeds ceiling", got)
	}
	if got < minBatchFloor {
		t.Errorf("SafeBatchSize = %d below floor %d", got, minBatchFloor)
	}
}

func TestSafeBatchSizeNeverBelowFloor(t *testing.T) {
	info := clhost.DeviceInfo{VendorClass: clhost.VendorIntel, GlobalMemSize: 1}
	got := SafeBatchSize(info, 2048)
	if got != minBatchFloor {
		t.Errorf("SafeBatchSize = %d, want floor %d", got, minBatchFloor)
	}
}

func TestSafeBatchSizeRespectsMaxAlloc(t *testing.T) {
	info := clhost.DeviceInfo{
		VendorClass:     clhost.VendorNVIDIA,
		GlobalMemSize:   1 << 40,
		MaxMemAllocSize: 4096 * recordSize,
	}
	got := SafeBatchSize(info, 1<<20)
	if uint64(got)*recordSize > info.MaxMemAllocSize {
		t.Errorf("SafeBatchSize = %d exceeds MaxMemAllocSize", got)
	}
}

func TestGlobalWorkSizeRoundsUp(t *testing.T) {
	cases := []struct{ n, g, want int }{
		{100, 32, 128},
		{128, 32, 128},
		{1, 64, 64},
		{10, 0, 10},
	}
	for _, c := range cases {
		if got := GlobalWorkSize(c.n, c.g); got != c.want {
			t.Errorf("GlobalWorkSize(%d,%d) = %d, want %d", c.n, c.g, got, c.want)
		}
	}
}
