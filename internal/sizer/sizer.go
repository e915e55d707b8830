// Package sizer computes batch and work-group sizes from a device's
// reported capabilities and a vendor-keyed policy table, the way
// calculate_safe_batch_size and get_optimal_work_group_size did in the
// original dispatcher.
package sizer

import "github.com/Amr-9/ouija-go/internal/clhost"

// minBatchFloor is the smallest batch size the halving loop will settle
// for; below this a GPU is considered unusable rather than thrashed
// with tiny dispatches.
const minBatchFloor = 1024

// Policy is the set of defaults applied for one vendor class.
type Policy struct {
	DefaultWorkGroupSize                  int
	MemFractionNumerator, MemFractionDenom uint64
	BuildFlags                            []string
}

var policies = map[clhost.Vendor]Policy{
	clhost.VendorNVIDIA:  {DefaultWorkGroupSize: 32, MemFractionNumerator: 1, MemFractionDenom: 4, BuildFlags: []string{"-cl-nv-opt-level=3"}},
	clhost.VendorAMD:     {DefaultWorkGroupSize: 64, MemFractionNumerator: 1, MemFractionDenom: 4},
	clhost.VendorIntel:   {DefaultWorkGroupSize: 16, MemFractionNumerator: 1, MemFractionDenom: 8, BuildFlags: []string{"-cl-intel-no-prera-scheduling"}},
	clhost.VendorUnknown: {DefaultWorkGroupSize: 16, MemFractionNumerator: 1, MemFractionDenom: 8},
}

// PolicyFor returns the policy table entry for a vendor class. Every
// Vendor value has an entry; there is no zero-value/missing case.
func PolicyFor(v clhost.Vendor) Policy {
	return policies[v]
}

// DefaultWorkGroupSize returns the vendor's default work-group size,
// used when the CLI's -g flag is unset (0).
func DefaultWorkGroupSize(v clhost.Vendor) int {
	return PolicyFor(v).DefaultWorkGroupSize
}

// recordSize is the fixed wire size of one result slot, written here as
// a literal instead of importing resultrecord.Size (the value is part of
// the stable wire contract, not resultrecord's implementation).
const recordSize = 46

// SafeBatchSize computes the largest batch size (in seeds) that fits
// within the device's memory ceiling for the given vendor, starting
// from baseSize and halving until it fits, floored at minBatchFloor.
// Each seed costs recordSize bytes; when the floor wins, the result may
// exceed the ceiling.
func SafeBatchSize(info clhost.DeviceInfo, baseSize int) int {
	policy := PolicyFor(info.VendorClass)
	ceiling := info.GlobalMemSize * policy.MemFractionNumerator / policy.MemFractionDenom
	if info.MaxMemAllocSize > 0 && info.MaxMemAllocSize < ceiling {
		ceiling = info.MaxMemAllocSize
	}

	size := baseSize
	for size > minBatchFloor {
		needed := uint64(size) * recordSize
		if needed <= ceiling {
			break
		}
		size /= 2
	}
	if size < minBatchFloor {
		size = minBatchFloor
	}
	return size
}

// GlobalWorkSize rounds n up to the next multiple of the work-group
// size g, the way OpenCL requires the global work size to be divisible
// by the local work size.
func GlobalWorkSize(n, g int) int {
	if g <= 0 {
		return n
	}
	if n%g == 0 {
		return n
	}
	return (n/g + 1) * g
}
