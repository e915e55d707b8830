// Package dispatch runs the double-buffered (or single-buffered) batch
// loop: compute one batch on the GPU while the host scans the previous
// one, alternating two result slots the way the optimized dispatcher's
// current_buffer toggle did.
package dispatch

import "github.com/Amr-9/ouija-go/internal/seed"

// Plan is the pure, device-independent description of how the seed
// space [start, start+total) is chopped into batches of at most
// batchCapacity seeds each. Kept separate from the OpenCL-driving loop
// so the batching arithmetic is tested without a device.
type Plan struct {
	Start         seed.Value
	Total         int64
	BatchCapacity int64
}

// NextBatch returns the (offset, size) of the batch starting at
// processed seeds into the plan, and whether any work remains.
func (p Plan) NextBatch(processed int64) (offset int64, size int64, ok bool) {
	remaining := p.Total - processed
	if remaining <= 0 {
		return 0, 0, false
	}
	size = remaining
	if size > p.BatchCapacity {
		size = p.BatchCapacity
	}
	return processed, size, true
}

// BatchCount returns how many batches Plan will produce; used only by
// tests, never for loop control (the loop always drives off NextBatch's
// ok return).
func (p Plan) BatchCount() int64 {
	if p.BatchCapacity <= 0 {
		return 0
	}
	n := p.Total / p.BatchCapacity
	if p.Total%p.BatchCapacity != 0 {
		n++
	}
	return n
}

// slotIndex alternates between 0 and 1 the way current_buffer did.
type slotIndex int

func (s slotIndex) flip() slotIndex { return 1 - s }
