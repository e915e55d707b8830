package dispatch

import (
	"context"
	"fmt"
	"io"
	"time"
	"unsafe"

	"github.com/Amr-9/ouija-go/internal/clhost"
	"github.com/Amr-9/ouija-go/internal/filterconfig"
	"github.com/Amr-9/ouija-go/internal/progress"
	"github.com/Amr-9/ouija-go/internal/resultrecord"
	"github.com/Amr-9/ouija-go/internal/scanner"
)

// Options configures one run of the pipeline.
type Options struct {
	Plan          Plan
	DoubleBuffer  bool
	WorkGroupSize int
	Config        filterconfig.FilterConfig
	Cutoff        scanner.CutoffState
	Vendor        clhost.Vendor
	ProgressOut   io.Writer
	ResultsOut    io.Writer
}

// Run drives the batch loop against a compiled kernel and a single
// result buffer per slot (one slot if !DoubleBuffer, two otherwise),
// reusing one host mirror buffer per slot across all batches. queue and
// kernel are interfaces over the OpenCL bindings (see types.go) so this
// loop can be driven by a fake in tests without a real device.
//
// kernel's static args (starting_seed, config buffer) must already be
// bound by the caller; Run only sets the per-batch args (seeds_in_batch,
// result buffer, batch_offset).
func Run(ctx context.Context, queue, transferQueue Queue, kernel Kernel, resultBufs [2]MemObject, hostBufs [2][]byte, opts Options) (scanner.CutoffState, int64, error) {
	state := opts.Cutoff
	reporter := progress.NewReporter(time.Now())

	var transferEvent Event
	var pendingKernel Event
	var current slotIndex
	firstBatch := true
	var processed int64
	totalSeeds := opts.Plan.Total
	cancelled := false
	var loopErr error

	for loopErr == nil {
		select {
		case <-ctx.Done():
			cancelled = true
		default:
		}
		if cancelled {
			break
		}

		offset, size, ok := opts.Plan.NextBatch(processed)
		if !ok {
			break
		}

		globalSize := GlobalWorkSizeFor(size, opts.WorkGroupSize)

		if err := kernel.SetArg(1, size); err != nil {
			loopErr = fmt.Errorf("dispatch: set seeds_in_batch arg: %w", err)
			break
		}
		if err := kernel.SetArg(3, resultBufs[current]); err != nil {
			loopErr = fmt.Errorf("dispatch: set result buffer arg: %w", err)
			break
		}
		if err := kernel.SetArg(4, offset); err != nil {
			loopErr = fmt.Errorf("dispatch: set batch_offset arg: %w", err)
			break
		}

		// Enqueue batch k's kernel before draining batch k-1's transfer,
		// so the GPU has batch k's compute to chew on while the host
		// waits out the still-in-flight previous transfer — the overlap
		// double buffering exists to provide.
		kernelEvent, err := queue.EnqueueKernel(kernel, int(globalSize), opts.WorkGroupSize)
		if err != nil {
			loopErr = fmt.Errorf("dispatch: launch kernel: %w", err)
			break
		}
		pendingKernel = kernelEvent

		if opts.DoubleBuffer && transferEvent != nil {
			if err := transferEvent.Wait(); err != nil {
				loopErr = fmt.Errorf("dispatch: wait on transfer: %w", err)
				break
			}
			transferEvent.Release()
			transferEvent = nil
		}

		if opts.DoubleBuffer && !firstBatch {
			prev := current.flip()
			var scanErr error
			prevSize := lastBatchSize(opts.Plan, processed)
			state, scanErr = scanner.Scan(opts.ResultsOut, hostBufs[prev][:prevSize*resultrecord.Size], opts.Config, state)
			if scanErr != nil {
				loopErr = scanErr
				break
			}
		}

		if err := kernelEvent.Wait(); err != nil {
			loopErr = fmt.Errorf("dispatch: wait on kernel: %w", err)
			break
		}

		rq := queue
		if transferQueue != nil {
			rq = transferQueue
		}

		if opts.DoubleBuffer {
			ptr := unsafe.Pointer(&hostBufs[current][0])
			ev, err := rq.EnqueueRead(resultBufs[current], false, int(size)*resultrecord.Size, ptr)
			if err != nil {
				loopErr = fmt.Errorf("dispatch: enqueue async read: %w", err)
				break
			}
			transferEvent = ev
		} else {
			ptr := unsafe.Pointer(&hostBufs[current][0])
			if _, err := rq.EnqueueRead(resultBufs[current], true, int(size)*resultrecord.Size, ptr); err != nil {
				loopErr = fmt.Errorf("dispatch: enqueue sync read: %w", err)
				break
			}
			var scanErr error
			state, scanErr = scanner.Scan(opts.ResultsOut, hostBufs[current][:size*resultrecord.Size], opts.Config, state)
			if scanErr != nil {
				loopErr = scanErr
				break
			}
		}

		kernelEvent.Release()
		pendingKernel = nil
		firstBatch = false
		processed += size
		current = current.flip()

		now := time.Now()
		if reporter.ShouldReport(now) {
			remaining := totalSeeds - processed
			line := progress.Line(now, reporter.Start, state.TotalFound, processed, remaining, opts.Vendor)
			if _, err := io.WriteString(opts.ProgressOut, line); err != nil {
				loopErr = fmt.Errorf("dispatch: write progress: %w", err)
				break
			}
			reporter.MarkReported(now)
		}
	}

	if loopErr == nil && opts.DoubleBuffer && transferEvent != nil {
		if err := transferEvent.Wait(); err != nil {
			loopErr = fmt.Errorf("dispatch: wait on final transfer: %w", err)
		} else {
			transferEvent.Release()
			transferEvent = nil

			finalSlot := current.flip()
			lastSize := lastBatchSize(opts.Plan, processed)
			var scanErr error
			state, scanErr = scanner.Scan(opts.ResultsOut, hostBufs[finalSlot][:lastSize*resultrecord.Size], opts.Config, state)
			if scanErr != nil {
				loopErr = scanErr
			}
		}
	}

	// On an error exit, settle the events still outstanding so the
	// caller's teardown never frees a buffer an in-flight transfer could
	// still touch.
	if transferEvent != nil {
		_ = transferEvent.Wait()
		transferEvent.Release()
	}
	if pendingKernel != nil {
		pendingKernel.Release()
	}

	// A driver failure mid-run still aborts cleanly: whatever was found
	// before the failure is already reported, so the completion line
	// always prints the counts accumulated so far, then the error (if
	// any) propagates to the caller for teardown.
	end := time.Now()
	if _, err := io.WriteString(opts.ProgressOut, progress.CompletionLine(reporter.Start, end, state.TotalFound, processed)); err != nil {
		if loopErr == nil {
			loopErr = fmt.Errorf("dispatch: write completion line: %w", err)
		}
	}

	return state, processed, loopErr
}

// GlobalWorkSizeFor rounds a batch size up to a multiple of the
// work-group size, as OpenCL requires.
func GlobalWorkSizeFor(n int64, g int) int64 {
	if g <= 0 {
		return n
	}
	if n%int64(g) == 0 {
		return n
	}
	return (n/int64(g) + 1) * int64(g)
}

// lastBatchSize recovers the size of the most recently completed batch,
// needed to scan the previous buffer in double-buffered mode. Every batch
// but the last is full, so only a remainder of processed can be short.
func lastBatchSize(p Plan, processed int64) int64 {
	if p.BatchCapacity <= 0 || processed <= 0 {
		return 0
	}
	size := processed % p.BatchCapacity
	if size == 0 {
		size = p.BatchCapacity
	}
	return size
}
