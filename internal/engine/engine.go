//go:build opencl

package engine

import (
	"context"
	"fmt"
	"unsafe"

	"github.com/jgillich/go-opencl/cl"
	"github.com/sirupsen/logrus"

	"github.com/Amr-9/ouija-go/internal/clhost"
	"github.com/Amr-9/ouija-go/internal/dispatch"
	"github.com/Amr-9/ouija-go/internal/kernelcache"
	"github.com/Amr-9/ouija-go/internal/resultrecord"
	"github.com/Amr-9/ouija-go/internal/scanner"
	"github.com/Amr-9/ouija-go/internal/sizer"
)

// Run acquires a device, loads the kernel, dispatches the full search,
// and releases every resource on every exit path. Resources are
// acquired in the documented order (context -> buffers -> kernel args)
// and released in reverse via defer. Cancelling ctx stops the dispatch
// loop after its current batch and still returns cleanly, with whatever
// was found up to that point already scanned and reported.
func Run(ctx context.Context, opts RunOptions) error {
	host, err := clhost.Probe(opts.PlatformIndex, opts.DeviceIndex)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrConfiguration, err)
	}
	defer host.Release()

	queue, err := host.Context.CreateCommandQueue(host.Device, 0)
	if err != nil {
		return fmt.Errorf("%w: create compute queue: %v", ErrDriverBuild, err)
	}
	defer queue.Release()

	var transferQueue *cl.CommandQueue
	if opts.DoubleBuffer {
		transferQueue, err = host.Context.CreateCommandQueue(host.Device, 0)
		if err != nil {
			return fmt.Errorf("%w: create transfer queue: %v", ErrDriverBuild, err)
		}
		defer transferQueue.Release()
	}

	policy := sizer.PolicyFor(host.Info.VendorClass)
	workGroupSize := opts.WorkGroupSize
	if workGroupSize <= 0 {
		workGroupSize = policy.DefaultWorkGroupSize
	}
	if workGroupSize > host.Info.MaxWorkGroupSize {
		logrus.Warnf("requested work group size %d exceeds device maximum %d, clamping", workGroupSize, host.Info.MaxWorkGroupSize)
		workGroupSize = host.Info.MaxWorkGroupSize
	}

	baseBatch := workGroupSize * host.Info.MaxComputeUnits * opts.BatchMultiplier
	batchCapacity := sizer.SafeBatchSize(host.Info, baseBatch)
	logrus.Infof("work group size %d, batch capacity %d", workGroupSize, batchCapacity)

	kernel, err := kernelcache.Load(host.Context, host.Device, opts.ExeDir, opts.Config.FilterName, opts.KernelSource, host.Info.Vendor, policy.BuildFlags)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDriverBuild, err)
	}
	defer kernel.Release()

	// -n 0 means "compile only": the kernel is now built and cached, so
	// there's nothing left to do. No CSV header, no rows, no dispatch.
	if opts.NumSeeds <= 0 {
		return nil
	}

	configBytes := opts.Config.MarshalCL()
	configBuf, err := host.Context.CreateEmptyBuffer(cl.MemReadOnly, len(configBytes))
	if err != nil {
		return fmt.Errorf("%w: create config buffer: %v", ErrDriverBuild, err)
	}
	defer configBuf.Release()
	if _, err := queue.EnqueueWriteBuffer(configBuf, true, 0, len(configBytes), unsafe.Pointer(&configBytes[0]), nil); err != nil {
		return fmt.Errorf("%w: upload config buffer: %v", ErrDriverBuild, err)
	}

	startBytes := [8]byte{}
	copy(startBytes[:], opts.StartingSeed.String())
	if err := kernel.SetArg(0, startBytes); err != nil {
		return fmt.Errorf("%w: set starting_seed arg: %v", ErrDriverBuild, err)
	}
	if err := kernel.SetArg(2, configBuf); err != nil {
		return fmt.Errorf("%w: set config buffer arg: %v", ErrDriverBuild, err)
	}

	numSlots := 1
	if opts.DoubleBuffer {
		numSlots = 2
	}
	var resultBufs [2]dispatch.MemObject
	var hostBufs [2][]byte
	for i := 0; i < numSlots; i++ {
		buf, err := host.Context.CreateEmptyBuffer(cl.MemWriteOnly, batchCapacity*resultrecord.Size)
		if err != nil {
			return fmt.Errorf("%w: create result buffer %d: %v", ErrDriverBuild, i, err)
		}
		defer buf.Release()
		resultBufs[i] = clMem{buf}
		hostBufs[i] = make([]byte, batchCapacity*resultrecord.Size)
	}
	if numSlots == 1 {
		resultBufs[1] = resultBufs[0]
		hostBufs[1] = hostBufs[0]
	}

	fmt.Fprintln(opts.ResultsOut, opts.Config.CSVHeader())
	if w, ok := opts.ResultsOut.(interface{ Flush() error }); ok {
		_ = w.Flush()
	}

	plan := dispatch.Plan{Start: opts.StartingSeed, Total: opts.NumSeeds, BatchCapacity: int64(batchCapacity)}
	cutoffState := scanner.NewCutoffState(opts.Cutoff, opts.AutoCutoff)

	// transferQueue stays a nil dispatch.Queue (not a clQueue wrapping a
	// nil *cl.CommandQueue) when double-buffering is off, so pipeline.go's
	// "transferQueue != nil" check behaves correctly instead of tripping
	// on a non-nil interface holding a nil pointer.
	var dispatchTransferQueue dispatch.Queue
	if opts.DoubleBuffer {
		dispatchTransferQueue = clQueue{transferQueue}
	}

	_, _, err = dispatch.Run(ctx, clQueue{queue}, dispatchTransferQueue, clKernel{kernel}, resultBufs, hostBufs, dispatch.Options{
		Plan:          plan,
		DoubleBuffer:  opts.DoubleBuffer,
		WorkGroupSize: workGroupSize,
		Config:        opts.Config,
		Cutoff:        cutoffState,
		Vendor:        host.Info.VendorClass,
		ProgressOut:   opts.ProgressOut,
		ResultsOut:    opts.ResultsOut,
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDriverRuntime, err)
	}

	return nil
}
