package dispatch

import "unsafe"

// Event is the subset of *cl.Event the pipeline needs: wait for an
// operation to complete, then release its handle. Kept as an interface
// so the double-buffer loop can be driven by a fake in tests without a
// real device.
type Event interface {
	Wait() error
	Release()
}

// MemObject is an opaque device buffer handle, passed back to the same
// Queue implementation that created it. The pipeline never looks inside
// it.
type MemObject interface{}

// Kernel is the subset of *cl.Kernel the pipeline needs: binding the
// per-batch arguments (seeds_in_batch, result buffer, batch_offset).
// The static args (starting_seed, config buffer) are bound once by the
// caller before Run starts.
type Kernel interface {
	SetArg(index int, val interface{}) error
}

// Queue is the subset of *cl.CommandQueue the pipeline needs: launching
// the kernel and reading a result buffer back to the host, each
// producing an Event the caller can wait on.
type Queue interface {
	EnqueueKernel(kernel Kernel, globalSize, localSize int) (Event, error)
	EnqueueRead(buf MemObject, blocking bool, size int, ptr unsafe.Pointer) (Event, error)
}
