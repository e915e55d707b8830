//go:build opencl

package engine

import (
	"unsafe"

	"github.com/jgillich/go-opencl/cl"

	"github.com/Amr-9/ouija-go/internal/dispatch"
)

// The adapters below satisfy internal/dispatch's Queue/Kernel/Event/
// MemObject interfaces over the real go-opencl bindings, so the pipeline
// itself never imports the cl package and can be driven by a fake in
// tests instead.

type clQueue struct{ q *cl.CommandQueue }

func (a clQueue) EnqueueKernel(kernel dispatch.Kernel, globalSize, localSize int) (dispatch.Event, error) {
	k := kernel.(clKernel).k
	ev, err := a.q.EnqueueNDRangeKernel(k, nil, []int{globalSize}, []int{localSize}, nil)
	if err != nil {
		return nil, err
	}
	return clEvent{ev}, nil
}

func (a clQueue) EnqueueRead(buf dispatch.MemObject, blocking bool, size int, ptr unsafe.Pointer) (dispatch.Event, error) {
	m := buf.(clMem).m
	ev, err := a.q.EnqueueReadBuffer(m, blocking, 0, size, ptr, nil)
	if err != nil {
		return nil, err
	}
	return clEvent{ev}, nil
}

type clKernel struct{ k *cl.Kernel }

// SetArg unwraps a clMem-wrapped result buffer back to the raw
// *cl.MemObject the driver expects; every other argument type (the
// int64 batch size/offset, the [8]byte starting seed) passes through
// unchanged.
func (a clKernel) SetArg(i int, v interface{}) error {
	if m, ok := v.(clMem); ok {
		return a.k.SetArg(i, m.m)
	}
	return a.k.SetArg(i, v)
}

type clEvent struct{ e *cl.Event }

func (a clEvent) Wait() error { return a.e.Wait() }
func (a clEvent) Release()    { a.e.Release() }

type clMem struct{ m *cl.MemObject }
