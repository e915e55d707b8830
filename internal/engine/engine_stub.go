//go:build !opencl

package engine

import (
	"context"
	"fmt"
)

// Run always fails on a build without the opencl tag: there is no
// driver to probe, compile against, or dispatch to. Rebuild with
// "-tags opencl" against a machine with OpenCL headers and a driver
// installed to run an actual search.
func Run(ctx context.Context, opts RunOptions) error {
	return fmt.Errorf("%w: this binary was built without OpenCL support (rebuild with -tags opencl)", ErrConfiguration)
}
