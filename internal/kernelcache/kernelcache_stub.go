//go:build !opencl

package kernelcache

import (
	"fmt"
	"os"
	"path/filepath"
)

// Dir still works without OpenCL: creating the cache directory doesn't
// need a device. Kept available so cache-inspection tooling and tests
// can resolve the cache path without a driver.
func Dir(exeDir string) (string, error) {
	dir := filepath.Join(exeDir, "ouija_filters")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("kernelcache: create cache dir: %w", err)
	}
	return dir, nil
}
