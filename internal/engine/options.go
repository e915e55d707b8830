package engine

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/Amr-9/ouija-go/internal/filterconfig"
	"github.com/Amr-9/ouija-go/internal/seed"
)

// RunOptions are the fully-resolved, validated inputs to one search
// run; cmd/ouija is responsible for turning flags into this struct.
// Shared between the opencl and non-opencl builds so the CLI doesn't
// need its own build-tagged copy.
type RunOptions struct {
	PlatformIndex   int
	DeviceIndex     int
	StartingSeed    seed.Value
	NumSeeds        int64
	Cutoff          int
	AutoCutoff      bool
	WorkGroupSize   int // 0 means "use the vendor default"
	BatchMultiplier int
	DoubleBuffer    bool
	Config          filterconfig.FilterConfig
	KernelSource    string // pre-read contents of lib/ouija_search.cl
	ExeDir          string
	ResultsOut      io.Writer
	ProgressOut     io.Writer
}

// ReadKernelSource loads the master kernel template from
// <exeDir>/lib/ouija_search.cl, the file the kernel cache's source
// fallback compiles when no cached binary matches. Reading the file
// doesn't need a device, so this works in both build configurations.
func ReadKernelSource(exeDir string) (string, error) {
	path := filepath.Join(exeDir, "lib", "ouija_search.cl")
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: read kernel source %s: %v", ErrConfiguration, path, err)
	}
	return string(data), nil
}

// ExecutableDir returns the directory containing the running binary,
// falling back to "." if it can't be determined, matching the
// original's GetModuleFileNameA failure fallback.
func ExecutableDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}
