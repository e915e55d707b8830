//go:build opencl

package kernelcache

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jgillich/go-opencl/cl"
	"github.com/sirupsen/logrus"
)

// Dir returns the cache directory for the executable at exeDir,
// creating it if necessary: <exe_dir>/ouija_filters.
func Dir(exeDir string) (string, error) {
	dir := filepath.Join(exeDir, "ouija_filters")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("kernelcache: create cache dir: %w", err)
	}
	return dir, nil
}

func binPath(exeDir, filterName string) (string, error) {
	dir, err := Dir(exeDir)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, filterName+".bin"), nil
}

// Load builds the kernel named "ouija_search" for filterName, trying
// the on-disk binary cache first and falling back to compiling source
// on any cache miss, mismatch, or corruption. buildFlags are appended
// after the common "-I <exeDir> -cl-fast-relaxed-math" flags.
func Load(ctx *cl.Context, device *cl.Device, exeDir, filterName, source, vendor string, buildFlags []string) (*cl.Kernel, error) {
	fp := NewFingerprint(vendor, device.Name(), source)
	path, err := binPath(exeDir, filterName)
	if err != nil {
		return nil, err
	}

	if kernel, ok := tryLoadBinary(ctx, device, path, fp); ok {
		return kernel, nil
	}

	program, err := buildFromSource(ctx, device, exeDir, filterName, source, buildFlags)
	if err != nil {
		return nil, fmt.Errorf("kernelcache: build %q from source: %w", filterName, err)
	}

	persistBinary(program, device, path, fp)

	kernel, err := program.CreateKernel("ouija_search")
	if err != nil {
		return nil, fmt.Errorf("kernelcache: create kernel: %w", err)
	}
	return kernel, nil
}

func tryLoadBinary(ctx *cl.Context, device *cl.Device, path string, want Fingerprint) (*cl.Kernel, bool) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}
	if len(raw) < headerSize {
		return nil, false
	}
	got, ok := decodeFingerprint(raw[:headerSize])
	if !ok || got != want {
		return nil, false
	}

	program, err := ctx.CreateProgramWithBinary(device, raw[headerSize:])
	if err != nil {
		logrus.WithError(err).Warn("kernelcache: cached binary rejected by driver, recompiling from source")
		return nil, false
	}
	if err := program.BuildProgram(nil, ""); err != nil {
		logrus.WithError(err).Warn("kernelcache: cached binary failed to build, recompiling from source")
		return nil, false
	}
	kernel, err := program.CreateKernel("ouija_search")
	if err != nil {
		logrus.WithError(err).Warn("kernelcache: cached binary has no ouija_search kernel, recompiling from source")
		return nil, false
	}
	return kernel, true
}

// buildFromSource synthesizes the full kernel source for filterName —
// an #include of its per-filter template ahead of the master search
// source — and builds it, matching ouija_optimized.c's source assembly
// on a cache miss.
func buildFromSource(ctx *cl.Context, device *cl.Device, exeDir, filterName, source string, buildFlags []string) (*cl.Program, error) {
	full := fmt.Sprintf("#include \"ouija_filters/%s.cl\"\n\n%s", filterName, source)

	program, err := ctx.CreateProgramWithSource([]string{full})
	if err != nil {
		return nil, fmt.Errorf("create program: %w", err)
	}

	flags := fmt.Sprintf("-I %q -cl-fast-relaxed-math", exeDir)
	for _, f := range buildFlags {
		flags += " " + f
	}

	if err := program.BuildProgram([]*cl.Device{device}, flags); err != nil {
		log, logErr := program.GetBuildLog(device)
		if logErr == nil && log != "" {
			return nil, fmt.Errorf("build failed: %w\nbuild log:\n%s", err, log)
		}
		return nil, fmt.Errorf("build failed: %w", err)
	}
	return program, nil
}

// persistBinary writes the compiled binary back to path, prefixed with
// its fingerprint header. Failure is logged and otherwise ignored; a
// missing or unwritable cache never fails the run.
func persistBinary(program *cl.Program, device *cl.Device, path string, fp Fingerprint) {
	binaries, err := program.GetBinaries()
	if err != nil || len(binaries) == 0 {
		logrus.WithError(err).Warn("kernelcache: could not extract compiled binary for caching")
		return
	}

	header := fp.encode()
	out := make([]byte, 0, headerSize+len(binaries[0]))
	out = append(out, header[:]...)
	out = append(out, binaries[0]...)

	if err := os.WriteFile(path, out, 0o644); err != nil {
		logrus.WithError(err).Warn("kernelcache: failed to persist compiled binary")
	}
}
