// Command ouija drives a GPU brute-force search over the base-35 seed
// space, scoring each candidate against a filter configuration and
// streaming matches to stdout as they're found.
package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/Amr-9/ouija-go/internal/clhost"
	"github.com/Amr-9/ouija-go/internal/config"
	"github.com/Amr-9/ouija-go/internal/engine"
	"github.com/Amr-9/ouija-go/internal/filterconfig"
	"github.com/Amr-9/ouija-go/internal/seed"
)

func main() {
	logrus.SetOutput(os.Stderr)

	fs, flags := newFlagSet()
	if err := fs.Parse(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if flags.Help {
		fmt.Print(helpText)
		os.Exit(0)
	}

	if flags.ListDevices {
		runListDevices()
		return
	}

	fmt.Println("Ouija-CLI Beta v0.4.3")

	startingSeed := resolveStartingSeed(flags.StartingSeed)

	cfg := resolveConfig(flags)

	if warning, err := cfg.Validate(); err != nil {
		logrus.Fatalf("configuration error: %v", err)
	} else if warning != "" {
		logrus.Warn(warning)
	}

	exeDir := engine.ExecutableDir()
	kernelSource, err := engine.ReadKernelSource(exeDir)
	if err != nil {
		logrus.Fatalf("%v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		if _, ok := <-sigChan; ok {
			logrus.Warn("received interrupt, stopping after the current batch")
			cancel()
		}
	}()
	defer signal.Stop(sigChan)

	err = engine.Run(ctx, engine.RunOptions{
		PlatformIndex:   int(flags.PlatformID),
		DeviceIndex:     int(flags.DeviceID),
		StartingSeed:    startingSeed,
		NumSeeds:        flags.NumSeeds,
		Cutoff:          flags.Cutoff.Value,
		AutoCutoff:      flags.Cutoff.Auto,
		WorkGroupSize:   flags.NumGroups,
		BatchMultiplier: int(flags.BatchMult),
		DoubleBuffer:    !flags.NoDoubleBuffer,
		Config:          cfg,
		KernelSource:    kernelSource,
		ExeDir:          exeDir,
		ResultsOut:      os.Stdout,
		ProgressOut:     os.Stdout,
	})
	if err != nil {
		logrus.Fatalf("%v", err)
	}
}

func resolveStartingSeed(s string) seed.Value {
	if s == "" {
		return 0
	}
	if s == "random" || len(s) > 8 {
		return randomSeed()
	}
	v, err := seed.Parse(s)
	if err != nil {
		logrus.Fatalf("invalid starting seed %q: %v", s, err)
	}
	fmt.Printf("Starting seed set to %s\n", v.String())
	return v
}

// randomSeed picks a uniformly random point in the seed space, matching
// the original's per-character rand()%35 loop (here done in one step
// since seed.Value is a plain integer over the same range).
func randomSeed() seed.Value {
	return seed.Value(rand.Int63n(int64(seed.Space)))
}

func resolveConfig(flags *cliFlags) filterconfig.FilterConfig {
	cfg := filterconfig.Default()
	cfg.FilterName = flags.Filter

	if flags.ConfigFile == "" {
		return cfg
	}

	loaded, err := config.Load(engine.ExecutableDir(), flags.ConfigFile)
	if err != nil {
		logrus.Warnf("Failed to load configuration from %s. Using defaults.", flags.ConfigFile)
		return cfg
	}
	if loaded.FilterName == "" {
		loaded.FilterName = flags.Filter
	}
	fmt.Printf("Configuration loaded: %d needs, %d wants, max ante %d\n", len(loaded.Needs), len(loaded.Wants), loaded.MaxSearchAnte)
	return loaded
}

func runListDevices() {
	devices, err := clhost.ListDevices()
	if err != nil {
		logrus.Fatalf("%v", err)
	}
	if len(devices) == 0 {
		fmt.Println("No OpenCL devices found.")
		return
	}
	for _, d := range devices {
		fmt.Printf("\nPlatform ID %d, Device ID %d\n", d.PlatformIndex, d.DeviceIndex)
		fmt.Printf("Name: %s\n", d.Name)
		fmt.Printf("Vendor: %s\n", d.Vendor)
		fmt.Printf("Compute Units: %d\n", d.MaxComputeUnits)
		fmt.Printf("Clock Frequency: %dMHz\n", d.MaxClockFrequency)
	}
}
