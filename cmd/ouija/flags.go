package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/pflag"
)

// cutoffFlag implements pflag.Value so -c accepts either an integer or
// the literal string "auto", matching the original's
// strcmp(argv[i+1], "auto") check.
type cutoffFlag struct {
	Value int
	Auto  bool
	set   bool
}

func newCutoffFlag() *cutoffFlag {
	return &cutoffFlag{Value: 1}
}

func (c *cutoffFlag) String() string {
	if !c.set {
		return "1"
	}
	if c.Auto {
		return "auto"
	}
	return strconv.Itoa(c.Value)
}

func (c *cutoffFlag) Set(s string) error {
	if s == "auto" {
		c.Auto = true
		c.Value = 1
		c.set = true
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("invalid cutoff %q: must be an integer or \"auto\"", s)
	}
	c.Value = n
	c.Auto = false
	c.set = true
	return nil
}

func (c *cutoffFlag) Type() string { return "cutoff" }

// cliFlags holds every flag from the original command line, bound via
// pflag so the mix of POSIX shorthands and GNU long-only flags parses
// the way spec.md's CLI surface requires.
type cliFlags struct {
	Help           bool
	Filter         string
	StartingSeed   string
	NumSeeds       int64
	Cutoff         *cutoffFlag
	PlatformID     uint
	DeviceID       uint
	NumGroups      int
	BatchMult      uint
	NoDoubleBuffer bool
	ConfigFile     string
	ListDevices    bool
}

func newFlagSet() (*pflag.FlagSet, *cliFlags) {
	fs := pflag.NewFlagSet("ouija", pflag.ContinueOnError)
	c := &cliFlags{Cutoff: newCutoffFlag()}

	fs.BoolVarP(&c.Help, "help", "h", false, "Shows this help dialog.")
	fs.StringVarP(&c.Filter, "filter", "f", "ouija_template", "Sets the filter used by Ouija to F.")
	fs.StringVarP(&c.StartingSeed, "seed", "s", "", "Sets the starting seed. Use \"random\" for a random starting seed.")
	fs.Int64VarP(&c.NumSeeds, "num-seeds", "n", 2_318_107_019_761, "Sets the number of seeds to search to N.")
	fs.VarP(c.Cutoff, "cutoff", "c", "Sets the cutoff score for filtering results. Use 'auto' for dynamic cutoff.")
	fs.UintVarP(&c.PlatformID, "platform", "p", 0, "Sets the platform ID of the CL device being used.")
	fs.UintVarP(&c.DeviceID, "device", "d", 0, "Sets the device ID of the CL device being used.")
	fs.IntVarP(&c.NumGroups, "groups", "g", 0, "Sets the number of thread groups to G. Auto-detects by vendor if 0.")
	fs.UintVarP(&c.BatchMult, "batch-mult", "b", 100, "Sets batch multiplier. Higher values process more seeds per batch.")
	fs.BoolVar(&c.NoDoubleBuffer, "no-double-buffer", false, "Disables double buffering of result transfers.")
	fs.StringVar(&c.ConfigFile, "config", "", "Load configuration from a JSON file.")
	fs.BoolVar(&c.ListDevices, "list_devices", false, "Lists information about the detected CL devices.")

	return fs, c
}

const helpText = `Valid command line arguments:
-h        Shows this help dialog.
-f <F>    Sets the filter used by Ouija to F. Defaults to ouija_template
-s <S>    Sets the starting seed to S. Defaults to empty seed. Use "random" for a random starting seed.
-n <N>    Sets the number of seeds to search to N. Defaults to 2318107019761.
-c <C>    Sets the cutoff score for filtering results. Use 'auto' for dynamic cutoff. Defaults to 1.
-p <P>    Sets the platform ID of the CL device being used to P. Defaults to 0.
-d <D>    Sets the device ID of the CL device being used to D. Defaults to 0.
-g <G>    Sets the number of thread groups to G. Auto-detects by vendor if 0.
-b <B>    Sets batch multiplier to B. Higher values process more seeds per batch. Defaults to 100.
--no-double-buffer  Disables double buffering of result transfers.
--config <JSON>  Load configuration from a JSON file.
--list_devices   Lists information about the detected CL devices.
`
