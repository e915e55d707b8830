package main

import "testing"

func TestCutoffFlagParsesAuto(t *testing.T) {
	c := newCutoffFlag()
	if err := c.Set("auto"); err != nil {
		t.Fatalf("Set(auto): %v", err)
	}
	if !c.Auto {
		t.Error("expected Auto=true")
	}
	if c.String() != "auto" {
		t.Errorf("String() = %q, want %q", c.String(), "auto")
	}
}

func TestCutoffFlagParsesInt(t *testing.T) {
	c := newCutoffFlag()
	if err := c.Set("42"); err != nil {
		t.Fatalf("Set(42): %v", err)
	}
	if c.Auto || c.Value != 42 {
		t.Errorf("c = %+v, want Value=42 Auto=false", c)
	}
}

func TestCutoffFlagRejectsGarbage(t *testing.T) {
	c := newCutoffFlag()
	if err := c.Set("not-a-number"); err == nil {
		t.Error("expected error for non-integer, non-auto cutoff")
	}
}

func TestNewFlagSetDefaults(t *testing.T) {
	_, c := newFlagSet()
	if c.Filter != "ouija_template" {
		t.Errorf("default Filter = %q", c.Filter)
	}
	if c.NumSeeds != 2_318_107_019_761 {
		t.Errorf("default NumSeeds = %d", c.NumSeeds)
	}
	if c.NumGroups != 0 {
		t.Errorf("default NumGroups = %d", c.NumGroups)
	}
	if c.BatchMult != 100 {
		t.Errorf("default BatchMult = %d", c.BatchMult)
	}
}

func TestFlagSetParsesShortAndLongFlags(t *testing.T) {
	fs, c := newFlagSet()
	args := []string{"-f", "myfilter", "-c", "auto", "--no-double-buffer", "-n", "500"}
	if err := fs.Parse(args); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if c.Filter != "myfilter" {
		t.Errorf("Filter = %q, want myfilter", c.Filter)
	}
	if !c.Cutoff.Auto {
		t.Error("expected Cutoff.Auto = true")
	}
	if !c.NoDoubleBuffer {
		t.Error("expected NoDoubleBuffer = true")
	}
	if c.NumSeeds != 500 {
		t.Errorf("NumSeeds = %d, want 500", c.NumSeeds)
	}
}
