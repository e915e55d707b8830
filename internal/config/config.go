// Package config loads a filter configuration from a JSON file on disk,
// probing the same search path the original loader used: the
// executable's own ouija_configs directory, then the current working
// directory's ouija_configs, then the literal path given on the command
// line.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Amr-9/ouija-go/internal/filterconfig"
)

// wireDesire and wireConfig mirror HostDesire/OuijaConfig's JSON-facing
// fields; only the fields a filter file actually needs to set are
// exposed here; deck/stake/item-table resolution is out of scope.
type wireDesire struct {
	Value        int32 `json:"value"`
	JokerEdition int32 `json:"jokeredition"`
	DesireByAnte int32 `json:"desireByAnte"`
}

type wireConfig struct {
	Needs                 []wireDesire `json:"needs"`
	Wants                 []wireDesire `json:"wants"`
	MaxSearchAnte         int32        `json:"maxSearchAnte"`
	Deck                  int32        `json:"deck"`
	Stake                 int32        `json:"stake"`
	Filter                string       `json:"filter"`
	ScoreNaturalNegatives bool         `json:"scoreNaturalNegatives"`
	ScoreDesiredNegatives bool         `json:"scoreDesiredNegatives"`
}

// candidatePaths returns the search order for name: exeDir/ouija_configs/name[.ouija.json],
// cwd/ouija_configs/name[.ouija.json], then name itself.
func candidatePaths(exeDir, name string) []string {
	withSuffix := name
	if filepath.Ext(name) == "" {
		withSuffix = name + ".ouija.json"
	}

	var out []string
	if exeDir != "" {
		out = append(out,
			filepath.Join(exeDir, "ouija_configs", name),
			filepath.Join(exeDir, "ouija_configs", withSuffix),
		)
	}
	out = append(out,
		filepath.Join(".", "ouija_configs", name),
		filepath.Join(".", "ouija_configs", withSuffix),
		name,
	)
	return out
}

// Load resolves name against the search order and decodes the first
// file found. It returns an error if no candidate path exists or the
// file that does exist fails to parse; the caller (cmd/ouija) is
// responsible for falling back to filterconfig.Default() and logging a
// notice, matching the original's "Failed to load configuration from
// %s. Using defaults." behavior.
func Load(exeDir, name string) (filterconfig.FilterConfig, error) {
	var lastErr error
	for _, path := range candidatePaths(exeDir, name) {
		data, err := os.ReadFile(path)
		if err != nil {
			lastErr = err
			continue
		}
		return decode(data)
	}
	return filterconfig.FilterConfig{}, fmt.Errorf("config: no candidate path for %q found: %w", name, lastErr)
}

func decode(data []byte) (filterconfig.FilterConfig, error) {
	var w wireConfig
	if err := json.Unmarshal(data, &w); err != nil {
		return filterconfig.FilterConfig{}, fmt.Errorf("config: parse: %w", err)
	}

	cfg := filterconfig.FilterConfig{
		MaxSearchAnte:         w.MaxSearchAnte,
		Deck:                  w.Deck,
		Stake:                 w.Stake,
		FilterName:            w.Filter,
		ScoreNaturalNegatives: w.ScoreNaturalNegatives,
		ScoreDesiredNegatives: w.ScoreDesiredNegatives,
	}
	for _, n := range w.Needs {
		cfg.Needs = append(cfg.Needs, filterconfig.Desire{Value: n.Value, JokerEdition: n.JokerEdition, DesireByAnte: n.DesireByAnte})
	}
	for _, wa := range w.Wants {
		cfg.Wants = append(cfg.Wants, filterconfig.Desire{Value: wa.Value, JokerEdition: wa.JokerEdition, DesireByAnte: wa.DesireByAnte})
	}
	return cfg, nil
}
