// Package config builds engine configurations from named presets and TOML
// files.
package config

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/plus3/blockfall/engine"
)

// DefaultPreset is used when neither a file nor a flag names one.
const DefaultPreset = "classic"

var presets = map[string]func() engine.Config{
	"classic": engine.DefaultConfig,
	"compact": func() engine.Config {
		cfg := engine.DefaultConfig()
		cfg.Width = 8
		cfg.Height = 16
		cfg.InitialFallInterval = 600 * time.Millisecond
		cfg.MinFallInterval = 120 * time.Millisecond
		cfg.FallSpeedup = 25 * time.Millisecond
		cfg.ScoreTable = map[int]int{1: 40, 2: 100, 3: 300, 4: 1200}
		cfg.ScoreBase = 40
		cfg.LinesPerLevel = 8
		return cfg
	},
}

// Presets lists the preset names in sorted order.
func Presets() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Preset returns a named configuration.
func Preset(name string) (engine.Config, error) {
	build, ok := presets[strings.ToLower(name)]
	if !ok {
		return engine.Config{}, fmt.Errorf("unknown preset %q (have %s)", name, strings.Join(Presets(), ", "))
	}
	return build(), nil
}

// Settings is everything a front end needs to build an engine.
type Settings struct {
	Engine engine.Config
	// Seed fixes the piece sequence when HasSeed is set.
	Seed    uint64
	HasSeed bool
}

// file mirrors the TOML layout. Pointers distinguish absent keys from zero.
type file struct {
	Preset              string  `toml:"preset"`
	Width               *int    `toml:"width"`
	Height              *int    `toml:"height"`
	InitialFallInterval *string `toml:"initial_fall_interval"`
	MinFallInterval     *string `toml:"min_fall_interval"`
	FallSpeedup         *string `toml:"fall_speedup"`
	ScoreTable          []int   `toml:"score_table"`
	ScoreBase           *int    `toml:"score_base"`
	SpawnColumn         *int    `toml:"spawn_column"`
	LinesPerLevel       *int    `toml:"lines_per_level"`
	Seed                *uint64 `toml:"seed"`
}

// Load reads a TOML file. Keys present in the file override the preset it
// names, or DefaultPreset. The result is validated.
func Load(path string) (Settings, error) {
	var f file
	meta, err := toml.DecodeFile(path, &f)
	if err != nil {
		return Settings{}, fmt.Errorf("loading %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Settings{}, fmt.Errorf("loading %s: unknown keys %s", path, strings.Join(keys, ", "))
	}

	s, err := f.settings()
	if err != nil {
		return Settings{}, fmt.Errorf("loading %s: %w", path, err)
	}
	return s, nil
}

// Parse is Load for an in-memory document.
func Parse(doc string) (Settings, error) {
	var f file
	if _, err := toml.Decode(doc, &f); err != nil {
		return Settings{}, err
	}
	return f.settings()
}

func (f file) settings() (Settings, error) {
	name := f.Preset
	if name == "" {
		name = DefaultPreset
	}
	cfg, err := Preset(name)
	if err != nil {
		return Settings{}, err
	}

	setInt := func(dst *int, src *int) {
		if src != nil {
			*dst = *src
		}
	}
	setInt(&cfg.Width, f.Width)
	setInt(&cfg.Height, f.Height)
	setInt(&cfg.ScoreBase, f.ScoreBase)
	setInt(&cfg.SpawnColumn, f.SpawnColumn)
	setInt(&cfg.LinesPerLevel, f.LinesPerLevel)

	durations := []struct {
		key string
		src *string
		dst *time.Duration
	}{
		{"initial_fall_interval", f.InitialFallInterval, &cfg.InitialFallInterval},
		{"min_fall_interval", f.MinFallInterval, &cfg.MinFallInterval},
		{"fall_speedup", f.FallSpeedup, &cfg.FallSpeedup},
	}
	for _, d := range durations {
		if d.src == nil {
			continue
		}
		v, err := time.ParseDuration(*d.src)
		if err != nil {
			return Settings{}, fmt.Errorf("%s: %w", d.key, err)
		}
		*d.dst = v
	}

	if f.ScoreTable != nil {
		cfg.ScoreTable = make(map[int]int, len(f.ScoreTable))
		for i, pts := range f.ScoreTable {
			cfg.ScoreTable[i+1] = pts
		}
	}

	if err := cfg.Validate(); err != nil {
		return Settings{}, err
	}

	s := Settings{Engine: cfg}
	if f.Seed != nil {
		s.Seed = *f.Seed
		s.HasSeed = true
	}
	return s, nil
}

// Resolve loads path when it is set and falls back to the named preset.
func Resolve(path, preset string) (Settings, error) {
	if path != "" {
		return Load(path)
	}
	cfg, err := Preset(preset)
	if err != nil {
		return Settings{}, err
	}
	return Settings{Engine: cfg}, nil
}
