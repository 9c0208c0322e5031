// Package config loads coevolution experiment settings from YAML files and
// environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"

	"coevo/internal/logging"

	"gopkg.in/yaml.v3"
)

// Experiment is one complete run configuration.
type Experiment struct {
	// Name labels the run in listings.
	Name string `json:"name,omitempty" yaml:"name,omitempty"`

	// Seed feeds the run's random source. When FixedSeed is false a fresh
	// seed is drawn and reported instead.
	Seed      int64 `json:"seed" yaml:"seed"`
	FixedSeed bool  `json:"fixed_seed" yaml:"fixed_seed"`

	// Generations is the number of evolutionary steps; generations+1 are
	// assessed.
	Generations int `json:"generations" yaml:"generations"`

	Population PopulationConfig `json:"population" yaml:"population"`
	Scorer     ScorerConfig     `json:"scorer" yaml:"scorer"`
	Selector   SelectorConfig   `json:"selector" yaml:"selector"`
	Mutator    MutatorConfig    `json:"mutator" yaml:"mutator"`
	HallOfFame HallOfFameConfig `json:"hall_of_fame" yaml:"hall_of_fame"`
	Logging    LoggingConfig    `json:"logging" yaml:"logging"`
}

// PopulationConfig shapes both initial populations. Both sides share the
// genome layout but may start at different trait values.
type PopulationConfig struct {
	Size          int `json:"size" yaml:"size"`
	TraitBits     int `json:"trait_bits" yaml:"trait_bits"`
	TraitCount    int `json:"trait_count" yaml:"trait_count"`
	InitialValueA int `json:"initial_value_a" yaml:"initial_value_a"`
	InitialValueB int `json:"initial_value_b" yaml:"initial_value_b"`
}

type ScorerConfig struct {
	// Kind is "minimal" or "f0".
	Kind         string `json:"kind" yaml:"kind"`
	SampleSize   int    `json:"sample_size" yaml:"sample_size"`
	Intransitive bool   `json:"intransitive" yaml:"intransitive"`
}

type SelectorConfig struct {
	// Kind is "fps", "sus" or "tournament".
	Kind           string          `json:"kind" yaml:"kind"`
	Bias           float64         `json:"bias" yaml:"bias"`
	TournamentSize int             `json:"tournament_size,omitempty" yaml:"tournament_size,omitempty"`
	Virulence      VirulenceConfig `json:"virulence" yaml:"virulence"`
}

type VirulenceConfig struct {
	Enabled   bool    `json:"enabled" yaml:"enabled"`
	Lambda    float64 `json:"lambda" yaml:"lambda"`
	Normalise bool    `json:"normalise" yaml:"normalise"`
}

type MutatorConfig struct {
	Rate    float64 `json:"rate" yaml:"rate"`
	BitFlip bool    `json:"bit_flip" yaml:"bit_flip"`
}

// HallOfFameConfig configures the archive and its own scorer, which is
// independent of the main scorer's kind and dynamics.
type HallOfFameConfig struct {
	Enabled      bool   `json:"enabled" yaml:"enabled"`
	Size         int    `json:"size" yaml:"size"`
	Kind         string `json:"kind" yaml:"kind"`
	SampleSize   int    `json:"sample_size" yaml:"sample_size"`
	Intransitive bool   `json:"intransitive" yaml:"intransitive"`
}

type LoggingConfig struct {
	// Level is "info" (default), "debug" or "trace".
	Level string `json:"level" yaml:"level"`
}

// Default reproduces the reference experiment setup.
func Default() *Experiment {
	return &Experiment{
		Seed:        0,
		FixedSeed:   true,
		Generations: 600,
		Population: PopulationConfig{
			Size:       25,
			TraitBits:  100,
			TraitCount: 1,
		},
		Scorer: ScorerConfig{
			Kind:       "minimal",
			SampleSize: 15,
		},
		Selector: SelectorConfig{
			Kind: "fps",
			Bias: 0.000001,
			Virulence: VirulenceConfig{
				Lambda:    0.75,
				Normalise: true,
			},
		},
		Mutator: MutatorConfig{
			Rate: 0.005,
		},
		HallOfFame: HallOfFameConfig{
			Size:       50,
			Kind:       "minimal",
			SampleSize: 5,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// LoadFromFile layers a YAML file over Default.
func LoadFromFile(path string) (*Experiment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return Parse(data)
}

// Parse layers YAML content over Default.
func Parse(data []byte) (*Experiment, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	return cfg, nil
}

// Marshal renders the experiment as YAML.
func (e *Experiment) Marshal() ([]byte, error) {
	return yaml.Marshal(e)
}

// ApplyEnv overrides fields from COEVO_* environment variables.
func (e *Experiment) ApplyEnv() error {
	if v := os.Getenv("COEVO_SEED"); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("COEVO_SEED: %w", err)
		}
		e.Seed = seed
		e.FixedSeed = true
	}
	if v := os.Getenv("COEVO_GENERATIONS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("COEVO_GENERATIONS: %w", err)
		}
		e.Generations = n
	}
	if v := os.Getenv("COEVO_LOG_LEVEL"); v != "" {
		e.Logging.Level = v
	}
	return nil
}

// Validate reports the first invalid setting.
func (e *Experiment) Validate() error {
	if e.Generations <= 0 {
		return fmt.Errorf("generations must be > 0, got %d", e.Generations)
	}
	p := e.Population
	if p.Size <= 0 {
		return fmt.Errorf("population size must be > 0, got %d", p.Size)
	}
	if p.TraitBits <= 0 || p.TraitCount <= 0 {
		return fmt.Errorf("trait_bits and trait_count must be > 0, got %d and %d", p.TraitBits, p.TraitCount)
	}
	if p.InitialValueA < 0 || p.InitialValueA > p.TraitBits {
		return fmt.Errorf("initial_value_a must be in [0, %d], got %d", p.TraitBits, p.InitialValueA)
	}
	if p.InitialValueB < 0 || p.InitialValueB > p.TraitBits {
		return fmt.Errorf("initial_value_b must be in [0, %d], got %d", p.TraitBits, p.InitialValueB)
	}

	switch e.Scorer.Kind {
	case "", "minimal":
		if e.Scorer.SampleSize <= 0 {
			return fmt.Errorf("scorer sample_size must be > 0, got %d", e.Scorer.SampleSize)
		}
	case "f0":
	default:
		return fmt.Errorf("invalid scorer kind: %s (valid: minimal, f0)", e.Scorer.Kind)
	}

	switch e.Selector.Kind {
	case "", "fps", "sus":
		if e.Selector.Bias <= 0 {
			return fmt.Errorf("selector bias must be > 0, got %v", e.Selector.Bias)
		}
	case "tournament":
		if e.Selector.TournamentSize <= 0 {
			return fmt.Errorf("tournament_size must be > 0, got %d", e.Selector.TournamentSize)
		}
	default:
		return fmt.Errorf("invalid selector kind: %s (valid: fps, sus, tournament)", e.Selector.Kind)
	}
	if v := e.Selector.Virulence; v.Enabled && (v.Lambda <= 0 || v.Lambda > 1) {
		return fmt.Errorf("virulence lambda must be in (0,1], got %v", v.Lambda)
	}

	if e.Mutator.Rate < 0 || e.Mutator.Rate > 1 {
		return fmt.Errorf("mutation rate must be in [0,1], got %v", e.Mutator.Rate)
	}
	if h := e.HallOfFame; h.Enabled {
		if h.Size <= 0 || h.SampleSize <= 0 {
			return fmt.Errorf("hall_of_fame size and sample_size must be > 0, got %d and %d", h.Size, h.SampleSize)
		}
		if h.Kind != "" && h.Kind != "minimal" && h.Kind != "f0" {
			return fmt.Errorf("invalid hall_of_fame kind: %s (valid: minimal, f0)", h.Kind)
		}
	}
	if !logging.ValidLevel(e.Logging.Level) {
		return fmt.Errorf("invalid log level: %s (valid: info, debug, trace, or empty for default)", e.Logging.Level)
	}
	return nil
}
