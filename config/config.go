// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	World       WorldConfig       `yaml:"world"`
	Population  PopulationConfig  `yaml:"population"`
	Species     SpeciesTable      `yaml:"species"`
	Energy      EnergyConfig      `yaml:"energy"`
	Interaction InteractionConfig `yaml:"interaction"`
	Survival    SurvivalConfig    `yaml:"survival"`
	Telemetry   TelemetryConfig   `yaml:"telemetry"`
	Screen      ScreenConfig      `yaml:"screen"`
	Web         WebConfig         `yaml:"web"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// WorldConfig holds the toroidal grid dimensions.
// The grid size is fixed for the lifetime of a simulation.
type WorldConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// PopulationConfig holds the initial seeding counts.
type PopulationConfig struct {
	InitialPredators int `yaml:"initial_predators"`
	InitialPrey      int `yaml:"initial_prey"`
}

// SpeciesConfig is one row of the species behavior table.
type SpeciesConfig struct {
	BaseStrength   float64 `yaml:"base_strength"`   // Strength before the creation mutation
	MutationSigma  float64 `yaml:"mutation_sigma"`  // Stddev of the normal strength perturbation
	ReproThreshold float64 `yaml:"repro_threshold"` // Energy needed (and spent) per offspring
}

// SpeciesTable holds per-species parameters.
type SpeciesTable struct {
	Predator SpeciesConfig `yaml:"predator"`
	Prey     SpeciesConfig `yaml:"prey"`
}

// EnergyConfig holds energy accrual parameters.
type EnergyConfig struct {
	AccrualPerTick float64 `yaml:"accrual_per_tick"`
}

// InteractionConfig holds the strength transfer rules for conflicts.
type InteractionConfig struct {
	ContestBonus     float64 `yaml:"contest_bonus"`      // Fraction of loser strength gained by contest winner
	PreyDefenseBonus float64 `yaml:"prey_defense_bonus"` // Fraction of predator strength gained by a prey that repels it
}

// SurvivalConfig holds death and starvation parameters.
type SurvivalConfig struct {
	DeathThreshold   float64 `yaml:"death_threshold"`   // Agents below this strength are culled
	PredationSamples int     `yaml:"predation_samples"` // Neighbor draws per predation sweep
	StarvationDecay  float64 `yaml:"starvation_decay"`  // Strength fraction lost by a predator that made no kill
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         int `yaml:"stats_window"` // Ticks per stats window
	BookmarkHistorySize int `yaml:"bookmark_history_size"`
	PerfCollectorWindow int `yaml:"perf_collector_window"`
}

// ScreenConfig holds display settings for the graphical viewer.
type ScreenConfig struct {
	CellSize   int `yaml:"cell_size"`
	PanelWidth int `yaml:"panel_width"`
	TargetFPS  int `yaml:"target_fps"`
}

// WebConfig holds settings for the websocket frame server.
type WebConfig struct {
	Addr            string  `yaml:"addr"`
	FrameIntervalMS int     `yaml:"frame_interval_ms"`
	TicksPerSecond  float64 `yaml:"ticks_per_second"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	Cells        int              // World.Width * World.Height
	SpeciesTable [2]SpeciesConfig // indexed by components.Species
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Default returns a fresh copy of the embedded defaults.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults invalid: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	cfg.ComputeDerived()

	return cfg, nil
}

// Clone returns a deep copy of the config.
func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}

// Validate rejects configurations the engine cannot run.
func (c *Config) Validate() error {
	var errs []error
	if c.World.Width < 1 || c.World.Height < 1 {
		errs = append(errs, fmt.Errorf("world size %dx%d must be positive", c.World.Width, c.World.Height))
	}
	if c.Population.InitialPredators < 0 || c.Population.InitialPrey < 0 {
		errs = append(errs, errors.New("initial population counts must not be negative"))
	}
	if c.Population.InitialPredators+c.Population.InitialPrey > c.World.Width*c.World.Height {
		errs = append(errs, fmt.Errorf("initial population %d exceeds %d cells",
			c.Population.InitialPredators+c.Population.InitialPrey, c.World.Width*c.World.Height))
	}
	species := []struct {
		name string
		sp   SpeciesConfig
	}{
		{"predator", c.Species.Predator},
		{"prey", c.Species.Prey},
	}
	for _, s := range species {
		if s.sp.ReproThreshold <= 0 {
			errs = append(errs, fmt.Errorf("species.%s.repro_threshold must be positive", s.name))
		}
		if s.sp.MutationSigma < 0 {
			errs = append(errs, fmt.Errorf("species.%s.mutation_sigma must not be negative", s.name))
		}
	}
	if c.Energy.AccrualPerTick < 0 {
		errs = append(errs, errors.New("energy.accrual_per_tick must not be negative"))
	}
	if c.Survival.PredationSamples < 0 {
		errs = append(errs, errors.New("survival.predation_samples must not be negative"))
	}
	if c.Telemetry.StatsWindow < 1 {
		errs = append(errs, errors.New("telemetry.stats_window must be at least 1 tick"))
	}
	if c.Screen.CellSize < 1 {
		errs = append(errs, errors.New("screen.cell_size must be at least 1 pixel"))
	}
	if c.Web.TicksPerSecond <= 0 || c.Web.FrameIntervalMS < 1 {
		errs = append(errs, errors.New("web.ticks_per_second and web.frame_interval_ms must be positive"))
	}
	return errors.Join(errs...)
}

// ComputeDerived calculates values derived from loaded config.
// Call again after mutating a loaded config in place.
func (c *Config) ComputeDerived() {
	c.Derived.Cells = c.World.Width * c.World.Height
	c.Derived.SpeciesTable = [2]SpeciesConfig{c.Species.Predator, c.Species.Prey}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
