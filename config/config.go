// Package config provides configuration loading and access for the
// simulation host. The kernel itself never reads the global config; it
// receives values at construction and per-tick snapshots.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/solhaven/stargarden/components"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Physics   PhysicsConfig   `yaml:"physics"`
	Life      LifeConfig      `yaml:"life"`
	Resources ResourcesConfig `yaml:"resources"`
	Universe  UniverseConfig  `yaml:"universe"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// PhysicsConfig holds the physical constants of a tick. The host may mutate
// it between ticks (the configuration surface owns it); the kernel sees an
// immutable snapshot per tick.
type PhysicsConfig struct {
	DT              float64 `yaml:"dt"`               // seconds per tick at 1x speed
	MaxDT           float64 `yaml:"max_dt"`           // host-side clamp for degenerate deltas
	G               float64 `yaml:"g"`                // gravitational constant
	SofteningSq     float64 `yaml:"softening_sq"`     // squared softening factor
	Drag            float64 `yaml:"drag"`             // velocity damping per second
	BoundaryRadius  float64 `yaml:"boundary_radius"`  // world sphere radius
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // host scales dt by this
}

// StageValues holds one tunable value per life stage.
type StageValues struct {
	Microbial   float64 `yaml:"microbial"`
	Plant       float64 `yaml:"plant"`
	Animal      float64 `yaml:"animal"`
	Intelligent float64 `yaml:"intelligent"`
}

// Array returns the values indexed by stage.
func (s StageValues) Array() [components.NumStages]float64 {
	return [components.NumStages]float64{s.Microbial, s.Plant, s.Animal, s.Intelligent}
}

// LifeConfig holds life state machine tunables. The probability constants
// are play-testing knobs; loading only enforces the invariants (chances in
// [0,1], growth monotone increasing by stage).
type LifeConfig struct {
	SpawnBaseChance   float64     `yaml:"spawn_base_chance"`   // per planet per tick
	AdvanceBaseChance float64     `yaml:"advance_base_chance"` // per living planet per tick
	SeedPopulation    float64     `yaml:"seed_population"`     // population at spawn
	SpawnMultiplier   float64     `yaml:"spawn_multiplier"`    // research-sourced, read-only to the kernel
	EvolutionSpeed    float64     `yaml:"evolution_speed"`     // research-sourced, read-only to the kernel
	GrowthRates       StageValues `yaml:"growth_rates"`        // population growth per second
}

// ResourcesConfig holds the accrual pipeline production constants.
type ResourcesConfig struct {
	DustRate           float64     `yaml:"dust_rate"`
	CometRate          float64     `yaml:"comet_rate"`
	EnergyPerMass      float64     `yaml:"energy_per_mass"`
	Organic            StageValues `yaml:"organic"`
	Biomass            StageValues `yaml:"biomass"`
	CognitionPerCapita float64     `yaml:"cognition_per_capita"`
	ActivityHalfSpeed  float64     `yaml:"activity_half_speed"`
	ActivitySmoothing  float64     `yaml:"activity_smoothing"` // per second
}

// UniverseConfig holds the seeding parameters for the starting roster.
type UniverseConfig struct {
	StarMass   float64 `yaml:"star_mass"`
	StarRadius float64 `yaml:"star_radius"`
	Planets    int     `yaml:"planets"`
	MoonChance float64 `yaml:"moon_chance"` // chance each planet gets a moon
	DustCount  int     `yaml:"dust_count"`
	CometCount int     `yaml:"comet_count"`
	MinOrbit   float64 `yaml:"min_orbit"`
	MaxOrbit   float64 `yaml:"max_orbit"`
	NoiseScale float64 `yaml:"noise_scale"` // habitability noise frequency
}

// TelemetryConfig holds stats collection settings.
type TelemetryConfig struct {
	StatsWindow float64 `yaml:"stats_window"` // seconds per stats window
	PerfWindow  int     `yaml:"perf_window"`  // ticks in the perf rolling window
	LogEvery    float64 `yaml:"log_every"`    // seconds between world-state logs
}

// DerivedConfig holds values computed after loading.
type DerivedConfig struct {
	GrowthRates  [components.NumStages]float64
	OrganicRates [components.NumStages]float64
	BiomassRates [components.NumStages]float64
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults
// if path is empty. Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded
// defaults. If path is empty, only embedded defaults are used.
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

	cfg.computeDerived()

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.GrowthRates = c.Life.GrowthRates.Array()
	c.Derived.OrganicRates = c.Resources.Organic.Array()
	c.Derived.BiomassRates = c.Resources.Biomass.Array()
}

// validate rejects configurations before they reach the kernel; the kernel
// is not responsible for validating what the config surface hands it.
func (c *Config) validate() error {
	if c.Physics.G < 0 {
		return fmt.Errorf("config: gravitational constant %v must be non-negative", c.Physics.G)
	}
	if c.Physics.SofteningSq < 0 {
		return fmt.Errorf("config: softening_sq %v must be non-negative", c.Physics.SofteningSq)
	}
	if c.Physics.Drag < 0 {
		return fmt.Errorf("config: drag %v must be non-negative", c.Physics.Drag)
	}
	if c.Physics.BoundaryRadius <= 0 {
		return fmt.Errorf("config: boundary_radius %v must be positive", c.Physics.BoundaryRadius)
	}
	if c.Life.SpawnBaseChance < 0 || c.Life.SpawnBaseChance > 1 {
		return fmt.Errorf("config: spawn_base_chance %v outside [0,1]", c.Life.SpawnBaseChance)
	}
	if c.Life.AdvanceBaseChance < 0 || c.Life.AdvanceBaseChance > 1 {
		return fmt.Errorf("config: advance_base_chance %v outside [0,1]", c.Life.AdvanceBaseChance)
	}

	rates := c.Derived.GrowthRates
	for i := 1; i < len(rates); i++ {
		if rates[i] <= rates[i-1] {
			return fmt.Errorf("config: growth_rates must be strictly increasing by stage, got %v", rates)
		}
	}

	return nil
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}
