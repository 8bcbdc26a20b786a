package models

import (
	"math"
	"time"

	"github.com/pkg/errors"
)

// Default values used by the game driver
const (
	DefaultBootup          = 1.1
	DefaultAllocatedEnergy = 95_000_000
	DefaultAllocatedMagic  = 7_500_000
	DefaultRunningTime     = time.Hour
)

// Multipliers are the global tuning constants shown in the Wandoos stats
// breakdown. A non-zero TotalOverride replaces the computed product.
type Multipliers struct {
	Equipment         float64
	OSLevel           float64
	AdventureTraining float64
	NGU               float64
	Challenge100      float64
	TotalOverride     float64
}

// DefaultMultipliers returns the multipliers of a mid-game save
func DefaultMultipliers() Multipliers {
	return Multipliers{
		Equipment:         0,
		OSLevel:           4.36,
		AdventureTraining: 0.01,
		NGU:               1.0,
		Challenge100:      1.0,
		TotalOverride:     150.48,
	}
}

// Combined returns the multiplier applied to the base cap for a machine
// with the given bootup.
func (m Multipliers) Combined(bootup float64) float64 {
	if m.TotalOverride != 0 {
		return m.TotalOverride
	}
	return (1 + m.Equipment) *
		(1 + m.OSLevel) *
		bootup *
		(1 + m.AdventureTraining) *
		(1 + m.NGU) *
		(1 + m.Challenge100)
}

// Validate rejects non-finite multipliers. Sign problems surface later as
// ErrInvalidCapacity.
func (m Multipliers) Validate() error {
	fields := []struct {
		name  string
		value float64
	}{
		{"equipment", m.Equipment},
		{"os level", m.OSLevel},
		{"adventure training", m.AdventureTraining},
		{"ngu", m.NGU},
		{"challenge 100", m.Challenge100},
		{"total override", m.TotalOverride},
	}
	for _, f := range fields {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return errors.Wrapf(ErrInvalidConfig, "%s multiplier is not finite", f.name)
		}
	}
	return nil
}

// MachineConfig is the initial state of one machine
type MachineConfig struct {
	Tier            Tier
	Mode            DifficultyMode
	EffectiveLevel  int64
	MagicLevel      int64
	Bootup          float64
	AllocatedEnergy int64
	AllocatedMagic  int64
	Online          bool
}

// DefaultMachineConfig returns a fresh machine of the given tier
func DefaultMachineConfig(t Tier) MachineConfig {
	return MachineConfig{
		Tier:            t,
		Mode:            Normal,
		Bootup:          DefaultBootup,
		AllocatedEnergy: DefaultAllocatedEnergy,
		AllocatedMagic:  DefaultAllocatedMagic,
		Online:          true,
	}
}

// Allocated returns the budget for a resource kind
func (c MachineConfig) Allocated(kind ResourceKind) int64 {
	if kind == Magic {
		return c.AllocatedMagic
	}
	return c.AllocatedEnergy
}

// Validate checks that the machine config is usable
func (c MachineConfig) Validate() error {
	if _, ok := LookupTier(c.Tier); !ok {
		return errors.Wrapf(ErrInvalidConfig, "unknown tier %q", c.Tier)
	}
	if c.Mode != Normal && c.Mode != Evil {
		return errors.Wrapf(ErrInvalidConfig, "unknown difficulty mode %q", c.Mode)
	}
	if c.EffectiveLevel < 0 || c.MagicLevel < 0 {
		return errors.Wrapf(ErrInvalidConfig, "levels must be non-negative (el=%d, ml=%d)",
			c.EffectiveLevel, c.MagicLevel)
	}
	if !(c.Bootup > 0) || math.IsInf(c.Bootup, 0) {
		return errors.Wrapf(ErrInvalidConfig, "bootup must be positive, got %v", c.Bootup)
	}
	if c.AllocatedEnergy < 0 || c.AllocatedMagic < 0 {
		return errors.Wrapf(ErrInvalidConfig, "allocations must be non-negative (energy=%d, magic=%d)",
			c.AllocatedEnergy, c.AllocatedMagic)
	}
	return nil
}

// RunSettings controls a simulation run
type RunSettings struct {
	RunningTime time.Duration
	Verbose     bool
}

// Config is everything a run needs. Machine is used as a template: one
// machine is built per entry of Tiers.
type Config struct {
	Tiers       []Tier
	Machine     MachineConfig
	Multipliers Multipliers
	Run         RunSettings
}

// DefaultConfig mirrors the game driver: all three tiers, one hour, verbose
func DefaultConfig() Config {
	return Config{
		Tiers:       AllTiers(),
		Machine:     DefaultMachineConfig(W98),
		Multipliers: DefaultMultipliers(),
		Run: RunSettings{
			RunningTime: DefaultRunningTime,
			Verbose:     true,
		},
	}
}

// MachineConfigs expands the template into one config per tier
func (c Config) MachineConfigs() []MachineConfig {
	configs := make([]MachineConfig, 0, len(c.Tiers))
	for _, t := range c.Tiers {
		mc := c.Machine
		mc.Tier = t
		configs = append(configs, mc)
	}
	return configs
}

// Validate checks the whole configuration
func (c Config) Validate() error {
	if len(c.Tiers) == 0 {
		return errors.Wrap(ErrInvalidConfig, "at least one tier is required")
	}
	for _, mc := range c.MachineConfigs() {
		if err := mc.Validate(); err != nil {
			return err
		}
	}
	if err := c.Multipliers.Validate(); err != nil {
		return err
	}
	if c.Run.RunningTime <= 0 {
		return errors.Wrapf(ErrInvalidDuration, "running time %s", c.Run.RunningTime)
	}
	return nil
}
