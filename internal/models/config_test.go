package models

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, AllTiers(), cfg.Tiers)
	assert.Equal(t, time.Hour, cfg.Run.RunningTime)
	assert.True(t, cfg.Run.Verbose)
	assert.True(t, cfg.Machine.Online)
	assert.Equal(t, 1.1, cfg.Machine.Bootup)
	assert.Equal(t, int64(95_000_000), cfg.Machine.AllocatedEnergy)
	assert.Equal(t, int64(7_500_000), cfg.Machine.AllocatedMagic)
}

func TestMachineConfigsExpandTiers(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Machine.EffectiveLevel = 12

	configs := cfg.MachineConfigs()
	require.Len(t, configs, 3)
	for i, mc := range configs {
		assert.Equal(t, cfg.Tiers[i], mc.Tier)
		assert.Equal(t, int64(12), mc.EffectiveLevel)
	}
}

func TestCombinedOverrideReplacesProduct(t *testing.T) {
	m := DefaultMultipliers()
	assert.Equal(t, 150.48, m.Combined(1.1))
	assert.Equal(t, 150.48, m.Combined(1000), "override must ignore bootup")

	m.TotalOverride = 0
	want := 1.0 * 5.36 * 1.1 * 1.01 * 2 * 2
	assert.InDelta(t, want, m.Combined(1.1), 1e-9)
}

func TestMultipliersRejectNonFinite(t *testing.T) {
	m := DefaultMultipliers()
	m.NGU = math.NaN()
	require.ErrorIs(t, m.Validate(), ErrInvalidConfig)

	m = DefaultMultipliers()
	m.TotalOverride = math.Inf(1)
	require.ErrorIs(t, m.Validate(), ErrInvalidConfig)
}

func TestMachineConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*MachineConfig)
	}{
		{"unknown tier", func(c *MachineConfig) { c.Tier = "W2000" }},
		{"unknown mode", func(c *MachineConfig) { c.Mode = "sadistic" }},
		{"negative el", func(c *MachineConfig) { c.EffectiveLevel = -1 }},
		{"negative ml", func(c *MachineConfig) { c.MagicLevel = -5 }},
		{"zero bootup", func(c *MachineConfig) { c.Bootup = 0 }},
		{"nan bootup", func(c *MachineConfig) { c.Bootup = math.NaN() }},
		{"negative energy", func(c *MachineConfig) { c.AllocatedEnergy = -1 }},
		{"negative magic", func(c *MachineConfig) { c.AllocatedMagic = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultMachineConfig(W98)
			tt.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}

func TestConfigValidateRun(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Run.RunningTime = 0
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidDuration)

	cfg = DefaultConfig()
	cfg.Tiers = nil
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
}

func TestAllocatedByKind(t *testing.T) {
	cfg := DefaultMachineConfig(WMEH)
	assert.Equal(t, cfg.AllocatedEnergy, cfg.Allocated(Energy))
	assert.Equal(t, cfg.AllocatedMagic, cfg.Allocated(Magic))
}
