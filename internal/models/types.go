package models

import (
	"strings"

	"github.com/pkg/errors"
)

// TicksPerSecond is the game's fixed simulation frequency.
const TicksPerSecond = 50

// Tier represents one of the Wandoos machine classes
type Tier string

const (
	W98  Tier = "W98"
	WMEH Tier = "WMEH"
	WXL  Tier = "WXL"
)

// AllTiers returns all tiers in deterministic order
func AllTiers() []Tier {
	return []Tier{W98, WMEH, WXL}
}

// ParseTier converts a user supplied name into a Tier (case insensitive)
func ParseTier(s string) (Tier, error) {
	for _, t := range AllTiers() {
		if strings.EqualFold(s, string(t)) {
			return t, nil
		}
	}
	return "", errors.Wrapf(ErrInvalidConfig, "unknown tier %q", s)
}

func (t Tier) String() string { return string(t) }

// Set implements pflag.Value
func (t *Tier) Set(s string) error {
	parsed, err := ParseTier(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Type implements pflag.Value
func (t *Tier) Type() string { return "tier" }

// DifficultyMode selects which base cap a tier uses
type DifficultyMode string

const (
	Normal DifficultyMode = "normal"
	Evil   DifficultyMode = "evil"
)

// AllDifficultyModes returns all difficulty modes
func AllDifficultyModes() []DifficultyMode {
	return []DifficultyMode{Normal, Evil}
}

// ParseDifficultyMode converts a user supplied name into a DifficultyMode
func ParseDifficultyMode(s string) (DifficultyMode, error) {
	for _, m := range AllDifficultyModes() {
		if strings.EqualFold(s, string(m)) {
			return m, nil
		}
	}
	return "", errors.Wrapf(ErrInvalidConfig, "unknown difficulty mode %q", s)
}

func (m DifficultyMode) String() string { return string(m) }

// Set implements pflag.Value
func (m *DifficultyMode) Set(s string) error {
	parsed, err := ParseDifficultyMode(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Type implements pflag.Value
func (m *DifficultyMode) Type() string { return "mode" }

// ResourceKind is the resource fed into a machine
type ResourceKind string

const (
	Energy ResourceKind = "energy"
	Magic  ResourceKind = "magic"
)

// AllResourceKinds returns both resource kinds, energy first
func AllResourceKinds() []ResourceKind {
	return []ResourceKind{Energy, Magic}
}

func (k ResourceKind) String() string { return string(k) }

// TierConstants holds the scaling constants of a tier
type TierConstants struct {
	EffectiveLevelCoef float64 // output gained per effective level
	MagicLevelCoef     float64 // output gained per magic level
	OutputExponent     float64
	NormalCap          float64
	EvilCap            float64
}

// Cap returns the base cap for the given difficulty mode
func (c TierConstants) Cap(mode DifficultyMode) float64 {
	if mode == Evil {
		return c.EvilCap
	}
	return c.NormalCap
}

var tierTable = map[Tier]TierConstants{
	W98: {
		EffectiveLevelCoef: 1.0 / 100,
		MagicLevelCoef:     1.0 / 25,
		OutputExponent:     0.8,
		NormalCap:          1e9,
		EvilCap:            1e12,
	},
	WMEH: {
		EffectiveLevelCoef: 1.0 / 5,
		MagicLevelCoef:     2,
		OutputExponent:     1.0,
		NormalCap:          1e12,
		EvilCap:            1e27,
	},
	WXL: {
		EffectiveLevelCoef: 6,
		MagicLevelCoef:     40,
		OutputExponent:     1.05,
		NormalCap:          1e15,
		EvilCap:            1e33,
	},
}

// LookupTier returns the constants for a tier
func LookupTier(t Tier) (TierConstants, bool) {
	c, ok := tierTable[t]
	return c, ok
}
