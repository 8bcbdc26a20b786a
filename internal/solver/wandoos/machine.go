package wandoos

import (
	"math"

	"github.com/pkg/errors"

	"github.com/napolitain/solver-wandoos/internal/models"
)

// Machine is the state of a single Wandoos machine. Level counters only
// ever grow, and only through Advance.
type Machine struct {
	tier      models.Tier
	constants models.TierConstants
	mode      models.DifficultyMode
	el        int64
	ml        int64
	bootup    float64
	energy    int64
	magic     int64
	online    bool
	mults     models.Multipliers
}

// NewMachine validates cfg and builds a machine using mults
func NewMachine(cfg models.MachineConfig, mults models.Multipliers) (*Machine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := mults.Validate(); err != nil {
		return nil, err
	}
	constants, _ := models.LookupTier(cfg.Tier)

	return &Machine{
		tier:      cfg.Tier,
		constants: constants,
		mode:      cfg.Mode,
		el:        cfg.EffectiveLevel,
		ml:        cfg.MagicLevel,
		bootup:    cfg.Bootup,
		energy:    cfg.AllocatedEnergy,
		magic:     cfg.AllocatedMagic,
		online:    cfg.Online,
		mults:     mults,
	}, nil
}

func (m *Machine) Tier() models.Tier { return m.tier }
func (m *Machine) Mode() models.DifficultyMode { return m.mode }
func (m *Machine) EffectiveLevel() int64 { return m.el }
func (m *Machine) MagicLevel() int64 { return m.ml }
func (m *Machine) Online() bool { return m.online }

// Allocated returns the budget assigned to a resource kind
func (m *Machine) Allocated(kind models.ResourceKind) int64 {
	if kind == models.Magic {
		return m.magic
	}
	return m.energy
}

// OutputMultiplier returns the multiplier the machine grants at its current levels
func (m *Machine) OutputMultiplier() float64 {
	el := float64(m.el) * m.constants.EffectiveLevelCoef
	ml := float64(m.ml) * m.constants.MagicLevelCoef
	return math.Pow((1+el)*(1+ml), m.constants.OutputExponent)
}

// CombinedMultiplier returns the divisor applied to the base cap
func (m *Machine) CombinedMultiplier() float64 {
	return m.mults.Combined(m.bootup)
}

// Capacity returns the resource amount needed to fill one level bar
func (m *Machine) Capacity() (float64, error) {
	mult := m.CombinedMultiplier()
	base := m.constants.Cap(m.mode)

	if !(mult > 0) || math.IsInf(mult, 0) {
		return 0, errors.Wrapf(models.ErrInvalidCapacity, "combined multiplier is %v", mult)
	}
	if !(base > 0) || math.IsInf(base, 0) {
		return 0, errors.Wrapf(models.ErrInvalidCapacity, "%s %s base cap is %v", m.tier, m.mode, base)
	}

	capacity := base / mult
	if !(capacity > 0) || math.IsInf(capacity, 0) {
		return 0, errors.Wrapf(models.ErrInvalidCapacity, "%v / %v = %v", base, mult, capacity)
	}
	return capacity, nil
}

// TicksToNextLevel estimates how many ticks an allocation needs to gain one level
func (m *Machine) TicksToNextLevel(allocated float64, kind models.ResourceKind) (LevelEstimate, error) {
	if allocated < 0 || math.IsNaN(allocated) || math.IsInf(allocated, 0) {
		return LevelEstimate{}, errors.Wrapf(models.ErrInvalidConfig, "%s allocation %v", kind, allocated)
	}

	capacity, err := m.Capacity()
	if err != nil {
		return LevelEstimate{}, err
	}

	est := LevelEstimate{
		Kind:      kind,
		Allocated: allocated,
		Capacity:  capacity,
		Fraction:  allocated / capacity,
		Online:    m.online,
	}

	if est.Fraction > 1 {
		est.Ticks = 1
		est.Excess = true
		est.ExcessPercent = (est.Fraction - 1) * 100
		return est, nil
	}

	if est.Fraction == 0 {
		return LevelEstimate{}, errors.Wrapf(models.ErrAllocationTooSmall,
			"%s: %v of %v", kind, allocated, capacity)
	}

	// Ticks saturate for allocations that are tiny next to the cap; the
	// rate then rounds down to zero levels.
	reciprocal := 1 / est.Fraction
	if math.IsInf(reciprocal, 0) || reciprocal >= float64(math.MaxInt64-1) {
		est.Ticks = math.MaxInt64
		return est, nil
	}
	est.Ticks = int64(math.Floor(reciprocal)) + 1
	return est, nil
}

// RatePerSecond returns the levels gained per second for a resource kind.
// A machine with nothing allocated gains nothing.
func (m *Machine) RatePerSecond(kind models.ResourceKind) (float64, error) {
	est, err := m.estimate(kind)
	if err != nil || est == nil {
		return 0, err
	}
	return est.LevelsPerSecond(), nil
}

// estimate returns nil when kind has no allocation
func (m *Machine) estimate(kind models.ResourceKind) (*LevelEstimate, error) {
	allocated := m.Allocated(kind)
	if allocated == 0 {
		return nil, nil
	}
	est, err := m.TicksToNextLevel(float64(allocated), kind)
	if err != nil {
		return nil, err
	}
	return &est, nil
}

// Gains reports the outcome of an Advance call
type Gains struct {
	Seconds float64
	Energy  int64
	Magic   int64

	// Estimates used for each included kind with a non-zero allocation
	EnergyEstimate *LevelEstimate
	MagicEstimate  *LevelEstimate
}

// Levels returns the levels gained for a resource kind
func (g Gains) Levels(kind models.ResourceKind) int64 {
	if kind == models.Magic {
		return g.Magic
	}
	return g.Energy
}

// Estimate returns the estimate used for a resource kind, nil if it was not run
func (g Gains) Estimate(kind models.ResourceKind) *LevelEstimate {
	if kind == models.Magic {
		return g.MagicEstimate
	}
	return g.EnergyEstimate
}

// Advance runs the machine for seconds and applies the levels gained.
// Rates are derived from the state at the start of the call. On error the
// machine is left untouched.
func (m *Machine) Advance(seconds float64, includeEnergy, includeMagic bool) (Gains, error) {
	if !(seconds > 0) || math.IsInf(seconds, 0) {
		return Gains{}, errors.Wrapf(models.ErrInvalidDuration, "got %v seconds", seconds)
	}

	gains := Gains{Seconds: seconds}
	var err error

	if includeEnergy {
		if gains.EnergyEstimate, err = m.estimate(models.Energy); err != nil {
			return Gains{}, err
		}
		gains.Energy = levelsOver(gains.EnergyEstimate, seconds)
	}
	if includeMagic {
		if gains.MagicEstimate, err = m.estimate(models.Magic); err != nil {
			return Gains{}, err
		}
		gains.Magic = levelsOver(gains.MagicEstimate, seconds)
	}

	m.el = addLevels(m.el, gains.Energy)
	m.ml = addLevels(m.ml, gains.Magic)
	return gains, nil
}

func levelsOver(est *LevelEstimate, seconds float64) int64 {
	if est == nil {
		return 0
	}
	levels := math.Floor(est.LevelsPerSecond() * seconds)
	if levels >= float64(math.MaxInt64) {
		return math.MaxInt64
	}
	return int64(levels)
}

// addLevels saturates instead of wrapping so counters stay monotonic
func addLevels(level, delta int64) int64 {
	if delta > math.MaxInt64-level {
		return math.MaxInt64
	}
	return level + delta
}
