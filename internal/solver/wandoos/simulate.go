package wandoos

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/pkg/errors"

	"github.com/napolitain/solver-wandoos/internal/models"
)

// SimulateOptions controls a batch simulation
type SimulateOptions struct {
	Seconds float64
	Energy  bool
	Magic   bool

	// Logger receives the per-machine trace at debug level. Nil discards it.
	Logger *log.Logger
}

// RunResult is the outcome of running one machine
type RunResult struct {
	Tier               models.Tier
	Mode               models.DifficultyMode
	Online             bool
	AllocatedEnergy    int64
	AllocatedMagic     int64
	CombinedMultiplier float64
	Capacity           float64
	Gains              Gains
	EffectiveLevel     int64
	MagicLevel         int64
	OutputMultiplier   float64
}

// Simulate builds one machine per config and runs each for opts.Seconds.
// Machines are independent and are run in order.
func Simulate(configs []models.MachineConfig, mults models.Multipliers, opts SimulateOptions) ([]RunResult, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	results := make([]RunResult, 0, len(configs))
	for _, cfg := range configs {
		result, err := simulateOne(cfg, mults, opts, logger.With("tier", cfg.Tier))
		if err != nil {
			return nil, errors.Wrapf(err, "simulating %s", cfg.Tier)
		}
		results = append(results, result)
	}
	return results, nil
}

func simulateOne(cfg models.MachineConfig, mults models.Multipliers, opts SimulateOptions, logger *log.Logger) (RunResult, error) {
	m, err := NewMachine(cfg, mults)
	if err != nil {
		return RunResult{}, err
	}

	capacity, err := m.Capacity()
	if err != nil {
		return RunResult{}, err
	}
	logger.Debug("multiplier", "combined", m.CombinedMultiplier(), "capacity", capacity)

	gains, err := m.Advance(opts.Seconds, opts.Energy, opts.Magic)
	if err != nil {
		return RunResult{}, err
	}
	for _, kind := range models.AllResourceKinds() {
		est := gains.Estimate(kind)
		if est == nil {
			continue
		}
		logger.Debug("ticks per level",
			"resource", est.Kind,
			"ticks", est.Ticks,
			"seconds", est.SecondsPerLevel(),
		)
		if est.Excess {
			logger.Debug("allocation exceeds cap", "resource", est.Kind, "excess_pct", est.ExcessPercent)
		}
	}
	logger.Debug("run finished",
		"energy_levels", gains.Energy,
		"magic_levels", gains.Magic,
		"output", m.OutputMultiplier(),
	)

	return RunResult{
		Tier:               m.Tier(),
		Mode:               m.Mode(),
		Online:             m.Online(),
		AllocatedEnergy:    m.Allocated(models.Energy),
		AllocatedMagic:     m.Allocated(models.Magic),
		CombinedMultiplier: m.CombinedMultiplier(),
		Capacity:           capacity,
		Gains:              gains,
		EffectiveLevel:     m.EffectiveLevel(),
		MagicLevel:         m.MagicLevel(),
		OutputMultiplier:   m.OutputMultiplier(),
	}, nil
}
