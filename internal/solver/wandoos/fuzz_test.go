package wandoos

import (
	"math"
	"testing"

	"github.com/napolitain/solver-wandoos/internal/models"
)

func FuzzMachineInvariants(f *testing.F) {
	// tier index, el, ml, energy, magic, seconds
	f.Add(uint8(0), int64(0), int64(0), int64(95e6), int64(7.5e6), 3600.0)  // Default W98
	f.Add(uint8(1), int64(500), int64(20), int64(95e6), int64(7.5e6), 60.0) // WMEH mid run
	f.Add(uint8(2), int64(1e6), int64(1e5), int64(1e12), int64(1), 86400.0) // WXL late game
	f.Add(uint8(2), int64(0), int64(0), int64(0), int64(0), 1.0)            // Nothing allocated

	f.Fuzz(func(t *testing.T, tierIdx uint8, el, ml, energy, magic int64, seconds float64) {
		// Skip invalid inputs
		if el < 0 || ml < 0 || energy < 0 || magic < 0 {
			return
		}
		if !(seconds > 0) || seconds > 1e7 {
			return
		}
		if el > 1e12 || ml > 1e12 {
			return
		}

		tiers := models.AllTiers()
		cfg := models.DefaultMachineConfig(tiers[int(tierIdx)%len(tiers)])
		cfg.EffectiveLevel = el
		cfg.MagicLevel = ml
		cfg.AllocatedEnergy = energy
		cfg.AllocatedMagic = magic

		m, err := NewMachine(cfg, models.DefaultMultipliers())
		if err != nil {
			t.Fatalf("NewMachine failed: %v", err)
		}

		before := m.OutputMultiplier()

		// Invariant 1: output is a pure read
		if again := m.OutputMultiplier(); again != before {
			t.Errorf("OutputMultiplier changed without Advance: %v != %v", again, before)
		}

		gains, err := m.Advance(seconds, true, true)
		if err != nil {
			return
		}

		// Invariant 2: gains are non-negative and applied exactly
		if gains.Energy < 0 || gains.Magic < 0 {
			t.Errorf("Negative gains: %+v", gains)
		}
		if m.EffectiveLevel() < el || m.MagicLevel() < ml {
			t.Errorf("Levels decreased: el %d -> %d, ml %d -> %d", el, m.EffectiveLevel(), ml, m.MagicLevel())
		}

		// Invariant 3: output never decreases as levels grow
		if after := m.OutputMultiplier(); after < before && !math.IsNaN(after) {
			t.Errorf("Output decreased after Advance: %v < %v", after, before)
		}

		// Invariant 4: offline progress never exceeds one level
		for _, est := range []*LevelEstimate{gains.EnergyEstimate, gains.MagicEstimate} {
			if est == nil {
				continue
			}
			offline := *est
			offline.Online = false
			if v := offline.Value(); v > 1 {
				t.Errorf("Offline value %v > 1", v)
			}
			if est.Ticks < 1 {
				t.Errorf("Ticks %d < 1", est.Ticks)
			}
		}
	})
}
