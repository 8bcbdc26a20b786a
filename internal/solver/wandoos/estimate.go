package wandoos

import (
	"math"

	"github.com/napolitain/solver-wandoos/internal/models"
)

// LevelEstimate describes how an allocation fills the level bar
type LevelEstimate struct {
	Kind      models.ResourceKind
	Allocated float64
	Capacity  float64

	// Fraction of the bar filled per tick (Allocated / Capacity)
	Fraction float64

	// Ticks needed to gain one level; 1 when the allocation overflows the bar
	Ticks int64

	Excess        bool
	ExcessPercent float64

	Online bool
}

// Value is the tick count when online, and the bar fraction gained
// (at most 1) when offline.
func (e LevelEstimate) Value() float64 {
	if e.Online {
		return float64(e.Ticks)
	}
	return math.Min(e.Fraction, 1)
}

// SecondsPerLevel converts Ticks into wall-clock seconds
func (e LevelEstimate) SecondsPerLevel() float64 {
	return float64(e.Ticks) / models.TicksPerSecond
}

// LevelsPerSecond assumes online play
func (e LevelEstimate) LevelsPerSecond() float64 {
	if e.Ticks <= 0 {
		return 0
	}
	return models.TicksPerSecond / float64(e.Ticks)
}
