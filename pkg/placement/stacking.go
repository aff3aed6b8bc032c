package placement

import (
	"fmt"
	"math/rand"
)

// AddStacking grows demo stacks above each tier-0 position. For every
// base column it repeatedly draws a uniform value and, while the draw
// is below stackRate and the column is below maxTier, adds a container
// directly above the previous one. Tiers in a column are always
// contiguous from 0.
//
// This policy only generates demonstration data. When slot records
// carry an authoritative tier, Place stores it as-is and AddStacking
// must not be called.
func (e *Engine) AddStacking(maxTier int, stackRate float64, rng *rand.Rand) []ContainerPosition {
	if maxTier < 1 || stackRate <= 0 || rng == nil {
		return e.clone()
	}

	var added []ContainerPosition
	for _, base := range e.positions {
		if base.Tier != 0 {
			continue
		}
		tier := 0
		for tier < maxTier && rng.Float64() < stackRate {
			tier++
			stacked := base
			stacked.ID = fmt.Sprintf("%s.%d", base.ID, tier)
			stacked.Tier = tier
			added = append(added, stacked)

			key := columnKey(base.DrawingPoint)
			e.columns[key] = insertTier(e.columns[key], tier)
		}
	}

	e.positions = append(e.positions, added...)
	return e.clone()
}
