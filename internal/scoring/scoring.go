// Package scoring turns raw feed statistics into a single projected
// points value per player. The projection is a fixed heuristic blend,
// fully reproducible from its inputs.
package scoring

import (
	"math"

	"fpl-squad-mcp/internal/model"
)

// Availability is a reliability discount on projected points. It reaches
// full weight once a player has roughly 1800 minutes (~20 full matches);
// unproven players get the 0.65 floor.
func Availability(minutes float64) float64 {
	return 0.65 + math.Min(0.35, minutes/1800.0)
}

// ProjectedPoints blends the feed's own next-gameweek expectation with a
// points-per-game/form mix, scales by the horizon and the team's fixture
// multiplier, and applies the availability discount.
func ProjectedPoints(e model.Element, horizonGameweeks int, fixtureMultiplier float64) float64 {
	baseOneGW := math.Max(float64(e.EPNext), 0.55*float64(e.PointsPerGame)+0.45*float64(e.Form))
	return baseOneGW * float64(horizonGameweeks) * fixtureMultiplier * Availability(float64(e.Minutes))
}
