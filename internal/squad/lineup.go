package squad

import (
	"fmt"
	"sort"
)

// AllowedFormations are the legal outfield splits (DEF-MID-FWD); the
// goalkeeper slot is always 1.
var AllowedFormations = [][3]int{
	{3, 4, 3},
	{3, 5, 2},
	{4, 4, 2},
	{4, 3, 3},
	{5, 3, 2},
	{5, 4, 1},
}

type Lineup struct {
	Starting    []Player
	Bench       []Player
	Captain     Player
	ViceCaptain Player
}

// PickLineup derives the starting XI, ordered bench, and captaincy from
// a 15-player squad. Among the allowed formations the one with the
// strictly highest projected-points XI wins; earlier formations keep
// ties. The bench is the backup keeper plus the three best remaining
// outfielders by projected points.
func PickLineup(players []Player) (*Lineup, error) {
	byPos := make(map[string][]Player, 4)
	for _, p := range players {
		byPos[p.Position] = append(byPos[p.Position], p)
	}
	for pos := range byPos {
		group := byPos[pos]
		sort.SliceStable(group, func(i, j int) bool {
			return group[i].ProjectedPoints > group[j].ProjectedPoints
		})
	}

	if len(byPos[GK]) != 2 {
		return nil, fmt.Errorf("squad must have exactly 2 goalkeepers, got %d", len(byPos[GK]))
	}

	bestScore := -1.0
	var bestXI []Player
	for _, f := range AllowedFormations {
		d, m, fw := f[0], f[1], f[2]
		if len(byPos[DEF]) < d || len(byPos[MID]) < m || len(byPos[FWD]) < fw {
			continue
		}
		xi := make([]Player, 0, 11)
		xi = append(xi, byPos[GK][:1]...)
		xi = append(xi, byPos[DEF][:d]...)
		xi = append(xi, byPos[MID][:m]...)
		xi = append(xi, byPos[FWD][:fw]...)
		score := 0.0
		for _, p := range xi {
			score += p.ProjectedPoints
		}
		if bestXI == nil || score > bestScore {
			bestScore = score
			bestXI = xi
		}
	}

	if len(bestXI) != 11 {
		return nil, fmt.Errorf("no allowed formation is feasible for this squad")
	}

	starting := make(map[int]bool, len(bestXI))
	for _, p := range bestXI {
		starting[p.ID] = true
	}

	bench := make([]Player, 0, 4)
	for _, p := range byPos[GK] {
		if !starting[p.ID] {
			bench = append(bench, p)
			break
		}
	}
	outfield := make([]Player, 0, 3)
	for _, p := range players {
		if p.Position != GK && !starting[p.ID] {
			outfield = append(outfield, p)
		}
	}
	sort.SliceStable(outfield, func(i, j int) bool {
		return outfield[i].ProjectedPoints > outfield[j].ProjectedPoints
	})
	if len(outfield) > 3 {
		outfield = outfield[:3]
	}
	bench = append(bench, outfield...)
	if len(bench) != 4 || bench[0].Position != GK {
		return nil, fmt.Errorf("failed to construct a 1 GK + 3 outfield bench")
	}

	captain, vice, err := pickCaptains(bestXI)
	if err != nil {
		return nil, err
	}

	return &Lineup{
		Starting:    bestXI,
		Bench:       bench,
		Captain:     captain,
		ViceCaptain: vice,
	}, nil
}

func pickCaptains(starting []Player) (Player, Player, error) {
	if len(starting) < 2 {
		return Player{}, Player{}, fmt.Errorf("starting XI must have at least 2 players")
	}
	ordered := make([]Player, len(starting))
	copy(ordered, starting)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].ProjectedPoints > ordered[j].ProjectedPoints
	})
	return ordered[0], ordered[1], nil
}
