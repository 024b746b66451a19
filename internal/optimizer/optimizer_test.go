package optimizer

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fpl-squad-mcp/internal/model"
	"fpl-squad-mcp/internal/squad"
)

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

// elem builds an available player with full minutes and ep_next as the
// only scoring signal, so at horizon 1 the projection equals ep exactly.
func elem(id int, name string, team, typ int, cost, ep float64) model.Element {
	return model.Element{
		ID:          id,
		WebName:     name,
		Team:        team,
		ElementType: typ,
		NowCost:     int(cost * 10),
		Minutes:     1800,
		Status:      "a",
		EPNext:      model.Float(ep),
	}
}

// basePool is a 20-player pool with a unique optimum: the first 15
// players (cost 81.5) beat every swap because the five expensive traps
// cannot fit under the default budget.
func basePool() []model.Element {
	pool := []model.Element{
		elem(1, "GK One", 1, 1, 4.0, 5),
		elem(2, "GK Two", 2, 1, 4.0, 4),

		elem(3, "Def One", 3, 2, 4.5, 10),
		elem(4, "Def Two", 4, 2, 4.5, 9),
		elem(5, "Def Three", 5, 2, 4.5, 8),
		elem(6, "Def Four", 6, 2, 4.5, 7),
		elem(7, "Def Five", 7, 2, 4.5, 6),

		elem(8, "Mid One", 8, 3, 6.0, 12),
		elem(9, "Mid Two", 9, 3, 6.0, 11),
		elem(10, "Mid Three", 10, 3, 6.0, 10),
		elem(11, "Mid Four", 11, 3, 6.0, 9),
		elem(12, "Mid Five", 12, 3, 6.0, 8),

		elem(13, "Fwd One", 13, 4, 7.0, 11),
		elem(14, "Fwd Two", 14, 4, 7.0, 10),
		elem(15, "Fwd Three", 15, 4, 7.0, 9),

		// Traps: highest projections in the pool, priced out of reach.
		elem(16, "Trap Keeper", 16, 1, 26.0, 20),
		elem(17, "Trap Back", 17, 2, 26.0, 20),
		elem(18, "Trap Stopper", 18, 2, 26.0, 20),
		elem(19, "Trap Mid", 19, 3, 26.0, 20),
		elem(20, "Trap Fwd", 20, 4, 26.0, 20),
	}
	return pool
}

func squadIDs(players []squad.Player) map[int]bool {
	ids := make(map[int]bool, len(players))
	for _, p := range players {
		ids[p.ID] = true
	}
	return ids
}

func hasPlayer(players []squad.Player, name string) bool {
	for _, p := range players {
		if p.Name == name {
			return true
		}
	}
	return false
}

// ---------------------------------------------------------------------------
// Optimize
// ---------------------------------------------------------------------------

func TestOptimizeFindsUniqueOptimum(t *testing.T) {
	res, err := Optimize(basePool(), Options{HorizonGameweeks: 1})
	require.NoError(t, err)
	require.Len(t, res.Squad, 15)

	ids := squadIDs(res.Squad)
	for id := 1; id <= 15; id++ {
		assert.True(t, ids[id], "player %d should be selected", id)
	}
	assert.InDelta(t, 81.5, res.TotalCost, 1e-9)
	assert.InDelta(t, 129.0, res.TotalProjectedPoints, 1e-6)
}

func TestOptimizeRespectsTeamCap(t *testing.T) {
	pool := basePool()
	// Put four midfielders on one team; only three may be picked, so the
	// trap midfielder becomes worth its price at a raised budget.
	for i := 7; i <= 10; i++ {
		pool[i].Team = 30
	}
	res, err := Optimize(pool, Options{HorizonGameweeks: 1, Budget: 200})
	require.NoError(t, err)

	perTeam := make(map[int]int)
	for _, p := range res.Squad {
		perTeam[p.TeamID]++
	}
	for team, n := range perTeam {
		assert.LessOrEqual(t, n, DefaultMaxFromTeam, "team %d over the cap", team)
	}
}

func TestOptimizeMustIncludeForcesSelection(t *testing.T) {
	res, err := Optimize(basePool(), Options{
		HorizonGameweeks: 1,
		Budget:           110,
		MustInclude:      []string{"  TRAP   Fwd "},
	})
	require.NoError(t, err)
	require.True(t, hasPlayer(res.Squad, "Trap Fwd"))
	require.NoError(t, squad.Validate(res.Squad, 110, DefaultMaxFromTeam))
}

func TestOptimizeMustIncludeNotFound(t *testing.T) {
	_, err := Optimize(basePool(), Options{
		HorizonGameweeks: 1,
		MustInclude:      []string{"Mid On"},
	})
	require.Error(t, err)

	var notFound *MustIncludeNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "Mid On", notFound.Name)
	assert.NotEmpty(t, notFound.Suggestions)
	assert.Contains(t, notFound.Suggestions, "Mid One")
}

func TestOptimizeAvoidExcludesPlayer(t *testing.T) {
	// Avoiding a midfielder leaves 4 base mids, so the trap midfielder
	// is forced; the raised budget keeps the problem feasible.
	res, err := Optimize(basePool(), Options{
		HorizonGameweeks: 1,
		Budget:           110,
		Avoid:            []string{"mid one"},
	})
	require.NoError(t, err)
	assert.False(t, hasPlayer(res.Squad, "Mid One"))
	assert.True(t, hasPlayer(res.Squad, "Trap Mid"))
}

func TestOptimizeNoEligiblePlayers(t *testing.T) {
	pool := basePool()
	for i := range pool {
		pool[i].Status = "i"
	}
	_, err := Optimize(pool, Options{HorizonGameweeks: 1})
	require.Error(t, err)

	var empty *NoEligiblePlayersError
	assert.True(t, errors.As(err, &empty))
}

func TestOptimizeFlaggedPlayersExcludedByDefault(t *testing.T) {
	pool := basePool()
	pool[7].Status = "d" // Mid One doubtful
	res, err := Optimize(pool, Options{HorizonGameweeks: 1, Budget: 110})
	require.NoError(t, err)
	assert.False(t, hasPlayer(res.Squad, "Mid One"))

	res, err = Optimize(pool, Options{HorizonGameweeks: 1, Budget: 110, AllowFlaggedPlayers: true})
	require.NoError(t, err)
	assert.True(t, hasPlayer(res.Squad, "Mid One"))
}

func TestOptimizeDifferentialPrefersLowOwnership(t *testing.T) {
	pool := basePool()[:15]
	// Contest the last forward slot: the template pick projects higher
	// but is owned by everyone, the differential pick is owned by no one.
	template := elem(21, "Template Fwd", 21, 4, 7.0, 9.0)
	template.SelectedByPercent = model.Float(100)
	differential := elem(22, "Punt Fwd", 22, 4, 7.0, 8.6)
	pool = append(pool[:14], template, differential)

	res, err := Optimize(pool, Options{HorizonGameweeks: 1})
	require.NoError(t, err)
	assert.True(t, hasPlayer(res.Squad, "Template Fwd"))
	assert.False(t, hasPlayer(res.Squad, "Punt Fwd"))

	res, err = Optimize(pool, Options{HorizonGameweeks: 1, RiskProfile: RiskDifferential})
	require.NoError(t, err)
	assert.True(t, hasPlayer(res.Squad, "Punt Fwd"))
	assert.False(t, hasPlayer(res.Squad, "Template Fwd"))
}

func TestOptimizeInfeasibleBudget(t *testing.T) {
	_, err := Optimize(basePool(), Options{HorizonGameweeks: 1, Budget: 50})
	require.Error(t, err)

	var infeasible *InfeasibleOptimizationError
	assert.True(t, errors.As(err, &infeasible))
}

func TestOptimizeTeamMultipliersShiftProjections(t *testing.T) {
	// Halving team 8's outlook drops Mid One behind the other mids; the
	// trap replacement is still priced out, so the squad is unchanged and
	// only the projection moves.
	res, err := Optimize(basePool(), Options{
		HorizonGameweeks: 1,
		TeamMultipliers:  map[int]float64{8: 0.5},
	})
	require.NoError(t, err)

	found := false
	for _, p := range res.Squad {
		if p.Name == "Mid One" {
			found = true
			assert.InDelta(t, 6.0, p.ProjectedPoints, 1e-9)
		}
	}
	require.True(t, found, "Mid One should still be selected")
}

func TestOptimizeSquadOrdering(t *testing.T) {
	res, err := Optimize(basePool(), Options{HorizonGameweeks: 1})
	require.NoError(t, err)

	for i := 1; i < len(res.Squad); i++ {
		prev, cur := res.Squad[i-1], res.Squad[i]
		if prev.Position == cur.Position {
			assert.GreaterOrEqual(t, prev.ProjectedPoints, cur.ProjectedPoints,
				"within a position projections must descend")
		} else {
			assert.Less(t, prev.Position, cur.Position, "positions must ascend alphabetically")
		}
	}
}

func TestNormalizeName(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"Erling Haaland", "erling haaland"},
		{"  ERLING   Haaland ", "erling haaland"},
		{"", ""},
		{"   ", ""},
		{"Saka", "saka"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, NormalizeName(tc.in), "input %q", tc.in)
	}
}

func TestNormalizeRiskProfile(t *testing.T) {
	assert.Equal(t, RiskTemplate, normalizeRiskProfile(""))
	assert.Equal(t, RiskTemplate, normalizeRiskProfile("aggressive"))
	assert.Equal(t, RiskDifferential, normalizeRiskProfile(" Differential "))
	assert.Equal(t, RiskTemplate, normalizeRiskProfile("TEMPLATE"))
}
