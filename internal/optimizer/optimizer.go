// Package optimizer selects the optimal 15-player squad under the
// official constraints: budget, exact position counts, and a per-team
// cap, maximizing projected points over the horizon.
package optimizer

import (
	"math"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"fpl-squad-mcp/internal/model"
	"fpl-squad-mcp/internal/scoring"
	"fpl-squad-mcp/internal/squad"
)

const (
	DefaultHorizonGameweeks   = 5
	DefaultBudget             = 100.0
	DefaultMaxFromTeam        = 3
	DefaultDifferentialWeight = 0.12

	RiskTemplate     = "template"
	RiskDifferential = "differential"
)

// Positions to select per squad, in the arena's position index order.
var (
	positionOrder = []string{squad.GK, squad.DEF, squad.MID, squad.FWD}
	positionNeed  = []int{2, 5, 5, 3}
)

type Options struct {
	HorizonGameweeks    int
	Budget              float64 // 0 means DefaultBudget
	MaxFromTeam         int     // 0 means DefaultMaxFromTeam
	MustInclude         []string
	Avoid               []string
	TeamMultipliers     map[int]float64
	AllowFlaggedPlayers bool
	RiskProfile         string  // template|differential; anything else reads as template
	DifferentialWeight  float64 // 0 means DefaultDifferentialWeight
	// PositionByType maps feed element_type ids to position codes; nil
	// falls back to the canonical 1..4 mapping.
	PositionByType map[int]string
}

type Result struct {
	Squad                []squad.Player
	TotalCost            float64
	TotalProjectedPoints float64
}

// NormalizeName lowercases and collapses internal whitespace so
// "  ERLING   Haaland " matches "Erling Haaland".
func NormalizeName(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

func normalizeRiskProfile(risk string) string {
	switch strings.ToLower(strings.TrimSpace(risk)) {
	case RiskDifferential:
		return RiskDifferential
	default:
		return RiskTemplate
	}
}

// candidate is one eligible player in the solver arena. Players are
// addressed by slice index throughout; name matching only builds the
// must-include candidate sets. When two eligible players share a
// normalized name the constraint is "at least one of them" and the
// solver picks whichever fits best, there is no further tie-break.
type candidate struct {
	player     squad.Player
	value      float64
	costTenths int
}

// Optimize filters the pool, formulates the integer program, and solves
// it exactly.
func Optimize(elements []model.Element, opts Options) (*Result, error) {
	horizon := opts.HorizonGameweeks
	if horizon <= 0 {
		horizon = DefaultHorizonGameweeks
	}
	budget := opts.Budget
	if budget == 0 {
		budget = DefaultBudget
	}
	maxFromTeam := opts.MaxFromTeam
	if maxFromTeam == 0 {
		maxFromTeam = DefaultMaxFromTeam
	}
	weight := opts.DifferentialWeight
	if weight == 0 {
		weight = DefaultDifferentialWeight
	}
	risk := normalizeRiskProfile(opts.RiskProfile)
	positions := opts.PositionByType
	if positions == nil {
		positions = model.CanonicalPositionByType
	}

	posIndex := make(map[string]int, len(positionOrder))
	for i, p := range positionOrder {
		posIndex[p] = i
	}

	avoidSet := make(map[string]bool, len(opts.Avoid))
	for _, name := range opts.Avoid {
		if n := NormalizeName(name); n != "" {
			avoidSet[n] = true
		}
	}

	pool := make([]candidate, 0, len(elements))
	for _, e := range elements {
		pos := positions[e.ElementType]
		if _, ok := posIndex[pos]; !ok {
			continue
		}
		status := e.StatusLabel()
		if !opts.AllowFlaggedPlayers && status != "available" {
			continue
		}
		name := e.Name()
		if avoidSet[NormalizeName(name)] {
			continue
		}

		mult, ok := opts.TeamMultipliers[e.Team]
		if !ok {
			mult = 1.0
		}
		proj := scoring.ProjectedPoints(e, horizon, mult)
		cost := e.CostMillions()
		pool = append(pool, candidate{
			player: squad.Player{
				ID:                e.ID,
				Name:              name,
				TeamID:            e.Team,
				Position:          pos,
				Cost:              cost,
				ProjectedPoints:   proj,
				TotalPoints:       e.TotalPoints,
				Form:              float64(e.Form),
				SelectedByPercent: float64(e.SelectedByPercent),
				Status:            status,
			},
			costTenths: int(math.Round(cost * 10)),
		})
	}
	if len(pool) == 0 {
		return nil, &NoEligiblePlayersError{}
	}

	for i := range pool {
		p := &pool[i]
		if risk == RiskDifferential {
			p.value = p.player.ProjectedPoints * (1.0 + weight*(1.0-p.player.SelectedByPercent/100.0))
		} else {
			p.value = p.player.ProjectedPoints
		}
	}
	sort.SliceStable(pool, func(i, j int) bool {
		return pool[i].value > pool[j].value
	})

	groups, err := mustIncludeGroups(pool, opts.MustInclude)
	if err != nil {
		return nil, err
	}

	teamIndex := make(map[int]int)
	prob := &problem{
		values:      make([]float64, len(pool)),
		costs:       make([]int, len(pool)),
		pos:         make([]int, len(pool)),
		team:        make([]int, len(pool)),
		need:        positionNeed,
		groups:      groups,
		budget:      int(math.Round(budget * 10)),
		maxFromTeam: maxFromTeam,
	}
	for i, c := range pool {
		prob.values[i] = c.value
		prob.costs[i] = c.costTenths
		prob.pos[i] = posIndex[c.player.Position]
		t, ok := teamIndex[c.player.TeamID]
		if !ok {
			t = len(teamIndex)
			teamIndex[c.player.TeamID] = t
		}
		prob.team[i] = t
	}
	prob.teamCount = len(teamIndex)

	selected := solve(prob)
	if selected == nil {
		return nil, &InfeasibleOptimizationError{}
	}
	if len(selected) != 15 {
		return nil, &UnexpectedSelectionCountError{Count: len(selected)}
	}

	players := make([]squad.Player, 0, 15)
	totalCost := 0.0
	totalProj := 0.0
	for _, idx := range selected {
		p := pool[idx].player
		players = append(players, p)
		totalCost += p.Cost
		totalProj += p.ProjectedPoints
	}
	sort.SliceStable(players, func(i, j int) bool {
		if players[i].Position != players[j].Position {
			return players[i].Position < players[j].Position
		}
		if players[i].ProjectedPoints != players[j].ProjectedPoints {
			return players[i].ProjectedPoints > players[j].ProjectedPoints
		}
		return players[i].Cost < players[j].Cost
	})

	return &Result{
		Squad:                players,
		TotalCost:            math.Round(totalCost*10) / 10,
		TotalProjectedPoints: totalProj,
	}, nil
}

// mustIncludeGroups resolves each requested name to its candidate set by
// normalized-name equality. An unmatched name fails immediately, with
// close eligible names attached when fuzzy matching finds any.
func mustIncludeGroups(pool []candidate, mustInclude []string) ([][]int, error) {
	groups := make([][]int, 0, len(mustInclude))
	seen := make(map[string]bool, len(mustInclude))
	for _, raw := range mustInclude {
		wanted := NormalizeName(raw)
		if wanted == "" || seen[wanted] {
			continue
		}
		seen[wanted] = true

		var members []int
		for i, c := range pool {
			if NormalizeName(c.player.Name) == wanted {
				members = append(members, i)
			}
		}
		if len(members) == 0 {
			return nil, &MustIncludeNotFoundError{
				Name:        strings.TrimSpace(raw),
				Suggestions: closeNames(pool, wanted),
			}
		}
		groups = append(groups, members)
	}
	return groups, nil
}

func closeNames(pool []candidate, wanted string) []string {
	names := make([]string, 0, len(pool))
	for _, c := range pool {
		names = append(names, c.player.Name)
	}
	ranks := fuzzy.RankFindNormalizedFold(wanted, names)
	sort.Sort(ranks)
	out := make([]string, 0, 3)
	for _, r := range ranks {
		out = append(out, r.Target)
		if len(out) == 3 {
			break
		}
	}
	return out
}
