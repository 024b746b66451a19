package squad

import "fmt"

// Validation rule names carried by InvalidSquadError.
const (
	RuleSize          = "size"
	RuleBudget        = "budget"
	RulePositionCount = "position-count"
	RuleTeamCap       = "team-cap"
)

type InvalidSquadError struct {
	Rule   string
	Detail string
}

func (e *InvalidSquadError) Error() string {
	return fmt.Sprintf("invalid squad (%s): %s", e.Rule, e.Detail)
}

// Validate re-checks every hard squad constraint independently of how
// the squad was produced: 15 players, budget (small float tolerance),
// exact position counts, and the per-team cap.
func Validate(players []Player, budget float64, maxFromTeam int) error {
	if len(players) != 15 {
		return &InvalidSquadError{
			Rule:   RuleSize,
			Detail: fmt.Sprintf("squad must have 15 players, got %d", len(players)),
		}
	}

	cost := 0.0
	for _, p := range players {
		cost += p.Cost
	}
	if cost > budget+1e-9 {
		return &InvalidSquadError{
			Rule:   RuleBudget,
			Detail: fmt.Sprintf("total cost %.1f exceeds budget %.1f", cost, budget),
		}
	}

	counts := PositionCounts(players)
	want := map[string]int{GK: 2, DEF: 5, MID: 5, FWD: 3}
	for pos, n := range want {
		if counts[pos] != n {
			return &InvalidSquadError{
				Rule:   RulePositionCount,
				Detail: fmt.Sprintf("position %s must have %d players, got %d", pos, n, counts[pos]),
			}
		}
	}

	perTeam := make(map[int]int, len(players))
	for _, p := range players {
		perTeam[p.TeamID]++
		if perTeam[p.TeamID] > maxFromTeam {
			return &InvalidSquadError{
				Rule:   RuleTeamCap,
				Detail: fmt.Sprintf("team %d has more than %d players", p.TeamID, maxFromTeam),
			}
		}
	}
	return nil
}
