package main

import (
	"encoding/json"

	"fpl-squad-mcp/internal/fetch"
	"fpl-squad-mcp/internal/model"
	"fpl-squad-mcp/internal/optimizer"
	"fpl-squad-mcp/internal/squad"
)

type OptimizeSquadArgs struct {
	HorizonGameweeks    int                `json:"horizon_gameweeks" jsonschema:"How many upcoming gameweeks to optimize for (default 5)"`
	Budget              float64            `json:"budget" jsonschema:"Total budget in millions (default 100.0)"`
	MaxFromTeam         int                `json:"max_from_team" jsonschema:"Maximum players from any one club (default 3)"`
	MustInclude         []string           `json:"must_include" jsonschema:"Player names to force-include"`
	Avoid               []string           `json:"avoid" jsonschema:"Player names to exclude"`
	RiskProfile         string             `json:"risk_profile" jsonschema:"Either template or differential (default template)"`
	DifferentialWeight  float64            `json:"differential_weight" jsonschema:"Low-ownership bonus weight under differential profile (default 0.12)"`
	AllowFlaggedPlayers bool               `json:"allow_flagged_players" jsonschema:"Include players with injury/suspension flags"`
	TeamMultipliers     map[string]float64 `json:"team_multipliers" jsonschema:"Per-team multipliers from fixture_outlook, keyed by team id"`
	ForceRefresh        bool               `json:"force_refresh" jsonschema:"Force refresh instead of reading cached payloads"`
}

type OptimizeSquadOutput struct {
	HorizonGameweeks     int            `json:"horizon_gameweeks"`
	Budget               float64        `json:"budget"`
	MaxFromTeam          int            `json:"max_from_team"`
	TotalCost            float64        `json:"total_cost"`
	TotalProjectedPoints float64        `json:"total_projected_points"`
	Captain              squad.Player   `json:"captain"`
	ViceCaptain          squad.Player   `json:"vice_captain"`
	Starting11           []squad.Player `json:"starting_11"`
	Bench                []squad.Player `json:"bench"`
	Squad                []squad.Player `json:"squad"`
}

// buildOptimizeSquad runs optimize, re-validates the squad, derives the
// lineup, and enriches every entry with resolved team names. Any failure
// aborts before output is produced.
func buildOptimizeSquad(client *fetch.Client, args OptimizeSquadArgs) ([]byte, error) {
	horizon := args.HorizonGameweeks
	if horizon <= 0 {
		horizon = optimizer.DefaultHorizonGameweeks
	}
	budget := args.Budget
	if budget == 0 {
		budget = optimizer.DefaultBudget
	}
	maxFromTeam := args.MaxFromTeam
	if maxFromTeam == 0 {
		maxFromTeam = optimizer.DefaultMaxFromTeam
	}

	boot, err := client.Bootstrap(args.ForceRefresh)
	if err != nil {
		return nil, err
	}
	teams := fetch.TeamsByID(boot)

	result, err := optimizer.Optimize(boot.Elements, optimizer.Options{
		HorizonGameweeks:    horizon,
		Budget:              budget,
		MaxFromTeam:         maxFromTeam,
		MustInclude:         args.MustInclude,
		Avoid:               args.Avoid,
		TeamMultipliers:     parseTeamMultipliers(args.TeamMultipliers),
		AllowFlaggedPlayers: args.AllowFlaggedPlayers,
		RiskProfile:         args.RiskProfile,
		DifferentialWeight:  args.DifferentialWeight,
		PositionByType:      positionByType(boot),
	})
	if err != nil {
		return nil, err
	}
	if err := squad.Validate(result.Squad, budget, maxFromTeam); err != nil {
		return nil, err
	}
	lineup, err := squad.PickLineup(result.Squad)
	if err != nil {
		return nil, err
	}

	out := OptimizeSquadOutput{
		HorizonGameweeks:     horizon,
		Budget:               budget,
		MaxFromTeam:          maxFromTeam,
		TotalCost:            result.TotalCost,
		TotalProjectedPoints: result.TotalProjectedPoints,
		Captain:              enrich(lineup.Captain, teams),
		ViceCaptain:          enrich(lineup.ViceCaptain, teams),
		Starting11:           enrichAll(lineup.Starting, teams),
		Bench:                enrichAll(lineup.Bench, teams),
		Squad:                enrichAll(result.Squad, teams),
	}
	return json.MarshalIndent(out, "", "  ")
}

func enrich(p squad.Player, teams map[int]model.Team) squad.Player {
	t := teams[p.TeamID]
	p.TeamName = t.Name
	p.TeamShortName = t.ShortName
	return p
}

func enrichAll(players []squad.Player, teams map[int]model.Team) []squad.Player {
	out := make([]squad.Player, len(players))
	for i, p := range players {
		out[i] = enrich(p, teams)
	}
	return out
}
