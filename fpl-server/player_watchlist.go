package main

import (
	"encoding/json"

	"fpl-squad-mcp/internal/fetch"
	"fpl-squad-mcp/internal/watchlist"
)

type PlayerWatchlistArgs struct {
	TopN                int                `json:"top_n" jsonschema:"How many players to include (default 25)"`
	MinMinutes          int                `json:"min_minutes" jsonschema:"Minimum minutes played to consider (default 180)"`
	AllowFlaggedPlayers bool               `json:"allow_flagged_players" jsonschema:"Include players with injury/suspension flags"`
	TeamMultipliers     map[string]float64 `json:"team_multipliers" jsonschema:"Per-team multipliers from fixture_outlook, keyed by team id"`
	ForceRefresh        bool               `json:"force_refresh" jsonschema:"Force refresh instead of reading cached payloads"`
}

// buildPlayerWatchlist returns a markdown table followed by a fenced
// JSON block usable by the optimizer stage.
func buildPlayerWatchlist(client *fetch.Client, args PlayerWatchlistArgs) (string, error) {
	boot, err := client.Bootstrap(args.ForceRefresh)
	if err != nil {
		return "", err
	}

	rows := watchlist.Build(boot.Elements, fetch.TeamsByID(boot), watchlist.Options{
		TopN:                args.TopN,
		MinMinutes:          args.MinMinutes,
		AllowFlaggedPlayers: args.AllowFlaggedPlayers,
		TeamMultipliers:     parseTeamMultipliers(args.TeamMultipliers),
		PositionByType:      positionByType(boot),
	})
	if len(rows) == 0 {
		return "No players found after filtering. Try lowering min_minutes.", nil
	}

	payload, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return "", err
	}
	return watchlist.Markdown(rows) + "\n\n```json\n" + string(payload) + "\n```\n", nil
}
