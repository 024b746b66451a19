package main

import (
	"encoding/json"

	"fpl-squad-mcp/internal/fetch"
	"fpl-squad-mcp/internal/outlook"
)

type FixtureOutlookArgs struct {
	HorizonGameweeks int  `json:"horizon_gameweeks" jsonschema:"How many upcoming gameweeks to analyze (default 5)"`
	FromEvent        int  `json:"from_event" jsonschema:"Start from this event/gameweek (0 = current or next)"`
	ForceRefresh     bool `json:"force_refresh" jsonschema:"Force refresh instead of reading cached payloads"`
}

type FixtureOutlookOutput struct {
	FromEvent        int             `json:"from_event"`
	HorizonGameweeks int             `json:"horizon_gameweeks"`
	TeamMultipliers  map[int]float64 `json:"team_multipliers"`
}

// buildFixtureOutlook returns the outlook table as markdown followed by
// a fenced JSON block carrying the multipliers for the optimizer stage.
func buildFixtureOutlook(client *fetch.Client, args FixtureOutlookArgs) (string, error) {
	horizon := args.HorizonGameweeks
	if horizon <= 0 {
		horizon = 5
	}

	boot, err := client.Bootstrap(args.ForceRefresh)
	if err != nil {
		return "", err
	}
	fixtures, err := client.Fixtures(args.ForceRefresh)
	if err != nil {
		return "", err
	}

	fromEvent := resolveFromEvent(boot, args.FromEvent)
	rows, multipliers := outlook.Compute(fetch.TeamsByID(boot), fixtures, fromEvent, horizon, outlook.Config{})

	payload, err := json.MarshalIndent(FixtureOutlookOutput{
		FromEvent:        fromEvent,
		HorizonGameweeks: horizon,
		TeamMultipliers:  multipliers,
	}, "", "  ")
	if err != nil {
		return "", err
	}
	return outlook.Markdown(rows) + "\n\n```json\n" + string(payload) + "\n```\n", nil
}
