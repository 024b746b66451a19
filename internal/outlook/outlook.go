// Package outlook converts each team's upcoming fixture list into a
// difficulty summary row and a scoring multiplier for the optimizer.
package outlook

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"fpl-squad-mcp/internal/model"
)

// NoFixturesScore marks a team with zero fixtures in the window. Such
// teams sort last and keep a neutral 1.0 multiplier.
const NoFixturesScore = 99.0

type Row struct {
	Team                   string  `json:"team"`
	FixtureDifficultyScore float64 `json:"fixture_difficulty_score"`
	NumberOfGoodFixtures   int     `json:"number_of_good_fixtures"`
	NumberOfBadFixtures    int     `json:"number_of_bad_fixtures"`
	SpecialNotes           string  `json:"special_notes"`
}

// Config carries the difficulty thresholds. The two are independent: a
// difficulty-3 fixture counts as neither good nor bad under defaults.
type Config struct {
	GoodThreshold int // counts as good when difficulty <= this; default 2
	BadThreshold  int // counts as bad when difficulty >= this; default 4
}

func (c Config) withDefaults() Config {
	if c.GoodThreshold == 0 {
		c.GoodThreshold = 2
	}
	if c.BadThreshold == 0 {
		c.BadThreshold = 4
	}
	return c
}

// teamDifficulty returns the fixture's difficulty from teamID's
// perspective, false when the team plays in neither side.
func teamDifficulty(fx model.Fixture, teamID int) (int, bool) {
	if fx.TeamH == teamID {
		return fx.TeamHDifficulty, true
	}
	if fx.TeamA == teamID {
		return fx.TeamADifficulty, true
	}
	return 0, false
}

// upcomingForTeam selects the team's fixtures with an event number in
// [fromEvent, fromEvent+horizonEvents), sorted by (event, kickoff) for
// determinism. Unscheduled fixtures (nil event) are excluded. A
// fromEvent of 0 leaves the window open at the start.
func upcomingForTeam(fixtures []model.Fixture, teamID int, fromEvent int, horizonEvents int) []model.Fixture {
	res := make([]model.Fixture, 0, horizonEvents+1)
	for _, fx := range fixtures {
		if fx.Event == nil {
			continue
		}
		ev := *fx.Event
		if fromEvent > 0 && (ev < fromEvent || ev >= fromEvent+horizonEvents) {
			continue
		}
		if fx.TeamH == teamID || fx.TeamA == teamID {
			res = append(res, fx)
		}
	}
	sort.SliceStable(res, func(i, j int) bool {
		if *res[i].Event != *res[j].Event {
			return *res[i].Event < *res[j].Event
		}
		return res[i].KickoffTime < res[j].KickoffTime
	})
	return res
}

// Compute builds one outlook row per team plus the per-team multiplier
// map. Rows come back sorted by difficulty score ascending (easiest run
// first, sentinel rows last).
func Compute(teams map[int]model.Team, fixtures []model.Fixture, fromEvent int, horizonEvents int, cfg Config) ([]Row, map[int]float64) {
	cfg = cfg.withDefaults()
	rows := make([]Row, 0, len(teams))
	multipliers := make(map[int]float64, len(teams))

	for teamID, team := range teams {
		name := team.Name
		if name == "" {
			name = fmt.Sprintf("%d", teamID)
		}

		upcoming := upcomingForTeam(fixtures, teamID, fromEvent, horizonEvents)
		if len(upcoming) == 0 {
			rows = append(rows, Row{
				Team:                   name,
				FixtureDifficultyScore: NoFixturesScore,
				SpecialNotes:           "No upcoming fixtures found in horizon",
			})
			multipliers[teamID] = 1.0
			continue
		}

		var notes []string
		seen := make(map[int]bool, len(upcoming))
		dupes := false
		for _, fx := range upcoming {
			if seen[*fx.Event] {
				dupes = true
			}
			seen[*fx.Event] = true
		}
		if dupes {
			notes = append(notes, "Potential DGW in horizon")
		}

		var diffs []int
		good, bad := 0, 0
		for _, fx := range upcoming {
			d, ok := teamDifficulty(fx, teamID)
			if !ok {
				continue
			}
			diffs = append(diffs, d)
			if d <= cfg.GoodThreshold {
				good++
			}
			if d >= cfg.BadThreshold {
				bad++
			}
		}

		sum := 0
		for _, d := range diffs {
			sum += d
		}
		avg := float64(sum) / math.Max(1, float64(len(diffs)))

		// Map mean difficulty 1..5 onto ~1.15..0.85 and clamp.
		mult := 1.15 - (avg-1.0)*(0.30/4.0)
		multipliers[teamID] = math.Max(0.80, math.Min(1.20, mult))

		rows = append(rows, Row{
			Team:                   name,
			FixtureDifficultyScore: math.Round(avg*100) / 100,
			NumberOfGoodFixtures:   good,
			NumberOfBadFixtures:    bad,
			SpecialNotes:           strings.Join(notes, ", "),
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].FixtureDifficultyScore != rows[j].FixtureDifficultyScore {
			return rows[i].FixtureDifficultyScore < rows[j].FixtureDifficultyScore
		}
		return rows[i].Team < rows[j].Team
	})
	return rows, multipliers
}

// Markdown renders the outlook table with the fixed report columns.
func Markdown(rows []Row) string {
	var b strings.Builder
	b.WriteString("| Team | Fixture_Difficulty_Score | Number_of_good_fixtures | Number_of_bad_fixtures | Special_notes |\n")
	b.WriteString("|---|---:|---:|---:|---|\n")
	for _, r := range rows {
		notes := strings.TrimSpace(strings.ReplaceAll(r.SpecialNotes, "\n", " "))
		fmt.Fprintf(&b, "| %s | %.2f | %d | %d | %s |\n",
			r.Team, r.FixtureDifficultyScore, r.NumberOfGoodFixtures, r.NumberOfBadFixtures, notes)
	}
	return b.String()
}
