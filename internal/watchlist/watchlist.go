// Package watchlist ranks players by a crude value score for research
// ahead of an optimization run.
package watchlist

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"fpl-squad-mcp/internal/model"
)

const (
	DefaultTopN       = 25
	DefaultMinMinutes = 180

	// Multiplier cutoffs for classifying a team's fixture run.
	goodMultiplier = 1.07
	badMultiplier  = 0.95
)

type Options struct {
	TopN                int // 0 means DefaultTopN
	MinMinutes          int // floors tiny samples; 0 means DefaultMinMinutes
	AllowFlaggedPlayers bool
	TeamMultipliers     map[int]float64
	// PositionByType maps element_type ids to position codes.
	PositionByType map[int]string
}

type Row struct {
	Name              string  `json:"name"`
	Team              string  `json:"team"`
	Position          string  `json:"position"`
	Price             float64 `json:"price"`
	TotalPoints       int     `json:"total_points"`
	Form              float64 `json:"form"`
	PointsPerGame     float64 `json:"points_per_game"`
	EPNext            float64 `json:"ep_next"`
	Minutes           int     `json:"minutes"`
	Status            string  `json:"status"`
	SelectedByPercent float64 `json:"selected_by_percent"`
	ICTIndex          float64 `json:"ict_index"`
	Threat            float64 `json:"threat"`
	Creativity        float64 `json:"creativity"`
	Influence         float64 `json:"influence"`
	ValueScore        float64 `json:"value_score"`
	FixtureOutlook    string  `json:"fixture_outlook"`
}

// Build filters the pool and returns the top-N rows by value score.
func Build(elements []model.Element, teams map[int]model.Team, opts Options) []Row {
	topN := opts.TopN
	if topN <= 0 {
		topN = DefaultTopN
	}
	minMinutes := opts.MinMinutes
	if minMinutes <= 0 {
		minMinutes = DefaultMinMinutes
	}

	rows := make([]Row, 0, len(elements))
	for _, e := range elements {
		pos := opts.PositionByType[e.ElementType]
		switch pos {
		case "GK", "DEF", "MID", "FWD":
		default:
			continue
		}
		if e.Minutes < minMinutes {
			continue
		}
		status := e.StatusLabel()
		if !opts.AllowFlaggedPlayers && status != "available" {
			continue
		}

		price := e.CostMillions()
		// Value score: attacking signals per price, priced no lower than
		// 4.0 so cheap fodder does not dominate.
		value := (float64(e.EPNext) + 0.8*float64(e.Form) + 0.6*float64(e.PointsPerGame)) / math.Max(price, 4.0)

		rows = append(rows, Row{
			Name:              e.Name(),
			Team:              teams[e.Team].Name,
			Position:          pos,
			Price:             price,
			TotalPoints:       e.TotalPoints,
			Form:              float64(e.Form),
			PointsPerGame:     float64(e.PointsPerGame),
			EPNext:            float64(e.EPNext),
			Minutes:           e.Minutes,
			Status:            status,
			SelectedByPercent: float64(e.SelectedByPercent),
			ICTIndex:          float64(e.ICTIndex),
			Threat:            float64(e.Threat),
			Creativity:        float64(e.Creativity),
			Influence:         float64(e.Influence),
			ValueScore:        value,
			FixtureOutlook:    classifyOutlook(opts.TeamMultipliers, e.Team),
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].ValueScore != rows[j].ValueScore {
			return rows[i].ValueScore > rows[j].ValueScore
		}
		if rows[i].EPNext != rows[j].EPNext {
			return rows[i].EPNext > rows[j].EPNext
		}
		return rows[i].TotalPoints > rows[j].TotalPoints
	})
	if len(rows) > topN {
		rows = rows[:topN]
	}
	return rows
}

func classifyOutlook(multipliers map[int]float64, teamID int) string {
	m, ok := multipliers[teamID]
	if !ok {
		return "unknown"
	}
	switch {
	case m >= goodMultiplier:
		return "good"
	case m <= badMultiplier:
		return "bad"
	default:
		return "mixed"
	}
}

// Markdown renders the watchlist as a GitHub-flavored table.
func Markdown(rows []Row) string {
	var b strings.Builder
	b.WriteString("| Name | Team | Position | Price | Total_Points | Form | ep_next | Minutes | Status | Ownership_% | ICT_Index | Fixture_Outlook |\n")
	b.WriteString("| --- | --- | --- | --- | --- | --- | --- | --- | --- | --- | --- | --- |\n")
	for _, r := range rows {
		fmt.Fprintf(&b, "| %s | %s | %s | %.2f | %d | %.2f | %.2f | %d | %s | %.2f | %.2f | %s |\n",
			r.Name, r.Team, r.Position, r.Price, r.TotalPoints, r.Form, r.EPNext,
			r.Minutes, r.Status, r.SelectedByPercent, r.ICTIndex, r.FixtureOutlook)
	}
	return b.String()
}
