// Package squad holds the selected-player view shared by the optimizer,
// the lineup selector, and the validator.
package squad

// Position codes in display order.
const (
	GK  = "GK"
	DEF = "DEF"
	MID = "MID"
	FWD = "FWD"
)

// Player is one athlete of a selected squad, enriched with the resolved
// team names at the server boundary.
type Player struct {
	ID                int     `json:"id"`
	Name              string  `json:"name"`
	TeamID            int     `json:"team_id"`
	Position          string  `json:"position"`
	Cost              float64 `json:"cost"`
	ProjectedPoints   float64 `json:"projected_points"`
	TotalPoints       int     `json:"total_points"`
	Form              float64 `json:"form"`
	SelectedByPercent float64 `json:"selected_by_percent"`
	Status            string  `json:"status"`
	TeamName          string  `json:"team_name,omitempty"`
	TeamShortName     string  `json:"team_short_name,omitempty"`
}

// PositionCounts tallies squad members per position code.
func PositionCounts(players []Player) map[string]int {
	counts := make(map[string]int, 4)
	for _, p := range players {
		counts[p.Position]++
	}
	return counts
}
