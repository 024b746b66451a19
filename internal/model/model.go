// Package model holds typed views of the official FPL API payloads
// (bootstrap-static and fixtures). Fields the feed serializes as quoted
// numbers decode through Float so a malformed value reads as 0 instead
// of failing the whole snapshot.
package model

import (
	"bytes"
	"strconv"
	"strings"
)

// Float decodes a JSON number that may arrive as a string ("4.5"), a
// bare number, or null. Unparseable values decode as 0.
type Float float64

func (f *Float) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(bytes.Trim(b, `"`)))
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		*f = 0
		return nil
	}
	*f = Float(v)
	return nil
}

type Team struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	ShortName string `json:"short_name"`
}

type Event struct {
	ID        int  `json:"id"`
	IsCurrent bool `json:"is_current"`
	IsNext    bool `json:"is_next"`
}

type ElementType struct {
	ID                int    `json:"id"`
	SingularNameShort string `json:"singular_name_short"`
}

type Element struct {
	ID                int    `json:"id"`
	FirstName         string `json:"first_name"`
	SecondName        string `json:"second_name"`
	WebName           string `json:"web_name"`
	Team              int    `json:"team"`
	ElementType       int    `json:"element_type"`
	NowCost           int    `json:"now_cost"`
	TotalPoints       int    `json:"total_points"`
	Minutes           int    `json:"minutes"`
	Status            string `json:"status"`
	Form              Float  `json:"form"`
	PointsPerGame     Float  `json:"points_per_game"`
	EPNext            Float  `json:"ep_next"`
	SelectedByPercent Float  `json:"selected_by_percent"`
	ICTIndex          Float  `json:"ict_index"`
	Threat            Float  `json:"threat"`
	Creativity        Float  `json:"creativity"`
	Influence         Float  `json:"influence"`
}

// Name returns "First Second", falling back to the web name when both
// parts are blank.
func (e Element) Name() string {
	name := strings.TrimSpace(strings.TrimSpace(e.FirstName) + " " + strings.TrimSpace(e.SecondName))
	if name == "" {
		return strings.TrimSpace(e.WebName)
	}
	return name
}

// CostMillions converts now_cost (tenths of a million) to millions.
func (e Element) CostMillions() float64 {
	return float64(e.NowCost) / 10.0
}

// StatusLabel maps the feed's single-letter status codes to words. Any
// unrecognized code reads as "unknown" rather than erroring.
func (e Element) StatusLabel() string {
	switch strings.ToLower(strings.TrimSpace(e.Status)) {
	case "a":
		return "available"
	case "d":
		return "doubtful"
	case "i":
		return "injured"
	case "s":
		return "suspended"
	case "u":
		return "unavailable"
	default:
		return "unknown"
	}
}

type Bootstrap struct {
	Events       []Event       `json:"events"`
	Teams        []Team        `json:"teams"`
	ElementTypes []ElementType `json:"element_types"`
	Elements     []Element     `json:"elements"`
}

type Fixture struct {
	Event           *int   `json:"event"`
	TeamH           int    `json:"team_h"`
	TeamA           int    `json:"team_a"`
	TeamHDifficulty int    `json:"team_h_difficulty"`
	TeamADifficulty int    `json:"team_a_difficulty"`
	KickoffTime     string `json:"kickoff_time"`
}

// CanonicalPositionByType is the long-standing element_type assignment
// of the feed, used when a snapshot carries no element_types block.
var CanonicalPositionByType = map[int]string{1: "GK", 2: "DEF", 3: "MID", 4: "FWD"}

// NormalizePosition collapses feed position short names onto the four
// squad position codes ("GKP" is the feed's spelling of GK).
func NormalizePosition(short string) string {
	s := strings.ToUpper(strings.TrimSpace(short))
	if s == "GKP" {
		return "GK"
	}
	return s
}
