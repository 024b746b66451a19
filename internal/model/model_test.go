package model

import (
	"encoding/json"
	"testing"
)

func TestFloatUnmarshal(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want float64
	}{
		{"quoted", `"4.5"`, 4.5},
		{"bare", `4.5`, 4.5},
		{"integer", `7`, 7},
		{"null", `null`, 0},
		{"empty string", `""`, 0},
		{"garbage", `"n/a"`, 0},
		{"negative quoted", `"-1.2"`, -1.2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var f Float
			if err := json.Unmarshal([]byte(tc.in), &f); err != nil {
				t.Fatalf("unmarshal %s: %v", tc.in, err)
			}
			if float64(f) != tc.want {
				t.Errorf("want %v, got %v", tc.want, float64(f))
			}
		})
	}
}

func TestElementName(t *testing.T) {
	e := Element{FirstName: " Erling ", SecondName: " Haaland "}
	if got := e.Name(); got != "Erling Haaland" {
		t.Errorf("name: got %q", got)
	}

	e = Element{WebName: "Haaland"}
	if got := e.Name(); got != "Haaland" {
		t.Errorf("web name fallback: got %q", got)
	}
}

func TestElementStatusLabel(t *testing.T) {
	cases := map[string]string{
		"a": "available",
		"d": "doubtful",
		"i": "injured",
		"s": "suspended",
		"u": "unavailable",
		"":  "unknown",
		"x": "unknown",
		"A": "available",
	}
	for code, want := range cases {
		e := Element{Status: code}
		if got := e.StatusLabel(); got != want {
			t.Errorf("status %q: want %q, got %q", code, want, got)
		}
	}
}

func TestElementCostMillions(t *testing.T) {
	e := Element{NowCost: 75}
	if got := e.CostMillions(); got != 7.5 {
		t.Errorf("cost: want 7.5, got %v", got)
	}
}

func TestNormalizePosition(t *testing.T) {
	if got := NormalizePosition("GKP"); got != "GK" {
		t.Errorf("GKP: got %q", got)
	}
	if got := NormalizePosition(" def "); got != "DEF" {
		t.Errorf("def: got %q", got)
	}
}
