package scoring

import (
	"math"
	"testing"

	"fpl-squad-mcp/internal/model"
)

func TestAvailability(t *testing.T) {
	cases := []struct {
		minutes float64
		want    float64
	}{
		{0, 0.65},
		{450, 0.9},  // 0.65 + 450/1800
		{630, 1.0},  // the 0.35 cap is reached here
		{900, 1.0},  // capped once the sample is large enough
		{1800, 1.0},
		{3000, 1.0},
	}
	for _, tc := range cases {
		if got := Availability(tc.minutes); math.Abs(got-tc.want) > 1e-12 {
			t.Errorf("availability(%v): want %v, got %v", tc.minutes, tc.want, got)
		}
	}
}

func TestProjectedPointsZeroInputsIsExactlyZero(t *testing.T) {
	e := model.Element{Minutes: 0, EPNext: 0, PointsPerGame: 0, Form: 0}
	if got := ProjectedPoints(e, 5, 1.0); got != 0 {
		t.Errorf("want exactly 0, got %v", got)
	}
}

func TestProjectedPointsPrefersEPNextWhenHigher(t *testing.T) {
	e := model.Element{EPNext: 6.0, PointsPerGame: 2.0, Form: 2.0, Minutes: 1800}
	// blend = 0.55*2 + 0.45*2 = 2.0 < ep_next
	if got := ProjectedPoints(e, 1, 1.0); math.Abs(got-6.0) > 1e-12 {
		t.Errorf("want 6.0, got %v", got)
	}
}

func TestProjectedPointsBlendsFormAndPPG(t *testing.T) {
	e := model.Element{EPNext: 1.0, PointsPerGame: 4.0, Form: 6.0, Minutes: 1800}
	// blend = 0.55*4 + 0.45*6 = 4.9
	if got := ProjectedPoints(e, 1, 1.0); math.Abs(got-4.9) > 1e-12 {
		t.Errorf("want 4.9, got %v", got)
	}
}

func TestProjectedPointsScalesByHorizonAndMultiplier(t *testing.T) {
	e := model.Element{EPNext: 4.0, Minutes: 1800}
	got := ProjectedPoints(e, 3, 1.1)
	want := 4.0 * 3 * 1.1
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("want %v, got %v", want, got)
	}
}

func TestProjectedPointsAppliesAvailabilityDiscount(t *testing.T) {
	e := model.Element{EPNext: 10.0, Minutes: 0}
	if got := ProjectedPoints(e, 1, 1.0); math.Abs(got-6.5) > 1e-12 {
		t.Errorf("want 6.5 under the 0.65 floor, got %v", got)
	}
}
