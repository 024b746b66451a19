package fetch

import (
	"encoding/json"

	"fpl-squad-mcp/internal/model"
)

// /bootstrap-static/
func (c *Client) Bootstrap(force bool) (*model.Bootstrap, error) {
	raw, err := c.FetchRaw("/bootstrap-static/", "bootstrap-static.json", force)
	if err != nil {
		return nil, err
	}
	var boot model.Bootstrap
	if err := json.Unmarshal(raw, &boot); err != nil {
		return nil, &FetchError{URL: c.BaseURL + "/bootstrap-static/", Err: err}
	}
	return &boot, nil
}

// /fixtures/
func (c *Client) Fixtures(force bool) ([]model.Fixture, error) {
	raw, err := c.FetchRaw("/fixtures/", "fixtures.json", force)
	if err != nil {
		return nil, err
	}
	var fixtures []model.Fixture
	if err := json.Unmarshal(raw, &fixtures); err != nil {
		return nil, &FetchError{URL: c.BaseURL + "/fixtures/", Err: err}
	}
	return fixtures, nil
}

// TeamsByID indexes the snapshot's teams by id.
func TeamsByID(boot *model.Bootstrap) map[int]model.Team {
	teams := make(map[int]model.Team, len(boot.Teams))
	for _, t := range boot.Teams {
		teams[t.ID] = t
	}
	return teams
}

// PositionByType maps element_type ids to squad position codes
// (GK/DEF/MID/FWD) using the snapshot's element_types.
func PositionByType(boot *model.Bootstrap) map[int]string {
	positions := make(map[int]string, len(boot.ElementTypes))
	for _, et := range boot.ElementTypes {
		positions[et.ID] = model.NormalizePosition(et.SingularNameShort)
	}
	return positions
}
