package itinerary_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/itinerary"
)

func TestFilter_Select(t *testing.T) {
	d1 := domain.MustParseDate("2024-06-01")
	d2 := domain.MustParseDate("2024-06-02")

	var f itinerary.Filter
	assert.False(t, f.Active())

	f = f.Select(d1)
	assert.True(t, f.Active())
	assert.Equal(t, d1, f.Date)

	f = f.Select(d2)
	assert.True(t, f.Active(), "switching days stays filtered")
	assert.Equal(t, d2, f.Date)

	f = f.Select(d2)
	assert.False(t, f.Active(), "selecting the filtered day again clears the filter")
}

func mapFixture() domain.State {
	a := dest(1, "Reykjavik", "2024-06-01", 0)
	a.Lat, a.Lng = 64.14, -21.94
	b := dest(2, "Vik", "2024-06-02", 120)
	b.Lat, b.Lng = 63.42, -19.01
	b.Category = domain.CategoryFood
	c := dest(3, "No pin", "2024-06-02", 0)
	u := dest(4, "Maybe", "", 0)
	u.Lat, u.Lng = 65.68, -18.09
	return domain.State{Destinations: []domain.Destination{a, b, c, u}}
}

func TestBuildMap_Unfiltered(t *testing.T) {
	view := itinerary.BuildMap(mapFixture(), itinerary.Filter{})

	require.Len(t, view.Pins, 3, "destinations at (0,0) have no pin")
	for _, p := range view.Pins {
		assert.True(t, p.Visible)
	}
	assert.Equal(t, itinerary.Palette[0], view.Pins[0].Color)
	assert.Equal(t, itinerary.Palette[1], view.Pins[1].Color)
	assert.Equal(t, "fa-utensils", view.Pins[1].Icon)
	assert.Equal(t, itinerary.UnassignedColor, view.Pins[2].Color)
	assert.Equal(t, "$120", view.Pins[1].Popup.Cost)
	assert.Equal(t, "No additional notes.", view.Pins[0].Popup.Notes)

	require.NotNil(t, view.Fit, "auto-zoom defaults to on")
	assert.Less(t, view.Fit.South, 63.42)
	assert.Greater(t, view.Fit.North, 65.68)
}

func TestBuildMap_FilteredFitsOnlyThatDay(t *testing.T) {
	f := itinerary.Filter{}.Select(domain.MustParseDate("2024-06-02"))

	view := itinerary.BuildMap(mapFixture(), f)

	require.Len(t, view.Pins, 3, "hidden pins stay in the collection")
	assert.False(t, view.Pins[0].Visible)
	assert.True(t, view.Pins[1].Visible)
	assert.False(t, view.Pins[2].Visible)

	require.NotNil(t, view.Fit)
	assert.InDelta(t, 63.42, (view.Fit.South+view.Fit.North)/2, 1e-9)
	assert.InDelta(t, -19.01, (view.Fit.West+view.Fit.East)/2, 1e-9)
}

func TestBuildMap_AutoZoomOff(t *testing.T) {
	s := mapFixture()
	off := false
	s.AutoZoomEnabled = &off

	view := itinerary.BuildMap(s, itinerary.Filter{})

	assert.False(t, view.AutoZoom)
	assert.Nil(t, view.Fit)
}

func TestBuildMap_NoVisiblePinsNoFit(t *testing.T) {
	f := itinerary.Filter{}.Select(domain.MustParseDate("2030-01-01"))

	view := itinerary.BuildMap(mapFixture(), f)

	assert.Nil(t, view.Fit)
}

func TestBounds_Pad(t *testing.T) {
	b := itinerary.Bounds{South: 10, West: 20, North: 20, East: 40}.Pad(0.2)

	assert.InDelta(t, 8, b.South, 1e-9)
	assert.InDelta(t, 22, b.North, 1e-9)
	assert.InDelta(t, 16, b.West, 1e-9)
	assert.InDelta(t, 44, b.East, 1e-9)
}

func TestBuildMap_InvalidLabelColorUsesUnassignedPin(t *testing.T) {
	s := mapFixture()
	s.DayLabels = []domain.DayLabel{
		{Date: domain.MustParseDate("2024-06-01"), Color: "tomato"},
	}

	view := itinerary.BuildMap(s, itinerary.Filter{})

	assert.Equal(t, itinerary.UnassignedColor, view.Pins[0].Color)
	assert.Equal(t, itinerary.Palette[1], view.Pins[1].Color)
}
