package exchange_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/exchange"
)

func stateFixture() domain.State {
	off := false
	return domain.State{
		Destinations: []domain.Destination{
			{
				ID:              1717200000000,
				Name:            "Blue Lagoon",
				ArrivalDate:     domain.MustParseDate("2024-06-01"),
				DepartureDate:   domain.MustParseDate("2024-06-01"),
				Category:        domain.CategoryActivity,
				Priority:        domain.PriorityHigh,
				Cost:            120.5,
				Time:            3,
				Activities:      "Book the 10:00 slot, bring towels",
				WebsiteLink:     "https://www.bluelagoon.com",
				GoogleMapsLink:  "https://maps.google.com/?q=blue+lagoon",
				AdvisorSiteLink: "https://advisor.example.com/lagoon",
				Lat:             63.8804,
				Lng:             -22.4495,
			},
			{
				ID:       1717200000001,
				Name:     "Someday",
				Category: domain.CategoryOther,
				Priority: domain.PriorityMedium,
			},
		},
		DayLabels: []domain.DayLabel{
			{Date: domain.MustParseDate("2024-06-01"), Label: "Arrival", Color: "#2196f3"},
		},
		TripSettings: &domain.TripSettings{
			Destination: "Iceland",
			StartDate:   domain.MustParseDate("2024-06-01"),
			EndDate:     domain.MustParseDate("2024-06-10"),
			Budget:      5000,
		},
		AutoZoomEnabled: &off,
	}
}

// ---- JSON ------------------------------------------------------------------

func TestJSON_RoundTrip(t *testing.T) {
	in := stateFixture()

	b, err := exchange.EncodeJSON(in)
	require.NoError(t, err)

	out, err := exchange.DecodeJSON(b)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestEncodeJSON_EmptyArraysNotNull(t *testing.T) {
	b, err := exchange.EncodeJSON(domain.State{})

	require.NoError(t, err)
	assert.JSONEq(t, `{"destinations":[],"dayLabels":[]}`, string(b))
}

func TestDecodeJSON_EmptyArraysSucceed(t *testing.T) {
	s, err := exchange.DecodeJSON([]byte(`{"destinations":[],"dayLabels":[]}`))

	require.NoError(t, err)
	assert.NotNil(t, s.Destinations)
	assert.Empty(t, s.Destinations)
	assert.Empty(t, s.DayLabels)
}

func TestDecodeJSON_EitherArrayIsEnough(t *testing.T) {
	s, err := exchange.DecodeJSON([]byte(`{"dayLabels":[{"date":"2024-06-01","label":"x","color":"#fff"}]}`))

	require.NoError(t, err)
	assert.Empty(t, s.Destinations)
	assert.Len(t, s.DayLabels, 1)
}

func TestDecodeJSON_AcceptsBrowserShape(t *testing.T) {
	payload := `{
		"destinations": [
			{"name":"Reykjavik","arrivalDate":"2024-06-01","departureDate":"2024-06-02",
			 "category":"accommodation","priority":"medium","cost":250,"time":0,"activities":"",
			 "lat":64.1466,"lng":-21.9426,"websiteLink":"","googleMapsLink":"","advisorSiteLink":"",
			 "id":1717243200000}
		],
		"dayLabels": []
	}`

	s, err := exchange.DecodeJSON([]byte(payload))

	require.NoError(t, err)
	require.Len(t, s.Destinations, 1)
	assert.Equal(t, int64(1717243200000), s.Destinations[0].ID)
	assert.Equal(t, "2024-06-02", s.Destinations[0].DepartureDate.String())
}

func TestDecodeJSON_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{"not json", `{{`},
		{"array", `[]`},
		{"null", `null`},
		{"string", `"hello"`},
		{"no arrays", `{"foo":1}`},
		{"destinations not an array", `{"destinations":"nope"}`},
		{"bad date", `{"destinations":[{"id":1,"name":"A","arrivalDate":"tomorrow"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := exchange.DecodeJSON([]byte(tt.payload))
			assert.ErrorIs(t, err, domain.ErrInvalidImport)
		})
	}
}

// ---- CSV -------------------------------------------------------------------

func TestEncodeCSV(t *testing.T) {
	b, err := exchange.EncodeCSV(stateFixture().Destinations)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(b)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Name,Arrival Date,Departure Date,Category,Cost,Activities,Latitude,Longitude", lines[0])
	assert.Equal(t, `Blue Lagoon,2024-06-01,2024-06-01,activity,120.5,"Book the 10:00 slot, bring towels",63.8804,-22.4495`, lines[1])
	assert.Equal(t, "Someday,,,other,0,,0,0", lines[2])
}

func TestEncodeCSV_EmptyHasHeaderOnly(t *testing.T) {
	b, err := exchange.EncodeCSV(nil)

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(b), "Name,"))
	assert.Len(t, strings.Split(strings.TrimSpace(string(b)), "\n"), 1)
}

func TestCSV_RoundTripKeepsCSVColumns(t *testing.T) {
	b, err := exchange.EncodeCSV(stateFixture().Destinations)
	require.NoError(t, err)

	got, err := exchange.DecodeCSV(strings.NewReader(string(b)))

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Blue Lagoon", got[0].Name)
	assert.Equal(t, "2024-06-01", got[0].ArrivalDate.String())
	assert.Equal(t, 120.5, got[0].Cost)
	assert.Equal(t, 63.8804, got[0].Lat)
	assert.Equal(t, "Book the 10:00 slot, bring towels", got[0].Activities)
	assert.Zero(t, got[0].ID, "ids are assigned by the store")
	assert.False(t, got[1].Scheduled())
}

func TestDecodeCSV_ColumnsByNameAndDefaults(t *testing.T) {
	in := "longitude,NAME,arrival date,category\n-21.9,Harpa,2024-06-02,concert\n"

	got, err := exchange.DecodeCSV(strings.NewReader(in))

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Harpa", got[0].Name)
	assert.Equal(t, "2024-06-02", got[0].DepartureDate.String(), "departure defaults to arrival")
	assert.Equal(t, domain.CategoryActivity, got[0].Category)
	assert.Zero(t, got[0].Lng, "a lone longitude is not a coordinate")
}

func TestDecodeCSV_Invalid(t *testing.T) {
	_, err := exchange.DecodeCSV(strings.NewReader(""))
	assert.ErrorIs(t, err, domain.ErrInvalidImport)

	_, err = exchange.DecodeCSV(strings.NewReader("Title,Cost\nx,1\n"))
	assert.ErrorIs(t, err, domain.ErrInvalidImport)

	_, err = exchange.DecodeCSV(strings.NewReader("Name,Arrival Date\nx,32/13/2024\n"))
	assert.ErrorIs(t, err, domain.ErrInvalidImport)
}

func TestDecodeCSV_BlankNameRejected(t *testing.T) {
	_, err := exchange.DecodeCSV(strings.NewReader("Name,Arrival Date\nHarpa,2024-06-01\n  ,2024-06-02\n"))

	assert.ErrorIs(t, err, domain.ErrInvalidImport)
	assert.ErrorContains(t, err, "line 3")
}

// ---- misc ------------------------------------------------------------------

func TestParseFormat(t *testing.T) {
	f, err := exchange.ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, exchange.FormatJSON, f)

	f, err = exchange.ParseFormat("CSV")
	require.NoError(t, err)
	assert.Equal(t, exchange.FormatCSV, f)

	_, err = exchange.ParseFormat("xml")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestFileName(t *testing.T) {
	now := time.Date(2024, 6, 1, 15, 4, 5, 0, time.UTC)

	assert.Equal(t, "vacation-itinerary-2024-06-01.json", exchange.FileName(exchange.FormatJSON, now))
	assert.Equal(t, "vacation-itinerary-2024-06-01.csv", exchange.FileName(exchange.FormatCSV, now))
	assert.Equal(t, "text/csv", exchange.FormatCSV.ContentType())
}
