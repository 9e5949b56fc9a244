package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/exchange"
)

// ---- Export tests ----------------------------------------------------------

func TestStore_Export_EmptyIsRefused(t *testing.T) {
	s, _ := newStore(t)

	_, err := s.Export(exchange.FormatJSON)

	assert.ErrorIs(t, err, domain.ErrNothingToExport)
}

func TestStore_Export_LabelsOnlyIsAllowed(t *testing.T) {
	s, _ := newStore(t)
	_, err := s.SetDayLabel(context.Background(), domain.DayLabel{Date: domain.MustParseDate("2024-06-01")})
	require.NoError(t, err)

	_, err = s.Export(exchange.FormatJSON)

	assert.NoError(t, err)
}

func TestStore_ExportImport_RoundTrip(t *testing.T) {
	src, _ := newStore(t)
	ctx := context.Background()
	add(t, src, "Reykjavik", "2024-06-01", 250)
	add(t, src, "Vik", "2024-06-02", 120.5)
	_, err := src.Create(ctx, domain.Destination{Name: "Someday", Lat: 65.68, Lng: -18.09})
	require.NoError(t, err)
	_, err = src.SetDayLabel(ctx, domain.DayLabel{Date: domain.MustParseDate("2024-06-02"), Label: "South", Color: "#123"})
	require.NoError(t, err)
	_, err = src.SaveSettings(ctx, domain.TripSettings{Destination: "Iceland", Budget: 2000})
	require.NoError(t, err)
	require.NoError(t, src.SetAutoZoom(ctx, false))

	data, err := src.Export(exchange.FormatJSON)
	require.NoError(t, err)

	dst, _ := newStore(t)
	_, err = dst.Import(ctx, exchange.FormatJSON, data, false)
	require.NoError(t, err)

	assert.Equal(t, src.Snapshot(), dst.Snapshot())
}

// ---- Import tests ----------------------------------------------------------

func TestStore_Import_RequiresConfirmationWhenNotEmpty(t *testing.T) {
	s, _ := newStore(t)
	existing := add(t, s, "A", "2024-06-01", 0)

	_, err := s.Import(context.Background(), exchange.FormatJSON, []byte(`{"destinations":[]}`), false)

	assert.ErrorIs(t, err, domain.ErrConfirmationRequired)
	assert.Equal(t, []int64{existing.ID}, ids(s.List()))
}

func TestStore_Import_OverwriteReplaces(t *testing.T) {
	s, _ := newStore(t)
	add(t, s, "A", "2024-06-01", 0)

	got, err := s.Import(context.Background(), exchange.FormatJSON,
		[]byte(`{"destinations":[{"id":7,"name":"B","arrivalDate":"2024-07-01"}]}`), true)

	require.NoError(t, err)
	require.Len(t, got.Destinations, 1)
	assert.Equal(t, []int64{7}, ids(s.List()))
	assert.Empty(t, s.DayLabels())
}

func TestStore_Import_EmptyArraysSucceed(t *testing.T) {
	s, _ := newStore(t)

	_, err := s.Import(context.Background(), exchange.FormatJSON, []byte(`{"destinations":[],"dayLabels":[]}`), false)

	require.NoError(t, err)
	assert.True(t, s.Snapshot().IsEmpty())
}

func TestStore_Import_InvalidLeavesStateUntouched(t *testing.T) {
	s, mem := newStore(t)
	existing := add(t, s, "A", "2024-06-01", 0)
	saves := mem.saves

	for _, payload := range []string{`[]`, `{"foo":1}`, `{{`} {
		_, err := s.Import(context.Background(), exchange.FormatJSON, []byte(payload), true)
		assert.ErrorIs(t, err, domain.ErrInvalidImport, payload)
	}

	assert.Equal(t, []int64{existing.ID}, ids(s.List()))
	assert.Equal(t, saves, mem.saves)
}

func TestStore_Import_DuplicateIDs(t *testing.T) {
	s, _ := newStore(t)

	_, err := s.Import(context.Background(), exchange.FormatJSON,
		[]byte(`{"destinations":[{"id":1,"name":"A"},{"id":1,"name":"B"}]}`), false)

	assert.ErrorIs(t, err, domain.ErrInvalidImport)
}

func TestStore_Import_BlankNameRejected(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()

	_, err := s.Import(ctx, exchange.FormatJSON,
		[]byte(`{"destinations":[{"id":4,"name":"A"},{"id":5,"name":"  "}]}`), false)
	assert.ErrorIs(t, err, domain.ErrInvalidImport)
	assert.ErrorContains(t, err, "destination 1")

	_, err = s.Import(ctx, exchange.FormatCSV, []byte("Name,Arrival Date\n,2024-06-01\n"), false)
	assert.ErrorIs(t, err, domain.ErrInvalidImport)

	assert.Empty(t, s.List(), "a rejected import leaves the store untouched")
}

func TestStore_Import_AssignsMissingIDs(t *testing.T) {
	s, _ := newStore(t)

	got, err := s.Import(context.Background(), exchange.FormatJSON,
		[]byte(`{"destinations":[{"name":"A"},{"id":5,"name":"B"},{"name":"C"}]}`), false)

	require.NoError(t, err)
	assert.Equal(t, []int64{clock.UnixMilli(), 5, clock.UnixMilli() + 1}, ids(got.Destinations))

	next := add(t, s, "D", "2024-06-01", 0)
	assert.Equal(t, clock.UnixMilli()+2, next.ID, "later ids stay unique")
}

func TestStore_Import_DuplicateLabelDatesKeepLast(t *testing.T) {
	s, _ := newStore(t)

	_, err := s.Import(context.Background(), exchange.FormatJSON, []byte(`{"dayLabels":[
		{"date":"2024-06-01","label":"first","color":"#111"},
		{"date":"2024-06-01","label":"second","color":"bogus"}
	]}`), false)

	require.NoError(t, err)
	labels := s.DayLabels()
	require.Len(t, labels, 1)
	assert.Equal(t, "second", labels[0].Label)
	assert.Equal(t, "bogus", labels[0].Color)
}

func TestStore_Import_CSVKeepsSettings(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()
	_, err := s.SaveSettings(ctx, domain.TripSettings{Destination: "Iceland"})
	require.NoError(t, err)

	csv := "Name,Arrival Date,Departure Date,Category,Cost,Activities,Latitude,Longitude\n" +
		"Harpa,2024-06-02,,entertainment,40,Concert,64.15,-21.93\n"
	got, err := s.Import(ctx, exchange.FormatCSV, []byte(csv), false)

	require.NoError(t, err)
	require.Len(t, got.Destinations, 1)
	assert.Equal(t, clock.UnixMilli(), got.Destinations[0].ID)
	assert.Equal(t, domain.CategoryEntertainment, got.Destinations[0].Category)
	require.NotNil(t, s.Settings())
	assert.Equal(t, "Iceland", s.Settings().Destination)
}
