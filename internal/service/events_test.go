package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/exchange"
	"github.com/pkordes/trip-planner/internal/itinerary"
	"github.com/pkordes/trip-planner/internal/service"
)

func TestStore_Apply(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()
	a := add(t, s, "A", "2024-06-01", 0)
	b := add(t, s, "B", "2024-06-02", 0)
	day2 := domain.MustParseDate("2024-06-02")

	require.NoError(t, s.Apply(ctx, service.ReorderEvent{
		Order: []int64{b.ID, a.ID},
		Move:  &itinerary.Move{ID: a.ID, Date: day2},
	}))
	assert.Equal(t, []int64{b.ID, a.ID}, ids(s.List()))

	require.NoError(t, s.Apply(ctx, service.SelectDayEvent{Date: day2}))
	assert.True(t, s.Map().Filter.Date.Equal(day2))

	require.NoError(t, s.Apply(ctx, service.ShowAllDaysEvent{}))
	assert.False(t, s.Map().Filter.Active())

	require.NoError(t, s.Apply(ctx, service.AutoZoomEvent{Enabled: false}))
	assert.False(t, s.Map().AutoZoom)

	require.NoError(t, s.Apply(ctx, service.ShiftEvent{Start: domain.MustParseDate("2024-06-12")}))
	got, _ := s.Get(a.ID)
	assert.Equal(t, "2024-06-12", got.ArrivalDate.String())

	err := s.Apply(ctx, service.ImportEvent{Format: exchange.FormatJSON, Data: []byte(`{"destinations":[]}`)})
	assert.ErrorIs(t, err, domain.ErrConfirmationRequired)

	require.NoError(t, s.Apply(ctx, service.ClearEvent{Confirmed: true}))
	assert.Empty(t, s.List())
}

func TestStore_Apply_Nil(t *testing.T) {
	s, _ := newStore(t)

	assert.ErrorIs(t, s.Apply(context.Background(), nil), domain.ErrValidation)
}
