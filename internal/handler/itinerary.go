package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/itinerary"
	"github.com/pkordes/trip-planner/internal/service"
)

// Day color tints used by the itinerary view.
const (
	dayBackgroundAlpha = 0.05
	dayBorderAlpha     = 0.2
)

// ItineraryResponse is the body of GET /itinerary.
type ItineraryResponse struct {
	Days             []DayResponse        `json:"days"`
	Unscheduled      BucketTotals         `json:"unscheduled"`
	Totals           Totals               `json:"totals"`
	Settings         *domain.TripSettings `json:"settings"`
	Budget           *BudgetResponse      `json:"budget,omitempty"`
	SuggestedArrival *openapi_types.Date  `json:"suggestedArrival"`
}

// DayResponse is one day bucket with its display attributes.
type DayResponse struct {
	Number       int                  `json:"number"`
	Date         openapi_types.Date   `json:"date"`
	DateDisplay  string               `json:"dateDisplay"`
	Label        string               `json:"label"`
	Placeholder  string               `json:"placeholder"`
	Color        string               `json:"color"`
	Background   string               `json:"background"`
	Border       string               `json:"border"`
	Destinations []domain.Destination `json:"destinations"`
	Totals       Totals               `json:"totals"`
}

// BucketTotals is the unscheduled section.
type BucketTotals struct {
	Destinations []domain.Destination `json:"destinations"`
	Totals       Totals               `json:"totals"`
}

// Totals carries raw sums and their display strings.
type Totals struct {
	Cost        float64 `json:"cost"`
	Time        float64 `json:"time"`
	CostDisplay string  `json:"costDisplay"`
	TimeDisplay string  `json:"timeDisplay"`
}

// BudgetResponse is present when the trip has a positive budget.
type BudgetResponse struct {
	Budget           float64 `json:"budget"`
	Remaining        float64 `json:"remaining"`
	RemainingDisplay string  `json:"remainingDisplay"`
	OverBudget       bool    `json:"overBudget"`
}

// ReorderRequest is the body of POST /itinerary/reorder: the ids in the
// order the user sees them after a drag, plus the cross-day move if any.
type ReorderRequest struct {
	Order []int64      `json:"order"`
	Move  *MoveRequest `json:"move,omitempty"`
}

// MoveRequest names the dragged destination and the day it landed on.
// A null or omitted date means the unscheduled section.
type MoveRequest struct {
	ID   int64               `json:"id"`
	Date *openapi_types.Date `json:"date"`
}

// ShiftRequest is the body of POST /itinerary/shift.
type ShiftRequest struct {
	StartDate openapi_types.Date `json:"startDate"`
}

// ShiftResponse reports how far the itinerary moved.
type ShiftResponse struct {
	Days int `json:"days"`
}

// DayLabelRequest is the body of PUT /days/{date}.
type DayLabelRequest struct {
	Label string `json:"label"`
	Color string `json:"color"`
}

// DayLabelList is the body of GET /days.
type DayLabelList struct {
	Data []domain.DayLabel `json:"data"`
}

// GetItinerary handles GET /itinerary.
func (s *Server) GetItinerary(w http.ResponseWriter, _ *http.Request) {
	sum := s.schedule.Itinerary()
	resp := summaryToResponse(sum)
	if d, ok := s.schedule.SuggestedArrival(); ok {
		resp.SuggestedArrival = &openapi_types.Date{Time: d.Time()}
	}
	writeJSON(w, http.StatusOK, resp)
}

// ReorderItinerary handles POST /itinerary/reorder.
func (s *Server) ReorderItinerary(w http.ResponseWriter, r *http.Request) {
	var body ReorderRequest
	if err := decodeJSON(r, &body); err != nil {
		s.rejectBody(w, r, err)
		return
	}

	var move *itinerary.Move
	if body.Move != nil {
		move = &itinerary.Move{ID: body.Move.ID}
		if body.Move.Date != nil {
			move.Date = domain.DateOf(body.Move.Date.Time)
		}
	}

	if err := s.schedule.ReconcileOrder(r.Context(), body.Order, move); err != nil {
		s.writeError(w, r, err, "destination not found")
		return
	}
	s.GetItinerary(w, r)
}

// ShiftItinerary handles POST /itinerary/shift.
func (s *Server) ShiftItinerary(w http.ResponseWriter, r *http.Request) {
	var body ShiftRequest
	if err := decodeJSON(r, &body); err != nil {
		s.rejectBody(w, r, err)
		return
	}

	days, err := s.schedule.ShiftDates(r.Context(), domain.DateOf(body.StartDate.Time))
	if err != nil {
		s.writeError(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, ShiftResponse{Days: days})
}

// ClearItinerary handles DELETE /itinerary?confirm=true.
// Without confirm a non-empty itinerary is left untouched and 409 is returned.
func (s *Server) ClearItinerary(w http.ResponseWriter, r *http.Request) {
	var confirm *bool
	if err := runtime.BindQueryParameter("form", true, false, "confirm", r.URL.Query(), &confirm); err != nil {
		requestError(w, "invalid confirm parameter")
		return
	}

	if err := s.schedule.Clear(r.Context(), confirm != nil && *confirm); err != nil {
		s.writeError(w, r, err, "")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListDayLabels handles GET /days.
func (s *Server) ListDayLabels(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, DayLabelList{Data: s.schedule.DayLabels()})
}

// PutDayLabel handles PUT /days/{date}.
func (s *Server) PutDayLabel(w http.ResponseWriter, r *http.Request) {
	var raw string
	err := runtime.BindStyledParameterWithOptions("simple", "date", chi.URLParam(r, "date"), &raw,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		requestError(w, "date is required")
		return
	}
	date, err := domain.ParseDate(raw)
	if err != nil {
		s.writeError(w, r, err, "")
		return
	}

	var body DayLabelRequest
	if err := decodeJSON(r, &body); err != nil {
		s.rejectBody(w, r, err)
		return
	}

	saved, err := s.schedule.SetDayLabel(r.Context(), domain.DayLabel{
		Date:  date,
		Label: body.Label,
		Color: body.Color,
	})
	if err != nil {
		s.writeError(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

// --- mapping helpers --------------------------------------------------------

func summaryToResponse(sum service.Summary) ItineraryResponse {
	resp := ItineraryResponse{
		Days: make([]DayResponse, 0, len(sum.Days)),
		Unscheduled: BucketTotals{
			Destinations: nonNil(sum.Unscheduled),
			Totals:       totals(sum.UnscheduledCost, sum.UnscheduledTime),
		},
		Totals:   totals(sum.TotalCost, sum.TotalTime),
		Settings: sum.Settings,
	}
	for _, d := range sum.Days {
		resp.Days = append(resp.Days, DayResponse{
			Number:       d.Number,
			Date:         openapi_types.Date{Time: d.Date.Time()},
			DateDisplay:  itinerary.FormatDate(d.Date),
			Label:        d.Label,
			Placeholder:  itinerary.LabelPlaceholder,
			Color:        d.Color,
			Background:   itinerary.HexToRGBA(d.Color, dayBackgroundAlpha),
			Border:       itinerary.HexToRGBA(d.Color, dayBorderAlpha),
			Destinations: nonNil(d.Destinations),
			Totals:       totals(d.TotalCost, d.TotalTime),
		})
	}
	if sum.HasBudget {
		resp.Budget = &BudgetResponse{
			Budget:           sum.Settings.Budget,
			Remaining:        sum.Remaining,
			RemainingDisplay: "$" + itinerary.FormatCost(sum.Remaining),
			OverBudget:       sum.Remaining < 0,
		}
	}
	return resp
}

func totals(cost, time float64) Totals {
	return Totals{
		Cost:        cost,
		Time:        time,
		CostDisplay: "$" + itinerary.FormatCost(cost),
		TimeDisplay: itinerary.FormatTime(time),
	}
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
