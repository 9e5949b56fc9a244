package handler

import (
	"net/http"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/itinerary"
)

// SettingsRequest is the body of PUT /settings. Saving replaces every field.
type SettingsRequest struct {
	Destination string              `json:"destination"`
	StartDate   *openapi_types.Date `json:"startDate"`
	EndDate     *openapi_types.Date `json:"endDate"`
	Budget      float64             `json:"budget"`
}

// MapResponse is the body of every /map endpoint.
type MapResponse struct {
	FilterDate *openapi_types.Date `json:"filterDate"`
	AutoZoom   bool                `json:"autoZoom"`
	Pins       []PinResponse       `json:"pins"`
	Fit        *BoundsResponse     `json:"fit"`
}

// PinResponse is one map marker.
type PinResponse struct {
	DestinationID int64               `json:"destinationId"`
	Name          string              `json:"name"`
	Lat           float64             `json:"lat"`
	Lng           float64             `json:"lng"`
	Date          *openapi_types.Date `json:"date"`
	Color         string              `json:"color"`
	Icon          string              `json:"icon"`
	Visible       bool                `json:"visible"`
	Popup         PopupResponse       `json:"popup"`
}

// PopupResponse is the text shown when a pin is clicked.
type PopupResponse struct {
	Priority        string `json:"priority"`
	DateRange       string `json:"dateRange"`
	Cost            string `json:"cost"`
	Time            string `json:"time"`
	Notes           string `json:"notes"`
	WebsiteLink     string `json:"websiteLink,omitempty"`
	GoogleMapsLink  string `json:"googleMapsLink,omitempty"`
	AdvisorSiteLink string `json:"advisorSiteLink,omitempty"`
}

// BoundsResponse is the padded viewport the map should fit.
type BoundsResponse struct {
	South float64 `json:"south"`
	West  float64 `json:"west"`
	North float64 `json:"north"`
	East  float64 `json:"east"`
}

// SelectDayRequest is the body of POST /map/select.
type SelectDayRequest struct {
	Date openapi_types.Date `json:"date"`
}

// AutoZoomRequest is the body of PUT /map/auto-zoom.
type AutoZoomRequest struct {
	Enabled bool `json:"enabled"`
}

// GetSettings handles GET /settings. Settings that were never saved come
// back as 404 so the client can show an empty form.
func (s *Server) GetSettings(w http.ResponseWriter, _ *http.Request) {
	ts := s.view.Settings()
	if ts == nil {
		writeJSON(w, http.StatusNotFound, errorBody("not_found", "trip settings have not been saved"))
		return
	}
	writeJSON(w, http.StatusOK, ts)
}

// PutSettings handles PUT /settings.
func (s *Server) PutSettings(w http.ResponseWriter, r *http.Request) {
	var body SettingsRequest
	if err := decodeJSON(r, &body); err != nil {
		s.rejectBody(w, r, err)
		return
	}

	ts := domain.TripSettings{Destination: body.Destination, Budget: body.Budget}
	if body.StartDate != nil {
		ts.StartDate = domain.DateOf(body.StartDate.Time)
	}
	if body.EndDate != nil {
		ts.EndDate = domain.DateOf(body.EndDate.Time)
	}

	saved, err := s.view.SaveSettings(r.Context(), ts)
	if err != nil {
		s.writeError(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

// GetMap handles GET /map.
func (s *Server) GetMap(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, mapToResponse(s.view.Map()))
}

// SelectDay handles POST /map/select. Selecting the day that is already
// filtered shows every day again.
func (s *Server) SelectDay(w http.ResponseWriter, r *http.Request) {
	var body SelectDayRequest
	if err := decodeJSON(r, &body); err != nil {
		s.rejectBody(w, r, err)
		return
	}

	view, err := s.view.SelectDay(domain.DateOf(body.Date.Time))
	if err != nil {
		s.writeError(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, mapToResponse(view))
}

// ShowAllDays handles DELETE /map/filter.
func (s *Server) ShowAllDays(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, mapToResponse(s.view.ShowAllDays()))
}

// PutAutoZoom handles PUT /map/auto-zoom.
func (s *Server) PutAutoZoom(w http.ResponseWriter, r *http.Request) {
	var body AutoZoomRequest
	if err := decodeJSON(r, &body); err != nil {
		s.rejectBody(w, r, err)
		return
	}

	if err := s.view.SetAutoZoom(r.Context(), body.Enabled); err != nil {
		s.writeError(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, mapToResponse(s.view.Map()))
}

// --- mapping helpers --------------------------------------------------------

func mapToResponse(v itinerary.MapView) MapResponse {
	resp := MapResponse{
		FilterDate: optionalDate(v.Filter.Date),
		AutoZoom:   v.AutoZoom,
		Pins:       make([]PinResponse, 0, len(v.Pins)),
	}
	for _, p := range v.Pins {
		resp.Pins = append(resp.Pins, PinResponse{
			DestinationID: p.DestinationID,
			Name:          p.Name,
			Lat:           p.Lat,
			Lng:           p.Lng,
			Date:          optionalDate(p.Date),
			Color:         p.Color,
			Icon:          p.Icon,
			Visible:       p.Visible,
			Popup:         PopupResponse(p.Popup),
		})
	}
	if v.Fit != nil {
		resp.Fit = &BoundsResponse{South: v.Fit.South, West: v.Fit.West, North: v.Fit.North, East: v.Fit.East}
	}
	return resp
}

// optionalDate converts a domain date to its wire form; absent becomes null.
func optionalDate(d domain.Date) *openapi_types.Date {
	if d.IsZero() {
		return nil
	}
	return &openapi_types.Date{Time: d.Time()}
}
