package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/trip-planner/internal/domain"
)

// DestinationRequest is the body of POST /destinations, PUT /destinations/{id}
// and PUT /drafts/{token}. Omitted fields take their defaults. Coordinates
// may be sent either as lat/lng or as the "lat, lng" text a user types.
type DestinationRequest struct {
	Name            string              `json:"name"`
	ArrivalDate     *openapi_types.Date `json:"arrivalDate,omitempty"`
	DepartureDate   *openapi_types.Date `json:"departureDate,omitempty"`
	Category        string              `json:"category,omitempty"`
	Priority        string              `json:"priority,omitempty"`
	Cost            float64             `json:"cost,omitempty"`
	Time            float64             `json:"time,omitempty"`
	Activities      string              `json:"activities,omitempty"`
	Address         string              `json:"address,omitempty"`
	WebsiteLink     string              `json:"websiteLink,omitempty"`
	GoogleMapsLink  string              `json:"googleMapsLink,omitempty"`
	AdvisorSiteLink string              `json:"advisorSiteLink,omitempty"`
	Lat             float64             `json:"lat,omitempty"`
	Lng             float64             `json:"lng,omitempty"`
	Coordinates     string              `json:"coordinates,omitempty"`
}

// DestinationList is the body of GET /destinations.
type DestinationList struct {
	Data []domain.Destination `json:"data"`
}

// DraftResponse is the body of POST /destinations/{id}/duplicate.
type DraftResponse struct {
	Token       string             `json:"token"`
	Destination domain.Destination `json:"destination"`
}

// ListDestinations handles GET /destinations.
func (s *Server) ListDestinations(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, DestinationList{Data: s.dests.List()})
}

// CreateDestination handles POST /destinations.
func (s *Server) CreateDestination(w http.ResponseWriter, r *http.Request) {
	d, err := readDestination(r)
	if err != nil {
		s.rejectBody(w, r, err)
		return
	}

	created, err := s.dests.Create(r.Context(), d)
	if err != nil {
		s.writeError(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// GetDestination handles GET /destinations/{id}.
func (s *Server) GetDestination(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	d, err := s.dests.Get(id)
	if err != nil {
		s.writeError(w, r, err, "destination not found")
		return
	}
	writeJSON(w, http.StatusOK, d)
}

// UpdateDestination handles PUT /destinations/{id}.
func (s *Server) UpdateDestination(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	d, err := readDestination(r)
	if err != nil {
		s.rejectBody(w, r, err)
		return
	}
	d.ID = id

	updated, err := s.dests.Update(r.Context(), d)
	if err != nil {
		s.writeError(w, r, err, "destination not found")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// DeleteDestination handles DELETE /destinations/{id}.
func (s *Server) DeleteDestination(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := s.dests.Delete(r.Context(), id); err != nil {
		s.writeError(w, r, err, "destination not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DuplicateDestination handles POST /destinations/{id}/duplicate.
// The copy is staged, not saved; the client edits it and then commits it
// with PUT /drafts/{token} or drops it with DELETE /drafts/{token}.
func (s *Server) DuplicateDestination(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	draft, err := s.dests.Duplicate(id)
	if err != nil {
		s.writeError(w, r, err, "destination not found")
		return
	}
	writeJSON(w, http.StatusCreated, DraftResponse{Token: draft.Token, Destination: draft.Destination})
}

// CommitDraft handles PUT /drafts/{token}.
func (s *Server) CommitDraft(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")
	d, err := readDestination(r)
	if err != nil {
		s.rejectBody(w, r, err)
		return
	}

	created, err := s.dests.CommitDraft(r.Context(), token, d)
	if err != nil {
		s.writeError(w, r, err, "draft not found")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// DiscardDraft handles DELETE /drafts/{token}.
func (s *Server) DiscardDraft(w http.ResponseWriter, r *http.Request) {
	if err := s.dests.DiscardDraft(chi.URLParam(r, "token")); err != nil {
		s.writeError(w, r, err, "draft not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- mapping helpers --------------------------------------------------------

// readDestination decodes a DestinationRequest body into a domain.Destination.
func readDestination(r *http.Request) (domain.Destination, error) {
	var body DestinationRequest
	if err := decodeJSON(r, &body); err != nil {
		return domain.Destination{}, err
	}
	return requestToDestination(body), nil
}

// requestToDestination converts the wire shape into a domain.Destination.
// Typed coordinates win over lat/lng when both are present.
func requestToDestination(body DestinationRequest) domain.Destination {
	d := domain.Destination{
		Name:            body.Name,
		Category:        domain.Category(body.Category),
		Priority:        domain.Priority(body.Priority),
		Cost:            body.Cost,
		Time:            body.Time,
		Activities:      body.Activities,
		Address:         body.Address,
		WebsiteLink:     body.WebsiteLink,
		GoogleMapsLink:  body.GoogleMapsLink,
		AdvisorSiteLink: body.AdvisorSiteLink,
		Lat:             body.Lat,
		Lng:             body.Lng,
	}
	if body.ArrivalDate != nil {
		d.ArrivalDate = domain.DateOf(body.ArrivalDate.Time)
	}
	if body.DepartureDate != nil {
		d.DepartureDate = domain.DateOf(body.DepartureDate.Time)
	}
	if body.Coordinates != "" {
		d.Lat, d.Lng = domain.ParseCoordinates(body.Coordinates)
	}
	return d
}

// pathID binds the {id} path parameter. On failure it writes the error
// response and returns false.
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	var id int64
	err := runtime.BindStyledParameterWithOptions("simple", "id", chi.URLParam(r, "id"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		requestError(w, "invalid destination id")
		return 0, false
	}
	return id, true
}

// rejectBody reports a body that could not be decoded.
func (s *Server) rejectBody(w http.ResponseWriter, r *http.Request, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		s.writeError(w, r, err, "")
		return
	}
	requestError(w, err.Error())
}
