// Package handler implements the HTTP handlers for the itinerary API.
// All handlers are methods on Server. Methods are split into resource files
// (destinations.go; itinerary.go for grouping, ordering and day labels;
// mapview.go for settings and the map; transfer.go; health.go) but share
// the same Server struct so they can access its dependencies.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/exchange"
	"github.com/pkordes/trip-planner/internal/itinerary"
	"github.com/pkordes/trip-planner/internal/middleware"
	"github.com/pkordes/trip-planner/internal/service"
	"github.com/pkordes/trip-planner/openapi"
)

// DestinationServicer defines the destination operations the handlers depend on.
// Defining the interface here, in the consumer package, lets handler tests
// inject a mock without touching storage.
type DestinationServicer interface {
	List() []domain.Destination
	Get(id int64) (domain.Destination, error)
	Create(ctx context.Context, d domain.Destination) (domain.Destination, error)
	Update(ctx context.Context, d domain.Destination) (domain.Destination, error)
	Delete(ctx context.Context, id int64) error
	Duplicate(id int64) (service.Draft, error)
	CommitDraft(ctx context.Context, token string, d domain.Destination) (domain.Destination, error)
	DiscardDraft(token string) error
}

// ScheduleServicer covers the day-level operations: grouping, ordering,
// shifting, labels and clearing.
type ScheduleServicer interface {
	Itinerary() service.Summary
	SuggestedArrival() (domain.Date, bool)
	ReconcileOrder(ctx context.Context, orderedIDs []int64, move *itinerary.Move) error
	ShiftDates(ctx context.Context, newStart domain.Date) (int, error)
	DayLabels() []domain.DayLabel
	SetDayLabel(ctx context.Context, l domain.DayLabel) (domain.DayLabel, error)
	Clear(ctx context.Context, confirmed bool) error
}

// ViewServicer covers trip settings and the map view state.
type ViewServicer interface {
	Settings() *domain.TripSettings
	SaveSettings(ctx context.Context, ts domain.TripSettings) (domain.TripSettings, error)
	Map() itinerary.MapView
	SelectDay(date domain.Date) (itinerary.MapView, error)
	ShowAllDays() itinerary.MapView
	SetAutoZoom(ctx context.Context, enabled bool) error
}

// TransferServicer covers export and import.
type TransferServicer interface {
	Export(f exchange.Format) ([]byte, error)
	Import(ctx context.Context, f exchange.Format, data []byte, overwrite bool) (domain.State, error)
}

// Planner is everything the API serves. *service.Store satisfies it.
type Planner interface {
	DestinationServicer
	ScheduleServicer
	ViewServicer
	TransferServicer
}

// Server serves every API endpoint. Build one with NewServer and mount
// Routes in main.go.
type Server struct {
	dests    DestinationServicer
	schedule ScheduleServicer
	view     ViewServicer
	transfer TransferServicer

	maxImportBytes int64
	now            func() time.Time
	logger         *slog.Logger
}

// NewServer constructs the Server around the itinerary store.
// maxImportBytes caps the body of POST /import.
func NewServer(p Planner, maxImportBytes int64, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		dests:          p,
		schedule:       p,
		view:           p,
		transfer:       p,
		maxImportBytes: maxImportBytes,
		now:            time.Now,
		logger:         logger,
	}
}

// Routes returns the API router. Cross-cutting middleware (request ids,
// logging, CORS, recovery) is applied by the caller.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", serveOpenAPI)

	r.Route("/destinations", func(r chi.Router) {
		r.Get("/", s.ListDestinations)
		r.Post("/", s.CreateDestination)
		r.Get("/{id}", s.GetDestination)
		r.Put("/{id}", s.UpdateDestination)
		r.Delete("/{id}", s.DeleteDestination)
		r.Post("/{id}/duplicate", s.DuplicateDestination)
	})
	r.Put("/drafts/{token}", s.CommitDraft)
	r.Delete("/drafts/{token}", s.DiscardDraft)

	r.Get("/itinerary", s.GetItinerary)
	r.Delete("/itinerary", s.ClearItinerary)
	r.Post("/itinerary/reorder", s.ReorderItinerary)
	r.Post("/itinerary/shift", s.ShiftItinerary)

	r.Get("/days", s.ListDayLabels)
	r.Put("/days/{date}", s.PutDayLabel)

	r.Get("/settings", s.GetSettings)
	r.Put("/settings", s.PutSettings)

	r.Get("/map", s.GetMap)
	r.Post("/map/select", s.SelectDay)
	r.Delete("/map/filter", s.ShowAllDays)
	r.Put("/map/auto-zoom", s.PutAutoZoom)

	r.Get("/export", s.GetExport)
	r.With(middleware.NewMaxBodySizeHandler(s.maxImportBytes)).Post("/import", s.PostImport)

	return r
}

// serveOpenAPI handles GET /openapi.yaml.
func serveOpenAPI(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	_, _ = w.Write(openapi.Document)
}
