package handler

import (
	"io"
	"mime"
	"net/http"

	"github.com/oapi-codegen/runtime"

	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/exchange"
)

// ImportResponse summarises what an import loaded.
type ImportResponse struct {
	Destinations int                  `json:"destinations"`
	DayLabels    int                  `json:"dayLabels"`
	Settings     *domain.TripSettings `json:"settings"`
}

// GetExport handles GET /export?format=json|csv.
// The response is a file download named after today's date.
func (s *Server) GetExport(w http.ResponseWriter, r *http.Request) {
	f, ok := s.formatParam(w, r, "")
	if !ok {
		return
	}

	data, err := s.transfer.Export(f)
	if err != nil {
		s.writeError(w, r, err, "")
		return
	}

	w.Header().Set("Content-Type", f.ContentType())
	w.Header().Set("Content-Disposition",
		mime.FormatMediaType("attachment", map[string]string{"filename": exchange.FileName(f, s.now())}))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// PostImport handles POST /import?format=json|csv&overwrite=true.
// The raw file is the request body. Without format, a text/csv body is read
// as CSV and anything else as JSON.
func (s *Server) PostImport(w http.ResponseWriter, r *http.Request) {
	fallback := exchange.FormatJSON
	if mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type")); err == nil && mt == "text/csv" {
		fallback = exchange.FormatCSV
	}
	f, ok := s.formatParam(w, r, fallback)
	if !ok {
		return
	}

	var overwrite *bool
	if err := runtime.BindQueryParameter("form", true, false, "overwrite", r.URL.Query(), &overwrite); err != nil {
		requestError(w, "invalid overwrite parameter")
		return
	}

	data, err := io.ReadAll(r.Body)
	if err != nil {
		s.writeError(w, r, err, "")
		return
	}
	if len(data) == 0 {
		requestError(w, "request body is required")
		return
	}

	st, err := s.transfer.Import(r.Context(), f, data, overwrite != nil && *overwrite)
	if err != nil {
		s.writeError(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, ImportResponse{
		Destinations: len(st.Destinations),
		DayLabels:    len(st.DayLabels),
		Settings:     st.TripSettings,
	})
}

// formatParam binds the optional format query parameter, using fallback when
// it is absent. On failure it writes the error response and returns false.
func (s *Server) formatParam(w http.ResponseWriter, r *http.Request, fallback exchange.Format) (exchange.Format, bool) {
	var raw *string
	if err := runtime.BindQueryParameter("form", true, false, "format", r.URL.Query(), &raw); err != nil {
		requestError(w, "invalid format parameter")
		return "", false
	}
	if raw == nil {
		raw = new(string)
		*raw = string(fallback)
	}
	f, err := exchange.ParseFormat(*raw)
	if err != nil {
		s.writeError(w, r, err, "")
		return "", false
	}
	return f, true
}
