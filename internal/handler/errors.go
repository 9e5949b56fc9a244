package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/pkordes/trip-planner/internal/domain"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail carries a stable machine-readable code and a human message.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// errorMapping pairs a domain sentinel with its HTTP status and code.
// Order matters only if an error wraps more than one sentinel.
var errorMapping = []struct {
	sentinel error
	status   int
	code     string
}{
	{domain.ErrNotFound, http.StatusNotFound, "not_found"},
	{domain.ErrInvalidImport, http.StatusUnprocessableEntity, "invalid_import"},
	{domain.ErrValidation, http.StatusUnprocessableEntity, "validation_error"},
	{domain.ErrConfirmationRequired, http.StatusConflict, "confirmation_required"},
	{domain.ErrNothingToShift, http.StatusConflict, "nothing_to_shift"},
	{domain.ErrNothingToExport, http.StatusConflict, "nothing_to_export"},
}

// writeError maps err to a status and writes the error envelope. Errors that
// match no domain sentinel are logged and reported as 500 without detail.
// notFound, when non-empty, replaces the message of a not-found error
// because the handler is the layer that knows what was being looked up.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error, notFound string) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		writeJSON(w, http.StatusRequestEntityTooLarge, errorBody("request_too_large", err.Error()))
		return
	}

	for _, m := range errorMapping {
		if !errors.Is(err, m.sentinel) {
			continue
		}
		msg := unwrapMessage(err, m.sentinel)
		if m.sentinel == domain.ErrNotFound && notFound != "" {
			msg = notFound
		}
		writeJSON(w, m.status, errorBody(m.code, msg))
		return
	}

	s.logger.ErrorContext(r.Context(), "request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	writeJSON(w, http.StatusInternalServerError, errorBody("internal_error", "internal server error"))
}

// requestError reports a request rejected before reaching the service layer
// (e.g. missing or malformed body, bad parameter).
func requestError(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusUnprocessableEntity, errorBody("validation_error", message))
}

func errorBody(code, message string) ErrorResponse {
	return ErrorResponse{Error: ErrorDetail{Code: code, Message: message}}
}

// unwrapMessage extracts the human-readable part that follows the sentinel in
// a wrapped error chain.
// e.g. "service.Store.Create: validation error: name is required" → "name is required"
func unwrapMessage(err, sentinel error) string {
	msg := err.Error()
	marker := sentinel.Error() + ": "
	if i := strings.LastIndex(msg, marker); i >= 0 && i+len(marker) < len(msg) {
		return msg[i+len(marker):]
	}
	return sentinel.Error()
}

// writeJSON writes v as a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// decodeJSON reads the request body into v. An empty body is an error.
func decodeJSON(r *http.Request, v any) error {
	if r.Body == nil || r.ContentLength == 0 {
		return errors.New("request body is required")
	}
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return err
		}
		return errors.New("request body is not valid JSON: " + err.Error())
	}
	return nil
}
