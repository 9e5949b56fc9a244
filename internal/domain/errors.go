package domain

import "errors"

// ErrNotFound is returned when the requested destination, day label or draft
// does not exist. Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned when input fails a presence check
// (e.g. missing destination name). Handlers should map this to HTTP 422.
var ErrValidation = errors.New("validation error")

// ErrNothingToShift is returned by a bulk date shift when no destination has
// an arrival date to anchor on.
var ErrNothingToShift = errors.New("nothing to shift")

// ErrNothingToExport is returned when both collections are empty.
var ErrNothingToExport = errors.New("nothing to export")

// ErrInvalidImport is returned when an import payload does not have the shape
// of an itinerary document. The current state is left untouched.
var ErrInvalidImport = errors.New("invalid import")

// ErrConfirmationRequired is returned when an operation would overwrite a
// non-empty itinerary and the caller has not confirmed it.
var ErrConfirmationRequired = errors.New("confirmation required")
