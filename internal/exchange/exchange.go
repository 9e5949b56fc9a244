// Package exchange encodes and decodes itinerary documents for export and
// import. JSON carries the whole document; CSV carries destinations only.
package exchange

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/pkordes/trip-planner/internal/domain"
)

// Format selects the export/import encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
)

// ParseFormat returns the format named by s. An empty string means JSON.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "", FormatJSON:
		return FormatJSON, nil
	case FormatCSV:
		return FormatCSV, nil
	default:
		return "", fmt.Errorf("%w: unsupported format %q", domain.ErrValidation, s)
	}
}

// ContentType returns the MIME type for f.
func (f Format) ContentType() string {
	if f == FormatCSV {
		return "text/csv"
	}
	return "application/json"
}

// FileName returns the download name for an export taken on now.
func FileName(f Format, now time.Time) string {
	return fmt.Sprintf("vacation-itinerary-%s.%s", domain.DateOf(now).String(), f)
}

// CSVHeader is the fixed column set of the CSV format.
var CSVHeader = []string{
	"Name", "Arrival Date", "Departure Date", "Category", "Cost", "Activities", "Latitude", "Longitude",
}

// Encode writes s in format f.
func Encode(f Format, s domain.State) ([]byte, error) {
	if f == FormatCSV {
		return EncodeCSV(s.Destinations)
	}
	return EncodeJSON(s)
}

// Decode parses data in format f into a document.
func Decode(f Format, data []byte) (domain.State, error) {
	if f == FormatCSV {
		dests, err := DecodeCSV(bytes.NewReader(data))
		if err != nil {
			return domain.State{}, err
		}
		return domain.State{Destinations: dests, DayLabels: []domain.DayLabel{}}, nil
	}
	return DecodeJSON(data)
}

// EncodeJSON renders the document with two-space indentation.
func EncodeJSON(s domain.State) ([]byte, error) {
	if s.Destinations == nil {
		s.Destinations = []domain.Destination{}
	}
	if s.DayLabels == nil {
		s.DayLabels = []domain.DayLabel{}
	}
	b, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("exchange.EncodeJSON: %w", err)
	}
	return b, nil
}

// DecodeJSON parses an itinerary document. The payload must be a JSON object
// carrying a "destinations" or "dayLabels" array (or both); a missing array
// decodes as empty. Anything else is domain.ErrInvalidImport.
func DecodeJSON(data []byte) (domain.State, error) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil || probe == nil {
		return domain.State{}, fmt.Errorf("%w: expected an itinerary object", domain.ErrInvalidImport)
	}
	if !isArray(probe["destinations"]) && !isArray(probe["dayLabels"]) {
		return domain.State{}, fmt.Errorf("%w: document has neither destinations nor dayLabels", domain.ErrInvalidImport)
	}

	var s domain.State
	if err := json.Unmarshal(data, &s); err != nil {
		return domain.State{}, fmt.Errorf("%w: %v", domain.ErrInvalidImport, err)
	}
	if s.Destinations == nil {
		s.Destinations = []domain.Destination{}
	}
	if s.DayLabels == nil {
		s.DayLabels = []domain.DayLabel{}
	}
	return s, nil
}

func isArray(raw json.RawMessage) bool {
	return len(raw) > 0 && bytes.TrimSpace(raw)[0] == '['
}

// EncodeCSV writes the header row followed by one row per destination.
func EncodeCSV(dests []domain.Destination) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	//nolint:errcheck // bytes.Buffer.Write never returns an error.
	w.Write(CSVHeader)
	for _, d := range dests {
		//nolint:errcheck
		w.Write([]string{
			d.Name,
			d.ArrivalDate.String(),
			d.DepartureDate.String(),
			string(d.Category),
			strconv.FormatFloat(d.Cost, 'f', -1, 64),
			d.Activities,
			strconv.FormatFloat(d.Lat, 'f', -1, 64),
			strconv.FormatFloat(d.Lng, 'f', -1, 64),
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("exchange.EncodeCSV: %w", err)
	}
	return buf.Bytes(), nil
}

// DecodeCSV reads destinations from CSV with the export header. Columns are
// matched by name, case-insensitively; only Name is required, in the header
// and on every row. Destinations come back without ids. A row with a blank
// name or an unparseable date rejects the file.
func DecodeCSV(r io.Reader) ([]domain.Destination, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: missing CSV header", domain.ErrInvalidImport)
	}
	col := make(map[string]int, len(header))
	for i, h := range header {
		col[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}
	if _, ok := col["name"]; !ok {
		return nil, fmt.Errorf("%w: CSV header has no Name column", domain.ErrInvalidImport)
	}
	field := func(rec []string, name string) string {
		i, ok := col[strings.ToLower(name)]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	dests := []domain.Destination{}
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", domain.ErrInvalidImport, line, err)
		}
		name := field(rec, "Name")
		if name == "" {
			return nil, fmt.Errorf("%w: line %d: name is required", domain.ErrInvalidImport, line)
		}
		arrival, err := domain.ParseDate(field(rec, "Arrival Date"))
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", domain.ErrInvalidImport, line, err)
		}
		departure, err := domain.ParseDate(field(rec, "Departure Date"))
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", domain.ErrInvalidImport, line, err)
		}
		lat, lng := domain.ParseCoordinates(field(rec, "Latitude") + "," + field(rec, "Longitude"))
		dests = append(dests, domain.Destination{
			Name:          name,
			ArrivalDate:   arrival,
			DepartureDate: departure,
			Category:      domain.Category(field(rec, "Category")),
			Cost:          domain.ParseAmount(field(rec, "Cost")),
			Activities:    field(rec, "Activities"),
			Lat:           lat,
			Lng:           lng,
		}.Normalize())
	}
	return dests, nil
}
