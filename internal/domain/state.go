package domain

// TripSettings is the singleton trip header. Saving replaces every field.
type TripSettings struct {
	Destination string  `json:"destination"`
	StartDate   Date    `json:"startDate"`
	EndDate     Date    `json:"endDate"`
	Budget      float64 `json:"budget"`
}

// State is the whole persisted itinerary document.
// Its JSON form is the storage format and the export/import format.
type State struct {
	Destinations    []Destination `json:"destinations"`
	DayLabels       []DayLabel    `json:"dayLabels"`
	TripSettings    *TripSettings `json:"tripSettings,omitempty"`
	AutoZoomEnabled *bool         `json:"autoZoomEnabled,omitempty"`
}

// IsEmpty reports whether the document holds no destinations and no day labels.
func (s State) IsEmpty() bool {
	return len(s.Destinations) == 0 && len(s.DayLabels) == 0
}

// AutoZoom returns the auto-zoom flag. It defaults to enabled.
func (s State) AutoZoom() bool {
	return s.AutoZoomEnabled == nil || *s.AutoZoomEnabled
}

// Clone returns a deep copy of s so a mutation can be prepared without
// touching the committed state.
func (s State) Clone() State {
	out := State{
		Destinations: append([]Destination{}, s.Destinations...),
		DayLabels:    append([]DayLabel{}, s.DayLabels...),
	}
	if s.TripSettings != nil {
		ts := *s.TripSettings
		out.TripSettings = &ts
	}
	if s.AutoZoomEnabled != nil {
		az := *s.AutoZoomEnabled
		out.AutoZoomEnabled = &az
	}
	return out
}

// IndexOf returns the position of the destination with the given id, or -1.
func (s State) IndexOf(id int64) int {
	for i, d := range s.Destinations {
		if d.ID == id {
			return i
		}
	}
	return -1
}
