package domain

import "encoding/json"

// TripDetail is the structured itinerary decoded from TripRecord.Detail.
// It is derived, never persisted directly. Every field is optional: the blob
// is produced by an external pipeline and may be missing fields, empty, or
// not JSON at all, so a zero value is a first-class outcome here.
type TripDetail struct {
	Name            string    `json:"name,omitempty"`
	Country         string    `json:"country,omitempty"`
	Duration        int       `json:"duration,omitempty"`
	TravelStyle     string    `json:"travelStyle,omitempty"`
	GroupType       string    `json:"groupType,omitempty"`
	Budget          string    `json:"budget,omitempty"`
	Interests       string    `json:"interests,omitempty"`
	EstimatedPrice  string    `json:"estimatedPrice,omitempty"`
	Description     string    `json:"description,omitempty"`
	BestTimeToVisit []string  `json:"bestTimeToVisit,omitempty"`
	WeatherInfo     []string  `json:"weatherInfo,omitempty"`
	Itinerary       []DayPlan `json:"itinerary,omitempty"`
}

// DayPlan is one day of an itinerary.
type DayPlan struct {
	Day        int        `json:"day,omitempty"`
	Location   string     `json:"location,omitempty"`
	Activities []Activity `json:"activities,omitempty"`
}

// Activity is a single timed entry within a DayPlan.
type Activity struct {
	Time        string `json:"time,omitempty"`
	Description string `json:"description,omitempty"`
}

// ParseTripDetail decodes the serialized detail blob of a TripRecord.
//
// This is the single seam between the opaque stored text and every caller
// that displays or aggregates trips. Malformed input is expected, not
// exceptional: any decode failure (empty string, "null", truncated JSON, a
// non-object value) yields the zero TripDetail. No error is ever returned.
func ParseTripDetail(raw string) TripDetail {
	var detail TripDetail
	if raw == "" {
		return TripDetail{}
	}
	if err := json.Unmarshal([]byte(raw), &detail); err != nil {
		return TripDetail{}
	}
	return detail
}
