package domain

import "fmt"

// Commissionerate is the administrative policing authority a station
// belongs to. A station belongs to exactly one.
type Commissionerate string

const (
	HyderabadCity Commissionerate = "Hyderabad City"
	Cyberabad     Commissionerate = "Cyberabad"
	Rachakonda    Commissionerate = "Rachakonda"
	WomenPS       Commissionerate = "Women PS"
	Bharosa       Commissionerate = "Bharosa Centres"
)

// Commissionerates lists the known authorities in display order.
var Commissionerates = []Commissionerate{
	HyderabadCity, Cyberabad, Rachakonda, WomenPS, Bharosa,
}

// Station is one jurisdiction record. Records are owned by the
// registry and treated as immutable after load.
type Station struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Commissionerate Commissionerate `json:"commissionerate"`
	Phone           string          `json:"phone"`
	Mobile          string          `json:"mobile,omitempty"`
	Keywords        []string        `json:"keywords"`
	Lat             float64         `json:"lat"`
	Lng             float64         `json:"lng"`
}

// RankedStation pairs a station with its computed distance from a
// query point. Produced per request, never persisted.
type RankedStation struct {
	Station
	DistanceKm float64 `json:"distance_km"`
}

// Validate checks the per-record invariants: non-empty identity,
// valid WGS-84 coordinates, and at least one contact number.
func (s Station) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("station %q: missing id", s.Name)
	}
	if s.Name == "" {
		return fmt.Errorf("station %s: missing name", s.ID)
	}
	if s.Lat < -90 || s.Lat > 90 || s.Lng < -180 || s.Lng > 180 {
		return fmt.Errorf("station %s: coordinates out of range (%f, %f)", s.ID, s.Lat, s.Lng)
	}
	if s.Phone == "" && s.Mobile == "" {
		return fmt.Errorf("station %s: no contact number", s.ID)
	}
	return nil
}
