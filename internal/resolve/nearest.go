// Package resolve implements jurisdiction resolution: deterministic
// nearest-station ranking, manual text search, and the
// disambiguation-augmented service with its fallback chain.
package resolve

import (
	"sort"

	"github.com/hydsafe/jurisdictiond/internal/domain"
	"github.com/hydsafe/jurisdictiond/internal/geo"
)

// DefaultLimit is the number of results returned when callers pass k <= 0.
const DefaultLimit = 3

// Nearest ranks stations by great-circle distance from (lat, lng),
// ascending, and returns the closest k. The sort is stable so
// equidistant stations keep registry order across runs. An empty
// station list yields an empty result, not an error.
func Nearest(stations []domain.Station, lat, lng float64, k int) []domain.RankedStation {
	if k <= 0 {
		k = DefaultLimit
	}

	ranked := make([]domain.RankedStation, 0, len(stations))
	for _, s := range stations {
		ranked = append(ranked, domain.RankedStation{
			Station:    s,
			DistanceKm: geo.Distance(lat, lng, s.Lat, s.Lng),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].DistanceKm < ranked[j].DistanceKm
	})

	if len(ranked) > k {
		ranked = ranked[:k]
	}
	return ranked
}
