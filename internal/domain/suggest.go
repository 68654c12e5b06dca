package domain

import (
	"context"

	"github.com/hydsafe/jurisdictiond/internal/geo"
)

// StationSuggester proposes station names for a location or a typed
// query by consulting an external generative inference endpoint. The
// returned names are model output: they are not guaranteed to match
// the registry and must be mapped back to known records before use.
type StationSuggester interface {
	// SuggestStations returns candidate station names in relevance
	// order. Exactly one of query / coords carries the request: coords
	// when non-nil, the query string otherwise.
	SuggestStations(ctx context.Context, query string, coords *geo.Point) ([]string, error)
}

// AreaDescriber produces a human-readable locality label for a
// coordinate. The label is display-only decoration and never drives
// jurisdiction decisions.
type AreaDescriber interface {
	DescribeArea(ctx context.Context, lat, lng float64) (string, error)
}
