package resolve

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/hydsafe/jurisdictiond/internal/domain"
	"github.com/hydsafe/jurisdictiond/internal/geo"
	"github.com/hydsafe/jurisdictiond/internal/observability"
)

// DefaultAreaLabel is returned by DescribeArea when the describer is
// unavailable, fails, or replies blank.
const DefaultAreaLabel = "Hyderabad Area"

// ErrInvalidCoordinates reports a precondition violation on a public
// entry point. It is the only error the resolution flow surfaces;
// external-service failures are absorbed by the fallback chain.
var ErrInvalidCoordinates = errors.New("coordinates out of WGS-84 range")

// Service is the jurisdiction resolution core. The suggester and
// describer are optional: with both nil the service is fully
// deterministic and network-free.
type Service struct {
	registry  *domain.Registry
	suggester domain.StationSuggester
	describer domain.AreaDescriber
	logger    *slog.Logger
	metrics   *observability.Metrics
}

// NewService creates a Service. suggester and describer may be nil to
// disable the generative augmentation and the area labels.
func NewService(registry *domain.Registry, suggester domain.StationSuggester, describer domain.AreaDescriber, logger *slog.Logger, metrics *observability.Metrics) *Service {
	return &Service{
		registry:  registry,
		suggester: suggester,
		describer: describer,
		logger:    logger,
		metrics:   metrics,
	}
}

// ResolveByLocation returns up to k stations for a coordinate pair,
// most relevant first, each annotated with its great-circle distance
// from the query point. When a suggester is configured its ranking is
// preferred; any suggester failure falls back silently to the
// deterministic nearest-station ranking. The result is non-empty
// whenever the registry is non-empty.
//
// The only error returned is ErrInvalidCoordinates, a caller
// precondition violation.
func (s *Service) ResolveByLocation(ctx context.Context, lat, lng float64, k int) ([]domain.RankedStation, error) {
	if !geo.ValidCoordinates(lat, lng) {
		return nil, fmt.Errorf("%w: (%f, %f)", ErrInvalidCoordinates, lat, lng)
	}
	if k <= 0 {
		k = DefaultLimit
	}
	stations := s.registry.All()

	if s.suggester != nil {
		suggested, reason := s.suggest(ctx, "", &geo.Point{Lat: lat, Lng: lng}, stations, k)
		if suggested != nil {
			s.metrics.ResolveRequests.WithLabelValues("location", "suggested").Inc()
			return rankAt(suggested, lat, lng), nil
		}
		s.recordFallback("location", reason, "lat", lat, "lng", lng)
	}

	s.metrics.ResolveRequests.WithLabelValues("location", "deterministic").Inc()
	return Nearest(stations, lat, lng, k), nil
}

// ResolveByText returns up to k stations for a typed locality query,
// most relevant first. The suggester's ranking is preferred; failures
// fall back to substring search, then to the head of the registry so
// the caller always gets a non-empty result while the registry has
// records.
func (s *Service) ResolveByText(ctx context.Context, query string, k int) []domain.Station {
	if k <= 0 {
		k = DefaultLimit
	}
	stations := s.registry.All()

	if s.suggester != nil {
		suggested, reason := s.suggest(ctx, query, nil, stations, k)
		if suggested != nil {
			s.metrics.ResolveRequests.WithLabelValues("text", "suggested").Inc()
			return suggested
		}
		s.recordFallback("text", reason, "query", query)
	}

	s.metrics.ResolveRequests.WithLabelValues("text", "deterministic").Inc()
	if matched := Search(stations, query, k); len(matched) > 0 {
		return matched
	}

	// Last resort: head of the registry in natural order. A degraded
	// result beats an empty one for this path.
	if len(stations) > k {
		stations = stations[:k]
	}
	return stations
}

// DescribeArea returns a display-only locality label for a
// coordinate. It never fails from the caller's point of view: any
// describer error or blank reply yields DefaultAreaLabel.
func (s *Service) DescribeArea(ctx context.Context, lat, lng float64) string {
	if s.describer == nil || !geo.ValidCoordinates(lat, lng) {
		s.metrics.AreaRequests.WithLabelValues("placeholder").Inc()
		return DefaultAreaLabel
	}

	label, err := s.describer.DescribeArea(ctx, lat, lng)
	if err != nil || strings.TrimSpace(label) == "" {
		if err != nil {
			s.logger.Warn("area description failed", "lat", lat, "lng", lng, "error", err)
		}
		s.metrics.AreaRequests.WithLabelValues("placeholder").Inc()
		return DefaultAreaLabel
	}

	s.metrics.AreaRequests.WithLabelValues("ok").Inc()
	return strings.TrimSpace(label)
}

// CheckReadiness reports whether the service can resolve: the
// registry must be loaded and non-empty.
func (s *Service) CheckReadiness(_ context.Context) error {
	if s.registry == nil || s.registry.Len() == 0 {
		return errors.New("station registry is empty")
	}
	return nil
}

// suggest performs the single outbound disambiguation attempt and
// maps the reply onto registry records. A nil result means the caller
// should fall back; reason says why. No retries: a second attempt at
// a generative endpoint adds latency, not correctness.
func (s *Service) suggest(ctx context.Context, query string, coords *geo.Point, stations []domain.Station, k int) ([]domain.Station, string) {
	names, err := s.suggester.SuggestStations(ctx, query, coords)
	if err != nil {
		return nil, "suggester_error"
	}

	mapped := MapSuggestions(stations, names, k)
	if len(mapped) == 0 {
		return nil, "no_registry_match"
	}
	return mapped, ""
}

func (s *Service) recordFallback(mode, reason string, args ...any) {
	s.metrics.FallbackTotal.WithLabelValues(mode, reason).Inc()
	s.logger.Warn("disambiguation fallback", append([]any{"mode", mode, "reason", reason}, args...)...)
}

// MapSuggestions maps model-returned names onto registry records
// using bidirectional case-insensitive substring containment, so both
// a bare "Mailardevpally" and a suffixed "Mailardevpally PS" land on
// the same record. Results are deduplicated by station id preserving
// first-seen order, which encodes the model's relevance ranking.
func MapSuggestions(stations []domain.Station, names []string, k int) []domain.Station {
	if k <= 0 {
		k = DefaultLimit
	}

	var mapped []domain.Station
	seen := make(map[string]struct{})
	for _, name := range names {
		n := strings.ToLower(strings.TrimSpace(name))
		if n == "" {
			continue
		}
		for _, st := range stations {
			sn := strings.ToLower(st.Name)
			if !strings.Contains(n, sn) && !strings.Contains(sn, n) {
				continue
			}
			if _, dup := seen[st.ID]; !dup {
				seen[st.ID] = struct{}{}
				mapped = append(mapped, st)
			}
			break
		}
		if len(mapped) == k {
			break
		}
	}
	return mapped
}

// rankAt decorates an already-ordered station list with distances
// from the query point, keeping the given order.
func rankAt(stations []domain.Station, lat, lng float64) []domain.RankedStation {
	ranked := make([]domain.RankedStation, 0, len(stations))
	for _, st := range stations {
		ranked = append(ranked, domain.RankedStation{
			Station:    st,
			DistanceKm: geo.Distance(lat, lng, st.Lat, st.Lng),
		})
	}
	return ranked
}
