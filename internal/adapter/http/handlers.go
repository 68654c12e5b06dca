package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/hydsafe/jurisdictiond/internal/domain"
	"github.com/hydsafe/jurisdictiond/internal/resolve"
)

const maxLimit = 10

// handleResolve serves both query modes: ?lat=&lng= for coordinates,
// ?q= for typed locality text. The two are mutually exclusive.
func (s *Server) handleResolve(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	hasCoords := params.Has("lat") || params.Has("lng")
	hasQuery := params.Has("q")

	if hasCoords == hasQuery {
		writeError(w, http.StatusBadRequest, "provide either lat and lng, or q")
		return
	}

	k := s.parseLimit(params.Get("k"))

	if hasQuery {
		stations := s.resolver.ResolveByText(r.Context(), params.Get("q"), k)
		writeJSON(w, http.StatusOK, map[string]any{
			"query":    map[string]string{"q": params.Get("q")},
			"stations": stations,
		})
		return
	}

	lat, lng, ok := parseCoords(params.Get("lat"), params.Get("lng"))
	if !ok {
		writeError(w, http.StatusBadRequest, "lat and lng must be decimal degrees")
		return
	}

	ranked, err := s.resolver.ResolveByLocation(r.Context(), lat, lng, k)
	if err != nil {
		if errors.Is(err, resolve.ErrInvalidCoordinates) {
			writeError(w, http.StatusBadRequest, "coordinates out of range; try searching by area name instead")
			return
		}
		writeError(w, http.StatusInternalServerError, "resolution failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"query":    map[string]float64{"lat": lat, "lng": lng},
		"stations": ranked,
	})
}

func (s *Server) handleArea(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	lat, lng, ok := parseCoords(params.Get("lat"), params.Get("lng"))
	if !ok {
		writeError(w, http.StatusBadRequest, "lat and lng must be decimal degrees")
		return
	}

	// DescribeArea never fails; degraded lookups return a placeholder.
	area := s.resolver.DescribeArea(r.Context(), lat, lng)
	writeJSON(w, http.StatusOK, map[string]any{
		"lat":  lat,
		"lng":  lng,
		"area": area,
	})
}

// handleStations serves the directory listing the UI renders as cards
// and tabs: optional commissionerate filter plus substring search.
func (s *Server) handleStations(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	stations := s.registry.All()

	if c := strings.TrimSpace(params.Get("commissionerate")); c != "" {
		filtered := stations[:0]
		for _, st := range stations {
			if strings.EqualFold(string(st.Commissionerate), c) {
				filtered = append(filtered, st)
			}
		}
		stations = filtered
	}

	if q := params.Get("q"); strings.TrimSpace(q) != "" {
		stations = resolve.Search(stations, q, len(stations))
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"count":            len(stations),
		"stations":         stations,
		"commissionerates": domain.Commissionerates,
	})
}

func (s *Server) handleMemo(w http.ResponseWriter, r *http.Request) {
	var draft domain.MemoDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		writeError(w, http.StatusBadRequest, "invalid memo draft")
		return
	}

	// Bind the memo to the nearest station when the draft carries
	// coordinates. Resolution failure (bad coordinates) rejects the
	// draft; memo generation itself has no network dependency.
	var station *domain.Station
	if draft.Lat != nil && draft.Lng != nil {
		ranked, err := s.resolver.ResolveByLocation(r.Context(), *draft.Lat, *draft.Lng, 1)
		if err != nil {
			writeError(w, http.StatusBadRequest, "coordinates out of range")
			return
		}
		if len(ranked) > 0 {
			station = &ranked[0].Station
		}
	}

	memo, err := domain.DraftMemo(draft, station)
	if err != nil {
		if errors.Is(err, domain.ErrIncompleteDraft) {
			writeError(w, http.StatusBadRequest, "complainant name, issue type, and description are required")
			return
		}
		writeError(w, http.StatusInternalServerError, "memo generation failed")
		return
	}

	writeJSON(w, http.StatusCreated, memo)
}

func (s *Server) parseLimit(raw string) int {
	if raw == "" {
		return s.limit
	}
	k, err := strconv.Atoi(raw)
	if err != nil || k <= 0 {
		return s.limit
	}
	if k > maxLimit {
		return maxLimit
	}
	return k
}

func parseCoords(latRaw, lngRaw string) (lat, lng float64, ok bool) {
	lat, errLat := strconv.ParseFloat(latRaw, 64)
	lng, errLng := strconv.ParseFloat(lngRaw, 64)
	if errLat != nil || errLng != nil {
		return 0, 0, false
	}
	return lat, lng, true
}
