package resolve

import (
	"strings"

	"github.com/hydsafe/jurisdictiond/internal/domain"
)

// Search filters stations whose name or any keyword contains the
// query as a case-insensitive substring. Matches keep registry order
// and are truncated to k. A blank query is the identity filter;
// callers distinguish "no filter" from "no results" by checking
// blankness before interpreting the output.
func Search(stations []domain.Station, query string, k int) []domain.Station {
	if k <= 0 {
		k = DefaultLimit
	}
	q := strings.ToLower(strings.TrimSpace(query))

	matched := make([]domain.Station, 0, k)
	for _, s := range stations {
		if q == "" || matchesQuery(s, q) {
			matched = append(matched, s)
			if len(matched) == k {
				break
			}
		}
	}
	return matched
}

func matchesQuery(s domain.Station, q string) bool {
	if strings.Contains(strings.ToLower(s.Name), q) {
		return true
	}
	for _, kw := range s.Keywords {
		if strings.Contains(strings.ToLower(kw), q) {
			return true
		}
	}
	return false
}
