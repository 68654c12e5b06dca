package resolve

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hydsafe/jurisdictiond/internal/domain"
	"github.com/hydsafe/jurisdictiond/internal/geo"
	"github.com/hydsafe/jurisdictiond/internal/observability"
)

// --- mocks ---

type mockSuggester struct {
	names []string
	err   error
	calls int
}

func (m *mockSuggester) SuggestStations(_ context.Context, _ string, _ *geo.Point) ([]string, error) {
	m.calls++
	return m.names, m.err
}

type mockDescriber struct {
	label string
	err   error
}

func (m *mockDescriber) DescribeArea(_ context.Context, _, _ float64) (string, error) {
	return m.label, m.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestService(t *testing.T, suggester domain.StationSuggester, describer domain.AreaDescriber) *Service {
	t.Helper()
	reg, err := domain.NewRegistry(testStations())
	require.NoError(t, err)
	return NewService(reg, suggester, describer, discardLogger(), observability.NewMetricsForTesting())
}

// --- ResolveByLocation ---

func TestResolveByLocation_DeterministicWithoutSuggester(t *testing.T) {
	svc := newTestService(t, nil, nil)

	got, err := svc.ResolveByLocation(context.Background(), 17.4401, 78.3489, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "Gachibowli", got[0].Name)
	assert.Zero(t, got[0].DistanceKm)
	assert.Equal(t, "Raidurgam", got[1].Name)
}

func TestResolveByLocation_UsesSuggestedOrder(t *testing.T) {
	sg := &mockSuggester{names: []string{"Uppal PS", "Gachibowli"}}
	svc := newTestService(t, sg, nil)

	got, err := svc.ResolveByLocation(context.Background(), 17.4401, 78.3489, 3)
	require.NoError(t, err)
	require.Len(t, got, 2)

	// Model order wins even though Uppal is farther.
	assert.Equal(t, "rk-3", got[0].ID)
	assert.Equal(t, "cb-12", got[1].ID)
	assert.Greater(t, got[0].DistanceKm, got[1].DistanceKm)
	assert.Equal(t, 1, sg.calls)
}

func TestResolveByLocation_FallbackMatchesDeterministic(t *testing.T) {
	// Transport errors, garbage replies, and zero registry matches must
	// all yield exactly the deterministic nearest ranking.
	cases := []struct {
		name      string
		suggester *mockSuggester
	}{
		{"suggester error", &mockSuggester{err: errors.New("boom")}},
		{"zero known stations", &mockSuggester{names: []string{"Charminar PS", "Golconda PS"}}},
		{"empty reply", &mockSuggester{names: nil}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := newTestService(t, tc.suggester, nil)

			got, err := svc.ResolveByLocation(context.Background(), 17.4401, 78.3489, 3)
			require.NoError(t, err)

			want := Nearest(testStations(), 17.4401, 78.3489, 3)
			assert.Equal(t, want, got)
			assert.Equal(t, 1, tc.suggester.calls, "exactly one outbound attempt, no retries")
		})
	}
}

func TestResolveByLocation_InvalidCoordinates(t *testing.T) {
	svc := newTestService(t, nil, nil)

	_, err := svc.ResolveByLocation(context.Background(), 91, 78.4, 3)
	assert.ErrorIs(t, err, ErrInvalidCoordinates)

	_, err = svc.ResolveByLocation(context.Background(), 17.4, -200, 3)
	assert.ErrorIs(t, err, ErrInvalidCoordinates)
}

func TestResolveByLocation_NeverEmptyOnNonEmptyRegistry(t *testing.T) {
	svc := newTestService(t, &mockSuggester{err: errors.New("down")}, nil)

	got, err := svc.ResolveByLocation(context.Background(), 17.0, 78.0, 3)
	require.NoError(t, err)
	assert.NotEmpty(t, got)
	assert.LessOrEqual(t, len(got), 3)
}

func TestResolveByLocation_Idempotent(t *testing.T) {
	svc := newTestService(t, nil, nil)

	first, err := svc.ResolveByLocation(context.Background(), 17.3850, 78.4867, 3)
	require.NoError(t, err)
	second, err := svc.ResolveByLocation(context.Background(), 17.3850, 78.4867, 3)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

// --- ResolveByText ---

func TestResolveByText_SuggestedFirst(t *testing.T) {
	sg := &mockSuggester{names: []string{"Madhapur PS"}}
	svc := newTestService(t, sg, nil)

	got := svc.ResolveByText(context.Background(), "hitech city", 3)
	require.Len(t, got, 1)
	assert.Equal(t, "cb-10", got[0].ID)
}

func TestResolveByText_FallsBackToSearch(t *testing.T) {
	sg := &mockSuggester{err: errors.New("timeout")}
	svc := newTestService(t, sg, nil)

	got := svc.ResolveByText(context.Background(), "katedan", 3)
	require.Len(t, got, 1)
	assert.Equal(t, "Mailardevpally", got[0].Name)
}

func TestResolveByText_LastResortRegistryHead(t *testing.T) {
	sg := &mockSuggester{err: errors.New("timeout")}
	svc := newTestService(t, sg, nil)

	got := svc.ResolveByText(context.Background(), "no such locality", 3)
	require.Len(t, got, 3)

	// Head of the registry in natural order.
	assert.Equal(t, "cb-12", got[0].ID)
	assert.Equal(t, "cb-10", got[1].ID)
	assert.Equal(t, "cb-11", got[2].ID)
}

func TestResolveByText_NeverEmptyOnNonEmptyRegistry(t *testing.T) {
	for _, svc := range []*Service{
		newTestService(t, nil, nil),
		newTestService(t, &mockSuggester{err: errors.New("boom")}, nil),
		newTestService(t, &mockSuggester{names: []string{"unknown"}}, nil),
	} {
		got := svc.ResolveByText(context.Background(), "zzz-nowhere", 3)
		assert.NotEmpty(t, got)
		assert.LessOrEqual(t, len(got), 3)
	}
}

// --- DescribeArea ---

func TestDescribeArea_ReturnsLabel(t *testing.T) {
	svc := newTestService(t, nil, &mockDescriber{label: " Shastripuram "})
	assert.Equal(t, "Shastripuram", svc.DescribeArea(context.Background(), 17.32, 78.43))
}

func TestDescribeArea_PlaceholderOnFailure(t *testing.T) {
	cases := []struct {
		name      string
		describer domain.AreaDescriber
	}{
		{"nil describer", nil},
		{"error", &mockDescriber{err: errors.New("unreachable")}},
		{"blank reply", &mockDescriber{label: "  "}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := newTestService(t, nil, tc.describer)
			assert.Equal(t, DefaultAreaLabel, svc.DescribeArea(context.Background(), 17.32, 78.43))
		})
	}
}

// --- MapSuggestions ---

func TestMapSuggestions_BidirectionalContainment(t *testing.T) {
	stations := testStations()

	// Model returns name with a suffixed descriptor.
	got := MapSuggestions(stations, []string{"Mailardevpally PS"}, 3)
	require.Len(t, got, 1)
	assert.Equal(t, "cb-41", got[0].ID)

	// Model returns a truncated name contained in the registry name.
	got = MapSuggestions(stations, []string{"Raidurg"}, 3)
	require.Len(t, got, 1)
	assert.Equal(t, "cb-11", got[0].ID)
}

func TestMapSuggestions_DedupesByIDPreservingOrder(t *testing.T) {
	got := MapSuggestions(testStations(), []string{"Uppal", "Uppal PS", "Madhapur"}, 3)
	require.Len(t, got, 2)
	assert.Equal(t, "rk-3", got[0].ID)
	assert.Equal(t, "cb-10", got[1].ID)
}

func TestMapSuggestions_SkipsUnknownAndBlank(t *testing.T) {
	got := MapSuggestions(testStations(), []string{"", "Charminar", "Gachibowli"}, 3)
	require.Len(t, got, 1)
	assert.Equal(t, "cb-12", got[0].ID)
}

func TestMapSuggestions_TruncatesToK(t *testing.T) {
	got := MapSuggestions(testStations(), []string{"Gachibowli", "Madhapur", "Uppal"}, 2)
	assert.Len(t, got, 2)
}

// --- readiness ---

func TestCheckReadiness(t *testing.T) {
	svc := newTestService(t, nil, nil)
	assert.NoError(t, svc.CheckReadiness(context.Background()))

	empty, err := domain.NewRegistry(nil)
	require.NoError(t, err)
	unready := NewService(empty, nil, nil, discardLogger(), observability.NewMetricsForTesting())
	assert.Error(t, unready.CheckReadiness(context.Background()))
}
