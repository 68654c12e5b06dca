package domain

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDraftMemo_FrozenClock(t *testing.T) {
	SetClock(clockwork.NewFakeClockAt(time.Date(2025, time.March, 14, 9, 30, 0, 0, time.UTC)))
	defer SetClock(nil)

	lat, lng := 17.3235, 78.4385
	station := &Station{
		ID: "cb-41", Name: "Mailardevpally", Commissionerate: Cyberabad,
		Phone: "040-27854614", Lat: lat, Lng: lng,
	}

	memo, err := DraftMemo(MemoDraft{
		ComplainantName:  "A. Kumar",
		ComplainantPhone: "9490000000",
		IssueType:        "Vehicle Theft",
		IncidentDate:     "2025-03-13",
		Location:         "Katedan industrial area",
		Description:      "Two-wheeler missing from parking lot.",
		Lat:              &lat,
		Lng:              &lng,
	}, station)
	require.NoError(t, err)

	assert.Equal(t, "HPC-20250314-093000", memo.DocumentID)
	assert.Equal(t, time.Date(2025, time.March, 14, 9, 30, 0, 0, time.UTC), memo.GeneratedAt)
	assert.Contains(t, memo.Body, "Reporting Person: A. Kumar (9490000000)")
	assert.Contains(t, memo.Body, "Jurisdiction Station: Mailardevpally (Cyberabad), 040-27854614")
	assert.Contains(t, memo.Body, "GPS Coordinates: 17.3235, 78.4385")
	assert.Contains(t, memo.Body, "Suspect Information: None Disclosed")
	assert.Contains(t, memo.Body, "not a certified First Information Report")
}

func TestDraftMemo_RequiresCoreFields(t *testing.T) {
	_, err := DraftMemo(MemoDraft{ComplainantName: "A. Kumar"}, nil)
	assert.ErrorIs(t, err, ErrIncompleteDraft)

	_, err = DraftMemo(MemoDraft{IssueType: "Theft", Description: "  "}, nil)
	assert.ErrorIs(t, err, ErrIncompleteDraft)
}

func TestDraftMemo_NoStationOrCoords(t *testing.T) {
	memo, err := DraftMemo(MemoDraft{
		ComplainantName: "B. Rao",
		IssueType:       "Noise Complaint",
		Description:     "Loud construction after hours.",
	}, nil)
	require.NoError(t, err)

	assert.NotContains(t, memo.Body, "Jurisdiction Station")
	assert.NotContains(t, memo.Body, "GPS Coordinates")
}
