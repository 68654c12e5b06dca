package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// MemoDraft is the caller-supplied input for an incident memo.
type MemoDraft struct {
	ComplainantName  string   `json:"complainant_name"`
	ComplainantPhone string   `json:"complainant_phone"`
	IssueType        string   `json:"issue_type"`
	IncidentDate     string   `json:"incident_date"`
	Location         string   `json:"location"`
	Description      string   `json:"description"`
	SuspectDetails   string   `json:"suspect_details,omitempty"`
	VehicleDetails   string   `json:"vehicle_details,omitempty"`
	Lat              *float64 `json:"lat,omitempty"`
	Lng              *float64 `json:"lng,omitempty"`
}

// IncidentMemo is a generated self-declared memorandum. It is not a
// certified report; it packages situational data for filing one.
type IncidentMemo struct {
	DocumentID  string    `json:"document_id"`
	GeneratedAt time.Time `json:"generated_at"`
	Draft       MemoDraft `json:"draft"`
	Station     *Station  `json:"station,omitempty"`
	Body        string    `json:"body"`
}

// ErrIncompleteDraft is returned when a draft lacks the required fields.
var ErrIncompleteDraft = errors.New("memo draft missing required fields")

// DraftMemo renders an incident memo from a draft, optionally bound to
// the resolved station. The document id is derived from the clock so
// fake clocks produce reproducible memos in tests.
func DraftMemo(draft MemoDraft, station *Station) (IncidentMemo, error) {
	if strings.TrimSpace(draft.ComplainantName) == "" ||
		strings.TrimSpace(draft.IssueType) == "" ||
		strings.TrimSpace(draft.Description) == "" {
		return IncidentMemo{}, ErrIncompleteDraft
	}

	now := clock.Now().UTC()
	memo := IncidentMemo{
		DocumentID:  fmt.Sprintf("HPC-%s", now.Format("20060102-150405")),
		GeneratedAt: now,
		Draft:       draft,
		Station:     station,
	}
	memo.Body = renderMemoBody(memo)
	return memo, nil
}

func renderMemoBody(m IncidentMemo) string {
	var b strings.Builder
	d := m.Draft

	fmt.Fprintf(&b, "OFFICIAL EVIDENCE MEMORANDUM %s\n", m.DocumentID)
	fmt.Fprintf(&b, "Generated: %s\n\n", m.GeneratedAt.Format(time.RFC3339))
	fmt.Fprintf(&b, "Reporting Person: %s (%s)\n", d.ComplainantName, d.ComplainantPhone)
	fmt.Fprintf(&b, "Incident Type: %s\n", d.IssueType)
	if d.IncidentDate != "" {
		fmt.Fprintf(&b, "Incident Date: %s\n", d.IncidentDate)
	}
	if d.Location != "" {
		fmt.Fprintf(&b, "Location: %s\n", d.Location)
	}
	if d.Lat != nil && d.Lng != nil {
		fmt.Fprintf(&b, "GPS Coordinates: %.4f, %.4f\n", *d.Lat, *d.Lng)
	}
	if m.Station != nil {
		fmt.Fprintf(&b, "Jurisdiction Station: %s (%s), %s\n",
			m.Station.Name, m.Station.Commissionerate, m.Station.Phone)
	}
	fmt.Fprintf(&b, "Suspect Information: %s\n", orNone(d.SuspectDetails))
	fmt.Fprintf(&b, "Vehicle/Object Info: %s\n\n", orNone(d.VehicleDetails))
	fmt.Fprintf(&b, "Incident Narrative:\n%s\n\n", d.Description)
	b.WriteString("Self-Declaration: the information in this document is a self-declared " +
		"memorandum generated by the reporting person. It is not a certified First " +
		"Information Report until signed and stamped by the competent authority at a " +
		"Police Station.\n")

	return b.String()
}

func orNone(s string) string {
	if strings.TrimSpace(s) == "" {
		return "None Disclosed"
	}
	return s
}
