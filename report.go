package gridmix

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// MarketResult summarises one market rebuild.
type MarketResult struct {
	Market     string      `json:"market"`
	Location   string      `json:"location"`
	Year       int         `json:"year"`
	Skipped    bool        `json:"skipped"`
	Regions    []string    `json:"regions,omitempty"`
	Removed    int         `json:"removed"`
	Suppliers  int         `json:"suppliers"`
	ShareSum   float64     `json:"share_sum"`
	Unresolved []string    `json:"unresolved,omitempty"`
	Trace      SearchTrace `json:"trace"`
}

// RunReport aggregates the results of one reconstruction pass.
type RunReport struct {
	RunID     string         `json:"run_id"`
	Year      int            `json:"year"`
	StartedAt time.Time      `json:"started_at"`
	Markets   []MarketResult `json:"markets"`
}

func newRunReport(year int) *RunReport {
	return &RunReport{
		RunID:     uuid.NewString(),
		Year:      year,
		StartedAt: time.Now().UTC(),
	}
}

// Rebuilt counts the markets that were actually rewritten.
func (r *RunReport) Rebuilt() int {
	count := 0
	for _, result := range r.Markets {
		if !result.Skipped {
			count++
		}
	}
	return count
}

// ToJSON serialises the report.
func (r *RunReport) ToJSON() ([]byte, error) {
	type alias RunReport
	return json.Marshal((*alias)(r))
}

// ReportFromJSON deserialises a report generated via ToJSON.
func ReportFromJSON(payload []byte) (*RunReport, error) {
	type alias RunReport
	var report alias
	if err := json.Unmarshal(payload, &report); err != nil {
		return nil, err
	}
	return (*RunReport)(&report), nil
}
