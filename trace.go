package gridmix

import (
	"encoding/json"
)

// SearchTrace captures provenance information for one market rebuild: which
// fallback tier satisfied each technology and how the share was split.
type SearchTrace struct {
	Market   string       `json:"market"`
	Location string       `json:"location"`
	Year     int          `json:"year"`
	Steps    []TierResult `json:"steps"`
}

// TierResult details how a single technology search resolved.
type TierResult struct {
	Technology string  `json:"technology"`
	Tier       string  `json:"tier,omitempty"`
	Found      bool    `json:"found"`
	Suppliers  int     `json:"suppliers"`
	Share      float64 `json:"share"`
}

// ToJSON serialises the trace into JSON for logging or transport helpers.
func (t SearchTrace) ToJSON() ([]byte, error) {
	type alias SearchTrace
	return json.Marshal(alias(t))
}

// TraceFromJSON deserialises a JSON payload that was previously generated via
// ToJSON.
func TraceFromJSON(payload []byte) (SearchTrace, error) {
	type alias SearchTrace
	var trace alias
	if err := json.Unmarshal(payload, &trace); err != nil {
		return SearchTrace{}, err
	}
	return SearchTrace(trace), nil
}
