package activity

import "time"

// MarketEventInput describes the common fields for market lifecycle events.
type MarketEventInput struct {
	Market     string
	Location   string
	Technology string
	Year       int
	RunID      string
	Tier       string
	Suppliers  int
	Reason     string
	Shares     map[string]float64
	Metadata   map[string]any
	OccurredAt time.Time
}

// BuildMarketClearedEvent constructs a normalized event for a cleared market.
func BuildMarketClearedEvent(input MarketEventInput) Event {
	return buildMarketEvent(VerbMarketCleared, input)
}

// BuildMarketRebuiltEvent constructs a normalized event for a rebuilt market.
func BuildMarketRebuiltEvent(input MarketEventInput) Event {
	return buildMarketEvent(VerbMarketRebuilt, input)
}

// BuildMarketSkippedEvent constructs a normalized event for a skipped market.
func BuildMarketSkippedEvent(input MarketEventInput) Event {
	return buildMarketEvent(VerbMarketSkipped, input)
}

// BuildTechnologyUnresolvedEvent constructs a normalized event for a
// technology whose suppliers could not be located.
func BuildTechnologyUnresolvedEvent(input MarketEventInput) Event {
	return buildMarketEvent(VerbTechnologyUnresolved, input)
}

func buildMarketEvent(verb string, input MarketEventInput) Event {
	metadata := cloneMap(input.Metadata)
	if input.Tier != "" {
		metadata = ensureMetadata(metadata)
		metadata["tier"] = input.Tier
	}
	if input.Suppliers > 0 {
		metadata = ensureMetadata(metadata)
		metadata["suppliers"] = input.Suppliers
	}
	if input.Reason != "" {
		metadata = ensureMetadata(metadata)
		metadata["reason"] = input.Reason
	}
	if len(input.Shares) > 0 {
		metadata = ensureMetadata(metadata)
		shares := make(map[string]float64, len(input.Shares))
		for name, share := range input.Shares {
			shares[name] = share
		}
		metadata["shares"] = shares
	}

	return Event{
		Verb:       verb,
		Market:     input.Market,
		Location:   input.Location,
		Technology: input.Technology,
		Year:       input.Year,
		RunID:      input.RunID,
		Metadata:   metadata,
		OccurredAt: input.OccurredAt,
	}
}

func ensureMetadata(meta map[string]any) map[string]any {
	if meta == nil {
		return map[string]any{}
	}
	return meta
}
