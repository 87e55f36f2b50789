package gridmix

import (
	"github.com/goliatone/go-gridmix/geo"
	"github.com/goliatone/go-gridmix/inventory"
)

// Fallback tiers in search order.
const (
	TierExact   = "exact"
	TierSibling = "sibling"
	TierGlobal  = "global"
)

// searchTier pairs a tier name with the locations it is allowed to match.
type searchTier struct {
	name      string
	locations []string
}

// fallbackTiers builds the ordered tier chain for a market location: the
// location itself, then every fine code sharing its macro-region, then the
// global codes. Tiers with no candidate locations are dropped.
func fallbackTiers(hierarchy *geo.Hierarchy, location string) []searchTier {
	location = hierarchy.Normalize(location)
	tiers := []searchTier{
		{name: TierExact, locations: []string{location}},
	}
	if siblings := hierarchy.Siblings(location); len(siblings) > 0 {
		tiers = append(tiers, searchTier{name: TierSibling, locations: siblings})
	}
	tiers = append(tiers, searchTier{
		name:      TierGlobal,
		locations: []string{geo.GlobalCode, geo.RestOfWorldCode},
	})
	return tiers
}

// findSuppliers walks the tier chain and returns the first non-empty result
// together with the tier that produced it.
func findSuppliers(searcher inventory.Searcher, tiers []searchTier, names []string, unit string) (string, []*inventory.Dataset) {
	if len(names) == 0 {
		return "", nil
	}
	for _, tier := range tiers {
		found := searcher.Search(
			inventory.EqualsAny("name", names...),
			inventory.EqualsAny("location", tier.locations...),
			inventory.Equals("unit", unit),
		)
		if len(found) > 0 {
			return tier.name, found
		}
	}
	return "", nil
}
