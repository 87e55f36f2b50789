// Package geo maps between the scenario model's macro-regions and the finer
// location codes used by the inventory database. It implements only the
// containment relation between the two taxonomies: which macro-region a fine
// code belongs to, and which fine codes share that macro-region.
package geo

// GlobalCode is the canonical global location code shared by both taxonomies.
const GlobalCode = "GLO"

// RestOfWorldCode is the inventory alias normalized to GlobalCode.
const RestOfWorldCode = "RoW"

// Hierarchy holds the bidirectional containment maps loaded from a
// region-equivalence table. Immutable after Load.
type Hierarchy struct {
	macros      []string
	contains    map[string][]string
	containedBy map[string]string
	renames     map[string]string
}

// Normalize resolves location aliases: the rest-of-world code collapses to
// the global code, then the fixed rename dictionary applies. Unknown codes
// pass through unchanged.
func (h *Hierarchy) Normalize(code string) string {
	if code == RestOfWorldCode {
		code = GlobalCode
	}
	if renamed, ok := h.renames[code]; ok {
		return renamed
	}
	return code
}

// ContainingRegions returns the macro-regions whose containment set includes
// code, after alias normalization. The global code intersects every
// macro-region. Unknown codes return nil; lookups never fail.
func (h *Hierarchy) ContainingRegions(code string) []string {
	code = h.Normalize(code)
	if code == GlobalCode {
		return h.Regions()
	}
	region, ok := h.containedBy[code]
	if !ok {
		return nil
	}
	return []string{region}
}

// Siblings returns the union of fine codes contained by every macro-region
// that contains code, preserving first-seen order. Used by the second-tier
// fallback search.
func (h *Hierarchy) Siblings(code string) []string {
	regions := h.ContainingRegions(code)
	if len(regions) == 0 {
		return nil
	}
	var out []string
	seen := make(map[string]struct{})
	for _, region := range regions {
		for _, fine := range h.contains[region] {
			if _, ok := seen[fine]; ok {
				continue
			}
			seen[fine] = struct{}{}
			out = append(out, fine)
		}
	}
	return out
}

// Contains returns a copy of the ordered fine codes declared for region.
func (h *Hierarchy) Contains(region string) []string {
	fines := h.contains[region]
	if len(fines) == 0 {
		return nil
	}
	out := make([]string, len(fines))
	copy(out, fines)
	return out
}

// Regions returns the macro-region codes in table order.
func (h *Hierarchy) Regions() []string {
	out := make([]string, len(h.macros))
	copy(out, h.macros)
	return out
}
