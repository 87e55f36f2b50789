// Package gridmix rewrites the technology composition of electricity market
// datasets so it reflects a scenario model's projected mix for a target year.
// It joins three collaborators: the scenario data store (time-interpolated
// shares), the region hierarchy (macro-region resolution), and an inventory
// searcher (supplier lookup via predicates).
package gridmix

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/goliatone/go-gridmix/geo"
	"github.com/goliatone/go-gridmix/inventory"
	"github.com/goliatone/go-gridmix/pkg/activity"
	"github.com/goliatone/go-gridmix/scenario"
)

// highVoltageMarketName selects the markets RebuildAll rewrites. Submarkets
// for specific industries keep their original composition.
const highVoltageMarketName = "market for electricity, high voltage"

var submarketMarkers = []string{"aluminium industry", "internal use in coal mining"}

// Reconstructor rewrites market datasets in place. It borrows its
// collaborators for the duration of a run and never persists anything.
type Reconstructor struct {
	store     *scenario.DataStore
	hierarchy *geo.Hierarchy
	searcher  inventory.Searcher
	cfg       config
}

// New wires a reconstructor from its three collaborators.
func New(store *scenario.DataStore, hierarchy *geo.Hierarchy, searcher inventory.Searcher, opts ...Option) (*Reconstructor, error) {
	if store == nil {
		return nil, fmt.Errorf("gridmix: scenario store is required")
	}
	if hierarchy == nil {
		return nil, fmt.Errorf("gridmix: region hierarchy is required")
	}
	if searcher == nil {
		return nil, fmt.Errorf("gridmix: inventory searcher is required")
	}
	return &Reconstructor{
		store:     store,
		hierarchy: hierarchy,
		searcher:  searcher,
		cfg:       newConfig(opts...),
	}, nil
}

// Rebuild runs the market pipeline: clear the old supply exchanges, resolve
// the scenario region, fetch the mix, search suppliers per technology, and
// assemble the new exchanges. Stages never run backwards. Unresolved regions
// and technologies are diagnostics, not errors; only an out-of-range year or
// a nil dataset is fatal.
func (r *Reconstructor) Rebuild(ctx context.Context, ds *inventory.Dataset, year int) (*MarketResult, error) {
	if ds == nil {
		return nil, fmt.Errorf("gridmix: dataset is required")
	}

	result := &MarketResult{
		Market:   ds.Name,
		Location: ds.Location,
		Year:     year,
		Trace: SearchTrace{
			Market:   ds.Name,
			Location: ds.Location,
			Year:     year,
		},
	}

	result.Removed = r.clear(ctx, ds, year)

	regions := r.hierarchy.ContainingRegions(ds.Location)
	if len(regions) == 0 {
		r.skip(ctx, ds, year, result, "no scenario region matches location")
		return result, nil
	}

	mix, err := r.store.TechnologyMix(year, true)
	if err != nil {
		return nil, err
	}
	shares, matched := averageShares(mix, regions)
	if len(matched) == 0 {
		r.skip(ctx, ds, year, result, "no scenario mix data for resolved regions")
		return result, nil
	}
	result.Regions = matched

	r.assemble(ctx, ds, year, shares, result)
	return result, nil
}

// RebuildAll rebuilds every high-voltage market the searcher exposes and
// returns a run report. The first fatal error aborts the pass.
func (r *Reconstructor) RebuildAll(ctx context.Context, year int) (*RunReport, error) {
	report := newRunReport(year)
	markets := r.searcher.Search(
		inventory.Contains("name", highVoltageMarketName),
		inventory.DoesntContainAny("name", submarketMarkers...),
		inventory.Equals("unit", r.cfg.energyUnit),
	)
	for _, ds := range markets {
		result, err := r.Rebuild(ctx, ds, year)
		if err != nil {
			return nil, err
		}
		report.Markets = append(report.Markets, *result)
	}
	return report, nil
}

// clear drops the dataset's electricity-supply exchanges while keeping the
// structural rows: production output, biosphere flows, self-consumption of
// the market's own product, and voltage transformation inputs.
func (r *Reconstructor) clear(ctx context.Context, ds *inventory.Dataset, year int) int {
	kept := inventory.FilterExchanges(ds.Exchanges,
		inventory.Either(
			inventory.Exclude(inventory.Equals("type", inventory.TypeTechnosphere)),
			inventory.Exclude(inventory.Equals("unit", r.cfg.energyUnit)),
			inventory.Contains("name", "market for electricity"),
			inventory.Contains("name", "voltage transformation"),
		),
	)
	removed := len(ds.Exchanges) - len(kept)
	ds.Exchanges = kept

	r.emit(ctx, activity.BuildMarketClearedEvent(activity.MarketEventInput{
		Market:   ds.Name,
		Location: ds.Location,
		Year:     year,
		Metadata: map[string]any{"removed": removed},
	}))
	return removed
}

func (r *Reconstructor) skip(ctx context.Context, ds *inventory.Dataset, year int, result *MarketResult, reason string) {
	result.Skipped = true
	r.cfg.logger.LogDiagnostic(DiagnosticEvent{
		Severity: SeverityWarning,
		Market:   ds.Name,
		Location: ds.Location,
		Year:     year,
		Message:  reason,
	})
	r.emit(ctx, activity.BuildMarketSkippedEvent(activity.MarketEventInput{
		Market:   ds.Name,
		Location: ds.Location,
		Year:     year,
		Reason:   reason,
	}))
}

// assemble resolves suppliers per technology through the fallback tiers and
// appends one technosphere exchange per supplier, splitting each share
// evenly across the tier's results.
func (r *Reconstructor) assemble(ctx context.Context, ds *inventory.Dataset, year int, shares map[string]float64, result *MarketResult) {
	tiers := fallbackTiers(r.hierarchy, ds.Location)
	resolved := make(map[string]float64, len(shares))

	var added []inventory.Exchange
	var sum float64
	for _, tech := range sortedKeys(shares) {
		share := shares[tech]
		if share == 0 {
			continue
		}

		tierName, found := findSuppliers(r.searcher, tiers, r.supplierNames(tech), r.cfg.energyUnit)
		if len(found) == 0 {
			result.Unresolved = append(result.Unresolved, tech)
			result.Trace.Steps = append(result.Trace.Steps, TierResult{
				Technology: tech,
				Share:      share,
			})
			r.cfg.logger.LogDiagnostic(DiagnosticEvent{
				Severity:   SeverityWarning,
				Market:     ds.Name,
				Location:   ds.Location,
				Technology: tech,
				Year:       year,
				Message:    "no supplier found at any tier",
			})
			r.emit(ctx, activity.BuildTechnologyUnresolvedEvent(activity.MarketEventInput{
				Market:     ds.Name,
				Location:   ds.Location,
				Technology: tech,
				Year:       year,
			}))
			continue
		}

		amount := share / float64(len(found))
		for _, supplier := range found {
			added = append(added, inventory.Exchange{
				Name:     supplier.Name,
				Location: supplier.Location,
				Unit:     supplier.Unit,
				Amount:   amount,
				Type:     inventory.TypeTechnosphere,
				Input:    supplier.Ref(),
			})
			sum += amount
		}
		resolved[tech] = share
		result.Suppliers += len(found)
		result.Trace.Steps = append(result.Trace.Steps, TierResult{
			Technology: tech,
			Tier:       tierName,
			Found:      true,
			Suppliers:  len(found),
			Share:      share,
		})
	}

	result.ShareSum = sum
	if math.Abs(sum-1) > r.cfg.tolerance {
		r.cfg.logger.LogDiagnostic(DiagnosticEvent{
			Severity: SeverityWarning,
			Market:   ds.Name,
			Location: ds.Location,
			Year:     year,
			Message:  fmt.Sprintf("rebuilt supply sums to %g instead of 1", sum),
		})
	}

	ds.Exchanges = append(ds.Exchanges, added...)
	r.emit(ctx, activity.BuildMarketRebuiltEvent(activity.MarketEventInput{
		Market:    ds.Name,
		Location:  ds.Location,
		Year:      year,
		Suppliers: result.Suppliers,
		Shares:    resolved,
	}))
}

// supplierNames resolves a mix technology name to the inventory dataset
// names configured for it, trying the internal variable code first.
func (r *Reconstructor) supplierNames(tech string) []string {
	if code, ok := r.store.Labels().Market.Code(tech); ok {
		if names, ok := r.cfg.suppliers[code]; ok {
			return names
		}
	}
	return r.cfg.suppliers[tech]
}

func (r *Reconstructor) emit(ctx context.Context, event activity.Event) {
	if !r.cfg.hooks.Enabled() {
		return
	}
	if err := r.cfg.hooks.Notify(ctx, event); err != nil {
		r.cfg.logger.LogDiagnostic(DiagnosticEvent{
			Severity: SeverityInfo,
			Market:   event.Market,
			Location: event.Location,
			Year:     event.Year,
			Message:  fmt.Sprintf("activity hook failed: %v", err),
		})
	}
}

// averageShares returns the unweighted mean share per technology across the
// resolved regions, ignoring regions the mix has no data for.
func averageShares(mix map[string]map[string]float64, regions []string) (map[string]float64, []string) {
	var matched []string
	for _, region := range regions {
		if _, ok := mix[region]; ok {
			matched = append(matched, region)
		}
	}
	if len(matched) == 0 {
		return nil, nil
	}

	shares := make(map[string]float64)
	for _, region := range matched {
		for tech, share := range mix[region] {
			shares[tech] += share
		}
	}
	for tech := range shares {
		shares[tech] /= float64(len(matched))
	}
	return shares, matched
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
