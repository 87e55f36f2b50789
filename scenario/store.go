package scenario

import "strings"

// hydrogenMarker flags technologies excluded by the drop-hydrogen filters.
const hydrogenMarker = "Hydrogen"

// DataStore owns the scenario output series, the pollutant-factor series,
// and the technology label dictionaries. It is read-only after Load and safe
// for concurrent queries.
type DataStore struct {
	data      *Series
	factors   *PollutantSeries
	labels    LabelSet
	sectorMap map[string]string
}

// Labels exposes the technology label dictionaries.
func (d *DataStore) Labels() LabelSet {
	return d.labels
}

// Data exposes the scenario output series.
func (d *DataStore) Data() *Series {
	return d.data
}

// Factors exposes the pollutant-factor series.
func (d *DataStore) Factors() *PollutantSeries {
	return d.factors
}

// SectorVariable resolves a pollutant-table sector code to the scenario
// variable code the crosswalk joins it to.
func (d *DataStore) SectorVariable(sector string) (string, bool) {
	code, ok := d.sectorMap[sector]
	return code, ok
}

// TechnologyMix returns each technology's share of total generation per
// region for the given year, normalized to sum to one per region. When
// dropHydrogen is true, hydrogen-labeled technologies are excluded from both
// numerator and denominator. Years between two data years interpolate the
// raw values per (region, technology) before normalization.
func (d *DataStore) TechnologyMix(year int, dropHydrogen bool) (map[string]map[string]float64, error) {
	if err := d.data.checkYear(year); err != nil {
		return nil, err
	}
	technologies := filterHydrogen(d.labels.Market.Names(), dropHydrogen)

	mix := make(map[string]map[string]float64, len(d.data.regions))
	for _, region := range d.data.regions {
		raw := make(map[string]float64, len(technologies))
		var total float64
		for _, tech := range technologies {
			value := d.data.at(tech, region, year)
			raw[tech] = value
			total += value
		}
		shares := make(map[string]float64, len(technologies))
		for _, tech := range technologies {
			if total == 0 {
				shares[tech] = 0
				continue
			}
			shares[tech] = raw[tech] / total
		}
		mix[region] = shares
	}
	return mix, nil
}

// Efficiency returns the conversion efficiency ratio per technology and
// region for the given year. Values are stored as percentages and divided by
// 100 here; there is no cross-technology normalization since efficiency is a
// per-technology quantity, not a composition.
func (d *DataStore) Efficiency(year int, dropHydrogen bool) (map[string]map[string]float64, error) {
	if err := d.data.checkYear(year); err != nil {
		return nil, err
	}
	technologies := filterHydrogen(d.labels.Efficiency.Names(), dropHydrogen)

	out := make(map[string]map[string]float64, len(d.data.regions))
	for _, region := range d.data.regions {
		ratios := make(map[string]float64, len(technologies))
		for _, tech := range technologies {
			ratios[tech] = d.data.at(tech, region, year) / 100
		}
		out[region] = ratios
	}
	return out, nil
}

// EmissionFactor returns per-energy-unit emission factors keyed by region,
// sector, and pollutant for the given year, interpolating between data years
// per (region, sector, pollutant) triple when needed.
func (d *DataStore) EmissionFactor(year int) (map[string]map[string]map[string]float64, error) {
	if err := d.factors.checkYear(year); err != nil {
		return nil, err
	}
	out := make(map[string]map[string]map[string]float64, len(d.factors.regions))
	for _, region := range d.factors.regions {
		sectors := make(map[string]map[string]float64, len(d.factors.sectors))
		for _, sector := range d.factors.sectors {
			pollutants := make(map[string]float64, len(d.factors.pollutants))
			for _, pollutant := range d.factors.pollutants {
				pollutants[pollutant] = d.factors.at(pollutant, sector, region, year)
			}
			sectors[sector] = pollutants
		}
		out[region] = sectors
	}
	return out, nil
}

func filterHydrogen(names []string, drop bool) []string {
	if !drop {
		return names
	}
	out := names[:0:0]
	for _, name := range names {
		if strings.Contains(name, hydrogenMarker) {
			continue
		}
		out = append(out, name)
	}
	return out
}
