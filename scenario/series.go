// Package scenario loads energy-scenario model output into labeled,
// multi-dimensional numeric stores and answers time-interpolated queries for
// regional technology mixes, efficiencies, and emission factors.
package scenario

import "fmt"

// OutOfRangeError reports a query year outside the span covered by the
// loaded scenario data.
type OutOfRangeError struct {
	Year int
	Min  int
	Max  int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("scenario: year must be between %d and %d, got %d", e.Min, e.Max, e.Year)
}

// Series is a dense 3-axis array keyed by (variable, region, year). The axis
// label sets are fixed at construction and values are immutable once loaded.
type Series struct {
	variables []string
	regions   []string
	years     []int
	varIdx    map[string]int
	regionIdx map[string]int
	values    []float64
}

func newSeries(variables, regions []string, years []int) *Series {
	s := &Series{
		variables: variables,
		regions:   regions,
		years:     years,
		varIdx:    make(map[string]int, len(variables)),
		regionIdx: make(map[string]int, len(regions)),
		values:    make([]float64, len(variables)*len(regions)*len(years)),
	}
	for i, v := range variables {
		s.varIdx[v] = i
	}
	for i, r := range regions {
		s.regionIdx[r] = i
	}
	return s
}

func (s *Series) offset(vi, ri, yi int) int {
	return (vi*len(s.regions)+ri)*len(s.years) + yi
}

func (s *Series) set(variable, region string, yi int, value float64) {
	vi, ok := s.varIdx[variable]
	if !ok {
		return
	}
	ri, ok := s.regionIdx[region]
	if !ok {
		return
	}
	s.values[s.offset(vi, ri, yi)] = value
}

// Value returns the stored value for an exact data year. The second return
// reports whether every axis label was known.
func (s *Series) Value(variable, region string, year int) (float64, bool) {
	vi, ok := s.varIdx[variable]
	if !ok {
		return 0, false
	}
	ri, ok := s.regionIdx[region]
	if !ok {
		return 0, false
	}
	for yi, y := range s.years {
		if y == year {
			return s.values[s.offset(vi, ri, yi)], true
		}
	}
	return 0, false
}

// at resolves the value for year, interpolating linearly between the two
// bracketing data years when year is not a knot. Callers must range-check
// the year beforehand.
func (s *Series) at(variable, region string, year int) float64 {
	vi, ok := s.varIdx[variable]
	if !ok {
		return 0
	}
	ri, ok := s.regionIdx[region]
	if !ok {
		return 0
	}
	lo, hi, weight, exact := bracket(s.years, year)
	if exact {
		return s.values[s.offset(vi, ri, lo)]
	}
	v1 := s.values[s.offset(vi, ri, lo)]
	v2 := s.values[s.offset(vi, ri, hi)]
	return v1 + (v2-v1)*weight
}

// Variables returns the variable axis labels in load order.
func (s *Series) Variables() []string {
	out := make([]string, len(s.variables))
	copy(out, s.variables)
	return out
}

// Regions returns the region axis labels in load order.
func (s *Series) Regions() []string {
	out := make([]string, len(s.regions))
	copy(out, s.regions)
	return out
}

// Years returns the data years in increasing order.
func (s *Series) Years() []int {
	out := make([]int, len(s.years))
	copy(out, s.years)
	return out
}

func (s *Series) checkYear(year int) error {
	return checkYearRange(s.years, year)
}

// PollutantSeries is a dense 4-axis array keyed by (pollutant, sector,
// region, year). Values are stored on a per-energy-unit basis; the
// annual-hours division happens at load time.
type PollutantSeries struct {
	pollutants []string
	sectors    []string
	regions    []string
	years      []int
	polIdx     map[string]int
	sectorIdx  map[string]int
	regionIdx  map[string]int
	values     []float64
}

func newPollutantSeries(pollutants, sectors, regions []string, years []int) *PollutantSeries {
	p := &PollutantSeries{
		pollutants: pollutants,
		sectors:    sectors,
		regions:    regions,
		years:      years,
		polIdx:     make(map[string]int, len(pollutants)),
		sectorIdx:  make(map[string]int, len(sectors)),
		regionIdx:  make(map[string]int, len(regions)),
		values:     make([]float64, len(pollutants)*len(sectors)*len(regions)*len(years)),
	}
	for i, l := range pollutants {
		p.polIdx[l] = i
	}
	for i, l := range sectors {
		p.sectorIdx[l] = i
	}
	for i, l := range regions {
		p.regionIdx[l] = i
	}
	return p
}

func (p *PollutantSeries) offset(pi, si, ri, yi int) int {
	return ((pi*len(p.sectors)+si)*len(p.regions)+ri)*len(p.years) + yi
}

func (p *PollutantSeries) set(pollutant, sector, region string, yi int, value float64) {
	pi, ok := p.polIdx[pollutant]
	if !ok {
		return
	}
	si, ok := p.sectorIdx[sector]
	if !ok {
		return
	}
	ri, ok := p.regionIdx[region]
	if !ok {
		return
	}
	p.values[p.offset(pi, si, ri, yi)] = value
}

func (p *PollutantSeries) at(pollutant, sector, region string, year int) float64 {
	pi, ok := p.polIdx[pollutant]
	if !ok {
		return 0
	}
	si, ok := p.sectorIdx[sector]
	if !ok {
		return 0
	}
	ri, ok := p.regionIdx[region]
	if !ok {
		return 0
	}
	lo, hi, weight, exact := bracket(p.years, year)
	if exact {
		return p.values[p.offset(pi, si, ri, lo)]
	}
	v1 := p.values[p.offset(pi, si, ri, lo)]
	v2 := p.values[p.offset(pi, si, ri, hi)]
	return v1 + (v2-v1)*weight
}

// Pollutants returns the pollutant axis labels in load order.
func (p *PollutantSeries) Pollutants() []string {
	out := make([]string, len(p.pollutants))
	copy(out, p.pollutants)
	return out
}

// Sectors returns the sector axis labels in load order.
func (p *PollutantSeries) Sectors() []string {
	out := make([]string, len(p.sectors))
	copy(out, p.sectors)
	return out
}

// Regions returns the region axis labels in load order.
func (p *PollutantSeries) Regions() []string {
	out := make([]string, len(p.regions))
	copy(out, p.regions)
	return out
}

// Years returns the data years in increasing order.
func (p *PollutantSeries) Years() []int {
	out := make([]int, len(p.years))
	copy(out, p.years)
	return out
}

func (p *PollutantSeries) checkYear(year int) error {
	return checkYearRange(p.years, year)
}

func checkYearRange(years []int, year int) error {
	if len(years) == 0 {
		return &OutOfRangeError{Year: year}
	}
	min, max := years[0], years[len(years)-1]
	if year < min || year > max {
		return &OutOfRangeError{Year: year, Min: min, Max: max}
	}
	return nil
}

// bracket locates year within the sorted knots. When year is a knot, lo
// carries its index and exact is true. Otherwise lo/hi index the bracketing
// knots and weight is the linear position of year between them.
func bracket(years []int, year int) (lo, hi int, weight float64, exact bool) {
	for i, y := range years {
		if y == year {
			return i, i, 0, true
		}
		if y > year {
			lo, hi = i-1, i
			y1, y2 := years[lo], years[hi]
			return lo, hi, float64(year-y1) / float64(y2-y1), false
		}
	}
	last := len(years) - 1
	return last, last, 0, true
}
