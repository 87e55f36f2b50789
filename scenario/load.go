package scenario

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/goliatone/go-gridmix/internal/tabular"
)

// ErrMissingFile indicates a required input file could not be located.
var ErrMissingFile = errors.New("scenario: file could not be found")

// DefaultBaselineTag selects the reference baseline rows of the
// pollutant-factor table.
const DefaultBaselineTag = "SSP2"

// defaultAnnualHours converts annual totals to a per-energy-unit basis.
const defaultAnnualHours = 8760

// defaultVariableMarkers keep only secondary-energy and technology rows of
// the scenario output table.
var defaultVariableMarkers = []string{"SE", "Tech"}

// Config names the input files a DataStore is built from. All paths are
// required; BaselineTag defaults to DefaultBaselineTag when empty.
type Config struct {
	OutputPath           string
	FactorsPath          string
	CrosswalkPath        string
	MarketLabelsPath     string
	EfficiencyLabelsPath string
	EmissionLabelsPath   string
	BaselineTag          string
}

// Option configures data loading.
type Option func(*loadConfig)

type loadConfig struct {
	markers     []string
	annualHours float64
}

// WithVariableMarkers replaces the substrings used to keep scenario output
// rows. A row survives when its variable name contains any marker.
func WithVariableMarkers(markers ...string) Option {
	return func(cfg *loadConfig) {
		cfg.markers = append([]string(nil), markers...)
	}
}

// WithAnnualHours overrides the annual-hours conversion factor applied to
// pollutant factors at load time.
func WithAnnualHours(hours float64) Option {
	return func(cfg *loadConfig) {
		if hours > 0 {
			cfg.annualHours = hours
		}
	}
}

func applyLoadOptions(opts []Option) loadConfig {
	cfg := loadConfig{
		markers:     defaultVariableMarkers,
		annualHours: defaultAnnualHours,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// Load builds a DataStore from the configured tables. Any missing required
// file fails with an error wrapping ErrMissingFile that names the file.
func Load(cfg Config, opts ...Option) (*DataStore, error) {
	lc := applyLoadOptions(opts)
	if cfg.BaselineTag == "" {
		cfg.BaselineTag = DefaultBaselineTag
	}

	labels, err := loadLabelSet(cfg)
	if err != nil {
		return nil, err
	}
	data, err := loadOutput(cfg.OutputPath, lc.markers)
	if err != nil {
		return nil, err
	}
	sectorMap, err := loadCrosswalk(cfg.CrosswalkPath)
	if err != nil {
		return nil, err
	}
	factors, err := loadFactors(cfg.FactorsPath, cfg.BaselineTag, sectorMap, lc.annualHours)
	if err != nil {
		return nil, err
	}

	return &DataStore{
		data:      data,
		factors:   factors,
		labels:    labels,
		sectorMap: sectorMap,
	}, nil
}

func readTable(path, label string, opts ...tabular.ReadOption) ([][]string, error) {
	rows, err := tabular.ReadRows(path, opts...)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: the %s file %q", ErrMissingFile, label, path)
		}
		return nil, fmt.Errorf("scenario: read %s file %q: %w", label, path, err)
	}
	return rows, nil
}

func loadLabelSet(cfg Config) (LabelSet, error) {
	market, err := loadLabels(cfg.MarketLabelsPath, "market technology labels")
	if err != nil {
		return LabelSet{}, err
	}
	efficiency, err := loadLabels(cfg.EfficiencyLabelsPath, "efficiency technology labels")
	if err != nil {
		return LabelSet{}, err
	}
	emission, err := loadLabels(cfg.EmissionLabelsPath, "emission technology labels")
	if err != nil {
		return LabelSet{}, err
	}
	return LabelSet{Market: market, Efficiency: efficiency, Emission: emission}, nil
}

// loadLabels reads a two-column code;name table. Malformed or empty rows are
// skipped silently.
func loadLabels(path, label string) (Labels, error) {
	rows, err := readTable(path, label,
		tabular.WithMinFields(2),
		tabular.WithTrimSpace(),
	)
	if err != nil {
		return Labels{}, err
	}
	pairs := make([][2]string, 0, len(rows))
	for _, row := range rows {
		pairs = append(pairs, [2]string{row[0], row[1]})
	}
	return newLabels(pairs), nil
}

// loadOutput reads the scenario output table. The header names the fixed
// leading columns followed by one column per data year; rows are kept only
// when the variable name contains one of the markers.
func loadOutput(path string, markers []string) (*Series, error) {
	rows, err := readTable(path, "scenario output", tabular.WithTrimSpace())
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("scenario: output file %q has no data rows", path)
	}

	header := rows[0]
	regionCol, variableCol := -1, -1
	type yearCol struct {
		year int
		col  int
	}
	var yearCols []yearCol
	for i, field := range header {
		switch field {
		case "Region":
			regionCol = i
		case "Variable":
			variableCol = i
		default:
			if year, err := strconv.Atoi(field); err == nil {
				yearCols = append(yearCols, yearCol{year: year, col: i})
			}
		}
	}
	if regionCol < 0 || variableCol < 0 {
		return nil, fmt.Errorf("scenario: output file %q missing Region or Variable column", path)
	}
	if len(yearCols) == 0 {
		return nil, fmt.Errorf("scenario: output file %q has no year columns", path)
	}
	years := make([]int, len(yearCols))
	for i, yc := range yearCols {
		years[i] = yc.year
		if i > 0 && yc.year <= yearCols[i-1].year {
			return nil, fmt.Errorf("scenario: output file %q year columns must be strictly increasing", path)
		}
	}

	var kept [][]string
	var variables, regions []string
	seenVar := make(map[string]struct{})
	seenRegion := make(map[string]struct{})
	for _, row := range rows[1:] {
		if len(row) <= regionCol || len(row) <= variableCol {
			continue
		}
		variable := row[variableCol]
		if !containsAny(variable, markers) {
			continue
		}
		region := row[regionCol]
		if region == "" || variable == "" {
			continue
		}
		if _, ok := seenVar[variable]; !ok {
			seenVar[variable] = struct{}{}
			variables = append(variables, variable)
		}
		if _, ok := seenRegion[region]; !ok {
			seenRegion[region] = struct{}{}
			regions = append(regions, region)
		}
		kept = append(kept, row)
	}

	series := newSeries(variables, regions, years)
	for _, row := range kept {
		for yi, yc := range yearCols {
			if len(row) <= yc.col {
				continue
			}
			value, err := strconv.ParseFloat(row[yc.col], 64)
			if err != nil {
				continue
			}
			series.set(row[variableCol], row[regionCol], yi, value)
		}
	}
	return series, nil
}

// loadCrosswalk maps pollutant-table sector codes to scenario variable
// codes. Columns beyond the first two are dropped.
func loadCrosswalk(path string) (map[string]string, error) {
	rows, err := readTable(path, "sector crosswalk",
		tabular.WithComma(','),
		tabular.WithSkipRows(1),
		tabular.WithMinFields(2),
		tabular.WithTrimSpace(),
	)
	if err != nil {
		return nil, err
	}
	crosswalk := make(map[string]string, len(rows))
	for _, row := range rows {
		sector, code := row[0], row[1]
		if sector == "" || code == "" {
			continue
		}
		crosswalk[sector] = code
	}
	return crosswalk, nil
}

// loadFactors reads the header-free pollutant-factor table: four leading
// metadata rows, then fixed column order (year, region, sector, pollutant,
// scenario tag, factor). Rows keep only when tagged with the baseline
// scenario and when the sector joins through the crosswalk. Values divide by
// annualHours so they land on a per-energy-unit basis.
func loadFactors(path, baselineTag string, crosswalk map[string]string, annualHours float64) (*PollutantSeries, error) {
	rows, err := readTable(path, "emission factors",
		tabular.WithComma(','),
		tabular.WithSkipRows(4),
		tabular.WithMinFields(6),
		tabular.WithTrimSpace(),
	)
	if err != nil {
		return nil, err
	}

	type entry struct {
		pollutant, sector, region string
		year                      int
		factor                    float64
	}
	var entries []entry
	var pollutants, sectors, regions []string
	var years []int
	seenPol := make(map[string]struct{})
	seenSector := make(map[string]struct{})
	seenRegion := make(map[string]struct{})
	seenYear := make(map[int]struct{})
	for _, row := range rows {
		if row[4] != baselineTag {
			continue
		}
		sector := row[2]
		if _, ok := crosswalk[sector]; !ok {
			continue
		}
		year, err := strconv.Atoi(row[0])
		if err != nil {
			continue
		}
		factor, err := strconv.ParseFloat(row[5], 64)
		if err != nil {
			continue
		}
		e := entry{
			pollutant: row[3],
			sector:    sector,
			region:    row[1],
			year:      year,
			factor:    factor / annualHours,
		}
		entries = append(entries, e)
		if _, ok := seenPol[e.pollutant]; !ok {
			seenPol[e.pollutant] = struct{}{}
			pollutants = append(pollutants, e.pollutant)
		}
		if _, ok := seenSector[e.sector]; !ok {
			seenSector[e.sector] = struct{}{}
			sectors = append(sectors, e.sector)
		}
		if _, ok := seenRegion[e.region]; !ok {
			seenRegion[e.region] = struct{}{}
			regions = append(regions, e.region)
		}
		if _, ok := seenYear[e.year]; !ok {
			seenYear[e.year] = struct{}{}
			years = append(years, e.year)
		}
	}
	sort.Ints(years)

	series := newPollutantSeries(pollutants, sectors, regions, years)
	yearIdx := make(map[int]int, len(years))
	for i, y := range years {
		yearIdx[y] = i
	}
	for _, e := range entries {
		series.set(e.pollutant, e.sector, e.region, yearIdx[e.year], e.factor)
	}
	return series, nil
}

func containsAny(s string, markers []string) bool {
	for _, marker := range markers {
		if strings.Contains(s, marker) {
			return true
		}
	}
	return false
}
