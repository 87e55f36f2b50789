package scenario

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

const outputFixture = `Model;Scenario;Region;Variable;Unit;2010;2020;2030
remind;base;EUR;SE|Coal;EJ/yr;30;10;5
remind;base;EUR;SE|Wind;EJ/yr;70;90;95
remind;base;EUR;GDP|PPP;billion;100;110;120
remind;base;ASIA;SE|Coal;EJ/yr;80;60;40
remind;base;ASIA;SE|Wind;EJ/yr;20;40;60
remind;base;EUR;Tech|Coal|Efficiency;%;38;42;45
`

const marketLabelsFixture = `seel.coal;SE|Coal
seel.wind;SE|Wind

malformed row without delimiter comes out short
`

const efficiencyLabelsFixture = `eff.coal;Tech|Coal|Efficiency
`

const emissionLabelsFixture = `em.coal;SE|Coal
`

const crosswalkFixture = `GAINS,REMIND,noef,elasticity
power_plants,seel.coal,0,1
transport,seel.wind,0,1
`

const factorsFixture = `emission factors export
source: integrated assessment
units: Mt per year
generated for reference
2010,EUR,power_plants,NOx,SSP2,8760
2030,EUR,power_plants,NOx,SSP2,26280
2010,EUR,power_plants,NOx,SSP1,99999
2010,EUR,unmapped_sector,NOx,SSP2,8760
2010,EUR,transport,SO2,SSP2,4380
2030,EUR,transport,SO2,SSP2,4380
`

func writeFixtures(t *testing.T) Config {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"output.mif":       outputFixture,
		"markets.csv":      marketLabelsFixture,
		"efficiencies.csv": efficiencyLabelsFixture,
		"emissions.csv":    emissionLabelsFixture,
		"crosswalk.csv":    crosswalkFixture,
		"factors.csv":      factorsFixture,
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	return Config{
		OutputPath:           filepath.Join(dir, "output.mif"),
		FactorsPath:          filepath.Join(dir, "factors.csv"),
		CrosswalkPath:        filepath.Join(dir, "crosswalk.csv"),
		MarketLabelsPath:     filepath.Join(dir, "markets.csv"),
		EfficiencyLabelsPath: filepath.Join(dir, "efficiencies.csv"),
		EmissionLabelsPath:   filepath.Join(dir, "emissions.csv"),
	}
}

func TestLoadFiltersVariables(t *testing.T) {
	store, err := Load(writeFixtures(t))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	variables := store.Data().Variables()
	for _, v := range variables {
		if v == "GDP|PPP" {
			t.Fatal("marker filter failed: GDP row kept")
		}
	}
	if len(variables) != 3 {
		t.Fatalf("expected 3 variables, got %v", variables)
	}
	if got := store.Data().Regions(); !reflect.DeepEqual(got, []string{"EUR", "ASIA"}) {
		t.Fatalf("regions = %v", got)
	}
	if got := store.Data().Years(); !reflect.DeepEqual(got, []int{2010, 2020, 2030}) {
		t.Fatalf("years = %v", got)
	}
}

func TestLoadedMix(t *testing.T) {
	store, err := Load(writeFixtures(t))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	mix, err := store.TechnologyMix(2010, true)
	if err != nil {
		t.Fatalf("mix: %v", err)
	}
	if got := mix["EUR"]["SE|Coal"]; math.Abs(got-0.3) > 1e-9 {
		t.Fatalf("expected 0.3, got %g", got)
	}
}

func TestLoadFactorNormalization(t *testing.T) {
	store, err := Load(writeFixtures(t))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	factors, err := store.EmissionFactor(2010)
	if err != nil {
		t.Fatalf("emission factor: %v", err)
	}
	// 8760 per year over 8760 annual hours is 1 per energy unit.
	if got := factors["EUR"]["power_plants"]["NOx"]; math.Abs(got-1.0) > 1e-9 {
		t.Fatalf("expected 1.0, got %g", got)
	}
	if got := factors["EUR"]["transport"]["SO2"]; math.Abs(got-0.5) > 1e-9 {
		t.Fatalf("expected 0.5, got %g", got)
	}
}

func TestLoadFactorFilters(t *testing.T) {
	store, err := Load(writeFixtures(t))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	sectors := store.Factors().Sectors()
	for _, sector := range sectors {
		if sector == "unmapped_sector" {
			t.Fatal("crosswalk join failed: unmapped sector kept")
		}
	}
	if len(sectors) != 2 {
		t.Fatalf("expected 2 sectors, got %v", sectors)
	}
	// The SSP1 row must not leak into the SSP2 baseline.
	if got := store.Factors().Years(); !reflect.DeepEqual(got, []int{2010, 2030}) {
		t.Fatalf("expected years [2010 2030], got %v", got)
	}
}

func TestLoadLabelSkipsMalformedRows(t *testing.T) {
	store, err := Load(writeFixtures(t))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := store.Labels().Market.Len(); got != 2 {
		t.Fatalf("expected 2 market labels, got %d", got)
	}
}

func TestLoadMissingFiles(t *testing.T) {
	base := writeFixtures(t)
	cases := []struct {
		name   string
		mutate func(*Config)
		label  string
	}{
		{name: "output", mutate: func(c *Config) { c.OutputPath += ".absent" }, label: "scenario output"},
		{name: "factors", mutate: func(c *Config) { c.FactorsPath += ".absent" }, label: "emission factors"},
		{name: "crosswalk", mutate: func(c *Config) { c.CrosswalkPath += ".absent" }, label: "sector crosswalk"},
		{name: "market labels", mutate: func(c *Config) { c.MarketLabelsPath += ".absent" }, label: "market technology labels"},
		{name: "efficiency labels", mutate: func(c *Config) { c.EfficiencyLabelsPath += ".absent" }, label: "efficiency technology labels"},
		{name: "emission labels", mutate: func(c *Config) { c.EmissionLabelsPath += ".absent" }, label: "emission technology labels"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := base
			tc.mutate(&cfg)
			_, err := Load(cfg)
			if !errors.Is(err, ErrMissingFile) {
				t.Fatalf("expected ErrMissingFile, got %v", err)
			}
			if !strings.Contains(err.Error(), tc.label) {
				t.Fatalf("error %q does not name the %s file", err.Error(), tc.label)
			}
		})
	}
}

func TestLoadRejectsUnsortedYears(t *testing.T) {
	cfg := writeFixtures(t)
	bad := strings.Replace(outputFixture, "2010;2020;2030", "2020;2010;2030", 1)
	if err := os.WriteFile(cfg.OutputPath, []byte(bad), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(cfg); err == nil || !strings.Contains(err.Error(), "strictly increasing") {
		t.Fatalf("expected strictly-increasing error, got %v", err)
	}
}
