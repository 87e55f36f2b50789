package inventory

import "testing"

func testDatabase() *Database {
	db := NewDatabase()
	db.Add(&Dataset{
		Database: "eidb",
		Code:     "m-de",
		Name:     "market for electricity, high voltage",
		Location: "DE",
		Unit:     "kilowatt hour",
	})
	db.Add(&Dataset{
		Database: "eidb",
		Code:     "m-fr",
		Name:     "market for electricity, high voltage",
		Location: "FR",
		Unit:     "kilowatt hour",
	})
	db.Add(&Dataset{
		Database: "eidb",
		Code:     "m-al",
		Name:     "market for electricity, high voltage, aluminium industry",
		Location: "IAI Area, EU27 & EFTA",
		Unit:     "kilowatt hour",
	})
	db.Add(&Dataset{
		Database: "eidb",
		Code:     "p-coal-de",
		Name:     "electricity production, hard coal",
		Location: "DE",
		Unit:     "kilowatt hour",
	})
	db.Add(&Dataset{
		Database: "eidb",
		Code:     "p-wind-glo",
		Name:     "electricity production, wind, 1-3MW turbine, onshore",
		Location: "GLO",
		Unit:     "kilowatt hour",
	})
	return db
}

func datasetCodes(datasets []*Dataset) []string {
	codes := make([]string, len(datasets))
	for i, ds := range datasets {
		codes[i] = ds.Code
	}
	return codes
}

func TestDatabaseSearch(t *testing.T) {
	db := testDatabase()

	cases := []struct {
		name       string
		predicates []Predicate
		want       []string
	}{
		{
			name:       "equals location",
			predicates: []Predicate{Equals("location", "DE")},
			want:       []string{"m-de", "p-coal-de"},
		},
		{
			name: "contains name narrows equals",
			predicates: []Predicate{
				Contains("name", "market for electricity"),
				Equals("location", "DE"),
			},
			want: []string{"m-de"},
		},
		{
			name: "doesnt contain any excludes submarkets",
			predicates: []Predicate{
				Contains("name", "market for electricity, high voltage"),
				DoesntContainAny("name", "aluminium industry", "internal use in coal mining"),
			},
			want: []string{"m-de", "m-fr"},
		},
		{
			name: "either matches both branches",
			predicates: []Predicate{
				Either(Equals("location", "FR"), Equals("location", "GLO")),
			},
			want: []string{"m-fr", "p-wind-glo"},
		},
		{
			name:       "equals any shorthand",
			predicates: []Predicate{EqualsAny("location", "FR", "GLO")},
			want:       []string{"m-fr", "p-wind-glo"},
		},
		{
			name: "exclude inverts",
			predicates: []Predicate{
				Contains("name", "production"),
				Exclude(Equals("location", "GLO")),
			},
			want: []string{"p-coal-de"},
		},
		{
			name:       "unknown field never matches",
			predicates: []Predicate{Equals("comment", "x")},
			want:       nil,
		},
		{
			name:       "no predicates returns everything",
			predicates: nil,
			want:       []string{"m-de", "m-fr", "m-al", "p-coal-de", "p-wind-glo"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := datasetCodes(db.Search(tc.predicates...))
			if len(got) != len(tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
			for i := range tc.want {
				if got[i] != tc.want[i] {
					t.Fatalf("expected %v, got %v", tc.want, got)
				}
			}
		})
	}
}

func TestFilterExchanges(t *testing.T) {
	exchanges := []Exchange{
		{Name: "electricity, high voltage", Type: TypeProduction, Amount: 1},
		{Name: "electricity production, hard coal", Location: "DE", Type: TypeTechnosphere, Amount: 0.3},
		{Name: "market for sulfur hexafluoride, liquid", Location: "RER", Type: TypeTechnosphere, Amount: 1e-9},
		{Name: "Carbon dioxide, fossil", Type: TypeBiosphere, Amount: 0.02},
	}

	technosphere := FilterExchanges(exchanges, Equals("type", TypeTechnosphere))
	if len(technosphere) != 2 {
		t.Fatalf("expected 2 technosphere exchanges, got %d", len(technosphere))
	}
	if technosphere[0].Name != "electricity production, hard coal" {
		t.Fatalf("order not preserved: %q", technosphere[0].Name)
	}

	kept := FilterExchanges(exchanges,
		Exclude(Equals("type", TypeTechnosphere)),
	)
	if len(kept) != 2 {
		t.Fatalf("expected 2 non-technosphere exchanges, got %d", len(kept))
	}
}

func TestDatasetRef(t *testing.T) {
	ds := NewDataset("eidb", "market for electricity, high voltage", "DE", "kilowatt hour")
	if ds.Code == "" {
		t.Fatal("expected generated code")
	}
	ref := ds.Ref()
	if ref.Database != "eidb" || ref.Code != ds.Code {
		t.Fatalf("unexpected ref %+v", ref)
	}
}

func TestDatabaseDatasetsCopy(t *testing.T) {
	db := testDatabase()
	list := db.Datasets()
	list[0] = nil
	if db.Datasets()[0] == nil {
		t.Fatal("Datasets must copy the slice header")
	}
	if db.Len() != 5 {
		t.Fatalf("expected 5 datasets, got %d", db.Len())
	}
}
