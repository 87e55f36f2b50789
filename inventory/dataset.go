// Package inventory models life-cycle-inventory market datasets and provides
// the predicate-matching search used to locate supplying records. Structural
// predicates (Equals, Contains, Either, Exclude) cover the common filters;
// expression engines allow free-form filters against record snapshots.
package inventory

import "github.com/google/uuid"

// Ref identifies a dataset within a database.
type Ref struct {
	Database string `json:"database"`
	Code     string `json:"code"`
}

// Exchange is one input or output row of a dataset.
type Exchange struct {
	Name     string  `json:"name"`
	Location string  `json:"location,omitempty"`
	Unit     string  `json:"unit"`
	Amount   float64 `json:"amount"`
	Type     string  `json:"type"`
	Input    Ref     `json:"input,omitempty"`
}

// Exchange types.
const (
	TypeTechnosphere = "technosphere"
	TypeBiosphere    = "biosphere"
	TypeProduction   = "production"
)

// Dataset is one inventory record, e.g. an electricity market or a power
// plant activity. Datasets are read from the external database and mutated
// in place by the reconstructor (exchange list replaced); persistence stays
// with the caller.
type Dataset struct {
	Database  string     `json:"database"`
	Code      string     `json:"code"`
	Name      string     `json:"name"`
	Location  string     `json:"location"`
	Unit      string     `json:"unit"`
	Exchanges []Exchange `json:"exchanges"`
}

// NewDataset builds a dataset, assigning a fresh code when none is given.
func NewDataset(database, name, location, unit string) *Dataset {
	return &Dataset{
		Database: database,
		Code:     uuid.NewString(),
		Name:     name,
		Location: location,
		Unit:     unit,
	}
}

// Ref returns the dataset's database-scoped identifier.
func (d *Dataset) Ref() Ref {
	return Ref{Database: d.Database, Code: d.Code}
}

// Field implements Record for dataset-level predicates.
func (d *Dataset) Field(name string) (string, bool) {
	switch name {
	case "name":
		return d.Name, true
	case "location":
		return d.Location, true
	case "unit":
		return d.Unit, true
	case "database":
		return d.Database, true
	case "code":
		return d.Code, true
	}
	return "", false
}

// Field implements Record for exchange-level predicates.
func (e Exchange) Field(name string) (string, bool) {
	switch name {
	case "name":
		return e.Name, true
	case "location":
		return e.Location, true
	case "unit":
		return e.Unit, true
	case "type":
		return e.Type, true
	}
	return "", false
}

// Database is an in-memory dataset collection implementing Searcher.
type Database struct {
	datasets []*Dataset
}

// NewDatabase wraps datasets without copying; the caller retains ownership
// of the records and of any mutation performed on them.
func NewDatabase(datasets ...*Dataset) *Database {
	return &Database{datasets: datasets}
}

// Add appends a dataset.
func (db *Database) Add(ds *Dataset) {
	db.datasets = append(db.datasets, ds)
}

// Len reports the number of datasets.
func (db *Database) Len() int {
	return len(db.datasets)
}

// Datasets returns the underlying records in insertion order.
func (db *Database) Datasets() []*Dataset {
	out := make([]*Dataset, len(db.datasets))
	copy(out, db.datasets)
	return out
}

// Search returns every dataset matching all predicates, in insertion order.
func (db *Database) Search(predicates ...Predicate) []*Dataset {
	var out []*Dataset
	for _, ds := range db.datasets {
		if matchAll(ds, predicates) {
			out = append(out, ds)
		}
	}
	return out
}

// Searcher is the read-only query contract the reconstructor consumes.
type Searcher interface {
	Search(predicates ...Predicate) []*Dataset
}
