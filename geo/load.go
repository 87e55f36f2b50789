package geo

import (
	"errors"
	"fmt"
	"os"

	"github.com/goliatone/go-gridmix/internal/tabular"
)

// ErrMissingFile indicates a required input file could not be located.
var ErrMissingFile = errors.New("geo: file could not be found")

// defaultExclusions lists fine codes known to belong to more than one
// macro-region; keeping them would make the inverse map ambiguous.
var defaultExclusions = []string{"CC", "CX", "GG", "JE", "BL", "MA"}

// defaultRenames covers inventory locations renamed between database
// releases.
var defaultRenames = map[string]string{
	"CSG":  "CN-CSG",
	"SGCC": "CN-SGCC",
}

// Option configures hierarchy loading.
type Option func(*loadConfig)

type loadConfig struct {
	exclusions []string
	renames    map[string]string
}

// WithExclusions replaces the built-in ambiguous-code exclusion list.
func WithExclusions(codes ...string) Option {
	return func(cfg *loadConfig) {
		cfg.exclusions = append([]string(nil), codes...)
	}
}

// WithRenames replaces the built-in location rename dictionary. The map is
// copied so the Hierarchy stays immutable if the caller mutates theirs.
func WithRenames(renames map[string]string) Option {
	return func(cfg *loadConfig) {
		cfg.renames = make(map[string]string, len(renames))
		for from, to := range renames {
			cfg.renames[from] = to
		}
	}
}

func applyLoadOptions(opts []Option) loadConfig {
	cfg := loadConfig{
		exclusions: defaultExclusions,
		renames:    defaultRenames,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// Load reads a region-equivalence table: ';'-delimited, one header row, at
// least three columns of which only the second (fine code) and third
// (macro-region) are consumed. Rows that are too short are skipped silently;
// fine codes on the exclusion list are dropped intentionally.
func Load(path string, opts ...Option) (*Hierarchy, error) {
	cfg := applyLoadOptions(opts)

	rows, err := tabular.ReadRows(path,
		tabular.WithSkipRows(1),
		tabular.WithMinFields(3),
		tabular.WithTrimSpace(),
	)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: the region mapping file %q", ErrMissingFile, path)
		}
		return nil, fmt.Errorf("geo: read region mapping %q: %w", path, err)
	}

	excluded := make(map[string]struct{}, len(cfg.exclusions))
	for _, code := range cfg.exclusions {
		excluded[code] = struct{}{}
	}

	h := &Hierarchy{
		contains:    make(map[string][]string),
		containedBy: make(map[string]string),
		renames:     cfg.renames,
	}
	for _, row := range rows {
		fine, region := row[1], row[2]
		if fine == "" || region == "" {
			continue
		}
		if _, ok := excluded[fine]; ok {
			continue
		}
		if _, ok := h.containedBy[fine]; ok {
			continue
		}
		if _, ok := h.contains[region]; !ok {
			h.macros = append(h.macros, region)
		}
		h.contains[region] = append(h.contains[region], fine)
		h.containedBy[fine] = region
	}
	return h, nil
}
