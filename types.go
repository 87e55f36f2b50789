package gridmix

import (
	"github.com/goliatone/go-gridmix/pkg/activity"
)

// DefaultEnergyUnit is the unit every rebuilt supply exchange must carry.
const DefaultEnergyUnit = "kilowatt hour"

// DefaultTolerance bounds the acceptable drift between the sum of rebuilt
// exchange amounts and one.
const DefaultTolerance = 1e-9

type config struct {
	energyUnit string
	tolerance  float64
	logger     DiagnosticLogger
	hooks      activity.Hooks
	suppliers  map[string][]string
}

// Option configures a Reconstructor.
type Option func(*config)

func newConfig(opts ...Option) config {
	cfg := config{
		energyUnit: DefaultEnergyUnit,
		tolerance:  DefaultTolerance,
		logger:     noopDiagnosticLogger{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// WithEnergyUnit overrides the expected exchange unit.
func WithEnergyUnit(unit string) Option {
	return func(cfg *config) {
		if unit != "" {
			cfg.energyUnit = unit
		}
	}
}

// WithTolerance overrides the share-sum tolerance.
func WithTolerance(tolerance float64) Option {
	return func(cfg *config) {
		if tolerance > 0 {
			cfg.tolerance = tolerance
		}
	}
}

// WithDiagnosticLogger attaches a diagnostic logger.
func WithDiagnosticLogger(logger DiagnosticLogger) Option {
	return func(cfg *config) {
		if logger == nil {
			cfg.logger = noopDiagnosticLogger{}
			return
		}
		cfg.logger = logger
	}
}

// WithActivityHooks attaches hooks notified of market lifecycle events.
func WithActivityHooks(hooks ...activity.Hook) Option {
	return func(cfg *config) {
		for _, hook := range hooks {
			if hook != nil {
				cfg.hooks = append(cfg.hooks, hook)
			}
		}
	}
}

// WithSupplierNames maps a scenario technology code to the inventory dataset
// names that can supply it. Technologies without an entry are never resolved.
func WithSupplierNames(suppliers map[string][]string) Option {
	return func(cfg *config) {
		if len(suppliers) == 0 {
			return
		}
		if cfg.suppliers == nil {
			cfg.suppliers = make(map[string][]string, len(suppliers))
		}
		for code, names := range suppliers {
			cfg.suppliers[code] = append([]string(nil), names...)
		}
	}
}
