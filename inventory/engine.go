package inventory

// MatchContext carries the inputs an engine needs to evaluate a filter
// expression against one record.
type MatchContext struct {
	Record   map[string]any
	Args     map[string]any
	Metadata map[string]any
}

func (ctx MatchContext) withDefaults() MatchContext {
	if ctx.Record == nil {
		ctx.Record = map[string]any{}
	}
	if ctx.Args == nil {
		ctx.Args = map[string]any{}
	}
	if ctx.Metadata == nil {
		ctx.Metadata = map[string]any{}
	}
	return ctx
}

// Engine evaluates filter expressions against record snapshots.
type Engine interface {
	Evaluate(ctx MatchContext, expr string) (any, error)
	Compile(expr string, opts ...CompileOption) (CompiledFilter, error)
}

// CompiledFilter is a reusable filter program.
type CompiledFilter interface {
	Evaluate(ctx MatchContext) (any, error)
}

// CompileOption configures engine compile behaviour.
type CompileOption interface {
	applyCompileOption(*compileConfig)
}

type compileConfig struct{}

type compileOptionFunc func(*compileConfig)

func (f compileOptionFunc) applyCompileOption(cfg *compileConfig) {
	if f != nil {
		f(cfg)
	}
}

// snapshotFields are the record fields exported into engine environments.
var snapshotFields = []string{"name", "location", "unit", "type", "database", "code"}

// Snapshot flattens a record into the map an engine environment binds.
func Snapshot(r Record) map[string]any {
	out := make(map[string]any, len(snapshotFields))
	for _, field := range snapshotFields {
		if value, ok := r.Field(field); ok {
			out[field] = value
		}
	}
	return out
}

// Where compiles expression once and adapts it into a Predicate. A record
// matches only when the filter evaluates to boolean true; evaluation errors
// count as non-matches.
func Where(engine Engine, expression string) (Predicate, error) {
	if engine == nil {
		engine = NewExprEngine()
	}
	filter, err := engine.Compile(expression)
	if err != nil {
		return nil, err
	}
	return func(r Record) bool {
		result, err := filter.Evaluate(MatchContext{Record: Snapshot(r)})
		if err != nil {
			return false
		}
		matched, ok := result.(bool)
		return ok && matched
	}, nil
}
