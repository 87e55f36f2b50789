package inventory

import (
	"fmt"

	celgo "github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/types"
	"github.com/google/cel-go/common/types/ref"
)

// CELEngineOption configures the CEL engine.
type CELEngineOption func(*celEngine)

// CELWithProgramCache wires a ProgramCache into the CEL engine.
func CELWithProgramCache(cache ProgramCache) CELEngineOption {
	return func(e *celEngine) {
		e.cache = cache
	}
}

// CELWithFunctionRegistry wires a FunctionRegistry into the CEL engine.
func CELWithFunctionRegistry(registry *FunctionRegistry) CELEngineOption {
	return func(e *celEngine) {
		if registry == nil {
			return
		}
		e.registry = registry.Clone()
	}
}

type celProgram struct {
	env     *celgo.Env
	program celgo.Program
}

type celEngine struct {
	cache    ProgramCache
	registry *FunctionRegistry
}

// NewCELEngine constructs an Engine backed by cel-go.
func NewCELEngine(opts ...CELEngineOption) Engine {
	e := &celEngine{}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	return e
}

func (e *celEngine) Evaluate(ctx MatchContext, expression string) (any, error) {
	if expression == "" {
		return nil, wrapEngineError("cel", fmt.Errorf("expression must not be empty"))
	}
	ctx = ctx.withDefaults()
	program, err := e.loadOrCompile(expression, ctx.Record)
	if err != nil {
		return nil, wrapMatchError("cel", expression, err)
	}
	out, _, err := program.program.Eval(e.activation(ctx))
	if err != nil {
		return nil, wrapMatchError("cel", expression, err)
	}
	return out.Value(), nil
}

func (e *celEngine) Compile(expression string, _ ...CompileOption) (CompiledFilter, error) {
	if expression == "" {
		return nil, wrapEngineError("cel", fmt.Errorf("expression must not be empty"))
	}
	return &celCompiledFilter{
		engine:     e,
		expression: expression,
	}, nil
}

func (e *celEngine) loadOrCompile(expression string, record map[string]any) (*celProgram, error) {
	if record == nil {
		record = map[string]any{}
	}
	if e.cache != nil {
		if cached, ok := e.cache.Get(expression); ok {
			if program, ok := cached.(*celProgram); ok {
				return program, nil
			}
		}
	}

	env, err := e.buildEnv(record)
	if err != nil {
		return nil, err
	}
	ast, issues := env.Parse(expression)
	if issues != nil && issues.Err() != nil {
		return nil, issues.Err()
	}
	checked, issues := env.Check(ast)
	if issues != nil && issues.Err() != nil {
		return nil, issues.Err()
	}
	prg, err := env.Program(checked)
	if err != nil {
		return nil, err
	}

	bundle := &celProgram{
		env:     env,
		program: prg,
	}
	if e.cache != nil {
		e.cache.Set(expression, bundle)
	}
	return bundle, nil
}

func (e *celEngine) buildEnv(record map[string]any) (*celgo.Env, error) {
	opts := []celgo.EnvOption{
		celgo.Variable("args", celgo.DynType),
		celgo.Variable("metadata", celgo.DynType),
	}
	if e.registry != nil {
		binding := e.callBinding()
		opts = append(opts, celgo.Function("call", celgo.Overload(
			"call_dyn",
			[]*celgo.Type{celgo.StringType},
			celgo.DynType,
			celgo.FunctionBinding(func(values ...ref.Val) ref.Val {
				return binding(values)
			}),
		)))
	}
	// The filter fields are stable, so declare every snapshot field even
	// when the record omits one.
	declared := map[string]bool{}
	for _, field := range snapshotFields {
		opts = append(opts, celgo.Variable(field, celgo.DynType))
		declared[field] = true
	}
	for key := range record {
		if !declared[key] {
			opts = append(opts, celgo.Variable(key, celgo.DynType))
		}
	}
	return celgo.NewEnv(opts...)
}

func (e *celEngine) activation(ctx MatchContext) map[string]any {
	activation := map[string]any{
		"args":     ctx.Args,
		"metadata": ctx.Metadata,
	}
	for _, field := range snapshotFields {
		activation[field] = ""
	}
	for key, value := range ctx.Record {
		activation[key] = value
	}
	if e.registry != nil {
		activation["call"] = func(name string, arguments ...any) (any, error) {
			return e.registry.Call(name, arguments...)
		}
	}
	return activation
}

type celCompiledFilter struct {
	engine     *celEngine
	expression string
}

func (f *celCompiledFilter) Evaluate(ctx MatchContext) (any, error) {
	if f.engine == nil {
		return nil, wrapEngineError("cel", fmt.Errorf("compiled filter missing engine"))
	}
	ctx = ctx.withDefaults()
	program, err := f.engine.loadOrCompile(f.expression, ctx.Record)
	if err != nil {
		return nil, wrapMatchError("cel", f.expression, err)
	}
	out, _, err := program.program.Eval(f.engine.activation(ctx))
	if err != nil {
		return nil, wrapMatchError("cel", f.expression, err)
	}
	return out.Value(), nil
}

func (e *celEngine) callBinding() func([]ref.Val) ref.Val {
	return func(values []ref.Val) ref.Val {
		if e.registry == nil {
			return types.NewErr("inventory: function registry not configured")
		}
		if len(values) == 0 {
			return types.NewErr("inventory: call requires function name")
		}
		name, ok := values[0].Value().(string)
		if !ok {
			return types.NewErr("inventory: call name must be string")
		}
		args := make([]any, 0, len(values)-1)
		for _, val := range values[1:] {
			args = append(args, val.Value())
		}
		result, err := e.registry.Call(name, args...)
		if err != nil {
			return types.NewErr(err.Error())
		}
		if result == nil {
			return types.NullValue
		}
		return types.DefaultTypeAdapter.NativeToValue(result)
	}
}
