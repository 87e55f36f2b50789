package inventory

import (
	"errors"
	"fmt"
	"strings"
)

// MatchError captures engine metadata alongside the originating error.
type MatchError struct {
	Engine string
	Expr   string
	Err    error
}

func (e *MatchError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("inventory: %s engine %s: %v", e.Engine, describeExpression(e.Expr), e.Err)
}

func (e *MatchError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func describeExpression(expr string) string {
	if expr == "" {
		return "expr=<empty>"
	}
	return fmt.Sprintf("expr=%q", expr)
}

func wrapEngineError(engine string, err error) error {
	if err == nil {
		return nil
	}

	var matchErr *MatchError
	if errors.As(err, &matchErr) {
		return err
	}

	if strings.HasPrefix(err.Error(), "inventory:") {
		return err
	}
	return fmt.Errorf("inventory: %s engine: %w", engine, err)
}

func wrapMatchError(engine, expr string, err error) error {
	if err == nil {
		return nil
	}

	var matchErr *MatchError
	if errors.As(err, &matchErr) {
		if matchErr.Engine == "" {
			matchErr.Engine = engine
		}
		if matchErr.Expr == "" {
			matchErr.Expr = expr
		}
		return matchErr
	}

	return &MatchError{
		Engine: engine,
		Expr:   expr,
		Err:    err,
	}
}
