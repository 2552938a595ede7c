package xlgrid

import (
	"fmt"
	"sync"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Rules derive per-cell state from boolean expressions evaluated against a
// cell's environment (see SheetCell.Env). An empty rule leaves the state alone.
//
//	Rules{Disabled: `value == ""`, Selectable: `row > 1`}
type Rules struct {
	Disabled   string `yaml:"disabled"`
	Selectable string `yaml:"selectable"`
}

// IsZero reports whether no rule is set.
func (r Rules) IsZero() bool {
	return r.Disabled == "" && r.Selectable == ""
}

// RuleEvaluator evaluates rule expressions.
type RuleEvaluator interface {
	Eval(rule string, env map[string]any) (bool, error)
}

// exprEvaluator implements RuleEvaluator using expr-lang/expr.
type exprEvaluator struct {
	cache sync.Map // expression string → compiled *vm.Program
}

// NewRuleEvaluator creates a RuleEvaluator backed by expr-lang/expr.
// Compiled programs are cached, so one evaluator can serve many cells.
func NewRuleEvaluator() RuleEvaluator {
	return &exprEvaluator{}
}

func (e *exprEvaluator) Eval(rule string, env map[string]any) (bool, error) {
	program, err := e.compile(rule)
	if err != nil {
		return false, fmt.Errorf("compile rule %q: %w", rule, err)
	}
	result, err := expr.Run(program, env)
	if err != nil {
		return false, fmt.Errorf("evaluate rule %q: %w", rule, err)
	}
	if result == nil {
		return false, nil
	}
	b, ok := result.(bool)
	if !ok {
		return false, fmt.Errorf("rule %q evaluated to %T, expected bool", rule, result)
	}
	return b, nil
}

func (e *exprEvaluator) compile(rule string) (*vm.Program, error) {
	if cached, ok := e.cache.Load(rule); ok {
		return cached.(*vm.Program), nil
	}
	program, err := expr.Compile(rule, expr.AllowUndefinedVariables())
	if err != nil {
		return nil, err
	}
	e.cache.Store(rule, program)
	return program, nil
}

// applyRules sets Disabled and Locked on every cell from the rules.
func applyRules(ev RuleEvaluator, r Rules, cells []*SheetCell) error {
	if r.IsZero() {
		return nil
	}
	for _, c := range cells {
		env := c.Env()
		if r.Disabled != "" {
			off, err := ev.Eval(r.Disabled, env)
			if err != nil {
				return fmt.Errorf("cell %s: %w", c.Ref, err)
			}
			c.IsOff = off
		}
		if r.Selectable != "" {
			ok, err := ev.Eval(r.Selectable, env)
			if err != nil {
				return fmt.Errorf("cell %s: %w", c.Ref, err)
			}
			c.Locked = !ok
		}
	}
	return nil
}
