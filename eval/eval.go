package eval

import (
	"fmt"
	"math"

	"github.com/expr-lang/expr"
)

func toFloat(v any) (float64, error) {
	switch x := v.(type) {
	case float64:
		return x, nil
	case float32:
		return float64(x), nil
	case int:
		return float64(x), nil
	case int64:
		return float64(x), nil
	case uint64:
		return float64(x), nil
	default:
		return 0, fmt.Errorf("%v (%T) is not a number", v, v)
	}
}

func floatArgs(name string, n int, params []any) ([]float64, error) {
	if len(params) != n {
		return nil, fmt.Errorf("%s expects %d arguments, got %d", name, n, len(params))
	}
	res := make([]float64, n)
	for i, p := range params {
		f, err := toFloat(p)
		if err != nil {
			return nil, fmt.Errorf("%s argument %d: %w", name, i+1, err)
		}
		res[i] = f
	}
	return res, nil
}

func exprOpts() []expr.Option {
	return []expr.Option{
		// greater(a, b, x, y) is x when a > b and y otherwise.
		expr.Function("greater", func(params ...any) (any, error) {
			args, err := floatArgs("greater", 4, params)
			if err != nil {
				return nil, err
			}
			if args[0] > args[1] {
				return args[2], nil
			}
			return args[3], nil
		}),
		expr.Function("ceiling", func(params ...any) (any, error) {
			args, err := floatArgs("ceiling", 1, params)
			if err != nil {
				return nil, err
			}
			return math.Ceil(args[0]), nil
		}),
	}
}

// Eval evaluates formula with the settings in env.
func Eval(formula string, env map[string]any) (float64, error) {
	opts := append(exprOpts(), expr.Env(env))
	program, err := expr.Compile(formula, opts...)
	if err != nil {
		return 0, fmt.Errorf("could not compile %q: %w", formula, err)
	}
	out, err := expr.Run(program, env)
	if err != nil {
		return 0, fmt.Errorf("could not evaluate %q: %w", formula, err)
	}
	return toFloat(out)
}
