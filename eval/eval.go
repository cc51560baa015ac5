// Package eval evaluates expr-lang expressions against converted values.
//
// The environment holds the value as root and, when it is a dictionary,
// each of its top level entries under its own name:
//
//	eval.Eval(`hp > 50 && "boss" in tags`, v)
//	eval.Eval(`getpath("$.stats.speed") * 2`, v)
//
// # Related Packages
//
//   - github.com/uyjulian/psbfile/value - the values evaluated against
package eval

import (
	"fmt"
	"os"

	"github.com/expr-lang/expr"
	"github.com/uyjulian/psbfile/debug"
	"github.com/uyjulian/psbfile/value"
)

const rootName = "root"

// Env returns the expression environment for root.
func Env(root *value.Value) map[string]any {
	env := map[string]any{}
	if root != nil && root.Kind == value.DictKind {
		for i, f := range root.Fields {
			env[f] = root.Values[i].Native()
		}
	}
	env[rootName] = root.Native()
	return env
}

// Eval compiles and runs expression with the environment of root and
// returns its result as a value.
func Eval(expression string, root *value.Value) (*value.Value, error) {
	if debug.Eval() {
		debug.Logf("eval %q\n", expression)
	}
	env := Env(root)
	prg, err := expr.Compile(expression, append([]expr.Option{expr.Env(env)}, exprOpts(root)...)...)
	if err != nil {
		return nil, err
	}
	res, err := expr.Run(prg, env)
	if err != nil {
		return nil, err
	}
	v, err := value.FromNative(res)
	if err != nil {
		return nil, fmt.Errorf("expression %q: %w", expression, err)
	}
	return v, nil
}

func exprOpts(root *value.Value) []expr.Option {
	return []expr.Option{
		expr.AllowUndefinedVariables(),
		expr.Function("getpath", func(params ...any) (any, error) {
			path := params[0].(string)
			res, err := root.GetPath(path)
			if err != nil {
				return nil, err
			}
			return res.Native(), nil
		},
			new(func(string) any)),
		expr.Function("kind", func(params ...any) (any, error) {
			path := params[0].(string)
			res, err := root.GetPath(path)
			if err != nil {
				return nil, err
			}
			if res == nil {
				return nil, nil
			}
			return res.Kind.String(), nil
		},
			new(func(string) any)),
		expr.Function("getenv", func(params ...any) (any, error) {
			return os.Getenv(params[0].(string)), nil
		},
			new(func(string) string)),
	}
}
