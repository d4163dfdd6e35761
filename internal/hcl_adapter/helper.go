package hcl_adapter

import (
	"context"
	"errors"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/needle-mirror/com.unity.platforms.web/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/function"
)

// isExprDefined checks if an HCL expression was actually present in the
// source. The decoder populates omitted optional expression fields with
// zero-width placeholder expressions, so a nil check is not enough.
func isExprDefined(ctx context.Context, expr hcl.Expression, attrName string) bool {
	logger := ctxlog.FromContext(ctx)

	if expr == nil {
		logger.Debug("Expression is nil, considering it undefined.", "attribute", attrName)
		return false
	}

	exprRange := expr.Range()
	isDefined := exprRange.End.Byte > exprRange.Start.Byte

	logger.Debug("Checking if HCL attribute was explicitly defined.",
		"attribute", attrName,
		"hcl_range", exprRange.String(),
		"is_defined", isDefined,
	)

	return isDefined
}

// functions returns the functions available to configuration expressions.
func functions(getenv func(string) string) map[string]function.Function {
	return map[string]function.Function{
		"env": envFunction(getenv),
	}
}

// envFunction implements env(name) and env(name, default).
func envFunction(getenv func(string) string) function.Function {
	return function.New(&function.Spec{
		Description: "Returns the value of an environment variable, or the optional default when unset.",
		Params: []function.Parameter{
			{Name: "name", Type: cty.String},
		},
		VarParam: &function.Parameter{Name: "default", Type: cty.String},
		Type:     function.StaticReturnType(cty.String),
		Impl: func(args []cty.Value, retType cty.Type) (cty.Value, error) {
			if len(args) > 2 {
				return cty.NilVal, errors.New("env takes at most one default value")
			}
			v := getenv(args[0].AsString())
			if v == "" && len(args) == 2 {
				v = args[1].AsString()
			}
			return cty.StringVal(v), nil
		},
	})
}

// linkerSettingsFromValue accepts either a list of "KEY=VALUE" strings or an
// object whose attributes are settings. Object values are rendered the way
// emcc expects: booleans as 1/0, everything else through string conversion.
func linkerSettingsFromValue(val cty.Value) ([]string, error) {
	if val.IsNull() {
		return nil, nil
	}
	if !val.IsWhollyKnown() {
		return nil, errors.New("value must be known at load time")
	}

	ty := val.Type()
	var out []string
	switch {
	case ty.IsListType() || ty.IsTupleType() || ty.IsSetType():
		for it := val.ElementIterator(); it.Next(); {
			_, ev := it.Element()
			s, err := settingString(ev)
			if err != nil {
				return nil, err
			}
			out = append(out, s)
		}
	case ty.IsObjectType() || ty.IsMapType():
		for it := val.ElementIterator(); it.Next(); {
			k, ev := it.Element()
			s, err := settingString(ev)
			if err != nil {
				return nil, fmt.Errorf("setting %s: %w", k.AsString(), err)
			}
			out = append(out, k.AsString()+"="+s)
		}
	default:
		return nil, fmt.Errorf("expected a list of KEY=VALUE strings or an object, got %s", ty.FriendlyName())
	}
	return out, nil
}

func settingString(v cty.Value) (string, error) {
	if v.IsNull() {
		return "", errors.New("value must not be null")
	}
	if v.Type() == cty.Bool {
		if v.True() {
			return "1", nil
		}
		return "0", nil
	}
	s, err := convert.Convert(v, cty.String)
	if err != nil {
		return "", err
	}
	return s.AsString(), nil
}
