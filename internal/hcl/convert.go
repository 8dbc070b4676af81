package hcl

import (
	"context"
	"fmt"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/vk/textembed/internal/config"
	"github.com/vk/textembed/internal/ctxlog"
	"github.com/vk/textembed/internal/engine"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// decodeOptions evaluates every attribute of body and converts the values to
// option strings. Null values leave the option unset.
func decodeOptions(ctx context.Context, body hcl.Body, evalCtx *hcl.EvalContext) (engine.RawOptions, error) {
	logger := ctxlog.FromContext(ctx)

	attrs, diags := body.JustAttributes()
	if diags.HasErrors() {
		return nil, diags
	}

	names := make([]string, 0, len(attrs))
	for name := range attrs {
		names = append(names, name)
	}
	sort.Strings(names)

	opts := make(engine.RawOptions, len(attrs))
	for _, name := range names {
		attr := attrs[name]
		val, diags := attr.Expr.Value(evalCtx)
		if diags.HasErrors() {
			return nil, diags
		}
		s, set, err := optionString(val)
		if err != nil {
			return nil, fmt.Errorf("%s: attribute %q: %w", attr.Range.String(), name, err)
		}
		if !set {
			logger.Debug("Attribute is null, leaving option unset.", "attribute", name)
			continue
		}
		opts[config.NormalizeKey(name)] = s
	}
	return opts, nil
}

// optionString converts a primitive cty value into its string form.
func optionString(val cty.Value) (string, bool, error) {
	if val.IsNull() {
		return "", false, nil
	}
	if !val.IsWhollyKnown() {
		return "", false, fmt.Errorf("value is not known")
	}
	if !val.Type().IsPrimitiveType() {
		return "", false, fmt.Errorf("must be a string, number, or bool, got %s", val.Type().FriendlyName())
	}
	str, err := convert.Convert(val, cty.String)
	if err != nil {
		return "", false, fmt.Errorf("cannot convert %s to string: %w", val.Type().FriendlyName(), err)
	}
	return str.AsString(), true, nil
}
