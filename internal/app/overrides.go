package app

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/vk/qsubmit/internal/job"
	"github.com/zclconf/go-cty/cty"
)

// override is one parsed key=value assignment. raw keeps the text after the
// '=' untouched; value is its HCL literal reading.
type override struct {
	key   string
	raw   string
	value cty.Value
}

// parseOverride reads the value side as an HCL literal so that numbers and
// lists can be given on the command line, e.g. nodes=2 or
// wait_for=["10","11"]. Anything that is not a self-contained literal is
// taken verbatim as a string.
func parseOverride(s string) (override, error) {
	key, raw, err := splitOverride(s)
	if err != nil {
		return override{}, err
	}
	return override{key: key, raw: raw, value: literal(raw)}, nil
}

func literal(raw string) cty.Value {
	expr, diags := hclsyntax.ParseExpression([]byte(raw), "override", hcl.InitialPos)
	if diags.HasErrors() || len(expr.Variables()) > 0 {
		return cty.StringVal(raw)
	}
	val, diags := expr.Value(nil)
	if diags.HasErrors() || !val.IsWhollyKnown() || val.IsNull() {
		return cty.StringVal(raw)
	}
	return val
}

// target picks the value handed to Descriptor.Set. Bare numbers and bools
// only keep their literal reading for number attributes; string and list
// attributes get the raw text, so account=007 stays "007". A single string
// given for a list attribute becomes a one-element list.
func (o override) target() cty.Value {
	ty, ok := job.AttributeType(o.key)
	if !ok {
		return o.value
	}
	vt := o.value.Type()
	if vt == cty.Number || vt == cty.Bool {
		if ty == cty.Number {
			return o.value
		}
		str := cty.StringVal(o.raw)
		if ty.IsListType() {
			return cty.ListVal([]cty.Value{str})
		}
		return str
	}
	if vt == cty.String && ty.IsListType() {
		return cty.ListVal([]cty.Value{o.value})
	}
	return o.value
}

// applyOverrides sets each override on d, in order.
func applyOverrides(d *job.Descriptor, overrides []override) error {
	for _, o := range overrides {
		if err := d.Set(o.key, o.target()); err != nil {
			return fmt.Errorf("override %q: %w", o.key, err)
		}
	}
	return nil
}
