package job

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// UnknownKeyError is returned by Set for a key that names no attribute.
type UnknownKeyError struct {
	Key string
}

func (e *UnknownKeyError) Error() string {
	return fmt.Sprintf("unknown job attribute %q (known: %v)", e.Key, Keys())
}

// Keys lists every attribute name accepted by Set, sorted.
func Keys() []string {
	keys := make([]string, 0, len(setters))
	for k := range setters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// AttributeType returns the cty type Set converts a value for key to.
func AttributeType(key string) (cty.Type, bool) {
	ty, ok := attributeTypes[key]
	return ty, ok
}

var attributeTypes = map[string]cty.Type{
	"queue_type":     cty.String,
	"script_path":    cty.String,
	"command_list":   cty.List(cty.String),
	"job_name":       cty.String,
	"out":            cty.String,
	"err":            cty.String,
	"wait_for":       cty.List(cty.String),
	"wait_for_array": cty.List(cty.String),
	"walltime":       cty.String,
	"nodes":          cty.Number,
	"ppn":            cty.Number,
	"account":        cty.String,
	"queue":          cty.String,
}

type setter func(d *Descriptor, val cty.Value) error

var setters = map[string]setter{
	"queue_type": func(d *Descriptor, val cty.Value) error {
		var s string
		if err := decode(val, &s); err != nil {
			return err
		}
		d.QueueType = QueueType(s)
		return nil
	},
	"script_path":  field(func(d *Descriptor) any { return &d.ScriptPath }),
	"command_list": field(func(d *Descriptor) any { return &d.Commands }),
	"job_name":     field(func(d *Descriptor) any { return &d.Name }),
	"out":          field(func(d *Descriptor) any { return &d.Stdout }),
	"err":          field(func(d *Descriptor) any { return &d.Stderr }),
	"wait_for":     field(func(d *Descriptor) any { return &d.WaitFor }),
	"wait_for_array": func(d *Descriptor, val cty.Value) error {
		var specs []string
		if err := decode(val, &specs); err != nil {
			return err
		}
		deps := make([]ArrayDependency, 0, len(specs))
		for _, s := range specs {
			dep, err := ParseArrayDependency(s)
			if err != nil {
				return err
			}
			deps = append(deps, dep)
		}
		d.WaitForArray = deps
		return nil
	},
	"walltime": field(func(d *Descriptor) any { return &d.Walltime }),
	"nodes":    field(func(d *Descriptor) any { return &d.Nodes }),
	"ppn":      field(func(d *Descriptor) any { return &d.PPN }),
	"account":  field(func(d *Descriptor) any { return &d.Account }),
	"queue":    field(func(d *Descriptor) any { return &d.Queue }),
}

func field(ptr func(d *Descriptor) any) setter {
	return func(d *Descriptor, val cty.Value) error {
		return decode(val, ptr(d))
	}
}

// Set stores one attribute by its key, overwriting any previous value.
// value may be a native Go value or a cty.Value; it is converted to the
// attribute's type, so "4" is accepted for "nodes". Unknown keys return an
// *UnknownKeyError.
func (d *Descriptor) Set(key string, value any) error {
	set, ok := setters[key]
	if !ok {
		return &UnknownKeyError{Key: key}
	}
	val, err := toCtyValue(value)
	if err != nil {
		return fmt.Errorf("job attribute %q: %w", key, err)
	}
	if err := set(d, val); err != nil {
		return fmt.Errorf("job attribute %q: %w", key, err)
	}
	return nil
}

func toCtyValue(v any) (cty.Value, error) {
	if val, ok := v.(cty.Value); ok {
		return val, nil
	}
	if v == nil {
		return cty.NilVal, fmt.Errorf("value must not be nil")
	}
	ty, err := gocty.ImpliedType(v)
	if err != nil {
		return cty.NilVal, fmt.Errorf("unable to infer cty.Type for %T: %w", v, err)
	}
	return gocty.ToCtyValue(v, ty)
}

// decode converts val to the type implied by target and stores it there.
func decode(val cty.Value, target any) error {
	if val.IsNull() {
		return fmt.Errorf("value must not be null")
	}
	ty, err := gocty.ImpliedType(reflect.ValueOf(target).Elem().Interface())
	if err != nil {
		return err
	}
	converted, err := convert.Convert(val, ty)
	if err != nil {
		return fmt.Errorf("cannot convert %s to %s: %w", val.Type().FriendlyName(), ty.FriendlyName(), err)
	}
	return gocty.FromCtyValue(converted, target)
}
