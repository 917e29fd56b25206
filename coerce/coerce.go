/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package coerce implements the recursive coercion engine. Simple targets
// run an ordered strategy chain; container targets shape the input first
// and then coerce elements against their constraints; union targets try
// alternatives in declaration order and take the first success.
package coerce

import (
	"errors"
	"fmt"
	"reflect"

	"go.uber.org/multierr"

	"dirpx.dev/typex/apis"
	"dirpx.dev/typex/descriptor"
	"dirpx.dev/typex/diag"
	uref "dirpx.dev/typex/utils/reflect"
)

var (
	// ErrMaxDepth is returned when a coercion recurses past Config.MaxDepth.
	ErrMaxDepth = errors.New("coerce: max recursion depth exceeded")
	// ErrAbsent is returned when a non-nil value meets an absence-only target.
	ErrAbsent = errors.New("coerce: target accepts only the absent value")
)

// New creates a Coercer running the given strategy chain for simple
// targets, in order. Container and union targets are handled by the
// engine itself.
func New(strats ...apis.Strategy) apis.Coercer {
	chain := make([]apis.Strategy, len(strats))
	copy(chain, strats)
	return &engine{strats: chain}
}

type engine struct {
	strats []apis.Strategy
}

// Ensure engine implements apis.Coercer.
var _ apis.Coercer = (*engine)(nil)

func (e *engine) Coerce(v any, d descriptor.Descriptor, cfg apis.Config) (any, error) {
	return e.coerce(v, d, cfg, 0)
}

func (e *engine) coerce(v any, d descriptor.Descriptor, cfg apis.Config, depth int) (any, error) {
	if cfg.MaxDepth > 0 && depth > cfg.MaxDepth {
		return nil, ErrMaxDepth
	}

	switch d.Kind() {
	case descriptor.None:
		if uref.IsNil(v) {
			return nil, nil
		}
		return nil, e.fail(v, d, cfg, ErrAbsent)

	case descriptor.Simple:
		return e.coerceSimple(v, d, cfg)

	case descriptor.Sequence:
		return e.coerceSequence(v, d, cfg, depth)

	case descriptor.Set:
		return e.coerceSet(v, d, cfg, depth)

	case descriptor.Mapping:
		return e.coerceMapping(v, d, cfg, depth)

	case descriptor.Tuple:
		return e.coerceTuple(v, d, cfg, depth)

	case descriptor.Union:
		return e.coerceUnion(v, d, cfg, depth)

	default:
		return nil, e.fail(v, d, cfg, fmt.Errorf("unhandled descriptor kind %s", d.Kind()))
	}
}

func (e *engine) coerceSimple(v any, d descriptor.Descriptor, cfg apis.Config) (any, error) {
	target := d.Type()
	if target.Kind() == reflect.Interface && target.NumMethod() == 0 {
		return v, nil
	}
	if reflect.TypeOf(v) == target {
		return v, nil
	}

	for _, s := range e.strats {
		out, handled, err := s.TryConvert(v, target, cfg)
		if !handled {
			continue
		}
		if err != nil {
			return nil, e.fail(v, d, cfg, err)
		}
		cfg.Logger.V(1).Info("coerced", "from", uref.TypeName(v), "to", d.String())
		return out, nil
	}
	return nil, e.fail(v, d, cfg, nil)
}

func (e *engine) coerceSequence(v any, d descriptor.Descriptor, cfg apis.Config, depth int) (any, error) {
	elems, ok := uref.Elements(v)
	if !ok {
		elems = []any{v}
	}

	constraint, constrained := d.Elem()
	if !constrained {
		out := make([]any, len(elems))
		copy(out, elems)
		return out, nil
	}

	if et, concrete := concreteType(constraint); concrete {
		out := reflect.MakeSlice(reflect.SliceOf(et), 0, len(elems))
		for _, raw := range elems {
			cv, err := e.coerce(raw, constraint, cfg, depth+1)
			if err != nil {
				return nil, e.fail(v, d, cfg, err)
			}
			out = reflect.Append(out, reflect.ValueOf(cv))
		}
		return out.Interface(), nil
	}

	out := make([]any, 0, len(elems))
	for _, raw := range elems {
		cv, err := e.coerce(raw, constraint, cfg, depth+1)
		if err != nil {
			return nil, e.fail(v, d, cfg, err)
		}
		out = append(out, cv)
	}
	return out, nil
}

func (e *engine) coerceSet(v any, d descriptor.Descriptor, cfg apis.Config, depth int) (any, error) {
	elems, ok := uref.Elements(v)
	if !ok {
		elems = []any{v}
	}

	constraint, constrained := d.Elem()
	et := anyType
	if constrained {
		if t, concrete := concreteType(constraint); concrete {
			et = t
		}
	}

	out := reflect.MakeMapWithSize(reflect.MapOf(et, emptyStructType), len(elems))
	member := reflect.Zero(emptyStructType)
	for _, raw := range elems {
		cv := raw
		if constrained {
			var err error
			cv, err = e.coerce(raw, constraint, cfg, depth+1)
			if err != nil {
				return nil, e.fail(v, d, cfg, err)
			}
		}
		kv := reflect.ValueOf(cv)
		if !kv.IsValid() || !kv.Comparable() {
			return nil, e.fail(v, d, cfg, fmt.Errorf("uncomparable set member of type %s", uref.TypeName(cv)))
		}
		out.SetMapIndex(kv.Convert(et), member)
	}
	return out.Interface(), nil
}

func (e *engine) coerceMapping(v any, d descriptor.Descriptor, cfg apis.Config, depth int) (any, error) {
	entries, err := mapEntries(v)
	if err != nil {
		return nil, e.fail(v, d, cfg, err)
	}

	keyC, keyOK := d.Key()
	valC, valOK := d.Value()

	kt, vt := anyType, anyType
	if keyOK {
		if t, concrete := concreteType(keyC); concrete {
			kt = t
		}
	}
	if valOK {
		if t, concrete := concreteType(valC); concrete {
			vt = t
		}
	}

	out := reflect.MakeMapWithSize(reflect.MapOf(kt, vt), len(entries))
	for _, p := range entries {
		k, v2 := p[0], p[1]
		if keyOK {
			k, err = e.coerce(k, keyC, cfg, depth+1)
			if err != nil {
				return nil, e.fail(v, d, cfg, err)
			}
		}
		if valOK {
			v2, err = e.coerce(v2, valC, cfg, depth+1)
			if err != nil {
				return nil, e.fail(v, d, cfg, err)
			}
		}
		kv := reflect.ValueOf(k)
		if !kv.IsValid() || !kv.Comparable() {
			return nil, e.fail(v, d, cfg, fmt.Errorf("uncomparable mapping key of type %s", uref.TypeName(k)))
		}
		vv := reflect.Zero(vt)
		if v2 != nil {
			vv = reflect.ValueOf(v2).Convert(vt)
		}
		out.SetMapIndex(kv.Convert(kt), vv)
	}
	return out.Interface(), nil
}

func (e *engine) coerceTuple(v any, d descriptor.Descriptor, cfg apis.Config, depth int) (any, error) {
	elems, ok := uref.Elements(v)
	if !ok {
		elems = []any{v}
	}

	want := d.Elems()
	if len(elems) != len(want) {
		return nil, e.fail(v, d, cfg, fmt.Errorf("need exactly %d elements, have %d", len(want), len(elems)))
	}

	out := make([]any, len(want))
	for i, raw := range elems {
		cv, err := e.coerce(raw, want[i], cfg, depth+1)
		if err != nil {
			return nil, e.fail(v, d, cfg, err)
		}
		out[i] = cv
	}
	return out, nil
}

// coerceUnion tries each alternative in declaration order against the
// original value and returns the first success. Alternative order is part
// of the contract: int | string and string | int coerce differently.
func (e *engine) coerceUnion(v any, d descriptor.Descriptor, cfg apis.Config, depth int) (any, error) {
	var errs error
	for _, alt := range d.Alternatives() {
		out, err := e.coerce(v, alt, cfg, depth+1)
		if err == nil {
			return out, nil
		}
		errs = multierr.Append(errs, err)
	}
	return nil, e.fail(v, d, cfg, errs)
}

func (e *engine) fail(v any, d descriptor.Descriptor, cfg apis.Config, cause error) error {
	// Avoid stacking wrappers when the cause already names source and target.
	var ce *ConversionError
	if errors.As(cause, &ce) && ce.Target == d.String() {
		return cause
	}
	return &ConversionError{
		Source:  uref.TypeName(v),
		Target:  d.String(),
		Preview: diag.Preview(v, cfg),
		Cause:   cause,
	}
}

var (
	anyType         = reflect.TypeOf((*any)(nil)).Elem()
	emptyStructType = reflect.TypeOf(struct{}{})
)

// concreteType reports the Go type a constrained container element can be
// stored as. Interface-typed and non-simple constraints fall back to any.
func concreteType(d descriptor.Descriptor) (reflect.Type, bool) {
	if d.Kind() != descriptor.Simple {
		return nil, false
	}
	t := d.Type()
	if t == nil || t.Kind() == reflect.Interface {
		return nil, false
	}
	return t, true
}

// mapEntries shapes the input for a mapping target: maps contribute their
// entries directly, everything else goes through the pairing rule
// (pairs-of-two before even-length alternation). Sets are not mappings:
// a map[T]struct{} source is rejected rather than yielding struct{} values.
func mapEntries(v any) ([][2]any, error) {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Map {
		if rv.Type().Elem() == emptyStructType {
			return nil, fmt.Errorf("set of type %s is not a mapping", uref.TypeName(v))
		}
		out := make([][2]any, 0, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out = append(out, [2]any{iter.Key().Interface(), iter.Value().Interface()})
		}
		return out, nil
	}
	return uref.Pairs(v)
}
