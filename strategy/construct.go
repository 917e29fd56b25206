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

package strategy

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"dirpx.dev/typex/apis"
	uref "dirpx.dev/typex/utils/reflect"
)

// NewConstructStrategy creates the universal constructor fallback: it
// builds a value of the target type from v using reflection, the way the
// target's "general constructor" would. It always handles non-nil input,
// so it terminates the strategy chain.
func NewConstructStrategy() apis.Strategy {
	return constructStrategy{}
}

// constructStrategy derives a conversion plan per (source, target) type
// pair and memoizes it. Container-like sources iterate; scalars and
// strings are wrapped as a single-element sequence before constructing
// sequence-shaped targets; map-shaped targets follow the dedicated
// pairing rule.
type constructStrategy struct{}

// Ensure constructStrategy implements apis.Strategy.
var _ apis.Strategy = (*constructStrategy)(nil)

// plan classifies how a (source, target) pair converts.
type plan int8

const (
	planNone plan = iota
	planIdentity
	planIface
	planDirect
	planString
	planInt
	planUint
	planFloat
	planBool
	planSlice
	planArray
	planSet
	planMap
)

// cacheKey memoizes plans per (source, target) type pair.
type cacheKey struct {
	src reflect.Type
	dst reflect.Type
}

// planCache caches derived plans; plans depend only on the type pair.
var planCache sync.Map // key: cacheKey, val: plan

// TryConvert constructs a target-typed value from v.
func (constructStrategy) TryConvert(v any, target reflect.Type, cfg apis.Config) (any, bool, error) {
	if v == nil || target == nil {
		return nil, false, nil
	}
	out, err := construct(v, target, cfg, 0)
	return out, true, err
}

func construct(v any, dst reflect.Type, cfg apis.Config, depth int) (any, error) {
	if cfg.MaxDepth > 0 && depth > cfg.MaxDepth {
		return nil, fmt.Errorf("max construction depth %d exceeded", cfg.MaxDepth)
	}

	src := reflect.TypeOf(v)
	if src == nil {
		return nil, fmt.Errorf("cannot construct %s from nil", uref.TypeName(v))
	}

	switch planFor(src, dst) {
	case planIdentity:
		return v, nil

	case planIface:
		return v, nil

	case planDirect:
		return reflect.ValueOf(v).Convert(dst).Interface(), nil

	case planString:
		return reflect.ValueOf(fmt.Sprint(v)).Convert(dst).Interface(), nil

	case planInt:
		n, err := parseInt64(v)
		if err != nil {
			return nil, err
		}
		rv := reflect.New(dst).Elem()
		if rv.OverflowInt(n) {
			return nil, fmt.Errorf("value %d overflows %s", n, dst)
		}
		rv.SetInt(n)
		return rv.Interface(), nil

	case planUint:
		n, err := parseInt64(v)
		if err != nil {
			return nil, err
		}
		if n < 0 {
			return nil, fmt.Errorf("negative value %d for unsigned %s", n, dst)
		}
		rv := reflect.New(dst).Elem()
		if rv.OverflowUint(uint64(n)) {
			return nil, fmt.Errorf("value %d overflows %s", n, dst)
		}
		rv.SetUint(uint64(n))
		return rv.Interface(), nil

	case planFloat:
		f, err := parseFloat64(v)
		if err != nil {
			return nil, err
		}
		rv := reflect.New(dst).Elem()
		if rv.OverflowFloat(f) {
			return nil, fmt.Errorf("value %g overflows %s", f, dst)
		}
		rv.SetFloat(f)
		return rv.Interface(), nil

	case planBool:
		b, err := parseBool(v)
		if err != nil {
			return nil, err
		}
		rv := reflect.New(dst).Elem()
		rv.SetBool(b)
		return rv.Interface(), nil

	case planSlice:
		elems := elementsOrWrap(v)
		out := reflect.MakeSlice(dst, 0, len(elems))
		for _, e := range elems {
			ev, err := assignTo(e, dst.Elem(), cfg, depth+1)
			if err != nil {
				return nil, err
			}
			out = reflect.Append(out, ev)
		}
		return out.Interface(), nil

	case planArray:
		elems := elementsOrWrap(v)
		if len(elems) != dst.Len() {
			return nil, fmt.Errorf("need exactly %d elements for %s, have %d", dst.Len(), dst, len(elems))
		}
		out := reflect.New(dst).Elem()
		for i, e := range elems {
			ev, err := assignTo(e, dst.Elem(), cfg, depth+1)
			if err != nil {
				return nil, err
			}
			out.Index(i).Set(ev)
		}
		return out.Interface(), nil

	case planSet:
		elems := elementsOrWrap(v)
		out := reflect.MakeMapWithSize(dst, len(elems))
		member := reflect.Zero(dst.Elem())
		for _, e := range elems {
			kv, err := assignTo(e, dst.Key(), cfg, depth+1)
			if err != nil {
				return nil, err
			}
			if !kv.Comparable() {
				return nil, fmt.Errorf("uncomparable set member of type %s", uref.TypeName(e))
			}
			out.SetMapIndex(kv, member)
		}
		return out.Interface(), nil

	case planMap:
		entries, err := entriesOf(v)
		if err != nil {
			return nil, err
		}
		out := reflect.MakeMapWithSize(dst, len(entries))
		for _, p := range entries {
			kv, err := assignTo(p[0], dst.Key(), cfg, depth+1)
			if err != nil {
				return nil, err
			}
			if !kv.Comparable() {
				return nil, fmt.Errorf("uncomparable mapping key of type %s", uref.TypeName(p[0]))
			}
			vv, err := assignTo(p[1], dst.Elem(), cfg, depth+1)
			if err != nil {
				return nil, err
			}
			out.SetMapIndex(kv, vv)
		}
		return out.Interface(), nil

	default:
		return nil, fmt.Errorf("no construction rule from %s to %s", src, dst)
	}
}

// planFor derives and memoizes the conversion plan for a type pair.
func planFor(src, dst reflect.Type) plan {
	key := cacheKey{src: src, dst: dst}
	if p, ok := planCache.Load(key); ok {
		return p.(plan)
	}
	p := derivePlan(src, dst)
	planCache.Store(key, p)
	return p
}

// derivePlan picks the conversion plan by target kind. Scalar kinds never
// use reflect's own Convert: Go's conversion rules truncate narrowing
// conversions silently and turn int -> string into a rune string, so the
// explicit parse plans (with their overflow and literal checks) own every
// numeric, string, and bool target.
func derivePlan(src, dst reflect.Type) plan {
	if src == dst {
		return planIdentity
	}

	switch dst.Kind() {
	case reflect.Interface:
		if dst.NumMethod() == 0 || src.Implements(dst) {
			return planIface
		}
		return planNone
	case reflect.String:
		return planString
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return planInt
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return planUint
	case reflect.Float32, reflect.Float64:
		return planFloat
	case reflect.Bool:
		return planBool
	case reflect.Slice:
		return planSlice
	case reflect.Array:
		return planArray
	case reflect.Map:
		if dst.Elem() == reflect.TypeOf(struct{}{}) {
			return planSet
		}
		return planMap
	default:
		if src.ConvertibleTo(dst) {
			return planDirect
		}
		return planNone
	}
}

// elementsOrWrap iterates container-like sources; anything else (including
// strings) becomes a single-element source.
func elementsOrWrap(v any) []any {
	if elems, ok := uref.Elements(v); ok {
		return elems
	}
	return []any{v}
}

// entriesOf shapes a source into key/value entries for map-shaped targets:
// existing maps contribute their entries, sequences go through the
// pairs-of-two / even-length rule. Set-shaped sources are rejected.
func entriesOf(v any) ([][2]any, error) {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Map {
		if rv.Type().Elem() == reflect.TypeOf(struct{}{}) {
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

// assignTo adapts one element to an element/key type, recursing into
// construct when the dynamic type does not line up.
func assignTo(v any, dst reflect.Type, cfg apis.Config, depth int) (reflect.Value, error) {
	if v == nil {
		switch dst.Kind() {
		case reflect.Interface, reflect.Ptr, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func:
			return reflect.Zero(dst), nil
		}
		return reflect.Value{}, fmt.Errorf("cannot use nil as %s", dst)
	}
	rt := reflect.TypeOf(v)
	if rt == dst || rt.AssignableTo(dst) {
		return reflect.ValueOf(v), nil
	}
	out, err := construct(v, dst, cfg, depth)
	if err != nil {
		return reflect.Value{}, err
	}
	return reflect.ValueOf(out), nil
}

func parseInt64(v any) (int64, error) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		// int64(u) on an out-of-range uint64 flips the sign.
		u := rv.Uint()
		if u > math.MaxInt64 {
			return 0, fmt.Errorf("value %d overflows int64", u)
		}
		return int64(u), nil
	case reflect.Float32, reflect.Float64:
		// int64(f) is not defined for NaN, infinities or out-of-range floats.
		f := rv.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, fmt.Errorf("value %v has no integer form", f)
		}
		if f < math.MinInt64 || f >= math.MaxInt64 {
			return 0, fmt.Errorf("value %g overflows int64", f)
		}
		return int64(f), nil
	case reflect.Bool:
		if rv.Bool() {
			return 1, nil
		}
		return 0, nil
	case reflect.String:
		n, err := strconv.ParseInt(strings.TrimSpace(rv.String()), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid integer literal %q", rv.String())
		}
		return n, nil
	default:
		return 0, fmt.Errorf("no integer rule for %s", uref.TypeName(v))
	}
}

func parseFloat64(v any) (float64, error) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Float32, reflect.Float64:
		return rv.Float(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), nil
	case reflect.Bool:
		if rv.Bool() {
			return 1, nil
		}
		return 0, nil
	case reflect.String:
		f, err := strconv.ParseFloat(strings.TrimSpace(rv.String()), 64)
		if err != nil {
			return 0, fmt.Errorf("invalid float literal %q", rv.String())
		}
		return f, nil
	default:
		return 0, fmt.Errorf("no float rule for %s", uref.TypeName(v))
	}
}

func parseBool(v any) (bool, error) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Bool:
		return rv.Bool(), nil
	case reflect.String:
		b, err := strconv.ParseBool(strings.TrimSpace(rv.String()))
		if err != nil {
			return false, fmt.Errorf("invalid boolean literal %q", rv.String())
		}
		return b, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() != 0, nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return rv.Uint() != 0, nil
	case reflect.Float32, reflect.Float64:
		return rv.Float() != 0, nil
	default:
		return false, fmt.Errorf("no boolean rule for %s", uref.TypeName(v))
	}
}
