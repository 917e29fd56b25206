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

package registry

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	"dirpx.dev/typex/apis"
	uref "dirpx.dev/typex/utils/reflect"
)

// Builtin target types with dedicated conversion rules.
var (
	intType     = reflect.TypeOf(int(0))
	float64Type = reflect.TypeOf(float64(0))
	stringType  = reflect.TypeOf("")
	boolType    = reflect.TypeOf(false)
	sliceType   = reflect.TypeOf([]any(nil))
	mapType     = reflect.TypeOf(map[any]any(nil))
	setType     = reflect.TypeOf(map[any]struct{}(nil))
)

// RegisterDefaults installs conversion rules for the builtin target types:
// int, float64, string, bool, []any, map[any]any and map[any]struct{}.
// Already-registered types are left untouched.
func RegisterDefaults(reg apis.Registry) {
	defaults := []apis.Entry{
		{Type: intType, Convert: toInt},
		{Type: float64Type, Convert: toFloat64},
		{Type: stringType, Convert: toString},
		{Type: boolType, Convert: toBool},
		{Type: sliceType, Convert: toSlice},
		{Type: mapType, Convert: toMap},
		{Type: setType, Convert: toSet},
	}
	for _, e := range defaults {
		if _, ok := reg.Lookup(e.Type); ok {
			continue
		}
		_ = reg.Register(e.Type, e.Convert)
	}
}

func toInt(v any, _ apis.Config) (any, error) {
	switch x := v.(type) {
	case int:
		return x, nil
	case int8:
		return int(x), nil
	case int16:
		return int(x), nil
	case int32:
		return int(x), nil
	case int64:
		if int64(int(x)) != x {
			return nil, fmt.Errorf("value %d overflows int", x)
		}
		return int(x), nil
	case uint:
		return intFromUint64(uint64(x))
	case uint8:
		return int(x), nil
	case uint16:
		return int(x), nil
	case uint32:
		return int(x), nil
	case uint64:
		return intFromUint64(x)
	case float32:
		return intFromFloat64(float64(x))
	case float64:
		return intFromFloat64(x)
	case bool:
		if x {
			return 1, nil
		}
		return 0, nil
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(x))
		if err != nil {
			return nil, fmt.Errorf("invalid integer literal %q", x)
		}
		return n, nil
	default:
		return nil, fmt.Errorf("no integer rule for %s", uref.TypeName(v))
	}
}

// intFromUint64 rejects unsigned values that would wrap. Unchecked int(x)
// on an out-of-range uint64 flips the sign instead of failing.
func intFromUint64(x uint64) (any, error) {
	if x > math.MaxInt {
		return nil, fmt.Errorf("value %d overflows int", x)
	}
	return int(x), nil
}

// intFromFloat64 truncates toward zero. NaN, infinities and values outside
// the int range have no meaningful truncation and are rejected.
func intFromFloat64(f float64) (any, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, fmt.Errorf("value %v has no integer form", f)
	}
	if f < math.MinInt || f >= math.MaxInt {
		return nil, fmt.Errorf("value %g overflows int", f)
	}
	return int(f), nil
}

func toFloat64(v any, _ apis.Config) (any, error) {
	switch x := v.(type) {
	case float64:
		return x, nil
	case float32:
		return float64(x), nil
	case int:
		return float64(x), nil
	case int8:
		return float64(x), nil
	case int16:
		return float64(x), nil
	case int32:
		return float64(x), nil
	case int64:
		return float64(x), nil
	case uint:
		return float64(x), nil
	case uint8:
		return float64(x), nil
	case uint16:
		return float64(x), nil
	case uint32:
		return float64(x), nil
	case uint64:
		return float64(x), nil
	case bool:
		if x {
			return 1.0, nil
		}
		return 0.0, nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid float literal %q", x)
		}
		return f, nil
	default:
		return nil, fmt.Errorf("no float rule for %s", uref.TypeName(v))
	}
}

func toString(v any, _ apis.Config) (any, error) {
	if s, ok := v.(string); ok {
		return s, nil
	}
	return fmt.Sprint(v), nil
}

func toBool(v any, _ apis.Config) (any, error) {
	switch x := v.(type) {
	case bool:
		return x, nil
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(x))
		if err != nil {
			return nil, fmt.Errorf("invalid boolean literal %q", x)
		}
		return b, nil
	case int:
		return x != 0, nil
	case int64:
		return x != 0, nil
	case float64:
		return x != 0, nil
	default:
		return nil, fmt.Errorf("no boolean rule for %s", uref.TypeName(v))
	}
}

// toSlice wraps non-iterable values (and strings) as a single-element
// sequence; iterables collect their elements unchanged.
func toSlice(v any, _ apis.Config) (any, error) {
	if elems, ok := uref.Elements(v); ok {
		return elems, nil
	}
	return []any{v}, nil
}

// toMap applies the dedicated mapping rule: existing maps copy their
// entries; sequences are shaped via pairs-of-two first, then the
// even-length alternating fallback. Set-shaped maps are rejected.
func toMap(v any, _ apis.Config) (any, error) {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Map {
		if rv.Type().Elem() == reflect.TypeOf(struct{}{}) {
			return nil, fmt.Errorf("set of type %s is not a mapping", uref.TypeName(v))
		}
		out := make(map[any]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out[iter.Key().Interface()] = iter.Value().Interface()
		}
		return out, nil
	}

	pairs, err := uref.Pairs(v)
	if err != nil {
		return nil, err
	}
	out := make(map[any]any, len(pairs))
	for _, p := range pairs {
		if !canKey(p[0]) {
			return nil, fmt.Errorf("uncomparable mapping key of type %s", uref.TypeName(p[0]))
		}
		out[p[0]] = p[1]
	}
	return out, nil
}

// toSet collects iterable elements (or wraps a scalar) as set members.
func toSet(v any, _ apis.Config) (any, error) {
	elems, ok := uref.Elements(v)
	if !ok {
		elems = []any{v}
	}
	out := make(map[any]struct{}, len(elems))
	for _, e := range elems {
		if !canKey(e) {
			return nil, fmt.Errorf("uncomparable set member of type %s", uref.TypeName(e))
		}
		out[e] = struct{}{}
	}
	return out, nil
}

// canKey reports whether v can be stored as a map key without panicking.
func canKey(v any) bool {
	if v == nil {
		return true
	}
	return reflect.TypeOf(v).Comparable()
}
