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

package reflect

import (
	"errors"
	"reflect"
)

var (
	// ErrNotPairable indicates that a source cannot be shaped into mapping
	// entries: it is not a sequence, is empty, or has no pair structure.
	ErrNotPairable = errors.New("reflect: cannot form mapping entries from source shape")
)

// IsIterable reports whether v can be iterated element-wise for coercion
// purposes. Strings are deliberately excluded to avoid char-splitting;
// maps iterate as their keys.
func IsIterable(v any) bool {
	switch reflect.ValueOf(v).Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return true
	default:
		return false
	}
}

// Elements returns the elements of v in iteration order and ok=true when v
// is iterable. Slices and arrays yield their elements; maps yield their
// keys (iteration order is unspecified). Strings and scalars yield ok=false.
func Elements(v any) ([]any, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		out := make([]any, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			out[i] = rv.Index(i).Interface()
		}
		return out, true
	case reflect.Map:
		out := make([]any, 0, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out = append(out, iter.Key().Interface())
		}
		return out, true
	default:
		return nil, false
	}
}

// IsPair reports whether v is a 2-element sub-sequence (slice or array of
// length exactly 2; strings do not count).
func IsPair(v any) bool {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		return rv.Len() == 2
	default:
		return false
	}
}

// Pairs shapes a non-mapping source into ordered key/value entries.
//
// Rules, applied in this exact order:
//
//  1. A non-empty sequence whose every element is a 2-element sub-sequence
//     yields one entry per pair.
//  2. Otherwise, a sequence of even length yields entries by treating it as
//     alternating key, value, key, value, ...
//  3. Anything else (non-sequence, empty, odd length) is ErrNotPairable.
//
// Rule 1 is checked before rule 2 so a flat list of pairs is never silently
// reinterpreted as alternating keys and values.
func Pairs(v any) ([][2]any, error) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
	default:
		return nil, ErrNotPairable
	}
	n := rv.Len()
	if n == 0 {
		return nil, ErrNotPairable
	}

	allPairs := true
	for i := 0; i < n; i++ {
		if !IsPair(rv.Index(i).Interface()) {
			allPairs = false
			break
		}
	}

	if allPairs {
		out := make([][2]any, 0, n)
		for i := 0; i < n; i++ {
			pv := reflect.ValueOf(rv.Index(i).Interface())
			out = append(out, [2]any{pv.Index(0).Interface(), pv.Index(1).Interface()})
		}
		return out, nil
	}

	if n%2 == 0 {
		out := make([][2]any, 0, n/2)
		for i := 0; i < n; i += 2 {
			out = append(out, [2]any{rv.Index(i).Interface(), rv.Index(i + 1).Interface()})
		}
		return out, nil
	}

	return nil, ErrNotPairable
}

// IsNil reports whether v is the absent value: untyped nil or a nil
// pointer/interface/map/slice/chan/func.
func IsNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func:
		return rv.IsNil()
	default:
		return false
	}
}

// TypeName renders the dynamic type of v for diagnostics ("nil" for the
// absent value).
func TypeName(v any) string {
	t := reflect.TypeOf(v)
	if t == nil {
		return "nil"
	}
	if t.Kind() == reflect.Interface && t.NumMethod() == 0 && t.Name() == "" {
		return "any"
	}
	return t.String()
}
