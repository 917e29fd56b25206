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

// Package match implements the non-mutating structural validator.
//
// Unlike the coercion engine, match never converts: it only reports whether
// a value already conforms to a descriptor. Simple descriptors require an
// exact nominal type (interface targets accept implementors, which is how
// Go spells nominal conformance for interfaces); container descriptors
// require the outer shape plus recursive element conformance when an
// element constraint is present.
package match

import (
	"reflect"

	"dirpx.dev/typex/descriptor"
	uref "dirpx.dev/typex/utils/reflect"
)

var emptyStruct = reflect.TypeOf(struct{}{})

// Any reports whether v conforms to at least one descriptor in set.
// An empty set matches nothing. It never mutates v and never panics.
func Any(v any, set []descriptor.Descriptor) bool {
	for _, d := range set {
		if Value(v, d) {
			return true
		}
	}
	return false
}

// Value reports whether v conforms to d. It never mutates v and never
// panics; any shape or type mismatch, including nested container element
// mismatches, yields false.
func Value(v any, d descriptor.Descriptor) bool {
	switch d.Kind() {
	case descriptor.None:
		return uref.IsNil(v)

	case descriptor.Simple:
		return matchSimple(v, d.Type())

	case descriptor.Sequence:
		rv := reflect.ValueOf(v)
		if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
			return false
		}
		elem, constrained := d.Elem()
		if !constrained {
			return true
		}
		for i := 0; i < rv.Len(); i++ {
			if !Value(rv.Index(i).Interface(), elem) {
				return false
			}
		}
		return true

	case descriptor.Set:
		rv := reflect.ValueOf(v)
		if rv.Kind() != reflect.Map || rv.Type().Elem() != emptyStruct {
			return false
		}
		elem, constrained := d.Elem()
		if !constrained {
			return true
		}
		iter := rv.MapRange()
		for iter.Next() {
			if !Value(iter.Key().Interface(), elem) {
				return false
			}
		}
		return true

	case descriptor.Mapping:
		rv := reflect.ValueOf(v)
		if rv.Kind() != reflect.Map {
			return false
		}
		key, kc := d.Key()
		val, vc := d.Value()
		if !kc && !vc {
			return true
		}
		iter := rv.MapRange()
		for iter.Next() {
			if kc && !Value(iter.Key().Interface(), key) {
				return false
			}
			if vc && !Value(iter.Value().Interface(), val) {
				return false
			}
		}
		return true

	case descriptor.Tuple:
		rv := reflect.ValueOf(v)
		if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
			return false
		}
		elems := d.Elems()
		if rv.Len() != len(elems) {
			return false
		}
		for i, e := range elems {
			if !Value(rv.Index(i).Interface(), e) {
				return false
			}
		}
		return true

	case descriptor.Union:
		for _, alt := range d.Alternatives() {
			if Value(v, alt) {
				return true
			}
		}
		return false

	default:
		return false
	}
}

// matchSimple requires the exact dynamic type. Interface targets accept any
// implementor; the empty interface accepts everything including nil.
func matchSimple(v any, t reflect.Type) bool {
	if t == nil {
		return false
	}
	rt := reflect.TypeOf(v)
	if rt == t {
		return true
	}
	if t.Kind() == reflect.Interface {
		if t.NumMethod() == 0 {
			return true
		}
		return rt != nil && rt.Implements(t)
	}
	return false
}
