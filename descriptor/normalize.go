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

package descriptor

import (
	"reflect"
)

var (
	anyType     = reflect.TypeOf((*any)(nil)).Elem()
	emptyStruct = reflect.TypeOf(struct{}{})
)

// typed is the self-describing contract: a value that knows its own raw
// descriptor. See txapi/common.Typed for the documented extension API.
type typed interface {
	TypeDescriptor() any
}

// maxTypedUnwrap bounds chained TypeDescriptor indirections.
const maxTypedUnwrap = 8

// Normalize turns a raw target-type expression into a Descriptor.
//
// Accepted raw forms:
//
//   - Descriptor        -> returned unchanged.
//   - nil               -> the None marker.
//   - reflect.Type      -> derived structurally (see FromType).
//   - []Descriptor      -> Union over the elements, in order.
//   - []any             -> Union over each element, recursively normalized.
//   - a value whose type implements TypeDescriptor() any -> the normalized
//     result of that call.
//   - any other value   -> stands for its own dynamic type.
//
// Normalize never fails: an exotic raw input degrades to a Simple
// passthrough of its dynamic type, so coercion or matching against it may
// still fail later with a precise error.
func Normalize(raw any) Descriptor {
	for i := 0; i < maxTypedUnwrap; i++ {
		switch x := raw.(type) {
		case nil:
			return NewNone()
		case Descriptor:
			return x
		case reflect.Type:
			return FromType(x)
		case []Descriptor:
			return NewUnionOf(x...)
		case []any:
			alts := make([]Descriptor, 0, len(x))
			for _, a := range x {
				alts = append(alts, Normalize(a))
			}
			return NewUnionOf(alts...)
		case typed:
			raw = x.TypeDescriptor()
			continue
		}
		return FromType(reflect.TypeOf(raw))
	}
	// Chained TypeDescriptor indirection exceeded the unwrap bound.
	return FromType(reflect.TypeOf(raw))
}

// NormalizeSet builds an expected-type set from a raw expression.
// A []any or []Descriptor raw contributes one set member per element
// (matching is "any member matches"); everything else is a single member.
func NormalizeSet(raw any) []Descriptor {
	switch x := raw.(type) {
	case []Descriptor:
		out := make([]Descriptor, len(x))
		copy(out, x)
		return out
	case []any:
		out := make([]Descriptor, 0, len(x))
		for _, a := range x {
			out = append(out, Normalize(a))
		}
		return out
	}
	return []Descriptor{Normalize(raw)}
}

// FromType derives a Descriptor from a reflect.Type.
//
// Named types stay Simple regardless of their underlying kind: a declared
// "type Headers map[string]string" is an atomic target, not a container
// shape. Unnamed composites decompose:
//
//   - slices/arrays         -> Sequence (element recursively derived;
//     an "any" element leaves the container unconstrained)
//   - map[K]struct{}        -> Set over K (the Go set convention)
//   - map[K]V               -> Mapping over K, V
//   - everything else       -> Simple passthrough
func FromType(t reflect.Type) Descriptor {
	if t == nil {
		return NewNone()
	}
	if t.Name() != "" {
		return NewSimple(t)
	}

	switch t.Kind() {
	case reflect.Slice, reflect.Array:
		e := t.Elem()
		if e == anyType {
			return NewSequence()
		}
		return NewSequenceOf(FromType(e))

	case reflect.Map:
		if t.Elem() == emptyStruct {
			if t.Key() == anyType {
				return NewSet()
			}
			return NewSetOf(FromType(t.Key()))
		}
		if t.Key() == anyType && t.Elem() == anyType {
			return NewMapping()
		}
		return NewMappingOf(FromType(t.Key()), FromType(t.Elem()))

	default:
		return NewSimple(t)
	}
}
