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

// Package descriptor implements the target-type algebra shared by the
// coercion engine and the structural validator.
//
// A Descriptor is a small immutable tree: Simple wraps a reflect.Type,
// container kinds carry optional element/key/value sub-descriptors, Tuple
// carries a fixed positional list, and Union carries an ordered list of
// alternatives. Descriptor trees are declared, not value-derived, so they
// are acyclic and finite by construction.
package descriptor

import (
	"reflect"
	"strings"
)

// Descriptor is the normalized representation of a target type.
// The zero value is not meaningful; use the constructors.
type Descriptor struct {
	kind Kind
	typ  reflect.Type // Simple only
	elem *Descriptor  // Sequence/Set element constraint, nil if unconstrained
	key  *Descriptor  // Mapping key constraint, nil if unconstrained
	val  *Descriptor  // Mapping value constraint, nil if unconstrained
	list []Descriptor // Tuple elements / Union alternatives
}

// NewSimple builds a Simple descriptor for the exact type t.
// A nil type yields the None descriptor.
func NewSimple(t reflect.Type) Descriptor {
	if t == nil {
		return NewNone()
	}
	return Descriptor{kind: Simple, typ: t}
}

// For builds a Simple descriptor for the type parameter T.
// Unlike reflect.TypeOf on a value, it preserves interface types.
func For[T any]() Descriptor {
	return NewSimple(reflect.TypeOf((*T)(nil)).Elem())
}

// NewSequence builds a shape-only Sequence descriptor (untyped elements).
func NewSequence() Descriptor {
	return Descriptor{kind: Sequence}
}

// NewSequenceOf builds a Sequence descriptor with element constraint elem.
func NewSequenceOf(elem Descriptor) Descriptor {
	return Descriptor{kind: Sequence, elem: &elem}
}

// NewSet builds a shape-only Set descriptor (untyped elements).
func NewSet() Descriptor {
	return Descriptor{kind: Set}
}

// NewSetOf builds a Set descriptor with element constraint elem.
func NewSetOf(elem Descriptor) Descriptor {
	return Descriptor{kind: Set, elem: &elem}
}

// NewMapping builds a shape-only Mapping descriptor (untyped keys/values).
func NewMapping() Descriptor {
	return Descriptor{kind: Mapping}
}

// NewMappingOf builds a Mapping descriptor with key and value constraints.
func NewMappingOf(key, val Descriptor) Descriptor {
	return Descriptor{kind: Mapping, key: &key, val: &val}
}

// NewTupleOf builds a fixed-arity Tuple descriptor.
func NewTupleOf(elems ...Descriptor) Descriptor {
	list := make([]Descriptor, len(elems))
	copy(list, elems)
	return Descriptor{kind: Tuple, list: list}
}

// NewUnionOf builds an ordered Union of alternatives. Nested unions are
// flattened and duplicates removed, preserving first-occurrence order
// (alternative order is significant for coercion). A single surviving
// alternative is returned directly; an empty union degrades to None.
func NewUnionOf(alts ...Descriptor) Descriptor {
	flat := make([]Descriptor, 0, len(alts))
	for _, a := range alts {
		if a.kind == Union {
			flat = append(flat, a.list...)
		} else {
			flat = append(flat, a)
		}
	}

	seen := make(map[string]bool, len(flat))
	unique := flat[:0]
	for _, a := range flat {
		s := a.String()
		if !seen[s] {
			seen[s] = true
			unique = append(unique, a)
		}
	}

	switch len(unique) {
	case 0:
		return NewNone()
	case 1:
		return unique[0]
	}
	list := make([]Descriptor, len(unique))
	copy(list, unique)
	return Descriptor{kind: Union, list: list}
}

// NewNone builds the absence-of-value marker.
func NewNone() Descriptor {
	return Descriptor{kind: None}
}

// Optional builds a union of d and the absence-of-value marker. This is the
// caller-visible way to express "value may be absent".
func Optional(d Descriptor) Descriptor {
	return NewUnionOf(d, NewNone())
}

// Kind returns the variant tag of d.
func (d Descriptor) Kind() Kind { return d.kind }

// Type returns the target reflect.Type of a Simple descriptor, nil otherwise.
func (d Descriptor) Type() reflect.Type { return d.typ }

// Elem returns the element constraint of a Sequence or Set descriptor.
func (d Descriptor) Elem() (Descriptor, bool) {
	if d.elem == nil {
		return Descriptor{}, false
	}
	return *d.elem, true
}

// Key returns the key constraint of a Mapping descriptor.
func (d Descriptor) Key() (Descriptor, bool) {
	if d.key == nil {
		return Descriptor{}, false
	}
	return *d.key, true
}

// Value returns the value constraint of a Mapping descriptor.
func (d Descriptor) Value() (Descriptor, bool) {
	if d.val == nil {
		return Descriptor{}, false
	}
	return *d.val, true
}

// Elems returns the positional constraints of a Tuple descriptor.
func (d Descriptor) Elems() []Descriptor {
	if d.kind != Tuple {
		return nil
	}
	return d.list
}

// Alternatives returns the ordered alternatives of a Union descriptor.
func (d Descriptor) Alternatives() []Descriptor {
	if d.kind != Union {
		return nil
	}
	return d.list
}

// AllowsNone reports whether d accepts the absent value: d is None itself,
// or a Union carrying the None alternative.
func (d Descriptor) AllowsNone() bool {
	if d.kind == None {
		return true
	}
	if d.kind != Union {
		return false
	}
	for _, a := range d.list {
		if a.kind == None {
			return true
		}
	}
	return false
}

// Equal reports whether two descriptors describe the same target shape.
func (d Descriptor) Equal(o Descriptor) bool {
	return d.String() == o.String()
}

// String renders d for diagnostics: "int", "[]string", "set[int]",
// "map[string]int", "(int, string)", "int | none".
func (d Descriptor) String() string {
	switch d.kind {
	case Simple:
		return TypeName(d.typ)
	case Sequence:
		if d.elem == nil {
			return "[]any"
		}
		return "[]" + d.elem.String()
	case Set:
		if d.elem == nil {
			return "set[any]"
		}
		return "set[" + d.elem.String() + "]"
	case Mapping:
		k, v := "any", "any"
		if d.key != nil {
			k = d.key.String()
		}
		if d.val != nil {
			v = d.val.String()
		}
		return "map[" + k + "]" + v
	case Tuple:
		parts := make([]string, len(d.list))
		for i, e := range d.list {
			parts[i] = e.String()
		}
		return "(" + strings.Join(parts, ", ") + ")"
	case Union:
		parts := make([]string, len(d.list))
		for i, a := range d.list {
			parts[i] = a.String()
		}
		return strings.Join(parts, " | ")
	case None:
		return "none"
	default:
		return "invalid"
	}
}

// TypeName renders a reflect.Type for diagnostics. The empty interface
// renders as "any", nil as "nil".
func TypeName(t reflect.Type) string {
	if t == nil {
		return "nil"
	}
	if t.Kind() == reflect.Interface && t.NumMethod() == 0 && t.Name() == "" {
		return "any"
	}
	return t.String()
}
