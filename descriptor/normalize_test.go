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

package descriptor_test

import (
	"reflect"
	"testing"

	"dirpx.dev/typex/descriptor"
)

// headers is a named map type; named types stay Simple.
type headers map[string]string

// selfTyped declares its own target type.
type selfTyped struct{}

func (selfTyped) TypeDescriptor() any { return reflect.TypeOf(0) }

// loopTyped unwraps to itself forever.
type loopTyped struct{}

func (l loopTyped) TypeDescriptor() any { return l }

func TestNormalize_Basics(t *testing.T) {
	cases := []struct {
		name string
		raw  any
		want string
	}{
		{"nil", nil, "none"},
		{"reflect type", reflect.TypeOf(0), "int"},
		{"descriptor passthrough", descriptor.For[int](), "int"},
		{"value stands for its type", "hello", "string"},
		{"union from any slice", []any{reflect.TypeOf(0), reflect.TypeOf("")}, "int | string"},
		{"union from descriptors", []descriptor.Descriptor{descriptor.For[int](), descriptor.NewNone()}, "int | none"},
		{"self typed", selfTyped{}, "int"},
	}
	for _, tc := range cases {
		if got := descriptor.Normalize(tc.raw).String(); got != tc.want {
			t.Errorf("%s: Normalize = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestNormalize_TypedUnwrapBound(t *testing.T) {
	// An endless TypeDescriptor chain degrades to the value's own type
	// instead of looping.
	d := descriptor.Normalize(loopTyped{})
	if d.Kind() != descriptor.Simple {
		t.Fatalf("kind = %s", d.Kind())
	}
	if d.Type() != reflect.TypeOf(loopTyped{}) {
		t.Fatalf("type = %v", d.Type())
	}
}

func TestNormalizeSet(t *testing.T) {
	set := descriptor.NormalizeSet([]any{reflect.TypeOf(0), nil})
	if len(set) != 2 {
		t.Fatalf("set size = %d", len(set))
	}
	if set[0].String() != "int" || set[1].String() != "none" {
		t.Fatalf("set = %v", set)
	}

	single := descriptor.NormalizeSet(reflect.TypeOf(""))
	if len(single) != 1 || single[0].String() != "string" {
		t.Fatalf("single = %v", single)
	}
}

func TestFromType_Containers(t *testing.T) {
	cases := []struct {
		name string
		typ  reflect.Type
		want string
	}{
		{"typed slice", reflect.TypeOf([]int{}), "[]int"},
		{"untyped slice", reflect.TypeOf([]any{}), "[]any"},
		{"nested slice", reflect.TypeOf([][]string{}), "[][]string"},
		{"set", reflect.TypeOf(map[int]struct{}{}), "set[int]"},
		{"untyped set", reflect.TypeOf(map[any]struct{}{}), "set[any]"},
		{"mapping", reflect.TypeOf(map[string]int{}), "map[string]int"},
		{"untyped mapping", reflect.TypeOf(map[any]any{}), "map[any]any"},
		{"scalar", reflect.TypeOf(3.14), "float64"},
	}
	for _, tc := range cases {
		if got := descriptor.FromType(tc.typ).String(); got != tc.want {
			t.Errorf("%s: FromType = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestFromType_NamedTypesStaySimple(t *testing.T) {
	d := descriptor.FromType(reflect.TypeOf(headers{}))
	if d.Kind() != descriptor.Simple {
		t.Fatalf("named map kind = %s, want Simple", d.Kind())
	}
	if d.Type() != reflect.TypeOf(headers{}) {
		t.Fatalf("named map type = %v", d.Type())
	}
}
