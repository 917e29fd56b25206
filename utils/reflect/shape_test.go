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

package reflect_test

import (
	"errors"
	"sort"
	"testing"

	uref "dirpx.dev/typex/utils/reflect"
)

func TestIsIterable_StringsExcluded(t *testing.T) {
	cases := []struct {
		name string
		v    any
		want bool
	}{
		{"slice", []int{1, 2}, true},
		{"array", [2]string{"a", "b"}, true},
		{"map", map[string]int{"a": 1}, true},
		{"string", "abc", false},
		{"int", 42, false},
		{"nil", nil, false},
	}
	for _, tc := range cases {
		if got := uref.IsIterable(tc.v); got != tc.want {
			t.Errorf("IsIterable(%s) = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestElements_SliceAndMap(t *testing.T) {
	elems, ok := uref.Elements([]int{3, 1, 2})
	if !ok || len(elems) != 3 {
		t.Fatalf("Elements(slice): got (%v,%v)", elems, ok)
	}
	if elems[0] != 3 || elems[1] != 1 || elems[2] != 2 {
		t.Fatalf("Elements(slice) order changed: %v", elems)
	}

	// Maps yield their keys, order unspecified.
	elems, ok = uref.Elements(map[string]int{"b": 2, "a": 1})
	if !ok || len(elems) != 2 {
		t.Fatalf("Elements(map): got (%v,%v)", elems, ok)
	}
	keys := []string{elems[0].(string), elems[1].(string)}
	sort.Strings(keys)
	if keys[0] != "a" || keys[1] != "b" {
		t.Fatalf("Elements(map) keys = %v", keys)
	}

	if _, ok := uref.Elements("abc"); ok {
		t.Fatal("Elements(string) must not iterate")
	}
	if _, ok := uref.Elements(7); ok {
		t.Fatal("Elements(int) must not iterate")
	}
}

func TestPairs_PairRuleBeforeAlternating(t *testing.T) {
	// Every element is a 2-element sub-sequence: pair rule wins even though
	// the outer length is even.
	src := []any{[]any{1, "a"}, []any{2, "b"}}
	pairs, err := uref.Pairs(src)
	if err != nil {
		t.Fatalf("Pairs(pair list): %v", err)
	}
	if len(pairs) != 2 || pairs[0][0] != 1 || pairs[0][1] != "a" || pairs[1][0] != 2 || pairs[1][1] != "b" {
		t.Fatalf("Pairs(pair list) = %v", pairs)
	}
}

func TestPairs_AlternatingFallback(t *testing.T) {
	pairs, err := uref.Pairs([]any{1, "a", 2, "b"})
	if err != nil {
		t.Fatalf("Pairs(alternating): %v", err)
	}
	if len(pairs) != 2 || pairs[0][0] != 1 || pairs[0][1] != "a" || pairs[1][0] != 2 || pairs[1][1] != "b" {
		t.Fatalf("Pairs(alternating) = %v", pairs)
	}
}

func TestPairs_Errors(t *testing.T) {
	for _, v := range []any{
		[]any{},             // empty
		[]any{1, "a", 2},    // odd, not all pairs
		"ab",                // not a sequence
		42,                  // not a sequence
		map[string]int(nil), // maps are handled by callers, not Pairs
	} {
		if _, err := uref.Pairs(v); !errors.Is(err, uref.ErrNotPairable) {
			t.Errorf("Pairs(%v): want ErrNotPairable, got %v", v, err)
		}
	}
}

func TestIsNil(t *testing.T) {
	var p *int
	var m map[string]int
	var s []int
	if !uref.IsNil(nil) || !uref.IsNil(p) || !uref.IsNil(m) || !uref.IsNil(s) {
		t.Fatal("nil-ish values must report IsNil")
	}
	if uref.IsNil(0) || uref.IsNil("") || uref.IsNil([]int{}) {
		t.Fatal("non-nil values must not report IsNil")
	}
}

func TestTypeName(t *testing.T) {
	if got := uref.TypeName(nil); got != "nil" {
		t.Fatalf("TypeName(nil) = %q", got)
	}
	if got := uref.TypeName(42); got != "int" {
		t.Fatalf("TypeName(42) = %q", got)
	}
	if got := uref.TypeName([]string{}); got != "[]string" {
		t.Fatalf("TypeName([]string) = %q", got)
	}
}
