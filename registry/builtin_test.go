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

package registry_test

import (
	"math"
	"reflect"
	"testing"

	"dirpx.dev/typex/apis"
	"dirpx.dev/typex/registry"
)

func builtinRule(t *testing.T, target any) apis.ConvertFunc {
	t.Helper()
	reg := registry.New()
	registry.RegisterDefaults(reg)
	fn, ok := reg.Lookup(reflect.TypeOf(target))
	if !ok {
		t.Fatalf("no builtin rule for %T", target)
	}
	return fn
}

func TestBuiltin_Int(t *testing.T) {
	fn := builtinRule(t, int(0))
	cfg := apis.Config{}

	cases := []struct {
		in   any
		want int
		fail bool
	}{
		{in: "42", want: 42},
		{in: " 7 ", want: 7},
		{in: 3.9, want: 3},
		{in: true, want: 1},
		{in: int64(5), want: 5},
		{in: "ten", fail: true},
		{in: []int{1}, fail: true},
	}
	for _, tc := range cases {
		out, err := fn(tc.in, cfg)
		if tc.fail {
			if err == nil {
				t.Errorf("toInt(%v): expected error, got %v", tc.in, out)
			}
			continue
		}
		if err != nil || out != tc.want {
			t.Errorf("toInt(%v) = (%v,%v), want %d", tc.in, out, err, tc.want)
		}
	}
}

func TestBuiltin_Int_RangeChecks(t *testing.T) {
	fn := builtinRule(t, int(0))
	cfg := apis.Config{}

	// Out-of-range sources must fail, never wrap.
	fails := []any{
		uint64(1<<63 + 5),
		uint64(math.MaxUint64),
		uint(math.MaxUint),
		math.NaN(),
		math.Inf(1),
		math.Inf(-1),
		1e300,
		-1e300,
		float64(1 << 63),
	}
	for _, in := range fails {
		out, err := fn(in, cfg)
		if err == nil {
			t.Errorf("toInt(%v): expected range error, got %v", in, out)
		}
	}

	// In-range extremes convert exactly.
	out, err := fn(uint64(math.MaxInt64), cfg)
	if err != nil || out != int(math.MaxInt64) {
		t.Fatalf("toInt(MaxInt64) = (%v,%v)", out, err)
	}
	out, err = fn(int64(math.MinInt64), cfg)
	if err != nil || out != int(math.MinInt64) {
		t.Fatalf("toInt(MinInt64) = (%v,%v)", out, err)
	}
}

func TestBuiltin_Float64_Parsing(t *testing.T) {
	fn := builtinRule(t, float64(0))
	cfg := apis.Config{}

	out, err := fn(uint64(math.MaxUint64), cfg)
	if err != nil || out != float64(math.MaxUint64) {
		t.Fatalf("toFloat64(MaxUint64) = (%v,%v)", out, err)
	}

	// Literals beyond the float64 range fail instead of becoming Inf.
	if out, err := fn("1e400", cfg); err == nil {
		t.Fatalf("toFloat64(1e400): expected range error, got %v", out)
	}
}

func TestBuiltin_Bool(t *testing.T) {
	fn := builtinRule(t, false)
	cfg := apis.Config{}

	cases := []struct {
		in   any
		want bool
		fail bool
	}{
		{in: "true", want: true},
		{in: "0", want: false},
		{in: 1, want: true},
		{in: 0.0, want: false},
		{in: "yes", fail: true},
	}
	for _, tc := range cases {
		out, err := fn(tc.in, cfg)
		if tc.fail {
			if err == nil {
				t.Errorf("toBool(%v): expected error, got %v", tc.in, out)
			}
			continue
		}
		if err != nil || out != tc.want {
			t.Errorf("toBool(%v) = (%v,%v), want %v", tc.in, out, err, tc.want)
		}
	}
}

func TestBuiltin_String(t *testing.T) {
	fn := builtinRule(t, "")
	cfg := apis.Config{}

	out, err := fn(42, cfg)
	if err != nil || out != "42" {
		t.Fatalf("toString(42) = (%v,%v)", out, err)
	}
	out, err = fn(true, cfg)
	if err != nil || out != "true" {
		t.Fatalf("toString(true) = (%v,%v)", out, err)
	}
}

func TestBuiltin_Slice(t *testing.T) {
	fn := builtinRule(t, []any(nil))
	cfg := apis.Config{}

	out, err := fn([]int{1, 2}, cfg)
	if err != nil {
		t.Fatalf("toSlice(slice): %v", err)
	}
	if got := out.([]any); len(got) != 2 || got[0] != 1 {
		t.Fatalf("toSlice(slice) = %v", got)
	}

	// Scalars and strings wrap as a single-element sequence.
	out, err = fn("abc", cfg)
	if err != nil {
		t.Fatalf("toSlice(string): %v", err)
	}
	if got := out.([]any); len(got) != 1 || got[0] != "abc" {
		t.Fatalf("toSlice(string) = %v", got)
	}
}

func TestBuiltin_Map_PairRulePrecedence(t *testing.T) {
	fn := builtinRule(t, map[any]any(nil))
	cfg := apis.Config{}

	// Pairs-of-two rule binds before the alternating rule.
	out, err := fn([]any{[]any{1, "a"}, []any{2, "b"}}, cfg)
	if err != nil {
		t.Fatalf("toMap(pairs): %v", err)
	}
	m := out.(map[any]any)
	if m[1] != "a" || m[2] != "b" {
		t.Fatalf("toMap(pairs) = %v", m)
	}

	// Even-length alternating fallback.
	out, err = fn([]any{1, "a", 2, "b"}, cfg)
	if err != nil {
		t.Fatalf("toMap(alternating): %v", err)
	}
	m = out.(map[any]any)
	if m[1] != "a" || m[2] != "b" {
		t.Fatalf("toMap(alternating) = %v", m)
	}

	// Empty and odd-length sources fail.
	if _, err := fn([]any{}, cfg); err == nil {
		t.Fatal("toMap(empty) must fail")
	}
	if _, err := fn([]any{1, "a", 2}, cfg); err == nil {
		t.Fatal("toMap(odd) must fail")
	}

	// Existing maps copy through.
	out, err = fn(map[string]int{"x": 1}, cfg)
	if err != nil || out.(map[any]any)["x"] != 1 {
		t.Fatalf("toMap(map) = (%v,%v)", out, err)
	}

	// Sets are not mappings.
	if _, err := fn(map[string]struct{}{"x": {}}, cfg); err == nil {
		t.Fatal("toMap(set) must fail")
	}
}

func TestBuiltin_Set(t *testing.T) {
	fn := builtinRule(t, map[any]struct{}(nil))
	cfg := apis.Config{}

	out, err := fn([]any{1, 2, 2, 3}, cfg)
	if err != nil {
		t.Fatalf("toSet: %v", err)
	}
	s := out.(map[any]struct{})
	if len(s) != 3 {
		t.Fatalf("toSet dedup: %v", s)
	}

	// Uncomparable members are rejected rather than panicking.
	if _, err := fn([]any{[]int{1}}, cfg); err == nil {
		t.Fatal("toSet(uncomparable) must fail")
	}
}
