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
	"testing"

	"dirpx.dev/typex/descriptor"
)

func TestKind_StringAndParse_RoundTrip(t *testing.T) {
	kinds := []descriptor.Kind{
		descriptor.Simple,
		descriptor.Sequence,
		descriptor.Set,
		descriptor.Mapping,
		descriptor.Tuple,
		descriptor.Union,
		descriptor.None,
	}
	for _, k := range kinds {
		got, err := descriptor.ParseKind(k.String())
		if err != nil {
			t.Fatalf("ParseKind(%q): %v", k.String(), err)
		}
		if got != k {
			t.Fatalf("round trip %q: got %v", k.String(), got)
		}
	}
}

func TestParseKind_Lenient(t *testing.T) {
	if k, err := descriptor.ParseKind("  mapping  "); err != nil || k != descriptor.Mapping {
		t.Fatalf("ParseKind lenient: got (%v,%v)", k, err)
	}
	if k, err := descriptor.ParseKind("UNION"); err != nil || k != descriptor.Union {
		t.Fatalf("ParseKind case-insensitive: got (%v,%v)", k, err)
	}
}

func TestParseKind_Errors(t *testing.T) {
	if _, err := descriptor.ParseKind(""); err == nil {
		t.Fatal("empty input must fail")
	}
	if _, err := descriptor.ParseKind("record"); err == nil {
		t.Fatal("unknown token must fail")
	}
}

func TestKind_TextMarshaling(t *testing.T) {
	data, err := descriptor.Tuple.MarshalText()
	if err != nil || string(data) != "Tuple" {
		t.Fatalf("MarshalText: got (%q,%v)", data, err)
	}

	var k descriptor.Kind
	if err := k.UnmarshalText([]byte("set")); err != nil || k != descriptor.Set {
		t.Fatalf("UnmarshalText: got (%v,%v)", k, err)
	}

	// Unknown values refuse to marshal; failed unmarshal leaves the target.
	if _, err := descriptor.Kind(99).MarshalText(); err == nil {
		t.Fatal("unknown kind must not marshal")
	}
	k = descriptor.Mapping
	if err := k.UnmarshalText([]byte("bogus")); err == nil || k != descriptor.Mapping {
		t.Fatalf("failed unmarshal must keep target: (%v,%v)", k, err)
	}
}

func TestKind_IsValid(t *testing.T) {
	if !descriptor.Simple.IsValid() || !descriptor.None.IsValid() {
		t.Fatal("defined kinds must be valid")
	}
	if descriptor.Kind(-1).IsValid() || descriptor.Kind(42).IsValid() {
		t.Fatal("out-of-range kinds must be invalid")
	}
}
