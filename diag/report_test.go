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

package diag_test

import (
	"strings"
	"testing"

	"go.uber.org/multierr"

	"dirpx.dev/typex/diag"
)

func TestFailure_ErrorLine(t *testing.T) {
	f := &diag.Failure{
		Label:    "parameter",
		Name:     "count",
		Position: 2,
		Expected: "int | none",
		Received: "string",
		Preview:  `"ten"`,
		Source:   diag.SourceOverride,
	}
	got := f.Error()
	for _, want := range []string{`parameter "count"`, "(position 2)", "expected int | none", "(from override)", "received string", `value "ten"`} {
		if !strings.Contains(got, want) {
			t.Fatalf("failure line missing %q: %s", want, got)
		}
	}
}

func TestReport_AggregatesAllFailures(t *testing.T) {
	r := diag.NewReport("Function: Scale [suspend]", diag.CallSite{File: "svc/scale.go", Line: 40})
	r.Add(&diag.Failure{Label: "parameter", Name: "a", Position: 1, Expected: "int", Received: "string"})
	r.Add(&diag.Failure{Label: "parameter", Name: "b", Position: 2, Expected: "float64", Received: "bool"})

	if r.Empty() {
		t.Fatal("report with failures must not be empty")
	}

	msg := r.Error()
	for _, want := range []string{
		"validation failed",
		"location: svc/scale.go:40",
		"context:  Function: Scale [suspend]",
		"errors:   2",
		"[1]",
		"[2]",
	} {
		if !strings.Contains(msg, want) {
			t.Fatalf("report missing %q:\n%s", want, msg)
		}
	}
}

func TestReport_UnwrapExposesFailures(t *testing.T) {
	f1 := &diag.Failure{Label: "parameter", Name: "a"}
	f2 := &diag.Failure{Label: "parameter", Name: "b"}
	r := diag.NewReport("Function: F", diag.CallSite{}, f1, f2)

	errs := multierr.Errors(r.Unwrap())
	if len(errs) != 2 {
		t.Fatalf("Unwrap exposed %d errors, want 2", len(errs))
	}
}

func TestCallSite_ZeroValue(t *testing.T) {
	if got := (diag.CallSite{}).String(); got != "unknown" {
		t.Fatalf("zero call site = %q", got)
	}
	cs := diag.CallSite{File: "a.go", Line: 7}
	if got := cs.String(); got != "a.go:7" {
		t.Fatalf("call site = %q", got)
	}
}

func TestSource_String(t *testing.T) {
	cases := map[diag.Source]string{
		diag.SourceAnnotation:  "annotation",
		diag.SourceCustomTypes: "custom_types",
		diag.SourceOverride:    "override",
	}
	for s, want := range cases {
		if got := s.String(); got != want {
			t.Errorf("Source(%d).String() = %q, want %q", int(s), got, want)
		}
	}
	if got := diag.Source(9).String(); got != "Unknown(9)" {
		t.Errorf("unknown source = %q", got)
	}
}
