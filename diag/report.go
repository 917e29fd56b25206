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

package diag

import (
	"fmt"
	"strings"

	"go.uber.org/multierr"
)

// Source identifies where an expectation came from. It is recorded for the
// message only; matching semantics do not depend on it.
type Source int

const (
	// SourceAnnotation marks an expectation derived from the declared signature.
	SourceAnnotation Source = iota
	// SourceCustomTypes marks an expectation from a custom-type map.
	SourceCustomTypes
	// SourceOverride marks an explicit per-wrap override (top priority).
	SourceOverride
)

// String returns the canonical token for s.
func (s Source) String() string {
	switch s {
	case SourceAnnotation:
		return "annotation"
	case SourceCustomTypes:
		return "custom_types"
	case SourceOverride:
		return "override"
	default:
		return fmt.Sprintf("Unknown(%d)", int(s))
	}
}

// CallSite is an explicit source-location token captured at the wrapper's
// own call boundary. The zero value renders as "unknown".
type CallSite struct {
	File string
	Line int
}

// String renders the call site as "file:line".
func (cs CallSite) String() string {
	if cs.File == "" {
		return "unknown"
	}
	return fmt.Sprintf("%s:%d", cs.File, cs.Line)
}

// Failure describes one failing parameter, field, or result.
type Failure struct {
	// Label names the kind of slot: "parameter", "field", "return value".
	Label string
	// Name is the parameter or field name; empty for an unnamed result.
	Name string
	// Position is the 1-based positional index, 0 when not positional.
	Position int
	// Expected is the rendered expected-type set.
	Expected string
	// Received is the dynamic type name of the offending value.
	Received string
	// Preview is a size-bounded rendering of the offending value.
	Preview string
	// Source records which configuration layer produced the expectation.
	Source Source
}

// Error renders the failure on a single line.
func (f *Failure) Error() string {
	var b strings.Builder
	b.WriteString(f.Label)
	if f.Name != "" {
		fmt.Fprintf(&b, " %q", f.Name)
	}
	if f.Position > 0 {
		fmt.Fprintf(&b, " (position %d)", f.Position)
	}
	fmt.Fprintf(&b, ": expected %s (from %s), received %s, value %s",
		f.Expected, f.Source, f.Received, f.Preview)
	return b.String()
}

// Report aggregates every failure from one invocation into a single
// diagnostic. A wrapper never raises per-failure: callers see all offending
// parameters in one report.
type Report struct {
	// Context identifies the callable or record under validation,
	// e.g. `Function: Scale [suspend]` or `Record: User`.
	Context string
	// Site is the captured call-site token.
	Site CallSite
	// Failures holds the individual failures, in parameter order.
	Failures []*Failure
}

// NewReport constructs a report for one invocation context.
func NewReport(context string, site CallSite, failures ...*Failure) *Report {
	return &Report{Context: context, Site: site, Failures: failures}
}

// Add appends a failure to the report.
func (r *Report) Add(f *Failure) {
	r.Failures = append(r.Failures, f)
}

// Empty reports whether no failure was recorded.
func (r *Report) Empty() bool {
	return len(r.Failures) == 0
}

// Unwrap exposes the individual failures as a combined error, so callers
// can walk them with errors.Is/As or multierr.Errors.
func (r *Report) Unwrap() error {
	errs := make([]error, len(r.Failures))
	for i, f := range r.Failures {
		errs[i] = f
	}
	return multierr.Combine(errs...)
}

// Error renders the full aggregated diagnostic.
func (r *Report) Error() string {
	var b strings.Builder
	b.WriteString("validation failed")
	fmt.Fprintf(&b, "\n  location: %s", r.Site)
	if r.Context != "" {
		fmt.Fprintf(&b, "\n  context:  %s", r.Context)
	}
	fmt.Fprintf(&b, "\n  errors:   %d", len(r.Failures))
	for i, f := range r.Failures {
		fmt.Fprintf(&b, "\n  [%d] %s", i+1, f.Error())
	}
	return b.String()
}
