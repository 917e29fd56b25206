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

// Package record implements schema-carrying typed records on top of the
// descriptor algebra and the structural validator. A Schema declares an
// ordered set of typed fields once; every construction validates all
// supplied values and reports every offending field in one diag.Report.
package record

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"dirpx.dev/typex/apis"
	"dirpx.dev/typex/config"
	"dirpx.dev/typex/descriptor"
	"dirpx.dev/typex/diag"
	"dirpx.dev/typex/match"
	uref "dirpx.dev/typex/utils/reflect"
)

// Field declares one schema field. Type accepts anything the descriptor
// algebra normalizes: a reflect.Type, a Descriptor, a []any of union
// alternatives, or a sample value. Wrap the Descriptor in
// descriptor.Optional to allow absence.
type Field struct {
	Name string
	Type any
}

// fieldSpec is the normalized, immutable form of a Field.
type fieldSpec struct {
	name     string
	desc     descriptor.Descriptor
	position int // 1-based declaration order
}

// Schema is an immutable field table shared by all records built from it.
// Safe for concurrent use.
type Schema struct {
	name   string
	fields []fieldSpec
	byName map[string]int
	cfg    apis.Config
}

// NewSchema builds a schema from ordered field declarations. Duplicate or
// empty field names fail.
func NewSchema(name string, fields ...Field) (*Schema, error) {
	s := &Schema{
		name:   name,
		fields: make([]fieldSpec, 0, len(fields)),
		byName: make(map[string]int, len(fields)),
		cfg:    config.DefaultConfig(),
	}
	for i, f := range fields {
		if f.Name == "" {
			return nil, fmt.Errorf("record: schema %q: field %d has no name", name, i)
		}
		if _, dup := s.byName[f.Name]; dup {
			return nil, fmt.Errorf("record: schema %q: duplicate field %q", name, f.Name)
		}
		s.byName[f.Name] = len(s.fields)
		s.fields = append(s.fields, fieldSpec{
			name:     f.Name,
			desc:     descriptor.Normalize(f.Type),
			position: i + 1,
		})
	}
	return s, nil
}

// MustSchema is NewSchema that panics on declaration errors.
func MustSchema(name string, fields ...Field) *Schema {
	s, err := NewSchema(name, fields...)
	if err != nil {
		panic(err)
	}
	return s
}

// WithConfig returns a copy of the schema using cfg for diagnostics.
func (s *Schema) WithConfig(cfg apis.Config) *Schema {
	c := *s
	c.cfg = cfg
	return &c
}

// Name returns the schema name.
func (s *Schema) Name() string { return s.name }

// Fields returns the declared field names in declaration order.
func (s *Schema) Fields() []string {
	out := make([]string, len(s.fields))
	for i, f := range s.fields {
		out[i] = f.name
	}
	return out
}

// Descriptor returns the normalized descriptor of a declared field.
func (s *Schema) Descriptor(field string) (descriptor.Descriptor, bool) {
	i, ok := s.byName[field]
	if !ok {
		return descriptor.Descriptor{}, false
	}
	return s.fields[i].desc, true
}

// New constructs a record from values, validating every field. Unknown
// keys, missing required fields, and type mismatches are all collected
// into one *diag.Report; the record is built only when the report is
// empty.
func (s *Schema) New(values map[string]any) (*Record, error) {
	report := diag.NewReport("Record: "+s.name, diag.CallSite{})

	unknown := make([]string, 0)
	for k := range values {
		if _, ok := s.byName[k]; !ok {
			unknown = append(unknown, k)
		}
	}
	sort.Strings(unknown)
	for _, k := range unknown {
		report.Add(&diag.Failure{
			Label:    "field",
			Name:     k,
			Expected: "no such field",
			Received: uref.TypeName(values[k]),
			Preview:  diag.Preview(values[k], s.cfg),
		})
	}

	data := make(map[string]any, len(s.fields))
	for _, f := range s.fields {
		v, present := values[f.name]
		if !present || uref.IsNil(v) {
			if f.desc.AllowsNone() {
				data[f.name] = nil
				continue
			}
			report.Add(&diag.Failure{
				Label:    "field",
				Name:     f.name,
				Position: f.position,
				Expected: f.desc.String(),
				Received: "nothing",
				Preview:  "<missing>",
			})
			continue
		}
		if !match.Value(v, f.desc) {
			report.Add(&diag.Failure{
				Label:    "field",
				Name:     f.name,
				Position: f.position,
				Expected: f.desc.String(),
				Received: uref.TypeName(v),
				Preview:  diag.Preview(v, s.cfg),
			})
			continue
		}
		data[f.name] = v
	}

	if !report.Empty() {
		s.cfg.Logger.V(1).Info("record construction failed",
			"schema", s.name, "failures", len(report.Failures))
		return nil, report
	}
	return &Record{schema: s, data: data}, nil
}

// Record is an immutable validated value set. Safe for concurrent reads.
type Record struct {
	schema *Schema
	data   map[string]any
}

// Schema returns the schema the record was built from.
func (r *Record) Schema() *Schema { return r.schema }

// Get returns a field value. ok is false for undeclared fields.
func (r *Record) Get(field string) (any, bool) {
	if _, declared := r.schema.byName[field]; !declared {
		return nil, false
	}
	return r.data[field], true
}

// Fields returns the declared field names in declaration order.
func (r *Record) Fields() []string { return r.schema.Fields() }

// Equal reports whether two records share a schema name and hold deeply
// equal field values.
func (r *Record) Equal(o *Record) bool {
	if r == nil || o == nil {
		return r == o
	}
	if r.schema.name != o.schema.name {
		return false
	}
	return reflect.DeepEqual(r.data, o.data)
}

// String renders the record for diagnostics, fields in declaration order.
func (r *Record) String() string {
	var b strings.Builder
	b.WriteString(r.schema.name)
	b.WriteByte('{')
	for i, f := range r.schema.fields {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s: %s", f.name, diag.Preview(r.data[f.name], r.schema.cfg))
	}
	b.WriteByte('}')
	return b.String()
}
