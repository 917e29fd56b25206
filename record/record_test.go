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

package record_test

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"

	"dirpx.dev/typex/descriptor"
	"dirpx.dev/typex/diag"
	"dirpx.dev/typex/record"
)

func userSchema(t *testing.T) *record.Schema {
	t.Helper()
	s, err := record.NewSchema("User",
		record.Field{Name: "name", Type: reflect.TypeOf("")},
		record.Field{Name: "age", Type: reflect.TypeOf(0)},
		record.Field{Name: "email", Type: descriptor.Optional(descriptor.For[string]())},
	)
	assert.NoError(t, err)
	return s
}

func TestSchema_DeclarationErrors(t *testing.T) {
	_, err := record.NewSchema("Bad", record.Field{Name: "", Type: reflect.TypeOf(0)})
	assert.Error(t, err)

	_, err = record.NewSchema("Bad",
		record.Field{Name: "x", Type: reflect.TypeOf(0)},
		record.Field{Name: "x", Type: reflect.TypeOf("")},
	)
	assert.Error(t, err)

	assert.Panics(t, func() {
		record.MustSchema("Bad", record.Field{Name: "", Type: nil})
	})
}

func TestSchema_New_Valid(t *testing.T) {
	s := userSchema(t)

	r, err := s.New(map[string]any{"name": "ada", "age": 36, "email": "ada@example.com"})
	assert.NoError(t, err)

	name, ok := r.Get("name")
	assert.True(t, ok)
	assert.Equal(t, "ada", name.(string))

	// Optional fields may be absent; absent reads as nil.
	r, err = s.New(map[string]any{"name": "ada", "age": 36})
	assert.NoError(t, err)
	email, ok := r.Get("email")
	assert.True(t, ok)
	assert.Equal(t, nil, email)
}

func TestSchema_New_AggregatesAllFieldFailures(t *testing.T) {
	s := userSchema(t)

	// Wrong type, missing required field, unknown field: one report.
	_, err := s.New(map[string]any{"name": 42, "nickname": "a"})
	var report *diag.Report
	assert.True(t, errors.As(err, &report))
	assert.Equal(t, 3, len(report.Failures))
	assert.Equal(t, "Record: User", report.Context)

	names := make([]string, 0, len(report.Failures))
	for _, f := range report.Failures {
		assert.Equal(t, "field", f.Label)
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"nickname", "name", "age"}, names)
}

func TestSchema_New_NominalTyping(t *testing.T) {
	s := userSchema(t)

	// Validation never coerces: a numeric string is not an int.
	_, err := s.New(map[string]any{"name": "ada", "age": "36"})
	var report *diag.Report
	assert.True(t, errors.As(err, &report))
	assert.Equal(t, "age", report.Failures[0].Name)
	assert.Equal(t, "int", report.Failures[0].Expected)
	assert.Equal(t, "string", report.Failures[0].Received)
}

func TestRecord_GetUndeclared(t *testing.T) {
	s := userSchema(t)
	r, err := s.New(map[string]any{"name": "ada", "age": 36})
	assert.NoError(t, err)

	_, ok := r.Get("nope")
	assert.False(t, ok)
}

func TestRecord_EqualAndString(t *testing.T) {
	s := userSchema(t)
	a, err := s.New(map[string]any{"name": "ada", "age": 36})
	assert.NoError(t, err)
	b, err := s.New(map[string]any{"name": "ada", "age": 36})
	assert.NoError(t, err)
	c, err := s.New(map[string]any{"name": "ada", "age": 37})
	assert.NoError(t, err)

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))

	out := a.String()
	assert.True(t, strings.HasPrefix(out, "User{"))
	assert.True(t, strings.Contains(out, `name: "ada"`))
	assert.True(t, strings.Contains(out, "age: 36"))
}

func TestSchema_Introspection(t *testing.T) {
	s := userSchema(t)
	assert.Equal(t, "User", s.Name())
	assert.Equal(t, []string{"name", "age", "email"}, s.Fields())

	d, ok := s.Descriptor("email")
	assert.True(t, ok)
	assert.Equal(t, "string | none", d.String())

	_, ok = s.Descriptor("nope")
	assert.False(t, ok)
}
