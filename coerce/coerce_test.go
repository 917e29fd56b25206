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

package coerce_test

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"

	"dirpx.dev/typex/apis"
	"dirpx.dev/typex/builder"
	"dirpx.dev/typex/coerce"
	"dirpx.dev/typex/config"
	"dirpx.dev/typex/descriptor"
)

func newCoercer(t *testing.T) (apis.Coercer, apis.Config) {
	t.Helper()
	b := builder.New()
	cfg := config.DefaultConfig()
	reg := b.BuildRegistry(cfg, nil, nil)
	return b.BuildCoercer(cfg, reg, nil, nil), cfg
}

func TestCoerce_SimpleFastPath(t *testing.T) {
	crc, cfg := newCoercer(t)

	// Exact type: returned unchanged, no strategy runs.
	out, err := crc.Coerce(42, descriptor.For[int](), cfg)
	assert.NoError(t, err)
	assert.Equal(t, 42, out.(int))

	// Empty interface target accepts anything unchanged.
	out, err = crc.Coerce("x", descriptor.For[any](), cfg)
	assert.NoError(t, err)
	assert.Equal(t, "x", out.(string))
}

func TestCoerce_SimpleViaRegistry(t *testing.T) {
	crc, cfg := newCoercer(t)

	out, err := crc.Coerce("42", descriptor.For[int](), cfg)
	assert.NoError(t, err)
	assert.Equal(t, 42, out.(int))

	out, err = crc.Coerce(3, descriptor.For[string](), cfg)
	assert.NoError(t, err)
	assert.Equal(t, "3", out.(string))
}

func TestCoerce_NumericNarrowingIsChecked(t *testing.T) {
	crc, cfg := newCoercer(t)

	// Out-of-range sources fail through the registry rule as well as the
	// constructor fallback; no path wraps silently.
	_, err := crc.Coerce(uint64(1<<63+5), descriptor.For[int](), cfg)
	assert.Error(t, err)

	_, err = crc.Coerce(math.NaN(), descriptor.For[int](), cfg)
	assert.Error(t, err)

	_, err = crc.Coerce(1e300, descriptor.For[int](), cfg)
	assert.Error(t, err)

	// The same value in range converts exactly.
	out, err := crc.Coerce(uint64(1 << 40), descriptor.For[int](), cfg)
	assert.NoError(t, err)
	assert.Equal(t, 1<<40, out.(int))
}

func TestCoerce_SimpleFailure(t *testing.T) {
	crc, cfg := newCoercer(t)

	_, err := crc.Coerce("ten", descriptor.For[int](), cfg)
	assert.Error(t, err)

	var ce *coerce.ConversionError
	assert.True(t, errors.As(err, &ce))
	assert.Equal(t, "string", ce.Source)
	assert.Equal(t, "int", ce.Target)
}

func TestCoerce_SequenceRecursion(t *testing.T) {
	crc, cfg := newCoercer(t)

	out, err := crc.Coerce([]any{"1", 2, 3.0}, descriptor.NewSequenceOf(descriptor.For[int]()), cfg)
	assert.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, out.([]int))

	// Shape-only: elements pass through unchanged.
	out, err = crc.Coerce([]any{"1", 2}, descriptor.NewSequence(), cfg)
	assert.NoError(t, err)
	assert.Equal(t, []any{"1", 2}, out.([]any))

	// Non-iterable input wraps as a single-element sequence.
	out, err = crc.Coerce("7", descriptor.NewSequenceOf(descriptor.For[int]()), cfg)
	assert.NoError(t, err)
	assert.Equal(t, []int{7}, out.([]int))
}

func TestCoerce_Set(t *testing.T) {
	crc, cfg := newCoercer(t)

	out, err := crc.Coerce([]any{"1", "2", "1"}, descriptor.NewSetOf(descriptor.For[int]()), cfg)
	assert.NoError(t, err)
	s := out.(map[int]struct{})
	assert.Equal(t, 2, len(s))
	_, ok := s[1]
	assert.True(t, ok)
}

func TestCoerce_Mapping_PairsBeforeAlternating(t *testing.T) {
	crc, cfg := newCoercer(t)
	d := descriptor.NewMappingOf(descriptor.For[int](), descriptor.For[string]())

	// A flat list of two-element entries binds as pairs, not alternation.
	out, err := crc.Coerce([]any{[]any{1, "a"}, []any{2, "b"}}, d, cfg)
	assert.NoError(t, err)
	m := out.(map[int]string)
	assert.Equal(t, "a", m[1])
	assert.Equal(t, "b", m[2])

	// Even-length alternating fallback, with key/value coercion.
	out, err = crc.Coerce([]any{"1", "a", "2", "b"}, d, cfg)
	assert.NoError(t, err)
	m = out.(map[int]string)
	assert.Equal(t, "a", m[1])
	assert.Equal(t, "b", m[2])

	// Odd-length sources cannot form a mapping.
	_, err = crc.Coerce([]any{1, "a", 2}, d, cfg)
	assert.Error(t, err)
	// Empty sequences cannot either.
	_, err = crc.Coerce([]any{}, d, cfg)
	assert.Error(t, err)
}

func TestCoerce_Mapping_FromMap(t *testing.T) {
	crc, cfg := newCoercer(t)

	out, err := crc.Coerce(
		map[string]string{"1": "a", "2": "b"},
		descriptor.NewMappingOf(descriptor.For[int](), descriptor.For[string]()),
		cfg,
	)
	assert.NoError(t, err)
	m := out.(map[int]string)
	assert.Equal(t, "a", m[1])
	assert.Equal(t, "b", m[2])
}

func TestCoerce_Mapping_RejectsSetSource(t *testing.T) {
	crc, cfg := newCoercer(t)

	// A set has members, not entries; it never becomes a mapping.
	_, err := crc.Coerce(map[string]struct{}{"a": {}}, descriptor.NewMapping(), cfg)
	assert.Error(t, err)
}

func TestCoerce_Tuple_ExactArity(t *testing.T) {
	crc, cfg := newCoercer(t)
	d := descriptor.NewTupleOf(descriptor.For[int](), descriptor.For[string]())

	out, err := crc.Coerce([]any{"1", 2}, d, cfg)
	assert.NoError(t, err)
	tup := out.([]any)
	assert.Equal(t, 1, tup[0].(int))
	assert.Equal(t, "2", tup[1].(string))

	_, err = crc.Coerce([]any{1}, d, cfg)
	assert.Error(t, err)
	_, err = crc.Coerce([]any{1, "a", 2}, d, cfg)
	assert.Error(t, err)
}

func TestCoerce_Union_FirstSuccessInOrder(t *testing.T) {
	crc, cfg := newCoercer(t)

	// int | string: a numeric string converts to int first.
	d := descriptor.NewUnionOf(descriptor.For[int](), descriptor.For[string]())
	out, err := crc.Coerce("42", d, cfg)
	assert.NoError(t, err)
	assert.Equal(t, 42, out.(int))

	// string | int: the same input stays a string.
	d = descriptor.NewUnionOf(descriptor.For[string](), descriptor.For[int]())
	out, err = crc.Coerce("42", d, cfg)
	assert.NoError(t, err)
	assert.Equal(t, "42", out.(string))
}

func TestCoerce_Union_TotalFailureListsAlternatives(t *testing.T) {
	crc, cfg := newCoercer(t)

	type opaque struct{ ch chan int }
	d := descriptor.NewUnionOf(descriptor.For[int](), descriptor.For[float64]())
	_, err := crc.Coerce(opaque{}, d, cfg)
	assert.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "int | float64"))
}

func TestCoerce_None(t *testing.T) {
	crc, cfg := newCoercer(t)

	out, err := crc.Coerce(nil, descriptor.NewNone(), cfg)
	assert.NoError(t, err)
	assert.Equal(t, nil, out)

	_, err = crc.Coerce(42, descriptor.NewNone(), cfg)
	assert.Error(t, err)

	// Optional targets accept nil through the union path.
	out, err = crc.Coerce(nil, descriptor.Optional(descriptor.For[int]()), cfg)
	assert.NoError(t, err)
	assert.Equal(t, nil, out)
}

func TestCoerce_MaxDepthGuard(t *testing.T) {
	crc, _ := newCoercer(t)
	cfg := config.NewConfig(config.WithMaxDepth(1))

	// Depth 1 allows the outer container but not nested element coercion.
	nested := descriptor.NewSequenceOf(descriptor.NewSequenceOf(descriptor.For[int]()))
	_, err := crc.Coerce([]any{[]any{"1"}}, nested, cfg)
	assert.Error(t, err)
	assert.True(t, errors.Is(err, coerce.ErrMaxDepth))
}
