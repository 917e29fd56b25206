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

package sigval

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"golang.org/x/exp/slices"

	"dirpx.dev/typex/apis"
	"dirpx.dev/typex/config"
	"dirpx.dev/typex/descriptor"
	"dirpx.dev/typex/diag"
)

// Option configures a single Wrap call.
type Option func(*options)

type options struct {
	name           string
	strict         bool
	validateReturn bool
	receiver       bool
	paramNames     []string
	customTypes    map[string]any
	overrides      map[string][]any
	returnTypes    []any
	cfg            apis.Config
	hasCfg         bool
}

// WithName sets the callable name used in diagnostics. Defaults to the
// function's runtime name.
func WithName(name string) Option {
	return func(o *options) { o.name = name }
}

// WithStrict enables annotation-based checking: every parameter's declared
// Go type becomes its expected set unless a custom type or override
// replaces it. Without strict, only parameters named by WithCustomTypes or
// WithOverride are validated.
func WithStrict(on bool) Option {
	return func(o *options) { o.strict = on }
}

// WithValidateReturn toggles result validation. Enabled by default.
func WithValidateReturn(on bool) Option {
	return func(o *options) { o.validateReturn = on }
}

// WithReceiver marks the first non-context parameter as a receiver slot:
// it is bound but never validated.
func WithReceiver() Option {
	return func(o *options) { o.receiver = true }
}

// WithParamNames assigns diagnostic names to the parameters, in declaration
// order, skipping a leading context.Context. Unnamed parameters default to
// arg0..argN.
func WithParamNames(names ...string) Option {
	return func(o *options) { o.paramNames = names }
}

// WithCustomTypes replaces the expected set of the named parameters.
// Values are normalized through the descriptor algebra: a reflect.Type, a
// Descriptor, a []any of alternatives, or a sample value.
func WithCustomTypes(types map[string]any) Option {
	return func(o *options) {
		if o.customTypes == nil {
			o.customTypes = make(map[string]any, len(types))
		}
		for k, v := range types {
			o.customTypes[k] = v
		}
	}
}

// WithOverride replaces the expected set of one parameter with top
// priority. Multiple raw types form a union. An override naming an unknown
// parameter fails at wrap time.
func WithOverride(name string, raws ...any) Option {
	return func(o *options) {
		if o.overrides == nil {
			o.overrides = make(map[string][]any)
		}
		o.overrides[name] = raws
	}
}

// WithReturn overrides the expected set of the first non-error result.
func WithReturn(raws ...any) Option {
	return func(o *options) { o.returnTypes = raws }
}

// WithConfig sets the preview/depth configuration used in diagnostics.
func WithConfig(cfg apis.Config) Option {
	return func(o *options) {
		o.cfg = cfg
		o.hasCfg = true
	}
}

// paramSpec is the wrap-time expectation for one parameter. Specs are
// computed once and read-only afterwards, so concurrent calls through the
// wrapper need no locking.
type paramSpec struct {
	name     string
	index    int // input index in the function type
	position int // 1-based diagnostic position, context excluded
	expected []descriptor.Descriptor // nil means unvalidated
	source   diag.Source
}

// signature is the immutable per-callable validation table.
type signature struct {
	name           string
	fnType         reflect.Type
	cfg            apis.Config
	params         []paramSpec
	suspend        bool // leading context.Context parameter
	validateReturn bool
	retIndex       int // first non-error result, -1 when absent
	retExpected    []descriptor.Descriptor
	retSource      diag.Source
	errIndex       int // trailing error result, -1 when absent
}

var (
	ctxType = reflect.TypeOf((*context.Context)(nil)).Elem()
	errType = reflect.TypeOf((*error)(nil)).Elem()
)

// newSignature derives the validation table for fn under the given options.
func newSignature(fnType reflect.Type, name string, o *options) (*signature, error) {
	sig := &signature{
		name:           name,
		fnType:         fnType,
		cfg:            o.cfg,
		validateReturn: o.validateReturn,
		retIndex:       -1,
		errIndex:       -1,
	}
	if !o.hasCfg {
		sig.cfg = config.DefaultConfig()
	}
	if o.name != "" {
		sig.name = o.name
	}

	first := 0
	if fnType.NumIn() > 0 && fnType.In(0) == ctxType {
		sig.suspend = true
		first = 1
	}

	skipIndex := -1
	if o.receiver && first < fnType.NumIn() {
		skipIndex = first
	}

	position := 0
	for i := first; i < fnType.NumIn(); i++ {
		position++
		p := paramSpec{
			name:     fmt.Sprintf("arg%d", position-1),
			index:    i,
			position: position,
		}
		if n := position - 1; n < len(o.paramNames) && o.paramNames[n] != "" {
			p.name = o.paramNames[n]
		}
		if i != skipIndex {
			if o.strict {
				p.expected = []descriptor.Descriptor{descriptor.FromType(fnType.In(i))}
				p.source = diag.SourceAnnotation
			}
			if raw, ok := o.customTypes[p.name]; ok {
				p.expected = descriptor.NormalizeSet(raw)
				p.source = diag.SourceCustomTypes
			}
		}
		sig.params = append(sig.params, p)
	}

	if err := sig.applyOverrides(o); err != nil {
		return nil, err
	}

	for i := 0; i < fnType.NumOut(); i++ {
		if fnType.Out(i) == errType && i == fnType.NumOut()-1 {
			sig.errIndex = i
			continue
		}
		if sig.retIndex < 0 {
			sig.retIndex = i
		}
	}
	if sig.retIndex >= 0 && sig.validateReturn {
		sig.retExpected = []descriptor.Descriptor{descriptor.FromType(fnType.Out(sig.retIndex))}
		sig.retSource = diag.SourceAnnotation
		if len(o.returnTypes) > 0 {
			sig.retExpected = normalizeAll(o.returnTypes)
			sig.retSource = diag.SourceOverride
		}
	}
	return sig, nil
}

// applyOverrides resolves WithOverride entries against the declared
// parameter names, failing fast on an unknown name.
func (sig *signature) applyOverrides(o *options) error {
	for name, raws := range o.overrides {
		found := false
		for i := range sig.params {
			if sig.params[i].name == name {
				sig.params[i].expected = normalizeAll(raws)
				sig.params[i].source = diag.SourceOverride
				found = true
				break
			}
		}
		if !found {
			avail := make([]string, 0, len(sig.params))
			for _, p := range sig.params {
				avail = append(avail, p.name)
			}
			slices.Sort(avail)
			return &ConfigurationError{
				Option:    "WithOverride",
				Name:      name,
				Available: avail,
			}
		}
	}
	return nil
}

// context renders the diagnostic context, e.g. "Function: Scale [suspend]".
func (sig *signature) context() string {
	ctx := "Function: " + sig.name
	if sig.suspend {
		ctx += " [suspend]"
	}
	return ctx
}

// normalizeAll builds an expected set from raw type designators.
func normalizeAll(raws []any) []descriptor.Descriptor {
	out := make([]descriptor.Descriptor, 0, len(raws))
	for _, raw := range raws {
		out = append(out, descriptor.NormalizeSet(raw)...)
	}
	return out
}

// renderSet renders an expected set for diagnostics.
func renderSet(set []descriptor.Descriptor) string {
	parts := make([]string, len(set))
	for i, d := range set {
		parts[i] = d.String()
	}
	return strings.Join(parts, " | ")
}
