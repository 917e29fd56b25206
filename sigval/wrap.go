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

// Package sigval wraps callables with runtime signature validation. A
// wrapper has the identical dynamic signature as the wrapped function,
// validates bound arguments against per-parameter expected sets before the
// call, validates the result after it, and surfaces every failure of one
// invocation as a single aggregated diag.Report.
//
// Expected sets merge three sources with fixed precedence: the declared
// parameter type (only under WithStrict), then WithCustomTypes, then
// WithOverride. A leading context.Context parameter marks the callable
// suspend-capable and is passed through unvalidated; validation always
// completes before the callable runs and never overlaps a suspension.
package sigval

import (
	"reflect"
	"runtime"
	"strings"

	"dirpx.dev/typex/descriptor"
	"dirpx.dev/typex/diag"
	"dirpx.dev/typex/match"
	uref "dirpx.dev/typex/utils/reflect"
)

// Wrap returns a validating wrapper with the same dynamic type as fn.
// The result can be type-asserted back to fn's function type. Wrap fails
// with a *ConfigurationError when fn is not a function or an option names
// an unknown parameter.
//
// Failure delivery per call: when fn's last result is an error, the report
// is returned there with zero values elsewhere and fn is not invoked;
// otherwise the wrapper panics with the *diag.Report.
func Wrap(fn any, opts ...Option) (any, error) {
	fv := reflect.ValueOf(fn)
	if !fv.IsValid() || fv.Kind() != reflect.Func {
		return nil, &ConfigurationError{
			Option: "Wrap",
			Reason: "target is not a function, got " + uref.TypeName(fn),
		}
	}

	o := &options{validateReturn: true}
	for _, opt := range opts {
		opt(o)
	}

	sig, err := newSignature(fv.Type(), funcName(fv), o)
	if err != nil {
		return nil, err
	}

	wrapper := reflect.MakeFunc(fv.Type(), func(args []reflect.Value) []reflect.Value {
		report := diag.NewReport(sig.context(), callSite())

		for _, p := range sig.params {
			if p.expected == nil {
				continue
			}
			v := args[p.index].Interface()
			if uref.IsNil(v) && allowsNone(p.expected) {
				continue
			}
			if !match.Any(v, p.expected) {
				report.Add(&diag.Failure{
					Label:    "parameter",
					Name:     p.name,
					Position: p.position,
					Expected: renderSet(p.expected),
					Received: uref.TypeName(v),
					Preview:  diag.Preview(v, sig.cfg),
					Source:   p.source,
				})
			}
		}
		if !report.Empty() {
			sig.cfg.Logger.V(1).Info("argument validation failed",
				"callable", sig.name, "failures", len(report.Failures))
			return sig.deliver(report)
		}

		var out []reflect.Value
		if sig.fnType.IsVariadic() {
			out = fv.CallSlice(args)
		} else {
			out = fv.Call(args)
		}

		if sig.retExpected != nil {
			v := out[sig.retIndex].Interface()
			skip := uref.IsNil(v) && allowsNone(sig.retExpected)
			if !skip && !match.Any(v, sig.retExpected) {
				report.Add(&diag.Failure{
					Label:    "return value",
					Expected: renderSet(sig.retExpected),
					Received: uref.TypeName(v),
					Preview:  diag.Preview(v, sig.cfg),
					Source:   sig.retSource,
				})
				return sig.deliver(report)
			}
		}
		return out
	})
	return wrapper.Interface(), nil
}

// MustWrap is Wrap that panics on configuration errors.
func MustWrap(fn any, opts ...Option) any {
	out, err := Wrap(fn, opts...)
	if err != nil {
		panic(err)
	}
	return out
}

// WrapAs wraps fn preserving its static function type.
func WrapAs[F any](fn F, opts ...Option) (F, error) {
	out, err := Wrap(fn, opts...)
	if err != nil {
		var zero F
		return zero, err
	}
	return out.(F), nil
}

// deliver surfaces the report through the error result when the callable
// declares one, and panics otherwise.
func (sig *signature) deliver(report *diag.Report) []reflect.Value {
	if sig.errIndex < 0 {
		panic(report)
	}
	out := make([]reflect.Value, sig.fnType.NumOut())
	for i := range out {
		out[i] = reflect.Zero(sig.fnType.Out(i))
	}
	ev := reflect.New(errType).Elem()
	ev.Set(reflect.ValueOf(report))
	out[sig.errIndex] = ev
	return out
}

func allowsNone(set []descriptor.Descriptor) bool {
	for _, d := range set {
		if d.AllowsNone() {
			return true
		}
	}
	return false
}

// funcName extracts a short callable name from the runtime symbol.
func funcName(fv reflect.Value) string {
	rf := runtime.FuncForPC(fv.Pointer())
	if rf == nil {
		return "func"
	}
	name := rf.Name()
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	return name
}

// callSite walks the stack past reflect's call machinery and this package
// to the wrapper's caller.
func callSite() diag.CallSite {
	var pcs [32]uintptr
	n := runtime.Callers(2, pcs[:])
	frames := runtime.CallersFrames(pcs[:n])
	for {
		frame, more := frames.Next()
		fn := frame.Function
		internal := strings.HasPrefix(fn, "reflect.") ||
			strings.Contains(fn, "typex/sigval.")
		if !internal && frame.File != "" {
			return diag.CallSite{File: frame.File, Line: frame.Line}
		}
		if !more {
			return diag.CallSite{}
		}
	}
}
