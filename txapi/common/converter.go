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

package common

// Converter is the registry-facing conversion contract.
//
// # Overview
//
// Converter describes a per-target-type conversion rule as registered in
// a typex registry. While Coercible is implemented by the value being
// converted, a Converter belongs to the target type: it answers "build me
// one of these from that" for every source value the engine routes to it.
//
// Registered converters sit between the Coercible fast-path and the
// reflect-based constructor fallback: they run for every source value
// whose target type they are registered under, and their answer is final.
// A converter that cannot handle a particular source MUST return an
// error; it cannot defer to the fallback. This makes registration an
// explicit ownership claim over the target type's conversion semantics.
//
// # Contract
//
//   - Convert MUST return a value whose dynamic type is exactly the
//     registered target type, or an error.
//   - Convert MUST be deterministic for a given source value.
//   - Implementations MUST be safe for concurrent use by multiple
//     goroutines; registries are read-mostly and shared process-wide.
//   - Implementations MUST NOT perform blocking operations or I/O.
//   - Errors SHOULD name the reason the source was rejected; the engine
//     wraps them with source/target context, so implementations SHOULD
//     NOT duplicate type names in their messages.
//
// # Usage
//
//	type timestampConverter struct{}
//
//	func (timestampConverter) Convert(v any) (any, error) {
//	    switch s := v.(type) {
//	    case string:
//	        return time.Parse(time.RFC3339, s)
//	    case int64:
//	        return time.Unix(s, 0), nil
//	    }
//	    return nil, errors.New("unsupported source")
//	}
type Converter interface {
	// Convert builds a value of the registered target type from v.
	Convert(v any) (any, error)
}

// ConverterFunc adapts a plain function to the Converter interface.
//
// The full Converter contract applies to the wrapped function, including
// the exact-dynamic-type rule and concurrency safety.
type ConverterFunc func(v any) (any, error)

// Convert implements Converter for ConverterFunc.
func (f ConverterFunc) Convert(v any) (any, error) {
	return f(v)
}
