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

import "reflect"

// Coercible lets a value convert itself into another type.
//
// # Overview
//
// Coercible is the primary, zero-registry fast-path for type conversion
// inside the typex coercion subsystem. When a value implements Coercible
// and reports ok=true for a requested target type, the coercion logic
// MUST use the returned value and MUST NOT attempt any additional
// strategies (such as registry lookups or reflect-based construction) for
// that value and target.
//
// A false ok is not a failure: it tells the engine that this value has no
// opinion about that particular target, and the remaining strategies run
// normally. This lets a type accelerate a handful of conversions it knows
// well while leaving everything else to the engine.
//
// # Contract
//
//   - When ok is true, the returned value MUST have exactly the dynamic
//     type that was requested. A mismatched dynamic type corrupts
//     downstream consumers that type-assert on the target.
//   - CoerceTo MUST be deterministic for a given receiver state and
//     target type.
//   - Implementations MUST be safe to call from multiple goroutines
//     concurrently.
//   - Implementations MUST NOT perform blocking operations or I/O.
//   - A false ok MUST leave the receiver unmodified.
//
// # Usage
//
//	type Celsius float64
//
//	func (c Celsius) CoerceTo(target reflect.Type) (any, bool) {
//	    if target == reflect.TypeOf("") {
//	        return fmt.Sprintf("%.1f°C", float64(c)), true
//	    }
//	    return nil, false
//	}
//
// # Performance
//
// Implementations are intended to be extremely cheap:
//
//   - SHOULD be constant-time per supported target.
//   - SHOULD compare the target against precomputed reflect.Type values
//     rather than rebuilding them per call.
//   - MUST NOT recurse back into the coercion engine; doing so can
//     deadlock custom engines that serialize strategy execution.
type Coercible interface {
	// CoerceTo converts the receiver into a value of type target.
	//
	// The returned value is used verbatim when ok is true; it MUST have
	// exactly the requested dynamic type. A false ok defers to the
	// engine's remaining strategies.
	CoerceTo(target reflect.Type) (out any, ok bool)
}

// TypeCoercer converts values of type T under an injected policy.
//
// # Overview
//
// TypeCoercer is the generic, strategy-shaped counterpart of Coercible.
// Where Coercible is implemented on the value itself, TypeCoercer[T]
// separates the subject being converted (a value of type T) from the
// strategy deciding how to convert it. This is useful when:
//
//   - The same conversion policy applies to many types.
//   - Conversion behavior must be configured or injected per subsystem.
//   - The converted types cannot be modified to carry methods.
//
// # Contract
//
//   - The ok/out semantics of Coercible apply unchanged.
//   - Implementations MUST be safe for concurrent use.
type TypeCoercer[T any] interface {
	// CoerceTo converts v into a value of type target.
	CoerceTo(v T, target reflect.Type) (out any, ok bool)
}

// CoercibleFunc adapts a plain function to the Coercible interface.
//
// # Overview
//
// CoercibleFunc allows standalone functions with the CoerceTo signature to
// satisfy Coercible, for cases where conversion behavior is passed as a
// dependency rather than implemented on the converted type.
//
// All contractual requirements of Coercible apply to the wrapped
// function, including the exact-dynamic-type rule and concurrency safety.
type CoercibleFunc func(target reflect.Type) (any, bool)

// CoerceTo implements Coercible for CoercibleFunc.
func (f CoercibleFunc) CoerceTo(target reflect.Type) (any, bool) {
	return f(target)
}
