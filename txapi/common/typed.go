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

// Typed lets a value declare the target shape it should be checked or
// coerced against.
//
// # Overview
//
// Typed is the self-describing contract of the typex descriptor algebra.
// Descriptor normalization unwraps values implementing Typed by calling
// TypeDescriptor and normalizing the result instead of the value itself.
// This lets configuration objects, schema fields, and wrapper options
// carry their own type declarations without the caller knowing the
// descriptor API.
//
// The returned value may be anything normalization accepts:
//
//   - A reflect.Type (the common case).
//   - An already-built descriptor.
//   - A slice of alternatives, forming a union.
//   - Another Typed value; unwrapping is repeated up to a small fixed
//     bound, after which normalization degrades to the value's own
//     dynamic type rather than looping forever.
//
// # Contract
//
//   - TypeDescriptor MUST be deterministic for a given receiver state.
//   - The returned declaration SHOULD be type-level: it describes what
//     the value stands for, not the value's current contents.
//   - Implementations MUST be safe for concurrent use and MUST NOT
//     perform blocking operations or I/O.
//   - Implementations SHOULD return precomputed declarations; building a
//     fresh descriptor tree per call wastes the normalization cache.
//
// # Usage
//
//	type AgeField struct{}
//
//	func (AgeField) TypeDescriptor() any { return reflect.TypeOf(0) }
type Typed interface {
	// TypeDescriptor returns the raw type declaration this value stands
	// for, in any form accepted by descriptor normalization.
	TypeDescriptor() any
}

// TypedFunc adapts a plain function to the Typed interface.
//
// The wrapped function is subject to the full Typed contract: it MUST be
// deterministic, concurrency-safe, and free of blocking operations.
type TypedFunc func() any

// TypeDescriptor implements Typed for TypedFunc.
func (f TypedFunc) TypeDescriptor() any {
	return f()
}
