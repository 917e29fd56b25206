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

// Package typex provides a global, process-wide runtime type coercion and
// validation service.
//
// typex is responsible for turning "some loosely-typed Go value" into a
// value of a declared target shape, and for answering whether a value
// already conforms to a shape without converting it. Targets are expressed
// as descriptor trees: simple types, sequences, sets, mappings,
// fixed-arity tuples, and ordered unions of alternatives.
//
// # Design
//
// The core of typex is a read-mostly global snapshot (state). The snapshot
// holds four things:
//
//   - Config: rules that bound coercion and diagnostics (recursion depth,
//     value-preview sizes, the logger).
//
//   - Registry: a process-wide mapping from target Go types to explicit
//     conversion rules. This is how you force custom conversions for
//     domain types like timestamps or identifiers. The registry can be
//     written to at runtime (RegisterConverter).
//
//   - Coercer: a read-only object that answers "what is this value, as
//     that shape?". For simple targets the coercer tries multiple
//     strategies, in priority order:
//     1. If the value implements apis.Coercible, use v.CoerceTo(target).
//     2. If the target type is found in the Registry, use that rule.
//     3. Otherwise, fall back to a reflect-based strategy that builds
//     the target like its general constructor would.
//     Container and union targets recurse through the descriptor tree.
//     Coercer is expected to be concurrency-safe for reads.
//
//   - Builder: a pluggable factory that knows how to construct Registry
//     and Coercer instances for a given Config (and optional extension
//     data). The Builder is also allowed to reuse/migrate state from
//     previous Registry/Coercer instances.
//
// All of these live inside a single immutable struct called state.
// The package holds an atomic pointer to the current state. Readers load
// that pointer, use it, and never mutate it. Writers build a brand-new
// state and atomically swap it in.
//
// This means typex conversions are lock-free on the hot path:
//
//	n, err := typex.CoerceAs[int]("42")
//	ok := typex.Matches(v, reflect.TypeOf(0))
//
// and concurrent callers always see a consistent snapshot.
//
// # Global API
//
// Read helpers (Coerce, CoerceAs, Matches, ToSequenceOf, ToSetOf,
// ToMappingOf, Registry, Coercer) are safe for concurrent use without
// additional locking; they always read from the latest published
// snapshot. Mutation helpers (SetConfig, SetBuilder, SetExt, SetRegistry,
// SetCoercer, SetAll, the Pin/Unpin pairs) acquire an internal build
// lock, derive a new snapshot, and publish it atomically; SetRegistry and
// SetCoercer pin their layer so later SetConfig calls stop rebuilding it
// until the matching Unpin call.
//
// Validation of call signatures is layered on top of this core by the
// sigval package, and schema-carrying records by the record package; both
// share the descriptor algebra and the structural validator.
//
// # Scope
//
// typex is intentionally small. It does not try to be a serialization
// framework or a schema language. It only solves one job:
//
//	"Given a loosely-typed value and a declared target shape, produce a
//	 conforming value or a precise diagnostic saying why it cannot."
//
// Everything else (wire formats, persistence, RPC binding, etc.) belongs
// to higher layers.
package typex
