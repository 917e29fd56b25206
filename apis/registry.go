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

package apis

import "reflect"

// ConvertFunc converts v into a value of the target type the function was
// registered for. It returns an error when no sensible conversion exists;
// the coercion engine wraps such errors with source/target context.
type ConvertFunc func(v any, cfg Config) (any, error)

// Registry provides per-type conversion rules for the coercion engine.
// Keep it minimal so implementations can be lock-free or sync.Map-backed.
type Registry interface {
	// Register associates a target reflect.Type with a conversion rule.
	// Re-registering an already-known type is a conflict.
	Register(t reflect.Type, fn ConvertFunc) error
	// Lookup returns the conversion rule for a target type if present.
	Lookup(t reflect.Type) (fn ConvertFunc, ok bool)
	// Entries returns a snapshot for diagnostics/docs (order is unspecified).
	Entries() []Entry
	// Count returns the number of registered entries.
	Count() int
	// Reset clears all registered entries.
	Reset()
}

// Entry is a single (type, rule) association in a Registry snapshot.
type Entry struct {
	// Type is the registered target reflect.Type.
	Type reflect.Type
	// Convert is the associated conversion rule.
	Convert ConvertFunc
}
