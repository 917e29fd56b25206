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

package registry

import (
	"errors"
	"reflect"
	"sync"

	"dirpx.dev/typex/apis"
)

var (
	// ErrNilType is returned when a nil reflect.Type is provided.
	ErrNilType = errors.New("typex(registry): nil reflect.Type provided")
	// ErrNilConverter is returned when a nil conversion rule is provided.
	ErrNilConverter = errors.New("typex(registry): nil converter provided")
	// ErrConflictingRegistration indicates an attempt to re-register
	// a type that already has a conversion rule.
	ErrConflictingRegistration = errors.New("typex(registry): conflicting type registration")
)

// New constructs an empty converter Registry.
func New() apis.Registry {
	return &registry{}
}

// registry is a simple Registry implementation backed by sync.Map.
type registry struct {
	// mu guards write-side consistency and counter
	mu sync.Mutex
	// m maps target reflect.Type to its conversion rule.
	m sync.Map // map[reflect.Type]apis.ConvertFunc
	// count tracks the number of registered entries.
	count int
}

// Register associates target type t with a conversion rule.
// Conversion rules are not comparable, so any re-registration of a known
// type is treated as a conflict.
func (r *registry) Register(t reflect.Type, fn apis.ConvertFunc) error {
	// Validate inputs early.
	if t == nil {
		return ErrNilType
	}
	if fn == nil {
		return ErrNilConverter
	}

	// Fast read path: conflict check without locking.
	if _, ok := r.m.Load(t); ok {
		return ErrConflictingRegistration
	}

	// Write path: guard with a mutex to keep counter consistent and avoid ABA.
	r.mu.Lock()
	defer r.mu.Unlock()

	// Re-check under lock in case another goroutine stored meanwhile.
	if _, ok := r.m.Load(t); ok {
		return ErrConflictingRegistration
	}

	r.m.Store(t, fn)
	r.count++
	return nil
}

// Lookup returns the conversion rule for a target type if present.
func (r *registry) Lookup(t reflect.Type) (apis.ConvertFunc, bool) {
	if t == nil {
		return nil, false
	}
	if v, ok := r.m.Load(t); ok {
		return v.(apis.ConvertFunc), true
	}
	return nil, false
}

// Entries returns a snapshot for diagnostics/docs (order is unspecified).
func (r *registry) Entries() []apis.Entry {
	entries := make([]apis.Entry, 0, r.Count())
	r.m.Range(func(key, value any) bool {
		entries = append(entries, apis.Entry{
			Type:    key.(reflect.Type),
			Convert: value.(apis.ConvertFunc),
		})
		return true
	})
	return entries
}

// Count returns the number of registered entries.
func (r *registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}

// Reset clears all registered entries.
func (r *registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.m = sync.Map{}
	r.count = 0
}
