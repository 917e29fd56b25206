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

package typex

import (
	"errors"
	"reflect"
	"sync"
	"sync/atomic"

	"dirpx.dev/typex/apis"
	"dirpx.dev/typex/builder"
	"dirpx.dev/typex/config"
	"dirpx.dev/typex/descriptor"
	"dirpx.dev/typex/match"
)

// init initializes the global typex state.
func init() {
	// Initialize state with default cfg, reg, and crc.
	s := &state{cfg: config.DefaultConfig()}
	b := builder.New()
	s.reg = b.BuildRegistry(s.cfg, nil, nil)
	s.crc = b.BuildCoercer(s.cfg, s.reg, nil, nil)
	s.bld = b
	// Store the initial state atomically.
	st.Store(s)
}

var (
	// ErrNilRegistry is returned when a builder returns a nil registry.
	ErrNilRegistry = errors.New("typex: builder returned nil registry")
	// ErrNilCoercer is returned when a builder returns a nil coercer.
	ErrNilCoercer = errors.New("typex: builder returned nil coercer")
)

// Coerce converts v into the shape described by target using the global
// typex crc. The target accepts anything the descriptor algebra
// normalizes: a reflect.Type, a Descriptor, a []any of union alternatives,
// or a sample value.
// This is a convenience wrapper around the global crc.
func Coerce(v any, target any) (any, error) {
	s := st.Load()
	return s.crc.Coerce(v, descriptor.Normalize(target), s.cfg)
}

// CoerceAs converts v into a value of type T using the global typex crc.
// This is a convenience wrapper around the global crc.
func CoerceAs[T any](v any) (T, error) {
	s := st.Load()
	out, err := s.crc.Coerce(v, descriptor.For[T](), s.cfg)
	if err != nil {
		var zero T
		return zero, err
	}
	return out.(T), nil
}

// Matches reports whether v already conforms to target without any
// conversion. It never mutates v.
func Matches(v any, target any) bool {
	return match.Value(v, descriptor.Normalize(target))
}

// ToSequenceOf coerces v into a sequence. With an element type, every
// element is coerced individually; without one, only the outer shape is
// produced. Non-iterable input becomes a single-element sequence.
func ToSequenceOf(v any, elem ...any) (any, error) {
	d := descriptor.NewSequence()
	if len(elem) > 0 {
		d = descriptor.NewSequenceOf(descriptor.Normalize(elem[0]))
	}
	s := st.Load()
	return s.crc.Coerce(v, d, s.cfg)
}

// ToSetOf coerces v into a set (a map with empty-struct members),
// optionally coercing every member to the element type.
func ToSetOf(v any, elem ...any) (any, error) {
	d := descriptor.NewSet()
	if len(elem) > 0 {
		d = descriptor.NewSetOf(descriptor.Normalize(elem[0]))
	}
	s := st.Load()
	return s.crc.Coerce(v, d, s.cfg)
}

// ToMappingOf coerces v into a mapping, optionally coercing keys and
// values. Sequence input follows the pairing rule: a sequence of
// two-element pairs first, an even-length alternating sequence second.
func ToMappingOf(v any, keyval ...any) (any, error) {
	d := descriptor.NewMapping()
	if len(keyval) >= 2 {
		d = descriptor.NewMappingOf(descriptor.Normalize(keyval[0]), descriptor.Normalize(keyval[1]))
	}
	s := st.Load()
	return s.crc.Coerce(v, d, s.cfg)
}

// RegisterConverter adds a per-type conversion rule to the global typex reg.
// This is a convenience wrapper around the global reg.
func RegisterConverter(t reflect.Type, fn apis.ConvertFunc) error {
	return st.Load().reg.Register(t, fn)
}

// SetAll explicitly sets all global typex state components.
//
// Nil arguments leave the corresponding component unchanged,
// except for ext which is always replaced.
//
// This is a convenience wrapper around the global state.
func SetAll(cfg *apis.Config, ext any, reg apis.Registry, crc apis.Coercer, bld apis.Builder) {
	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()

	// Configuration
	ncfg := old.cfg
	if cfg != nil {
		ncfg = *cfg
	}

	// Extension
	next := ext

	// Builder
	nbld := old.bld
	if bld != nil {
		nbld = bld
	}

	// Registry
	nreg := reg
	npreg := false
	if nreg == nil {
		nreg = nbld.BuildRegistry(ncfg, old.reg, next)
	} else {
		npreg = true
	}

	// Coercer
	ncrc := crc
	npcrc := false
	if ncrc == nil {
		ncrc = nbld.BuildCoercer(ncfg, nreg, old.crc, next)
	} else {
		npcrc = true
	}

	// Ensure non-nil reg and crc.
	if nreg == nil {
		panic(ErrNilRegistry)
	}
	if ncrc == nil {
		panic(ErrNilCoercer)
	}

	// Store the new state atomically.
	st.Store(
		&state{
			cfg:  ncfg,
			ext:  next,
			reg:  nreg,
			crc:  ncrc,
			bld:  nbld,
			preg: npreg,
			pcrc: npcrc,
		},
	)
}

// Config returns the global typex configuration.
func Config() apis.Config {
	return st.Load().cfg
}

// SetConfig sets the global typex configuration to cfg.
// It rebuilds the global reg and crc using the new configuration.
// This is a convenience wrapper around the global state.
func SetConfig(cfg apis.Config) {
	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()
	b := old.bld

	// Build new reg and crc based on the new cfg and old state.
	nreg := old.reg
	if !old.preg {
		nreg = b.BuildRegistry(cfg, old.reg, old.ext)
	}
	ncrc := old.crc
	if !old.pcrc {
		ncrc = b.BuildCoercer(cfg, nreg, old.crc, old.ext)
	}

	// Ensure non-nil reg and crc.
	if nreg == nil {
		panic(ErrNilRegistry)
	}
	if ncrc == nil {
		panic(ErrNilCoercer)
	}

	// Store the new state atomically.
	st.Store(
		&state{
			cfg:  cfg,
			ext:  old.ext,
			reg:  nreg,
			crc:  ncrc,
			bld:  b,
			preg: old.preg,
			pcrc: old.pcrc,
		},
	)
}

// Registry returns the global typex reg.
func Registry() apis.Registry {
	return st.Load().reg
}

// SetRegistry sets the global typex reg to reg.
// It uses the global typex configuration to rebuild the global crc.
// This is a convenience wrapper around the global state.
func SetRegistry(reg apis.Registry) {
	if reg == nil {
		return
	}

	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()
	b := old.bld

	// Build new crc based on the old cfg and new reg.
	ncrc := old.crc
	if !old.pcrc {
		ncrc = b.BuildCoercer(old.cfg, reg, old.crc, old.ext)
	}

	// Ensure non-nil crc.
	if ncrc == nil {
		panic(ErrNilCoercer)
	}

	// Store the new state atomically.
	st.Store(
		&state{
			cfg:  old.cfg,
			ext:  old.ext,
			reg:  reg,
			crc:  ncrc,
			bld:  b,
			preg: true,
			pcrc: old.pcrc,
		},
	)
}

// Coercer returns the global typex crc.
func Coercer() apis.Coercer {
	return st.Load().crc
}

// SetCoercer sets the global typex crc to crc.
// It uses the global typex configuration and reg.
// This is a convenience wrapper around the global state.
func SetCoercer(crc apis.Coercer) {
	if crc == nil {
		return
	}

	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()

	// Store the new state atomically.
	st.Store(
		&state{
			cfg:  old.cfg,
			ext:  old.ext,
			reg:  old.reg,
			crc:  crc,
			bld:  old.bld,
			preg: old.preg,
			pcrc: true,
		},
	)
}

// Builder returns the global typex bld.
func Builder() apis.Builder {
	return st.Load().bld
}

// SetBuilder sets the global typex bld to b.
// This is a convenience wrapper around the global state.
func SetBuilder(b apis.Builder) {
	if b == nil {
		return
	}

	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()

	// Build new reg and crc based on the new bld and old state.
	nreg := old.reg
	if !old.preg {
		nreg = b.BuildRegistry(old.cfg, old.reg, old.ext)
	}
	ncrc := old.crc
	if !old.pcrc {
		ncrc = b.BuildCoercer(old.cfg, nreg, old.crc, old.ext)
	}

	// Ensure non-nil reg and crc.
	if nreg == nil {
		panic(ErrNilRegistry)
	}
	if ncrc == nil {
		panic(ErrNilCoercer)
	}

	// Store the new state atomically.
	st.Store(
		&state{
			cfg:  old.cfg,
			ext:  old.ext,
			reg:  nreg,
			crc:  ncrc,
			bld:  b,
			preg: old.preg,
			pcrc: old.pcrc,
		},
	)
}

// SetExt replaces extension config and rebuilds non-pinned layers via the builder.
func SetExt[T any](ext T) {
	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()
	b := old.bld

	// Build new reg and crc based on the new ext and old state.
	nreg := old.reg
	if !old.preg {
		nreg = b.BuildRegistry(old.cfg, old.reg, ext)
	}
	ncrc := old.crc
	if !old.pcrc {
		ncrc = b.BuildCoercer(old.cfg, nreg, old.crc, ext)
	}

	// Ensure non-nil reg and crc.
	if nreg == nil {
		panic(ErrNilRegistry)
	}
	if ncrc == nil {
		panic(ErrNilCoercer)
	}

	// Store the new state atomically.
	st.Store(
		&state{
			cfg:  old.cfg,
			ext:  ext,
			reg:  nreg,
			crc:  ncrc,
			bld:  b,
			preg: old.preg,
			pcrc: old.pcrc,
		},
	)
}

// ExtAs returns the global typex extension config as type T.
func ExtAs[T any]() (T, bool) {
	ext, ok := st.Load().ext.(T)
	return ext, ok
}

// IsRegistryPinned returns whether the global typex reg is pinned (immutable).
func IsRegistryPinned() bool {
	return st.Load().preg
}

// PinRegistry makes the global typex reg immutable.
func PinRegistry() {
	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()

	// Store the new state atomically.
	st.Store(
		&state{
			cfg:  old.cfg,
			ext:  old.ext,
			reg:  old.reg,
			crc:  old.crc,
			bld:  old.bld,
			preg: true,
			pcrc: old.pcrc,
		},
	)
}

// UnpinRegistry makes the global typex reg mutable again.
func UnpinRegistry() {
	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()

	// Store the new state atomically.
	st.Store(
		&state{
			cfg:  old.cfg,
			ext:  old.ext,
			reg:  old.reg,
			crc:  old.crc,
			bld:  old.bld,
			preg: false,
			pcrc: old.pcrc,
		},
	)
}

// IsCoercerPinned returns whether the global typex crc is pinned (immutable).
func IsCoercerPinned() bool {
	return st.Load().pcrc
}

// PinCoercer makes the global typex crc immutable.
func PinCoercer() {
	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()

	// Store the new state atomically.
	st.Store(
		&state{
			cfg:  old.cfg,
			ext:  old.ext,
			reg:  old.reg,
			crc:  old.crc,
			bld:  old.bld,
			preg: old.preg,
			pcrc: true,
		},
	)
}

// UnpinCoercer makes the global typex crc mutable again.
func UnpinCoercer() {
	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()

	// Store the new state atomically.
	st.Store(
		&state{
			cfg:  old.cfg,
			ext:  old.ext,
			reg:  old.reg,
			crc:  old.crc,
			bld:  old.bld,
			preg: old.preg,
			pcrc: false,
		},
	)
}

// buildMu serializes writers (reconfigurations/swaps) so we never publish
// partially-built snapshots.
var buildMu sync.Mutex

// st is the global typex state.
var st atomic.Pointer[state]

// state is the global typex state snapshot.
// Immutable snapshot published atomically via st.Store; never mutate fields
// of a published state. Writers create a new state and swap it atomically.
type state struct {
	// cfg is the global typex configuration.
	cfg apis.Config
	// ext is the global typex extension configuration.
	ext any
	// reg is the global typex reg.
	reg apis.Registry
	// crc is the global typex crc.
	crc apis.Coercer
	// bld is the global typex bld.
	bld apis.Builder
	// preg indicates whether the reg is pinned (immutable).
	preg bool
	// pcrc indicates whether the crc is pinned (immutable).
	pcrc bool
}
