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

package descriptor

import (
	"fmt"
	"strings"
)

// Kind discriminates the variants of the descriptor algebra.
//
// The following kinds are defined:
//
//   - Simple   — an atomic target type (exact nominal match).
//   - Sequence — homogeneous ordered container, optionally element-typed.
//   - Set      — homogeneous unordered container, optionally element-typed.
//   - Mapping  — key/value container, optionally key- and value-typed.
//   - Tuple    — fixed-arity positional container.
//   - Union    — ordered list of alternatives.
//   - None     — the absence-of-value marker (valid only inside a union,
//     or standalone to accept exactly the absent value).
//
// Kind values are plain integers and safe to use concurrently.
type Kind int

const (
	// Simple selects an atomic target type.
	Simple Kind = iota
	// Sequence selects a homogeneous ordered container.
	Sequence
	// Set selects a homogeneous unordered container.
	Set
	// Mapping selects a key/value container.
	Mapping
	// Tuple selects a fixed-arity positional container.
	Tuple
	// Union selects an ordered list of alternatives.
	Union
	// None is the absence-of-value marker.
	None
)

// IsValid reports whether k is one of the defined Kind values.
func (k Kind) IsValid() bool {
	return k >= Simple && k <= None
}

// String returns the canonical token for k.
// Unknown values render as "Unknown(n)".
func (k Kind) String() string {
	switch k {
	case Simple:
		return "Simple"
	case Sequence:
		return "Sequence"
	case Set:
		return "Set"
	case Mapping:
		return "Mapping"
	case Tuple:
		return "Tuple"
	case Union:
		return "Union"
	case None:
		return "None"
	default:
		return fmt.Sprintf("Unknown(%d)", int(k))
	}
}

// ParseKind parses a textual representation of a Kind.
// It accepts the tokens produced by Kind.String(), case-insensitively,
// with surrounding whitespace ignored. Any other input is an error and the
// returned Kind must not be used.
func ParseKind(s string) (Kind, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return Simple, fmt.Errorf("descriptor: empty kind")
	}

	switch strings.ToLower(trimmed) {
	case "simple":
		return Simple, nil
	case "sequence":
		return Sequence, nil
	case "set":
		return Set, nil
	case "mapping":
		return Mapping, nil
	case "tuple":
		return Tuple, nil
	case "union":
		return Union, nil
	case "none":
		return None, nil
	default:
		return Simple, fmt.Errorf("descriptor: unknown kind %q", s)
	}
}

// MustParseKind is like ParseKind but panics on invalid input.
// Intended for hard-coded values in code and tests.
func MustParseKind(s string) Kind {
	k, err := ParseKind(s)
	if err != nil {
		panic(err)
	}
	return k
}

// MarshalText implements encoding.TextMarshaler.
// Unknown values are an error rather than serializing an "Unknown(...)" form.
func (k Kind) MarshalText() ([]byte, error) {
	if !k.IsValid() {
		return nil, fmt.Errorf("descriptor: cannot marshal unknown kind %d", int(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
// On failure the target is left unchanged.
func (k *Kind) UnmarshalText(text []byte) error {
	v, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = v
	return nil
}
