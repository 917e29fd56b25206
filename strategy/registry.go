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

package strategy

import (
	"reflect"

	"dirpx.dev/typex/apis"
)

// NewRegistryStrategy creates an apis.Strategy backed by a converter Registry.
func NewRegistryStrategy(reg apis.Registry) apis.Strategy {
	return &registryStrategy{reg: reg}
}

// registryStrategy consults the per-type conversion rules of a Registry.
// A registered rule is final: its error is the conversion's error.
type registryStrategy struct {
	reg apis.Registry
}

// Ensure registryStrategy implements apis.Strategy.
var _ apis.Strategy = (*registryStrategy)(nil)

// TryConvert looks up a conversion rule for the target type and applies it.
func (s *registryStrategy) TryConvert(v any, target reflect.Type, cfg apis.Config) (any, bool, error) {
	if target == nil || s.reg == nil {
		return nil, false, nil
	}
	fn, ok := s.reg.Lookup(target)
	if !ok {
		return nil, false, nil
	}
	out, err := fn(v, cfg)
	return out, true, err
}
