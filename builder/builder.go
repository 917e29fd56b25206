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

package builder

import (
	"dirpx.dev/typex/apis"
	"dirpx.dev/typex/coerce"
	"dirpx.dev/typex/registry"
	"dirpx.dev/typex/strategy"
)

// New creates and returns a new instance of an apis.Builder.
func New() apis.Builder {
	return &builder{}
}

// builder is an empty struct to be used as a receiver for builder methods.
type builder struct{}

// Ensure builder implements apis.Builder.
var _ apis.Builder = (*builder)(nil)

// BuildRegistry builds and returns a new apis.Registry seeded with the
// builtin conversion rules. If a pre-existing registry is provided, its
// entries are migrated first; builtin rules never overwrite migrated ones.
func (b *builder) BuildRegistry(_ apis.Config, preg apis.Registry, _ any) apis.Registry {
	nreg := registry.New()
	if preg != nil {
		for _, e := range preg.Entries() {
			_ = nreg.Register(e.Type, e.Convert)
		}
	}
	registry.RegisterDefaults(nreg)
	return nreg
}

// BuildCoercer builds and returns a new apis.Coercer running the standard
// strategy chain against the provided registry. A pre-existing coercer
// carries no migratable state and is ignored.
func (b *builder) BuildCoercer(_ apis.Config, reg apis.Registry, _ apis.Coercer, _ any) apis.Coercer {
	return coerce.New(
		strategy.NewCoercibleStrategy(),
		strategy.NewRegistryStrategy(reg),
		strategy.NewConstructStrategy(),
	)
}
