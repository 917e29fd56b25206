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

import (
	"dirpx.dev/typex/descriptor"
)

// Coercer converts loosely-typed values into descriptor shapes.
// Typical strategy chain for simple targets: Coercible -> Registry -> Construct.
type Coercer interface {
	// Coerce returns v converted into the shape described by d, or an error
	// when no conversion rule applies. Values already of the exact simple
	// target type are returned unchanged.
	Coerce(v any, d descriptor.Descriptor, cfg Config) (any, error)
}
