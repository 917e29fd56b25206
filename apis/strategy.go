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
	"reflect"
)

// Strategy is a pluggable simple-type conversion step. A Coercer chains
// multiple strategies in order (e.g., Coercible -> Registry -> Construct).
type Strategy interface {
	// TryConvert attempts to convert v into a value of type target.
	// It returns handled=false to fall through to the next strategy.
	// A handled=true result is final: out on success, err on a definitive
	// conversion failure.
	TryConvert(v any, target reflect.Type, cfg Config) (out any, handled bool, err error)
}
