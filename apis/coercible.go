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

// Coercible is the zero-reflection fast path for simple-type conversion.
// When a value implements Coercible and reports ok=true for a target type,
// the coercion engine uses the returned value and stops the strategy chain.
//
// The returned value must have exactly the requested dynamic type; a false
// ok falls through to the remaining strategies.
type Coercible interface {
	// CoerceTo converts the receiver into a value of type target.
	CoerceTo(target reflect.Type) (out any, ok bool)
}
