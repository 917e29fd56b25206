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

// NewCoercibleStrategy creates an apis.Strategy that uses apis.Coercible.
func NewCoercibleStrategy() apis.Strategy {
	return &coercibleStrategy{}
}

// coercibleStrategy is a zero-reflection fast path: if v implements
// apis.Coercible and accepts the target, use its result and stop the chain.
type coercibleStrategy struct{}

// Ensure coercibleStrategy implements apis.Strategy.
var _ apis.Strategy = (*coercibleStrategy)(nil)

// TryConvert asks v to convert itself. A false ok from the value falls
// through to the remaining strategies.
func (*coercibleStrategy) TryConvert(v any, target reflect.Type, _ apis.Config) (any, bool, error) {
	if v == nil || target == nil {
		return nil, false, nil
	}
	c, ok := v.(apis.Coercible)
	if !ok {
		return nil, false, nil
	}
	out, ok := c.CoerceTo(target)
	if !ok {
		return nil, false, nil
	}
	return out, true, nil
}
