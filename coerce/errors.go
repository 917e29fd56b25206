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

package coerce

import (
	"fmt"
)

// ConversionError reports a failed coercion attempt. Source is the dynamic
// type name of the input, Target the rendered target shape, Preview a
// truncated rendering of the input value.
type ConversionError struct {
	Source  string
	Target  string
	Preview string
	Cause   error
}

func (e *ConversionError) Error() string {
	msg := fmt.Sprintf("cannot convert %s to %s", e.Source, e.Target)
	if e.Preview != "" {
		msg += fmt.Sprintf(" (value %s)", e.Preview)
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *ConversionError) Unwrap() error { return e.Cause }
