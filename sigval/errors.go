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

package sigval

import (
	"fmt"
	"strings"
)

// ConfigurationError reports a wrap-time misconfiguration: a non-function
// target, or an option naming a parameter the callable does not declare.
// It is fatal at wrap time and never surfaced per call.
type ConfigurationError struct {
	// Option is the offending option, e.g. "WithOverride".
	Option string
	// Name is the parameter name the option referred to, if any.
	Name string
	// Available lists the callable's validatable parameter names, sorted.
	Available []string
	// Reason carries a free-form message when Name does not apply.
	Reason string
}

func (e *ConfigurationError) Error() string {
	if e.Name != "" {
		msg := fmt.Sprintf("sigval: %s names unknown parameter %q", e.Option, e.Name)
		if len(e.Available) > 0 {
			msg += fmt.Sprintf(" (available: %s)", strings.Join(e.Available, ", "))
		}
		return msg
	}
	return fmt.Sprintf("sigval: %s: %s", e.Option, e.Reason)
}
