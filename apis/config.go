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

import "github.com/go-logr/logr"

// Config carries read-only coercion and diagnostic knobs.
// It is passed by value and should be treated as immutable by implementations.
type Config struct {
	// MaxDepth limits recursive descriptor/value walks in the coercion
	// engine. Acts as a safety guard against pathological nesting.
	MaxDepth int

	// MaxPreviewElems bounds how many container elements a diagnostic
	// value preview renders before truncating with an element count.
	MaxPreviewElems int

	// MaxPreviewRunes bounds how many characters of a string a diagnostic
	// value preview renders before truncating with a character count.
	MaxPreviewRunes int

	// Logger receives low-volume V(1) traces from the coercion engine and
	// the signature wrapper. Defaults to logr.Discard().
	Logger logr.Logger
}
