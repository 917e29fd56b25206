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

// Package diag renders validation failures into structured, size-bounded,
// human-readable reports.
package diag

import (
	"fmt"
	"reflect"
	"strings"

	"golang.org/x/exp/slices"

	"dirpx.dev/typex/apis"
)

// Preview renders a size-bounded preview of v for diagnostics. Long strings
// are truncated with a character count appended; containers are truncated
// with an element count; struct-like values render their fields. The bounds
// come from cfg (MaxPreviewElems, MaxPreviewRunes).
func Preview(v any, cfg apis.Config) string {
	if v == nil {
		return "nil"
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String:
		return previewString(rv.String(), cfg.MaxPreviewRunes)

	case reflect.Slice, reflect.Array:
		n := rv.Len()
		parts := make([]string, 0, min(n, cfg.MaxPreviewElems))
		for i := 0; i < n && i < cfg.MaxPreviewElems; i++ {
			parts = append(parts, fmt.Sprintf("%v", rv.Index(i).Interface()))
		}
		if n > cfg.MaxPreviewElems {
			return fmt.Sprintf("[%s, ...] (%d elems)", strings.Join(parts, ", "), n)
		}
		return fmt.Sprintf("[%s]", strings.Join(parts, ", "))

	case reflect.Map:
		n := rv.Len()
		entries := make([]string, 0, n)
		iter := rv.MapRange()
		for iter.Next() {
			entries = append(entries, fmt.Sprintf("%v: %v", iter.Key().Interface(), iter.Value().Interface()))
		}
		// Map iteration order is random; sort for deterministic previews.
		slices.Sort(entries)
		if n > cfg.MaxPreviewElems {
			entries = entries[:cfg.MaxPreviewElems]
			return fmt.Sprintf("{%s, ...} (%d entries)", strings.Join(entries, ", "), n)
		}
		return fmt.Sprintf("{%s}", strings.Join(entries, ", "))

	default:
		s := fmt.Sprintf("%+v", v)
		if len([]rune(s)) > cfg.MaxPreviewRunes {
			return previewString(s, cfg.MaxPreviewRunes)
		}
		return s
	}
}

func previewString(s string, maxRunes int) string {
	runes := []rune(s)
	if len(runes) <= maxRunes {
		return fmt.Sprintf("%q", s)
	}
	cut := maxRunes - 3
	if cut < 0 {
		cut = 0
	}
	return fmt.Sprintf("%q (%d chars)", string(runes[:cut])+"...", len(runes))
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
