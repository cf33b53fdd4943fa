/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package markup maintains the two coordinate spaces of a script document:
// the full content with inline emphasis markers and the display content with
// those markers stripped. Offsets quoted by a UI are display-space and must
// be translated through this package before touching the full content.
package markup

import (
	"regexp"
	"strings"
)

// Marker is the inline emphasis delimiter. A pair of markers wraps the
// emphasized span; the display view never contains it.
const Marker = '*'

var reWrapped = regexp.MustCompile(`^\*([^*]*)\*$`)

// StripForDisplay removes every marker from full content, preserving all
// other characters and their relative order.
func StripForDisplay(full string) string {
	if !strings.ContainsRune(full, Marker) {
		return full
	}
	var b strings.Builder
	b.Grow(len(full))
	for _, r := range full {
		if r != Marker {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// DisplayToFull converts a display-space offset into the corresponding
// full-content offset by walking both strings in lockstep, skipping marker
// bytes in the full content as they are encountered.
//
// Ties on a marker boundary resolve before the marker: the walk stops as
// soon as the display offset is satisfied, so an offset at the end of a
// styled span lands immediately before the closing marker and an offset at
// an empty pair lands before the opening marker. An insertion at the
// returned offset therefore never fractures a pair.
//
// Out-of-range offsets clamp to the valid range.
func DisplayToFull(display, full string, displayOffset int) int {
	if displayOffset <= 0 {
		return 0
	}
	if displayOffset > len(display) {
		displayOffset = len(display)
	}
	d, f := 0, 0
	for d < displayOffset && f < len(full) {
		if full[f] == Marker {
			f++
			continue
		}
		d++
		f++
	}
	return f
}

// FullToDisplay is the inverse projection: the display offset corresponding
// to a full-content offset. Offsets inside a marker resolve to the display
// position of the span boundary.
func FullToDisplay(full string, fullOffset int) int {
	if fullOffset <= 0 {
		return 0
	}
	if fullOffset > len(full) {
		fullOffset = len(full)
	}
	d := 0
	for f := 0; f < fullOffset; f++ {
		if full[f] != Marker {
			d++
		}
	}
	return d
}

// ToggleEmphasis toggles the emphasis markers on the full-content span
// [start, end). It returns the replacement text for that span and the caret
// position relative to the span start after the edit.
//
// An exactly wrapped span ("*text*") has its markers removed; anything else
// gains a surrounding pair. An empty selection produces an empty pair with
// the caret centered between the markers so the next keystroke is styled.
func ToggleEmphasis(full string, start, end int) (string, int) {
	start, end = clampSpan(len(full), start, end)
	seg := full[start:end]
	if seg == "" {
		return string(Marker) + string(Marker), 1
	}
	// Exact-match detection only: heuristic boundary sniffing risks eating
	// neighboring pairs.
	if m := reWrapped.FindStringSubmatch(seg); m != nil {
		return m[1], len(m[1])
	}
	out := string(Marker) + seg + string(Marker)
	return out, len(out)
}

// Emphasized reports whether the full-content span [start, end) is exactly
// wrapped by a marker pair.
func Emphasized(full string, start, end int) bool {
	start, end = clampSpan(len(full), start, end)
	return reWrapped.MatchString(full[start:end])
}

func clampSpan(n, start, end int) (int, int) {
	if start < 0 {
		start = 0
	}
	if end > n {
		end = n
	}
	if end < start {
		end = start
	}
	return start, end
}
