/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package textlayout

import (
	"strings"
	"testing"
)

func TestAdvanceMonotonic(t *testing.T) {
	face, _ := BasicProvider{}.Resolve(FontSpec{})
	prev := float32(0)
	s := "measure me"
	for i := 1; i <= len(s); i++ {
		w := Advance(face, s[:i], 0)
		if w <= prev {
			t.Fatalf("advance not monotonic at %d: %f <= %f", i, w, prev)
		}
		prev = w
	}
}

func TestAdvanceTracking(t *testing.T) {
	face, _ := BasicProvider{}.Resolve(FontSpec{})
	plain := Advance(face, "abcd", 0)
	tracked := Advance(face, "abcd", 2)
	if tracked != plain+6 { // 3 inter-glyph gaps
		t.Fatalf("tracking: got %f, want %f", tracked, plain+6)
	}
	if Advance(face, "", 2) != 0 {
		t.Fatalf("empty string should measure 0")
	}
}

func TestWrapOffsetsHardBreaks(t *testing.T) {
	face, _ := BasicProvider{}.Resolve(FontSpec{})
	content := "one\ntwo\n\nfour"
	lines := WrapOffsets(face, content, 0, 0)
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d: %+v", len(lines), lines)
	}
	wants := []string{"one", "two", "", "four"}
	for i, w := range wants {
		if got := content[lines[i].Start:lines[i].End]; got != w {
			t.Fatalf("line %d = %q, want %q", i, got, w)
		}
		if !lines[i].Hard {
			t.Fatalf("line %d should be a hard break", i)
		}
	}
}

func TestWrapOffsetsSoftWrap(t *testing.T) {
	face, _ := BasicProvider{}.Resolve(FontSpec{})
	// basicfont glyphs are 7px wide; 10 glyphs fit in 70px.
	content := "aaaa bbbb cccc"
	lines := WrapOffsets(face, content, 70, 0)
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %+v", len(lines), lines)
	}
	if got := content[lines[0].Start:lines[0].End]; got != "aaaa bbbb " {
		t.Fatalf("first line = %q", got)
	}
	if got := content[lines[1].Start:lines[1].End]; got != "cccc" {
		t.Fatalf("second line = %q", got)
	}
	if lines[0].Hard {
		t.Fatalf("soft-wrapped line reported hard")
	}
	// offsets must tile the content without gaps
	if lines[0].End != lines[1].Start {
		t.Fatalf("offset gap between lines: %d vs %d", lines[0].End, lines[1].Start)
	}
}

func TestWrapOffsetsLongWordKeptWhole(t *testing.T) {
	face, _ := BasicProvider{}.Resolve(FontSpec{})
	content := "hi " + strings.Repeat("x", 30)
	lines := WrapOffsets(face, content, 50, 0)
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if got := content[lines[1].Start:lines[1].End]; got != strings.Repeat("x", 30) {
		t.Fatalf("long word split: %q", got)
	}
}

func TestWrapOffsetsEmpty(t *testing.T) {
	face, _ := BasicProvider{}.Resolve(FontSpec{})
	lines := WrapOffsets(face, "", 100, 0)
	if len(lines) != 1 || lines[0].Start != 0 || lines[0].End != 0 {
		t.Fatalf("empty content: %+v", lines)
	}
}

func TestMeasureDefaultsProvider(t *testing.T) {
	w, h := Measure(nil, FontSpec{}, "abc", 0)
	if w <= 0 || h <= 0 {
		t.Fatalf("measure returned non-positive size: %f x %f", w, h)
	}
}
