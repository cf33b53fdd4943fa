/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package caret

import (
	"testing"

	"goscreenwriter/internal/textlayout"
)

// basicfont Face7x13: 7px advance, 13px natural line height.
const (
	glyphW = 7
	lineH  = 13
)

func metricsWithPadding() SurfaceMetrics {
	return SurfaceMetrics{
		PaddingLeft: 4,
		PaddingTop:  6,
		BorderLeft:  1,
		BorderTop:   1,
	}
}

func TestProjectOffsetEmptyContent(t *testing.T) {
	m := SurfaceMetrics{PaddingLeft: 8, PaddingTop: 12}
	pt := ProjectOffset(nil, m, "", 0)
	if pt == nil {
		t.Fatalf("empty content at offset 0 must project, not nil")
	}
	if pt.X != 8 || pt.Y != 12 {
		t.Fatalf("expected padding origin (8,12), got (%f,%f)", pt.X, pt.Y)
	}
}

func TestProjectOffsetRows(t *testing.T) {
	m := metricsWithPadding()
	content := "abc\ndefg"
	// offset 6 is "de|fg": row 1, col 2
	pt := ProjectOffset(nil, m, content, 6)
	if pt == nil {
		t.Fatalf("projection failed")
	}
	wantX := float32(4 + 1 + 2*glyphW)
	wantY := float32(6 + 1 + 1*lineH)
	if pt.X != wantX || pt.Y != wantY {
		t.Fatalf("got (%f,%f), want (%f,%f)", pt.X, pt.Y, wantX, wantY)
	}
	// offset at end of first line sits after "abc", still on row 0
	pt = ProjectOffset(nil, m, content, 3)
	if pt == nil || pt.Y != 6+1 {
		t.Fatalf("end-of-line offset should stay on row 0: %+v", pt)
	}
	if pt.X != 4+1+3*glyphW {
		t.Fatalf("end-of-line x = %f", pt.X)
	}
}

func TestProjectOffsetOutOfRange(t *testing.T) {
	m := SurfaceMetrics{}
	if pt := ProjectOffset(nil, m, "abc", -1); pt != nil {
		t.Fatalf("negative offset should be nil")
	}
	if pt := ProjectOffset(nil, m, "abc", 4); pt != nil {
		t.Fatalf("offset past end should be nil")
	}
	if pt := ProjectOffset(nil, m, "abc", 3); pt == nil {
		t.Fatalf("offset == len(content) is valid")
	}
}

func TestProjectOffsetLineHeightOverride(t *testing.T) {
	m := SurfaceMetrics{LineHeight: 20}
	pt := ProjectOffset(nil, m, "a\nb", 2)
	if pt == nil || pt.Y != 20 {
		t.Fatalf("explicit line height not honored: %+v", pt)
	}
	m2 := SurfaceMetrics{LineSpacing: 3}
	pt2 := ProjectOffset(nil, m2, "a\nb", 2)
	if pt2 == nil || pt2.Y != lineH+3 {
		t.Fatalf("line spacing not added: %+v", pt2)
	}
}

func TestProjectOffsetSoftWrap(t *testing.T) {
	// 70px wrap = 10 basicfont glyphs per row
	m := SurfaceMetrics{WrapWidth: 70}
	content := "aaaa bbbb cccc"
	pt := ProjectOffset(nil, m, content, 12) // inside "cccc", col 2 of row 1
	if pt == nil {
		t.Fatalf("projection failed")
	}
	if pt.Y != lineH {
		t.Fatalf("wrapped offset should be on row 1: y=%f", pt.Y)
	}
	if pt.X != 2*glyphW {
		t.Fatalf("wrapped offset x = %f, want %d", pt.X, 2*glyphW)
	}
	// An offset on the wrap seam renders at the start of the lower line.
	pt = ProjectOffset(nil, m, content, 10)
	if pt == nil || pt.Y != lineH || pt.X != 0 {
		t.Fatalf("seam offset: %+v", pt)
	}
}

func TestProjectRange(t *testing.T) {
	m := metricsWithPadding()
	content := "hello\nworld"
	r := ProjectRange(nil, m, content, 2, 8)
	if r == nil {
		t.Fatalf("range projection failed")
	}
	if r.Start.Y == r.End.Y {
		t.Fatalf("selection spans two rows, got same y")
	}
	if got := ProjectRange(nil, m, content, 8, 2); got != nil {
		t.Fatalf("start > end must be nil")
	}
	if got := ProjectRange(nil, m, content, 2, 99); got != nil {
		t.Fatalf("out-of-range end must be nil")
	}
}

func TestProjectCursor(t *testing.T) {
	m := SurfaceMetrics{}
	pt, r := ProjectCursor(nil, m, "abc def", RemoteCursor{Offset: 4, SelStart: -1, SelEnd: -1})
	if pt == nil {
		t.Fatalf("caret point missing")
	}
	if r != nil {
		t.Fatalf("no selection expected")
	}
	pt, r = ProjectCursor(nil, m, "abc def", RemoteCursor{Offset: 7, SelStart: 4, SelEnd: 7})
	if pt == nil || r == nil {
		t.Fatalf("selection projection missing")
	}
	if r.Start.X != 4*glyphW || r.End.X != 7*glyphW {
		t.Fatalf("selection x: %+v", r)
	}
}

func TestProjectOffsetWithOpenTypeFallback(t *testing.T) {
	// An OTProvider with an empty library falls back to the basic face;
	// projection must still succeed rather than return nil.
	p := textlayout.OTProvider{Lib: textlayout.NewFontLibrary()}
	pt := ProjectOffset(p, SurfaceMetrics{Font: textlayout.FontSpec{Family: "Courier Prime", SizePt: 12}}, "x", 1)
	if pt == nil {
		t.Fatalf("fallback provider should keep projection alive")
	}
}
