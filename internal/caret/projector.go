/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package caret projects character offsets of a text surface into pixel
// coordinates so remote collaborators' carets and selections can be drawn
// as overlays.
//
// Projection measures the content against the same font metrics the visible
// surface uses and is therefore layout-pure: coordinates are relative to the
// unscrolled content origin and the caller subtracts live scroll offsets.
// All failure modes collapse to nil results; nothing here may throw into the
// input-handling path.
package caret

import (
	"log/slog"

	applog "goscreenwriter/internal/log"
	"goscreenwriter/internal/textlayout"
)

// SurfaceMetrics mirrors the visible text surface's layout-affecting
// properties. LineHeight of zero falls back to the face's natural height
// plus LineSpacing.
type SurfaceMetrics struct {
	Font          textlayout.FontSpec
	LetterSpacing float32 // px added per inter-glyph gap
	LineHeight    float32 // px baseline-to-baseline; 0 = face natural height
	LineSpacing   float32 // extra px per line when LineHeight is 0
	PaddingLeft   float32
	PaddingTop    float32
	BorderLeft    float32
	BorderTop     float32
	WrapWidth     float32 // content width for soft wrap; 0 = no wrapping
}

// Point is a pixel coordinate relative to the surface origin.
type Point struct {
	X float32
	Y float32
}

// Range is a projected selection: the caret coordinates of both endpoints.
type Range struct {
	Start Point
	End   Point
}

// RemoteCursor is another collaborator's reported caret, in display-content
// offsets. Selection offsets are -1 when absent. Ephemeral; never persisted.
type RemoteCursor struct {
	Offset   int
	SelStart int
	SelEnd   int
}

// ProjectOffset computes the pixel coordinate of a character offset within
// content laid out under m. It returns nil when offset is outside
// [0, len(content)] or when no measurement face can be resolved, logging a
// diagnostic in the latter case; callers treat nil as "skip this frame".
func ProjectOffset(p textlayout.Provider, m SurfaceMetrics, content string, offset int) *Point {
	if offset < 0 || offset > len(content) {
		return nil
	}
	if p == nil {
		p = textlayout.BasicProvider{}
	}
	face, met := p.Resolve(m.Font)
	if face == nil {
		applog.WithComponent("caret").Warn("no measurement face for surface",
			slog.String("family", m.Font.Family))
		return nil
	}
	lh := m.LineHeight
	if lh <= 0 {
		lh = met.LineHeight() + m.LineSpacing
	}
	lines := textlayout.WrapOffsets(face, content, m.WrapWidth, m.LetterSpacing)
	row, col := locate(lines, offset)
	x := m.PaddingLeft + m.BorderLeft + textlayout.Advance(face, content[lines[row].Start:col], m.LetterSpacing)
	y := m.PaddingTop + m.BorderTop + float32(row)*lh
	return &Point{X: x, Y: y}
}

// ProjectRange composes two single-offset projections for a selection.
// It returns nil if either projection fails or start > end.
func ProjectRange(p textlayout.Provider, m SurfaceMetrics, content string, start, end int) *Range {
	if start > end {
		return nil
	}
	sp := ProjectOffset(p, m, content, start)
	if sp == nil {
		return nil
	}
	ep := ProjectOffset(p, m, content, end)
	if ep == nil {
		return nil
	}
	return &Range{Start: *sp, End: *ep}
}

// ProjectCursor projects a remote cursor: the caret point always, plus the
// selection range when one is present.
func ProjectCursor(p textlayout.Provider, m SurfaceMetrics, content string, rc RemoteCursor) (*Point, *Range) {
	pt := ProjectOffset(p, m, content, rc.Offset)
	if rc.SelStart < 0 || rc.SelEnd < 0 {
		return pt, nil
	}
	return pt, ProjectRange(p, m, content, rc.SelStart, rc.SelEnd)
}

// locate finds the visual line containing offset and returns its row index
// and the offset itself clamped into that line. An offset on a soft-wrap
// seam belongs to the following line, matching where a caret renders.
func locate(lines []textlayout.VisualLine, offset int) (int, int) {
	for i, ln := range lines {
		if offset < ln.End || (offset == ln.End && (ln.Hard || i == len(lines)-1)) {
			return i, offset
		}
	}
	last := len(lines) - 1
	return last, lines[last].End
}
