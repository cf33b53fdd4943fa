/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package textlayout

// Abstractions for cross-platform text measurement and line wrapping.
// All measurement goes through deterministic interfaces so the caret
// projector and exporters agree on glyph advances regardless of engine.

import (
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// FontSpec describes a requested font.
type FontSpec struct {
	Family string // logical family name
	SizePt float32
	Weight int // 100..900
	Italic bool
}

// Metrics provides font metrics in pixels for the resolved face.
type Metrics struct {
	Ascent, Descent, LineGap float32
}

// LineHeight is the default advance from one baseline row to the next.
func (m Metrics) LineHeight() float32 { return m.Ascent + m.Descent + m.LineGap }

// Provider maps FontSpec to a concrete font.Face.
type Provider interface {
	Resolve(FontSpec) (font.Face, Metrics)
}

// BasicProvider uses x/image/basicfont Face7x13 for deterministic tests.
type BasicProvider struct{}

func (BasicProvider) Resolve(spec FontSpec) (font.Face, Metrics) {
	f := basicfont.Face7x13
	m := f.Metrics()
	return f, Metrics{
		Ascent:  float32(m.Ascent.Round()),
		Descent: float32(m.Descent.Round()),
		LineGap: float32(m.Height.Round() - m.Ascent.Round() - m.Descent.Round()),
	}
}

// VisualLine is one on-screen row of wrapped content, identified by byte
// offsets into the source string. End is exclusive and never includes the
// newline that terminated a hard break.
type VisualLine struct {
	Start int
	End   int
	Width float32
	// Hard marks a line ended by an explicit newline (or end of content)
	// rather than a soft wrap.
	Hard bool
}

// Advance measures the horizontal advance of s under face, adding tracking
// pixels per inter-glyph gap.
func Advance(face font.Face, s string, tracking float32) float32 {
	if s == "" {
		return 0
	}
	d := &font.Drawer{Face: face}
	w := float32(d.MeasureString(s) >> 6) // fixed.Int26_6 to px
	n := 0
	for range s {
		n++
	}
	if n > 1 && tracking != 0 {
		w += tracking * float32(n-1)
	}
	return w
}

// WrapOffsets lays content out into visual lines: hard breaks on '\n', and
// greedy word wrap at maxWidth when maxWidth > 0. Byte offsets are preserved
// so a character offset can be located on its visual line afterwards.
// Words wider than maxWidth are kept whole on their own line.
func WrapOffsets(face font.Face, content string, maxWidth, tracking float32) []VisualLine {
	var out []VisualLine
	lineStart := 0
	flush := func(end int, hard bool) {
		out = append(out, VisualLine{
			Start: lineStart,
			End:   end,
			Width: Advance(face, content[lineStart:end], tracking),
			Hard:  hard,
		})
	}
	if maxWidth <= 0 {
		// hard breaks only
		for i := 0; i < len(content); i++ {
			if content[i] == '\n' {
				flush(i, true)
				lineStart = i + 1
			}
		}
		flush(len(content), true)
		return out
	}
	lastSpace := -1 // index of last breakable space on the current line
	for i := 0; i < len(content); i++ {
		switch content[i] {
		case '\n':
			flush(i, true)
			lineStart = i + 1
			lastSpace = -1
		case ' ':
			lastSpace = i
		default:
			if Advance(face, content[lineStart:i+1], tracking) > maxWidth && lastSpace >= lineStart {
				// wrap after the last space; the space stays on the upper line
				flush(lastSpace+1, false)
				lineStart = lastSpace + 1
				lastSpace = -1
			}
		}
	}
	flush(len(content), true)
	return out
}

// Measure returns the width and single-line height of s.
func Measure(provider Provider, spec FontSpec, s string, tracking float32) (w, h float32) {
	if provider == nil {
		provider = BasicProvider{}
	}
	face, met := provider.Resolve(spec)
	return Advance(face, s, tracking), met.Ascent + met.Descent
}
