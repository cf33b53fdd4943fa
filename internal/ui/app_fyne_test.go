//go:build fyne && cgo

/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// These tests validate the offset arithmetic the editor surface relies on.
// They are gated behind the "fyne" build tag so CI (which is headless) does
// not need Fyne or a display.
//
//	go test -tags fyne ./internal/ui
package ui

import (
	"testing"

	"goscreenwriter/internal/markup"
)

func TestRowColToOffset(t *testing.T) {
	text := "INT. LAB - DAY\n\nJOHN\nHello."
	cases := []struct {
		name     string
		row, col int
		want     int
	}{
		{"origin", 0, 0, 0},
		{"mid first line", 0, 4, 4},
		{"start of blank line", 1, 0, 15},
		{"cue line", 2, 2, 18},
		{"end of last line", 3, 6, 27},
		{"col past line end stops at newline", 0, 99, 14},
		{"row past last line clamps to end", 9, 0, len(text)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := rowColToOffset(text, tc.row, tc.col)
			if got != tc.want {
				t.Fatalf("rowColToOffset(%d,%d) = %d, want %d", tc.row, tc.col, got, tc.want)
			}
		})
	}
}

func TestOffsetToRowCol(t *testing.T) {
	text := "INT. LAB - DAY\n\nJOHN\nHello."
	cases := []struct {
		name             string
		off              int
		wantRow, wantCol int
	}{
		{"origin", 0, 0, 0},
		{"mid first line", 4, 0, 4},
		{"blank line", 15, 1, 0},
		{"cue", 18, 2, 2},
		{"end", len(text), 3, 6},
		{"negative clamps", -5, 0, 0},
		{"past end clamps", 999, 3, 6},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			row, col := offsetToRowCol(text, tc.off)
			if row != tc.wantRow || col != tc.wantCol {
				t.Fatalf("offsetToRowCol(%d) = (%d,%d), want (%d,%d)", tc.off, row, col, tc.wantRow, tc.wantCol)
			}
		})
	}
}

func TestRowColOffsetRoundTripMultibyte(t *testing.T) {
	text := "café noir\nzwölf"
	offs := []int{len(text)}
	for i := range text {
		offs = append(offs, i)
	}
	for _, off := range offs {
		row, col := offsetToRowCol(text, off)
		back := rowColToOffset(text, row, col)
		if back != off {
			t.Fatalf("offset %d: round trip landed at %d (row %d col %d)", off, back, row, col)
		}
	}
}

func TestDisplayToFullClamped(t *testing.T) {
	full := "She said *never* again"
	display := markup.StripForDisplay(full)
	if got := displayToFullClamped(display, full, -3); got != 0 {
		t.Fatalf("negative offset: got %d, want 0", got)
	}
	if got := displayToFullClamped(display, full, len(display)+10); got != len(full) {
		t.Fatalf("overlong offset: got %d, want %d", got, len(full))
	}
	// Display offset 9 sits before "never"; ties on a marker boundary
	// resolve before the marker so insertions never fracture a pair.
	if got := displayToFullClamped(display, full, 9); got != 9 {
		t.Fatalf("boundary: got %d, want 9", got)
	}
	// One character into the span crosses the opening marker.
	if got := displayToFullClamped(display, full, 10); got != 11 {
		t.Fatalf("inside span: got %d, want 11", got)
	}
}

func TestSurfaceMetricsForUsesMonoFamily(t *testing.T) {
	e := newScriptEntry()
	m := surfaceMetricsFor(e)
	if m.Font.Family != "mono" {
		t.Fatalf("font family = %q, want mono", m.Font.Family)
	}
	if m.LineHeight <= 0 {
		t.Fatalf("line height must be positive, got %v", m.LineHeight)
	}
}
