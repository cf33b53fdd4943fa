/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package element

import "testing"

func TestDetectTypeBasicForms(t *testing.T) {
	cases := []struct {
		name string
		line string
		prev Type
		want Type
	}{
		{"interior heading", "INT. KITCHEN - DAY", Action, SceneHeading},
		{"exterior heading", "EXT. PARKING LOT - NIGHT", Action, SceneHeading},
		{"combined heading", "INT./EXT. CAR - DUSK", Action, SceneHeading},
		{"lowercase heading", "int. kitchen - day", Action, SceneHeading},
		{"cut transition", "CUT TO:", Dialogue, Transition},
		{"smash transition", "SMASH CUT TO:", Action, Transition},
		{"fade in", "FADE IN:", Action, Transition},
		{"fade out", "FADE OUT.", Dialogue, Transition},
		{"character after action", "JOHN", Action, Character},
		{"character with extension", "SARAH (V.O.)", Action, Character},
		{"shouted dialogue after cue", "GET OUT!", Character, Dialogue},
		{"parenthetical", "(beat)", Character, Parenthetical},
		{"open parenthetical", "(whisperin", Character, Parenthetical},
		{"dialogue after cue", "I wasn't expecting you.", Character, Dialogue},
		{"dialogue after parenthetical", "Not tonight.", Parenthetical, Dialogue},
		{"plain action", "He crosses to the window.", Dialogue, Action},
		{"empty line", "", Character, Action},
		{"long caps is action", "THE ENTIRE BUILDING COLLAPSES INTO A CLOUD OF DUST AND SMOKE", Action, Action},
	}
	for _, tc := range cases {
		if got := DetectType(tc.line, tc.prev); got != tc.want {
			t.Fatalf("%s: DetectType(%q, %v) = %v, want %v", tc.name, tc.line, tc.prev, got, tc.want)
		}
	}
}

// A character cue directly after another cue is read as shouted dialogue,
// never a second cue.
func TestDetectTypeCueAdjacency(t *testing.T) {
	if got := DetectType("JOHN", Action); got != Character {
		t.Fatalf("JOHN after action = %v, want character", got)
	}
	if got := DetectType("MARY", Character); got != Dialogue {
		t.Fatalf("MARY after character = %v, want dialogue", got)
	}
}

func TestNextTypeTableIsTotal(t *testing.T) {
	want := map[Type]Type{
		SceneHeading:  Action,
		Action:        Action,
		Character:     Dialogue,
		Parenthetical: Dialogue,
		Dialogue:      Action,
		Transition:    SceneHeading,
	}
	for _, ty := range Types() {
		got := NextType(ty)
		if got != want[ty] {
			t.Fatalf("NextType(%v) = %v, want %v", ty, got, want[ty])
		}
	}
}

func TestFormatElement(t *testing.T) {
	cases := []struct {
		line   string
		target Type
		want   string
	}{
		{"john", Character, "JOHN"},
		{"JOHN", Character, "JOHN"},
		{"kitchen - day", SceneHeading, "INT. KITCHEN - DAY"},
		{"INT. KITCHEN - DAY", SceneHeading, "INT. KITCHEN - DAY"},
		{"ext. alley - night", SceneHeading, "EXT. ALLEY - NIGHT"},
		{"", SceneHeading, "INT. "},
		{"cut to", Transition, "CUT TO:"},
		{"CUT TO:", Transition, "CUT TO:"},
		{"fade out.", Transition, "FADE OUT."},
		{"beat", Parenthetical, "(beat)"},
		{"(beat)", Parenthetical, "(beat)"},
		{"(beat", Parenthetical, "(beat)"},
		{"He runs.", Action, "He runs."},
		{"Hello there.", Dialogue, "Hello there."},
	}
	for _, tc := range cases {
		if got := FormatElement(tc.line, tc.target); got != tc.want {
			t.Fatalf("FormatElement(%q, %v) = %q, want %q", tc.line, tc.target, got, tc.want)
		}
	}
}

// Formatting an already-formatted line must be a no-op for every type.
func TestFormatElementIdempotent(t *testing.T) {
	inputs := []string{"", "john", "JOHN", "kitchen", "INT. KITCHEN - DAY", "cut to", "FADE OUT.", "beat", "(beat)", "He runs.", "int."}
	for _, ty := range Types() {
		for _, in := range inputs {
			once := FormatElement(in, ty)
			twice := FormatElement(once, ty)
			if once != twice {
				t.Fatalf("FormatElement not idempotent for %v: %q -> %q -> %q", ty, in, once, twice)
			}
		}
	}
}

func TestTypeStringRoundTrip(t *testing.T) {
	for _, ty := range Types() {
		if got := ParseType(ty.String()); got != ty {
			t.Fatalf("ParseType(%q) = %v, want %v", ty.String(), got, ty)
		}
	}
	if got := ParseType("garbage"); got != Action {
		t.Fatalf("ParseType fallback = %v, want action", got)
	}
}
