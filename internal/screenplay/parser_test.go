/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package screenplay

import (
	"testing"

	"goscreenwriter/internal/element"
)

const sampleScript = `INT. KITCHEN - DAY

John stands at the counter, *staring* at a cold cup of coffee.

JOHN
I can't do this anymore.

MARY (O.S.)
(from the hallway)
Do what?

CUT TO:

EXT. STREET - NIGHT

John walks alone.`

func TestParseScenesAndClassification(t *testing.T) {
	s := Parse(sampleScript)
	if len(s.Scenes) != 2 {
		t.Fatalf("expected 2 scenes, got %d", len(s.Scenes))
	}
	sc := s.Scenes[0]
	if sc.Heading != "INT. KITCHEN - DAY" || sc.Number != 1 {
		t.Fatalf("unexpected scene 1: %+v", sc)
	}
	// action, cue, dialogue, cue, parenthetical, dialogue, transition
	wantTypes := []element.Type{
		element.Action,
		element.Character, element.Dialogue,
		element.Character, element.Parenthetical, element.Dialogue,
		element.Transition,
	}
	if len(sc.Lines) != len(wantTypes) {
		t.Fatalf("scene 1 line count = %d, want %d", len(sc.Lines), len(wantTypes))
	}
	for i, want := range wantTypes {
		if sc.Lines[i].Type != want {
			t.Fatalf("line %d type = %v, want %v (%q)", i, sc.Lines[i].Type, want, sc.Lines[i].Text)
		}
	}
	if s.Scenes[1].Heading != "EXT. STREET - NIGHT" || s.Scenes[1].Number != 2 {
		t.Fatalf("unexpected scene 2: %+v", s.Scenes[1])
	}
}

func TestParseHeadingLines(t *testing.T) {
	s := Parse(sampleScript)
	if s.Scenes[0].HeadingLine != 1 {
		t.Fatalf("scene 1 heading line = %d, want 1", s.Scenes[0].HeadingLine)
	}
	if s.Scenes[1].HeadingLine != 14 {
		t.Fatalf("scene 2 heading line = %d, want 14", s.Scenes[1].HeadingLine)
	}
	lead := Parse("A quiet morning.\n\nINT. HOUSE - DAY")
	if lead.Scenes[0].HeadingLine != 0 {
		t.Fatalf("implicit scene heading line = %d, want 0", lead.Scenes[0].HeadingLine)
	}
	if lead.Scenes[1].HeadingLine != 3 {
		t.Fatalf("heading line = %d, want 3", lead.Scenes[1].HeadingLine)
	}
}

func TestParseStripsEmphasisMarkers(t *testing.T) {
	s := Parse(sampleScript)
	got := s.Scenes[0].Lines[0].Text
	if got != "John stands at the counter, staring at a cold cup of coffee." {
		t.Fatalf("markers survived parsing: %q", got)
	}
}

func TestParseSpeakerAttribution(t *testing.T) {
	s := Parse(sampleScript)
	lines := s.Scenes[0].Lines
	if lines[2].Speaker != "JOHN" {
		t.Fatalf("dialogue speaker = %q, want JOHN", lines[2].Speaker)
	}
	// the extension does not belong to the speaker name
	if lines[4].Speaker != "MARY" || lines[5].Speaker != "MARY" {
		t.Fatalf("parenthetical/dialogue speakers = %q/%q, want MARY", lines[4].Speaker, lines[5].Speaker)
	}
}

func TestParseLeadingMaterialBeforeFirstHeading(t *testing.T) {
	s := Parse("A quiet morning.\n\nINT. HOUSE - DAY\n\nNothing moves.")
	if len(s.Scenes) != 2 {
		t.Fatalf("expected implicit leading scene plus one, got %d", len(s.Scenes))
	}
	if s.Scenes[0].Heading != "" || s.Scenes[0].Number != 0 {
		t.Fatalf("unexpected leading scene: %+v", s.Scenes[0])
	}
	if s.Scenes[1].Number != 1 {
		t.Fatalf("first real scene numbered %d", s.Scenes[1].Number)
	}
}

func TestParseEmpty(t *testing.T) {
	s := Parse("")
	if len(s.Scenes) != 0 {
		t.Fatalf("empty input produced %d scenes", len(s.Scenes))
	}
}

func TestCharacters(t *testing.T) {
	got := Parse(sampleScript).Characters()
	if len(got) != 2 || got[0] != "JOHN" || got[1] != "MARY" {
		t.Fatalf("characters = %v", got)
	}
}

func TestDialogue(t *testing.T) {
	lines := Parse(sampleScript).Dialogue("MARY")
	if len(lines) != 1 || lines[0].Text != "Do what?" {
		t.Fatalf("MARY dialogue = %+v", lines)
	}
}

func TestSummarize(t *testing.T) {
	st := Parse(sampleScript).Summarize()
	if st.Scenes != 2 || st.Dialogues != 2 || st.Characters != 2 {
		t.Fatalf("stats = %+v", st)
	}
	if st.Lines != 8 {
		t.Fatalf("line count = %d", st.Lines)
	}
}

func TestCueName(t *testing.T) {
	cases := []struct{ in, want string }{
		{"JOHN", "JOHN"},
		{"JOHN (V.O.)", "JOHN"},
		{"MARY (CONT'D)", "MARY"},
		{"  BOB  ", "BOB"},
	}
	for _, c := range cases {
		if got := CueName(c.in); got != c.want {
			t.Fatalf("CueName(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
