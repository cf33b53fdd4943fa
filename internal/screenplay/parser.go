/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package screenplay builds a structural view of a script document: scenes
// split at scene headings, every line classified by its element type. The
// parser never fails; unclassifiable lines are action.
package screenplay

import (
	"bufio"
	"sort"
	"strings"

	"goscreenwriter/internal/element"
	"goscreenwriter/internal/markup"
)

// Parse parses full script content (emphasis markers included) into scenes.
// Classification runs line by line carrying the previous non-blank line's
// type, the same context the live editor uses, so the structural view and
// the editor's element indicator always agree.
func Parse(full string) Script {
	display := markup.StripForDisplay(full)

	s := Script{}
	current := Scene{}
	sceneNo := 0
	prev := element.Action
	speaker := ""

	flush := func() {
		if current.Heading != "" || len(current.Lines) > 0 {
			s.Scenes = append(s.Scenes, current)
		}
	}

	scanner := bufio.NewScanner(strings.NewReader(display))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")
		trim := strings.TrimSpace(line)
		if trim == "" {
			// a blank line ends any dialogue block
			prev = element.Action
			speaker = ""
			continue
		}
		t := element.DetectType(trim, prev)
		switch t {
		case element.SceneHeading:
			flush()
			sceneNo++
			current = Scene{Heading: trim, Number: sceneNo, HeadingLine: lineNo}
			speaker = ""
		case element.Character:
			speaker = CueName(trim)
			current.Lines = append(current.Lines, Line{Type: t, Text: trim, LineNo: lineNo, Speaker: speaker})
		case element.Dialogue, element.Parenthetical:
			current.Lines = append(current.Lines, Line{Type: t, Text: trim, LineNo: lineNo, Speaker: speaker})
		default:
			speaker = ""
			current.Lines = append(current.Lines, Line{Type: t, Text: trim, LineNo: lineNo})
		}
		prev = t
	}
	flush()
	return s
}

// CueName strips the parenthesized extension from a character cue, so
// "JOHN (V.O.)" and "JOHN (CONT'D)" both resolve to "JOHN".
func CueName(cue string) string {
	if i := strings.IndexByte(cue, '('); i >= 0 {
		cue = cue[:i]
	}
	return strings.TrimSpace(cue)
}

// Characters returns the distinct speaking characters across the script,
// sorted alphabetically.
func (s Script) Characters() []string {
	seen := map[string]struct{}{}
	for _, sc := range s.Scenes {
		for _, ln := range sc.Lines {
			if ln.Type == element.Character && ln.Speaker != "" {
				seen[ln.Speaker] = struct{}{}
			}
		}
	}
	out := make([]string, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Dialogue returns every dialogue line spoken by the named character, in
// script order.
func (s Script) Dialogue(character string) []Line {
	var out []Line
	for _, sc := range s.Scenes {
		for _, ln := range sc.Lines {
			if ln.Type == element.Dialogue && ln.Speaker == character {
				out = append(out, ln)
			}
		}
	}
	return out
}

// Stats summarizes a parsed script for status output and indexing.
type Stats struct {
	Scenes     int
	Lines      int
	Dialogues  int
	Characters int
}

// Summarize computes script statistics.
func (s Script) Summarize() Stats {
	st := Stats{Scenes: 0, Characters: len(s.Characters())}
	for _, sc := range s.Scenes {
		if sc.Number > 0 {
			st.Scenes++
		}
		st.Lines += len(sc.Lines)
		for _, ln := range sc.Lines {
			if ln.Type == element.Dialogue {
				st.Dialogues++
			}
		}
	}
	return st
}
