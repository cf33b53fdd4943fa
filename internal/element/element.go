/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package element classifies screenplay lines into their structural role
// (scene heading, character cue, dialogue, parenthetical, action, transition)
// and reformats lines to match a role's surface convention.
//
// Classification is line-local: a line's literal form plus the previous
// line's type is all the context used. Every input classifies to some type;
// action is the catch-all and no input is ever rejected.
package element

import (
	"regexp"
	"strings"
)

// Type is the screenplay-structural role of a line.
type Type int

const (
	Action Type = iota
	SceneHeading
	Character
	Dialogue
	Parenthetical
	Transition
)

var typeNames = map[Type]string{
	Action:        "action",
	SceneHeading:  "scene_heading",
	Character:     "character",
	Dialogue:      "dialogue",
	Parenthetical: "parenthetical",
	Transition:    "transition",
}

func (t Type) String() string {
	if s, ok := typeNames[t]; ok {
		return s
	}
	return "action"
}

// ParseType maps a type name back to a Type. Unknown names yield Action,
// mirroring the classifier's fallback.
func ParseType(s string) Type {
	for t, name := range typeNames {
		if name == s {
			return t
		}
	}
	return Action
}

// Types lists all element types in stable order.
func Types() []Type {
	return []Type{SceneHeading, Action, Character, Dialogue, Parenthetical, Transition}
}

// Patterns for the literal forms of each element.
var (
	reSceneHeading  = regexp.MustCompile(`(?i)^(INT|EXT|EST|INT\.?/EXT|I/E)[.\s]`)
	reTransition    = regexp.MustCompile(`^[A-Z][A-Z0-9 .'-]*TO:$`)
	reParenthetical = regexp.MustCompile(`^\(.*\)?$`)
	// Character cues: upper-case name, optional (V.O.)/(O.S.)/(CONT'D) extension.
	reCharacter = regexp.MustCompile(`^[A-Z][A-Z0-9 .'-]*(\([A-Z.' ]+\))?$`)
)

// Fixed transitions that do not end in "TO:".
var transitionLiterals = map[string]struct{}{
	"FADE IN:":       {},
	"FADE OUT.":      {},
	"FADE TO BLACK.": {},
	"END CREDITS.":   {},
}

// maxCueLen bounds how long an all-caps line can be and still read as a
// character cue; longer all-caps runs are shouted action.
// Tunable policy, not a hard grammar rule.
const maxCueLen = 40

// DetectType classifies a single line given the previous line's type.
// It inspects the line's literal form and, where the form is ambiguous,
// uses screenplay-convention adjacency:
//   - an all-caps line directly after a character cue or parenthetical is
//     shouted dialogue, not a second cue;
//   - plain prose after a cue or parenthetical is dialogue.
//
// Unmatched lines are action.
func DetectType(line string, prev Type) Type {
	t := strings.TrimSpace(line)
	if t == "" {
		return Action
	}
	if reSceneHeading.MatchString(t) {
		return SceneHeading
	}
	if _, ok := transitionLiterals[t]; ok {
		return Transition
	}
	if reTransition.MatchString(t) {
		return Transition
	}
	if reParenthetical.MatchString(t) {
		return Parenthetical
	}
	// Short all-caps line reads as a character cue unless one directly
	// precedes; a cue rarely follows another cue without dialogue between.
	if isAllCaps(t) && len(t) <= maxCueLen && reCharacter.MatchString(t) {
		if prev == Character || prev == Parenthetical {
			return Dialogue
		}
		return Character
	}
	if prev == Character || prev == Parenthetical {
		return Dialogue
	}
	return Action
}

// NextType returns the element a writer most likely intends after finishing
// a line of the given type. The table is total over all element types.
func NextType(prev Type) Type {
	switch prev {
	case SceneHeading:
		return Action
	case Character:
		return Dialogue
	case Parenthetical:
		return Dialogue
	case Dialogue:
		return Action
	case Transition:
		return SceneHeading
	default:
		return Action
	}
}

// FormatElement reformats a line's literal text to satisfy the target type's
// surface convention. Formatting an already-formatted line returns it
// unchanged.
func FormatElement(line string, target Type) string {
	t := strings.TrimSpace(line)
	switch target {
	case SceneHeading:
		up := strings.ToUpper(t)
		// A bare or empty prefix becomes the typing placeholder. Mapping
		// "INT." back to "INT. " keeps formatting idempotent once the
		// trailing space is trimmed away.
		if up == "" || up == "INT." || up == "INT" {
			return "INT. "
		}
		if reSceneHeading.MatchString(up) {
			return up
		}
		return "INT. " + up
	case Character:
		return strings.ToUpper(t)
	case Transition:
		up := strings.ToUpper(t)
		if up == "" {
			return "CUT TO:"
		}
		if _, ok := transitionLiterals[up]; ok {
			return up
		}
		if strings.HasSuffix(up, ":") || strings.HasSuffix(up, ".") {
			return up
		}
		return up + ":"
	case Parenthetical:
		if t == "" {
			return "()"
		}
		if !strings.HasPrefix(t, "(") {
			t = "(" + t
		}
		if !strings.HasSuffix(t, ")") {
			t += ")"
		}
		return t
	default:
		// action and dialogue carry free-form prose untouched
		return line
	}
}

func isAllCaps(s string) bool {
	hasLetter := false
	for _, r := range s {
		if r >= 'a' && r <= 'z' {
			return false
		}
		if r >= 'A' && r <= 'Z' {
			hasLetter = true
		}
	}
	return hasLetter
}
