/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package screenplay

import "goscreenwriter/internal/element"

// Script is a parsed screenplay: an ordered list of scenes, each holding the
// classified lines between its heading and the next.

type Script struct {
	Scenes []Scene
}

// Scene is one slice of the script introduced by a scene heading. Material
// before the first heading lands in a scene with an empty Heading.
type Scene struct {
	Heading string
	Number  int // 1-based scene number; 0 for the implicit leading scene
	// HeadingLine is the 1-based display line of the heading, 0 when the
	// scene has none. Outline navigation jumps here.
	HeadingLine int
	Lines       []Line
}

// Line is a single classified source line. Text carries the display form
// (emphasis markers stripped); LineNo is the 1-based line number in the
// display content.

type Line struct {
	Type   element.Type
	Text   string
	LineNo int
	// Speaker is set on dialogue and parenthetical lines to the owning
	// character cue, with any (V.O.)/(CONT'D) extension removed.
	Speaker string
}
