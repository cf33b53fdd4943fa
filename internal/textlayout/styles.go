/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package textlayout

// TextStyle is a reusable preset combining a font spec with the layout
// parameters of one screenplay element. IndentIn and WidthIn are page
// measures in inches from the left page edge, following standard US
// screenplay layout on Courier 12; Tracking and Leading are pixels.
//
// Kerning is applied by the text engine (font.Drawer / Face.Kern) and kept
// always-on for deterministic results.

type TextStyle struct {
	Name     string
	Font     FontSpec
	Tracking float32 // px between glyphs (added per inter-glyph gap)
	Leading  float32 // extra px added to line height
	IndentIn float64 // left indent from page edge, inches
	WidthIn  float64 // column width, inches
	AllCaps  bool
}

var courier = FontSpec{Family: "Courier Prime", SizePt: 12, Weight: 400, Italic: false}

var builtinStyles = map[string]TextStyle{
	// Standard US screenplay measures: 1.5" action margin, dialogue block
	// at 2.5", cue at 3.7", parenthetical at 3.1".
	"scene_heading": {Name: "scene_heading", Font: courier, IndentIn: 1.5, WidthIn: 6.0, AllCaps: true},
	"action":        {Name: "action", Font: courier, IndentIn: 1.5, WidthIn: 6.0},
	"character":     {Name: "character", Font: courier, IndentIn: 3.7, WidthIn: 3.3, AllCaps: true},
	"dialogue":      {Name: "dialogue", Font: courier, IndentIn: 2.5, WidthIn: 3.5},
	"parenthetical": {Name: "parenthetical", Font: courier, IndentIn: 3.1, WidthIn: 2.9},
	"transition":    {Name: "transition", Font: courier, IndentIn: 6.0, WidthIn: 1.5, AllCaps: true},
}

// GetStyle returns a builtin style preset by element name. The second return
// value is false if the style is not found.
func GetStyle(name string) (TextStyle, bool) { s, ok := builtinStyles[name]; return s, ok }

// ListStyles lists the names of the builtin styles in stable order.
func ListStyles() []string {
	return []string{"scene_heading", "action", "character", "dialogue", "parenthetical", "transition"}
}
