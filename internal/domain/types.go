/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package domain

// This file defines the data model for a screenwriting project. The model
// serializes to a human-readable JSON manifest at the project root.

// Project represents a screenwriting project and its metadata. One project
// holds one or more scripts (drafts, episodes, or alternate versions).
type Project struct {
	Name     string   `json:"name"`
	Metadata Metadata `json:"metadata,omitempty"`
	Scripts  []Script `json:"scripts"`
}

// Metadata contains optional descriptive metadata for a project.
type Metadata struct {
	Title   string `json:"title,omitempty"`
	Authors string `json:"authors,omitempty"`
	Contact string `json:"contact,omitempty"`
	Notes   string `json:"notes,omitempty"`
}

// Script describes one script document in the project. File is the path of
// the script text relative to the project's script directory.
type Script struct {
	Slug     string   `json:"slug"`
	Title    string   `json:"title"`
	File     string   `json:"file"`
	Revision Revision `json:"revision,omitempty"`
	Notes    string   `json:"notes,omitempty"`
}

// Revision tracks the draft color convention used by production offices.
type Revision struct {
	Draft string `json:"draft,omitempty"` // e.g. "first", "shooting"
	Color string `json:"color,omitempty"` // white, blue, pink, ...
	Date  string `json:"date,omitempty"`  // ISO 8601 date
}

// PageLayout captures the page geometry a script formats against. All
// measures are in points; the defaults are US Letter with standard
// screenplay margins.
type PageLayout struct {
	Width        float64 `json:"width"`
	Height       float64 `json:"height"`
	MarginTop    float64 `json:"marginTop"`
	MarginBottom float64 `json:"marginBottom"`
	MarginLeft   float64 `json:"marginLeft"`
	MarginRight  float64 `json:"marginRight"`
	LineHeight   float64 `json:"lineHeight"`
}

// DefaultPageLayout is the standard US Letter screenplay page: 8.5x11 inch,
// 1.5 inch left margin, 1 inch elsewhere, 6 lines per inch.
func DefaultPageLayout() PageLayout {
	return PageLayout{
		Width:        612,
		Height:       792,
		MarginTop:    72,
		MarginBottom: 72,
		MarginLeft:   108,
		MarginRight:  72,
		LineHeight:   12,
	}
}

// Asset describes external resources bundled with a project, fonts mostly.
type Asset struct {
	Type    string `json:"type"` // font, image, ref
	Path    string `json:"path"`
	License string `json:"license,omitempty"`
	Notes   string `json:"notes,omitempty"`
}

// FindScript returns the script with the given slug, or nil.
func (p *Project) FindScript(slug string) *Script {
	for i := range p.Scripts {
		if p.Scripts[i].Slug == slug {
			return &p.Scripts[i]
		}
	}
	return nil
}
