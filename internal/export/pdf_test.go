/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"goscreenwriter/internal/domain"
	"goscreenwriter/internal/screenplay"
	"goscreenwriter/internal/storage"
)

const exportSampleScript = "INT. KITCHEN - DAY\n" +
	"\n" +
	"John stares at the *empty* counter.\n" +
	"\n" +
	"JOHN\n" +
	"(quietly)\n" +
	"Where did everything go?\n" +
	"\n" +
	"CUT TO:\n" +
	"\n" +
	"EXT. STREET - NIGHT\n" +
	"\n" +
	"Rain hammers the pavement.\n"

func exportTestProject(t *testing.T) *storage.ProjectHandle {
	t.Helper()
	root := t.TempDir()
	proj := domain.Project{
		Name: "Test Project",
		Metadata: domain.Metadata{
			Title:   "The Empty Counter",
			Authors: "A. Writer",
			Contact: "writer@example.com",
		},
		Scripts: []domain.Script{
			{Slug: "pilot", Title: "Pilot", File: "script/pilot.gsw"},
		},
	}
	ph, err := storage.InitProject(root, proj)
	if err != nil {
		t.Fatalf("init project: %v", err)
	}
	if err := storage.WriteScript(ph, "pilot", exportSampleScript); err != nil {
		t.Fatalf("write script: %v", err)
	}
	return ph
}

func TestExportScriptPDF_CreatesFile(t *testing.T) {
	ph := exportTestProject(t)
	out := filepath.Join(ph.Root, "exports", "pilot.pdf")
	err := ExportScriptPDF(ph, "pilot", out, PDFOptions{TitlePage: true, SceneNumbers: true, PageNumbers: true})
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	st, err := os.Stat(out)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if st.Size() <= 0 {
		t.Fatalf("pdf file empty")
	}
}

func TestExportScriptPDF_RelativePathLandsInExports(t *testing.T) {
	ph := exportTestProject(t)
	if err := ExportScriptPDF(ph, "pilot", "draft.pdf", PDFOptions{}); err != nil {
		t.Fatalf("export: %v", err)
	}
	if _, err := os.Stat(filepath.Join(ph.Root, "exports", "draft.pdf")); err != nil {
		t.Fatalf("expected output under exports: %v", err)
	}
}

func TestExportScriptPDF_NilHandle(t *testing.T) {
	if err := ExportScriptPDF(nil, "pilot", "out.pdf", PDFOptions{}); err == nil {
		t.Fatalf("expected error for nil handle")
	}
}

func TestLayoutScript_DialogueBlockStaysJoined(t *testing.T) {
	script := screenplay.Parse(exportSampleScript)
	lines := layoutScript(script, false)
	// Find the character cue and verify parenthetical and dialogue follow
	// with no blank line in between.
	cue := -1
	for i, ln := range lines {
		if ln.text == "JOHN" {
			cue = i
			break
		}
	}
	if cue < 0 {
		t.Fatalf("character cue not in layout")
	}
	if lines[cue+1].text != "(quietly)" {
		t.Fatalf("line after cue = %q, want parenthetical", lines[cue+1].text)
	}
	if lines[cue+2].text != "Where did everything go?" {
		t.Fatalf("line after parenthetical = %q, want dialogue", lines[cue+2].text)
	}
}

func TestLayoutScript_SceneNumbersOnHeadingsOnly(t *testing.T) {
	script := screenplay.Parse(exportSampleScript)
	lines := layoutScript(script, true)
	var numbered []string
	for _, ln := range lines {
		if ln.scene > 0 {
			numbered = append(numbered, ln.text)
		}
	}
	if len(numbered) != 2 {
		t.Fatalf("got %d numbered lines, want 2: %v", len(numbered), numbered)
	}
	if !strings.HasPrefix(numbered[0], "INT. KITCHEN") || !strings.HasPrefix(numbered[1], "EXT. STREET") {
		t.Fatalf("scene numbers landed on %v", numbered)
	}
}

func TestWrapMono(t *testing.T) {
	cases := []struct {
		in   string
		max  int
		want []string
	}{
		{"short line", 60, []string{"short line"}},
		{"one two three four", 9, []string{"one two", "three", "four"}},
		{"supercalifragilistic", 5, []string{"supercalifragilistic"}},
		{"", 10, []string{""}},
	}
	for _, c := range cases {
		got := wrapMono(c.in, c.max)
		if len(got) != len(c.want) {
			t.Fatalf("wrapMono(%q, %d) = %v, want %v", c.in, c.max, got, c.want)
		}
		for i := range got {
			if got[i] != c.want[i] {
				t.Fatalf("wrapMono(%q, %d)[%d] = %q, want %q", c.in, c.max, i, got[i], c.want[i])
			}
		}
	}
}
