/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package storage

import (
	"os"
	"path/filepath"
	"testing"

	"goscreenwriter/internal/domain"
)

func testProject() domain.Project {
	return domain.Project{
		Name: "Test Project",
		Scripts: []domain.Script{
			{Slug: "pilot", Title: "Pilot", File: "pilot.gsw"},
		},
	}
}

func TestInitProjectScaffoldsAndWritesManifest(t *testing.T) {
	root := t.TempDir()
	ph, err := InitProject(root, testProject())
	if err != nil {
		t.Fatalf("InitProject error: %v", err)
	}
	for _, d := range []string{ScriptDirName, "styles", "exports", "assets", BackupsDirName} {
		if st, err := os.Stat(filepath.Join(root, d)); err != nil || !st.IsDir() {
			t.Fatalf("expected subdir %s: %v", d, err)
		}
	}
	if _, err := os.Stat(ph.ManifestPath); err != nil {
		t.Fatalf("expected manifest at %s: %v", ph.ManifestPath, err)
	}
}

func TestOpenRoundTrip(t *testing.T) {
	root := t.TempDir()
	if _, err := InitProject(root, testProject()); err != nil {
		t.Fatalf("InitProject error: %v", err)
	}
	ph, err := Open(root)
	if err != nil {
		t.Fatalf("Open error: %v", err)
	}
	if ph.Project.Name != "Test Project" {
		t.Fatalf("unexpected project name: %q", ph.Project.Name)
	}
	if s := ph.Project.FindScript("pilot"); s == nil || s.File != "pilot.gsw" {
		t.Fatalf("unexpected script entry: %+v", s)
	}
}

func TestSaveCreatesBackupOfPreviousManifest(t *testing.T) {
	root := t.TempDir()
	ph, err := InitProject(root, testProject())
	if err != nil {
		t.Fatalf("InitProject error: %v", err)
	}
	ph.Project.Metadata.Notes = "second revision"
	if err := Save(ph); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	ents, err := os.ReadDir(filepath.Join(root, BackupsDirName))
	if err != nil {
		t.Fatalf("read backups: %v", err)
	}
	if len(ents) == 0 {
		t.Fatalf("expected at least one manifest backup")
	}
}

func TestOpenFallsBackToBackupOnCorruptManifest(t *testing.T) {
	root := t.TempDir()
	ph, err := InitProject(root, testProject())
	if err != nil {
		t.Fatalf("InitProject error: %v", err)
	}
	// Second save produces a backup of the valid manifest.
	if err := Save(ph); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	// Corrupt the live manifest.
	if err := os.WriteFile(ph.ManifestPath, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("corrupt manifest: %v", err)
	}
	got, err := Open(root)
	if err != nil {
		t.Fatalf("Open with backup fallback error: %v", err)
	}
	if got.Project.Name != "Test Project" {
		t.Fatalf("backup recovery produced: %+v", got.Project)
	}
}

func TestSaveRejectsInvalidManifest(t *testing.T) {
	root := t.TempDir()
	ph, err := InitProject(root, testProject())
	if err != nil {
		t.Fatalf("InitProject error: %v", err)
	}
	ph.Project.Name = ""
	if err := Save(ph); err == nil {
		t.Fatalf("expected validation error for empty project name")
	}
}

func TestSaveAs(t *testing.T) {
	root := t.TempDir()
	ph, err := InitProject(root, testProject())
	if err != nil {
		t.Fatalf("InitProject error: %v", err)
	}
	newRoot := filepath.Join(t.TempDir(), "moved")
	if err := SaveAs(ph, newRoot); err != nil {
		t.Fatalf("SaveAs error: %v", err)
	}
	if ph.Root != newRoot {
		t.Fatalf("handle root not updated: %q", ph.Root)
	}
	if _, err := os.Stat(filepath.Join(newRoot, ManifestFileName)); err != nil {
		t.Fatalf("manifest missing at new root: %v", err)
	}
}
