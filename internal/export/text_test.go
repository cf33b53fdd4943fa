/*
 * Copyright (c) 2025
 */
package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestExportScriptText_StripsMarkup(t *testing.T) {
	ph := exportTestProject(t)
	out := filepath.Join(ph.Root, "exports", "pilot.txt")
	if err := ExportScriptText(ph, "pilot", out, TextOptions{}); err != nil {
		t.Fatalf("export: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	got := string(data)
	if strings.Contains(got, "*") {
		t.Fatalf("markers survived: %q", got)
	}
	if !strings.Contains(got, "John stares at the empty counter.") {
		t.Fatalf("missing action line in %q", got)
	}
	if !strings.HasSuffix(got, "\n") {
		t.Fatalf("output should end with newline")
	}
}

func TestExportScriptText_KeepMarkup(t *testing.T) {
	ph := exportTestProject(t)
	out := filepath.Join(ph.Root, "exports", "raw.txt")
	if err := ExportScriptText(ph, "pilot", out, TextOptions{KeepMarkup: true}); err != nil {
		t.Fatalf("export: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(string(data), "*empty*") {
		t.Fatalf("markers gone: %q", string(data))
	}
}

func TestExportScriptText_RelativePathLandsInExports(t *testing.T) {
	ph := exportTestProject(t)
	if err := ExportScriptText(ph, "pilot", "plain.txt", TextOptions{}); err != nil {
		t.Fatalf("export: %v", err)
	}
	if _, err := os.Stat(filepath.Join(ph.Root, "exports", "plain.txt")); err != nil {
		t.Fatalf("expected output under exports: %v", err)
	}
}
