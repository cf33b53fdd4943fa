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
	"testing"
)

func TestWrittenManifestConformsToSchema(t *testing.T) {
	root := t.TempDir()
	ph, err := InitProject(root, testProject())
	if err != nil {
		t.Fatalf("InitProject error: %v", err)
	}
	data, err := os.ReadFile(ph.ManifestPath)
	if err != nil {
		t.Fatalf("read manifest: %v", err)
	}
	if err := ValidateManifest(data); err != nil {
		t.Fatalf("written manifest invalid: %v", err)
	}
}

func TestValidateManifestRejectsBadDocuments(t *testing.T) {
	cases := []struct {
		name string
		doc  string
	}{
		{"missing name", `{"scripts": []}`},
		{"empty name", `{"name": "", "scripts": []}`},
		{"bad slug", `{"name": "x", "scripts": [{"slug": "Bad Slug!", "title": "t", "file": "f.gsw"}]}`},
		{"missing file", `{"name": "x", "scripts": [{"slug": "ok", "title": "t"}]}`},
		{"unknown field", `{"name": "x", "scripts": [], "panels": []}`},
	}
	for _, c := range cases {
		if err := ValidateManifest([]byte(c.doc)); err == nil {
			t.Fatalf("%s: expected validation failure", c.name)
		}
	}
}

func TestValidateManifestAcceptsMinimal(t *testing.T) {
	doc := `{"name": "Minimal", "scripts": null}`
	if err := ValidateManifest([]byte(doc)); err != nil {
		t.Fatalf("minimal manifest rejected: %v", err)
	}
}
