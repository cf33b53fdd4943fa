/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package undo

import (
	"testing"
	"time"
)

func TestUndoRedoBasic(t *testing.T) {
	m := NewManager(Config{MaxBytes: 1024 * 1024, MaxPerScript: 10, MinInterval: 10 * time.Millisecond})
	slug := "pilot"
	m.PushSnapshot(Snapshot{Slug: slug, Blob: []byte("a"), TS: time.Now()})
	m.PushSnapshot(Snapshot{Slug: slug, Blob: []byte("b"), TS: time.Now().Add(20 * time.Millisecond)})
	if _, scripts, total := m.Stats(); scripts != 1 || total != 2 {
		t.Fatalf("expected 1 script and 2 snapshots, got scripts=%d total=%d", scripts, total)
	}
	s, ok := m.Undo(slug)
	if !ok || string(s.Blob) != "b" {
		t.Fatalf("undo expected 'b', got ok=%v blob=%q", ok, string(s.Blob))
	}
	s, ok = m.Redo(slug)
	if !ok || string(s.Blob) != "b" {
		t.Fatalf("redo expected 'b', got ok=%v blob=%q", ok, string(s.Blob))
	}
}

func TestCoalesce(t *testing.T) {
	m := NewManager(Config{MaxBytes: 1024 * 1024, MaxPerScript: 10, MinInterval: 50 * time.Millisecond})
	slug := "pilot"
	t0 := time.Now()
	m.PushSnapshot(Snapshot{Slug: slug, Blob: []byte("1"), TS: t0})
	m.PushSnapshot(Snapshot{Slug: slug, Blob: []byte("2"), TS: t0.Add(10 * time.Millisecond)}) // coalesce
	_, _, total := m.Stats()
	if total != 1 {
		t.Fatalf("expected coalesced to 1 snapshot, got %d", total)
	}
	s, ok := m.Undo(slug)
	if !ok || string(s.Blob) != "2" {
		t.Fatalf("expected coalesced snapshot '2', got ok=%v blob=%q", ok, string(s.Blob))
	}
}

func TestCaps(t *testing.T) {
	m := NewManager(Config{MaxBytes: 20, MaxPerScript: 2, MinInterval: 1 * time.Millisecond})
	slug := "draft"
	for i := 0; i < 10; i++ {
		m.PushSnapshot(Snapshot{Slug: slug, Blob: []byte("xxxxx"), TS: time.Now().Add(time.Duration(i) * time.Millisecond)})
	}
	_, _, total := m.Stats()
	if total > 2 {
		t.Fatalf("expected MaxPerScript cap to limit to 2, got %d", total)
	}
}

func TestRedoInvalidatedByNewChange(t *testing.T) {
	m := NewManager(Config{MaxBytes: 1024, MaxPerScript: 10, MinInterval: time.Millisecond})
	slug := "pilot"
	t0 := time.Now()
	m.PushSnapshot(Snapshot{Slug: slug, Blob: []byte("a"), TS: t0})
	m.PushSnapshot(Snapshot{Slug: slug, Blob: []byte("b"), TS: t0.Add(10 * time.Millisecond)})
	if _, ok := m.Undo(slug); !ok {
		t.Fatalf("undo failed")
	}
	m.PushSnapshot(Snapshot{Slug: slug, Blob: []byte("c"), TS: t0.Add(20 * time.Millisecond)})
	if _, ok := m.Redo(slug); ok {
		t.Fatalf("redo should be invalidated by a new change")
	}
}

func TestClearScript(t *testing.T) {
	m := NewManager(Config{MaxBytes: 1024, MaxPerScript: 10, MinInterval: time.Millisecond})
	t0 := time.Now()
	m.PushSnapshot(Snapshot{Slug: "a", Blob: []byte("xx"), TS: t0})
	m.PushSnapshot(Snapshot{Slug: "b", Blob: []byte("yy"), TS: t0.Add(10 * time.Millisecond)})
	m.ClearScript("a")
	bytes, scripts, _ := m.Stats()
	if scripts != 1 {
		t.Fatalf("expected 1 script after clear, got %d", scripts)
	}
	if bytes != 2 {
		t.Fatalf("expected 2 bytes accounted, got %d", bytes)
	}
	if _, ok := m.Undo("a"); ok {
		t.Fatalf("cleared script should have no undo history")
	}
}

func TestSlugIsolation(t *testing.T) {
	m := NewManager(Config{MaxBytes: 1024, MaxPerScript: 10, MinInterval: time.Millisecond})
	t0 := time.Now()
	m.PushSnapshot(Snapshot{Slug: "a", Blob: []byte("aa"), TS: t0})
	m.PushSnapshot(Snapshot{Slug: "b", Blob: []byte("bb"), TS: t0.Add(10 * time.Millisecond)})
	s, ok := m.Undo("a")
	if !ok || string(s.Blob) != "aa" {
		t.Fatalf("undo on slug a returned %q", string(s.Blob))
	}
	if _, ok := m.Undo("a"); ok {
		t.Fatalf("slug a should be exhausted")
	}
	if s, ok := m.Undo("b"); !ok || string(s.Blob) != "bb" {
		t.Fatalf("slug b history affected: ok=%v blob=%q", ok, string(s.Blob))
	}
}
