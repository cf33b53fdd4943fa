/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"goscreenwriter/internal/element"
	applog "goscreenwriter/internal/log"
	"goscreenwriter/internal/screenplay"
	"goscreenwriter/internal/version"

	// Pure-Go SQLite driver (CGO-free)
	_ "modernc.org/sqlite"
)

const (
	// IndexDirName stores all per-project ephemeral/index data under the project root.
	IndexDirName  = ".gsw"
	IndexFileName = "index.sqlite"

	// schemaVersion tracks the local SQLite schema for the embedded index.
	// Bump this when you perform breaking schema changes and add migrations.
	schemaVersion = 2
)

// IndexPath returns the full path to the project's embedded index database file.
func IndexPath(projectRoot string) string {
	return filepath.Join(projectRoot, IndexDirName, IndexFileName)
}

// InitOrOpenIndex ensures that the per-project SQLite index exists at .gsw/index.sqlite,
// opens the database, enables WAL mode, and ensures the meta/version tables exist.
// The returned *sql.DB is ready for use. Callers may close it when no longer needed.
func InitOrOpenIndex(projectRoot string) (*sql.DB, error) {
	l := applog.WithOperation(applog.WithComponent("storage"), "index_init").With(
		slog.String("root", projectRoot),
	)
	if strings.TrimSpace(projectRoot) == "" {
		return nil, errors.New("project root is required")
	}
	if err := os.MkdirAll(filepath.Join(projectRoot, IndexDirName), 0o755); err != nil {
		l.Error("create .gsw dir failed", slog.Any("err", err))
		return nil, fmt.Errorf("create .gsw dir: %w", err)
	}

	path := IndexPath(projectRoot)
	// URI form with a busy timeout; forward slashes for the SQLite URI.
	uriPath := filepath.ToSlash(path)
	dsn := fmt.Sprintf("file:%s?cache=shared&_pragma=busy_timeout(5000)", uriPath)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		l.Error("sqlite open failed", slog.Any("err", err))
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// Embedded usage: single writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL;"); err != nil {
		_ = db.Close()
		l.Error("enable WAL failed", slog.Any("err", err))
		return nil, fmt.Errorf("enable WAL: %w", err)
	}
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys=ON;"); err != nil {
		l.Warn("enable foreign_keys failed", slog.Any("err", err))
	}

	if err := ensureMetaAndVersion(ctx, db); err != nil {
		_ = db.Close()
		l.Error("ensure meta/version failed", slog.Any("err", err))
		return nil, err
	}
	if err := ensureIndexSchema(ctx, db); err != nil {
		_ = db.Close()
		l.Error("ensure index schema failed", slog.Any("err", err))
		return nil, err
	}
	if err := runMigrations(ctx, db); err != nil {
		_ = db.Close()
		l.Error("run migrations failed", slog.Any("err", err))
		return nil, err
	}

	l.Info("index ready", slog.String("path", path))
	return db, nil
}

func ensureMetaAndVersion(ctx context.Context, db *sql.DB) error {
	ddl := []string{
		`CREATE TABLE IF NOT EXISTS meta (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS version (
			id          INTEGER PRIMARY KEY CHECK(id=1),
			schema      INTEGER NOT NULL,
			app         TEXT,
			created_at  TEXT NOT NULL,
			updated_at  TEXT NOT NULL
		);`,
	}
	for _, q := range ddl {
		if _, err := db.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("create table: %w", err)
		}
	}
	now := time.Now().UTC().Format(time.RFC3339)
	appv := version.String()
	var curSchema int
	err := db.QueryRowContext(ctx, `SELECT schema FROM version WHERE id=1`).Scan(&curSchema)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		if _, err := db.ExecContext(ctx, `INSERT INTO version (id, schema, app, created_at, updated_at) VALUES(1, ?, ?, ?, ?)`, schemaVersion, appv, now, now); err != nil {
			return fmt.Errorf("insert version: %w", err)
		}
	case err != nil:
		return fmt.Errorf("read version: %w", err)
	default:
		// Update app and timestamp only; keep existing schema for migrations.
		if _, err := db.ExecContext(ctx, `UPDATE version SET app=?, updated_at=? WHERE id=1`, appv, now); err != nil {
			return fmt.Errorf("update version: %w", err)
		}
	}
	return nil
}

// runMigrations applies incremental schema migrations up to schemaVersion.
func runMigrations(ctx context.Context, db *sql.DB) error {
	var cur int
	if err := db.QueryRowContext(ctx, `SELECT schema FROM version WHERE id=1`).Scan(&cur); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if cur > schemaVersion {
		// Never downgrade.
		return nil
	}
	for cur < schemaVersion {
		next := cur + 1
		switch next {
		case 2:
			// Speaker lookups got slow on long scripts without this.
			tx, err := db.BeginTx(ctx, nil)
			if err != nil {
				return fmt.Errorf("begin migration %d: %w", next, err)
			}
			stmts := []string{
				`CREATE INDEX IF NOT EXISTS idx_documents_character ON documents(character);`,
				`CREATE INDEX IF NOT EXISTS idx_documents_slug_scene ON documents(slug, scene);`,
			}
			for _, q := range stmts {
				if _, err := tx.ExecContext(ctx, q); err != nil {
					_ = tx.Rollback()
					return fmt.Errorf("migration %d stmt failed: %w", next, err)
				}
			}
			if _, err := tx.ExecContext(ctx, `UPDATE version SET schema=?, updated_at=? WHERE id=1`, next, time.Now().UTC().Format(time.RFC3339)); err != nil {
				_ = tx.Rollback()
				return fmt.Errorf("migration %d update version: %w", next, err)
			}
			if err := tx.Commit(); err != nil {
				return fmt.Errorf("migration %d commit: %w", next, err)
			}
			// Best-effort FTS optimize (outside the tx)
			if _, err := db.ExecContext(ctx, `INSERT INTO fts_documents(fts_documents) VALUES('optimize')`); err != nil {
				// ignore
			}
		default:
			// Unknown future step; break
		}
		cur = next
	}
	return nil
}

// ensureIndexSchema creates core index tables and FTS structures if they do not exist.
func ensureIndexSchema(ctx context.Context, db *sql.DB) error {
	ddl := []string{
		// One row per classified script line plus project metadata entries.
		`CREATE TABLE IF NOT EXISTS documents (
			doc_id    INTEGER PRIMARY KEY,
			type      TEXT    NOT NULL,
			slug      TEXT,
			scene     INTEGER,
			line_no   INTEGER,
			character TEXT,
			text      TEXT
		);`,
		`CREATE INDEX IF NOT EXISTS idx_documents_slug ON documents(slug);`,
		`CREATE INDEX IF NOT EXISTS idx_documents_scene ON documents(scene);`,

		// Contentless FTS5 index fed from documents via triggers.
		`CREATE VIRTUAL TABLE IF NOT EXISTS fts_documents USING fts5(
			text,
			content='',
			tokenize = 'unicode61'
		);`,

		// Script snapshots (history of script text for change tracking)
		`CREATE TABLE IF NOT EXISTS script_snapshots (
			id    INTEGER PRIMARY KEY,
			slug  TEXT    NOT NULL,
			ts    TEXT    NOT NULL,
			text  TEXT    NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_script_snapshots_slug_ts ON script_snapshots(slug, ts);`,
	}
	for _, q := range ddl {
		if _, err := db.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("ensure index schema: %w", err)
		}
	}
	// Triggers for contentless FTS synchronization with documents.text
	triggers := []string{
		`CREATE TRIGGER IF NOT EXISTS documents_ai AFTER INSERT ON documents BEGIN
			INSERT INTO fts_documents(rowid, text) VALUES (new.doc_id, new.text);
		END;`,
		`CREATE TRIGGER IF NOT EXISTS documents_ad AFTER DELETE ON documents BEGIN
			INSERT INTO fts_documents(fts_documents, rowid, text) VALUES ('delete', old.doc_id, old.text);
		END;`,
		`CREATE TRIGGER IF NOT EXISTS documents_au AFTER UPDATE OF text ON documents BEGIN
			INSERT INTO fts_documents(fts_documents, rowid, text) VALUES ('delete', old.doc_id, old.text);
			INSERT INTO fts_documents(rowid, text) VALUES (new.doc_id, new.text);
		END;`,
	}
	for _, q := range triggers {
		if _, err := db.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("ensure fts triggers: %w", err)
		}
	}
	return nil
}

// DetectAndRebuildIndex checks for corruption or missing schema and rebuilds the index if needed.
// It returns true when a rebuild was performed.
func DetectAndRebuildIndex(ctx context.Context, ph *ProjectHandle) (bool, error) {
	if ph == nil {
		return false, errors.New("nil ProjectHandle")
	}
	path := IndexPath(ph.Root)
	db, err := InitOrOpenIndex(ph.Root)
	if err != nil {
		backupIndexFile(path)
		_ = os.Remove(path)
		if rbErr := RebuildIndex(ctx, ph); rbErr != nil {
			return false, fmt.Errorf("rebuild after open failure: %w (open err: %v)", rbErr, err)
		}
		return true, nil
	}
	defer db.Close()
	needs := false
	var chk string
	if err := db.QueryRowContext(ctx, `PRAGMA quick_check;`).Scan(&chk); err != nil || !strings.Contains(strings.ToLower(chk), "ok") {
		needs = true
	}
	if !needs {
		if _, err := db.ExecContext(ctx, `SELECT 1 FROM documents LIMIT 1;`); err != nil {
			needs = true
		}
	}
	if !needs {
		return false, nil
	}
	backupIndexFile(path)
	_ = os.Remove(path)
	if err := RebuildIndex(ctx, ph); err != nil {
		return false, err
	}
	return true, nil
}

// backupIndexFile copies the current index file into a timestamped backup in .gsw/backups.
func backupIndexFile(indexPath string) {
	bdir := filepath.Join(filepath.Dir(indexPath), "backups")
	_ = os.MkdirAll(bdir, 0o755)
	stamp := time.Now().Format("20060102-150405")
	bak := filepath.Join(bdir, fmt.Sprintf("%s.%s.bak", filepath.Base(indexPath), stamp))
	if data, err := os.ReadFile(indexPath); err == nil {
		_ = os.WriteFile(bak, data, 0o644)
	}
}

// BuildIndexIfEmpty ensures the DB exists and, if the documents table is
// empty, populates it from the manifest and script files.
func BuildIndexIfEmpty(ctx context.Context, ph *ProjectHandle) error {
	if ph == nil {
		return errors.New("nil ProjectHandle")
	}
	db, err := InitOrOpenIndex(ph.Root)
	if err != nil {
		return err
	}
	defer db.Close()
	var cnt int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM documents;").Scan(&cnt); err != nil {
		return fmt.Errorf("check documents count: %w", err)
	}
	if cnt > 0 {
		return nil // already built
	}
	return rebuildDocumentsFromProject(ctx, db, ph)
}

// UpdateIndex replaces the documents content from the current manifest and
// script files.
func UpdateIndex(ctx context.Context, ph *ProjectHandle) error {
	if ph == nil {
		return errors.New("nil ProjectHandle")
	}
	db, err := InitOrOpenIndex(ph.Root)
	if err != nil {
		return err
	}
	defer db.Close()
	return rebuildDocumentsFromProject(ctx, db, ph)
}

// RebuildIndex drops and recreates core index tables and rebuilds content from the manifest.
// It preserves meta/version and snapshot tables; the index is derived data.
func RebuildIndex(ctx context.Context, ph *ProjectHandle) error {
	if ph == nil {
		return errors.New("nil ProjectHandle")
	}
	db, err := InitOrOpenIndex(ph.Root)
	if err != nil {
		return err
	}
	defer db.Close()
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	drops := []string{
		"DROP TRIGGER IF EXISTS documents_ai;",
		"DROP TRIGGER IF EXISTS documents_ad;",
		"DROP TRIGGER IF EXISTS documents_au;",
		"DROP TABLE IF EXISTS documents;",
		"DROP TABLE IF EXISTS fts_documents;",
	}
	for _, q := range drops {
		if _, err := tx.ExecContext(ctx, q); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("drop schema: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("drop commit: %w", err)
	}
	if err := ensureIndexSchema(ctx, db); err != nil {
		return err
	}
	return rebuildDocumentsFromProject(ctx, db, ph)
}

// docRow is one pending documents insert.
type docRow struct {
	typeStr   string
	slug      sql.NullString
	scene     sql.NullInt64
	lineNo    sql.NullInt64
	character sql.NullString
	text      string
}

// rebuildDocumentsFromProject replaces the documents table content from the
// manifest and every registered script, parsed into classified lines.
func rebuildDocumentsFromProject(ctx context.Context, db *sql.DB, ph *ProjectHandle) error {
	rows := make([]docRow, 0, 256)
	proj := ph.Project
	if s := strings.TrimSpace(proj.Name); s != "" {
		rows = append(rows, docRow{typeStr: "project_name", text: s})
	}
	if s := strings.TrimSpace(proj.Metadata.Title); s != "" {
		rows = append(rows, docRow{typeStr: "project_title", text: s})
	}
	if s := strings.TrimSpace(proj.Metadata.Authors); s != "" {
		rows = append(rows, docRow{typeStr: "project_authors", text: s})
	}
	if s := strings.TrimSpace(proj.Metadata.Notes); s != "" {
		rows = append(rows, docRow{typeStr: "project_notes", text: s})
	}

	for _, scr := range proj.Scripts {
		text, err := ReadScript(ph, scr.Slug)
		if err != nil {
			return err
		}
		if strings.TrimSpace(text) == "" {
			continue
		}
		slug := sql.NullString{String: scr.Slug, Valid: true}
		parsed := screenplay.Parse(text)
		for _, sc := range parsed.Scenes {
			scene := sql.NullInt64{Int64: int64(sc.Number), Valid: sc.Number > 0}
			if sc.Heading != "" {
				rows = append(rows, docRow{
					typeStr: element.SceneHeading.String(),
					slug:    slug, scene: scene,
					text: sc.Heading,
				})
			}
			for _, ln := range sc.Lines {
				r := docRow{
					typeStr: ln.Type.String(),
					slug:    slug, scene: scene,
					lineNo: sql.NullInt64{Int64: int64(ln.LineNo), Valid: true},
					text:   ln.Text,
				}
				if ln.Speaker != "" {
					r.character = sql.NullString{String: ln.Speaker, Valid: true}
				}
				rows = append(rows, r)
			}
		}
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM documents;"); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("clear documents: %w", err)
	}
	ins, err := tx.PrepareContext(ctx, "INSERT INTO documents(type, slug, scene, line_no, character, text) VALUES(?,?,?,?,?,?);")
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer ins.Close()
	for _, r := range rows {
		if _, err := ins.ExecContext(ctx, r.typeStr, r.slug, r.scene, r.lineNo, r.character, r.text); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("insert document: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
