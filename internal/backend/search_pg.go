/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * Licensed under the Apache License, Version 2.0.
 */
package backend

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"goscreenwriter/internal/storage"
)

// SearchPG executes a search over the Postgres documents table using tsvector and filters
// and returns results mapped to storage.SearchResult to ease parity checks.
func SearchPG(ctx context.Context, db *sql.DB, projectID int64, q storage.SearchQuery) ([]storage.SearchResult, error) {
	var (
		args []any
		b    strings.Builder
	)
	useFTS := strings.TrimSpace(q.Text) != ""
	if useFTS {
		b.WriteString("SELECT d.id AS doc_id, d.doc_type AS type, COALESCE(d.slug,'') AS slug, COALESCE(d.scene,0) AS scene, COALESCE(d.line_no,0) AS line_no, COALESCE(d.character,'') AS character, ")
		b.WriteString("COALESCE(ts_headline('simple', COALESCE(d.raw_text,''), plainto_tsquery('simple', $1), 'StartSel=[, StopSel=], MaxFragments=1, MaxWords=12'), '') AS snippet ")
		b.WriteString("FROM documents d WHERE d.project_id = $2 AND d.search_vector @@ plainto_tsquery('simple', $1) ")
		args = append(args, q.Text, projectID)
	} else {
		b.WriteString("SELECT d.id AS doc_id, d.doc_type AS type, COALESCE(d.slug,'') AS slug, COALESCE(d.scene,0) AS scene, COALESCE(d.line_no,0) AS line_no, COALESCE(d.character,'') AS character, '' AS snippet ")
		b.WriteString("FROM documents d WHERE d.project_id = $1 ")
		args = append(args, projectID)
	}

	// Helper to add parameter and return placeholder like $n
	place := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	// Script filter
	if s := strings.TrimSpace(q.Slug); s != "" {
		b.WriteString(" AND d.slug = " + place(s) + " ")
	}
	// Types filter
	if len(q.Types) > 0 {
		b.WriteString(" AND d.doc_type = ANY (" + place(q.Types) + ") ")
	}
	// Scene range
	if q.SceneFrom > 0 && q.SceneTo > 0 && q.SceneTo >= q.SceneFrom {
		b.WriteString(" AND d.scene BETWEEN " + place(q.SceneFrom) + " AND " + place(q.SceneTo) + " ")
	} else if q.SceneFrom > 0 {
		b.WriteString(" AND d.scene >= " + place(q.SceneFrom) + " ")
	} else if q.SceneTo > 0 {
		b.WriteString(" AND d.scene <= " + place(q.SceneTo) + " ")
	}
	// Character filter, case-insensitive like the SQLite side
	if s := strings.TrimSpace(q.Character); s != "" {
		b.WriteString(" AND d.character IS NOT NULL AND upper(d.character) = upper(" + place(s) + ") ")
	}
	// Order and pagination
	limit := q.Limit
	if limit <= 0 {
		limit = 100
	}
	offset := q.Offset
	if offset < 0 {
		offset = 0
	}
	b.WriteString(" ORDER BY d.slug, d.scene NULLS LAST, d.line_no, d.id ")
	b.WriteString(" LIMIT " + place(limit) + " OFFSET " + place(offset))

	rows, err := db.QueryContext(ctx, b.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("search pg query: %w", err)
	}
	defer func() { _ = rows.Close() }()
	var out []storage.SearchResult
	for rows.Next() {
		var r storage.SearchResult
		if err := rows.Scan(&r.DocID, &r.Type, &r.Slug, &r.Scene, &r.LineNo, &r.Character, &r.Snippet); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
