/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * Licensed under the Apache License, Version 2.0.
 */
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// SearchQuery describes the in-app search request.
// Text uses SQLite FTS5 syntax (simple terms, phrases in quotes, AND/OR/NOT).
// Filters are optional. Character matches the speaker of dialogue lines.
// Types can restrict to element kinds: scene_heading, dialogue, action, ...
// SceneFrom/To are inclusive scene numbers; 0 means unset.
// Limit/Offset implement pagination; reasonable defaults applied if zero.
type SearchQuery struct {
	Text      string
	Slug      string
	Character string
	Types     []string
	SceneFrom int
	SceneTo   int
	Limit     int
	Offset    int
}

// SearchResult represents a single match row.
// Snippet is an optional highlighted excerpt using [ ] markers when FTS text is used.
// Scene is 0 when the match precedes the first scene heading.
type SearchResult struct {
	DocID     int64
	Type      string
	Slug      string
	Scene     int
	LineNo    int
	Character string
	Snippet   string
}

// Search performs full-text search with optional filters over the embedded index.
// When q.Text is empty, it falls back to a non-FTS scan over documents with filters applied.
func Search(ctx context.Context, projectRoot string, q SearchQuery) ([]SearchResult, error) {
	if strings.TrimSpace(projectRoot) == "" {
		return nil, errors.New("project root is required")
	}
	db, err := InitOrOpenIndex(projectRoot)
	if err != nil {
		return nil, err
	}
	defer db.Close()
	return searchDB(ctx, db, q)
}

func searchDB(ctx context.Context, db *sql.DB, q SearchQuery) ([]SearchResult, error) {
	var args []any
	var sb strings.Builder
	useFTS := strings.TrimSpace(q.Text) != ""
	if useFTS {
		sb.WriteString("SELECT d.doc_id, d.type, COALESCE(d.slug,''), COALESCE(d.scene,0), COALESCE(d.line_no,0), COALESCE(d.character,''), snippet(fts_documents, 0, '[', ']', '…', 10)\n")
		sb.WriteString("FROM fts_documents JOIN documents d ON fts_documents.rowid = d.doc_id\n")
		sb.WriteString("WHERE fts_documents MATCH ?\n")
		args = append(args, q.Text)
	} else {
		sb.WriteString("SELECT d.doc_id, d.type, COALESCE(d.slug,''), COALESCE(d.scene,0), COALESCE(d.line_no,0), COALESCE(d.character,''), ''\n")
		sb.WriteString("FROM documents d\nWHERE 1=1\n")
	}
	if s := strings.TrimSpace(q.Slug); s != "" {
		sb.WriteString(" AND d.slug = ?\n")
		args = append(args, s)
	}
	if len(q.Types) > 0 {
		sb.WriteString(" AND d.type IN (" + placeholders(len(q.Types)) + ")\n")
		for _, t := range q.Types {
			args = append(args, t)
		}
	}
	if q.SceneFrom > 0 && q.SceneTo > 0 && q.SceneTo >= q.SceneFrom {
		sb.WriteString(" AND d.scene BETWEEN ? AND ?\n")
		args = append(args, q.SceneFrom, q.SceneTo)
	} else if q.SceneFrom > 0 {
		sb.WriteString(" AND d.scene >= ?\n")
		args = append(args, q.SceneFrom)
	} else if q.SceneTo > 0 {
		sb.WriteString(" AND d.scene <= ?\n")
		args = append(args, q.SceneTo)
	}
	if s := strings.TrimSpace(q.Character); s != "" {
		sb.WriteString(" AND d.character IS NOT NULL AND upper(d.character) = upper(?)\n")
		args = append(args, s)
	}
	limit := q.Limit
	if limit <= 0 {
		limit = 100
	}
	if q.Offset < 0 {
		q.Offset = 0
	}
	sb.WriteString("ORDER BY d.slug, d.scene NULLS LAST, d.line_no, d.doc_id\n")
	sb.WriteString("LIMIT ? OFFSET ?")
	args = append(args, limit, q.Offset)

	rows, err := db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("search query: %w", err)
	}
	defer rows.Close()
	var out []SearchResult
	for rows.Next() {
		var r SearchResult
		if err := rows.Scan(&r.DocID, &r.Type, &r.Slug, &r.Scene, &r.LineNo, &r.Character, &r.Snippet); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// SceneList returns the scene headings of a script in scene order, for the
// outline sidebar and go-to-scene navigation.
func SceneList(ctx context.Context, projectRoot, slug string) ([]SearchResult, error) {
	if strings.TrimSpace(projectRoot) == "" {
		return nil, errors.New("project root is required")
	}
	db, err := InitOrOpenIndex(projectRoot)
	if err != nil {
		return nil, err
	}
	defer db.Close()
	q := `SELECT d.doc_id, d.type, COALESCE(d.slug,''), COALESCE(d.scene,0), COALESCE(d.line_no,0), '', d.text
		FROM documents d
		WHERE d.slug = ? AND d.type = 'scene_heading'
		ORDER BY d.scene`
	rows, err := db.QueryContext(ctx, q, slug)
	if err != nil {
		return nil, fmt.Errorf("scene list query: %w", err)
	}
	defer rows.Close()
	var out []SearchResult
	for rows.Next() {
		var r SearchResult
		if err := rows.Scan(&r.DocID, &r.Type, &r.Slug, &r.Scene, &r.LineNo, &r.Character, &r.Snippet); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// CharacterReport aggregates how many dialogue lines each character speaks
// in the given script; slug "" spans the whole project.
func CharacterReport(ctx context.Context, projectRoot, slug string) (map[string]int, error) {
	if strings.TrimSpace(projectRoot) == "" {
		return nil, errors.New("project root is required")
	}
	db, err := InitOrOpenIndex(projectRoot)
	if err != nil {
		return nil, err
	}
	defer db.Close()
	var sb strings.Builder
	var args []any
	sb.WriteString(`SELECT d.character, COUNT(*) FROM documents d WHERE d.type = 'dialogue' AND d.character IS NOT NULL`)
	if slug != "" {
		sb.WriteString(` AND d.slug = ?`)
		args = append(args, slug)
	}
	sb.WriteString(` GROUP BY d.character`)
	rows, err := db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("character report query: %w", err)
	}
	defer rows.Close()
	out := map[string]int{}
	for rows.Next() {
		var name string
		var n int
		if err := rows.Scan(&name, &n); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		out[name] = n
	}
	return out, rows.Err()
}

func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	b := strings.Builder{}
	for i := 0; i < n; i++ {
		if i > 0 {
			b.WriteString(",")
		}
		b.WriteString("?")
	}
	return b.String()
}
