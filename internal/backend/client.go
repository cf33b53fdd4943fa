/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client is a minimal HTTP client for the thin backend API.
// It supports the read operations and cursor presence used by the desktop app
// under a feature flag.
type Client struct {
	BaseURL string
	Token   string // bearer token
	client  *http.Client
}

// NewClient creates a new backend client. baseURL may include a trailing slash; it will be normalized.
func NewClient(baseURL string, token string) *Client {
	b := strings.TrimRight(baseURL, "/")
	return &Client{
		BaseURL: b,
		Token:   token,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) doJSON(ctx context.Context, method, path string, body, dest any) error {
	u, err := url.Parse(c.BaseURL + path)
	if err != nil {
		return err
	}
	var rd *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		rd = bytes.NewReader(b)
	} else {
		rd = bytes.NewReader(nil)
	}
	req, err := http.NewRequestWithContext(ctx, method, u.String(), rd)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("server %s %s: %s", method, u.Path, resp.Status)
	}
	if dest == nil {
		return nil
	}
	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	return dec.Decode(dest)
}

// Project is a minimal projection for listing.
type Project struct {
	ID        int64     `json:"id"`
	StableID  string    `json:"stable_id"`
	Name      string    `json:"name"`
	UpdatedAt time.Time `json:"updated_at"`
	Version   int64     `json:"version"`
}

// ListProjects returns available projects (read-only).
func (c *Client) ListProjects(ctx context.Context) ([]Project, error) {
	var list []Project
	if err := c.doJSON(ctx, http.MethodGet, "/api/projects", nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// IndexSnapshotEnvelope matches the server response for latest index snapshot of a project.
type IndexSnapshotEnvelope struct {
	ProjectID int64       `json:"project_id"`
	Version   int64       `json:"version"`
	CreatedAt string      `json:"created_at"`
	Snapshot  interface{} `json:"snapshot"`
}

// GetIndexSnapshot fetches the latest index snapshot for a project.
func (c *Client) GetIndexSnapshot(ctx context.Context, projectID int64) (*IndexSnapshotEnvelope, error) {
	var env IndexSnapshotEnvelope
	path := fmt.Sprintf("/api/projects/%d/index", projectID)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &env); err != nil {
		return nil, err
	}
	return &env, nil
}

// PostCursor reports the local caret position for a script. The server keys
// the entry by the authenticated subject, so repeated posts overwrite.
func (c *Client) PostCursor(ctx context.Context, projectID int64, cu CursorUpdate) error {
	path := fmt.Sprintf("/api/projects/%d/cursors", projectID)
	return c.doJSON(ctx, http.MethodPost, path, cu, nil)
}

// ListCursors fetches the live collaborator cursors of a project.
func (c *Client) ListCursors(ctx context.Context, projectID int64) ([]CursorUpdate, error) {
	var list []CursorUpdate
	path := fmt.Sprintf("/api/projects/%d/cursors", projectID)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}
