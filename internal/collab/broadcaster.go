/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package collab carries live cursor positions between editors sharing a
// project through the sync backend. Best effort: updates are fire and
// forget, dropped rather than ever blocking a keystroke.
package collab

import (
	"context"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"goscreenwriter/internal/backend"
	applog "goscreenwriter/internal/log"
)

// Config holds runtime configuration for cursor sharing.
//
// Environment variables (read by FromEnv):
// - GSW_COLLAB_URL: backend base URL; empty disables sharing entirely
// - GSW_COLLAB_TOKEN: bearer token for the backend
// - GSW_COLLAB_PROJECT_ID: numeric backend project id
// - GSW_COLLAB_POLL_MS: remote cursor poll interval, default 2000ms
type Config struct {
	BaseURL   string
	Token     string
	ProjectID int64
	Poll      time.Duration
}

func FromEnv() Config {
	cfg := Config{
		BaseURL: strings.TrimSpace(os.Getenv("GSW_COLLAB_URL")),
		Token:   strings.TrimSpace(os.Getenv("GSW_COLLAB_TOKEN")),
		Poll:    2 * time.Second,
	}
	if v := strings.TrimSpace(os.Getenv("GSW_COLLAB_PROJECT_ID")); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.ProjectID = id
		}
	}
	if ms := strings.TrimSpace(os.Getenv("GSW_COLLAB_POLL_MS")); ms != "" {
		if v, err := time.ParseDuration(ms + "ms"); err == nil && v > 0 {
			cfg.Poll = v
		}
	}
	return cfg
}

// poster is the backend surface the broadcaster needs.
type poster interface {
	PostCursor(ctx context.Context, projectID int64, cu backend.CursorUpdate) error
	ListCursors(ctx context.Context, projectID int64) ([]backend.CursorUpdate, error)
}

// Broadcaster queues local cursor updates and ships them to the backend from
// a background goroutine. It satisfies the editor's Broadcaster interface.
type Broadcaster struct {
	cfg    Config
	log    *slog.Logger
	cli    poster
	q      chan backend.CursorUpdate
	once   sync.Once
	closed chan struct{}

	mu     sync.Mutex
	slug   string
	remote []backend.CursorUpdate
}

// New constructs a broadcaster. A nil return means sharing is disabled and
// callers can pass it straight to the editor; the controller treats a nil
// Broadcaster as no collaboration.
func New(cfg Config) *Broadcaster {
	if cfg.BaseURL == "" || cfg.ProjectID == 0 {
		return nil
	}
	b := &Broadcaster{
		cfg:    cfg,
		log:    applog.WithComponent("collab"),
		cli:    backend.NewClient(cfg.BaseURL, cfg.Token),
		q:      make(chan backend.CursorUpdate, 64),
		closed: make(chan struct{}),
	}
	go b.loop()
	return b
}

// SetSlug names the script the local cursor lives in. Subsequent updates
// carry it.
func (b *Broadcaster) SetSlug(slug string) {
	if b == nil {
		return
	}
	b.mu.Lock()
	b.slug = slug
	b.mu.Unlock()
}

// SendCursor queues the local caret position. SelStart/SelEnd are -1 when no
// selection is active. Never blocks; a full queue drops the update.
func (b *Broadcaster) SendCursor(offset, selStart, selEnd int) {
	if b == nil {
		return
	}
	b.mu.Lock()
	slug := b.slug
	b.mu.Unlock()
	cu := backend.CursorUpdate{
		Slug:     slug,
		Offset:   offset,
		SelStart: selStart,
		SelEnd:   selEnd,
	}
	select {
	case b.q <- cu:
	default:
		// drop if queue full
	}
}

// Remote returns the last polled collaborator cursors.
func (b *Broadcaster) Remote() []backend.CursorUpdate {
	if b == nil {
		return nil
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]backend.CursorUpdate, len(b.remote))
	copy(out, b.remote)
	return out
}

// Close stops the background goroutine.
func (b *Broadcaster) Close() {
	if b == nil {
		return
	}
	b.once.Do(func() { close(b.closed) })
}

func (b *Broadcaster) loop() {
	tick := time.NewTicker(b.cfg.Poll)
	defer tick.Stop()
	for {
		select {
		case <-b.closed:
			return
		case cu := <-b.q:
			// Only the newest queued position matters; skip ahead.
			b.post(b.drain(cu))
		case <-tick.C:
			b.poll()
		}
	}
}

func (b *Broadcaster) drain(cu backend.CursorUpdate) backend.CursorUpdate {
	for {
		select {
		case next := <-b.q:
			cu = next
		default:
			return cu
		}
	}
}

func (b *Broadcaster) post(cu backend.CursorUpdate) {
	ctx, cancel := context.WithTimeout(context.Background(), 1500*time.Millisecond)
	defer cancel()
	if err := b.cli.PostCursor(ctx, b.cfg.ProjectID, cu); err != nil {
		b.log.Debug("cursor post failed", slog.Any("err", err))
	}
}

func (b *Broadcaster) poll() {
	ctx, cancel := context.WithTimeout(context.Background(), 1500*time.Millisecond)
	defer cancel()
	list, err := b.cli.ListCursors(ctx, b.cfg.ProjectID)
	if err != nil {
		b.log.Debug("cursor poll failed", slog.Any("err", err))
		return
	}
	b.mu.Lock()
	b.remote = list
	b.mu.Unlock()
}
