/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package editor glues the classification, markup and caret engines to a
// host text surface. The host owns the document buffer; the controller only
// computes replacements and offsets and hands them back, so every call is
// side-effect free from the buffer's point of view and safe to re-run.
package editor

import (
	"log/slog"
	"strings"

	"goscreenwriter/internal/element"
	"goscreenwriter/internal/linecache"
	applog "goscreenwriter/internal/log"
	"goscreenwriter/internal/markup"
)

// Host is the editor state container the controller drives. GetContent
// returns the full content (markers included); offsets handed to
// ReplaceSelection are full-content space.
type Host interface {
	GetContent() string
	SetContent(string)
	SetCursorPosition(offset int)
	SetCurrentElementType(t element.Type)
	ReplaceSelection(newText string, fullStart, fullEnd int)
}

// Broadcaster carries local cursor positions toward remote collaborators.
// Sends are fire-and-forget; a failed broadcast degrades silently.
type Broadcaster interface {
	SendCursor(offset, selStart, selEnd int)
}

// Key identifies the keyboard inputs the engine interprets.
type Key int

const (
	KeyNone Key = iota
	KeyEnter
	KeyTab
	KeyI
)

// KeyEvent is one keyboard input with its cursor context. Cursor and
// selection offsets are display-content space, as quoted by the UI surface.
// SelStart/SelEnd are -1 when no selection exists.
type KeyEvent struct {
	Key      Key
	Shift    bool
	CtrlCmd  bool
	Cursor   int
	SelStart int
	SelEnd   int
}

// Controller tracks the current element type and applies the keyboard
// contract. A single controller serves a single document surface.
type Controller struct {
	host    Host
	cache   *linecache.Cache
	bcast   Broadcaster
	current element.Type
	log     *slog.Logger
}

// New creates a controller for the host. bcast may be nil when collaboration
// is disabled.
func New(host Host, bcast Broadcaster) *Controller {
	return &Controller{
		host:  host,
		cache: linecache.New(0),
		bcast: bcast,
		log:   applog.WithComponent("editor"),
	}
}

// CurrentType returns the element type at the last known cursor position.
func (c *Controller) CurrentType() element.Type { return c.current }

// HandleKey interprets one keyboard event. It returns true when the event
// was consumed (the host must suppress its default insertion).
func (c *Controller) HandleKey(ev KeyEvent) bool {
	c.log.Debug("key", slog.Int("key", int(ev.Key)), slog.Bool("ctrl", ev.CtrlCmd), slog.Bool("shift", ev.Shift), slog.Int("cursor", ev.Cursor))
	switch {
	case ev.Key == KeyEnter && ev.CtrlCmd:
		c.insertSceneBreak(ev)
		return true
	case ev.Key == KeyEnter:
		c.insertLineBreak(ev)
		return true
	case ev.Key == KeyTab && ev.Shift:
		c.reformatCurrentLine(ev, element.SceneHeading)
		return true
	case ev.Key == KeyTab:
		c.reformatCurrentLine(ev, element.Character)
		return true
	case ev.Key == KeyI && ev.CtrlCmd:
		c.toggleEmphasis(ev)
		return true
	}
	return false
}

// RefreshType re-derives the element type of the line under the display
// cursor. detect is ground truth; the transition table only suggests.
func (c *Controller) RefreshType(displayCursor int) element.Type {
	full := c.host.GetContent()
	display := markup.StripForDisplay(full)
	line, prev := lineAt(display, clampOffset(displayCursor, len(display)))
	c.current = element.DetectType(line, prev)
	c.host.SetCurrentElementType(c.current)
	return c.current
}

// BroadcastCursor reports the local caret (and optional selection) to the
// collaboration channel, if any. No acknowledgment, no retry.
func (c *Controller) BroadcastCursor(offset, selStart, selEnd int) {
	if c.bcast == nil {
		return
	}
	c.bcast.SendCursor(offset, selStart, selEnd)
}

// GoToLine returns the display offset of the first character of the 1-based
// line number, for scroll-to-line navigation.
func (c *Controller) GoToLine(lineNumber int) int {
	display := markup.StripForDisplay(c.host.GetContent())
	return c.cache.GetCharPosition(display, lineNumber)
}

// insertLineBreak inserts "\n" at the cursor and advances the element type
// along the convention table.
func (c *Controller) insertLineBreak(ev KeyEvent) {
	full := c.host.GetContent()
	display := markup.StripForDisplay(full)
	start, end := c.fullSpan(display, full, ev)
	c.host.ReplaceSelection("\n", start, end)
	c.current = element.NextType(c.current)
	c.host.SetCurrentElementType(c.current)
	c.host.SetCursorPosition(markup.FullToDisplay(full, start) + 1)
}

// insertSceneBreak is the quick-format shortcut: a new line already carrying
// the scene heading prefix.
func (c *Controller) insertSceneBreak(ev KeyEvent) {
	const prefix = "INT. "
	full := c.host.GetContent()
	display := markup.StripForDisplay(full)
	start, end := c.fullSpan(display, full, ev)
	c.host.ReplaceSelection("\n"+prefix, start, end)
	c.current = element.SceneHeading
	c.host.SetCurrentElementType(c.current)
	c.host.SetCursorPosition(markup.FullToDisplay(full, start) + 1 + len(prefix))
}

// reformatCurrentLine forces the line under the cursor into the target type.
func (c *Controller) reformatCurrentLine(ev KeyEvent, target element.Type) {
	full := c.host.GetContent()
	display := markup.StripForDisplay(full)
	cursor := clampOffset(ev.Cursor, len(display))
	ls, le := lineBounds(display, cursor)
	line := display[ls:le]
	formatted := element.FormatElement(line, target)
	fs := markup.DisplayToFull(display, full, ls)
	fe := markup.DisplayToFull(display, full, le)
	if formatted != full[fs:fe] {
		c.host.ReplaceSelection(formatted, fs, fe)
	}
	c.current = target
	c.host.SetCurrentElementType(target)
	c.host.SetCursorPosition(ls + len(formatted))
}

// toggleEmphasis styles the selection, or drops an empty marker pair at the
// cursor so the next keystroke appears styled.
func (c *Controller) toggleEmphasis(ev KeyEvent) {
	full := c.host.GetContent()
	display := markup.StripForDisplay(full)
	start, end := c.fullSpan(display, full, ev)
	// A display selection of a styled span translates to a full span that
	// begins at the opening marker but stops short of the closing one.
	// Extend over the closing marker when that completes an exact pair.
	if end < len(full) && full[end] == markup.Marker && markup.Emphasized(full, start, end+1) {
		end++
	}
	repl, caret := markup.ToggleEmphasis(full, start, end)
	c.host.ReplaceSelection(repl, start, end)
	newFull := full[:start] + repl + full[end:]
	c.host.SetCursorPosition(markup.FullToDisplay(newFull, start+caret))
}

// fullSpan maps the event's display selection (or collapsed cursor) into
// full-content offsets.
func (c *Controller) fullSpan(display, full string, ev KeyEvent) (int, int) {
	if ev.SelStart >= 0 && ev.SelEnd >= ev.SelStart {
		return markup.DisplayToFull(display, full, ev.SelStart),
			markup.DisplayToFull(display, full, ev.SelEnd)
	}
	p := markup.DisplayToFull(display, full, clampOffset(ev.Cursor, len(display)))
	return p, p
}

// lineAt returns the line containing offset plus the detected type of the
// preceding line.
func lineAt(display string, offset int) (string, element.Type) {
	ls, le := lineBounds(display, offset)
	prev := element.Action
	if ls > 0 {
		ps, pe := lineBounds(display, ls-1)
		// two hops of context: the previous line's own classification needs
		// its predecessor for the cue/dialogue adjacency rules
		prevPrev := element.Action
		if ps > 0 {
			pps, ppe := lineBounds(display, ps-1)
			prevPrev = element.DetectType(display[pps:ppe], element.Action)
		}
		prev = element.DetectType(display[ps:pe], prevPrev)
	}
	return display[ls:le], prev
}

// lineBounds returns the [start, end) byte bounds of the line containing
// offset; end excludes the newline.
func lineBounds(s string, offset int) (int, int) {
	offset = clampOffset(offset, len(s))
	start := strings.LastIndexByte(s[:offset], '\n') + 1
	end := strings.IndexByte(s[offset:], '\n')
	if end < 0 {
		end = len(s)
	} else {
		end += offset
	}
	return start, end
}

func clampOffset(off, n int) int {
	if off < 0 {
		return 0
	}
	if off > n {
		return n
	}
	return off
}
