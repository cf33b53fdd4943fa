//go:build fyne && cgo

/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package ui

import (
	"context"
	"fmt"
	"image/color"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/driver/mobile"
	fstorage "fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"goscreenwriter/internal/caret"
	"goscreenwriter/internal/collab"
	"goscreenwriter/internal/crash"
	"goscreenwriter/internal/domain"
	"goscreenwriter/internal/editor"
	"goscreenwriter/internal/element"
	"goscreenwriter/internal/export"
	applog "goscreenwriter/internal/log"
	"goscreenwriter/internal/markup"
	"goscreenwriter/internal/screenplay"
	"goscreenwriter/internal/storage"
	"goscreenwriter/internal/stylepack"
	"goscreenwriter/internal/textlayout"
	"goscreenwriter/internal/undo"
	"goscreenwriter/internal/version"
)

// Run starts the Fyne-based desktop UI: the script editor surface with the
// element-type indicator, scene outline, search and export menus.
func Run(projectDir string) error {
	applog.Init(applog.FromEnv())
	l := applog.WithComponent("ui")
	l.Info("starting UI")

	var ph *storage.ProjectHandle
	defer func() { crash.Recover(ph) }()

	fyneApp := app.NewWithID("goscreenwriter")
	w := fyneApp.NewWindow("Go Screen Writer")
	// Restore window size from preferences (with sane minimums)
	prefs := fyneApp.Preferences()
	winW := prefs.IntWithFallback("window.width", 1100)
	winH := prefs.IntWithFallback("window.height", 760)
	if winW < 800 {
		winW = 800
	}
	if winH < 600 {
		winH = 600
	}
	w.Resize(fyne.NewSize(float32(winW), float32(winH)))

	status := widget.NewLabel("Ready")
	typeLabel := widget.NewLabelWithStyle("ACTION", fyne.TextAlignTrailing, fyne.TextStyle{Bold: true})

	currentSlug := ""
	dirty := false
	lastText := ""
	markDirty := func(d bool) {
		dirty = d
		title := "Go Screen Writer"
		if ph != nil {
			title += " - " + ph.Project.Name
			if currentSlug != "" {
				title += " / " + currentSlug
			}
		}
		if d {
			title += " *"
		}
		w.SetTitle(title)
	}

	// Undo manager with safeguards (snapshots capture whole script text)
	undoMgr := undo.NewManager(undo.Config{
		MaxBytes:     16 * 1024 * 1024,
		MaxPerScript: 50,
		MinInterval:  300 * time.Millisecond,
	})

	// Collaboration is off unless the environment names a backend.
	collabCast := collab.New(collab.FromEnv())
	defer collabCast.Close()

	surface := newScriptEntry()
	host := &entryHost{entry: surface}
	ctrl := editor.New(host, collabCast)
	surface.ctrl = ctrl
	host.onType = func(t element.Type) {
		typeLabel.SetText(strings.ToUpper(strings.ReplaceAll(t.String(), "_", " ")))
	}

	// Scene outline (left)
	var outlineScenes []screenplay.Scene
	outlineItems := []string{}
	outlineList := widget.NewList(
		func() int { return len(outlineItems) },
		func() fyne.CanvasObject { return widget.NewLabel("") },
		func(i widget.ListItemID, o fyne.CanvasObject) { o.(*widget.Label).SetText(outlineItems[i]) },
	)
	refreshOutline := func() {
		parsed := screenplay.Parse(surface.Text)
		outlineScenes = parsed.Scenes
		outlineItems = outlineItems[:0]
		for _, sc := range parsed.Scenes {
			if sc.Heading == "" {
				outlineItems = append(outlineItems, "(opening)")
				continue
			}
			outlineItems = append(outlineItems, fmt.Sprintf("%d  %s", sc.Number, sc.Heading))
		}
		outlineList.Refresh()
	}
	outlineList.OnSelected = func(id widget.ListItemID) {
		if id < 0 || int(id) >= len(outlineScenes) {
			return
		}
		line := outlineScenes[id].HeadingLine
		if line < 1 {
			line = 1
		}
		host.SetCursorPosition(ctrl.GoToLine(line))
		w.Canvas().Focus(surface)
		outlineList.UnselectAll()
	}

	// Script switcher (one project holds several scripts)
	scriptSelect := widget.NewSelect(nil, nil)
	scriptSelect.PlaceHolder = "No script"

	saveCurrent := func() {
		if ph == nil || currentSlug == "" {
			return
		}
		text := surface.Text
		if err := storage.WriteScript(ph, currentSlug, text); err != nil {
			l.Error("write script", slog.Any("err", err))
			dialog.ShowError(err, w)
			return
		}
		if err := storage.Save(ph); err != nil {
			l.Error("save project", slog.Any("err", err))
			dialog.ShowError(err, w)
			return
		}
		markDirty(false)
		status.SetText("Saved.")
		go func(h *storage.ProjectHandle, slug, snapshot string) {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			if err := storage.SaveScriptSnapshot(ctx, h, slug, snapshot, time.Now()); err != nil {
				l.Warn("script snapshot", slog.Any("err", err))
			}
			if err := storage.UpdateIndex(ctx, h); err != nil {
				l.Warn("index update", slog.Any("err", err))
				return
			}
			fyne.Do(func() { status.SetText("Saved. Index updated.") })
		}(ph, currentSlug, text)
	}

	loadScript := func(slug string) {
		if ph == nil {
			return
		}
		text, err := storage.ReadScript(ph, slug)
		if err != nil {
			l.Error("read script", slog.String("slug", slug), slog.Any("err", err))
			dialog.ShowError(err, w)
			return
		}
		currentSlug = slug
		lastText = text
		surface.SetText(text)
		collabCast.SetSlug(slug)
		markDirty(false)
		refreshOutline()
		ctrl.RefreshType(0)
		status.SetText("Opened script: " + slug)
	}

	refreshScriptSelect := func() {
		opts := []string{}
		if ph != nil {
			for _, s := range ph.Project.Scripts {
				opts = append(opts, s.Slug)
			}
		}
		scriptSelect.Options = opts
		scriptSelect.Refresh()
	}
	scriptSelect.OnChanged = func(slug string) {
		if slug == "" || slug == currentSlug {
			return
		}
		if dirty {
			saveCurrent()
		}
		loadScript(slug)
	}

	surface.OnChanged = func(s string) {
		if ph == nil || currentSlug == "" {
			return
		}
		if s == lastText {
			return
		}
		undoMgr.PushSnapshot(undo.Snapshot{Slug: currentSlug, Blob: []byte(lastText), TS: time.Now()})
		lastText = s
		markDirty(true)
		refreshOutline()
		surface.refreshCursorState()
	}

	// Search state (omnibox + results panel)
	searchItems := []string{}
	var searchResults []storage.SearchResult
	searchList := widget.NewList(
		func() int { return len(searchItems) },
		func() fyne.CanvasObject { return widget.NewLabel("") },
		func(i widget.ListItemID, o fyne.CanvasObject) { o.(*widget.Label).SetText(searchItems[i]) },
	)
	navigateToResult := func(r storage.SearchResult) {
		if r.Slug != "" && r.Slug != currentSlug {
			if dirty {
				saveCurrent()
			}
			loadScript(r.Slug)
			scriptSelect.SetSelected(r.Slug)
		}
		if r.LineNo > 0 {
			host.SetCursorPosition(ctrl.GoToLine(r.LineNo))
		}
		w.Canvas().Focus(surface)
	}
	omniBox := widget.NewEntry()
	omniBox.SetPlaceHolder("Search project (Ctrl+K)…")
	runSearch := func(q string) {
		qq := strings.TrimSpace(q)
		if qq == "" || ph == nil {
			searchItems = searchItems[:0]
			searchResults = searchResults[:0]
			searchList.Refresh()
			return
		}
		status.SetText("Searching…")
		go func(h *storage.ProjectHandle, text string) {
			ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
			defer cancel()
			res, err := storage.Search(ctx, h.Root, storage.SearchQuery{Text: text, Limit: 200})
			fyne.Do(func() {
				if err != nil {
					l.Error("search failed", slog.Any("err", err))
					status.SetText("Search failed.")
					return
				}
				searchResults = res
				searchItems = searchItems[:0]
				for _, r := range res {
					loc := r.Slug
					if r.Scene > 0 {
						loc = fmt.Sprintf("%s sc.%d", r.Slug, r.Scene)
					}
					sn := strings.TrimSpace(r.Snippet)
					if len(sn) > 120 {
						sn = sn[:120] + "…"
					}
					searchItems = append(searchItems, fmt.Sprintf("%s [%s] %s", loc, r.Type, sn))
				}
				searchList.Refresh()
				status.SetText(fmt.Sprintf("%d results", len(res)))
			})
		}(ph, qq)
	}
	omniBox.OnSubmitted = func(s string) { runSearch(s) }
	searchList.OnSelected = func(id widget.ListItemID) {
		if id < 0 || int(id) >= len(searchResults) {
			return
		}
		navigateToResult(searchResults[id])
		searchList.UnselectAll()
	}

	// Remote collaborator cursors, drawn over the text surface.
	fl := textlayout.NewFontLibrary()
	if err := fl.LoadBytes("mono", 400, false, theme.DefaultTextMonospaceFont().Content()); err != nil {
		l.Warn("load mono face", slog.Any("err", err))
	}
	provider := textlayout.OTProvider{Lib: fl}
	overlay := container.NewWithoutLayout()
	refreshRemoteCursors := func() {
		overlay.Objects = overlay.Objects[:0]
		defer overlay.Refresh()
		if collabCast == nil || currentSlug == "" {
			return
		}
		full := surface.Text
		display := markup.StripForDisplay(full)
		m := surfaceMetricsFor(surface)
		caretColor := color.NRGBA{R: 0xE0, G: 0x5A, B: 0x2B, A: 0xFF}
		selColor := color.NRGBA{R: 0xE0, G: 0x5A, B: 0x2B, A: 0x50}
		lineH := m.LineHeight
		for _, cu := range collabCast.Remote() {
			if cu.Slug != currentSlug {
				continue
			}
			rc := caret.RemoteCursor{Offset: displayToFullClamped(display, full, cu.Offset), SelStart: -1, SelEnd: -1}
			if cu.SelStart >= 0 && cu.SelEnd >= cu.SelStart {
				rc.SelStart = displayToFullClamped(display, full, cu.SelStart)
				rc.SelEnd = displayToFullClamped(display, full, cu.SelEnd)
			}
			pt, rng := caret.ProjectCursor(provider, m, full, rc)
			if rng != nil && rng.Start.Y == rng.End.Y {
				box := canvas.NewRectangle(selColor)
				box.Move(fyne.NewPos(rng.Start.X, rng.Start.Y))
				box.Resize(fyne.NewSize(rng.End.X-rng.Start.X, lineH))
				overlay.Add(box)
			}
			if pt != nil {
				bar := canvas.NewRectangle(caretColor)
				bar.Move(fyne.NewPos(pt.X, pt.Y))
				bar.Resize(fyne.NewSize(2, lineH))
				overlay.Add(bar)
			}
		}
	}
	uiDone := make(chan struct{})
	if collabCast != nil {
		go func() {
			tick := time.NewTicker(2 * time.Second)
			defer tick.Stop()
			for {
				select {
				case <-uiDone:
					return
				case <-tick.C:
					fyne.Do(refreshRemoteCursors)
				}
			}
		}()
	}

	// Quick-format menu doubles as the long-press action on touch surfaces.
	showFormatMenu := func(pos fyne.Position) {
		items := []*fyne.MenuItem{}
		for _, t := range element.Types() {
			tt := t
			label := strings.ToUpper(strings.ReplaceAll(tt.String(), "_", " "))
			items = append(items, fyne.NewMenuItem(label, func() {
				surface.reformatAs(tt)
			}))
		}
		pop := widget.NewPopUpMenu(fyne.NewMenu("Format", items...), w.Canvas())
		pop.ShowAtPosition(pos)
	}
	surface.onLongPress = showFormatMenu

	openProjectAt := func(dir string) {
		h, err := storage.Open(dir)
		if err != nil {
			l.Error("open project", slog.String("dir", dir), slog.Any("err", err))
			dialog.ShowError(err, w)
			return
		}
		ph = h
		addRecentProject(prefs, dir)
		markDirty(false)
		refreshScriptSelect()
		go func(hh *storage.ProjectHandle) {
			ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
			defer cancel()
			rebuilt, err := storage.DetectAndRebuildIndex(ctx, hh)
			if err != nil {
				l.Warn("index check", slog.Any("err", err))
			}
			if err := storage.BuildIndexIfEmpty(ctx, hh); err != nil {
				l.Warn("index build", slog.Any("err", err))
			}
			fyne.Do(func() {
				if rebuilt {
					status.SetText("Index rebuilt.")
				}
			})
		}(ph)
		if len(ph.Project.Scripts) > 0 {
			slug := ph.Project.Scripts[0].Slug
			loadScript(slug)
			scriptSelect.SetSelected(slug)
		} else {
			status.SetText("Opened project: " + ph.Project.Name)
		}
	}

	// --- Menus ---

	newItem := fyne.NewMenuItem("New…", func() {
		nameEntry := widget.NewEntry()
		nameEntry.SetPlaceHolder("My Screenplay")
		form := dialog.NewForm("New Project", "Create", "Cancel",
			[]*widget.FormItem{widget.NewFormItem("Name", nameEntry)},
			func(ok bool) {
				if !ok || strings.TrimSpace(nameEntry.Text) == "" {
					return
				}
				dialog.ShowFolderOpen(func(list fyne.ListableURI, err error) {
					if err != nil || list == nil {
						return
					}
					proj := domain.Project{
						Name: strings.TrimSpace(nameEntry.Text),
						Scripts: []domain.Script{
							{Slug: "draft", Title: "Draft", File: "script/draft" + storage.DefaultScriptExt},
						},
					}
					h, err := storage.InitProject(list.Path(), proj)
					if err != nil {
						dialog.ShowError(err, w)
						return
					}
					if err := storage.WriteScript(h, "draft", ""); err != nil {
						dialog.ShowError(err, w)
						return
					}
					openProjectAt(list.Path())
				}, w)
			}, w)
		form.Show()
	})
	openItem := fyne.NewMenuItem("Open…", func() {
		dialog.ShowFolderOpen(func(list fyne.ListableURI, err error) {
			if err != nil || list == nil {
				return
			}
			openProjectAt(list.Path())
		}, w)
	})
	saveItem := fyne.NewMenuItem("Save", func() { saveCurrent() })
	rebuildIndexItem := fyne.NewMenuItem("Rebuild Index", func() {
		if ph == nil {
			return
		}
		status.SetText("Rebuilding index…")
		go func(h *storage.ProjectHandle) {
			ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
			defer cancel()
			err := storage.RebuildIndex(ctx, h)
			fyne.Do(func() {
				if err != nil {
					l.Error("rebuild index", slog.Any("err", err))
					status.SetText("Index rebuild failed.")
					return
				}
				status.SetText("Index rebuilt.")
			})
		}(ph)
	})
	importStylePackItem := fyne.NewMenuItem("Import Style Pack…", func() {
		if ph == nil {
			return
		}
		dialog.ShowFileOpen(func(rc fyne.URIReadCloser, err error) {
			if err != nil || rc == nil {
				return
			}
			_ = rc.Close()
			n, err := stylepack.InstallPack(ph.Root, rc.URI().Path())
			if err != nil {
				dialog.ShowError(err, w)
				return
			}
			status.SetText(fmt.Sprintf("Installed %d style files.", n))
		}, w)
	})
	exportStylePackItem := fyne.NewMenuItem("Export Styles as Pack…", func() {
		if ph == nil {
			return
		}
		fs := dialog.NewFileSave(func(wc fyne.URIWriteCloser, err error) {
			if err != nil || wc == nil {
				return
			}
			_ = wc.Close()
			if err := stylepack.ExportProjectStyles(ph.Root, wc.URI().Path()); err != nil {
				dialog.ShowError(err, w)
				return
			}
			status.SetText("Style pack exported.")
		}, w)
		fs.SetFileName(ph.Project.Name + ".zip")
		fs.SetFilter(fstorage.NewExtensionFileFilter([]string{".zip"}))
		fs.Show()
	})
	closeProjItem := fyne.NewMenuItem("Close Project", func() {
		if ph == nil {
			return
		}
		if dirty {
			saveCurrent()
		}
		ph = nil
		currentSlug = ""
		lastText = ""
		surface.SetText("")
		refreshScriptSelect()
		refreshOutline()
		markDirty(false)
		status.SetText("Project closed.")
	})
	newItem.Shortcut = &desktop.CustomShortcut{KeyName: fyne.KeyN, Modifier: fyne.KeyModifierControl}
	openItem.Shortcut = &desktop.CustomShortcut{KeyName: fyne.KeyO, Modifier: fyne.KeyModifierControl}
	saveItem.Shortcut = &desktop.CustomShortcut{KeyName: fyne.KeyS, Modifier: fyne.KeyModifierControl}
	fileMenu := fyne.NewMenu("File", newItem, openItem, saveItem,
		fyne.NewMenuItemSeparator(), rebuildIndexItem, importStylePackItem, exportStylePackItem,
		fyne.NewMenuItemSeparator(), closeProjItem)

	undoMenuItem := fyne.NewMenuItem("Undo", func() {
		if currentSlug == "" {
			return
		}
		snap, ok := undoMgr.Undo(currentSlug)
		if !ok {
			status.SetText("Nothing to undo.")
			return
		}
		lastText = string(snap.Blob)
		surface.SetText(lastText)
		markDirty(true)
		refreshOutline()
	})
	redoMenuItem := fyne.NewMenuItem("Redo", func() {
		if currentSlug == "" {
			return
		}
		snap, ok := undoMgr.Redo(currentSlug)
		if !ok {
			status.SetText("Nothing to redo.")
			return
		}
		lastText = string(snap.Blob)
		surface.SetText(lastText)
		markDirty(true)
		refreshOutline()
	})
	undoMenuItem.Shortcut = &desktop.CustomShortcut{KeyName: fyne.KeyZ, Modifier: fyne.KeyModifierControl}
	redoMenuItem.Shortcut = &desktop.CustomShortcut{KeyName: fyne.KeyY, Modifier: fyne.KeyModifierControl}
	editMenu := fyne.NewMenu("Edit", undoMenuItem, redoMenuItem)

	addScriptItem := fyne.NewMenuItem("Add Script…", func() {
		if ph == nil {
			return
		}
		slugEntry := widget.NewEntry()
		slugEntry.SetPlaceHolder("episode-2")
		titleEntry := widget.NewEntry()
		dialog.ShowForm("Add Script", "Add", "Cancel",
			[]*widget.FormItem{
				widget.NewFormItem("Slug", slugEntry),
				widget.NewFormItem("Title", titleEntry),
			},
			func(ok bool) {
				if !ok {
					return
				}
				slug := strings.TrimSpace(slugEntry.Text)
				if slug == "" || ph.Project.FindScript(slug) != nil {
					status.SetText("Slug missing or already taken.")
					return
				}
				ph.Project.Scripts = append(ph.Project.Scripts, domain.Script{
					Slug:  slug,
					Title: strings.TrimSpace(titleEntry.Text),
					File:  "script/" + slug + storage.DefaultScriptExt,
				})
				if err := storage.WriteScript(ph, slug, ""); err != nil {
					dialog.ShowError(err, w)
					return
				}
				if err := storage.Save(ph); err != nil {
					dialog.ShowError(err, w)
					return
				}
				refreshScriptSelect()
				scriptSelect.SetSelected(slug)
			}, w)
	})
	goToLineItem := fyne.NewMenuItem("Go To Line…", func() {
		lineEntry := widget.NewEntry()
		dialog.ShowForm("Go To Line", "Go", "Cancel",
			[]*widget.FormItem{widget.NewFormItem("Line", lineEntry)},
			func(ok bool) {
				if !ok {
					return
				}
				n, err := strconv.Atoi(strings.TrimSpace(lineEntry.Text))
				if err != nil || n < 1 {
					return
				}
				host.SetCursorPosition(ctrl.GoToLine(n))
				w.Canvas().Focus(surface)
			}, w)
	})
	goToLineItem.Shortcut = &desktop.CustomShortcut{KeyName: fyne.KeyG, Modifier: fyne.KeyModifierControl}
	characterReportItem := fyne.NewMenuItem("Character Report…", func() {
		if ph == nil {
			return
		}
		go func(h *storage.ProjectHandle, slug string) {
			ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
			defer cancel()
			rep, err := storage.CharacterReport(ctx, h.Root, slug)
			fyne.Do(func() {
				if err != nil {
					dialog.ShowError(err, w)
					return
				}
				names := make([]string, 0, len(rep))
				for name := range rep {
					names = append(names, name)
				}
				sort.Slice(names, func(i, j int) bool {
					if rep[names[i]] != rep[names[j]] {
						return rep[names[i]] > rep[names[j]]
					}
					return names[i] < names[j]
				})
				var b strings.Builder
				for _, name := range names {
					fmt.Fprintf(&b, "%-24s %4d lines\n", name, rep[name])
				}
				if b.Len() == 0 {
					b.WriteString("No dialogue indexed yet.")
				}
				rt := widget.NewLabelWithStyle(b.String(), fyne.TextAlignLeading, fyne.TextStyle{Monospace: true})
				dialog.ShowCustom("Character Report", "Close", container.NewVScroll(rt), w)
			})
		}(ph, currentSlug)
	})
	scriptMenu := fyne.NewMenu("Script", addScriptItem, goToLineItem, characterReportItem)

	exportPDFItem := fyne.NewMenuItem("Export Script as PDF…", func() {
		if ph == nil || currentSlug == "" {
			return
		}
		if dirty {
			saveCurrent()
		}
		fs := dialog.NewFileSave(func(wc fyne.URIWriteCloser, err error) {
			if err != nil || wc == nil {
				return
			}
			_ = wc.Close()
			out := wc.URI().Path()
			go func(h *storage.ProjectHandle, slug string) {
				err := export.ExportScriptPDF(h, slug, out, export.PDFOptions{
					TitlePage:    true,
					SceneNumbers: true,
					PageNumbers:  true,
				})
				fyne.Do(func() {
					if err != nil {
						dialog.ShowError(err, w)
						return
					}
					status.SetText("PDF exported: " + out)
				})
			}(ph, currentSlug)
		}, w)
		fs.SetFileName(currentSlug + ".pdf")
		fs.SetFilter(fstorage.NewExtensionFileFilter([]string{".pdf"}))
		fs.Show()
	})
	exportTextItem := fyne.NewMenuItem("Export Script as Text…", func() {
		if ph == nil || currentSlug == "" {
			return
		}
		if dirty {
			saveCurrent()
		}
		fs := dialog.NewFileSave(func(wc fyne.URIWriteCloser, err error) {
			if err != nil || wc == nil {
				return
			}
			_ = wc.Close()
			if err := export.ExportScriptText(ph, currentSlug, wc.URI().Path(), export.TextOptions{}); err != nil {
				dialog.ShowError(err, w)
				return
			}
			status.SetText("Text exported.")
		}, w)
		fs.SetFileName(currentSlug + ".txt")
		fs.SetFilter(fstorage.NewExtensionFileFilter([]string{".txt"}))
		fs.Show()
	})
	batchExport := func(preset export.PresetName) {
		if ph == nil {
			return
		}
		if dirty {
			saveCurrent()
		}
		status.SetText("Exporting " + string(preset) + "…")
		go func(h *storage.ProjectHandle) {
			err := export.BatchExport(h, export.BatchOptions{Preset: preset})
			fyne.Do(func() {
				if err != nil {
					dialog.ShowError(err, w)
					status.SetText("Export failed.")
					return
				}
				status.SetText("Exported to exports/" + string(preset) + ".")
			})
		}(ph)
	}
	exportDraftItem := fyne.NewMenuItem("Batch Export (Draft)", func() { batchExport(export.PresetDraft) })
	exportProductionItem := fyne.NewMenuItem("Batch Export (Production)", func() { batchExport(export.PresetProduction) })
	exportMenu := fyne.NewMenu("Export", exportPDFItem, exportTextItem,
		fyne.NewMenuItemSeparator(), exportDraftItem, exportProductionItem)

	aboutItem := fyne.NewMenuItem("About Go Screen Writer", func() {
		dialog.ShowInformation("About", "Go Screen Writer "+version.String(), w)
	})
	helpMenu := fyne.NewMenu("Help", aboutItem)

	w.SetMainMenu(fyne.NewMainMenu(fileMenu, editMenu, scriptMenu, exportMenu, helpMenu))

	// Shortcut: focus omnibox with Ctrl+K
	w.Canvas().AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyK, Modifier: fyne.KeyModifierControl}, func(fyne.Shortcut) {
		w.Canvas().Focus(omniBox)
	})

	left := container.NewBorder(
		container.NewVBox(scriptSelect, widget.NewLabelWithStyle("Scenes", fyne.TextAlignLeading, fyne.TextStyle{Bold: true})),
		nil, nil, nil, outlineList)
	right := container.NewBorder(widget.NewLabel("Search Results"), nil, nil, nil, searchList)
	center := container.NewStack(surface, overlay)
	bottom := container.NewBorder(nil, nil, nil, typeLabel, status)
	top := container.NewBorder(nil, nil, nil, nil, omniBox)
	split := container.NewHSplit(left, container.NewHSplit(center, right))
	split.SetOffset(0.2)

	w.SetContent(container.NewBorder(top, bottom, nil, nil, split))

	w.SetOnClosed(func() {
		close(uiDone)
		if dirty {
			saveCurrent()
		}
		sz := w.Canvas().Size()
		prefs.SetInt("window.width", int(sz.Width))
		prefs.SetInt("window.height", int(sz.Height))
	})

	if projectDir != "" {
		openProjectAt(projectDir)
	} else if recent := loadRecentProjects(prefs); len(recent) > 0 {
		status.SetText("Recent: " + recent[0])
	}

	w.Canvas().Focus(surface)
	w.ShowAndRun()
	return nil
}

// scriptEntry is the screenplay editing surface: a multi-line entry whose
// Enter/Tab/Ctrl+I handling is delegated to the editor engine. The entry text
// is the full script content; emphasis markers stay visible the way markdown
// editors show them, and the engine translates between the marker-free
// display offsets it reasons in and the entry's own offsets.
type scriptEntry struct {
	widget.Entry
	ctrl        *editor.Controller
	shiftDown   bool
	longPress   *editor.LongPress
	lastTouch   fyne.Position
	onLongPress func(fyne.Position)
}

func newScriptEntry() *scriptEntry {
	e := &scriptEntry{}
	e.MultiLine = true
	e.Wrapping = fyne.TextWrapWord
	e.TextStyle = fyne.TextStyle{Monospace: true}
	e.ExtendBaseWidget(e)
	e.longPress = editor.NewLongPress(0, func() {
		fyne.Do(func() {
			if e.onLongPress != nil {
				e.onLongPress(e.lastTouch)
			}
		})
	})
	return e
}

// cursorOffset returns the caret position as a byte offset into e.Text.
func (e *scriptEntry) cursorOffset() int {
	return rowColToOffset(e.Text, e.CursorRow, e.CursorColumn)
}

func (e *scriptEntry) setCursorOffset(off int) {
	e.CursorRow, e.CursorColumn = offsetToRowCol(e.Text, off)
	e.Refresh()
}

// selectionSpan locates the active selection in byte offsets, (-1, -1) when
// none. The entry only exposes the selected text, so the span is recovered
// relative to the caret, which sits at one end of any selection.
func (e *scriptEntry) selectionSpan() (int, int) {
	sel := e.SelectedText()
	if sel == "" {
		return -1, -1
	}
	cur := e.cursorOffset()
	if cur+len(sel) <= len(e.Text) && e.Text[cur:cur+len(sel)] == sel {
		return cur, cur + len(sel)
	}
	if cur-len(sel) >= 0 && e.Text[cur-len(sel):cur] == sel {
		return cur - len(sel), cur
	}
	if i := strings.Index(e.Text, sel); i >= 0 {
		return i, i + len(sel)
	}
	return -1, -1
}

// keyEvent maps the entry's caret and selection into the display-space
// offsets the editor engine works in.
func (e *scriptEntry) keyEvent(k editor.Key, shift, ctrlCmd bool) editor.KeyEvent {
	full := e.Text
	ev := editor.KeyEvent{
		Key: k, Shift: shift, CtrlCmd: ctrlCmd,
		Cursor:   markup.FullToDisplay(full, e.cursorOffset()),
		SelStart: -1, SelEnd: -1,
	}
	if s, en := e.selectionSpan(); s >= 0 {
		ev.SelStart = markup.FullToDisplay(full, s)
		ev.SelEnd = markup.FullToDisplay(full, en)
	}
	return ev
}

func (e *scriptEntry) handleEngineKey(k editor.Key, shift, ctrlCmd bool) bool {
	if e.ctrl == nil {
		return false
	}
	return e.ctrl.HandleKey(e.keyEvent(k, shift, ctrlCmd))
}

// refreshCursorState re-derives the element type under the caret and reports
// the position to collaborators.
func (e *scriptEntry) refreshCursorState() {
	if e.ctrl == nil {
		return
	}
	full := e.Text
	off := markup.FullToDisplay(full, e.cursorOffset())
	e.ctrl.RefreshType(off)
	selS, selE := -1, -1
	if s, en := e.selectionSpan(); s >= 0 {
		selS = markup.FullToDisplay(full, s)
		selE = markup.FullToDisplay(full, en)
	}
	e.ctrl.BroadcastCursor(off, selS, selE)
}

// reformatAs forces the current line into the given element type, used by the
// long-press format menu.
func (e *scriptEntry) reformatAs(t element.Type) {
	if e.ctrl == nil {
		return
	}
	k := editor.KeyTab
	shift := t == element.SceneHeading
	if t != element.Character && t != element.SceneHeading {
		// The engine's Tab contract covers cue and heading; other types are
		// formatted directly through the host replace path.
		e.formatLineDirect(t)
		return
	}
	e.handleEngineKey(k, shift, false)
}

func (e *scriptEntry) formatLineDirect(t element.Type) {
	full := e.Text
	off := e.cursorOffset()
	ls := strings.LastIndexByte(full[:off], '\n') + 1
	le := strings.IndexByte(full[off:], '\n')
	if le < 0 {
		le = len(full)
	} else {
		le += off
	}
	formatted := element.FormatElement(full[ls:le], t)
	if formatted == full[ls:le] {
		e.refreshCursorState()
		return
	}
	e.SetText(full[:ls] + formatted + full[le:])
	e.setCursorOffset(ls + len(formatted))
	e.refreshCursorState()
}

func (e *scriptEntry) TypedKey(ev *fyne.KeyEvent) {
	switch ev.Name {
	case fyne.KeyReturn, fyne.KeyEnter:
		if e.handleEngineKey(editor.KeyEnter, e.shiftDown, false) {
			return
		}
	case fyne.KeyTab:
		if e.handleEngineKey(editor.KeyTab, e.shiftDown, false) {
			return
		}
	}
	e.Entry.TypedKey(ev)
	e.refreshCursorState()
}

func (e *scriptEntry) TypedShortcut(s fyne.Shortcut) {
	if cs, ok := s.(*desktop.CustomShortcut); ok && cs.Modifier == fyne.KeyModifierControl {
		switch cs.KeyName {
		case fyne.KeyI:
			e.handleEngineKey(editor.KeyI, false, true)
			return
		case fyne.KeyReturn, fyne.KeyEnter:
			e.handleEngineKey(editor.KeyEnter, false, true)
			return
		}
	}
	e.Entry.TypedShortcut(s)
	e.refreshCursorState()
}

func (e *scriptEntry) KeyDown(ev *fyne.KeyEvent) {
	if ev.Name == desktop.KeyShiftLeft || ev.Name == desktop.KeyShiftRight {
		e.shiftDown = true
	}
	e.Entry.KeyDown(ev)
}

func (e *scriptEntry) KeyUp(ev *fyne.KeyEvent) {
	if ev.Name == desktop.KeyShiftLeft || ev.Name == desktop.KeyShiftRight {
		e.shiftDown = false
	}
	e.Entry.KeyUp(ev)
}

func (e *scriptEntry) Tapped(ev *fyne.PointEvent) {
	e.Entry.Tapped(ev)
	e.refreshCursorState()
}

func (e *scriptEntry) TouchDown(ev *mobile.TouchEvent) {
	e.lastTouch = ev.AbsolutePosition
	e.longPress.Press()
	e.Entry.TouchDown(ev)
}

func (e *scriptEntry) TouchUp(ev *mobile.TouchEvent) {
	e.longPress.Cancel()
	e.Entry.TouchUp(ev)
	e.refreshCursorState()
}

func (e *scriptEntry) TouchCancel(ev *mobile.TouchEvent) {
	e.longPress.Cancel()
	e.Entry.TouchCancel(ev)
}

// entryHost adapts the entry to the editor engine's host contract. The entry
// text is the full content; display offsets from the engine are translated
// back before they touch the caret.
type entryHost struct {
	entry  *scriptEntry
	onType func(element.Type)
}

func (h *entryHost) GetContent() string { return h.entry.Text }

func (h *entryHost) SetContent(s string) { h.entry.SetText(s) }

func (h *entryHost) SetCursorPosition(displayOff int) {
	full := h.entry.Text
	display := markup.StripForDisplay(full)
	h.entry.setCursorOffset(displayToFullClamped(display, full, displayOff))
}

func (h *entryHost) SetCurrentElementType(t element.Type) {
	if h.onType != nil {
		h.onType(t)
	}
}

func (h *entryHost) ReplaceSelection(newText string, fullStart, fullEnd int) {
	full := h.entry.Text
	if fullStart < 0 {
		fullStart = 0
	}
	if fullEnd > len(full) {
		fullEnd = len(full)
	}
	if fullStart > fullEnd {
		fullStart = fullEnd
	}
	h.entry.SetText(full[:fullStart] + newText + full[fullEnd:])
}

func displayToFullClamped(display, full string, off int) int {
	if off < 0 {
		off = 0
	}
	if off > len(display) {
		off = len(display)
	}
	return markup.DisplayToFull(display, full, off)
}

// surfaceMetricsFor mirrors the entry's layout for caret projection. The
// inner padding mirrors Fyne's entry composition: widget padding plus the
// text padding.
func surfaceMetricsFor(e *scriptEntry) caret.SurfaceMetrics {
	pad := theme.Padding()
	size := theme.TextSize()
	return caret.SurfaceMetrics{
		Font:        textlayout.FontSpec{Family: "mono", SizePt: size},
		LineHeight:  size + theme.LineSpacing(),
		PaddingLeft: pad * 2,
		PaddingTop:  pad * 2,
		WrapWidth:   e.Size().Width - pad*4,
	}
}

// rowColToOffset converts the entry's row/column caret (columns count runes)
// into a byte offset.
func rowColToOffset(s string, row, col int) int {
	off := 0
	for r := 0; r < row; r++ {
		i := strings.IndexByte(s[off:], '\n')
		if i < 0 {
			return len(s)
		}
		off += i + 1
	}
	line := s[off:]
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = line[:i]
	}
	for c := 0; c < col && len(line) > 0; c++ {
		_, sz := utf8.DecodeRuneInString(line)
		off += sz
		line = line[sz:]
	}
	return off
}

func offsetToRowCol(s string, off int) (int, int) {
	if off < 0 {
		off = 0
	}
	if off > len(s) {
		off = len(s)
	}
	row := strings.Count(s[:off], "\n")
	ls := strings.LastIndexByte(s[:off], '\n') + 1
	return row, utf8.RuneCountInString(s[ls:off])
}

// --- Recent projects (preferences-backed) ---

func loadRecentProjects(p fyne.Preferences) []string {
	raw := p.StringWithFallback("recent.projects", "")
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, "\n")
	out := make([]string, 0, len(parts))
	for _, s := range parts {
		if t := strings.TrimSpace(s); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func saveRecentProjects(p fyne.Preferences, items []string) {
	if len(items) > 8 {
		items = items[:8]
	}
	p.SetString("recent.projects", strings.Join(items, "\n"))
}

func addRecentProject(p fyne.Preferences, path string) {
	items := loadRecentProjects(p)
	out := []string{path}
	for _, it := range items {
		if it != path {
			out = append(out, it)
		}
	}
	saveRecentProjects(p, out)
}
