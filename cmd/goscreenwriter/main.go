/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"goscreenwriter/internal/backend"
	"goscreenwriter/internal/config"
	"goscreenwriter/internal/crash"
	"goscreenwriter/internal/domain"
	"goscreenwriter/internal/element"
	"goscreenwriter/internal/export"
	applog "goscreenwriter/internal/log"
	"goscreenwriter/internal/storage"
	"goscreenwriter/internal/ui"
	"goscreenwriter/internal/version"
)

func usage() {
	fmt.Println("Go Screen Writer")
	fmt.Printf("Version: %s\n", version.String())
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  goscreenwriter version|-v|--version          Show version")
	fmt.Println("  goscreenwriter init <dir> <name>             Create a new project at <dir> with name <name>")
	fmt.Println("  goscreenwriter open <dir>                    Open project at <dir> and print summary")
	fmt.Println("  goscreenwriter save <dir>                    Save project at <dir> (creates backup)")
	fmt.Println("  goscreenwriter fmt <file>                    Reformat a script file to screenplay conventions (stdout)")
	fmt.Println("  goscreenwriter fmt -w <file>                 Reformat in place")
	fmt.Println("  goscreenwriter export <dir> <slug> pdf|txt [out]   Export one script")
	fmt.Println("  goscreenwriter export <dir> draft|production       Batch export with a preset")
	fmt.Println("  goscreenwriter search <dir> <query>          Full-text search across the project")
	fmt.Println("  goscreenwriter projects                      List projects on the configured backend")
	fmt.Println("  goscreenwriter serve                         Run the collaboration backend (Postgres)")
	fmt.Println("  goscreenwriter ui [<dir>]                    Launch desktop UI (build with -tags fyne for full UI)")
}

func main() {
	// initialize structured logging using environment defaults
	applog.Init(applog.FromEnv())
	l := applog.WithComponent("cli")
	var ph *storage.ProjectHandle
	defer func() { crash.Recover(ph) }()

	args := os.Args
	l.Debug("start", slog.Int("args", len(args)))
	if len(args) > 1 {
		switch args[1] {
		case "version", "--version", "-v":
			fmt.Println("Go Screen Writer")
			fmt.Println(version.String())
			return
		case "init":
			if len(args) < 4 {
				fmt.Println("init requires <dir> and <name>")
				usage()
				os.Exit(2)
			}
			dir := args[2]
			name := args[3]
			abs, _ := filepath.Abs(dir)
			l.Info("init project", slog.String("root", abs), slog.String("name", name))
			p := domain.Project{Name: name, Scripts: []domain.Script{
				{Slug: "draft", Title: "Draft", File: "script/draft" + storage.DefaultScriptExt},
			}}
			h, err := storage.InitProject(abs, p)
			if err != nil {
				l.Error("init failed", slog.Any("err", err))
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			ph = h
			if err := storage.WriteScript(h, "draft", ""); err != nil {
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			fmt.Println("Created project at", abs)
			return
		case "open":
			if len(args) < 3 {
				fmt.Println("open requires <dir>")
				usage()
				os.Exit(2)
			}
			abs, _ := filepath.Abs(args[2])
			l.Info("open project", slog.String("root", abs))
			h, err := storage.Open(abs)
			if err != nil {
				l.Error("open failed", slog.Any("err", err))
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			ph = h
			fmt.Printf("Opened project: %s\n", h.Project.Name)
			fmt.Printf("Scripts: %d\n", len(h.Project.Scripts))
			for _, s := range h.Project.Scripts {
				fmt.Printf("  %-20s %s\n", s.Slug, s.Title)
			}
			fmt.Println("Root:", h.Root)
			return
		case "save":
			if len(args) < 3 {
				fmt.Println("save requires <dir>")
				usage()
				os.Exit(2)
			}
			abs, _ := filepath.Abs(args[2])
			l.Info("save project", slog.String("root", abs))
			h, err := storage.Open(abs)
			if err != nil {
				l.Error("open before save failed", slog.Any("err", err))
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			ph = h
			h.Project.Metadata.Notes = fmt.Sprintf("Saved at %s", time.Now().Format(time.RFC3339))
			if err := storage.Save(h); err != nil {
				l.Error("save failed", slog.Any("err", err))
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			fmt.Println("Saved project and created a backup of previous manifest (if any).")
			return
		case "fmt":
			rest := args[2:]
			write := false
			if len(rest) > 0 && rest[0] == "-w" {
				write = true
				rest = rest[1:]
			}
			if len(rest) < 1 {
				fmt.Println("fmt requires <file>")
				usage()
				os.Exit(2)
			}
			file := rest[0]
			data, err := os.ReadFile(file)
			if err != nil {
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			out := formatScript(string(data))
			if write {
				if err := os.WriteFile(file, []byte(out), 0o644); err != nil {
					fmt.Println("Error:", err)
					os.Exit(1)
				}
				return
			}
			fmt.Print(out)
			return
		case "export":
			if len(args) < 4 {
				fmt.Println("export requires <dir> and either <slug> pdf|txt or a preset name")
				usage()
				os.Exit(2)
			}
			abs, _ := filepath.Abs(args[2])
			h, err := storage.Open(abs)
			if err != nil {
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			ph = h
			switch args[3] {
			case "draft", "production":
				if err := export.BatchExport(h, export.BatchOptions{Preset: export.PresetName(args[3])}); err != nil {
					fmt.Println("Error:", err)
					os.Exit(1)
				}
				fmt.Println("Exported to", filepath.Join(abs, "exports", args[3]))
				return
			}
			if len(args) < 5 {
				fmt.Println("export requires <slug> and a format (pdf or txt)")
				os.Exit(2)
			}
			slug, format := args[3], args[4]
			out := slug + "." + format
			if len(args) > 5 {
				out = args[5]
			}
			switch format {
			case "pdf":
				err = export.ExportScriptPDF(h, slug, out, export.PDFOptions{TitlePage: true, SceneNumbers: true, PageNumbers: true})
			case "txt":
				err = export.ExportScriptText(h, slug, out, export.TextOptions{})
			default:
				fmt.Println("unknown format:", format)
				os.Exit(2)
			}
			if err != nil {
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			fmt.Println("Exported", slug, "to", out)
			return
		case "search":
			if len(args) < 4 {
				fmt.Println("search requires <dir> and <query>")
				usage()
				os.Exit(2)
			}
			abs, _ := filepath.Abs(args[2])
			h, err := storage.Open(abs)
			if err != nil {
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			ph = h
			ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
			defer cancel()
			if err := storage.BuildIndexIfEmpty(ctx, h); err != nil {
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			res, err := storage.Search(ctx, h.Root, storage.SearchQuery{
				Text:  strings.Join(args[3:], " "),
				Limit: 50,
			})
			if err != nil {
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			for _, r := range res {
				loc := r.Slug
				if r.Scene > 0 {
					loc = fmt.Sprintf("%s sc.%d", r.Slug, r.Scene)
				}
				fmt.Printf("%-20s line %-4d [%s] %s\n", loc, r.LineNo, r.Type, strings.TrimSpace(r.Snippet))
			}
			fmt.Printf("%d results\n", len(res))
			return
		case "projects":
			cfg, token, err := config.Load()
			if err != nil {
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			cli := backend.NewClient(cfg.Backend.BaseURL, token)
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			list, err := cli.ListProjects(ctx)
			if err != nil {
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			for _, p := range list {
				fmt.Printf("%-6d %-28s v%-4d %s\n", p.ID, p.Name, p.Version, p.UpdatedAt.Format(time.RFC3339))
			}
			fmt.Printf("%d projects on %s\n", len(list), cfg.Backend.BaseURL)
			return
		case "serve":
			if err := backend.Start(); err != nil {
				l.Error("server stopped", slog.Any("err", err))
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			return
		case "ui":
			var dir string
			if len(args) >= 3 {
				dir = args[2]
			}
			if err := ui.Run(dir); err != nil {
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			return
		}
	}

	usage()
}

// formatScript runs every line through the element classifier and rewrites it
// to the surface convention of its detected type. Line endings and blank
// lines are preserved.
func formatScript(text string) string {
	lines := strings.Split(text, "\n")
	prev := element.Action
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		t := element.DetectType(line, prev)
		lines[i] = element.FormatElement(line, t)
		prev = t
	}
	return strings.Join(lines, "\n")
}
