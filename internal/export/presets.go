/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * Licensed under the Apache License, Version 2.0
 */

package export

import (
	"fmt"
	"path/filepath"
	"strings"

	"goscreenwriter/internal/storage"
)

// PresetName represents a named export preset.
type PresetName string

const (
	// PresetDraft is for circulating work in progress: no title page, no
	// scene numbers.
	PresetDraft PresetName = "draft"
	// PresetProduction is the shooting-script layout: title page, numbered
	// scenes and pages.
	PresetProduction PresetName = "production"
)

// BatchOptions controls batch export across formats and scripts.
//
// Path semantics:
//   - If OutDir is empty or relative, it is created under
//     <project>/exports/<preset>/.
//   - Outputs are named <slug>.pdf / <slug>.txt in format subfolders.
type BatchOptions struct {
	Preset  PresetName
	Formats []string // allowed: pdf, txt; empty means preset defaults
	Slugs   []string // empty means every script in the manifest
	OutDir  string
}

// BatchExport runs exports according to the given preset.
func BatchExport(ph *storage.ProjectHandle, opt BatchOptions) error {
	if ph == nil {
		return fmt.Errorf("project handle is nil")
	}
	if len(ph.Project.Scripts) == 0 {
		return fmt.Errorf("project has no scripts")
	}

	formats := opt.Formats
	if len(formats) == 0 {
		formats = presetDefaultFormats(opt.Preset)
	}
	for i := range formats {
		formats[i] = strings.ToLower(strings.TrimSpace(formats[i]))
	}

	baseOut := opt.OutDir
	if baseOut == "" {
		baseOut = string(opt.Preset)
	}
	if !filepath.IsAbs(baseOut) {
		baseOut = filepath.Join(ph.Root, "exports", baseOut)
	}

	slugs := opt.Slugs
	if len(slugs) == 0 {
		for _, s := range ph.Project.Scripts {
			slugs = append(slugs, s.Slug)
		}
	}

	production := opt.Preset == PresetProduction
	for _, slug := range slugs {
		if ph.Project.FindScript(slug) == nil {
			return fmt.Errorf("unknown script: %s", slug)
		}
		for _, f := range formats {
			switch f {
			case "pdf":
				out := filepath.Join(baseOut, "pdf", slug+".pdf")
				po := PDFOptions{
					TitlePage:    production,
					SceneNumbers: production,
					PageNumbers:  true,
				}
				if err := ExportScriptPDF(ph, slug, out, po); err != nil {
					return fmt.Errorf("pdf %s: %w", slug, err)
				}
			case "txt":
				out := filepath.Join(baseOut, "txt", slug+".txt")
				if err := ExportScriptText(ph, slug, out, TextOptions{}); err != nil {
					return fmt.Errorf("txt %s: %w", slug, err)
				}
			default:
				return fmt.Errorf("unknown format: %s", f)
			}
		}
	}
	return nil
}

func presetDefaultFormats(p PresetName) []string {
	switch p {
	case PresetDraft:
		return []string{"txt", "pdf"}
	case PresetProduction:
		return []string{"pdf"}
	default:
		return []string{"pdf"}
	}
}
