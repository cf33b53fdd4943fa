/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * Licensed under the Apache License, Version 2.0.
 */

package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"goscreenwriter/internal/markup"
	"goscreenwriter/internal/storage"
)

// TextOptions controls plain-text export.
type TextOptions struct {
	// KeepMarkup preserves inline emphasis markers; by default the export
	// carries the display content readers see in the editor.
	KeepMarkup bool
}

// ExportScriptText writes a script's content as a plain UTF-8 text file at
// outPath. A relative outPath lands under <project>/exports.
func ExportScriptText(ph *storage.ProjectHandle, slug, outPath string, opt TextOptions) error {
	if ph == nil {
		return fmt.Errorf("project handle is nil")
	}
	text, err := storage.ReadScript(ph, slug)
	if err != nil {
		return err
	}
	if !opt.KeepMarkup {
		text = markup.StripForDisplay(text)
	}
	if !strings.HasSuffix(text, "\n") && text != "" {
		text += "\n"
	}
	if !filepath.IsAbs(outPath) {
		outPath = filepath.Join(ph.Root, "exports", outPath)
	}
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("ensure out dir: %w", err)
	}
	if err := os.WriteFile(outPath, []byte(text), 0o644); err != nil {
		return fmt.Errorf("write text: %w", err)
	}
	return nil
}
