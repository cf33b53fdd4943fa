/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"goscreenwriter/internal/domain"
	"goscreenwriter/internal/element"
	"goscreenwriter/internal/screenplay"
	"goscreenwriter/internal/storage"
	"goscreenwriter/internal/textlayout"
)

// PDFOptions controls PDF export behavior. Units are points (pt).
//
// Layout follows standard US screenplay format: US Letter, Courier 12,
// six lines per inch, element indents from the builtin text styles. The
// built-in core Courier keeps text vector without font embedding.
type PDFOptions struct {
	Layout       domain.PageLayout
	TitlePage    bool
	SceneNumbers bool
	PageNumbers  bool
}

// courierCPI is the character pitch of Courier 12: ten characters per inch.
const courierCPI = 10.0

// pdfLine is one laid-out output line with its left indent in points.
type pdfLine struct {
	indent float64
	text   string
	scene  int // scene number to print in the margin, 0 for none
}

// ExportScriptPDF exports one script of the project to a paginated PDF at
// outPath. A relative outPath lands under <project>/exports.
func ExportScriptPDF(ph *storage.ProjectHandle, slug, outPath string, opt PDFOptions) error {
	if ph == nil {
		return fmt.Errorf("project handle is nil")
	}
	text, err := storage.ReadScript(ph, slug)
	if err != nil {
		return err
	}
	layout := opt.Layout
	if layout.Width == 0 {
		layout = domain.DefaultPageLayout()
	}

	script := screenplay.Parse(text)
	lines := layoutScript(script, opt.SceneNumbers)

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: layout.Width, Ht: layout.Height},
		OrientationStr: "",
	})
	title := slug
	if s := ph.Project.FindScript(slug); s != nil && s.Title != "" {
		title = s.Title
	}
	pdf.SetTitle(fmt.Sprintf("%s - %s", ph.Project.Name, title), true)
	pdf.SetAuthor(ph.Project.Metadata.Authors, true)
	pdf.SetFont("Courier", "", 12)
	pdf.SetAutoPageBreak(false, 0)

	if opt.TitlePage {
		addTitlePage(pdf, ph.Project, title, layout)
	}

	lh := layout.LineHeight
	if lh <= 0 {
		lh = 12
	}
	maxLines := int((layout.Height - layout.MarginTop - layout.MarginBottom) / lh)
	if maxLines < 1 {
		maxLines = 1
	}

	pageNo := 0
	lineOnPage := maxLines // force a page break before the first line
	for _, ln := range lines {
		if lineOnPage >= maxLines {
			pdf.AddPageFormat("", gofpdf.SizeType{Wd: layout.Width, Ht: layout.Height})
			pageNo++
			lineOnPage = 0
			if opt.PageNumbers && pageNo > 1 {
				pdf.Text(layout.Width-layout.MarginRight-24, layout.MarginTop-lh, fmt.Sprintf("%d.", pageNo))
			}
			// never start a page with blank filler
			if ln.text == "" {
				continue
			}
		}
		y := layout.MarginTop + float64(lineOnPage+1)*lh
		if ln.text != "" {
			pdf.Text(ln.indent, y, ln.text)
			if ln.scene > 0 {
				pdf.Text(layout.MarginLeft-36, y, fmt.Sprintf("%d", ln.scene))
			}
		}
		lineOnPage++
	}

	if !filepath.IsAbs(outPath) {
		outPath = filepath.Join(ph.Root, "exports", outPath)
	}
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("ensure out dir: %w", err)
	}
	if err := pdf.OutputFileAndClose(outPath); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

// layoutScript flattens a parsed script into wrapped, indented output lines
// with standard blank-line separation between element blocks.
func layoutScript(script screenplay.Script, sceneNumbers bool) []pdfLine {
	var out []pdfLine
	prev := element.Action
	first := true

	emit := func(t element.Type, text string, scene int) {
		style, ok := textlayout.GetStyle(t.String())
		if !ok {
			style, _ = textlayout.GetStyle("action")
		}
		// Blocks are separated by one blank line, except within a dialogue
		// block (cue, parenthetical, dialogue run together).
		joined := (t == element.Dialogue || t == element.Parenthetical) &&
			(prev == element.Character || prev == element.Parenthetical || prev == element.Dialogue)
		if !first && !joined {
			out = append(out, pdfLine{})
		}
		indent := style.IndentIn * 72
		maxChars := int(style.WidthIn * courierCPI)
		for i, wrapped := range wrapMono(text, maxChars) {
			l := pdfLine{indent: indent, text: wrapped}
			if i == 0 && scene > 0 {
				l.scene = scene
			}
			out = append(out, l)
		}
		prev = t
		first = false
	}

	for _, sc := range script.Scenes {
		if sc.Heading != "" {
			num := 0
			if sceneNumbers {
				num = sc.Number
			}
			emit(element.SceneHeading, sc.Heading, num)
			prev = element.SceneHeading
		}
		for _, ln := range sc.Lines {
			emit(ln.Type, ln.Text, 0)
		}
	}
	return out
}

// wrapMono greedily wraps text at word boundaries for a monospaced column of
// maxChars characters. Words longer than the column are kept whole.
func wrapMono(text string, maxChars int) []string {
	if maxChars <= 0 || len(text) <= maxChars {
		return []string{text}
	}
	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{""}
	}
	var lines []string
	cur := words[0]
	for _, w := range words[1:] {
		if len(cur)+1+len(w) <= maxChars {
			cur += " " + w
			continue
		}
		lines = append(lines, cur)
		cur = w
	}
	lines = append(lines, cur)
	return lines
}

func addTitlePage(pdf *gofpdf.Fpdf, proj domain.Project, title string, layout domain.PageLayout) {
	pdf.AddPageFormat("", gofpdf.SizeType{Wd: layout.Width, Ht: layout.Height})
	center := func(y float64, s string) {
		w := float64(len(s)) * 72 / courierCPI
		pdf.Text((layout.Width-w)/2, y, s)
	}
	center(layout.Height*0.4, strings.ToUpper(title))
	if a := strings.TrimSpace(proj.Metadata.Authors); a != "" {
		center(layout.Height*0.4+3*layout.LineHeight, "written by")
		center(layout.Height*0.4+5*layout.LineHeight, a)
	}
	if c := strings.TrimSpace(proj.Metadata.Contact); c != "" {
		pdf.Text(layout.MarginLeft, layout.Height-layout.MarginBottom, c)
	}
}
