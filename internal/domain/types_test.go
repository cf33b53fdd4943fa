package domain

import (
	"encoding/json"
	"testing"
)

func TestProjectJSONRoundTrip(t *testing.T) {
	p := Project{
		Name: "RoundTrip",
		Metadata: Metadata{
			Title:   "Round Trip",
			Authors: "A. Writer",
		},
		Scripts: []Script{
			{
				Slug:     "pilot",
				Title:    "Pilot",
				File:     "pilot.gsw",
				Revision: Revision{Draft: "first", Color: "white", Date: "2025-06-01"},
			},
		},
	}

	b, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var got Project
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Name != p.Name {
		t.Fatalf("name mismatch: got %q want %q", got.Name, p.Name)
	}
	if len(got.Scripts) != 1 || got.Scripts[0].Slug != "pilot" {
		t.Fatalf("unexpected scripts structure: %+v", got)
	}
}

func TestFindScript(t *testing.T) {
	p := Project{Scripts: []Script{{Slug: "a"}, {Slug: "b"}}}
	if s := p.FindScript("b"); s == nil || s.Slug != "b" {
		t.Fatalf("FindScript(b) = %+v", s)
	}
	if s := p.FindScript("zz"); s != nil {
		t.Fatalf("expected nil for unknown slug, got %+v", s)
	}
}

func TestDefaultPageLayout(t *testing.T) {
	l := DefaultPageLayout()
	if l.Width != 612 || l.Height != 792 {
		t.Fatalf("page size = %gx%g", l.Width, l.Height)
	}
	if l.MarginLeft != 108 {
		t.Fatalf("left margin = %g", l.MarginLeft)
	}
}
