package markdown

import (
	"strings"
	"testing"
)

func TestRenderBasicMarkdown(t *testing.T) {
	out, err := Render("# Title\n\nSome **bold** text.")
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if !strings.Contains(out, "<h1") || !strings.Contains(out, "Title") {
		t.Errorf("expected heading in output, got %q", out)
	}
	if !strings.Contains(out, "<strong>bold</strong>") {
		t.Errorf("expected bold text in output, got %q", out)
	}
}

func TestRenderStripsScripts(t *testing.T) {
	out, err := Render("hello <script>alert(1)</script> world")
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if strings.Contains(out, "<script") {
		t.Errorf("script tag survived sanitization: %q", out)
	}
}

func TestRenderTable(t *testing.T) {
	out, err := Render("| a | b |\n|---|---|\n| 1 | 2 |")
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if !strings.Contains(out, "<table") {
		t.Errorf("expected table in output, got %q", out)
	}
}
