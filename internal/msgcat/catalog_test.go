package msgcat

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestEmbeddedCatalogRenders(t *testing.T) {
	c, err := New("")
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	out, err := c.Render("player.caught", map[string]any{"Runner": "bob", "Hunter": "carol"})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(out, "bob") || !strings.Contains(out, "carol") {
		t.Fatalf("rendered: %q", out)
	}
}

func TestRenderMissingKeyFails(t *testing.T) {
	c, err := New("")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := c.Render("no.such.key", nil); err == nil {
		t.Fatalf("expected error for unknown key")
	}
	if got := c.MustRender("no.such.key", nil); got != "no.such.key" {
		t.Fatalf("MustRender fallback: %q", got)
	}
	// Missing template data is an error, not a silent blank.
	if _, err := c.Render("player.caught", map[string]any{"Runner": "bob"}); err == nil {
		t.Fatalf("expected error for missing data key")
	}
}

func TestOverrideDir(t *testing.T) {
	dir := t.TempDir()
	override := "phase:\n  finished: \"Time is up!\"\n"
	if err := os.WriteFile(filepath.Join(dir, "en.yaml"), []byte(override), 0o644); err != nil {
		t.Fatalf("write override: %v", err)
	}

	c, err := New(dir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	out, err := c.Render("phase.finished", nil)
	if err != nil || out != "Time is up!" {
		t.Fatalf("override render: %q, %v", out, err)
	}
	// Untouched keys keep their embedded defaults.
	if _, err := c.Render("phase.main_started", nil); err != nil {
		t.Fatalf("default render: %v", err)
	}
}
