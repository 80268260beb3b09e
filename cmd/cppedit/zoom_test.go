package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestZoomCommand(t *testing.T) {
	isolate(t)
	steps := []struct {
		arg  string
		want string
	}{
		{"show", "font size: 14px"},
		{"in", "font size: 15px"},
		{"in", "font size: 16px"},
		{"out", "font size: 15px"},
		{"show", "font size: 15px"},
		{"reset", "font size: 14px"},
	}
	for _, step := range steps {
		out, err := execute(t, "", "zoom", step.arg)
		if err != nil {
			t.Fatalf("zoom %s: %v", step.arg, err)
		}
		if strings.TrimSpace(out) != step.want {
			t.Fatalf("zoom %s = %q, want %q", step.arg, out, step.want)
		}
	}
	if _, err := execute(t, "", "zoom", "sideways"); err == nil {
		t.Fatalf("expected error for unknown zoom action")
	}
}

func TestZoomUsesManifestFontSize(t *testing.T) {
	isolate(t)
	manifest := "[editor]\nfont_size = 20\n\n[store]\ndir = \".store\"\n"
	if err := os.WriteFile("cppedit.toml", []byte(manifest), 0o644); err != nil {
		t.Fatal(err)
	}
	out, err := execute(t, "", "zoom", "show")
	if err != nil || strings.TrimSpace(out) != "font size: 20px" {
		t.Fatalf("show: %q %v", out, err)
	}
	if _, err := execute(t, "", "zoom", "in"); err != nil {
		t.Fatalf("zoom in: %v", err)
	}
	if _, err := os.Stat(filepath.Join(".store", "settings.mp")); err != nil {
		t.Fatalf("settings should live in the manifest's store dir: %v", err)
	}
	out, _ = execute(t, "", "zoom", "reset")
	if strings.TrimSpace(out) != "font size: 20px" {
		t.Fatalf("reset: %q", out)
	}
}
