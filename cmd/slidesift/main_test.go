package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gnemet/SlideSift/internal/pptx/pptxtest"
)

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func writeDeck(t *testing.T, dir string) string {
	t.Helper()
	return pptxtest.WriteFile(t, dir, "deck.pptx",
		pptxtest.TextBox(2, "TextBox 1", []string{"Hello", "world"})+
			pptxtest.Table(3, "Table 2", [][]string{{"A", ""}, {"", "B"}}))
}

func TestRun_WritesReports(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	src := writeDeck(t, dir)
	out := filepath.Join(dir, "reports")

	code, stdout, stderr := runCLI(t, "-o", out, src)
	if code != 0 {
		t.Fatalf("exit %d: %s", code, stderr)
	}

	text, err := os.ReadFile(filepath.Join(out, "deck_TextDetails.tsv"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(text), "0\t2\tFalse\t\t\t0\t1\tworld\n") {
		t.Errorf("unexpected text details:\n%s", text)
	}
	shapes, err := os.ReadFile(filepath.Join(out, "deck_ShapeSummary.tsv"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(shapes), "\tTEXT_BOX\tBackground Fill\t") || !strings.Contains(string(shapes), "\tA | B\n") {
		t.Errorf("unexpected shape summary:\n%s", shapes)
	}
	if strings.Count(stdout, "\n") != 2 {
		t.Errorf("expected the two written paths on stdout, got %q", stdout)
	}
}

func TestRun_DefaultsToInputDirectory(t *testing.T) {
	dir := t.TempDir()
	chdir(t, t.TempDir())
	src := writeDeck(t, dir)

	if code, _, stderr := runCLI(t, "--bom", src); code != 0 {
		t.Fatalf("exit %d: %s", code, stderr)
	}
	data, err := os.ReadFile(filepath.Join(dir, "deck_ShapeSummary.tsv"))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("\xef\xbb\xbfslide_index\t")) {
		t.Errorf("expected a BOM-prefixed report, got %q", data[:20])
	}
}

func TestRun_Preview(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	src := writeDeck(t, dir)

	code, stdout, stderr := runCLI(t, "--preview", "shapes", src)
	if code != 0 {
		t.Fatalf("exit %d: %s", code, stderr)
	}
	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header, rule and two rows, got %d lines:\n%s", len(lines), stdout)
	}
	if !strings.HasPrefix(lines[0], "slide_index  shape_id") || !strings.HasPrefix(lines[1], "---") {
		t.Errorf("unexpected preview header:\n%s", stdout)
	}
	if _, err := os.Stat(filepath.Join(dir, "deck_ShapeSummary.tsv")); err == nil {
		t.Error("preview must not write report files")
	}
}

func TestRun_Errors(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	broken := filepath.Join(dir, "broken.pptx")
	if err := os.WriteFile(broken, []byte("nope"), 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		args   []string
		code   int
		stderr string
	}{
		{"no arguments", nil, 2, "Usage"},
		{"unknown flag", []string{"--frobnicate", "x.pptx"}, 2, "unknown flag"},
		{"bad preview", []string{"--preview", "slides", broken}, 2, "unknown report"},
		{"missing file", []string{filepath.Join(dir, "missing.pptx")}, 1, "unreadable source"},
		{"malformed file", []string{broken}, 1, "malformed document"},
		{"help", []string{"--help"}, 0, "Usage"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, stderr := runCLI(t, tt.args...)
			if code != tt.code {
				t.Errorf("exit %d, want %d (stderr %q)", code, tt.code, stderr)
			}
			if !strings.Contains(stderr, tt.stderr) {
				t.Errorf("stderr %q does not mention %q", stderr, tt.stderr)
			}
		})
	}
}
