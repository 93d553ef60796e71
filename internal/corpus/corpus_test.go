package corpus

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeCorpus(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "text.txt")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write corpus: %v", err)
	}
	return path
}

func TestLoadLinesTrimsAndSkipsBlank(t *testing.T) {
	path := writeCorpus(t, "  the quick fox \n\n\tjumps over\n   \nlazy dogs\n")
	lines, err := LoadLines(path)
	if err != nil {
		t.Fatalf("LoadLines failed: %v", err)
	}
	expected := []string{"the quick fox", "jumps over", "lazy dogs"}
	if len(lines) != len(expected) {
		t.Fatalf("expected %d lines, got %d", len(expected), len(lines))
	}
	for i, line := range expected {
		if lines[i] != line {
			t.Fatalf("expected %q at %d, got %q", line, i, lines[i])
		}
	}
}

func TestLoadLinesEmptyFile(t *testing.T) {
	path := writeCorpus(t, "\n  \n")
	if _, err := LoadLines(path); !errors.Is(err, ErrEmpty) {
		t.Fatalf("expected ErrEmpty, got %v", err)
	}
}

func TestLoadMissingFallsBackToSentinel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "text.txt")
	c := Load(path)
	if !c.Fallback() {
		t.Fatalf("expected fallback for missing corpus")
	}
	if !errors.Is(c.Err(), os.ErrNotExist) {
		t.Fatalf("expected not-exist cause, got %v", c.Err())
	}
	lines := c.Lines()
	if len(lines) != 1 || lines[0] == "" {
		t.Fatalf("expected one non-empty sentinel line, got %v", lines)
	}
	if !strings.Contains(lines[0], "'text.txt'") {
		t.Fatalf("expected sentinel to name the file: %q", lines[0])
	}
}

func TestLoadReadsFile(t *testing.T) {
	path := writeCorpus(t, "one line\nanother line\n")
	c := Load(path)
	if c.Fallback() || c.Err() != nil {
		t.Fatalf("unexpected fallback: %v", c.Err())
	}
	if c.Len() != 2 || c.Lines()[1] != "another line" {
		t.Fatalf("unexpected corpus lines: %v", c.Lines())
	}
}

func TestLinesReturnsCopy(t *testing.T) {
	c := Load(writeCorpus(t, "keep me\n"))
	lines := c.Lines()
	lines[0] = "changed"
	if c.Lines()[0] != "keep me" {
		t.Fatalf("corpus mutated through Lines")
	}
}
