package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/verte-zerg/wps/internal/corpus"
)

func writeConfig(t *testing.T, body string) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("XDG_STATE_HOME", filepath.Join(dir, "state"))
	if body == "" {
		return
	}
	path := filepath.Join(dir, "wps", "config.toml")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func TestResolveConfigDefaults(t *testing.T) {
	writeConfig(t, "")
	cmd := newRootCmd()
	if err := cmd.ParseFlags(nil); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	cfg, err := resolveConfig(cmd)
	if err != nil {
		t.Fatalf("resolve config: %v", err)
	}
	if cfg.TextPath != corpus.DefaultPath || cfg.Countdown != 3 || cfg.Placeholder != '•' || !cfg.Summary {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if !strings.HasSuffix(cfg.LogPath, filepath.Join("state", "wps", "wps.log")) {
		t.Fatalf("unexpected log path %q", cfg.LogPath)
	}
}

func TestResolveConfigFlagOverridesFile(t *testing.T) {
	writeConfig(t, "[practice]\ncountdown = 5\nplaceholder = \"_\"\nsummary = false\n")
	cmd := newRootCmd()
	if err := cmd.ParseFlags([]string{"--countdown", "2"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	cfg, err := resolveConfig(cmd)
	if err != nil {
		t.Fatalf("resolve config: %v", err)
	}
	if cfg.Countdown != 2 {
		t.Fatalf("expected flag countdown 2, got %d", cfg.Countdown)
	}
	if cfg.Placeholder != '_' || cfg.Summary {
		t.Fatalf("expected file values for unset flags: %+v", cfg)
	}
}

func TestResolveConfigRejectsInvalid(t *testing.T) {
	cases := [][]string{
		{"--countdown", "0"},
		{"--placeholder", "ab"},
		{"--placeholder", " "},
		{"--log-level", "loud"},
	}
	for _, args := range cases {
		writeConfig(t, "")
		cmd := newRootCmd()
		if err := cmd.ParseFlags(args); err != nil {
			t.Fatalf("parse flags %v: %v", args, err)
		}
		if _, err := resolveConfig(cmd); err == nil {
			t.Fatalf("expected error for %v", args)
		}
	}
}

func TestLinesCmd(t *testing.T) {
	writeConfig(t, "")
	text := filepath.Join(t.TempDir(), "text.txt")
	if err := os.WriteFile(text, []byte("one line\n\n  two  \n"), 0o644); err != nil {
		t.Fatalf("write text: %v", err)
	}
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"lines", "--text", text})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if out.String() != "one line\ntwo\n" {
		t.Fatalf("unexpected output %q", out.String())
	}
}

func TestLinesCmdMissingFile(t *testing.T) {
	writeConfig(t, "")
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"lines", "--text", filepath.Join(t.TempDir(), "missing.txt")})
	if err := cmd.Execute(); err == nil {
		t.Fatalf("expected error for missing text file")
	}
}
