//go:build !windows

package executor

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeScript(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "step.sh")
	if err := os.WriteFile(path, []byte(content), 0o755); err != nil {
		t.Fatalf("write script: %v", err)
	}
	return path
}

func TestRun_StreamsCombinedOutput(t *testing.T) {
	path := writeScript(t, "#!/bin/sh\necho out-line\necho err-line >&2\n")
	var lines []string
	code, err := New(false).Run(context.Background(), path, "", func(l string) { lines = append(lines, l) })
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	joined := strings.Join(lines, "\n")
	if !strings.Contains(joined, "out-line") || !strings.Contains(joined, "err-line") {
		t.Fatalf("expected both streams in the sink, got %q", joined)
	}
}

func TestRun_NonZeroExit(t *testing.T) {
	path := writeScript(t, "#!/bin/sh\necho failing\nexit 7\n")
	var lines []string
	code, err := New(false).Run(context.Background(), path, "", func(l string) { lines = append(lines, l) })
	if err == nil {
		t.Fatalf("expected error for non-zero exit")
	}
	if code != 7 {
		t.Fatalf("expected exit code 7, got %d", code)
	}
	if len(lines) == 0 || lines[0] != "failing" {
		t.Fatalf("output before the failure should still reach the sink, got %v", lines)
	}
}

func TestRun_WorkingDirectory(t *testing.T) {
	dir := t.TempDir()
	path := writeScript(t, "#!/bin/sh\npwd\n")
	var lines []string
	if _, err := New(false).Run(context.Background(), path, dir, func(l string) { lines = append(lines, l) }); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(lines) != 1 {
		t.Fatalf("expected one line, got %v", lines)
	}
	got, err := filepath.EvalSymlinks(lines[0])
	if err != nil {
		t.Fatalf("eval pwd output: %v", err)
	}
	want, err := filepath.EvalSymlinks(dir)
	if err != nil {
		t.Fatalf("eval dir: %v", err)
	}
	if got != want {
		t.Fatalf("script should run from %s, ran from %s", want, got)
	}
}

func TestRun_DryRunExecutesNothing(t *testing.T) {
	marker := filepath.Join(t.TempDir(), "ran")
	path := writeScript(t, "#!/bin/sh\ntouch "+marker+"\n")
	var lines []string
	code, err := New(true).Run(context.Background(), path, "", func(l string) { lines = append(lines, l) })
	if err != nil || code != 0 {
		t.Fatalf("dry run should trivially succeed, got code=%d err=%v", code, err)
	}
	if _, err := os.Stat(marker); !os.IsNotExist(err) {
		t.Fatalf("dry run must not execute the script")
	}
	if len(lines) != 1 || !strings.HasPrefix(lines[0], "dry-run:") {
		t.Fatalf("dry run should announce itself in the sink, got %v", lines)
	}
}

func TestArgvRunner(t *testing.T) {
	var lines []string
	code, err := ArgvRunner{}.Run(context.Background(), []string{"sh", "-c", "echo hello world"}, func(l string) { lines = append(lines, l) })
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	if len(lines) != 1 || lines[0] != "hello world" {
		t.Fatalf("unexpected output: %v", lines)
	}
}

func TestArgvRunner_EmptyArgv(t *testing.T) {
	if _, err := (ArgvRunner{}).Run(context.Background(), nil, func(string) {}); err == nil {
		t.Fatalf("expected error for empty argv")
	}
}
