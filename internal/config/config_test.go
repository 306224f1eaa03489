package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingImplicitFileUsesDefaults(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "upgrade.toml"), false)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.ScriptsDir != DefaultScriptsDir || s.StopCommand != DefaultStopCommand {
		t.Fatalf("expected built-in defaults, got %+v", s)
	}
}

func TestLoad_MissingExplicitFileIsError(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "upgrade.toml"), true); err == nil {
		t.Fatalf("an explicitly requested defaults file must exist")
	}
}

func TestLoad_OverlaysDefinedKeysOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "upgrade.toml")
	content := "scripts_dir = \"/opt/steps\"\ndeployment = \"headpin\"\nstop_command = \"\"\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write defaults: %v", err)
	}

	s, err := Load(path, true)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.ScriptsDir != "/opt/steps" {
		t.Fatalf("scripts_dir not applied: %q", s.ScriptsDir)
	}
	if s.Deployment != "headpin" {
		t.Fatalf("deployment not applied: %q", s.Deployment)
	}
	// Empty values in the file keep the built-in default.
	if s.StopCommand != DefaultStopCommand {
		t.Fatalf("empty stop_command should keep default, got %q", s.StopCommand)
	}
	// Keys the file never mentions keep their defaults.
	if s.HistoryFile != DefaultHistoryFile {
		t.Fatalf("history_file should default, got %q", s.HistoryFile)
	}
}

func TestLoad_MalformedFileIsError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "upgrade.toml")
	if err := os.WriteFile(path, []byte("scripts_dir = [unclosed"), 0o644); err != nil {
		t.Fatalf("write defaults: %v", err)
	}
	if _, err := Load(path, false); err == nil {
		t.Fatalf("malformed toml must error even when implicit")
	}
}
