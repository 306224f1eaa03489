// Package config carries every tunable the tool reads: built-in defaults,
// an optional operator defaults file, and the CLI flags layered on top.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// Built-in defaults. The defaults file and CLI flags both override these.
const (
	DefaultScriptsDir       = "/usr/share/katello/install/upgrade-scripts"
	DefaultHistoryFile      = "/var/lib/katello/upgrade-history"
	DefaultLogFile          = "/var/log/katello/upgrade.log"
	DefaultJournalDB        = "/var/lib/katello/upgrade-journal.db"
	DefaultDeploymentConfig = "/etc/katello/katello-configure.conf"
	DefaultDefaultsFile     = "/etc/katello/upgrade.toml"
	DefaultStopCommand      = "katello-service stop"
	DefaultStatusCommand    = "katello-service status"
)

// Settings is the resolved configuration passed into constructors. No
// package-level mutable state exists; everything flows through this struct.
type Settings struct {
	ScriptsDir       string
	HistoryFile      string
	LogFile          string
	JournalDB        string
	DeploymentConfig string
	StopCommand      string
	StatusCommand    string
	// Deployment, when non-empty, overrides detection.
	Deployment string

	AutoStop         bool
	Unattended       bool
	DryRun           bool
	Quiet            bool
	Trace            bool
	SkipServiceCheck bool
	SkipRootCheck    bool
}

// fileDefaults mirrors the toml defaults file.
type fileDefaults struct {
	ScriptsDir       string `toml:"scripts_dir"`
	HistoryFile      string `toml:"history_file"`
	LogFile          string `toml:"log_file"`
	JournalDB        string `toml:"journal_db"`
	DeploymentConfig string `toml:"deployment_config"`
	StopCommand      string `toml:"stop_command"`
	StatusCommand    string `toml:"status_command"`
	Deployment       string `toml:"deployment"`
}

// Default returns the built-in settings.
func Default() Settings {
	return Settings{
		ScriptsDir:       DefaultScriptsDir,
		HistoryFile:      DefaultHistoryFile,
		LogFile:          DefaultLogFile,
		JournalDB:        DefaultJournalDB,
		DeploymentConfig: DefaultDeploymentConfig,
		StopCommand:      DefaultStopCommand,
		StatusCommand:    DefaultStatusCommand,
	}
}

// Load returns Default overlaid with the defaults file at path. A missing
// file is fine when explicit is false (the operator never asked for it); when
// explicit is true a missing or malformed file is an error.
func Load(path string, explicit bool) (Settings, error) {
	s := Default()
	if path == "" {
		return s, nil
	}

	var raw fileDefaults
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return s, nil
		}
		return s, fmt.Errorf("load defaults %s: %w", path, err)
	}

	apply := func(key string, dst *string, val string) {
		if meta.IsDefined(key) {
			if v := strings.TrimSpace(val); v != "" {
				*dst = v
			}
		}
	}
	apply("scripts_dir", &s.ScriptsDir, raw.ScriptsDir)
	apply("history_file", &s.HistoryFile, raw.HistoryFile)
	apply("log_file", &s.LogFile, raw.LogFile)
	apply("journal_db", &s.JournalDB, raw.JournalDB)
	apply("deployment_config", &s.DeploymentConfig, raw.DeploymentConfig)
	apply("stop_command", &s.StopCommand, raw.StopCommand)
	apply("status_command", &s.StatusCommand, raw.StatusCommand)
	apply("deployment", &s.Deployment, raw.Deployment)
	return s, nil
}
