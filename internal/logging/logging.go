// Package logging configures the run logger: a human console stream plus an
// append-only, timestamped log file. Quiet mode silences the console only;
// the file always receives the full run transcript.
package logging

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Options controls where log output goes.
type Options struct {
	// LogFile is the append-only transcript path. Empty disables the file.
	LogFile string
	// Quiet suppresses console output (the file is unaffected).
	Quiet bool
	// ConsoleOut overrides the console destination (tests). Defaults to stdout.
	ConsoleOut io.Writer
}

// Logger bundles the zerolog logger with the file handle backing it.
type Logger struct {
	zerolog.Logger
	file *os.File
}

// Open builds a logger per opts. The log file is opened in append mode and
// created if missing.
func Open(opts Options) (*Logger, error) {
	var writers []io.Writer

	if !opts.Quiet {
		out := opts.ConsoleOut
		if out == nil {
			out = os.Stdout
		}
		writers = append(writers, zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.RFC3339,
			NoColor:    true,
		})
	}

	var f *os.File
	if opts.LogFile != "" {
		var err error
		f, err = os.OpenFile(opts.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		writers = append(writers, zerolog.ConsoleWriter{
			Out:        f,
			TimeFormat: time.RFC3339,
			NoColor:    true,
		})
	}

	var w io.Writer
	switch len(writers) {
	case 0:
		w = io.Discard
	case 1:
		w = writers[0]
	default:
		w = zerolog.MultiLevelWriter(writers...)
	}

	l := zerolog.New(w).With().Timestamp().Logger()
	return &Logger{Logger: l, file: f}, nil
}

// Close releases the log file, if one was opened.
func (l *Logger) Close() error {
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}
