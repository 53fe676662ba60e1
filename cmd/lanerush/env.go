package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/lane-rush/internal/config"
	"github.com/vovakirdan/lane-rush/internal/core"
	"github.com/vovakirdan/lane-rush/internal/scorebook"
	"github.com/vovakirdan/lane-rush/internal/storage"
)

const defaultLogPath = "~/.lanerush/lanerush.log"

// expandHome replaces a leading ~ with the user's home directory.
func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}

// newLogger builds the command logger writing to w.
func newLogger(w io.Writer, prefix string) (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level: %w", err)
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	}), nil
}

// openLogFile opens the log file used while the TUI owns the terminal.
func openLogFile() (*os.File, error) {
	path := expandHome(defaultLogPath)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("cannot create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("cannot open log file: %w", err)
	}
	return f, nil
}

// loadConfig resolves the effective configuration from --config.
func loadConfig() (config.Config, error) {
	return config.Load(flagConfig)
}

// openBook opens the score book. When the database cannot be opened the
// game still works with scores kept in memory for this process.
func openBook(cfg config.Config, logger *log.Logger) (*scorebook.Book, func()) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database, scores will not persist", "path", flagDBPath, "error", err)
		return scorebook.New(scorebook.NewMemoryKV(), cfg.Scoring.MaxSavedScores, logger), func() {}
	}
	closeStore := func() {
		if err := store.Close(); err != nil {
			logger.Warn("closing scores database", "error", err)
		}
	}
	return scorebook.New(store, cfg.Scoring.MaxSavedScores, logger), closeStore
}

// runtimeConfig reads the terminal size for the first frame.
func runtimeConfig() core.RuntimeConfig {
	rt := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		rt.ScreenW = w
		rt.ScreenH = h
	}
	rt.Seed = flagSeed
	return rt
}
