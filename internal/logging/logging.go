// Package logging configures the application logger. The TUI owns
// stdout, so log output goes to a file in the data directory.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"rhystmorgan/thorDeck/internal/utils"
)

const logFile = "thordeck.log"

// New opens the file-backed logger. The returned closer is the log
// file; main closes it on exit.
func New(dataDir string, debug bool) (*log.Logger, io.Closer, error) {
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	f, err := os.OpenFile(filepath.Join(dataDir, logFile), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}

	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
	})

	if debug {
		logger.SetLevel(log.DebugLevel)
	} else {
		logger.SetLevel(log.InfoLevel)
	}

	logger.SetStyles(styles())

	return logger, f, nil
}

// Discard returns a logger that drops everything. Tests hand this to
// services that want a logger.
func Discard() *log.Logger {
	return log.New(io.Discard)
}

func styles() *log.Styles {
	s := log.DefaultStyles()
	s.Levels = map[log.Level]lipgloss.Style{
		log.DebugLevel: lipgloss.NewStyle().Foreground(lipgloss.Color(utils.Colours.Overlay1)).SetString("DEBUG"),
		log.InfoLevel:  lipgloss.NewStyle().Foreground(lipgloss.Color(utils.Colours.Blue)).SetString("INFO"),
		log.WarnLevel:  lipgloss.NewStyle().Foreground(lipgloss.Color(utils.Colours.Yellow)).SetString("WARN"),
		log.ErrorLevel: lipgloss.NewStyle().Foreground(lipgloss.Color(utils.Colours.Red)).SetString("ERROR"),
	}
	return s
}
