package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"cadview/internal/config"
	"cadview/internal/logging"
	"cadview/internal/tui"
)

// debugEnv names the log file written when set. The terminal belongs to
// the TUI, so logs go to a file.
const debugEnv = "CADVIEW_DEBUG"

func main() {
	if path := os.Getenv(debugEnv); path != "" {
		f, err := tea.LogToFile(path, "cadview")
		if err != nil {
			fmt.Fprintln(os.Stderr, "debug log:", err)
			os.Exit(1)
		}
		defer f.Close()
		logging.SetLogger(slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	cfg, err := config.LoadDefault()
	if err != nil {
		log.Fatal(err)
	}

	var m tea.Model
	if len(os.Args) > 1 {
		m = tui.NewWithPath(cfg, os.Args[1])
	} else {
		m = tui.New(cfg)
	}
	final, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion()).Run()
	if err != nil {
		log.Fatal(err)
	}
	if fm, ok := final.(tui.Model); ok {
		_ = fm.Close()
	}
}
