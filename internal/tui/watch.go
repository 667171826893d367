package tui

import (
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"

	"cadview/internal/logging"
)

// fileChangedMsg reports a write to a file in the watched directory.
type fileChangedMsg struct{ path string }

type watchErrMsg struct{ err error }

// watchPath points the watcher at the directory of p. The directory is
// watched rather than the file so that editors replacing the file are
// noticed. It returns the command waiting for events when it had to start
// the watcher.
func (m *Model) watchPath(p string) tea.Cmd {
	var cmd tea.Cmd
	if m.watcher == nil {
		w, err := fsnotify.NewWatcher()
		if err != nil {
			logging.Logger().Warn("file watcher unavailable", "err", err)
			return nil
		}
		m.watcher = w
		cmd = waitForChange(w)
	}
	dir := filepath.Dir(p)
	if dir == m.watchDir {
		return cmd
	}
	if m.watchDir != "" {
		_ = m.watcher.Remove(m.watchDir)
	}
	m.watchDir = ""
	if err := m.watcher.Add(dir); err != nil {
		logging.Logger().Warn("watch failed", "dir", dir, "err", err)
		return cmd
	}
	m.watchDir = dir
	return cmd
}

// waitForChange blocks until a file is written or created. Exactly one
// such command is pending while the watcher runs; each message it returns
// is answered by issuing the next one.
func waitForChange(w *fsnotify.Watcher) tea.Cmd {
	return func() tea.Msg {
		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return nil
				}
				if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) {
					return fileChangedMsg{path: ev.Name}
				}
			case err, ok := <-w.Errors:
				if !ok {
					return nil
				}
				return watchErrMsg{err: err}
			}
		}
	}
}

// Close stops the file watcher.
func (m Model) Close() error {
	if m.watcher == nil {
		return nil
	}
	return m.watcher.Close()
}
