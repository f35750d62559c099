package session

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/gogpu/piart"
)

// WatchPalette loads the palette file at path and reloads it whenever it is
// written. The directory is watched rather than the file so that editors
// which replace the file on save keep working. A reload that fails to parse
// is logged and leaves the palette unchanged. Watching stops on Close.
func (s *Session) WatchPalette(path string) error {
	path = filepath.Clean(path)
	p, err := piart.LoadPalette(path)
	if err != nil {
		return err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("session: watch palette: %w", err)
	}
	if err := w.Add(filepath.Dir(path)); err != nil {
		_ = w.Close()
		return fmt.Errorf("session: watch palette: %w", err)
	}

	s.mu.Lock()
	switch {
	case s.closed:
		s.mu.Unlock()
		_ = w.Close()
		return ErrClosed
	case s.watcher != nil:
		s.mu.Unlock()
		_ = w.Close()
		return errors.New("session: already watching a palette file")
	}
	s.watcher = w
	s.palette = p
	s.wg.Add(1)
	s.mu.Unlock()
	s.notify(p)

	go s.watchLoop(w, path)
	return nil
}

func (s *Session) watchLoop(w *fsnotify.Watcher, path string) {
	defer s.wg.Done()
	log := piart.Logger().With(slog.String("file", path))

	for {
		select {
		case ev, ok := <-w.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != path || !(ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create)) {
				continue
			}
			p, err := piart.LoadPalette(path)
			if err != nil {
				log.Warn("palette reload failed", slog.Any("error", err))
				continue
			}
			if s.reload(p) {
				log.Info("palette reloaded")
			}
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			log.Warn("palette watcher error", slog.Any("error", err))
		}
	}
}

// reload stores p unless the session has closed.
func (s *Session) reload(p piart.Palette) bool {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return false
	}
	changed := s.palette != p
	s.palette = p
	s.mu.Unlock()
	if changed {
		s.notify(p)
	}
	return true
}
