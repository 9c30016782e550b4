package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/PaoloLupo/rcsection/internal/config"
	"github.com/PaoloLupo/rcsection/internal/corpus"
	"github.com/PaoloLupo/rcsection/internal/fixture"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
)

// exampleWatcher regenerates fixtures when examples are created or modified.
type exampleWatcher struct {
	cfg     config.Config
	root    string
	pattern string
	writer  *fixture.Writer
	events  *fsnotify.Watcher
}

// newExampleWatcher registers the examples root (and its subdirectories when
// discovery is recursive) before returning, so no event after it is missed.
// writer keeps the identities claimed by earlier passes.
func newExampleWatcher(cfg config.Config, writer *fixture.Writer) (*exampleWatcher, error) {
	root, err := filepath.Abs(cfg.In)
	if err != nil {
		return nil, fmt.Errorf("resolve examples root %q: %w", cfg.In, err)
	}

	events, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	w := &exampleWatcher{
		cfg:     cfg,
		root:    root,
		pattern: cfg.Pattern(),
		writer:  writer,
		events:  events,
	}
	if err := w.addTree(root); err != nil {
		_ = events.Close()
		return nil, err
	}
	return w, nil
}

func (w *exampleWatcher) addTree(dir string) error {
	if !w.cfg.Recursive {
		return w.events.Add(dir)
	}
	return filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if err := w.events.Add(p); err != nil {
			return fmt.Errorf("watch %q: %w", p, err)
		}
		return nil
	})
}

// run blocks until ctx is done or a fixture cannot be written.
func (w *exampleWatcher) run(ctx context.Context) error {
	defer w.events.Close()

	slog.Info("watching examples", "path", w.cfg.In, "pattern", w.pattern)
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.events.Events:
			if !ok {
				return nil
			}
			if err := w.handle(event); err != nil {
				return newExitError(ExitCodeGenerationFailed, err)
			}
		case err, ok := <-w.events.Errors:
			if !ok {
				return nil
			}
			slog.Error("watch error", "error", err)
		}
	}
}

func (w *exampleWatcher) handle(event fsnotify.Event) error {
	rel, err := filepath.Rel(w.root, event.Name)
	if err != nil {
		return nil
	}
	rel = filepath.ToSlash(rel)

	switch {
	case event.Has(fsnotify.Create) || event.Has(fsnotify.Write):
		info, err := os.Stat(event.Name)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return fmt.Errorf("stat %q: %w", event.Name, err)
		}
		if info.IsDir() {
			if w.cfg.Recursive && event.Has(fsnotify.Create) {
				return w.addTree(event.Name)
			}
			return nil
		}
		if !w.matches(rel) {
			return nil
		}
		_, err = w.writer.Write(corpus.Example{AbsPath: event.Name, RelPath: rel})
		return err
	case event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename):
		if w.matches(rel) {
			slog.Warn("example removed, fixture left in place", "example", rel)
		}
	}
	return nil
}

func (w *exampleWatcher) matches(rel string) bool {
	ok, err := doublestar.Match(w.pattern, rel)
	return err == nil && ok
}

// runWatch performs nothing when the examples root is missing, like runGenerate.
func runWatch(ctx context.Context, cfg config.Config, writer *fixture.Writer) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if _, err := os.Stat(cfg.In); errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	w, err := newExampleWatcher(cfg, writer)
	if err != nil {
		return err
	}
	return w.run(ctx)
}
