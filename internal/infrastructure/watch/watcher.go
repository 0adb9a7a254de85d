package watch

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/felixgeelhaar/storylint/pkg/application"
)

// StoryWatcher watches a directory tree for story file changes and re-scores
// each changed file after a quiet window.
type StoryWatcher struct {
	service  *application.AnalysisService
	watcher  *fsnotify.Watcher
	filter   *StoryFileFilter
	debounce time.Duration
	onResult func(*application.AnalysisResult)
}

// NewStoryWatcher creates a watcher that calls onResult with each re-scored
// story. A zero debounce uses 500ms.
func NewStoryWatcher(service *application.AnalysisService, debounce time.Duration, onResult func(*application.AnalysisResult)) (*StoryWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}
	if debounce == 0 {
		debounce = 500 * time.Millisecond
	}
	return &StoryWatcher{
		service:  service,
		watcher:  w,
		filter:   NewStoryFileFilter(nil, nil),
		debounce: debounce,
		onResult: onResult,
	}, nil
}

// WatchRecursive adds a directory and all its subdirectories to the watcher.
// Hidden directories are skipped.
func (w *StoryWatcher) WatchRecursive(root string) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() {
			if len(info.Name()) > 1 && info.Name()[0] == '.' && path != root {
				return filepath.SkipDir
			}
			if err := w.watcher.Add(path); err != nil {
				return fmt.Errorf("watch %s: %w", path, err)
			}
		}
		return nil
	})
}

// Run starts the event loop. It blocks until the context is cancelled.
func (w *StoryWatcher) Run(ctx context.Context) error {
	defer w.watcher.Close()

	coalescer := NewCoalescer(w.debounce, func(path string) {
		result, err := w.service.AnalyzeFile(path)
		if err != nil {
			log.Printf("analyze %s: %v", path, err)
			return
		}
		if w.onResult != nil {
			w.onResult(result)
		}
	})
	defer coalescer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}

			// A new directory needs watching; files in it arrive as
			// separate events.
			if event.Op.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					_ = w.WatchRecursive(event.Name)
					continue
				}
			}

			if !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Write) {
				continue
			}
			if !w.filter.Matches(event.Name) {
				continue
			}

			coalescer.Note(event.Name)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watcher error: %w", err)
		}
	}
}
