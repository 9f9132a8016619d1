// Package watcher reports debounced changes to a set of files.
package watcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// FileWatcher calls back when a watched file is written, created or
// replaced. Parent directories are watched so editors that save through a
// rename are still seen.
type FileWatcher struct {
	watcher   *fsnotify.Watcher
	mu        sync.Mutex
	callbacks map[string]func(string)
	dirs      map[string]int
	debounce  time.Duration
	timers    map[string]*time.Timer
	log       *log.Logger
}

// NewFileWatcher creates a watcher. Events for the same file closer than
// debounce collapse into one callback. A nil logger discards errors.
func NewFileWatcher(debounce time.Duration, logger *log.Logger) (*FileWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	return &FileWatcher{
		watcher:   w,
		callbacks: make(map[string]func(string)),
		dirs:      make(map[string]int),
		debounce:  debounce,
		timers:    make(map[string]*time.Timer),
		log:       logger,
	}, nil
}

// Watch registers callback for every file
func (fw *FileWatcher) Watch(files []string, callback func(string)) error {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	for _, file := range files {
		absPath, err := filepath.Abs(file)
		if err != nil {
			return fmt.Errorf("failed to resolve path %s: %w", file, err)
		}
		if _, exists := fw.callbacks[absPath]; exists {
			fw.callbacks[absPath] = callback
			continue
		}

		dir := filepath.Dir(absPath)
		if fw.dirs[dir] == 0 {
			if err := fw.watcher.Add(dir); err != nil {
				return fmt.Errorf("failed to watch %s: %w", dir, err)
			}
		}
		fw.dirs[dir]++
		fw.callbacks[absPath] = callback
	}

	return nil
}

// Files returns the watched paths
func (fw *FileWatcher) Files() []string {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	files := make([]string, 0, len(fw.callbacks))
	for f := range fw.callbacks {
		files = append(files, f)
	}
	return files
}

// Run dispatches events until ctx is done or the watcher is closed
func (fw *FileWatcher) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				fw.handleFileChange(filepath.Clean(event.Name))
			}

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			fw.log.Printf("watcher error: %v", err)
		}
	}
}

// Start runs the dispatch loop in the background
func (fw *FileWatcher) Start(ctx context.Context) {
	go fw.Run(ctx)
}

// handleFileChange restarts the debounce timer of a watched file
func (fw *FileWatcher) handleFileChange(filePath string) {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	callback, exists := fw.callbacks[filePath]
	if !exists {
		return
	}

	if timer, exists := fw.timers[filePath]; exists {
		timer.Stop()
	}
	fw.timers[filePath] = time.AfterFunc(fw.debounce, func() {
		callback(filePath)
	})
}

// Close stops pending callbacks and releases the watcher
func (fw *FileWatcher) Close() error {
	fw.mu.Lock()
	for _, timer := range fw.timers {
		timer.Stop()
	}
	fw.mu.Unlock()
	return fw.watcher.Close()
}

// RemoveAll stops watching every file. Directories that disappeared are
// not an error.
func (fw *FileWatcher) RemoveAll() error {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	var errs []error
	for dir := range fw.dirs {
		if err := fw.watcher.Remove(dir); err != nil && !errors.Is(err, fsnotify.ErrNonExistentWatch) {
			errs = append(errs, err)
		}
	}
	for _, timer := range fw.timers {
		timer.Stop()
	}

	fw.callbacks = make(map[string]func(string))
	fw.dirs = make(map[string]int)
	fw.timers = make(map[string]*time.Timer)
	return errors.Join(errs...)
}
