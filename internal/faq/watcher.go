package faq

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads the FAQ index when the source CSV changes on disk.
// Events are debounced so editors that write in multiple steps trigger
// a single reingestion.
type Watcher struct {
	csvPath      string
	index        *Index
	watcher      *fsnotify.Watcher
	debounceTime time.Duration

	mu      sync.Mutex
	pending bool

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewWatcher creates a watcher for the given CSV file feeding the given index.
func NewWatcher(csvPath string, index *Index) (*Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Watcher{
		csvPath:      csvPath,
		index:        index,
		watcher:      watcher,
		debounceTime: 500 * time.Millisecond,
		ctx:          ctx,
		cancel:       cancel,
	}, nil
}

// Start begins watching the CSV's directory. Watching the directory
// rather than the file survives atomic rename-based saves.
func (w *Watcher) Start() error {
	if err := w.watcher.Add(filepath.Dir(w.csvPath)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", w.csvPath, err)
	}

	w.wg.Add(2)
	go w.eventLoop()
	go w.debounceLoop()

	return nil
}

// Stop stops the watcher.
func (w *Watcher) Stop() error {
	w.cancel()
	w.wg.Wait()
	return w.watcher.Close()
}

func (w *Watcher) eventLoop() {
	defer w.wg.Done()

	for {
		select {
		case <-w.ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(w.csvPath) {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				w.mu.Lock()
				w.pending = true
				w.mu.Unlock()
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("⚠️  Watcher error: %v", err)
		}
	}
}

func (w *Watcher) debounceLoop() {
	defer w.wg.Done()

	ticker := time.NewTicker(w.debounceTime)
	defer ticker.Stop()

	for {
		select {
		case <-w.ctx.Done():
			return

		case <-ticker.C:
			w.mu.Lock()
			dirty := w.pending
			w.pending = false
			w.mu.Unlock()

			if !dirty {
				continue
			}
			n, err := w.index.IngestCSV(w.csvPath)
			if err != nil {
				log.Printf("⚠️  FAQ reload failed: %v", err)
				continue
			}
			log.Printf("📝 FAQ data reloaded (%d entries)", n)
		}
	}
}
