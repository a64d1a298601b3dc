package observer

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/gnemet/SlideSift/internal/config"
	"github.com/gnemet/SlideSift/internal/report"
)

// Observer watches the stage directory and writes both reports for every
// presentation that lands there.
type Observer struct {
	cfg         *config.Config
	log         *slog.Logger
	activeTasks int
	mu          sync.Mutex
}

func NewObserver(cfg *config.Config, log *slog.Logger) *Observer {
	return &Observer{
		cfg: cfg,
		log: log.With("component", "observer"),
	}
}

func (o *Observer) incrementTask() {
	o.mu.Lock()
	o.activeTasks++
	o.mu.Unlock()
}

func (o *Observer) decrementTask() {
	o.mu.Lock()
	o.activeTasks--
	o.mu.Unlock()
}

func isPresentation(name string) bool {
	return strings.HasSuffix(strings.ToLower(name), ".pptx") && !strings.HasPrefix(filepath.Base(name), "~$")
}

// Start blocks until ctx is cancelled or the watcher shuts down. Files already
// in the stage directory are processed first.
func (o *Observer) Start(ctx context.Context) error {
	storage := o.cfg.Application.Storage
	if storage.Stage == "" {
		return fmt.Errorf("stage storage directory not configured")
	}

	// Ensure directories exist
	for _, dir := range []string{storage.Stage, storage.Output, storage.Processed} {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(storage.Stage); err != nil {
		return err
	}

	o.log.Info("background observer started", "stage", storage.Stage, "debounce", o.cfg.Watch.Debounce)

	// Initial scan
	o.scanDirectory(storage.Stage)

	deb := newDebouncer(o.cfg.Watch.Debounce)
	defer deb.stop()

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if !isPresentation(event.Name) {
				continue
			}
			o.log.Debug("detected change", "file", event.Name, "op", event.Op.String())
			deb.add(event.Name)

		case name := <-deb.ready:
			deb.forget(name)
			o.processFile(name)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			o.log.Error("watcher error", "error", err)

		case <-ctx.Done():
			return nil
		}
	}
}

// debouncer restarts a file's timer on every write so a copy in progress is
// picked up once it has been quiet for the delay. Timers that fire after stop
// give up instead of blocking on ready.
type debouncer struct {
	delay  time.Duration
	timers map[string]*time.Timer
	ready  chan string
	done   chan struct{}
}

func newDebouncer(delay time.Duration) *debouncer {
	return &debouncer{
		delay:  delay,
		timers: make(map[string]*time.Timer),
		ready:  make(chan string),
		done:   make(chan struct{}),
	}
}

func (d *debouncer) add(name string) {
	if t, ok := d.timers[name]; ok {
		t.Reset(d.delay)
		return
	}
	d.timers[name] = time.AfterFunc(d.delay, func() { d.fire(name) })
}

func (d *debouncer) fire(name string) {
	select {
	case d.ready <- name:
	case <-d.done:
	}
}

func (d *debouncer) forget(name string) {
	delete(d.timers, name)
}

func (d *debouncer) stop() {
	close(d.done)
	for _, t := range d.timers {
		t.Stop()
	}
}

func (o *Observer) scanDirectory(dir string) {
	files, err := os.ReadDir(dir)
	if err != nil {
		o.log.Error("failed to scan directory", "dir", dir, "error", err)
		return
	}

	for _, f := range files {
		if !f.IsDir() && isPresentation(f.Name()) {
			o.processFile(filepath.Join(dir, f.Name()))
		}
	}
}

// processFile writes the reports that succeed, logs the ones that fail and
// moves the source out of the stage directory either way.
func (o *Observer) processFile(path string) {
	o.incrementTask()
	defer o.decrementTask()

	filename := filepath.Base(path)
	log := o.log.With("file", filename)

	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Debug("file vanished before processing")
		return
	}
	if err != nil {
		log.Error("failed to open file", "error", err)
		return
	}

	start := time.Now()
	log.Info("processing file")
	res := report.Generate(filename, f, report.Options{BOM: o.cfg.Output.BOM})
	f.Close()

	outDir := o.cfg.Application.Storage.Output
	if outDir == "" {
		outDir = filepath.Dir(path)
	}
	for _, out := range res.Outputs() {
		if out.Err != nil {
			log.Error("report failed", "report", out.Kind, "error", out.Err)
			continue
		}
		dst := filepath.Join(outDir, out.Filename)
		if err := writeFileAtomic(dst, out.Content); err != nil {
			log.Error("failed to write report", "report", out.Kind, "path", dst, "error", err)
			continue
		}
		log.Info("report written", "report", out.Kind, "path", dst, "bytes", len(out.Content))
	}
	log.Info("processed", "duration_ms", time.Since(start).Milliseconds())

	o.finalizeFile(path, filename)
}

func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}

func (o *Observer) finalizeFile(path, filename string) {
	processed := o.cfg.Application.Storage.Processed
	if processed == "" {
		return
	}

	newPath := filepath.Join(processed, filename)
	if path == newPath {
		return
	}

	if err := os.Rename(path, newPath); err != nil {
		o.log.Error("failed to move file to processed folder", "file", filename, "error", err)
		return
	}
	o.log.Info("moved file", "file", filename, "to", newPath)
}

// ReprocessAll moves every processed presentation back to the stage
// directory, where the running watcher picks them up again. It returns the
// number of files moved.
func (o *Observer) ReprocessAll() (int, error) {
	o.incrementTask()
	defer o.decrementTask()

	stageDir := o.cfg.Application.Storage.Stage
	processedDir := o.cfg.Application.Storage.Processed
	if processedDir == "" || stageDir == "" {
		return 0, fmt.Errorf("stage and processed directories must both be configured")
	}
	o.log.Info("starting full reprocess", "from", processedDir)

	files, err := os.ReadDir(processedDir)
	if err != nil {
		return 0, fmt.Errorf("listing processed directory: %w", err)
	}
	moved := 0
	for _, file := range files {
		if file.IsDir() || !isPresentation(file.Name()) {
			continue
		}
		oldPath := filepath.Join(processedDir, file.Name())
		newPath := filepath.Join(stageDir, file.Name())
		if err := os.Rename(oldPath, newPath); err != nil {
			o.log.Error("failed to move file back to stage", "file", file.Name(), "error", err)
			continue
		}
		moved++
	}
	o.log.Info("moved files back to stage", "count", moved)
	return moved, nil
}

func (o *Observer) IsProcessing() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.activeTasks > 0
}
