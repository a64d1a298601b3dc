package observer

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gnemet/SlideSift/internal/config"
	"github.com/gnemet/SlideSift/internal/pptx/pptxtest"
)

func testObserver(t *testing.T) (*Observer, config.StorageConfig) {
	t.Helper()
	root := t.TempDir()
	storage := config.StorageConfig{
		Stage:     filepath.Join(root, "stage"),
		Output:    filepath.Join(root, "output"),
		Processed: filepath.Join(root, "processed"),
	}
	for _, dir := range []string{storage.Stage, storage.Output, storage.Processed} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatal(err)
		}
	}
	cfg := &config.Config{
		Application: config.ApplicationConfig{Storage: storage},
		Watch:       config.WatchConfig{Enabled: true, Debounce: 20 * time.Millisecond},
	}
	return NewObserver(cfg, slog.New(slog.NewTextHandler(io.Discard, nil))), storage
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func TestProcessFile(t *testing.T) {
	o, storage := testObserver(t)
	src := pptxtest.WriteFile(t, storage.Stage, "deck.pptx",
		pptxtest.TextBox(2, "TextBox 1", []string{"Hello"}))

	o.processFile(src)

	text, err := os.ReadFile(filepath.Join(storage.Output, "deck_TextDetails.tsv"))
	if err != nil {
		t.Fatalf("text details not written: %v", err)
	}
	if !strings.Contains(string(text), "0\t2\tFalse\t\t\t0\t0\tHello\n") {
		t.Errorf("unexpected text details:\n%s", text)
	}
	if !exists(filepath.Join(storage.Output, "deck_ShapeSummary.tsv")) {
		t.Error("shape summary not written")
	}
	if exists(src) || !exists(filepath.Join(storage.Processed, "deck.pptx")) {
		t.Error("source should have moved to the processed directory")
	}
	if o.IsProcessing() {
		t.Error("observer still reports work in progress")
	}
}

func TestProcessFile_Malformed(t *testing.T) {
	o, storage := testObserver(t)
	src := filepath.Join(storage.Stage, "broken.pptx")
	if err := os.WriteFile(src, []byte("not a presentation"), 0644); err != nil {
		t.Fatal(err)
	}

	o.processFile(src)

	entries, err := os.ReadDir(storage.Output)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("expected no reports for a malformed file, got %d entries", len(entries))
	}
	if !exists(filepath.Join(storage.Processed, "broken.pptx")) {
		t.Error("malformed source should still be moved out of the stage directory")
	}
}

func TestProcessFile_Vanished(t *testing.T) {
	o, storage := testObserver(t)
	o.processFile(filepath.Join(storage.Stage, "gone.pptx"))
	entries, _ := os.ReadDir(storage.Output)
	if len(entries) != 0 {
		t.Errorf("expected no output, got %d entries", len(entries))
	}
}

func TestStart(t *testing.T) {
	o, storage := testObserver(t)
	pptxtest.WriteFile(t, storage.Stage, "existing.pptx", pptxtest.TextBox(2, "T", []string{"before"}))
	if err := os.WriteFile(filepath.Join(storage.Stage, "notes.txt"), []byte("ignore me"), 0644); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- o.Start(ctx) }()

	waitFor(t, "initial scan", func() bool {
		return exists(filepath.Join(storage.Output, "existing_ShapeSummary.tsv"))
	})

	// Build in a scratch directory and move it in so the watcher sees a
	// complete file.
	scratch := pptxtest.WriteFile(t, t.TempDir(), "arrived.pptx", pptxtest.TextBox(2, "T", []string{"after"}))
	if err := os.Rename(scratch, filepath.Join(storage.Stage, "arrived.pptx")); err != nil {
		// Cross-device temp dirs cannot be renamed; copy instead.
		data, rerr := os.ReadFile(scratch)
		if rerr != nil {
			t.Fatal(rerr)
		}
		if err := os.WriteFile(filepath.Join(storage.Stage, "arrived.pptx"), data, 0644); err != nil {
			t.Fatal(err)
		}
	}

	waitFor(t, "watched file", func() bool {
		return exists(filepath.Join(storage.Processed, "arrived.pptx")) &&
			exists(filepath.Join(storage.Output, "arrived_TextDetails.tsv"))
	})

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Start returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("observer did not stop after cancellation")
	}

	if !exists(filepath.Join(storage.Stage, "notes.txt")) {
		t.Error("non-presentation files must be left alone")
	}
}

func TestStart_RequiresStage(t *testing.T) {
	o := NewObserver(&config.Config{}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err := o.Start(context.Background()); err == nil {
		t.Fatal("expected an error without a stage directory")
	}
}

func TestReprocessAll(t *testing.T) {
	o, storage := testObserver(t)
	pptxtest.WriteFile(t, storage.Processed, "a.pptx")
	pptxtest.WriteFile(t, storage.Processed, "b.pptx")
	if err := os.WriteFile(filepath.Join(storage.Processed, "readme.md"), nil, 0644); err != nil {
		t.Fatal(err)
	}

	moved, err := o.ReprocessAll()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if moved != 2 {
		t.Errorf("moved %d files, want 2", moved)
	}
	if !exists(filepath.Join(storage.Stage, "a.pptx")) || !exists(filepath.Join(storage.Stage, "b.pptx")) {
		t.Error("presentations not moved back to stage")
	}
	if !exists(filepath.Join(storage.Processed, "readme.md")) {
		t.Error("other files must stay in place")
	}
}

func TestDebouncer_CoalescesWrites(t *testing.T) {
	d := newDebouncer(20 * time.Millisecond)
	defer d.stop()

	d.add("a.pptx")
	d.add("a.pptx")
	select {
	case name := <-d.ready:
		if name != "a.pptx" {
			t.Fatalf("got %q", name)
		}
		d.forget(name)
	case <-time.After(2 * time.Second):
		t.Fatal("timer never fired")
	}
	select {
	case name := <-d.ready:
		t.Errorf("second write fired separately: %q", name)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestDebouncer_FireAfterStopReturns(t *testing.T) {
	d := newDebouncer(time.Hour)
	d.add("a.pptx")
	d.stop()

	returned := make(chan struct{})
	go func() {
		d.fire("a.pptx")
		close(returned)
	}()
	select {
	case <-returned:
	case <-time.After(2 * time.Second):
		t.Fatal("fire blocked after the observer stopped")
	}
}

func TestIsPresentation(t *testing.T) {
	tests := map[string]bool{
		"deck.pptx":         true,
		"/x/DECK.PPTX":      true,
		"/x/~$deck.pptx":    false,
		"deck.ppt":          false,
		"deck.pptx.partial": false,
	}
	for name, want := range tests {
		if got := isPresentation(name); got != want {
			t.Errorf("isPresentation(%q) = %v, want %v", name, got, want)
		}
	}
}
