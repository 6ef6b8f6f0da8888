package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher regenerates templates as they change on disk.
type Watcher struct {
	Generator    *Generator
	Inputs       []string
	Out          io.Writer     // progress and error reporting
	UseColor     bool
	Debounce     time.Duration // coalesces editor write bursts; default 200ms
	ManifestPath string        // manifest saved after each round; "" skips saving
}

// Watch runs an initial generation pass and then blocks until ctx is
// canceled, regenerating any tracked template whose file changes.
// Generation failures are reported and watching continues.
func (w *Watcher) Watch(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}
	defer func() { _ = fw.Close() }()

	tracked := make(map[string]string, len(w.Inputs)) // absolute path -> input as given
	dirs := make(map[string]bool)
	for _, input := range w.Inputs {
		abs, err := filepath.Abs(input)
		if err != nil {
			return fmt.Errorf("failed to resolve %s: %w", input, err)
		}
		tracked[abs] = input
		dirs[filepath.Dir(abs)] = true
	}

	// Watch directories, not files: editors replace files on save and
	// a watch on the old inode goes silent.
	for dir := range dirs {
		if err := fw.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}

	for _, input := range w.Inputs {
		w.regenerate(input)
	}
	w.saveManifest()

	debounce := w.Debounce
	if debounce <= 0 {
		debounce = 200 * time.Millisecond
	}

	pending := make(map[string]bool)
	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			input, ok := tracked[event.Name]
			if !ok || event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			pending[input] = true
			if timer == nil {
				timer = time.NewTimer(debounce)
				timerC = timer.C
			} else {
				if !timer.Stop() {
					select {
					case <-timerC:
					default:
					}
				}
				timer.Reset(debounce)
			}

		case <-timerC:
			timer = nil
			timerC = nil
			for input := range pending {
				w.regenerate(input)
			}
			clear(pending)
			w.saveManifest()

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			_, _ = fmt.Fprintf(w.Out, "%s%v\n", colorize("watch error: ", colorRed, w.UseColor), err)
		}
	}
}

func (w *Watcher) regenerate(input string) {
	result, err := w.Generator.Generate(input)
	if err != nil {
		data, _ := os.ReadFile(input)
		formatError(w.Out, err, input, data, w.UseColor)
		return
	}
	if result.Skipped {
		_, _ = fmt.Fprintf(w.Out, "%s %s\n", colorize("unchanged", colorGray, w.UseColor), result.Output)
		return
	}
	_, _ = fmt.Fprintf(w.Out, "%s %s\n", colorize("wrote", colorGreen, w.UseColor), result.Output)
}

func (w *Watcher) saveManifest() {
	if w.ManifestPath == "" || w.Generator.Manifest == nil {
		return
	}
	if err := w.Generator.Manifest.Save(w.ManifestPath); err != nil {
		_, _ = fmt.Fprintf(w.Out, "%s%v\n", colorize("warning: ", colorYellow, w.UseColor), err)
	}
}
