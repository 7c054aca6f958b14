package cli

import (
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/typecheckhq/mycheck/pkg/console"
)

// debounceDelay batches rapid editor save events into one re-check.
const debounceDelay = 300 * time.Millisecond

// WatchAndCheck runs an initial check, then re-runs it whenever a Python
// source file under the watched paths changes. Blocks until interrupted.
func WatchAndCheck(opts CheckOptions) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	paths := opts.Paths
	if len(paths) == 0 {
		paths = []string{"."}
	}
	for _, path := range paths {
		if err := watchRecursive(watcher, path); err != nil {
			return err
		}
	}

	fmt.Println(console.FormatInfoMessage(fmt.Sprintf("Watching for file changes in %s...", strings.Join(paths, ", "))))
	if opts.Verbose {
		fmt.Println("Press Ctrl+C to stop watching.")
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	runOnce := func() {
		errorCount, err := RunCheck(opts)
		switch {
		case err != nil:
			fmt.Fprintln(os.Stderr, console.FormatErrorMessage(err.Error()))
		case errorCount == 0:
			fmt.Println(console.FormatSuccessMessage("No type errors"))
		}
	}

	runOnce()

	var debounceTimer *time.Timer
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return fmt.Errorf("watcher channel closed")
			}

			if !strings.HasSuffix(event.Name, ".py") {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Remove) {
				continue
			}

			if opts.Verbose {
				fmt.Println(console.FormatVerboseMessage(fmt.Sprintf("Detected change: %s (%s)", event.Name, event.Op.String())))
			}

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(debounceDelay, runOnce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher error channel closed")
			}
			if opts.Verbose {
				fmt.Println(console.FormatWarningMessage(fmt.Sprintf("Watcher error: %v", err)))
			}

		case <-sigChan:
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			fmt.Println(console.FormatInfoMessage("Stopping watch mode"))
			return nil
		}
	}
}

// watchRecursive registers path and every directory beneath it. Hidden
// directories and Python caches are skipped.
func watchRecursive(watcher *fsnotify.Watcher, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("cannot watch %s: %w", path, err)
	}
	if !info.IsDir() {
		return watcher.Add(filepath.Dir(path))
	}

	return filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		name := d.Name()
		if p != path && (strings.HasPrefix(name, ".") || name == "__pycache__") {
			return filepath.SkipDir
		}
		if err := watcher.Add(p); err != nil {
			return fmt.Errorf("failed to watch directory %s: %w", p, err)
		}
		return nil
	})
}
