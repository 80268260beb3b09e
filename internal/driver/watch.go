package driver

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"cppedit/internal/trace"
)

// Watch reformats sources under paths whenever they are written, calling
// onResult for every file it touches. It returns when ctx is done.
//
// Directories are watched recursively as they exist at start. Explicit file
// arguments restrict the watch to those files. A file whose content already
// equals the last output written to it is skipped, so Watch does not react to
// its own writes.
func Watch(ctx context.Context, paths []string, opts FormatOptions, onResult func(FormatResult)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	defer watcher.Close()

	files := make(map[string]struct{})
	hasDirs := false
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return fmt.Errorf("watch: %w", err)
		}
		if !info.IsDir() {
			files[filepath.Clean(p)] = struct{}{}
			if err := watcher.Add(filepath.Dir(p)); err != nil {
				return fmt.Errorf("watch %s: %w", p, err)
			}
			continue
		}
		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil || !d.IsDir() {
				return err
			}
			if path != p && d.Name() != "" && d.Name()[0] == '.' {
				return filepath.SkipDir
			}
			return watcher.Add(path)
		})
		if err != nil {
			return fmt.Errorf("watch %s: %w", p, err)
		}
		hasDirs = true
	}

	accept := func(path string) bool {
		if _, ok := files[path]; ok {
			return true
		}
		return hasDirs && IsSource(path)
	}

	tracer := trace.FromContext(ctx)
	last := make(map[string][]byte)

	for {
		select {
		case <-ctx.Done():
			return nil
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			trace.Point(tracer, trace.ScopeCommand, "watch-error", err.Error())
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			path := filepath.Clean(ev.Name)
			if !accept(path) {
				continue
			}
			data, err := os.ReadFile(path)
			if err != nil {
				// removed again before we got to it
				continue
			}
			if prev, seen := last[path]; seen && bytes.Equal(prev, data) {
				continue
			}
			trace.Point(tracer, trace.ScopeFile, "watch-change", path)
			res := formatFile(ctx, path, opts)
			if res.Err == nil {
				if opts.Check || opts.Stdout {
					last[path] = data
				} else {
					last[path] = FormatSource(data, opts.Config)
				}
			}
			if onResult != nil {
				onResult(res)
			}
		}
	}
}
