package driver

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"cppedit/internal/format"
	"cppedit/internal/trace"
)

// SourceExts lists the file extensions collected from directories.
var SourceExts = []string{".cpp", ".cc", ".cxx", ".c++", ".hpp", ".hh", ".hxx", ".h", ".ipp"}

// ErrNoSources is returned when the given paths hold no C/C++ sources.
var ErrNoSources = errors.New("format: no source files found")

// FormatOptions configures batch formatting.
type FormatOptions struct {
	Check    bool
	Stdout   bool
	Config   format.Config
	Jobs     int
	Progress ProgressSink
}

// FormatResult captures the result of formatting a single file.
type FormatResult struct {
	Path      string
	Changed   bool
	Err       error
	Formatted []byte
	LongLines []format.LongLine
}

// FormatPaths formats provided files or directories (recursively collecting C/C++ sources).
// When opts.Check is true, files are not modified; Changed indicates whether formatting
// would update the file contents. When opts.Stdout is true, formatted content is returned
// in the results without touching files on disk.
// Per-file failures land in FormatResult.Err; the returned error is reserved for
// collection failures and cancellation.
func FormatPaths(ctx context.Context, paths []string, opts FormatOptions) ([]FormatResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	files, err := CollectSources(ctx, paths)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, ErrNoSources
	}

	ctx, span := trace.Start(ctx, trace.ScopeCommand, "format-paths")
	span.WithExtra("files", strconv.Itoa(len(files)))

	for _, path := range files {
		emit(opts.Progress, Event{File: path, Stage: StageRead, Status: StatusQueued})
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	results := make([]FormatResult, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, min(jobs, len(files))))

	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = formatFile(gctx, path, opts)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		span.Fail(err)
		return results, err
	}
	span.End("")
	return results, nil
}

func formatFile(ctx context.Context, path string, opts FormatOptions) FormatResult {
	_, span := trace.Start(ctx, trace.ScopeFile, "file:"+path)
	start := time.Now()
	result := FormatResult{Path: path}

	fail := func(stage Stage, err error) FormatResult {
		result.Err = err
		emit(opts.Progress, Event{File: path, Stage: stage, Status: StatusError, Err: err, Elapsed: time.Since(start)})
		span.Fail(err)
		return result
	}

	emit(opts.Progress, Event{File: path, Stage: StageRead, Status: StatusWorking})
	data, err := os.ReadFile(path)
	if err != nil {
		return fail(StageRead, err)
	}

	emit(opts.Progress, Event{File: path, Stage: StageFormat, Status: StatusWorking})
	formatted := FormatSource(data, opts.Config)
	result.Changed = !bytes.Equal(data, formatted)
	result.LongLines = format.LongLines(string(formatted), opts.Config)

	switch {
	case opts.Check:
	case opts.Stdout:
		result.Formatted = formatted
	case result.Changed:
		emit(opts.Progress, Event{File: path, Stage: StageWrite, Status: StatusWorking})
		if err := writeKeepingMode(path, formatted); err != nil {
			result.Changed = false
			return fail(StageWrite, err)
		}
	}

	span.WithExtra("changed", strconv.FormatBool(result.Changed)).End("")
	emit(opts.Progress, Event{File: path, Stage: StageWrite, Status: StatusDone, Elapsed: time.Since(start)})
	return result
}

// FormatSource formats src and terminates non-empty output with a newline.
func FormatSource(src []byte, cfg format.Config) []byte {
	out := format.FormatConfig(string(src), cfg)
	if out == "" {
		return nil
	}
	return []byte(out + "\n")
}

func writeKeepingMode(path string, data []byte) error {
	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode()
	}
	return os.WriteFile(path, data, mode.Perm())
}

// IsSource reports whether path carries one of SourceExts.
func IsSource(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, want := range SourceExts {
		if ext == want {
			return true
		}
	}
	return false
}

// CollectSources expands directories into the sorted, de-duplicated list of
// sources beneath them. Explicit file arguments are kept whatever their extension.
func CollectSources(ctx context.Context, paths []string) ([]string, error) {
	var files []string
	seen := make(map[string]struct{})
	addFile := func(path string) {
		path = filepath.Clean(path)
		if _, ok := seen[path]; ok {
			return
		}
		seen[path] = struct{}{}
		files = append(files, path)
	}

	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("format: %w", err)
		}
		if !info.IsDir() {
			addFile(p)
			continue
		}
		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if err := ctx.Err(); err != nil {
				return err
			}
			if d.IsDir() {
				if path != p && strings.HasPrefix(d.Name(), ".") {
					return filepath.SkipDir
				}
				return nil
			}
			if IsSource(path) {
				addFile(path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	sort.Strings(files)
	return files, nil
}
