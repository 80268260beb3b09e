package driver

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"cppedit/internal/format"
)

const messy = "int main(){\nint x=1;int y=2;\nreturn x+y;\n}\n"

const tidy = "int main(){\n    int x = 1;\n    int y = 2;\n    return x + y;\n}\n"

func writeSource(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestFormatSourceAddsTrailingNewline(t *testing.T) {
	got := string(FormatSource([]byte("int x=1;"), format.DefaultConfig()))
	if got != "int x = 1;\n" {
		t.Fatalf("got %q", got)
	}
	if out := FormatSource([]byte("\n\n  \n"), format.DefaultConfig()); out != nil {
		t.Fatalf("blank input should format to nothing, got %q", out)
	}
}

func TestCollectSources(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "b.cpp", "")
	writeSource(t, dir, "a.hpp", "")
	writeSource(t, dir, "sub/c.cc", "")
	writeSource(t, dir, "notes.txt", "")
	writeSource(t, dir, ".git/x.cpp", "")
	explicit := writeSource(t, dir, "script.inl", "")

	files, err := CollectSources(context.Background(), []string{dir, explicit, filepath.Join(dir, "b.cpp")})
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	want := []string{
		filepath.Join(dir, "a.hpp"),
		filepath.Join(dir, "b.cpp"),
		filepath.Join(dir, "script.inl"),
		filepath.Join(dir, "sub", "c.cc"),
	}
	if len(files) != len(want) {
		t.Fatalf("got %v, want %v", files, want)
	}
	for i := range want {
		if files[i] != want[i] {
			t.Fatalf("got %v, want %v", files, want)
		}
	}
}

func TestFormatPathsWritesChangedFiles(t *testing.T) {
	dir := t.TempDir()
	dirty := writeSource(t, dir, "dirty.cpp", messy)
	clean := writeSource(t, dir, "clean.cpp", tidy)

	results, err := FormatPaths(context.Background(), []string{dir}, FormatOptions{Config: format.DefaultConfig(), Jobs: 2})
	if err != nil {
		t.Fatalf("format: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	// sorted: clean.cpp first
	if results[0].Path != clean || results[0].Changed {
		t.Fatalf("clean file reported as %+v", results[0])
	}
	if results[1].Path != dirty || !results[1].Changed || results[1].Err != nil {
		t.Fatalf("dirty file reported as %+v", results[1])
	}

	data, _ := os.ReadFile(dirty)
	if string(data) != tidy {
		t.Fatalf("unexpected output:\n%s", data)
	}
	info, _ := os.Stat(dirty)
	if info.Mode().Perm() != 0o600 {
		t.Fatalf("permissions not kept: %v", info.Mode().Perm())
	}
}

func TestFormatPathsCheckAndStdout(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, "a.cpp", messy)

	results, err := FormatPaths(context.Background(), []string{path}, FormatOptions{Check: true, Config: format.DefaultConfig()})
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if !results[0].Changed || results[0].Formatted != nil {
		t.Fatalf("check result %+v", results[0])
	}

	results, err = FormatPaths(context.Background(), []string{path}, FormatOptions{Stdout: true, Config: format.DefaultConfig()})
	if err != nil {
		t.Fatalf("stdout: %v", err)
	}
	if string(results[0].Formatted) != tidy {
		t.Fatalf("stdout result %q", results[0].Formatted)
	}

	data, _ := os.ReadFile(path)
	if string(data) != messy {
		t.Fatalf("check and stdout must not touch the file")
	}
}

func TestFormatPathsReportsLongLines(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, "a.cpp", "int averyveryverylongname=1;\n")
	cfg := format.DefaultConfig()
	cfg.MaxLineLength = 10

	results, err := FormatPaths(context.Background(), []string{path}, FormatOptions{Check: true, Config: cfg})
	if err != nil {
		t.Fatalf("format: %v", err)
	}
	if len(results[0].LongLines) != 1 || results[0].LongLines[0].Line != 1 {
		t.Fatalf("long lines = %+v", results[0].LongLines)
	}
}

func TestFormatPathsNoSources(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "readme.md", "")
	_, err := FormatPaths(context.Background(), []string{dir}, FormatOptions{})
	if !errors.Is(err, ErrNoSources) {
		t.Fatalf("expected ErrNoSources, got %v", err)
	}
}

func TestFormatPathsCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := FormatPaths(ctx, []string{t.TempDir()}, FormatOptions{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

type recordingSink struct {
	mu     sync.Mutex
	events []Event
}

func (s *recordingSink) OnEvent(evt Event) {
	s.mu.Lock()
	s.events = append(s.events, evt)
	s.mu.Unlock()
}

func TestFormatPathsProgressEvents(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "a.cpp", messy)
	writeSource(t, dir, "b.cpp", tidy)

	sink := &recordingSink{}
	if _, err := FormatPaths(context.Background(), []string{dir}, FormatOptions{Config: format.DefaultConfig(), Progress: sink}); err != nil {
		t.Fatalf("format: %v", err)
	}

	queued, done := 0, 0
	for _, ev := range sink.events {
		switch ev.Status {
		case StatusQueued:
			queued++
		case StatusDone:
			done++
		case StatusError:
			t.Fatalf("unexpected error event %+v", ev)
		}
	}
	if queued != 2 || done != 2 {
		t.Fatalf("queued=%d done=%d", queued, done)
	}
}

func TestFormatPathsPerFileError(t *testing.T) {
	if os.Getuid() == 0 {
		t.Skip("root ignores file permissions")
	}
	dir := t.TempDir()
	path := writeSource(t, dir, "locked.cpp", messy)
	if err := os.Chmod(path, 0o000); err != nil {
		t.Fatal(err)
	}
	defer os.Chmod(path, 0o600)

	sink := &recordingSink{}
	results, err := FormatPaths(context.Background(), []string{dir}, FormatOptions{Config: format.DefaultConfig(), Progress: sink})
	if err != nil {
		t.Fatalf("per-file failures must not abort the batch: %v", err)
	}
	if results[0].Err == nil {
		t.Fatalf("expected read error")
	}
	last := sink.events[len(sink.events)-1]
	if last.Status != StatusError || last.Stage != StageRead {
		t.Fatalf("last event %+v", last)
	}
}

func TestChannelSink(t *testing.T) {
	ch := make(chan Event, 1)
	ChannelSink{Ch: ch}.OnEvent(Event{File: "a", Status: StatusDone, Elapsed: time.Millisecond})
	if ev := <-ch; ev.File != "a" {
		t.Fatalf("got %+v", ev)
	}
	ChannelSink{}.OnEvent(Event{})
}
