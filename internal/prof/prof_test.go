package prof

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSessionWritesProfiles(t *testing.T) {
	dir := t.TempDir()
	opts := Options{
		Mem:   filepath.Join(dir, "mem.pprof"),
		Trace: filepath.Join(dir, "run.trace"),
	}
	s, err := Start(opts)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := s.Stop(); err != nil {
		t.Fatalf("stop: %v", err)
	}
	if err := s.Stop(); err != nil {
		t.Fatalf("second stop: %v", err)
	}
	for _, p := range []string{opts.Mem, opts.Trace} {
		info, err := os.Stat(p)
		if err != nil || info.Size() == 0 {
			t.Fatalf("%s not written: %v", p, err)
		}
	}
}

func TestStartBadPath(t *testing.T) {
	if _, err := Start(Options{CPU: filepath.Join(t.TempDir(), "missing", "cpu.pprof")}); err == nil {
		t.Fatalf("expected error for unwritable path")
	}
	var nilSession *Session
	if err := nilSession.Stop(); err != nil {
		t.Fatalf("nil session stop: %v", err)
	}
}
