package store

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

// Current schema version - increment when Buffer or Settings change shape
const schemaVersion uint16 = 1

const (
	// DefaultBuffer is the buffer used when no name is given.
	DefaultBuffer = "main"
	// DefaultExportName is the file name used by Export when none is given.
	DefaultExportName = "main.cpp"
)

// DefaultCode seeds a buffer that has never been saved.
const DefaultCode = `#include <iostream>
using namespace std;

int main() {
    cout << "Hello, Web IDE!" << endl;
    return 0;
}`

// ErrNotFound is returned for buffers that were never saved.
var ErrNotFound = errors.New("buffer not found")

// Buffer is one persisted editor buffer.
type Buffer struct {
	Schema uint16
	Name   string
	Text   string
	Saved  time.Time
}

// Store keeps buffers under <dir>/buffers and settings in <dir>/settings.mp.
// Safe for concurrent use.
type Store struct {
	mu       sync.RWMutex
	dir      string
	now      func() time.Time
	baseFont int
}

// DefaultDir returns $XDG_DATA_HOME/<app>, falling back to ~/.local/share/<app>.
func DefaultDir(app string) (string, error) {
	base := os.Getenv("XDG_DATA_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(base, app), nil
}

// Open prepares a store rooted at dir. An empty dir selects DefaultDir("cppedit").
func Open(dir string) (*Store, error) {
	if dir == "" {
		d, err := DefaultDir("cppedit")
		if err != nil {
			return nil, fmt.Errorf("store: %w", err)
		}
		dir = d
	}
	if err := os.MkdirAll(filepath.Join(dir, "buffers"), 0o755); err != nil {
		return nil, fmt.Errorf("store: %w", err)
	}
	return &Store{dir: dir, now: time.Now, baseFont: DefaultFontSize}, nil
}

// Dir returns the store root.
func (s *Store) Dir() string {
	return s.dir
}

func normalizeName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return DefaultBuffer
	}
	return name
}

func (s *Store) pathFor(name string) string {
	sum := sha256.Sum256([]byte(name))
	return filepath.Join(s.dir, "buffers", hex.EncodeToString(sum[:])+".mp")
}

// Put saves text under name, replacing any previous content.
func (s *Store) Put(name, text string) (Buffer, error) {
	name = normalizeName(name)
	buf := Buffer{
		Schema: schemaVersion,
		Name:   name,
		Text:   text,
		Saved:  s.now().UTC(),
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := writeRecord(s.pathFor(name), &buf); err != nil {
		return Buffer{}, fmt.Errorf("store: save %q: %w", name, err)
	}
	return buf, nil
}

// Get returns the buffer saved under name, or ErrNotFound.
func (s *Store) Get(name string) (Buffer, error) {
	name = normalizeName(name)
	s.mu.RLock()
	defer s.mu.RUnlock()

	var buf Buffer
	ok, err := readRecord(s.pathFor(name), &buf)
	if err != nil {
		return Buffer{}, fmt.Errorf("store: load %q: %w", name, err)
	}
	if !ok || buf.Schema != schemaVersion {
		return Buffer{}, fmt.Errorf("store: %q: %w", name, ErrNotFound)
	}
	return buf, nil
}

// Load returns the text of name, or DefaultCode when it was never saved.
func (s *Store) Load(name string) (string, error) {
	buf, err := s.Get(name)
	if errors.Is(err, ErrNotFound) {
		return DefaultCode, nil
	}
	if err != nil {
		return "", err
	}
	return buf.Text, nil
}

// List returns every saved buffer sorted by name.
func (s *Store) List() ([]Buffer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(filepath.Join(s.dir, "buffers"))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("store: list: %w", err)
	}
	out := make([]Buffer, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".mp" {
			continue
		}
		var buf Buffer
		ok, err := readRecord(filepath.Join(s.dir, "buffers", e.Name()), &buf)
		if err != nil {
			return nil, fmt.Errorf("store: list: %w", err)
		}
		if ok && buf.Schema == schemaVersion {
			out = append(out, buf)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Delete removes the buffer saved under name.
func (s *Store) Delete(name string) error {
	name = normalizeName(name)
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.pathFor(name)); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("store: %q: %w", name, ErrNotFound)
		}
		return fmt.Errorf("store: delete %q: %w", name, err)
	}
	return nil
}

// Export writes the text of name to dir/filename and returns the written path.
// Unsaved buffers export DefaultCode. filename defaults to DefaultExportName.
func (s *Store) Export(name, dir, filename string) (string, error) {
	text, err := s.Load(name)
	if err != nil {
		return "", err
	}
	if filename == "" {
		filename = DefaultExportName
	}
	if dir == "" {
		dir = "."
	}
	target := filepath.Join(dir, filepath.Base(filename))
	if err := writeFileAtomic(target, []byte(text), 0o644); err != nil {
		return "", fmt.Errorf("store: export %q: %w", normalizeName(name), err)
	}
	return target, nil
}

func writeRecord(path string, v any) error {
	data, err := msgpack.Marshal(v)
	if err != nil {
		return err
	}
	return writeFileAtomic(path, data, 0o644)
}

func readRecord(path string, out any) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer f.Close()
	dec := msgpack.NewDecoder(f)
	if err := dec.Decode(out); err != nil {
		return false, err
	}
	return true, nil
}

// writeFileAtomic writes data next to path and renames it into place.
func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(path), "tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Chmod(tmp, perm); err != nil {
		os.Remove(tmp)
		return err
	}
	// Атомарная замена
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}
