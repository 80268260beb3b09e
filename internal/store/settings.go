package store

import (
	"fmt"
	"path/filepath"
)

// Font size bounds for the editor zoom.
const (
	DefaultFontSize = 14
	MinFontSize     = 8
	MaxFontSize     = 30
)

// Settings holds persisted presentation preferences.
type Settings struct {
	Schema   uint16
	FontSize int
}

// ClampFontSize limits size to [MinFontSize, MaxFontSize].
func ClampFontSize(size int) int {
	return min(max(size, MinFontSize), MaxFontSize)
}

// SetBaseFontSize changes the size used before the first zoom and by
// ResetZoom. The value is clamped.
func (s *Store) SetBaseFontSize(size int) {
	s.mu.Lock()
	s.baseFont = ClampFontSize(size)
	s.mu.Unlock()
}

func (s *Store) settingsPath() string {
	return filepath.Join(s.dir, "settings.mp")
}

// LoadSettings returns the saved settings, or defaults when none exist.
func (s *Store) LoadSettings() (Settings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadSettings()
}

// SaveSettings persists st with its font size clamped.
func (s *Store) SaveSettings(st Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveSettings(st)
}

// ZoomIn grows the font size by one step and returns the new size.
func (s *Store) ZoomIn() (int, error) {
	return s.zoom(func(size int) int { return size + 1 })
}

// ZoomOut shrinks the font size by one step and returns the new size.
func (s *Store) ZoomOut() (int, error) {
	return s.zoom(func(size int) int { return size - 1 })
}

// ResetZoom restores the base font size (DefaultFontSize unless changed with
// SetBaseFontSize).
func (s *Store) ResetZoom() (int, error) {
	return s.zoom(func(int) int { return s.baseFont })
}

// zoom applies step to the stored size. The whole read-modify-write runs
// under the write lock.
func (s *Store) zoom(step func(int) int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.loadSettings()
	if err != nil {
		return 0, err
	}
	st.FontSize = ClampFontSize(step(st.FontSize))
	if err := s.saveSettings(st); err != nil {
		return 0, err
	}
	return st.FontSize, nil
}

// loadSettings and saveSettings expect s.mu to be held.
func (s *Store) loadSettings() (Settings, error) {
	var st Settings
	ok, err := readRecord(s.settingsPath(), &st)
	if err != nil {
		return Settings{}, fmt.Errorf("store: settings: %w", err)
	}
	if !ok || st.Schema != schemaVersion || st.FontSize == 0 {
		return Settings{Schema: schemaVersion, FontSize: s.baseFont}, nil
	}
	st.FontSize = ClampFontSize(st.FontSize)
	return st, nil
}

func (s *Store) saveSettings(st Settings) error {
	st.Schema = schemaVersion
	st.FontSize = ClampFontSize(st.FontSize)
	if err := writeRecord(s.settingsPath(), &st); err != nil {
		return fmt.Errorf("store: settings: %w", err)
	}
	return nil
}
