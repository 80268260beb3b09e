package project

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"cppedit/internal/format"
	"cppedit/internal/store"
)

// ErrInvalid marks a manifest that parsed but failed validation.
var ErrInvalid = errors.New("invalid manifest")

// File mirrors the on-disk manifest layout.
type File struct {
	Format format.Overrides `toml:"format" yaml:"format"`
	Editor EditorConfig     `toml:"editor" yaml:"editor"`
	Store  StoreConfig      `toml:"store" yaml:"store"`
}

// EditorConfig holds editor presentation settings.
type EditorConfig struct {
	FontSize *int `toml:"font_size" yaml:"font_size"`
}

// StoreConfig locates the buffer store.
type StoreConfig struct {
	Dir string `toml:"dir,omitempty" yaml:"dir,omitempty"`
}

// Manifest is a loaded project manifest.
type Manifest struct {
	Path   string
	Root   string
	Config File
}

// Defaults returns a fully populated manifest, as written by `cppedit init`.
func Defaults() File {
	cfg := format.DefaultConfig()
	return File{
		Format: format.Overrides{
			IndentSize:            format.Int(cfg.IndentSize),
			MaxLineLength:         format.Int(cfg.MaxLineLength),
			BreakBeforeBrace:      format.Bool(cfg.BreakBeforeBrace),
			SpaceBeforeParens:     format.Bool(cfg.SpaceBeforeParens),
			SpaceInEmptyParens:    format.Bool(cfg.SpaceInEmptyParens),
			SpaceBeforeComma:      format.Bool(cfg.SpaceBeforeComma),
			SpaceAfterComma:       format.Bool(cfg.SpaceAfterComma),
			AlignTrailingComments: format.Bool(cfg.AlignTrailingComments),
		},
		Editor: EditorConfig{FontSize: format.Int(store.DefaultFontSize)},
	}
}

// Load finds the nearest manifest above startDir and parses it.
// ok is false when no manifest exists.
func Load(startDir string) (*Manifest, bool, error) {
	manifestPath, ok, err := FindManifest(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	m, err := LoadPath(manifestPath)
	if err != nil {
		return nil, true, err
	}
	return m, true, nil
}

// LoadPath parses the manifest at path.
func LoadPath(path string) (*Manifest, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %q: %w", path, err)
	}
	cfg, err := LoadFile(abs)
	if err != nil {
		return nil, err
	}
	return &Manifest{
		Path:   abs,
		Root:   filepath.Dir(abs),
		Config: cfg,
	}, nil
}

// LoadFile decodes and validates a manifest. The format is picked by extension.
func LoadFile(path string) (File, error) {
	var (
		cfg File
		err error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		cfg, err = decodeYAML(path)
	default:
		cfg, err = decodeTOML(path)
	}
	if err != nil {
		return File{}, err
	}
	if err := cfg.Validate(); err != nil {
		return File{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func decodeTOML(path string) (File, error) {
	var cfg File
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return File{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return File{}, fmt.Errorf("%s: unknown keys %s: %w", path, strings.Join(keys, ", "), ErrInvalid)
	}
	return cfg, nil
}

func decodeYAML(path string) (File, error) {
	f, err := os.Open(path)
	if err != nil {
		return File{}, err
	}
	defer f.Close()

	var cfg File
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return File{}, nil
		}
		return File{}, fmt.Errorf("%s: failed to parse YAML: %w", path, err)
	}
	return cfg, nil
}

// Validate checks value ranges.
func (f File) Validate() error {
	if v := f.Format.IndentSize; v != nil && *v < 1 {
		return fmt.Errorf("[format].indent_size must be at least 1, got %d: %w", *v, ErrInvalid)
	}
	if v := f.Format.MaxLineLength; v != nil && *v < 1 {
		return fmt.Errorf("[format].max_line_length must be at least 1, got %d: %w", *v, ErrInvalid)
	}
	if v := f.Editor.FontSize; v != nil && (*v < store.MinFontSize || *v > store.MaxFontSize) {
		return fmt.Errorf("[editor].font_size must be within %d..%d, got %d: %w", store.MinFontSize, store.MaxFontSize, *v, ErrInvalid)
	}
	return nil
}

// StoreDir returns the configured store directory resolved against the
// manifest root, or "" when none is configured.
func (m *Manifest) StoreDir() string {
	if m == nil || strings.TrimSpace(m.Config.Store.Dir) == "" {
		return ""
	}
	dir := filepath.FromSlash(strings.TrimSpace(m.Config.Store.Dir))
	if filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(m.Root, dir)
}

// Encode writes f as TOML.
func Encode(w io.Writer, f File) error {
	return toml.NewEncoder(w).Encode(f)
}
