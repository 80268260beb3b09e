package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"cppedit/internal/format"
	"cppedit/internal/project"
	"cppedit/internal/store"
)

// loadManifest returns the manifest named by --config, or the nearest one
// above the working directory. A missing manifest yields nil.
func loadManifest(cmd *cobra.Command) (*project.Manifest, error) {
	path, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return nil, err
	}
	if path != "" {
		return project.LoadPath(path)
	}
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	m, _, err := project.Load(wd)
	return m, err
}

// formatConfig resolves the formatter settings: defaults, then the manifest,
// then --indent and --max-line-length when the command defines and sets them.
func formatConfig(cmd *cobra.Command, m *project.Manifest) (format.Config, error) {
	var overrides format.Overrides
	if m != nil {
		overrides = m.Config.Format
	}
	flags, err := formatFlagOverrides(cmd)
	if err != nil {
		return format.Config{}, err
	}
	return overrides.Merge(flags).Resolve(), nil
}

func formatFlagOverrides(cmd *cobra.Command) (format.Overrides, error) {
	var o format.Overrides
	if f := cmd.Flags().Lookup("indent"); f != nil && f.Changed {
		v, err := cmd.Flags().GetInt("indent")
		if err != nil {
			return o, err
		}
		if v < 1 {
			return o, fmt.Errorf("--indent must be at least 1, got %d", v)
		}
		o.IndentSize = format.Int(v)
	}
	if f := cmd.Flags().Lookup("max-line-length"); f != nil && f.Changed {
		v, err := cmd.Flags().GetInt("max-line-length")
		if err != nil {
			return o, err
		}
		if v < 1 {
			return o, fmt.Errorf("--max-line-length must be at least 1, got %d", v)
		}
		o.MaxLineLength = format.Int(v)
	}
	return o, nil
}

// openStore opens the buffer store: the manifest's [store].dir when set,
// otherwise the per-user data directory. [editor].font_size becomes the
// base zoom level.
func openStore(m *project.Manifest) (*store.Store, error) {
	st, err := store.Open(m.StoreDir())
	if err != nil {
		return nil, err
	}
	if m != nil && m.Config.Editor.FontSize != nil {
		st.SetBaseFontSize(*m.Config.Editor.FontSize)
	}
	return st, nil
}

// projectStore loads the manifest and opens the store it points at.
func projectStore(cmd *cobra.Command) (*store.Store, *project.Manifest, error) {
	m, err := loadManifest(cmd)
	if err != nil {
		return nil, nil, err
	}
	st, err := openStore(m)
	if err != nil {
		return nil, nil, err
	}
	return st, m, nil
}

func quietFlag(cmd *cobra.Command) bool {
	return persistentBool(cmd, "quiet")
}

// persistentBool reads a root bool flag, treating a missing flag as false.
func persistentBool(cmd *cobra.Command, name string) bool {
	v, err := cmd.Root().PersistentFlags().GetBool(name)
	return err == nil && v
}
