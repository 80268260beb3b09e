package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"cppedit/internal/project"
	"cppedit/internal/store"
)

const (
	manifestFile = "cppedit.toml"
	mainFile     = "main.cpp"
)

var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Initialize a new cppedit project",
	Long: `Initialize a project by writing a manifest (cppedit.toml) with the default
formatter and editor settings, and a hello-world main.cpp. If [path] is omitted,
initializes the current directory. A missing directory is created.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	wd, err := os.Getwd()
	if err != nil {
		return err
	}
	target := wd
	if len(args) == 1 && args[0] != "." {
		target = args[0]
		if !filepath.IsAbs(target) {
			target = filepath.Join(wd, target)
		}
	}
	created, err := initProject(target)
	if err != nil {
		return err
	}

	rel := target
	if r, err := filepath.Rel(wd, target); err == nil {
		rel = r
	}
	printInitSummary(cmd.OutOrStdout(), rel, created)
	return nil
}

// initProject writes the manifest and entry file into target. It refuses to
// touch a directory that already has any recognised manifest, and keeps an
// existing main.cpp. created reports whether main.cpp was written.
func initProject(target string) (created bool, err error) {
	if st, err := os.Stat(target); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return false, err
		}
		if err := os.MkdirAll(target, 0o755); err != nil {
			return false, fmt.Errorf("failed to create directory %q: %w", target, err)
		}
	} else if !st.IsDir() {
		return false, fmt.Errorf("%q is not a directory", target)
	}

	for _, name := range project.ManifestNames {
		existing := filepath.Join(target, name)
		if _, err := os.Stat(existing); err == nil {
			return false, fmt.Errorf("project already initialized: %s exists", existing)
		}
	}

	var manifest bytes.Buffer
	manifest.WriteString("# cppedit project manifest\n\n")
	if err := project.Encode(&manifest, project.Defaults()); err != nil {
		return false, fmt.Errorf("failed to encode manifest: %w", err)
	}
	if err := os.WriteFile(filepath.Join(target, manifestFile), manifest.Bytes(), 0o644); err != nil {
		return false, fmt.Errorf("failed to write manifest: %w", err)
	}

	mainPath := filepath.Join(target, mainFile)
	if _, err := os.Stat(mainPath); errors.Is(err, os.ErrNotExist) {
		if err := os.WriteFile(mainPath, []byte(store.DefaultCode+"\n"), 0o644); err != nil {
			return false, fmt.Errorf("failed to write %s: %w", mainFile, err)
		}
		created = true
	}
	return created, nil
}

func printInitSummary(out io.Writer, dir string, createdMain bool) {
	fmt.Fprintf(out, "Initialized cppedit project in %s\n", dir)
	fmt.Fprintf(out, "  - %s\n", manifestFile)
	if createdMain {
		fmt.Fprintf(out, "  - %s\n", mainFile)
	} else {
		fmt.Fprintf(out, "  - %s (existing)\n", mainFile)
	}
}
