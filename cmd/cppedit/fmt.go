package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"fortio.org/safecast"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"cppedit/internal/driver"
	"cppedit/internal/format"
	"cppedit/internal/observ"
	"cppedit/internal/trace"
)

var fmtCmd = &cobra.Command{
	Use:   "fmt [flags] <path> [path...]",
	Short: "Format C++ source files",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runFmt,
}

func init() {
	fmtCmd.Flags().Bool("check", false, "check if files are properly formatted")
	fmtCmd.Flags().String("format", "text", "output format (text|json)")
	fmtCmd.Flags().Bool("stdout", false, "print formatted code to stdout instead of rewriting files")
	fmtCmd.Flags().Int("indent", format.DefaultConfig().IndentSize, "spaces per indentation level")
	fmtCmd.Flags().Int("max-line-length", format.DefaultConfig().MaxLineLength, "column limit for long-line warnings")
	fmtCmd.Flags().Uint("jobs", 0, "max parallel files (0 = GOMAXPROCS)")
	fmtCmd.Flags().String("ui", "auto", "progress UI (auto|on|off)")
	fmtCmd.Flags().Bool("watch", false, "keep running and reformat files as they change")
}

var (
	errFmtFailed  = errors.New("fmt: failed to format some files")
	errFmtChanges = errors.New("fmt: formatting changes required")
)

func runFmt(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	check, err := cmd.Flags().GetBool("check")
	if err != nil {
		return err
	}
	outputFormat, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	writeToStdout, err := cmd.Flags().GetBool("stdout")
	if err != nil {
		return err
	}
	jobs, err := cmd.Flags().GetUint("jobs")
	if err != nil {
		return err
	}
	uiFlag, err := cmd.Flags().GetString("ui")
	if err != nil {
		return err
	}
	watch, err := cmd.Flags().GetBool("watch")
	if err != nil {
		return err
	}

	if writeToStdout && check {
		return fmt.Errorf("fmt: --stdout cannot be used with --check")
	}
	if writeToStdout && outputFormat != "text" {
		return fmt.Errorf("fmt: --stdout is only supported with text output")
	}
	if watch && outputFormat == "json" {
		return fmt.Errorf("fmt: --watch is only supported with text output")
	}
	if outputFormat != "text" && outputFormat != "json" {
		return fmt.Errorf("fmt: unsupported output format %q", outputFormat)
	}
	useUI, err := progressUI(uiFlag, outputFormat, writeToStdout, watch, isTerminal(os.Stdout))
	if err != nil {
		return err
	}
	jobCount, err := safecast.Conv[int](jobs)
	if err != nil {
		return fmt.Errorf("fmt: --jobs: %w", err)
	}

	timer := observ.NewTimer()
	endConfig := timer.Start("config")
	manifest, err := loadManifest(cmd)
	if err != nil {
		return err
	}
	cfg, err := formatConfig(cmd, manifest)
	if err != nil {
		return err
	}
	if manifest != nil {
		endConfig(manifest.Path)
	} else {
		endConfig("defaults")
	}
	quiet := quietFlag(cmd)

	opts := driver.FormatOptions{
		Check:  check,
		Stdout: writeToStdout,
		Config: cfg,
		Jobs:   jobCount,
	}

	ctx, span := trace.Start(cmd.Context(), trace.ScopeCommand, "fmt")
	defer span.End("")

	endFormat := timer.Start("format")
	var results []driver.FormatResult
	if useUI {
		files, collectErr := driver.CollectSources(ctx, args)
		if collectErr != nil {
			span.Fail(collectErr)
			return collectErr
		}
		results, err = runFormatWithUI(ctx, "formatting", files, opts)
	} else {
		results, err = driver.FormatPaths(ctx, args, opts)
	}
	if err != nil {
		span.Fail(err)
		return err
	}
	endFormat(fmt.Sprintf("%d files", len(results)))

	endRender := timer.Start("render")
	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()
	r := &fmtReport{check: check, quiet: quiet, maxLine: cfg.MaxLineLength}
	switch {
	case writeToStdout:
		r.renderStdout(out, errOut, results)
	case outputFormat == "json":
		if err := r.renderJSON(out, results); err != nil {
			return err
		}
	default:
		r.renderText(out, errOut, results)
	}
	endRender("")
	if persistentBool(cmd, "timings") {
		if err := timer.WriteSummary(errOut); err != nil {
			return err
		}
	}

	if watch {
		return runFmtWatch(cmd, args, opts, r)
	}
	return r.err()
}

// progressUI parses --ui and decides whether the progress TUI runs. auto
// follows the terminal. JSON, --stdout and --watch runs never get the TUI,
// even with --ui on, since their output shares stdout with it.
func progressUI(value, outputFormat string, stdout, watch, tty bool) (bool, error) {
	var on bool
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		on = tty
	case "on":
		on = true
	case "off":
		on = false
	default:
		return false, fmt.Errorf("invalid --ui value %q (expected auto|on|off)", value)
	}
	if outputFormat != "text" || stdout || watch {
		return false, nil
	}
	return on, nil
}

// runFmtWatch reformats on change until SIGINT or SIGTERM.
func runFmtWatch(cmd *cobra.Command, args []string, opts driver.FormatOptions, r *fmtReport) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()
	if !r.quiet {
		fmt.Fprintln(errOut, "watching for changes (ctrl+c to stop)")
	}
	return driver.Watch(ctx, args, opts, func(res driver.FormatResult) {
		if opts.Stdout {
			r.renderStdout(out, errOut, []driver.FormatResult{res})
			return
		}
		r.renderText(out, errOut, []driver.FormatResult{res})
	})
}

// fmtReport renders results and remembers what the exit status should be.
type fmtReport struct {
	check   bool
	quiet   bool
	maxLine int

	hasErrors  bool
	hasChanges bool
}

func (r *fmtReport) err() error {
	if r.hasErrors {
		return errFmtFailed
	}
	if r.check && r.hasChanges {
		return errFmtChanges
	}
	return nil
}

func (r *fmtReport) renderStdout(out, errOut io.Writer, results []driver.FormatResult) {
	for _, res := range results {
		if res.Err != nil {
			r.hasErrors = true
			fmt.Fprintf(errOut, "fmt: %s: %v\n", res.Path, res.Err)
			continue
		}
		_, _ = out.Write(res.Formatted)
	}
}

func (r *fmtReport) renderText(out, errOut io.Writer, results []driver.FormatResult) {
	warn := color.New(color.FgYellow)
	for _, res := range results {
		if res.Err != nil {
			r.hasErrors = true
			fmt.Fprintf(errOut, "fmt: %s: %v\n", res.Path, res.Err)
			continue
		}

		if r.check {
			if res.Changed {
				r.hasChanges = true
				if !r.quiet {
					fmt.Fprintln(out, res.Path)
				}
			}
			if !r.quiet {
				for _, ll := range res.LongLines {
					warn.Fprintf(errOut, "%s:%d: line is %d columns wide (max %d)\n", res.Path, ll.Line, ll.Width, r.maxLine)
				}
			}
			continue
		}

		if res.Changed && !r.quiet {
			fmt.Fprintf(out, "reformatted %s\n", res.Path)
		}
	}
}

type fmtJSONResult struct {
	Path      string            `json:"path"`
	Changed   bool              `json:"changed"`
	Error     string            `json:"error,omitempty"`
	CheckRun  bool              `json:"check"`
	LongLines []format.LongLine `json:"long_lines,omitempty"`
}

func (r *fmtReport) renderJSON(out io.Writer, results []driver.FormatResult) error {
	payload := make([]fmtJSONResult, 0, len(results))
	for _, res := range results {
		jr := fmtJSONResult{Path: res.Path, Changed: res.Changed, CheckRun: r.check, LongLines: res.LongLines}
		if res.Err != nil {
			r.hasErrors = true
			jr.Error = res.Err.Error()
		}
		if res.Changed {
			r.hasChanges = true
		}
		payload = append(payload, jr)
	}

	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(payload)
}
