package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/fatih/color"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"cppedit/internal/complete"
)

var completeCmd = &cobra.Command{
	Use:   "complete [prefix]",
	Short: "List completion candidates for a prefix",
	Long: `List the snippets, keywords and standard headers whose label starts with
prefix (case-insensitive). Without a prefix every candidate is listed.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runComplete,
}

func init() {
	completeCmd.Flags().String("format", "text", "output format (text|json|yaml)")
	completeCmd.Flags().Bool("insert", false, "show the text each candidate inserts (text output)")
	completeCmd.Flags().Bool("copy", false, "copy the first candidate's insert text to the clipboard")
}

// completeWrapWidth is the column at which detail text wraps.
const completeWrapWidth = 72

func runComplete(cmd *cobra.Command, args []string) error {
	outputFormat, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	showInsert, err := cmd.Flags().GetBool("insert")
	if err != nil {
		return err
	}
	copyFirst, err := cmd.Flags().GetBool("copy")
	if err != nil {
		return err
	}

	prefix := ""
	if len(args) == 1 {
		prefix = args[0]
	}
	candidates := complete.Collect(prefix)

	out := cmd.OutOrStdout()
	switch outputFormat {
	case "text":
		renderCompleteText(out, candidates, showInsert)
	case "json":
		if err := renderCompleteJSON(out, candidates); err != nil {
			return err
		}
	case "yaml":
		if err := renderCompleteYAML(out, candidates); err != nil {
			return err
		}
	default:
		return fmt.Errorf("complete: unsupported output format %q", outputFormat)
	}

	if copyFirst {
		if len(candidates) == 0 {
			return fmt.Errorf("complete: nothing matches %q", prefix)
		}
		if err := clipboard.WriteAll(candidates[0].InsertText); err != nil {
			return fmt.Errorf("complete: failed to copy to clipboard: %w", err)
		}
		if !quietFlag(cmd) {
			fmt.Fprintf(cmd.ErrOrStderr(), "copied %s to clipboard\n", candidates[0].Label)
		}
	}
	return nil
}

func renderCompleteText(out io.Writer, candidates []complete.Candidate, showInsert bool) {
	if len(candidates) == 0 {
		fmt.Fprintln(out, "no completions")
		return
	}
	labelWidth := 0
	for _, c := range candidates {
		labelWidth = max(labelWidth, len(c.Label))
	}
	label := color.New(color.Bold)
	kind := color.New(color.FgCyan)
	pad := labelWidth + len("snippet") + 4

	for _, c := range candidates {
		label.Fprintf(out, "%-*s", labelWidth, c.Label)
		kind.Fprintf(out, "  %-7s", c.Kind)
		detail := strings.TrimSpace(indent.String(wordwrap.String(c.Summary(), max(completeWrapWidth-pad, 20)), uint(pad)))
		if detail != "" {
			fmt.Fprintf(out, "  %s", detail)
		}
		fmt.Fprintln(out)
		if showInsert {
			fmt.Fprintln(out, indent.String(c.InsertText, 4))
		}
	}
}

func renderCompleteJSON(out io.Writer, candidates []complete.Candidate) error {
	if candidates == nil {
		candidates = []complete.Candidate{}
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(candidates)
}

func renderCompleteYAML(out io.Writer, candidates []complete.Candidate) error {
	if candidates == nil {
		candidates = []complete.Candidate{}
	}
	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(candidates); err != nil {
		return err
	}
	return enc.Close()
}
