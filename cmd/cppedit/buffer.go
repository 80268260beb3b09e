package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"cppedit/internal/format"
	"cppedit/internal/highlight"
	"cppedit/internal/store"
	"cppedit/internal/trace"
)

var bufferCmd = &cobra.Command{
	Use:   "buffer",
	Short: "Manage saved editor buffers",
	Long: `Buffers are named documents kept in the cppedit store. A buffer that was
never saved reads as the default hello-world program. The name defaults to "main".`,
}

var bufferSaveCmd = &cobra.Command{
	Use:   "save [name]",
	Short: "Save a buffer from a file or stdin",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runBufferSave,
}

var bufferShowCmd = &cobra.Command{
	Use:   "show [name]",
	Short: "Print a buffer, highlighted when color is enabled",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runBufferShow,
}

var bufferFmtCmd = &cobra.Command{
	Use:   "fmt [name]",
	Short: "Format a buffer in place",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runBufferFmt,
}

var bufferExportCmd = &cobra.Command{
	Use:   "export [name]",
	Short: "Write a buffer to a file",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runBufferExport,
}

var bufferListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved buffers",
	Args:  cobra.NoArgs,
	RunE:  runBufferList,
}

var bufferRmCmd = &cobra.Command{
	Use:   "rm <name>",
	Short: "Delete a saved buffer",
	Args:  cobra.ExactArgs(1),
	RunE:  runBufferRm,
}

func init() {
	bufferSaveCmd.Flags().String("from", "-", "file to read (\"-\" for stdin)")
	bufferShowCmd.Flags().Bool("plain", false, "never highlight")
	bufferShowCmd.Flags().String("style", highlight.DefaultStyle, "highlight style")
	bufferFmtCmd.Flags().Int("indent", format.DefaultConfig().IndentSize, "spaces per indentation level")
	bufferExportCmd.Flags().String("out", ".", "directory to write into")
	bufferExportCmd.Flags().String("filename", store.DefaultExportName, "file name to write")

	bufferCmd.AddCommand(bufferSaveCmd, bufferShowCmd, bufferFmtCmd, bufferExportCmd, bufferListCmd, bufferRmCmd)
}

func bufferArg(args []string) string {
	if len(args) == 0 {
		return store.DefaultBuffer
	}
	return args[0]
}

func runBufferSave(cmd *cobra.Command, args []string) error {
	from, err := cmd.Flags().GetString("from")
	if err != nil {
		return err
	}
	var data []byte
	if from == "" || from == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(from)
	}
	if err != nil {
		return fmt.Errorf("buffer save: %w", err)
	}

	st, _, err := projectStore(cmd)
	if err != nil {
		return err
	}
	_, span := trace.Start(cmd.Context(), trace.ScopeCommand, "buffer-save")
	buf, err := st.Put(bufferArg(args), string(data))
	if err != nil {
		span.Fail(err)
		return err
	}
	span.End(buf.Name)
	if !quietFlag(cmd) {
		fmt.Fprintf(cmd.OutOrStdout(), "saved %s (%d bytes)\n", buf.Name, len(buf.Text))
	}
	return nil
}

func runBufferShow(cmd *cobra.Command, args []string) error {
	plain, err := cmd.Flags().GetBool("plain")
	if err != nil {
		return err
	}
	style, err := cmd.Flags().GetString("style")
	if err != nil {
		return err
	}
	st, _, err := projectStore(cmd)
	if err != nil {
		return err
	}
	name := bufferArg(args)
	text, err := st.Load(name)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if plain || color.NoColor {
		_, err = io.WriteString(out, ensureNewline(text))
		return err
	}
	return highlight.Write(out, name, ensureNewline(text), style)
}

func runBufferFmt(cmd *cobra.Command, args []string) error {
	st, m, err := projectStore(cmd)
	if err != nil {
		return err
	}
	cfg, err := formatConfig(cmd, m)
	if err != nil {
		return err
	}
	name := bufferArg(args)
	text, err := st.Load(name)
	if err != nil {
		return err
	}

	_, span := trace.Start(cmd.Context(), trace.ScopeCommand, "buffer-fmt")
	formatted := format.FormatConfig(text, cfg)
	if formatted == text {
		span.End("unchanged")
		if !quietFlag(cmd) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s is already formatted\n", name)
		}
		return nil
	}
	buf, err := st.Put(name, formatted)
	if err != nil {
		span.Fail(err)
		return err
	}
	span.End("changed")
	if !quietFlag(cmd) {
		fmt.Fprintf(cmd.OutOrStdout(), "reformatted %s\n", buf.Name)
	}
	return nil
}

func runBufferExport(cmd *cobra.Command, args []string) error {
	dir, err := cmd.Flags().GetString("out")
	if err != nil {
		return err
	}
	filename, err := cmd.Flags().GetString("filename")
	if err != nil {
		return err
	}
	st, _, err := projectStore(cmd)
	if err != nil {
		return err
	}
	path, err := st.Export(bufferArg(args), dir, filename)
	if err != nil {
		return err
	}
	if !quietFlag(cmd) {
		fmt.Fprintf(cmd.OutOrStdout(), "exported %s\n", path)
	}
	return nil
}

func runBufferList(cmd *cobra.Command, _ []string) error {
	st, _, err := projectStore(cmd)
	if err != nil {
		return err
	}
	buffers, err := st.List()
	if err != nil {
		return err
	}
	renderBufferList(cmd.OutOrStdout(), buffers)
	return nil
}

func renderBufferList(out io.Writer, buffers []store.Buffer) {
	if len(buffers) == 0 {
		fmt.Fprintln(out, "no saved buffers")
		return
	}
	width := 0
	for _, b := range buffers {
		width = max(width, len(b.Name))
	}
	name := color.New(color.Bold)
	for _, b := range buffers {
		name.Fprintf(out, "%-*s", width, b.Name)
		fmt.Fprintf(out, "  %5d lines  %s\n", lineCount(b.Text), b.Saved.Local().Format(time.DateTime))
	}
}

func runBufferRm(cmd *cobra.Command, args []string) error {
	st, _, err := projectStore(cmd)
	if err != nil {
		return err
	}
	if err := st.Delete(args[0]); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("buffer %q does not exist", args[0])
		}
		return err
	}
	if !quietFlag(cmd) {
		fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", args[0])
	}
	return nil
}

func lineCount(text string) int {
	if text == "" {
		return 0
	}
	return strings.Count(strings.TrimSuffix(text, "\n"), "\n") + 1
}

func ensureNewline(text string) string {
	if text == "" || strings.HasSuffix(text, "\n") {
		return text
	}
	return text + "\n"
}
