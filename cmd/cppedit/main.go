package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"cppedit/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "cppedit",
	Short: "C++ editor toolkit: formatter, completion, buffers and language server",
	Long: `cppedit formats C++ sources, looks up completions, keeps named editor
buffers and serves the same features to editors over the language server protocol`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: rootPreRun,
}

// Cleanups registered by rootPreRun, run after the command returns.
var (
	traceCleanup   = func() {}
	profileCleanup = func() {}
)

// main registers subcommands and persistent flags and runs the root command.
// Any returned error exits with status 1.
func main() {
	// Устанавливаем версию для автоматического флага --version
	rootCmd.Version = version.Version

	rootCmd.AddCommand(fmtCmd)
	rootCmd.AddCommand(completeCmd)
	rootCmd.AddCommand(bufferCmd)
	rootCmd.AddCommand(zoomCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(lspCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().String("config", "", "project manifest (default: nearest cppedit.toml or cppedit.yaml)")
	rootCmd.PersistentFlags().String("trace", "", "trace output file (\"-\" for stderr)")
	rootCmd.PersistentFlags().String("trace-level", "off", "trace level (off|error|command|file|debug)")
	rootCmd.PersistentFlags().String("trace-format", "auto", "trace format (auto|text|ndjson)")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().String("cpu-profile", "", "write a CPU profile to file")
	rootCmd.PersistentFlags().String("mem-profile", "", "write a heap profile to file on exit")
	rootCmd.PersistentFlags().String("runtime-trace", "", "write a Go runtime execution trace to file")

	err := rootCmd.Execute()
	profileCleanup()
	traceCleanup()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cppedit: %v\n", err)
		os.Exit(1)
	}
}

func rootPreRun(cmd *cobra.Command, _ []string) error {
	colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return err
	}
	useColor, err := resolveColor(colorFlag, isTerminal(os.Stdout))
	if err != nil {
		return err
	}
	color.NoColor = !useColor

	cleanup, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	traceCleanup = cleanup

	stopProfiling, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	profileCleanup = stopProfiling
	return nil
}

// resolveColor maps the --color flag to a decision. auto follows the terminal.
func resolveColor(flag string, tty bool) (bool, error) {
	switch flag {
	case "on":
		return true, nil
	case "off":
		return false, nil
	case "auto", "":
		return tty, nil
	default:
		return false, fmt.Errorf("invalid --color value %q (expected auto|on|off)", flag)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
