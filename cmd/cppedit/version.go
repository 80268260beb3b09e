package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"cppedit/internal/version"
)

type versionInfo struct {
	Version    string
	GitCommit  string
	GitMessage string
	BuildDate  string
}

type versionOptions struct {
	format      string
	showHash    bool
	showMessage bool
	showDate    bool
}

type versionPayload struct {
	Tool       string `json:"tool"`
	Version    string `json:"version"`
	Tagline    string `json:"tagline"`
	GitCommit  string `json:"git_commit,omitempty"`
	GitMessage string `json:"git_message,omitempty"`
	BuildDate  string `json:"build_date,omitempty"`
}

const versionTagline = "braces in their place"

func init() {
	versionCmd.Flags().Bool("hash", false, "include git commit hash")
	versionCmd.Flags().Bool("message", false, "include git commit message")
	versionCmd.Flags().Bool("date", false, "include build timestamp")
	versionCmd.Flags().Bool("full", false, "show every recorded bit of build metadata")
	versionCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show cppedit build information",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := readVersionOptions(cmd)
		if err != nil {
			return err
		}
		info := collectVersionInfo()
		if opts.format == "json" {
			return renderVersionJSON(cmd.OutOrStdout(), info, opts)
		}
		renderVersionPretty(cmd.OutOrStdout(), info, opts)
		return nil
	},
}

func readVersionOptions(cmd *cobra.Command) (versionOptions, error) {
	var opts versionOptions
	formatFlag, err := cmd.Flags().GetString("format")
	if err != nil {
		return opts, err
	}
	full, err := cmd.Flags().GetBool("full")
	if err != nil {
		return opts, err
	}
	if opts.showHash, err = cmd.Flags().GetBool("hash"); err != nil {
		return opts, err
	}
	if opts.showMessage, err = cmd.Flags().GetBool("message"); err != nil {
		return opts, err
	}
	if opts.showDate, err = cmd.Flags().GetBool("date"); err != nil {
		return opts, err
	}
	opts.showHash = opts.showHash || full
	opts.showMessage = opts.showMessage || full
	opts.showDate = opts.showDate || full

	opts.format = strings.ToLower(formatFlag)
	switch opts.format {
	case "pretty", "json":
	default:
		return opts, fmt.Errorf("unsupported format %q (must be pretty or json)", formatFlag)
	}
	return opts, nil
}

func collectVersionInfo() versionInfo {
	v := strings.TrimSpace(version.Version)
	if v == "" {
		v = "dev"
	}
	return versionInfo{
		Version:    v,
		GitCommit:  strings.TrimSpace(version.GitCommit),
		GitMessage: strings.TrimSpace(version.GitMessage),
		BuildDate:  strings.TrimSpace(version.BuildDate),
	}
}

func renderVersionPretty(out io.Writer, info versionInfo, opts versionOptions) {
	fmt.Fprintf(out, "cppedit %s: %s\n", version.Colored(info.Version), versionTagline)
	if opts.showHash {
		fmt.Fprintf(out, "commit:  %s\n", valueOrUnknown(info.GitCommit))
	}
	if opts.showMessage {
		fmt.Fprintf(out, "message: %s\n", valueOrUnknown(info.GitMessage))
	}
	if opts.showDate {
		fmt.Fprintf(out, "built:   %s\n", valueOrUnknown(info.BuildDate))
	}
	if !opts.showHash && !opts.showMessage && !opts.showDate {
		fmt.Fprintln(out, "set --hash, --message, --date, or --full for more build trivia")
	}
}

func renderVersionJSON(out io.Writer, info versionInfo, opts versionOptions) error {
	payload := versionPayload{
		Tool:    "cppedit",
		Version: info.Version,
		Tagline: versionTagline,
	}
	if opts.showHash {
		payload.GitCommit = valueOrUnknown(info.GitCommit)
	}
	if opts.showMessage {
		payload.GitMessage = valueOrUnknown(info.GitMessage)
	}
	if opts.showDate {
		payload.BuildDate = valueOrUnknown(info.BuildDate)
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}

func valueOrUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
