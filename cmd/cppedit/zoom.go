package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"cppedit/internal/store"
)

var zoomCmd = &cobra.Command{
	Use:       "zoom <in|out|reset|show>",
	Short:     "Change the editor font size",
	Long:      fmt.Sprintf("Step the persisted editor font size by one point, clamped to %d..%d.", store.MinFontSize, store.MaxFontSize),
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"in", "out", "reset", "show"},
	RunE:      runZoom,
}

func runZoom(cmd *cobra.Command, args []string) error {
	st, _, err := projectStore(cmd)
	if err != nil {
		return err
	}

	var size int
	switch args[0] {
	case "in":
		size, err = st.ZoomIn()
	case "out":
		size, err = st.ZoomOut()
	case "reset":
		size, err = st.ResetZoom()
	default:
		var settings store.Settings
		settings, err = st.LoadSettings()
		size = settings.FontSize
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "font size: %dpx\n", size)
	return nil
}
