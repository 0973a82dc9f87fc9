package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lumen-tui/lumen/internal/album"
	"github.com/lumen-tui/lumen/internal/logging"
)

// settingToggles maps command-line names to settings patch builders.
var settingToggles = map[string]func(value bool) album.Settings{
	"analysis":        func(v bool) album.Settings { return album.Settings{QwenAnalysisEnabled: &v} },
	"enhanced-search": func(v bool) album.Settings { return album.Settings{UseEnhancedSearch: &v} },
	"clip":            func(v bool) album.Settings { return album.Settings{ClipEmbeddingEnabled: &v} },
	"faces":           func(v bool) album.Settings { return album.Settings{FaceRecognition: &v} },
	"faces-on-upload": func(v bool) album.Settings { return album.Settings{FaceUploadEnabled: &v} },
	"clustering":      func(v bool) album.Settings { return album.Settings{FaceClusteringEnabled: &v} },
}

func settingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change server settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			logging.InitConsole()
			client, err := newClient()
			if err != nil {
				return err
			}
			settings, err := client.Settings(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%-18s %s\n", "analysis", boolWord(settings.QwenAnalysisEnabled))
			fmt.Fprintf(out, "%-18s %s\n", "enhanced-search", boolWord(settings.UseEnhancedSearch))
			fmt.Fprintf(out, "%-18s %s\n", "clip", boolWord(settings.ClipEmbeddingEnabled))
			fmt.Fprintf(out, "%-18s %s\n", "faces", boolWord(settings.FaceRecognition))
			fmt.Fprintf(out, "%-18s %s\n", "faces-on-upload", boolWord(settings.FaceUploadEnabled))
			fmt.Fprintf(out, "%-18s %s\n", "clustering", boolWord(settings.FaceClusteringEnabled))
			if settings.QwenModelName != nil && *settings.QwenModelName != "" {
				fmt.Fprintf(out, "%-18s %s\n", "model", *settings.QwenModelName)
			}
			if settings.FaceClusterThreshold != nil {
				fmt.Fprintf(out, "%-18s %.2f\n", "cluster-threshold", *settings.FaceClusterThreshold)
			}
			return nil
		},
	}
	cmd.AddCommand(settingsSetCmd())
	return cmd
}

func settingsSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set NAME on|off",
		Short: "Enable or disable a server feature",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			logging.InitConsole()
			build, ok := settingToggles[args[0]]
			if !ok {
				return fmt.Errorf("unknown setting %q", args[0])
			}
			var value bool
			switch args[1] {
			case "on", "true":
				value = true
			case "off", "false":
				value = false
			default:
				return fmt.Errorf("value must be on or off, got %q", args[1])
			}

			client, err := newClient()
			if err != nil {
				return err
			}
			response, err := client.SaveSettings(cmd.Context(), build(value))
			if err != nil {
				return err
			}
			if response.Message != "" {
				fmt.Fprintln(cmd.OutOrStdout(), response.Message)
			}
			return nil
		},
	}
}

func boolWord(b *bool) string {
	if b != nil && *b {
		return "on"
	}
	return "off"
}
