package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lumen-tui/lumen/internal/album"
	"github.com/lumen-tui/lumen/internal/logging"
)

func jobsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "jobs",
		Short: "Inspect and control batch jobs",
		RunE: func(cmd *cobra.Command, args []string) error {
			logging.InitConsole()
			client, err := newClient()
			if err != nil {
				return err
			}
			for _, kind := range album.JobKinds() {
				status, err := client.JobStatus(cmd.Context(), kind)
				if err != nil {
					fmt.Fprintf(cmd.OutOrStdout(), "%-18s error: %v\n", kind.Label(), err)
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%-18s %s\n", kind.Label(), describeStatus(status))
			}
			return nil
		},
	}
	cmd.AddCommand(jobActionCmd("start", "Start a batch job"))
	cmd.AddCommand(jobActionCmd("stop", "Stop a batch job"))
	return cmd
}

func jobActionCmd(action, short string) *cobra.Command {
	return &cobra.Command{
		Use:       fmt.Sprintf("%s KIND", action),
		Short:     short,
		Args:      cobra.ExactArgs(1),
		ValidArgs: jobKindNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			logging.InitConsole()
			kind := album.JobKind(args[0])
			if !kind.Valid() {
				return fmt.Errorf("unknown job kind %q (one of %v)", args[0], jobKindNames())
			}
			client, err := newClient()
			if err != nil {
				return err
			}

			var result *album.JobActionResult
			if action == "start" {
				result, err = client.StartJob(cmd.Context(), kind)
			} else {
				result, err = client.StopJob(cmd.Context(), kind)
			}
			if err != nil {
				return err
			}
			// Only the start endpoint reports success; stop replies with a
			// bare message once the job has been asked to wind down.
			if action == "start" && !result.Success {
				return fmt.Errorf("start refused: %s", result.Message)
			}
			if result.Message != "" {
				fmt.Fprintln(cmd.OutOrStdout(), result.Message)
			}
			return nil
		},
	}
}

func describeStatus(status *album.JobStatus) string {
	if status.IsRunning {
		line := fmt.Sprintf("running %d/%d (%.0f%%)", status.ProcessedCount, status.Total(), status.Percent())
		if current := status.CurrentLabel(); current != "" {
			line += " " + current
		}
		return line
	}
	if total := status.Total(); total > 0 {
		return fmt.Sprintf("idle, last run processed %d of %d", status.ProcessedCount, total)
	}
	return "idle"
}

func jobKindNames() []string {
	kinds := album.JobKinds()
	names := make([]string, len(kinds))
	for i, kind := range kinds {
		names[i] = string(kind)
	}
	return names
}
