package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/lumen-tui/lumen/internal/app"
)

var version = "dev"

var (
	configPath  string
	serverURL   string
	pollSeconds int
)

func main() {
	os.Exit(run())
}

func run() int {
	rootCmd := &cobra.Command{
		Use:   "lumen",
		Short: "Terminal client for your AI photo album",
		Long: `Lumen browses, searches, and manages a personal AI photo album
server from the terminal. Run it without arguments for the interactive
interface, or use the subcommands for one-shot operations.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signalContext()
			defer cancel()
			return app.Run(ctx, appOptions())
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to lumen config file")
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "album server URL (overrides config)")
	rootCmd.Flags().IntVar(&pollSeconds, "poll", 0, "job poll interval in seconds")

	rootCmd.AddCommand(uploadCmd())
	rootCmd.AddCommand(jobsCmd())
	rootCmd.AddCommand(settingsCmd())
	rootCmd.AddCommand(watchCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "lumen: %v\n", err)
		return 1
	}
	return 0
}

func appOptions() app.Options {
	return app.Options{
		ConfigPath: configPath,
		ServerURL:  serverURL,
		PollEvery:  pollSeconds,
	}
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}
