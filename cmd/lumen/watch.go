package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/lumen-tui/lumen/internal/album"
	"github.com/lumen-tui/lumen/internal/app"
	"github.com/lumen-tui/lumen/internal/logging"
	"github.com/lumen-tui/lumen/internal/watch"
)

func watchCmd() *cobra.Command {
	var settleSeconds int

	cmd := &cobra.Command{
		Use:   "watch [DIR]",
		Short: "Auto-upload new images from a directory",
		Long: `Watch a directory and upload every image file that appears in it.
The directory defaults to watch_dir from the config file.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logging.InitConsole()

			cfg, err := app.Setup(appOptions())
			if err != nil {
				return err
			}
			dir := cfg.WatchDir
			if len(args) > 0 {
				dir = args[0]
			}
			if dir == "" {
				return fmt.Errorf("no directory given and watch_dir is not configured")
			}

			client, err := album.NewClient(cfg.ServerURL)
			if err != nil {
				return err
			}

			watcher, err := watch.New(client, dir, time.Duration(settleSeconds)*time.Second)
			if err != nil {
				return err
			}

			ctx, cancel := signalContext()
			defer cancel()
			if err := watcher.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&settleSeconds, "settle", 0, "seconds a file must be quiet before uploading")
	return cmd
}
