package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/lumen-tui/lumen/internal/album"
	"github.com/lumen-tui/lumen/internal/app"
	"github.com/lumen-tui/lumen/internal/logging"
)

// newClient builds an album client from the effective configuration.
func newClient() (*album.Client, error) {
	cfg, err := app.Setup(appOptions())
	if err != nil {
		return nil, err
	}
	return album.NewClient(cfg.ServerURL)
}

func uploadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "upload FILE...",
		Short: "Upload images to the album",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logging.InitConsole()

			var files []album.FileUpload
			var open []*os.File
			defer func() {
				for _, f := range open {
					_ = f.Close()
				}
			}()
			for _, path := range args {
				if !album.IsImagePath(path) {
					fmt.Fprintf(cmd.ErrOrStderr(), "skipping %s: not an image file\n", path)
					continue
				}
				f, err := os.Open(path)
				if err != nil {
					return err
				}
				open = append(open, f)
				files = append(files, album.FileUpload{Name: filepath.Base(path), Data: f})
			}
			if len(files) == 0 {
				return fmt.Errorf("no image files to upload")
			}

			client, err := newClient()
			if err != nil {
				return err
			}
			result, err := client.UploadImages(cmd.Context(), files)
			if err != nil {
				return err
			}

			if result.Message != "" {
				fmt.Fprintln(cmd.OutOrStdout(), result.Message)
			}
			for _, name := range result.ProcessedFiles {
				fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", name)
			}
			return nil
		},
	}
}
