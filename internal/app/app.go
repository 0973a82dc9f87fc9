package app

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"github.com/lumen-tui/lumen/internal/album"
	"github.com/lumen-tui/lumen/internal/config"
	"github.com/lumen-tui/lumen/internal/controller"
	"github.com/lumen-tui/lumen/internal/logging"
	"github.com/lumen-tui/lumen/internal/prefs"
	"github.com/lumen-tui/lumen/internal/ui"
)

// Options configure the lumen application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/lumen/prefs.toml
	ServerURL  string // overrides the configured album server
	PollEvery  int    // seconds; zero uses the configured interval
}

// Run boots the lumen TUI until the program exits or the context is
// cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := Setup(opts)
	if err != nil {
		return err
	}

	logFile, err := logging.OpenLogFile(cfg.LogPath())
	if err != nil {
		return err
	}
	defer func() { _ = logFile.Close() }()
	logging.Init(logFile)

	userPrefs, _ := prefs.Load(opts.PrefsPath)

	client, err := album.NewClient(cfg.ServerURL)
	if err != nil {
		return fmt.Errorf("init album client: %w", err)
	}

	ctrl, err := controller.New(controller.Options{
		Service:      client,
		PollInterval: cfg.PollInterval,
	})
	if err != nil {
		return err
	}
	defer ctrl.Close()

	log.Info().Str("server", cfg.ServerURL).Msg("starting ui")

	program := tea.NewProgram(
		ui.NewModel(ctrl, userPrefs),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}

// Setup loads the configuration and applies option overrides. One-shot
// commands share it with the TUI path.
func Setup(opts Options) (config.Config, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	if opts.ServerURL != "" {
		cfg.ServerURL = opts.ServerURL
	}
	if opts.PollEvery > 0 {
		cfg.PollInterval = time.Duration(opts.PollEvery) * time.Second
	}
	return cfg, nil
}
