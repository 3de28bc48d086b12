package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/quietloop/sona/internal/app"
	"github.com/quietloop/sona/internal/catalog"
	"github.com/quietloop/sona/internal/config"
	"github.com/quietloop/sona/internal/domain"
	"github.com/quietloop/sona/internal/log"
	"github.com/quietloop/sona/internal/player"
	"github.com/quietloop/sona/internal/store"
	"github.com/quietloop/sona/internal/tui"
	"golang.org/x/term"
)

// Version is set at build time via -ldflags
var Version = "dev"

func main() {
	var showVersion bool
	flag.BoolVar(&showVersion, "v", false, "print version")
	flag.BoolVar(&showVersion, "version", false, "print version")
	flag.Parse()

	if showVersion {
		fmt.Printf("sona %s\n", Version)
		return
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("sona is an interactive application and needs a terminal")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := log.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = log.NullLogger()
	}
	slog.SetDefault(logger)

	logger.Info("starting sona", "version", Version)

	// Load the content library, falling back to the built-in sample
	var cat *catalog.Catalog
	if cfg.Library.Path != "" {
		cat, err = catalog.LoadFile(cfg.Library.Path)
		if err != nil {
			return fmt.Errorf("failed to load library %s: %w", cfg.Library.Path, err)
		}
		logger.Info("loaded library", "path", cfg.Library.Path, "courses", len(cat.Courses()))
	} else {
		cat = catalog.Sample()
		logger.Info("using built-in sample library")
	}

	userStore, err := store.NewUserStore(cfg.Data.Dir)
	if err != nil {
		return fmt.Errorf("failed to open user data store: %w", err)
	}
	defer userStore.Close()

	appStore := app.NewStore(cat, userStore, logger)

	// Configured identity takes precedence over the persisted one
	if cfg.Account.UserID != "" {
		appStore.Login(&domain.User{
			ID:   cfg.Account.UserID,
			Name: cfg.Account.Name,
			Plan: domain.ParsePlan(cfg.Account.Plan),
		})
	}

	launcher := player.NewLauncher(cfg.Player.Command, cfg.Player.Args, logger)

	model := tui.NewModel(appStore, launcher)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	logger.Info("starting TUI")

	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	logger.Info("shutting down")
	return nil
}
