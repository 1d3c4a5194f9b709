package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/avecilla-games/memoria/internal/config"
	"github.com/avecilla-games/memoria/internal/content"
	"github.com/avecilla-games/memoria/internal/game"
	"github.com/avecilla-games/memoria/internal/logger"
	"github.com/avecilla-games/memoria/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(1)
	}
	log := logger.Setup(cfg)

	catalog, err := content.Load(cfg.DataDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load content from %s: %v\n", cfg.DataDir, err)
		os.Exit(1)
	}

	store, err := newStorage(cfg, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Storage error: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = store.Close() // Ignore error in defer
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	presenter := &teaPresenter{}
	eng := game.New(cfg, log, catalog, store, presenter)

	hasSave, err := eng.HasSave(ctx)
	if err != nil {
		logger.WithError(log, err).Warn("Could not check for a saved game")
	}

	p := tea.NewProgram(NewConsoleUI(eng, hasSave),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion())
	presenter.setProgram(p)

	go func() {
		if err := eng.Run(ctx); err != nil && ctx.Err() == nil {
			logger.WithError(log, err).Error("Engine stopped")
			p.Send(engineStoppedMsg{err: err})
		}
	}()

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		os.Exit(1)
	}
}

func newStorage(cfg *config.Config, log *slog.Logger) (storage.Storage, error) {
	switch cfg.Storage {
	case config.StorageRedis:
		rs := storage.NewRedisStorage(cfg.RedisURL, cfg.SaveSlot, log)
		if err := rs.WaitForConnection(context.Background()); err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		return rs, nil
	default:
		return storage.NewFileStorage(cfg.SaveDir, log)
	}
}
