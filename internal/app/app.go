package app

import (
	"github.com/arjunmalhotra/granola-sync/config"
	"github.com/arjunmalhotra/granola-sync/internal/domain/meeting/usecases"
)

type App struct {
	Sync *usecases.Sync
	List *usecases.List
}

func New(cfg *config.Config) *App {
	return &App{
		Sync: &usecases.Sync{
			CachePath:      cfg.CachePath,
			VaultDir:       cfg.VaultDir,
			LedgerPath:     cfg.LedgerPath,
			TranscriptsDir: cfg.TranscriptsDir,
		},
		List: &usecases.List{
			CachePath: cfg.CachePath,
		},
	}
}
