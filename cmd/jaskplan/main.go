package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/jaskplan/internal/config"
	"github.com/jask/jaskplan/internal/database"
	"github.com/jask/jaskplan/internal/database/repository"
	"github.com/jask/jaskplan/internal/service"
	"github.com/jask/jaskplan/internal/tui"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		log.Fatalf("mkdir db dir: %v", err)
	}

	if err := database.RunMigrations(cfg.Database.Path, "internal/database/migrations"); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	if err := database.SeedDefaults(ctx, db); err != nil {
		log.Fatalf("seed defaults: %v", err)
	}

	// repositories
	itemRepo := repository.NewItemRepo(db)
	ledgerRepo := repository.NewLedgerRepo(db)

	// services
	editor := &service.Editor{Items: itemRepo, Ledger: ledgerRepo, SizeLabels: cfg.UI.SizeLabels}
	reorder := &service.Reorder{Ledger: ledgerRepo}
	maintenance := &service.MaintenanceService{DB: db}

	app := tui.New(ctx, cfg,
		tui.Repos{Items: itemRepo, Ledger: ledgerRepo},
		tui.Services{Editor: editor, Reorder: reorder, Maintenance: maintenance},
	)

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "jaskplan: %v\n", err)
		os.Exit(1)
	}
}
