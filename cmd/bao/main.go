package main

import (
	"log"
	"net/http"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/TiepCB-lab/Bao/internal/config"
	"github.com/TiepCB-lab/Bao/internal/logger"
	"github.com/TiepCB-lab/Bao/internal/thanhnien"
	"github.com/TiepCB-lab/Bao/internal/tui"
	"github.com/TiepCB-lab/Bao/internal/worker"
)

func main() {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	if err := logger.Init(logger.Config{Level: cfg.LogLevel, File: cfg.LogFile}); err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer logger.Sync()

	client := thanhnien.NewClient(&http.Client{Timeout: cfg.HTTPTimeout}, cfg.UserAgent)

	pool := worker.New()
	pool.Start()
	defer pool.Shutdown()

	model := tui.NewModel(pool, client, cfg.Feeds)
	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		log.Fatalf("tui error: %v", err)
	}
}
