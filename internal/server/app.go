package server

import (
	"fmt"
	"io/fs"
	"time"

	"github.com/charmbracelet/log"

	"langsync/internal/config"
	"langsync/internal/events"
	"langsync/internal/fetcher"
	"langsync/internal/store"
	"langsync/internal/webui"
)

// App wires the backend together: the metadata store, the translation
// fetcher, the event bus and the embedded static assets. Handlers receive
// the App instead of reaching for globals so tests can build a fresh one
// per case.
type App struct {
	Config    *config.Config
	Store     *store.Store
	Fetcher   *fetcher.Fetcher
	Bus       events.EventBus
	Monitor   *ActivityMonitor
	PublicFS  fs.FS
	StartTime time.Time
}

func NewServerApp(cfg *config.Config) (*App, error) {
	bus := events.NewInMemoryEventBus(100)
	if err := bus.Start(); err != nil {
		return nil, fmt.Errorf("failed to start event bus: %w", err)
	}

	monitor := NewActivityMonitor()
	if err := bus.Subscribe(monitor); err != nil {
		return nil, fmt.Errorf("failed to subscribe activity monitor: %w", err)
	}

	s, err := store.Open(cfg.Server.DataDir, bus)
	if err != nil {
		return nil, err
	}

	a := &App{
		Config:    cfg,
		Store:     s,
		Fetcher:   fetcher.New(s, cfg.BaseURL),
		Bus:       bus,
		Monitor:   monitor,
		PublicFS:  webui.PublicFS,
		StartTime: time.Now(),
	}

	return a, nil
}

// ReloadConfig applies a freshly loaded configuration. Only base_url can
// change at runtime; everything else needs a restart.
func (a *App) ReloadConfig(cfg *config.Config) {
	if cfg.BaseURL != a.Fetcher.BaseURL() {
		log.Info("Base URL updated", "base_url", cfg.BaseURL)
		a.Fetcher.SetBaseURL(cfg.BaseURL)
	}
	a.Config = cfg

	if err := a.Bus.Publish(events.Event{Type: events.ConfigReload}); err != nil {
		log.Debug("Failed to publish config reload event", "error", err)
	}
}

func (a *App) GetUptime() string {
	return time.Since(a.StartTime).String()
}

// Shutdown performs a clean shutdown of the application
func (a *App) Shutdown() error {
	log.Info("Initiating application shutdown")

	if err := a.Bus.Stop(); err != nil {
		log.Error("Error stopping event bus", "error", err)
	}

	if err := a.Store.Close(); err != nil {
		log.Error("Error during store shutdown", "error", err)
		return err
	}

	log.Info("Application shutdown completed")
	return nil
}
