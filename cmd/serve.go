package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"langsync/internal/config"
	"langsync/internal/httpserve"
	"langsync/internal/logging"
	"langsync/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the translation metadata server",
	Long:  `Start the backend: metadata store, WebSocket API, service endpoint and static assets.`,
	Run:   runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config", "error", err)
	}

	logging.Setup(cfg.Logging.Level)

	log.Info("Starting langsync server",
		"version", BuildVersion,
		"port", cfg.Server.Port,
		"base_url", cfg.BaseURL)

	a, err := server.NewServerApp(cfg)
	if err != nil {
		log.Fatal("Failed to initialize server", "error", err)
	}

	e := echo.New()
	httpserve.RegisterRoutes(e, a)

	// Pick up base_url edits without a restart.
	viper.OnConfigChange(func(ev fsnotify.Event) {
		log.Info("Configuration file changed, reloading", "file", ev.Name)

		newCfg, err := config.Load()
		if err != nil {
			log.Error("Failed to reload configuration", "error", err)
			return
		}
		a.ReloadConfig(newCfg)
	})
	if viper.ConfigFileUsed() != "" {
		viper.WatchConfig()
	}

	go func() {
		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Error("HTTP server shutdown error", "error", err)
	}

	if err := a.Shutdown(); err != nil {
		os.Exit(1)
	}
}
