package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"langsync/internal/agent"
	"langsync/internal/config"
	"langsync/internal/logging"
)

var agentCmd = &cobra.Command{
	Use:   "agent",
	Short: "Start the translation metadata agent",
	Long:  `Watch a translations directory and push its metadata to the server.`,
	Run:   runAgent,
}

func init() {
	rootCmd.AddCommand(agentCmd)
}

func runAgent(cmd *cobra.Command, args []string) {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config", "error", err)
	}

	logging.Setup(cfg.Logging.Level)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		cancel()
	}()

	if err := agent.New(cfg.Agent).Run(ctx); err != nil {
		log.Fatal("Agent failed", "error", err)
	}
}
