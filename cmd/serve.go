package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"url2qr-mcp/config"
	"url2qr-mcp/mcp"
	"url2qr-mcp/qrcode"
	"url2qr-mcp/server"
	"url2qr-mcp/session"
	"url2qr-mcp/store"
)

// ServeCmd represents the serve command structure
type ServeCmd struct {
	Port      int    `help:"Override the configured listen port"`
	OutputDir string `name:"output-dir" help:"Override the configured artifact output directory"`
}

// Run implements the serve command execution
func (s *ServeCmd) Run(cli *CLI) error {
	cfg, err := loadConfig(cli, s.Port, s.OutputDir)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	registry := session.NewRegistry()
	generator := qrcode.NewGenerator(cfg.OutputDir, cfg.PublicBaseURL, cfg.Port)
	history := openHistory(cfg)
	if history != nil {
		defer history.Close()
	}

	return server.New(cfg, registry, generator, history, appVersion).Run(ctx)
}

// StdioCmd represents the stdio command structure
type StdioCmd struct{}

// Run implements the stdio command execution
func (s *StdioCmd) Run(cli *CLI) error {
	cfg, err := loadConfig(cli, 0, "")
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	generator := qrcode.NewGenerator(cfg.OutputDir, cfg.PublicBaseURL, cfg.Port)
	history := openHistory(cfg)
	var recorder mcp.Recorder
	if history != nil {
		defer history.Close()
		recorder = history
	}

	info := mcp.ServerInfo{Name: config.AppName, Version: appVersion}
	return mcp.ServeStdio(ctx, info, generator, recorder)
}

// loadConfig resolves configuration and applies command line overrides.
func loadConfig(cli *CLI, port int, outputDir string) (*config.Config, error) {
	cfg, err := config.GetConfig(cli.ConfigPath)
	if err != nil {
		return nil, err
	}
	if port != 0 {
		cfg.Port = port
	}
	if outputDir != "" {
		cfg.OutputDir = outputDir
	}
	return cfg, nil
}

// openHistory opens the conversion history store. History is a
// supplementary concern: failure to open it is logged, not fatal.
func openHistory(cfg *config.Config) *store.Store {
	history, err := store.Open(cfg.DatabasePath)
	if err != nil {
		log.Printf("[cmd] history store unavailable: %v", err)
		return nil
	}
	return history
}
