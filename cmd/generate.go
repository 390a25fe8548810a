package cmd

import (
	"context"
	"fmt"

	"url2qr-mcp/qrcode"
	"url2qr-mcp/store"
)

// GenerateCmd represents the generate command structure
type GenerateCmd struct {
	URL             string `arg:"" help:"Absolute http(s) URL to encode"`
	Width           int    `help:"Image width/height in pixels (default: 300)"`
	ErrorCorrection string `name:"error-correction" help:"QR error correction level: L, M, Q or H (default: M)"`
}

// Run implements the generate command execution
func (g *GenerateCmd) Run(cli *CLI) error {
	cfg, err := loadConfig(cli, 0, "")
	if err != nil {
		return err
	}

	ctx := context.Background()
	generator := qrcode.NewGenerator(cfg.OutputDir, cfg.PublicBaseURL, cfg.Port)
	art, err := generator.Convert(ctx, qrcode.Request{
		URL:             g.URL,
		Width:           g.Width,
		ErrorCorrection: g.ErrorCorrection,
	})
	if err != nil {
		return err
	}

	if history := openHistory(cfg); history != nil {
		defer history.Close()
		_ = history.Record(ctx, art)
	}

	fmt.Println(art.Summary())
	fmt.Printf("\nWritten to: %s\n", generator.Path(art.Filename))
	return nil
}

// HistoryCmd represents the history command structure
type HistoryCmd struct {
	Limit  int    `help:"Maximum number of conversions to list" default:"20"`
	Format string `help:"Output format: table, json or yaml" default:"table"`
}

// Run implements the history command execution
func (h *HistoryCmd) Run(cli *CLI) error {
	cfg, err := loadConfig(cli, 0, "")
	if err != nil {
		return err
	}

	format, err := store.ParseOutputFormat(h.Format)
	if err != nil {
		return err
	}

	history, err := store.Open(cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to open history database: %w", err)
	}
	defer history.Close()

	return store.ViewConversions(context.Background(), history, h.Limit, format)
}
