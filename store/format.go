package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// OutputFormat represents the supported rendering format for history output.
type OutputFormat string

const (
	// FormatTable renders output as tab-separated text tables (default).
	FormatTable OutputFormat = "table"
	// FormatJSON renders output as JSON.
	FormatJSON OutputFormat = "json"
	// FormatYAML renders output as YAML.
	FormatYAML OutputFormat = "yaml"
)

// ParseOutputFormat converts a raw string into an OutputFormat, defaulting to table.
func ParseOutputFormat(raw string) (OutputFormat, error) {
	trimmed := strings.TrimSpace(strings.ToLower(raw))
	if trimmed == "" {
		return FormatTable, nil
	}
	switch trimmed {
	case string(FormatTable):
		return FormatTable, nil
	case string(FormatJSON):
		return FormatJSON, nil
	case string(FormatYAML):
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported format: %s", raw)
	}
}

// ViewConversions prints up to limit recent conversions in the requested format.
func ViewConversions(ctx context.Context, s *Store, limit int, format OutputFormat) error {
	conversions, err := s.Recent(ctx, limit)
	if err != nil {
		return err
	}
	return renderByFormat(format, func() error {
		fmt.Printf("%-6s %-42s %-8s %-4s %s\n", "ID", "FILENAME", "WIDTH", "EC", "SOURCE URL")
		for _, c := range conversions {
			fmt.Printf("%-6d %-42s %-8d %-4s %s\n", c.ID, c.Filename, c.Width, c.ErrorCorrection, c.SourceURL)
		}
		fmt.Printf("\nTotal: %d conversion(s)\n", len(conversions))
		return nil
	}, conversions)
}

func renderByFormat(format OutputFormat, tableFn func() error, payload interface{}) error {
	switch format {
	case FormatTable, "":
		if tableFn == nil {
			return nil
		}
		return tableFn()
	case FormatJSON:
		return printJSON(payload)
	case FormatYAML:
		return printYAML(payload)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

func printJSON(payload interface{}) error {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

func printYAML(payload interface{}) error {
	data, err := yaml.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal YAML: %w", err)
	}
	fmt.Print(string(data))
	return nil
}
