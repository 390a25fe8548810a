package cmd

import (
	"fmt"

	"url2qr-mcp/config"

	"gopkg.in/yaml.v3"
)

// ConfigCmd represents the config command structure
type ConfigCmd struct{}

// Run loads application settings and prints the resolved YAML to stdout.
func (c *ConfigCmd) Run(cli *CLI) error {
	cfg, err := config.GetConfig(cli.ConfigPath)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	out, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	fmt.Print(string(out))
	return nil
}
