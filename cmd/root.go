// Package cmd defines the command line interface: the HTTP and stdio
// servers plus local conversion, history and config inspection commands.
package cmd

import (
	"fmt"

	"url2qr-mcp/session"

	"github.com/alecthomas/kong"
)

var (
	// Version information - set by version.go
	appVersion = "dev"
	appCommit  = "none"
	appDate    = "unknown"
)

// SetVersionInfo sets the version information
func SetVersionInfo(version, commit, date string) {
	appVersion = version
	appCommit = commit
	appDate = date
}

// CLI represents the command line interface structure using Kong
type CLI struct {
	ConfigPath string `name:"config" help:"Path to config file (default: ~/.config/url2qr-mcp/config.yaml)" type:"path"`
	Debug      bool   `help:"Enable debug logging of session activity"`

	Serve    ServeCmd    `cmd:"" help:"Run the HTTP MCP server"`
	Stdio    StdioCmd    `cmd:"" help:"Run the MCP server over stdio"`
	Generate GenerateCmd `cmd:"" help:"Convert a URL into a QR code PNG locally"`
	History  HistoryCmd  `cmd:"" help:"List recent conversions from the local database"`
	Config   ConfigCmd   `cmd:"" help:"Show the resolved configuration"`
	Version  VersionCmd  `cmd:"" help:"Show version information"`
}

// Execute is the main entry point for all commands
func Execute() error {
	cli := &CLI{}

	kctx := kong.Parse(cli,
		kong.Name("url2qr-mcp"),
		kong.Description("URL to QR code MCP server"),
		kong.Vars{
			"version": fmt.Sprintf("%s (%s, built %s)", appVersion, appCommit, appDate),
		},
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)

	if cli.Debug {
		session.EnableDebug()
	}

	return kctx.Run(cli)
}

// VersionCmd represents the version command structure
type VersionCmd struct{}

// Run implements the version command execution
func (v *VersionCmd) Run(_ *CLI) error {
	fmt.Printf("url2qr-mcp %s (%s, built %s)\n", appVersion, appCommit, appDate)
	return nil
}
