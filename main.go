// Package main implements an MCP server that converts URLs into
// downloadable QR code images, served over HTTP (with per-client
// sessions) or stdio.
package main

import (
	"fmt"
	"log"
	"os"

	"url2qr-mcp/cmd"

	"github.com/joho/godotenv"
)

func main() {
	// Load .env file; absence is fine, system env still applies.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("warning: failed to load .env file: %v", err)
	}

	cmd.SetVersionInfo(Version, Commit, Date)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
