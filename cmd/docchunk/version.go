// Package main provides the docchunk CLI application.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dshills/docchunk-mcp/internal/storage"
)

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("docchunk version: %s\n", version)
		fmt.Printf("  build time: %s\n", buildTime)
		fmt.Printf("  build mode: %s\n", storage.BuildMode)
		fmt.Printf("  sqlite driver: %s\n", storage.DriverName)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
