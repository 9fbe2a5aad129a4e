// Package main provides the docchunk CLI application.
package main

import (
	"io"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/dshills/docchunk-mcp/internal/config"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "docchunk",
	Short: "Token-budget document chunker",
	Long: `docchunk splits "# File:" annotated documents into chunks that fit
a model context window, grouping files by directory and falling back to
per-file and per-line splits when a group is too large.

Run "docchunk serve" to expose the chunker as an MCP server over stdio,
or "docchunk chunk" for one-shot chunking from the command line.`,
	SilenceUsage: true,
}

var configPath string

// Execute adds all child commands to the root command and runs it.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to configuration file (YAML)")
}

// loadConfig reads the configured file, falling back to defaults
func loadConfig() (*config.Config, error) {
	return config.Load(configPath)
}

// newLogger builds a console logger at the configured level
func newLogger(level string, out io.Writer) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: out}).Level(lvl).With().Timestamp().Logger()
}
