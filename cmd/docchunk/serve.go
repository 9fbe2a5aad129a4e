// Package main provides the docchunk CLI application.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dshills/docchunk-mcp/internal/mcp"
	"github.com/dshills/docchunk-mcp/internal/storage"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the MCP server on stdio",
	Long: `Start the docchunk MCP server, speaking the Model Context Protocol
over stdin/stdout. Chunked documents are persisted as sessions so a
client can fetch one chunk at a time with get_chunk.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// Log to stderr, stdout is reserved for the MCP protocol
	logger := newLogger(cfg.LogLevel, os.Stderr)
	logger.Info().
		Str("version", version).
		Str("build_mode", storage.BuildMode).
		Str("driver", storage.DriverName).
		Msg("docchunk MCP server starting")

	server, err := mcp.NewServer(cfg, logger)
	if err != nil {
		logger.Error().Err(err).Msg("failed to create MCP server")
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		logger.Info().Msg("MCP server ready, listening on stdio")
		errChan <- server.Serve(ctx)
	}()

	select {
	case sig := <-sigChan:
		logger.Info().Str("signal", sig.String()).Msg("shutting down")
		cancel()
	case err := <-errChan:
		if err != nil {
			logger.Error().Err(err).Msg("server error")
			return err
		}
	}

	logger.Info().Msg("server stopped")
	return nil
}
