package mcp

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"

	"github.com/dshills/docchunk-mcp/internal/config"
	"github.com/dshills/docchunk-mcp/internal/storage"
	"github.com/dshills/docchunk-mcp/pkg/types"
)

const (
	// ServerName is the MCP server name
	ServerName = "docchunk-mcp"
	// ServerVersion is the current server version
	ServerVersion = "1.0.0"
)

// Server wraps the MCP server with application dependencies
type Server struct {
	mcp      *server.MCPServer
	storage  storage.Storage
	defaults types.Limits
	log      zerolog.Logger
}

// NewServer creates a new MCP server instance
func NewServer(cfg *config.Config, logger zerolog.Logger) (*Server, error) {
	dbDir, err := cfg.ExpandDBPath()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	store, err := storage.NewSQLiteStorage(filepath.Join(dbDir, "docchunk.db"))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	defaults := cfg.ToLimits()
	if err := defaults.Validate(); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("invalid default limits: %w", err)
	}

	mcpServer := server.NewMCPServer(
		ServerName,
		ServerVersion,
	)

	s := &Server{
		mcp:      mcpServer,
		storage:  store,
		defaults: defaults,
		log:      logger,
	}
	s.registerTools()

	return s, nil
}

// Serve starts the MCP server on stdio and blocks until shutdown
func (s *Server) Serve(ctx context.Context) error {
	defer func() { _ = s.storage.Close() }()
	return server.ServeStdio(s.mcp)
}

// registerTools registers all MCP tools
func (s *Server) registerTools() {
	s.mcp.AddTool(chunkDocumentTool(), s.handleChunkDocument)
	s.mcp.AddTool(getChunkTool(), s.handleGetChunk)
	s.mcp.AddTool(listSessionsTool(), s.handleListSessions)
	s.mcp.AddTool(deleteSessionTool(), s.handleDeleteSession)
}
