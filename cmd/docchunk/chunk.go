// Package main provides the docchunk CLI application.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/dshills/docchunk-mcp/internal/chunker"
	"github.com/dshills/docchunk-mcp/pkg/types"
)

// chunkFlags holds the flags for the chunk command
type chunkFlags struct {
	maxContext       int
	reservedResponse int
	reservedPrompt   int
	reservedCarry    int
	overflowPolicy   string
	workers          int
	metadataOnly     bool
}

var chunkOpts chunkFlags

// chunkCmd represents the chunk command
var chunkCmd = &cobra.Command{
	Use:   "chunk [file...]",
	Short: "Chunk documents from files or stdin",
	Long: `Chunk one or more "# File:" annotated documents and print the result
as JSON. With no arguments the document is read from stdin. With multiple
files the documents are chunked concurrently and the output is a map
keyed by file name.`,
	RunE: runChunk,
}

func init() {
	rootCmd.AddCommand(chunkCmd)

	chunkCmd.Flags().IntVar(&chunkOpts.maxContext, "max-context", 0, "override max context characters")
	chunkCmd.Flags().IntVar(&chunkOpts.reservedResponse, "reserved-response", 0, "override reserved response characters")
	chunkCmd.Flags().IntVar(&chunkOpts.reservedPrompt, "reserved-prompt", 0, "override reserved prompt characters")
	chunkCmd.Flags().IntVar(&chunkOpts.reservedCarry, "reserved-carry", 0, "override reserved carry characters")
	chunkCmd.Flags().StringVar(&chunkOpts.overflowPolicy, "overflow-policy", "", "overflow policy: allow or reject")
	chunkCmd.Flags().IntVarP(&chunkOpts.workers, "workers", "w", 4, "concurrent workers for multiple files")
	chunkCmd.Flags().BoolVar(&chunkOpts.metadataOnly, "metadata-only", false, "omit chunk content from the output")
}

func runChunk(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	limits := cfg.ToLimits()
	if chunkOpts.maxContext > 0 {
		limits.MaxContextChars = chunkOpts.maxContext
	}
	if chunkOpts.reservedResponse > 0 {
		limits.ReservedResponseChars = chunkOpts.reservedResponse
	}
	if chunkOpts.reservedPrompt > 0 {
		limits.ReservedPromptChars = chunkOpts.reservedPrompt
	}
	if chunkOpts.reservedCarry > 0 {
		limits.ReservedCarryChars = chunkOpts.reservedCarry
	}
	if chunkOpts.overflowPolicy != "" {
		limits.Overflow = types.OverflowPolicy(chunkOpts.overflowPolicy)
	}
	if err := limits.Validate(); err != nil {
		return err
	}

	if len(args) == 0 {
		doc, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
		result, err := chunker.New(limits).Chunk(string(doc))
		if err != nil {
			return err
		}
		return writeResult(os.Stdout, result)
	}

	if len(args) == 1 {
		doc, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", args[0], err)
		}
		result, err := chunker.New(limits).Chunk(string(doc))
		if err != nil {
			return err
		}
		return writeResult(os.Stdout, result)
	}

	docs := make(map[string]string, len(args))
	for _, path := range args {
		doc, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		docs[path] = string(doc)
	}

	results, err := chunker.ChunkAll(cmd.Context(), docs, limits, chunkOpts.workers)
	if err != nil {
		return err
	}
	for _, result := range results {
		stripContent(result)
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(results)
}

func writeResult(w io.Writer, result *types.ChunkResult) error {
	stripContent(result)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

// stripContent drops chunk bodies when only metadata was requested
func stripContent(result *types.ChunkResult) {
	if !chunkOpts.metadataOnly {
		return
	}
	for _, chunk := range result.Chunks {
		chunk.Content = ""
	}
}
