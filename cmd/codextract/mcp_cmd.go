package main

import (
	"context"
	"fmt"
	"os"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/roveo/codextract/extract"
	"github.com/roveo/codextract/model"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run as an MCP server (communicates via stdio)",
	Long: `Run as an MCP server that communicates via stdio, exposing a single
extract_symbols tool backed by the extract registry's Dispatch/DispatchLanguage.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMCPServer(cmd.Context())
	},
}

// extractSymbolsInput is the extract_symbols tool's input schema: either a
// file path to read from disk, or inline content paired with an explicit
// language tag.
type extractSymbolsInput struct {
	Path     string `json:"path,omitempty" jsonschema_description:"File path to read and extract. Mutually exclusive with content."`
	Content  string `json:"content,omitempty" jsonschema_description:"Inline source text to extract. Requires language."`
	Language string `json:"language,omitempty" jsonschema_description:"Explicit language tag. Required with content; optional with path (overrides extension detection)."`
}

func extractSymbolsTool() *mcpsdk.Tool {
	return &mcpsdk.Tool{
		Name: "extract_symbols",
		Description: "Parse a source file (or inline snippet) and return its ParsedItem symbols: " +
			"functions, types, classes, and the other language constructs it recognizes, in source order.",
	}
}

func extractSymbolsHandler() func(context.Context, *mcpsdk.CallToolRequest, extractSymbolsInput) (*mcpsdk.CallToolResult, any, error) {
	return func(ctx context.Context, req *mcpsdk.CallToolRequest, input extractSymbolsInput) (*mcpsdk.CallToolResult, any, error) {
		var (
			items []model.ParsedItem
			err   error
		)
		switch {
		case input.Content != "":
			if input.Language == "" {
				return nil, nil, fmt.Errorf("language is required when content is given")
			}
			items, err = extract.DispatchLanguage(ctx, input.Language, "<inline>", []byte(input.Content))
		case input.Path != "":
			content, readErr := os.ReadFile(input.Path)
			if readErr != nil {
				return nil, nil, fmt.Errorf("reading %s: %w", input.Path, readErr)
			}
			if input.Language != "" {
				items, err = extract.DispatchLanguage(ctx, input.Language, input.Path, content)
			} else {
				items, err = extract.Dispatch(ctx, input.Path, content)
			}
		default:
			return nil, nil, fmt.Errorf("either path or content must be given")
		}
		if err != nil {
			return nil, nil, err
		}

		return &mcpsdk.CallToolResult{
			Content: []mcpsdk.Content{},
		}, items, nil
	}
}

func runMCPServer(ctx context.Context) error {
	s := mcpsdk.NewServer(&mcpsdk.Implementation{
		Name:    "codextract",
		Version: "1.0.0",
	}, nil)

	mcpsdk.AddTool(s, extractSymbolsTool(), extractSymbolsHandler())

	loggerFrom(ctx).Info("serving MCP tools over stdio")
	return s.Run(ctx, &mcpsdk.StdioTransport{})
}
