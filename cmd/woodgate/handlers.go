package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"

	"github.com/woodgate/woodgate/internal/auth"
	"github.com/woodgate/woodgate/internal/config"
	"github.com/woodgate/woodgate/internal/search"
)

// handleSearch implements the search tool. The record list is serialized
// as-is; an empty list is a valid result, not an error.
func handleSearch(cfg config.Config, svc *search.Service, logger zerolog.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		query, err := request.RequireString("query")
		if err != nil || query == "" {
			return textError("query parameter is required"), nil
		}
		creds, err := credentials()
		if err != nil {
			return textError(err.Error()), nil
		}

		q := search.Query{
			Text:     query,
			Products: request.GetStringSlice("products", nil),
			DocTypes: request.GetStringSlice("doc_types", nil),
			Page:     request.GetInt("page", 1),
			Rows:     request.GetInt("rows", cfg.DefaultRows),
			Sort:     search.ParseSort(request.GetString("sort_by", cfg.DefaultSort)),
		}

		records, err := svc.Search(ctx, creds, q)
		if err != nil {
			logger.Error().Err(err).Msg("search failed")
			return textError(fmt.Sprintf("search failed: %v", err)), nil
		}
		return jsonResult(records)
	}
}

// handleGetAlerts implements the get_alerts tool
func handleGetAlerts(svc *search.Service, logger zerolog.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		product, err := request.RequireString("product")
		if err != nil || product == "" {
			return textError("product parameter is required"), nil
		}
		creds, err := credentials()
		if err != nil {
			return textError(err.Error()), nil
		}

		alerts, err := svc.ProductAlerts(ctx, creds, product)
		if err != nil {
			logger.Error().Err(err).Msg("get_alerts failed")
			return textError(fmt.Sprintf("get_alerts failed: %v", err)), nil
		}
		return jsonResult(alerts)
	}
}

// handleGetDocument implements the get_document tool
func handleGetDocument(svc *search.Service, logger zerolog.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		docURL, err := request.RequireString("url")
		if err != nil || docURL == "" {
			return textError("url parameter is required"), nil
		}
		creds, err := credentials()
		if err != nil {
			return textError(err.Error()), nil
		}

		doc, err := svc.DocumentContent(ctx, creds, docURL)
		if err != nil {
			logger.Error().Err(err).Msg("get_document failed")
			return textError(fmt.Sprintf("get_document failed: %v", err)), nil
		}
		return jsonResult(doc)
	}
}

// handleListProducts implements the list_products tool
func handleListProducts() server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return jsonResult(config.AvailableProducts())
	}
}

// handleListDocumentTypes implements the list_document_types tool
func handleListDocumentTypes() server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return jsonResult(config.DocumentTypes())
	}
}

func credentials() (auth.Credentials, error) {
	username, password, err := config.Credentials()
	if err != nil {
		return auth.Credentials{}, err
	}
	return auth.Credentials{Username: username, Password: password}, nil
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return textError(fmt.Sprintf("encode result: %v", err)), nil
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(string(data)),
		},
	}, nil
}

func textError(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent("Error: " + msg),
		},
	}
}
