package server

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/yaojiwei520/snack-price-api/internal/infra/postgres"
)

// schemaResourceURI addresses the database schema reference resource.
const schemaResourceURI = "snackdb://schema"

// addResources registers the read-only reference resources.
func addResources(srv *mcp.Server) {
	srv.AddResource(&mcp.Resource{
		URI:         schemaResourceURI,
		Name:        "schema",
		Title:       "Snack database schema",
		Description: "DDL for the shops, brands, categories, snacks, and prices tables.",
		MIMEType:    "application/sql",
	}, func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		ddl, err := postgres.SchemaSQL()
		if err != nil {
			return nil, fmt.Errorf("read schema resource: %w", err)
		}
		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{{
				URI:      req.Params.URI,
				MIMEType: "application/sql",
				Text:     ddl,
			}},
		}, nil
	})
}

// addPrompts registers the reusable prompt templates.
func addPrompts(srv *mcp.Server) {
	srv.AddPrompt(&mcp.Prompt{
		Name:        "price_comparison",
		Title:       "Compare snack prices across shops",
		Description: "Builds a request to compare the stored prices for one snack across every shop.",
		Arguments: []*mcp.PromptArgument{
			{Name: "snack_name", Description: "Snack to compare, matched as a substring.", Required: true},
		},
	}, func(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
		snack := req.Params.Arguments["snack_name"]
		if snack == "" {
			return nil, fmt.Errorf("price_comparison: snack_name argument is required")
		}

		text := fmt.Sprintf("Use the query_snack_prices tool to find every stored price for %q, "+
			"then compare the shops: list each shop with its price and discount price, sorted from "+
			"cheapest to most expensive, and say which shop currently has the best deal.", snack)

		return &mcp.GetPromptResult{
			Description: "Price comparison request for " + snack,
			Messages: []*mcp.PromptMessage{{
				Role:    "user",
				Content: &mcp.TextContent{Text: text},
			}},
		}, nil
	})
}
