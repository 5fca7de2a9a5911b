// Package server assembles the MCP surface of the snack price service: the
// tool registry, the reference resources and prompts, and the HTTP server
// that carries them alongside the operational endpoints.
package server

import (
	"context"
	"log/slog"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/yaojiwei520/snack-price-api/internal/domain/catalog"
	"github.com/yaojiwei520/snack-price-api/internal/infra/metrics"
	"github.com/yaojiwei520/snack-price-api/internal/version"
)

const (
	serverName  = "snack-price-service"
	serverTitle = "Snack Price Service"
)

// serverInstructions is surfaced to connecting MCP clients.
const serverInstructions = "Query and maintain snack prices across shops. " +
	"Prices carry a validity period; amounts are returned as decimal strings " +
	"and dates as YYYY-MM-DD. Every mutation reports a status of success, " +
	"warning, or error."

// Catalog is the tool facade the MCP surface exposes. *catalog.Service is
// the production implementation.
type Catalog interface {
	QueryPrices(ctx context.Context, q catalog.PriceQuery) (*catalog.PriceList, error)
	ListShops(ctx context.Context) (*catalog.ShopList, error)
	ListSnacks(ctx context.Context) (*catalog.SnackList, error)
	ListCategories(ctx context.Context) (*catalog.CategoryList, error)
	AddShop(ctx context.Context, in catalog.AddShopInput) (*catalog.ShopResult, error)
	AddSnack(ctx context.Context, in catalog.AddSnackInput) (*catalog.SnackResult, error)
	AddPrice(ctx context.Context, in catalog.AddPriceInput) (*catalog.PriceResult, error)
	AddPricesBatch(ctx context.Context, entries []catalog.BatchPrice) (*catalog.BatchResult, error)
	DeletePrice(ctx context.Context, priceID int64) (*catalog.DeleteResult, error)
	DeletePricesBatch(ctx context.Context, priceIDs []int64) (*catalog.DeleteResult, error)
	DeleteSnack(ctx context.Context, snackID int64) (*catalog.DeleteResult, error)
	DeleteShop(ctx context.Context, shopID int64) (*catalog.DeleteResult, error)
}

// Options configures the MCP server assembly. The zero value is usable:
// logging falls back to slog.Default and metrics are skipped when nil.
type Options struct {
	Logger  *slog.Logger
	Metrics *metrics.ToolMetrics
}

// NewMCP builds the MCP server with every tool, resource, and prompt
// registered against cat.
func NewMCP(cat Catalog, opts Options) *mcp.Server {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	srv := mcp.NewServer(&mcp.Implementation{
		Name:    serverName,
		Title:   serverTitle,
		Version: version.Version,
	}, &mcp.ServerOptions{
		Instructions: serverInstructions,
	})

	r := &registry{catalog: cat, logger: logger, metrics: opts.Metrics}
	r.addQueryTools(srv)
	r.addCRUDTools(srv)
	r.addBatchTools(srv)
	r.addDeleteTools(srv)
	addResources(srv)
	addPrompts(srv)

	return srv
}

// registry holds what every tool handler needs.
type registry struct {
	catalog Catalog
	logger  *slog.Logger
	metrics *metrics.ToolMetrics
}

// addTool registers one tool with logging and metrics around its handler.
// The status label comes from the result envelope; handler errors, which the
// protocol reports as call failures, count as "failed". Results go out
// untyped so no output schema is advertised: the envelopes carry explicit
// nulls that inferred schemas would reject.
func addTool[In any](r *registry, srv *mcp.Server, tool *mcp.Tool, fn func(ctx context.Context, in In) (catalog.Result, error)) {
	mcp.AddTool(srv, tool, func(ctx context.Context, req *mcp.CallToolRequest, in In) (*mcp.CallToolResult, any, error) {
		start := time.Now()
		out, err := fn(ctx, in)
		elapsed := time.Since(start)

		if err != nil {
			if r.metrics != nil {
				r.metrics.RecordCall(tool.Name, "failed", elapsed)
			}
			r.logger.Error("tool call failed", "tool", tool.Name, "error", err, "elapsed", elapsed)
			return nil, nil, err
		}

		status := string(out.ResultStatus())
		if r.metrics != nil {
			r.metrics.RecordCall(tool.Name, status, elapsed)
		}
		r.logger.Debug("tool call finished", "tool", tool.Name, "status", status, "elapsed", elapsed)
		return nil, out, nil
	})
}
