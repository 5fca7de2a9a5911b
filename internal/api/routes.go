// Package api assembles the HTTP surface: the streamable MCP endpoint,
// a health check, and Prometheus metrics.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/yaojiwei520/snack-price-api/internal/api/middleware"
)

// healthTimeout bounds the store ping on the health endpoint.
const healthTimeout = 2 * time.Second

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Deps carries everything the router serves.
type Deps struct {
	// MCP handles the /mcp endpoint.
	MCP *mcp.Server

	// Store is pinged by the health endpoint. May be nil, in which case
	// the health check only reports process liveness.
	Store Pinger

	// Metrics backs the /metrics endpoint. May be nil to disable it.
	Metrics prometheus.Gatherer

	// AuthSecret enables Bearer token auth on /mcp when non-empty.
	AuthSecret []byte
}

// NewRouter builds the chi router with all routes and middleware wired up.
func NewRouter(deps Deps) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)

	r.Get("/health", healthHandler(deps.Store))

	if deps.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Metrics, promhttp.HandlerOpts{}))
	}

	// Streamable HTTP serves POST, GET, and DELETE on the same path, so
	// the MCP handler is mounted for all methods.
	mcpHandler := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return deps.MCP
	}, nil)
	r.Group(func(r chi.Router) {
		if len(deps.AuthSecret) > 0 {
			r.Use(middleware.RequireToken(deps.AuthSecret))
		}
		r.Handle("/mcp", mcpHandler)
	})

	return r
}

// healthHandler reports process liveness and, when a store is configured,
// database reachability.
func healthHandler(store Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		if store != nil {
			ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
			defer cancel()
			if err := store.Ping(ctx); err != nil {
				w.WriteHeader(http.StatusServiceUnavailable)
				w.Write([]byte(`{"status":"degraded","database":"unreachable"}`)) //nolint:errcheck
				return
			}
		}

		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`)) //nolint:errcheck
	}
}
