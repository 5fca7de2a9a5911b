// Command snack-price-api runs the snack price MCP service.
//
// The serve command speaks MCP on stdin/stdout by default; --transport http
// serves the streamable endpoint with health and metrics alongside. The
// migrate and token commands cover schema management and access-token
// minting.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/yaojiwei520/snack-price-api/internal/api"
	"github.com/yaojiwei520/snack-price-api/internal/domain/catalog"
	"github.com/yaojiwei520/snack-price-api/internal/infra/config"
	"github.com/yaojiwei520/snack-price-api/internal/infra/metrics"
	"github.com/yaojiwei520/snack-price-api/internal/infra/postgres"
	"github.com/yaojiwei520/snack-price-api/internal/server"
	"github.com/yaojiwei520/snack-price-api/internal/version"
	"github.com/yaojiwei520/snack-price-api/pkg/auth"
)

const (
	shutdownTimeout = 10 * time.Second
	migrateTimeout  = 30 * time.Second
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, out, errOut io.Writer) int {
	fs := flag.NewFlagSet("snack-price-api", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	showVersion := fs.Bool("version", false, "Show version information")
	showHelp := fs.Bool("help", false, "Show help")
	configPath := fs.String("config", "", "Path to a YAML config file")

	if err := fs.Parse(args); err != nil {
		fmt.Fprintln(errOut, "invalid arguments; see --help") //nolint:errcheck
		return 2
	}

	if *showVersion {
		fmt.Fprintln(out, version.String()) //nolint:errcheck
		return 0
	}
	if *showHelp {
		printHelp(out)
		return 0
	}

	// A .env file is optional; variables already set in the environment win.
	godotenv.Load() //nolint:errcheck

	command := "serve"
	rest := fs.Args()
	if len(rest) > 0 {
		command, rest = rest[0], rest[1:]
	}

	switch command {
	case "serve":
		return cmdServe(rest, *configPath, errOut)
	case "migrate":
		return cmdMigrate(rest, *configPath, out, errOut)
	case "token":
		return cmdToken(rest, *configPath, out, errOut)
	case "version":
		fmt.Fprintln(out, version.String()) //nolint:errcheck
		return 0
	default:
		fmt.Fprintf(errOut, "unknown command %q\n\n", command) //nolint:errcheck
		printHelp(errOut)
		return 2
	}
}

func cmdServe(args []string, configPath string, errOut io.Writer) int {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	transport := fs.String("transport", "stdio", `Transport to serve on: "stdio" or "http"`)
	if err := fs.Parse(args); err != nil {
		fmt.Fprintln(errOut, "invalid serve arguments; see --help") //nolint:errcheck
		return 2
	}
	if *transport != "http" && *transport != "stdio" {
		fmt.Fprintf(errOut, "unknown transport %q: want http or stdio\n", *transport) //nolint:errcheck
		return 2
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(errOut, "snack-price-api: %v\n", err) //nolint:errcheck
		return 1
	}

	// Logs go to stderr so the stdio transport keeps stdout for the protocol.
	logger := cfg.Log.NewLogger(os.Stderr)
	slog.SetDefault(logger)

	reg := prometheus.NewRegistry()
	svc := catalog.NewService(cfg.DB, logger)
	mcpSrv := server.NewMCP(svc, server.Options{
		Logger:  logger,
		Metrics: metrics.NewToolMetrics(reg),
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *transport == "stdio" {
		return serveStdio(ctx, mcpSrv, logger, errOut)
	}
	return serveHTTP(ctx, cfg, mcpSrv, reg, logger, errOut)
}

// serveStdio runs the MCP server over stdin/stdout until the client
// disconnects or the process is signalled.
func serveStdio(ctx context.Context, mcpSrv *mcp.Server, logger *slog.Logger, errOut io.Writer) int {
	logger.Info("serving MCP on stdio", "version", version.Version)
	if err := mcpSrv.Run(ctx, &mcp.StdioTransport{}); err != nil {
		fmt.Fprintf(errOut, "snack-price-api: serve: %v\n", err) //nolint:errcheck
		return 1
	}
	return 0
}

// serveHTTP runs the full HTTP surface and shuts it down gracefully on
// SIGINT or SIGTERM.
func serveHTTP(ctx context.Context, cfg config.Config, mcpSrv *mcp.Server, reg *prometheus.Registry, logger *slog.Logger, errOut io.Writer) int {
	router := api.NewRouter(api.Deps{
		MCP:        mcpSrv,
		Store:      cfg.DB,
		Metrics:    reg,
		AuthSecret: []byte(cfg.Auth.Secret),
	})

	srvCfg := server.DefaultConfig()
	srvCfg.Host = cfg.HTTP.Host
	srvCfg.Port = cfg.HTTP.Port
	srv := server.NewServer(router, srvCfg, logger)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	logger.Info("serving MCP over HTTP",
		"addr", srv.Addr(),
		"db", cfg.DB.Addr(),
		"auth", cfg.Auth.Secret != "",
		"version", version.Version)

	select {
	case err := <-errCh:
		if err != nil {
			fmt.Fprintf(errOut, "snack-price-api: serve: %v\n", err) //nolint:errcheck
			return 1
		}
		return 0
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		fmt.Fprintf(errOut, "snack-price-api: shutdown: %v\n", err) //nolint:errcheck
		return 1
	}
	logger.Info("server stopped")
	return 0
}

func cmdMigrate(args []string, configPath string, out, errOut io.Writer) int {
	fs := flag.NewFlagSet("migrate", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	if err := fs.Parse(args); err != nil {
		fmt.Fprintln(errOut, "invalid migrate arguments; see --help") //nolint:errcheck
		return 2
	}

	direction := "up"
	if fs.NArg() > 0 {
		direction = fs.Arg(0)
	}
	if direction != "up" && direction != "down" {
		fmt.Fprintf(errOut, "unknown migrate direction %q: want up or down\n", direction) //nolint:errcheck
		return 2
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(errOut, "snack-price-api: %v\n", err) //nolint:errcheck
		return 1
	}

	ctx, cancel := context.WithTimeout(context.Background(), migrateTimeout)
	defer cancel()
	db, err := cfg.DB.Connect(ctx)
	if err != nil {
		fmt.Fprintf(errOut, "snack-price-api: migrate: %v\n", err) //nolint:errcheck
		return 1
	}
	defer db.Close()

	if direction == "up" {
		err = postgres.MigrateUp(db)
	} else {
		err = postgres.MigrateDown(db)
	}
	if err != nil {
		fmt.Fprintf(errOut, "snack-price-api: migrate %s: %v\n", direction, err) //nolint:errcheck
		return 1
	}

	v, err := postgres.MigrationVersion(db)
	if err != nil {
		fmt.Fprintf(errOut, "snack-price-api: migrate: %v\n", err) //nolint:errcheck
		return 1
	}
	fmt.Fprintf(out, "schema at version %d\n", v) //nolint:errcheck
	return 0
}

func cmdToken(args []string, configPath string, out, errOut io.Writer) int {
	fs := flag.NewFlagSet("token", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	client := fs.String("client", "local", "Client name embedded in the token")
	ttl := fs.Duration("ttl", 0, "Token lifetime, e.g. 72h (defaults to the configured expiry)")
	if err := fs.Parse(args); err != nil {
		fmt.Fprintln(errOut, "invalid token arguments; see --help") //nolint:errcheck
		return 2
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(errOut, "snack-price-api: %v\n", err) //nolint:errcheck
		return 1
	}
	if cfg.Auth.Secret == "" {
		fmt.Fprintln(errOut, "snack-price-api: token: AUTH_SECRET is not configured") //nolint:errcheck
		return 1
	}

	lifetime := *ttl
	if lifetime == 0 {
		lifetime = time.Duration(cfg.Auth.ExpiryHours) * time.Hour
	}

	token, err := auth.GenerateToken([]byte(cfg.Auth.Secret), *client, lifetime)
	if err != nil {
		fmt.Fprintf(errOut, "snack-price-api: token: %v\n", err) //nolint:errcheck
		return 1
	}

	fmt.Fprintln(out, token) //nolint:errcheck
	return 0
}

func printHelp(out io.Writer) {
	helpText := `Snack Price API - MCP service for snack price data

Usage:
  snack-price-api [options] <command> [command options]

Options:
  --config PATH  Path to a YAML config file
  --version      Show version information
  --help         Show this help message

Commands:
  serve          Start the MCP service (default)
                   --transport stdio  Serve one client on stdin/stdout (default)
                   --transport http   Serve /mcp, /health, /metrics over HTTP
  migrate        Apply database migrations (up or down)
  token          Mint a Bearer token for the HTTP transport
                   --client NAME      Client name embedded in the token
                   --ttl DURATION     Token lifetime, e.g. 72h
  version        Show version information

Examples:
  snack-price-api serve --transport http
  snack-price-api migrate up
  snack-price-api token --client reporting --ttl 72h`
	fmt.Fprintln(out, helpText) //nolint:errcheck
}
