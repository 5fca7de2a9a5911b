// Command snackcli is a command-line probe for the snack price MCP service.
// It connects over streamable HTTP or by spawning the server on stdio and
// runs one operation per invocation.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/yaojiwei520/snack-price-api/internal/version"
)

const defaultTimeout = 30 * time.Second

func main() {
	endpoint := flag.String("endpoint", "", "Streamable HTTP endpoint, e.g. http://localhost:8080/mcp")
	command := flag.String("command", "", `Server command to spawn on stdio, e.g. "snack-price-api serve --transport stdio"`)
	token := flag.String("token", "", "Bearer token for the HTTP endpoint")
	timeout := flag.Duration("timeout", defaultTimeout, "Overall deadline for the operation")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		usage()
		os.Exit(2)
	}

	transport, err := newTransport(*endpoint, *command, *token)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	client := mcp.NewClient(&mcp.Implementation{Name: "snackcli", Version: version.Version}, nil)
	session, err := client.Connect(ctx, transport, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: connect: %v\n", err)
		os.Exit(1)
	}
	defer session.Close() //nolint:errcheck

	switch args[0] {
	case "tools":
		err = listTools(ctx, session, os.Stdout)
	case "call":
		if len(args) < 2 {
			fmt.Fprintln(os.Stderr, "ERROR: call needs a tool name")
			os.Exit(2)
		}
		rawArgs := "{}"
		if len(args) > 2 {
			rawArgs = args[2]
		}
		err = callTool(ctx, session, os.Stdout, args[1], rawArgs)
	case "schema":
		err = readSchema(ctx, session, os.Stdout)
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}
}

// newTransport builds the client transport from the flag values. Exactly one
// of endpoint and command must be set.
func newTransport(endpoint, command, token string) (mcp.Transport, error) {
	switch {
	case endpoint != "" && command != "":
		return nil, errors.New("--endpoint and --command are mutually exclusive")
	case endpoint != "":
		httpClient := http.DefaultClient
		if token != "" {
			httpClient = &http.Client{Transport: bearerTransport{token: token}}
		}
		return &mcp.StreamableClientTransport{Endpoint: endpoint, HTTPClient: httpClient}, nil
	case command != "":
		parts := strings.Fields(command)
		cmd := exec.Command(parts[0], parts[1:]...) //nolint:gosec
		cmd.Stderr = os.Stderr
		return &mcp.CommandTransport{Command: cmd}, nil
	default:
		return nil, errors.New("one of --endpoint or --command is required")
	}
}

// bearerTransport adds the Authorization header to every request.
type bearerTransport struct {
	token string
}

func (b bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())
	clone.Header.Set("Authorization", "Bearer "+b.token)
	return http.DefaultTransport.RoundTrip(clone)
}

func listTools(ctx context.Context, session *mcp.ClientSession, out io.Writer) error {
	res, err := session.ListTools(ctx, &mcp.ListToolsParams{})
	if err != nil {
		return fmt.Errorf("list tools: %w", err)
	}
	for _, tool := range res.Tools {
		fmt.Fprintf(out, "%-22s %s\n", tool.Name, tool.Description) //nolint:errcheck
	}
	return nil
}

func callTool(ctx context.Context, session *mcp.ClientSession, out io.Writer, name, rawArgs string) error {
	var args map[string]any
	if err := json.Unmarshal([]byte(rawArgs), &args); err != nil {
		return fmt.Errorf("arguments are not a JSON object: %w", err)
	}

	res, err := session.CallTool(ctx, &mcp.CallToolParams{Name: name, Arguments: args})
	if err != nil {
		return fmt.Errorf("call %s: %w", name, err)
	}

	for _, content := range res.Content {
		if text, ok := content.(*mcp.TextContent); ok {
			fmt.Fprintln(out, prettyJSON(text.Text)) //nolint:errcheck
		}
	}
	if res.IsError {
		return fmt.Errorf("%s reported an error", name)
	}
	return nil
}

func readSchema(ctx context.Context, session *mcp.ClientSession, out io.Writer) error {
	res, err := session.ReadResource(ctx, &mcp.ReadResourceParams{URI: "snackdb://schema"})
	if err != nil {
		return fmt.Errorf("read schema resource: %w", err)
	}
	for _, c := range res.Contents {
		fmt.Fprintln(out, c.Text) //nolint:errcheck
	}
	return nil
}

// prettyJSON re-indents s when it is valid JSON and returns it unchanged
// otherwise.
func prettyJSON(s string) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, []byte(s), "", "  "); err != nil {
		return s
	}
	return buf.String()
}

func usage() {
	fmt.Fprintln(os.Stderr, `Usage:
  snackcli --endpoint URL [--token T] <operation>
  snackcli --command "snack-price-api serve --transport stdio" <operation>

Operations:
  tools                    List the service's tools
  call <tool> [json-args]  Call a tool, e.g. call query_snack_prices '{"snack_name":"chips"}'
  schema                   Print the database schema resource`) //nolint:errcheck
}
