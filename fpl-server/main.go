package main

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"fpl-squad-mcp/internal/fetch"
	"fpl-squad-mcp/internal/model"
	"fpl-squad-mcp/internal/store"
)

// Config is the environment-side configuration; process flags cover the
// HTTP surface. The cache location is threaded into the store
// constructor so nothing in the core reads the environment.
type Config struct {
	CacheDir string        `envconfig:"FPL_CACHE_DIR" default:"data/cache"`
	CacheTTL time.Duration `envconfig:"FPL_CACHE_TTL" default:"6h"`
	BaseURL  string        `envconfig:"FPL_BASE_URL"`
	APIKey   string        `envconfig:"FPL_MCP_API_KEY"`
}

type toolInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func main() {
	var (
		addr        = flag.String("addr", ":8080", "HTTP listen address")
		mcpPath     = flag.String("path", "/mcp", "HTTP path for MCP endpoint")
		requireAuth = flag.Bool("require-auth", true, "require API key auth via FPL_MCP_API_KEY")
		authHeader  = flag.String("auth-header", "X-API-Key", "HTTP header to read API key from")
	)
	flag.Parse()

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("could not load .env file", "error", err)
	}
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	client := newClient(cfg)

	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    "fpl-squad-mcp",
			Version: "0.1.0",
		},
		nil,
	)

	registry := make([]toolInfo, 0, 4)

	addTool(server, &registry, &mcp.Tool{
		Name:        "fixture_outlook",
		Description: "Per-team fixture difficulty outlook over the next N gameweeks, with scoring multipliers for the optimizer",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args FixtureOutlookArgs) (*mcp.CallToolResult, any, error) {
		out, err := buildFixtureOutlook(client, args)
		if err != nil {
			return toolError(err), nil, nil
		}
		return toolText(out), nil, nil
	})

	addTool(server, &registry, &mcp.Tool{
		Name:        "optimize_squad",
		Description: "Solve an optimal 15-man squad under official constraints (2 GK, 5 DEF, 5 MID, 3 FWD; budget; max per team) with starting XI, bench, and captaincy",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args OptimizeSquadArgs) (*mcp.CallToolResult, any, error) {
		out, err := buildOptimizeSquad(client, args)
		if err != nil {
			return toolError(err), nil, nil
		}
		return toolJSONBytes(out), nil, nil
	})

	addTool(server, &registry, &mcp.Tool{
		Name:        "player_watchlist",
		Description: "Ranked player watchlist from official stats (points, form, minutes, price, ownership, ICT)",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args PlayerWatchlistArgs) (*mcp.CallToolResult, any, error) {
		out, err := buildPlayerWatchlist(client, args)
		if err != nil {
			return toolError(err), nil, nil
		}
		return toolText(out), nil, nil
	})

	handler := mcp.NewStreamableHTTPHandler(func(r *http.Request) *mcp.Server {
		return server
	}, &mcp.StreamableHTTPOptions{JSONResponse: true})

	apiKey := strings.TrimSpace(cfg.APIKey)
	if *requireAuth && apiKey == "" {
		slog.Error("FPL_MCP_API_KEY is required (set env var or run with --require-auth=false)")
		os.Exit(1)
	}

	withAuth := func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if apiKey == "" {
				next(w, r)
				return
			}
			key := strings.TrimSpace(r.Header.Get(*authHeader))
			if key == "" {
				if authz := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(authz), "bearer ") {
					key = strings.TrimSpace(authz[7:])
				}
			}
			if subtle.ConstantTimeCompare([]byte(key), []byte(apiKey)) != 1 {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"error":"unauthorized"}`))
				return
			}
			next(w, r)
		}
	}

	http.HandleFunc("/health", withAuth(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}))

	http.HandleFunc("/tools", withAuth(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		b, _ := json.MarshalIndent(map[string]any{"tools": registry}, "", "  ")
		w.Write(b)
	}))

	http.HandleFunc(*mcpPath, withAuth(func(w http.ResponseWriter, r *http.Request) {
		handler.ServeHTTP(w, r)
	}))

	slog.Info("MCP HTTP server listening", "addr", *addr, "path", *mcpPath, "cache_dir", cfg.CacheDir)
	if err := http.ListenAndServe(*addr, nil); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func newClient(cfg Config) *fetch.Client {
	client := fetch.NewClient(store.NewJSONStore(cfg.CacheDir))
	if cfg.BaseURL != "" {
		client.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	}
	if cfg.CacheTTL > 0 {
		client.TTL = cfg.CacheTTL
	}
	return client
}

func addTool[T any](server *mcp.Server, registry *[]toolInfo, tool *mcp.Tool, handler func(context.Context, *mcp.CallToolRequest, T) (*mcp.CallToolResult, any, error)) {
	*registry = append(*registry, toolInfo{Name: tool.Name, Description: tool.Description})
	mcp.AddTool(server, tool, handler)
}

func toolText(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
	}
}

func toolJSONBytes(res []byte) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(res)},
		},
	}
}

func toolError(err error) *mcp.CallToolResult {
	slog.Error("tool call failed", "error", err)
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{
			&mcp.TextContent{Text: "error: " + err.Error()},
		},
	}
}

// resolveFromEvent infers the outlook window start from the snapshot's
// events when the caller did not pass one: the current gameweek, else
// the next one, else 0 (open window).
func resolveFromEvent(boot *model.Bootstrap, fromEvent int) int {
	if fromEvent > 0 {
		return fromEvent
	}
	for _, ev := range boot.Events {
		if ev.IsCurrent {
			return ev.ID
		}
	}
	for _, ev := range boot.Events {
		if ev.IsNext {
			return ev.ID
		}
	}
	return 0
}

// parseTeamMultipliers converts the JSON-object form ({"12": 1.08}) to
// the typed per-team map, skipping unparseable keys.
func parseTeamMultipliers(raw map[string]float64) map[int]float64 {
	if len(raw) == 0 {
		return nil
	}
	out := make(map[int]float64, len(raw))
	for k, v := range raw {
		id, err := strconv.Atoi(strings.TrimSpace(k))
		if err != nil {
			continue
		}
		out[id] = v
	}
	return out
}

// positionByType returns the snapshot's element_type mapping, falling
// back to the canonical one when the snapshot has none.
func positionByType(boot *model.Bootstrap) map[int]string {
	positions := fetch.PositionByType(boot)
	if len(positions) == 0 {
		return model.CanonicalPositionByType
	}
	return positions
}
