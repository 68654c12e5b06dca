// Command lookup resolves a single jurisdiction query from the
// command line and prints the result as JSON. It exercises the same
// resolution core as the server and runs fully offline when Gemini is
// disabled.
//
// Usage:
//
//	go run ./cmd/lookup -lat 17.3235 -lng 78.4385
//	go run ./cmd/lookup -q katedan -k 2
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/hydsafe/jurisdictiond/internal/adapter/gemini"
	"github.com/hydsafe/jurisdictiond/internal/config"
	"github.com/hydsafe/jurisdictiond/internal/domain"
	"github.com/hydsafe/jurisdictiond/internal/observability"
	"github.com/hydsafe/jurisdictiond/internal/resolve"
)

func main() {
	lat := flag.Float64("lat", 0, "query latitude in decimal degrees")
	lng := flag.Float64("lng", 0, "query longitude in decimal degrees")
	query := flag.String("q", "", "free-text locality query")
	k := flag.Int("k", 0, "number of results (default from RESULT_LIMIT)")
	flag.Parse()

	byCoords := *lat != 0 || *lng != 0
	if byCoords == (*query != "") {
		fmt.Fprintln(os.Stderr, "provide either -lat and -lng, or -q")
		flag.Usage()
		os.Exit(1)
	}

	if code := run(byCoords, *lat, *lng, *query, *k); code != 0 {
		os.Exit(code)
	}
}

func run(byCoords bool, lat, lng float64, query string, k int) int {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		return 1
	}
	if k <= 0 {
		k = cfg.ResultLimit
	}

	registry, err := domain.EmbeddedRegistry()
	if cfg.RegistryPath != "" {
		registry, err = domain.LoadRegistryFile(cfg.RegistryPath)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "load registry: %v\n", err)
		return 1
	}

	logger := observability.NewLogger(cfg.LogLevel, "text")
	metrics := observability.NewMetrics()

	var suggester domain.StationSuggester
	var describer domain.AreaDescriber
	if cfg.GeminiEnabled {
		client := gemini.NewClient(cfg.GeminiAPIKey, cfg.GeminiModel, cfg.GeminiTimeout,
			cfg.GeminiRateLimit, registry.All(), logger, metrics)
		suggester = client
		describer = client
	}

	service := resolve.NewService(registry, suggester, describer, logger, metrics)
	ctx := context.Background()

	out := map[string]any{}
	if byCoords {
		stations, err := service.ResolveByLocation(ctx, lat, lng, k)
		if err != nil {
			fmt.Fprintf(os.Stderr, "resolve: %v\n", err)
			return 1
		}
		out["query"] = map[string]float64{"lat": lat, "lng": lng}
		out["area"] = service.DescribeArea(ctx, lat, lng)
		out["stations"] = stations
	} else {
		out["query"] = map[string]string{"q": query}
		out["stations"] = service.ResolveByText(ctx, query, k)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		fmt.Fprintf(os.Stderr, "encode output: %v\n", err)
		return 1
	}
	return 0
}
