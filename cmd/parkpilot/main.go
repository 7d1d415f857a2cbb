// File path: cmd/parkpilot/main.go
package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/parkworks/parkpilot/internal/api"
	"github.com/parkworks/parkpilot/internal/common"
	"github.com/parkworks/parkpilot/internal/compose"
	"github.com/parkworks/parkpilot/internal/config"
	"github.com/parkworks/parkpilot/internal/evidence/catalog"
	"github.com/parkworks/parkpilot/internal/llm"
	"github.com/parkworks/parkpilot/internal/summarize"
)

func main() {
	logger := common.Logger()

	if err := godotenv.Load(); err != nil {
		logger.Warn("parkpilot: .env file not loaded", "error", err)
	} else {
		logger.Info("parkpilot: environment loaded from .env")
	}

	addr := flag.String("addr", "", "listen address (overrides config)")
	configPath := flag.String("config", "", "path to a YAML config file")
	fixtures := flag.String("fixtures", "", "path to the fixture catalog database (enables the demo executor)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("parkpilot: config load failed", "error", err)
		fmt.Println("config error:", err)
		os.Exit(1)
	}
	if trimmed := strings.TrimSpace(*addr); trimmed != "" {
		cfg.Addr = trimmed
	}
	if trimmed := strings.TrimSpace(*fixtures); trimmed != "" {
		cfg.CatalogPath = trimmed
	}

	provider := llm.NewProvider(cfg.Summarizer)
	summarizer := summarize.New(provider, cfg.Summarizer.Timeout)
	logger.Info("parkpilot: summarizer ready", "backend", summarizer.Name())

	composer := compose.New(summarizer)

	var executor api.Executor
	if cfg.CatalogPath != "" {
		store, err := catalog.Open(cfg.CatalogPath)
		if err != nil {
			logger.Error("parkpilot: fixture catalog unavailable", "error", err)
			fmt.Println("catalog error:", err)
			os.Exit(1)
		}
		defer store.Close()
		executor = catalog.NewExecutor(store)
		logger.Info("parkpilot: demo executor enabled", "catalog", cfg.CatalogPath)
	} else {
		logger.Info("parkpilot: no fixture catalog; requests must carry executor state inline")
	}

	server, err := api.NewServer(cfg, composer, executor)
	if err != nil {
		logger.Error("parkpilot: server construction failed", "error", err)
		fmt.Println("server error:", err)
		os.Exit(1)
	}

	logger.Info("parkpilot: server listening", "addr", cfg.Addr, "health", "/healthz")
	fmt.Printf("Serving on %s\n", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, server); err != nil {
		logger.Error("parkpilot: server stopped", "error", err)
		fmt.Println("server stopped:", err)
	}
}
