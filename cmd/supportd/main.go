// Command supportd serves the Thoughtful AI support agent over HTTP: a JSON
// chat API plus a minimal browser chat page.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/kylemil/thoughtful-support/engine"
	"github.com/kylemil/thoughtful-support/httpapi"
	"github.com/kylemil/thoughtful-support/observability"
)

func main() {
	var (
		addr       = flag.String("addr", ":8080", "Listen address")
		configFile = flag.String("config", "", "Path to engine config JSON file (optional)")
		provider   = flag.String("provider", "", "Provider override: gemini or stub")
		knowledge  = flag.String("knowledge", "", "Knowledge base JSON file (overrides config)")
		watch      = flag.Bool("watch", false, "Reload the knowledge file on change")
		logJSON    = flag.String("log-json", "", "Also write JSON logs to this file")
		verbose    = flag.Bool("verbose", false, "Enable verbose logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := observability.NewLogger(observability.LoggerOptions{
		Level:    level,
		JSONPath: *logJSON,
	})
	slog.SetDefault(logger)
	// The registry's "slog" observer was bound to the init-time default
	// logger; rebind it so engine events reach the configured handlers.
	observability.RegisterObserver("slog", observability.NewSlogObserver(logger))

	cfg := engine.DefaultConfig()
	if *configFile != "" {
		loaded, err := engine.LoadConfig(*configFile)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		cfg = *loaded
	}
	if *provider != "" {
		cfg.Agent.Provider = *provider
	}
	if *knowledge != "" {
		cfg.Knowledge.Path = *knowledge
	}
	if *watch {
		cfg.Knowledge.Watch = true
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	e, err := engine.New(ctx, &cfg)
	if err != nil {
		log.Fatalf("Failed to create engine: %v", err)
	}

	server := httpapi.NewServer(*addr, e, logger)
	if err := server.Start(ctx); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
