// Command support runs the Thoughtful AI support agent from the terminal.
// Without -prompt it runs the scripted demo conversation against a single
// session and prints each structured result. Exits non-zero on any
// unhandled provider error.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"

	"github.com/kylemil/thoughtful-support/core/response"
	"github.com/kylemil/thoughtful-support/engine"
	"github.com/kylemil/thoughtful-support/observability"
	"github.com/kylemil/thoughtful-support/session"
)

// demoScript is the fixed interaction sequence: introduce a name, test
// conversation memory, then exercise the knowledge base tool.
var demoScript = []string{
	"Hi, my name is Bob.",
	"What is my name?",
	"What does EVA do?",
}

func main() {
	var (
		configFile = flag.String("config", "", "Path to engine config JSON file (optional)")
		prompt     = flag.String("prompt", "", "Single prompt to send instead of the demo script")
		sessionID  = flag.String("session", "", "Session id (defaults to a fresh one)")
		provider   = flag.String("provider", "", "Provider override: gemini or stub")
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

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// A missing credential is a configuration error: fail here, before any
	// conversation starts.
	e, err := engine.New(ctx, &cfg)
	if err != nil {
		log.Fatalf("Failed to create engine: %v", err)
	}

	id := *sessionID
	if id == "" {
		id = session.NewID()
	}

	script := demoScript
	if *prompt != "" {
		script = []string{*prompt}
	}

	for _, message := range script {
		fmt.Printf("User: %s\n", message)

		structured, err := e.Handle(ctx, id, message)
		if err != nil {
			log.Fatalf("Agent call failed: %v", err)
		}

		printStructured(structured)
		fmt.Println()
	}
}

func printStructured(s *response.Structured) {
	fmt.Printf("Agent: %s\n", s.Answer)
	fmt.Printf("  confidence: %.2f\n", s.Confidence)
	fmt.Println("  reasoning:")
	for _, step := range s.Reasoning {
		fmt.Printf("    - %s\n", step)
	}
}
