package knowledge_test

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/kylemil/thoughtful-support/knowledge"
)

func TestWatch_ReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "kb.json")

	writeEntries := func(content string) {
		t.Helper()
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	writeEntries(`[{"topic": "first agent", "description": "original entry"}]`)

	entries, err := knowledge.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	store := knowledge.NewStore(entries)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := store.Watch(ctx, path, slog.New(slog.DiscardHandler)); err != nil {
		t.Fatalf("Watch returned error: %v", err)
	}

	writeEntries(`[{"topic": "second agent", "description": "replacement entry"}]`)

	deadline := time.After(5 * time.Second)
	for {
		if result, ok := store.Lookup("tell me about the second agent"); ok && result.Entry.Topic == "second agent" {
			return
		}
		select {
		case <-deadline:
			t.Fatal("store did not reload within deadline")
		case <-time.After(20 * time.Millisecond):
		}
	}
}

func TestWatch_MissingDirectory(t *testing.T) {
	store := knowledge.NewStore(knowledge.Builtin())

	err := store.Watch(context.Background(), "/nonexistent/dir/kb.json", slog.New(slog.DiscardHandler))
	if err == nil {
		t.Error("Watch of a missing directory should fail")
	}
}
