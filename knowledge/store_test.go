package knowledge_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kylemil/thoughtful-support/knowledge"
)

func TestLookup_CanonicalTopics(t *testing.T) {
	store := knowledge.NewStore(knowledge.Builtin())

	tests := []struct {
		query string
		want  string // substring of the matched description
	}{
		{query: "What does EVA do?", want: "eligibility"},
		{query: "What does the claims processing agent (CAM) do?", want: "claims"},
		{query: "How does the payment posting agent (PHIL) work?", want: "posting of payments"},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			result, ok := store.Lookup(tt.query)
			if !ok {
				t.Fatalf("Lookup(%q) found nothing", tt.query)
			}
			if !strings.Contains(result.Entry.Description, tt.want) {
				t.Errorf("Lookup(%q) matched %q, want description containing %q",
					tt.query, result.Entry.Topic, tt.want)
			}
		})
	}
}

func TestLookup_CaseInsensitive(t *testing.T) {
	store := knowledge.NewStore(knowledge.Builtin())

	result, ok := store.Lookup("tell me about eva")
	if !ok {
		t.Fatal("lowercase query found nothing")
	}
	if !strings.Contains(result.Entry.Topic, "EVA") {
		t.Errorf("matched %q, want the EVA entry", result.Entry.Topic)
	}
}

func TestLookup_NotFound(t *testing.T) {
	store := knowledge.NewStore(knowledge.Builtin())

	for _, query := range []string{
		"What's the weather in Boston?",
		"",
		"!!!",
	} {
		if result, ok := store.Lookup(query); ok {
			t.Errorf("Lookup(%q) matched %q, want no match", query, result.Entry.Topic)
		}
	}
}

func TestLookup_TieKeepsDeclarationOrder(t *testing.T) {
	store := knowledge.NewStore([]knowledge.Entry{
		{Topic: "widget alpha", Description: "first widget"},
		{Topic: "widget beta", Description: "second widget"},
	})

	result, ok := store.Lookup("widget")
	if !ok {
		t.Fatal("Lookup(widget) found nothing")
	}
	if result.Entry.Topic != "widget alpha" {
		t.Errorf("tie broke to %q, want the first declared entry", result.Entry.Topic)
	}
}

func TestLookup_SuiteOverview(t *testing.T) {
	store := knowledge.NewStore(knowledge.Builtin())

	result, ok := store.Lookup("Tell me about Thoughtful AI's Agents.")
	if !ok {
		t.Fatal("suite query found nothing")
	}
	if !strings.Contains(result.Entry.Topic, "suite") {
		t.Errorf("matched %q, want the suite entry", result.Entry.Topic)
	}
	if !strings.Contains(result.Entry.Description, "suite of AI-powered automation agents") {
		t.Errorf("matched description %q, want the suite overview", result.Entry.Description)
	}
}

func TestLookup_StopwordsDoNotMatch(t *testing.T) {
	store := knowledge.NewStore(knowledge.Builtin())

	// Function words and the possessive "s" appear in several descriptions;
	// they must not accumulate into a match for an unrelated question.
	if result, ok := store.Lookup("What's the weather like in the morning?"); ok {
		t.Errorf("Lookup matched %q, want no match", result.Entry.Topic)
	}
}

func TestLookup_PrefersHigherOverlap(t *testing.T) {
	store := knowledge.NewStore(knowledge.Builtin())

	result, ok := store.Lookup("What are the benefits of using Thoughtful AI's agents?")
	if !ok {
		t.Fatal("benefits query found nothing")
	}
	if !strings.Contains(result.Entry.Topic, "benefits") {
		t.Errorf("matched %q, want the benefits entry", result.Entry.Topic)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "kb.json")
	content := `[{"topic": "test agent", "description": "does test things"}]`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	entries, err := knowledge.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if len(entries) != 1 || entries[0].Topic != "test agent" {
		t.Errorf("got entries %+v", entries)
	}
}

func TestLoad_Missing(t *testing.T) {
	if _, err := knowledge.Load(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Error("Load of a missing file should fail")
	}
}

func TestReload_SwapsTable(t *testing.T) {
	store := knowledge.NewStore(knowledge.Builtin())

	store.Reload([]knowledge.Entry{{Topic: "solo entry", Description: "the only one"}})

	if _, ok := store.Lookup("What does EVA do?"); ok {
		t.Error("old entries still matched after Reload")
	}
	if _, ok := store.Lookup("tell me about the solo entry"); !ok {
		t.Error("new entry not matched after Reload")
	}
}
