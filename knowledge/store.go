// Package knowledge implements the predefined knowledge base consulted by
// the agent before answering product questions. Lookup is a pure keyword
// match over a small (topic, description) table; it never calls out.
package knowledge

import (
	"encoding/json"
	"fmt"
	"os"
	"slices"
	"strings"
	"sync"
	"unicode"
)

// minScore is the lowest overlap score that counts as a match. A single
// topic-token hit (weight 2) clears it; description-only matches need at
// least two token hits.
const minScore = 2

// Entry is one knowledge base record.
type Entry struct {
	Topic       string `json:"topic"`
	Description string `json:"description"`
}

// Result is a successful lookup: the matched entry and its overlap score.
type Result struct {
	Entry Entry
	Score int
}

// Store holds the knowledge table. Entries are fixed at construction;
// Reload exists only for the opt-in file watcher and swaps the whole table.
type Store struct {
	mu      sync.RWMutex
	entries []Entry
}

// NewStore creates a Store over the given entries.
func NewStore(entries []Entry) *Store {
	return &Store{entries: slices.Clone(entries)}
}

// Load reads a JSON array of entries from path.
func Load(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read knowledge file: %w", err)
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse knowledge file: %w", err)
	}
	return entries, nil
}

// Lookup scores the query against every entry and returns the best match.
// Scoring: lowercase both sides, tokenize on non-alphanumeric boundaries,
// drop stopwords, then count unique query tokens — a topic hit scores 2, a
// description hit scores 1. The highest score at or above the minimum wins;
// ties keep the earliest entry. The second return is false when nothing
// clears the threshold, which is a normal outcome, not an error.
func (s *Store) Lookup(query string) (Result, bool) {
	tokens := tokenize(query)
	if len(tokens) == 0 {
		return Result{}, false
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	best := Result{}
	found := false
	for _, e := range s.entries {
		score := overlap(tokens, e)
		if score < minScore {
			continue
		}
		if !found || score > best.Score {
			best = Result{Entry: e, Score: score}
			found = true
		}
	}
	return best, found
}

// Entries returns a copy of the current table.
func (s *Store) Entries() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.entries)
}

// Reload replaces the table. Only the file watcher calls this.
func (s *Store) Reload(entries []Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = slices.Clone(entries)
}

func overlap(queryTokens map[string]struct{}, e Entry) int {
	topic := tokenize(e.Topic)
	desc := tokenize(e.Description)

	score := 0
	for tok := range queryTokens {
		if _, ok := topic[tok]; ok {
			score += 2
			continue
		}
		if _, ok := desc[tok]; ok {
			score++
		}
	}
	return score
}

// stopwords are function words and possessive fragments ("AI's" tokenizes
// to "ai" + "s") that would otherwise let unrelated queries accumulate
// description hits.
var stopwords = map[string]struct{}{
	"a": {}, "an": {}, "the": {}, "and": {}, "or": {}, "of": {}, "to": {},
	"in": {}, "on": {}, "for": {}, "with": {}, "about": {}, "like": {},
	"what": {}, "how": {}, "does": {}, "do": {}, "is": {}, "are": {},
	"can": {}, "s": {}, "me": {}, "my": {}, "your": {}, "i": {}, "it": {},
	"you": {}, "tell": {}, "using": {}, "use": {}, "work": {}, "works": {},
	"these": {}, "this": {}, "that": {},
}

func tokenize(text string) map[string]struct{} {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	tokens := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		if _, stop := stopwords[f]; stop {
			continue
		}
		tokens[f] = struct{}{}
	}
	return tokens
}
