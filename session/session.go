// Package session manages per-conversation turn history. A Session is an
// append-only log of user and agent turns; the Registry maps opaque session
// identifiers to Sessions for the lifetime of the process.
package session

import (
	"slices"
	"sync"

	"github.com/google/uuid"
)

// Role identifies the sender of a conversation turn. Only user and agent
// turns are recorded; system prompts and tool exchanges are composed per
// request and never enter the history.
type Role string

const (
	RoleUser  Role = "user"
	RoleAgent Role = "agent"
)

// Turn is one message in a conversation, immutable once appended.
type Turn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Session holds the ordered turn history for one conversation.
// Safe for concurrent use.
type Session struct {
	id    string
	mu    sync.RWMutex
	turns []Turn
}

// NewID returns a fresh opaque session identifier (UUIDv7) for shells that
// do not bring their own.
func NewID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// Append adds turns to the history in order.
func (s *Session) Append(turns ...Turn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.turns = append(s.turns, turns...)
}

// Turns returns a defensive copy of the history.
func (s *Session) Turns() []Turn {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.turns)
}

// Len returns the number of recorded turns.
func (s *Session) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.turns)
}
