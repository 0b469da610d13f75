// Package session keeps conversation contexts in memory between chat turns.
package session

import (
	"strings"
	"time"

	"farmagent/internal/model"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Store is a bounded, expiring map of session id to conversation context.
// Contexts are copied on the way in and out; callers never share state.
type Store struct {
	cache *expirable.LRU[string, model.ConversationContext]
}

// NewStore creates a store holding up to size sessions.
// A ttl of zero keeps sessions until they are evicted by size.
func NewStore(size int, ttl time.Duration) *Store {
	return &Store{
		cache: expirable.NewLRU[string, model.ConversationContext](size, nil, ttl),
	}
}

// NewID returns a fresh session id
func NewID() string {
	return uuid.NewString()
}

// Get returns the stored context for id
func (s *Store) Get(id string) (model.ConversationContext, bool) {
	id = strings.TrimSpace(id)
	if id == "" {
		return model.ConversationContext{}, false
	}
	conv, ok := s.cache.Get(id)
	if !ok {
		return model.ConversationContext{}, false
	}
	return conv.Clone(), true
}

// Put stores conv under id, replacing any previous context
func (s *Store) Put(id string, conv model.ConversationContext) {
	if strings.TrimSpace(id) == "" {
		return
	}
	s.cache.Add(id, conv.Clone())
}

// Delete forgets a session
func (s *Store) Delete(id string) {
	s.cache.Remove(id)
}

// Len returns the number of live sessions
func (s *Store) Len() int {
	return s.cache.Len()
}
