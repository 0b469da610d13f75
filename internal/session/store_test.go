package session

import (
	"testing"

	"farmagent/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorePutGet(t *testing.T) {
	s := NewStore(10, 0)
	loc := "Nashik"

	s.Put("abc", model.ConversationContext{Location: &loc, KnownCrops: []string{"onion"}})

	got, ok := s.Get("abc")
	require.True(t, ok)
	require.NotNil(t, got.Location)
	assert.Equal(t, "Nashik", *got.Location)
	assert.Equal(t, []string{"onion"}, got.KnownCrops)

	_, ok = s.Get("missing")
	assert.False(t, ok)
	_, ok = s.Get(" ")
	assert.False(t, ok)
}

func TestStoreCopiesContexts(t *testing.T) {
	s := NewStore(10, 0)
	conv := model.ConversationContext{KnownCrops: []string{"rice"}}
	s.Put("id", conv)

	conv.KnownCrops[0] = "changed"
	got, _ := s.Get("id")
	assert.Equal(t, []string{"rice"}, got.KnownCrops)

	got.KnownCrops[0] = "changed again"
	again, _ := s.Get("id")
	assert.Equal(t, []string{"rice"}, again.KnownCrops)
}

func TestStoreEvictsBySize(t *testing.T) {
	s := NewStore(2, 0)
	s.Put("a", model.ConversationContext{})
	s.Put("b", model.ConversationContext{})
	s.Put("c", model.ConversationContext{})

	assert.Equal(t, 2, s.Len())
	_, ok := s.Get("a")
	assert.False(t, ok)

	s.Delete("b")
	assert.Equal(t, 1, s.Len())

	s.Put("", model.ConversationContext{})
	assert.Equal(t, 1, s.Len())
}

func TestNewID(t *testing.T) {
	id := NewID()
	_, err := uuid.Parse(id)
	assert.NoError(t, err)
	assert.NotEqual(t, id, NewID())
}
