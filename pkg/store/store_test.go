package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreValues(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	_, err := s.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Set(ctx, GuestKey("g1", FieldAddress), "1 Main St, Austin, TX 78701", 0))
	val, err := s.Get(ctx, "guest:g1:address")
	require.NoError(t, err)
	assert.Equal(t, "1 Main St, Austin, TX 78701", val)

	require.NoError(t, s.Delete(ctx, "guest:g1:address"))
	_, err = s.Get(ctx, "guest:g1:address")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreExpiry(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	require.NoError(t, s.Set(ctx, "k", "v", 10*time.Millisecond))
	time.Sleep(30 * time.Millisecond)

	_, err := s.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreSets(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	members, err := s.Members(ctx, "set")
	require.NoError(t, err)
	assert.Empty(t, members)

	require.NoError(t, s.AddMember(ctx, "set", "fed_B", 0))
	require.NoError(t, s.AddMember(ctx, "set", "fed_A", 0))
	require.NoError(t, s.AddMember(ctx, "set", "fed_B", 0))

	members, err = s.Members(ctx, "set")
	require.NoError(t, err)
	assert.Equal(t, []string{"fed_A", "fed_B"}, members)
}
