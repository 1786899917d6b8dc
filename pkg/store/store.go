// Package store holds small pieces of per-visitor state that outlive a
// request but not a deployment: guest addresses, contacted sets and
// drafting sessions.
package store

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("key not found")

// KeyValueStore is string keyed state with optional expiry. A ttl of zero
// means the key never expires.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error

	// AddMember adds member to the set at key and refreshes its expiry.
	AddMember(ctx context.Context, key, member string, ttl time.Duration) error
	Members(ctx context.Context, key string) ([]string, error)
}

// GuestKey namespaces a field of guest state.
func GuestKey(guestID, field string) string {
	return "guest:" + guestID + ":" + field
}

const (
	FieldAddress   = "address"
	FieldContacted = "contacted"
	FieldTourSeen  = "tour_seen"
)
