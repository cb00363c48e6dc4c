package room

import (
	"time"

	"github.com/dgraph-io/ristretto"
)

// TokenRegistrar lets a room publish a freshly minted reconnect token
// to a process-wide index so a later connection carrying only the
// token (and no room id) can be routed back without scanning every
// room. A nil registrar is valid — single-room tests construct a Room
// directly without one.
type TokenRegistrar interface {
	Register(token, roomID string, ttl time.Duration)
}

// tokenIndex is a ristretto-backed TokenRegistrar: entries expire on
// their own, so a token abandoned by a room that never got cleaned up
// still falls out of the index once its TTL elapses.
type tokenIndex struct {
	cache *ristretto.Cache
}

func newTokenIndex() (*tokenIndex, error) {
	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 1e5,
		MaxCost:     1 << 20,
		BufferItems: 64,
	})
	if err != nil {
		return nil, err
	}
	return &tokenIndex{cache: cache}, nil
}

func (ti *tokenIndex) Register(token, roomID string, ttl time.Duration) {
	ti.cache.SetWithTTL(token, roomID, 1, ttl)
	// Ristretto applies sets through an internal buffer; a reconnect
	// attempt can arrive within milliseconds of the token being minted,
	// so the set must be visible before Register returns.
	ti.cache.Wait()
}

// Resolve looks up which room minted token, if the entry hasn't
// expired or been evicted.
func (ti *tokenIndex) Resolve(token string) (string, bool) {
	v, ok := ti.cache.Get(token)
	if !ok {
		return "", false
	}
	roomID, ok := v.(string)
	return roomID, ok
}
