package repository

import (
	"sync"

	"github.com/RaikyD/tracking-number-service/internal/domain"
)

// DedupStore remembers which attributes each tracking number was issued for.
type DedupStore interface {
	// Lookup returns the attributes last stored under id.
	Lookup(id domain.TrackingNumber) (domain.OrderAttributes, bool)
	// Store associates id with attrs and returns the previous association.
	// Overwriting is not an error.
	Store(id domain.TrackingNumber, attrs domain.OrderAttributes) (domain.OrderAttributes, bool)
}

const shardCount = 32

type shard struct {
	mu   sync.RWMutex
	byID map[domain.TrackingNumber]domain.OrderAttributes
}

// ShardedStore is an in-memory DedupStore split into independently locked
// shards. Entries live for the life of the process; there is no eviction.
type ShardedStore struct {
	shards [shardCount]shard
}

func NewShardedStore() *ShardedStore {
	s := &ShardedStore{}
	for i := range s.shards {
		s.shards[i].byID = make(map[domain.TrackingNumber]domain.OrderAttributes)
	}
	return s
}

// tracking numbers are MD5 output, so the first byte is already uniform
func (s *ShardedStore) shardFor(id domain.TrackingNumber) *shard {
	return &s.shards[int(id[0])%shardCount]
}

func (s *ShardedStore) Lookup(id domain.TrackingNumber) (domain.OrderAttributes, bool) {
	sh := s.shardFor(id)
	sh.mu.RLock()
	defer sh.mu.RUnlock()
	attrs, ok := sh.byID[id]
	return attrs, ok
}

func (s *ShardedStore) Store(id domain.TrackingNumber, attrs domain.OrderAttributes) (domain.OrderAttributes, bool) {
	sh := s.shardFor(id)
	sh.mu.Lock()
	defer sh.mu.Unlock()
	prev, ok := sh.byID[id]
	sh.byID[id] = attrs
	return prev, ok
}

// Len counts entries across all shards. Shards are locked one at a time, so
// under concurrent writes the result is approximate.
func (s *ShardedStore) Len() int {
	n := 0
	for i := range s.shards {
		sh := &s.shards[i]
		sh.mu.RLock()
		n += len(sh.byID)
		sh.mu.RUnlock()
	}
	return n
}
