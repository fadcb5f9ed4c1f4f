package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Persister stores encoded snapshots. Load returns nil data when the key is absent.
type Persister interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
}

// MemoryPersister keeps snapshots in process memory.
type MemoryPersister struct {
	mu    sync.Mutex
	data  map[string][]byte
	saved map[string]time.Time
}

// NewMemoryPersister builds an empty persister.
func NewMemoryPersister() *MemoryPersister {
	return &MemoryPersister{data: make(map[string][]byte), saved: make(map[string]time.Time)}
}

func (p *MemoryPersister) Load(_ context.Context, key string) ([]byte, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	data, ok := p.data[key]
	if !ok {
		return nil, nil
	}
	return append([]byte(nil), data...), nil
}

func (p *MemoryPersister) Save(_ context.Context, key string, data []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.data[key] = append([]byte(nil), data...)
	p.saved[key] = time.Now()
	return nil
}

// Prune drops snapshots last saved before cutoff and returns how many it removed.
func (p *MemoryPersister) Prune(cutoff time.Time) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := 0
	for key, at := range p.saved {
		if at.Before(cutoff) {
			delete(p.data, key)
			delete(p.saved, key)
			n++
		}
	}
	return n
}

// RedisPersister keeps snapshots in Redis. Every save slides the key's TTL.
type RedisPersister struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
}

// NewRedisPersister wraps client. A non-positive ttl keeps keys forever.
func NewRedisPersister(client *redis.Client, prefix string, ttl time.Duration) *RedisPersister {
	return &RedisPersister{client: client, prefix: prefix, ttl: ttl}
}

func (p *RedisPersister) Load(ctx context.Context, key string) ([]byte, error) {
	if p.client == nil {
		return nil, errors.New("redis client not configured")
	}
	data, err := p.client.Get(ctx, p.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	return data, err
}

func (p *RedisPersister) Save(ctx context.Context, key string, data []byte) error {
	if p.client == nil {
		return errors.New("redis client not configured")
	}
	ttl := p.ttl
	if ttl < 0 {
		ttl = 0
	}
	return p.client.Set(ctx, p.prefix+key, data, ttl).Err()
}
