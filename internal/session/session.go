// Package session caches the identity of each domain between requests.
package session

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/bizdash/internal/credential"
	"github.com/spec-kit/bizdash/internal/domain"
)

// StorageKey is the persisted key of a domain's snapshot.
func StorageKey(d domain.Domain) string {
	return string(d) + "-storage"
}

// Options configure a Store.
type Options struct {
	// BrowserID scopes the persisted snapshot to one browser. Empty means a single
	// process-wide slot.
	BrowserID   string
	Persister   Persister
	Credentials credential.Clearer
	Logger      *zap.Logger
	Now         func() time.Time
}

// snapshot is the persisted shape. The raw token is never part of it.
type snapshot[T any] struct {
	Identity        *T         `json:"identity"`
	IsAuthenticated bool       `json:"isAuthenticated"`
	SyncedAt        *time.Time `json:"syncedAt,omitempty"`
}

// Store holds the current identity of one domain.
type Store[T domain.Identity] struct {
	domain    domain.Domain
	key       string
	creds     credential.Clearer
	persister Persister
	logger    *zap.Logger
	now       func() time.Time

	mu            sync.RWMutex
	identity      *T
	authenticated bool
	loading       bool
	syncedAt      time.Time
}

// New builds an empty store for d.
func New[T domain.Identity](d domain.Domain, opts Options) *Store[T] {
	key := StorageKey(d)
	if opts.BrowserID != "" {
		key += ":" + opts.BrowserID
	}
	if opts.Persister == nil {
		opts.Persister = NewMemoryPersister()
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Store[T]{
		domain:    d,
		key:       key,
		creds:     opts.Credentials,
		persister: opts.Persister,
		logger:    opts.Logger.With(zap.String("session", string(d))),
		now:       opts.Now,
	}
}

// Domain returns the identity domain of the store.
func (s *Store[T]) Domain() domain.Domain { return s.domain }

// Load restores the persisted snapshot. Unreadable storage leaves the store empty.
func (s *Store[T]) Load(ctx context.Context) {
	data, err := s.persister.Load(ctx, s.key)
	if err != nil {
		s.logger.Warn("session snapshot unavailable", zap.Error(err))
		return
	}
	if len(data) == 0 {
		return
	}
	var snap snapshot[T]
	if err := json.Unmarshal(data, &snap); err != nil {
		s.logger.Warn("discarding unreadable session snapshot", zap.Error(err))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.identity = snap.Identity
	s.authenticated = snap.IsAuthenticated && snap.Identity != nil
	s.syncedAt = time.Time{}
	if snap.SyncedAt != nil {
		s.syncedAt = *snap.SyncedAt
	}
}

// SetIdentity records identity and marks the session authenticated.
func (s *Store[T]) SetIdentity(ctx context.Context, identity T) {
	s.mu.Lock()
	s.identity = &identity
	s.authenticated = true
	s.syncedAt = s.now()
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.persist(ctx, snap)
}

// Logout clears the domain credential and the cached identity. Calling it again is a no-op.
func (s *Store[T]) Logout(ctx context.Context) {
	if s.creds != nil {
		s.creds.Clear(s.domain)
	}
	s.Discard(ctx)
}

// Discard clears the cached identity without touching the credential.
func (s *Store[T]) Discard(ctx context.Context) {
	s.mu.Lock()
	s.identity = nil
	s.authenticated = false
	s.syncedAt = time.Time{}
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.persist(ctx, snap)
}

// Identity returns the current identity, if any.
func (s *Store[T]) Identity() (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.identity == nil {
		var zero T
		return zero, false
	}
	return *s.identity, true
}

// IsAuthenticated reports whether an identity is cached.
func (s *Store[T]) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.authenticated
}

// SetLoading toggles the transient loading flag. It is never persisted.
func (s *Store[T]) SetLoading(loading bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = loading
}

// IsLoading reports whether an identity request is in flight.
func (s *Store[T]) IsLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Stale reports whether the identity was last confirmed by the backend more than
// maxAge ago, or never.
func (s *Store[T]) Stale(maxAge time.Duration) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.syncedAt.IsZero() {
		return true
	}
	return s.now().Sub(s.syncedAt) > maxAge
}

// FullName is empty without an identity.
func (s *Store[T]) FullName() string {
	identity, ok := s.Identity()
	if !ok {
		return ""
	}
	return identity.FullName()
}

// Initials is empty without an identity.
func (s *Store[T]) Initials() string {
	identity, ok := s.Identity()
	if !ok {
		return ""
	}
	return identity.Initials()
}

func (s *Store[T]) snapshotLocked() snapshot[T] {
	snap := snapshot[T]{IsAuthenticated: s.authenticated}
	if s.identity != nil {
		identity := *s.identity
		snap.Identity = &identity
	}
	if !s.syncedAt.IsZero() {
		synced := s.syncedAt
		snap.SyncedAt = &synced
	}
	return snap
}

func (s *Store[T]) persist(ctx context.Context, snap snapshot[T]) {
	data, err := json.Marshal(snap)
	if err != nil {
		s.logger.Error("encode session snapshot", zap.Error(err))
		return
	}
	if err := s.persister.Save(ctx, s.key, data); err != nil {
		s.logger.Warn("persist session snapshot", zap.Error(err))
	}
}
