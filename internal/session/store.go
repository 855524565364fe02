// Package session keeps calculator states for remote front-ends, one per
// session id, expiring them after a period of inactivity.
package session

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"calcpad/internal/calculator"

	"github.com/google/uuid"
)

var (
	ErrNotFound = errors.New("session not found")
	ErrClosed   = errors.New("session store closed")
)

type entry struct {
	state    calculator.State
	expireAt int64
}

// Store is safe for concurrent use. Transitions on a session are applied
// under the store lock, so tokens are reduced in arrival order.
type Store struct {
	mu          sync.RWMutex
	cleanerOnce sync.Once
	cleanerCh   chan struct{}
	items       map[string]entry
	ttl         time.Duration
	inShutdown  atomic.Bool
	closed      bool
	now         func() time.Time
}

// NewStore starts a store whose sessions expire ttl after their last use.
// Expired sessions are swept every cleanupInterval.
func NewStore(ttl, cleanupInterval time.Duration) *Store {
	s := &Store{
		cleanerCh: make(chan struct{}),
		items:     make(map[string]entry),
		ttl:       ttl,
		now:       time.Now,
	}

	go func() {
		ticker := time.NewTicker(cleanupInterval)
		defer ticker.Stop()

		for {
			select {
			case <-s.cleanerCh:
				return
			case <-ticker.C:
				s.cleanExpired()
			}
		}
	}()
	return s
}

// Create starts a session at the initial state under a fresh id.
func (s *Store) Create() (string, calculator.State, error) {
	id := uuid.NewString()
	state, err := s.Open(id)
	if err != nil {
		return "", calculator.State{}, err
	}
	return id, state, nil
}

// Open starts, or restarts, the session id at the initial state.
func (s *Store) Open(id string) (calculator.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.inShutdown.Load() {
		return calculator.State{}, ErrClosed
	}

	state := calculator.Initial()
	s.items[id] = entry{state: state, expireAt: s.expiry()}
	return state, nil
}

// Get returns the state of a live session.
func (s *Store) Get(id string) (calculator.State, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.lookup(id)
	if !ok {
		return calculator.State{}, ErrNotFound
	}
	return e.state, nil
}

// Apply reduces tokens in order on session id, stores the result and extends
// the session's lifetime. Sessions keep working while the store drains.
func (s *Store) Apply(id string, tokens ...calculator.Token) (calculator.State, error) {
	return s.Update(id, func(state calculator.State) calculator.State {
		return calculator.Apply(state, tokens...)
	})
}

// Update replaces the state of session id with fn's result. fn runs under
// the store lock and must not call back into the store.
func (s *Store) Update(id string, fn func(calculator.State) calculator.State) (calculator.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.lookup(id)
	if !ok {
		return calculator.State{}, ErrNotFound
	}

	state := fn(e.state)
	s.items[id] = entry{state: state, expireAt: s.expiry()}
	return state, nil
}

func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.lookup(id); !ok {
		return ErrNotFound
	}
	delete(s.items, id)
	return nil
}

// Len returns the number of stored sessions, including expired ones not yet
// swept.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

func (s *Store) IsEmpty() bool {
	return s.Len() == 0
}

const shutdownIntervalMax = 500 * time.Millisecond

// Shutdown refuses new sessions and waits for the live ones to expire. It
// returns ctx.Err() if ctx ends first.
func (s *Store) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	s.inShutdown.Store(true)
	s.mu.Unlock()
	s.closeCleaner()

	intervalBase := time.Millisecond
	nextInterval := func() time.Duration {
		interval := intervalBase + time.Duration(rand.Int63n(int64(intervalBase/10)+1))

		intervalBase *= 2
		if intervalBase > shutdownIntervalMax {
			intervalBase = shutdownIntervalMax
		}
		return interval
	}

	timer := time.NewTimer(nextInterval())
	defer timer.Stop()
	for {
		s.cleanExpired()
		if s.IsEmpty() {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
			timer.Reset(nextInterval())
		}
	}
}

// Close drops every session, including those a pending Shutdown is still
// draining. Closing twice returns ErrClosed.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.inShutdown.Store(true)
	s.closeCleanerLocked()
	clear(s.items)

	if s.closed {
		return ErrClosed
	}
	s.closed = true
	return nil
}

func (s *Store) lookup(id string) (entry, bool) {
	e, ok := s.items[id]
	if !ok || s.now().UnixNano() > e.expireAt {
		return entry{}, false
	}
	return e, true
}

func (s *Store) expiry() int64 {
	return s.now().Add(s.ttl).UnixNano()
}

func (s *Store) cleanExpired() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now().UnixNano()
	for k, v := range s.items {
		if now > v.expireAt {
			delete(s.items, k)
		}
	}
}

func (s *Store) closeCleaner() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closeCleanerLocked()
}

func (s *Store) closeCleanerLocked() {
	s.cleanerOnce.Do(func() {
		close(s.cleanerCh)
	})
}
