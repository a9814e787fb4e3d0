// Package memstore is the in-process cache tier: a mutex-guarded map of
// encoded payloads with per-entry expiry. It is the tier that must always
// accept a write, so nothing here can fail; the remote tier lives behind
// the provider abstraction instead.
package memstore

import (
	"sync"
	"time"
)

type entry struct {
	val       []byte
	expiresAt time.Time // zero => no expiry
}

func (e entry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

// Store keeps entries in-process. Expired entries are dropped lazily on
// read and in bulk by Sweep; an optional background loop runs Sweep on a
// ticker until Close.
type Store struct {
	mu      sync.RWMutex
	entries map[string]entry

	ticker *time.Ticker
	stopCh chan struct{}
	wg     sync.WaitGroup
	once   sync.Once
}

// New returns a Store. sweepInterval > 0 starts the background sweep loop;
// anything else leaves expiry purely lazy.
func New(sweepInterval time.Duration) *Store {
	s := &Store{entries: make(map[string]entry)}
	if sweepInterval > 0 {
		s.ticker = time.NewTicker(sweepInterval)
		s.stopCh = make(chan struct{})
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			for {
				select {
				case <-s.ticker.C:
					s.Sweep()
				case <-s.stopCh:
					return
				}
			}
		}()
	}
	return s
}

// Get returns the stored bytes for key. An entry past its expiry is removed
// and reported as a miss. The returned slice must not be modified.
func (s *Store) Get(key string) ([]byte, bool) {
	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if e.expired(time.Now()) {
		// recheck under the write lock; another goroutine may have re-set the key
		s.mu.Lock()
		if cur, ok := s.entries[key]; ok && cur.expired(time.Now()) {
			delete(s.entries, key)
		}
		s.mu.Unlock()
		return nil, false
	}
	return e.val, true
}

// Set stores a copy of val under key. ttl <= 0 means no expiry.
func (s *Store) Set(key string, val []byte, ttl time.Duration) {
	e := entry{val: append([]byte(nil), val...)}
	if ttl > 0 {
		e.expiresAt = time.Now().Add(ttl)
	}
	s.mu.Lock()
	s.entries[key] = e
	s.mu.Unlock()
}

// Delete removes key and reports whether a live entry was present.
func (s *Store) Delete(key string) bool {
	now := time.Now()
	s.mu.Lock()
	e, ok := s.entries[key]
	if ok {
		delete(s.entries, key)
	}
	s.mu.Unlock()
	return ok && !e.expired(now)
}

// Keys returns the keys of live entries accepted by match.
func (s *Store) Keys(match func(string) bool) []string {
	now := time.Now()
	var out []string
	s.mu.RLock()
	for k, e := range s.entries {
		if e.expired(now) {
			continue
		}
		if match(k) {
			out = append(out, k)
		}
	}
	s.mu.RUnlock()
	return out
}

// Sweep removes every expired entry and returns how many were dropped.
func (s *Store) Sweep() int {
	now := time.Now()
	removed := 0
	s.mu.Lock()
	for k, e := range s.entries {
		if e.expired(now) {
			delete(s.entries, k)
			removed++
		}
	}
	s.mu.Unlock()
	return removed
}

// Len reports the number of entries, expired ones included until swept.
func (s *Store) Len() int {
	s.mu.RLock()
	n := len(s.entries)
	s.mu.RUnlock()
	return n
}

// Close stops the sweep loop. Safe to call multiple times.
func (s *Store) Close() {
	s.once.Do(func() {
		if s.stopCh != nil {
			close(s.stopCh)
			s.ticker.Stop()
			s.wg.Wait()
		}
	})
}
