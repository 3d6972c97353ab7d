package session

import (
	"context"
	"sync"
	"time"

	"fjacquet/flatbot/internal/logging"
)

// Store is the in-memory session map, keyed by chat id. Access is guarded by
// a single mutex; no cross-key invariants exist. Sessions are not persisted
// across restarts.
type Store struct {
	mu       sync.Mutex
	sessions map[int64]*Session
	ttl      time.Duration // zero disables expiry
	clock    func() time.Time
	log      logging.Logger
}

// NewStore creates a store. A zero ttl disables expiry.
func NewStore(ttl time.Duration, log logging.Logger) *Store {
	if log == nil {
		log = logging.GetLogger()
	}
	return &Store{
		sessions: make(map[int64]*Session),
		ttl:      ttl,
		clock:    time.Now,
		log:      log,
	}
}

// SetClock replaces the time source, for tests.
func (st *Store) SetClock(clock func() time.Time) {
	st.clock = clock
}

// Get returns the session for a chat, or nil. An expired session is removed
// and reported as absent.
func (st *Store) Get(chatID int64) *Session {
	st.mu.Lock()
	defer st.mu.Unlock()

	s, ok := st.sessions[chatID]
	if !ok {
		return nil
	}
	if st.expired(s) {
		delete(st.sessions, chatID)
		return nil
	}
	return s
}

// GetOrCreate returns the chat's session, creating an idle one if absent.
// The display name is captured once per session, on creation.
func (st *Store) GetOrCreate(chatID int64, userName string) *Session {
	if s := st.Get(chatID); s != nil {
		return s
	}

	st.mu.Lock()
	defer st.mu.Unlock()
	s := New(chatID, userName)
	s.UpdatedAt = st.clock()
	st.sessions[chatID] = s
	return s
}

// Put stores a session and stamps its activity time.
func (st *Store) Put(s *Session) {
	st.mu.Lock()
	defer st.mu.Unlock()
	s.UpdatedAt = st.clock()
	st.sessions[s.ChatID] = s
}

// Delete removes a chat's session.
func (st *Store) Delete(chatID int64) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.sessions, chatID)
}

// Len returns the number of live sessions.
func (st *Store) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}

// Sweep removes expired sessions and returns how many were dropped.
func (st *Store) Sweep() int {
	st.mu.Lock()
	defer st.mu.Unlock()

	removed := 0
	for chatID, s := range st.sessions {
		if st.expired(s) {
			delete(st.sessions, chatID)
			removed++
		}
	}
	return removed
}

// Janitor sweeps expired sessions at the given interval until ctx is done.
// It returns immediately when expiry is disabled.
func (st *Store) Janitor(ctx context.Context, interval time.Duration) {
	if st.ttl <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := st.Sweep(); removed > 0 {
				st.log.Debug("Swept expired sessions",
					logging.Field{Key: logging.FieldCount, Value: removed})
			}
		}
	}
}

// expired must be called with the lock held.
func (st *Store) expired(s *Session) bool {
	return st.ttl > 0 && st.clock().Sub(s.UpdatedAt) > st.ttl
}
