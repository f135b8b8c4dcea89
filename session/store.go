// Package session holds per-customer conversation state: the pending order,
// the service context and the latest finalized bill, keyed by an opaque
// caller-supplied session id.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sanju-subash/Cloudnest-rag/billing"
	"github.com/sanju-subash/Cloudnest-rag/config"
)

// Session is one customer's independent ordering conversation.
// Callers must hold Lock across any read or mutation of its fields so that
// concurrent requests for the same session id are serialized.
type Session struct {
	ID           string
	Order        *Order
	Context      ServiceContext
	LatestBill   *billing.Bill
	CreatedAt    time.Time
	LastActivity time.Time

	mu sync.Mutex
}

// Lock acquires the per-session critical section
func (s *Session) Lock() { s.mu.Lock() }

// Unlock releases the per-session critical section
func (s *Session) Unlock() { s.mu.Unlock() }

// Touch updates the activity timestamp; call with the lock held
func (s *Session) Touch() {
	s.LastActivity = time.Now()
}

// Store manages all sessions
type Store struct {
	sessions map[string]*Session
	mu       sync.RWMutex
	redis    *redis.Client
	timeout  time.Duration
}

// NewStore creates the session store with an optional Redis mirror for
// session metadata. Redis being unreachable is not an error; in-memory
// state is always authoritative.
func NewStore(cfg *config.Config) *Store {
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisURL,
		Password: cfg.RedisPassword,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		// Redis unavailable, continue without it
		redisClient = nil
	}

	return &Store{
		sessions: make(map[string]*Session),
		redis:    redisClient,
		timeout:  cfg.SessionTimeout,
	}
}

// Get returns the session for id, creating it lazily on first access
func (st *Store) Get(ctx context.Context, id string) *Session {
	st.mu.RLock()
	sess, exists := st.sessions[id]
	st.mu.RUnlock()
	if exists {
		return sess
	}

	st.mu.Lock()
	defer st.mu.Unlock()
	if sess, exists = st.sessions[id]; exists {
		return sess
	}

	now := time.Now()
	sess = &Session{
		ID:           id,
		Order:        NewOrder(),
		Context:      NewServiceContext(),
		CreatedAt:    now,
		LastActivity: now,
	}
	st.sessions[id] = sess

	if st.redis != nil {
		st.redis.HSet(ctx, "session:"+id, map[string]interface{}{
			"created_at":    sess.CreatedAt.Format(time.RFC3339),
			"last_activity": sess.LastActivity.Format(time.RFC3339),
			"status":        "active",
		})
		st.redis.SAdd(ctx, "active_sessions", id)
		st.redis.Expire(ctx, "session:"+id, st.timeout)
	}

	return sess
}

// Peek returns the session for id without creating it
func (st *Store) Peek(id string) (*Session, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	sess, exists := st.sessions[id]
	return sess, exists
}

// LatestBill returns the last finalized bill for the session, if any
func (st *Store) LatestBill(id string) (billing.Bill, bool) {
	sess, exists := st.Peek(id)
	if !exists {
		return billing.Bill{}, false
	}

	sess.Lock()
	defer sess.Unlock()
	if sess.LatestBill == nil {
		return billing.Bill{}, false
	}
	return *sess.LatestBill, true
}

// RecordBill mirrors a finalized bill's id into Redis (best-effort)
func (st *Store) RecordBill(ctx context.Context, id string, bill billing.Bill) {
	if st.redis == nil {
		return
	}
	st.redis.HSet(ctx, "session:"+id, map[string]interface{}{
		"last_activity": time.Now().Format(time.RFC3339),
		"latest_bill":   bill.BillID,
	})
	st.redis.Expire(ctx, "session:"+id, st.timeout)
}

// Count returns the number of live sessions
func (st *Store) Count() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// CleanupInactive drops sessions idle for longer than the configured timeout
func (st *Store) CleanupInactive(ctx context.Context) {
	st.mu.Lock()
	defer st.mu.Unlock()

	now := time.Now()
	for id, sess := range st.sessions {
		sess.Lock()
		idle := now.Sub(sess.LastActivity)
		sess.Unlock()
		if idle <= st.timeout {
			continue
		}
		delete(st.sessions, id)

		if st.redis != nil {
			st.redis.Del(ctx, "session:"+id)
			st.redis.SRem(ctx, "active_sessions", id)
		}
	}
}

// StartCleanupRoutine prunes idle sessions periodically until ctx is done
func (st *Store) StartCleanupRoutine(ctx context.Context) {
	ticker := time.NewTicker(1 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			st.CleanupInactive(ctx)
		}
	}
}

// Shutdown releases the Redis connection
func (st *Store) Shutdown() {
	st.mu.Lock()
	defer st.mu.Unlock()

	st.sessions = make(map[string]*Session)
	if st.redis != nil {
		st.redis.Close()
	}
}
