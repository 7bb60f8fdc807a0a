package redis

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"quiz-session-service/internal/app"
)

// SessionStore is a Redis-aware implementation of app.SessionRepository.
// Notes:
//   - The state machine itself lives in a local map; a session is served by the
//     instance that created it.
//   - Redis holds a progress hash per session whose TTL is refreshed on every
//     save. When the hash expires the session is considered idle and dropped.
type SessionStore struct {
	client   *redis.Client
	ttl      time.Duration
	mu       sync.RWMutex
	sessions map[string]*app.Session
}

func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{
		client:   client,
		ttl:      ttl,
		sessions: make(map[string]*app.Session),
	}
}

func (s *SessionStore) Save(ctx context.Context, session *app.Session) error {
	snap := session.Snapshot()

	s.mu.Lock()
	s.sessions[snap.ID] = session
	s.mu.Unlock()

	key := s.key(snap.ID)
	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, key,
		"bank", snap.BankID,
		"cursor", snap.Cursor,
		"total", snap.Total,
		"answered", snap.Answered,
		"status", string(snap.Status),
		"last_active", snap.LastActive.Unix(),
	)
	if s.ttl > 0 {
		pipe.Expire(ctx, key, s.ttl)
	}
	_, err := pipe.Exec(ctx)
	return err
}

func (s *SessionStore) Get(ctx context.Context, id string) (*app.Session, bool) {
	s.mu.RLock()
	session, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}

	n, err := s.client.Exists(ctx, s.key(id)).Result()
	if err != nil {
		// best-effort: keep serving the local session if redis is unreachable
		log.Printf("check session %s liveness: %v", id, err)
		return session, true
	}
	if n == 0 {
		s.mu.Lock()
		delete(s.sessions, id)
		s.mu.Unlock()
		return nil, false
	}
	return session, true
}

func (s *SessionStore) Delete(ctx context.Context, id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
	_ = s.client.Del(ctx, s.key(id)).Err()
}

// Len reports the number of sessions held locally.
func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Sweep drops local sessions whose progress hash has expired in Redis and returns
// how many it removed. Sessions are kept when Redis cannot be reached.
func (s *SessionStore) Sweep(ctx context.Context) (int, error) {
	s.mu.RLock()
	ids := make([]string, 0, len(s.sessions))
	for id := range s.sessions {
		ids = append(ids, id)
	}
	s.mu.RUnlock()
	if len(ids) == 0 {
		return 0, nil
	}

	pipe := s.client.Pipeline()
	checks := make([]*redis.IntCmd, len(ids))
	for i, id := range ids {
		checks[i] = pipe.Exists(ctx, s.key(id))
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for i, id := range ids {
		if checks[i].Val() == 0 {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed, nil
}

// RunJanitor sweeps expired sessions every interval until ctx is done.
func (s *SessionStore) RunJanitor(ctx context.Context, every time.Duration) {
	if every <= 0 {
		return
	}
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := s.Sweep(ctx)
			if err != nil {
				log.Printf("sweep quiz sessions: %v", err)
				continue
			}
			if n > 0 {
				log.Printf("expired %d idle quiz sessions", n)
			}
		}
	}
}

func (s *SessionStore) key(id string) string {
	return "quiz:session:" + id
}
